package main

import (
	"context"
	"fmt"
	"log"
	"os/signal"
	"syscall"

	"invoicepad/internal/config"
	"invoicepad/internal/email/noop"
	"invoicepad/internal/email/ses"
	"invoicepad/internal/handler"
	"invoicepad/internal/pdf"
	"invoicepad/internal/port"
	"invoicepad/internal/router"
	"invoicepad/internal/service"
	s3storage "invoicepad/internal/storage/s3"
)

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Initialize storage
	s3Client, err := s3storage.NewS3Client(&cfg.S3)
	if err != nil {
		return fmt.Errorf("failed to initialize S3 client: %w", err)
	}

	// Initialize email sender
	var emailSender port.EmailSender
	switch cfg.Email.Provider {
	case "ses":
		emailSender, err = ses.NewSESSender(cfg.Email.Region, cfg.Email.FromAddress, cfg.Email.FromName)
		if err != nil {
			return fmt.Errorf("failed to initialize SES sender: %w", err)
		}
	default:
		emailSender = noop.NewNoopSender()
	}

	// Initialize services
	sessionSvc := service.NewSessionService(cfg.Session, nil)
	renderer := pdf.NewRenderer(pdf.WithLogoStorage(s3Client, cfg.S3.Bucket))
	exportSvc := service.NewExportService(sessionSvc, renderer, s3Client, emailSender, &cfg.S3, &cfg.Export)
	logoSvc := service.NewLogoService(sessionSvc, s3Client, &cfg.S3)

	// Background sweep of idle sessions
	sweeper := service.NewSessionSweeper(sessionSvc, cfg.Session)
	go sweeper.Start(ctx)

	// Initialize handlers
	sessionH := handler.NewSessionHandler(sessionSvc)
	exportH := handler.NewExportHandler(exportSvc)
	logoH := handler.NewLogoHandler(logoSvc)
	countryH := handler.NewCountryHandler()
	healthH := handler.NewHealthHandler(sessionSvc)

	// Setup router
	r := router.Setup(cfg.CORS.AllowedOrigins, sessionH, exportH, logoH, countryH, healthH)

	log.Printf("Server starting on %s", cfg.Server.Port)
	if err := r.Run(cfg.Server.Port); err != nil {
		return fmt.Errorf("server failed: %w", err)
	}

	return nil
}
