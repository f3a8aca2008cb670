package service

import (
	"bytes"
	"context"
	"fmt"
	"log"

	"github.com/google/uuid"

	"invoicepad/internal/config"
	"invoicepad/internal/csvexport"
	"invoicepad/internal/domain"
	"invoicepad/internal/port"
	"invoicepad/internal/xlsxexport"
)

// Export is the result of rendering a session's invoice to a file format.
type Export struct {
	Data        []byte
	Filename    string
	ContentType string
}

// ExportService renders a session's settled invoice to downloadable formats
// and delivers PDF exports by email.
type ExportService interface {
	Export(ctx context.Context, id uuid.UUID, format domain.ExportFormat) (*Export, error)
	EmailPDF(ctx context.Context, id uuid.UUID, toEmail, toName string) error
}

type exportService struct {
	sessions SessionService
	renderer port.InvoiceRenderer
	storage  port.ObjectStorage
	email    port.EmailSender
	s3cfg    *config.S3Config
	prefix   string
}

// NewExportService creates a new ExportService implementation.
func NewExportService(
	sessions SessionService,
	renderer port.InvoiceRenderer,
	storage port.ObjectStorage,
	email port.EmailSender,
	s3cfg *config.S3Config,
	exportCfg *config.ExportConfig,
) ExportService {
	return &exportService{
		sessions: sessions,
		renderer: renderer,
		storage:  storage,
		email:    email,
		s3cfg:    s3cfg,
		prefix:   exportCfg.FilenamePrefix,
	}
}

func (s *exportService) Export(ctx context.Context, id uuid.UUID, format domain.ExportFormat) (*Export, error) {
	inv, totals, err := s.sessions.Snapshot(ctx, id)
	if err != nil {
		return nil, err
	}

	var data []byte
	switch format {
	case domain.ExportFormatPDF:
		data, err = s.renderer.Render(ctx, inv, totals)
	case domain.ExportFormatCSV:
		data, err = renderCSV(inv, totals)
	case domain.ExportFormatXLSX:
		data, err = xlsxexport.Write(inv, totals)
	default:
		return nil, fmt.Errorf("unsupported export format %q", format)
	}
	if err != nil {
		return nil, err
	}

	return &Export{
		Data:        data,
		Filename:    s.filename(inv, format),
		ContentType: format.ContentType(),
	}, nil
}

func (s *exportService) EmailPDF(ctx context.Context, id uuid.UUID, toEmail, toName string) error {
	export, err := s.Export(ctx, id, domain.ExportFormatPDF)
	if err != nil {
		return err
	}

	inv, _, err := s.sessions.Snapshot(ctx, id)
	if err != nil {
		return err
	}

	key := fmt.Sprintf("exports/%s/%s", id, export.Filename)
	_, err = s.storage.Upload(ctx, port.UploadInput{
		Bucket:      s.s3cfg.Bucket,
		Key:         key,
		Body:        bytes.NewReader(export.Data),
		ContentType: export.ContentType,
		Size:        int64(len(export.Data)),
	})
	if err != nil {
		log.Printf("exportService.EmailPDF: upload %s: %v", key, err)
		return domain.ErrUploadFailed
	}

	downloadURL, err := s.storage.GetPresignedURL(ctx, s.s3cfg.Bucket, key, s.s3cfg.PresignExpiry)
	if err != nil {
		log.Printf("exportService.EmailPDF: presign %s: %v", key, err)
		return domain.ErrUploadFailed
	}

	if err := s.email.SendInvoiceEmail(ctx, toEmail, toName, inv.InvoiceNumber, downloadURL); err != nil {
		log.Printf("exportService.EmailPDF: send to %s: %v", toEmail, err)
		return domain.ErrEmailFailed
	}
	return nil
}

// filename prefers the invoice number, falling back to the configured
// prefix for unnumbered drafts.
func (s *exportService) filename(inv *domain.Invoice, format domain.ExportFormat) string {
	name := inv.InvoiceNumber
	if csvexport.SanitizeFilename(name) == "" {
		name = s.prefix
	}
	return csvexport.BuildFilename(name, string(format))
}

func renderCSV(inv *domain.Invoice, totals domain.Totals) ([]byte, error) {
	var buf bytes.Buffer
	buf.Write(csvexport.BOM)
	w := csvexport.NewWriter(&buf)
	if err := w.WriteInvoice(inv, totals); err != nil {
		return nil, err
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
