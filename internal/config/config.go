package config

import (
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all application configuration.
type Config struct {
	Server  ServerConfig
	Log     LogConfig
	CORS    CORSConfig
	S3      S3Config
	Email   EmailConfig
	Session SessionConfig
	Export  ExportConfig
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Port         string        `mapstructure:"port"`
	ReadTimeout  time.Duration `mapstructure:"read_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
	Environment  string        `mapstructure:"environment"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// CORSConfig holds CORS settings.
type CORSConfig struct {
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

// S3Config holds AWS S3 settings for logo and export storage.
type S3Config struct {
	Region        string `mapstructure:"region"`
	Bucket        string `mapstructure:"bucket"`
	Endpoint      string `mapstructure:"endpoint"`
	AccessKey     string `mapstructure:"access_key"`
	SecretKey     string `mapstructure:"secret_key"`
	MaxFileSizeMB int64  `mapstructure:"max_file_size_mb"`
	PresignExpiry int64  `mapstructure:"presign_expiry"`
}

// EmailConfig holds email delivery settings.
type EmailConfig struct {
	Provider    string `mapstructure:"provider"`
	Region      string `mapstructure:"region"`
	FromAddress string `mapstructure:"from_address"`
	FromName    string `mapstructure:"from_name"`
}

// SessionConfig holds editing session lifecycle settings.
type SessionConfig struct {
	MaxSessions   int           `mapstructure:"max_sessions"`
	MaxLineItems  int           `mapstructure:"max_line_items"`
	IdleTTL       time.Duration `mapstructure:"idle_ttl"`
	SweepInterval time.Duration `mapstructure:"sweep_interval"`
}

// ExportConfig holds invoice export settings.
type ExportConfig struct {
	FilenamePrefix string `mapstructure:"filename_prefix"`
}

// Load reads configuration from environment variables with the INVOICEPAD_
// prefix.
func Load() (*Config, error) {
	v := viper.New()
	v.SetEnvPrefix("INVOICEPAD")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Server defaults
	v.SetDefault("server.port", ":8080")
	v.SetDefault("server.read_timeout", "15s")
	v.SetDefault("server.write_timeout", "15s")
	v.SetDefault("server.environment", "development")

	// Log defaults
	v.SetDefault("log.level", "debug")
	v.SetDefault("log.format", "console")

	// CORS defaults (localhost origins for development)
	v.SetDefault("cors.allowed_origins", "http://localhost:3000,http://127.0.0.1:3000")

	// S3 defaults
	v.SetDefault("s3.region", "ap-south-1")
	v.SetDefault("s3.bucket", "invoicepad-uploads")
	v.SetDefault("s3.endpoint", "")
	v.SetDefault("s3.max_file_size_mb", 5)
	v.SetDefault("s3.presign_expiry", 3600)

	// Email defaults
	v.SetDefault("email.provider", "noop")
	v.SetDefault("email.region", "ap-south-1")
	v.SetDefault("email.from_address", "noreply@invoicepad.app")
	v.SetDefault("email.from_name", "Invoicepad")

	// Session defaults
	v.SetDefault("session.max_sessions", 1000)
	v.SetDefault("session.max_line_items", 200)
	v.SetDefault("session.idle_ttl", "2h")
	v.SetDefault("session.sweep_interval", "5m")

	// Export defaults
	v.SetDefault("export.filename_prefix", "invoice")

	// Bind environment variables explicitly for nested keys
	envBindings := map[string]string{
		"server.port":            "INVOICEPAD_SERVER_PORT",
		"server.read_timeout":    "INVOICEPAD_SERVER_READ_TIMEOUT",
		"server.write_timeout":   "INVOICEPAD_SERVER_WRITE_TIMEOUT",
		"server.environment":     "INVOICEPAD_SERVER_ENVIRONMENT",
		"log.level":              "INVOICEPAD_LOG_LEVEL",
		"log.format":             "INVOICEPAD_LOG_FORMAT",
		"cors.allowed_origins":   "INVOICEPAD_CORS_ALLOWED_ORIGINS",
		"s3.region":              "INVOICEPAD_S3_REGION",
		"s3.bucket":              "INVOICEPAD_S3_BUCKET",
		"s3.endpoint":            "INVOICEPAD_S3_ENDPOINT",
		"s3.access_key":          "INVOICEPAD_S3_ACCESS_KEY",
		"s3.secret_key":          "INVOICEPAD_S3_SECRET_KEY",
		"s3.max_file_size_mb":    "INVOICEPAD_S3_MAX_FILE_SIZE_MB",
		"s3.presign_expiry":      "INVOICEPAD_S3_PRESIGN_EXPIRY",
		"email.provider":         "INVOICEPAD_EMAIL_PROVIDER",
		"email.region":           "INVOICEPAD_EMAIL_REGION",
		"email.from_address":     "INVOICEPAD_EMAIL_FROM_ADDRESS",
		"email.from_name":        "INVOICEPAD_EMAIL_FROM_NAME",
		"session.max_sessions":   "INVOICEPAD_SESSION_MAX_SESSIONS",
		"session.max_line_items": "INVOICEPAD_SESSION_MAX_LINE_ITEMS",
		"session.idle_ttl":       "INVOICEPAD_SESSION_IDLE_TTL",
		"session.sweep_interval": "INVOICEPAD_SESSION_SWEEP_INTERVAL",
		"export.filename_prefix": "INVOICEPAD_EXPORT_FILENAME_PREFIX",
	}
	for key, env := range envBindings {
		_ = v.BindEnv(key, env)
	}

	cfg := &Config{}

	// Railway/Heroku/Render set a PORT env var. Use it if INVOICEPAD_SERVER_PORT
	// is not explicitly set.
	serverPort := v.GetString("server.port")
	if port := os.Getenv("PORT"); port != "" && os.Getenv("INVOICEPAD_SERVER_PORT") == "" {
		serverPort = ":" + port
	}

	cfg.Server = ServerConfig{
		Port:         serverPort,
		ReadTimeout:  v.GetDuration("server.read_timeout"),
		WriteTimeout: v.GetDuration("server.write_timeout"),
		Environment:  v.GetString("server.environment"),
	}
	cfg.Log = LogConfig{
		Level:  v.GetString("log.level"),
		Format: v.GetString("log.format"),
	}

	// Parse CORS allowed origins from comma-separated string
	var corsOrigins []string
	for _, o := range strings.Split(v.GetString("cors.allowed_origins"), ",") {
		o = strings.TrimSpace(o)
		if o != "" {
			corsOrigins = append(corsOrigins, o)
		}
	}
	cfg.CORS = CORSConfig{
		AllowedOrigins: corsOrigins,
	}

	cfg.S3 = S3Config{
		Region:        v.GetString("s3.region"),
		Bucket:        v.GetString("s3.bucket"),
		Endpoint:      v.GetString("s3.endpoint"),
		AccessKey:     v.GetString("s3.access_key"),
		SecretKey:     v.GetString("s3.secret_key"),
		MaxFileSizeMB: v.GetInt64("s3.max_file_size_mb"),
		PresignExpiry: v.GetInt64("s3.presign_expiry"),
	}
	cfg.Email = EmailConfig{
		Provider:    v.GetString("email.provider"),
		Region:      v.GetString("email.region"),
		FromAddress: v.GetString("email.from_address"),
		FromName:    v.GetString("email.from_name"),
	}
	cfg.Session = SessionConfig{
		MaxSessions:   v.GetInt("session.max_sessions"),
		MaxLineItems:  v.GetInt("session.max_line_items"),
		IdleTTL:       v.GetDuration("session.idle_ttl"),
		SweepInterval: v.GetDuration("session.sweep_interval"),
	}
	cfg.Export = ExportConfig{
		FilenamePrefix: v.GetString("export.filename_prefix"),
	}

	return cfg, nil
}
