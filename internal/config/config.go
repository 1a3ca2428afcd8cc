package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/caarlos0/env/v10"
)

// Config holds the environment driven configuration for the admin service.
type Config struct {
	// Service Configuration
	ServiceName     string        `env:"SERVICE_NAME" envDefault:"admin-api"`
	Environment     string        `env:"ENVIRONMENT" envDefault:"development"`
	HTTPPort        int           `env:"ADMIN_API_PORT" envDefault:"8290"`
	LogLevel        string        `env:"ADMIN_LOG_LEVEL" envDefault:"info"`
	EnableTracing   bool          `env:"ENABLE_TRACING" envDefault:"false"`
	OTLPEndpoint    string        `env:"OTEL_EXPORTER_OTLP_ENDPOINT" envDefault:""`
	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT" envDefault:"10s"`

	// Database (required, no default)
	DBPostgresqlWriteDSN string `env:"DB_POSTGRESQL_WRITE_DSN,notEmpty"`

	// Database Connection Pool
	DBMaxIdleConns int           `env:"DB_MAX_IDLE_CONNS" envDefault:"5"`
	DBMaxOpenConns int           `env:"DB_MAX_OPEN_CONNS" envDefault:"15"`
	DBConnLifetime time.Duration `env:"DB_CONN_MAX_LIFETIME" envDefault:"30m"`

	// S3 Storage Configuration
	S3Endpoint     string `env:"MEDIA_S3_ENDPOINT"`
	S3Region       string `env:"MEDIA_S3_REGION" envDefault:"us-west-2"`
	S3Bucket       string `env:"MEDIA_S3_BUCKET"`
	S3AccessKeyID  string `env:"MEDIA_S3_ACCESS_KEY_ID"`
	S3SecretKey    string `env:"MEDIA_S3_SECRET_ACCESS_KEY"`
	S3UsePathStyle bool   `env:"MEDIA_S3_USE_PATH_STYLE" envDefault:"true"`

	// Media limits and grant expiry
	MaxFileBytes  int64         `env:"MEDIA_MAX_FILE_BYTES" envDefault:"10485760"`
	MaxTotalBytes int64         `env:"MEDIA_MAX_TOTAL_BYTES" envDefault:"52428800"`
	ReadGrantTTL  time.Duration `env:"MEDIA_READ_GRANT_TTL" envDefault:"24h"`
	WriteGrantTTL time.Duration `env:"MEDIA_WRITE_GRANT_TTL" envDefault:"1h"`

	// Allowed MIME types per media kind
	AllowedImageTypes    []string `env:"MEDIA_ALLOWED_IMAGE_TYPES" envSeparator:"," envDefault:"image/jpeg,image/png,image/webp,image/gif"`
	AllowedVideoTypes    []string `env:"MEDIA_ALLOWED_VIDEO_TYPES" envSeparator:"," envDefault:"video/mp4,video/quicktime"`
	AllowedDocumentTypes []string `env:"MEDIA_ALLOWED_DOCUMENT_TYPES" envSeparator:"," envDefault:"application/pdf"`

	// Scan/thumbnail job queue
	AMQPURL            string `env:"AMQP_URL"`
	ScanQueueName      string `env:"MEDIA_SCAN_QUEUE" envDefault:"media.scan"`
	ThumbnailQueueName string `env:"MEDIA_THUMBNAIL_QUEUE" envDefault:"media.thumbnail"`

	// Notification (SMTP) configuration
	SMTPHost         string        `env:"SMTP_HOST"`
	SMTPPort         int           `env:"SMTP_PORT" envDefault:"587"`
	SMTPUsername     string        `env:"SMTP_USERNAME"`
	SMTPPassword     string        `env:"SMTP_PASSWORD"`
	SMTPFrom         string        `env:"SMTP_FROM" envDefault:"noreply@augeo.app"`
	RetryMaxAttempts uint          `env:"NOTIFY_RETRY_MAX_ATTEMPTS" envDefault:"3"`
	RetryBaseDelay   time.Duration `env:"NOTIFY_RETRY_BASE_DELAY" envDefault:"1s"`

	// Invitations
	FrontendAdminURL  string        `env:"FRONTEND_ADMIN_URL" envDefault:"https://admin.augeo.app"`
	InvitationExpiry  time.Duration `env:"INVITATION_EXPIRY" envDefault:"168h"`
	InvitationSignKey string        `env:"INVITATION_SIGNING_KEY"`

	// Authentication
	AuthEnabled bool   `env:"AUTH_ENABLED" envDefault:"false"`
	AuthIssuer  string `env:"AUTH_ISSUER"`
	AuthJWKSURL string `env:"AUTH_JWKS_URL"`
}

// Load parses environment variables into Config.
func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse env config: %w", err)
	}

	cfg.S3Bucket = strings.TrimSpace(cfg.S3Bucket)
	cfg.S3AccessKeyID = strings.TrimSpace(cfg.S3AccessKeyID)
	cfg.S3SecretKey = strings.TrimSpace(cfg.S3SecretKey)
	cfg.S3Endpoint = strings.TrimSpace(cfg.S3Endpoint)
	if cfg.MaxFileBytes <= 0 {
		cfg.MaxFileBytes = 10 * 1024 * 1024
	}
	if cfg.MaxTotalBytes <= 0 {
		cfg.MaxTotalBytes = 50 * 1024 * 1024
	}
	if cfg.RetryMaxAttempts == 0 {
		cfg.RetryMaxAttempts = 3
	}
	if cfg.AuthEnabled {
		if strings.TrimSpace(cfg.AuthIssuer) == "" {
			return nil, fmt.Errorf("AUTH_ISSUER is required when AUTH_ENABLED is true")
		}
		if strings.TrimSpace(cfg.AuthJWKSURL) == "" {
			return nil, fmt.Errorf("AUTH_JWKS_URL is required when AUTH_ENABLED is true")
		}
	}
	return cfg, nil
}

// GetDatabaseWriteDSN returns the write database connection string.
func (c *Config) GetDatabaseWriteDSN() string {
	return c.DBPostgresqlWriteDSN
}

// Addr returns the HTTP listen address.
func (c *Config) Addr() string {
	return fmt.Sprintf(":%d", c.HTTPPort)
}

// AllowedTypes returns the MIME allow-set for a media kind, or nil when the
// kind is unknown.
func (c *Config) AllowedTypes(mediaType string) []string {
	switch mediaType {
	case "image":
		return c.AllowedImageTypes
	case "video":
		return c.AllowedVideoTypes
	case "flyer":
		return c.AllowedDocumentTypes
	default:
		return nil
	}
}
