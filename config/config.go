package config

import (
	"log"
	"os"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// DatabaseConfig holds the event store connection settings.
type DatabaseConfig struct {
	URL string `env:"DATABASE_URL"`
}

// S3Config holds AWS S3 (or S3-compatible) settings for image storage.
type S3Config struct {
	Bucket          string `env:"S3_BUCKET"`
	Region          string `env:"S3_REGION" envDefault:"us-east-1"`
	AccessKeyID     string `env:"S3_ACCESS_KEY_ID"`
	SecretAccessKey string `env:"S3_SECRET_ACCESS_KEY"`
	Endpoint        string `env:"S3_ENDPOINT"`
	PublicBaseURL   string `env:"S3_PUBLIC_BASE_URL"`
}

// CloudinaryConfig holds Cloudinary upload API credentials.
type CloudinaryConfig struct {
	CloudName string `env:"CLOUDINARY_CLOUD_NAME"`
	APIKey    string `env:"CLOUDINARY_API_KEY"`
	APISecret string `env:"CLOUDINARY_API_SECRET"`
}

// StorageConfig selects and configures the image storage provider.
type StorageConfig struct {
	Provider     string `env:"STORAGE_PROVIDER"`
	Folder       string `env:"STORAGE_FOLDER" envDefault:"portal-aguas"`
	MaxFileBytes int64  `env:"UPLOAD_MAX_FILE_BYTES" envDefault:"5242880"`
	// UploadTimeout bounds one whole image batch.
	UploadTimeout time.Duration `env:"UPLOAD_TIMEOUT" envDefault:"60s"`
	S3            S3Config
	Cloudinary    CloudinaryConfig
}

// AuthConfig holds session signing settings and the optional bootstrap operator.
type AuthConfig struct {
	JWTSecret     string        `env:"AUTH_JWT_SECRET"`
	TokenTTL      time.Duration `env:"AUTH_TOKEN_TTL" envDefault:"12h"`
	AdminEmail    string        `env:"ADMIN_EMAIL"`
	AdminPassword string        `env:"ADMIN_PASSWORD"`
}

// SESConfig holds configuration for AWS SES.
type SESConfig struct {
	Region          string `env:"SES_REGION"`
	AccessKeyID     string `env:"SES_ACCESS_KEY_ID"`
	SecretAccessKey string `env:"SES_SECRET_ACCESS_KEY"`
	// Development only.
	InsecureSkipVerify bool `env:"SES_INSECURE_SKIP_VERIFY"`
}

// MailConfig selects and configures the email provider used for inquiries.
type MailConfig struct {
	Provider     string   `env:"MAIL_PROVIDER"`
	FromAddress  string   `env:"MAIL_FROM_ADDRESS" envDefault:"onboarding@resend.dev"`
	FromName     string   `env:"MAIL_FROM_NAME" envDefault:"Portal das Águas"`
	To           []string `env:"MAIL_TO" envSeparator:","`
	ResendAPIKey string   `env:"RESEND_API_KEY"`
	SES          SESConfig
}

// Config holds all configuration for the application
type Config struct {
	Environment    string        `env:"GO_ENV" envDefault:"development"`
	Port           string        `env:"PORT" envDefault:"8080"`
	LogLevel       string        `env:"LOG_LEVEL" envDefault:"info"`
	AllowedOrigins []string      `env:"CORS_ALLOWED_ORIGINS" envSeparator:","`
	RequestTimeout time.Duration `env:"REQUEST_TIMEOUT" envDefault:"10s"`
	SiteName       string        `env:"SITE_NAME" envDefault:"Portal das Águas"`

	Database DatabaseConfig
	Storage  StorageConfig
	Auth     AuthConfig
	Mail     MailConfig
}

// Load loads configuration from environment variables
// It attempts to load from .env file if not in production
func Load() (*Config, error) {
	env := os.Getenv("GO_ENV")
	if env == "" {
		env = "development"
	}

	// In production we rely on system environment variables only.
	if env != "production" {
		if err := godotenv.Load(); err != nil {
			log.Printf("Warning: .env file not found or couldn't be loaded: %v", err)
		}
	}

	return Parse()
}

// Parse builds a Config from the current process environment without touching .env files.
func Parse() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, err
	}
	cfg.Storage.Provider = strings.ToLower(strings.TrimSpace(cfg.Storage.Provider))
	cfg.Mail.Provider = strings.ToLower(strings.TrimSpace(cfg.Mail.Provider))
	cfg.Mail.To = compact(cfg.Mail.To)
	cfg.AllowedOrigins = compact(cfg.AllowedOrigins)
	return cfg, nil
}

func compact(values []string) []string {
	out := values[:0]
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			out = append(out, v)
		}
	}
	if len(out) == 0 {
		return nil
	}
	return out
}

// DatabaseConfigured reports whether the event store connection string is present.
func (c *Config) DatabaseConfigured() bool {
	return strings.TrimSpace(c.Database.URL) != ""
}

// StorageConfigured reports whether the selected storage provider has every credential it needs.
func (c *Config) StorageConfigured() bool {
	switch c.Storage.Provider {
	case "s3":
		s := c.Storage.S3
		return s.Bucket != "" && s.Region != "" && s.AccessKeyID != "" && s.SecretAccessKey != ""
	case "cloudinary":
		cl := c.Storage.Cloudinary
		return cl.CloudName != "" && cl.APIKey != "" && cl.APISecret != ""
	default:
		return false
	}
}

// AuthConfigured reports whether live sessions can be signed. Live auth also needs the database.
func (c *Config) AuthConfigured() bool {
	return c.Auth.JWTSecret != "" && c.DatabaseConfigured()
}

// MailConfigured reports whether the selected mail provider has credentials and a recipient.
func (c *Config) MailConfigured() bool {
	if len(c.Mail.To) == 0 || c.Mail.FromAddress == "" {
		return false
	}
	switch c.Mail.Provider {
	case "ses":
		s := c.Mail.SES
		return s.Region != "" && s.AccessKeyID != "" && s.SecretAccessKey != ""
	case "resend":
		return c.Mail.ResendAPIKey != ""
	default:
		return false
	}
}

// IsProduction reports whether GO_ENV is production.
func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}
