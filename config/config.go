package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"
)

const VERSION = "1.4"

type Config struct {
	Server          ServerConfig
	Database        DatabaseConfig
	SMTP            SMTPConfig
	Storage         StorageConfig
	Editor          EditorConfig
	Environment     string
	LogLevel        string
	APIEndpoint     string
	CORSAllowOrigin string
	Version         string
}

type ServerConfig struct {
	Port int
	Host string
	SSL  SSLConfig

	// ShutdownTimeout is how long in-flight requests get to finish
	ShutdownTimeout time.Duration
}

type SSLConfig struct {
	Enabled  bool
	CertFile string
	KeyFile  string
}

type DatabaseConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	DBName   string
	SSLMode  string
}

type SMTPConfig struct {
	Host      string
	Port      int
	Username  string
	Password  string
	UseTLS    bool
	FromEmail string
	FromName  string

	// Consecutive send failures before the relay is skipped for BreakerCooldown
	BreakerThreshold int
	BreakerCooldown  time.Duration
}

// StorageConfig points image uploads at an S3-compatible bucket.
// Uploads are disabled when Bucket is empty.
type StorageConfig struct {
	Endpoint  string
	Region    string
	Bucket    string
	AccessKey string
	SecretKey string
	PublicURL string
	PathStyle bool
	Prefix    string
}

// Enabled reports whether image uploads are configured
func (s StorageConfig) Enabled() bool {
	return s.Bucket != ""
}

type EditorConfig struct {
	HistoryLimit      int
	SessionTTL        time.Duration
	DefaultWidth      int
	DefaultBackground string
	RenderTimeout     time.Duration
	MaxTemplateSize   int
	TestSendLimit     int
	UploadLimit       int
	RateWindow        time.Duration
}

// LoadOptions contains options for loading configuration
type LoadOptions struct {
	EnvFile string // Optional environment file to load (e.g., ".env", ".env.test")
}

// Load loads the configuration with default options
func Load() (*Config, error) {
	// Try to load .env file but don't require it
	return LoadWithOptions(LoadOptions{EnvFile: ".env"})
}

// LoadWithOptions loads the configuration with the specified options
func LoadWithOptions(opts LoadOptions) (*Config, error) {
	v := viper.New()

	// Set default values
	v.SetDefault("SERVER_PORT", 8080)
	v.SetDefault("SERVER_HOST", "0.0.0.0")
	v.SetDefault("SERVER_SHUTDOWN_TIMEOUT", "20s")
	v.SetDefault("DB_HOST", "localhost")
	v.SetDefault("DB_PORT", 5432)
	v.SetDefault("DB_USER", "postgres")
	v.SetDefault("DB_PASSWORD", "postgres")
	v.SetDefault("DB_NAME", "newsletter")
	v.SetDefault("DB_SSLMODE", "require")
	v.SetDefault("ENVIRONMENT", "production")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("API_ENDPOINT", "http://localhost:8080")
	v.SetDefault("CORS_ALLOW_ORIGIN", "*")
	v.SetDefault("VERSION", VERSION)

	// SMTP defaults
	v.SetDefault("SMTP_PORT", 587)
	v.SetDefault("SMTP_FROM_NAME", "Newsletter")
	v.SetDefault("SMTP_BREAKER_THRESHOLD", 3)
	v.SetDefault("SMTP_BREAKER_COOLDOWN", "1m")

	// S3 defaults
	v.SetDefault("S3_REGION", "us-east-1")
	v.SetDefault("S3_PREFIX", "email-images")

	// Editor defaults
	v.SetDefault("EDITOR_HISTORY_LIMIT", 60)
	v.SetDefault("EDITOR_SESSION_TTL", "2h")
	v.SetDefault("EDITOR_DEFAULT_WIDTH", 600)
	v.SetDefault("EDITOR_DEFAULT_BACKGROUND", "#f4f4f7")
	v.SetDefault("EDITOR_RENDER_TIMEOUT", "5s")
	v.SetDefault("EDITOR_MAX_TEMPLATE_SIZE", 512*1024)
	v.SetDefault("EDITOR_TEST_SEND_LIMIT", 5)
	v.SetDefault("EDITOR_UPLOAD_LIMIT", 30)
	v.SetDefault("EDITOR_RATE_WINDOW", "10m")

	// Load environment file if specified
	if opts.EnvFile != "" {
		v.SetConfigName(opts.EnvFile)
		v.SetConfigType("env")

		currentPath, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("error getting current directory: %w", err)
		}

		v.AddConfigPath(currentPath)

		if err := v.ReadInConfig(); err != nil {
			// It's okay if config file doesn't exist
			if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
				return nil, fmt.Errorf("error reading config file: %w", err)
			}
		}
	}

	// Read environment variables
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	config := &Config{
		Server: ServerConfig{
			Port: v.GetInt("SERVER_PORT"),
			Host: v.GetString("SERVER_HOST"),
			SSL: SSLConfig{
				Enabled:  v.GetBool("SSL_ENABLED"),
				CertFile: v.GetString("SSL_CERT_FILE"),
				KeyFile:  v.GetString("SSL_KEY_FILE"),
			},

			ShutdownTimeout: v.GetDuration("SERVER_SHUTDOWN_TIMEOUT"),
		},
		Database: DatabaseConfig{
			Host:     v.GetString("DB_HOST"),
			Port:     v.GetInt("DB_PORT"),
			User:     v.GetString("DB_USER"),
			Password: v.GetString("DB_PASSWORD"),
			DBName:   v.GetString("DB_NAME"),
			SSLMode:  v.GetString("DB_SSLMODE"),
		},
		SMTP: SMTPConfig{
			Host:      v.GetString("SMTP_HOST"),
			Port:      v.GetInt("SMTP_PORT"),
			Username:  v.GetString("SMTP_USERNAME"),
			Password:  v.GetString("SMTP_PASSWORD"),
			UseTLS:    v.GetBool("SMTP_USE_TLS"),
			FromEmail: v.GetString("SMTP_FROM_EMAIL"),
			FromName:  v.GetString("SMTP_FROM_NAME"),

			BreakerThreshold: v.GetInt("SMTP_BREAKER_THRESHOLD"),
			BreakerCooldown:  v.GetDuration("SMTP_BREAKER_COOLDOWN"),
		},
		Storage: StorageConfig{
			Endpoint:  v.GetString("S3_ENDPOINT"),
			Region:    v.GetString("S3_REGION"),
			Bucket:    v.GetString("S3_BUCKET"),
			AccessKey: v.GetString("S3_ACCESS_KEY"),
			SecretKey: v.GetString("S3_SECRET_KEY"),
			PublicURL: v.GetString("S3_PUBLIC_URL"),
			PathStyle: v.GetBool("S3_PATH_STYLE"),
			Prefix:    v.GetString("S3_PREFIX"),
		},
		Editor: EditorConfig{
			HistoryLimit:      v.GetInt("EDITOR_HISTORY_LIMIT"),
			SessionTTL:        v.GetDuration("EDITOR_SESSION_TTL"),
			DefaultWidth:      v.GetInt("EDITOR_DEFAULT_WIDTH"),
			DefaultBackground: v.GetString("EDITOR_DEFAULT_BACKGROUND"),
			RenderTimeout:     v.GetDuration("EDITOR_RENDER_TIMEOUT"),
			MaxTemplateSize:   v.GetInt("EDITOR_MAX_TEMPLATE_SIZE"),
			TestSendLimit:     v.GetInt("EDITOR_TEST_SEND_LIMIT"),
			UploadLimit:       v.GetInt("EDITOR_UPLOAD_LIMIT"),
			RateWindow:        v.GetDuration("EDITOR_RATE_WINDOW"),
		},
		Environment:     v.GetString("ENVIRONMENT"),
		LogLevel:        v.GetString("LOG_LEVEL"),
		APIEndpoint:     v.GetString("API_ENDPOINT"),
		CORSAllowOrigin: v.GetString("CORS_ALLOW_ORIGIN"),
		Version:         v.GetString("VERSION"),
	}

	if err := config.validate(); err != nil {
		return nil, err
	}

	return config, nil
}

func (c *Config) validate() error {
	if c.Editor.HistoryLimit < 1 {
		return fmt.Errorf("EDITOR_HISTORY_LIMIT must be positive, got %d", c.Editor.HistoryLimit)
	}
	if c.Editor.SessionTTL < time.Minute {
		return fmt.Errorf("EDITOR_SESSION_TTL must be at least 1m, got %s", c.Editor.SessionTTL)
	}
	if c.Server.SSL.Enabled && (c.Server.SSL.CertFile == "" || c.Server.SSL.KeyFile == "") {
		return fmt.Errorf("SSL_CERT_FILE and SSL_KEY_FILE are required when SSL_ENABLED is set")
	}
	if !c.IsDevelopment() && c.SMTP.Host != "" && c.SMTP.FromEmail == "" {
		return fmt.Errorf("SMTP_FROM_EMAIL is required when SMTP_HOST is set")
	}
	return nil
}

// IsDevelopment returns true if the environment is set to development
func (c *Config) IsDevelopment() bool {
	return c.Environment == "development"
}

func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}
