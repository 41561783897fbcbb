package config

import (
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Store drivers accepted in STORE_DRIVER.
const (
	StoreMemory   = "memory"
	StoreFile     = "file"
	StoreSQLite   = "sqlite"
	StorePostgres = "postgres"
	StoreRedis    = "redis"
)

const developmentJWTSecret = "deptevents-dev-secret-do-not-use-in-production"

// MailConfig holds mail delivery settings (MAIL_* variables).
type MailConfig struct {
	Provider    string `env:"PROVIDER" envDefault:"noop"`
	FromAddress string `env:"FROM_ADDRESS" envDefault:"events@localhost"`
	FromName    string `env:"FROM_NAME" envDefault:"Department Events"`
	// Recipients maps department code to the address that receives its announcements,
	// e.g. MAIL_RECIPIENTS=CS:hod-cs@college.edu,EE:hod-ee@college.edu
	Recipients map[string]string `env:"RECIPIENTS"`
}

// AWSConfig holds SES credentials (AWS_* variables).
type AWSConfig struct {
	Region             string `env:"REGION" envDefault:"us-east-1"`
	AccessKeyID        string `env:"ACCESS_KEY_ID"`
	SecretAccessKey    string `env:"SECRET_ACCESS_KEY"`
	InsecureSkipVerify bool   `env:"SES_INSECURE_SKIP_VERIFY"`
}

// Config holds all configuration for the application
type Config struct {
	Environment string `env:"GO_ENV" envDefault:"development"`
	Port        string `env:"PORT" envDefault:"8080"`
	LogLevel    string `env:"LOG_LEVEL" envDefault:"info"`
	Timezone    string `env:"TIMEZONE" envDefault:"Local"`

	StoreDriver string `env:"STORE_DRIVER" envDefault:"sqlite"`
	DBUrl       string `env:"DATABASE_URL"`
	SQLitePath  string `env:"SQLITE_PATH" envDefault:"./data/deptevents.db"`
	RedisURL    string `env:"REDIS_URL"`
	RedisPrefix string `env:"REDIS_PREFIX" envDefault:"deptevents:"`
	DataFile    string `env:"DATA_FILE" envDefault:"./data/deptevents.json"`

	JWTSecret       string        `env:"JWT_SECRET"`
	JWTExpiry       time.Duration `env:"JWT_EXPIRY" envDefault:"12h"`
	CredentialsFile string        `env:"CREDENTIALS_FILE"`

	CORSOrigins    []string      `env:"CORS_ORIGINS" envSeparator:","`
	LoginRateLimit float64       `env:"LOGIN_RATE_LIMIT" envDefault:"0.2"`
	LoginRateBurst int           `env:"LOGIN_RATE_BURST" envDefault:"5"`
	MaxUploadMB    int64         `env:"MAX_UPLOAD_MB" envDefault:"25"`
	RequestTimeout time.Duration `env:"REQUEST_TIMEOUT" envDefault:"10s"`
	ReminderCron   string        `env:"REMINDER_CRON" envDefault:"0 7 * * *"`

	Mail MailConfig `envPrefix:"MAIL_"`
	AWS  AWSConfig  `envPrefix:"AWS_"`
}

// Load loads configuration from environment variables
// It attempts to load from .env file if not in production
func Load() (*Config, error) {
	goEnv := os.Getenv("GO_ENV")
	if goEnv == "" {
		goEnv = "development"
	}

	// In production the environment is authoritative and .env might not exist
	if goEnv != "production" {
		if err := godotenv.Load(); err != nil {
			log.Printf("Warning: .env file not found or couldn't be loaded: %v", err)
		}
	}

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	switch c.StoreDriver {
	case StoreMemory, StoreFile, StoreSQLite:
	case StorePostgres:
		if c.DBUrl == "" {
			return fmt.Errorf("DATABASE_URL is required when STORE_DRIVER=%s", StorePostgres)
		}
	case StoreRedis:
		if c.RedisURL == "" {
			return fmt.Errorf("REDIS_URL is required when STORE_DRIVER=%s", StoreRedis)
		}
	default:
		return fmt.Errorf("unknown STORE_DRIVER %q", c.StoreDriver)
	}

	if c.JWTSecret == "" {
		if c.IsProduction() {
			return fmt.Errorf("JWT_SECRET is required in production")
		}
		c.JWTSecret = developmentJWTSecret
	}
	if c.JWTExpiry <= 0 {
		return fmt.Errorf("JWT_EXPIRY must be positive, got %s", c.JWTExpiry)
	}
	if c.MaxUploadMB <= 0 {
		return fmt.Errorf("MAX_UPLOAD_MB must be positive, got %d", c.MaxUploadMB)
	}

	recipients := make(map[string]string, len(c.Mail.Recipients))
	for dept, addr := range c.Mail.Recipients {
		recipients[strings.ToUpper(strings.TrimSpace(dept))] = strings.TrimSpace(addr)
	}
	c.Mail.Recipients = recipients
	return nil
}

// IsProduction reports whether GO_ENV is "production".
func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

// Location resolves TIMEZONE; tab classification and reminders use it as "local time".
func (c *Config) Location() (*time.Location, error) {
	if c.Timezone == "" || c.Timezone == "Local" {
		return time.Local, nil
	}
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return nil, fmt.Errorf("load TIMEZONE %q: %w", c.Timezone, err)
	}
	return loc, nil
}

// MaxUploadBytes is the multipart body limit for event forms.
func (c *Config) MaxUploadBytes() int64 {
	return c.MaxUploadMB << 20
}
