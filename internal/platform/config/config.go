package config

import (
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Image store backends.
const (
	ImageStoreLocal  = "local"
	ImageStoreGCS    = "gcs"
	ImageStoreMemory = "memory"
)

const defaultJWTSecret = "a-very-secret-key-should-be-longer-and-random"

// Config holds application configuration.
type Config struct {
	DatabaseURL       string
	Port              string
	IsProduction      bool
	EnableDBCheck     bool
	MigrationsPath    string
	JWTSecret         string
	JWTExpiryDuration time.Duration
	JWTIssuer         string

	// Image storage
	ImageStore         string
	ImageStoreDir      string
	GCSBucket          string
	GCSCredentialsFile string
	MaxUploadBytes     int64

	// Aggregation
	ReportTimezone string
	ReportLocation *time.Location

	// HTTP surface
	CORSAllowedOrigins []string
	LoginRateLimit     string
	RateLimitRedisURL  string

	// Entry events
	KafkaBrokers []string
	KafkaTopic   string

	PosthogAPIKey   string
	PosthogEndpoint string
}

// LoadConfig loads configuration from environment variables and .env file if present.
func LoadConfig() (*Config, error) {
	// Attempt to load .env file, ignore error if it doesn't exist
	_ = godotenv.Load()

	v := viper.New()
	setDefaults(v)
	v.AutomaticEnv()

	return fromViper(v)
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("PGSQL_URL", "")
	v.SetDefault("PORT", "8080")
	v.SetDefault("IS_PRODUCTION", false)
	v.SetDefault("ENABLE_DB_CHECK", false)
	v.SetDefault("MIGRATIONS_PATH", "migrations")
	v.SetDefault("JWT_SECRET", defaultJWTSecret)
	v.SetDefault("JWT_EXPIRY_DURATION", "1h")
	v.SetDefault("JWT_ISSUER", "trade-journal-app")
	v.SetDefault("IMAGE_STORE", ImageStoreLocal)
	v.SetDefault("IMAGE_STORE_DIR", "media")
	v.SetDefault("GCS_BUCKET", "")
	v.SetDefault("GCS_CREDENTIALS_FILE", "")
	v.SetDefault("MAX_UPLOAD_BYTES", 10<<20)
	v.SetDefault("REPORT_TIMEZONE", "UTC")
	v.SetDefault("CORS_ALLOWED_ORIGINS", "http://localhost:3000")
	v.SetDefault("LOGIN_RATE_LIMIT", "5-M")
	v.SetDefault("RATE_LIMIT_REDIS_URL", "")
	v.SetDefault("KAFKA_BROKERS", "")
	v.SetDefault("KAFKA_TOPIC", "journal-entry-events")
	v.SetDefault("POSTHOG_API_KEY", "")
	v.SetDefault("POSTHOG_ENDPOINT", "")
}

func fromViper(v *viper.Viper) (*Config, error) {
	cfg := &Config{
		DatabaseURL:        v.GetString("PGSQL_URL"),
		Port:               v.GetString("PORT"),
		IsProduction:       v.GetBool("IS_PRODUCTION"),
		EnableDBCheck:      v.GetBool("ENABLE_DB_CHECK"),
		MigrationsPath:     v.GetString("MIGRATIONS_PATH"),
		JWTSecret:          v.GetString("JWT_SECRET"),
		JWTIssuer:          v.GetString("JWT_ISSUER"),
		ImageStore:         strings.ToLower(strings.TrimSpace(v.GetString("IMAGE_STORE"))),
		ImageStoreDir:      v.GetString("IMAGE_STORE_DIR"),
		GCSBucket:          v.GetString("GCS_BUCKET"),
		GCSCredentialsFile: v.GetString("GCS_CREDENTIALS_FILE"),
		MaxUploadBytes:     v.GetInt64("MAX_UPLOAD_BYTES"),
		ReportTimezone:     v.GetString("REPORT_TIMEZONE"),
		CORSAllowedOrigins: splitList(v.GetString("CORS_ALLOWED_ORIGINS")),
		LoginRateLimit:     v.GetString("LOGIN_RATE_LIMIT"),
		RateLimitRedisURL:  v.GetString("RATE_LIMIT_REDIS_URL"),
		KafkaBrokers:       splitList(v.GetString("KAFKA_BROKERS")),
		KafkaTopic:         v.GetString("KAFKA_TOPIC"),
		PosthogAPIKey:      v.GetString("POSTHOG_API_KEY"),
		PosthogEndpoint:    v.GetString("POSTHOG_ENDPOINT"),
	}

	if cfg.DatabaseURL == "" {
		log.Println("Warning: PGSQL_URL environment variable not set.")
	}

	if cfg.Port == "" {
		cfg.Port = "8080"
		log.Printf("Warning: PORT environment variable not set. Defaulting to %s\n", cfg.Port)
	}

	if cfg.JWTSecret == "" || cfg.JWTSecret == defaultJWTSecret {
		if cfg.IsProduction {
			return nil, fmt.Errorf("JWT_SECRET must be set in production")
		}
		cfg.JWTSecret = defaultJWTSecret
		log.Println("Warning: JWT_SECRET environment variable not set. Using default insecure key.")
	}

	jwtExpiryStr := v.GetString("JWT_EXPIRY_DURATION")
	jwtExpiryDuration, err := time.ParseDuration(jwtExpiryStr)
	if err != nil || jwtExpiryDuration <= 0 {
		jwtExpiryDuration = time.Hour
		log.Printf("Warning: Invalid value for JWT_EXPIRY_DURATION ('%s'). Defaulting to %s.\n", jwtExpiryStr, jwtExpiryDuration)
	}
	cfg.JWTExpiryDuration = jwtExpiryDuration

	switch cfg.ImageStore {
	case ImageStoreLocal, ImageStoreMemory:
	case ImageStoreGCS:
		if cfg.GCSBucket == "" {
			return nil, fmt.Errorf("GCS_BUCKET is required when IMAGE_STORE=%s", ImageStoreGCS)
		}
	default:
		return nil, fmt.Errorf("unsupported IMAGE_STORE %q (want %s, %s or %s)", cfg.ImageStore, ImageStoreLocal, ImageStoreGCS, ImageStoreMemory)
	}

	if cfg.MaxUploadBytes <= 0 {
		cfg.MaxUploadBytes = 10 << 20
		log.Printf("Warning: Invalid value for MAX_UPLOAD_BYTES. Defaulting to %d.\n", cfg.MaxUploadBytes)
	}

	if cfg.ReportTimezone == "" {
		cfg.ReportTimezone = "UTC"
	}
	cfg.ReportLocation, err = time.LoadLocation(cfg.ReportTimezone)
	if err != nil {
		return nil, fmt.Errorf("invalid REPORT_TIMEZONE %q: %w", cfg.ReportTimezone, err)
	}

	if len(cfg.CORSAllowedOrigins) == 0 {
		cfg.CORSAllowedOrigins = []string{"http://localhost:3000"}
		log.Println("Warning: CORS_ALLOWED_ORIGINS is empty. Defaulting to http://localhost:3000.")
	}

	if cfg.LoginRateLimit == "" {
		cfg.LoginRateLimit = "5-M"
	}

	return cfg, nil
}

// splitList splits a comma separated value, dropping empty items.
func splitList(raw string) []string {
	var out []string
	for _, item := range strings.Split(raw, ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}
