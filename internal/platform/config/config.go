package config

import (
	"fmt"
	"log"
	"strings"
	"time"
	_ "time/tzdata"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	StoreDriverPostgres = "postgres"
	StoreDriverMemory   = "memory"
)

// Config holds application configuration.
type Config struct {
	Port         string
	IsProduction bool
	LogLevel     string

	StoreDriver    string
	DatabaseURL    string
	EnableDBCheck  bool
	MigrationsPath string

	JWTSecret string
	JWTIssuer string

	CORSAllowedOrigins []string
	RateLimit          string
	PosthogAPIKey      string

	RedisAddress  string
	RedisPassword string
	RedisDB       int

	PubSubProjectID string
	PubSubTopic     string

	GCSBucket          string
	GCSCredentialsJSON string

	// BusinessLocation decides which calendar day "today" is for shifts.
	BusinessLocation  *time.Location
	ShiftPollInterval time.Duration
	ShiftLockTTL      time.Duration
	ProjectionDays    int
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("PORT", "8080")
	v.SetDefault("IS_PRODUCTION", false)
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("STORE_DRIVER", StoreDriverPostgres)
	v.SetDefault("PGSQL_URL", "")
	v.SetDefault("ENABLE_DB_CHECK", false)
	v.SetDefault("MIGRATIONS_PATH", "file://migrations")
	v.SetDefault("JWT_SECRET", "")
	v.SetDefault("JWT_ISSUER", "pdv-backoffice")
	v.SetDefault("CORS_ALLOWED_ORIGINS", "http://localhost:3000")
	v.SetDefault("RATE_LIMIT", "300-M")
	v.SetDefault("POSTHOG_API_KEY", "")
	v.SetDefault("REDIS_ADDRESS", "")
	v.SetDefault("REDIS_PASSWORD", "")
	v.SetDefault("REDIS_DB", 0)
	v.SetDefault("PUBSUB_PROJECT_ID", "")
	v.SetDefault("PUBSUB_TOPIC", "pdv-events")
	v.SetDefault("GCS_BUCKET", "")
	v.SetDefault("GCS_CREDENTIALS_JSON", "")
	v.SetDefault("BUSINESS_TIMEZONE", "America/Sao_Paulo")
	v.SetDefault("SHIFT_POLL_INTERVAL", "10s")
	v.SetDefault("SHIFT_LOCK_TTL", "15s")
	v.SetDefault("PROJECTION_DAYS", 30)
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

func fromViper(v *viper.Viper) (*Config, error) {
	cfg := &Config{
		Port:               v.GetString("PORT"),
		IsProduction:       v.GetBool("IS_PRODUCTION"),
		LogLevel:           strings.ToLower(v.GetString("LOG_LEVEL")),
		StoreDriver:        strings.ToLower(v.GetString("STORE_DRIVER")),
		DatabaseURL:        v.GetString("PGSQL_URL"),
		EnableDBCheck:      v.GetBool("ENABLE_DB_CHECK"),
		MigrationsPath:     v.GetString("MIGRATIONS_PATH"),
		JWTSecret:          v.GetString("JWT_SECRET"),
		JWTIssuer:          v.GetString("JWT_ISSUER"),
		CORSAllowedOrigins: splitList(v.GetString("CORS_ALLOWED_ORIGINS")),
		RateLimit:          v.GetString("RATE_LIMIT"),
		PosthogAPIKey:      v.GetString("POSTHOG_API_KEY"),
		RedisAddress:       v.GetString("REDIS_ADDRESS"),
		RedisPassword:      v.GetString("REDIS_PASSWORD"),
		RedisDB:            v.GetInt("REDIS_DB"),
		PubSubProjectID:    v.GetString("PUBSUB_PROJECT_ID"),
		PubSubTopic:        v.GetString("PUBSUB_TOPIC"),
		GCSBucket:          v.GetString("GCS_BUCKET"),
		GCSCredentialsJSON: v.GetString("GCS_CREDENTIALS_JSON"),
		ProjectionDays:     v.GetInt("PROJECTION_DAYS"),
	}

	if cfg.Port == "" {
		cfg.Port = "8080"
		log.Printf("Warning: PORT environment variable not set. Defaulting to %s\n", cfg.Port)
	}

	switch cfg.StoreDriver {
	case StoreDriverPostgres:
		if cfg.DatabaseURL == "" {
			return nil, fmt.Errorf("PGSQL_URL is required when STORE_DRIVER=%s", StoreDriverPostgres)
		}
	case StoreDriverMemory:
		log.Println("Warning: STORE_DRIVER=memory, data will not survive a restart.")
	default:
		return nil, fmt.Errorf("unknown STORE_DRIVER %q (want %s or %s)", cfg.StoreDriver, StoreDriverPostgres, StoreDriverMemory)
	}

	if cfg.JWTSecret == "" {
		if cfg.IsProduction {
			return nil, fmt.Errorf("JWT_SECRET is required in production")
		}
		cfg.JWTSecret = "a-very-secret-key-should-be-longer-and-random" // !! CHANGE IN PRODUCTION !!
		log.Println("Warning: JWT_SECRET environment variable not set. Using default insecure key.")
	}

	loc, err := time.LoadLocation(v.GetString("BUSINESS_TIMEZONE"))
	if err != nil {
		return nil, fmt.Errorf("invalid BUSINESS_TIMEZONE: %w", err)
	}
	cfg.BusinessLocation = loc

	if cfg.ShiftPollInterval, err = parsePositiveDuration(v, "SHIFT_POLL_INTERVAL"); err != nil {
		return nil, err
	}
	if cfg.ShiftLockTTL, err = parsePositiveDuration(v, "SHIFT_LOCK_TTL"); err != nil {
		return nil, err
	}

	if cfg.ProjectionDays <= 0 {
		log.Printf("Warning: invalid PROJECTION_DAYS (%d). Defaulting to 30.\n", cfg.ProjectionDays)
		cfg.ProjectionDays = 30
	}

	if cfg.RedisAddress == "" {
		log.Println("Warning: REDIS_ADDRESS not set. Terminal locks and poll caching are disabled.")
	}
	if cfg.PubSubProjectID == "" {
		log.Println("Warning: PUBSUB_PROJECT_ID not set. Domain events will only be logged.")
	}
	if cfg.GCSBucket == "" {
		log.Println("Warning: GCS_BUCKET not set. Attachment uploads will be unavailable.")
	}

	return cfg, nil
}

func parsePositiveDuration(v *viper.Viper, key string) (time.Duration, error) {
	raw := v.GetString(key)
	d, err := time.ParseDuration(raw)
	if err != nil || d <= 0 {
		return 0, fmt.Errorf("invalid value for %s (%q)", key, raw)
	}
	return d, nil
}

func splitList(raw string) []string {
	var out []string
	for _, item := range strings.Split(raw, ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}
