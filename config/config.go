package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// Cart storage backends.
const (
	StorageFile  = "file"
	StorageRedis = "redis"
	StorageSQL   = "sql"
)

// Catalog sources.
const (
	CatalogStatic    = "static"
	CatalogFirestore = "firestore"
)

type Config struct {
	Port        string `envconfig:"PORT" default:"8080"`
	Env         string `envconfig:"APP_ENV" default:"development"`
	StoreID     string `envconfig:"STORE_ID" default:"eastside-longboards"`
	FrontendURL string `envconfig:"FRONTEND_URL"`

	LogLevel  string `envconfig:"LOG_LEVEL" default:"info"`
	LogFormat string `envconfig:"LOG_FORMAT" default:"json"`

	SessionSecret string        `envconfig:"SESSION_SECRET"`
	SessionTTL    time.Duration `envconfig:"SESSION_TTL" default:"720h"`
	CartIdleTTL   time.Duration `envconfig:"CART_IDLE_TTL" default:"30m"`

	CartStorage    string        `envconfig:"CART_STORAGE" default:"file"`
	CartStorageDir string        `envconfig:"CART_STORAGE_DIR" default:"./data/carts"`
	RedisURL       string        `envconfig:"REDIS_URL"`
	CartRedisTTL   time.Duration `envconfig:"CART_REDIS_TTL" default:"0"`
	DatabaseDriver string        `envconfig:"DATABASE_DRIVER" default:"postgres"`
	DatabaseURL    string        `envconfig:"DATABASE_URL"`

	CatalogSource         string `envconfig:"CATALOG_SOURCE" default:"static"`
	FirebaseCredentials   string `envconfig:"GOOGLE_APPLICATION_CREDENTIALS"`
	FirebaseProjectID     string `envconfig:"FIREBASE_PROJECT_ID"`
	FirebaseStorageBucket string `envconfig:"FIREBASE_STORAGE_BUCKET"`
	FunctionsBaseURL      string `envconfig:"FUNCTIONS_BASE_URL"`
}

func LoadEnv() error {
	// A missing .env is fine: in production the variables are set directly.
	_ = godotenv.Load()
	return nil
}

// Load reads the typed configuration from the environment.
func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	cfg.CartStorage = strings.ToLower(strings.TrimSpace(cfg.CartStorage))
	cfg.CatalogSource = strings.ToLower(strings.TrimSpace(cfg.CatalogSource))
	return &cfg, nil
}

// UsesFirebase reports whether any component needs the Firebase app.
func (c *Config) UsesFirebase() bool {
	return c.CatalogSource == CatalogFirestore || c.FirebaseStorageBucket != "" || c.FunctionsBaseURL != ""
}

// ValidateEnv checks that critical settings for the selected backends are present.
// The returned warnings name optional settings that are missing.
func (c *Config) ValidateEnv() (warnings []string, err error) {
	var missing []string

	if c.SessionSecret == "" {
		missing = append(missing, "SESSION_SECRET")
	}

	switch c.CartStorage {
	case StorageFile:
		if c.CartStorageDir == "" {
			missing = append(missing, "CART_STORAGE_DIR")
		}
	case StorageRedis:
		if c.RedisURL == "" {
			missing = append(missing, "REDIS_URL")
		}
	case StorageSQL:
		if c.DatabaseURL == "" && c.DatabaseDriver != "sqlite" {
			missing = append(missing, "DATABASE_URL")
		}
	default:
		return nil, fmt.Errorf("unsupported CART_STORAGE %q (want file, redis or sql)", c.CartStorage)
	}

	switch c.CatalogSource {
	case CatalogStatic, CatalogFirestore:
	default:
		return nil, fmt.Errorf("unsupported CATALOG_SOURCE %q (want static or firestore)", c.CatalogSource)
	}

	if len(missing) > 0 {
		return nil, fmt.Errorf("critical environment variables not set: %v", missing)
	}

	if c.FirebaseStorageBucket == "" {
		warnings = append(warnings, "FIREBASE_STORAGE_BUCKET not set - image uploads are disabled")
	}
	if c.FunctionsBaseURL == "" {
		warnings = append(warnings, "FUNCTIONS_BASE_URL not set - admin product writes are disabled")
	}
	if c.UsesFirebase() && c.FirebaseCredentials == "" {
		warnings = append(warnings, "GOOGLE_APPLICATION_CREDENTIALS not set - using default credentials")
	}
	if c.FrontendURL == "" {
		warnings = append(warnings, "FRONTEND_URL not set - CORS may not work correctly")
	}
	return warnings, nil
}

func GetEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}
