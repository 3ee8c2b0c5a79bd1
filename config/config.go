package config

import (
	"errors"
	"io/fs"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// DefaultJWKSURL serves the public keys Firebase signs ID tokens with.
const DefaultJWKSURL = "https://www.googleapis.com/service_accounts/v1/jwk/securetoken@system.gserviceaccount.com"

// Production origins are always allowed; development origins are appended
// outside production.
var (
	productionOrigins  = []string{"https://unifriend.in", "https://www.unifriend.in"}
	developmentOrigins = []string{
		"http://localhost:3000",
		"http://localhost:9002",
		"http://127.0.0.1:3000",
		"http://127.0.0.1:9002",
	}
)

// This function will Load the ENVIRONMENT VARIABLES from .env if GO_ENV variable is not set
func LoadENV() error {
	goEnv := os.Getenv("GO_ENV")

	if goEnv == "" || goEnv == "development" {
		err := godotenv.Load()
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				log.Println("No .env file found, using system environment variables")
				return nil
			}
			return err
		}
	}

	return nil
}

type EnvironmentVariable struct {
	GO_ENV string
	PORT   int
	// Storage
	DB_DRIVER    string // postgres | memory
	DB_USER_NAME string
	DB_PASSWORD  string
	DB_NAME      string
	DB_HOST      string
	DB_PORT      string
	DB_SSL_MODE  string
	// Identity provider
	FIREBASE_PROJECT_ID string
	IDENTITY_JWKS_URL   string
	IDENTITY_ISSUER     string
	// HTTP
	ALLOWED_ORIGINS   []string
	RATE_LIMIT_MAX    int
	RATE_LIMIT_WINDOW time.Duration
	BODY_LIMIT_MB     int
	// Redis (optional, rate limit counters)
	REDIS_URL string
	// Operations
	CRON_ENABLED        bool
	BOOTSTRAP_ADMIN_UID string
	LOG_LEVEL           string
}

// IsProduction reports whether GO_ENV is production.
func (e *EnvironmentVariable) IsProduction() bool {
	return e.GO_ENV == "production"
}

func Get() (*EnvironmentVariable, error) {

	port, err := strconv.Atoi(os.Getenv("PORT"))
	if err != nil {
		port = 8080
	}

	goEnv := os.Getenv("GO_ENV")

	projectID := os.Getenv("FIREBASE_PROJECT_ID")
	issuer := os.Getenv("IDENTITY_ISSUER")
	if issuer == "" && projectID != "" {
		issuer = "https://securetoken.google.com/" + projectID
	}

	origins := append([]string{}, productionOrigins...)
	if extra := os.Getenv("ALLOWED_ORIGINS"); extra != "" {
		origins = splitList(extra)
	}
	if goEnv != "production" {
		origins = appendMissing(origins, developmentOrigins...)
	}

	envVariables := &EnvironmentVariable{
		GO_ENV: goEnv,
		PORT:   port,
		// Storage
		DB_DRIVER:    getenv("DB_DRIVER", "postgres"),
		DB_USER_NAME: os.Getenv("DB_USER_NAME"),
		DB_PASSWORD:  os.Getenv("DB_PASSWORD"),
		DB_NAME:      os.Getenv("DB_NAME"),
		DB_HOST:      getenv("DB_HOST", "localhost"),
		DB_PORT:      getenv("DB_PORT", "5432"),
		DB_SSL_MODE:  getenv("DB_SSL_MODE", "disable"),
		// Identity provider
		FIREBASE_PROJECT_ID: projectID,
		IDENTITY_JWKS_URL:   getenv("IDENTITY_JWKS_URL", DefaultJWKSURL),
		IDENTITY_ISSUER:     issuer,
		// HTTP
		ALLOWED_ORIGINS:   origins,
		RATE_LIMIT_MAX:    getenvInt("RATE_LIMIT_MAX", 100),
		RATE_LIMIT_WINDOW: getenvDuration("RATE_LIMIT_WINDOW", 15*time.Minute),
		BODY_LIMIT_MB:     getenvInt("BODY_LIMIT_MB", 10),
		// Redis
		REDIS_URL: os.Getenv("REDIS_URL"),
		// Operations
		CRON_ENABLED:        os.Getenv("CRON_ENABLED") != "false", // Default to enabled
		BOOTSTRAP_ADMIN_UID: os.Getenv("BOOTSTRAP_ADMIN_UID"),
		LOG_LEVEL:           getenv("LOG_LEVEL", "info"),
	}

	if envVariables.DB_DRIVER != "postgres" && envVariables.DB_DRIVER != "memory" {
		return nil, errors.New("DB_DRIVER must be either postgres or memory")
	}

	return envVariables, nil
}

func getenv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

func getenvInt(key string, fallback int) int {
	if val := os.Getenv(key); val != "" {
		if parsed, err := strconv.Atoi(val); err == nil {
			return parsed
		}
	}
	return fallback
}

func getenvDuration(key string, fallback time.Duration) time.Duration {
	if val := os.Getenv(key); val != "" {
		if parsed, err := time.ParseDuration(val); err == nil {
			return parsed
		}
	}
	return fallback
}

func splitList(value string) []string {
	var out []string
	for _, part := range strings.Split(value, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

func appendMissing(list []string, values ...string) []string {
	for _, value := range values {
		found := false
		for _, existing := range list {
			if existing == value {
				found = true
				break
			}
		}
		if !found {
			list = append(list, value)
		}
	}
	return list
}
