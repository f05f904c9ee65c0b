package config

import (
	"errors"
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Config holds all configuration for the application. It is built once at
// startup and injected; no package reads environment variables at call time.
type Config struct {
	AppMode string
	Port    string
	JWT     JWTConfig
	Cookie  CookieConfig

	// DatabaseDSN is the storage connection string, e.g.
	// user:pass@tcp(host:3306)/quartermaster?charset=utf8mb4&parseTime=True
	DatabaseDSN string
}

// JWTConfig holds token-signing configuration
type JWTConfig struct {
	Secret string
}

// CookieConfig holds session cookie configuration
type CookieConfig struct {
	Secure bool
	Domain string
}

// Load reads configuration from a .env file and environment variables. The
// token-signing secret and the database connection string are mandatory;
// missing either is a startup failure.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found, using environment variables")
	}

	appMode := strings.TrimSpace(getEnv("APP_MODE", "dev"))
	if appMode != "dev" && appMode != "prod" {
		return nil, fmt.Errorf("invalid APP_MODE: %q (must be 'dev' or 'prod')", appMode)
	}

	cfg := &Config{
		AppMode:     appMode,
		Port:        getEnv("PORT", "3000"),
		DatabaseDSN: os.Getenv("DATABASE_DSN"),
		JWT: JWTConfig{
			Secret: os.Getenv("JWT_SECRET"),
		},
		Cookie: loadCookieConfig(appMode),
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) validate() error {
	var missing []string
	if c.JWT.Secret == "" {
		missing = append(missing, "JWT_SECRET")
	}
	if c.DatabaseDSN == "" {
		missing = append(missing, "DATABASE_DSN")
	}
	if len(missing) > 0 {
		return errors.New("missing required environment variables: " + strings.Join(missing, ", "))
	}
	return nil
}

func loadCookieConfig(mode string) CookieConfig {
	secure, _ := strconv.ParseBool(getEnv("COOKIE_SECURE", strconv.FormatBool(mode == "prod")))

	return CookieConfig{
		Secure: secure,
		Domain: getEnv("COOKIE_DOMAIN", ""),
	}
}

// getEnv gets an environment variable with a default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// IsDev returns true if running in development mode
func (c *Config) IsDev() bool {
	return c.AppMode == "dev"
}

// IsProd returns true if running in production mode
func (c *Config) IsProd() bool {
	return c.AppMode == "prod"
}

// GetAllowedOrigins returns allowed origins for CORS
func (c *Config) GetAllowedOrigins() string {
	origins := getEnv("ALLOWED_ORIGINS", "")
	if origins == "" && c.IsDev() {
		return "*"
	}
	return origins
}
