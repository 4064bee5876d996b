package config

import (
	"log"
	"os"

	"github.com/joho/godotenv"
)

type Config struct {
	DBDSN      string
	ServerPort string
	JWTSecret  string
	JWTIssuer  string

	// optional integrations
	PaymentPublishableKey string
	ImageHostAPIKey       string
}

// Load reads the server configuration from the environment (plus an
// optional .env file). Missing mandatory keys are fatal at startup.
func Load() *Config {
	_ = godotenv.Load()

	cfg := &Config{
		DBDSN:                 os.Getenv("DB_DSN"),
		ServerPort:            os.Getenv("SERVER_PORT"),
		JWTSecret:             os.Getenv("JWT_SECRET"),
		JWTIssuer:             os.Getenv("JWT_ISSUER"),
		PaymentPublishableKey: os.Getenv("PAYMENT_PUBLISHABLE_KEY"),
		ImageHostAPIKey:       os.Getenv("IMAGE_HOST_API_KEY"),
	}

	if cfg.DBDSN == "" {
		log.Fatal("DB_DSN is not set")
	}
	if cfg.JWTSecret == "" {
		log.Fatal("JWT_SECRET is not set")
	}
	if cfg.ServerPort == "" {
		cfg.ServerPort = "5000"
	}
	if cfg.JWTIssuer == "" {
		cfg.JWTIssuer = "business-management"
	}

	return cfg
}

// ClientConfig holds what the CLI client needs to reach the API.
type ClientConfig struct {
	APIBaseURL string
	StateDir   string
}

// LoadClient reads client configuration. API_BASE_URL is mandatory.
func LoadClient() *ClientConfig {
	_ = godotenv.Load()

	cfg := &ClientConfig{
		APIBaseURL: os.Getenv("API_BASE_URL"),
		StateDir:   os.Getenv("CLIENT_STATE_DIR"),
	}

	if cfg.APIBaseURL == "" {
		log.Fatal("API_BASE_URL is not set")
	}
	if cfg.StateDir == "" {
		dir, err := os.UserHomeDir()
		if err != nil {
			dir = "."
		}
		cfg.StateDir = dir
	}

	return cfg
}
