package config

import (
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// ConfigError represents a configuration error
type ConfigError struct {
	Message string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("configuration error: %s", e.Message)
}

type Config struct {
	MongoURI       string        `envconfig:"MONGO_URI"`
	MongoDatabase  string        `envconfig:"MONGO_DATABASE"`
	ConnectTimeout time.Duration `envconfig:"CONNECT_TIMEOUT" default:"10s"`

	APIPort     string   `envconfig:"API_PORT" default:"8080"`
	CORSOrigins []string `envconfig:"CORS_ORIGINS" default:"http://localhost:3000"`

	JWTSecret string        `envconfig:"JWT_SECRET"`
	JWTTTL    time.Duration `envconfig:"JWT_TTL" default:"24h"`

	TextbeltAPIKey string `envconfig:"TEXTBELT_API_KEY"`
	TextbeltURL    string `envconfig:"TEXTBELT_URL" default:"https://textbelt.com/text"`
}

// Validate checks the configuration for required values
func (c *Config) Validate() error {
	var missing []string
	if c.MongoURI == "" {
		missing = append(missing, "MONGO_URI")
	}
	if c.MongoDatabase == "" {
		missing = append(missing, "MONGO_DATABASE")
	}
	if c.JWTSecret == "" {
		missing = append(missing, "JWT_SECRET")
	}
	if len(missing) > 0 {
		return &ConfigError{Message: strings.Join(missing, ", ") + " must be set"}
	}
	return nil
}

// Load reads an optional .env file and then the process environment.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, relying on environment variables.")
	}
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to process environment variables: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// LogConfig prints the non-secret settings.
func LogConfig(cfg *Config) {
	log.Printf("MONGO_DATABASE: %s", cfg.MongoDatabase)
	log.Printf("API_PORT: %s", cfg.APIPort)
	log.Printf("CORS_ORIGINS: %v", cfg.CORSOrigins)
	if cfg.TextbeltAPIKey != "" {
		log.Println("TEXTBELT_API_KEY is SET.")
	} else {
		log.Println("TEXTBELT_API_KEY is NOT SET, SMS notifications will fail.")
	}
}
