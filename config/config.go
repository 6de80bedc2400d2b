package config

import (
	"errors"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"

	"github.com/wordcross/wordcross-backend/internal/logger"
)

var (
	customLog = logger.NewLogger()
)

// Config holds application configuration values
type Config struct {
	ServerPort    string
	Environment   string // "development" or "production"; drives the cookie Secure flag
	JWTSecret     string
	JWTExpiration time.Duration
	DataDir       string
	DataFile      string
	StoreBackend  string // "sqlite" or "memory"
	CORSOrigin    string
}

// IsProduction reports whether the process runs in a production-like deployment.
func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

// LoadConfig loads configuration from environment variables.
// It uses a .env file for local development if present (ignores it for production).
func LoadConfig() (*Config, error) {
	customLog.Println("Loading configuration from environment variables...")

	// Attempt to load .env file if in development environment (skip in production)
	if os.Getenv("APP_ENV") != "production" {
		if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
			customLog.Warnf("Warning: Error loading .env file: %v", err)
		}
	}

	port := getEnv("SERVER_PORT", "8080")
	env := getEnv("APP_ENV", "development")
	jwtSecret := getEnv("JWT_SECRET", "") // No sensible default for secret!
	jwtExpHoursStr := getEnv("JWT_EXPIRATION_HOURS", "24")
	dataDir := getEnv("DATABASE_DIRECTORY", "data")
	dataFile := getEnv("DATABASE_FILE", "wordcross.db")
	storeBackend := getEnv("STORE_BACKEND", "sqlite")
	corsOrigin := getEnv("CORS_ORIGIN", "http://localhost:3000")

	// Critical: Ensure JWT Secret is set
	if jwtSecret == "" {
		return nil, errors.New("JWT_SECRET environment variable must be set")
	}

	if storeBackend != "sqlite" && storeBackend != "memory" {
		return nil, errors.New("STORE_BACKEND must be either 'sqlite' or 'memory'")
	}

	// Parse JWT Expiration (hours)
	jwtExpHours, err := strconv.Atoi(jwtExpHoursStr)
	if err != nil || jwtExpHours <= 0 {
		customLog.Warnf("Invalid JWT_EXPIRATION_HOURS '%s'. Using default 24h. Error: %v", jwtExpHoursStr, err)
		jwtExpHours = 24
	}
	jwtExpiration := time.Hour * time.Duration(jwtExpHours)

	cfg := &Config{
		ServerPort:    port,
		Environment:   env,
		JWTSecret:     jwtSecret,
		JWTExpiration: jwtExpiration,
		DataDir:       dataDir,
		DataFile:      dataFile,
		StoreBackend:  storeBackend,
		CORSOrigin:    corsOrigin,
	}

	customLog.Printf("Configuration loaded successfully. Port: %s, Store: %s, JWT Exp: %v", cfg.ServerPort, cfg.StoreBackend, cfg.JWTExpiration)
	return cfg, nil
}

// getEnv reads an environment variable or returns a default value.
func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}
