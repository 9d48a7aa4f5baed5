package config

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all application configuration
type Config struct {
	// Server configuration
	Port         int
	MaxWorkers   int
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	LogFormat    string

	// Image inlining configuration
	ImageFetchTimeout time.Duration
	ImageMaxBytes     int64
	ImageMaxDimension int

	// Storage configuration (S3-compatible bucket for design assets)
	StorageEndpoint        string
	StorageAccessKeyID     string
	StorageAccessKeySecret string
	StorageBucket          string
	StorageRegion          string
}

// LoadConfig loads the application configuration from environment variables
func LoadConfig() (*Config, error) {
	// Load .env file if it exists
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found or error loading .env file. Using environment variables.")
	}

	config := &Config{
		// Server configuration
		Port:         getEnvInt("PORT", 8080),
		MaxWorkers:   getEnvInt("MAX_WORKERS", 5),
		ReadTimeout:  time.Duration(getEnvInt("READ_TIMEOUT", 15)) * time.Second,
		WriteTimeout: time.Duration(getEnvInt("WRITE_TIMEOUT", 30)) * time.Second,
		LogFormat:    getEnvString("LOG_FORMAT", "json"),

		// Image inlining configuration
		ImageFetchTimeout: time.Duration(getEnvInt("IMAGE_FETCH_TIMEOUT", 15)) * time.Second,
		ImageMaxBytes:     int64(getEnvInt("IMAGE_MAX_BYTES", 5*1024*1024)),
		ImageMaxDimension: getEnvInt("IMAGE_MAX_DIMENSION", 1200),

		// Storage configuration
		StorageEndpoint:        os.Getenv("STORAGE_ENDPOINT"),
		StorageAccessKeyID:     os.Getenv("STORAGE_ACCESS_KEY_ID"),
		StorageAccessKeySecret: os.Getenv("STORAGE_ACCESS_KEY_SECRET"),
		StorageBucket:          getEnvString("STORAGE_BUCKET", "design-assets"),
		StorageRegion:          getEnvString("STORAGE_REGION", "us-east-1"),
	}

	validateConfig(config)

	return config, nil
}

// validateConfig checks optional configuration and logs warnings for
// anything that degrades behavior when missing
func validateConfig(config *Config) {
	if config.StorageEndpoint == "" || config.StorageAccessKeyID == "" || config.StorageAccessKeySecret == "" {
		log.Println("Warning: Storage credentials not fully configured. Image references by object key will resolve to empty.")
	}
}

// getEnvInt gets an integer from an environment variable with a default value
func getEnvInt(key string, defaultValue int) int {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}

	value, err := strconv.Atoi(valueStr)
	if err != nil {
		log.Printf("Invalid value for %s: %s, using default: %d", key, valueStr, defaultValue)
		return defaultValue
	}

	return value
}

// getEnvString gets a string from an environment variable with a default value
func getEnvString(key string, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}
