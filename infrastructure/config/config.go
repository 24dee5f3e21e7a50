package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// Config holds all application configuration
type Config struct {
	// Server configuration
	ServerAddress string
	Environment   string

	// AWS configuration
	AWSRegion       string
	DynamoDBTable   string
	PrefixIndexName string // GSI on (prefix, createAt) for kind listings
	StateMachineArn string
	EventBusName    string

	// Pipeline defaults
	DataBucket     string
	DedupeTTL      time.Duration
	ExecutionLimit int32 // page size for engine-side listings

	// Logging
	LogLevel string

	// Authentication
	JWTSecret string
	JWTIssuer string

	// Feature flags
	EnableTracing bool
	EnableCORS    bool
}

// LoadConfig loads configuration from environment variables
func LoadConfig() (*Config, error) {
	cfg := &Config{
		ServerAddress: getEnv("SERVER_ADDRESS", ":8080"),
		Environment:   getEnv("ENVIRONMENT", "development"),
		AWSRegion:     getEnv("AWS_REGION", "us-east-1"),

		DynamoDBTable:   getEnv("TABLE_NAME", "clickstream-metadata"),
		PrefixIndexName: getEnv("PREFIX_INDEX_NAME", "prefix-time-index"),
		StateMachineArn: getEnv("STATE_MACHINE_ARN", ""),
		EventBusName:    getEnv("EVENT_BUS_NAME", "clickstream-events"),

		DataBucket:     getEnv("DATA_BUCKET", ""),
		DedupeTTL:      time.Duration(getEnvInt("DEDUPE_TTL_SECONDS", 600)) * time.Second,
		ExecutionLimit: int32(getEnvInt("EXECUTION_PAGE_LIMIT", 100)),

		JWTSecret: getEnv("JWT_SECRET", ""),
		JWTIssuer: getEnv("JWT_ISSUER", "clickstream-backend"),

		LogLevel:      getEnv("LOG_LEVEL", "info"),
		EnableTracing: getEnvBool("ENABLE_TRACING", false),
		EnableCORS:    getEnvBool("ENABLE_CORS", true),
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate checks if all required configuration is present
func (c *Config) Validate() error {
	if c.Environment == "production" {
		if c.JWTSecret == "" {
			return fmt.Errorf("JWT_SECRET is required in production")
		}
		if c.DynamoDBTable == "" {
			return fmt.Errorf("TABLE_NAME is required")
		}
		if c.StateMachineArn == "" {
			return fmt.Errorf("STATE_MACHINE_ARN is required")
		}
	}

	return nil
}

// IsProduction checks if running in production mode
func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

// getEnv gets an environment variable with a default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvBool gets a boolean environment variable with a default value
func getEnvBool(key string, defaultValue bool) bool {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value == "true" || value == "1" || value == "yes"
}

// getEnvInt gets an integer environment variable with a default value
func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}
