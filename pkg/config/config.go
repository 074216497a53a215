package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

// MongoConfig holds document store configuration
type MongoConfig struct {
	URI                      string
	Database                 string
	ConnectTimeout           time.Duration
	SupplierCollection       string
	AnswerCollection         string
	InteractionCollection    string
	RecommendationCollection string
}

// ServerConfig holds server configuration
type ServerConfig struct {
	Port string
	Env  string
}

// LLMConfig holds generative-tier configuration
type LLMConfig struct {
	PaidTierEnabled   bool
	APIKey            string
	Model             string
	MaxTokens         int
	Temperature       float64
	GuardrailsEnabled bool
}

// LogConfig holds logging configuration
type LogConfig struct {
	Level string
}

// MetricsConfig holds metrics configuration
type MetricsConfig struct {
	Prefix string
}

// Config holds all configuration
type Config struct {
	ServiceName string
	Server      ServerConfig
	Mongo       MongoConfig
	LLM         LLMConfig
	Log         LogConfig
	Metrics     MetricsConfig
}

// Load loads configuration from a .env file (if present) and environment variables
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		// Not returning error as .env file is optional
		fmt.Printf("Warning: .env file not found, using environment variables\n")
	}

	config := &Config{
		ServiceName: getEnv("SERVICE_NAME", "onboarding-service"),
		Server: ServerConfig{
			Port: getEnv("SERVER_PORT", "8080"),
			Env:  getEnv("APP_ENV", "development"),
		},
		Mongo: MongoConfig{
			URI:                      getEnv("MONGO_URI", "mongodb://localhost:27017"),
			Database:                 getEnv("MONGO_DB", "onboarding"),
			ConnectTimeout:           getEnvAsDuration("MONGO_CONNECT_TIMEOUT", 10*time.Second),
			SupplierCollection:       getEnv("MONGO_SUPPLIER_COLLECTION", "suppliers"),
			AnswerCollection:         getEnv("MONGO_ANSWER_COLLECTION", "onboarding_answers"),
			InteractionCollection:    getEnv("MONGO_INTERACTION_COLLECTION", "interaction_history"),
			RecommendationCollection: getEnv("MONGO_RECOMMENDATION_COLLECTION", "ai_recommendations"),
		},
		LLM: LLMConfig{
			PaidTierEnabled:   getEnvAsBool("PAID_TIER_ENABLED", false),
			APIKey:            getEnv("GEMINI_API_KEY", ""),
			Model:             getEnv("LLM_MODEL", "gemini-1.5-pro"),
			MaxTokens:         getEnvAsInt("MAX_LLM_TOKENS", 2000),
			Temperature:       getEnvAsFloat("LLM_TEMPERATURE", 0.2),
			GuardrailsEnabled: getEnvAsBool("ENABLE_LLM_GUARDRAILS", false),
		},
		Log: LogConfig{
			Level: getEnv("LOG_LEVEL", "info"),
		},
		Metrics: MetricsConfig{
			Prefix: getEnv("METRICS_PREFIX", "onboarding"),
		},
	}

	return config, nil
}

// LogConfig returns the configuration as a zap logger-friendly format
func (c *Config) LogConfig() []zap.Field {
	return []zap.Field{
		zap.String("service", c.ServiceName),
		zap.String("environment", c.Server.Env),
		zap.String("mongo_db", c.Mongo.Database),
		zap.String("server_port", c.Server.Port),
		zap.Bool("paid_tier_enabled", c.LLM.PaidTierEnabled),
	}
}

// Helper function to get environment variables with defaults
func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

// Helper function to get environment variables as integers
func getEnvAsInt(key string, defaultValue int) int {
	valueStr := getEnv(key, "")
	if value, err := strconv.Atoi(valueStr); err == nil {
		return value
	}
	return defaultValue
}

// Helper function to get environment variables as floats
func getEnvAsFloat(key string, defaultValue float64) float64 {
	valueStr := getEnv(key, "")
	if value, err := strconv.ParseFloat(valueStr, 64); err == nil {
		return value
	}
	return defaultValue
}

// Helper function to get environment variables as booleans
func getEnvAsBool(key string, defaultValue bool) bool {
	valueStr := getEnv(key, "")
	if value, err := strconv.ParseBool(valueStr); err == nil {
		return value
	}
	return defaultValue
}

// Helper function to get environment variables as durations
func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	valueStr := getEnv(key, "")
	if value, err := time.ParseDuration(valueStr); err == nil {
		return value
	}
	return defaultValue
}
