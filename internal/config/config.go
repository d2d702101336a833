package config

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/joho/godotenv"
)

// CasdoorConfig holds the connection settings for the Casdoor identity provider.
type CasdoorConfig struct {
	Endpoint     string
	ClientID     string
	ClientSecret string
	Cert         string
	Organization string
	Application  string
}

// Config holds all runtime configuration, read once at process start.
type Config struct {
	Port        string
	Environment string
	LogLevel    slog.Level

	// MongoDB (documents + GridFS blobs)
	MongoURI     string
	MongoDBName  string
	GridFSBucket string

	// Redis (chat history, pub/sub fan-out, profile cache)
	RedisURL string

	// Kafka (optional mirror for notification events)
	KafkaBrokers []string

	// Chat
	DefaultChatRoom string

	Casdoor CasdoorConfig
}

// LoadConfig reads configuration from the environment. A .env file is loaded
// first if present so local development matches deployment. A missing
// MONGODB_URI is a fatal condition: the service cannot run without its
// document store.
func LoadConfig() (*Config, error) {
	// Ignore error: .env is optional outside local development.
	_ = godotenv.Load()

	cfg := &Config{
		Port:            getEnv("PORT", "8080"),
		Environment:     getEnv("ENVIRONMENT", "development"),
		LogLevel:        parseLogLevel(getEnv("LOG_LEVEL", "info")),
		MongoURI:        os.Getenv("MONGODB_URI"),
		MongoDBName:     os.Getenv("MONGODB_DB_NAME"),
		GridFSBucket:    getEnv("MONGODB_GRIDFS_BUCKET", "files"),
		RedisURL:        os.Getenv("REDIS_URL"),
		DefaultChatRoom: getEnv("CHAT_ROOM", "main"),
		Casdoor: CasdoorConfig{
			Endpoint:     os.Getenv("CASDOOR_ENDPOINT"),
			ClientID:     os.Getenv("CASDOOR_CLIENT_ID"),
			ClientSecret: os.Getenv("CASDOOR_CLIENT_SECRET"),
			Cert:         os.Getenv("CASDOOR_CERT"),
			Organization: os.Getenv("CASDOOR_ORGANIZATION"),
			Application:  os.Getenv("CASDOOR_APPLICATION"),
		},
	}

	if brokers := os.Getenv("KAFKA_BROKERS"); brokers != "" {
		cfg.KafkaBrokers = strings.Split(brokers, ",")
	}

	if cfg.MongoURI == "" {
		return nil, fmt.Errorf("MONGODB_URI is required")
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func parseLogLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
