package config

import (
	"log/slog"
	"testing"
)

func TestLoadConfig(t *testing.T) {
	t.Run("requires mongodb uri", func(t *testing.T) {
		t.Setenv("MONGODB_URI", "")

		if _, err := LoadConfig(); err == nil {
			t.Fatal("Expected error when MONGODB_URI is missing")
		}
	})

	t.Run("applies defaults", func(t *testing.T) {
		t.Setenv("MONGODB_URI", "mongodb://localhost:27017")
		t.Setenv("PORT", "")
		t.Setenv("KAFKA_BROKERS", "")
		t.Setenv("CHAT_ROOM", "")

		cfg, err := LoadConfig()
		if err != nil {
			t.Fatalf("LoadConfig failed: %v", err)
		}

		if cfg.Port != "8080" {
			t.Errorf("Port = %q, want 8080", cfg.Port)
		}
		if cfg.GridFSBucket != "files" {
			t.Errorf("GridFSBucket = %q, want files", cfg.GridFSBucket)
		}
		if cfg.DefaultChatRoom != "main" {
			t.Errorf("DefaultChatRoom = %q, want main", cfg.DefaultChatRoom)
		}
		if cfg.LogLevel != slog.LevelInfo {
			t.Errorf("LogLevel = %v, want info", cfg.LogLevel)
		}
		if cfg.KafkaBrokers != nil {
			t.Errorf("KafkaBrokers = %v, want nil", cfg.KafkaBrokers)
		}
	})

	t.Run("splits kafka brokers", func(t *testing.T) {
		t.Setenv("MONGODB_URI", "mongodb://localhost:27017")
		t.Setenv("KAFKA_BROKERS", "broker-1:9092,broker-2:9092")

		cfg, err := LoadConfig()
		if err != nil {
			t.Fatalf("LoadConfig failed: %v", err)
		}
		if len(cfg.KafkaBrokers) != 2 || cfg.KafkaBrokers[0] != "broker-1:9092" {
			t.Errorf("KafkaBrokers = %v", cfg.KafkaBrokers)
		}
	})

	t.Run("parses log level", func(t *testing.T) {
		t.Setenv("MONGODB_URI", "mongodb://localhost:27017")
		t.Setenv("LOG_LEVEL", "debug")

		cfg, err := LoadConfig()
		if err != nil {
			t.Fatalf("LoadConfig failed: %v", err)
		}
		if cfg.LogLevel != slog.LevelDebug {
			t.Errorf("LogLevel = %v, want debug", cfg.LogLevel)
		}
	})
}
