package config

import "os"

// Config holds all server configuration.
type Config struct {
	Port            string
	DatabaseURL     string
	KnowledgePath   string // empty uses the embedded knowledge base
	MigrationsPath  string
	AlertWebhookURL string // empty disables emergency alert delivery
}

// Load reads configuration from environment variables with sensible defaults.
func Load() Config {
	return Config{
		Port:            getenv("PORT", "8080"),
		DatabaseURL:     os.Getenv("DATABASE_URL"),
		KnowledgePath:   os.Getenv("PETADVISOR_KNOWLEDGE_PATH"),
		MigrationsPath:  getenv("PETADVISOR_MIGRATIONS_PATH", "file://migrations"),
		AlertWebhookURL: os.Getenv("PETADVISOR_ALERT_WEBHOOK_URL"),
	}
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
