package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLoadDefaults(t *testing.T) {
	for _, key := range []string{"PORT", "DATABASE_URL", "PETADVISOR_KNOWLEDGE_PATH", "PETADVISOR_MIGRATIONS_PATH", "PETADVISOR_ALERT_WEBHOOK_URL"} {
		t.Setenv(key, "")
	}

	cfg := Load()

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "file://migrations", cfg.MigrationsPath)
	assert.Empty(t, cfg.KnowledgePath)
	assert.Empty(t, cfg.AlertWebhookURL)
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("DATABASE_URL", "postgres://localhost/petadvisor")
	t.Setenv("PETADVISOR_KNOWLEDGE_PATH", "/etc/petadvisor/kb.yaml")
	t.Setenv("PETADVISOR_ALERT_WEBHOOK_URL", "https://hooks.example.com/alerts")

	cfg := Load()
	assert.Equal(t, "9090", cfg.Port)
	assert.Equal(t, "postgres://localhost/petadvisor", cfg.DatabaseURL)
	assert.Equal(t, "/etc/petadvisor/kb.yaml", cfg.KnowledgePath)
	assert.Equal(t, "https://hooks.example.com/alerts", cfg.AlertWebhookURL)
}
