package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLoadConfigDefaults(t *testing.T) {
	t.Setenv("ENV", "development")
	t.Setenv("JWT_SECRET", "")
	LoadConfig()

	assert.Equal(t, "8080", AppConfig.AppPort)
	assert.Equal(t, "washbook", AppConfig.DatabaseName)
	assert.Equal(t, 30, AppConfig.SessionTTLMinutes)
	assert.Equal(t, "local", AppConfig.AuthProvider)
	assert.True(t, AppConfig.QueueEnabled)
	assert.NotEmpty(t, AppConfig.JWTSecret)
	assert.False(t, IsProduction())
}

func TestLoadConfigFromEnv(t *testing.T) {
	t.Setenv("SESSION_TTL_MINUTES", "45")
	t.Setenv("AUTH_PROVIDER", "firebase")
	t.Setenv("QUEUE_ENABLED", "false")
	t.Setenv("JWT_SECRET", "s3cret")
	LoadConfig()

	assert.Equal(t, 45, AppConfig.SessionTTLMinutes)
	assert.Equal(t, "firebase", AppConfig.AuthProvider)
	assert.False(t, AppConfig.QueueEnabled)
	assert.Equal(t, "s3cret", AppConfig.JWTSecret)
}
