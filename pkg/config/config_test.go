package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "onboarding-service", cfg.ServiceName)
	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, "development", cfg.Server.Env)

	assert.Equal(t, "mongodb://localhost:27017", cfg.Mongo.URI)
	assert.Equal(t, "onboarding", cfg.Mongo.Database)
	assert.Equal(t, 10*time.Second, cfg.Mongo.ConnectTimeout)
	assert.Equal(t, "suppliers", cfg.Mongo.SupplierCollection)
	assert.Equal(t, "onboarding_answers", cfg.Mongo.AnswerCollection)

	assert.False(t, cfg.LLM.PaidTierEnabled)
	assert.Equal(t, "gemini-1.5-pro", cfg.LLM.Model)
	assert.Equal(t, 2000, cfg.LLM.MaxTokens)
	assert.InDelta(t, 0.2, cfg.LLM.Temperature, 1e-9)
	assert.False(t, cfg.LLM.GuardrailsEnabled)

	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, "onboarding", cfg.Metrics.Prefix)
}

func TestLoad_FromEnvironment(t *testing.T) {
	t.Setenv("SERVICE_NAME", "onboarding-staging")
	t.Setenv("SERVER_PORT", "9090")
	t.Setenv("PAID_TIER_ENABLED", "true")
	t.Setenv("ENABLE_LLM_GUARDRAILS", "true")
	t.Setenv("MAX_LLM_TOKENS", "512")
	t.Setenv("LLM_TEMPERATURE", "0.7")
	t.Setenv("MONGO_CONNECT_TIMEOUT", "3s")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "onboarding-staging", cfg.ServiceName)
	assert.Equal(t, "9090", cfg.Server.Port)
	assert.True(t, cfg.LLM.PaidTierEnabled)
	assert.True(t, cfg.LLM.GuardrailsEnabled)
	assert.Equal(t, 512, cfg.LLM.MaxTokens)
	assert.InDelta(t, 0.7, cfg.LLM.Temperature, 1e-9)
	assert.Equal(t, 3*time.Second, cfg.Mongo.ConnectTimeout)
}

func TestLoad_InvalidValuesFallBack(t *testing.T) {
	t.Setenv("MAX_LLM_TOKENS", "lots")
	t.Setenv("PAID_TIER_ENABLED", "definitely")
	t.Setenv("MONGO_CONNECT_TIMEOUT", "soon")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 2000, cfg.LLM.MaxTokens)
	assert.False(t, cfg.LLM.PaidTierEnabled)
	assert.Equal(t, 10*time.Second, cfg.Mongo.ConnectTimeout)
}
