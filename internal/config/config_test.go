package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "0123456789abcdef"

func lookupFrom(env map[string]string) func(string) (string, bool) {
	return func(key string) (string, bool) {
		v, ok := env[key]
		return v, ok
	}
}

func TestParseDefaults(t *testing.T) {
	cfg, err := parse(lookupFrom(map[string]string{"NONCE_SECRET": testSecret}))
	require.NoError(t, err)

	assert.Equal(t, LocalENV, cfg.Env)
	assert.False(t, cfg.IsProd())
	assert.Equal(t, defaultPublicAddr, cfg.PublicAddr)
	assert.Equal(t, defaultAdminAddr, cfg.AdminAddr)
	assert.Equal(t, defaultRedirectURL, cfg.RedirectURL)
	assert.Equal(t, defaultSettingsPath, cfg.SettingsPath)
	assert.Equal(t, 20*time.Second, cfg.HTTPTimeout)
	assert.Equal(t, 50*time.Second, cfg.WriteTimeout())
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Empty(t, cfg.CORSAllowedOrigins)
	assert.True(t, cfg.Operator.IsEmpty())
}

func TestParse(t *testing.T) {
	cfg, err := parse(lookupFrom(map[string]string{
		"CURRENT_ENV":               "prod",
		"NONCE_SECRET":              testSecret,
		"HTTP_TIMEOUT":              "5s",
		"CORS_ALLOWED_ORIGINS":      "https://a.example.com, ,https://b.example.com",
		"CRT_DIR":                   "/tls/crt.pem",
		"TLS_KEY_DIR":               "/tls/key.pem",
		"TWITCH_CLIENT_ID":          "cid",
		"TWITCH_SECRET":             "secret",
		"VATSIM_CID":                "1234567",
		"FALLBACK_PILOT_HOURS":      "100",
		"FALLBACK_CONTROLLER_HOURS": "",
		"TVS_DEBUG":                 "true",
	}))
	require.NoError(t, err)

	assert.True(t, cfg.IsProd())
	assert.Equal(t, 5*time.Second, cfg.HTTPTimeout)
	assert.Equal(t, 20*time.Second, cfg.WriteTimeout())
	assert.Equal(t, []string{"https://a.example.com", "https://b.example.com"}, cfg.CORSAllowedOrigins)

	op := cfg.Operator
	require.NotNil(t, op.ClientID)
	assert.Equal(t, "cid", *op.ClientID)
	assert.Equal(t, "secret", *op.ClientSecret)
	assert.Nil(t, op.Username)
	assert.Equal(t, int64(1234567), *op.VatsimCID)
	assert.Equal(t, int64(100), *op.FallbackPilotHours)
	assert.Equal(t, int64(0), *op.FallbackControllerHours)
	assert.True(t, *op.Debug)
}

func TestWriteTimeoutCoversSequentialUpstreamCalls(t *testing.T) {
	for _, timeout := range []time.Duration{time.Second, 20 * time.Second, 2 * time.Minute} {
		cfg := Config{HTTPTimeout: timeout}
		assert.Greater(t, cfg.WriteTimeout(), 2*timeout, timeout.String())
	}
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
	}{
		{name: "missing secret", env: map[string]string{}},
		{name: "short secret", env: map[string]string{"NONCE_SECRET": "short"}},
		{name: "unknown env", env: map[string]string{"NONCE_SECRET": testSecret, "CURRENT_ENV": "staging"}},
		{name: "bad timeout", env: map[string]string{"NONCE_SECRET": testSecret, "HTTP_TIMEOUT": "soon"}},
		{name: "prod without tls", env: map[string]string{"NONCE_SECRET": testSecret, "CURRENT_ENV": "prod"}},
		{name: "negative hours", env: map[string]string{"NONCE_SECRET": testSecret, "FALLBACK_PILOT_HOURS": "-1"}},
		{name: "bad cid", env: map[string]string{"NONCE_SECRET": testSecret, "VATSIM_CID": "abc"}},
		{name: "bad debug", env: map[string]string{"NONCE_SECRET": testSecret, "TVS_DEBUG": "maybe"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := parse(lookupFrom(tt.env))
			assert.Error(t, err)
		})
	}
}
