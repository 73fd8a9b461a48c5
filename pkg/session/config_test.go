package session_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/initforge/sessionkit/pkg/config"
	"github.com/initforge/sessionkit/pkg/session"
)

func TestDefaultConfig(t *testing.T) {
	t.Parallel()

	cfg := session.DefaultConfig()

	assert.Equal(t, "session_id", cfg.CookieName)
	assert.Equal(t, 12*time.Hour, cfg.Lifetime)
	assert.Equal(t, float64(43200), cfg.Lifetime.Seconds())
	assert.Equal(t, "webapp", cfg.Namespace)
	assert.Empty(t, cfg.Secret)
}

func TestConfig_FromEnvironment(t *testing.T) {
	t.Setenv("SESSION_SECRET", "s3cr3t")
	t.Setenv("SESSION_COOKIE_NAME", "sid")
	t.Setenv("SESSION_LIFETIME", "1h")
	t.Setenv("SESSION_KEY_NAMESPACE", "myapp")

	var cfg session.Config
	require.NoError(t, config.Load(&cfg))

	assert.Equal(t, "s3cr3t", cfg.Secret)
	assert.Equal(t, "sid", cfg.CookieName)
	assert.Equal(t, time.Hour, cfg.Lifetime)
	assert.Equal(t, "myapp", cfg.Namespace)

	_, err := session.NewFromConfig(cfg)
	assert.NoError(t, err)
}
