package serve

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentstation/gallery/internal/cmd/application"
	"github.com/agentstation/gallery/pkg/constants"
)

func TestParseConfigDefaults(t *testing.T) {
	app := &application.Mock{
		BasePathFunc:      func() string { return "/gallery" },
		ThumbnailsDirFunc: func() string { return "./thumbs" },
	}
	cmd := NewCommand(app)
	require.NoError(t, cmd.ParseFlags(nil))

	cfg := parseConfig(cmd, app)
	assert.Equal(t, constants.DefaultHost, cfg.Host)
	assert.Equal(t, constants.DefaultPort, cfg.Port)
	assert.Equal(t, constants.DefaultAPIPrefix, cfg.PathPrefix)
	assert.Equal(t, "/gallery", cfg.BasePath)
	assert.Equal(t, "./thumbs", cfg.ThumbnailsDir)
	assert.False(t, cfg.CORSEnabled)
	assert.False(t, cfg.AuthEnabled)
	assert.Equal(t, 100, cfg.RateLimit)
	assert.Equal(t, constants.CacheTTL, cfg.CacheTTL)
}

func TestParseConfigFlags(t *testing.T) {
	app := &application.Mock{}
	cmd := NewCommand(app)
	require.NoError(t, cmd.ParseFlags([]string{
		"--port", "9000",
		"--host", "0.0.0.0",
		"--cors-origins", "https://a.org,https://b.org",
		"--auth",
		"--rate-limit", "0",
		"--cache-ttl", "1m",
	}))

	cfg := parseConfig(cmd, app)
	assert.Equal(t, 9000, cfg.Port)
	assert.Equal(t, "0.0.0.0", cfg.Host)
	assert.True(t, cfg.CORSEnabled)
	assert.Equal(t, []string{"https://a.org", "https://b.org"}, cfg.CORSOrigins)
	assert.True(t, cfg.AuthEnabled)
	assert.Equal(t, 0, cfg.RateLimit)
	assert.Equal(t, time.Minute, cfg.CacheTTL)
}
