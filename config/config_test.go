package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("ENV", "production")
	t.Setenv("PORT", ":9090")
	t.Setenv("IMAGE_FETCH_TIMEOUT", "3s")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "9090", cfg.Server.Port)
	assert.True(t, cfg.IsProduction())
	assert.Equal(t, "gofpdf", cfg.Render.PDFEngine)
	assert.Equal(t, "jpeg", cfg.Render.PageImageFormat)
	assert.Equal(t, 3*time.Second, cfg.Render.ImageFetchTimeout)
	assert.Equal(t, "Products!A1:Z", cfg.Catalog.SheetRange)
	assert.Equal(t, 5*time.Minute, cfg.Catalog.CacheTTL)
}

func TestLoadRejectsUnknownEngine(t *testing.T) {
	t.Setenv("ENV", "production")
	t.Setenv("PDF_ENGINE", "latex")

	_, err := Load()
	assert.ErrorContains(t, err, "PDF_ENGINE")
}

func TestGetEnvHelpers(t *testing.T) {
	t.Setenv("SOME_INT", "not-a-number")
	t.Setenv("SOME_DURATION", "250ms")
	t.Setenv("SOME_BOOL", "false")
	t.Setenv("BAD_BOOL", "maybe")

	assert.Equal(t, 7, getEnvAsInt("SOME_INT", 7))
	assert.Equal(t, 250*time.Millisecond, getEnvAsDuration("SOME_DURATION", time.Second))
	assert.Equal(t, "fallback", getEnv("UNSET_KEY_FOR_TEST", "fallback"))
	assert.False(t, getEnvAsBool("SOME_BOOL", true))
	assert.True(t, getEnvAsBool("BAD_BOOL", true))
}
