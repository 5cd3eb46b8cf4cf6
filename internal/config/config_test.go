package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/Flaque/filet"
	"github.com/UnknownOlympus/geolocate/internal/config"
	"github.com/stretchr/testify/assert"
)

func Test_MustLoadFromEnv(t *testing.T) {
	t.Setenv("GEOCODER_ENV", "local")
	t.Setenv("GOOGLE_API_KEY", "AIzaSyTest")
	t.Setenv("GOOGLE_CLIENT_ID", "gme-test")
	t.Setenv("GOOGLE_CLIENT_SECRET", "c2VjcmV0")
	t.Setenv("GEOCODER_SCHEME", "http")
	t.Setenv("GEOCODER_TIMEOUT", "5s")
	t.Setenv("GEOCODER_RETRY_TIMEOUT", "2m")

	cfg := config.MustLoad(filepath.Join(t.TempDir(), "missing.env"))

	assert.Equal(t, "local", cfg.Env)
	assert.Equal(t, "AIzaSyTest", cfg.APIKey)
	assert.Equal(t, "gme-test", cfg.ClientID)
	assert.Equal(t, "c2VjcmV0", cfg.ClientSecret)
	assert.Equal(t, "http", cfg.Scheme)
	assert.Equal(t, 5*time.Second, cfg.Timeout)
	assert.Equal(t, 2*time.Minute, cfg.RetryTimeout)
}

func Test_MustLoadDefaults(t *testing.T) {
	t.Setenv("GEOCODER_ENV", "")
	os.Unsetenv("GEOCODER_ENV")

	cfg := config.MustLoad(filepath.Join(t.TempDir(), "missing.env"))

	assert.Equal(t, "production", cfg.Env)
	assert.Equal(t, "https", cfg.Scheme)
	assert.Zero(t, cfg.Timeout)
	assert.Equal(t, 60*time.Second, cfg.RetryTimeout)
}

func Test_MustLoadFromFile(t *testing.T) {
	defer filet.CleanUp(t)

	dir := filet.TmpDir(t, "")
	envFile := filepath.Join(dir, ".env")
	filet.File(t, envFile, "GOOGLE_API_KEY=AIzaFromFile\nGEOCODER_TIMEOUT=750ms\n")
	t.Cleanup(func() {
		os.Unsetenv("GOOGLE_API_KEY")
		os.Unsetenv("GEOCODER_TIMEOUT")
	})

	cfg := config.MustLoad(envFile)

	assert.Equal(t, "AIzaFromFile", cfg.APIKey)
	assert.Equal(t, 750*time.Millisecond, cfg.Timeout)
}

func TestMustLoad_TimeoutError(t *testing.T) {
	t.Setenv("GEOCODER_TIMEOUT", "error_value")

	assert.PanicsWithValue(t, "failed to parse request timeout from configuration", func() {
		config.MustLoad(filepath.Join(t.TempDir(), "missing.env"))
	})
}

func TestMustLoad_RetryTimeoutError(t *testing.T) {
	t.Setenv("GEOCODER_RETRY_TIMEOUT", "error_value")

	assert.PanicsWithValue(t, "failed to parse retry timeout from configuration", func() {
		config.MustLoad(filepath.Join(t.TempDir(), "missing.env"))
	})
}
