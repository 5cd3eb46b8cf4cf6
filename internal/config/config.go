package config

import (
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds the configuration settings for the geocoding CLI.
//
// Fields:
// - Env: The current environment (e.g., local, development, production).
// - APIKey: The Google Maps API key.
// - ClientID, ClientSecret: Premium plan credentials, used when APIKey is empty.
// - Scheme: URL scheme for the geocoding endpoint.
// - Timeout: Per-request timeout, zero disables it.
// - RetryTimeout: Carried through to the client, requests are never retried.
type Config struct {
	Env          string        // Env is the current environment: local, development, production.
	APIKey       string        // The API key for accessing the Google Maps API.
	ClientID     string        // Premium plan client ID.
	ClientSecret string        // Premium plan URL signing secret.
	Scheme       string        // Scheme of the geocoding endpoint URL.
	Timeout      time.Duration // Per-request timeout.
	RetryTimeout time.Duration // Retry timeout, unused by the client.
}

// MustLoad reads .env files (the working directory's .env when none are given)
// and then the process environment, and returns the resulting Config.
// Variables already present in the environment win over the files.
func MustLoad(envFiles ...string) *Config {
	_ = godotenv.Load(envFiles...)

	v := viper.New()
	v.AutomaticEnv()
	v.SetDefault("geocoder_env", "production")
	v.SetDefault("geocoder_scheme", "https")
	v.SetDefault("geocoder_timeout", "")
	v.SetDefault("geocoder_retry_timeout", "60s")

	timeout, err := parseOptionalDuration(v.GetString("geocoder_timeout"))
	if err != nil {
		panic("failed to parse request timeout from configuration")
	}

	retryTimeout, err := time.ParseDuration(v.GetString("geocoder_retry_timeout"))
	if err != nil {
		panic("failed to parse retry timeout from configuration")
	}

	return &Config{
		Env:          v.GetString("geocoder_env"),
		APIKey:       v.GetString("google_api_key"),
		ClientID:     v.GetString("google_client_id"),
		ClientSecret: v.GetString("google_client_secret"),
		Scheme:       v.GetString("geocoder_scheme"),
		Timeout:      timeout,
		RetryTimeout: retryTimeout,
	}
}

func parseOptionalDuration(value string) (time.Duration, error) {
	if value == "" {
		return 0, nil
	}

	return time.ParseDuration(value)
}
