package config_test

import (
	"fmt"
	"log/slog"
	"os"
	"strings"
	"testing"
	"time"

	"pricing-ai-gateway/internal/config"

	"github.com/stretchr/testify/require"
)

var allEnv = []string{
	config.EnvPort,
	config.EnvAllowOrigins,
	config.EnvPricingAPIURL,
	config.EnvPricingInternalKey,
	config.EnvGatewayKey,
	config.EnvUpstreamTimeout,
	config.EnvRequestLogging,
	config.EnvLogLevel,
	config.EnvLogFormat,
	"TEST_PRICING_URL",
	"TEST_INTERNAL_KEY",
}

// setupEnviron clears every variable the loader reads and sets the given ones.
func setupEnviron(t *testing.T, env map[string]string) {
	t.Helper()
	for _, key := range allEnv {
		t.Setenv(key, "")
		require.NoError(t, os.Unsetenv(key))
	}
	for key, val := range env {
		t.Setenv(key, val)
	}
}

func requiredEnv() map[string]string {
	return map[string]string{
		config.EnvPricingAPIURL:      "http://pricing.internal:8000",
		config.EnvPricingInternalKey: "internal",
		config.EnvGatewayKey:         "good",
	}
}

func TestLoad(t *testing.T) {
	t.Run("ok, env only with defaults", func(t *testing.T) {
		setupEnviron(t, requiredEnv())

		got, err := config.Load("")
		require.NoError(t, err)

		want := config.Default()
		want.PricingAPIURL = "http://pricing.internal:8000"
		want.PricingInternalKey = "internal"
		want.GatewayKey = "good"
		require.Equal(t, &want, got)
	})

	t.Run("ok, missing config file is skipped", func(t *testing.T) {
		setupEnviron(t, requiredEnv())

		got, err := config.Load("./testdata/does-not-exist.yaml")
		require.NoError(t, err)
		require.Equal(t, "3000", got.Port)
	})

	t.Run("ok, yaml then env overrides", func(t *testing.T) {
		setupEnviron(t, map[string]string{
			"TEST_PRICING_URL":       "https://pricing.example.com",
			config.EnvGatewayKey:     "env-gateway-key",
			config.EnvLogLevel:       "debug",
			config.EnvRequestLogging: "false",
		})

		got, err := config.Load("./testdata/config.yaml")
		require.NoError(t, err)

		require.Equal(t, "8080", got.Port)
		require.Equal(t, "https://pricing.example.com", got.PricingAPIURL)
		require.Equal(t, "from-yaml-default", got.PricingInternalKey)
		require.Equal(t, "env-gateway-key", got.GatewayKey)
		require.Equal(t, 5*time.Second, got.UpstreamTimeout)
		require.Equal(t, "text", got.LogFormat)
		require.Equal(t, "debug", got.LogLevel)
		require.False(t, got.RequestLogging)
	})

	t.Run("fail, yaml references unset variable", func(t *testing.T) {
		setupEnviron(t, requiredEnv())

		_, err := config.Load("./testdata/config.yaml")
		require.Error(t, err)
		require.Contains(t, err.Error(), "TEST_PRICING_URL")
	})

	t.Run("fail, missing credentials are all reported", func(t *testing.T) {
		setupEnviron(t, nil)

		_, err := config.Load("")
		require.Error(t, err)
		require.Contains(t, err.Error(), config.EnvPricingAPIURL)
		require.Contains(t, err.Error(), config.EnvPricingInternalKey)
		require.Contains(t, err.Error(), config.EnvGatewayKey)
	})

	t.Run("fail, malformed env values are all reported", func(t *testing.T) {
		env := requiredEnv()
		env[config.EnvUpstreamTimeout] = "soon"
		env[config.EnvRequestLogging] = "maybe"
		setupEnviron(t, env)

		_, err := config.Load("")
		require.Error(t, err)
		require.Contains(t, err.Error(), config.EnvUpstreamTimeout)
		require.Contains(t, err.Error(), config.EnvRequestLogging)
	})
}

func TestValidate(t *testing.T) {
	valid := func() config.Config {
		cfg := config.Default()
		cfg.PricingAPIURL = "http://pricing.internal"
		cfg.PricingInternalKey = "internal"
		cfg.GatewayKey = "good"
		return cfg
	}

	tests := map[string]struct {
		mutate  func(cfg *config.Config)
		wantErr string
	}{
		"ok": {
			mutate: func(cfg *config.Config) {},
		},
		"relative upstream url": {
			mutate:  func(cfg *config.Config) { cfg.PricingAPIURL = "/analytics" },
			wantErr: config.EnvPricingAPIURL,
		},
		"non http upstream url": {
			mutate:  func(cfg *config.Config) { cfg.PricingAPIURL = "ftp://pricing.internal" },
			wantErr: config.EnvPricingAPIURL,
		},
		"empty gateway key": {
			mutate:  func(cfg *config.Config) { cfg.GatewayKey = "" },
			wantErr: config.EnvGatewayKey,
		},
		"negative timeout": {
			mutate:  func(cfg *config.Config) { cfg.UpstreamTimeout = -time.Second },
			wantErr: config.EnvUpstreamTimeout,
		},
		"unknown log format": {
			mutate:  func(cfg *config.Config) { cfg.LogFormat = "xml" },
			wantErr: config.EnvLogFormat,
		},
		"empty port": {
			mutate:  func(cfg *config.Config) { cfg.Port = "" },
			wantErr: config.EnvPort,
		},
	}

	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			cfg := valid()
			tc.mutate(&cfg)

			err := cfg.Validate()
			if tc.wantErr == "" {
				require.NoError(t, err)
				return
			}
			require.Error(t, err)
			require.Contains(t, err.Error(), tc.wantErr)
		})
	}
}

func TestLogValueHidesSecrets(t *testing.T) {
	cfg := config.Default()
	cfg.PricingAPIURL = "http://pricing.internal"
	cfg.PricingInternalKey = "super-secret-internal"
	cfg.GatewayKey = "super-secret-gateway"

	var sb strings.Builder
	logger := slog.New(slog.NewTextHandler(&sb, nil))
	logger.Info("config", "cfg", cfg)

	out := sb.String()
	require.NotContains(t, out, "super-secret")
	require.Contains(t, out, "pricing_key_set=true")
	require.Contains(t, out, "gateway_key_set=true")
	require.Contains(t, out, fmt.Sprintf("pricing_api_url=%s", cfg.PricingAPIURL))
}
