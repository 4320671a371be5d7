package config

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

const (
	EnvPort               = "APP_PORT"
	EnvAllowOrigins       = "ALLOW_ORIGINS"
	EnvPricingAPIURL      = "PRICING_API_URL"
	EnvPricingInternalKey = "PRICING_INTERNAL_KEY"
	EnvGatewayKey         = "AI_GATEWAY_KEY"
	EnvUpstreamTimeout    = "UPSTREAM_TIMEOUT"
	EnvRequestLogging     = "REQUEST_LOGGING"
	EnvLogLevel           = "LOG_LEVEL"
	EnvLogFormat          = "LOG_FORMAT"
)

// Config는 시작 시 한 번 만들어져 각 컴포넌트에 전달되는 게이트웨이 설정입니다.
type Config struct {
	Port               string        `yaml:"port"`
	AllowOrigins       string        `yaml:"allow_origins"`
	PricingAPIURL      string        `yaml:"pricing_api_url"`
	PricingInternalKey string        `yaml:"pricing_internal_key"`
	GatewayKey         string        `yaml:"gateway_key"`
	UpstreamTimeout    time.Duration `yaml:"upstream_timeout"`
	RequestLogging     bool          `yaml:"request_logging"`
	LogLevel           string        `yaml:"log_level"`
	LogFormat          string        `yaml:"log_format"`
}

func Default() Config {
	return Config{
		Port:            "3000",
		AllowOrigins:    "*",
		UpstreamTimeout: 30 * time.Second,
		RequestLogging:  true,
		LogLevel:        "info",
		LogFormat:       "json",
	}
}

// Load는 기본값 -> YAML 파일(선택) -> 환경 변수 순서로 설정을 병합한 뒤 검증합니다.
func Load(yamlPath string) (*Config, error) {
	cfg := Default()

	if yamlPath != "" {
		f, err := os.Open(yamlPath)
		switch {
		case errors.Is(err, os.ErrNotExist):
			// 설정 파일은 선택 사항
		case err != nil:
			return nil, fmt.Errorf("failed to open config file: %w", err)
		default:
			defer f.Close()
			if err := MergeYAML(&cfg, f); err != nil {
				return nil, err
			}
		}
	}

	if err := MergeEnv(&cfg); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, nil
}

// MergeYAML merges YAML into cfg. `${VAR}` and `${VAR:-default}` are
// expanded from the environment first; an unset VAR without a default is an error.
func MergeYAML(cfg *Config, src io.Reader) error {
	raw, err := io.ReadAll(src)
	if err != nil {
		return fmt.Errorf("failed to read config file: %w", err)
	}

	var missing []string
	expanded := os.Expand(string(raw), func(key string) string {
		if i := strings.Index(key, ":-"); i != -1 {
			if val, ok := os.LookupEnv(key[:i]); ok {
				return val
			}
			return key[i+2:]
		}
		val, ok := os.LookupEnv(key)
		if !ok {
			missing = append(missing, key)
		}
		return val
	})
	if len(missing) > 0 {
		return fmt.Errorf("config file expects the following environment variables to be set: %v", missing)
	}

	if err := yaml.Unmarshal([]byte(expanded), cfg); err != nil {
		return fmt.Errorf("failed to unmarshal config file: %w", err)
	}
	return nil
}

var envMappings = map[string]func(cfg *Config, val string) error{
	EnvPort:               func(cfg *Config, val string) error { cfg.Port = val; return nil },
	EnvAllowOrigins:       func(cfg *Config, val string) error { cfg.AllowOrigins = val; return nil },
	EnvPricingAPIURL:      func(cfg *Config, val string) error { cfg.PricingAPIURL = val; return nil },
	EnvPricingInternalKey: func(cfg *Config, val string) error { cfg.PricingInternalKey = val; return nil },
	EnvGatewayKey:         func(cfg *Config, val string) error { cfg.GatewayKey = val; return nil },
	EnvUpstreamTimeout: func(cfg *Config, val string) error {
		d, err := time.ParseDuration(val)
		if err != nil {
			return err
		}
		cfg.UpstreamTimeout = d
		return nil
	},
	EnvRequestLogging: func(cfg *Config, val string) error {
		b, err := strconv.ParseBool(val)
		if err != nil {
			return err
		}
		cfg.RequestLogging = b
		return nil
	},
	EnvLogLevel:  func(cfg *Config, val string) error { cfg.LogLevel = val; return nil },
	EnvLogFormat: func(cfg *Config, val string) error { cfg.LogFormat = val; return nil },
}

// MergeEnv는 설정된 환경 변수만 덮어씁니다. 첫 오류에서 멈추지 않고 모든 오류를 모읍니다.
func MergeEnv(cfg *Config) error {
	var errs error
	for key, apply := range envMappings {
		val, ok := os.LookupEnv(key)
		if !ok {
			continue
		}
		if err := apply(cfg, strings.TrimSpace(val)); err != nil {
			errs = errors.Join(errs, fmt.Errorf("error for env variable %s: %w", key, err))
		}
	}
	return errs
}

func (c *Config) Validate() error {
	var errs error

	if c.Port == "" {
		errs = errors.Join(errs, fmt.Errorf("%s must not be empty", EnvPort))
	}

	if c.PricingAPIURL == "" {
		errs = errors.Join(errs, fmt.Errorf("%s is required", EnvPricingAPIURL))
	} else if u, err := url.Parse(c.PricingAPIURL); err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		errs = errors.Join(errs, fmt.Errorf("%s must be an absolute http(s) URL, got %q", EnvPricingAPIURL, c.PricingAPIURL))
	}

	if c.PricingInternalKey == "" {
		errs = errors.Join(errs, fmt.Errorf("%s is required", EnvPricingInternalKey))
	}
	if c.GatewayKey == "" {
		errs = errors.Join(errs, fmt.Errorf("%s is required", EnvGatewayKey))
	}

	if c.UpstreamTimeout < 0 {
		errs = errors.Join(errs, fmt.Errorf("%s must not be negative", EnvUpstreamTimeout))
	}

	switch strings.ToLower(c.LogFormat) {
	case "json", "text":
	default:
		errs = errors.Join(errs, fmt.Errorf("%s must be json or text, got %q", EnvLogFormat, c.LogFormat))
	}

	return errs
}

// LogValue는 비밀 값 대신 존재 여부만 노출합니다.
func (c Config) LogValue() slog.Value {
	return slog.GroupValue(
		slog.String("port", c.Port),
		slog.String("allow_origins", c.AllowOrigins),
		slog.String("pricing_api_url", c.PricingAPIURL),
		slog.Bool("pricing_key_set", c.PricingInternalKey != ""),
		slog.Bool("gateway_key_set", c.GatewayKey != ""),
		slog.Duration("upstream_timeout", c.UpstreamTimeout),
		slog.Bool("request_logging", c.RequestLogging),
		slog.String("log_level", c.LogLevel),
		slog.String("log_format", c.LogFormat),
	)
}
