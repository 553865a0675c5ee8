package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Config holds server-level settings. The research flow itself carries no
// configuration: credential, model and topic arrive from the UI on every
// request and are never written anywhere.
type Config struct {
	Server   ServerConfig   `yaml:"server"`
	Upstream UpstreamConfig `yaml:"upstream"`
	Logging  LoggingConfig  `yaml:"logging"`
	Tracing  TracingConfig  `yaml:"tracing"`
}

type ServerConfig struct {
	Listen string `yaml:"listen"`
	// RateLimitPerMinute bounds requests per client IP. Zero disables the
	// limiter.
	RateLimitPerMinute int `yaml:"rate_limit_per_minute"`
}

type UpstreamConfig struct {
	// BaseURL is the generative language API endpoint, without a trailing
	// slash or version segment.
	BaseURL string `yaml:"base_url"`
	// ProxyURL overrides the environment proxy when set.
	ProxyURL string `yaml:"proxy_url"`

	DialTimeoutSec           int `yaml:"dial_timeout_sec"`
	TLSHandshakeTimeoutSec   int `yaml:"tls_handshake_timeout_sec"`
	ResponseHeaderTimeoutSec int `yaml:"response_header_timeout_sec"`
	ExpectContinueTimeoutSec int `yaml:"expect_continue_timeout_sec"`

	// OpenAICompat advertises the OpenAI-compatible listing endpoint to the
	// model directory resolver. When false that strategy is skipped.
	OpenAICompat *bool `yaml:"openai_compat"`
}

type LoggingConfig struct {
	Debug   bool   `yaml:"debug"`
	LogFile string `yaml:"log_file"`
}

type TracingConfig struct {
	// OTLPEndpoint enables span export when non-empty (host:port, gRPC).
	OTLPEndpoint string `yaml:"otlp_endpoint"`
	ServiceName  string `yaml:"service_name"`
}

const defaultBaseURL = "https://generativelanguage.googleapis.com"

// Default returns a config with all defaults applied.
func Default() *Config {
	compat := true
	return &Config{
		Server: ServerConfig{
			Listen:             ":8085",
			RateLimitPerMinute: 60,
		},
		Upstream: UpstreamConfig{
			BaseURL:      defaultBaseURL,
			OpenAICompat: &compat,
		},
		Tracing: TracingConfig{
			ServiceName: "gemini-research",
		},
	}
}

// Load reads the YAML file at path on top of the defaults. A missing file is
// not an error; the defaults are returned unchanged.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	cfg.normalize()
	return cfg, nil
}

func (c *Config) normalize() {
	c.Upstream.BaseURL = strings.TrimSuffix(strings.TrimSpace(c.Upstream.BaseURL), "/")
	if c.Upstream.BaseURL == "" {
		c.Upstream.BaseURL = defaultBaseURL
	}
	if strings.TrimSpace(c.Server.Listen) == "" {
		c.Server.Listen = ":8085"
	}
	if c.Upstream.OpenAICompat == nil {
		compat := true
		c.Upstream.OpenAICompat = &compat
	}
	if strings.TrimSpace(c.Tracing.ServiceName) == "" {
		c.Tracing.ServiceName = "gemini-research"
	}
}

// OpenAICompatEnabled reports whether the OpenAI-compatible listing endpoint
// should be probed.
func (c *Config) OpenAICompatEnabled() bool {
	return c.Upstream.OpenAICompat == nil || *c.Upstream.OpenAICompat
}

// DurationOrDefault converts a seconds field to a duration, falling back when
// the field is unset.
func DurationOrDefault(seconds int, fallback time.Duration) time.Duration {
	if seconds > 0 {
		return time.Duration(seconds) * time.Second
	}
	return fallback
}
