package config

import (
	"fmt"
	"net/url"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

// fileConfig is the on-disk YAML shape. Durations are Go duration strings
// ("10s", "250ms"); zero values fall back to DefaultConfig.
type fileConfig struct {
	PodURL                string `yaml:"pod_url"`
	Backend               string `yaml:"backend"`
	Size                  int    `yaml:"size"`
	RequestTimeout        string `yaml:"request_timeout"`
	DialTimeout           string `yaml:"dial_timeout"`
	TLSTimeout            string `yaml:"tls_timeout"`
	IdleConnTimeout       string `yaml:"idle_conn_timeout"`
	MaxConnsPerHost       int    `yaml:"max_conns_per_host"`
	InsecureSkipVerify    bool   `yaml:"insecure_skip_verify"`
	ResponseHeaderTimeout string `yaml:"response_header_timeout"`
}

// Load reads the YAML config file, applies SOLIDPOD_* environment variable
// overrides, and validates the result.
func Load(configPath string) (Config, error) {
	data, err := os.ReadFile(configPath)
	if err != nil {
		return Config{}, fmt.Errorf("failed to read config file: %w", err)
	}

	var fc fileConfig
	if err := yaml.Unmarshal(data, &fc); err != nil {
		return Config{}, fmt.Errorf("failed to parse config: %w", err)
	}

	cfg := DefaultConfig()
	cfg.PodURL = fc.PodURL
	if fc.Backend != "" {
		cfg.Backend = fc.Backend
	}
	if fc.Size != 0 {
		cfg.Size = fc.Size
	}
	if fc.MaxConnsPerHost != 0 {
		cfg.MaxConnsPerHost = fc.MaxConnsPerHost
	}
	cfg.InsecureSkipVerify = fc.InsecureSkipVerify

	for _, d := range []struct {
		raw  string
		name string
		dst  *time.Duration
	}{
		{fc.RequestTimeout, "request_timeout", &cfg.RequestTimeout},
		{fc.DialTimeout, "dial_timeout", &cfg.DialTimeout},
		{fc.TLSTimeout, "tls_timeout", &cfg.TLSTimeout},
		{fc.IdleConnTimeout, "idle_conn_timeout", &cfg.IdleConnTimeout},
		{fc.ResponseHeaderTimeout, "response_header_timeout", &cfg.ResponseHeaderTimeout},
	} {
		if d.raw == "" {
			continue
		}
		v, err := time.ParseDuration(d.raw)
		if err != nil {
			return Config{}, fmt.Errorf("invalid %s %q: %w", d.name, d.raw, err)
		}
		*d.dst = v
	}

	applyEnvOverrides(&cfg)

	if err := Validate(&cfg); err != nil {
		return Config{}, fmt.Errorf("config validation failed: %w", err)
	}
	return cfg, nil
}

// Validate checks the configuration and fills defaulted fields in place.
func Validate(cfg *Config) error {
	if cfg.PodURL == "" {
		return fmt.Errorf("pod_url is required")
	}
	u, err := url.Parse(cfg.PodURL)
	if err != nil {
		return fmt.Errorf("invalid pod_url %q: %w", cfg.PodURL, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("pod_url must be an absolute http(s) URL: %s", cfg.PodURL)
	}
	if cfg.Backend == "" {
		cfg.Backend = BackendResty
	}
	if cfg.Backend != BackendResty && cfg.Backend != BackendFiber {
		return fmt.Errorf("invalid backend: %s (must be %q or %q)", cfg.Backend, BackendResty, BackendFiber)
	}
	if cfg.Size <= 0 {
		cfg.Size = DefaultConfig().Size
	}
	return nil
}

// applyEnvOverrides applies environment variable overrides, prefixed with
// SOLIDPOD_.
func applyEnvOverrides(cfg *Config) {
	if val := os.Getenv("SOLIDPOD_POD_URL"); val != "" {
		cfg.PodURL = val
	}
	if val := os.Getenv("SOLIDPOD_BACKEND"); val != "" {
		cfg.Backend = val
	}
	if val := os.Getenv("SOLIDPOD_POOL_SIZE"); val != "" {
		if n, err := strconv.Atoi(val); err == nil {
			cfg.Size = n
		}
	}
	if val := os.Getenv("SOLIDPOD_INSECURE_SKIP_VERIFY"); val != "" {
		if b, err := strconv.ParseBool(val); err == nil {
			cfg.InsecureSkipVerify = b
		}
	}
}
