package config

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"slices"
	"strings"

	"gopkg.in/yaml.v3"

	"voicedetect/common/detector"
)

var validLogLevels = []string{"debug", "info", "warn", "error"}

// Load reads the YAML file at path on top of [Default], applies environment
// overrides and validates the result. An empty path skips the file.
func Load(path string) (Config, error) {
	cfg := Default()
	if path != "" {
		f, err := os.Open(path)
		if err != nil {
			return Config{}, fmt.Errorf("config: open %q: %w", path, err)
		}
		defer f.Close()
		if err := decode(f, &cfg); err != nil {
			return Config{}, fmt.Errorf("config: parse %q: %w", path, err)
		}
	}
	ApplyEnv(&cfg, os.Getenv)
	if err := Validate(cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// LoadFromReader decodes YAML from r on top of [Default] and validates it.
// Environment overrides are not applied.
func LoadFromReader(r io.Reader) (Config, error) {
	cfg := Default()
	if err := decode(r, &cfg); err != nil {
		return Config{}, err
	}
	if err := Validate(cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func decode(r io.Reader, cfg *Config) error {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return fmt.Errorf("config: decode yaml: %w", err)
	}
	return nil
}

// ApplyEnv overrides cfg from the environment, using the same variable names
// the service has always honoured.
func ApplyEnv(cfg *Config, getenv func(string) string) {
	if v := getenv("SERVER_ADDR"); v != "" {
		cfg.Server.Addr = v
	}
	if v := getenv("GIN_MODE"); v != "" {
		cfg.Server.GinMode = v
	}
	if v := getenv("LOG_LEVEL"); v != "" {
		cfg.Server.LogLevel = strings.ToLower(v)
	}
	if v := getenv("ELASTICSEARCH_URL"); v != "" {
		cfg.Audit.Addresses = strings.Split(v, ",")
	}
	if v := getenv("AUTH_MODE"); v != "" {
		cfg.Auth.Mode = AuthMode(v)
	}
}

// Validate checks cfg and returns every problem found, joined.
func Validate(cfg Config) error {
	var errs []error

	if cfg.Server.Addr == "" {
		errs = append(errs, errors.New("server.addr is required"))
	}
	if !slices.Contains(validLogLevels, cfg.Server.LogLevel) {
		errs = append(errs, fmt.Errorf("server.log_level %q is invalid; valid values: %s", cfg.Server.LogLevel, strings.Join(validLogLevels, ", ")))
	}
	if f := cfg.Server.LogFormat; f != "text" && f != "json" {
		errs = append(errs, fmt.Errorf("server.log_format %q is invalid; valid values: text, json", f))
	}
	if cfg.Server.MaxPayloadBytes <= 0 {
		errs = append(errs, fmt.Errorf("server.max_payload_bytes must be positive, got %d", cfg.Server.MaxPayloadBytes))
	}
	if len(cfg.Server.AllowOrigins) == 0 {
		errs = append(errs, errors.New("server.allow_origins must not be empty"))
	}
	if cfg.Server.ShutdownTimeout <= 0 {
		errs = append(errs, errors.New("server.shutdown_timeout must be positive"))
	}

	if !cfg.Auth.Mode.IsValid() {
		errs = append(errs, fmt.Errorf("auth.mode %q is invalid; valid values: static, env, okta", cfg.Auth.Mode))
	}
	if cfg.Auth.Header == "" {
		errs = append(errs, errors.New("auth.header is required"))
	}
	switch cfg.Auth.Mode {
	case AuthStatic:
		if cfg.Auth.APIKey == "" {
			errs = append(errs, errors.New("auth.api_key is required when auth.mode is static"))
		}
	case AuthEnv:
		if cfg.Auth.APIKeyEnv == "" {
			errs = append(errs, errors.New("auth.api_key_env is required when auth.mode is env"))
		}
	case AuthOkta:
		if cfg.Auth.Okta.Issuer == "" {
			errs = append(errs, errors.New("auth.okta.issuer is required when auth.mode is okta"))
		}
	}
	if cfg.Auth.Mode != AuthStatic && cfg.Auth.APIKey != "" {
		slog.Warn("auth.api_key is ignored unless auth.mode is static", "mode", cfg.Auth.Mode)
	}

	if len(cfg.Detector.Languages) == 0 {
		errs = append(errs, errors.New("detector.languages must not be empty"))
	}
	for i, l := range cfg.Detector.Languages {
		if !l.IsValid() {
			errs = append(errs, fmt.Errorf("detector.languages[%d] %q is not supported", i, l))
		}
	}

	if cfg.Audit.Enabled {
		if len(cfg.Audit.Addresses) == 0 {
			errs = append(errs, errors.New("audit.addresses is required when audit is enabled"))
		}
		if cfg.Audit.Index == "" {
			errs = append(errs, errors.New("audit.index is required when audit is enabled"))
		}
		if cfg.Audit.QueueSize <= 0 {
			errs = append(errs, fmt.Errorf("audit.queue_size must be positive, got %d", cfg.Audit.QueueSize))
		}
	}

	if cfg.Metrics.Enabled && !strings.HasPrefix(cfg.Metrics.Path, "/") {
		errs = append(errs, fmt.Errorf("metrics.path %q must start with /", cfg.Metrics.Path))
	}

	return errors.Join(errs...)
}

// Languages returns the configured languages as detector values.
func (c Config) Languages() []detector.Language {
	return append([]detector.Language(nil), c.Detector.Languages...)
}
