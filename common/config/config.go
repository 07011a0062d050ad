// Package config holds the service configuration. A Config is built once at
// startup from an optional YAML file plus environment overrides, validated,
// and then passed by value into the request path; nothing mutates it later.
package config

import (
	"time"

	"voicedetect/common/detector"
)

// AuthMode selects the credential source used by the authenticator.
type AuthMode string

const (
	// AuthStatic compares against the key written in the config file.
	AuthStatic AuthMode = "static"
	// AuthEnv reads the key from an environment variable at startup.
	AuthEnv AuthMode = "env"
	// AuthOkta verifies bearer access tokens issued by Okta.
	AuthOkta AuthMode = "okta"
)

// IsValid reports whether m is a known mode.
func (m AuthMode) IsValid() bool {
	switch m {
	case AuthStatic, AuthEnv, AuthOkta:
		return true
	}
	return false
}

// Config is the root configuration.
type Config struct {
	Server   ServerConfig   `yaml:"server"`
	Auth     AuthConfig     `yaml:"auth"`
	Detector DetectorConfig `yaml:"detector"`
	Audit    AuditConfig    `yaml:"audit"`
	Metrics  MetricsConfig  `yaml:"metrics"`
}

// ServerConfig configures the HTTP listener.
type ServerConfig struct {
	Addr            string        `yaml:"addr"`
	GinMode         string        `yaml:"gin_mode"`
	LogLevel        string        `yaml:"log_level"`
	LogFormat       string        `yaml:"log_format"`
	MaxPayloadBytes int64         `yaml:"max_payload_bytes"`
	ReadTimeout     time.Duration `yaml:"read_timeout"`
	WriteTimeout    time.Duration `yaml:"write_timeout"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout"`
	AllowOrigins    []string      `yaml:"allow_origins"`
}

// AuthConfig configures caller authentication.
type AuthConfig struct {
	Mode      AuthMode   `yaml:"mode"`
	Header    string     `yaml:"header"`
	APIKey    string     `yaml:"api_key"`
	APIKeyEnv string     `yaml:"api_key_env"`
	Okta      OktaConfig `yaml:"okta"`
}

// OktaConfig configures JWT verification for [AuthOkta].
type OktaConfig struct {
	Issuer   string `yaml:"issuer"`
	Audience string `yaml:"audience"`
	ClientID string `yaml:"client_id"`
}

// DetectorConfig configures the detection pipeline.
type DetectorConfig struct {
	// Languages restricts accepted languages. Empty means all supported.
	Languages []detector.Language `yaml:"languages"`
}

// AuditConfig configures the Elasticsearch audit trail.
type AuditConfig struct {
	Enabled   bool     `yaml:"enabled"`
	Addresses []string `yaml:"addresses"`
	Index     string   `yaml:"index"`
	Username  string   `yaml:"username"`
	Password  string   `yaml:"password"`
	QueueSize int      `yaml:"queue_size"`
}

// MetricsConfig configures the Prometheus scrape endpoint.
type MetricsConfig struct {
	Enabled bool   `yaml:"enabled"`
	Path    string `yaml:"path"`
}

// Default returns a runnable configuration. The API key still has to come
// from VOICE_API_KEY.
func Default() Config {
	return Config{
		Server: ServerConfig{
			Addr:            ":8000",
			GinMode:         "release",
			LogLevel:        "info",
			LogFormat:       "text",
			MaxPayloadBytes: 10 << 20,
			ReadTimeout:     15 * time.Second,
			WriteTimeout:    15 * time.Second,
			ShutdownTimeout: 5 * time.Second,
			AllowOrigins:    []string{"*"},
		},
		Auth: AuthConfig{
			Mode:      AuthEnv,
			Header:    "X-API-Key",
			APIKeyEnv: "VOICE_API_KEY",
		},
		Detector: DetectorConfig{
			Languages: append([]detector.Language(nil), detector.SupportedLanguages...),
		},
		Audit: AuditConfig{
			Addresses: []string{"http://localhost:9200"},
			Index:     "voice-detections",
			QueueSize: 256,
		},
		Metrics: MetricsConfig{
			Enabled: true,
			Path:    "/metrics",
		},
	}
}
