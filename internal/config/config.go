// Package config loads service settings.
//
// Settings come from three layers, later ones winning:
//
//  1. built-in defaults
//  2. an optional YAML file named by CONFIG_FILE
//  3. environment variables (a .env file is loaded by the server package)
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

var ErrInvalidConfig = errors.New("invalid configuration")

// ConfigError points at the offending setting.
type ConfigError struct {
	Field   string
	Message string
	Err     error
}

func (e *ConfigError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("config error in '%s': %s", e.Field, e.Message)
	}
	return fmt.Sprintf("config error: %s", e.Message)
}

func (e *ConfigError) Unwrap() error {
	if e.Err != nil {
		return e.Err
	}
	return ErrInvalidConfig
}

type Config struct {
	Port int `yaml:"port"`

	// SourceURL is the fixed remote document the fetch endpoint loads.
	SourceURL    string        `yaml:"source-url"`
	FetchTimeout time.Duration `yaml:"fetch-timeout"`

	SessionTTL    time.Duration `yaml:"session-ttl"`
	SweepInterval time.Duration `yaml:"sweep-interval"`

	MaxUploadSize     int64 `yaml:"max-upload-size"`
	MaxSignatureSize  int64 `yaml:"max-signature-size"`
	SignatureMaxWidth int   `yaml:"signature-max-width"`

	DownloadName   string   `yaml:"download-name"`
	AllowedOrigins []string `yaml:"allowed-origins"`

	// PDFCPUConfigDir lets pdfcpu create its config directory under the
	// user's home. Off by default so the service runs on read-only hosts.
	PDFCPUConfigDir bool `yaml:"pdfcpu-config-dir"`
}

func Default() *Config {
	return &Config{
		Port:              8080,
		SourceURL:         "https://pdf-lib.js.org/assets/with_update_sections.pdf",
		FetchTimeout:      30 * time.Second,
		SessionTTL:        30 * time.Minute,
		SweepInterval:     5 * time.Minute,
		MaxUploadSize:     25 * 1024 * 1024,
		MaxSignatureSize:  5 * 1024 * 1024,
		SignatureMaxWidth: 1200,
		DownloadName:      "file.pdf",
		AllowedOrigins:    []string{"https://*", "http://*"},
	}
}

// Load builds the configuration from defaults, CONFIG_FILE and the
// environment.
func Load() (*Config, error) {
	cfg := Default()
	if path := os.Getenv("CONFIG_FILE"); path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, &ConfigError{Field: "CONFIG_FILE", Message: err.Error(), Err: err}
		}
		if err := cfg.parseYAML(data); err != nil {
			return nil, err
		}
	}
	if err := cfg.applyEnv(os.Getenv); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Parse reads YAML on top of the defaults.
func Parse(data []byte) (*Config, error) {
	cfg := Default()
	if err := cfg.parseYAML(data); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) parseYAML(data []byte) error {
	if err := yaml.Unmarshal(data, c); err != nil {
		return &ConfigError{Message: fmt.Sprintf("failed to parse YAML: %v", err), Err: err}
	}
	return nil
}

func (c *Config) applyEnv(getenv func(string) string) error {
	if v := getenv("PORT"); v != "" {
		port, err := strconv.Atoi(v)
		if err != nil {
			return &ConfigError{Field: "PORT", Message: "must be an integer", Err: err}
		}
		c.Port = port
	}
	if v := getenv("SOURCE_URL"); v != "" {
		c.SourceURL = v
	}
	durations := map[string]*time.Duration{
		"FETCH_TIMEOUT":  &c.FetchTimeout,
		"SESSION_TTL":    &c.SessionTTL,
		"SWEEP_INTERVAL": &c.SweepInterval,
	}
	for key, dst := range durations {
		if v := getenv(key); v != "" {
			d, err := time.ParseDuration(v)
			if err != nil {
				return &ConfigError{Field: key, Message: "must be a duration like 30s", Err: err}
			}
			*dst = d
		}
	}
	sizes := map[string]*int64{
		"MAX_UPLOAD_SIZE":    &c.MaxUploadSize,
		"MAX_SIGNATURE_SIZE": &c.MaxSignatureSize,
	}
	for key, dst := range sizes {
		if v := getenv(key); v != "" {
			n, err := strconv.ParseInt(v, 10, 64)
			if err != nil {
				return &ConfigError{Field: key, Message: "must be a byte count", Err: err}
			}
			*dst = n
		}
	}
	if v := getenv("SIGNATURE_MAX_WIDTH"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return &ConfigError{Field: "SIGNATURE_MAX_WIDTH", Message: "must be an integer", Err: err}
		}
		c.SignatureMaxWidth = n
	}
	if v := getenv("DOWNLOAD_NAME"); v != "" {
		c.DownloadName = v
	}
	if v := getenv("ALLOWED_ORIGINS"); v != "" {
		c.AllowedOrigins = strings.Split(v, ",")
		for i := range c.AllowedOrigins {
			c.AllowedOrigins[i] = strings.TrimSpace(c.AllowedOrigins[i])
		}
	}
	if v := getenv("PDFCPU_CONFIG_DIR"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return &ConfigError{Field: "PDFCPU_CONFIG_DIR", Message: "must be a boolean", Err: err}
		}
		c.PDFCPUConfigDir = b
	}
	return nil
}

func (c *Config) Validate() error {
	switch {
	case c.Port < 0 || c.Port > 65535:
		return &ConfigError{Field: "port", Message: "must be between 0 and 65535"}
	case c.SessionTTL <= 0:
		return &ConfigError{Field: "session-ttl", Message: "must be positive"}
	case c.SweepInterval <= 0:
		return &ConfigError{Field: "sweep-interval", Message: "must be positive"}
	case c.MaxUploadSize <= 0:
		return &ConfigError{Field: "max-upload-size", Message: "must be positive"}
	case c.MaxSignatureSize <= 0:
		return &ConfigError{Field: "max-signature-size", Message: "must be positive"}
	case c.SignatureMaxWidth < 0:
		return &ConfigError{Field: "signature-max-width", Message: "must not be negative"}
	case c.DownloadName == "":
		return &ConfigError{Field: "download-name", Message: "required field is missing"}
	}
	return nil
}

func (c *Config) Addr() string {
	return fmt.Sprintf(":%d", c.Port)
}
