// Package config provides the server configuration, read from an optional
// config file and environment variables.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
)

const (
	// DefaultUsername is the single account allowed to use the API.
	DefaultUsername = "admin"
	// DefaultPassword is hashed at startup and never stored in plaintext.
	DefaultPassword = "password"
)

// Options holds the configuration values for the application.
type Options struct {
	// Port defines the server's listening address (ip:port).
	Port string `json:"port" toml:"port"`

	// DatabaseDSN is a SQLite file path, or a postgres:// URL.
	DatabaseDSN string `json:"database_dsn" toml:"database_dsn"`

	// LogLevel is one of debug, info, warn, error.
	LogLevel string `json:"log_level" toml:"log_level"`

	// TLSCertFile and TLSKeyFile enable HTTPS when both are set.
	TLSCertFile string `json:"tls_cert_file" toml:"tls_cert_file"`
	TLSKeyFile  string `json:"tls_key_file" toml:"tls_key_file"`

	// Config is the path to the Config file.
	Config string `json:"-" toml:"-"`
}

// TLSEnabled reports whether both halves of the key pair are configured.
func (o *Options) TLSEnabled() bool {
	return o.TLSCertFile != "" && o.TLSKeyFile != ""
}

// Default returns the built-in configuration.
func Default() *Options {
	return &Options{
		Port:        "localhost:8080",
		DatabaseDSN: "todos.db",
		LogLevel:    "info",
		Config:      "config.json",
	}
}

// Parse builds the configuration: defaults, then the config file named by
// $CONFIG (default config.json, skipped when absent), then environment
// variables.
func Parse() (*Options, error) {
	options := Default()

	if configPath := os.Getenv("CONFIG"); configPath != "" {
		options.Config = configPath
	}

	if options.Config != "" {
		if _, err := os.Stat(options.Config); err == nil {
			if err := LoadFile(options.Config, options); err != nil {
				return nil, err
			}
		}
	}

	applyEnv(options)
	return options, nil
}

// LoadFile decodes the config file at path into options. Files ending in
// .toml are read as TOML, everything else as JSON. Keys missing from the
// file keep their current value.
func LoadFile(path string, options *Options) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("error while reading config file: %w", err)
	}

	if strings.EqualFold(filepath.Ext(path), ".toml") {
		if err := toml.Unmarshal(data, options); err != nil {
			return fmt.Errorf("error while parsing config file: %w", err)
		}
		return nil
	}

	if err := json.Unmarshal(data, options); err != nil {
		return fmt.Errorf("error while parsing config file: %w", err)
	}
	return nil
}

func applyEnv(options *Options) {
	overrides := []struct {
		env    string
		target *string
	}{
		{"SERVER_ADDRESS", &options.Port},
		{"DATABASE_DSN", &options.DatabaseDSN},
		{"LOG_LEVEL", &options.LogLevel},
		{"TLS_CERT_FILE", &options.TLSCertFile},
		{"TLS_KEY_FILE", &options.TLSKeyFile},
	}
	for _, o := range overrides {
		if v := os.Getenv(o.env); v != "" {
			*o.target = v
		}
	}
}
