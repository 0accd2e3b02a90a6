// Package config provides functionality for managing configuration options
// for the application using command-line flags, a JSON config file and
// environment variables.
package config

import (
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/caarlos0/env/v11"
)

// Options holds the configuration values for the application.
type Options struct {
	// Port defines the server's listening address (ip:port).
	Port string `json:"server_address" env:"SERVER_ADDRESS"`

	// DatabaseDSN holds the database connection string for the user mirror.
	// An empty DSN keeps the server purely in-memory.
	DatabaseDSN string `json:"database_dsn" env:"DATABASE_DSN"`

	// Config is the path to the Config file.
	Config string `json:"-" env:"CONFIG"`

	// PagesDir is the directory holding the HTML pages and stylesheet.
	PagesDir string `json:"pages_dir" env:"PAGES_DIR"`

	// LogLevel is a zap level name.
	LogLevel string `json:"log_level" env:"LOG_LEVEL"`

	// TLSCert and TLSKey enable HTTPS when both are set.
	TLSCert string `json:"tls_cert" env:"TLS_CERT"`
	TLSKey  string `json:"tls_key" env:"TLS_KEY"`
}

// UseTLS reports whether both a certificate and a key are configured.
func (o *Options) UseTLS() bool {
	return o.TLSCert != "" && o.TLSKey != ""
}

// newFlagSet binds the command-line flags and their defaults to o.
func newFlagSet(o *Options) *flag.FlagSet {
	fs := flag.NewFlagSet("server", flag.ContinueOnError)
	fs.StringVar(&o.Port, "a", "localhost:8080", "run on ip:port server")
	fs.StringVar(&o.DatabaseDSN, "d", "", "db address")
	fs.StringVar(&o.Config, "config", "config.json", "path to config file")
	fs.StringVar(&o.Config, "c", "config.json", "path to config file (shorthand)")
	fs.StringVar(&o.PagesDir, "p", "pages", "directory with html pages")
	fs.StringVar(&o.LogLevel, "l", "info", "log level")
	fs.StringVar(&o.TLSCert, "tls-cert", "", "path to TLS certificate")
	fs.StringVar(&o.TLSKey, "tls-key", "", "path to TLS private key")
	return fs
}

// Load builds Options from args. Precedence, lowest first: flag defaults
// and values, the JSON config file, environment variables.
func Load(args []string) (*Options, error) {
	options := &Options{}
	if err := newFlagSet(options).Parse(args); err != nil {
		return nil, err
	}

	if configPath := os.Getenv("CONFIG"); configPath != "" {
		options.Config = configPath
	}

	if options.Config != "" {
		if _, err := os.Stat(options.Config); err == nil {
			data, err := os.ReadFile(options.Config)
			if err != nil {
				return nil, fmt.Errorf("error while reading config file: %w", err)
			}
			if err := json.Unmarshal(data, options); err != nil {
				return nil, fmt.Errorf("error while parsing config file: %w", err)
			}
		}
	}

	if err := env.Parse(options); err != nil {
		return nil, fmt.Errorf("failed to parse env: %w", err)
	}

	return options, nil
}

// Parse loads Options from the process arguments and environment,
// exiting on error.
func Parse() *Options {
	options, err := Load(os.Args[1:])
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	return options
}
