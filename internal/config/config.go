// Package config loads the server configuration from TOML and watches
// it for live reload. Missing file means defaults; a file overrides
// only the keys it sets.
package config

import (
	"fmt"
	"os"

	"github.com/pelletier/go-toml/v2"

	"github.com/dshills/redline/internal/logging"
)

// Config is the full server configuration.
type Config struct {
	Server   Server   `toml:"server"`
	Document Document `toml:"document"`
	Log      Log      `toml:"log"`
	Macro    Macro    `toml:"macro"`
}

// Server configures the transports.
type Server struct {
	// HTTPAddr is the HTTP listen address.
	HTTPAddr string `toml:"http_addr"`

	// Stdio switches the process to the stdio JSON-RPC transport
	// instead of HTTP.
	Stdio bool `toml:"stdio"`
}

// Document configures the document opened at startup.
type Document struct {
	// Path is a plain-text file loaded as the working document.
	// Empty starts with an empty document.
	Path string `toml:"path"`

	// Author is stamped on redlines and used when a tool call names
	// no author.
	Author string `toml:"author"`

	// TrackChanges starts the document with change recording on.
	TrackChanges bool `toml:"track_changes"`

	// ShowChanges starts the document with tracked changes displayed.
	ShowChanges bool `toml:"show_changes"`
}

// Log configures the process logger.
type Log struct {
	Level  string `toml:"level"`
	Path   string `toml:"path"`
	Format string `toml:"format"`
}

// Macro configures the Lua macro engine.
type Macro struct {
	Enabled bool `toml:"enabled"`

	// TimeoutSeconds bounds a single script run. Zero means the
	// engine default.
	TimeoutSeconds int `toml:"timeout_seconds"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Server:   Server{HTTPAddr: ":8765"},
		Document: Document{Author: "Editor", ShowChanges: true},
		Log:      Log{Level: "info", Format: "text"},
		Macro:    Macro{Enabled: true},
	}
}

// Load reads the configuration at path over the defaults. A missing
// file is not an error.
func Load(path string) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("config: read %s: %w", path, err)
	}

	if err := toml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("config: parse %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// Validate checks field values the type system cannot.
func (c Config) Validate() error {
	if _, err := logging.ParseLevel(c.Log.Level); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	switch c.Log.Format {
	case "", "text", "json":
	default:
		return fmt.Errorf("config: unknown log format %q", c.Log.Format)
	}
	if c.Macro.TimeoutSeconds < 0 {
		return fmt.Errorf("config: macro timeout_seconds must not be negative")
	}
	if !c.Server.Stdio && c.Server.HTTPAddr == "" {
		return fmt.Errorf("config: http_addr must be set when stdio is off")
	}
	return nil
}
