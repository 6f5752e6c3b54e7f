package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultValues(t *testing.T) {
	cfg := Default()

	if cfg.Server.HTTPAddr != ":8765" {
		t.Errorf("HTTPAddr = %q, want :8765", cfg.Server.HTTPAddr)
	}
	if cfg.Server.Stdio {
		t.Error("Stdio should default to false")
	}
	if cfg.Document.Author != "Editor" {
		t.Errorf("Author = %q, want Editor", cfg.Document.Author)
	}
	if cfg.Document.TrackChanges {
		t.Error("TrackChanges should default to false")
	}
	if !cfg.Document.ShowChanges {
		t.Error("ShowChanges should default to true")
	}
	if cfg.Log.Level != "info" {
		t.Errorf("Log.Level = %q, want info", cfg.Log.Level)
	}
	if cfg.Log.Format != "text" {
		t.Errorf("Log.Format = %q, want text", cfg.Log.Format)
	}
	if !cfg.Macro.Enabled {
		t.Error("Macro.Enabled should default to true")
	}

	if err := cfg.Validate(); err != nil {
		t.Errorf("default config Validate error = %v", err)
	}
}

func TestLoadMissingFile(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "absent.toml"))
	if err != nil {
		t.Fatalf("Load error = %v", err)
	}
	if cfg != Default() {
		t.Errorf("Load missing file = %+v, want defaults", cfg)
	}
}

func TestLoadOverridesOnlySetKeys(t *testing.T) {
	path := writeConfig(t, `
[server]
stdio = true

[document]
path = "/tmp/draft.txt"
author = "Reviewer"
track_changes = true

[log]
level = "debug"
format = "json"

[macro]
timeout_seconds = 5
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load error = %v", err)
	}

	if !cfg.Server.Stdio {
		t.Error("Stdio should be overridden to true")
	}
	if cfg.Server.HTTPAddr != ":8765" {
		t.Errorf("HTTPAddr = %q, want default :8765", cfg.Server.HTTPAddr)
	}
	if cfg.Document.Path != "/tmp/draft.txt" {
		t.Errorf("Document.Path = %q", cfg.Document.Path)
	}
	if cfg.Document.Author != "Reviewer" {
		t.Errorf("Author = %q, want Reviewer", cfg.Document.Author)
	}
	if !cfg.Document.TrackChanges {
		t.Error("TrackChanges should be overridden to true")
	}
	if !cfg.Document.ShowChanges {
		t.Error("ShowChanges should keep its default")
	}
	if cfg.Log.Level != "debug" || cfg.Log.Format != "json" {
		t.Errorf("Log = %+v", cfg.Log)
	}
	if !cfg.Macro.Enabled {
		t.Error("Macro.Enabled should keep its default")
	}
	if cfg.Macro.TimeoutSeconds != 5 {
		t.Errorf("TimeoutSeconds = %d, want 5", cfg.Macro.TimeoutSeconds)
	}
}

func TestLoadParseError(t *testing.T) {
	path := writeConfig(t, "{{{ not toml")

	if _, err := Load(path); err == nil {
		t.Fatal("Load should fail on malformed TOML")
	}
}

func TestLoadRejectsInvalidValues(t *testing.T) {
	path := writeConfig(t, `
[log]
level = "verbose"
`)

	if _, err := Load(path); err == nil {
		t.Fatal("Load should fail on unknown log level")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{name: "defaults", mutate: func(*Config) {}},
		{
			name:    "unknown level",
			mutate:  func(c *Config) { c.Log.Level = "loud" },
			wantErr: true,
		},
		{
			name:   "empty level",
			mutate: func(c *Config) { c.Log.Level = "" },
		},
		{
			name:    "unknown format",
			mutate:  func(c *Config) { c.Log.Format = "xml" },
			wantErr: true,
		},
		{
			name:    "negative macro timeout",
			mutate:  func(c *Config) { c.Macro.TimeoutSeconds = -1 },
			wantErr: true,
		},
		{
			name: "no transport",
			mutate: func(c *Config) {
				c.Server.HTTPAddr = ""
				c.Server.Stdio = false
			},
			wantErr: true,
		},
		{
			name: "stdio without http addr",
			mutate: func(c *Config) {
				c.Server.HTTPAddr = ""
				c.Server.Stdio = true
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(&cfg)

			err := cfg.Validate()
			if tt.wantErr && err == nil {
				t.Error("Validate should fail")
			}
			if !tt.wantErr && err != nil {
				t.Errorf("Validate error = %v", err)
			}
		})
	}
}

func writeConfig(t *testing.T, body string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "redline.toml")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("WriteFile error = %v", err)
	}
	return path
}
