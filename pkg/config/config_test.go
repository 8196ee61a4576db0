package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	perrors "github.com/matzehuels/dockpane/pkg/errors"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte(body), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func env(vars map[string]string) func(string) (string, bool) {
	return func(name string) (string, bool) {
		v, ok := vars[name]
		return v, ok
	}
}

func TestDefault(t *testing.T) {
	c := Default()
	if err := c.Validate(); err != nil {
		t.Fatalf("Default().Validate() = %v", err)
	}
	if c.SplitterWidth != 4 || c.Zones.Indicator != 88 || c.API.Addr != ":8088" {
		t.Errorf("unexpected defaults: %+v", c)
	}
	g := c.Geometry()
	if g.Indicator != 88 || g.OuterIndicator != 32 || g.OuterInset != 10 {
		t.Errorf("Geometry() = %+v", g)
	}
}

func TestReadFile(t *testing.T) {
	path := writeConfig(t, `
splitter_width = 1
drag_auto_resize = false

[zones]
indicator = 11

[store]
backend = "redis"
redis_addr = "cache:6379"
redis_db = 2
`)
	c := Default()
	if err := c.ReadFile(path); err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	if c.SplitterWidth != 1 || c.DragAutoResize {
		t.Errorf("top-level keys not applied: %+v", c)
	}
	if c.Zones.Indicator != 11 || c.Zones.OuterIndicator != 32 {
		t.Errorf("zones = %+v, want indicator 11 and default outer", c.Zones)
	}
	opts := c.StoreOptions()
	if opts.Backend != "redis" || opts.RedisAddr != "cache:6379" || opts.RedisDB != 2 {
		t.Errorf("StoreOptions() = %+v", opts)
	}
}

func TestReadFileRejectsUnknownKeys(t *testing.T) {
	path := writeConfig(t, "splitter_widht = 3\n")
	c := Default()
	if err := c.ReadFile(path); !perrors.Is(err, perrors.ErrCodeInvalidInput) {
		t.Errorf("ReadFile = %v, want INVALID_INPUT", err)
	}
}

func TestApplyEnv(t *testing.T) {
	tests := []struct {
		name    string
		vars    map[string]string
		check   func(Config) bool
		wantErr bool
	}{
		{
			name:  "store backend",
			vars:  map[string]string{"DOCKPANE_STORE_BACKEND": "mongo", "DOCKPANE_MONGO_URI": "mongodb://db"},
			check: func(c Config) bool { return c.Store.Backend == "mongo" && c.Store.MongoURI == "mongodb://db" },
		},
		{
			name:  "numbers and flags",
			vars:  map[string]string{"DOCKPANE_SPLITTER_WIDTH": "6", "DOCKPANE_DRAG_AUTO_RESIZE": "false"},
			check: func(c Config) bool { return c.SplitterWidth == 6 && !c.DragAutoResize },
		},
		{
			name:  "ttl",
			vars:  map[string]string{"DOCKPANE_STORE_TTL": "90m"},
			check: func(c Config) bool { return c.Store.TTL == 90*time.Minute },
		},
		{
			name: "dockpane endpoint wins over otel",
			vars: map[string]string{
				"OTEL_EXPORTER_OTLP_ENDPOINT": "otel:4318",
				"DOCKPANE_OTLP_ENDPOINT":      "mine:4318",
			},
			check: func(c Config) bool { return c.Telemetry.OTLPEndpoint == "mine:4318" },
		},
		{
			name:    "bad number",
			vars:    map[string]string{"DOCKPANE_REDIS_DB": "two"},
			wantErr: true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := Default()
			err := c.ApplyEnv(env(tt.vars))
			if (err != nil) != tt.wantErr {
				t.Fatalf("ApplyEnv() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.check != nil && !tt.check(c) {
				t.Errorf("ApplyEnv() = %+v", c)
			}
		})
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"negative splitter", func(c *Config) { c.SplitterWidth = -1 }},
		{"zero indicator", func(c *Config) { c.Zones.Indicator = 0 }},
		{"unknown backend", func(c *Config) { c.Store.Backend = "etcd" }},
		{"negative ttl", func(c *Config) { c.Store.TTL = -time.Second }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := Default()
			tt.mutate(&c)
			if err := c.Validate(); err == nil {
				t.Error("Validate() = nil, want error")
			}
		})
	}
}

func TestLoad(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Setenv("DOCKPANE_API_ADDR", ":9000")

	c, err := Load("")
	if err != nil {
		t.Fatalf("Load(\"\") with no file: %v", err)
	}
	if c.API.Addr != ":9000" {
		t.Errorf("API.Addr = %q, want :9000", c.API.Addr)
	}

	if _, err := Load(filepath.Join(t.TempDir(), "missing.toml")); err == nil {
		t.Error("Load(missing explicit file) = nil, want error")
	}
}
