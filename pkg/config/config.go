// Package config loads dockpane settings.
//
// Settings come from three layers, later ones winning:
//
//  1. built-in defaults ([Default])
//  2. a TOML file, by default ~/.config/dockpane/config.toml
//  3. DOCKPANE_* environment variables
//
// Example file:
//
//	splitter_width = 4
//	caption_height = 20
//	drag_auto_resize = true
//
//	[zones]
//	indicator = 88
//
//	[store]
//	backend = "redis"
//	redis_addr = "localhost:6379"
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/dockpane/pkg/drag"
	perrors "github.com/matzehuels/dockpane/pkg/errors"
	"github.com/matzehuels/dockpane/pkg/store"
)

// appName is used for the config directory.
const appName = "dockpane"

// Config holds every setting.
type Config struct {
	SplitterWidth  int  `toml:"splitter_width"`
	CaptionHeight  int  `toml:"caption_height"`
	DragAutoResize bool `toml:"drag_auto_resize"`

	Zones     Zones     `toml:"zones"`
	Store     Store     `toml:"store"`
	API       API       `toml:"api"`
	Telemetry Telemetry `toml:"telemetry"`
}

// Zones sizes the drop indicators.
type Zones struct {
	Indicator      int `toml:"indicator"`
	OuterIndicator int `toml:"outer_indicator"`
	OuterInset     int `toml:"outer_inset"`
}

// Store selects where layouts are saved.
type Store struct {
	Backend         string        `toml:"backend"`
	Dir             string        `toml:"dir"`
	RedisAddr       string        `toml:"redis_addr"`
	RedisDB         int           `toml:"redis_db"`
	MongoURI        string        `toml:"mongo_uri"`
	MongoDatabase   string        `toml:"mongo_database"`
	MongoCollection string        `toml:"mongo_collection"`
	TTL             time.Duration `toml:"ttl"`
}

// API configures the HTTP server.
type API struct {
	Addr            string        `toml:"addr"`
	ShutdownTimeout time.Duration `toml:"shutdown_timeout"`
}

// Telemetry configures trace export. An empty endpoint disables it.
type Telemetry struct {
	OTLPEndpoint string `toml:"otlp_endpoint"`
	ServiceName  string `toml:"service_name"`
	Insecure     bool   `toml:"insecure"`
}

// Default returns the built-in settings.
func Default() Config {
	return Config{
		SplitterWidth:  4,
		CaptionHeight:  20,
		DragAutoResize: true,
		Zones:          Zones{Indicator: 88, OuterIndicator: 32, OuterInset: 10},
		Store:          Store{Backend: store.BackendFile},
		API:            API{Addr: ":8088", ShutdownTimeout: 10 * time.Second},
		Telemetry:      Telemetry{ServiceName: appName},
	}
}

// DefaultPath returns the config file location using the XDG standard
// (~/.config/dockpane/config.toml).
func DefaultPath() (string, error) {
	if home := os.Getenv("XDG_CONFIG_HOME"); home != "" {
		return filepath.Join(home, appName, "config.toml"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", appName, "config.toml"), nil
}

// Load builds the configuration. An empty path reads the default file if
// it exists; an explicit path must exist.
func Load(path string) (Config, error) {
	cfg := Default()
	explicit := path != ""
	if !explicit {
		p, err := DefaultPath()
		if err == nil {
			path = p
		}
	}
	if path != "" {
		err := cfg.ReadFile(path)
		switch {
		case errors.Is(err, os.ErrNotExist) && !explicit:
		case err != nil:
			return Config{}, err
		}
	}
	if err := cfg.ApplyEnv(os.LookupEnv); err != nil {
		return Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// ReadFile overlays the settings in a TOML file onto c.
func (c *Config) ReadFile(path string) error {
	md, err := toml.DecodeFile(path, c)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return err
		}
		return perrors.Wrap(perrors.ErrCodeInvalidInput, err, "config %s", path)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return perrors.New(perrors.ErrCodeInvalidInput, "config %s: unknown key %q", path, undecoded[0].String())
	}
	return nil
}

// ApplyEnv overlays DOCKPANE_* variables read through lookup onto c.
// OTEL_EXPORTER_OTLP_ENDPOINT is honoured when DOCKPANE_OTLP_ENDPOINT is
// unset.
func (c *Config) ApplyEnv(lookup func(string) (string, bool)) error {
	str := func(name string, dst *string) {
		if v, ok := lookup(name); ok {
			*dst = v
		}
	}
	var errs []error
	num := func(name string, dst *int) {
		if v, ok := lookup(name); ok {
			n, err := strconv.Atoi(v)
			if err != nil {
				errs = append(errs, fmt.Errorf("%s: %w", name, err))
				return
			}
			*dst = n
		}
	}
	flag := func(name string, dst *bool) {
		if v, ok := lookup(name); ok {
			b, err := strconv.ParseBool(v)
			if err != nil {
				errs = append(errs, fmt.Errorf("%s: %w", name, err))
				return
			}
			*dst = b
		}
	}
	dur := func(name string, dst *time.Duration) {
		if v, ok := lookup(name); ok {
			d, err := time.ParseDuration(v)
			if err != nil {
				errs = append(errs, fmt.Errorf("%s: %w", name, err))
				return
			}
			*dst = d
		}
	}

	num("DOCKPANE_SPLITTER_WIDTH", &c.SplitterWidth)
	num("DOCKPANE_CAPTION_HEIGHT", &c.CaptionHeight)
	flag("DOCKPANE_DRAG_AUTO_RESIZE", &c.DragAutoResize)
	num("DOCKPANE_ZONES_INDICATOR", &c.Zones.Indicator)
	str("DOCKPANE_STORE_BACKEND", &c.Store.Backend)
	str("DOCKPANE_STORE_DIR", &c.Store.Dir)
	str("DOCKPANE_REDIS_ADDR", &c.Store.RedisAddr)
	num("DOCKPANE_REDIS_DB", &c.Store.RedisDB)
	str("DOCKPANE_MONGO_URI", &c.Store.MongoURI)
	str("DOCKPANE_MONGO_DATABASE", &c.Store.MongoDatabase)
	dur("DOCKPANE_STORE_TTL", &c.Store.TTL)
	str("DOCKPANE_API_ADDR", &c.API.Addr)
	str("OTEL_EXPORTER_OTLP_ENDPOINT", &c.Telemetry.OTLPEndpoint)
	str("DOCKPANE_OTLP_ENDPOINT", &c.Telemetry.OTLPEndpoint)
	str("OTEL_SERVICE_NAME", &c.Telemetry.ServiceName)

	if len(errs) > 0 {
		return perrors.Wrap(perrors.ErrCodeInvalidInput, errors.Join(errs...), "environment")
	}
	return nil
}

// Validate checks that the settings are usable.
func (c Config) Validate() error {
	switch {
	case c.SplitterWidth < 0:
		return perrors.New(perrors.ErrCodeInvalidInput, "splitter_width must not be negative")
	case c.CaptionHeight < 0:
		return perrors.New(perrors.ErrCodeInvalidInput, "caption_height must not be negative")
	case c.Zones.Indicator <= 0 || c.Zones.OuterIndicator <= 0:
		return perrors.New(perrors.ErrCodeInvalidInput, "zone indicators must be positive")
	case c.Store.TTL < 0:
		return perrors.New(perrors.ErrCodeInvalidInput, "store ttl must not be negative")
	}
	switch c.Store.Backend {
	case store.BackendFile, store.BackendRedis, store.BackendMongo, store.BackendNull:
	default:
		return perrors.New(perrors.ErrCodeInvalidInput, "unknown store backend %q", c.Store.Backend)
	}
	return nil
}

// Geometry returns the drop indicator geometry.
func (c Config) Geometry() drag.Geometry {
	return drag.Geometry{
		Indicator:      c.Zones.Indicator,
		OuterIndicator: c.Zones.OuterIndicator,
		OuterInset:     c.Zones.OuterInset,
	}
}

// StoreOptions returns the options for store.Open.
func (c Config) StoreOptions() store.Options {
	return store.Options{
		Backend:         c.Store.Backend,
		Dir:             c.Store.Dir,
		RedisAddr:       c.Store.RedisAddr,
		RedisDB:         c.Store.RedisDB,
		MongoURI:        c.Store.MongoURI,
		MongoDatabase:   c.Store.MongoDatabase,
		MongoCollection: c.Store.MongoCollection,
	}
}
