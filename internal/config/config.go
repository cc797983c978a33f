// Package config loads justify.toml.
//
// A missing file is not an error: every field has a default. Environment
// variables override the file for the two connection strings that usually
// differ per deployment (JUSTIFY_REDIS_ADDR, JUSTIFY_MONGO_URI).
package config

import (
	stderrors "errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/justify/pkg/errors"
	jio "github.com/matzehuels/justify/pkg/io"
	"github.com/matzehuels/justify/pkg/justify"
)

// FileName is the config file name looked up in the config directory.
const FileName = "justify.toml"

// Environment variables.
const (
	EnvConfigPath = "JUSTIFY_CONFIG"
	EnvRedisAddr  = "JUSTIFY_REDIS_ADDR"
	EnvMongoURI   = "JUSTIFY_MONGO_URI"
)

// Cache backends.
const (
	CacheFile  = "file"
	CacheRedis = "redis"
	CacheNone  = "none"
)

// Store backends.
const (
	StoreMemory = "memory"
	StoreMongo  = "mongo"
)

// Config is the parsed config file.
type Config struct {
	Layout Layout `toml:"layout"`
	Server Server `toml:"server"`
	Cache  Cache  `toml:"cache"`
	Store  Store  `toml:"store"`
}

// Layout holds default layout settings. Unset fields keep the library
// defaults.
type Layout struct {
	Width float64 `toml:"width"`
	jio.SettingsSpec
}

// Server configures `justify serve`.
type Server struct {
	Addr         string   `toml:"addr"`
	ReadTimeout  Duration `toml:"read_timeout"`
	WriteTimeout Duration `toml:"write_timeout"`
}

// Cache selects and configures the layout cache.
type Cache struct {
	Backend string   `toml:"backend"`
	Dir     string   `toml:"dir"`
	TTL     Duration `toml:"ttl"`
	Redis   Redis    `toml:"redis"`
}

// Redis configures the redis cache backend.
type Redis struct {
	Addr     string `toml:"addr"`
	Password string `toml:"password"`
	DB       int    `toml:"db"`
	Prefix   string `toml:"prefix"`
}

// Store selects and configures gallery persistence.
type Store struct {
	Backend string `toml:"backend"`
	Mongo   Mongo  `toml:"mongo"`
}

// Mongo configures the mongo store backend.
type Mongo struct {
	URI        string `toml:"uri"`
	Database   string `toml:"database"`
	Collection string `toml:"collection"`
}

// Duration is a time.Duration written as a string ("30s") in TOML.
type Duration struct {
	time.Duration
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (d *Duration) UnmarshalText(text []byte) error {
	v, err := time.ParseDuration(string(text))
	if err != nil {
		return err
	}
	d.Duration = v
	return nil
}

// MarshalText implements encoding.TextMarshaler.
func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.Duration.String()), nil
}

// Default returns the configuration used when no file exists.
func Default() Config {
	return Config{
		Server: Server{
			Addr:         ":8080",
			ReadTimeout:  Duration{15 * time.Second},
			WriteTimeout: Duration{30 * time.Second},
		},
		Cache: Cache{
			Backend: CacheFile,
			Redis:   Redis{Addr: "localhost:6379", Prefix: "justify"},
		},
		Store: Store{
			Backend: StoreMemory,
			Mongo:   Mongo{Database: "justify", Collection: "galleries"},
		},
	}
}

// DefaultPath returns the config file path: $JUSTIFY_CONFIG, else
// <user config dir>/justify/justify.toml.
func DefaultPath() (string, error) {
	if p := os.Getenv(EnvConfigPath); p != "" {
		return p, nil
	}
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("get config dir: %w", err)
	}
	return filepath.Join(dir, "justify", FileName), nil
}

// Load reads path over the defaults and applies environment overrides.
// An empty path means DefaultPath. A missing file yields the defaults; a
// file named explicitly must exist.
func Load(path string) (Config, error) {
	cfg := Default()

	explicit := path != ""
	if !explicit {
		p, err := DefaultPath()
		if err != nil {
			return Config{}, err
		}
		path = p
	}

	md, err := toml.DecodeFile(path, &cfg)
	switch {
	case stderrors.Is(err, fs.ErrNotExist) && !explicit:
		cfg = Default()
	case stderrors.Is(err, fs.ErrNotExist):
		return Config{}, errors.Wrap(errors.ErrCodeFileNotFound, err, "config file %s", path)
	case err != nil:
		return Config{}, errors.Wrap(errors.ErrCodeInvalidInput, err, "parse %s", path)
	default:
		if undecoded := md.Undecoded(); len(undecoded) > 0 {
			return Config{}, errors.New(errors.ErrCodeInvalidInput, "%s: unknown key %q", path, undecoded[0].String())
		}
	}

	cfg.applyEnv()
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c *Config) applyEnv() {
	if v := os.Getenv(EnvRedisAddr); v != "" {
		c.Cache.Redis.Addr = v
	}
	if v := os.Getenv(EnvMongoURI); v != "" {
		c.Store.Mongo.URI = v
	}
}

// Validate checks backend names and layout settings.
func (c Config) Validate() error {
	switch c.Cache.Backend {
	case CacheFile, CacheRedis, CacheNone:
	default:
		return errors.New(errors.ErrCodeInvalidSettings, "cache.backend must be one of file, redis, none; got %q", c.Cache.Backend)
	}
	switch c.Store.Backend {
	case StoreMemory, StoreMongo:
	default:
		return errors.New(errors.ErrCodeInvalidSettings, "store.backend must be one of memory, mongo; got %q", c.Store.Backend)
	}
	if c.Store.Backend == StoreMongo && c.Store.Mongo.URI == "" {
		return errors.New(errors.ErrCodeInvalidSettings, "store.mongo.uri is required for the mongo backend (or set %s)", EnvMongoURI)
	}
	if c.Cache.TTL.Duration < 0 {
		return errors.New(errors.ErrCodeInvalidSettings, "cache.ttl must not be negative, got %v", c.Cache.TTL.Duration)
	}
	if c.Layout.Width < 0 {
		return errors.New(errors.ErrCodeInvalidWidth, "layout.width must not be negative, got %v", c.Layout.Width)
	}
	width := c.Layout.Width
	if width == 0 {
		// Any positive width; only the margins are checked here.
		width = c.Settings().MarginLeft + c.Settings().MarginRight + 1
	}
	return errors.ValidateSettings(c.Settings(), width)
}

// Settings returns the library defaults overlaid with the [layout] section.
func (c Config) Settings() justify.Settings {
	return c.Layout.SettingsSpec.Apply(justify.DefaultSettings())
}

// Save writes c to path as TOML, creating the directory if needed.
func Save(path string, c Config) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create config dir: %w", err)
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err := toml.NewEncoder(f).Encode(c); err != nil {
		f.Close()
		return fmt.Errorf("encode %s: %w", path, err)
	}
	return f.Close()
}
