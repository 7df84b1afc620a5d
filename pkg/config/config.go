// Package config loads cytoconv settings from a TOML file.
//
// Settings are resolved in three layers: built-in defaults ([Default]), the
// TOML file, then environment overrides:
//
//	CYTOCONV_LISTEN      server.listen
//	CYTOCONV_REDIS_ADDR  cache.redis_addr (and cache.backend = "redis")
//	CYTOCONV_MONGO_URI   store.mongo_uri  (and store.backend = "mongo")
//
// Example file:
//
//	[server]
//	listen = ":8080"
//
//	[cache]
//	backend = "redis"
//	redis_addr = "localhost:6379"
//	ttl = "24h"
//
//	[store]
//	backend = "mongo"
//	mongo_uri = "mongodb://localhost:27017"
//
//	[ids]
//	generator = "uuid"
package config

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/orbifold/cytoconv/pkg/errors"
	"github.com/orbifold/cytoconv/pkg/identifier"
)

// Environment variables that override file settings.
const (
	EnvListen    = "CYTOCONV_LISTEN"
	EnvRedisAddr = "CYTOCONV_REDIS_ADDR"
	EnvMongoURI  = "CYTOCONV_MONGO_URI"
)

// Backend names.
const (
	CacheNone  = "none"
	CacheFile  = "file"
	CacheRedis = "redis"

	StoreMemory = "memory"
	StoreFile   = "file"
	StoreMongo  = "mongo"
)

// Config is the complete application configuration.
type Config struct {
	Server ServerConfig `toml:"server"`
	Cache  CacheConfig  `toml:"cache"`
	Store  StoreConfig  `toml:"store"`
	IDs    IDConfig     `toml:"ids"`
}

// ServerConfig configures the HTTP API.
type ServerConfig struct {
	Listen          string   `toml:"listen"`
	ReadTimeout     Duration `toml:"read_timeout"`
	ShutdownTimeout Duration `toml:"shutdown_timeout"`
	MaxBodyBytes    int64    `toml:"max_body_bytes"`
}

// CacheConfig selects and configures the result cache.
type CacheConfig struct {
	Backend       string   `toml:"backend"` // none, file or redis
	Dir           string   `toml:"dir"`     // file backend; empty means the user cache dir
	RedisAddr     string   `toml:"redis_addr"`
	RedisPassword string   `toml:"redis_password"`
	RedisDB       int      `toml:"redis_db"`
	Prefix        string   `toml:"prefix"`
	TTL           Duration `toml:"ttl"`
}

// StoreConfig selects and configures the graph store.
type StoreConfig struct {
	Backend    string `toml:"backend"` // memory, file or mongo
	Dir        string `toml:"dir"`     // file backend; empty means the user config dir
	MongoURI   string `toml:"mongo_uri"`
	Database   string `toml:"database"`
	Collection string `toml:"collection"`
}

// IDConfig selects the identifier generator.
type IDConfig struct {
	Generator string `toml:"generator"` // uuid or sequence
	Prefix    string `toml:"prefix"`    // sequence prefix
}

// Duration is a time.Duration written as a string such as "30s" in TOML.
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

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Server: ServerConfig{
			Listen:          ":8080",
			ReadTimeout:     Duration{30 * time.Second},
			ShutdownTimeout: Duration{10 * time.Second},
			MaxBodyBytes:    10 << 20,
		},
		Cache: CacheConfig{
			Backend: CacheFile,
			TTL:     Duration{24 * time.Hour},
		},
		Store: StoreConfig{
			Backend:    StoreMemory,
			Database:   "cytoconv",
			Collection: "graphs",
		},
		IDs: IDConfig{
			Generator: "uuid",
		},
	}
}

// DefaultPath returns ~/.config/cytoconv/config.toml, honoring
// XDG_CONFIG_HOME.
func DefaultPath() (string, error) {
	if dir := os.Getenv("XDG_CONFIG_HOME"); dir != "" {
		return filepath.Join(dir, "cytoconv", "config.toml"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "cytoconv", "config.toml"), nil
}

// Load reads the configuration. An empty path loads the default path when
// that file exists and the defaults otherwise; an explicit path must exist.
// Environment overrides are applied and the result is validated.
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
		if _, err := os.Stat(path); err == nil || explicit {
			if err := cfg.decodeFile(path); err != nil {
				return Config{}, err
			}
		}
	}

	cfg.ApplyEnv(os.Getenv)
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Parse decodes TOML text on top of the defaults and validates the result.
// Environment overrides are not applied.
func Parse(text string) (Config, error) {
	cfg := Default()
	md, err := toml.Decode(text, &cfg)
	if err != nil {
		return Config{}, errors.Wrap(errors.ErrCodeInvalidConfig, err, "parse config")
	}
	if err := checkUndecoded(md); err != nil {
		return Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c *Config) decodeFile(path string) error {
	md, err := toml.DecodeFile(path, c)
	if err != nil {
		if os.IsNotExist(err) {
			return errors.Wrap(errors.ErrCodeFileNotFound, err, "config %s", path)
		}
		return errors.Wrap(errors.ErrCodeInvalidConfig, err, "parse config %s", path)
	}
	return checkUndecoded(md)
}

func checkUndecoded(md toml.MetaData) error {
	keys := md.Undecoded()
	if len(keys) == 0 {
		return nil
	}
	names := make([]string, len(keys))
	for i, k := range keys {
		names[i] = k.String()
	}
	return errors.New(errors.ErrCodeInvalidConfig, "unknown config keys: %s", strings.Join(names, ", "))
}

// ApplyEnv applies environment overrides read through getenv.
func (c *Config) ApplyEnv(getenv func(string) string) {
	if v := getenv(EnvListen); v != "" {
		c.Server.Listen = v
	}
	if v := getenv(EnvRedisAddr); v != "" {
		c.Cache.RedisAddr = v
		c.Cache.Backend = CacheRedis
	}
	if v := getenv(EnvMongoURI); v != "" {
		c.Store.MongoURI = v
		c.Store.Backend = StoreMongo
	}
}

// Validate checks backend names and their required settings.
func (c Config) Validate() error {
	if c.Server.Listen == "" {
		return errors.New(errors.ErrCodeInvalidConfig, "server.listen is required")
	}
	if c.Server.MaxBodyBytes <= 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "server.max_body_bytes must be positive")
	}

	switch c.Cache.Backend {
	case CacheNone, CacheFile:
	case CacheRedis:
		if c.Cache.RedisAddr == "" {
			return errors.New(errors.ErrCodeInvalidConfig, "cache.redis_addr is required for the redis backend")
		}
	default:
		return errors.New(errors.ErrCodeInvalidConfig, "unknown cache backend %q", c.Cache.Backend)
	}
	if c.Cache.TTL.Duration < 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "cache.ttl cannot be negative")
	}

	switch c.Store.Backend {
	case StoreMemory, StoreFile:
	case StoreMongo:
		if c.Store.MongoURI == "" {
			return errors.New(errors.ErrCodeInvalidConfig, "store.mongo_uri is required for the mongo backend")
		}
	default:
		return errors.New(errors.ErrCodeInvalidConfig, "unknown store backend %q", c.Store.Backend)
	}

	if _, ok := identifier.FromName(c.IDs.Generator, c.IDs.Prefix); !ok {
		return errors.New(errors.ErrCodeInvalidConfig, "unknown id generator %q", c.IDs.Generator)
	}
	return nil
}

// Generator returns the identifier generator named by the ids section.
func (c Config) Generator() identifier.Generator {
	g, ok := identifier.FromName(c.IDs.Generator, c.IDs.Prefix)
	if !ok {
		return identifier.UUID{}
	}
	return g
}

// Write encodes c as TOML.
func (c Config) Write(w io.Writer) error {
	if err := toml.NewEncoder(w).Encode(c); err != nil {
		return fmt.Errorf("encode config: %w", err)
	}
	return nil
}
