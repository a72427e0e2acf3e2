// Package config loads pokebox settings from an optional .pokebox file, the
// environment (POKEBOX_*) and built-in defaults.
package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/mitchellh/go-homedir"
	"github.com/spf13/viper"
)

const (
	envPrefix     = "POKEBOX"
	configName    = ".pokebox" // .yaml is implicit
	configPathEnv = "POKEBOX_CONFIG_PATH"
)

var envReplacer = strings.NewReplacer(".", "_", "-", "_")

// Keys understood in the config file and as POKEBOX_* variables, with "."
// and "-" replaced by "_" in the environment.
const (
	KeyAPIURL            = "api.url"
	KeyEditionsPath      = "api.editions-path"
	KeyBoxNamesPath      = "api.boxnames-path"
	KeyAPITimeout        = "api.timeout"
	KeyCacheEnabled      = "cache.enabled"
	KeyCachePath         = "cache.path"
	KeyCacheTTL          = "cache.ttl"
	KeyLogLevel          = "log.level"
	KeyLogPath           = "log.path"
	KeySpritesURL        = "sprites.url"
	KeySpritesDir        = "sprites.dir"
	KeyPreflightCapacity = "organize.preflight-capacity"
)

// API configures the collection API client.
type API struct {
	URL          string
	EditionsPath string
	BoxNamesPath string
	Timeout      time.Duration
}

// Cache configures the reference data cache.
type Cache struct {
	Enabled bool
	Path    string
	TTL     time.Duration
}

// Log configures the file logger.
type Log struct {
	Level string
	Path  string
}

// Sprites configures where card artwork lives.
type Sprites struct {
	URL string
	Dir string
}

// Config is the resolved configuration.
type Config struct {
	API               API
	Cache             Cache
	Log               Log
	Sprites           Sprites
	PreflightCapacity bool

	v *viper.Viper
}

func defaults(v *viper.Viper) {
	v.SetDefault(KeyAPIURL, "http://localhost:8080/api")
	v.SetDefault(KeyEditionsPath, "/editions")
	v.SetDefault(KeyBoxNamesPath, "/boxnames")
	v.SetDefault(KeyAPITimeout, "0s")
	v.SetDefault(KeyCacheEnabled, true)
	v.SetDefault(KeyCachePath, "~/.pokebox/cache")
	v.SetDefault(KeyCacheTTL, "24h")
	v.SetDefault(KeyLogLevel, "info")
	v.SetDefault(KeyLogPath, "~/.pokebox/pokebox.log")
	v.SetDefault(KeySpritesURL, "/sprites")
	v.SetDefault(KeySpritesDir, "")
	v.SetDefault(KeyPreflightCapacity, false)
}

// Load reads the configuration. An explicit file wins; otherwise a .pokebox
// file is looked up in $POKEBOX_CONFIG_PATH and the working directory. A
// missing file is not an error.
func Load(file string) (*Config, error) {
	v := viper.New()
	defaults(v)
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(envReplacer)
	v.AutomaticEnv()

	if file != "" {
		path, err := homedir.Expand(file)
		if err != nil {
			return nil, fmt.Errorf("config: expand %s: %w", file, err)
		}
		v.SetConfigFile(path)
	} else {
		v.SetConfigName(configName)
		if override := os.Getenv(configPathEnv); override != "" {
			v.AddConfigPath(override)
		}
		v.AddConfigPath("./")
	}

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("config: read: %w", err)
		}
	}
	return decode(v)
}

func decode(v *viper.Viper) (*Config, error) {
	cachePath, err := homedir.Expand(v.GetString(KeyCachePath))
	if err != nil {
		return nil, fmt.Errorf("config: expand %s: %w", KeyCachePath, err)
	}
	logPath, err := homedir.Expand(v.GetString(KeyLogPath))
	if err != nil {
		return nil, fmt.Errorf("config: expand %s: %w", KeyLogPath, err)
	}
	spritesDir, err := homedir.Expand(v.GetString(KeySpritesDir))
	if err != nil {
		return nil, fmt.Errorf("config: expand %s: %w", KeySpritesDir, err)
	}

	return &Config{
		API: API{
			URL:          v.GetString(KeyAPIURL),
			EditionsPath: v.GetString(KeyEditionsPath),
			BoxNamesPath: v.GetString(KeyBoxNamesPath),
			Timeout:      v.GetDuration(KeyAPITimeout),
		},
		Cache: Cache{
			Enabled: v.GetBool(KeyCacheEnabled),
			Path:    cachePath,
			TTL:     v.GetDuration(KeyCacheTTL),
		},
		Log: Log{
			Level: v.GetString(KeyLogLevel),
			Path:  logPath,
		},
		Sprites: Sprites{
			URL: v.GetString(KeySpritesURL),
			Dir: spritesDir,
		},
		PreflightCapacity: v.GetBool(KeyPreflightCapacity),
		v:                 v,
	}, nil
}

// File returns the config file in use, or "" when running on defaults.
func (c *Config) File() string {
	if c.v == nil {
		return ""
	}
	return c.v.ConfigFileUsed()
}

// Watch calls onChange with the re-read configuration every time the config
// file is written. It does nothing when no file was loaded.
func (c *Config) Watch(onChange func(*Config, error)) bool {
	if c.File() == "" {
		return false
	}
	c.v.OnConfigChange(func(evt fsnotify.Event) {
		if evt.Op&(fsnotify.Write|fsnotify.Create) == 0 {
			return
		}
		onChange(decode(c.v))
	})
	c.v.WatchConfig()
	return true
}
