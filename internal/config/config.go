// ABOUTME: Fitness configuration management with backend selection.
// ABOUTME: Reads a JSON file through viper with FITNESS_* environment overrides.

package config

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/harperreed/fitness/internal/kv"
	"github.com/harperreed/fitness/internal/logging"
	"github.com/spf13/viper"
)

// Backends lists the supported storage backends.
var Backends = []string{"charm", "badger", "sqlite", "redis"}

const (
	defaultBackend   = "charm"
	defaultLogLevel  = "info"
	defaultLogFormat = "text"
	defaultRedisAddr = "localhost:6379"
)

// Config stores fitness tool configuration.
type Config struct {
	// Backend selects the storage backend: "charm" (default), "badger", "sqlite" or "redis".
	Backend string `json:"backend,omitempty" mapstructure:"backend"`

	// DataDir is the root directory for local backends.
	// Supports ~ expansion. Defaults to $XDG_DATA_HOME/fitness.
	DataDir string `json:"data_dir,omitempty" mapstructure:"data_dir"`

	RedisAddr string `json:"redis_addr,omitempty" mapstructure:"redis_addr"`
	CharmHost string `json:"charm_host,omitempty" mapstructure:"charm_host"`

	LogLevel string `json:"log_level,omitempty" mapstructure:"log_level"`
	// LogFile enables rotating file logs. Empty logs to stderr.
	LogFile string `json:"log_file,omitempty" mapstructure:"log_file"`
	// LogToStderr mirrors file logs to stderr. Ignored without LogFile.
	LogToStderr bool `json:"log_to_stderr,omitempty" mapstructure:"log_to_stderr"`
	// LogFormat is "text" (default) or "json".
	LogFormat string `json:"log_format,omitempty" mapstructure:"log_format"`

	// Timezone is an IANA zone name used for calendar days. Empty means local time.
	Timezone string `json:"timezone,omitempty" mapstructure:"timezone"`

	// AuthLatencyMS overrides the simulated login/signup delay when set.
	AuthLatencyMS *int `json:"auth_latency_ms,omitempty" mapstructure:"auth_latency_ms"`
}

// Keys lists every settable configuration key.
func Keys() []string {
	return []string{"backend", "data_dir", "redis_addr", "charm_host", "log_level", "log_file", "log_to_stderr", "log_format", "timezone", "auth_latency_ms"}
}

// GetBackend returns the configured backend, defaulting to "charm".
func (c *Config) GetBackend() string {
	if c.Backend == "" {
		return defaultBackend
	}
	return c.Backend
}

// GetDataDir returns the configured data directory with ~ expanded,
// defaulting to the standard XDG data directory.
func (c *Config) GetDataDir() string {
	if c.DataDir == "" {
		return DataDir()
	}
	return ExpandPath(c.DataDir)
}

// GetLogLevel returns the configured level, defaulting to "info".
func (c *Config) GetLogLevel() string {
	if c.LogLevel == "" {
		return defaultLogLevel
	}
	return c.LogLevel
}

// GetLogFormat returns the configured log format, defaulting to "text".
func (c *Config) GetLogFormat() string {
	if c.LogFormat == "" {
		return defaultLogFormat
	}
	return c.LogFormat
}

// LoggingParams maps the log settings onto logging.Setup parameters.
func (c *Config) LoggingParams() logging.LoggerSetupParams {
	return logging.LoggerSetupParams{
		LogFileName:   ExpandPath(c.LogFile),
		LogToStderr:   c.LogToStderr,
		LogLevel:      c.GetLogLevel(),
		LogFormatJSON: c.GetLogFormat() == "json",
	}
}

// GetRedisAddr returns the Redis address, defaulting to localhost.
func (c *Config) GetRedisAddr() string {
	if c.RedisAddr == "" {
		return defaultRedisAddr
	}
	return c.RedisAddr
}

// GetLocation resolves Timezone, defaulting to the local zone.
func (c *Config) GetLocation() (*time.Location, error) {
	if c.Timezone == "" {
		return time.Local, nil
	}
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return nil, fmt.Errorf("load timezone %q: %w", c.Timezone, err)
	}
	return loc, nil
}

// AuthLatency returns the configured delay and whether one is set.
func (c *Config) AuthLatency() (time.Duration, bool) {
	if c.AuthLatencyMS == nil {
		return 0, false
	}
	return time.Duration(*c.AuthLatencyMS) * time.Millisecond, true
}

// Set assigns a single key from its string form.
func (c *Config) Set(key, value string) error {
	switch key {
	case "backend":
		if !isBackend(value) {
			return fmt.Errorf("unknown backend: %q (want one of %s)", value, strings.Join(Backends, ", "))
		}
		c.Backend = value
	case "data_dir":
		c.DataDir = value
	case "redis_addr":
		c.RedisAddr = value
	case "charm_host":
		c.CharmHost = value
	case "log_level":
		c.LogLevel = value
	case "log_file":
		c.LogFile = value
	case "log_to_stderr":
		if value == "" {
			c.LogToStderr = false
			return nil
		}
		b, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("log_to_stderr must be true or false, got %q", value)
		}
		c.LogToStderr = b
	case "log_format":
		if value != "" && value != "text" && value != "json" {
			return fmt.Errorf("log_format must be text or json, got %q", value)
		}
		c.LogFormat = value
	case "timezone":
		if value != "" {
			if _, err := time.LoadLocation(value); err != nil {
				return fmt.Errorf("invalid timezone %q: %w", value, err)
			}
		}
		c.Timezone = value
	case "auth_latency_ms":
		if value == "" {
			c.AuthLatencyMS = nil
			return nil
		}
		ms, err := strconv.Atoi(value)
		if err != nil || ms < 0 {
			return fmt.Errorf("auth_latency_ms must be a non-negative integer, got %q", value)
		}
		c.AuthLatencyMS = &ms
	default:
		keys := Keys()
		sort.Strings(keys)
		return fmt.Errorf("unknown config key: %q (want one of %s)", key, strings.Join(keys, ", "))
	}
	return nil
}

func isBackend(name string) bool {
	for _, b := range Backends {
		if b == name {
			return true
		}
	}
	return false
}

// ExpandPath expands a leading ~ to the user's home directory.
func ExpandPath(path string) string {
	if path == "" {
		return ""
	}
	if path == "~" {
		home, _ := os.UserHomeDir()
		return home
	}
	if strings.HasPrefix(path, "~/") {
		home, _ := os.UserHomeDir()
		return filepath.Join(home, path[2:])
	}
	return path
}

// DataDir returns the default data directory following XDG spec.
func DataDir() string {
	dataHome := os.Getenv("XDG_DATA_HOME")
	if dataHome == "" {
		home, _ := os.UserHomeDir()
		dataHome = filepath.Join(home, ".local", "share")
	}
	return filepath.Join(dataHome, "fitness")
}

// OpenStorage opens the configured backend.
func (c *Config) OpenStorage(ctx context.Context) (kv.Store, error) {
	return c.OpenBackend(ctx, c.GetBackend())
}

// OpenBackend opens the named backend using this config's locations.
func (c *Config) OpenBackend(ctx context.Context, backend string) (kv.Store, error) {
	dataDir := c.GetDataDir()

	switch backend {
	case "charm":
		host := c.CharmHost
		if host == "" {
			host = kv.DefaultCharmHost
		}
		return kv.OpenCharm(kv.DefaultCharmDB, host)
	case "badger":
		return kv.OpenBadger(filepath.Join(dataDir, "badger"))
	case "sqlite":
		return kv.OpenSQLite(filepath.Join(dataDir, "fitness.db"))
	case "redis":
		return kv.OpenRedis(ctx, c.GetRedisAddr(), kv.DefaultRedisPrefix)
	default:
		return nil, fmt.Errorf("unknown backend: %q", backend)
	}
}

// GetConfigPath returns the config file path.
func GetConfigPath() string {
	configDir := os.Getenv("XDG_CONFIG_HOME")
	if configDir == "" {
		homeDir, _ := os.UserHomeDir()
		configDir = filepath.Join(homeDir, ".config")
	}
	return filepath.Join(configDir, "fitness", "config.json")
}

// Load reads config from disk, applying FITNESS_* environment overrides.
func Load() (*Config, error) {
	return LoadFrom(GetConfigPath())
}

// LoadFrom reads config from path. A missing file yields defaults.
func LoadFrom(path string) (*Config, error) {
	v := viper.New()
	v.SetConfigType("json")
	v.SetEnvPrefix("FITNESS")
	v.AutomaticEnv()
	for _, key := range Keys() {
		// Unmarshal only sees env values for keys viper already knows.
		if err := v.BindEnv(key); err != nil {
			return nil, fmt.Errorf("bind env %s: %w", key, err)
		}
	}

	if _, err := os.Stat(path); err == nil {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config %s: %w", path, err)
		}
	} else if !os.IsNotExist(err) {
		return nil, err
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	return &cfg, nil
}

// Save writes config to disk.
func (c *Config) Save() error {
	return c.SaveTo(GetConfigPath())
}

// SaveTo writes config to path with owner-only permissions.
func (c *Config) SaveTo(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0750); err != nil {
		return err
	}

	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0600)
}
