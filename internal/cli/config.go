package cli

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/ramparte/amplifier-stories/internal/server"
	"github.com/ramparte/amplifier-stories/pkg/cache"
	perrors "github.com/ramparte/amplifier-stories/pkg/errors"
	"github.com/ramparte/amplifier-stories/pkg/pipeline"
	"github.com/ramparte/amplifier-stories/pkg/style"
)

// envPrefix prefixes environment overrides: HTML2PPTX_CACHE_BACKEND, ...
const envPrefix = "HTML2PPTX"

// Cache backends.
const (
	backendFile  = "file"
	backendRedis = "redis"
	backendMongo = "mongo"
	backendNone  = "none"
)

// Config is the merged configuration: defaults, config file, environment.
type Config struct {
	Log    LogConfig    `mapstructure:"log"`
	Cache  CacheConfig  `mapstructure:"cache"`
	Render RenderConfig `mapstructure:"render"`
	Serve  ServeConfig  `mapstructure:"serve"`

	// file is the config file that was read, if any.
	file string
}

// LogConfig controls logging. File enables a rotating log file.
type LogConfig struct {
	Level      string `mapstructure:"level"`
	File       string `mapstructure:"file"`
	MaxSize    int    `mapstructure:"max_size"` // megabytes
	MaxBackups int    `mapstructure:"max_backups"`
	MaxAge     int    `mapstructure:"max_age"` // days
	Compress   bool   `mapstructure:"compress"`
}

type CacheConfig struct {
	Backend   string        `mapstructure:"backend"`
	Dir       string        `mapstructure:"dir"`
	TTL       time.Duration `mapstructure:"ttl"`
	Namespace string        `mapstructure:"namespace"` // key prefix on shared backends
	Redis     struct {
		Addr     string `mapstructure:"addr"`
		DB       int    `mapstructure:"db"`
		Password string `mapstructure:"password"`
	} `mapstructure:"redis"`
	Mongo struct {
		URI        string `mapstructure:"uri"`
		Database   string `mapstructure:"database"`
		Collection string `mapstructure:"collection"`
	} `mapstructure:"mongo"`
}

type RenderConfig struct {
	Workers  int      `mapstructure:"workers"`
	Formats  []string `mapstructure:"formats"`
	Theme    string   `mapstructure:"theme"`
	PNGScale float64  `mapstructure:"png_scale"`
}

type ServeConfig struct {
	Addr    string        `mapstructure:"addr"`
	MaxBody int64         `mapstructure:"max_body"`
	Timeout time.Duration `mapstructure:"timeout"`
}

// SetDefaults registers every configuration key with its default.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("log.level", "info")
	v.SetDefault("log.file", "")
	v.SetDefault("log.max_size", 10)
	v.SetDefault("log.max_backups", 3)
	v.SetDefault("log.max_age", 28)
	v.SetDefault("log.compress", true)

	v.SetDefault("cache.backend", backendFile)
	v.SetDefault("cache.dir", "")
	v.SetDefault("cache.ttl", cache.TTLLayout)
	v.SetDefault("cache.namespace", "")
	v.SetDefault("cache.redis.addr", "localhost:6379")
	v.SetDefault("cache.redis.db", 0)
	v.SetDefault("cache.redis.password", "")
	v.SetDefault("cache.mongo.uri", "mongodb://localhost:27017")
	v.SetDefault("cache.mongo.database", cache.DefaultMongoDatabase)
	v.SetDefault("cache.mongo.collection", cache.DefaultMongoCollection)

	v.SetDefault("render.workers", pipeline.DefaultWorkers)
	v.SetDefault("render.formats", []string{pipeline.DefaultFormat})
	v.SetDefault("render.theme", "")
	v.SetDefault("render.png_scale", pipeline.DefaultPNGScale)

	v.SetDefault("serve.addr", server.DefaultAddr)
	v.SetDefault("serve.max_body", server.DefaultMaxBody)
	v.SetDefault("serve.timeout", server.DefaultTimeout)
}

// LoadConfig reads configuration. An explicit path must exist; otherwise
// config.{yaml,toml,json} in the config directory is read if present.
func LoadConfig(path string) (*Config, error) {
	v := viper.New()
	SetDefaults(v)

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("config")
		if dir, err := configDir(); err == nil {
			v.AddConfigPath(dir)
		}
	}

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return nil, perrors.Wrap(perrors.ErrCodeInvalidInput, err, "read config")
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, perrors.Wrap(perrors.ErrCodeInvalidInput, err, "decode config")
	}
	cfg.file = v.ConfigFileUsed()
	return &cfg, cfg.validate()
}

func (c *Config) validate() error {
	switch c.Cache.Backend {
	case backendFile, backendRedis, backendNone:
	case backendMongo:
		if err := perrors.ValidateMongoURI(c.Cache.Mongo.URI); err != nil {
			return err
		}
	default:
		return perrors.New(perrors.ErrCodeInvalidInput,
			"cache.backend: unknown backend %q (file, redis, mongo, none)", c.Cache.Backend)
	}
	return pipeline.ValidateFormats(c.Render.Formats)
}

// CacheDir returns the configured cache directory or the XDG default.
func (c *Config) CacheDir() (string, error) {
	if c.Cache.Dir != "" {
		return c.Cache.Dir, nil
	}
	return cacheDir()
}

// LoadTheme resolves render.theme. A value ending in .toml or containing a
// path separator is a file; anything else names
// <config dir>/themes/<name>.toml. An empty value means no theme.
func (c *Config) LoadTheme(ref string) (*style.Theme, error) {
	if ref == "" {
		ref = c.Render.Theme
	}
	if ref == "" {
		return nil, nil
	}
	if strings.HasSuffix(ref, ".toml") || strings.ContainsRune(ref, os.PathSeparator) {
		return style.LoadTheme(ref)
	}
	if err := perrors.ValidateThemeName(ref); err != nil {
		return nil, err
	}
	dir, err := configDir()
	if err != nil {
		return nil, perrors.Wrap(perrors.ErrCodeInvalidTheme, err, "theme %s", ref)
	}
	return style.LoadTheme(filepath.Join(dir, "themes", ref+".toml"))
}

// configDir returns the config directory using the XDG standard
// (~/.config/html2pptx/).
func configDir() (string, error) {
	if configHome := os.Getenv("XDG_CONFIG_HOME"); configHome != "" {
		return filepath.Join(configHome, appName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", appName), nil
}
