// Package config loads codeshot settings from a TOML file and the
// environment.
//
// Precedence, lowest first: built-in defaults, the TOML file, environment
// variables. Secrets (the bot token, database URLs) are usually supplied
// through the environment:
//
//	TELEGRAM_BOT_TOKEN    telegram.token
//	CODESHOT_PUBLIC_URL   http.public_url
//	CODESHOT_REDIS_URL    store.redis_url
//	CODESHOT_MONGO_URI    store.mongo_uri
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
)

// Config is the complete process configuration.
type Config struct {
	Render   Render   `toml:"render"`
	Store    Store    `toml:"store"`
	HTTP     HTTP     `toml:"http"`
	Telegram Telegram `toml:"telegram"`
	Log      Log      `toml:"log"`
}

// Render configures the rendering pool.
type Render struct {
	Workers        int     `toml:"workers"`
	MaxSourceBytes int     `toml:"max_source_bytes"`
	TabWidth       int     `toml:"tab_width"`
	FontSize       float64 `toml:"font_size"`
	LineHeight     float64 `toml:"line_height"`
	Scale          float64 `toml:"scale"`
	Theme          string  `toml:"theme"`
	LineNumbers    bool    `toml:"line_numbers"`

	// ResultCache is how many encoded images each of the 16 cache shards
	// keeps for repeated inputs. Zero disables the cache.
	ResultCache int `toml:"result_cache"`

	// FontPath replaces the embedded Go Mono font when set.
	FontPath string `toml:"font_path"`
}

// Store configures gist persistence.
type Store struct {
	// Driver is one of "memory", "redis", "mongo".
	Driver        string        `toml:"driver"`
	Retention     time.Duration `toml:"retention"`
	SweepInterval time.Duration `toml:"sweep_interval"`
	RedisURL      string        `toml:"redis_url"`
	MongoURI      string        `toml:"mongo_uri"`
	MongoDatabase string        `toml:"mongo_database"`
}

// HTTP configures the image server.
type HTTP struct {
	Addr           string        `toml:"addr"`
	PublicURL      string        `toml:"public_url"`
	RequestTimeout time.Duration `toml:"request_timeout"`
}

// Telegram configures the bot. An empty token disables it.
type Telegram struct {
	Token       string        `toml:"token"`
	APIURL      string        `toml:"api_url"`
	PollTimeout time.Duration `toml:"poll_timeout"`
}

// Log configures logging.
type Log struct {
	// Level is one of "debug", "info", "warn", "error".
	Level string `toml:"level"`
}

// Store drivers.
const (
	DriverMemory = "memory"
	DriverRedis  = "redis"
	DriverMongo  = "mongo"
)

// Environment variables read by ApplyEnv.
const (
	EnvBotToken  = "TELEGRAM_BOT_TOKEN"
	EnvPublicURL = "CODESHOT_PUBLIC_URL"
	EnvRedisURL  = "CODESHOT_REDIS_URL"
	EnvMongoURI  = "CODESHOT_MONGO_URI"
)

// ErrInvalid is wrapped by every Validate failure.
var ErrInvalid = errors.New("config: invalid")

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Render: Render{
			Workers:        2,
			MaxSourceBytes: 4096,
			TabWidth:       4,
			FontSize:       32,
			LineHeight:     44,
			Scale:          1.5,
			Theme:          "solarized-dark",
			ResultCache:    64,
		},
		Store: Store{
			Driver:        DriverMemory,
			Retention:     10 * time.Minute,
			SweepInterval: time.Minute,
			MongoDatabase: "codeshot",
		},
		HTTP: HTTP{
			Addr:           ":8080",
			PublicURL:      "http://localhost:8080",
			RequestTimeout: 30 * time.Second,
		},
		Telegram: Telegram{
			APIURL:      "https://api.telegram.org",
			PollTimeout: 30 * time.Second,
		},
		Log: Log{Level: "info"},
	}
}

// Load reads path over the defaults and applies environment overrides.
// An empty path skips the file.
func Load(path string) (Config, error) {
	cfg := Default()
	if path != "" {
		if _, err := toml.DecodeFile(path, &cfg); err != nil {
			return Config{}, fmt.Errorf("config: %s: %w", path, err)
		}
	}
	cfg.ApplyEnv(os.LookupEnv)
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Parse decodes TOML text over the defaults. Environment is not consulted.
func Parse(data string) (Config, error) {
	cfg := Default()
	md, err := toml.Decode(data, &cfg)
	if err != nil {
		return Config{}, fmt.Errorf("config: %w", err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return Config{}, fmt.Errorf("%w: unknown key %q", ErrInvalid, undecoded[0].String())
	}
	return cfg, nil
}

// ApplyEnv overrides fields from environment variables found by lookup.
func (c *Config) ApplyEnv(lookup func(string) (string, bool)) {
	set := func(dst *string, key string) {
		if v, ok := lookup(key); ok && v != "" {
			*dst = v
		}
	}
	set(&c.Telegram.Token, EnvBotToken)
	set(&c.HTTP.PublicURL, EnvPublicURL)
	set(&c.Store.RedisURL, EnvRedisURL)
	set(&c.Store.MongoURI, EnvMongoURI)
}

// Validate rejects values the rest of the program cannot work with.
func (c Config) Validate() error {
	var errs []error
	check := func(ok bool, format string, args ...any) {
		if !ok {
			errs = append(errs, fmt.Errorf("%w: "+format, append([]any{ErrInvalid}, args...)...))
		}
	}

	r := c.Render
	check(r.Workers >= 1, "render.workers must be at least 1, got %d", r.Workers)
	check(r.MaxSourceBytes >= 1, "render.max_source_bytes must be positive, got %d", r.MaxSourceBytes)
	check(r.TabWidth >= 1 && r.TabWidth <= 16, "render.tab_width must be in [1, 16], got %d", r.TabWidth)
	check(r.FontSize > 0, "render.font_size must be positive, got %v", r.FontSize)
	check(r.LineHeight >= r.FontSize, "render.line_height (%v) must not be below font_size (%v)", r.LineHeight, r.FontSize)
	check(r.Scale > 0 && r.Scale <= 8, "render.scale must be in (0, 8], got %v", r.Scale)
	check(r.Theme != "", "render.theme must be set")
	check(r.ResultCache >= 0, "render.result_cache must not be negative, got %d", r.ResultCache)

	s := c.Store
	switch s.Driver {
	case DriverMemory:
	case DriverRedis:
		check(s.RedisURL != "", "store.redis_url is required for the redis driver")
	case DriverMongo:
		check(s.MongoURI != "", "store.mongo_uri is required for the mongo driver")
		check(s.MongoDatabase != "", "store.mongo_database is required for the mongo driver")
	default:
		check(false, "store.driver %q is not one of memory, redis, mongo", s.Driver)
	}
	check(s.Retention > 0, "store.retention must be positive, got %v", s.Retention)
	check(s.SweepInterval > 0, "store.sweep_interval must be positive, got %v", s.SweepInterval)

	check(c.HTTP.Addr != "", "http.addr must be set")
	check(strings.HasPrefix(c.HTTP.PublicURL, "http://") || strings.HasPrefix(c.HTTP.PublicURL, "https://"),
		"http.public_url must be an http(s) URL, got %q", c.HTTP.PublicURL)
	check(c.HTTP.RequestTimeout > 0, "http.request_timeout must be positive, got %v", c.HTTP.RequestTimeout)

	check(c.Telegram.PollTimeout >= 0, "telegram.poll_timeout must not be negative, got %v", c.Telegram.PollTimeout)

	switch strings.ToLower(c.Log.Level) {
	case "debug", "info", "warn", "error":
	default:
		check(false, "log.level %q is not one of debug, info, warn, error", c.Log.Level)
	}

	return errors.Join(errs...)
}

// BotEnabled reports whether a Telegram token is configured.
func (c Config) BotEnabled() bool {
	return c.Telegram.Token != ""
}
