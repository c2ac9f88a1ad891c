// Package config loads navrank settings from the environment.
package config

import (
	"fmt"
	"os"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/Oudwins/zog"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
)

// Environment variable names.
const (
	EnvDataDir      = "NAVRANK_DATA_DIR"
	EnvAMFIURL      = "NAVRANK_AMFI_URL"
	EnvFetchTimeout = "NAVRANK_FETCH_TIMEOUT"
	EnvFetchAt      = "NAVRANK_FETCH_AT"
	EnvHTTPAddr     = "NAVRANK_HTTP_ADDR"
	EnvSignalSeed   = "NAVRANK_SIGNAL_SEED"
	EnvTopN         = "NAVRANK_TOP_N"
	EnvCacheTTL     = "NAVRANK_CACHE_TTL"
	EnvLogLevel     = "NAVRANK_LOG_LEVEL"
)

// Config holds runtime settings.
type Config struct {
	DataDir      string
	AMFIURL      string
	FetchTimeout time.Duration
	FetchAt      string
	HTTPAddr     string
	SignalSeed   int64
	TopN         int
	CacheTTL     time.Duration
	LogLevel     string
}

// Default returns the settings used when nothing is configured.
func Default() Config {
	return Config{
		DataDir:      "data",
		AMFIURL:      "https://www.amfiindia.com/spages/NAVAll.txt",
		FetchTimeout: 10 * time.Second,
		FetchAt:      "18:00",
		HTTPAddr:     ":8080",
		SignalSeed:   42,
		TopN:         10,
		CacheTTL:     time.Hour,
		LogLevel:     "info",
	}
}

var clockPattern = regexp.MustCompile(`^([01]\d|2[0-3]):[0-5]\d$`)

var shape = zog.Shape{
	"DataDir":  zog.String().Required(),
	"AMFIURL":  zog.String().URL().Required(),
	"FetchAt":  zog.String().Match(clockPattern).Required(),
	"HTTPAddr": zog.String().Required(),
	"TopN":     zog.Int().GT(0).LTE(10).Required(),
	"LogLevel": zog.String().OneOf([]string{"trace", "debug", "info", "warn", "error"}).Required(),
}

func durationsTest(dataPtr any, ctx zog.Ctx) bool {
	cfg, ok := dataPtr.(*Config)
	if !ok {
		return true
	}
	if cfg.FetchTimeout <= 0 {
		ctx.AddIssue(&zog.ZogIssue{
			Path:    "fetchTimeout",
			Message: "must be positive",
		})
		return false
	}
	if cfg.CacheTTL < 0 {
		ctx.AddIssue(&zog.ZogIssue{
			Path:    "cacheTTL",
			Message: "must not be negative",
		})
		return false
	}
	return true
}

// Load reads an optional .env file and the process environment.
func Load() (Config, error) {
	godotenv.Load()
	return FromLookup(os.LookupEnv)
}

// FromLookup builds a Config from a variable lookup function and validates it.
func FromLookup(lookup func(string) (string, bool)) (Config, error) {
	cfg := Default()

	str := func(key string, dst *string) {
		if v, ok := lookup(key); ok && strings.TrimSpace(v) != "" {
			*dst = strings.TrimSpace(v)
		}
	}
	str(EnvDataDir, &cfg.DataDir)
	str(EnvAMFIURL, &cfg.AMFIURL)
	str(EnvFetchAt, &cfg.FetchAt)
	str(EnvHTTPAddr, &cfg.HTTPAddr)
	str(EnvLogLevel, &cfg.LogLevel)
	cfg.LogLevel = strings.ToLower(cfg.LogLevel)

	var raw string
	var err error

	raw = cfg.FetchTimeout.String()
	str(EnvFetchTimeout, &raw)
	if cfg.FetchTimeout, err = time.ParseDuration(raw); err != nil {
		return Config{}, fmt.Errorf("parsing %s: %w", EnvFetchTimeout, err)
	}

	raw = cfg.CacheTTL.String()
	str(EnvCacheTTL, &raw)
	if cfg.CacheTTL, err = time.ParseDuration(raw); err != nil {
		return Config{}, fmt.Errorf("parsing %s: %w", EnvCacheTTL, err)
	}

	raw = strconv.FormatInt(cfg.SignalSeed, 10)
	str(EnvSignalSeed, &raw)
	if cfg.SignalSeed, err = strconv.ParseInt(raw, 10, 64); err != nil {
		return Config{}, fmt.Errorf("parsing %s: %w", EnvSignalSeed, err)
	}

	raw = strconv.Itoa(cfg.TopN)
	str(EnvTopN, &raw)
	if cfg.TopN, err = strconv.Atoi(raw); err != nil {
		return Config{}, fmt.Errorf("parsing %s: %w", EnvTopN, err)
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks the settings against the config schema.
func (c *Config) Validate() error {
	schema := zog.Struct(shape).TestFunc(durationsTest)
	if issues := schema.Validate(c); len(issues) > 0 {
		return fmt.Errorf("invalid config: %v", issues)
	}
	return nil
}

// Level returns the zerolog level for LogLevel.
func (c *Config) Level() zerolog.Level {
	level, err := zerolog.ParseLevel(c.LogLevel)
	if err != nil {
		return zerolog.InfoLevel
	}
	return level
}

// FetchClock returns the hour and minute of the daily fetch.
func (c *Config) FetchClock() (hour, minute int) {
	t, err := time.Parse("15:04", c.FetchAt)
	if err != nil {
		return 18, 0
	}
	return t.Hour(), t.Minute()
}
