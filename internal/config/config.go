package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/Veraticus/classwatch/internal/common"
	"github.com/Veraticus/classwatch/internal/poller"
)

// EnvPrefix prefixes every environment override, e.g.
// CLASSWATCH_SOURCE_BASE_URL.
const EnvPrefix = "CLASSWATCH"

// Viper keys.
const (
	KeySourceBaseURL  = "source.base_url"
	KeySourceDir      = "source.dir"
	KeyWeeksMax       = "weeks.max"
	KeyPollInterval   = "poll.interval"
	KeyPollCheckpoint = "poll.checkpoints"
	KeyPollWindow     = "poll.window"
	KeyPollDebounce   = "poll.debounce"
	KeyStatusInterval = "status.interval"
	KeyFetchTimeout   = "fetch.timeout"
	KeyDatabasePath   = "database.path"
	KeyQuoteURL       = "quote.url"
	KeyQuoteEnabled   = "quote.enabled"
	KeyTermStart      = "export.term_start"
	KeyLogLevel       = "logging.level"
	KeyLogFormat      = "logging.format"
)

// Config is the resolved application configuration.
type Config struct {
	TermStart      time.Time
	SourceBaseURL  string
	SourceDir      string
	DatabasePath   string
	QuoteURL       string
	LogLevel       string
	LogFormat      string
	Checkpoints    []string
	PollInterval   time.Duration
	PollWindow     time.Duration
	PollDebounce   time.Duration
	StatusInterval time.Duration
	FetchTimeout   time.Duration
	MaxWeek        int
	QuoteEnabled   bool
}

// SetDefaults registers every default on v and enables environment
// overrides.
func SetDefaults(v *viper.Viper) {
	v.SetDefault(KeyWeeksMax, 22)
	v.SetDefault(KeyPollInterval, 30*time.Minute)
	v.SetDefault(KeyPollCheckpoint, []string{"12:00", "20:00"})
	v.SetDefault(KeyPollWindow, 5*time.Minute)
	v.SetDefault(KeyPollDebounce, 10*time.Minute)
	v.SetDefault(KeyStatusInterval, 30*time.Second)
	v.SetDefault(KeyFetchTimeout, 10*time.Second)
	v.SetDefault(KeyDatabasePath, "~/.config/classwatch/classwatch.db")
	v.SetDefault(KeyQuoteURL, "https://v1.hitokoto.cn/?encode=json")
	v.SetDefault(KeyQuoteEnabled, true)
	v.SetDefault(KeyLogLevel, "info")
	v.SetDefault(KeyLogFormat, "console")

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
}

// Load reads a Config out of v and validates it.
func Load(v *viper.Viper) (*Config, error) {
	cfg := &Config{
		SourceBaseURL:  strings.TrimSpace(v.GetString(KeySourceBaseURL)),
		SourceDir:      ExpandPath(strings.TrimSpace(v.GetString(KeySourceDir))),
		MaxWeek:        v.GetInt(KeyWeeksMax),
		PollInterval:   v.GetDuration(KeyPollInterval),
		Checkpoints:    v.GetStringSlice(KeyPollCheckpoint),
		PollWindow:     v.GetDuration(KeyPollWindow),
		PollDebounce:   v.GetDuration(KeyPollDebounce),
		StatusInterval: v.GetDuration(KeyStatusInterval),
		FetchTimeout:   v.GetDuration(KeyFetchTimeout),
		DatabasePath:   ExpandPath(v.GetString(KeyDatabasePath)),
		QuoteURL:       v.GetString(KeyQuoteURL),
		QuoteEnabled:   v.GetBool(KeyQuoteEnabled),
		LogLevel:       v.GetString(KeyLogLevel),
		LogFormat:      v.GetString(KeyLogFormat),
	}

	if raw := strings.TrimSpace(v.GetString(KeyTermStart)); raw != "" {
		t, err := time.ParseInLocation("2006-01-02", raw, time.Local)
		if err != nil {
			return nil, fmt.Errorf("%w: %s must be YYYY-MM-DD: %w", common.ErrInvalidConfig, KeyTermStart, err)
		}
		cfg.TermStart = t
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks ranges and formats. A missing source is not an error
// here; commands that fetch report it.
func (c *Config) Validate() error {
	if c.MaxWeek < 1 {
		return fmt.Errorf("%w: %s must be at least 1, got %d", common.ErrInvalidConfig, KeyWeeksMax, c.MaxWeek)
	}
	positive := map[string]time.Duration{
		KeyPollInterval:   c.PollInterval,
		KeyStatusInterval: c.StatusInterval,
		KeyFetchTimeout:   c.FetchTimeout,
	}
	for key, d := range positive {
		if d <= 0 {
			return fmt.Errorf("%w: %s must be positive, got %s", common.ErrInvalidConfig, key, d)
		}
	}
	if c.PollWindow < 0 || c.PollDebounce < 0 {
		return fmt.Errorf("%w: poll window and debounce cannot be negative", common.ErrInvalidConfig)
	}
	if _, err := poller.ParseCheckpoints(c.Checkpoints); err != nil {
		return err
	}
	if c.DatabasePath == "" {
		return fmt.Errorf("%w: %s", common.ErrMissingConfig, KeyDatabasePath)
	}
	if _, err := common.ParseLevel(c.LogLevel); err != nil {
		return err
	}
	switch c.LogFormat {
	case "console", "json":
	default:
		return fmt.Errorf("%w: %s must be console or json, got %q", common.ErrInvalidConfig, KeyLogFormat, c.LogFormat)
	}
	return nil
}

// PollConfig converts the poll settings. Validate has already checked the
// checkpoints.
func (c *Config) PollConfig() poller.Config {
	checkpoints, _ := poller.ParseCheckpoints(c.Checkpoints)
	return poller.Config{
		Checkpoints: checkpoints,
		Interval:    c.PollInterval,
		Window:      c.PollWindow,
		Debounce:    c.PollDebounce,
	}
}
