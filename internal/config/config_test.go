package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Veraticus/classwatch/internal/common"
)

func newViper(t *testing.T) *viper.Viper {
	t.Helper()
	v := viper.New()
	SetDefaults(v)
	return v
}

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load(newViper(t))
	require.NoError(t, err)

	assert.Equal(t, 22, cfg.MaxWeek)
	assert.Equal(t, 30*time.Minute, cfg.PollInterval)
	assert.Equal(t, 30*time.Second, cfg.StatusInterval)
	assert.Equal(t, 10*time.Second, cfg.FetchTimeout)
	assert.Equal(t, []string{"12:00", "20:00"}, cfg.Checkpoints)
	assert.True(t, cfg.QuoteEnabled)
	assert.True(t, cfg.TermStart.IsZero())
	assert.True(t, filepath.IsAbs(cfg.DatabasePath))

	poll := cfg.PollConfig()
	assert.Equal(t, []int{720, 1200}, poll.Checkpoints)
	assert.Equal(t, 5*time.Minute, poll.Window)
	assert.Equal(t, 10*time.Minute, poll.Debounce)
}

func TestLoad_EnvironmentOverrides(t *testing.T) {
	t.Setenv("CLASSWATCH_WEEKS_MAX", "18")
	t.Setenv("CLASSWATCH_SOURCE_BASE_URL", "https://example.com/weeks")
	t.Setenv("CLASSWATCH_EXPORT_TERM_START", "2025-02-24")

	cfg, err := Load(newViper(t))
	require.NoError(t, err)
	assert.Equal(t, 18, cfg.MaxWeek)
	assert.Equal(t, "https://example.com/weeks", cfg.SourceBaseURL)
	assert.Equal(t, time.Date(2025, 2, 24, 0, 0, 0, 0, time.Local), cfg.TermStart)
}

func TestLoad_ConfigFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	content := `
source:
  dir: ` + dir + `
poll:
  interval: 15m
  checkpoints: ["11:50", "19:45"]
quote:
  enabled: false
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	v := newViper(t)
	v.SetConfigFile(path)
	require.NoError(t, v.ReadInConfig())

	cfg, err := Load(v)
	require.NoError(t, err)
	assert.Equal(t, dir, cfg.SourceDir)
	assert.Equal(t, 15*time.Minute, cfg.PollInterval)
	assert.Equal(t, []int{710, 1185}, cfg.PollConfig().Checkpoints)
	assert.False(t, cfg.QuoteEnabled)
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name  string
		key   string
		value any
	}{
		{name: "zero max week", key: KeyWeeksMax, value: 0},
		{name: "zero interval", key: KeyPollInterval, value: "0s"},
		{name: "bad checkpoint", key: KeyPollCheckpoint, value: []string{"25:99"}},
		{name: "bad log level", key: KeyLogLevel, value: "loud"},
		{name: "bad log format", key: KeyLogFormat, value: "xml"},
		{name: "bad term start", key: KeyTermStart, value: "24/02/2025"},
		{name: "negative window", key: KeyPollWindow, value: "-1m"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := newViper(t)
			v.Set(tt.key, tt.value)
			_, err := Load(v)
			assert.ErrorIs(t, err, common.ErrInvalidConfig)
		})
	}
}

func TestExpandPath(t *testing.T) {
	home, err := os.UserHomeDir()
	require.NoError(t, err)
	t.Setenv("CLASSWATCH_TEST_DIR", "/srv/weeks")

	assert.Equal(t, "", ExpandPath(""))
	assert.Equal(t, home, ExpandPath("~"))
	assert.Equal(t, filepath.Join(home, "a/b"), ExpandPath("~/a/b"))
	assert.Equal(t, "/srv/weeks/1.json", ExpandPath("$CLASSWATCH_TEST_DIR/1.json"))
	assert.Equal(t, "/abs/path", ExpandPath("/abs/path"))
	assert.Equal(t, filepath.Join(home, ".config/classwatch"), DefaultDir())
}
