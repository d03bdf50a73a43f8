package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "values.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load(writeConfig(t, "telegram:\n  chat_id: 42\n"))
	require.NoError(t, err)

	assert.Equal(t, int64(42), cfg.Telegram.ChatID)
	assert.Equal(t, "XAU/USD", cfg.TwelveData.Symbol)
	assert.Equal(t, 100, cfg.TwelveData.HistorySize)
	assert.Equal(t, "trigger.txt", cfg.Mode.File)
	assert.Equal(t, DriverFile, cfg.State.Driver)
	assert.Equal(t, "state.json", cfg.State.File)
	assert.Equal(t, 0.01, cfg.Strategy.KijunThreshold)
	assert.Equal(t, 100, cfg.Strategy.SRLookback)
	assert.Equal(t, 14, cfg.Strategy.RSIPeriod)
	assert.Equal(t, 10, cfg.Strategy.DivergenceWindow)
	assert.Zero(t, cfg.Schedule.Interval)
}

func TestLoadYAMLAndEnv(t *testing.T) {
	path := writeConfig(t, `
twelvedata:
  symbol: "EUR/USD"
  timeout: 5s
schedule:
  interval: 15m
  stop_at: "23:30"
state:
  driver: badger
  badger_path: /tmp/state
`)
	t.Setenv("TELEGRAM_TOKEN", "tok")
	t.Setenv("TELEGRAM_CHAT_ID", "777")
	t.Setenv("TWELVEDATA_API_KEY", "key")
	t.Setenv("TRIGGER_FILE", "/var/run/trigger.txt")
	t.Setenv("KIJUN_THRESHOLD", "0.05")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "EUR/USD", cfg.TwelveData.Symbol)
	assert.Equal(t, 5*time.Second, cfg.TwelveData.Timeout)
	assert.Equal(t, 15*time.Minute, cfg.Schedule.Interval)
	assert.Equal(t, "23:30", cfg.Schedule.StopAt)
	assert.Equal(t, DriverBadger, cfg.State.Driver)
	assert.Equal(t, "tok", cfg.Telegram.Token)
	assert.Equal(t, int64(777), cfg.Telegram.ChatID)
	assert.Equal(t, "key", cfg.TwelveData.APIKey)
	assert.Equal(t, "/var/run/trigger.txt", cfg.Mode.File)
	assert.Equal(t, 0.05, cfg.Strategy.KijunThreshold)
}

func TestValidate(t *testing.T) {
	cases := map[string]func(c *Config){
		"unknown driver":    func(c *Config) { c.State.Driver = "redis" },
		"postgres no dsn":   func(c *Config) { c.State.Driver = DriverPostgres },
		"empty symbol":      func(c *Config) { c.TwelveData.Symbol = "" },
		"zero history":      func(c *Config) { c.TwelveData.HistorySize = 0 },
		"negative interval": func(c *Config) { c.Schedule.Interval = -time.Second },
		"bad stop_at":       func(c *Config) { c.Schedule.StopAt = "late" },
	}
	for name, mutate := range cases {
		t.Run(name, func(t *testing.T) {
			c := Default()
			mutate(&c)
			assert.Error(t, c.Validate())
		})
	}

	c := Default()
	c.State.Driver = DriverPostgres
	c.State.DSN = "postgres://localhost/rpi"
	assert.NoError(t, c.Validate())
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}
