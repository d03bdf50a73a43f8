package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v2"
)

// Бэкенды state.driver.
const (
	DriverFile     = "file"
	DriverMemory   = "memory"
	DriverBadger   = "badger"
	DriverPostgres = "postgres"
)

const (
	configFilePathENV = "CONFIG_FILE"
	tokenTelegramENV  = "TELEGRAM_TOKEN"
	chatTelegramENV   = "TELEGRAM_CHAT_ID"
	twelveDataKeyENV  = "TWELVEDATA_API_KEY"
	databaseDSN       = "DATABASE_DSN"
	triggerFileENV    = "TRIGGER_FILE"
	stateFileENV      = "STATE_FILE"

	defaultConfigFile = "configs/values_local.yaml"
)

// StateConfig: где хранить значения индикаторов между запусками.
type StateConfig struct {
	Driver     string `yaml:"driver"` // file | postgres | badger | memory
	File       string `yaml:"file"`
	DSN        string `yaml:"dsn"`
	BadgerPath string `yaml:"badger_path"`
}

// Config ...
type Config struct {
	Telegram struct {
		Token    string `yaml:"token"`
		ChatID   int64  `yaml:"chat_id"`
		Commands bool   `yaml:"commands"` // /mode из чата, только при interval > 0
	} `yaml:"telegram"`

	TwelveData struct {
		BaseURL     string        `yaml:"base_url"`
		APIKey      string        `yaml:"api_key"`
		Symbol      string        `yaml:"symbol"`
		HistorySize int           `yaml:"history_size"` // 100 свечей хватает на Ichimoku(52+26) и S/R(100)
		Timeout     time.Duration `yaml:"timeout"`
		RatePerMin  int           `yaml:"rate_per_min"` // бесплатный тариф: 8 запросов в минуту
	} `yaml:"twelvedata"`

	Mode struct {
		File string `yaml:"file"`
	} `yaml:"mode"`

	State StateConfig `yaml:"state"`

	Strategy struct {
		KijunThreshold   float64 `yaml:"kijun_threshold"`
		SRLookback       int     `yaml:"sr_lookback"`
		RSIPeriod        int     `yaml:"rsi_period"`
		DivergenceWindow int     `yaml:"divergence_window"`
	} `yaml:"strategy"`

	Schedule struct {
		// 0: один цикл и выход (запуск из cron)
		Interval time.Duration `yaml:"interval"`
		// "23:30": в это время цикл останавливается; пусто: без остановки
		StopAt string `yaml:"stop_at"`
		// уведомление о старте в Telegram
		StartupMessage bool `yaml:"startup_message"`
	} `yaml:"schedule"`

	Service struct {
		// адрес health/metrics, пусто: HTTP не поднимаем
		Addr string `yaml:"addr"`
	} `yaml:"service"`

	Log struct {
		Level      string `yaml:"level"`
		File       string `yaml:"file"`
		MaxSizeMB  int    `yaml:"max_size_mb"`
		MaxBackups int    `yaml:"max_backups"`
		MaxAgeDays int    `yaml:"max_age_days"`
	} `yaml:"log"`

	Tracing struct {
		Enabled bool   `yaml:"enabled"`
		Host    string `yaml:"host"`
		Port    int    `yaml:"port"`
	} `yaml:"tracing"`
}

// Default: значения без конфиг-файла.
func Default() Config {
	var c Config
	c.TwelveData.BaseURL = "https://api.twelvedata.com"
	c.TwelveData.Symbol = "XAU/USD"
	c.TwelveData.HistorySize = 100
	c.TwelveData.Timeout = 15 * time.Second
	c.TwelveData.RatePerMin = 8

	c.Mode.File = "trigger.txt"

	c.State.Driver = DriverFile
	c.State.File = "state.json"
	c.State.BadgerPath = "data/state"

	c.Strategy.KijunThreshold = 0.01
	c.Strategy.SRLookback = 100
	c.Strategy.RSIPeriod = 14
	c.Strategy.DivergenceWindow = 10

	c.Schedule.StartupMessage = true

	c.Log.Level = "info"

	c.Tracing.Host = "localhost"
	c.Tracing.Port = 6831
	return c
}

// NewConfig читает файл из CONFIG_FILE (или configs/values_local.yaml) и .env.
func NewConfig() (*Config, error) {
	_ = godotenv.Load()

	path := getenvDefault(configFilePathENV, defaultConfigFile)
	return Load(path)
}

// Load читает YAML поверх дефолтов и применяет переопределения из окружения.
func Load(path string) (*Config, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open config file: %w", err)
	}

	defer func() {
		_ = file.Close()
	}()

	config := Default()
	if err := yaml.NewDecoder(file).Decode(&config); err != nil {
		return nil, fmt.Errorf("failed to decode config file %s: %w", path, err)
	}

	config.applyEnv()

	if err := config.Validate(); err != nil {
		return nil, err
	}
	return &config, nil
}

func (c *Config) applyEnv() {
	c.Telegram.Token = getenvDefault(tokenTelegramENV, c.Telegram.Token)
	c.Telegram.ChatID = int64FromEnv(chatTelegramENV, c.Telegram.ChatID)
	c.TwelveData.APIKey = getenvDefault(twelveDataKeyENV, c.TwelveData.APIKey)
	c.State.DSN = getenvDefault(databaseDSN, c.State.DSN)
	c.Mode.File = getenvDefault(triggerFileENV, c.Mode.File)
	c.State.File = getenvDefault(stateFileENV, c.State.File)
	c.TwelveData.HistorySize = intFromEnv("HISTORY_SIZE", c.TwelveData.HistorySize)
	c.Strategy.KijunThreshold = floatFromEnv("KIJUN_THRESHOLD", c.Strategy.KijunThreshold)
	c.Schedule.Interval = durationFromEnv("SCHEDULE_INTERVAL", c.Schedule.Interval)
	c.Log.Level = getenvDefault("LOG_LEVEL", c.Log.Level)
	c.Tracing.Enabled = boolFromEnv("TRACING_ENABLED", c.Tracing.Enabled)
}

func (c *Config) Validate() error {
	switch c.State.Driver {
	case DriverFile, DriverMemory, DriverBadger:
	case DriverPostgres:
		if c.State.DSN == "" {
			return fmt.Errorf("state.driver=postgres requires state.dsn or %s", databaseDSN)
		}
	default:
		return fmt.Errorf("unknown state.driver %q", c.State.Driver)
	}
	if c.TwelveData.Symbol == "" {
		return fmt.Errorf("twelvedata.symbol is required")
	}
	if c.TwelveData.HistorySize <= 0 {
		return fmt.Errorf("twelvedata.history_size must be > 0")
	}
	if c.Schedule.Interval < 0 {
		return fmt.Errorf("schedule.interval must be >= 0")
	}
	if c.Schedule.StopAt != "" {
		if _, err := time.Parse("15:04", c.Schedule.StopAt); err != nil {
			return fmt.Errorf("schedule.stop_at %q: expected HH:MM", c.Schedule.StopAt)
		}
	}
	return nil
}

func intFromEnv(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return def
}

func int64FromEnv(key string, def int64) int64 {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil {
			return n
		}
	}
	return def
}

func floatFromEnv(key string, def float64) float64 {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return def
}

func boolFromEnv(key string, def bool) bool {
	if v := os.Getenv(key); v != "" {
		if v == "1" || v == "true" || v == "TRUE" {
			return true
		}
		if v == "0" || v == "false" || v == "FALSE" {
			return false
		}
	}
	return def
}

func getenvDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func durationFromEnv(key string, def time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return def
}
