package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

const (
	xdgAppName  = "studydesk"
	configFile  = "config.yaml"
	secretsFile = "secrets.env"

	DefaultUserName = "Student"
	DefaultTimezone = "Asia/Kolkata"
	DefaultQuoteURL = "https://api.quotable.io/random?tags=education|motivation"
)

type Config struct {
	UserName string         `yaml:"user_name"`
	Timezone string         `yaml:"timezone"`
	DataDir  string         `yaml:"data_dir"`
	LogLevel string         `yaml:"log_level"`
	Storage  StorageConfig  `yaml:"storage"`
	Quotes   QuotesConfig   `yaml:"quotes"`
	Calendar CalendarConfig `yaml:"calendar"`
	Metrics  MetricsConfig  `yaml:"metrics"`
	Timer    TimerConfig    `yaml:"timer"`
}

// StorageConfig selects where collections are kept. Backend is one of
// file, sqlite, redis or postgres.
type StorageConfig struct {
	Backend  string         `yaml:"backend"`
	Path     string         `yaml:"path"` // sqlite database file
	Redis    RedisConfig    `yaml:"redis"`
	Postgres PostgresConfig `yaml:"postgres"`
}

type RedisConfig struct {
	Addr     string `yaml:"addr"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
	Prefix   string `yaml:"prefix"`
}

type PostgresConfig struct {
	DSN string `yaml:"dsn"`
}

type QuotesConfig struct {
	URL     string        `yaml:"url"`
	Timeout time.Duration `yaml:"timeout"`
	Disable bool          `yaml:"disable"`
}

type CalendarConfig struct {
	Name string `yaml:"name"`
}

type MetricsConfig struct {
	Textfile string `yaml:"textfile"`
}

type TimerConfig struct {
	Pomodoro time.Duration `yaml:"pomodoro"`
	Break    time.Duration `yaml:"break"`
}

// Default returns the configuration used when no file exists.
func Default() *Config {
	dir, err := GetConfigDir()
	if err != nil {
		dir = "."
	}
	return &Config{
		UserName: DefaultUserName,
		Timezone: DefaultTimezone,
		DataDir:  filepath.Join(dir, "data"),
		LogLevel: "warn",
		Storage: StorageConfig{
			Backend: "file",
			Redis:   RedisConfig{Addr: "localhost:6379", Prefix: "studydesk:"},
		},
		Quotes: QuotesConfig{
			URL:     DefaultQuoteURL,
			Timeout: 3 * time.Second,
		},
		Calendar: CalendarConfig{Name: "Study"},
		Timer: TimerConfig{
			Pomodoro: 25 * time.Minute,
			Break:    5 * time.Minute,
		},
	}
}

func GetConfigDir() (string, error) {
	if dir := os.Getenv("STUDYDESK_CONFIG_DIR"); dir != "" {
		return dir, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", xdgAppName), nil
}

func GetConfigPath() (string, error) {
	dir, err := GetConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, configFile), nil
}

// Load reads config.yaml, then secrets.env, then STUDYDESK_* environment
// variables, each layer overriding the previous one. A missing file yields
// the defaults.
func Load() (*Config, error) {
	path, err := GetConfigPath()
	if err != nil {
		return nil, err
	}
	cfg, err := LoadFile(path)
	if err != nil {
		return nil, err
	}

	secrets, err := loadEnvFile(filepath.Join(filepath.Dir(path), secretsFile))
	if err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("failed to read secrets: %w", err)
	}
	if name := secrets["USER_NAME"]; name != "" {
		cfg.UserName = name
	}

	overrideFromEnv(cfg)
	return cfg, nil
}

// LoadFile decodes a single YAML file on top of the defaults.
func LoadFile(path string) (*Config, error) {
	cfg := Default()

	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, err
	}
	defer f.Close()

	if err := yaml.NewDecoder(f).Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}
	cfg.fillDefaults()
	return cfg, nil
}

func Save(cfg *Config) error {
	path, err := GetConfigPath()
	if err != nil {
		return err
	}
	return SaveFile(path, cfg)
}

func SaveFile(path string, cfg *Config) error {
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	f, err := os.OpenFile(path, os.O_RDWR|os.O_CREATE|os.O_TRUNC, 0600)
	if err != nil {
		return fmt.Errorf("failed to open config file for writing: %w", err)
	}
	defer f.Close()

	encoder := yaml.NewEncoder(f)
	encoder.SetIndent(2)
	if err := encoder.Encode(cfg); err != nil {
		return err
	}
	return encoder.Close()
}

// Location resolves the configured timezone, falling back to local time.
func (c *Config) Location() *time.Location {
	if c.Timezone == "" || strings.EqualFold(c.Timezone, "local") {
		return time.Local
	}
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return time.Local
	}
	return loc
}

// Set updates a single dotted key, as used by `studydesk config set`.
func (c *Config) Set(key, value string) error {
	switch key {
	case "user_name":
		c.UserName = value
	case "timezone":
		if _, err := time.LoadLocation(value); err != nil {
			return fmt.Errorf("unknown timezone %q: %w", value, err)
		}
		c.Timezone = value
	case "data_dir":
		c.DataDir = value
	case "log_level":
		c.LogLevel = value
	case "storage.backend":
		switch value {
		case "file", "sqlite", "redis", "postgres":
			c.Storage.Backend = value
		default:
			return fmt.Errorf("unknown storage backend %q", value)
		}
	case "storage.path":
		c.Storage.Path = value
	case "storage.redis.addr":
		c.Storage.Redis.Addr = value
	case "storage.postgres.dsn":
		c.Storage.Postgres.DSN = value
	case "quotes.url":
		c.Quotes.URL = value
	case "quotes.disable":
		b, err := strconv.ParseBool(value)
		if err != nil {
			return err
		}
		c.Quotes.Disable = b
	case "calendar.name":
		c.Calendar.Name = value
	case "metrics.textfile":
		c.Metrics.Textfile = value
	default:
		return fmt.Errorf("unknown config key %q", key)
	}
	return nil
}

func (c *Config) fillDefaults() {
	def := Default()
	if c.UserName == "" {
		c.UserName = def.UserName
	}
	if c.DataDir == "" {
		c.DataDir = def.DataDir
	}
	if c.Storage.Backend == "" {
		c.Storage.Backend = def.Storage.Backend
	}
	if c.Quotes.URL == "" {
		c.Quotes.URL = def.Quotes.URL
	}
	if c.Quotes.Timeout <= 0 {
		c.Quotes.Timeout = def.Quotes.Timeout
	}
	if c.Calendar.Name == "" {
		c.Calendar.Name = def.Calendar.Name
	}
	if c.Timer.Pomodoro <= 0 {
		c.Timer.Pomodoro = def.Timer.Pomodoro
	}
	if c.Timer.Break <= 0 {
		c.Timer.Break = def.Timer.Break
	}
}

func overrideFromEnv(cfg *Config) {
	if name := os.Getenv("STUDYDESK_USER_NAME"); name != "" {
		cfg.UserName = name
	}
	if tz := os.Getenv("STUDYDESK_TIMEZONE"); tz != "" {
		cfg.Timezone = tz
	}
	if dir := os.Getenv("STUDYDESK_DATA_DIR"); dir != "" {
		cfg.DataDir = dir
	}
	if level := os.Getenv("STUDYDESK_LOG_LEVEL"); level != "" {
		cfg.LogLevel = level
	}
	if backend := os.Getenv("STUDYDESK_STORAGE"); backend != "" {
		cfg.Storage.Backend = backend
	}
	if addr := os.Getenv("REDIS_ADDR"); addr != "" {
		cfg.Storage.Redis.Addr = addr
	}
	if password := os.Getenv("REDIS_PASSWORD"); password != "" {
		cfg.Storage.Redis.Password = password
	}
	if dsn := os.Getenv("DATABASE_URL"); dsn != "" {
		cfg.Storage.Postgres.DSN = dsn
	}
}

// loadEnvFile reads KEY=VALUE lines, ignoring blanks and # comments.
func loadEnvFile(path string) (map[string]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return map[string]string{}, err
	}

	env := make(map[string]string)
	for _, line := range strings.Split(string(data), "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		key, value, ok := strings.Cut(line, "=")
		if !ok {
			continue
		}
		value = strings.Trim(strings.TrimSpace(value), `"'`)
		env[strings.TrimSpace(key)] = value
	}
	return env, nil
}
