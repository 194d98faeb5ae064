package config

import (
	"fmt"
	"net/http"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"

	"github.com/oggyb/zenvia-sms/pkg/sms"
)

type Config struct {
	App struct {
		Name string `toml:"name"`
		Env  string `toml:"env"`
	} `toml:"app"`

	API struct {
		Host string `toml:"host"`
		Port string `toml:"port"`
	} `toml:"api"`

	Log struct {
		Level      string `toml:"level"`
		FileName   string `toml:"fileName"`
		MaxSize    int    `toml:"maxSize"`
		MaxBackups int    `toml:"maxBackups"`
		MaxAge     int    `toml:"maxAge"`
	} `toml:"log"`

	Zenvia struct {
		User     string        `toml:"user"`
		Password string        `toml:"password"`
		Endpoint string        `toml:"endpoint"`
		Timeout  time.Duration `toml:"timeout"`
	} `toml:"zenvia"`
}

// New loads configuration from an optional TOML file named by CONFIG_FILE,
// then applies environment variables (including a .env file) on top.
func New() (*Config, error) {
	_ = godotenv.Load()

	cfg := defaults()

	if path := getEnv("CONFIG_FILE", ""); path != "" {
		if _, err := toml.DecodeFile(path, cfg); err != nil {
			return nil, fmt.Errorf("failed to decode config file %s: %w", path, err)
		}
	}

	applyEnv(cfg)
	return cfg, nil
}

func defaults() *Config {
	cfg := &Config{}

	cfg.App.Name = "zenvia-sms"
	cfg.App.Env = "development"

	cfg.API.Host = "0.0.0.0"
	cfg.API.Port = "8080"

	cfg.Log.Level = "info"
	cfg.Log.MaxSize = 100
	cfg.Log.MaxBackups = 5
	cfg.Log.MaxAge = 30

	cfg.Zenvia.Endpoint = sms.DefaultEndpoint
	cfg.Zenvia.Timeout = sms.DefaultTimeout

	return cfg
}

func applyEnv(cfg *Config) {
	// App
	cfg.App.Name = getEnv("APP_NAME", cfg.App.Name)
	cfg.App.Env = getEnv("APP_ENV", cfg.App.Env)

	// API
	cfg.API.Host = getEnv("API_HOST", cfg.API.Host)
	cfg.API.Port = getEnv("API_PORT", cfg.API.Port)

	// Log
	cfg.Log.Level = getEnv("LOG_LEVEL", cfg.Log.Level)
	cfg.Log.FileName = getEnv("LOG_FILE", cfg.Log.FileName)
	cfg.Log.MaxSize = getInt("LOG_MAX_SIZE_MB", cfg.Log.MaxSize)
	cfg.Log.MaxBackups = getInt("LOG_MAX_BACKUPS", cfg.Log.MaxBackups)
	cfg.Log.MaxAge = getInt("LOG_MAX_AGE_DAYS", cfg.Log.MaxAge)

	// Zenvia
	cfg.Zenvia.User = getEnv(sms.EnvUser, cfg.Zenvia.User)
	cfg.Zenvia.Password = getEnv(sms.EnvPassword, cfg.Zenvia.Password)
	cfg.Zenvia.Endpoint = getEnv("ZENVIA_API_URL", cfg.Zenvia.Endpoint)
	cfg.Zenvia.Timeout = getDuration("ZENVIA_HTTP_TIMEOUT", cfg.Zenvia.Timeout)
}

// Addr is the listen address of the relay API.
func (c *Config) Addr() string {
	return fmt.Sprintf("%s:%s", c.API.Host, c.API.Port)
}

// SMS returns the client settings for pkg/sms. Log and Tracer are left
// for the caller to attach. A non-positive timeout falls back to
// sms.DefaultTimeout; http.Client treats zero as no deadline at all.
func (c *Config) SMS() sms.Config {
	timeout := c.Zenvia.Timeout
	if timeout <= 0 {
		timeout = sms.DefaultTimeout
	}
	return sms.Config{
		User:       c.Zenvia.User,
		Password:   c.Zenvia.Password,
		Endpoint:   c.Zenvia.Endpoint,
		HTTPClient: &http.Client{Timeout: timeout},
	}
}

// IsDevelopment reports whether the app runs in a development environment.
func (c *Config) IsDevelopment() bool {
	switch strings.ToLower(c.App.Env) {
	case "dev", "development", "local":
		return true
	default:
		return false
	}
}

func getEnv(key, def string) string {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def
	}
	return v
}

func getInt(key string, def int) int {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def
	}
	i, err := strconv.Atoi(v)
	if err != nil {
		return def
	}
	return i
}

func getDuration(key string, def time.Duration) time.Duration {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return def
	}
	return d
}
