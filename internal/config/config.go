package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"strings"

	"github.com/goccy/go-yaml"
	"github.com/joho/godotenv"
)

// DocIDs holds the server-side document identifiers, one per operation.
type DocIDs struct {
	Profile string `yaml:"profile"`
	Posts   string `yaml:"posts"`
	Replies string `yaml:"replies"`
	Post    string `yaml:"post"`
	Likers  string `yaml:"likers"`
}

type Config struct {
	Endpoint    string       `yaml:"endpoint"`
	AppID       string       `yaml:"app_id"`
	UserAgent   string       `yaml:"user_agent"`
	Socks5Proxy string       `yaml:"socks5_proxy"`
	DocIDs      DocIDs       `yaml:"doc_ids"`
	LogLevel    slog.Leveler `yaml:"-"`
}

// Load reads the optional .env file, the optional YAML file named by
// THREADS_CONFIG_FILE and then the environment. Values left empty mean
// "use the client default".
func Load() (Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Config{}, fmt.Errorf("load .env: %w", err)
	}

	var cfg Config
	if path := os.Getenv("THREADS_CONFIG_FILE"); path != "" {
		fileCfg, err := LoadFile(path)
		if err != nil {
			return Config{}, err
		}
		cfg = fileCfg
	}

	setFromEnv(&cfg.Endpoint, "THREADS_ENDPOINT")
	setFromEnv(&cfg.AppID, "THREADS_APP_ID")
	setFromEnv(&cfg.UserAgent, "THREADS_USER_AGENT")
	setFromEnv(&cfg.Socks5Proxy, "THREADS_SOCKS5_PROXY")

	cfg.LogLevel = ParseLogLevel(os.Getenv("LOG_LEVEL"))

	return cfg, nil
}

// LoadFile decodes a YAML configuration file.
func LoadFile(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("read config file: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("parse config file %s: %w", path, err)
	}

	return cfg, nil
}

func setFromEnv(dst *string, key string) {
	if value := os.Getenv(key); value != "" {
		*dst = value
	}
}

func ParseLogLevel(level string) slog.Leveler {
	levels := map[string]slog.Level{
		"ERROR":   slog.LevelError,
		"INFO":    slog.LevelInfo,
		"DEBUG":   slog.LevelDebug,
		"WARNING": slog.LevelWarn,
		"WARN":    slog.LevelWarn,
	}

	l, ok := levels[strings.ToUpper(level)]
	if !ok {
		l = slog.LevelError
	}

	return l
}
