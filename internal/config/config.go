package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	toml "github.com/pelletier/go-toml/v2"
)

// Config captures the settings orderdesk reads at startup.
type Config struct {
	APIURL      string
	UseMockData bool
	// CacheTTL is parsed for compatibility but nothing consumes it.
	CacheTTL time.Duration
	LogLevel string
	LogFile  string
}

// APIURLEnv overrides api_url when set.
const APIURLEnv = "ORDERDESK_API"

const (
	defaultConfigPath = "~/.config/orderdesk/config.toml"
	defaultAPIURL     = "http://127.0.0.1:5001/api"
	defaultCacheTTL   = 5 * time.Minute
	defaultLogLevel   = "info"
	defaultLogFile    = "~/.local/state/orderdesk/orderdesk.log"
)

// Defaults returns the configuration used when no file exists.
func Defaults() Config {
	return Config{
		APIURL:      defaultAPIURL,
		UseMockData: true,
		CacheTTL:    defaultCacheTTL,
		LogLevel:    defaultLogLevel,
		LogFile:     mustExpand(defaultLogFile),
	}
}

// Load locates and parses the config, falling back to defaults when missing.
// The ORDERDESK_API environment variable wins over the file.
func Load(path string) (Config, error) {
	resolved, err := resolvePath(path)
	if err != nil {
		return Config{}, err
	}

	cfg := Defaults()

	file, err := os.Open(resolved)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			applyEnv(&cfg)
			return cfg, nil
		}
		return Config{}, fmt.Errorf("open config: %w", err)
	}
	defer func() { _ = file.Close() }()

	bytes, err := io.ReadAll(file)
	if err != nil {
		return Config{}, fmt.Errorf("read config: %w", err)
	}

	var raw struct {
		APIURL      string `toml:"api_url"`
		UseMockData *bool  `toml:"use_mock_data"`
		CacheTTL    string `toml:"cache_ttl"`
		LogLevel    string `toml:"log_level"`
		LogFile     string `toml:"log_file"`
	}
	if err := toml.Unmarshal(bytes, &raw); err != nil {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}

	if v := strings.TrimSpace(raw.APIURL); v != "" {
		cfg.APIURL = v
	}
	if raw.UseMockData != nil {
		cfg.UseMockData = *raw.UseMockData
	}
	if v := strings.TrimSpace(raw.CacheTTL); v != "" {
		ttl, err := time.ParseDuration(v)
		if err != nil {
			return Config{}, fmt.Errorf("parse config: cache_ttl: %w", err)
		}
		cfg.CacheTTL = ttl
	}
	if v := strings.TrimSpace(raw.LogLevel); v != "" {
		cfg.LogLevel = strings.ToLower(v)
	}
	if v := strings.TrimSpace(raw.LogFile); v != "" {
		cfg.LogFile = mustExpand(v)
	}

	applyEnv(&cfg)
	return cfg, nil
}

func applyEnv(cfg *Config) {
	if v := strings.TrimSpace(os.Getenv(APIURLEnv)); v != "" {
		cfg.APIURL = v
	}
}

func resolvePath(path string) (string, error) {
	if strings.TrimSpace(path) == "" {
		return expandPath(defaultConfigPath)
	}
	return expandPath(path)
}

func mustExpand(path string) string {
	expanded, err := expandPath(path)
	if err != nil {
		return path
	}
	return expanded
}

func expandPath(path string) (string, error) {
	trimmed := strings.TrimSpace(path)
	if trimmed == "" {
		return "", fmt.Errorf("path is empty")
	}
	if strings.HasPrefix(trimmed, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		trimmed = filepath.Join(home, strings.TrimPrefix(trimmed, "~"))
	}
	return filepath.Abs(trimmed)
}
