package config

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
)

const (
	defaultLanguage       = "python"
	defaultBaseURL        = "https://adventofcode.com"
	defaultHTTPTimeoutSec = 20
	defaultRetryMax       = 60
)

const (
	defaultUserAgent   = "slh/0.1 (+https://github.com/odysseus0/slh)"
	configFolderName   = "slh"
	configFileName     = "config.toml"
	projectConfigName  = ".slh.toml"
	configPathEnvName  = "XDG_CONFIG_HOME"
	defaultSessionName = ".session"
	defaultDBName      = ".slh/progress.db"
)

// Config holds every setting a command may need. Relative SessionFile and
// DBPath values are resolved against the workspace root by the caller.
type Config struct {
	Language    string
	SessionFile string
	BaseURL     string
	DBPath      string
	HTTPTimeout time.Duration
	UserAgent   string
	RetryMax    int
}

// LoadConfig reads defaults, the user config file, the project config file
// in dir, and SLH_* environment overrides, in that order.
func LoadConfig(dir string) (Config, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return Config{}, err
	}

	cfg := Config{
		Language:    defaultLanguage,
		SessionFile: defaultSessionName,
		BaseURL:     defaultBaseURL,
		DBPath:      defaultDBName,
		HTTPTimeout: defaultHTTPTimeoutSec * time.Second,
		UserAgent:   defaultUserAgent,
		RetryMax:    defaultRetryMax,
	}

	paths, err := findConfigPaths(home, dir)
	if err != nil {
		return Config{}, err
	}
	for _, path := range paths {
		fileCfg, err := loadFileConfig(path)
		if err != nil {
			return Config{}, err
		}
		applyFileConfig(&cfg, fileCfg)
	}

	applyEnvOverrides(&cfg)

	if cfg.HTTPTimeout <= 0 {
		cfg.HTTPTimeout = defaultHTTPTimeoutSec * time.Second
	}
	if cfg.RetryMax < 0 {
		cfg.RetryMax = defaultRetryMax
	}
	cfg.Language = strings.ToLower(strings.TrimSpace(cfg.Language))
	cfg.BaseURL = strings.TrimRight(cfg.BaseURL, "/")
	return cfg, nil
}

// Resolve returns path, or path joined onto root when it is relative.
func Resolve(root, path string) string {
	if path == "" || filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(root, path)
}

type fileConfig struct {
	Language           *string `toml:"language"`
	SessionFile        *string `toml:"session_file"`
	BaseURL            *string `toml:"base_url"`
	DBPath             *string `toml:"db_path"`
	HTTPTimeoutSeconds *int    `toml:"http_timeout_seconds"`
	UserAgent          *string `toml:"user_agent"`
	RetryMax           *int    `toml:"retry_max"`
}

func findConfigPaths(home, dir string) ([]string, error) {
	user := filepath.Join(home, ".config", configFolderName, configFileName)
	if xdgConfigHome := strings.TrimSpace(os.Getenv(configPathEnvName)); xdgConfigHome != "" {
		xdg := filepath.Join(xdgConfigHome, configFolderName, configFileName)
		ok, err := isConfigFile(xdg)
		if err != nil {
			return nil, err
		}
		if ok {
			user = xdg
		}
	}

	var paths []string
	for _, candidate := range []string{user, filepath.Join(dir, projectConfigName)} {
		ok, err := isConfigFile(candidate)
		if err != nil {
			return nil, err
		}
		if ok {
			paths = append(paths, candidate)
		}
	}
	return paths, nil
}

func isConfigFile(path string) (bool, error) {
	info, err := os.Stat(path)
	if err == nil {
		if info.IsDir() {
			return false, fmt.Errorf("config path %q is a directory; expected a file", path)
		}
		return true, nil
	}
	if os.IsNotExist(err) {
		return false, nil
	}
	return false, fmt.Errorf("failed to read config path %q: %w", path, err)
}

func loadFileConfig(path string) (fileConfig, error) {
	var cfg fileConfig
	meta, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return fileConfig{}, fmt.Errorf("invalid config file %q: %w", path, err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		unknown := make([]string, 0, len(undecoded))
		for _, key := range undecoded {
			unknown = append(unknown, key.String())
		}
		sort.Strings(unknown)
		return fileConfig{}, fmt.Errorf("invalid config file %q: unknown key(s): %s", path, strings.Join(unknown, ", "))
	}
	if err := validateFileConfig(path, cfg); err != nil {
		return fileConfig{}, err
	}
	return cfg, nil
}

func validateFileConfig(path string, cfg fileConfig) error {
	if cfg.Language != nil && strings.TrimSpace(*cfg.Language) == "" {
		return fmt.Errorf("invalid config file %q: language must be non-empty when provided", path)
	}
	if cfg.SessionFile != nil && strings.TrimSpace(*cfg.SessionFile) == "" {
		return fmt.Errorf("invalid config file %q: session_file must be non-empty when provided", path)
	}
	if cfg.BaseURL != nil && !strings.HasPrefix(*cfg.BaseURL, "http://") && !strings.HasPrefix(*cfg.BaseURL, "https://") {
		return fmt.Errorf("invalid config file %q: base_url must be an http(s) URL", path)
	}
	if cfg.DBPath != nil && strings.TrimSpace(*cfg.DBPath) == "" {
		return fmt.Errorf("invalid config file %q: db_path must be non-empty when provided", path)
	}
	if cfg.HTTPTimeoutSeconds != nil && *cfg.HTTPTimeoutSeconds <= 0 {
		return fmt.Errorf("invalid config file %q: http_timeout_seconds must be > 0", path)
	}
	if cfg.RetryMax != nil && *cfg.RetryMax < 0 {
		return fmt.Errorf("invalid config file %q: retry_max must be >= 0", path)
	}
	return nil
}

func applyFileConfig(cfg *Config, fileCfg fileConfig) {
	if fileCfg.Language != nil {
		cfg.Language = *fileCfg.Language
	}
	if fileCfg.SessionFile != nil {
		cfg.SessionFile = *fileCfg.SessionFile
	}
	if fileCfg.BaseURL != nil {
		cfg.BaseURL = *fileCfg.BaseURL
	}
	if fileCfg.DBPath != nil {
		cfg.DBPath = *fileCfg.DBPath
	}
	if fileCfg.HTTPTimeoutSeconds != nil {
		cfg.HTTPTimeout = time.Duration(*fileCfg.HTTPTimeoutSeconds) * time.Second
	}
	if fileCfg.UserAgent != nil {
		cfg.UserAgent = *fileCfg.UserAgent
	}
	if fileCfg.RetryMax != nil {
		cfg.RetryMax = *fileCfg.RetryMax
	}
}

func applyEnvOverrides(cfg *Config) {
	if v, ok := os.LookupEnv("SLH_LANGUAGE"); ok && v != "" {
		cfg.Language = v
	}
	if v, ok := os.LookupEnv("SLH_SESSION_FILE"); ok && v != "" {
		cfg.SessionFile = v
	}
	if v, ok := os.LookupEnv("SLH_BASE_URL"); ok && v != "" {
		cfg.BaseURL = v
	}
	if v, ok := os.LookupEnv("SLH_DB_PATH"); ok && v != "" {
		cfg.DBPath = v
	}
	if v, ok := os.LookupEnv("SLH_HTTP_TIMEOUT_SECONDS"); ok && v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.HTTPTimeout = time.Duration(n) * time.Second
		}
	}
	if v, ok := os.LookupEnv("SLH_USER_AGENT"); ok && v != "" {
		cfg.UserAgent = v
	}
	if v, ok := os.LookupEnv("SLH_RETRY_MAX"); ok && v != "" {
		if n, err := strconv.Atoi(v); err == nil && n >= 0 {
			cfg.RetryMax = n
		}
	}
}
