package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/spf13/viper"
)

// LoadOptions controls configuration loading.
type LoadOptions struct {
	// ProjectDir is used to locate .dataveil/config.toml. Defaults to CWD
	// when empty.
	ProjectDir string
	// ConfigPath overrides the project config path if provided.
	ConfigPath string
	// FlagOverrides are highest-priority overrides from CLI flags
	// (dot-notated keys).
	FlagOverrides map[string]any
}

// Load returns the effective configuration after applying precedence:
// defaults < user (~/.dataveil/config.toml) < project (.dataveil/config.toml)
// < env (DATAVEIL_*) < flags.
func Load(opts LoadOptions) (Config, error) {
	v := viper.New()
	setDefaults(v)

	projectDir := opts.ProjectDir
	if projectDir == "" {
		if cwd, err := os.Getwd(); err == nil {
			projectDir = cwd
		}
	}

	// 1) User config
	if err := mergeConfigFile(v, UserConfigPath()); err != nil {
		return Config{}, err
	}
	// 2) Project config
	if err := mergeConfigFile(v, projectConfigPath(projectDir, opts.ConfigPath)); err != nil {
		return Config{}, err
	}
	// 3) Environment variables
	if err := applyEnvOverrides(v); err != nil {
		return Config{}, err
	}
	// 4) CLI flags (highest)
	for k, val := range opts.FlagOverrides {
		v.Set(k, val)
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("unmarshal config: %w", err)
	}
	if err := Validate(cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// setDefaults seeds viper with built-in defaults.
func setDefaults(v *viper.Viper) {
	def := DefaultConfig()

	v.SetDefault("anonymize.epsilon", def.Anonymize.Epsilon)
	v.SetDefault("anonymize.sensitivity", def.Anonymize.Sensitivity)
	v.SetDefault("anonymize.hash_algorithm", def.Anonymize.HashAlgorithm)
	v.SetDefault("anonymize.seed", def.Anonymize.Seed)

	v.SetDefault("csv.delimiter", def.CSV.Delimiter)
	v.SetDefault("csv.trim_leading_space", def.CSV.TrimLeadingSpace)

	v.SetDefault("history.enabled", def.History.Enabled)
	v.SetDefault("history.database_path", def.History.DatabasePath)
	v.SetDefault("history.retention_days", def.History.RetentionDays)

	v.SetDefault("logging.level", def.Logging.Level)
}

// mergeConfigFile merges the TOML config file if it exists.
func mergeConfigFile(v *viper.Viper, path string) error {
	if path == "" {
		return nil
	}
	info, err := os.Stat(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("stat config %s: %w", path, err)
	}
	if info.IsDir() {
		return fmt.Errorf("config path %s is a directory", path)
	}
	v.SetConfigFile(path)
	if err := v.MergeInConfig(); err != nil {
		return fmt.Errorf("merge config %s: %w", path, err)
	}
	return nil
}

// applyEnvOverrides reads DATAVEIL_* env vars and applies them.
func applyEnvOverrides(v *viper.Viper) error {
	for _, binding := range envBindings {
		val := os.Getenv(binding.Env)
		if val == "" {
			continue
		}
		parsed, err := parseValueByKind(val, binding.Kind)
		if err != nil {
			return fmt.Errorf("env %s: %w", binding.Env, err)
		}
		v.Set(binding.Key, parsed)
	}
	return nil
}

// UserConfigPath returns the per-user config file path.
func UserConfigPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".dataveil", "config.toml")
}

func projectConfigPath(projectDir, override string) string {
	if override != "" {
		return override
	}
	if projectDir == "" {
		return filepath.Join(".dataveil", "config.toml")
	}
	return filepath.Join(projectDir, ".dataveil", "config.toml")
}

// WriteDefault writes the built-in defaults as a TOML config file at path,
// creating parent directories as needed. Refuses to clobber an existing
// file.
func WriteDefault(path string) error {
	if path == "" {
		return fmt.Errorf("config path is empty")
	}
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("config %s already exists", path)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return fmt.Errorf("mkdir %s: %w", filepath.Dir(path), err)
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0o600)
	if err != nil {
		return fmt.Errorf("create config %s: %w", path, err)
	}
	defer f.Close()

	enc := toml.NewEncoder(f)
	enc.Indent = "  "
	if err := enc.Encode(DefaultConfig()); err != nil {
		return fmt.Errorf("encode config: %w", err)
	}
	return nil
}

// Encode renders cfg as TOML.
func Encode(cfg Config) (string, error) {
	var sb strings.Builder
	enc := toml.NewEncoder(&sb)
	enc.Indent = "  "
	if err := enc.Encode(cfg); err != nil {
		return "", fmt.Errorf("encode config: %w", err)
	}
	return sb.String(), nil
}

// Helpers for env + parsing ---------------------------------------------------

type valueKind int

const (
	kindString valueKind = iota
	kindBool
	kindInt
	kindFloat
)

var envBindings = []struct {
	Env  string
	Key  string
	Kind valueKind
}{
	{"DATAVEIL_EPSILON", "anonymize.epsilon", kindFloat},
	{"DATAVEIL_SENSITIVITY", "anonymize.sensitivity", kindFloat},
	{"DATAVEIL_HASH_ALGORITHM", "anonymize.hash_algorithm", kindString},
	{"DATAVEIL_SEED", "anonymize.seed", kindInt},

	{"DATAVEIL_CSV_DELIMITER", "csv.delimiter", kindString},
	{"DATAVEIL_CSV_TRIM_LEADING_SPACE", "csv.trim_leading_space", kindBool},

	{"DATAVEIL_HISTORY_ENABLED", "history.enabled", kindBool},
	{"DATAVEIL_HISTORY_DB_PATH", "history.database_path", kindString},
	{"DATAVEIL_HISTORY_RETENTION_DAYS", "history.retention_days", kindInt},

	{"DATAVEIL_LOG_LEVEL", "logging.level", kindString},
}

func parseValueByKind(raw string, kind valueKind) (any, error) {
	switch kind {
	case kindString:
		return raw, nil
	case kindBool:
		v, err := strconv.ParseBool(raw)
		if err != nil {
			return nil, fmt.Errorf("expected boolean: %w", err)
		}
		return v, nil
	case kindInt:
		v, err := strconv.Atoi(raw)
		if err != nil {
			return nil, fmt.Errorf("expected integer: %w", err)
		}
		return v, nil
	case kindFloat:
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return nil, fmt.Errorf("expected number: %w", err)
		}
		return v, nil
	default:
		return nil, fmt.Errorf("unsupported value kind")
	}
}
