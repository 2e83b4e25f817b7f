package config

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

// Validate checks the configuration for semantic errors.
func Validate(cfg Config) error {
	var errs []string

	if cfg.Anonymize.Epsilon <= 0 {
		errs = append(errs, "anonymize.epsilon must be > 0")
	}
	if cfg.Anonymize.Sensitivity <= 0 {
		errs = append(errs, "anonymize.sensitivity must be > 0")
	}
	if !oneOf(cfg.Anonymize.HashAlgorithm, "sha256", "sha512") {
		errs = append(errs, "anonymize.hash_algorithm must be one of sha256|sha512")
	}
	if cfg.Anonymize.Seed < 0 {
		errs = append(errs, "anonymize.seed cannot be negative")
	}

	if d := cfg.CSV.Delimiter; utf8.RuneCountInString(d) != 1 {
		errs = append(errs, "csv.delimiter must be exactly one character")
	} else if d == `"` || d == "\n" || d == "\r" {
		errs = append(errs, "csv.delimiter cannot be a quote or newline")
	}

	if cfg.History.RetentionDays < 0 {
		errs = append(errs, "history.retention_days cannot be negative")
	}

	if !oneOf(cfg.Logging.Level, "debug", "info", "warn", "error", "fatal") {
		errs = append(errs, "logging.level must be one of debug|info|warn|error|fatal")
	}

	if len(errs) > 0 {
		return fmt.Errorf("config validation failed: %s", strings.Join(errs, "; "))
	}
	return nil
}

func oneOf(val string, options ...string) bool {
	for _, opt := range options {
		if val == opt {
			return true
		}
	}
	return false
}
