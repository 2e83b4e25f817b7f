// Package config implements hierarchical configuration for dataveil.
// Precedence: defaults < user (~/.dataveil/config.toml) < project
// (.dataveil/config.toml) < env (DATAVEIL_*) < flags.
package config

// Config is the top-level configuration structure.
type Config struct {
	Anonymize AnonymizeConfig `toml:"anonymize" mapstructure:"anonymize"`
	CSV       CSVConfig       `toml:"csv" mapstructure:"csv"`
	History   HistoryConfig   `toml:"history" mapstructure:"history"`
	Logging   LoggingConfig   `toml:"logging" mapstructure:"logging"`
}

// AnonymizeConfig holds the masking and noise knobs.
type AnonymizeConfig struct {
	// Epsilon is the privacy-loss parameter; smaller means more noise.
	Epsilon float64 `toml:"epsilon" mapstructure:"epsilon"`
	// Sensitivity is the per-record influence bound used for the noise
	// scale (scale = sensitivity / epsilon).
	Sensitivity float64 `toml:"sensitivity" mapstructure:"sensitivity"`
	// HashAlgorithm selects the masking digest: sha256 | sha512.
	HashAlgorithm string `toml:"hash_algorithm" mapstructure:"hash_algorithm"`
	// Seed fixes the noise RNG for reproducible output; 0 = time-seeded.
	Seed int64 `toml:"seed" mapstructure:"seed"`
}

// CSVConfig holds the delimited-format settings shared by reader and writer.
type CSVConfig struct {
	Delimiter        string `toml:"delimiter" mapstructure:"delimiter"`
	TrimLeadingSpace bool   `toml:"trim_leading_space" mapstructure:"trim_leading_space"`
}

// HistoryConfig holds audit-history persistence settings.
type HistoryConfig struct {
	Enabled       bool   `toml:"enabled" mapstructure:"enabled"`
	DatabasePath  string `toml:"database_path" mapstructure:"database_path"`
	RetentionDays int    `toml:"retention_days" mapstructure:"retention_days"`
}

// LoggingConfig holds log output settings.
type LoggingConfig struct {
	Level string `toml:"level" mapstructure:"level"`
}
