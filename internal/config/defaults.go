package config

// DefaultConfig returns the built-in default configuration.
func DefaultConfig() Config {
	return Config{
		Anonymize: AnonymizeConfig{
			Epsilon:       1.0,
			Sensitivity:   1.0,
			HashAlgorithm: "sha256",
			Seed:          0,
		},
		CSV: CSVConfig{
			Delimiter:        ",",
			TrimLeadingSpace: false,
		},
		History: HistoryConfig{
			Enabled:       true,
			DatabasePath:  "", // resolved to ~/.dataveil/history.db at open time
			RetentionDays: 365,
		},
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}
