package extension

// Config holds the Coinage extension configuration.
// Fields can be set programmatically via Option functions or loaded from
// YAML configuration files (under "extensions.coinage" or "coinage" keys).
type Config struct {
	// DisableMigrate prevents auto-migration on start.
	DisableMigrate bool `json:"disable_migrate" mapstructure:"disable_migrate" yaml:"disable_migrate"`

	// FeeStrategy names a registered fee strategy plugin that replaces
	// the built-in basis-point computation.
	FeeStrategy string `json:"fee_strategy" mapstructure:"fee_strategy" yaml:"fee_strategy"`

	// RequireConfig requires config to be present in YAML files.
	// If true and no config is found, Register returns an error.
	RequireConfig bool `json:"-" yaml:"-"`
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	return Config{}
}
