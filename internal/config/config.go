// Package config provides configuration loading and the global paths used by stamp.
package config

// LogConfig contains logging-related settings.
type LogConfig struct {
	// Timestamps controls whether timestamps are shown in log output.
	// Default: off. Override with --timestamps flag.
	Timestamps *bool `mapstructure:"timestamps"`
}

// Config represents the stamp CLI configuration.
// Loaded from <config-home>/stamp/config.yaml.
type Config struct {
	// TemplatesDir overrides the global templates directory.
	// Env: STAMP_TEMPLATES_DIR, Default: <config-home>/stamp/templates
	TemplatesDir string `mapstructure:"templatesDir"`

	// Log contains logging-related settings.
	Log LogConfig `mapstructure:"log"`
}

// WithDefaults returns a copy of c with unset values filled in.
func (c *Config) WithDefaults() (*Config, error) {
	out := *c
	if out.TemplatesDir == "" {
		dir, err := DefaultTemplatesDir()
		if err != nil {
			return nil, err
		}
		out.TemplatesDir = dir
	}
	return &out, nil
}
