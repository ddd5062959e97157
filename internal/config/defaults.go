package config

import (
	_ "embed"
)

//go:embed defaults/laserdodge.yaml
var defaultYAML []byte

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Session: SessionConfig{
			Lives:              3,
			ZapCooldownSeconds: 1.0,
		},
		Runtime: RuntimeConfig{
			TickRate:   60,
			PickRadius: 24,
		},
		Preview: PreviewConfig{
			CellAspect: 2.0,
		},
	}
}

// DefaultYAML returns the embedded default configuration file.
func DefaultYAML() []byte {
	return defaultYAML
}
