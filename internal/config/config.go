// Package config provides YAML-based configuration loading for the
// laserdodge toolchain.
package config

// Config is the root configuration shared by the CLI and the preview host.
type Config struct {
	Session SessionConfig `yaml:"session"`
	Runtime RuntimeConfig `yaml:"runtime"`
	Preview PreviewConfig `yaml:"preview"`
}

// SessionConfig defines the play rules layered on top of the simulation core.
type SessionConfig struct {
	Lives              int     `yaml:"lives"`
	ZapCooldownSeconds float64 `yaml:"zap_cooldown_seconds"`
}

// RuntimeConfig defines stepping parameters for hosts driving the simulation.
type RuntimeConfig struct {
	TickRate   int     `yaml:"tick_rate"`   // fixed simulation steps per second
	PickRadius float64 `yaml:"pick_radius"` // pixel tolerance for pointer pick queries
}

// PreviewConfig defines terminal rendering parameters for the play command.
type PreviewConfig struct {
	CellAspect float64 `yaml:"cell_aspect"` // terminal cell height/width ratio
}

// DifficultyPreset represents a named session rule set.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
)
