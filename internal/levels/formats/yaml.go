package formats

import (
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/vovakirdan/laserdodge/internal/sim"
)

func init() {
	Register(Format{
		Name:       "yaml",
		Extensions: []string{".yaml", ".yml"},
		Parse:      ParseYAML,
	})
}

// ParseYAML parses a YAML level file. The document mirrors the JSON format
// field for field.
func ParseYAML(data []byte) (*sim.Level, error) {
	var level sim.Level
	if err := yaml.Unmarshal(data, &level); err != nil {
		return nil, fmt.Errorf("yaml unmarshal: %w", err)
	}
	return &level, nil
}
