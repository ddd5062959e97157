package formats

import (
	"encoding/json"
	"fmt"

	"github.com/vovakirdan/laserdodge/internal/sim"
)

func init() {
	Register(Format{
		Name:       "json",
		Extensions: []string{".json"},
		Parse:      ParseJSON,
	})
}

// ParseJSON parses a JSON level file. Unknown fields are ignored so older
// builds can open newer files; a null cycleSeconds means a stationary path
// and an absent enabled flag means on.
func ParseJSON(data []byte) (*sim.Level, error) {
	var level sim.Level
	if err := json.Unmarshal(data, &level); err != nil {
		return nil, fmt.Errorf("json unmarshal: %w", err)
	}
	return &level, nil
}
