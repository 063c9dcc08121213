package scenario

import (
	"fmt"

	"github.com/BurntSushi/toml"
)

// tableFile is the on-disk shape of a scenario override file:
//
//	[[scenario]]
//	name = "basic_render_800x600"
//	width = 800
//	height = 600
//	samples = 1
//	description = "Basic rendering test at 800x600 resolution"
type tableFile struct {
	Scenarios []Scenario `toml:"scenario"`
}

// LoadFile reads a scenario table from a TOML file, replacing the built-in
// table. The loaded table is validated with the same rules as Default();
// scenarios missing a sample count default to 1.
func LoadFile(path string) ([]Scenario, error) {
	var f tableFile
	if _, err := toml.DecodeFile(path, &f); err != nil {
		return nil, fmt.Errorf("failed to parse scenario file %s: %w", path, err)
	}

	for i := range f.Scenarios {
		if f.Scenarios[i].Samples == 0 {
			f.Scenarios[i].Samples = 1
		}
	}

	if err := Validate(f.Scenarios); err != nil {
		return nil, fmt.Errorf("invalid scenario file %s: %w", path, err)
	}

	return f.Scenarios, nil
}
