// Package scenario defines the table of rendering test cases driven through
// the renderer (or its fallback) by the run driver. The table is fixed at
// process start and enumerated in order; scenario names double as output
// file names and as the seed source for fallback image content.
package scenario

import (
	"fmt"
	"path/filepath"
)

// Scenario is one named rendering configuration. Immutable after the table
// is built; identity is the Name field, which must be unique within a table.
type Scenario struct {
	Name        string `toml:"name"`
	Width       int    `toml:"width"`
	Height      int    `toml:"height"`
	Samples     int    `toml:"samples"`
	Description string `toml:"description"`
}

// OutputPath returns the scenario's image path under the given output
// directory. Every scenario maps to exactly one file; a second run
// overwrites it.
func (s Scenario) OutputPath(outputDir string) string {
	return filepath.Join(outputDir, s.Name+".png")
}

// Default returns the built-in scenario table: five cases covering the
// baseline resolution, a high resolution, a square aspect ratio, MSAA, and
// a minimal resolution.
func Default() []Scenario {
	return []Scenario{
		{
			Name:        "basic_render_800x600",
			Width:       800,
			Height:      600,
			Samples:     1,
			Description: "Basic rendering test at 800x600 resolution",
		},
		{
			Name:        "high_res_1920x1080",
			Width:       1920,
			Height:      1080,
			Samples:     1,
			Description: "High resolution rendering test",
		},
		{
			Name:        "square_512x512",
			Width:       512,
			Height:      512,
			Samples:     1,
			Description: "Square aspect ratio rendering test",
		},
		{
			Name:        "antialiased_4x",
			Width:       800,
			Height:      600,
			Samples:     4,
			Description: "Anti-aliased rendering with 4x MSAA",
		},
		{
			Name:        "minimal_400x300",
			Width:       400,
			Height:      300,
			Samples:     1,
			Description: "Minimal resolution rendering test",
		},
	}
}

// Validate checks a scenario table for structural problems: empty tables,
// empty or duplicate names, non-positive dimensions, and sample counts
// below one. Returns the first problem found.
func Validate(table []Scenario) error {
	if len(table) == 0 {
		return fmt.Errorf("scenario table is empty")
	}

	seen := make(map[string]struct{}, len(table))
	for i, sc := range table {
		if sc.Name == "" {
			return fmt.Errorf("scenario %d has an empty name", i)
		}
		if _, dup := seen[sc.Name]; dup {
			return fmt.Errorf("duplicate scenario name %q", sc.Name)
		}
		seen[sc.Name] = struct{}{}

		if sc.Width <= 0 || sc.Height <= 0 {
			return fmt.Errorf("scenario %q has invalid dimensions %dx%d", sc.Name, sc.Width, sc.Height)
		}
		if sc.Samples < 1 {
			return fmt.Errorf("scenario %q has invalid sample count %d", sc.Name, sc.Samples)
		}
	}

	return nil
}
