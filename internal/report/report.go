// Package report tracks per-scenario outcomes and aggregates them into the
// run summary that decides the process exit code.
package report

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// Outcome classifies a scenario's result.
type Outcome int

const (
	// Produced means an image file exists at the output path, written by
	// either the renderer or the fallback generator.
	Produced Outcome = iota
	// Failed means no usable image was produced for the scenario.
	Failed
)

func (o Outcome) String() string {
	switch o {
	case Produced:
		return "produced"
	case Failed:
		return "failed"
	default:
		return fmt.Sprintf("Outcome(%d)", int(o))
	}
}

// Source records which component produced the image.
type Source int

const (
	SourceNone Source = iota
	SourceRenderer
	SourceFallback
)

func (s Source) String() string {
	switch s {
	case SourceRenderer:
		return "renderer"
	case SourceFallback:
		return "fallback"
	default:
		return "none"
	}
}

// RenderResult is the immutable record of one scenario's processing.
type RenderResult struct {
	ScenarioName string
	OutputPath   string
	Outcome      Outcome
	Source       Source
	// ByteSize is the produced file's size; zero when Outcome is Failed.
	ByteSize int64
}

// Summary accumulates outcomes across a run. It has value semantics:
// Record returns a new Summary rather than mutating in place, so the
// driver threads it through the scenario loop as a fold.
type Summary struct {
	Success  int
	Total    int
	Produced []string
}

// Record folds one result into the summary.
func (s Summary) Record(res RenderResult) Summary {
	s.Total++
	if res.Outcome == Produced {
		s.Success++
		s.Produced = append(s.Produced, res.OutputPath)
	}
	return s
}

// AllSucceeded reports whether every recorded scenario produced a file.
func (s Summary) AllSucceeded() bool {
	return s.Success == s.Total
}

// String renders the "5/5" style counter used in the final summary line.
func (s Summary) String() string {
	return fmt.Sprintf("%d/%d", s.Success, s.Total)
}

// OutputFile is one entry of the trailing directory listing.
type OutputFile struct {
	Name string
	Size int64
}

// ListOutputs returns the PNG files in dir sorted by name, for the listing
// printed after a fully successful run.
func ListOutputs(dir string) ([]OutputFile, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read output directory %s: %w", dir, err)
	}

	var files []OutputFile
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".png") {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			return nil, fmt.Errorf("failed to stat %s: %w", filepath.Join(dir, entry.Name()), err)
		}
		files = append(files, OutputFile{Name: entry.Name(), Size: info.Size()})
	}

	sort.Slice(files, func(i, j int) bool { return files[i].Name < files[j].Name })
	return files, nil
}
