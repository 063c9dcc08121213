// Package renderer locates, builds, and invokes the external render_sandbox
// executable. The renderer is an opaque collaborator: this package only
// knows its CLI contract and classifies runs by exit status and the
// presence of the output file.
package renderer

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"os/exec"
	"strconv"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/mpiispanen/render-sandbox/internal/report"
	"github.com/mpiispanen/render-sandbox/internal/scenario"
)

// DefaultBinaryPath is where the release build of the renderer lands.
const DefaultBinaryPath = "target/release/render_sandbox"

// DefaultBuildCommand builds the renderer when the binary is absent.
var DefaultBuildCommand = []string{"cargo", "build", "--release"}

// InvocationError reports a renderer process that exited non-zero. It
// carries the captured stderr so the driver can log the renderer's own
// diagnostics.
type InvocationError struct {
	ScenarioName string
	ExitCode     int
	Stderr       string
	Err          error
}

func (e *InvocationError) Error() string {
	return fmt.Sprintf("renderer failed for %s (exit %d): %v", e.ScenarioName, e.ExitCode, e.Err)
}

func (e *InvocationError) Unwrap() error { return e.Err }

// BinaryError reports that the renderer binary is missing and could not be
// built. It is fatal before any scenario runs.
type BinaryError struct {
	Path   string
	Output string
	Err    error
}

func (e *BinaryError) Error() string {
	return fmt.Sprintf("renderer binary unavailable at %s: %v", e.Path, e.Err)
}

func (e *BinaryError) Unwrap() error { return e.Err }

// VerificationError reports a renderer that exited zero but left no
// readable file at the output path. The driver counts this as a scenario
// failure without aborting the run.
type VerificationError struct {
	ScenarioName string
	OutputPath   string
	Err          error
}

func (e *VerificationError) Error() string {
	return fmt.Sprintf("renderer reported success for %s but %s is missing: %v", e.ScenarioName, e.OutputPath, e.Err)
}

func (e *VerificationError) Unwrap() error { return e.Err }

// BuildArgs assembles the full renderer argument list for a scenario: the
// output path, dimensions, the fixed png format, the headless flag (the
// process always runs without a display), then the pass-through options.
func BuildArgs(sc scenario.Scenario, outputPath string, opts Options) []string {
	args := []string{
		"--output", outputPath,
		"--width", strconv.Itoa(sc.Width),
		"--height", strconv.Itoa(sc.Height),
		"--format", "png",
		"--headless",
	}
	return append(args, opts.Args()...)
}

// EnsureBinary checks that the renderer binary exists at path, and runs the
// build command once if it does not. A failed build returns a BinaryError.
func EnsureBinary(ctx context.Context, path string, buildCmd []string) error {
	if _, err := os.Stat(path); err == nil {
		return nil
	}

	if len(buildCmd) == 0 {
		return &BinaryError{Path: path, Err: fmt.Errorf("binary not found and no build command configured")}
	}

	log.Info().
		Str("binary", path).
		Str("command", strings.Join(buildCmd, " ")).
		Msg("Renderer binary not found, building")

	cmd := exec.CommandContext(ctx, buildCmd[0], buildCmd[1:]...)
	output, err := cmd.CombinedOutput()
	if err != nil {
		return &BinaryError{
			Path:   path,
			Output: string(output),
			Err:    fmt.Errorf("build failed: %w", err),
		}
	}

	if _, err := os.Stat(path); err != nil {
		return &BinaryError{
			Path:   path,
			Output: string(output),
			Err:    fmt.Errorf("build succeeded but binary still missing: %w", err),
		}
	}

	log.Info().Str("binary", path).Msg("Renderer build complete")
	return nil
}

// Invoke runs the renderer synchronously for one scenario and classifies
// the outcome. Exit status zero yields a Produced result with the byte size
// read from the filesystem; a non-zero exit returns an InvocationError for
// the caller to handle per its mode policy.
func Invoke(ctx context.Context, binary string, sc scenario.Scenario, outputPath string, opts Options) (report.RenderResult, error) {
	args := BuildArgs(sc, outputPath, opts)

	log.Debug().
		Str("scenario", sc.Name).
		Str("command", binary+" "+strings.Join(args, " ")).
		Msg("Invoking renderer")

	var stdout, stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, binary, args...)
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		exitCode := -1
		if exitErr, ok := err.(*exec.ExitError); ok {
			exitCode = exitErr.ExitCode()
		}
		return report.RenderResult{}, &InvocationError{
			ScenarioName: sc.Name,
			ExitCode:     exitCode,
			Stderr:       stderr.String(),
			Err:          err,
		}
	}

	if out := strings.TrimSpace(stdout.String()); out != "" {
		log.Debug().Str("scenario", sc.Name).Str("stdout", out).Msg("Renderer output")
	}

	info, err := os.Stat(outputPath)
	if err != nil {
		return report.RenderResult{}, &VerificationError{
			ScenarioName: sc.Name,
			OutputPath:   outputPath,
			Err:          err,
		}
	}

	return report.RenderResult{
		ScenarioName: sc.Name,
		OutputPath:   outputPath,
		Outcome:      report.Produced,
		Source:       report.SourceRenderer,
		ByteSize:     info.Size(),
	}, nil
}
