// Package driver runs the scenario table through the renderer, applying the
// configured failure policy and accumulating the run summary. Scenarios are
// processed strictly in table order, one at a time; a scenario's result is
// final before the next invocation starts.
package driver

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/rs/zerolog/log"

	"github.com/mpiispanen/render-sandbox/internal/fallback"
	"github.com/mpiispanen/render-sandbox/internal/renderer"
	"github.com/mpiispanen/render-sandbox/internal/report"
	"github.com/mpiispanen/render-sandbox/internal/scenario"
)

// Mode selects the failure policy toward renderer errors.
type Mode int

const (
	// ModeLenient substitutes a synthetic fallback image when the renderer
	// fails; the run only fails if the fallback cannot produce a file.
	ModeLenient Mode = iota
	// ModeStrict aborts the whole run on the first renderer failure.
	ModeStrict
)

func (m Mode) String() string {
	if m == ModeStrict {
		return "strict"
	}
	return "lenient"
}

// Config is the resolved run configuration.
type Config struct {
	Mode       Mode
	OutputDir  string
	BinaryPath string
	BuildCmd   []string
	Scenarios  []scenario.Scenario
	Options    renderer.Options
}

// Run processes every scenario and returns the aggregated summary. The
// returned error is non-nil only for run-aborting conditions: an invalid
// table, a missing/unbuildable renderer binary, or a renderer failure under
// strict mode. Per-scenario failures in lenient mode are contained and
// reflected in the summary counts instead.
func Run(ctx context.Context, cfg Config) (report.Summary, error) {
	var summary report.Summary

	if err := scenario.Validate(cfg.Scenarios); err != nil {
		return summary, fmt.Errorf("invalid scenario table: %w", err)
	}

	if err := os.MkdirAll(cfg.OutputDir, 0o755); err != nil {
		return summary, fmt.Errorf("failed to create output directory %s: %w", cfg.OutputDir, err)
	}

	if err := renderer.EnsureBinary(ctx, cfg.BinaryPath, cfg.BuildCmd); err != nil {
		return summary, err
	}

	for _, sc := range cfg.Scenarios {
		res, err := processScenario(ctx, cfg, sc)
		if err != nil {
			// Only strict-mode renderer failures abort the run.
			return summary, err
		}
		summary = summary.Record(res)
	}

	log.Info().
		Str("mode", cfg.Mode.String()).
		Int("success", summary.Success).
		Int("total", summary.Total).
		Msg("Test image generation completed")

	return summary, nil
}

// processScenario finalizes one scenario: renderer first, then (in lenient
// mode) the fallback generator. All per-scenario errors are converted into
// a Failed result except strict-mode renderer failures, which are returned
// to abort the run.
func processScenario(ctx context.Context, cfg Config, sc scenario.Scenario) (report.RenderResult, error) {
	outputPath := sc.OutputPath(cfg.OutputDir)

	log.Info().
		Str("scenario", sc.Name).
		Str("description", sc.Description).
		Str("path", outputPath).
		Msg("Generating")

	opts := cfg.Options
	opts.Samples = sc.Samples

	res, err := renderer.Invoke(ctx, cfg.BinaryPath, sc, outputPath, opts)
	if err == nil {
		log.Info().
			Str("scenario", sc.Name).
			Str("source", res.Source.String()).
			Int64("size_bytes", res.ByteSize).
			Msg("Created")
		return res, nil
	}

	var invErr *renderer.InvocationError
	if errors.As(err, &invErr) {
		if cfg.Mode == ModeStrict {
			log.Error().
				Int("exit_code", invErr.ExitCode).
				Str("scenario", sc.Name).
				Str("stderr", invErr.Stderr).
				Msg("Renderer failed, aborting (strict mode)")
			return report.RenderResult{}, invErr
		}

		log.Warn().
			Int("exit_code", invErr.ExitCode).
			Str("scenario", sc.Name).
			Str("stderr", invErr.Stderr).
			Msg("Renderer failed, falling back to synthetic image generation")

		fbRes, fbErr := fallback.Synthesize(sc, outputPath)
		if fbErr != nil {
			log.Error().Err(fbErr).Str("scenario", sc.Name).Msg("Fallback image generation failed")
			return failedResult(sc, outputPath), nil
		}
		return fbRes, nil
	}

	var verErr *renderer.VerificationError
	if errors.As(err, &verErr) {
		// Renderer claimed success but left nothing behind. Counted as a
		// failure in both modes without aborting the run.
		log.Error().Err(verErr).Str("scenario", sc.Name).Msg("Output verification failed")
		return failedResult(sc, outputPath), nil
	}

	log.Error().Err(err).Str("scenario", sc.Name).Msg("Scenario failed")
	return failedResult(sc, outputPath), nil
}

func failedResult(sc scenario.Scenario, outputPath string) report.RenderResult {
	return report.RenderResult{
		ScenarioName: sc.Name,
		OutputPath:   outputPath,
		Outcome:      report.Failed,
	}
}
