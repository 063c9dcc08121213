// Command genimages generates the visual regression test image set by
// driving the render_sandbox executable over a table of scenarios. When the
// renderer cannot run (CI machines without GPU access) and strict mode is
// off, each failed scenario gets a deterministic synthetic placeholder
// image instead.
package main

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/mpiispanen/render-sandbox/internal/cli"
	"github.com/mpiispanen/render-sandbox/internal/driver"
	"github.com/mpiispanen/render-sandbox/internal/logging"
	"github.com/mpiispanen/render-sandbox/internal/renderer"
	"github.com/mpiispanen/render-sandbox/internal/report"
	"github.com/mpiispanen/render-sandbox/internal/scenario"
)

// CLI flags
var (
	strictFlag      bool
	outputDirFlag   string
	rendererFlag    string
	buildCmdFlag    string
	scenariosFlag   string
	verboseFlag     bool
	rendererLogFlag string
)

// rootCmd is the main Cobra command for the CLI.
var rootCmd = &cobra.Command{
	Use:   "genimages",
	Short: "Generate visual regression test images",
	Long: `genimages runs every scenario in the test table through the render_sandbox
executable and collects the resulting PNG files under the output directory.

If the renderer binary is missing it is built once at startup. When a
renderer invocation fails, the default (lenient) mode substitutes a
deterministic synthetic placeholder image so the visual regression workflow
still has a complete image set; strict mode instead aborts on the first
renderer failure.

Examples:
  genimages                                 # lenient run with the built-in table
  genimages --strict                        # abort on the first renderer failure
  genimages --scenarios custom.toml         # custom scenario table
  genimages --renderer ./render_sandbox --build-cmd ""`,
	Run: runMain,
}

func init() {
	rootCmd.Flags().BoolVar(&strictFlag, "strict", false, "Abort on the first renderer failure instead of generating fallback images")
	rootCmd.Flags().StringVarP(&outputDirFlag, "output-dir", "o", "outputs", "Directory for generated images")
	rootCmd.Flags().StringVar(&rendererFlag, "renderer", renderer.DefaultBinaryPath, "Path to the render_sandbox binary")
	rootCmd.Flags().StringVar(&buildCmdFlag, "build-cmd", strings.Join(renderer.DefaultBuildCommand, " "), "Command used to build the renderer when the binary is missing (empty disables building)")
	rootCmd.Flags().StringVar(&scenariosFlag, "scenarios", "", "TOML file overriding the built-in scenario table")
	rootCmd.Flags().BoolVarP(&verboseFlag, "verbose", "v", false, "Pass --verbose to the renderer")
	rootCmd.Flags().StringVar(&rendererLogFlag, "renderer-log-level", "", "Forwarded to the renderer as --log-level")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// runMain is the main execution logic called by Cobra.
func runMain(cmd *cobra.Command, args []string) {
	logging.Init()
	start := time.Now()

	runID := uuid.NewString()
	log.Logger = log.Logger.With().Str("run_id", runID).Logger()

	table := scenario.Default()
	if scenariosFlag != "" {
		loaded, err := scenario.LoadFile(scenariosFlag)
		if err != nil {
			log.Fatal().Err(err).Str("path", scenariosFlag).Msg("Failed to load scenario table")
		}
		table = loaded
	}

	mode := driver.ModeLenient
	if strictFlag {
		mode = driver.ModeStrict
	}

	cfg := driver.Config{
		Mode:       mode,
		OutputDir:  outputDirFlag,
		BinaryPath: rendererFlag,
		BuildCmd:   strings.Fields(buildCmdFlag),
		Scenarios:  table,
		Options: renderer.Options{
			Verbose:  verboseFlag,
			LogLevel: rendererLogFlag,
		},
	}

	logging.NewStartupLogger("genimages").
		RunID(runID).
		Config("mode", mode.String()).
		Config("outputDir", outputDirFlag).
		Config("renderer", rendererFlag).
		Config("scenarios", fmt.Sprintf("%d", len(table))).
		InitDuration(time.Since(start)).
		Log()

	summary, err := driver.Run(context.Background(), cfg)
	if err != nil {
		log.Error().Err(err).Str("summary", summary.String()).Msg("Run aborted")
		os.Exit(1)
	}

	if !summary.AllSucceeded() {
		log.Warn().
			Int("failed", summary.Total-summary.Success).
			Str("summary", summary.String()).
			Msg("Some images failed to generate")
		os.Exit(1)
	}

	printListing(outputDirFlag, time.Since(start))
}

// printListing prints the sorted set of generated images after a fully
// successful run.
func printListing(dir string, elapsed time.Duration) {
	files, err := report.ListOutputs(dir)
	if err != nil {
		log.Warn().Err(err).Str("dir", dir).Msg("Failed to list generated images")
		return
	}

	fmt.Println("\nGenerated test images:")
	var total int64
	for _, f := range files {
		fmt.Printf("  - %s (%d bytes)\n", f.Name, f.Size)
		total += f.Size
	}
	fmt.Printf("%d images, %s total in %s\n", len(files), cli.FormatByteCount(total), cli.FormatDurationShort(elapsed))
}
