// Package fallback generates deterministic placeholder images for scenarios
// the renderer could not produce, typically in CI environments without GPU
// access. Image content is derived only from the scenario, so repeated runs
// produce pixel-identical files.
package fallback

import (
	"fmt"
	"hash/fnv"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"math/rand"
	"os"
	"path/filepath"

	"github.com/rs/zerolog/log"

	"github.com/mpiispanen/render-sandbox/internal/report"
	"github.com/mpiispanen/render-sandbox/internal/scenario"
)

// Per-scenario background colors. Names absent from the table fall back to
// opaque white.
var backgroundColors = map[string]color.RGBA{
	"basic_render_800x600": {240, 248, 255, 255}, // alice blue
	"high_res_1920x1080":   {255, 240, 245, 255}, // lavender blush
	"square_512x512":       {240, 255, 240, 255}, // honeydew
	"antialiased_4x":       {255, 255, 240, 255}, // ivory
	"minimal_400x300":      {248, 248, 255, 255}, // ghost white
}

var (
	white      = color.RGBA{255, 255, 255, 255}
	borderGray = color.RGBA{100, 100, 100, 255}
	headerGray = color.RGBA{50, 50, 50, 255}
	lightGray  = color.RGBA{200, 200, 200, 255}
	mediumGray = color.RGBA{80, 80, 80, 255}
	circleRed  = color.RGBA{200, 100, 100, 255}
	fillGreen  = color.RGBA{100, 200, 100, 255}
)

const (
	borderWidth        = 2
	circleStrokeWidth  = 3
	descriptionStartY  = 80
	descriptionRowStep = 15
	dotCount           = 20
)

// WriteError reports a failure to write the synthesized image to the
// filesystem. The scenario counts as failed; the run continues.
type WriteError struct {
	ScenarioName string
	Path         string
	Err          error
}

func (e *WriteError) Error() string {
	return fmt.Sprintf("failed to write fallback image %s for %s: %v", e.Path, e.ScenarioName, e.Err)
}

func (e *WriteError) Unwrap() error { return e.Err }

// BackgroundColor returns the canvas background for a scenario name.
func BackgroundColor(name string) color.RGBA {
	if c, ok := backgroundColors[name]; ok {
		return c
	}
	return white
}

// Seed derives the dot-placement PRNG seed from a scenario name using
// 64-bit FNV-1a. The hash is fixed so the same name produces the same image
// on every platform and run.
func Seed(name string) int64 {
	h := fnv.New64a()
	h.Write([]byte(name))
	return int64(h.Sum64())
}

// Synthesize renders the placeholder image for a scenario and writes it to
// outputPath as a PNG. The file is written via a temporary file and rename
// so a concurrent reader never sees a partial image.
func Synthesize(sc scenario.Scenario, outputPath string) (report.RenderResult, error) {
	img := Render(sc)

	if err := writePNGAtomic(outputPath, img); err != nil {
		return report.RenderResult{}, &WriteError{ScenarioName: sc.Name, Path: outputPath, Err: err}
	}

	info, err := os.Stat(outputPath)
	if err != nil {
		return report.RenderResult{}, &WriteError{ScenarioName: sc.Name, Path: outputPath, Err: err}
	}

	log.Info().
		Str("scenario", sc.Name).
		Str("path", outputPath).
		Int64("size_bytes", info.Size()).
		Msg("Created fallback image")

	return report.RenderResult{
		ScenarioName: sc.Name,
		OutputPath:   outputPath,
		Outcome:      report.Produced,
		Source:       report.SourceFallback,
		ByteSize:     info.Size(),
	}, nil
}

// Render produces the placeholder canvas for a scenario without touching
// the filesystem.
func Render(sc scenario.Scenario) *image.RGBA {
	w, h := sc.Width, sc.Height
	img := image.NewRGBA(image.Rect(0, 0, w, h))

	// Background fill keyed by scenario name.
	draw.Draw(img, img.Bounds(), &image.Uniform{BackgroundColor(sc.Name)}, image.Point{}, draw.Src)

	// Border along the canvas edge.
	strokeRect(img, image.Rect(0, 0, w, h), borderGray, borderWidth)

	// Header bar with the scenario identity.
	headerRect := image.Rect(10, 10, w-10, 60)
	draw.Draw(img, headerRect, &image.Uniform{headerGray}, image.Point{}, draw.Src)
	strokeRect(img, headerRect, borderGray, 1)

	drawText(img, 20, 20, white, TitleCase(sc.Name))
	drawText(img, 20, 35, lightGray, fmt.Sprintf("%dx%d", w, h))

	// Description, one word per line. Long descriptions may run off the
	// bottom edge; the text drawer clips to the canvas.
	y := descriptionStartY
	for _, word := range splitWords(sc.Description) {
		drawText(img, 20, y, mediumGray, word)
		y += descriptionRowStep
	}

	// Centered geometry for visual interest.
	cx, cy := w/2, h/2
	minDim := w
	if h < w {
		minDim = h
	}

	strokeCircle(img, cx, cy, minDim/8, circleRed, circleStrokeWidth)

	half := minDim / 12
	draw.Draw(img, image.Rect(cx-half, cy-half, cx+half, cy+half), &image.Uniform{fillGreen}, image.Point{}, draw.Src)

	// Deterministic scatter of dots keyed by the scenario name. The draw
	// order of the random values (x, y, diameter, r, g, b) is part of the
	// determinism contract.
	rng := rand.New(rand.NewSource(Seed(sc.Name)))
	for i := 0; i < dotCount; i++ {
		x := rng.Intn(w + 1)
		y := rng.Intn(h + 1)
		diameter := 2 + rng.Intn(7)
		c := color.RGBA{
			R: uint8(100 + rng.Intn(101)),
			G: uint8(100 + rng.Intn(101)),
			B: uint8(100 + rng.Intn(101)),
			A: 255,
		}
		fillCircle(img, x, y, diameter/2, c)
	}

	return img
}

// writePNGAtomic encodes img to a temporary file next to path and renames
// it into place.
func writePNGAtomic(path string, img image.Image) error {
	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".tmp-*")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpPath := tmp.Name()

	if err := png.Encode(tmp, img); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return fmt.Errorf("failed to encode png: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("failed to close temp file: %w", err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("failed to rename into place: %w", err)
	}
	return nil
}
