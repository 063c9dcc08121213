package fallback

import (
	"bytes"
	"errors"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/mpiispanen/render-sandbox/internal/report"
	"github.com/mpiispanen/render-sandbox/internal/scenario"
)

func TestBackgroundColor(t *testing.T) {
	tests := []struct {
		name string
		want color.RGBA
	}{
		{"basic_render_800x600", color.RGBA{240, 248, 255, 255}},
		{"high_res_1920x1080", color.RGBA{255, 240, 245, 255}},
		{"square_512x512", color.RGBA{240, 255, 240, 255}},
		{"antialiased_4x", color.RGBA{255, 255, 240, 255}},
		{"minimal_400x300", color.RGBA{248, 248, 255, 255}},
		{"unknown_case", color.RGBA{255, 255, 255, 255}},
	}

	for _, tt := range tests {
		if got := BackgroundColor(tt.name); got != tt.want {
			t.Errorf("BackgroundColor(%q) = %v, want %v", tt.name, got, tt.want)
		}
	}
}

func TestTitleCase(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"high_res_1920x1080", "High Res 1920X1080"},
		{"basic_render_800x600", "Basic Render 800X600"},
		{"antialiased_4x", "Antialiased 4X"},
		{"square_512x512", "Square 512X512"},
		{"simple", "Simple"},
		{"", ""},
	}

	for _, tt := range tests {
		if got := TitleCase(tt.in); got != tt.want {
			t.Errorf("TitleCase(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestSeedIsStable(t *testing.T) {
	if Seed("basic_render_800x600") != Seed("basic_render_800x600") {
		t.Error("Seed() differs across calls for the same name")
	}
	if Seed("basic_render_800x600") == Seed("minimal_400x300") {
		t.Error("Seed() collides for distinct scenario names")
	}
}

func TestRenderDeterministic(t *testing.T) {
	sc := scenario.Scenario{
		Name:        "square_512x512",
		Width:       512,
		Height:      512,
		Samples:     1,
		Description: "Square aspect ratio rendering test",
	}

	a := Render(sc)
	b := Render(sc)

	if !bytes.Equal(a.Pix, b.Pix) {
		t.Error("Render() produced different pixels for identical scenarios")
	}
}

func TestRenderDiffersByName(t *testing.T) {
	base := scenario.Scenario{Width: 200, Height: 150, Samples: 1, Description: "x"}

	a, b := base, base
	a.Name = "first_case"
	b.Name = "second_case"

	if bytes.Equal(Render(a).Pix, Render(b).Pix) {
		t.Error("Render() produced identical pixels for different scenario names")
	}
}

// countMatching reports how many sample points carry the expected color.
// Individual points may be covered by a random dot, so callers assert on a
// majority rather than on any single pixel.
func countMatching(img interface {
	RGBAAt(x, y int) color.RGBA
}, points [][2]int, want color.RGBA) int {
	n := 0
	for _, p := range points {
		if img.RGBAAt(p[0], p[1]) == want {
			n++
		}
	}
	return n
}

func TestRenderBackgroundAndBorder(t *testing.T) {
	sc := scenario.Scenario{Name: "basic_render_800x600", Width: 800, Height: 600, Samples: 1}
	img := Render(sc)

	// Points inside the 2px edge border.
	border := [][2]int{{0, 0}, {799, 0}, {0, 599}, {799, 599}, {400, 0}, {400, 599}, {0, 300}, {799, 300}}
	if n := countMatching(img, border, color.RGBA{100, 100, 100, 255}); n < 6 {
		t.Errorf("border gray at %d/8 sample points, want at least 6", n)
	}

	// Points clear of border, header, text, and centered shapes.
	background := [][2]int{{780, 80}, {760, 560}, {400, 120}, {600, 400}}
	if n := countMatching(img, background, color.RGBA{240, 248, 255, 255}); n < 3 {
		t.Errorf("alice blue background at %d/4 sample points, want at least 3", n)
	}

	// Header bar interior, clear of the two text rows.
	header := [][2]int{{400, 50}, {600, 50}, {300, 55}, {700, 50}}
	if n := countMatching(img, header, color.RGBA{50, 50, 50, 255}); n < 3 {
		t.Errorf("header gray at %d/4 sample points, want at least 3", n)
	}
}

func TestRenderCenterSquare(t *testing.T) {
	sc := scenario.Scenario{Name: "square_512x512", Width: 512, Height: 512, Samples: 1}
	img := Render(sc)

	// The filled rectangle spans half-extent 42 around the center.
	center := [][2]int{{256, 256}, {240, 240}, {272, 272}, {240, 272}}
	if n := countMatching(img, center, color.RGBA{100, 200, 100, 255}); n < 3 {
		t.Errorf("green fill at %d/4 sample points, want at least 3", n)
	}
}

func TestSynthesizeAllDefaults(t *testing.T) {
	dir := t.TempDir()

	for _, sc := range scenario.Default() {
		path := sc.OutputPath(dir)
		res, err := Synthesize(sc, path)
		if err != nil {
			t.Fatalf("Synthesize(%s) error = %v", sc.Name, err)
		}
		if res.Outcome != report.Produced {
			t.Errorf("%s: Outcome = %v, want Produced", sc.Name, res.Outcome)
		}
		if res.Source != report.SourceFallback {
			t.Errorf("%s: Source = %v, want fallback", sc.Name, res.Source)
		}
		if res.ByteSize <= 0 {
			t.Errorf("%s: ByteSize = %d, want > 0", sc.Name, res.ByteSize)
		}

		f, err := os.Open(path)
		if err != nil {
			t.Fatalf("%s: output missing: %v", sc.Name, err)
		}
		img, err := png.Decode(f)
		f.Close()
		if err != nil {
			t.Fatalf("%s: invalid png: %v", sc.Name, err)
		}
		if img.Bounds().Dx() != sc.Width || img.Bounds().Dy() != sc.Height {
			t.Errorf("%s: decoded size %dx%d, want %dx%d",
				sc.Name, img.Bounds().Dx(), img.Bounds().Dy(), sc.Width, sc.Height)
		}
	}
}

func TestSynthesizeOverwrites(t *testing.T) {
	dir := t.TempDir()
	sc := scenario.Scenario{Name: "minimal_400x300", Width: 400, Height: 300, Samples: 1, Description: "Minimal resolution rendering test"}
	path := sc.OutputPath(dir)

	first, err := Synthesize(sc, path)
	if err != nil {
		t.Fatal(err)
	}
	second, err := Synthesize(sc, path)
	if err != nil {
		t.Fatal(err)
	}
	if first.ByteSize != second.ByteSize {
		t.Errorf("byte sizes differ across runs: %d vs %d", first.ByteSize, second.ByteSize)
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 1 {
		t.Errorf("output directory has %d entries after two runs, want 1", len(entries))
	}
}

func TestSynthesizeWriteError(t *testing.T) {
	sc := scenario.Scenario{Name: "x", Width: 10, Height: 10, Samples: 1}
	path := filepath.Join(t.TempDir(), "missing-dir", "x.png")

	_, err := Synthesize(sc, path)
	var writeErr *WriteError
	if !errors.As(err, &writeErr) {
		t.Fatalf("Synthesize() error = %v (%T), want *WriteError", err, err)
	}
	if writeErr.ScenarioName != "x" {
		t.Errorf("ScenarioName = %q, want %q", writeErr.ScenarioName, "x")
	}
}

func TestSynthesizeLongDescription(t *testing.T) {
	// Description rows deliberately overflow a short canvas; rendering must
	// clip rather than fail.
	sc := scenario.Scenario{
		Name:        "tiny",
		Width:       120,
		Height:      90,
		Samples:     1,
		Description: "one two three four five six seven eight nine ten eleven twelve",
	}

	path := filepath.Join(t.TempDir(), "tiny.png")
	res, err := Synthesize(sc, path)
	if err != nil {
		t.Fatalf("Synthesize() error = %v", err)
	}
	if res.ByteSize <= 0 {
		t.Errorf("ByteSize = %d, want > 0", res.ByteSize)
	}
}
