package fallback

import (
	"image"
	"image/color"
	"image/draw"
	"strings"
	"unicode"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

// strokeRect draws the outline of r, width pixels wide, inward from the
// rectangle edge.
func strokeRect(img *image.RGBA, r image.Rectangle, c color.RGBA, width int) {
	src := &image.Uniform{c}
	top := image.Rect(r.Min.X, r.Min.Y, r.Max.X, r.Min.Y+width)
	bottom := image.Rect(r.Min.X, r.Max.Y-width, r.Max.X, r.Max.Y)
	left := image.Rect(r.Min.X, r.Min.Y, r.Min.X+width, r.Max.Y)
	right := image.Rect(r.Max.X-width, r.Min.Y, r.Max.X, r.Max.Y)
	for _, band := range []image.Rectangle{top, bottom, left, right} {
		draw.Draw(img, band, src, image.Point{}, draw.Src)
	}
}

// strokeCircle draws a circle outline of the given stroke width, centered
// at (cx, cy). Pixels outside the canvas are clipped.
func strokeCircle(img *image.RGBA, cx, cy, radius int, c color.RGBA, width int) {
	if radius <= 0 {
		return
	}
	inner := radius - width
	if inner < 0 {
		inner = 0
	}
	outerSq := radius * radius
	innerSq := inner * inner
	for dy := -radius; dy <= radius; dy++ {
		for dx := -radius; dx <= radius; dx++ {
			d := dx*dx + dy*dy
			if d <= outerSq && d >= innerSq {
				img.Set(cx+dx, cy+dy, c)
			}
		}
	}
}

// fillCircle draws a filled circle centered at (cx, cy). Pixels outside the
// canvas are clipped.
func fillCircle(img *image.RGBA, cx, cy, radius int, c color.RGBA) {
	if radius <= 0 {
		img.Set(cx, cy, c)
		return
	}
	rSq := radius * radius
	for dy := -radius; dy <= radius; dy++ {
		for dx := -radius; dx <= radius; dx++ {
			if dx*dx+dy*dy <= rSq {
				img.Set(cx+dx, cy+dy, c)
			}
		}
	}
}

// drawText renders s with the built-in 7x13 face, with (x, y) as the top
// left of the text box. The face ships with the x/image module, so text
// rendering can never fail on a missing font file.
func drawText(img *image.RGBA, x, y int, c color.RGBA, s string) {
	face := basicfont.Face7x13
	d := &font.Drawer{
		Dst:  img,
		Src:  &image.Uniform{c},
		Face: face,
		Dot:  fixed.P(x, y+face.Ascent),
	}
	d.DrawString(s)
}

// splitWords splits on runs of whitespace, mirroring the one-word-per-line
// description layout.
func splitWords(s string) []string {
	return strings.Fields(s)
}

// TitleCase converts an underscore-delimited identifier to spaced words
// with each letter run capitalized: a letter directly after another letter
// is lower-cased, any other letter is upper-cased. "high_res_1920x1080"
// becomes "High Res 1920X1080".
func TitleCase(name string) string {
	var b strings.Builder
	b.Grow(len(name))

	prevLetter := false
	for _, r := range name {
		if r == '_' {
			b.WriteRune(' ')
			prevLetter = false
			continue
		}
		if unicode.IsLetter(r) {
			if prevLetter {
				b.WriteRune(unicode.ToLower(r))
			} else {
				b.WriteRune(unicode.ToUpper(r))
			}
			prevLetter = true
			continue
		}
		b.WriteRune(r)
		prevLetter = false
	}

	return b.String()
}
