// Package layout fits text into a box and positions its glyphs.
package layout

import (
	"math"
	"strings"
	"unicode"

	"github.com/kuznetsovgm/bodymovin-test-sub001/internal/font"
)

const (
	// LineHeight is the line pitch as a multiple of the font size.
	LineHeight = 1.2

	maxFitIterations = 20
	shrinkFactor     = 0.9

	minAutoSize    = 32
	autoFillRatio  = 0.85
	spaceWeight    = 0.4
	glyphAreaRatio = 0.6 * LineHeight
)

// Glyph is one positioned character. X and Y are the pen position on the
// baseline, relative to the center of the text block.
type Glyph struct {
	Char        rune
	X, Y        float64
	Line        int
	LetterIndex int
}

// WrapAndScaleText wraps text into lines that fit maxWidth and whose total
// height fits maxHeight, shrinking the size by 10% per attempt for at most 20
// attempts. It returns the lines and the size they were wrapped at. A single
// word wider than maxWidth stays on its own line even at the final size.
func WrapAndScaleText(text string, face font.Face, initialSize, maxWidth, maxHeight float64) ([]string, float64) {
	size := initialSize
	var lines []string
	for i := 0; i < maxFitIterations; i++ {
		lines = wrap(text, face, size, maxWidth)
		if fits(lines, face, size, maxWidth, maxHeight) {
			return lines, size
		}
		if i < maxFitIterations-1 {
			size *= shrinkFactor
		}
	}
	return lines, size
}

func fits(lines []string, face font.Face, size, maxWidth, maxHeight float64) bool {
	for _, l := range lines {
		if face.Advance(l, size) > maxWidth {
			return false
		}
	}
	return size*LineHeight*float64(len(lines)) <= maxHeight
}

// wrap splits on explicit newlines, then greedily packs words per line.
func wrap(text string, face font.Face, size, maxWidth float64) []string {
	var lines []string
	for _, para := range strings.Split(text, "\n") {
		words := strings.Fields(para)
		if len(words) == 0 {
			lines = append(lines, "")
			continue
		}
		cur := words[0]
		for _, w := range words[1:] {
			candidate := cur + " " + w
			if face.Advance(candidate, size) <= maxWidth {
				cur = candidate
				continue
			}
			lines = append(lines, cur)
			cur = w
		}
		lines = append(lines, cur)
	}
	return lines
}

// LayoutText positions every visible glyph. Lines are centered horizontally
// on x=0 and the block is centered vertically on y=0 using the cap height.
// Whitespace advances the pen but produces no glyph.
func LayoutText(lines []string, face font.Face, size float64) []Glyph {
	pitch := size * LineHeight
	capHeight := face.CapHeight(size)
	top := -pitch * float64(len(lines)-1) / 2

	var glyphs []Glyph
	index := 0
	for li, line := range lines {
		x := -face.Advance(line, size) / 2
		y := top + float64(li)*pitch + capHeight/2
		prev := rune(-1)
		for _, r := range line {
			if prev >= 0 {
				x += face.Kern(prev, r, size)
			}
			if !unicode.IsSpace(r) {
				glyphs = append(glyphs, Glyph{Char: r, X: x, Y: y, Line: li, LetterIndex: index})
				index++
			}
			x += face.GlyphAdvance(r, size)
			prev = r
		}
	}
	return glyphs
}

// AutoFontSize picks a size at which the estimated glyph area fills about 85%
// of the available box, clamped to [32, availableHeight].
func AutoFontSize(text string, availableWidth, availableHeight float64) float64 {
	var count float64
	for _, r := range text {
		switch {
		case r == '\n':
		case unicode.IsSpace(r):
			count += spaceWeight
		default:
			count++
		}
	}
	if count == 0 {
		count = 1
	}
	size := math.Sqrt(autoFillRatio * availableWidth * availableHeight / (count * glyphAreaRatio))
	upper := math.Max(availableHeight, minAutoSize)
	return math.Min(math.Max(size, minAutoSize), upper)
}
