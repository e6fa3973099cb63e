// Package font loads TrueType/OpenType fonts and exposes the glyph outlines
// and metrics the layout and extraction stages need.
package font

import (
	"fmt"
	"os"
	"sync"
	"unicode"

	xfont "golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/sfnt"
	"golang.org/x/image/math/fixed"

	"github.com/kuznetsovgm/bodymovin-test-sub001/internal/bezier"
)

// BuiltinName selects the embedded Go Regular font instead of a file.
const BuiltinName = "builtin:goregular"

// Face is the font service used by the pipeline. Sizes are in pixels; y grows
// downward and glyph outlines are relative to the pen position on the baseline.
type Face interface {
	Name() string
	UnitsPerEm() int
	Supports(text string) bool
	Missing(text string) []rune
	GlyphOutline(r rune, size float64) ([]bezier.Command, error)
	GlyphAdvance(r rune, size float64) float64
	Kern(a, b rune, size float64) float64
	Advance(text string, size float64) float64
	CapHeight(size float64) float64
}

// Font is a parsed sfnt font. It is read-only after parsing and safe for
// concurrent use.
type Font struct {
	name string
	f    *sfnt.Font
	upem int
	bufs sync.Pool
}

var _ Face = (*Font)(nil)

// Parse parses TTF/OTF data.
func Parse(name string, data []byte) (*Font, error) {
	f, err := sfnt.Parse(data)
	if err != nil {
		return nil, err
	}
	upem := int(f.UnitsPerEm())
	if upem <= 0 {
		return nil, fmt.Errorf("font %s: invalid units per em %d", name, upem)
	}
	return &Font{
		name: name,
		f:    f,
		upem: upem,
		bufs: sync.Pool{New: func() interface{} { return new(sfnt.Buffer) }},
	}, nil
}

// LoadFile reads and parses a font file; BuiltinName or an empty path yields
// the embedded Go Regular font.
func LoadFile(path string) (*Font, error) {
	if path == "" || path == BuiltinName {
		return Parse(BuiltinName, goregular.TTF)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return Parse(path, data)
}

// Default returns the embedded Go Regular font.
func Default() *Font {
	f, err := Parse(BuiltinName, goregular.TTF)
	if err != nil {
		panic(err)
	}
	return f
}

func (f *Font) Name() string { return f.name }

func (f *Font) UnitsPerEm() int { return f.upem }

func (f *Font) buffer() *sfnt.Buffer {
	return f.bufs.Get().(*sfnt.Buffer)
}

func (f *Font) release(b *sfnt.Buffer) {
	f.bufs.Put(b)
}

func (f *Font) unitPPEM() fixed.Int26_6 {
	return fixed.I(f.upem)
}

func (f *Font) scale(size float64) float64 {
	return size / float64(f.upem)
}

func (f *Font) index(b *sfnt.Buffer, r rune) sfnt.GlyphIndex {
	x, err := f.f.GlyphIndex(b, r)
	if err != nil {
		return 0
	}
	return x
}

// Supports reports whether every non-space rune of text has a glyph.
func (f *Font) Supports(text string) bool {
	return len(f.Missing(text)) == 0
}

// Missing lists the distinct runes of text the font cannot render, in order
// of first appearance.
func (f *Font) Missing(text string) []rune {
	b := f.buffer()
	defer f.release(b)

	var missing []rune
	seen := make(map[rune]bool)
	for _, r := range text {
		if unicode.IsSpace(r) || seen[r] {
			continue
		}
		seen[r] = true
		if f.index(b, r) == 0 {
			missing = append(missing, r)
		}
	}
	return missing
}

// GlyphOutline returns the outline of r scaled to size as path commands.
// Whitespace and glyphs without contours return no commands.
func (f *Font) GlyphOutline(r rune, size float64) ([]bezier.Command, error) {
	b := f.buffer()
	defer f.release(b)

	x := f.index(b, r)
	if x == 0 {
		return nil, fmt.Errorf("no glyph for %q", r)
	}
	segs, err := f.f.LoadGlyph(b, x, f.unitPPEM(), nil)
	if err != nil {
		return nil, fmt.Errorf("load glyph %q: %w", r, err)
	}

	k := f.scale(size)
	pt := func(p fixed.Point26_6) bezier.Point {
		return bezier.Pt(float64(p.X)/64*k, float64(p.Y)/64*k)
	}

	cmds := make([]bezier.Command, 0, len(segs)+4)
	open := false
	for _, s := range segs {
		switch s.Op {
		case sfnt.SegmentOpMoveTo:
			if open {
				cmds = append(cmds, bezier.ClosePath())
			}
			cmds = append(cmds, bezier.Move(pt(s.Args[0])))
			open = true
		case sfnt.SegmentOpLineTo:
			cmds = append(cmds, bezier.Line(pt(s.Args[0])))
		case sfnt.SegmentOpQuadTo:
			cmds = append(cmds, bezier.Quad(pt(s.Args[0]), pt(s.Args[1])))
		case sfnt.SegmentOpCubeTo:
			cmds = append(cmds, bezier.Cubic(pt(s.Args[0]), pt(s.Args[1]), pt(s.Args[2])))
		}
	}
	if open {
		cmds = append(cmds, bezier.ClosePath())
	}
	return cmds, nil
}

// GlyphAdvance returns the horizontal advance of r at size. Runes without a
// glyph advance by the font's .notdef width.
func (f *Font) GlyphAdvance(r rune, size float64) float64 {
	b := f.buffer()
	defer f.release(b)

	adv, err := f.f.GlyphAdvance(b, f.index(b, r), f.unitPPEM(), xfont.HintingNone)
	if err != nil {
		return 0
	}
	return float64(adv) / 64 * f.scale(size)
}

// Kern returns the kerning adjustment between a and b at size, or 0 when the
// font has no kerning data for the pair.
func (f *Font) Kern(a, b rune, size float64) float64 {
	buf := f.buffer()
	defer f.release(buf)

	k, err := f.f.Kern(buf, f.index(buf, a), f.index(buf, b), f.unitPPEM(), xfont.HintingNone)
	if err != nil {
		return 0
	}
	return float64(k) / 64 * f.scale(size)
}

// Advance returns the width of text set on one line at size, kerning included.
func (f *Font) Advance(text string, size float64) float64 {
	var (
		w    float64
		prev rune = -1
	)
	for _, r := range text {
		if prev >= 0 {
			w += f.Kern(prev, r, size)
		}
		w += f.GlyphAdvance(r, size)
		prev = r
	}
	return w
}

// CapHeight returns the height of capital letters at size. Fonts that do not
// record it fall back to 70% of the size.
func (f *Font) CapHeight(size float64) float64 {
	b := f.buffer()
	defer f.release(b)

	m, err := f.f.Metrics(b, f.unitPPEM(), xfont.HintingNone)
	if err != nil || m.CapHeight <= 0 {
		return size * 0.7
	}
	return float64(m.CapHeight) / 64 * f.scale(size)
}
