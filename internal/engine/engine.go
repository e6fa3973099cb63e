// Package engine turns a text plus animation descriptors into a Lottie
// document: layout, outline extraction, morphing, composition and layer
// assembly.
package engine

import (
	"fmt"
	"math"
	"sort"
	"strings"
	"time"

	"github.com/kuznetsovgm/bodymovin-test-sub001/internal/bezier"
	"github.com/kuznetsovgm/bodymovin-test-sub001/internal/effects"
	"github.com/kuznetsovgm/bodymovin-test-sub001/internal/font"
	"github.com/kuznetsovgm/bodymovin-test-sub001/internal/layout"
	"github.com/kuznetsovgm/bodymovin-test-sub001/internal/logger"
	"github.com/kuznetsovgm/bodymovin-test-sub001/internal/lottie"
	"github.com/kuznetsovgm/bodymovin-test-sub001/internal/morph"
)

// Project generates documents. It is safe for concurrent use; the font cache
// is the only state shared between calls.
type Project struct {
	Fonts *font.Cache
	log   *logger.Logger
}

func NewProject(fonts *font.Cache, log *logger.Logger) *Project {
	log = logger.OrNop(log)
	if fonts == nil {
		fonts = font.NewCache(log)
	}
	return &Project{Fonts: fonts, log: log.With("component", "Engine")}
}

// glyph is one laid-out character with its outline in glyph-local
// coordinates (pen on the baseline origin).
type glyph struct {
	layout.Glyph
	contours []bezier.Contour
	box      bezier.Rect
}

// rest is the glyph center in text layer coordinates.
func (g glyph) rest() bezier.Point {
	return bezier.Pt(g.X, g.Y).Add(g.box.Center())
}

// scene is the per-call working state.
type scene struct {
	req    Request
	face   font.Face
	size   float64
	ctx    effects.GenerationContext
	morph  effects.MorphDescriptor
	glyphs []glyph
}

// Generate builds the document for req. It either returns a complete document
// or an error; nothing is produced partially.
func (p *Project) Generate(req Request) (*lottie.Document, error) {
	start := time.Now()
	req = req.WithDefaults()
	if err := req.Validate(); err != nil {
		return nil, err
	}

	face, err := p.Fonts.Load(req.FontPath)
	if err != nil {
		return nil, err
	}
	if missing := face.Missing(req.Text); len(missing) > 0 {
		return nil, fmt.Errorf("%w: %q in %s", ErrUnsupportedText, string(missing), face.Name())
	}

	s, err := p.layout(req, face)
	if err != nil {
		return nil, err
	}

	doc := lottie.NewDocument(req.Width, req.Height, req.FrameRate, req.Duration)
	if req.ID != "" {
		doc.Name = req.ID
	}

	// Assembled bottom to top, emitted topmost first.
	var stack []lottie.Layer
	for i, bg := range req.Backgrounds {
		stack = append(stack, s.backgroundLayer(i, bg))
	}
	textTransform := s.textTransform()
	if req.Knockout != nil {
		stack = append(stack, s.knockoutLayer(*req.Knockout, textTransform))
	}
	stack = append(stack, s.textLayer(textTransform))

	for i := len(stack) - 1; i >= 0; i-- {
		layer := stack[i]
		layer.Index = len(doc.Layers) + 1
		doc.Layers = append(doc.Layers, layer)
	}

	p.log.Debug("document generated",
		"id", req.ID,
		"glyphs", len(s.glyphs),
		"layers", len(doc.Layers),
		"fontSize", s.size,
		"took", time.Since(start),
	)
	return doc, nil
}

// layout resolves the font size, wraps the text and extracts every glyph.
func (p *Project) layout(req Request, face font.Face) (*scene, error) {
	availW := float64(req.Width) - 2*req.Padding
	availH := float64(req.Height) - 2*req.Padding

	size := req.FontSize
	if size == 0 {
		size = layout.AutoFontSize(req.Text, availW, availH)
	}
	lines, size := layout.WrapAndScaleText(req.Text, face, size, availW, availH)
	if size <= 0 || math.IsNaN(size) || math.IsInf(size, 0) {
		return nil, fmt.Errorf("%w: resolved %v", ErrInvalidFontSize, size)
	}
	p.log.Debug("text fitted", "id", req.ID, "lines", len(lines), "fontSize", size, "text", strings.Join(lines, " / "))

	s := &scene{
		req:  req,
		face: face,
		size: size,
		ctx: effects.GenerationContext{
			Width:        float64(req.Width),
			Height:       float64(req.Height),
			Duration:     req.Duration,
			FrameRate:    req.FrameRate,
			Seed:         req.Seed,
			CanvasHeight: float64(req.Height),
		},
		morph: pickMorph(req.Morphs),
	}

	for _, g := range layout.LayoutText(lines, face, size) {
		cmds, err := face.GlyphOutline(g.Char, size)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrUnsupportedText, err)
		}
		contours := bezier.Extract(cmds)
		if len(contours) == 0 {
			p.log.Debug("glyph has no outline", "char", string(g.Char))
			continue
		}
		s.glyphs = append(s.glyphs, glyph{Glyph: g, contours: contours, box: bezier.BoundsOf(contours)})
	}
	return s, nil
}

// pickMorph returns the morph of highest priority; ties go to the later one.
func pickMorph(descs []effects.MorphDescriptor) effects.MorphDescriptor {
	if len(descs) == 0 {
		return effects.MorphDescriptor{Type: morph.None}
	}
	sorted := append([]effects.MorphDescriptor(nil), descs...)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].Priority < sorted[j].Priority })
	return sorted[len(sorted)-1]
}
