package engine

import (
	"fmt"
	"math"

	"github.com/kuznetsovgm/bodymovin-test-sub001/internal/bezier"
	"github.com/kuznetsovgm/bodymovin-test-sub001/internal/effects"
	"github.com/kuznetsovgm/bodymovin-test-sub001/internal/lottie"
	"github.com/kuznetsovgm/bodymovin-test-sub001/internal/morph"
	"github.com/kuznetsovgm/bodymovin-test-sub001/internal/noise"
	"github.com/kuznetsovgm/bodymovin-test-sub001/internal/style"
)

const (
	defaultRadiusRatio = 0.08
	defaultStripes     = 5
	defaultBgStroke    = 4
)

// centered is a transform patch that puts the layer origin on the canvas
// center.
func (s *scene) centered() lottie.Transform {
	return lottie.Transform{Position: lottie.Static(s.ctx.Center()...)}
}

// textTransform is the composed top-level transform shared by the text and
// knockout layers.
func (s *scene) textTransform() lottie.Transform {
	return effects.ApplyTransforms(s.req.Transforms, s.centered(), s.ctx).Complete()
}

func (s *scene) morphOptions(g glyph, contour int) morph.Options {
	return morph.Options{
		Kind:     s.morph.Type,
		Params:   s.morph.Params,
		Duration: s.req.Duration,
		Seed:     noise.Mix(s.req.Seed, int64(g.LetterIndex), int64(contour)),
		FontSize: s.size,
		Pivot:    g.box.Center().Y(),
	}
}

func (s *scene) styleOptions() style.Options {
	o := style.DefaultOptions()
	if s.req.FillColor != nil {
		o.FillBase = *s.req.FillColor
	}
	if s.req.StrokeColor != nil {
		o.StrokeBase = *s.req.StrokeColor
	}
	o.StrokeWidth = s.req.StrokeWidth
	return o
}

// textLayer holds one group per glyph: its paths, fill and stroke and its
// letter transform, all inside a single text group.
func (s *scene) textLayer(ks lottie.Transform) lottie.Layer {
	opts := s.styleOptions()
	letters := make([]lottie.Item, 0, len(s.glyphs))
	for _, g := range s.glyphs {
		rest := g.rest()
		lc := effects.LetterContext{
			Index:  g.LetterIndex,
			X:      bezier.Round2(rest.X()),
			Y:      bezier.Round2(rest.Y()),
			Anchor: []float64{bezier.Round2(g.box.Center().X()), bezier.Round2(g.box.Center().Y())},
		}

		items := make([]lottie.Item, 0, len(g.contours)+2)
		for j, c := range g.contours {
			items = append(items, lottie.NewPath(morph.Shape(c, s.morphOptions(g, j))))
		}
		items = append(items, style.Resolve(s.req.Colors, s.req.Strokes, s.ctx, lc, opts).Items(lottie.FillRuleNonZero)...)

		base := lottie.Transform{Anchor: lottie.Static(lc.Anchor...), Position: lottie.Static(lc.X, lc.Y)}
		tr := effects.ApplyLetters(s.req.Letters, base, s.ctx, lc)
		letters = append(letters, lottie.NewGroup(fmt.Sprintf("%c %d", g.Char, g.LetterIndex), tr, items...))
	}

	text := lottie.NewGroup("text", lottie.Identity(), letters...)
	return lottie.NewShapeLayer("text", s.req.Duration, ks, text)
}

// textBounds is the box of every glyph outline in text layer coordinates.
func (s *scene) textBounds() bezier.Rect {
	r := bezier.EmptyRect()
	for _, g := range s.glyphs {
		b := g.box
		r = r.Union(bezier.Rect{MinX: b.MinX + g.X, MinY: b.MinY + g.Y, MaxX: b.MaxX + g.X, MaxY: b.MaxY + g.Y})
	}
	return r
}

// knockoutLayer is a rectangle around the text with every glyph contour cut
// out of it through the even-odd rule. It shares the text layer transform.
// With Morph set the rectangle encloses every morph state of every contour.
func (s *scene) knockoutLayer(k Knockout, ks lottie.Transform) lottie.Layer {
	bounds := s.textBounds()
	var holes []lottie.Item
	for _, g := range s.glyphs {
		pen := bezier.Pt(g.X, g.Y)
		for j, c := range g.contours {
			placed := c.Translate(pen).Round()
			if !k.Morph {
				holes = append(holes, lottie.StaticPath(placed))
				continue
			}
			o := s.morphOptions(g, j)
			o.Pivot += g.Y
			bounds = bounds.Union(bezier.BoundsOf(morph.States(placed, o)))
			holes = append(holes, lottie.NewPath(morph.Shape(placed, o)))
		}
	}
	margin := k.PaddingFactor * math.Max(bounds.Width(), bounds.Height())
	outer := bezier.RectContour(bounds.Inset(margin))

	items := make([]lottie.Item, 0, len(holes)+2)
	items = append(items, lottie.StaticPath(outer))
	items = append(items, holes...)
	color, opacity := style.SplitRGBA(lottie.Static(k.Color.Values()...))
	items = append(items, lottie.NewFill(color, opacity, lottie.FillRuleEvenOdd))

	group := lottie.NewGroup("knockout", lottie.Identity(), items...)
	return lottie.NewShapeLayer("knockout", s.req.Duration, ks, group)
}

// backgroundLayer draws one background centered on the canvas with its own
// transform animation.
func (s *scene) backgroundLayer(i int, bg Background) lottie.Layer {
	w := s.ctx.Width - 2*bg.Inset
	h := s.ctx.Height - 2*bg.Inset
	radius := bg.Radius
	if radius == 0 {
		radius = math.Round(math.Min(w, h) * defaultRadiusRatio)
	}

	color, opacity := style.SplitRGBA(lottie.Static(bg.Color.Values()...))
	var stroke *lottie.Stroke
	if bg.StrokeColor != nil || bg.Kind == BackgroundFrame {
		sc := bg.Color
		if bg.StrokeColor != nil {
			sc = *bg.StrokeColor
		}
		width := bg.StrokeWidth
		if width == 0 {
			width = defaultBgStroke
		}
		c, o := style.SplitRGBA(lottie.Static(sc.Values()...))
		stroke = lottie.NewStroke(c, o, width)
	}

	var items []lottie.Item
	switch bg.Kind {
	case BackgroundFrame:
		items = []lottie.Item{lottie.NewRect(0, 0, w, h, radius), stroke}
	case BackgroundStripes:
		n := bg.Stripes
		if n <= 0 {
			n = defaultStripes
		}
		pitch := h / float64(n)
		for j := 0; j < n; j++ {
			cy := -h/2 + pitch*(float64(j)+0.5)
			items = append(items, lottie.NewRect(0, bezier.Round2(cy), w, bezier.Round2(pitch/2), 0))
		}
		items = append(items, lottie.NewFill(color, opacity, lottie.FillRuleNonZero))
		if stroke != nil {
			items = append(items, stroke)
		}
	default:
		items = []lottie.Item{lottie.NewRect(0, 0, w, h, radius), lottie.NewFill(color, opacity, lottie.FillRuleNonZero)}
		if stroke != nil {
			items = append(items, stroke)
		}
	}

	name := fmt.Sprintf("background %d", i)
	ks := effects.ApplyTransforms(bg.Transforms, s.centered(), s.ctx).Complete()
	return lottie.NewShapeLayer(name, s.req.Duration, ks, lottie.NewGroup(bg.Kind.String(), lottie.Identity(), items...))
}
