// Package lottie holds the Lottie/TGS wire format: the document, its shape
// layers and shape items, keyframed properties and the keyframe algebra used
// to build them.
package lottie

import "github.com/kuznetsovgm/bodymovin-test-sub001/internal/bezier"

const (
	Version        = "5.5.2"
	LayerTypeShape = 4

	FillRuleNonZero = 1
	FillRuleEvenOdd = 2
)

// Document is the root animation object.
type Document struct {
	TGS       int     `json:"tgs,omitempty"`
	Version   string  `json:"v"`
	Name      string  `json:"nm,omitempty"`
	FrameRate float64 `json:"fr"`
	InPoint   float64 `json:"ip"`
	OutPoint  float64 `json:"op"`
	Width     int     `json:"w"`
	Height    int     `json:"h"`
	ThreeD    int     `json:"ddd"`
	Assets    []any   `json:"assets"`
	// Layers are topmost first, as renderers draw them.
	Layers []Layer `json:"layers"`
}

// NewDocument creates an empty document of the given geometry.
func NewDocument(width, height int, frameRate, frames float64) *Document {
	return &Document{
		Version:   Version,
		FrameRate: frameRate,
		OutPoint:  frames,
		Width:     width,
		Height:    height,
		Assets:    []any{},
		Layers:    []Layer{},
	}
}

// Layer is a shape layer ("ty": 4).
type Layer struct {
	ThreeD     int       `json:"ddd"`
	Index      int       `json:"ind"`
	Type       int       `json:"ty"`
	Name       string    `json:"nm"`
	Stretch    float64   `json:"sr"`
	Transform  Transform `json:"ks"`
	AutoOrient int       `json:"ao"`
	Shapes     []Item    `json:"shapes"`
	InPoint    float64   `json:"ip"`
	OutPoint   float64   `json:"op"`
	StartTime  float64   `json:"st"`
	BlendMode  int       `json:"bm"`
}

// NewShapeLayer creates a shape layer living over [0, frames].
func NewShapeLayer(name string, frames float64, ks Transform, shapes ...Item) Layer {
	return Layer{
		Type:      LayerTypeShape,
		Name:      name,
		Stretch:   1,
		Transform: ks,
		Shapes:    shapes,
		OutPoint:  frames,
	}
}

// Transform is a transform property bag, used by layers ("ks") and by shape
// groups (as a "tr" item).
type Transform struct {
	Anchor   *Value `json:"a,omitempty"`
	Position *Value `json:"p,omitempty"`
	Scale    *Value `json:"s,omitempty"`
	Rotation *Value `json:"r,omitempty"`
	Opacity  *Value `json:"o,omitempty"`
	Skew     *Value `json:"sk,omitempty"`
	SkewAxis *Value `json:"sa,omitempty"`
}

// Identity returns a complete transform with every channel at rest.
func Identity() Transform {
	return Transform{
		Anchor:   Static(0, 0, 0),
		Position: Static(0, 0, 0),
		Scale:    Static(100, 100, 100),
		Rotation: Scalar(0),
		Opacity:  Scalar(100),
		Skew:     Scalar(0),
		SkewAxis: Scalar(0),
	}
}

// Complete returns t with every missing channel taken from Identity.
func (t Transform) Complete() Transform {
	id := Identity()
	if t.Anchor == nil {
		t.Anchor = id.Anchor
	}
	if t.Position == nil {
		t.Position = id.Position
	}
	if t.Scale == nil {
		t.Scale = id.Scale
	}
	if t.Rotation == nil {
		t.Rotation = id.Rotation
	}
	if t.Opacity == nil {
		t.Opacity = id.Opacity
	}
	if t.Skew == nil {
		t.Skew = id.Skew
	}
	if t.SkewAxis == nil {
		t.SkewAxis = id.SkewAxis
	}
	return t
}

// Item is one entry of a layer's or group's shape list.
type Item interface {
	ItemType() string
}

const (
	TypeGroup     = "gr"
	TypeRect      = "rc"
	TypePath      = "sh"
	TypeFill      = "fl"
	TypeStroke    = "st"
	TypeTransform = "tr"
)

type Group struct {
	Type     string `json:"ty"`
	Name     string `json:"nm,omitempty"`
	NumProps int    `json:"np"`
	Items    []Item `json:"it"`
}

// NewGroup builds a group; the transform item is appended last as the
// format requires.
func NewGroup(name string, tr Transform, items ...Item) *Group {
	all := make([]Item, 0, len(items)+1)
	all = append(all, items...)
	all = append(all, NewShapeTransform(tr))
	return &Group{Type: TypeGroup, Name: name, NumProps: len(all), Items: all}
}

func (g *Group) ItemType() string { return TypeGroup }

type Rect struct {
	Type      string `json:"ty"`
	Name      string `json:"nm,omitempty"`
	Direction int    `json:"d"`
	Position  *Value `json:"p"`
	Size      *Value `json:"s"`
	Roundness *Value `json:"r"`
}

func NewRect(cx, cy, w, h, radius float64) *Rect {
	return &Rect{
		Type:      TypeRect,
		Direction: 1,
		Position:  Static(cx, cy),
		Size:      Static(w, h),
		Roundness: Scalar(radius),
	}
}

func (r *Rect) ItemType() string { return TypeRect }

type Path struct {
	Type      string `json:"ty"`
	Name      string `json:"nm,omitempty"`
	Direction int    `json:"d"`
	Data      *Shape `json:"ks"`
}

func NewPath(data *Shape) *Path {
	return &Path{Type: TypePath, Direction: 1, Data: data}
}

// StaticPath wraps a single contour as a non-animated path item.
func StaticPath(c bezier.Contour) *Path {
	return NewPath(StaticShape(c))
}

func (p *Path) ItemType() string { return TypePath }

type Fill struct {
	Type    string `json:"ty"`
	Name    string `json:"nm,omitempty"`
	Color   *Value `json:"c"`
	Opacity *Value `json:"o"`
	Rule    int    `json:"r"`
}

func NewFill(color, opacity *Value, rule int) *Fill {
	return &Fill{Type: TypeFill, Color: color, Opacity: opacity, Rule: rule}
}

func (f *Fill) ItemType() string { return TypeFill }

type Stroke struct {
	Type       string  `json:"ty"`
	Name       string  `json:"nm,omitempty"`
	Color      *Value  `json:"c"`
	Opacity    *Value  `json:"o"`
	Width      *Value  `json:"w"`
	LineCap    int     `json:"lc"`
	LineJoin   int     `json:"lj"`
	MiterLimit float64 `json:"ml"`
}

// NewStroke creates a stroke with round caps and joins.
func NewStroke(color, opacity *Value, width float64) *Stroke {
	return &Stroke{
		Type:       TypeStroke,
		Color:      color,
		Opacity:    opacity,
		Width:      Scalar(width),
		LineCap:    2,
		LineJoin:   2,
		MiterLimit: 4,
	}
}

func (s *Stroke) ItemType() string { return TypeStroke }

type ShapeTransform struct {
	Type string `json:"ty"`
	Name string `json:"nm,omitempty"`
	Transform
}

func NewShapeTransform(tr Transform) *ShapeTransform {
	return &ShapeTransform{Type: TypeTransform, Transform: tr.Complete()}
}

func (t *ShapeTransform) ItemType() string { return TypeTransform }
