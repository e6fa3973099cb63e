package lottie

import (
	"encoding/json"
	"slices"

	"github.com/kuznetsovgm/bodymovin-test-sub001/internal/bezier"
)

// Property is either a static value or an animated track.
//
// A static property with Unwrap set encodes its single value directly
// ("k": 0 instead of "k": [0]); rotation, opacity and path data use that form.
type Property[V any] struct {
	Animated bool
	Value    []V
	Track    Track[V]
	Unwrap   bool
}

// Value is a numeric property (position, scale, rotation, opacity, color...).
type Value = Property[float64]

// Shape is a path property.
type Shape = Property[bezier.Contour]

func Static(v ...float64) *Value {
	return &Value{Value: slices.Clone(v)}
}

func Scalar(v float64) *Value {
	return &Value{Value: []float64{v}, Unwrap: true}
}

func Animated[V any](track Track[V]) *Property[V] {
	return &Property[V]{Animated: true, Track: track}
}

func StaticShape(c bezier.Contour) *Shape {
	return &Shape{Value: []bezier.Contour{c}, Unwrap: true}
}

// Start returns the value at the first frame.
func (p *Property[V]) Start() []V {
	if p == nil {
		return nil
	}
	if p.Animated {
		if len(p.Track) == 0 {
			return nil
		}
		return p.Track[0].S
	}
	return p.Value
}

// Values lists every value the property takes: its static value or the
// start value of each keyframe.
func (p *Property[V]) Values() [][]V {
	if p == nil {
		return nil
	}
	if !p.Animated {
		return [][]V{p.Value}
	}
	out := make([][]V, len(p.Track))
	for i, kf := range p.Track {
		out[i] = kf.S
	}
	return out
}

// Clone returns a deep copy of the property.
func (p *Property[V]) Clone() *Property[V] {
	if p == nil {
		return nil
	}
	c := &Property[V]{Animated: p.Animated, Value: slices.Clone(p.Value), Unwrap: p.Unwrap}
	if p.Track != nil {
		c.Track = make(Track[V], len(p.Track))
		for i, kf := range p.Track {
			kf.S = slices.Clone(kf.S)
			kf.E = slices.Clone(kf.E)
			c.Track[i] = kf
		}
	}
	return c
}

type wireProperty struct {
	A int `json:"a"`
	K any `json:"k"`
}

func (p Property[V]) MarshalJSON() ([]byte, error) {
	if p.Animated {
		track := p.Track
		if track == nil {
			track = Track[V]{}
		}
		return json.Marshal(wireProperty{A: 1, K: track})
	}
	if p.Unwrap && len(p.Value) == 1 {
		return json.Marshal(wireProperty{A: 0, K: p.Value[0]})
	}
	v := p.Value
	if v == nil {
		v = []V{}
	}
	return json.Marshal(wireProperty{A: 0, K: v})
}

func (p *Property[V]) UnmarshalJSON(data []byte) error {
	var raw struct {
		A int             `json:"a"`
		K json.RawMessage `json:"k"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	*p = Property[V]{}
	if raw.A == 1 {
		p.Animated = true
		return json.Unmarshal(raw.K, &p.Track)
	}
	if err := json.Unmarshal(raw.K, &p.Value); err == nil {
		return nil
	}
	var single V
	if err := json.Unmarshal(raw.K, &single); err != nil {
		return err
	}
	p.Value = []V{single}
	p.Unwrap = true
	return nil
}
