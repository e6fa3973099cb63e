package effects

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"gopkg.in/yaml.v3"

	"github.com/kuznetsovgm/bodymovin-test-sub001/internal/lottie"
	"github.com/kuznetsovgm/bodymovin-test-sub001/internal/morph"
	"github.com/kuznetsovgm/bodymovin-test-sub001/internal/noise"
)

var ctx = GenerationContext{Width: 512, Height: 512, Duration: 180, FrameRate: 60, Seed: 1, CanvasHeight: 512}

func times(v *lottie.Value) []float64 {
	var out []float64
	for _, kf := range v.Track {
		out = append(out, kf.T)
	}
	return out
}

func checkTrack(t *testing.T, name string, v *lottie.Value) {
	t.Helper()
	if v == nil || !v.Animated {
		return
	}
	if err := lottie.Validate(v.Track); err != nil {
		t.Errorf("%s: %v", name, err)
	}
	for i := 1; i < len(v.Track); i++ {
		if v.Track[i].T <= v.Track[i-1].T {
			t.Errorf("%s: time %v does not advance past %v", name, v.Track[i].T, v.Track[i-1].T)
		}
	}
}

func checkTransform(t *testing.T, name string, tr lottie.Transform) {
	t.Helper()
	checkTrack(t, name+".a", tr.Anchor)
	checkTrack(t, name+".p", tr.Position)
	checkTrack(t, name+".s", tr.Scale)
	checkTrack(t, name+".r", tr.Rotation)
	checkTrack(t, name+".o", tr.Opacity)
}

func TestBuildTransformTracks(t *testing.T) {
	for i := range transformNames {
		typ := TransformType(i)
		checkTransform(t, typ.String(), BuildTransform(typ, ctx, TransformParams{}))
	}
}

func TestScalePulse(t *testing.T) {
	tr := BuildTransform(TransformScalePulse, ctx, TransformParams{})
	if diff := cmp.Diff([]float64{0, 90, 180}, times(tr.Scale)); diff != "" {
		t.Errorf("scale times (-want +got):\n%s", diff)
	}
	first, last := tr.Scale.Track[0].S, tr.Scale.Track[2].S
	if diff := cmp.Diff(first, last); diff != "" {
		t.Errorf("loop not closed:\n%s", diff)
	}
	if tr.Scale.Track[1].S[0] != 110 || first[0] != 90 {
		t.Errorf("unexpected scale values %v", tr.Scale.Values())
	}
	if tr.Position != nil {
		t.Error("scale pulse should not set position")
	}
}

func TestTransformShapes(t *testing.T) {
	tests := []struct {
		typ  TransformType
		keys int
		pick func(lottie.Transform) *lottie.Value
	}{
		{TransformNone, 2, func(tr lottie.Transform) *lottie.Value { return tr.Position }},
		{TransformSlideLoop, 3, func(tr lottie.Transform) *lottie.Value { return tr.Position }},
		{TransformRotateContinuous, 2, func(tr lottie.Transform) *lottie.Value { return tr.Rotation }},
		{TransformShakeLoop, 8, func(tr lottie.Transform) *lottie.Value { return tr.Position }},
		{TransformVibrate, 8, func(tr lottie.Transform) *lottie.Value { return tr.Position }},
		{TransformBounce, 5, func(tr lottie.Transform) *lottie.Value { return tr.Position }},
	}
	center := ctx.Center()
	for _, tt := range tests {
		t.Run(tt.typ.String(), func(t *testing.T) {
			v := tt.pick(BuildTransform(tt.typ, ctx, TransformParams{}))
			if len(v.Track) != tt.keys {
				t.Fatalf("got %d keyframes, want %d", len(v.Track), tt.keys)
			}
			if tt.typ == TransformRotateContinuous {
				if v.Track[1].S[0] != 360 {
					t.Errorf("rotation ends at %v", v.Track[1].S)
				}
				return
			}
			want := center
			if tt.typ == TransformSlideLoop {
				want = v.Track[0].S
			}
			if diff := cmp.Diff(want, v.Track[len(v.Track)-1].S); diff != "" {
				t.Errorf("track does not come back to rest:\n%s", diff)
			}
		})
	}
}

func TestVibrateIsSeeded(t *testing.T) {
	a := BuildTransform(TransformVibrate, ctx, TransformParams{})
	b := BuildTransform(TransformVibrate, ctx, TransformParams{})
	if diff := cmp.Diff(a.Position.Track, b.Position.Track); diff != "" {
		t.Fatalf("same seed differs:\n%s", diff)
	}
	other := ctx
	other.Seed = 2
	c := BuildTransform(TransformVibrate, other, TransformParams{})
	if cmp.Equal(a.Position.Track, c.Position.Track) {
		t.Error("different seeds should shake differently")
	}
}

func TestVibrateDrawsFromSeedStream(t *testing.T) {
	const a = 5.0
	tr := BuildTransform(TransformVibrate, ctx, TransformParams{Amplitude: a, Steps: 6})
	rnd := noise.New(ctx.Seed)
	c := ctx.Center()
	track := tr.Position.Track
	if len(track) != 6 {
		t.Fatalf("got %d keyframes", len(track))
	}
	for i := 1; i < len(track)-1; i++ {
		want := []float64{c[0] + a*rnd.Signed(), c[1] + a*rnd.Signed()}
		if diff := cmp.Diff(want, track[i].S[:2]); diff != "" {
			t.Errorf("keyframe %d (-want +got):\n%s", i, diff)
		}
		if dx, dy := track[i].S[0]-c[0], track[i].S[1]-c[1]; dx < -a || dx > a || dy < -a || dy > a {
			t.Errorf("keyframe %d offset (%.2f, %.2f) exceeds %.0f", i, dx, dy, a)
		}
	}
}

func TestCycleRGB(t *testing.T) {
	v := BuildColor(ColorCycleRGB, ctx, LetterContext{}, ColorParams{}, White)
	if diff := cmp.Diff([]float64{0, 60, 120, 180}, times(v)); diff != "" {
		t.Errorf("times (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff(Red.Values(), v.Track[3].S); diff != "" {
		t.Errorf("cycle does not return to red:\n%s", diff)
	}
	checkTrack(t, "cycle", v)
}

func TestRainbowStagger(t *testing.T) {
	for i := 0; i < 12; i++ {
		v := BuildColor(ColorRainbow, ctx, LetterContext{Index: i}, ColorParams{}, White)
		checkTrack(t, "rainbow", v)
		if last := v.Track[len(v.Track)-1]; last.T != ctx.Duration {
			t.Errorf("letter %d: track ends at %v", i, last.T)
		}
		if diff := cmp.Diff(v.Track[0].S, v.Track[len(v.Track)-1].S); diff != "" {
			t.Errorf("letter %d: loop not closed:\n%s", i, diff)
		}
	}
	a := BuildColor(ColorRainbow, ctx, LetterContext{Index: 0}, ColorParams{}, White)
	b := BuildColor(ColorRainbow, ctx, LetterContext{Index: 1}, ColorParams{}, White)
	if cmp.Equal(times(a), times(b)) {
		t.Error("neighbouring letters should be out of step")
	}
}

func TestColorNoneOverride(t *testing.T) {
	v := BuildColor(ColorNone, ctx, LetterContext{}, ColorParams{}, White)
	if len(v.Track) != 2 || !cmp.Equal(v.Track[0].S, White.Values()) {
		t.Errorf("unexpected none color %+v", v.Track)
	}
	black := Black
	v = BuildColor(ColorNone, ctx, LetterContext{}, ColorParams{Base: &black}, White)
	if !cmp.Equal(v.Track[1].S, Black.Values()) {
		t.Errorf("override ignored: %v", v.Track[1].S)
	}
}

func TestLetters(t *testing.T) {
	l := LetterContext{Index: 3, X: 100, Y: 200, Anchor: []float64{10, -20}}
	for i := range letterNames {
		typ := LetterType(i)
		tr := BuildLetter(typ, ctx, l, LetterParams{})
		checkTransform(t, typ.String(), tr)
		if diff := cmp.Diff([]float64{10, -20}, tr.Anchor.Start()); diff != "" {
			t.Errorf("%s: anchor:\n%s", typ, diff)
		}
	}
}

func TestTypingFall(t *testing.T) {
	first := BuildLetter(LetterTypingFall, ctx, LetterContext{Index: 0, X: 10, Y: 50}, LetterParams{})
	if got := times(first.Position); !cmp.Equal(got, []float64{0, 45, 180}) {
		t.Errorf("first letter times = %v", got)
	}
	third := BuildLetter(LetterTypingFall, ctx, LetterContext{Index: 2, X: 10, Y: 50}, LetterParams{})
	if got := times(third.Position); !cmp.Equal(got, []float64{0, 8, 53, 180}) {
		t.Errorf("third letter times = %v", got)
	}
	if got := third.Opacity.Track[0].S[0]; got != 0 {
		t.Errorf("starts at opacity %v", got)
	}
	last := third.Position.Track[len(third.Position.Track)-1].S
	if diff := cmp.Diff([]float64{10, 50}, last); diff != "" {
		t.Errorf("does not land at rest:\n%s", diff)
	}
}

func TestZigZagAlternates(t *testing.T) {
	even := BuildLetter(LetterZigZag, ctx, LetterContext{Index: 0}, LetterParams{Amplitude: 5})
	odd := BuildLetter(LetterZigZag, ctx, LetterContext{Index: 1}, LetterParams{Amplitude: 5})
	if even.Position.Track[0].S[1] != 5 || odd.Position.Track[0].S[1] != -5 {
		t.Errorf("got %v and %v", even.Position.Track[0].S, odd.Position.Track[0].S)
	}
}

func TestPriorityOverwrite(t *testing.T) {
	descs := []TransformDescriptor{
		{Type: TransformSlideLoop, Priority: 5},
		{Type: TransformBounce, Priority: 1},
	}
	got := ApplyTransforms(descs, lottie.Transform{}, ctx)
	want := BuildTransform(TransformSlideLoop, ctx, TransformParams{})
	if diff := cmp.Diff(want.Position, got.Position); diff != "" {
		t.Errorf("priority 5 should win (-want +got):\n%s", diff)
	}
}

func TestStableOrder(t *testing.T) {
	descs := []TransformDescriptor{
		{Type: TransformBounce},
		{Type: TransformSlideLoop},
	}
	got := ApplyTransforms(descs, lottie.Transform{}, ctx)
	if len(got.Position.Track) != 3 {
		t.Errorf("ties should keep input order; got %d keyframes", len(got.Position.Track))
	}
}

func TestEmptyIsNone(t *testing.T) {
	got := ApplyTransforms(nil, lottie.Transform{}, ctx)
	want := BuildTransform(TransformNone, ctx, TransformParams{})
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("empty list (-want +got):\n%s", diff)
	}
}

func TestFieldwiseMerge(t *testing.T) {
	descs := []TransformDescriptor{
		{Type: TransformScalePulse},
		{Type: TransformRotateContinuous, Priority: 1},
	}
	base := lottie.Transform{Position: lottie.Static(1, 2)}
	got := ApplyTransforms(descs, base, ctx)
	if got.Scale == nil || got.Rotation == nil {
		t.Fatal("both channels should survive")
	}
	if diff := cmp.Diff([]float64{1, 2}, got.Position.Value); diff != "" {
		t.Errorf("untouched channel changed:\n%s", diff)
	}
}

func TestStrategies(t *testing.T) {
	old := lottie.Static(10, 20)
	next := lottie.Static(30, 40)

	tests := []struct {
		name     string
		s        Strategy
		priority float64
		want     []float64
	}{
		{"overwrite", Strategy{Kind: Overwrite}, 0, []float64{30, 40}},
		{"additive", Strategy{Kind: Additive}, 0, []float64{40, 60}},
		{"blend", Strategy{Kind: Blend, Weight: 0.25}, 0, []float64{15, 25}},
		{"blend default", Strategy{Kind: Blend}, 0, []float64{20, 30}},
		{"gate closed", Strategy{Kind: PriorityGate, Threshold: 3}, 3, []float64{10, 20}},
		{"gate open", Strategy{Kind: PriorityGate, Threshold: 3}, 4, []float64{30, 40}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := composeValue(old, next, tt.s, tt.priority)
			if diff := cmp.Diff(tt.want, got.Value); diff != "" {
				t.Errorf("(-want +got):\n%s", diff)
			}
		})
	}
}

func TestAdditiveMismatchTakesNew(t *testing.T) {
	a := BuildTransform(TransformSlideLoop, ctx, TransformParams{}).Position
	b := BuildTransform(TransformBounce, ctx, TransformParams{}).Position
	got := composeValue(a, b, Strategy{Kind: Additive}, 0)
	if got != b {
		t.Error("mismatched tracks should resolve to the new operand")
	}
	got = composeValue(a, b, Strategy{Kind: Blend}, 0)
	if got != b {
		t.Error("blend of mismatched tracks should resolve to the new operand")
	}
}

func TestAdditiveStaticOverTrack(t *testing.T) {
	track := BuildTransform(TransformSlideLoop, ctx, TransformParams{Amplitude: 10}).Position
	got := composeValue(track, lottie.Static(1, 1), Strategy{Kind: Additive}, 0)
	if !got.Animated || len(got.Track) != 3 {
		t.Fatalf("expected a 3-keyframe track, got %+v", got)
	}
	if diff := cmp.Diff([]float64{247, 257}, got.Track[0].S); diff != "" {
		t.Errorf("(-want +got):\n%s", diff)
	}
	checkTrack(t, "sum", got)
}

func TestColorCompose(t *testing.T) {
	red := Red
	blue := Blue
	descs := []ColorDescriptor{
		{Type: ColorNone, Params: ColorParams{Base: &red}},
		{Type: ColorNone, Params: ColorParams{Base: &blue}, Priority: 1, Compose: Strategy{Kind: Blend}},
	}
	got := ApplyColors(descs, White, ctx, LetterContext{})
	if diff := cmp.Diff([]float64{0.5, 0, 0.5, 1}, got.Track[0].S); diff != "" {
		t.Errorf("blend of aligned colors (-want +got):\n%s", diff)
	}

	descs[1] = ColorDescriptor{Type: ColorCycleRGB, Priority: 1, Compose: Strategy{Kind: Blend}}
	got = ApplyColors(descs, White, ctx, LetterContext{})
	if len(got.Track) != 4 {
		t.Errorf("misaligned tracks should take the later color, got %d keyframes", len(got.Track))
	}

	descs[1] = ColorDescriptor{Type: ColorNone, Params: ColorParams{Base: &blue}, Priority: 1, Compose: Strategy{Kind: Additive}}
	got = ApplyColors(descs, White, ctx, LetterContext{})
	if diff := cmp.Diff([]float64{1, 0, 1, 1}, got.Track[1].S); diff != "" {
		t.Errorf("additive should clamp (-want +got):\n%s", diff)
	}
}

func TestDescriptorYAML(t *testing.T) {
	src := `
transform:
  - type: scale_pulse
    priority: 2
    params: {min: 80, max: 120}
  - type: slide_loop
    compose: {kind: blend, weight: 0.3}
color:
  - type: cycle_rgb
    params:
      colors: ["#ff0000", [0, 1, 0], [0, 0, 1, 0.5]]
morph:
  - type: warp_airy
    params: {phases: 4}
`
	var doc struct {
		Transform []TransformDescriptor `yaml:"transform"`
		Color     []ColorDescriptor     `yaml:"color"`
		Morph     []MorphDescriptor     `yaml:"morph"`
	}
	if err := yaml.Unmarshal([]byte(src), &doc); err != nil {
		t.Fatal(err)
	}
	want := []TransformDescriptor{
		{Type: TransformScalePulse, Priority: 2, Params: TransformParams{Min: 80, Max: 120}},
		{Type: TransformSlideLoop, Compose: Strategy{Kind: Blend, Weight: 0.3}},
	}
	if diff := cmp.Diff(want, doc.Transform); diff != "" {
		t.Errorf("transform (-want +got):\n%s", diff)
	}
	wantColors := []Color{Red, Green, {0, 0, 1, 0.5}}
	if diff := cmp.Diff(wantColors, doc.Color[0].Params.Colors); diff != "" {
		t.Errorf("colors (-want +got):\n%s", diff)
	}
	if doc.Morph[0].Type != morph.WarpAiry || doc.Morph[0].Params.Phases != 4 {
		t.Errorf("morph = %+v", doc.Morph[0])
	}

	var bad []TransformDescriptor
	if err := yaml.Unmarshal([]byte("- type: teleport\n"), &bad); err == nil {
		t.Error("expected an error for an unknown type")
	}
}

func TestParseNames(t *testing.T) {
	if typ, ok := ParseTransformType("Bounce"); !ok || typ != TransformBounce {
		t.Errorf("ParseTransformType(Bounce) = %v, %v", typ, ok)
	}
	if typ, ok := ParseLetterType("moonwalk"); ok || typ != LetterNone {
		t.Errorf("unknown letter type = %v, %v", typ, ok)
	}
	if typ, ok := ParseColorType("rainbow"); !ok || typ != ColorRainbow {
		t.Errorf("ParseColorType(rainbow) = %v, %v", typ, ok)
	}
	if _, err := ParseColor("#12"); err == nil {
		t.Error("expected an error for a short color")
	}
}
