package overlay

import (
	"testing"

	"github.com/gogpu/gg"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// offsetProjector is a top-down projector that moves thickness-offset
// points down by 1000 pixels so tests can tell the two variants apart.
var offsetProjector = ProjectorFunc(func(p Vec3, thicknessOffset, _ bool) gg.Point {
	pt := gg.Pt(p[0], p[2])
	if thicknessOffset {
		pt.Y += 1000
	}
	return pt
})

func groundSquare(x0, z0, size float64) []Vec3 {
	return []Vec3{{x0, 0, z0}, {x0 + size, 0, z0}, {x0 + size, 0, z0 + size}, {x0, 0, z0 + size}}
}

func strokes(prims []Primitive) []StrokedPolyline {
	var out []StrokedPolyline
	for _, p := range prims {
		if s, ok := p.(StrokedPolyline); ok {
			out = append(out, s)
		}
	}
	return out
}

func fills(prims []Primitive) []FilledConvexPolygon {
	var out []FilledConvexPolygon
	for _, p := range prims {
		if f, ok := p.(FilledConvexPolygon); ok {
			out = append(out, f)
		}
	}
	return out
}

var (
	red   = PackRGBA(255, 0, 0, 0x80)
	green = PackRGBA(0, 255, 0, 0x80)
)

func TestNewPolyline_Defaults(t *testing.T) {
	pl := NewPolyline(nil, red, 2)
	assert.NotNil(t, pl.BorderLoops(), "border loops are never absent")
	assert.Empty(t, pl.BorderLoops())
	_, hasFill := pl.FillLoops()
	assert.False(t, hasFill)
	assert.True(t, pl.Fill)
	assert.Equal(t, 1.0, pl.AlphaRatio)
	assert.Equal(t, red, pl.InsideColor)
	assert.Equal(t, red, pl.DisplayColor())
	assert.Equal(t, TagNone, pl.Tag)
	assert.True(t, pl.Enabled())

	one := NewPolylineLoop(nil, red, 1)
	assert.Len(t, one.BorderLoops(), 1)
}

func TestPolyline_Options(t *testing.T) {
	pl := NewPolylineLoop(groundSquare(0, 0, 1), red, 2,
		WithInsideColor(green),
		WithFillMode(false),
		WithFillLoops(nil),
		WithTag(TagStayOutside),
		WithDeadTime(epoch),
		WithAlphaRatio(1.5),
		WithAnimationRatio(-1),
		WithOpenLoops(),
	)
	assert.Equal(t, green, pl.InsideColor)
	assert.False(t, pl.Fill)
	loops, ok := pl.FillLoops()
	assert.True(t, ok, "nil fill loops still count as present")
	assert.NotNil(t, loops)
	assert.Equal(t, TagStayOutside, pl.Tag)
	assert.Equal(t, epoch, pl.DeadTime)
	assert.Equal(t, 1.0, pl.AlphaRatio)
	assert.Equal(t, 0.0, pl.AnimationRatio)
	assert.False(t, pl.closed)

	pl.ClearFillLoops()
	_, ok = pl.FillLoops()
	assert.False(t, ok)
}

func TestPolyline_HighlightColor(t *testing.T) {
	tests := []struct {
		name   string
		inside Color
		frame  Frame
		want   Color
	}{
		{"reference inside", green, Frame{Now: epoch, Reference: Vec3{5, 3, 5}, HasReference: true}, green},
		{"reference outside", green, Frame{Now: epoch, Reference: Vec3{50, 0, 50}, HasReference: true}, red},
		{"reference unavailable", green, Frame{Now: epoch, Reference: Vec3{5, 0, 5}}, red},
		{"same colors", red, Frame{Now: epoch, Reference: Vec3{5, 0, 5}, HasReference: true}, red},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pl := NewPolylineLoop(groundSquare(0, 0, 10), red, 2, WithInsideColor(tt.inside))
			pl.Tick(tt.frame)
			assert.Equal(t, tt.want, pl.DisplayColor())
		})
	}
}

func TestPolyline_FillModeEmitsBorderAndDerivedFill(t *testing.T) {
	pl := NewPolylineLoop(groundSquare(0, 0, 10), red, 2)
	pl.Tick(Frame{Now: epoch})

	prims := pl.AppendPrimitives(nil, Pass{Projector: offsetProjector})
	s, f := strokes(prims), fills(prims)
	require.Len(t, s, 1)
	require.Len(t, f, 1)

	assert.Equal(t, uint8(255), s[0].Color.A(), "border alpha follows AlphaRatio only")
	assert.Equal(t, 2.0, s[0].Thickness)
	assert.True(t, s[0].Closed)
	assert.Equal(t, gg.Pt(0, 0), s[0].Points[0], "border is projected without offset")

	assert.Equal(t, red, f[0].Color, "fill keeps the display alpha")
	assert.Len(t, f[0].Points, 4)
	assert.Equal(t, gg.Pt(0, 0), f[0].Points[0], "derived fill reuses the border projection")
}

func TestPolyline_AlphaRatio(t *testing.T) {
	pl := NewPolylineLoop(groundSquare(0, 0, 10), red, 2, WithAlphaRatio(0.5))
	prims := pl.AppendPrimitives(nil, Pass{Projector: offsetProjector})
	require.Len(t, strokes(prims), 1)
	require.Len(t, fills(prims), 1)
	assert.Equal(t, uint8(128), strokes(prims)[0].Color.A())
	assert.Equal(t, uint8(64), fills(prims)[0].Color.A())
}

func TestPolyline_AnimationRatioAddsFadingOffsetRing(t *testing.T) {
	pl := NewPolylineLoop(groundSquare(0, 0, 10), red, 2, WithAnimationRatio(0.25))
	s := strokes(pl.AppendPrimitives(nil, Pass{Projector: offsetProjector}))
	require.Len(t, s, 2)
	assert.Equal(t, uint8(255), s[0].Color.A())
	assert.Equal(t, uint8(191), s[1].Color.A())
	assert.Equal(t, gg.Pt(0, 1000), s[1].Points[0], "pulse ring is projected with offset")
}

func TestPolyline_ZeroThicknessDrawsNoBorder(t *testing.T) {
	pl := NewPolylineLoop(groundSquare(0, 0, 10), red, 0, WithAnimationRatio(0.5))
	prims := pl.AppendPrimitives(nil, Pass{Projector: offsetProjector})
	assert.Empty(t, strokes(prims))
	assert.Len(t, fills(prims), 1)
}

func TestPolyline_BandModeWithExplicitFill(t *testing.T) {
	pl := NewPolylineLoop(groundSquare(0, 0, 10), red, 2,
		WithFillLoops([][]Vec3{groundSquare(2, 2, 4)}),
		WithFillMode(false),
	)
	prims := pl.AppendPrimitives(nil, Pass{Projector: offsetProjector})
	require.Len(t, prims, 1)
	s, ok := prims[0].(StrokedPolyline)
	require.True(t, ok)
	assert.Equal(t, red, s.Color, "band uses the fill color, not the border color")
	assert.Equal(t, 2.0, s.Thickness)
}

func TestPolyline_ExplicitFillLoops(t *testing.T) {
	pl := NewPolylineLoop(groundSquare(0, 0, 10), red, 2,
		WithFillLoops([][]Vec3{groundSquare(2, 2, 4), groundSquare(20, 20, 4)}),
	)
	prims := pl.AppendPrimitives(nil, Pass{Projector: offsetProjector})
	assert.Len(t, strokes(prims), 1)
	f := fills(prims)
	require.Len(t, f, 2)
	assert.Equal(t, gg.Pt(2, 1002), f[0].Points[0], "fill loops are projected with offset")

	empty := NewPolylineLoop(groundSquare(0, 0, 10), red, 2, WithFillLoops([][]Vec3{}))
	assert.Empty(t, fills(empty.AppendPrimitives(nil, Pass{Projector: offsetProjector})),
		"present but empty fill loops suppress the derived fill")
}

func TestPolyline_NothingEmitted(t *testing.T) {
	tests := []struct {
		name  string
		setup func(pl *Polyline) Pass
	}{
		{"zero display alpha", func(pl *Polyline) Pass {
			pl.Color = red.WithAlpha(0)
			pl.Tick(Frame{Now: epoch})
			return Pass{Projector: offsetProjector}
		}},
		{"disabled", func(pl *Polyline) Pass {
			pl.SetEnabled(false)
			return Pass{Projector: offsetProjector}
		}},
		{"disposed", func(pl *Polyline) Pass {
			pl.Dispose()
			return Pass{Projector: offsetProjector}
		}},
		{"no projector", func(pl *Polyline) Pass {
			return Pass{}
		}},
		{"empty loops", func(pl *Polyline) Pass {
			pl.SetBorderLoops(nil)
			return Pass{Projector: offsetProjector}
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pl := NewPolylineLoop(groundSquare(0, 0, 10), red, 2, WithAnimationRatio(0.5))
			p := tt.setup(pl)
			p.Cursor = gg.Pt(5, 5)
			assert.Empty(t, pl.AppendPrimitives(nil, p))
			assert.False(t, pl.CursorInside())
		})
	}
}

func TestPolyline_CursorInside(t *testing.T) {
	pl := NewPolyline([][]Vec3{groundSquare(0, 0, 10), groundSquare(100, 100, 10)}, red, 2)

	pl.AppendPrimitives(nil, Pass{Projector: offsetProjector, Cursor: gg.Pt(105, 105)})
	assert.True(t, pl.CursorInside())

	pl.AppendPrimitives(nil, Pass{Projector: offsetProjector, Cursor: gg.Pt(50, 50)})
	assert.False(t, pl.CursorInside())
}

func TestPolyline_DisposeReleasesLoops(t *testing.T) {
	pl := NewPolylineLoop(groundSquare(0, 0, 10), red, 2, WithFillLoops([][]Vec3{groundSquare(0, 0, 1)}))
	pl.Dispose()
	assert.NotNil(t, pl.BorderLoops())
	assert.Empty(t, pl.BorderLoops())
	_, ok := pl.FillLoops()
	assert.False(t, ok)
}

func TestShapeTag(t *testing.T) {
	for _, tag := range []ShapeTag{TagNone, TagGoInside, TagStayOutside} {
		got, ok := ParseShapeTag(tag.String())
		assert.True(t, ok)
		assert.Equal(t, tag, got)
	}
	assert.Equal(t, "unknown", ShapeTag(42).String())
	_, ok := ParseShapeTag("sideways")
	assert.False(t, ok)
}

func TestShapeTag_Text(t *testing.T) {
	var tag ShapeTag
	require.NoError(t, tag.UnmarshalText([]byte("go-inside")))
	assert.Equal(t, TagGoInside, tag)
	assert.Error(t, tag.UnmarshalText([]byte("nowhere")))

	text, err := TagStayOutside.MarshalText()
	require.NoError(t, err)
	assert.Equal(t, "stay-outside", string(text))
}

func TestPolyline_RatioSetters(t *testing.T) {
	pl := NewPolyline(nil, red, 1)
	pl.SetAnimationRatio(0.3)
	assert.Equal(t, 0.3, pl.AnimationRatio)
	pl.SetAnimationRatio(7)
	assert.Equal(t, 1.0, pl.AnimationRatio)
	pl.SetAlphaRatio(-2)
	assert.Equal(t, 0.0, pl.AlphaRatio)
}
