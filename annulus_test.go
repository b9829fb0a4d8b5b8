package overlay

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func assertVecNear(t *testing.T, want, got Vec3) {
	t.Helper()
	for i := range want {
		assert.InDelta(t, want[i], got[i], 1e-9, "component %d of %v", i, got)
	}
}

func TestAnnulus_FullCircle(t *testing.T) {
	center := Vec3{10, 2, -4}
	a := NewAnnulus(center, 5, 3, red, 2, nil)

	require.Len(t, a.BorderLoops(), 2)
	outer, inner := a.BorderLoops()[0], a.BorderLoops()[1]
	require.Len(t, outer, 31)
	require.Len(t, inner, 31)

	// The A-radius arc runs backwards and ends at angle 0.
	assertVecNear(t, Vec3{15, 2, -4}, outer[30])
	assertVecNear(t, Vec3{13, 2, -4}, inner[0])
	for _, p := range outer {
		assert.InDelta(t, 5, math.Hypot(p[0]-center[0], p[2]-center[2]), 1e-9)
		assert.Equal(t, center[1], p[1])
	}

	fill, ok := a.FillLoops()
	require.True(t, ok)
	require.Len(t, fill, 2)
	assert.Len(t, fill[0], 62)
	assert.Equal(t, []Vec3{outer[0], outer[30], inner[0], inner[30]}, fill[1])
	assert.True(t, a.closed)
}

func TestAnnulus_PartialSpan(t *testing.T) {
	a := NewAnnulus(Vec3{}, 5, 3, red, 2, []ArcSpan{{Start: 0, Sweep: math.Pi / 2}})

	require.Len(t, a.BorderLoops(), 2)
	outer, inner := a.BorderLoops()[0], a.BorderLoops()[1]
	assertVecNear(t, Vec3{0, 0, 5}, outer[0])
	assertVecNear(t, Vec3{5, 0, 0}, outer[len(outer)-1])
	assertVecNear(t, Vec3{3, 0, 0}, inner[0])
	assertVecNear(t, Vec3{0, 0, 3}, inner[len(inner)-1])

	fill, ok := a.FillLoops()
	require.True(t, ok)
	require.Len(t, fill, 1, "partial spans have no seam")
	assert.False(t, a.closed, "partial arcs are stroked open")
}

func TestAnnulus_MultipleSpans(t *testing.T) {
	a := NewAnnulus(Vec3{}, 3, 5, red, 2, []ArcSpan{
		{Start: 0, Sweep: math.Pi / 4},
		{Start: math.Pi, Sweep: math.Pi / 4},
		{Start: 0, Sweep: FullTurn},
	})
	assert.Len(t, a.BorderLoops(), 6)
	fill, _ := a.FillLoops()
	assert.Len(t, fill, 4)
}

func TestAnnulus_Degenerate(t *testing.T) {
	tests := []struct {
		name   string
		ra, rb float64
		spans  []ArcSpan
	}{
		{"zero outer radius", 0, 3, nil},
		{"zero inner radius", 5, 0, nil},
		{"tiny radii", 0.05, 0.02, nil},
		{"single sample", 0.2, 0.1, nil},
		{"only empty spans", 5, 3, []ArcSpan{{Start: 1, Sweep: 0}, {Start: math.NaN(), Sweep: 1}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := NewAnnulus(Vec3{}, tt.ra, tt.rb, red, 2, tt.spans)
			assert.NotNil(t, a.BorderLoops())
			assert.Empty(t, a.BorderLoops())
			fill, ok := a.FillLoops()
			assert.True(t, ok)
			assert.Empty(t, fill)

			prims := a.AppendPrimitives(nil, Pass{Projector: offsetProjector})
			assert.Empty(t, prims, "empty fill loops suppress the derived fill")
		})
	}
}

func TestArcSpan_Normalized(t *testing.T) {
	tests := []struct {
		name string
		in   ArcSpan
		want ArcSpan
		ok   bool
	}{
		{"plain", ArcSpan{1, 2}, ArcSpan{1, 2}, true},
		{"zero sweep", ArcSpan{1, 0}, ArcSpan{}, false},
		{"nan sweep", ArcSpan{1, math.NaN()}, ArcSpan{}, false},
		{"inf start", ArcSpan{math.Inf(1), 1}, ArcSpan{}, false},
		{"negative sweep", ArcSpan{1, -0.5}, ArcSpan{0.5, 0.5}, true},
		{"more than a turn", ArcSpan{0, 10}, ArcSpan{0, FullTurn}, true},
		{"infinite sweep", ArcSpan{0, math.Inf(1)}, ArcSpan{0, FullTurn}, true},
		{"negative infinite sweep", ArcSpan{0, math.Inf(-1)}, ArcSpan{0, FullTurn}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := tt.in.normalized()
			require.Equal(t, tt.ok, ok)
			if ok {
				assert.InDelta(t, tt.want.Start, got.Start, 1e-12)
				assert.InDelta(t, tt.want.Sweep, got.Sweep, 1e-12)
			}
		})
	}
}

func TestAnnulus_RecomputesEveryTick(t *testing.T) {
	a := NewAnnulus(Vec3{}, 5, 3, red, 2, nil, WithInsideColor(green))

	a.Center = Vec3{100, 0, 100}
	a.Tick(Frame{Now: epoch, Reference: Vec3{104, 0, 100}, HasReference: true})

	assertVecNear(t, Vec3{105, 0, 100}, a.BorderLoops()[0][30])
	assert.True(t, a.Inside(), "reference between the radii is inside the ring")
	assert.Equal(t, green, a.DisplayColor())

	a.Tick(Frame{Now: epoch, Reference: Vec3{100, 0, 100}, HasReference: true})
	assert.False(t, a.Inside(), "the hole is outside")
	assert.Equal(t, red, a.DisplayColor())

	a.RadiusA = 0
	a.Tick(Frame{Now: epoch})
	assert.Empty(t, a.BorderLoops())
}

func TestAnnulus_Primitives(t *testing.T) {
	a := NewAnnulus(Vec3{}, 5, 3, red, 2, nil)
	prims := a.AppendPrimitives(nil, Pass{Projector: TopDown{Scale: 10}})

	s := strokes(prims)
	require.Len(t, s, 2)
	for _, sp := range s {
		assert.True(t, sp.Closed)
		assert.Len(t, sp.Points, 31)
	}
	f := fills(prims)
	require.NotEmpty(t, f)
	for _, fp := range f {
		assert.True(t, IsConvex(fp.Points), "fill pieces are convex")
	}

	var area float64
	for _, fp := range f {
		area += math.Abs(signedArea(fp.Points))
	}
	// Area of the sampled ring: two regular 31-gons.
	ngon := func(r float64) float64 { return 31 * r * r * math.Sin(FullTurn/31) / 2 }
	assert.InDelta(t, ngon(50)-ngon(30), area, 1e-6)
}

func TestAnnulus_DisposedSkipsRecompute(t *testing.T) {
	a := NewAnnulus(Vec3{}, 5, 3, red, 2, nil, WithDeadTime(epoch))
	a.Tick(Frame{Now: epoch.Add(1)})
	assert.True(t, a.Disposed())
	assert.Empty(t, a.BorderLoops())

	a.Center = Vec3{1, 0, 1}
	a.Tick(Frame{Now: epoch})
	assert.Empty(t, a.BorderLoops(), "a disposed annulus does not regenerate")
}
