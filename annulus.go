package overlay

import "math"

// ArcSpan is an angular extent in radians: from Start, across Sweep.
type ArcSpan struct {
	Start, Sweep float64
}

// FullCircle is the span used when an annulus is given none.
var FullCircle = ArcSpan{Start: 0, Sweep: FullTurn}

// normalized applies the sweep policy: zero or non-finite spans are
// dropped, negative sweeps run the other way from Start+Sweep, and sweeps
// of a turn or more become exactly one full turn.
func (s ArcSpan) normalized() (ArcSpan, bool) {
	if math.IsNaN(s.Sweep) || math.IsNaN(s.Start) || math.IsInf(s.Start, 0) || s.Sweep == 0 {
		return s, false
	}
	if s.Sweep < 0 {
		if math.IsInf(s.Sweep, 0) {
			return ArcSpan{Start: s.Start, Sweep: FullTurn}, true
		}
		s.Start, s.Sweep = s.Start+s.Sweep, -s.Sweep
	}
	if s.Sweep >= FullTurn {
		s.Sweep = FullTurn
	}
	return s, true
}

// Annulus is a ring, or a set of ring sectors, between two radii around a
// center on the ground plane. Its loops are regenerated from the parameters
// on every tick.
type Annulus struct {
	Polyline

	Center  Vec3
	RadiusA float64
	RadiusB float64
	// Spans lists the sectors to draw. Empty means FullCircle.
	Spans []ArcSpan
}

// NewAnnulus creates an annulus. Either radius may be the larger one.
// A nil or empty spans draws the full circle.
func NewAnnulus(center Vec3, radiusA, radiusB float64, c Color, thickness float64, spans []ArcSpan, opts ...PolylineOption) *Annulus {
	a := &Annulus{
		Center:  center,
		RadiusA: radiusA,
		RadiusB: radiusB,
		Spans:   spans,
	}
	if len(a.Spans) == 0 {
		a.Spans = []ArcSpan{FullCircle}
	}
	a.Polyline.init(nil, c, thickness, opts)
	a.Recompute()
	return a
}

// Tick implements Lifecycler.
func (a *Annulus) Tick(f Frame) {
	a.tick(f, a.Recompute)
}

// Recompute implements Geometry.
//
// For every span the A-radius arc is sampled and reversed and the B-radius
// arc is sampled forward. Both become separate border loops, so strokes draw
// two arcs and never a zig-zag between them. Their concatenation is the fill
// loop of the sector. A full turn adds a four-point fill loop across the
// sampling seam. A zero radius leaves both collections empty.
func (a *Annulus) Recompute() {
	border := [][]Vec3{}
	fill := [][]Vec3{}
	closed := true
	defer func() {
		a.border = border
		a.fill, a.hasFill = fill, true
		a.closed = closed
	}()

	if a.RadiusA == 0 || a.RadiusB == 0 {
		return
	}

	spans := a.Spans
	if len(spans) == 0 {
		spans = []ArcSpan{FullCircle}
	}
	n := SampleCount(max(math.Abs(a.RadiusA), math.Abs(a.RadiusB)))
	if n < 2 {
		return
	}

	for _, span := range spans {
		s, ok := span.normalized()
		if !ok {
			continue
		}
		outer := reversed(ArcPoints(a.Center, a.RadiusA, s.Start, s.Sweep, n))
		inner := ArcPoints(a.Center, a.RadiusB, s.Start, s.Sweep, n)
		border = append(border, outer, inner)

		strip := make([]Vec3, 0, 2*n)
		strip = append(strip, outer...)
		strip = append(strip, inner...)
		fill = append(fill, strip)

		if IsFullTurn(s.Sweep) {
			fill = append(fill, []Vec3{outer[0], outer[n-1], inner[0], inner[n-1]})
		} else {
			closed = false
		}
	}
}
