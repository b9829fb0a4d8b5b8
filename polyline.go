package overlay

import (
	"fmt"

	"github.com/gogpu/gg"
)

// ShapeTag is informational metadata attached to a shape, for example to
// suggest movement to whoever reads the overlay. It has no effect on
// geometry or rendering.
type ShapeTag uint8

const (
	TagNone        ShapeTag = iota // No suggestion
	TagGoInside                    // The subject should move inside
	TagStayOutside                 // The subject should stay outside
)

var shapeTagNames = [...]string{
	TagNone:        "none",
	TagGoInside:    "go-inside",
	TagStayOutside: "stay-outside",
}

// String returns the string representation of a ShapeTag.
func (t ShapeTag) String() string {
	if int(t) < len(shapeTagNames) {
		return shapeTagNames[t]
	}
	return "unknown"
}

// ParseShapeTag is the inverse of ShapeTag.String.
func ParseShapeTag(s string) (ShapeTag, bool) {
	for i, name := range shapeTagNames {
		if name == s {
			return ShapeTag(i), true
		}
	}
	return TagNone, false
}

// MarshalText implements encoding.TextMarshaler.
func (t ShapeTag) MarshalText() ([]byte, error) {
	return []byte(t.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (t *ShapeTag) UnmarshalText(text []byte) error {
	v, ok := ParseShapeTag(string(text))
	if !ok {
		return fmt.Errorf("overlay: unknown shape tag %q", text)
	}
	*t = v
	return nil
}

// Polyline is a shape made of explicit world-space loops. It holds border
// loops (stroked) and optional fill loops, picks its display color from the
// reference position every tick and converts its loops into screen-space
// primitives on every render pass.
//
// All exported fields may be changed between frames.
type Polyline struct {
	Lifecycle

	Color       Color    // base color
	InsideColor Color    // color while the reference is inside
	Thickness   float64  // stroke width in pixels; 0 draws no border
	Fill        bool     // fill mode; false draws the border as a band of fill color
	Tag         ShapeTag // informational

	// AlphaRatio scales the transparency of every primitive, in [0, 1].
	AlphaRatio float64
	// AnimationRatio drives the fading pulse ring, in [0, 1]. Zero disables it.
	AnimationRatio float64

	border  [][]Vec3
	fill    [][]Vec3
	hasFill bool
	closed  bool

	showColor    Color
	inside       bool
	cursorInside bool
}

// NewPolyline creates a polyline from border loops. Unless WithFillLoops is
// given, the fill is derived from the border loops.
func NewPolyline(border [][]Vec3, c Color, thickness float64, opts ...PolylineOption) *Polyline {
	pl := &Polyline{}
	pl.init(border, c, thickness, opts)
	return pl
}

// NewPolylineLoop creates a polyline with a single border loop.
func NewPolylineLoop(pts []Vec3, c Color, thickness float64, opts ...PolylineOption) *Polyline {
	return NewPolyline([][]Vec3{pts}, c, thickness, opts...)
}

func (pl *Polyline) init(border [][]Vec3, c Color, thickness float64, opts []PolylineOption) {
	pl.SetBorderLoops(border)
	pl.Color, pl.InsideColor, pl.showColor = c, c, c
	pl.Thickness = thickness
	pl.Fill = true
	pl.AlphaRatio = 1
	pl.closed = true
	pl.OnDispose(pl.release)
	for _, opt := range opts {
		opt(pl)
	}
}

// BorderLoops returns the current border loops. The result is never nil.
func (pl *Polyline) BorderLoops() [][]Vec3 { return pl.border }

// SetBorderLoops replaces the border loops.
func (pl *Polyline) SetBorderLoops(loops [][]Vec3) {
	if loops == nil {
		loops = [][]Vec3{}
	}
	pl.border = loops
}

// FillLoops returns the explicit fill loops and whether they are present.
func (pl *Polyline) FillLoops() ([][]Vec3, bool) { return pl.fill, pl.hasFill }

// SetFillLoops makes loops the explicit fill, even when empty.
func (pl *Polyline) SetFillLoops(loops [][]Vec3) {
	if loops == nil {
		loops = [][]Vec3{}
	}
	pl.fill, pl.hasFill = loops, true
}

// ClearFillLoops removes the explicit fill so it is derived from the border.
func (pl *Polyline) ClearFillLoops() {
	pl.fill, pl.hasFill = nil, false
}

// SetAlphaRatio sets AlphaRatio, clamped to [0, 1].
func (pl *Polyline) SetAlphaRatio(r float64) { pl.AlphaRatio = clampUnit(r) }

// SetAnimationRatio sets AnimationRatio, clamped to [0, 1].
func (pl *Polyline) SetAnimationRatio(r float64) { pl.AnimationRatio = clampUnit(r) }

// DisplayColor returns the color picked on the last tick.
func (pl *Polyline) DisplayColor() Color { return pl.showColor }

// Inside reports whether the reference was inside the border on the last tick.
func (pl *Polyline) Inside() bool { return pl.inside }

// CursorInside reports whether the cursor was inside the projected border on
// the last render pass.
func (pl *Polyline) CursorInside() bool { return pl.cursorInside }

// Tick implements Lifecycler.
func (pl *Polyline) Tick(f Frame) {
	pl.tick(f, pl.Recompute)
}

// Recompute implements Geometry. Explicit loops have nothing to regenerate.
func (pl *Polyline) Recompute() {}

// tick runs the lifecycle step: regenerate loops, then the highlight.
func (pl *Polyline) tick(f Frame, recompute func()) {
	pl.Step(f.Now, func() {
		recompute()
		pl.updateHighlight(f)
	})
}

func (pl *Polyline) updateHighlight(f Frame) {
	pl.inside = f.HasReference && RegionContains3(f.Reference, pl.border)
	pl.showColor = DisplayColor(pl.Color, pl.InsideColor, pl.inside)
}

// AppendPrimitives implements Geometry.
//
// Border loops are projected without thickness offset. With a nonzero
// thickness each is stroked: at border color in fill mode (plus a fading
// offset copy while AnimationRatio is nonzero), at fill color otherwise.
// In fill mode the fill comes from the explicit fill loops when present,
// projected with thickness offset, and from the projected border loops
// otherwise; either way it is split into convex pieces.
func (pl *Polyline) AppendPrimitives(dst []Primitive, p Pass) []Primitive {
	pl.cursorInside = false
	if pl.Disposed() || !pl.Enabled() || p.Projector == nil {
		return dst
	}
	display := pl.showColor
	if display.A() == 0 {
		return dst
	}

	fillColor := display.ScaleAlpha(pl.AlphaRatio)
	borderColor := display.WithAlpha(pl.AlphaRatio)
	hasBorder := pl.Thickness != 0

	screen := make([][]gg.Point, 0, len(pl.border))
	for _, loop := range pl.border {
		pts := ProjectLoop(p.Projector, loop, false, false)
		screen = append(screen, pts)

		if hasBorder && len(pts) >= 2 {
			if pl.Fill {
				dst = append(dst, StrokedPolyline{Points: pts, Color: borderColor, Thickness: pl.Thickness, Closed: pl.closed})
				if pl.AnimationRatio != 0 {
					dst = append(dst, StrokedPolyline{
						Points:    ProjectLoop(p.Projector, loop, true, false),
						Color:     display.WithAlpha(pl.AlphaRatio * (1 - pl.AnimationRatio)),
						Thickness: pl.Thickness,
						Closed:    pl.closed,
					})
				}
			} else {
				dst = append(dst, StrokedPolyline{Points: pts, Color: fillColor, Thickness: pl.Thickness, Closed: pl.closed})
			}
		}

		if !pl.hasFill && pl.Fill {
			dst = appendFill(dst, pts, fillColor)
		}
	}
	pl.cursorInside = RegionContains(p.Cursor, screen)

	if pl.hasFill && pl.Fill {
		for _, loop := range pl.fill {
			dst = appendFill(dst, ProjectLoop(p.Projector, loop, true, false), fillColor)
		}
	}
	return dst
}

func appendFill(dst []Primitive, pts []gg.Point, c Color) []Primitive {
	for _, piece := range ConvexPieces(pts) {
		dst = append(dst, FilledConvexPolygon{Points: piece, Color: c})
	}
	return dst
}

func (pl *Polyline) release() {
	pl.border = [][]Vec3{}
	pl.fill, pl.hasFill = nil, false
	pl.inside, pl.cursorInside = false, false
}
