package overlay

import "github.com/gogpu/gg"

// PrimitiveKind identifies the type of a Primitive.
type PrimitiveKind uint8

const (
	KindStrokedPolyline     PrimitiveKind = iota // Stroke a polyline
	KindFilledConvexPolygon                      // Fill a convex polygon
)

var primitiveKindNames = [...]string{
	KindStrokedPolyline:     "StrokedPolyline",
	KindFilledConvexPolygon: "FilledConvexPolygon",
}

// String returns the string representation of a PrimitiveKind.
func (k PrimitiveKind) String() string {
	if int(k) < len(primitiveKindNames) {
		return primitiveKindNames[k]
	}
	return "Unknown"
}

// Primitive is a screen-space drawing instruction emitted by a shape.
// Sinks rasterize primitives; overlay never does.
type Primitive interface {
	Kind() PrimitiveKind
}

// StrokedPolyline strokes Points with the given line width.
// When Closed is set the last point connects back to the first.
type StrokedPolyline struct {
	Points    []gg.Point
	Color     Color
	Thickness float64
	Closed    bool
}

// Kind implements Primitive.
func (StrokedPolyline) Kind() PrimitiveKind { return KindStrokedPolyline }

// FilledConvexPolygon fills a convex polygon.
type FilledConvexPolygon struct {
	Points []gg.Point
	Color  Color
}

// Kind implements Primitive.
func (FilledConvexPolygon) Kind() PrimitiveKind { return KindFilledConvexPolygon }
