package overlay

import "fmt"

// Sink consumes primitives, typically by rasterizing them.
// See the sink/raster and sink/vector packages.
type Sink interface {
	StrokePolyline(p StrokedPolyline) error
	FillConvexPolygon(p FilledConvexPolygon) error
}

// Submit hands prims to sink in order and stops at the first error.
func Submit(sink Sink, prims []Primitive) error {
	for i, prim := range prims {
		var err error
		switch p := prim.(type) {
		case StrokedPolyline:
			err = sink.StrokePolyline(p)
		case FilledConvexPolygon:
			err = sink.FillConvexPolygon(p)
		default:
			err = fmt.Errorf("unsupported primitive %s", prim.Kind())
		}
		if err != nil {
			return fmt.Errorf("overlay: primitive %d (%s): %w", i, prim.Kind(), err)
		}
	}
	return nil
}

// Recorder is a Sink that keeps every primitive it receives in memory.
// The zero value is ready to use.
type Recorder struct {
	prims []Primitive
}

// StrokePolyline implements Sink.
func (r *Recorder) StrokePolyline(p StrokedPolyline) error {
	r.prims = append(r.prims, p)
	return nil
}

// FillConvexPolygon implements Sink.
func (r *Recorder) FillConvexPolygon(p FilledConvexPolygon) error {
	r.prims = append(r.prims, p)
	return nil
}

// Primitives returns the recorded primitives in submission order.
func (r *Recorder) Primitives() []Primitive {
	return r.prims
}

// Count returns how many primitives of kind k were recorded.
func (r *Recorder) Count(k PrimitiveKind) int {
	n := 0
	for _, p := range r.prims {
		if p.Kind() == k {
			n++
		}
	}
	return n
}

// Reset drops all recorded primitives, keeping the allocated storage.
func (r *Recorder) Reset() {
	clear(r.prims)
	r.prims = r.prims[:0]
}
