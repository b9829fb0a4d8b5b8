// Package vector draws overlay primitives onto an ebiten image with
// DrawTriangles.
//
// Strokes are tessellated by ebiten's vector package. Convex fills need no
// tessellation and are emitted as triangle fans.
package vector

import (
	"errors"
	"fmt"
	"image/color"
	"math"

	"github.com/gogpu/gg"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/gogpu/overlay"
)

// ErrTooManyVertices is returned when a primitive does not fit in a single
// 16-bit indexed draw call.
var ErrTooManyVertices = errors.New("vector: too many vertices")

// ErrNoTarget is returned when drawing without a target image.
var ErrNoTarget = errors.New("vector: no target image")

const maxVertices = math.MaxUint16 + 1

// Sink draws primitives onto an ebiten image. It implements overlay.Sink.
// Vertex buffers are reused between primitives, so a Sink must not be
// shared between goroutines.
type Sink struct {
	target *ebiten.Image
	white  *ebiten.Image

	vs []ebiten.Vertex
	is []uint16

	// AntiAlias is passed to every DrawTriangles call.
	AntiAlias bool
	// LineJoin is used for every stroke.
	LineJoin vector.LineJoin
}

var _ overlay.Sink = (*Sink)(nil)

// New creates a sink drawing onto target. The target may be replaced every
// frame with SetTarget.
func New(target *ebiten.Image) *Sink {
	white := ebiten.NewImage(1, 1)
	white.Fill(color.White)
	return &Sink{
		target:    target,
		white:     white,
		vs:        make([]ebiten.Vertex, 0, 256),
		is:        make([]uint16, 0, 512),
		AntiAlias: true,
		LineJoin:  vector.LineJoinRound,
	}
}

// SetTarget replaces the image drawn onto.
func (s *Sink) SetTarget(target *ebiten.Image) { s.target = target }

// StrokePolyline implements overlay.Sink.
func (s *Sink) StrokePolyline(p overlay.StrokedPolyline) error {
	if s.target == nil {
		return ErrNoTarget
	}
	if len(p.Points) < 2 || p.Thickness == 0 || p.Color.A() == 0 {
		return nil
	}
	s.vs, s.is = appendStroke(s.vs[:0], s.is[:0], p, s.LineJoin)
	return s.draw(p.Color)
}

// FillConvexPolygon implements overlay.Sink.
func (s *Sink) FillConvexPolygon(p overlay.FilledConvexPolygon) error {
	if s.target == nil {
		return ErrNoTarget
	}
	if len(p.Points) < 3 || p.Color.A() == 0 {
		return nil
	}
	if len(p.Points) > maxVertices {
		return fmt.Errorf("%w: %d points", ErrTooManyVertices, len(p.Points))
	}
	s.vs, s.is = appendFan(s.vs[:0], s.is[:0], p.Points)
	return s.draw(p.Color)
}

func (s *Sink) draw(c overlay.Color) error {
	if len(s.vs) > maxVertices {
		return fmt.Errorf("%w: %d vertices", ErrTooManyVertices, len(s.vs))
	}
	tint(s.vs, c)
	s.target.DrawTriangles(s.vs, s.is, s.white, &ebiten.DrawTrianglesOptions{
		AntiAlias: s.AntiAlias,
	})
	return nil
}

// appendStroke tessellates the outline of p.
func appendStroke(vs []ebiten.Vertex, is []uint16, p overlay.StrokedPolyline, join vector.LineJoin) ([]ebiten.Vertex, []uint16) {
	var path vector.Path
	path.MoveTo(float32(p.Points[0].X), float32(p.Points[0].Y))
	for _, pt := range p.Points[1:] {
		path.LineTo(float32(pt.X), float32(pt.Y))
	}
	if p.Closed {
		path.Close()
	}
	return path.AppendVerticesAndIndicesForStroke(vs, is, &vector.StrokeOptions{
		Width:      float32(math.Abs(p.Thickness)),
		LineJoin:   join,
		LineCap:    vector.LineCapRound,
		MiterLimit: 10,
	})
}

// appendFan triangulates a convex polygon as a fan around its first point.
func appendFan(vs []ebiten.Vertex, is []uint16, pts []gg.Point) ([]ebiten.Vertex, []uint16) {
	base := uint16(len(vs))
	for _, pt := range pts {
		vs = append(vs, ebiten.Vertex{DstX: float32(pt.X), DstY: float32(pt.Y)})
	}
	for i := 1; i+1 < len(pts); i++ {
		is = append(is, base, base+uint16(i), base+uint16(i+1))
	}
	return vs, is
}

// tint sets every vertex to c with straight alpha.
func tint(vs []ebiten.Vertex, c overlay.Color) {
	r := float32(c.R()) / 255
	g := float32(c.G()) / 255
	b := float32(c.B()) / 255
	a := float32(c.A()) / 255
	for i := range vs {
		vs[i].SrcX, vs[i].SrcY = 0, 0
		vs[i].ColorR = r
		vs[i].ColorG = g
		vs[i].ColorB = b
		vs[i].ColorA = a
	}
}
