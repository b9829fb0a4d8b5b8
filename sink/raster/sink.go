// Package raster rasterizes overlay primitives into a pixel image using
// gg.Context.
//
// It is the headless sink: thumbnails, golden-image tests and the
// overlaypng command draw through it.
//
// # Example
//
//	s := raster.New(640, 480)
//	defer s.Close()
//	s.Clear(overlay.Black)
//	if err := manager.Render(pass, s); err != nil {
//		return err
//	}
//	s.SavePNG("overlay.png")
package raster

import (
	"errors"
	"image"
	"image/png"
	"io"
	"math"

	"github.com/gogpu/gg"

	"github.com/gogpu/overlay"
)

// ErrClosed is returned by drawing methods after Close.
var ErrClosed = errors.New("raster: sink is closed")

// Sink draws primitives onto a gg.Context. It implements overlay.Sink.
type Sink struct {
	ctx    *gg.Context
	closed bool

	// LineJoin is used for every stroke. Defaults to gg.LineJoinRound so
	// sharp corners on sampled arcs do not spike.
	LineJoin gg.LineJoin
}

var _ overlay.Sink = (*Sink)(nil)

// New creates a sink backed by a fresh transparent image.
func New(width, height int) *Sink {
	return &Sink{ctx: gg.NewContext(width, height), LineJoin: gg.LineJoinRound}
}

// NewForImage creates a sink that draws over a copy of img, for example a
// camera frame the overlay belongs on.
func NewForImage(img image.Image) *Sink {
	return &Sink{ctx: gg.NewContextForImage(img), LineJoin: gg.LineJoinRound}
}

// Context returns the underlying drawing context.
func (s *Sink) Context() *gg.Context { return s.ctx }

// Width returns the image width in pixels.
func (s *Sink) Width() int { return s.ctx.Width() }

// Height returns the image height in pixels.
func (s *Sink) Height() int { return s.ctx.Height() }

// Clear fills the whole image with c.
func (s *Sink) Clear(c overlay.Color) {
	s.ctx.ClearWithColor(c.GG())
}

// StrokePolyline implements overlay.Sink. Polylines with fewer than two
// points and zero-width strokes draw nothing.
func (s *Sink) StrokePolyline(p overlay.StrokedPolyline) error {
	if s.closed {
		return ErrClosed
	}
	w := math.Abs(p.Thickness)
	if len(p.Points) < 2 || w == 0 || p.Color.A() == 0 {
		return nil
	}

	s.ctx.SetStrokeBrush(gg.Solid(p.Color.GG()))
	s.ctx.SetLineWidth(w)
	s.ctx.SetLineJoin(s.LineJoin)
	s.ctx.SetLineCap(gg.LineCapRound)
	s.setPath(p.Points, p.Closed)
	return s.ctx.Stroke()
}

// FillConvexPolygon implements overlay.Sink. Polygons with fewer than three
// points draw nothing.
func (s *Sink) FillConvexPolygon(p overlay.FilledConvexPolygon) error {
	if s.closed {
		return ErrClosed
	}
	if len(p.Points) < 3 || p.Color.A() == 0 {
		return nil
	}

	s.ctx.SetFillBrush(gg.Solid(p.Color.GG()))
	s.ctx.SetFillRule(gg.FillRuleNonZero)
	s.setPath(p.Points, true)
	return s.ctx.Fill()
}

// setPath replaces the current path with pts. Points are already in screen
// space, so the transform is reset first.
func (s *Sink) setPath(pts []gg.Point, closed bool) {
	s.ctx.Identity()
	s.ctx.ClearPath()
	s.ctx.MoveTo(pts[0].X, pts[0].Y)
	for _, pt := range pts[1:] {
		s.ctx.LineTo(pt.X, pt.Y)
	}
	if closed {
		s.ctx.ClosePath()
	}
}

// Image returns the rendered image.
func (s *Sink) Image() image.Image {
	return s.ctx.Image()
}

// SavePNG saves the rendered image as PNG.
func (s *Sink) SavePNG(path string) error {
	return s.ctx.SavePNG(path)
}

// WriteTo writes the rendered image as PNG to w.
func (s *Sink) WriteTo(w io.Writer) (int64, error) {
	cw := &countingWriter{w: w}
	err := png.Encode(cw, s.ctx.Image())
	return cw.n, err
}

// Close releases the drawing context. It is safe to call more than once.
func (s *Sink) Close() error {
	if s.closed {
		return nil
	}
	s.closed = true
	return s.ctx.Close()
}

// countingWriter wraps an io.Writer and counts bytes written.
type countingWriter struct {
	w io.Writer
	n int64
}

func (cw *countingWriter) Write(p []byte) (int, error) {
	n, err := cw.w.Write(p)
	cw.n += int64(n)
	return n, err
}
