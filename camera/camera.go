// Package camera provides a perspective overlay.Projector built on mathgl.
package camera

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/gogpu/gg"

	"github.com/gogpu/overlay"
)

// Offscreen is where clipped points are sent: far enough outside any
// viewport that strokes through it leave the screen.
var Offscreen = gg.Pt(-1e7, -1e7)

// Camera is a pinhole camera looking from Eye towards Target.
//
// Screen coordinates have their origin at the top-left corner with Y
// growing downwards, matching gg and ebiten.
type Camera struct {
	Eye, Target, Up overlay.Vec3

	FovY      float64 // vertical field of view in radians
	Near, Far float64

	Width, Height int // viewport size in pixels

	// OffsetLift is how far (world units, along +Y) thickness-offset points
	// are raised above the ground.
	OffsetLift float64
}

var _ overlay.LoopProjector = (*Camera)(nil)

// New returns a camera with a 60° field of view, a +Y up vector and
// near/far planes suited to scenes measured in meters.
func New(eye, target overlay.Vec3, width, height int) *Camera {
	return &Camera{
		Eye:        eye,
		Target:     target,
		Up:         overlay.Vec3{0, 1, 0},
		FovY:       mgl64.DegToRad(60),
		Near:       0.1,
		Far:        1000,
		Width:      width,
		Height:     height,
		OffsetLift: 0.05,
	}
}

// View returns the world-to-view matrix.
func (c *Camera) View() mgl64.Mat4 {
	return mgl64.LookAtV(c.Eye, c.Target, c.Up)
}

// Projection returns the view-to-clip matrix.
func (c *Camera) Projection() mgl64.Mat4 {
	aspect := 1.0
	if c.Height > 0 {
		aspect = float64(c.Width) / float64(c.Height)
	}
	return mgl64.Perspective(c.FovY, aspect, c.Near, c.Far)
}

// Project implements overlay.Projector.
//
// Points closer than the near plane, including those behind the camera,
// are moved onto the near plane so loops crossing the camera stay
// connected. With clipBehind they are sent to Offscreen instead.
func (c *Camera) Project(p overlay.Vec3, thicknessOffset, clipBehind bool) gg.Point {
	return c.project(c.View(), c.Projection(), p, thicknessOffset, clipBehind)
}

// ProjectLoop implements overlay.LoopProjector. The matrices are built once
// for the whole loop.
func (c *Camera) ProjectLoop(loop []overlay.Vec3, thicknessOffset, clipBehind bool) []gg.Point {
	view, proj := c.View(), c.Projection()
	out := make([]gg.Point, len(loop))
	for i, p := range loop {
		out[i] = c.project(view, proj, p, thicknessOffset, clipBehind)
	}
	return out
}

func (c *Camera) project(view, proj mgl64.Mat4, p overlay.Vec3, thicknessOffset, clipBehind bool) gg.Point {
	if thicknessOffset {
		p[1] += c.OffsetLift
	}
	v := view.Mul4x1(p.Vec4(1))
	// The camera looks down -Z in view space.
	if depth := -v[2]; depth < c.Near {
		if clipBehind {
			return Offscreen
		}
		v[2] = -c.Near
	}
	clip := proj.Mul4x1(v)
	if clip[3] == 0 || math.IsNaN(clip[3]) {
		return Offscreen
	}
	x, y := clip[0]/clip[3], clip[1]/clip[3]
	return gg.Pt(
		(x+1)/2*float64(c.Width),
		(1-y)/2*float64(c.Height),
	)
}
