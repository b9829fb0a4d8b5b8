package overlay

import "github.com/gogpu/gg"

// Projector maps world positions to screen positions. It owns all camera
// math and off-screen handling; overlay treats it as opaque.
//
// thicknessOffset asks for the projector's thickness-offset variant of the
// point (used for the pulse ring). clipBehind asks the projector to clip
// points that are behind the camera instead of folding them back in view.
type Projector interface {
	Project(p Vec3, thicknessOffset, clipBehind bool) gg.Point
}

// LoopProjector is implemented by projectors that can project a whole loop
// at once more cheaply than point by point.
type LoopProjector interface {
	Projector
	ProjectLoop(loop []Vec3, thicknessOffset, clipBehind bool) []gg.Point
}

// ProjectorFunc adapts a plain function to the Projector interface.
type ProjectorFunc func(p Vec3, thicknessOffset, clipBehind bool) gg.Point

// Project calls f.
func (f ProjectorFunc) Project(p Vec3, thicknessOffset, clipBehind bool) gg.Point {
	return f(p, thicknessOffset, clipBehind)
}

// ProjectLoop projects every point of loop, using the batched path when pr
// implements LoopProjector.
func ProjectLoop(pr Projector, loop []Vec3, thicknessOffset, clipBehind bool) []gg.Point {
	if lp, ok := pr.(LoopProjector); ok {
		return lp.ProjectLoop(loop, thicknessOffset, clipBehind)
	}
	out := make([]gg.Point, len(loop))
	for i, p := range loop {
		out[i] = pr.Project(p, thicknessOffset, clipBehind)
	}
	return out
}

// TopDown is a Projector that looks straight down the Y axis: world X maps
// to screen X and world Z to screen Y, scaled and shifted. The thickness
// offset and behind-camera flags have no meaning for it and are ignored.
type TopDown struct {
	Origin gg.Point // screen position of the world origin
	Scale  float64  // pixels per world unit
}

// Project implements Projector.
func (t TopDown) Project(p Vec3, _, _ bool) gg.Point {
	return gg.Pt(t.Origin.X+p[0]*t.Scale, t.Origin.Y+p[2]*t.Scale)
}
