// Package overlay turns world-space 3D shapes into 2D overlay primitives,
// updated every frame on top of a live 3D scene.
//
// # Overview
//
// A shape holds loops of world positions. Once per frame a Manager ticks
// every shape: expired shapes are disposed, generated shapes such as Annulus
// rebuild their loops, and each shape picks its display color depending on
// whether a tracked reference position lies inside it. Once per render pass
// the Manager asks every shape for primitives: loops are projected to the
// screen through a Projector, borders become StrokedPolyline primitives and
// fills are split into FilledConvexPolygon pieces. A Sink consumes them.
//
// # Quick Start
//
//	m := overlay.NewManager()
//	ring := overlay.NewAnnulus(overlay.Vec3{0, 0, 0}, 5, 3, overlay.PackRGBA(255, 64, 0, 96), 2, nil,
//	    overlay.WithInsideColor(overlay.PackRGBA(0, 200, 0, 96)),
//	)
//	_ = m.Add(ring)
//
//	// every frame
//	m.Tick(overlay.Frame{Now: time.Now(), Reference: player, HasReference: true})
//	_ = m.Render(overlay.Pass{Projector: cam, Cursor: cursor}, sink)
//
// # Coordinate System
//
// World space has +Y up; the ground plane is XZ and containment of the
// reference position is tested there. Arcs are sampled in the horizontal
// plane through their center, angle 0 along +X, growing towards +Z.
// Screen space is gg's: origin top-left, Y down.
//
// # Rasterization
//
// overlay never draws pixels. The sink/raster package renders primitives
// with gg, sink/vector with ebiten. The camera package provides a
// perspective Projector.
package overlay
