package overlay

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// Vec3 is a world-space position. +Y is up; the ground plane is XZ.
type Vec3 = mgl64.Vec3

// FullTurn is one complete revolution in radians.
const FullTurn = 2 * math.Pi

// TargetArcLength is the world-space distance aimed for between two
// consecutive samples of an arc.
const TargetArcLength = 1.0

// MaxArcSamples caps the number of samples per arc regardless of radius.
const MaxArcSamples = 72

// SampleCount returns the number of points used to sample an arc of the
// given radius: min(72, round(2π·r / TargetArcLength)).
func SampleCount(radius float64) int {
	radius = math.Abs(radius)
	if math.IsNaN(radius) {
		return 0
	}
	n := math.Round(FullTurn * radius / TargetArcLength)
	if n > MaxArcSamples {
		return MaxArcSamples
	}
	return int(n)
}

// IsFullTurn reports whether sweep is exactly one revolution.
func IsFullTurn(sweep float64) bool {
	return sweep == FullTurn
}

// ArcPoints samples n points on the circle of the given radius around center,
// in the horizontal plane through center, from angle start across sweep.
// Angle 0 points along +X and angles grow towards +Z.
//
// A partial arc includes both of its endpoints. A full turn does not repeat
// its start point: samples are spaced 2π/n apart.
func ArcPoints(center Vec3, radius, start, sweep float64, n int) []Vec3 {
	if n <= 0 {
		return nil
	}
	pts := make([]Vec3, n)
	var step float64
	switch {
	case IsFullTurn(sweep):
		step = sweep / float64(n)
	case n > 1:
		step = sweep / float64(n-1)
	}
	for i := range pts {
		a := start + step*float64(i)
		pts[i] = Vec3{
			center[0] + radius*math.Cos(a),
			center[1],
			center[2] + radius*math.Sin(a),
		}
	}
	return pts
}

// reversed returns a reversed copy of pts.
func reversed(pts []Vec3) []Vec3 {
	out := make([]Vec3, len(pts))
	for i, p := range pts {
		out[len(pts)-1-i] = p
	}
	return out
}
