package overlay

import (
	"math"

	"github.com/gogpu/gg"
)

// convexityEpsilon is the tolerance for cross product comparisons.
// Values below this threshold are treated as zero (collinear edges).
const convexityEpsilon = 1e-10

// ConvexityResult provides detailed convexity analysis of a polygon.
type ConvexityResult struct {
	// Convex is true if the polygon is strictly convex (all turns in the same direction).
	Convex bool

	// Winding is +1 for counter-clockwise, -1 for clockwise (in a Y-up frame),
	// 0 for degenerate polygons.
	Winding int

	// NumPoints is the number of points analyzed.
	NumPoints int
}

// IsConvex checks if a closed sequence of points forms a convex polygon.
// Degenerate input (fewer than 3 points, all collinear) is not convex.
func IsConvex(points []gg.Point) bool {
	return AnalyzeConvexity(points).Convex
}

// AnalyzeConvexity performs detailed convexity analysis of a polygon.
//
// The polygon is considered closed (last point connects back to first).
// All cross products of consecutive edge vectors must share a sign;
// collinear edges are permitted and do not break convexity. Loops that turn
// the same way but wind more than once, such as a pentagram, are rejected:
// a convex loop reverses its X and Y directions at most twice each.
func AnalyzeConvexity(points []gg.Point) ConvexityResult {
	n := len(points)
	result := ConvexityResult{NumPoints: n}
	if n < 3 {
		return result
	}

	var positiveCount, negativeCount int
	for i := 0; i < n; i++ {
		cross := orient(points[i], points[(i+1)%n], points[(i+2)%n])
		if cross > convexityEpsilon {
			positiveCount++
		} else if cross < -convexityEpsilon {
			negativeCount++
		}
	}

	if positiveCount == 0 && negativeCount == 0 {
		return result
	}
	if positiveCount > 0 && negativeCount > 0 {
		return result
	}
	if axisFlips(points, true) > 2 || axisFlips(points, false) > 2 {
		return result
	}

	result.Convex = true
	if positiveCount > 0 {
		result.Winding = 1
	} else {
		result.Winding = -1
	}
	return result
}

// axisFlips counts how often the edge direction along X (or Y) reverses
// while walking the closed loop.
func axisFlips(points []gg.Point, alongX bool) int {
	var flips, first, prev int
	for i, a := range points {
		b := points[(i+1)%len(points)]
		d := b.Y - a.Y
		if alongX {
			d = b.X - a.X
		}
		s := 0
		if d > convexityEpsilon {
			s = 1
		} else if d < -convexityEpsilon {
			s = -1
		}
		if s == 0 {
			continue
		}
		if first == 0 {
			first = s
		} else if s != prev {
			flips++
		}
		prev = s
	}
	if prev != first {
		flips++
	}
	return flips
}

// ConvexPieces splits a closed loop into convex polygons that together cover
// the loop's interior, ready to be filled one by one.
//
// Duplicate and collinear vertices are dropped first. A convex loop comes
// back as a single piece. Other simple polygons are ear-clipped and adjacent
// triangles are merged greedily while the union stays convex. When no ear
// can be found (self-intersecting input) the remainder is fanned from its
// centroid, which is exact for loops that are star-shaped about it.
//
// Loops with fewer than three distinct, non-collinear vertices yield nil.
func ConvexPieces(points []gg.Point) [][]gg.Point {
	pts := simplifyLoop(points)
	if len(pts) < 3 {
		return nil
	}
	if IsConvex(pts) {
		return [][]gg.Point{pts}
	}

	sign := 1.0
	if signedArea(pts) < 0 {
		sign = -1
	}
	tris, rest := earClip(pts, sign)

	var pieces [][]gg.Point
	for _, piece := range mergeTriangles(pts, tris, sign) {
		poly := make([]gg.Point, len(piece))
		for i, idx := range piece {
			poly[i] = pts[idx]
		}
		pieces = append(pieces, poly)
	}
	if len(rest) >= 3 {
		pieces = append(pieces, centroidFan(pts, rest)...)
	}
	return pieces
}

// orient returns the z component of (b-a)×(c-a).
func orient(a, b, c gg.Point) float64 {
	return (b.X-a.X)*(c.Y-a.Y) - (b.Y-a.Y)*(c.X-a.X)
}

func samePoint(a, b gg.Point) bool {
	return math.Abs(a.X-b.X) <= convexityEpsilon && math.Abs(a.Y-b.Y) <= convexityEpsilon
}

func signedArea(pts []gg.Point) float64 {
	var sum float64
	for i, p := range pts {
		q := pts[(i+1)%len(pts)]
		sum += p.X*q.Y - q.X*p.Y
	}
	return sum / 2
}

// simplifyLoop drops repeated and collinear vertices, including spikes.
func simplifyLoop(points []gg.Point) []gg.Point {
	out := make([]gg.Point, 0, len(points))
	for _, p := range points {
		if len(out) > 0 && samePoint(out[len(out)-1], p) {
			continue
		}
		out = append(out, p)
	}
	for len(out) > 1 && samePoint(out[0], out[len(out)-1]) {
		out = out[:len(out)-1]
	}

	for changed := true; changed && len(out) >= 3; {
		changed = false
		for i := 0; i < len(out) && len(out) >= 3; i++ {
			prev := out[(i+len(out)-1)%len(out)]
			next := out[(i+1)%len(out)]
			if math.Abs(orient(prev, out[i], next)) <= convexityEpsilon {
				out = append(out[:i], out[i+1:]...)
				changed = true
				i--
			}
		}
	}
	return out
}

// earClip triangulates pts. sign is the polygon's orientation. If clipping
// stalls, the indices still unclipped are returned as rest.
func earClip(pts []gg.Point, sign float64) (tris [][3]int, rest []int) {
	idx := make([]int, len(pts))
	for i := range idx {
		idx[i] = i
	}

	for len(idx) > 3 {
		clipped := false
		for i := range idx {
			a, b, c := idx[(i+len(idx)-1)%len(idx)], idx[i], idx[(i+1)%len(idx)]
			turn := sign * orient(pts[a], pts[b], pts[c])
			if math.Abs(turn) <= convexityEpsilon {
				// Zero-area corner: drop the vertex without emitting anything.
				idx = append(idx[:i], idx[i+1:]...)
				clipped = true
				break
			}
			if turn < 0 || containsOther(pts, idx, a, b, c) {
				continue
			}
			tris = append(tris, [3]int{a, b, c})
			idx = append(idx[:i], idx[i+1:]...)
			clipped = true
			break
		}
		if !clipped {
			return tris, idx
		}
	}
	if len(idx) == 3 && math.Abs(orient(pts[idx[0]], pts[idx[1]], pts[idx[2]])) > convexityEpsilon {
		tris = append(tris, [3]int{idx[0], idx[1], idx[2]})
	}
	return tris, nil
}

// containsOther reports whether any remaining vertex other than the
// triangle's own lies inside or on triangle abc.
func containsOther(pts []gg.Point, idx []int, a, b, c int) bool {
	pa, pb, pc := pts[a], pts[b], pts[c]
	for _, j := range idx {
		if j == a || j == b || j == c {
			continue
		}
		p := pts[j]
		if samePoint(p, pa) || samePoint(p, pb) || samePoint(p, pc) {
			continue
		}
		d1, d2, d3 := orient(pa, pb, p), orient(pb, pc, p), orient(pc, pa, p)
		hasNeg := d1 < -convexityEpsilon || d2 < -convexityEpsilon || d3 < -convexityEpsilon
		hasPos := d1 > convexityEpsilon || d2 > convexityEpsilon || d3 > convexityEpsilon
		if !(hasNeg && hasPos) {
			return true
		}
	}
	return false
}

// mergeTriangles greedily joins triangles across shared edges as long as the
// joined polygon stays convex.
func mergeTriangles(pts []gg.Point, tris [][3]int, sign float64) [][]int {
	var pieces [][]int
	buf := make([]gg.Point, 0, 16)

	for _, t := range tris {
		merged := false
		for p := len(pieces) - 1; p >= 0 && !merged; p-- {
			piece := pieces[p]
			for e := 0; e < 3 && !merged; e++ {
				u, v, w := t[(e+1)%3], t[e], t[(e+2)%3]
				at := sharedEdge(piece, u, v)
				if at < 0 {
					continue
				}
				candidate := make([]int, 0, len(piece)+1)
				candidate = append(candidate, piece[:at+1]...)
				candidate = append(candidate, w)
				candidate = append(candidate, piece[at+1:]...)

				buf = buf[:0]
				for _, i := range candidate {
					buf = append(buf, pts[i])
				}
				if r := AnalyzeConvexity(buf); r.Convex && float64(r.Winding) == sign {
					pieces[p] = candidate
					merged = true
				}
			}
		}
		if !merged {
			pieces = append(pieces, []int{t[0], t[1], t[2]})
		}
	}
	return pieces
}

// sharedEdge returns the position i such that piece[i]==u and
// piece[i+1]==v (cyclically), or -1.
func sharedEdge(piece []int, u, v int) int {
	for i, a := range piece {
		if a == u && piece[(i+1)%len(piece)] == v {
			return i
		}
	}
	return -1
}

func centroidFan(pts []gg.Point, idx []int) [][]gg.Point {
	var c gg.Point
	for _, i := range idx {
		c = c.Add(pts[i])
	}
	c = c.Div(float64(len(idx)))

	var out [][]gg.Point
	for k, i := range idx {
		a, b := pts[i], pts[idx[(k+1)%len(idx)]]
		if math.Abs(orient(c, a, b)) <= convexityEpsilon {
			continue
		}
		out = append(out, []gg.Point{c, a, b})
	}
	return out
}
