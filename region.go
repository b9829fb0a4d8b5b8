package overlay

import "github.com/gogpu/gg"

// RegionContains reports whether pt lies inside the compound region formed
// by loops. All loops are treated as one region under the even-odd rule: pt
// is inside when an odd number of loops enclose it, so an inner loop cuts a
// hole into an outer one.
//
// Edges are half-open. A point on an edge at the minimum X or minimum Y side
// of a loop is inside, on a maximum side it is outside; shared edges between
// adjacent loops are never counted twice. Loops with fewer than three points
// enclose nothing.
func RegionContains(pt gg.Point, loops [][]gg.Point) bool {
	return regionContains(loops, pt.X, pt.Y, func(p gg.Point) (float64, float64) {
		return p.X, p.Y
	})
}

// RegionContains3 is RegionContains for world-space loops, evaluated on the
// ground (XZ) plane. The Y coordinate of p and of the loops is ignored.
func RegionContains3(p Vec3, loops [][]Vec3) bool {
	return regionContains(loops, p[0], p[2], func(v Vec3) (float64, float64) {
		return v[0], v[2]
	})
}

func regionContains[P any](loops [][]P, x, y float64, xy func(P) (float64, float64)) bool {
	inside := false
	for _, loop := range loops {
		if len(loop) < 3 {
			continue
		}
		xj, yj := xy(loop[len(loop)-1])
		for _, p := range loop {
			xi, yi := xy(p)
			if (yi > y) != (yj > y) && x < (xj-xi)*(y-yi)/(yj-yi)+xi {
				inside = !inside
			}
			xj, yj = xi, yi
		}
	}
	return inside
}
