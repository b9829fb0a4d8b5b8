package overlay

import (
	"log/slog"
	"time"
)

// PolylineOption configures a Polyline (or an Annulus) during creation.
//
// Example:
//
//	pl := overlay.NewPolylineLoop(pts, red, 2,
//	    overlay.WithInsideColor(green),
//	    overlay.WithDeadTime(time.Now().Add(5*time.Second)),
//	)
type PolylineOption func(*Polyline)

// WithInsideColor sets the color used while the reference is inside.
func WithInsideColor(c Color) PolylineOption {
	return func(pl *Polyline) {
		pl.InsideColor = c
	}
}

// WithFillMode sets whether the shape is filled (the default) or drawn as a
// band of its thickness only.
func WithFillMode(fill bool) PolylineOption {
	return func(pl *Polyline) {
		pl.Fill = fill
	}
}

// WithFillLoops supplies explicit fill loops. A nil or empty slice still
// counts as present: nothing is derived from the border loops then.
func WithFillLoops(loops [][]Vec3) PolylineOption {
	return func(pl *Polyline) {
		pl.SetFillLoops(loops)
	}
}

// WithTag sets the informational shape tag.
func WithTag(tag ShapeTag) PolylineOption {
	return func(pl *Polyline) {
		pl.Tag = tag
	}
}

// WithDeadTime sets the time after which the shape is disposed.
func WithDeadTime(t time.Time) PolylineOption {
	return func(pl *Polyline) {
		pl.DeadTime = t
	}
}

// WithAlphaRatio sets the global transparency factor, clamped to [0, 1].
func WithAlphaRatio(r float64) PolylineOption {
	return func(pl *Polyline) {
		pl.AlphaRatio = clampUnit(r)
	}
}

// WithAnimationRatio sets the pulse factor, clamped to [0, 1].
func WithAnimationRatio(r float64) PolylineOption {
	return func(pl *Polyline) {
		pl.AnimationRatio = clampUnit(r)
	}
}

// WithOpenLoops strokes border loops as open polylines instead of closing
// them back to their first point.
func WithOpenLoops() PolylineOption {
	return func(pl *Polyline) {
		pl.closed = false
	}
}

// ManagerOption configures a Manager during creation.
type ManagerOption func(*Manager)

// WithManagerLogger makes the manager log through l instead of the
// package logger.
func WithManagerLogger(l *slog.Logger) ManagerOption {
	return func(m *Manager) {
		m.logger = l
	}
}

func clampUnit(v float64) float64 {
	switch {
	case v != v || v < 0:
		return 0
	case v > 1:
		return 1
	}
	return v
}
