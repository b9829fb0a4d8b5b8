package overlay

import (
	"time"

	"github.com/gogpu/gg"
)

// Frame is the read-only snapshot handed to every shape on a tick.
type Frame struct {
	// Now is the frame time used for expiry.
	Now time.Time

	// Reference is the world position of the tracked subject. It is only
	// meaningful when HasReference is set; otherwise nothing counts as
	// inside any shape this frame.
	Reference    Vec3
	HasReference bool
}

// Pass is the read-only snapshot handed to every shape on a render pass.
type Pass struct {
	Projector Projector
	Cursor    gg.Point
}

// Lifecycler is the per-frame lifecycle capability of a shape.
type Lifecycler interface {
	// Tick advances the shape by one frame.
	Tick(f Frame)
	// Expired reports whether the shape's dead time has passed at now.
	Expired(now time.Time) bool
	// Dispose stops the shape for good. Calling it again is a no-op.
	Dispose()
	// Disposed reports whether Dispose has run.
	Disposed() bool
}

// Geometry is the capability of regenerating loops and turning them into
// screen-space primitives.
type Geometry interface {
	// Recompute regenerates the shape's loops from its parameters.
	Recompute()
	// AppendPrimitives appends this pass's primitives to dst.
	AppendPrimitives(dst []Primitive, p Pass) []Primitive
}

// Shape is a managed overlay shape. Types outside this package implement
// it by embedding Lifecycle (directly or through Polyline).
type Shape interface {
	Lifecycler
	Geometry

	subscribe(unsubscribe func()) bool
}

// Lifecycle implements the enable flag, expiry and disposal shared by every
// shape. The zero value is enabled, never expires and is not subscribed to
// any tick feed.
type Lifecycle struct {
	// DeadTime is when the shape expires. The zero time means never.
	DeadTime time.Time

	disabled    bool
	disposed    bool
	unsubscribe func()
	cleanup     []func()
}

// Enabled reports whether the shape updates and renders.
func (l *Lifecycle) Enabled() bool { return !l.disabled }

// SetEnabled turns per-frame updates and rendering on or off.
func (l *Lifecycle) SetEnabled(enabled bool) { l.disabled = !enabled }

// Expired reports whether DeadTime is set and now is past it.
func (l *Lifecycle) Expired(now time.Time) bool {
	return !l.DeadTime.IsZero() && now.After(l.DeadTime)
}

// Disposed reports whether Dispose has run.
func (l *Lifecycle) Disposed() bool { return l.disposed }

// OnDispose registers fn to run once when the shape is disposed.
// Hooks run in registration order.
func (l *Lifecycle) OnDispose(fn func()) {
	l.cleanup = append(l.cleanup, fn)
}

// Dispose unsubscribes the shape from its tick feed and runs the cleanup
// hooks. Only the first call has any effect.
func (l *Lifecycle) Dispose() {
	if l.disposed {
		return
	}
	l.disposed = true
	if l.unsubscribe != nil {
		l.unsubscribe()
		l.unsubscribe = nil
	}
	for _, fn := range l.cleanup {
		fn()
	}
	l.cleanup = nil
}

// Step runs one frame of the lifecycle: a disposed shape does nothing, an
// expired one is disposed, a disabled one is skipped, otherwise update runs.
// Step reports whether update ran.
func (l *Lifecycle) Step(now time.Time, update func()) bool {
	if l.disposed {
		return false
	}
	if l.Expired(now) {
		Logger().Debug("overlay: shape expired", "deadTime", l.DeadTime, "now", now)
		l.Dispose()
		return false
	}
	if l.disabled {
		return false
	}
	update()
	return true
}

func (l *Lifecycle) subscribe(unsubscribe func()) bool {
	if l.disposed || l.unsubscribe != nil {
		return false
	}
	l.unsubscribe = unsubscribe
	return true
}
