package overlay

import (
	"errors"
	"log/slog"
)

// Errors returned by Manager.Add.
var (
	ErrNilShape       = errors.New("overlay: nil shape")
	ErrDisposed       = errors.New("overlay: shape is disposed")
	ErrAlreadyManaged = errors.New("overlay: shape is already managed")
)

// Manager owns the active shapes of an overlay and drives them: Tick once per
// frame, then Render (or Primitives) once per render pass.
//
// A shape added to a Manager is subscribed to its ticks until it is disposed,
// either explicitly, through expiry, or by Clear.
//
// The Manager is not safe for concurrent use. Ticks run sequentially in
// insertion order, and a render pass must not overlap a tick.
type Manager struct {
	entries []*entry
	logger  *slog.Logger
}

type entry struct {
	shape  Shape
	active bool
}

// NewManager creates an empty manager.
func NewManager(opts ...ManagerOption) *Manager {
	m := &Manager{}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

func (m *Manager) log() *slog.Logger {
	if m.logger != nil {
		return m.logger
	}
	return Logger()
}

// Add subscribes s to the manager's ticks and render passes.
func (m *Manager) Add(s Shape) error {
	if s == nil {
		return ErrNilShape
	}
	if s.Disposed() {
		return ErrDisposed
	}
	e := &entry{shape: s, active: true}
	if !s.subscribe(func() { e.active = false }) {
		return ErrAlreadyManaged
	}
	m.entries = append(m.entries, e)
	m.log().Debug("overlay: shape added", "shapes", len(m.entries))
	return nil
}

// Len returns the number of subscribed shapes.
func (m *Manager) Len() int {
	n := 0
	for _, e := range m.entries {
		if e.active {
			n++
		}
	}
	return n
}

// Shapes returns the subscribed shapes in insertion order.
func (m *Manager) Shapes() []Shape {
	out := make([]Shape, 0, len(m.entries))
	for _, e := range m.entries {
		if e.active {
			out = append(out, e.shape)
		}
	}
	return out
}

// Tick advances every subscribed shape by one frame. Shapes disposed during
// the frame, by expiry or otherwise, are dropped afterwards.
func (m *Manager) Tick(f Frame) {
	for _, e := range m.entries {
		if e.active {
			e.shape.Tick(f)
		}
	}
	m.compact()
}

// Primitives collects the primitives of every subscribed shape for one pass.
func (m *Manager) Primitives(p Pass) []Primitive {
	var prims []Primitive
	for _, e := range m.entries {
		if e.active {
			prims = e.shape.AppendPrimitives(prims, p)
		}
	}
	return prims
}

// Render collects this pass's primitives and submits them to sink.
func (m *Manager) Render(p Pass, sink Sink) error {
	if err := Submit(sink, m.Primitives(p)); err != nil {
		m.log().Warn("overlay: render failed", "err", err)
		return err
	}
	return nil
}

// Clear disposes every subscribed shape.
func (m *Manager) Clear() {
	for _, e := range m.entries {
		if e.active {
			e.shape.Dispose()
		}
	}
	m.entries = nil
}

func (m *Manager) compact() {
	live := m.entries[:0]
	for _, e := range m.entries {
		if e.active {
			live = append(live, e)
		}
	}
	if dropped := len(m.entries) - len(live); dropped > 0 {
		clear(m.entries[len(live):])
		m.log().Debug("overlay: shapes released", "released", dropped, "shapes", len(live))
	}
	m.entries = live
}
