// Package scenefile loads overlay scenes from TOML.
//
// A scene describes an optional camera, an optional reference position and
// any number of polylines and annuli:
//
//	[camera]
//	eye = [0, 12, -12]
//	target = [0, 0, 0]
//	fov = 60
//	width = 800
//	height = 600
//
//	[[polyline]]
//	color = "#ff000080"
//	inside_color = "lime"
//	thickness = 2
//	lifetime = "10s"
//	loops = [[[0, 0, 0], [4, 0, 0], [4, 0, 4], [0, 0, 4]]]
//
//	[[annulus]]
//	center = [0, 0, 0]
//	radius_a = 5
//	radius_b = 3
//	color = "orange"
//	spans = [{ start = 0, sweep = 90 }]
//
// Colors are hex strings or CSS color names, angles are degrees and
// lifetimes are Go durations counted from the moment the scene is built.
package scenefile

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/pelletier/go-toml/v2"

	"github.com/gogpu/overlay"
	"github.com/gogpu/overlay/camera"
)

// ErrInvalidScene is wrapped by every validation error.
var ErrInvalidScene = errors.New("scenefile: invalid scene")

// Scene is the decoded content of a scene file.
type Scene struct {
	Camera    *CameraSpec    `toml:"camera"`
	Reference *overlay.Vec3  `toml:"reference"`
	Polylines []PolylineSpec `toml:"polyline"`
	Annuli    []AnnulusSpec  `toml:"annulus"`
}

// CameraSpec describes a perspective camera.
type CameraSpec struct {
	Eye        overlay.Vec3 `toml:"eye"`
	Target     overlay.Vec3 `toml:"target"`
	Fov        float64      `toml:"fov"` // degrees, default 60
	Width      int          `toml:"width"`
	Height     int          `toml:"height"`
	OffsetLift *float64     `toml:"offset_lift"`
}

// ShapeSpec holds the settings shared by polylines and annuli.
type ShapeSpec struct {
	Color       overlay.Color    `toml:"color"`
	InsideColor *overlay.Color   `toml:"inside_color"`
	Thickness   float64          `toml:"thickness"`
	Fill        *bool            `toml:"fill"`
	Tag         overlay.ShapeTag `toml:"tag"`
	Lifetime    Duration         `toml:"lifetime"`
	Alpha       *float64         `toml:"alpha"`
	Animation   float64          `toml:"animation"`
	Disabled    bool             `toml:"disabled"`
}

// PolylineSpec describes an overlay.Polyline.
type PolylineSpec struct {
	ShapeSpec
	Loops     [][]overlay.Vec3 `toml:"loops"`
	FillLoops [][]overlay.Vec3 `toml:"fill_loops"`
	Open      bool             `toml:"open"`
}

// AnnulusSpec describes an overlay.Annulus.
type AnnulusSpec struct {
	ShapeSpec
	Center  overlay.Vec3 `toml:"center"`
	RadiusA float64      `toml:"radius_a"`
	RadiusB float64      `toml:"radius_b"`
	Spans   []SpanSpec   `toml:"spans"`
}

// SpanSpec is an arc span in degrees.
type SpanSpec struct {
	Start float64 `toml:"start"`
	Sweep float64 `toml:"sweep"`
}

// Duration is a time.Duration written as a string such as "1m30s".
type Duration time.Duration

// UnmarshalText implements encoding.TextUnmarshaler.
func (d *Duration) UnmarshalText(text []byte) error {
	v, err := time.ParseDuration(string(text))
	if err != nil {
		return err
	}
	*d = Duration(v)
	return nil
}

// MarshalText implements encoding.TextMarshaler.
func (d Duration) MarshalText() ([]byte, error) {
	return []byte(time.Duration(d).String()), nil
}

// Load decodes and validates a scene. Unknown keys are rejected.
func Load(r io.Reader) (*Scene, error) {
	dec := toml.NewDecoder(r)
	dec.DisallowUnknownFields()

	var s Scene
	if err := dec.Decode(&s); err != nil {
		var derr *toml.DecodeError
		if errors.As(err, &derr) {
			row, col := derr.Position()
			return nil, fmt.Errorf("scenefile: line %d column %d: %w", row, col, err)
		}
		return nil, fmt.Errorf("scenefile: %w", err)
	}
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return &s, nil
}

// LoadFile reads and decodes the scene at path.
func LoadFile(path string) (*Scene, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("scenefile: %w", err)
	}
	s, err := Load(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return s, nil
}

// Validate reports the first semantic error in s.
func (s *Scene) Validate() error {
	if c := s.Camera; c != nil {
		if c.Width <= 0 || c.Height <= 0 {
			return fmt.Errorf("%w: camera size %dx%d", ErrInvalidScene, c.Width, c.Height)
		}
		if c.Eye == c.Target {
			return fmt.Errorf("%w: camera eye and target coincide", ErrInvalidScene)
		}
		if c.Fov < 0 || c.Fov >= 180 {
			return fmt.Errorf("%w: camera fov %g", ErrInvalidScene, c.Fov)
		}
	}
	for i, p := range s.Polylines {
		if err := p.ShapeSpec.validate(); err != nil {
			return fmt.Errorf("%w: polyline %d: %v", ErrInvalidScene, i, err)
		}
	}
	for i, a := range s.Annuli {
		if err := a.ShapeSpec.validate(); err != nil {
			return fmt.Errorf("%w: annulus %d: %v", ErrInvalidScene, i, err)
		}
	}
	return nil
}

func (s *ShapeSpec) validate() error {
	if s.Lifetime < 0 {
		return fmt.Errorf("negative lifetime %s", time.Duration(s.Lifetime))
	}
	if s.Alpha != nil && (*s.Alpha < 0 || *s.Alpha > 1) {
		return fmt.Errorf("alpha %g outside [0, 1]", *s.Alpha)
	}
	if s.Animation < 0 || s.Animation > 1 {
		return fmt.Errorf("animation %g outside [0, 1]", s.Animation)
	}
	return nil
}

// Build creates the scene's shapes, polylines first. Lifetimes are counted
// from now.
func (s *Scene) Build(now time.Time) []overlay.Shape {
	shapes := make([]overlay.Shape, 0, len(s.Polylines)+len(s.Annuli))
	for _, p := range s.Polylines {
		opts := p.options(now)
		if p.FillLoops != nil {
			opts = append(opts, overlay.WithFillLoops(p.FillLoops))
		}
		if p.Open {
			opts = append(opts, overlay.WithOpenLoops())
		}
		pl := overlay.NewPolyline(p.Loops, p.Color, p.Thickness, opts...)
		pl.SetEnabled(!p.Disabled)
		shapes = append(shapes, pl)
	}
	for _, a := range s.Annuli {
		spans := make([]overlay.ArcSpan, len(a.Spans))
		for i, sp := range a.Spans {
			spans[i] = overlay.ArcSpan{Start: mgl64.DegToRad(sp.Start), Sweep: mgl64.DegToRad(sp.Sweep)}
		}
		an := overlay.NewAnnulus(a.Center, a.RadiusA, a.RadiusB, a.Color, a.Thickness, spans, a.options(now)...)
		an.SetEnabled(!a.Disabled)
		shapes = append(shapes, an)
	}
	return shapes
}

func (s *ShapeSpec) options(now time.Time) []overlay.PolylineOption {
	var opts []overlay.PolylineOption
	if s.InsideColor != nil {
		opts = append(opts, overlay.WithInsideColor(*s.InsideColor))
	}
	if s.Fill != nil {
		opts = append(opts, overlay.WithFillMode(*s.Fill))
	}
	if s.Tag != overlay.TagNone {
		opts = append(opts, overlay.WithTag(s.Tag))
	}
	if s.Lifetime > 0 {
		opts = append(opts, overlay.WithDeadTime(now.Add(time.Duration(s.Lifetime))))
	}
	if s.Alpha != nil {
		opts = append(opts, overlay.WithAlphaRatio(*s.Alpha))
	}
	if s.Animation != 0 {
		opts = append(opts, overlay.WithAnimationRatio(s.Animation))
	}
	return opts
}

// NewCamera returns the scene's camera, or nil when it has none.
func (s *Scene) NewCamera() *camera.Camera {
	if s.Camera == nil {
		return nil
	}
	c := camera.New(s.Camera.Eye, s.Camera.Target, s.Camera.Width, s.Camera.Height)
	if s.Camera.Fov > 0 {
		c.FovY = mgl64.DegToRad(s.Camera.Fov)
	}
	if s.Camera.OffsetLift != nil {
		c.OffsetLift = *s.Camera.OffsetLift
	}
	return c
}

// ReferencePosition returns the scene's reference position, if it has one.
func (s *Scene) ReferencePosition() (overlay.Vec3, bool) {
	if s.Reference == nil {
		return overlay.Vec3{}, false
	}
	return *s.Reference, true
}
