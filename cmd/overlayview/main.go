// Command overlayview shows an overlay scene file in a window and reloads
// it whenever the file changes.
//
// WASD moves the reference subject on the ground plane, the mouse hovers
// shapes and Space toggles the pulse animation.
package main

import (
	"context"
	"flag"
	"fmt"
	"image/color"
	"log"
	"log/slog"
	"math"
	"os"
	"time"

	"github.com/gogpu/gg"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/gogpu/overlay"
	"github.com/gogpu/overlay/scenefile"
	overlayvector "github.com/gogpu/overlay/sink/vector"
)

const (
	moveSpeed   = 4.0 // world units per second
	pulsePeriod = 1500 * time.Millisecond
	maxDelta    = 0.1
)

type animated interface {
	SetAnimationRatio(r float64)
}

type hoverable interface {
	CursorInside() bool
}

type viewer struct {
	manager   *overlay.Manager
	sink      *overlayvector.Sink
	projector overlay.Projector
	width     int
	height    int
	scale     float64

	reference overlay.Vec3
	pulse     bool
	hovered   int

	reloads    <-chan *scenefile.Scene
	lastUpdate time.Time
	start      time.Time
}

func (v *viewer) load(s *scenefile.Scene, now time.Time) {
	v.manager.Clear()
	for _, shape := range s.Build(now) {
		if err := v.manager.Add(shape); err != nil {
			log.Printf("Skipping shape: %v", err)
		}
	}
	if ref, ok := s.ReferencePosition(); ok {
		v.reference = ref
	}
	v.projector = overlay.TopDown{Origin: gg.Pt(float64(v.width)/2, float64(v.height)/2), Scale: v.scale}
	if cam := s.NewCamera(); cam != nil {
		cam.Width, cam.Height = v.width, v.height
		v.projector = cam
	}
}

func (v *viewer) Update() error {
	now := time.Now()
	dt := min(now.Sub(v.lastUpdate).Seconds(), maxDelta)
	v.lastUpdate = now

	select {
	case s := <-v.reloads:
		v.load(s, now)
		log.Printf("Scene reloaded (%d shapes)", v.manager.Len())
	default:
	}

	step := moveSpeed * dt
	if ebiten.IsKeyPressed(ebiten.KeyW) {
		v.reference[2] -= step
	}
	if ebiten.IsKeyPressed(ebiten.KeyS) {
		v.reference[2] += step
	}
	if ebiten.IsKeyPressed(ebiten.KeyA) {
		v.reference[0] -= step
	}
	if ebiten.IsKeyPressed(ebiten.KeyD) {
		v.reference[0] += step
	}
	if inpututil.IsKeyJustPressed(ebiten.KeySpace) {
		v.pulse = !v.pulse
	}

	ratio := 0.0
	if v.pulse {
		ratio = math.Mod(now.Sub(v.start).Seconds(), pulsePeriod.Seconds()) / pulsePeriod.Seconds()
	}
	for _, shape := range v.manager.Shapes() {
		if s, ok := shape.(animated); ok {
			s.SetAnimationRatio(ratio)
		}
	}

	v.manager.Tick(overlay.Frame{Now: now, Reference: v.reference, HasReference: true})
	return nil
}

func (v *viewer) Draw(screen *ebiten.Image) {
	screen.Fill(color.NRGBA{R: 0x20, G: 0x20, B: 0x20, A: 0xff})

	x, y := ebiten.CursorPosition()
	v.sink.SetTarget(screen)
	if err := v.manager.Render(overlay.Pass{Projector: v.projector, Cursor: gg.Pt(float64(x), float64(y))}, v.sink); err != nil {
		log.Printf("Render failed: %v", err)
	}

	v.hovered = 0
	for _, shape := range v.manager.Shapes() {
		if s, ok := shape.(hoverable); ok && s.CursorInside() {
			v.hovered++
		}
	}

	ref := v.projector.Project(v.reference, false, true)
	vector.DrawFilledCircle(screen, float32(ref.X), float32(ref.Y), 5, color.White, true)

	ebitenutil.DebugPrint(screen, fmt.Sprintf("shapes: %d  hovered: %d  reference: (%.1f, %.1f)  pulse: %v",
		v.manager.Len(), v.hovered, v.reference[0], v.reference[2], v.pulse))
}

func (v *viewer) Layout(_, _ int) (int, int) {
	return v.width, v.height
}

func main() {
	var (
		scene   = flag.String("scene", "scene.toml", "scene file")
		width   = flag.Int("width", 1024, "window width")
		height  = flag.Int("height", 768, "window height")
		scale   = flag.Float64("scale", 20, "pixels per world unit for top-down scenes")
		verbose = flag.Bool("v", false, "log debug output")
	)
	flag.Parse()

	if *verbose {
		overlay.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug})))
	}

	s, err := scenefile.LoadFile(*scene)
	if err != nil {
		log.Fatalf("Failed to load scene: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	reloads := make(chan *scenefile.Scene, 1)
	go func() {
		err := scenefile.Watch(ctx, *scene, func(s *scenefile.Scene, err error) {
			if err != nil {
				log.Printf("Reload failed: %v", err)
				return
			}
			// Keep only the newest scene.
			select {
			case <-reloads:
			default:
			}
			reloads <- s
		})
		if err != nil {
			log.Printf("Hot reload disabled: %v", err)
		}
	}()

	now := time.Now()
	v := &viewer{
		manager:    overlay.NewManager(),
		sink:       overlayvector.New(nil),
		width:      *width,
		height:     *height,
		scale:      *scale,
		reloads:    reloads,
		lastUpdate: now,
		start:      now,
	}
	v.load(s, now)

	ebiten.SetWindowSize(*width, *height)
	ebiten.SetWindowTitle("Overlay - " + *scene)
	if err := ebiten.RunGame(v); err != nil {
		log.Fatal(err)
	}
}
