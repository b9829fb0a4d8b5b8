// Command overlaypng renders an overlay scene file to a PNG image.
//
// Scenes with a [camera] section are rendered through it; others are drawn
// top-down with the world origin at the image center.
package main

import (
	"flag"
	"log"
	"log/slog"
	"os"
	"time"

	"github.com/gogpu/gg"

	"github.com/gogpu/overlay"
	"github.com/gogpu/overlay/scenefile"
	"github.com/gogpu/overlay/sink/raster"
)

func main() {
	var (
		scene      = flag.String("scene", "scene.toml", "scene file")
		output     = flag.String("output", "overlay.png", "output file")
		width      = flag.Int("width", 800, "image width for top-down scenes")
		height     = flag.Int("height", 600, "image height for top-down scenes")
		scale      = flag.Float64("scale", 20, "pixels per world unit for top-down scenes")
		background = flag.String("background", "#202020", "background color")
		elapsed    = flag.Duration("at", 0, "time since the scene was built")
		verbose    = flag.Bool("v", false, "log debug output")
	)
	flag.Parse()

	if *verbose {
		overlay.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug})))
	}

	bg, err := overlay.ParseColor(*background)
	if err != nil {
		log.Fatalf("Invalid background: %v", err)
	}
	s, err := scenefile.LoadFile(*scene)
	if err != nil {
		log.Fatalf("Failed to load scene: %v", err)
	}

	start := time.Now()
	m := overlay.NewManager()
	for _, shape := range s.Build(start) {
		if err := m.Add(shape); err != nil {
			log.Fatalf("Failed to add shape: %v", err)
		}
	}
	ref, hasRef := s.ReferencePosition()
	m.Tick(overlay.Frame{Now: start.Add(*elapsed), Reference: ref, HasReference: hasRef})

	var proj overlay.Projector = overlay.TopDown{
		Origin: gg.Pt(float64(*width)/2, float64(*height)/2),
		Scale:  *scale,
	}
	w, h := *width, *height
	if cam := s.NewCamera(); cam != nil {
		proj, w, h = cam, cam.Width, cam.Height
	}

	sink := raster.New(w, h)
	defer sink.Close()
	sink.Clear(bg)
	if err := m.Render(overlay.Pass{Projector: proj}, sink); err != nil {
		log.Fatalf("Failed to render: %v", err)
	}
	if err := sink.SavePNG(*output); err != nil {
		log.Fatalf("Failed to save: %v", err)
	}

	log.Printf("Overlay saved to %s (%dx%d, %d shapes)\n", *output, w, h, m.Len())
}
