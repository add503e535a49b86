// polyview - software 3D mesh viewer for the terminal.
// Renders PLY, OBJ and GLTF meshes with a CPU rasterizer and presents
// them as half-block cells, no GPU involved.
//
// Controls:
//
//	A/D    - Slow down / speed up the turntable
//	Space  - Random spin impulse
//	R      - Reset the turntable
//	Esc    - Quit
package main

import (
	"flag"
	"fmt"
	"math"
	"math/rand"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/harmonica"

	"polyview/pkg/math3d"
	"polyview/pkg/models"
	"polyview/pkg/render"
	"polyview/pkg/scene"
)

var (
	bgColor = flag.String("bg", "30,30,40", "Background color (R,G,B)")
	outPath = flag.String("o", "render.png", "Output path for still export (fps 0)")
)

const (
	defaultFPS  = 30
	meshTarget  = 5.0 // largest dimension after size normalization
	meshDist    = 4.0 // object distance from the camera
	stillSize   = 750 // still-export buffer edge, pixels
	baseSpinDeg = 20.0
)

func main() {
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "polyview - terminal 3D mesh viewer\n\n")
		fmt.Fprintf(os.Stderr, "Usage: polyview [options] <mesh-file> [fps] [scale]\n\n")
		fmt.Fprintf(os.Stderr, "  fps    target frame rate, default %d; 0 renders one frame to a PNG\n", defaultFPS)
		fmt.Fprintf(os.Stderr, "  scale  uniform mesh scale; omitted or 0 normalizes the largest\n")
		fmt.Fprintf(os.Stderr, "         dimension to %v\n\n", meshTarget)
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nControls:\n")
		fmt.Fprintf(os.Stderr, "  A/D    - Slow down / speed up the turntable\n")
		fmt.Fprintf(os.Stderr, "  Space  - Random spin impulse\n")
		fmt.Fprintf(os.Stderr, "  R      - Reset the turntable\n")
		fmt.Fprintf(os.Stderr, "  Esc    - Quit\n")
	}
	flag.Parse()

	if flag.NArg() < 1 {
		flag.Usage()
		os.Exit(1)
	}

	if err := run(flag.Args()); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(args []string) error {
	meshPath := args[0]

	fps := defaultFPS
	if len(args) > 1 {
		v, err := strconv.Atoi(args[1])
		if err != nil || v < 0 {
			return fmt.Errorf("fps must be a non-negative integer, got %q", args[1])
		}
		fps = v
	}

	scale := 0.0
	if len(args) > 2 {
		v, err := strconv.ParseFloat(args[2], 64)
		if err != nil || v < 0 {
			return fmt.Errorf("scale must be a non-negative number, got %q", args[2])
		}
		scale = v
	}

	obj, err := models.Load(meshPath)
	if err != nil {
		return fmt.Errorf("load mesh: %w", err)
	}
	if scale > 0 {
		obj.Scale(scale)
	} else {
		obj.NormalizeSize(meshTarget)
	}

	background, err := parseBackground(*bgColor)
	if err != nil {
		return err
	}

	if fps == 0 {
		return renderStill(obj, background)
	}

	fmt.Printf("Loaded: %s (%d vertices, %d faces)\n",
		filepath.Base(meshPath), obj.VertexCount(), obj.FaceCount())

	term, err := render.NewTerminal()
	if err != nil {
		return err
	}
	defer term.Close()

	width, height := term.BufferSize()
	buf := render.NewBuffer(width, height)
	cam := render.NewCamera(math3d.Zero3(), float64(width)/float64(height))

	s := scene.New(obj, cam, newTurntable(fps), term, buf, background, time.Second/time.Duration(fps))
	return s.Run()
}

// parseBackground parses an "R,G,B" triple into a packed 0xRRGGBB
// pixel. Each component must be an integer in 0-255; trailing garbage
// and missing or extra components are rejected.
func parseBackground(s string) (uint32, error) {
	parts := strings.Split(s, ",")
	if len(parts) != 3 {
		return 0, fmt.Errorf("bg must be three comma-separated components, got %q", s)
	}
	var c [3]uint64
	for i, part := range parts {
		v, err := strconv.ParseUint(strings.TrimSpace(part), 10, 8)
		if err != nil {
			return 0, fmt.Errorf("bg component %q must be an integer in 0-255", part)
		}
		c[i] = v
	}
	return uint32(c[0])<<16 | uint32(c[1])<<8 | uint32(c[2]), nil
}

// renderStill is the fps=0 mode: one frame into a square buffer,
// exported as PNG, no terminal taken over.
func renderStill(obj *models.Object, background uint32) error {
	buf := render.NewBuffer(stillSize, stillSize)
	cam := render.NewCamera(math3d.Zero3(), 1)

	s := scene.New(obj, cam, newTurntable(defaultFPS), nil, buf, background, 0)
	if err := s.RenderOnce().SavePNG(*outPath); err != nil {
		return err
	}
	fmt.Printf("Wrote %s\n", *outPath)
	return nil
}

// turntable spins the object around its vertical axis. The spin rate
// springs back toward the baseline after every nudge or impulse, so
// the motion stays smooth with no explicit easing code.
type turntable struct {
	spring  harmonica.Spring
	yaw     float64
	spin    float64 // degrees per second
	spinVel float64 // spring-internal velocity

	lastElapsed time.Duration
}

func newTurntable(fps int) *turntable {
	return &turntable{
		// Critically damped: the spin settles on the baseline without
		// oscillating around it.
		spring: harmonica.NewSpring(harmonica.FPS(fps), 1.5, 1.0),
		spin:   baseSpinDeg,
	}
}

func (t *turntable) Update(elapsed time.Duration, input scene.Input, cam *render.Camera) render.Orientation {
	dt := (elapsed - t.lastElapsed).Seconds()
	t.lastElapsed = elapsed

	switch {
	case input.IsKeyDown(render.KeyR):
		t.yaw = 0
		t.spin = baseSpinDeg
		t.spinVel = 0
	case input.IsKeyDown(render.KeyA):
		t.spin -= 240 * dt
	case input.IsKeyDown(render.KeyD):
		t.spin += 240 * dt
	case input.IsKeyDown(render.KeySpace):
		t.spin += (rand.Float64() - 0.5) * 720
	}

	t.spin, t.spinVel = t.spring.Update(t.spin, t.spinVel, baseSpinDeg)
	t.yaw += t.spin * dt * math.Pi / 180

	return render.Orientation{
		Position: math3d.V3(0, 0, meshDist),
		Rotation: [3]float64{0, t.yaw, -math.Pi / 2},
	}
}
