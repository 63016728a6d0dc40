package main

import (
	"bytes"
	"context"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/taigrr/softras/pkg/math3d"
	"github.com/taigrr/softras/pkg/render"
)

const tetraOBJ = `# tetrahedron
v 0 0.8 0
v -0.8 -0.6 0.5
v 0.8 -0.6 0.5
v 0 -0.6 -0.8
f 1 2 3
f 1 3 4
f 1 4 2
f 2 4 3
`

// workspace writes the test model into a fresh working directory that has
// no config file and hides the user's config directory.
func workspace(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Chdir(dir)
	if err := os.WriteFile("tetra.obj", []byte(tetraOBJ), 0o644); err != nil {
		t.Fatal(err)
	}
	return dir
}

func run(t *testing.T, args ...string) string {
	t.Helper()
	root := newRootCmd()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(append(args, "--log-level=error"))
	if err := root.ExecuteContext(context.Background()); err != nil {
		t.Fatalf("softras %v: %v\n%s", args, err, out.String())
	}
	return out.String()
}

func TestRenderCommand(t *testing.T) {
	dir := workspace(t)

	for _, shader := range []string{"phong", "flat", "posterize", "depth", "cutoff", "wireframe"} {
		t.Run(shader, func(t *testing.T) {
			out := filepath.Join(dir, shader+".ppm")
			run(t, "render", "tetra.obj", "--shader", shader, "--width=64", "--height=48", "-o", out)

			f, err := os.Open(out)
			if err != nil {
				t.Fatal(err)
			}
			defer f.Close()
			c, err := render.DecodePPM(f)
			if err != nil {
				t.Fatal(err)
			}
			if c.Width != 64 || c.Height != 48 {
				t.Errorf("size %dx%d", c.Width, c.Height)
			}
		})
	}
}

func TestRenderPNGAndLines(t *testing.T) {
	dir := workspace(t)
	out := filepath.Join(dir, "lines.png")
	run(t, "render", "tetra.obj", "--lines", "--axes", "--width=32", "--height=32", "-o", out)

	c, err := render.LoadCanvas(out)
	if err != nil {
		t.Fatal(err)
	}
	lit := 0
	for _, p := range c.Pix {
		if p == render.ColorLight {
			lit++
		}
	}
	if lit == 0 {
		t.Error("no edge pixels drawn")
	}
}

func TestRenderErrors(t *testing.T) {
	workspace(t)
	tests := []struct {
		name string
		args []string
	}{
		{"no model", []string{"render"}},
		{"missing model", []string{"render", "nope.obj"}},
		{"unknown format", []string{"render", "tetra.stl"}},
		{"unknown shader", []string{"render", "tetra.obj", "--shader", "raytrace"}},
		{"tangent without normal map", []string{"render", "tetra.obj", "--shader", "tangent"}},
		{"bad output", []string{"render", "tetra.obj", "--width=8", "--height=8", "-o", "out.gif"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			root := newRootCmd()
			root.SetOut(&bytes.Buffer{})
			root.SetErr(&bytes.Buffer{})
			root.SetArgs(append(tt.args, "--log-level=error"))
			if err := root.Execute(); err == nil {
				t.Error("expected error")
			}
		})
	}
}

func TestAnimateCommand(t *testing.T) {
	dir := workspace(t)
	run(t, "animate", "tetra.obj", "--frames=3", "--width=16", "--height=16", "-o", filepath.Join(dir, "spin.ppm"))

	for _, name := range []string{"spin-000.ppm", "spin-001.ppm", "spin-002.ppm"} {
		if _, err := os.Stat(filepath.Join(dir, name)); err != nil {
			t.Errorf("frame %s: %v", name, err)
		}
	}
}

func TestPreviewCommand(t *testing.T) {
	workspace(t)
	out := run(t, "preview", "tetra.obj", "--width=40", "--height=40", "--cols=20", "--rows=10")
	if !strings.Contains(out, "▀") {
		t.Errorf("preview has no half blocks:\n%s", out)
	}
}

func TestConfigCommands(t *testing.T) {
	dir := workspace(t)
	path := filepath.Join(dir, "scene.yaml")

	out := run(t, "config", "init", path)
	if !strings.Contains(out, path) {
		t.Errorf("init output %q", out)
	}

	out = run(t, "config", "show", "--config", path, "--width=320", "--shader=posterize")
	for _, want := range []string{"width: 320", "shader: posterize", "eye: [1, 0.4, 1]"} {
		if !strings.Contains(out, want) {
			t.Errorf("show output missing %q:\n%s", want, out)
		}
	}
}

func TestFramePath(t *testing.T) {
	tests := []struct {
		pattern string
		frame   int
		want    string
	}{
		{"out/head.png", 7, "out/head-007.png"},
		{"spin.ppm", 0, "spin-000.ppm"},
		{"frames", 12, "frames-012"},
	}
	for _, tt := range tests {
		if got := framePath(tt.pattern, tt.frame); got != tt.want {
			t.Errorf("framePath(%q, %d) = %q, want %q", tt.pattern, tt.frame, got, tt.want)
		}
	}
}

func TestSpinEye(t *testing.T) {
	eye := math3d.V3(1, 0.4, 1)
	center := math3d.V3(0, 0, 0)

	got := spinEye(eye, center, 2*math.Pi)
	if got.Distance(eye) > 1e-9 {
		t.Errorf("full turn moved eye to %v", got)
	}

	half := spinEye(eye, center, math.Pi)
	if math.Abs(half.X+1) > 1e-9 || math.Abs(half.Y-0.4) > 1e-9 || math.Abs(half.Z+1) > 1e-9 {
		t.Errorf("half turn = %v, want (-1, 0.4, -1)", half)
	}

	shifted := spinEye(math3d.V3(2, 0, 0), math3d.V3(1, 0, 0), math.Pi)
	if shifted.Distance(math3d.V3(0, 0, 0)) > 1e-9 {
		t.Errorf("orbit around (1,0,0) = %v", shifted)
	}
}

func TestTerminalSizeLimits(t *testing.T) {
	cols, rows := terminalSize(30, 12)
	if cols != 30 || rows != 12 {
		t.Errorf("explicit limits changed: %d x %d", cols, rows)
	}
}
