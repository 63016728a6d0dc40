package main

import (
	"errors"
	"fmt"
	"image"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/schollz/progressbar/v3"
	"go.uber.org/zap"
	"golang.org/x/term"

	"github.com/taigrr/softras/internal/config"
	"github.com/taigrr/softras/internal/logger"
	"github.com/taigrr/softras/pkg/models"
	"github.com/taigrr/softras/pkg/render"
	"github.com/taigrr/softras/pkg/shaders"
)

// scene is everything one render needs, built from a Config.
type scene struct {
	cfg    *config.Config
	mesh   *models.Mesh
	ctx    *render.Context
	camera *render.Camera
	shader render.Shader
	raster *render.Rasterizer
	bg     render.Color
}

func newScene(cfg *config.Config) (*scene, error) {
	if cfg.Model.Path == "" {
		return nil, errors.New("no model given")
	}
	bg, err := cfg.BackgroundColor()
	if err != nil {
		return nil, err
	}

	mesh, embedded, err := loadMesh(cfg.Model)
	if err != nil {
		return nil, err
	}
	if cfg.Model.Fit > 0 {
		mesh.FitUnit(cfg.Model.Fit)
	}
	logger.Info("model loaded",
		zap.String("name", mesh.Name),
		zap.Int("vertices", mesh.VertexCount()),
		zap.Int("faces", mesh.FaceCount()),
	)

	ctx := render.NewContext(mesh)
	ctx.LightDir = cfg.Light.Direction.Vec()
	ctx.Ambient = cfg.Light.Ambient
	ctx.Channels, _ = render.ParseChannelMode(cfg.Shading.Channels)

	if ctx.Diffuse, err = loadTexture(cfg.Model.Diffuse); err != nil {
		return nil, err
	}
	if ctx.Diffuse == nil && embedded != nil {
		ctx.Diffuse = render.NewTexture(render.CanvasFromImage(embedded))
		b := embedded.Bounds()
		logger.Info("using embedded texture", zap.Int("width", b.Dx()), zap.Int("height", b.Dy()))
	}
	if ctx.Normal, err = loadTexture(cfg.Model.NormalMap); err != nil {
		return nil, err
	}
	if ctx.Specular, err = loadTexture(cfg.Model.Specular); err != nil {
		return nil, err
	}

	palette, _ := shaders.PaletteByName(cfg.Shading.Palette)
	axis, err := shaders.ParseAxis(cfg.Shading.CutoffAxis)
	if err != nil {
		return nil, err
	}
	sh, err := shaders.New(cfg.Shading.Shader, ctx, shaders.Options{
		Palette:     palette,
		CutoffAxis:  axis,
		CutoffLevel: cfg.Shading.CutoffLevel,
	})
	if err != nil {
		return nil, err
	}

	camera := render.NewCamera(cfg.Camera.Eye.Vec(), cfg.Camera.Center.Vec(), cfg.Camera.Up.Vec(), cfg.Camera.Distance)
	camera.SetModelScale(cfg.Model.Scale)

	return &scene{
		cfg:    cfg,
		mesh:   mesh,
		ctx:    ctx,
		camera: camera,
		shader: sh,
		raster: render.NewRasterizer(cfg.Canvas.Width, cfg.Canvas.Height),
		bg:     bg,
	}, nil
}

func loadMesh(m config.ModelConfig) (*models.Mesh, image.Image, error) {
	switch ext := strings.ToLower(filepath.Ext(m.Path)); ext {
	case ".obj":
		mesh, err := models.LoadOBJ(m.Path)
		if err != nil {
			return nil, nil, fmt.Errorf("load model: %w", err)
		}
		return mesh, nil, nil
	case ".glb", ".gltf":
		loader := models.NewGLTFLoader()
		loader.SmoothNormals = m.SmoothNormals
		mesh, img, err := loader.LoadWithTexture(m.Path)
		if err != nil {
			return nil, nil, fmt.Errorf("load model: %w", err)
		}
		return mesh, img, nil
	default:
		return nil, nil, fmt.Errorf("unsupported model format %q (use .obj, .gltf or .glb)", ext)
	}
}

func loadTexture(path string) (*render.Texture, error) {
	if path == "" {
		return nil, nil
	}
	tex, err := render.LoadTexture(path)
	if err != nil {
		return nil, fmt.Errorf("load texture: %w", err)
	}
	return tex, nil
}

// draw clears the buffers and runs one pass with the current camera. With
// lines set the mesh edges are drawn instead of the shader.
func (s *scene) draw(lines bool, progress func(done, total int)) error {
	s.raster.Clear(s.bg)
	s.camera.Apply(s.ctx, s.raster.Width(), s.raster.Height(), s.cfg.Canvas.Depth)

	start := time.Now()
	if lines {
		if err := render.NewWireframe(s.ctx, s.raster.Canvas).DrawMesh(render.ColorLight); err != nil {
			return err
		}
	} else if err := s.raster.Draw(s.ctx, s.shader, render.WithProgress(progress)); err != nil {
		return err
	}
	logger.Debug("pass done", zap.Duration("elapsed", time.Since(start)))
	return nil
}

// logStats reports the counters and pixel statistics of the last pass.
func (s *scene) logStats() {
	st := s.raster.Stats
	sum := render.Summarize(s.raster)
	logger.Info("render stats",
		zap.Int("faces", st.Faces),
		zap.Int("degenerate", st.Degenerate),
		zap.Int("tested", st.Tested),
		zap.Int("depth_failed", st.DepthFailed),
		zap.Int("discarded", st.Discarded),
		zap.Int("written", st.Written),
	)
	logger.Info("render summary",
		zap.Float64("coverage", sum.Coverage),
		zap.Float64("depth_mean", sum.DepthMean),
		zap.Float64("depth_stddev", sum.DepthStdDev),
		zap.Float64("luma_mean", sum.LuminanceMean),
	)
}

// save writes the canvas, choosing the format by extension.
func (s *scene) save(path string) error {
	c := s.raster.Canvas
	switch strings.ToLower(filepath.Ext(path)) {
	case ".png":
		return c.SavePNG(path)
	case ".ppm", "":
		return c.SavePPM(path)
	default:
		return fmt.Errorf("unsupported output format %q (use .ppm or .png)", filepath.Ext(path))
	}
}

// newProgress returns a progress callback drawing a bar on stderr, or nil
// when stderr is not a terminal.
func newProgress(total int, title string) (func(done, total int), func()) {
	if !term.IsTerminal(int(os.Stderr.Fd())) || total == 0 {
		return nil, func() {}
	}
	bar := progressbar.NewOptions(total,
		progressbar.OptionSetWriter(os.Stderr),
		progressbar.OptionSetDescription(title),
		progressbar.OptionShowCount(),
		progressbar.OptionThrottle(65*time.Millisecond),
		progressbar.OptionClearOnFinish(),
	)
	last := 0
	update := func(done, _ int) {
		_ = bar.Add(done - last)
		last = done
	}
	return update, func() { _ = bar.Finish() }
}
