// Package config holds the scene and render settings of the softras CLI.
package config

import (
	"errors"
	"fmt"
	"slices"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/taigrr/softras/pkg/math3d"
	"github.com/taigrr/softras/pkg/render"
	"github.com/taigrr/softras/pkg/shaders"
)

// ErrInvalid is wrapped by every validation failure.
var ErrInvalid = errors.New("config: invalid")

// Config holds all settings of a render.
type Config struct {
	Model     ModelConfig     `yaml:"model" mapstructure:"model"`
	Camera    CameraConfig    `yaml:"camera" mapstructure:"camera"`
	Canvas    CanvasConfig    `yaml:"canvas" mapstructure:"canvas"`
	Light     LightConfig     `yaml:"light" mapstructure:"light"`
	Shading   ShadingConfig   `yaml:"shading" mapstructure:"shading"`
	Output    OutputConfig    `yaml:"output" mapstructure:"output"`
	Animation AnimationConfig `yaml:"animation" mapstructure:"animation"`
	Logging   LoggingConfig   `yaml:"logging" mapstructure:"logging"`
}

// ModelConfig names the mesh and its texture maps.
type ModelConfig struct {
	Path          string  `yaml:"path" mapstructure:"path"`
	Diffuse       string  `yaml:"diffuse" mapstructure:"diffuse"`
	NormalMap     string  `yaml:"normal_map" mapstructure:"normal_map"`
	Specular      string  `yaml:"specular" mapstructure:"specular"`
	Fit           float64 `yaml:"fit" mapstructure:"fit"`     // FitUnit factor, 0 keeps the file's scale
	Scale         float64 `yaml:"scale" mapstructure:"scale"` // Uniform scale in the model-view
	SmoothNormals bool    `yaml:"smooth_normals" mapstructure:"smooth_normals"`
}

// CameraConfig is the look-at camera and projection distance.
type CameraConfig struct {
	Eye      Vec3    `yaml:"eye" mapstructure:"eye"`
	Center   Vec3    `yaml:"center" mapstructure:"center"`
	Up       Vec3    `yaml:"up" mapstructure:"up"`
	Distance float64 `yaml:"distance" mapstructure:"distance"`
}

// CanvasConfig sizes the color and depth buffers.
type CanvasConfig struct {
	Width      int     `yaml:"width" mapstructure:"width"`
	Height     int     `yaml:"height" mapstructure:"height"`
	Depth      float64 `yaml:"depth" mapstructure:"depth"`
	Background string  `yaml:"background" mapstructure:"background"` // RRGGBB hex
}

// LightConfig is a directional light plus ambient term.
type LightConfig struct {
	Direction Vec3    `yaml:"direction" mapstructure:"direction"`
	Ambient   float64 `yaml:"ambient" mapstructure:"ambient"`
}

// ShadingConfig selects the shader and its options.
type ShadingConfig struct {
	Shader      string  `yaml:"shader" mapstructure:"shader"`
	Palette     string  `yaml:"palette" mapstructure:"palette"`
	Channels    string  `yaml:"channels" mapstructure:"channels"`
	CutoffAxis  string  `yaml:"cutoff_axis" mapstructure:"cutoff_axis"`
	CutoffLevel float64 `yaml:"cutoff_level" mapstructure:"cutoff_level"`
}

// OutputConfig is where rendered images go.
type OutputConfig struct {
	Path string `yaml:"path" mapstructure:"path"` // .ppm or .png
}

// AnimationConfig drives the turntable of the animate command.
type AnimationConfig struct {
	Frames    int     `yaml:"frames" mapstructure:"frames"`
	FPS       int     `yaml:"fps" mapstructure:"fps"`
	Turns     float64 `yaml:"turns" mapstructure:"turns"`
	Frequency float64 `yaml:"frequency" mapstructure:"frequency"`
	Damping   float64 `yaml:"damping" mapstructure:"damping"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level" mapstructure:"level"`
	LogFile string `yaml:"log_file" mapstructure:"log_file"`
}

// Default returns the classic scene: a 1000x1000 canvas with 255 depth
// levels, the eye at (1, 0.4, 1) and a light from (0.5, 0, 1).
func Default() *Config {
	return &Config{
		Model: ModelConfig{
			Fit:           0.8,
			Scale:         0.7,
			SmoothNormals: true,
		},
		Camera: CameraConfig{
			Eye:      Vec3{1, 0.4, 1},
			Center:   Vec3{0, 0, 0},
			Up:       Vec3{0, 1, 0},
			Distance: 3,
		},
		Canvas: CanvasConfig{
			Width:      1000,
			Height:     1000,
			Depth:      255,
			Background: "000000",
		},
		Light: LightConfig{
			Direction: Vec3{0.5, 0, 1},
			Ambient:   5,
		},
		Shading: ShadingConfig{
			Shader:      "phong",
			Palette:     "default",
			Channels:    render.Saturate.String(),
			CutoffAxis:  "y",
			CutoffLevel: 0,
		},
		Output: OutputConfig{
			Path: "output.ppm",
		},
		Animation: AnimationConfig{
			Frames:    60,
			FPS:       30,
			Turns:     1,
			Frequency: 3,
			Damping:   1,
		},
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}

// Validate reports the first setting a render cannot use.
func (c *Config) Validate() error {
	switch {
	case c.Canvas.Width <= 0 || c.Canvas.Height <= 0:
		return fmt.Errorf("%w: canvas %dx%d", ErrInvalid, c.Canvas.Width, c.Canvas.Height)
	case c.Canvas.Depth <= 0:
		return fmt.Errorf("%w: canvas depth %g", ErrInvalid, c.Canvas.Depth)
	case c.Camera.Distance == 0:
		return fmt.Errorf("%w: camera distance must be non-zero", ErrInvalid)
	case c.Camera.Eye == c.Camera.Center:
		return fmt.Errorf("%w: camera eye equals center", ErrInvalid)
	case c.Model.Fit < 0:
		return fmt.Errorf("%w: model fit %g", ErrInvalid, c.Model.Fit)
	case c.Animation.Frames < 1 || c.Animation.FPS < 1:
		return fmt.Errorf("%w: animation needs at least one frame and fps", ErrInvalid)
	}
	if !slices.Contains(shaders.Names(), c.Shading.Shader) {
		return fmt.Errorf("%w: shader %q (have %s)", ErrInvalid, c.Shading.Shader, strings.Join(shaders.Names(), ", "))
	}
	if _, ok := shaders.PaletteByName(c.Shading.Palette); !ok {
		return fmt.Errorf("%w: palette %q (have %s)", ErrInvalid, c.Shading.Palette, strings.Join(shaders.PaletteNames(), ", "))
	}
	if _, ok := render.ParseChannelMode(c.Shading.Channels); !ok {
		return fmt.Errorf("%w: channel mode %q", ErrInvalid, c.Shading.Channels)
	}
	if _, err := shaders.ParseAxis(c.Shading.CutoffAxis); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalid, err)
	}
	if _, err := c.BackgroundColor(); err != nil {
		return err
	}
	return nil
}

// BackgroundColor parses Canvas.Background. An empty value is black.
func (c *Config) BackgroundColor() (render.Color, error) {
	s := strings.TrimPrefix(c.Canvas.Background, "#")
	if s == "" {
		return render.ColorBlack, nil
	}
	v, err := strconv.ParseUint(s, 16, 32)
	if err != nil || len(s) != 6 {
		return render.Color{}, fmt.Errorf("%w: background %q is not RRGGBB", ErrInvalid, c.Canvas.Background)
	}
	return render.UnpackColor(0xFF000000 | uint32(v)), nil
}

// Vec3 is a vector setting, written as a YAML sequence or as "x,y,z" on
// the command line.
type Vec3 [3]float64

// Vec converts to the math3d type.
func (v Vec3) Vec() math3d.Vec3 {
	return math3d.V3(v[0], v[1], v[2])
}

// String formats v the way ParseVec3 reads it.
func (v Vec3) String() string {
	parts := make([]string, len(v))
	for i, x := range v {
		parts[i] = strconv.FormatFloat(x, 'g', -1, 64)
	}
	return strings.Join(parts, ",")
}

// MarshalYAML writes v as a flow sequence.
func (v Vec3) MarshalYAML() (any, error) {
	n := &yaml.Node{Kind: yaml.SequenceNode, Style: yaml.FlowStyle}
	for _, x := range v {
		n.Content = append(n.Content, &yaml.Node{
			Kind:  yaml.ScalarNode,
			Value: strconv.FormatFloat(x, 'g', -1, 64),
		})
	}
	return n, nil
}

// ParseVec3 reads three numbers separated by commas or spaces, optionally
// in brackets.
func ParseVec3(s string) (Vec3, error) {
	s = strings.Trim(strings.TrimSpace(s), "[]()")
	fields := strings.FieldsFunc(s, func(r rune) bool {
		return r == ',' || r == ' ' || r == '\t'
	})
	if len(fields) != 3 {
		return Vec3{}, fmt.Errorf("%w: vector %q needs 3 components", ErrInvalid, s)
	}
	var v Vec3
	for i, f := range fields {
		x, err := strconv.ParseFloat(f, 64)
		if err != nil {
			return Vec3{}, fmt.Errorf("%w: vector %q: %w", ErrInvalid, s, err)
		}
		v[i] = x
	}
	return v, nil
}
