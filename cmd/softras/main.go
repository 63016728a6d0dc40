// softras renders OBJ and glTF models to images on the CPU.
//
// Commands:
//
//	render   Rasterize a model to a PPM or PNG file
//	preview  Rasterize a model and print it as half-block terminal art
//	animate  Render a turntable sequence of frames
//	config   Write or show the effective configuration
package main

import (
	"context"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/charmbracelet/fang"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/taigrr/softras/internal/config"
	"github.com/taigrr/softras/internal/logger"
	"github.com/taigrr/softras/pkg/shaders"
)

var version = "dev"

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := fang.Execute(ctx, newRootCmd(), fang.WithVersion(version)); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "softras",
		Short: "Software triangle rasterizer",
		Long: "softras draws triangle meshes with a z-buffered bounding-box rasterizer\n" +
			"and programmable shaders, entirely on the CPU.",
		SilenceUsage: true,
	}

	root.PersistentFlags().String("config", "", "config file (default ./softras.yaml or the user config dir)")
	root.PersistentFlags().String("log-level", "", "log level: debug, info, warn, error")
	root.PersistentFlags().String("log-file", "", "also write JSON logs to this rotating file")

	root.AddCommand(
		newRenderCmd(),
		newPreviewCmd(),
		newAnimateCmd(),
		newConfigCmd(),
	)
	return root
}

// addSceneFlags registers the flags every rendering command shares. Their
// defaults are only shown in help; unset flags never override the config.
func addSceneFlags(fs *pflag.FlagSet) {
	def := config.Default()

	fs.String("texture", "", "diffuse texture (TGA, PNG, JPEG, BMP, PPM)")
	fs.String("normal-map", "", "normal map for the tangent and objectnormal shaders")
	fs.String("specular-map", "", "specular exponent map")
	fs.Float64("fit", def.Model.Fit, "scale the mesh to 1/(fit*longest vertex), 0 keeps file scale")
	fs.Float64("scale", def.Model.Scale, "uniform model scale in the model-view")
	fs.Bool("smooth", def.Model.SmoothNormals, "compute smooth normals for glTF meshes without normals")

	fs.String("eye", def.Camera.Eye.String(), "camera position x,y,z")
	fs.String("center", def.Camera.Center.String(), "look-at target x,y,z")
	fs.String("up", def.Camera.Up.String(), "camera up vector x,y,z")
	fs.Float64("distance", def.Camera.Distance, "projection distance c")

	fs.Int("width", def.Canvas.Width, "canvas width")
	fs.Int("height", def.Canvas.Height, "canvas height")
	fs.Float64("depth", def.Canvas.Depth, "depth range of the viewport")
	fs.String("background", def.Canvas.Background, "background color RRGGBB")

	fs.String("light", def.Light.Direction.String(), "light direction x,y,z")
	fs.Float64("ambient", def.Light.Ambient, "ambient term added to every lit channel")

	fs.String("shader", def.Shading.Shader, "shader: "+strings.Join(shaders.Names(), ", "))
	fs.String("palette", def.Shading.Palette, "posterize palette: "+strings.Join(shaders.PaletteNames(), ", "))
	fs.String("channels", def.Shading.Channels, "channel overflow: saturate or wrap")
	fs.String("cutoff-axis", def.Shading.CutoffAxis, "cutoff shader axis: x, y or z")
	fs.Float64("cutoff-level", def.Shading.CutoffLevel, "cutoff shader level, object space")
}

// loadConfig merges defaults, the config file, the environment and the
// flags of cmd, takes the model from the first argument and starts the
// logger.
func loadConfig(cmd *cobra.Command, args []string) (*config.Config, error) {
	path, _ := cmd.Flags().GetString("config")
	cfg, err := config.Load(path, cmd.Flags())
	if err != nil {
		return nil, err
	}
	if len(args) > 0 {
		cfg.Model.Path = args[0]
	}
	if err := logger.Init(cfg.Logging.Level, cfg.Logging.LogFile); err != nil {
		return nil, err
	}
	return cfg, nil
}
