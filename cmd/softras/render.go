package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/taigrr/softras/internal/logger"
	"github.com/taigrr/softras/pkg/render"
)

func newRenderCmd() *cobra.Command {
	var lines, axes bool

	cmd := &cobra.Command{
		Use:   "render [model]",
		Short: "Rasterize a model to an image file",
		Example: "  softras render head.obj --texture head_diffuse.tga -o head.ppm\n" +
			"  softras render head.obj --shader tangent --normal-map head_nm_tangent.tga --specular-map head_spec.tga\n" +
			"  softras render duck.glb --shader posterize --palette warm -o duck.png",
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd, args)
			if err != nil {
				return err
			}
			defer logger.Sync()

			s, err := newScene(cfg)
			if err != nil {
				return err
			}

			progress, done := newProgress(s.mesh.FaceCount(), "rasterizing")
			err = s.draw(lines, progress)
			done()
			if err != nil {
				return err
			}
			if axes {
				render.NewWireframe(s.ctx, s.raster.Canvas).DrawAxes(1)
			}
			s.logStats()

			if err := s.save(cfg.Output.Path); err != nil {
				return fmt.Errorf("save %s: %w", cfg.Output.Path, err)
			}
			logger.Info("image written", zap.String("path", cfg.Output.Path))
			return nil
		},
	}

	addSceneFlags(cmd.Flags())
	cmd.Flags().StringP("output", "o", "", "output image (.ppm or .png)")
	cmd.Flags().BoolVar(&lines, "lines", false, "draw mesh edges as lines instead of shading")
	cmd.Flags().BoolVar(&axes, "axes", false, "overlay the object space axes")
	return cmd
}
