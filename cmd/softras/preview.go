package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/taigrr/softras/internal/logger"
	"github.com/taigrr/softras/pkg/render"
)

func newPreviewCmd() *cobra.Command {
	var cols, rows int
	var lines bool

	cmd := &cobra.Command{
		Use:   "preview [model]",
		Short: "Print a half-block rendering to the terminal",
		Long: "preview renders at the configured canvas size and downsamples the result\n" +
			"into terminal cells, two pixels per cell.",
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
			if err := s.draw(lines, nil); err != nil {
				return err
			}
			s.logStats()

			maxCols, maxRows := terminalSize(cols, rows)
			c, r := render.PreviewSize(s.raster.Canvas, maxCols, maxRows)
			_, err = fmt.Fprint(cmd.OutOrStdout(), render.Preview(s.raster.Canvas, c, r))
			return err
		},
	}

	addSceneFlags(cmd.Flags())
	cmd.Flags().IntVar(&cols, "cols", 0, "maximum columns (default terminal width)")
	cmd.Flags().IntVar(&rows, "rows", 0, "maximum rows (default terminal height)")
	cmd.Flags().BoolVar(&lines, "lines", false, "draw mesh edges as lines instead of shading")
	return cmd
}

// terminalSize fills unset limits from the size of stdout, falling back to
// 80x24 when stdout is not a terminal. One row is left for the prompt.
func terminalSize(cols, rows int) (int, int) {
	w, h := 80, 24
	if fd := int(os.Stdout.Fd()); term.IsTerminal(fd) {
		if tw, th, err := term.GetSize(fd); err == nil {
			w, h = tw, th
		}
	}
	if cols <= 0 {
		cols = w
	}
	if rows <= 0 {
		rows = h - 1
	}
	return cols, rows
}
