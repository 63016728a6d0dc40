package render

import (
	"image/color"

	uv "github.com/charmbracelet/ultraviolet"
)

// Draw converts the canvas to terminal cells and draws them on the screen.
// Each terminal row shows two canvas rows using the upper half block with
// fg = top pixel and bg = bottom pixel, so the canvas height should be 2x
// the area height.
func (c *Canvas) Draw(scr uv.Screen, area uv.Rectangle) {
	for row := area.Min.Y; row < area.Max.Y; row++ {
		topY := (row - area.Min.Y) * 2
		botY := topY + 1

		for col := area.Min.X; col < area.Max.X && col-area.Min.X < c.Width; col++ {
			x := col - area.Min.X
			cell := &uv.Cell{
				Content: "▀",
				Width:   1,
				Style: uv.Style{
					Fg: rgbaToColor(c.Pixel(x, topY)),
					Bg: rgbaToColor(c.Pixel(x, botY)),
				},
			}
			scr.SetCell(col, row, cell)
		}
	}
}

// rgbaToColor converts color.RGBA to Go's color.Color interface.
func rgbaToColor(c color.RGBA) color.Color {
	if c.A == 0 {
		return nil // Transparent = no color
	}
	return c
}

// Preview renders the canvas into a cols x rows block of half-block cells
// and returns it as a string of ANSI styled lines.
func Preview(c *Canvas, cols, rows int) string {
	if cols <= 0 || rows <= 0 {
		return ""
	}
	scaled := c.Resize(cols, rows*2)
	buf := uv.NewScreenBuffer(cols, rows)
	scaled.Draw(buf, uv.Rect(0, 0, cols, rows))
	return buf.Render()
}

// PreviewSize picks preview dimensions that fit maxCols x maxRows cells
// while keeping the canvas aspect ratio (one cell is two pixels tall).
func PreviewSize(c *Canvas, maxCols, maxRows int) (cols, rows int) {
	if c.Width == 0 || c.Height == 0 || maxCols <= 0 || maxRows <= 0 {
		return 0, 0
	}
	cols = maxCols
	rows = cols * c.Height / c.Width / 2
	if rows > maxRows {
		rows = maxRows
		cols = rows * 2 * c.Width / c.Height
	}
	return max(cols, 1), max(rows, 1)
}
