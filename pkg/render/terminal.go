package render

import (
	uv "github.com/charmbracelet/ultraviolet"
)

// Draw paints the canvas onto a terminal screen.
//
// Each terminal row shows two canvas rows using ▀ (upper half block) with
// fg=top color and bg=bottom color, so the canvas should be twice as tall
// as area. Cells outside the canvas are left untouched.
func (c *Canvas) Draw(scr uv.Screen, area uv.Rectangle) {
	for row := area.Min.Y; row < area.Max.Y; row++ {
		topY := (row - area.Min.Y) * 2
		botY := topY + 1
		if topY >= c.Height {
			break
		}

		for col := area.Min.X; col < area.Max.X; col++ {
			x := col - area.Min.X
			if x >= c.Width {
				break
			}

			cell := &uv.Cell{
				Content: "▀",
				Width:   1,
				Style: uv.Style{
					Fg: toRGBA(c.PixelAt(x, topY)),
					Bg: toRGBA(c.PixelAt(x, botY)),
				},
			}
			scr.SetCell(col, row, cell)
		}
	}
}

// TerminalSize returns the canvas size that fills a terminal of cols x rows
// cells with half-block drawing.
func TerminalSize(cols, rows int) (width, height int) {
	return cols, rows * 2
}
