package ui

import "image/color"

// Surface is a 2D drawing target measured in pixels (or terminal cells)
type Surface interface {
	Size() (width, height int)
	FillRect(x, y, w, h int, c color.RGBA)
	StrokeGrid(cols, rows, cell int, c color.RGBA)
	DrawCenteredText(text string, cx, cy, size int, c color.RGBA)
}
