package ui

import (
	"image/color"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// RaylibSurface draws into the current raylib frame. Calls must happen
// between rl.BeginDrawing and rl.EndDrawing.
type RaylibSurface struct {
	width, height int
}

func NewRaylibSurface(width, height int) *RaylibSurface {
	return &RaylibSurface{width: width, height: height}
}

func (s *RaylibSurface) Size() (int, int) {
	return s.width, s.height
}

func toRL(c color.RGBA) rl.Color {
	return rl.NewColor(c.R, c.G, c.B, c.A)
}

func (s *RaylibSurface) FillRect(x, y, w, h int, c color.RGBA) {
	rl.DrawRectangle(int32(x), int32(y), int32(w), int32(h), toRL(c))
}

func (s *RaylibSurface) StrokeGrid(cols, rows, cell int, c color.RGBA) {
	col := toRL(c)
	for x := 0; x < cols; x++ {
		for y := 0; y < rows; y++ {
			rl.DrawRectangleLines(int32(x*cell), int32(y*cell), int32(cell), int32(cell), col)
		}
	}
}

func (s *RaylibSurface) DrawCenteredText(text string, cx, cy, size int, c color.RGBA) {
	width := rl.MeasureText(text, int32(size))
	rl.DrawText(text, int32(cx)-width/2, int32(cy-size/2), int32(size), toRL(c))
}
