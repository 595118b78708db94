package ui

import (
	"image/color"

	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"
)

// TcellSurface maps one surface unit to two terminal columns and one row,
// so square tiles stay roughly square and wide glyphs fit a single tile
type TcellSurface struct {
	screen tcell.Screen
}

func NewTcellSurface(screen tcell.Screen) *TcellSurface {
	return &TcellSurface{screen: screen}
}

func (s *TcellSurface) Size() (int, int) {
	w, h := s.screen.Size()
	return w / 2, h
}

func toTcell(c color.RGBA) tcell.Color {
	return tcell.NewRGBColor(int32(c.R), int32(c.G), int32(c.B))
}

func (s *TcellSurface) FillRect(x, y, w, h int, c color.RGBA) {
	style := tcell.StyleDefault.Background(toTcell(c))
	for row := y; row < y+h; row++ {
		for col := x * 2; col < (x+w)*2; col++ {
			s.screen.SetContent(col, row, ' ', nil, style)
		}
	}
}

// StrokeGrid marks each tile with a faint dot; terminals have no room for
// real lines between cells
func (s *TcellSurface) StrokeGrid(cols, rows, cell int, c color.RGBA) {
	fg := toTcell(c)
	for y := 0; y < rows; y++ {
		for x := 0; x < cols; x++ {
			col, row := x*cell*2, y*cell
			_, _, style, _ := s.screen.GetContent(col, row)
			s.screen.SetContent(col, row, '·', nil, style.Foreground(fg))
		}
	}
}

// DrawCenteredText writes text centered on unit cx, keeping the
// background already painted underneath
func (s *TcellSurface) DrawCenteredText(text string, cx, cy, size int, c color.RGBA) {
	fg := toTcell(c)
	col := cx*2 + 1 - runewidth.StringWidth(text)/2
	for _, r := range text {
		w := runewidth.RuneWidth(r)
		if w == 0 {
			continue
		}
		_, _, style, _ := s.screen.GetContent(col, cy)
		s.screen.SetContent(col, cy, r, nil, style.Foreground(fg))
		col += w
	}
}
