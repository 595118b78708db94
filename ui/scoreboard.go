package ui

import (
	"fmt"

	"snake-arcade/game/types"
	"snake-arcade/leaderboard"
)

// Scoreboard is the side panel listing the top scores of one mode. It
// refreshes its rows when the leaderboard reports a change.
type Scoreboard struct {
	X, Y          int
	Width, Height int

	board *leaderboard.Leaderboard
	mode  types.SpeedMode
	rows  []string
}

func NewScoreboard(board *leaderboard.Leaderboard, x, y, width, height int) *Scoreboard {
	sb := &Scoreboard{
		X:      x,
		Y:      y,
		Width:  width,
		Height: height,
		board:  board,
		mode:   types.ModeNormal,
	}
	board.OnChange(func(mode types.SpeedMode) {
		if mode == sb.mode {
			sb.refresh()
		}
	})
	sb.refresh()
	return sb
}

// SetMode switches the panel to another mode's table
func (sb *Scoreboard) SetMode(mode types.SpeedMode) {
	if mode == sb.mode {
		return
	}
	sb.mode = mode
	sb.refresh()
}

func (sb *Scoreboard) Rows() []string {
	return sb.rows
}

func (sb *Scoreboard) refresh() {
	entries := sb.board.Entries(sb.mode)
	sb.rows = sb.rows[:0]
	for i, e := range entries {
		sb.rows = append(sb.rows, fmt.Sprintf("%2d. %-*s %4d", i+1, types.MaxNameLen, e.Name, e.Score))
	}
}

func (sb *Scoreboard) Draw(s Surface, cell int) {
	s.FillRect(sb.X, sb.Y, sb.Width, sb.Height, Darken(ColorFieldBg, 0.8))

	gap := cell
	if gap < 1 {
		gap = 1
	}
	size := cell * 3 / 4
	if size < 10 {
		size = 10
	}
	cx := sb.X + sb.Width/2

	y := sb.Y + gap
	s.DrawCenteredText(fmt.Sprintf("TOP %d  %s", leaderboard.MaxEntries, sb.mode), cx, y, size, ColorTextHighlight)
	y += 2 * gap

	if len(sb.rows) == 0 {
		s.DrawCenteredText("no scores yet", cx, y, size, ColorTextDim)
		return
	}
	for i, row := range sb.rows {
		if y > sb.Y+sb.Height-gap {
			break
		}
		c := ColorText
		if i == 0 {
			c = Lighten(ColorTextHighlight, 1.2)
		}
		s.DrawCenteredText(row, cx, y, size, c)
		y += gap
	}
}
