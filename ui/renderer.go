package ui

import (
	"fmt"
	"image/color"
	"time"

	"snake-arcade/game"
	"snake-arcade/game/entity"
	"snake-arcade/game/types"
)

// Renderer paints game snapshots onto a Surface. Render only records the
// snapshot; Draw paints the latest one, so frame-based surfaces can redraw
// every frame between ticks.
type Renderer struct {
	surface Surface
	cell    int
	glyphs  Glyphs

	snap  game.Snapshot
	ready bool
}

func NewRenderer(surface Surface, cell int, glyphs Glyphs) *Renderer {
	if cell < 1 {
		cell = 1
	}
	return &Renderer{
		surface: surface,
		cell:    cell,
		glyphs:  glyphs,
	}
}

// Render implements game.Renderer
func (r *Renderer) Render(snap game.Snapshot) {
	r.snap = snap
	r.ready = true
}

// BoardSize is the size of the playfield in surface units
func (r *Renderer) BoardSize() (int, int) {
	return r.snap.Grid.Width * r.cell, r.snap.Grid.Height * r.cell
}

func (r *Renderer) textSize(scale float64) int {
	size := int(float64(r.cell) * scale)
	if size < 10 {
		size = 10
	}
	return size
}

func (r *Renderer) lineGap() int {
	gap := r.cell + r.cell/2
	if gap < 1 {
		gap = 1
	}
	return gap
}

// Draw paints the most recent snapshot
func (r *Renderer) Draw() {
	if r.surface == nil || !r.ready {
		return
	}
	snap := r.snap
	sw, sh := r.surface.Size()
	bw, bh := r.BoardSize()

	r.surface.FillRect(0, 0, sw, sh, ColorBackground)
	r.surface.FillRect(0, 0, bw, bh, ColorFieldBg)
	r.surface.StrokeGrid(snap.Grid.Width, snap.Grid.Height, r.cell, ColorGrid)

	for _, a := range snap.Apples {
		r.drawApple(a)
	}
	if snap.Bonus != nil {
		r.drawBonus(*snap.Bonus)
	}
	r.drawSnake(snap)
	r.drawHUD(snap, bw, bh)

	switch snap.State {
	case game.Idle:
		r.drawIdle(snap, bw, bh)
	case game.GameOver:
		r.drawGameOver(snap, bw, bh)
	}
}

func (r *Renderer) tile(p types.Point, c color.RGBA) {
	r.surface.FillRect(p.X*r.cell, p.Y*r.cell, r.cell, r.cell, c)
}

func (r *Renderer) glyph(p types.Point, text string) {
	if text == "" {
		return
	}
	cx := p.X*r.cell + r.cell/2
	cy := p.Y*r.cell + r.cell/2
	r.surface.DrawCenteredText(text, cx, cy, r.textSize(0.7), ColorBackground)
}

func (r *Renderer) drawApple(a entity.Apple) {
	if a.Kind == entity.AppleGolden {
		r.tile(a.Pos, ColorGolden)
		r.glyph(a.Pos, r.glyphs.Golden)
		return
	}
	r.tile(a.Pos, ColorApple)
	r.glyph(a.Pos, r.glyphs.Apple)
}

func (r *Renderer) drawBonus(b entity.BonusItem) {
	r.tile(b.Pos, BonusColor(b.Kind))
	r.glyph(b.Pos, r.glyphs.Bonus[b.Kind])
}

func (r *Renderer) drawSnake(snap game.Snapshot) {
	body := ColorSnakeBody
	if snap.Turbo {
		body = BonusColor(entity.BonusTurbo)
	}
	// Tail first so the head is never painted over
	for i := len(snap.Snake) - 1; i >= 0; i-- {
		c := body
		if i == 0 {
			c = ColorSnakeHead
			if snap.State == game.GameOver {
				c = ColorError
			}
		}
		r.tile(snap.Snake[i], c)
	}
}

func (r *Renderer) drawHUD(snap game.Snapshot, bw, bh int) {
	y := bh + r.cell/2
	line := fmt.Sprintf("Score %d   Best %d   %s", snap.Score, snap.Best, snap.Mode)
	r.surface.DrawCenteredText(line, bw/2, y, r.textSize(0.8), ColorText)

	effects := ""
	if snap.Turbo {
		effects += fmt.Sprintf("TURBO %s ", seconds(snap.TurboLeft))
	}
	if snap.DoubleScore {
		effects += fmt.Sprintf("x2 %s", seconds(snap.DoubleLeft))
	}
	if effects != "" {
		r.surface.DrawCenteredText(effects, bw/2, y+r.lineGap(), r.textSize(0.8), ColorTextHighlight)
	}
}

func (r *Renderer) drawIdle(snap game.Snapshot, bw, bh int) {
	cy := bh/2 - r.lineGap()
	r.surface.DrawCenteredText("SNAKE", bw/2, cy, r.textSize(2), ColorTextHighlight)
	r.surface.DrawCenteredText("arrows or WASD to start", bw/2, cy+2*r.lineGap(), r.textSize(0.8), ColorText)
	r.surface.DrawCenteredText(fmt.Sprintf("1 slow  2 normal  3 fast  [%s]", snap.Mode), bw/2, cy+3*r.lineGap(), r.textSize(0.7), ColorTextDim)
}

func (r *Renderer) drawGameOver(snap game.Snapshot, bw, bh int) {
	gap := r.lineGap()
	top := bh/2 - 3*gap
	r.surface.FillRect(0, top-gap/2, bw, 6*gap, Darken(ColorFieldBg, 0.6))

	r.surface.DrawCenteredText("GAME OVER", bw/2, top+gap/2, r.textSize(1.6), ColorError)
	r.surface.DrawCenteredText(fmt.Sprintf("Score %d", snap.Score), bw/2, top+2*gap, r.textSize(1), ColorTextHighlight)

	run := snap.Run
	stats := fmt.Sprintf("%d apples  %d golden  %d bonuses  %s",
		run.ApplesEaten, run.GoldenEaten, run.BonusesTaken, run.Duration().Round(time.Second))
	r.surface.DrawCenteredText(stats, bw/2, top+3*gap, r.textSize(0.7), ColorText)
	r.surface.DrawCenteredText("press a direction to play again", bw/2, top+4*gap, r.textSize(0.7), ColorTextDim)
}

func seconds(d time.Duration) string {
	return fmt.Sprintf("%.0fs", d.Seconds())
}
