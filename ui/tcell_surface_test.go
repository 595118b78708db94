package ui

import (
	"testing"

	"snake-arcade/game/types"
	"snake-arcade/leaderboard"

	"github.com/gdamore/tcell/v2"
)

func newSimScreen(t *testing.T) tcell.SimulationScreen {
	t.Helper()
	screen := tcell.NewSimulationScreen("UTF-8")
	screen.SetSize(80, 24)
	if err := screen.Init(); err != nil {
		t.Fatalf("Failed to init screen: %v", err)
	}
	t.Cleanup(screen.Fini)
	return screen
}

func TestTcellFillRectCoversTwoColumns(t *testing.T) {
	screen := newSimScreen(t)
	s := NewTcellSurface(screen)

	w, _ := s.Size()
	if w != 40 {
		t.Errorf("surface width = %d, want 40", w)
	}

	s.FillRect(3, 2, 1, 1, ColorApple)
	screen.Show()

	for _, col := range []int{6, 7} {
		_, _, style, _ := screen.GetContent(col, 2)
		_, bg, _ := style.Decompose()
		if bg != toTcell(ColorApple) {
			t.Errorf("column %d background = %v", col, bg)
		}
	}
	_, _, style, _ := screen.GetContent(8, 2)
	if _, bg, _ := style.Decompose(); bg == toTcell(ColorApple) {
		t.Error("fill leaked into the next tile")
	}
}

func TestTcellCenteredTextKeepsBackground(t *testing.T) {
	screen := newSimScreen(t)
	s := NewTcellSurface(screen)

	s.FillRect(0, 5, 20, 1, ColorFieldBg)
	s.DrawCenteredText("HELLO", 10, 5, 10, ColorText)
	screen.Show()

	// Centered on unit 10: columns 21-2 .. 21+2
	start := 10*2 + 1 - 5/2
	for i, want := range "HELLO" {
		mainc, _, style, _ := screen.GetContent(start+i, 5)
		if mainc != want {
			t.Errorf("column %d = %q, want %q", start+i, mainc, want)
		}
		fg, bg, _ := style.Decompose()
		if fg != toTcell(ColorText) || bg != toTcell(ColorFieldBg) {
			t.Errorf("column %d style fg=%v bg=%v", start+i, fg, bg)
		}
	}
}

func TestTcellGridDots(t *testing.T) {
	screen := newSimScreen(t)
	s := NewTcellSurface(screen)
	s.FillRect(0, 0, 4, 4, ColorFieldBg)
	s.StrokeGrid(4, 4, 1, ColorGrid)
	screen.Show()

	mainc, _, style, _ := screen.GetContent(6, 3)
	if mainc != '·' {
		t.Errorf("grid mark = %q", mainc)
	}
	if _, bg, _ := style.Decompose(); bg != toTcell(ColorFieldBg) {
		t.Errorf("grid mark lost the background: %v", bg)
	}
}

func TestRendererOnTerminal(t *testing.T) {
	screen := newSimScreen(t)
	s := NewTcellSurface(screen)
	r := NewRenderer(s, 1, EmojiGlyphs)
	r.Render(baseSnapshot())
	r.Draw()
	screen.Show()

	_, _, style, _ := screen.GetContent(10, 5)
	if _, bg, _ := style.Decompose(); bg != toTcell(ColorSnakeHead) {
		t.Errorf("head background = %v", bg)
	}
	mainc, _, _, _ := screen.GetContent(20, 10)
	if mainc != []rune(EmojiGlyphs.Apple)[0] {
		t.Errorf("apple glyph = %q", mainc)
	}
}

func TestScoreboardRefreshesOnChange(t *testing.T) {
	board := leaderboard.New(leaderboard.NewMemoryKV())
	sb := NewScoreboard(board, 0, 0, 12, 14)
	if len(sb.Rows()) != 0 {
		t.Fatal("rows on an empty board")
	}

	board.AddScore(types.ModeNormal, "ada", 12)
	board.AddScore(types.ModeFast, "bob", 30)
	rows := sb.Rows()
	if len(rows) != 1 || rows[0] != " 1. ada                12" {
		t.Errorf("rows = %q", rows)
	}

	sb.SetMode(types.ModeFast)
	if len(sb.Rows()) != 1 {
		t.Errorf("fast rows = %q", sb.Rows())
	}

	s := &recordingSurface{w: 40, h: 24}
	sb.Draw(s, 1)
	if !s.hasText("TOP 10  fast") || !s.hasText("bob") {
		t.Errorf("panel texts = %+v", s.texts)
	}

	board.Reset()
	s = &recordingSurface{w: 40, h: 24}
	sb.Draw(s, 1)
	if !s.hasText("no scores yet") {
		t.Error("reset not reflected")
	}
}
