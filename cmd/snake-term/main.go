// Command snake-term plays the game in a terminal
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"snake-arcade/app"
	"snake-arcade/game"
	"snake-arcade/input"
	"snake-arcade/ui"

	"github.com/gdamore/tcell/v2"
)

const (
	panelUnits = 14
	frameRate  = 60
)

func main() {
	opts := app.RegisterFlags(flag.CommandLine)
	flag.Parse()

	if logFile := app.SetupLogging(opts.Debug); logFile != nil {
		defer logFile.Close()
	}

	cfg, err := opts.Config()
	if err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(2)
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to create screen: %v\n", err)
		os.Exit(1)
	}
	if err := screen.Init(); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize terminal: %v\n", err)
		os.Exit(1)
	}
	defer screen.Fini()
	screen.HideCursor()

	session := app.NewSession(cfg, app.SessionOptions{Seed: opts.Seed, Sound: opts.Sound})
	defer session.Close()

	// One tile is two terminal columns wide
	board := cfg.TileCount
	surface := ui.NewTcellSurface(screen)
	renderer := ui.NewRenderer(surface, 1, ui.EmojiGlyphs)
	scoreboard := ui.NewScoreboard(session.Scores, board+1, 0, panelUnits, board)
	if err := session.Attach(renderer, scoreboard); err != nil {
		log.Printf("[main] attach failed: %v", err)
		return
	}

	events := make(chan tcell.Event, 32)
	go pollEvents(screen, events)

	frame := time.NewTicker(time.Second / frameRate)
	defer frame.Stop()

	for {
		select {
		case ev := <-events:
			switch e := ev.(type) {
			case *tcell.EventResize:
				screen.Sync()
			case *tcell.EventKey:
				if session.Prompt.Active() {
					handlePrompt(session.Prompt, e)
					continue
				}
				if isQuit(e) {
					return
				}
				handleKey(session, e)
			}
		case <-frame.C:
			session.Update()
			draw(screen, surface, session, renderer, scoreboard, board)
		}
	}
}

// pollEvents forwards screen events until the screen is finalized
func pollEvents(screen tcell.Screen, events chan<- tcell.Event) {
	for {
		ev := screen.PollEvent()
		// nil once Fini has run
		if ev == nil {
			return
		}
		events <- ev
	}
}

func isQuit(e *tcell.EventKey) bool {
	if e.Key() == tcell.KeyEscape || e.Key() == tcell.KeyCtrlC {
		return true
	}
	r := e.Rune()
	return e.Key() == tcell.KeyRune && (r == 'q' || r == 'Q')
}

func handleKey(session *app.Session, e *tcell.EventKey) {
	switch e.Key() {
	case tcell.KeyUp:
		session.HandleKey(input.KeyUp)
	case tcell.KeyDown:
		session.HandleKey(input.KeyDown)
	case tcell.KeyLeft:
		session.HandleKey(input.KeyLeft)
	case tcell.KeyRight:
		session.HandleKey(input.KeyRight)
	case tcell.KeyF9:
		if session.Game.State() != game.Running {
			session.Game.ResetScores()
		}
	case tcell.KeyRune:
		if r := e.Rune(); r == 'g' || r == 'G' {
			session.TogglePanel()
			return
		}
		session.HandleKey(input.KeyFromRune(e.Rune()))
	}
}

func handlePrompt(p *ui.NamePrompt, e *tcell.EventKey) {
	switch e.Key() {
	case tcell.KeyEnter:
		p.Submit()
	case tcell.KeyEscape:
		p.Cancel()
	case tcell.KeyBackspace, tcell.KeyBackspace2:
		p.Backspace()
	case tcell.KeyRune:
		p.Type(e.Rune())
	}
}

func draw(screen tcell.Screen, surface *ui.TcellSurface, session *app.Session, renderer *ui.Renderer, scoreboard *ui.Scoreboard, board int) {
	screen.Clear()
	if session.Panel.Visible() {
		renderer.Draw()
		scoreboard.Draw(surface, 1)
		session.Prompt.Draw(surface, board, board, 1)
	} else {
		w, h := surface.Size()
		surface.FillRect(0, 0, w, h, ui.ColorBackground)
		surface.DrawCenteredText("press G to show the game", w/2, h/2, 1, ui.ColorTextDim)
	}
	screen.Show()
}
