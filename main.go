package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"snake-arcade/app"
	"snake-arcade/game"
	"snake-arcade/input"
	"snake-arcade/ui"

	rl "github.com/gen2brain/raylib-go/raylib"
)

const panelTiles = 12

var keyBindings = []struct {
	code int32
	key  input.Key
}{
	{rl.KeyUp, input.KeyUp},
	{rl.KeyDown, input.KeyDown},
	{rl.KeyLeft, input.KeyLeft},
	{rl.KeyRight, input.KeyRight},
	{rl.KeyW, input.KeyW},
	{rl.KeyA, input.KeyA},
	{rl.KeyS, input.KeyS},
	{rl.KeyD, input.KeyD},
	{rl.KeyOne, input.Key1},
	{rl.KeyTwo, input.Key2},
	{rl.KeyThree, input.Key3},
}

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

	cell := cfg.TileSize
	boardW := cfg.TileCount * cell
	boardH := cfg.TileCount * cell
	screenW := boardW + panelTiles*cell
	screenH := boardH + 3*cell

	if !opts.Debug {
		rl.SetTraceLogLevel(rl.LogWarning)
	}
	rl.InitWindow(int32(screenW), int32(screenH), "Snake")
	defer rl.CloseWindow()
	rl.SetTargetFPS(60)
	rl.SetExitKey(0)

	session := app.NewSession(cfg, app.SessionOptions{Seed: opts.Seed, Sound: opts.Sound})
	defer session.Close()

	surface := ui.NewRaylibSurface(screenW, screenH)
	renderer := ui.NewRenderer(surface, cell, ui.ASCIIGlyphs)
	scoreboard := ui.NewScoreboard(session.Scores, boardW, 0, panelTiles*cell, boardH)
	if err := session.Attach(renderer, scoreboard); err != nil {
		log.Printf("[main] attach failed: %v", err)
		fmt.Fprintf(os.Stderr, "%v\n", err)
		return
	}

	for !rl.WindowShouldClose() {
		if session.Prompt.Active() {
			handlePrompt(session.Prompt)
		} else {
			if rl.IsKeyPressed(rl.KeyEscape) || rl.IsKeyPressed(rl.KeyQ) {
				break
			}
			if rl.IsKeyPressed(rl.KeyG) {
				session.TogglePanel()
			}
			if rl.IsKeyPressed(rl.KeyF9) && session.Game.State() != game.Running {
				session.Game.ResetScores()
			}
			for _, b := range keyBindings {
				if rl.IsKeyPressed(b.code) {
					session.HandleKey(b.key)
				}
			}
		}

		session.Update()

		rl.BeginDrawing()
		if session.Panel.Visible() {
			renderer.Draw()
			scoreboard.Draw(surface, cell)
			session.Prompt.Draw(surface, boardW, boardH, cell)
		} else {
			rl.ClearBackground(rl.NewColor(ui.ColorBackground.R, ui.ColorBackground.G, ui.ColorBackground.B, 255))
			surface.DrawCenteredText("press G to show the game", screenW/2, screenH/2, cell, ui.ColorTextDim)
		}
		rl.EndDrawing()
	}
}

// handlePrompt feeds typed characters and the editing keys to the name prompt
func handlePrompt(p *ui.NamePrompt) {
	for ch := rl.GetCharPressed(); ch > 0; ch = rl.GetCharPressed() {
		p.Type(rune(ch))
	}
	switch {
	case rl.IsKeyPressed(rl.KeyBackspace):
		p.Backspace()
	case rl.IsKeyPressed(rl.KeyEnter):
		p.Submit()
	case rl.IsKeyPressed(rl.KeyEscape):
		p.Cancel()
	}
}
