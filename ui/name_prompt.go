package ui

import (
	"fmt"
	"unicode"
	"unicode/utf8"

	"snake-arcade/game/types"
)

// NamePrompt is the text entry shown after a run ends. It implements
// game.NamePrompter; the frontend feeds it keys while Active.
type NamePrompt struct {
	Text      string
	MaxLength int

	score  int
	active bool
	done   func(name string, ok bool)
}

func NewNamePrompt() *NamePrompt {
	return &NamePrompt{MaxLength: types.MaxNameLen}
}

// RequestName opens the prompt. A prompt still open from an earlier run is
// cancelled first.
func (p *NamePrompt) RequestName(score int, done func(name string, ok bool)) {
	if p.active {
		p.finish(false)
	}
	p.Text = ""
	p.score = score
	p.done = done
	p.active = true
}

func (p *NamePrompt) Active() bool {
	return p.active
}

// Type appends r if it is printable and the name has room
func (p *NamePrompt) Type(r rune) {
	if !p.active || !unicode.IsPrint(r) {
		return
	}
	if utf8.RuneCountInString(p.Text) >= p.MaxLength {
		return
	}
	p.Text += string(r)
}

func (p *NamePrompt) Backspace() {
	if !p.active || p.Text == "" {
		return
	}
	_, size := utf8.DecodeLastRuneInString(p.Text)
	p.Text = p.Text[:len(p.Text)-size]
}

// Submit closes the prompt with the typed name, which may be blank
func (p *NamePrompt) Submit() {
	p.finish(true)
}

// Cancel closes the prompt without recording anything
func (p *NamePrompt) Cancel() {
	p.finish(false)
}

func (p *NamePrompt) finish(ok bool) {
	if !p.active {
		return
	}
	p.active = false
	done := p.done
	p.done = nil
	if done != nil {
		done(p.Text, ok)
	}
}

// Draw paints the prompt as a band across the lower part of the board
func (p *NamePrompt) Draw(s Surface, boardW, boardH, cell int) {
	if !p.active {
		return
	}
	gap := cell + cell/2
	if gap < 1 {
		gap = 1
	}
	size := cell
	if size < 10 {
		size = 10
	}

	top := boardH - 4*gap
	s.FillRect(0, top, boardW, 3*gap, ColorInputBg)

	s.DrawCenteredText(fmt.Sprintf("New score %d. Your name:", p.score), boardW/2, top+gap/2, size, ColorText)

	text := p.Text + "_"
	c := ColorTextHighlight
	if p.Text == "" {
		text = types.DefaultName
		c = ColorTextDim
	}
	s.DrawCenteredText(text, boardW/2, top+gap+gap/2, size, c)
	s.DrawCenteredText("enter to save, esc to skip", boardW/2, top+2*gap+gap/2, size*3/4, ColorTextDim)
}
