package input

import (
	"unicode"

	"snake-arcade/game"
	"snake-arcade/game/types"
)

// Key is a frontend-independent key code
type Key int

const (
	KeyNone Key = iota
	KeyUp
	KeyDown
	KeyLeft
	KeyRight
	KeyW
	KeyA
	KeyS
	KeyD
	Key1
	Key2
	Key3
)

// KeyFromRune maps a typed character to a Key, ignoring case
func KeyFromRune(r rune) Key {
	switch unicode.ToLower(r) {
	case 'w':
		return KeyW
	case 'a':
		return KeyA
	case 's':
		return KeyS
	case 'd':
		return KeyD
	case '1':
		return Key1
	case '2':
		return Key2
	case '3':
		return Key3
	}
	return KeyNone
}

// Direction returns the direction bound to k, if any
func (k Key) Direction() (types.Direction, bool) {
	switch k {
	case KeyUp, KeyW:
		return types.Up, true
	case KeyDown, KeyS:
		return types.Down, true
	case KeyLeft, KeyA:
		return types.Left, true
	case KeyRight, KeyD:
		return types.Right, true
	}
	return types.Direction{}, false
}

// Mode returns the speed mode bound to k, if any
func (k Key) Mode() (types.SpeedMode, bool) {
	switch k {
	case Key1:
		return types.ModeSlow, true
	case Key2:
		return types.ModeNormal, true
	case Key3:
		return types.ModeFast, true
	}
	return 0, false
}

// Game is the part of game.Game the controller drives
type Game interface {
	State() game.State
	Start()
	Steer(dir types.Direction) bool
	SetMode(mode types.SpeedMode) error
}

// Visibility reports whether the game panel is on screen
type Visibility interface {
	Visible() bool
}

// Panel is a simple toggleable Visibility
type Panel struct {
	visible bool
}

func NewPanel(visible bool) *Panel {
	return &Panel{visible: visible}
}

func (p *Panel) Visible() bool {
	return p.visible
}

func (p *Panel) Toggle() bool {
	p.visible = !p.visible
	return p.visible
}

type Controller struct {
	game       Game
	visibility Visibility
}

// NewController wires keys to g. A nil visibility means always visible.
func NewController(g Game, visibility Visibility) *Controller {
	return &Controller{
		game:       g,
		visibility: visibility,
	}
}

func (c *Controller) visible() bool {
	return c.visibility == nil || c.visibility.Visible()
}

// HandleKey applies k and reports whether it was consumed
func (c *Controller) HandleKey(k Key) bool {
	if mode, ok := k.Mode(); ok {
		return c.selectMode(mode)
	}

	dir, ok := k.Direction()
	if !ok || !c.visible() {
		return false
	}
	if c.game.State() != game.Running {
		c.game.Start()
	}
	c.game.Steer(dir)
	return true
}

// selectMode changes the speed while no run is in progress. From Idle on a
// visible panel it also starts the run.
func (c *Controller) selectMode(mode types.SpeedMode) bool {
	state := c.game.State()
	if state == game.Running {
		return false
	}
	if err := c.game.SetMode(mode); err != nil {
		return false
	}
	if state == game.Idle && c.visible() {
		c.game.Start()
	}
	return true
}
