package ui

import (
	"image/color"

	"snake-arcade/game/entity"
)

var (
	ColorBackground    = color.RGBA{30, 30, 30, 255}
	ColorFieldBg       = color.RGBA{40, 40, 45, 255}
	ColorGrid          = color.RGBA{60, 60, 65, 255}
	ColorSnakeBody     = color.RGBA{100, 200, 100, 255}
	ColorSnakeHead     = color.RGBA{160, 255, 140, 255}
	ColorApple         = color.RGBA{255, 80, 80, 255}
	ColorGolden        = color.RGBA{255, 200, 60, 255}
	ColorText          = color.RGBA{220, 220, 220, 255}
	ColorTextDim       = color.RGBA{150, 150, 150, 255}
	ColorTextHighlight = color.RGBA{255, 255, 100, 255}
	ColorInputBg       = color.RGBA{50, 50, 55, 255}
	ColorError         = color.RGBA{255, 100, 100, 255}
)

var bonusColors = map[entity.BonusKind]color.RGBA{
	entity.BonusTurbo:       {100, 150, 255, 255},
	entity.BonusDoubleScore: {200, 100, 255, 255},
	entity.BonusJackpot:     {255, 255, 100, 255},
	entity.BonusShrink:      {100, 255, 255, 255},
}

// Glyphs are the symbols drawn on top of consumable tiles
type Glyphs struct {
	Apple  string
	Golden string
	Bonus  map[entity.BonusKind]string
}

// EmojiGlyphs suit terminals and any surface with an emoji font
var EmojiGlyphs = Glyphs{
	Apple:  "🍎",
	Golden: "🌟",
	Bonus: map[entity.BonusKind]string{
		entity.BonusTurbo:       "⚡",
		entity.BonusDoubleScore: "💎",
		entity.BonusJackpot:     "💰",
		entity.BonusShrink:      "✂",
	},
}

// ASCIIGlyphs are for surfaces limited to Latin-1 fonts
var ASCIIGlyphs = Glyphs{
	Apple:  "",
	Golden: "G",
	Bonus: map[entity.BonusKind]string{
		entity.BonusTurbo:       "T",
		entity.BonusDoubleScore: "x2",
		entity.BonusJackpot:     "$",
		entity.BonusShrink:      "S",
	},
}

func BonusColor(kind entity.BonusKind) color.RGBA {
	if c, ok := bonusColors[kind]; ok {
		return c
	}
	return ColorText
}

func Darken(c color.RGBA, factor float64) color.RGBA {
	return color.RGBA{
		R: uint8(float64(c.R) * factor),
		G: uint8(float64(c.G) * factor),
		B: uint8(float64(c.B) * factor),
		A: c.A,
	}
}

func Lighten(c color.RGBA, factor float64) color.RGBA {
	return color.RGBA{
		R: uint8(min(255, float64(c.R)*factor)),
		G: uint8(min(255, float64(c.G)*factor)),
		B: uint8(min(255, float64(c.B)*factor)),
		A: c.A,
	}
}
