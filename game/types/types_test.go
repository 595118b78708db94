package types

import (
	"errors"
	"testing"
	"time"
)

func TestDirectionOpposite(t *testing.T) {
	tests := []struct {
		dir  Direction
		want Direction
	}{
		{Up, Down},
		{Down, Up},
		{Left, Right},
		{Right, Left},
	}
	for _, tt := range tests {
		if got := tt.dir.Opposite(); got != tt.want {
			t.Errorf("%v.Opposite() = %v, want %v", tt.dir, got, tt.want)
		}
		if !tt.dir.IsOpposite(tt.want) {
			t.Errorf("%v.IsOpposite(%v) = false", tt.dir, tt.want)
		}
		if tt.dir.IsOpposite(tt.dir) {
			t.Errorf("%v.IsOpposite(itself) = true", tt.dir)
		}
	}
}

func TestDirectionValid(t *testing.T) {
	if (Direction{}).Valid() {
		t.Error("zero direction should be invalid")
	}
	if (Direction{X: 1, Y: 1}).Valid() {
		t.Error("diagonal should be invalid")
	}
	if !Left.Valid() {
		t.Error("Left should be valid")
	}
}

func TestGridContains(t *testing.T) {
	g := Grid{Width: 20, Height: 20}
	inside := []Point{{0, 0}, {19, 19}, {10, 0}}
	outside := []Point{{-1, 0}, {0, -1}, {20, 5}, {5, 20}}
	for _, p := range inside {
		if !g.Contains(p) {
			t.Errorf("Contains(%v) = false", p)
		}
	}
	for _, p := range outside {
		if g.Contains(p) {
			t.Errorf("Contains(%v) = true", p)
		}
	}
}

func TestParseMode(t *testing.T) {
	for _, m := range Modes {
		got, err := ParseMode(m.String())
		if err != nil || got != m {
			t.Errorf("ParseMode(%q) = %v, %v", m.String(), got, err)
		}
	}
	if _, err := ParseMode("ludicrous"); !errors.Is(err, ErrUnknownMode) {
		t.Errorf("expected ErrUnknownMode, got %v", err)
	}
}

func TestConfigValidate(t *testing.T) {
	cfg := DefaultConfig()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("default config invalid: %v", err)
	}

	bad := cfg.Copy()
	bad.TileCount = 3
	if bad.Validate() == nil {
		t.Error("expected error for tiny grid")
	}

	bad = cfg.Copy()
	bad.FastInterval = 10 * time.Millisecond
	if bad.Validate() == nil {
		t.Error("expected error for interval below floor")
	}

	if cfg.TileCount != 20 {
		t.Error("Copy must not alias the original")
	}
}

func TestBaseInterval(t *testing.T) {
	cfg := DefaultConfig()
	if cfg.BaseInterval(ModeSlow) <= cfg.BaseInterval(ModeNormal) {
		t.Error("slow should tick slower than normal")
	}
	if cfg.BaseInterval(ModeFast) >= cfg.BaseInterval(ModeNormal) {
		t.Error("fast should tick faster than normal")
	}
}
