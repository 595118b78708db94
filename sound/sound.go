// Package sound plays short synthesized cues for game events
package sound

import (
	"math"
	"sync"
	"time"

	"snake-arcade/game"
	"snake-arcade/game/entity"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"
)

const sampleRate = beep.SampleRate(44100)

// Cue is a named sequence of notes
type Cue int

const (
	CueNone Cue = iota
	CueEat
	CueGolden
	CueSpawn
	CueBonus
	CueShrink
	CueGameOver
)

type note struct {
	freq float64
	dur  time.Duration
}

var cues = map[Cue][]note{
	CueEat:      {{660, 60 * time.Millisecond}},
	CueGolden:   {{880, 60 * time.Millisecond}, {1175, 90 * time.Millisecond}},
	CueSpawn:    {{1320, 40 * time.Millisecond}},
	CueBonus:    {{523, 50 * time.Millisecond}, {659, 50 * time.Millisecond}, {784, 80 * time.Millisecond}},
	CueShrink:   {{784, 50 * time.Millisecond}, {523, 80 * time.Millisecond}},
	CueGameOver: {{392, 120 * time.Millisecond}, {311, 120 * time.Millisecond}, {196, 300 * time.Millisecond}},
}

// CueFor picks the cue for a game event
func CueFor(e game.Event) Cue {
	switch e.Kind {
	case game.EventAppleEaten:
		if e.Apple == entity.AppleGolden {
			return CueGolden
		}
		return CueEat
	case game.EventRareSpawn:
		return CueSpawn
	case game.EventBonusTaken:
		if e.Bonus == entity.BonusShrink {
			return CueShrink
		}
		return CueBonus
	case game.EventGameOver:
		return CueGameOver
	}
	return CueNone
}

// Player mixes cues onto the speaker. Every method is safe to call when
// the audio device never came up.
type Player struct {
	mu          sync.Mutex
	mixer       *beep.Mixer
	initialized bool
}

func NewPlayer() *Player {
	return &Player{mixer: &beep.Mixer{}}
}

// Initialize opens the audio device
func (p *Player) Initialize() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.initialized {
		return nil
	}
	if err := speaker.Init(sampleRate, sampleRate.N(50*time.Millisecond)); err != nil {
		return err
	}
	speaker.Play(p.mixer)
	p.initialized = true
	return nil
}

func (p *Player) Close() {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.initialized {
		return
	}
	speaker.Clear()
	p.initialized = false
}

// Play queues cue on the mixer
func (p *Player) Play(cue Cue) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.initialized {
		return
	}
	s := Streamer(cue)
	if s == nil {
		return
	}
	speaker.Lock()
	p.mixer.Add(s)
	speaker.Unlock()
}

// Listener adapts the player to the game's event stream
func (p *Player) Listener() game.Listener {
	return func(e game.Event) {
		if cue := CueFor(e); cue != CueNone {
			p.Play(cue)
		}
	}
}

// Streamer renders cue as a finite stream, nil for CueNone
func Streamer(cue Cue) beep.Streamer {
	notes, ok := cues[cue]
	if !ok {
		return nil
	}
	parts := make([]beep.Streamer, 0, len(notes))
	for _, n := range notes {
		parts = append(parts, beep.Take(sampleRate.N(n.dur), newTone(sampleRate, n.freq, n.dur)))
	}
	return beep.Seq(parts...)
}

// tone is a sine wave with a short attack and a linear release
type tone struct {
	sr    beep.SampleRate
	freq  float64
	total int
	pos   int
}

func newTone(sr beep.SampleRate, freq float64, dur time.Duration) *tone {
	return &tone{sr: sr, freq: freq, total: sr.N(dur)}
}

func (g *tone) Stream(samples [][2]float64) (n int, ok bool) {
	attack := g.sr.N(5 * time.Millisecond)
	for i := range samples {
		t := float64(g.pos) / float64(g.sr)

		env := 1.0
		if g.pos < attack {
			env = float64(g.pos) / float64(attack)
		}
		if g.total > 0 {
			env *= math.Max(0, 1-float64(g.pos)/float64(g.total))
		}

		sample := 0.2 * env * math.Sin(2*math.Pi*g.freq*t)
		samples[i][0] = sample
		samples[i][1] = sample
		g.pos++
	}
	return len(samples), true
}

func (g *tone) Err() error {
	return nil
}
