package manager

import (
	"time"

	"snake-arcade/game/clock"
	"snake-arcade/game/entity"
	"snake-arcade/game/types"
)

// EffectManager tracks the timed power-ups and applies one-shot bonuses
type EffectManager struct {
	sched *clock.Scheduler

	turbo       bool
	doubleScore bool
	turboTimer  *clock.Handle
	doubleTimer *clock.Handle

	onSpeedChange func()
	onExpire      func(kind entity.BonusKind)
}

func NewEffectManager(sched *clock.Scheduler) *EffectManager {
	return &EffectManager{sched: sched}
}

// OnSpeedChange registers the callback run whenever turbo toggles
func (em *EffectManager) OnSpeedChange(fn func()) {
	em.onSpeedChange = fn
}

// OnExpire registers the callback run when a timed effect runs out
func (em *EffectManager) OnExpire(fn func(kind entity.BonusKind)) {
	em.onExpire = fn
}

// Apply resolves a picked-up bonus and returns the points it awards
func (em *EffectManager) Apply(kind entity.BonusKind, snake *entity.Snake) int {
	switch kind {
	case entity.BonusTurbo:
		em.ActivateTurbo()
	case entity.BonusDoubleScore:
		em.ActivateDoubleScore()
	case entity.BonusJackpot:
		return types.JackpotPoints
	case entity.BonusShrink:
		if snake != nil {
			snake.Shrink(types.ShrinkSegments, types.MinSnakeLength)
		}
	}
	return 0
}

// ActivateTurbo sets turbo and restarts its countdown
func (em *EffectManager) ActivateTurbo() {
	was := em.turbo
	em.turbo = true
	em.turboTimer.Cancel()
	em.turboTimer = em.sched.After(types.TurboDuration, func(time.Time) {
		em.turbo = false
		em.turboTimer = nil
		em.expired(entity.BonusTurbo)
		em.speedChanged()
	})
	if !was {
		em.speedChanged()
	}
}

// ActivateDoubleScore sets the multiplier and restarts its countdown
func (em *EffectManager) ActivateDoubleScore() {
	em.doubleScore = true
	em.doubleTimer.Cancel()
	em.doubleTimer = em.sched.After(types.DoubleScoreDuration, func(time.Time) {
		em.doubleScore = false
		em.doubleTimer = nil
		em.expired(entity.BonusDoubleScore)
	})
}

func (em *EffectManager) speedChanged() {
	if em.onSpeedChange != nil {
		em.onSpeedChange()
	}
}

func (em *EffectManager) expired(kind entity.BonusKind) {
	if em.onExpire != nil {
		em.onExpire(kind)
	}
}

func (em *EffectManager) Turbo() bool {
	return em.turbo
}

func (em *EffectManager) DoubleScore() bool {
	return em.doubleScore
}

// AppleGain is the score for one apple: doubled under double-score,
// plus one under turbo
func (em *EffectManager) AppleGain() int {
	gain := 1
	if em.doubleScore {
		gain *= 2
	}
	if em.turbo {
		gain++
	}
	return gain
}

// Interval derives the effective tick interval from base
func (em *EffectManager) Interval(base time.Duration) time.Duration {
	if !em.turbo {
		return base
	}
	d := time.Duration(float64(base) * types.TurboFactor)
	if d < types.MinTickInterval {
		d = types.MinTickInterval
	}
	return d
}

// Remaining returns the time left on each timed effect at now
func (em *EffectManager) Remaining(now time.Time) (turbo, double time.Duration) {
	if em.turboTimer.Active() {
		turbo = em.turboTimer.Due().Sub(now)
	}
	if em.doubleTimer.Active() {
		double = em.doubleTimer.Due().Sub(now)
	}
	return turbo, double
}

// Clear drops both flags and cancels their countdowns without firing
// any callbacks
func (em *EffectManager) Clear() {
	em.turboTimer.Cancel()
	em.doubleTimer.Cancel()
	em.turboTimer = nil
	em.doubleTimer = nil
	em.turbo = false
	em.doubleScore = false
}
