package clock

import "time"

// Handle identifies a scheduled callback. Cancelling drops it; a dropped
// handle never fires again.
type Handle struct {
	seq       uint64
	at        time.Time
	every     time.Duration
	fn        func(now time.Time)
	cancelled bool
	sched     *Scheduler
}

// Cancel removes the callback from its scheduler. Safe on nil and on
// handles that already fired or were cancelled.
func (h *Handle) Cancel() {
	if h == nil || h.cancelled {
		return
	}
	h.cancelled = true
	h.sched.remove(h)
}

// Active reports whether the callback is still scheduled
func (h *Handle) Active() bool {
	return h != nil && !h.cancelled
}

// Due is the next time the callback fires
func (h *Handle) Due() time.Time {
	return h.at
}

// Interval is the repeat period, zero for one-shot handles
func (h *Handle) Interval() time.Duration {
	return h.every
}

// Scheduler runs recurring and one-shot callbacks on the caller's
// goroutine. Callbacks receive their scheduled time rather than the
// clock time of the Run that fired them.
type Scheduler struct {
	clock   Clock
	timers  []*Handle
	seq     uint64
	running bool
	current time.Time
}

func NewScheduler(c Clock) *Scheduler {
	if c == nil {
		c = RealClock{}
	}
	return &Scheduler{clock: c}
}

// Now is the firing time of the callback being run, or the clock time
// outside of Run
func (s *Scheduler) Now() time.Time {
	if s.running {
		return s.current
	}
	return s.clock.Now()
}

// After schedules fn once, d from now
func (s *Scheduler) After(d time.Duration, fn func(now time.Time)) *Handle {
	return s.add(d, 0, fn)
}

// Every schedules fn every d, first firing d from now
func (s *Scheduler) Every(d time.Duration, fn func(now time.Time)) *Handle {
	if d <= 0 {
		panic("clock: non-positive interval")
	}
	return s.add(d, d, fn)
}

func (s *Scheduler) add(d, every time.Duration, fn func(now time.Time)) *Handle {
	s.seq++
	h := &Handle{
		seq:   s.seq,
		at:    s.Now().Add(d),
		every: every,
		fn:    fn,
		sched: s,
	}
	s.timers = append(s.timers, h)
	return h
}

func (s *Scheduler) remove(h *Handle) {
	for i, t := range s.timers {
		if t == h {
			s.timers = append(s.timers[:i], s.timers[i+1:]...)
			return
		}
	}
}

// next returns the earliest handle due at or before now
func (s *Scheduler) next(now time.Time) *Handle {
	var best *Handle
	for _, h := range s.timers {
		if h.at.After(now) {
			continue
		}
		if best == nil || h.at.Before(best.at) || (h.at.Equal(best.at) && h.seq < best.seq) {
			best = h
		}
	}
	return best
}

// Run fires every callback due at the current clock time, in time order,
// and returns how many ran. A recurring callback that fell several periods
// behind fires once, at its oldest due time. Callbacks may schedule or
// cancel other callbacks; newly due ones run in the same pass.
func (s *Scheduler) Run() int {
	if s.running {
		return 0
	}
	now := s.clock.Now()
	s.running = true
	defer func() { s.running = false }()

	fired := 0
	for {
		h := s.next(now)
		if h == nil {
			return fired
		}
		s.current = h.at
		if h.every > 0 {
			// Missed periods are skipped: a recurring callback fires at
			// most once per Run
			for !h.at.After(now) {
				h.at = h.at.Add(h.every)
			}
		} else {
			h.cancelled = true
			s.remove(h)
		}
		h.fn(s.current)
		fired++
	}
}

// Pending is the number of scheduled callbacks
func (s *Scheduler) Pending() int {
	return len(s.timers)
}

// Clear cancels everything
func (s *Scheduler) Clear() {
	for _, h := range s.timers {
		h.cancelled = true
	}
	s.timers = nil
}
