package animation

import (
	"time"

	"github.com/corvidgfx/tracer-go/engine/objects"
)

// Animator owns the set of objects currently running a clock-driven
// animation. It is deliberately a separate concern from TimeTracker's
// tracked-object bookkeeping: an object can be tracked (it has a slot in the
// GPU time buffer) without being animated (its clock was never launched, or
// was stopped), and Animator only ever holds entries for the latter.
type Animator struct {
	clocks map[objects.ObjectUid]Clock
	now    time.Time
}

// NewAnimator returns an Animator with no running clocks.
func NewAnimator() Animator {
	return Animator{clocks: make(map[objects.ObjectUid]Clock)}
}

// TakeTime captures the current instant, used as the evaluation point for
// every clock until the next TakeTime call.
func (a *Animator) TakeTime() {
	a.now = time.Now()
}

// AnimateTime starts (or restarts) target's clock with parameters, anchored
// at the instant of the most recent TakeTime call.
func (a *Animator) AnimateTime(target objects.ObjectUid, parameters ClockParameters) {
	if a.clocks == nil {
		a.clocks = make(map[objects.ObjectUid]Clock)
	}
	a.clocks[target] = NewClock(a.now, parameters)
}

// Stop removes target's running clock, if any.
func (a *Animator) Stop(target objects.ObjectUid) {
	delete(a.clocks, target)
}

// Clear removes every running clock.
func (a *Animator) Clear() {
	a.clocks = make(map[objects.ObjectUid]Clock)
}

// LocalTimeOf returns target's local animation time at the last captured
// instant, or ok=false if target has no running clock.
func (a *Animator) LocalTimeOf(target objects.ObjectUid) (localTime float64, ok bool) {
	clock, found := a.clocks[target]
	if !found {
		return 0, false
	}
	return clock.LocalTime(a.now), true
}

// RemoveFinished drops every clock whose time-to-live has elapsed as of the
// last captured instant, so a one-shot animation's final local time gets
// written exactly once before its clock stops contributing updates.
func (a *Animator) RemoveFinished() {
	for uid, clock := range a.clocks {
		if !clock.Ticking(a.now) {
			delete(a.clocks, uid)
		}
	}
}
