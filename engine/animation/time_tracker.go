package animation

import (
	"fmt"

	"github.com/corvidgfx/tracer-go/engine/objects"
	"github.com/corvidgfx/tracer-go/engine/util"
)

// animatable is one tracked object's slot in the GPU time buffer: its last
// evaluated local time, and the buffer index it must be written to.
type animatable struct {
	time  float64
	index int
}

func newAnimatable(index int) animatable {
	return animatable{index: index}
}

// timeAsF32 narrows the stored time to the precision the GPU buffer expects.
func (a animatable) timeAsF32() float32 { return float32(a.time) }

// updateTime applies a freshly-evaluated local time, if one was produced
// (the object is still animating). Returns whether anything changed.
func (a *animatable) updateTime(newTime float64, ok bool) bool {
	if !ok || newTime == a.time {
		return false
	}
	a.time = newTime
	return true
}

// TimeTracker owns the per-object local-time slots written into the scene's
// GPU time buffer every frame, plus the Animator that drives the subset of
// objects with a currently-running clock. Every tracked object occupies a
// buffer slot whether or not it is animating; an object with no running
// clock simply holds its last local time forever.
type TimeTracker struct {
	animator Animator
	tracked  map[objects.ObjectUid]animatable
	version  util.Version
}

// NewTimeTracker returns an empty tracker at version 0.
func NewTimeTracker() *TimeTracker {
	return &TimeTracker{
		animator: NewAnimator(),
		tracked:  make(map[objects.ObjectUid]animatable),
	}
}

// UpdateTime advances every running clock by one frame: it captures the
// current instant once, re-evaluates every tracked object's local time
// against it, bumps Version if anything actually changed, and finally drops
// any clock whose time-to-live has elapsed.
func (t *TimeTracker) UpdateTime() {
	t.animator.TakeTime()

	anyUpdated := false
	for uid, slot := range t.tracked {
		newTime, ok := t.animator.LocalTimeOf(uid)
		if slot.updateTime(newTime, ok) {
			anyUpdated = true
		}
		t.tracked[uid] = slot
	}
	if anyUpdated {
		t.version = t.version.Next()
	}

	t.animator.RemoveFinished()
}

// Launch starts target's animation. Panics if target isn't tracked —
// an object must occupy a time-buffer slot before it can be animated.
func (t *TimeTracker) Launch(target objects.ObjectUid, parameters ClockParameters) {
	if _, ok := t.tracked[target]; !ok {
		panic(fmt.Sprintf("animation: launch on untracked object %s", target))
	}
	t.animator.AnimateTime(target, parameters)
}

// Stop halts target's animation, leaving its last evaluated local time in
// place. Panics if target isn't tracked.
func (t *TimeTracker) Stop(target objects.ObjectUid) {
	if _, ok := t.tracked[target]; !ok {
		panic(fmt.Sprintf("animation: stop on untracked object %s", target))
	}
	t.animator.Stop(target)
}

// Animating reports whether target currently has a running clock.
func (t *TimeTracker) Animating(target objects.ObjectUid) bool {
	_, ok := t.animator.LocalTimeOf(target)
	return ok
}

// Track adds target to the tracked set at local time zero and renumbers
// every tracked object's buffer index according to newOrder, which must
// list every tracked object (including target) exactly once. Bumps
// Version.
func (t *TimeTracker) Track(target objects.ObjectUid, newOrder []objects.ObjectUid) {
	if len(newOrder) != len(t.tracked)+1 {
		panic("animation: Track newOrder length must equal tracked count + 1")
	}

	t.tracked[target] = newAnimatable(0)
	t.updateIndices(newOrder)

	t.version = t.version.Next()
}

// Forget removes target from the tracked set (if present) and renumbers the
// remaining objects according to newOrder. Bumps Version only when target
// was actually tracked.
func (t *TimeTracker) Forget(target objects.ObjectUid, newOrder []objects.ObjectUid) {
	if _, existed := t.tracked[target]; existed {
		delete(t.tracked, target)
		if len(newOrder) != len(t.tracked) {
			panic("animation: Forget newOrder length must equal remaining tracked count")
		}
		t.animator.Stop(target)
		t.updateIndices(newOrder)
		t.version = t.version.Next()
		return
	}

	if len(newOrder) != len(t.tracked) {
		panic("animation: Forget newOrder length must equal remaining tracked count")
	}
	t.updateIndices(newOrder)
}

// Clear drops every tracked object and running clock. No-op (and no
// Version bump) if nothing was tracked.
func (t *TimeTracker) Clear() {
	if len(t.tracked) == 0 {
		return
	}
	t.tracked = make(map[objects.ObjectUid]animatable)
	t.animator.Clear()
	t.version = t.version.Next()
}

// WriteTimes writes every tracked object's local time into target at its
// assigned index. Panics if target is shorter than the tracked count.
func (t *TimeTracker) WriteTimes(target []float32) {
	if len(target) < len(t.tracked) {
		panic("animation: WriteTimes target shorter than tracked count")
	}
	for _, slot := range t.tracked {
		target[slot.index] = slot.timeAsF32()
	}
}

func (t *TimeTracker) updateIndices(newOrder []objects.ObjectUid) {
	for index, uid := range newOrder {
		slot, ok := t.tracked[uid]
		if !ok {
			panic(fmt.Sprintf("animation: unknown object uid %s", uid))
		}
		slot.index = index
		t.tracked[uid] = slot
	}
}

// Version returns the tracker's current version.
func (t *TimeTracker) Version() util.Version {
	return t.version
}

// TrackedCount returns the number of objects currently tracked.
func (t *TimeTracker) TrackedCount() int {
	return len(t.tracked)
}
