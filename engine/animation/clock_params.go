// Package animation carries every scene object's notion of "now": how a
// global wall-clock duration maps to an object's own local time (birth
// offset, playback speed, looping, time-to-live), and the registry that
// tracks which objects are currently animated and in what evaluation order
// their GPU buffers must be refreshed.
package animation

import (
	"fmt"
	"time"
)

// TimeDirection chooses whether local time runs with or against the global
// clock once a finite time-to-live is in effect.
type TimeDirection int

const (
	// Forward runs local time the same direction as the global clock.
	Forward TimeDirection = iota
	// Backward counts local time down from the end of the life span.
	Backward
)

// LifeSpan bounds how long an animation keeps ticking and which direction
// local time runs within that bound.
type LifeSpan struct {
	span      time.Duration
	direction TimeDirection
}

// NewLifeSpan builds a LifeSpan.
func NewLifeSpan(span time.Duration, direction TimeDirection) LifeSpan {
	return LifeSpan{span: span, direction: direction}
}

// Span returns the life span's duration.
func (l LifeSpan) Span() time.Duration { return l.span }

// Reverse reports whether local time counts down within this life span.
func (l LifeSpan) Reverse() bool { return l.direction == Backward }

// WrapKind chooses how local time behaves once it crosses a period
// boundary.
type WrapKind int

const (
	// Restart snaps back to zero at the start of every period.
	Restart WrapKind = iota
	// Reverse ping-pongs: odd periods run the period backward.
	Reverse
)

// Periodization makes local time repeat every period, according to
// wrapKind.
type Periodization struct {
	wrapKind WrapKind
	period   time.Duration
}

// NewPeriodization builds a Periodization.
func NewPeriodization(wrapKind WrapKind, period time.Duration) Periodization {
	return Periodization{wrapKind: wrapKind, period: period}
}

// WrapKind returns the configured wrap behavior.
func (p Periodization) WrapKind() WrapKind { return p.wrapKind }

// Period returns the repeat period.
func (p Periodization) Period() time.Duration { return p.period }

// EndActionKind chooses what local_time reports once a finite time-to-live
// has elapsed.
type EndActionKind int

const (
	// TeleportToZero snaps local time to zero once the TTL elapses.
	TeleportToZero EndActionKind = iota
	// LeaveAsIs freezes local time at whatever value it held exactly at
	// the TTL boundary.
	LeaveAsIs
	// TeleportToEnd snaps local time to the TTL span itself (scaled by
	// playback speed).
	TeleportToEnd
)

// ClockParametersDraft is the under-construction phase of a clock's
// parameters: every setter is available, but make() hasn't yet validated
// the combination and handed back the immutable, clock-ready value.
//
// This mirrors a two-phase builder: a draft phase where invalid
// intermediate states are allowed (e.g. a backward time-to-live shorter
// than the birth offset, fixed up by a later call) and a built phase that
// only Make can produce, once the combination has been checked.
type ClockParametersDraft struct {
	birthTimeOffset  time.Duration
	timeToLive       *LifeSpan
	speedMultiplier  float64
	periodization    *Periodization
	endAction        EndActionKind
}

// NewClockParametersDraft returns a draft with an infinite time-to-live,
// zero birth offset, 1x playback speed, no periodization, and the LeaveAsIs
// end action.
func NewClockParametersDraft() ClockParametersDraft {
	return ClockParametersDraft{
		speedMultiplier: 1.0,
		endAction:       LeaveAsIs,
	}
}

// BirthTimeOffset sets the local-time offset applied before any other
// transform.
func (d ClockParametersDraft) BirthTimeOffset(value time.Duration) ClockParametersDraft {
	d.birthTimeOffset = value
	return d
}

// WithGlobalFiniteTimeToLive bounds the clock's life to span, run in the
// given direction.
func (d ClockParametersDraft) WithGlobalFiniteTimeToLive(span time.Duration, direction TimeDirection) ClockParametersDraft {
	ttl := NewLifeSpan(span, direction)
	d.timeToLive = &ttl
	return d
}

// WithGlobalInfiniteTimeToLive removes any time-to-live bound, so the clock
// never stops ticking.
func (d ClockParametersDraft) WithGlobalInfiniteTimeToLive() ClockParametersDraft {
	d.timeToLive = nil
	return d
}

// PlaybackSpeedMultiplier scales how fast local time advances relative to
// the global clock. Panics if multiplier is not strictly positive — a zero
// or negative multiplier isn't "slow" or "reverse", it's a different
// feature (pause, Backward) expressed some other way.
func (d ClockParametersDraft) PlaybackSpeedMultiplier(multiplier float64) ClockParametersDraft {
	if multiplier <= 0.0 {
		panic(fmt.Sprintf("animation: playback speed multiplier must be positive, got %v", multiplier))
	}
	d.speedMultiplier = multiplier
	return d
}

// WithPeriodization sets (or clears, with nil) the repeat behavior applied to
// local time.
func (d ClockParametersDraft) WithPeriodization(value *Periodization) ClockParametersDraft {
	d.periodization = value
	return d
}

// EndAction sets what local_time reports once a finite time-to-live has
// elapsed.
func (d ClockParametersDraft) EndAction(action EndActionKind) ClockParametersDraft {
	d.endAction = action
	return d
}

// Make validates the draft and returns the immutable parameters a Clock is
// built from. Panics if a Backward time-to-live's span does not exceed the
// birth time offset — such a clock would need to report a negative local
// time the instant it starts ticking.
func (d ClockParametersDraft) Make() ClockParameters {
	if d.timeToLive != nil && d.timeToLive.direction == Backward {
		if d.timeToLive.span <= d.birthTimeOffset {
			panic("animation: backward time-to-live span must exceed the birth time offset")
		}
	}
	return ClockParameters{
		birthTimeOffset: d.birthTimeOffset,
		timeToLive:      d.timeToLive,
		speedMultiplier: d.speedMultiplier,
		periodization:   d.periodization,
		endAction:       d.endAction,
	}
}

// ClockParameters is the validated, immutable configuration a Clock
// evaluates against. Only ClockParametersDraft.Make produces one.
type ClockParameters struct {
	birthTimeOffset time.Duration
	timeToLive      *LifeSpan
	speedMultiplier float64
	periodization   *Periodization
	endAction       EndActionKind
}

// DefaultClockParameters returns the parameters of an animation with no
// birth offset, 1x speed, no periodization, and an infinite time-to-live —
// equivalent to NewClockParametersDraft().Make().
func DefaultClockParameters() ClockParameters {
	return NewClockParametersDraft().Make()
}

func (p ClockParameters) birthTimeOffsetValue() time.Duration { return p.birthTimeOffset }
func (p ClockParameters) timeToLiveValue() *LifeSpan           { return p.timeToLive }
func (p ClockParameters) speedMultiplierValue() float64        { return p.speedMultiplier }
func (p ClockParameters) periodizationValue() *Periodization   { return p.periodization }
func (p ClockParameters) endActionValue() EndActionKind        { return p.endAction }
