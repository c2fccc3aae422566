package animation

import "time"

// Clock maps a global wall-clock instant to an object's local animation
// time, according to a fixed set of ClockParameters and the instant the
// clock itself started ticking.
type Clock struct {
	parameters        ClockParameters
	globalClockStart time.Time
}

// NewClock builds a Clock anchored at currentTime.
func NewClock(currentTime time.Time, parameters ClockParameters) Clock {
	return Clock{parameters: parameters, globalClockStart: currentTime}
}

// Ticking reports whether the clock is still within its time-to-live at
// globalTime. A clock with no time-to-live ticks forever.
func (c Clock) Ticking(globalTime time.Time) bool {
	ttl := c.parameters.timeToLiveValue()
	if ttl == nil {
		return true
	}
	return globalTime.Sub(c.globalClockStart) < ttl.Span()
}

// LocalTime returns the object's local animation time at globalTime,
// applying birth offset, playback speed, periodization, time-to-live, and
// end action in that order of composition.
func (c Clock) LocalTime(globalTime time.Time) float64 {
	localForward := c.localForwardTime(globalTime)

	if ttl := c.parameters.timeToLiveValue(); ttl != nil && ttl.Reverse() {
		return (ttl.Span() + c.parameters.birthTimeOffsetValue()).Seconds() - localForward
	}

	return localForward
}

func (c Clock) localForwardTime(globalTime time.Time) float64 {
	globalElapsed := globalTime.Sub(c.globalClockStart)

	if ttl := c.parameters.timeToLiveValue(); ttl != nil && globalElapsed > ttl.Span() {
		switch c.parameters.endActionValue() {
		case TeleportToZero:
			return 0.0
		case LeaveAsIs:
			return c.evaluateTimePoint(ttl.Span())
		case TeleportToEnd:
			return ttl.Span().Seconds() * c.parameters.speedMultiplierValue()
		}
	}

	return c.evaluateTimePoint(globalElapsed)
}

func (c Clock) evaluateTimePoint(globalElapsed time.Duration) float64 {
	localTimeOffset := c.parameters.birthTimeOffsetValue().Seconds()
	localTimeMultiplier := c.parameters.speedMultiplierValue()
	localElapsed := localTimeOffset + globalElapsed.Seconds()*localTimeMultiplier

	periodization := c.parameters.periodizationValue()
	if periodization == nil {
		return localElapsed
	}

	period := periodization.Period().Seconds()
	periodCount := int64(localElapsed / period)
	localPeriodRest := localElapsed - float64(periodCount)*period

	switch periodization.WrapKind() {
	case Reverse:
		if periodCount%2 == 0 {
			return localPeriodRest
		}
		return period - localPeriodRest
	default:
		return localPeriodRest
	}
}
