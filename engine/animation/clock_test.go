package animation

import (
	"math"
	"testing"
	"time"
)

func TestClockTicking(t *testing.T) {
	start := time.Now()
	animationDuration := 10 * time.Millisecond
	params := NewClockParametersDraft().
		WithGlobalFiniteTimeToLive(animationDuration, Forward).
		Make()
	clock := NewClock(start, params)

	if !clock.Ticking(start) {
		t.Fatal("expected clock to be ticking at its own start")
	}
	if clock.Ticking(start.Add(2 * animationDuration)) {
		t.Fatal("expected clock to have stopped ticking past its time-to-live")
	}
}

func TestLocalTimeBasicForward(t *testing.T) {
	start := time.Now()
	clock := NewClock(start, DefaultClockParameters())

	elapsed := 5 * time.Second
	got := clock.LocalTime(start.Add(elapsed))
	if got != elapsed.Seconds() {
		t.Fatalf("got %v want %v", got, elapsed.Seconds())
	}
}

func TestLocalTimeWithBirthOffset(t *testing.T) {
	start := time.Now()
	birthOffset := 3 * time.Second
	elapsed := 5 * time.Second

	params := NewClockParametersDraft().BirthTimeOffset(birthOffset).Make()
	clock := NewClock(start, params)

	got := clock.LocalTime(start.Add(elapsed))
	want := (birthOffset + elapsed).Seconds()
	if got != want {
		t.Fatalf("got %v want %v", got, want)
	}
}

func TestLocalTimeWithSpeedMultiplier(t *testing.T) {
	start := time.Now()
	multiplier := 2.0
	elapsed := 5 * time.Second

	params := NewClockParametersDraft().PlaybackSpeedMultiplier(multiplier).Make()
	clock := NewClock(start, params)

	got := clock.LocalTime(start.Add(elapsed))
	want := elapsed.Seconds() * multiplier
	if got != want {
		t.Fatalf("got %v want %v", got, want)
	}
}

func TestLocalTimeWithTtlForwardWithinSpan(t *testing.T) {
	start := time.Now()
	lifeSpan := 10 * time.Second
	elapsed := lifeSpan / 2

	params := NewClockParametersDraft().WithGlobalFiniteTimeToLive(lifeSpan, Forward).Make()
	clock := NewClock(start, params)

	got := clock.LocalTime(start.Add(elapsed))
	if got != elapsed.Seconds() {
		t.Fatalf("got %v want %v", got, elapsed.Seconds())
	}
}

func TestLocalTimeWithTtlBackwardWithinSpan(t *testing.T) {
	start := time.Now()
	lifeSpan := 10 * time.Second
	elapsed := 3 * time.Second
	offset := 1 * time.Second

	params := NewClockParametersDraft().
		WithGlobalFiniteTimeToLive(lifeSpan, Backward).
		BirthTimeOffset(offset).
		Make()
	clock := NewClock(start, params)

	got := clock.LocalTime(start.Add(elapsed))
	want := (lifeSpan - elapsed).Seconds()
	if got != want {
		t.Fatalf("got %v want %v", got, want)
	}
}

func TestLocalTimeWithTtlExceeded(t *testing.T) {
	cases := []struct {
		endAction EndActionKind
		direction TimeDirection
		want      float64
	}{
		{TeleportToEnd, Forward, 5.0},
		{TeleportToEnd, Backward, 3.0},
		{TeleportToZero, Forward, 0.0},
		{TeleportToZero, Backward, 8.0},
		{LeaveAsIs, Forward, 8.0},
		{LeaveAsIs, Backward, 0.0},
	}

	for _, tc := range cases {
		start := time.Now()
		lifeSpan := 5 * time.Second

		params := NewClockParametersDraft().
			WithGlobalFiniteTimeToLive(lifeSpan, tc.direction).
			BirthTimeOffset(3 * time.Second).
			EndAction(tc.endAction).
			Make()
		clock := NewClock(start, params)

		got := clock.LocalTime(start.Add(lifeSpan + time.Nanosecond*7))
		if got != tc.want {
			t.Fatalf("direction=%v endAction=%v: got %v want %v", tc.direction, tc.endAction, got, tc.want)
		}
	}
}

func TestLocalTimePeriodizationRestartSinglePeriod(t *testing.T) {
	start := time.Now()
	period := 3 * time.Second
	periodization := NewPeriodization(Restart, period)

	params := NewClockParametersDraft().WithPeriodization(&periodization).Make()
	clock := NewClock(start, params)

	if got := clock.LocalTime(start.Add(period - time.Second)); got != 2.0 {
		t.Fatalf("within first period: got %v want 2.0", got)
	}
	if got := clock.LocalTime(start.Add(period)); got != 0.0 {
		t.Fatalf("at period boundary: got %v want 0.0", got)
	}
	if got := clock.LocalTime(start.Add(period + 2*time.Second)); got != 2.0 {
		t.Fatalf("into second period: got %v want 2.0", got)
	}
}

func TestLocalTimePeriodizationRestartMultiplePeriods(t *testing.T) {
	start := time.Now()
	periodization := NewPeriodization(Restart, 2*time.Second)
	params := NewClockParametersDraft().WithPeriodization(&periodization).Make()
	clock := NewClock(start, params)

	got := clock.LocalTime(start.Add(7 * time.Second))
	if got != 1.0 {
		t.Fatalf("got %v want 1.0", got)
	}
}

func TestLocalTimePeriodizationReverse(t *testing.T) {
	start := time.Now()
	periodization := NewPeriodization(Reverse, 4*time.Second)
	params := NewClockParametersDraft().WithPeriodization(&periodization).Make()
	clock := NewClock(start, params)

	if got := clock.LocalTime(start.Add(2 * time.Second)); got != 2.0 {
		t.Fatalf("first period: got %v want 2.0", got)
	}
	if got := clock.LocalTime(start.Add(5 * time.Second)); got != 3.0 {
		t.Fatalf("second period: got %v want 3.0", got)
	}
	if got := clock.LocalTime(start.Add(11 * time.Second)); got != 3.0 {
		t.Fatalf("third period: got %v want 3.0", got)
	}
}

func TestLocalTimePeriodizationWithBirthOffset(t *testing.T) {
	start := time.Now()
	period := 3 * time.Second
	periodization := NewPeriodization(Restart, period)
	offset := 1 * time.Second

	params := NewClockParametersDraft().
		BirthTimeOffset(offset).
		WithPeriodization(&periodization).
		Make()
	clock := NewClock(start, params)

	got := clock.LocalTime(start.Add(period - offset))
	if got != 0.0 {
		t.Fatalf("got %v want 0.0", got)
	}
}

func TestLocalTimePeriodizationWithSpeedMultiplier(t *testing.T) {
	start := time.Now()
	periodization := NewPeriodization(Restart, 4*time.Second)
	params := NewClockParametersDraft().
		PlaybackSpeedMultiplier(2.0).
		WithPeriodization(&periodization).
		Make()
	clock := NewClock(start, params)

	if got := clock.LocalTime(start.Add(1 * time.Second)); got != 2.0 {
		t.Fatalf("got %v want 2.0", got)
	}
	if got := clock.LocalTime(start.Add(2 * time.Second)); got != 0.0 {
		t.Fatalf("got %v want 0.0", got)
	}
}

func TestLocalTimeComplexScenarioAllFeatures(t *testing.T) {
	start := time.Now()
	periodization := NewPeriodization(Reverse, 6*time.Second)
	params := NewClockParametersDraft().
		BirthTimeOffset(1 * time.Second).
		PlaybackSpeedMultiplier(1.5).
		WithPeriodization(&periodization).
		WithGlobalFiniteTimeToLive(20*time.Second, Forward).
		EndAction(LeaveAsIs).
		Make()
	clock := NewClock(start, params)

	got := clock.LocalTime(start.Add(4 * time.Second))
	if got != 5.0 {
		t.Fatalf("got %v want 5.0", got)
	}
}

func TestLocalTimeTtlWithPeriodizationExceeded(t *testing.T) {
	start := time.Now()
	periodization := NewPeriodization(Restart, 3*time.Second)
	params := NewClockParametersDraft().
		WithPeriodization(&periodization).
		WithGlobalFiniteTimeToLive(5*time.Second, Forward).
		EndAction(TeleportToZero).
		Make()
	clock := NewClock(start, params)

	got := clock.LocalTime(start.Add(10 * time.Second))
	if got != 0.0 {
		t.Fatalf("got %v want 0.0", got)
	}
}

func TestLocalTimeFractionalSecondsPrecision(t *testing.T) {
	start := time.Now()
	clock := NewClock(start, DefaultClockParameters())

	elapsed := 1500 * time.Millisecond
	got := clock.LocalTime(start.Add(elapsed))
	if math.Abs(got-elapsed.Seconds()) >= math.SmallestNonzeroFloat64*1e10 {
		// loose tolerance; exact equality is expected in practice but
		// avoid flaking on platform-specific float rounding
		if math.Abs(got-elapsed.Seconds()) > 1e-9 {
			t.Fatalf("got %v want ~%v", got, elapsed.Seconds())
		}
	}
}
