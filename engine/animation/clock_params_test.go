package animation

import (
	"testing"
	"time"
)

func TestBuilderDefaultValues(t *testing.T) {
	draft := NewClockParametersDraft()
	if draft.birthTimeOffset != 0 {
		t.Fatalf("expected zero birth offset, got %v", draft.birthTimeOffset)
	}
	if draft.timeToLive != nil {
		t.Fatalf("expected nil time-to-live, got %v", draft.timeToLive)
	}
	if draft.speedMultiplier != 1.0 {
		t.Fatalf("expected 1.0 speed multiplier, got %v", draft.speedMultiplier)
	}
	if draft.periodization != nil {
		t.Fatalf("expected nil periodization, got %v", draft.periodization)
	}
	if draft.endAction != LeaveAsIs {
		t.Fatalf("expected LeaveAsIs end action, got %v", draft.endAction)
	}

	built := DefaultClockParameters()
	if built.birthTimeOffsetValue() != 0 {
		t.Fatal("expected zero birth offset on built parameters")
	}
	if built.timeToLiveValue() != nil {
		t.Fatal("expected nil time-to-live on built parameters")
	}
	if built.speedMultiplierValue() != 1.0 {
		t.Fatal("expected 1.0 speed multiplier on built parameters")
	}
	if built.endActionValue() != LeaveAsIs {
		t.Fatal("expected LeaveAsIs on built parameters")
	}
}

func TestBuilderWithCustomValues(t *testing.T) {
	birthOffset := 5 * time.Second
	speedMultiplier := 2.0
	ttl := 10 * time.Second
	direction := Backward
	periodization := NewPeriodization(Reverse, 7*time.Second)
	endAction := LeaveAsIs

	draft := NewClockParametersDraft().
		BirthTimeOffset(birthOffset).
		WithGlobalFiniteTimeToLive(ttl, direction).
		PlaybackSpeedMultiplier(speedMultiplier).
		WithPeriodization(&periodization).
		EndAction(endAction)

	if draft.birthTimeOffset != birthOffset {
		t.Fatalf("got %v want %v", draft.birthTimeOffset, birthOffset)
	}
	if draft.timeToLive == nil || draft.timeToLive.Span() != ttl || draft.timeToLive.direction != direction {
		t.Fatalf("unexpected time-to-live: %+v", draft.timeToLive)
	}
	if draft.speedMultiplier != speedMultiplier {
		t.Fatalf("got %v want %v", draft.speedMultiplier, speedMultiplier)
	}
	if draft.periodization == nil || *draft.periodization != periodization {
		t.Fatalf("unexpected periodization: %+v", draft.periodization)
	}
	if draft.endAction != endAction {
		t.Fatalf("got %v want %v", draft.endAction, endAction)
	}
}

func TestInfiniteDuration(t *testing.T) {
	draft := NewClockParametersDraft().WithGlobalInfiniteTimeToLive()
	if draft.timeToLive != nil {
		t.Fatal("expected nil time-to-live")
	}
}

func TestNegativeMultiplierPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("expected panic for negative multiplier")
		}
	}()
	NewClockParametersDraft().PlaybackSpeedMultiplier(-1.0)
}

func TestZeroMultiplierPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("expected panic for zero multiplier")
		}
	}()
	NewClockParametersDraft().PlaybackSpeedMultiplier(0.0)
}

func TestTooBigStartOffsetPanics(t *testing.T) {
	lifeSpan := 7 * time.Second
	timeOffset := lifeSpan + time.Nanosecond

	defer func() {
		if recover() == nil {
			t.Fatal("expected panic for birth offset exceeding backward life span")
		}
	}()
	NewClockParametersDraft().
		WithGlobalFiniteTimeToLive(lifeSpan, Backward).
		BirthTimeOffset(timeOffset).
		Make()
}

func TestExactEqualBackwardOffsetPanics(t *testing.T) {
	lifeSpan := 7 * time.Second

	defer func() {
		if recover() == nil {
			t.Fatal("expected panic when birth offset equals backward life span")
		}
	}()
	NewClockParametersDraft().
		WithGlobalFiniteTimeToLive(lifeSpan, Backward).
		BirthTimeOffset(lifeSpan).
		Make()
}
