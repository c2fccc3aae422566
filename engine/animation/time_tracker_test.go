package animation

import (
	"testing"
	"time"

	"github.com/corvidgfx/tracer-go/engine/objects"
)

func finiteAnimation(d time.Duration) ClockParameters {
	return NewClockParametersDraft().
		WithGlobalFiniteTimeToLive(d, Forward).
		EndAction(LeaveAsIs).
		Make()
}

func TestEmptyTimeTracker(t *testing.T) {
	tracker := NewTimeTracker()

	versionBefore := tracker.Version()
	tracker.UpdateTime()
	tracker.Clear()
	tracker.WriteTimes([]float32{})
	versionAfter := tracker.Version()

	if versionBefore != versionAfter {
		t.Fatalf("expected version unchanged, got %v -> %v", versionBefore, versionAfter)
	}
	if tracker.TrackedCount() != 0 {
		t.Fatalf("expected 0 tracked, got %d", tracker.TrackedCount())
	}
}

func TestTrackSingleObject(t *testing.T) {
	tracker := NewTimeTracker()

	versionBefore := tracker.Version()

	uid := objects.ObjectUid(1)
	order := []objects.ObjectUid{uid}
	tracker.Track(uid, order)

	versionAfterTrack := tracker.Version()

	times := []float32{7.0}
	tracker.WriteTimes(times)

	versionAfterWrite := tracker.Version()

	if tracker.TrackedCount() != 1 {
		t.Fatalf("expected 1 tracked, got %d", tracker.TrackedCount())
	}
	if times[0] != 0.0 {
		t.Fatalf("expected [0.0], got %v", times)
	}
	if versionBefore == versionAfterTrack {
		t.Fatal("expected version to change after Track")
	}
	if versionAfterTrack != versionAfterWrite {
		t.Fatal("expected version unchanged after a read-only WriteTimes")
	}
}

func TestTrackMultipleObjects(t *testing.T) {
	tracker := NewTimeTracker()
	uids := []objects.ObjectUid{1, 2, 3}

	versions := []interface{}{tracker.Version()}

	for i := range uids {
		countAfterAdd := i + 1
		tracker.Track(uids[i], uids[:countAfterAdd])
		versions = append(versions, tracker.Version())
		if tracker.TrackedCount() != countAfterAdd {
			t.Fatalf("expected %d tracked, got %d", countAfterAdd, tracker.TrackedCount())
		}
	}

	times := make([]float32, len(uids))
	for i := range times {
		times[i] = -3.0
	}
	tracker.WriteTimes(times)

	for _, v := range times {
		if v != 0.0 {
			t.Fatalf("expected all zero times, got %v", times)
		}
	}

	seen := make(map[interface{}]bool)
	for _, v := range versions {
		if seen[v] {
			t.Fatalf("expected all distinct versions, got %v", versions)
		}
		seen[v] = true
	}
}

func TestStop(t *testing.T) {
	tracker := NewTimeTracker()
	toContinue := objects.ObjectUid(7)
	toStop := objects.ObjectUid(5)

	tracker.Track(toContinue, []objects.ObjectUid{toContinue})
	tracker.Track(toStop, []objects.ObjectUid{toContinue, toStop})

	tracker.Stop(toContinue)
	tracker.Stop(toStop)

	tracker.Launch(toContinue, DefaultClockParameters())
	tracker.Launch(toStop, DefaultClockParameters())

	tracker.Stop(toStop)

	tracker.UpdateTime()
	if !tracker.Animating(toContinue) {
		t.Fatal("expected toContinue still animating")
	}
	if tracker.Animating(toStop) {
		t.Fatal("expected toStop no longer animating")
	}

	times := []float32{-5.0, -5.0}
	tracker.WriteTimes(times)
	if !(times[0] > 0.0) {
		t.Fatalf("expected times[0] > 0, got %v", times[0])
	}
	if times[1] != 0.0 {
		t.Fatalf("expected times[1] == 0 (never ran), got %v", times[1])
	}
}

func TestForgetObject(t *testing.T) {
	tracker := NewTimeTracker()
	toKeep := objects.ObjectUid(7)
	toForget := objects.ObjectUid(5)

	tracker.Track(toKeep, []objects.ObjectUid{toKeep})
	tracker.Track(toForget, []objects.ObjectUid{toKeep, toForget})

	versionBefore := tracker.Version()
	tracker.Forget(toForget, []objects.ObjectUid{toKeep})
	versionAfter := tracker.Version()

	if versionBefore == versionAfter {
		t.Fatal("expected version to change after Forget")
	}
	if tracker.TrackedCount() != 1 {
		t.Fatalf("expected 1 tracked, got %d", tracker.TrackedCount())
	}

	times := []float32{-5.0}
	tracker.WriteTimes(times)
	if times[0] != 0.0 {
		t.Fatalf("expected [0.0], got %v", times)
	}
}

func TestClear(t *testing.T) {
	tracker := NewTimeTracker()
	first := objects.ObjectUid(1)
	second := objects.ObjectUid(2)

	tracker.Track(first, []objects.ObjectUid{first})
	tracker.Track(second, []objects.ObjectUid{first, second})

	versionBefore := tracker.Version()
	tracker.Clear()
	versionAfter := tracker.Version()

	tracker.WriteTimes([]float32{})
	if versionBefore == versionAfter {
		t.Fatal("expected version to change after Clear")
	}
	if tracker.TrackedCount() != 0 {
		t.Fatalf("expected 0 tracked, got %d", tracker.TrackedCount())
	}
}

func TestLaunchAnimation(t *testing.T) {
	tracker := NewTimeTracker()
	animated := objects.ObjectUid(13)
	animation := DefaultClockParameters()

	tracker.Track(animated, []objects.ObjectUid{animated})
	versionBeforeLaunch := tracker.Version()
	tracker.Launch(animated, animation)
	still := objects.ObjectUid(17)
	versionAfterLaunch := tracker.Version()
	tracker.Track(still, []objects.ObjectUid{animated, still})

	times := make([]float32, tracker.TrackedCount())
	for i := range times {
		times[i] = -5.0
	}
	tracker.WriteTimes(times)
	for _, v := range times {
		if v != 0.0 {
			t.Fatalf("expected all zero before any update, got %v", times)
		}
	}

	tracker.UpdateTime()
	versionAfterTimeUpdate := tracker.Version()
	tracker.WriteTimes(times)

	if !(times[0] > 0.0) {
		t.Fatalf("expected times[0] > 0 after update, got %v", times[0])
	}
	if times[1] != 0.0 {
		t.Fatalf("expected times[1] == 0, got %v", times[1])
	}

	if versionBeforeLaunch != versionAfterLaunch {
		t.Fatal("expected Launch not to change version")
	}
	if versionAfterLaunch == versionAfterTimeUpdate {
		t.Fatal("expected UpdateTime to change version")
	}
}

func TestLaunchAlreadyAnimated(t *testing.T) {
	tracker := NewTimeTracker()
	uid := objects.ObjectUid(13)
	infiniteAnimation := DefaultClockParameters()
	expectedDuration := time.Millisecond
	oneMsAnimation := finiteAnimation(expectedDuration)

	tracker.Track(uid, []objects.ObjectUid{uid})
	tracker.Launch(uid, infiniteAnimation)
	tracker.Launch(uid, oneMsAnimation)
	time.Sleep(expectedDuration + 3*time.Millisecond)
	tracker.UpdateTime()

	times := make([]float32, tracker.TrackedCount())
	tracker.WriteTimes(times)
	for _, v := range times {
		if v != 0.001 {
			t.Fatalf("expected frozen time ~0.001, got %v", v)
		}
	}
}

func TestWriteToBufferOrder(t *testing.T) {
	tracker := NewTimeTracker()
	tinyUid := objects.ObjectUid(13)
	hugeUid := objects.ObjectUid(31)

	tracker.Track(tinyUid, []objects.ObjectUid{tinyUid})
	tracker.Track(hugeUid, []objects.ObjectUid{hugeUid, tinyUid})

	tinyUidTime := 3 * time.Microsecond
	tracker.Launch(tinyUid, finiteAnimation(tinyUidTime))
	hugeUidTime := 5 * time.Microsecond
	tracker.Launch(hugeUid, finiteAnimation(hugeUidTime))

	time.Sleep(hugeUidTime)
	tracker.UpdateTime()

	excessSlotMarker := float32(-99.0)
	buffer := []float32{excessSlotMarker, excessSlotMarker, excessSlotMarker}
	tracker.WriteTimes(buffer)

	if buffer[0] != float32(hugeUidTime.Seconds()) {
		t.Fatalf("index 0 (huge uid): got %v want %v", buffer[0], float32(hugeUidTime.Seconds()))
	}
	if buffer[1] != float32(tinyUidTime.Seconds()) {
		t.Fatalf("index 1 (tiny uid): got %v want %v", buffer[1], float32(tinyUidTime.Seconds()))
	}
	if buffer[2] != excessSlotMarker {
		t.Fatalf("index 2 should be untouched, got %v", buffer[2])
	}
}
