package serialization

import (
	"math"
	"testing"
)

func float32At(backend []byte, offset int) float32 {
	return math.Float32frombits(uint32(backend[offset]) | uint32(backend[offset+1])<<8 | uint32(backend[offset+2])<<16 | uint32(backend[offset+3])<<24)
}

func int32At(backend []byte, offset int) int32 {
	return int32(uint32(backend[offset]) | uint32(backend[offset+1])<<8 | uint32(backend[offset+2])<<16 | uint32(backend[offset+3])<<24)
}

func uint32At(backend []byte, offset int) uint32 {
	return uint32(backend[offset]) | uint32(backend[offset+1])<<8 | uint32(backend[offset+2])<<16 | uint32(backend[offset+3])<<24
}

func TestBufferInitialization(t *testing.T) {
	buf := NewBuffer(5, 3)
	if buf.ObjectFullyWritten() {
		t.Fatal("expected object not fully written on fresh buffer")
	}
	if buf.FullyWritten() {
		t.Fatal("expected buffer not fully written on fresh buffer")
	}
}

func TestBufferInitializationPanicsOnZeroQuartets(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("expected panic for zero quartetsPerObject")
		}
	}()
	NewBuffer(1, 0)
}

func TestWriteQuartet(t *testing.T) {
	buf := NewBuffer(1, 2)
	buf.WriteQuartetF32(1, 2, 3, 4)
	if buf.FullyWritten() || buf.ObjectFullyWritten() {
		t.Fatal("buffer should not be complete after one of two quartets")
	}
	buf.WriteQuartetF32(5, 6, 7, 8)
	if !buf.ObjectFullyWritten() || !buf.FullyWritten() {
		t.Fatal("buffer should be complete after both quartets")
	}

	backend := buf.Backend()
	for i := 0; i < 8; i++ {
		got := float32At(backend, i*4)
		if got != float32(i+1) {
			t.Fatalf("lane %d: got %v want %v", i, got, i+1)
		}
	}
}

func TestWriteUsingClosure(t *testing.T) {
	buf := NewBuffer(1, 1)
	buf.WriteQuartet(func(w *QuartetWriter) {
		w.WriteFloat32(10).WriteSigned(-20).WriteUnsigned(30).WriteFloat32(40)
	})
	if !buf.FullyWritten() {
		t.Fatal("expected buffer fully written")
	}
	backend := buf.Backend()
	if got := float32At(backend, 0); got != 10 {
		t.Fatalf("lane 0: got %v", got)
	}
	if got := int32At(backend, 4); got != -20 {
		t.Fatalf("lane 1: got %v", got)
	}
	if got := uint32At(backend, 8); got != 30 {
		t.Fatalf("lane 2: got %v", got)
	}
	if got := float32At(backend, 12); got != 40 {
		t.Fatalf("lane 3: got %v", got)
	}
}

func TestBackendAccessBeforeFullyWrittenPanics(t *testing.T) {
	buf := NewBuffer(2, 1)
	buf.WriteQuartetF32(1, 2, 3, 4)
	defer func() {
		if recover() == nil {
			t.Fatal("expected panic reading Backend before fully written")
		}
	}()
	buf.Backend()
}

func TestQuartetWriterAutoPads(t *testing.T) {
	buf := NewBuffer(1, 1)
	buf.WriteQuartet(func(w *QuartetWriter) {
		w.WriteFloat32(1).WriteFloat32(2)
	})
	backend := buf.Backend()
	if got := float32At(backend, 0); got != 1 {
		t.Fatalf("lane 0: got %v", got)
	}
	if got := float32At(backend, 4); got != 2 {
		t.Fatalf("lane 1: got %v", got)
	}
	if got := float32At(backend, 8); got != DefaultPadValue {
		t.Fatalf("lane 2 should be pad value, got %v", got)
	}
	if got := float32At(backend, 12); got != DefaultPadValue {
		t.Fatalf("lane 3 should be pad value, got %v", got)
	}
}

func TestMultipleObjects(t *testing.T) {
	buf := NewBuffer(2, 2)
	buf.WriteQuartetF32(1, 2, 3, 4)
	buf.WriteQuartetF32(5, 6, 7, 8)
	if !buf.ObjectFullyWritten() || buf.FullyWritten() {
		t.Fatal("first object complete, buffer should not be")
	}
	buf.WriteQuartetF32(9, 10, 11, 12)
	buf.WriteQuartetF32(13, 14, 15, 16)
	if !buf.ObjectFullyWritten() || !buf.FullyWritten() {
		t.Fatal("expected both objects complete")
	}

	backend := buf.Backend()
	values := []float32{1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11, 12, 13, 14, 15, 16}
	for i, expected := range values {
		if got := float32At(backend, i*4); got != expected {
			t.Fatalf("mismatch at index %d: got %v want %v", i, got, expected)
		}
	}
}

func TestWriteMoreThanFourElementsPanics(t *testing.T) {
	buf := NewBuffer(1, 1)
	defer func() {
		if recover() == nil {
			t.Fatal("expected panic writing a fifth lane")
		}
	}()
	buf.WriteQuartet(func(w *QuartetWriter) {
		w.WriteFloat32(1).WriteFloat32(2).WriteFloat32(3).WriteFloat32(4).WriteFloat32(5)
	})
}

func TestWriteBeyondCapacityPanics(t *testing.T) {
	buf := NewBuffer(1, 1)
	buf.WriteQuartetF32(1, 2, 3, 4)
	defer func() {
		if recover() == nil {
			t.Fatal("expected panic writing past capacity")
		}
	}()
	buf.WriteQuartetF32(5, 6, 7, 8)
}

func TestFreeQuartetsOfCurrentObject(t *testing.T) {
	quartetsPerObject := 3
	fresh := NewBuffer(1, quartetsPerObject)
	if got := fresh.FreeQuartetsOfCurrentObject(); got != quartetsPerObject {
		t.Fatalf("got %d want %d", got, quartetsPerObject)
	}

	buf := NewBuffer(2, quartetsPerObject)
	buf.WriteQuartetF32(1, 2, 3, 4)
	if got := buf.FreeQuartetsOfCurrentObject(); got != 2 {
		t.Fatalf("got %d want 2", got)
	}
	buf.WriteQuartetF32(1, 2, 3, 4)
	if got := buf.FreeQuartetsOfCurrentObject(); got != 1 {
		t.Fatalf("got %d want 1", got)
	}
	buf.WriteQuartetF32(1, 2, 3, 4)
	if got := buf.FreeQuartetsOfCurrentObject(); got != quartetsPerObject {
		t.Fatalf("got %d want %d", got, quartetsPerObject)
	}
}

func TestWriteObjectRequiresEveryQuartet(t *testing.T) {
	buf := NewBuffer(1, 2)
	defer func() {
		if recover() == nil {
			t.Fatal("expected panic when callback under-writes the object")
		}
	}()
	buf.WriteObject(0, func(w *ObjectWriter) {
		w.WriteQuartetF32(1, 2, 3, 4)
	})
}

func TestWriteObjectAtIndex(t *testing.T) {
	buf := NewFilledBuffer(2, 1, 0)
	buf.WriteObject(1, func(w *ObjectWriter) {
		w.WriteQuartetF32(1, 2, 3, 4)
	})
	buf.WriteObject(0, func(w *ObjectWriter) {
		w.WriteQuartetF32(5, 6, 7, 8)
	})
	backend := buf.Backend()
	if got := float32At(backend, 0); got != 5 {
		t.Fatalf("object 0 lane 0: got %v", got)
	}
	if got := float32At(backend, 16); got != 1 {
		t.Fatalf("object 1 lane 0: got %v", got)
	}
}
