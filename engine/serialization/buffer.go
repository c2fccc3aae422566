// Package serialization implements the GPU-ready wire format every scene
// object, material, and BVH node is packed into before being uploaded to a
// storage buffer. The format is organized in quartets: 16-byte (4 x float32)
// aligned groups, because WGSL storage buffer layout rules pack vec4<f32>
// without the padding surprises vec3<f32> introduces.
package serialization

import (
	"encoding/binary"
	"fmt"
	"math"
)

// ElementsInQuartet is the number of 4-byte lanes in one quartet.
const ElementsInQuartet = 4

// ElementSizeBytes is the size of a single lane.
const ElementSizeBytes = 4

// QuartetSizeBytes is the size in bytes of one quartet.
const QuartetSizeBytes = ElementSizeBytes * ElementsInQuartet

// DefaultPadValue fills any lane of a quartet the caller didn't explicitly
// write. -1 is never a valid index, count, or default scale, so its
// appearance in a captured buffer is immediately recognizable as "unwritten".
const DefaultPadValue float32 = -1.0

// GpuSerializationSize is implemented by any type that knows how many
// quartets its own GPU representation occupies. The scene container uses it
// to size a Buffer before any object writes into it.
type GpuSerializationSize interface {
	SerializedQuartetCount() int
}

// Buffer accumulates a fixed-capacity run of fixed-size objects into one
// contiguous byte slice matching a WGSL storage buffer's memory layout.
// Objects are written in order; Backend panics if called before every slot
// has been written, since a partially-filled buffer uploaded to the GPU
// would silently read as zeros (or worse, stale contents) for the
// unwritten tail.
type Buffer struct {
	backend           []byte
	writePointer       int
	quartetsPerObject  int
}

// NewBuffer allocates a buffer sized for objectsCount objects, each
// occupying quartetsPerObject quartets. Panics if quartetsPerObject is zero;
// there is no such thing as a zero-size serialized object.
func NewBuffer(objectsCount, quartetsPerObject int) *Buffer {
	if quartetsPerObject <= 0 {
		panic("serialization: quartetsPerObject must be positive")
	}
	return &Buffer{
		backend:           make([]byte, backendSizeBytes(objectsCount, quartetsPerObject)),
		quartetsPerObject: quartetsPerObject,
	}
}

// NewFilledBuffer allocates a buffer and immediately fills every lane with
// filler. The result is FullyWritten, so callers can then patch objects in
// any order with WriteObject; tests also use it for a byte-exact expected
// buffer without writing object-by-object.
func NewFilledBuffer(objectsCount, quartetsPerObject int, filler float32) *Buffer {
	b := NewBuffer(objectsCount, quartetsPerObject)
	for !b.FullyWritten() {
		b.WriteQuartetF32(filler, filler, filler, filler)
	}
	return b
}

func backendSizeBytes(objectsCount, quartetsPerObject int) int {
	return objectsCount * quartetsPerObject * QuartetSizeBytes
}

// TotalSlotsCount returns the number of object slots the buffer was sized
// for.
func (b *Buffer) TotalSlotsCount() int {
	return len(b.backend) / (b.quartetsPerObject * QuartetSizeBytes)
}

// IsEmpty reports whether the buffer has zero capacity.
func (b *Buffer) IsEmpty() bool {
	return len(b.backend) == 0
}

func (b *Buffer) bytesPerObject() int {
	return b.quartetsPerObject * QuartetSizeBytes
}

// FreeQuartetsOfCurrentObject returns how many quartets remain before the
// object currently being written is complete.
func (b *Buffer) FreeQuartetsOfCurrentObject() int {
	bytesPerObject := b.bytesPerObject()
	objectStart := b.writePointer - b.writePointer%bytesPerObject
	objectEnd := objectStart + bytesPerObject
	return (objectEnd - b.writePointer) / QuartetSizeBytes
}

// ObjectFullyWritten reports whether the write pointer sits exactly on an
// object boundary past the start of the buffer.
func (b *Buffer) ObjectFullyWritten() bool {
	return b.writePointer > 0 && b.writePointer%b.bytesPerObject() == 0
}

// FullyWritten reports whether every byte of the buffer has been written.
func (b *Buffer) FullyWritten() bool {
	return b.writePointer == len(b.backend)
}

// HasFreeSlot reports the negation of FullyWritten.
func (b *Buffer) HasFreeSlot() bool {
	return !b.FullyWritten()
}

// Backend returns the underlying bytes, ready for upload. Panics if the
// buffer has not been completely filled.
func (b *Buffer) Backend() []byte {
	if !b.FullyWritten() {
		panic("serialization: buffer has not been filled")
	}
	return b.backend
}

// WriteObject writes a single object at elementIndex (0-based slot) via
// execute, which receives an ObjectWriter scoped to exactly that object's
// byte range. It does not advance the sequential write pointer, so it
// patches objects of a buffer that is already filled (for example by
// NewFilledBuffer) and never by itself makes a buffer FullyWritten. Panics
// if elementIndex is out of range, or if execute doesn't write every
// quartet of the object.
func (b *Buffer) WriteObject(elementIndex int, execute func(*ObjectWriter)) {
	offset := elementIndex * b.bytesPerObject()
	if offset+b.bytesPerObject() > len(b.backend) {
		panic(fmt.Sprintf("serialization: element index %d out of range", elementIndex))
	}
	writer := &ObjectWriter{backend: b.backend, offset: offset, quartetsPerObject: b.quartetsPerObject}
	execute(writer)
	if !writer.FullyWritten() {
		panic("serialization: WriteObject callback did not write every quartet")
	}
}

// WriteQuartetF64 narrows to float32 and writes one quartet.
func (b *Buffer) WriteQuartetF64(x, y, z, w float64) {
	b.WriteQuartetF32(float32(x), float32(y), float32(z), float32(w))
}

// WritePaddedQuartetF64 writes x, y, z and pads the fourth lane with
// DefaultPadValue.
func (b *Buffer) WritePaddedQuartetF64(x, y, z float64) {
	b.WriteQuartetF64(x, y, z, float64(DefaultPadValue))
}

// WriteQuartetF32 writes four float32 lanes as one quartet.
func (b *Buffer) WriteQuartetF32(x, y, z, w float32) {
	b.WriteQuartet(func(writer *QuartetWriter) {
		writer.WriteFloat32(x).WriteFloat32(y).WriteFloat32(z).WriteFloat32(w)
	})
}

// WritePaddedQuartetF32 writes x, y, z and pads the fourth lane.
func (b *Buffer) WritePaddedQuartetF32(x, y, z float32) {
	b.WriteQuartetF32(x, y, z, DefaultPadValue)
}

// WriteQuartetU32 writes four uint32 lanes as one quartet.
func (b *Buffer) WriteQuartetU32(x, y, z, w uint32) {
	b.WriteQuartet(func(writer *QuartetWriter) {
		writer.WriteUnsigned(x).WriteUnsigned(y).WriteUnsigned(z).WriteUnsigned(w)
	})
}

// WriteQuartet advances the write pointer by one quartet, handing execute a
// QuartetWriter scoped to those 16 bytes. Any lane execute doesn't write is
// filled with DefaultPadValue.
func (b *Buffer) WriteQuartet(execute func(*QuartetWriter)) {
	writer := &QuartetWriter{backend: b.backend, offset: b.writePointer}
	execute(writer)
	writer.padRemaining()
	b.writePointer += QuartetSizeBytes
}

// ObjectWriter scopes writes to a single object's byte range within a
// Buffer, tracking how many of its quartets have been written.
type ObjectWriter struct {
	backend           []byte
	offset            int
	quartetsPerObject int
	quartetsWritten   int
}

// WriteQuartet writes the next quartet of this object. Panics if the object
// has already received quartetsPerObject quartets.
func (w *ObjectWriter) WriteQuartet(execute func(*QuartetWriter)) *ObjectWriter {
	if w.quartetsWritten >= w.quartetsPerObject {
		panic("serialization: object has no remaining quartets")
	}
	writer := &QuartetWriter{backend: w.backend, offset: w.offset + w.quartetsWritten*QuartetSizeBytes}
	execute(writer)
	writer.padRemaining()
	w.quartetsWritten++
	return w
}

// WriteQuartetF32 is a convenience wrapper around WriteQuartet for plain
// float32 quartets.
func (w *ObjectWriter) WriteQuartetF32(x, y, z, val float32) *ObjectWriter {
	return w.WriteQuartet(func(writer *QuartetWriter) {
		writer.WriteFloat32(x).WriteFloat32(y).WriteFloat32(z).WriteFloat32(val)
	})
}

// WriteQuartetU32 is a convenience wrapper around WriteQuartet for plain
// uint32 quartets.
func (w *ObjectWriter) WriteQuartetU32(x, y, z, val uint32) *ObjectWriter {
	return w.WriteQuartet(func(writer *QuartetWriter) {
		writer.WriteUnsigned(x).WriteUnsigned(y).WriteUnsigned(z).WriteUnsigned(val)
	})
}

// FullyWritten reports whether every quartet of this object has been
// written.
func (w *ObjectWriter) FullyWritten() bool {
	return w.quartetsWritten == w.quartetsPerObject
}

// QuartetWriter writes up to ElementsInQuartet 4-byte lanes into one 16-byte
// span of a buffer's backend, in little-endian byte order (the layout every
// WGSL storage buffer on every backend this engine targets agrees on).
type QuartetWriter struct {
	backend []byte
	offset  int
	written int
}

// WriteFloat32 writes the next lane as an IEEE-754 float32. Panics if all
// four lanes are already written.
func (w *QuartetWriter) WriteFloat32(v float32) *QuartetWriter {
	binary.LittleEndian.PutUint32(w.nextLane(), math.Float32bits(v))
	return w
}

// WriteSigned writes the next lane as a two's-complement int32.
func (w *QuartetWriter) WriteSigned(v int32) *QuartetWriter {
	binary.LittleEndian.PutUint32(w.nextLane(), uint32(v))
	return w
}

// WriteUnsigned writes the next lane as a uint32.
func (w *QuartetWriter) WriteUnsigned(v uint32) *QuartetWriter {
	binary.LittleEndian.PutUint32(w.nextLane(), v)
	return w
}

func (w *QuartetWriter) nextLane() []byte {
	if w.written >= ElementsInQuartet {
		panic("serialization: quartet already has four elements written")
	}
	start := w.offset + w.written*ElementSizeBytes
	w.written++
	return w.backend[start : start+ElementSizeBytes]
}

// padRemaining fills any lane the caller didn't write with DefaultPadValue.
func (w *QuartetWriter) padRemaining() {
	for w.written < ElementsInQuartet {
		w.WriteFloat32(DefaultPadValue)
	}
}
