package renderer

// FrameMode selects whether a FrameAccumulator ever lets its count advance
// past 1 (Deterministic) or keeps accumulating passes indefinitely
// (MonteCarlo), matching the spec's single-pass-versus-converging-estimate
// distinction for the ray-tracing compute shader.
type FrameMode int

const (
	// FrameModeDeterministic pins AccumulatedCount at 1 forever: every
	// dispatch overwrites the output image rather than blending into it.
	// Used for fast, non-noisy preview rendering (one ray per pixel, no
	// jitter) where convergence doesn't apply.
	FrameModeDeterministic FrameMode = iota

	// FrameModeMonteCarlo lets AccumulatedCount grow by one every frame the
	// scene stays static, so the shader can weight each new sample by
	// 1/count and converge toward a noise-free image over time.
	FrameModeMonteCarlo
)

// FrameAccumulator tracks how many path-trace passes have accumulated into
// the current output image. The renderer orchestration resets it whenever
// geometry, materials, or the camera change, since a stale accumulation
// would blend frames that no longer agree on what they're estimating.
type FrameAccumulator struct {
	mode  FrameMode
	count uint32
}

// NewFrameAccumulator returns an accumulator starting at count 1 in mode.
func NewFrameAccumulator(mode FrameMode) *FrameAccumulator {
	return &FrameAccumulator{mode: mode, count: 1}
}

// Mode returns the accumulator's current mode.
func (f *FrameAccumulator) Mode() FrameMode { return f.mode }

// SetMode switches modes and resets the accumulated count, since a mode
// switch changes what the shader does with the count regardless of whether
// the scene itself changed.
func (f *FrameAccumulator) SetMode(mode FrameMode) {
	f.mode = mode
	f.count = 1
}

// Count returns the number of passes accumulated into the output image so
// far. Always 1 in FrameModeDeterministic.
func (f *FrameAccumulator) Count() uint32 { return f.count }

// Advance should be called once per dispatched frame, after Reset has been
// given the chance to fire for anything that changed this frame. In
// FrameModeDeterministic it is a no-op; in FrameModeMonteCarlo it
// increments the accumulated count by one.
func (f *FrameAccumulator) Advance() {
	if f.mode == FrameModeMonteCarlo {
		f.count++
	}
}

// Reset drops the accumulated count back to 1, discarding every sample
// accumulated so far. Call this whenever scene geometry, materials, or the
// camera change — the previous samples no longer estimate the same image.
func (f *FrameAccumulator) Reset() {
	f.count = 1
}
