package renderscene

import "github.com/corvidgfx/tracer-go/engine/renderer"

// SceneBuilderOption is a functional option for configuring a Scene during
// construction via NewScene.
type SceneBuilderOption func(*renderScene)

// WithActive sets the scene's initial Active state. Scenes default to
// active; pass false to register a scene the engine should skip until
// something later calls SetActive(true).
func WithActive(active bool) SceneBuilderOption {
	return func(s *renderScene) {
		s.active = active
	}
}

// WithBvhInflationRate overrides the default inflation rate (0.05, a 5%
// per-axis extent pad) used for the shadow-ray BVH's bounding boxes. A
// scene whose objects move faster between BVH rebuilds needs a larger
// inflation rate to keep the inflated tree's proxies from falling behind
// the geometry they tolerate motion for.
func WithBvhInflationRate(rate float64) SceneBuilderOption {
	return func(s *renderScene) {
		s.inflationRate = rate
	}
}

// WithFrameMode selects whether the scene's output accumulates progressive
// samples (FrameModeMonteCarlo, the default) or always resets to a single
// fresh sample (FrameModeDeterministic).
func WithFrameMode(mode renderer.FrameMode) SceneBuilderOption {
	return func(s *renderScene) {
		s.accumulator = renderer.NewFrameAccumulator(mode)
	}
}
