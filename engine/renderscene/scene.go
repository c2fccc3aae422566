// Package renderscene wires a SceneContainer's authored geometry/material
// data and an sdf/warehouse-and-procedural-texture-generated compute shader
// into the Renderer's compute-dispatch-then-blit frame lifecycle. It is the
// orchestration layer the engine package drives once per frame: the
// container and warehouses own the data, the renderer owns the GPU, and
// Scene is what connects the two.
package renderscene

import (
	"fmt"
	"strings"

	"github.com/corvidgfx/tracer-go/common"
	"github.com/corvidgfx/tracer-go/engine/camera"
	"github.com/corvidgfx/tracer-go/engine/container"
	"github.com/corvidgfx/tracer-go/engine/objects"
	"github.com/corvidgfx/tracer-go/engine/renderer"
	"github.com/corvidgfx/tracer-go/engine/renderer/bind_group_provider"
	"github.com/corvidgfx/tracer-go/engine/renderer/pipeline"
	"github.com/corvidgfx/tracer-go/engine/renderer/shader"
	"github.com/corvidgfx/tracer-go/engine/util"

	"github.com/cogentcore/webgpu/wgpu"
)

// Scene is a path-traced render surface: a camera, a SceneContainer's
// authored objects, and the GPU pipelines/bind groups built once at
// construction time to trace and display them. The engine calls
// PrepareCompute once per frame during its compute phase and DrawCalls once
// per frame during its render phase.
type Scene interface {
	// Renderer returns the Renderer this scene issues its dispatch and draw
	// calls through.
	Renderer() renderer.Renderer

	// Camera returns the scene's camera, for callers that need to move it.
	Camera() *camera.Camera

	// Container returns the scene's object store, for authoring calls.
	Container() *container.SceneContainer

	// Active reports whether the engine should include this scene in the
	// current frame.
	Active() bool

	// SetActive toggles whether the engine includes this scene in the
	// current frame.
	SetActive(active bool)

	// PrepareCompute re-uploads any GPU buffers the container's objects or
	// materials have changed since the last call, refreshes the camera and
	// frame-parameter uniforms, and dispatches one path-tracing compute
	// pass. Must be called between the engine's BeginComputeFrame and
	// EndComputeFrame.
	PrepareCompute(dt float32)

	// DrawCalls issues the full-screen blit of the compute pass's output
	// image. Must be called between the engine's BeginFrame and EndFrame.
	DrawCalls() error
}

type renderScene struct {
	label string

	renderer  renderer.Renderer
	camera    *camera.Camera
	container *container.SceneContainer
	active    bool

	width, height int
	inflationRate float64
	accumulator   *renderer.FrameAccumulator
	elapsedTime   float32

	computeShader      shader.Shader
	blitVertexShader   shader.Shader
	blitFragmentShader shader.Shader

	computePipelineKey string
	blitPipelineKey    string

	cameraProvider    bind_group_provider.BindGroupProvider
	geometryProvider  bind_group_provider.BindGroupProvider
	bvhProvider       bind_group_provider.BindGroupProvider
	materialsProvider bind_group_provider.BindGroupProvider
	outputProvider    bind_group_provider.BindGroupProvider
	blitProvider      bind_group_provider.BindGroupProvider
	quadProvider      bind_group_provider.BindGroupProvider

	computeBindGroups []bind_group_provider.BindGroupProvider
	blitBindGroups    []bind_group_provider.BindGroupProvider

	buffersInitialized bool
	lastVersions        [objects.KindCount]util.Version
	lastMaterialsCount   int
	lastTimesVersion     util.Version
}

var _ Scene = &renderScene{}

// NewScene builds a path tracer over container, registering its compute and
// blit pipelines on r and allocating every GPU resource they need. label
// must be unique among scenes sharing r, since it seeds every pipeline key
// and bind group provider label this scene creates. width/height fix the
// output image's resolution for the scene's lifetime — a later window
// resize adjusts the renderer's swapchain surface but not this scene's
// accumulation target, matching the fixed-resolution render target choice
// recorded in DESIGN.md.
func NewScene(label string, r renderer.Renderer, cam *camera.Camera, c *container.SceneContainer, width, height int, opts ...SceneBuilderOption) (Scene, error) {
	s := &renderScene{
		label:              label,
		renderer:           r,
		camera:             cam,
		container:          c,
		active:             true,
		width:              width,
		height:             height,
		inflationRate:      0.05,
		computePipelineKey: label + ":compute",
		blitPipelineKey:    label + ":blit",
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.accumulator == nil {
		s.accumulator = renderer.NewFrameAccumulator(renderer.FrameModeMonteCarlo)
	}

	c.SdfPrototypes().Seal()
	sdfCode := c.SdfPrototypes().GenerateCode()
	var proceduralCode strings.Builder
	c.ProceduralTextures().GenerateDispatcher(&proceduralCode)
	computeSource := buildComputeShaderSource(sdfCode, proceduralCode.String())

	s.computeShader = shader.NewShaderFromSource(label+":compute", shader.ShaderTypeCompute, computeSource)
	s.blitVertexShader = shader.NewShaderFromSource(label+":blit_vs", shader.ShaderTypeVertex, blitVertexShaderSource)
	s.blitFragmentShader = shader.NewShaderFromSource(label+":blit_fs", shader.ShaderTypeFragment, blitFragmentShaderSource)

	computePipeline := pipeline.NewPipeline(s.computePipelineKey, pipeline.PipelineTypeCompute,
		pipeline.WithComputeShader(s.computeShader))
	blitPipeline := pipeline.NewPipeline(s.blitPipelineKey, pipeline.PipelineTypeRender,
		pipeline.WithVertexShader(s.blitVertexShader),
		pipeline.WithFragmentShader(s.blitFragmentShader),
		pipeline.WithDepthTestEnabled(false),
		pipeline.WithDepthWriteEnabled(false),
		pipeline.WithBlendEnabled(false))
	if err := r.RegisterPipelines(computePipeline, blitPipeline); err != nil {
		return nil, fmt.Errorf("renderscene: registering pipelines: %w", err)
	}

	if err := s.initBindGroups(); err != nil {
		return nil, err
	}

	vertexBytes := common.SliceToBytes(quadVertices[:])
	indexBytes := common.SliceToBytes(quadIndices[:])
	s.quadProvider = bind_group_provider.NewBindGroupProvider(label + ":quad")
	if err := r.InitMeshBuffers(s.quadProvider, vertexBytes, indexBytes, len(quadIndices)); err != nil {
		return nil, fmt.Errorf("renderscene: initializing quad mesh buffers: %w", err)
	}

	cameraGroup := mustResolveProviderGroup(s.computeShader, shader.AnnotationArgCamera)
	geometryGroup := mustResolveProviderGroup(s.computeShader, shader.AnnotationArgSceneGeometry)
	bvhGroup := mustResolveProviderGroup(s.computeShader, shader.AnnotationArgSceneBvh)
	materialsGroup := mustResolveProviderGroup(s.computeShader, shader.AnnotationArgMaterials)
	outputGroup := mustResolveProviderGroup(s.computeShader, shader.AnnotationArgOutputImage)
	s.computeBindGroups = buildGroupSlice(map[int]bind_group_provider.BindGroupProvider{
		cameraGroup:    s.cameraProvider,
		geometryGroup:  s.geometryProvider,
		bvhGroup:       s.bvhProvider,
		materialsGroup: s.materialsProvider,
		outputGroup:    s.outputProvider,
	})

	blitSourceGroup := mustResolveProviderGroup(s.blitFragmentShader, shader.AnnotationArgBlitSource)
	s.blitBindGroups = buildGroupSlice(map[int]bind_group_provider.BindGroupProvider{
		blitSourceGroup: s.blitProvider,
	})

	return s, nil
}

// initBindGroups allocates every GPU buffer, texture and sampler this
// scene's two pipelines bind, sizing the per-kind storage buffers at their
// fixed maximum capacity (see bindings.go) since InitBindGroup never resizes
// a buffer already attached to a provider.
func (s *renderScene) initBindGroups() error {
	r := s.renderer
	cs := s.computeShader

	cameraGroup := mustResolveProviderGroup(cs, shader.AnnotationArgCamera)
	s.cameraProvider = bind_group_provider.NewBindGroupProvider(s.label + ":camera")
	if err := r.InitBindGroup(s.cameraProvider, cs.BindGroupLayoutDescriptor(cameraGroup), nil, nil); err != nil {
		return fmt.Errorf("renderscene: initializing camera bind group: %w", err)
	}

	geometryGroup := mustResolveProviderGroup(cs, shader.AnnotationArgSceneGeometry)
	s.geometryProvider = bind_group_provider.NewBindGroupProvider(s.label + ":scene_geometry")
	geometrySizes := map[int]uint64{
		0: uint64(maxObjectsPerKind) * parallelogramBytesPerObject,
		1: uint64(maxTriangles) * triangleBytesPerObject,
		2: uint64(maxObjectsPerKind) * sdfInstanceBytesPerObject,
		3: uint64(maxObjectsPerKind) * instanceTimeBytesPerObject,
	}
	if err := r.InitBindGroup(s.geometryProvider, cs.BindGroupLayoutDescriptor(geometryGroup), nil, geometrySizes); err != nil {
		return fmt.Errorf("renderscene: initializing scene_geometry bind group: %w", err)
	}

	bvhGroup := mustResolveProviderGroup(cs, shader.AnnotationArgSceneBvh)
	s.bvhProvider = bind_group_provider.NewBindGroupProvider(s.label + ":scene_bvh")
	bvhSizes := map[int]uint64{
		0: uint64(maxBvhNodes) * bvhNodeBytesPerNode,
		1: uint64(maxBvhNodes) * bvhNodeBytesPerNode,
	}
	if err := r.InitBindGroup(s.bvhProvider, cs.BindGroupLayoutDescriptor(bvhGroup), nil, bvhSizes); err != nil {
		return fmt.Errorf("renderscene: initializing scene_bvh bind group: %w", err)
	}

	materialsGroup := mustResolveProviderGroup(cs, shader.AnnotationArgMaterials)
	s.materialsProvider = bind_group_provider.NewBindGroupProvider(s.label + ":materials")
	materialsSizes := map[int]uint64{0: uint64(maxMaterials) * materialBytesPerObject}
	if err := r.InitBindGroup(s.materialsProvider, cs.BindGroupLayoutDescriptor(materialsGroup), nil, materialsSizes); err != nil {
		return fmt.Errorf("renderscene: initializing materials bind group: %w", err)
	}

	outputGroup := mustResolveProviderGroup(cs, shader.AnnotationArgOutputImage)
	s.outputProvider = bind_group_provider.NewBindGroupProvider(s.label + ":output_image")
	if err := r.InitTextureView(s.outputProvider, 0, common.TextureStagingData{Width: uint32(s.width), Height: uint32(s.height)}); err != nil {
		return fmt.Errorf("renderscene: initializing output image texture: %w", err)
	}
	if err := r.InitBindGroup(s.outputProvider, cs.BindGroupLayoutDescriptor(outputGroup), nil, nil); err != nil {
		return fmt.Errorf("renderscene: initializing output_image bind group: %w", err)
	}

	blitSourceGroup := mustResolveProviderGroup(s.blitFragmentShader, shader.AnnotationArgBlitSource)
	s.blitProvider = bind_group_provider.NewBindGroupProvider(s.label + ":blit_source")
	s.blitProvider.SetTextureView(0, s.outputProvider.TextureView(0))
	if err := r.InitSampler(s.blitProvider, 1, common.SamplerStagingData{
		AddressModeU: wgpu.AddressModeClampToEdge,
		AddressModeV: wgpu.AddressModeClampToEdge,
	}); err != nil {
		return fmt.Errorf("renderscene: initializing blit sampler: %w", err)
	}
	if err := r.InitBindGroup(s.blitProvider, s.blitFragmentShader.BindGroupLayoutDescriptor(blitSourceGroup), nil, nil); err != nil {
		return fmt.Errorf("renderscene: initializing blit_source bind group: %w", err)
	}

	return nil
}

// buildGroupSlice lays providers out in a slice indexed by @group number, the
// convention DispatchCompute and DrawCall both bind against.
func buildGroupSlice(byGroup map[int]bind_group_provider.BindGroupProvider) []bind_group_provider.BindGroupProvider {
	maxGroup := 0
	for g := range byGroup {
		if g > maxGroup {
			maxGroup = g
		}
	}
	slice := make([]bind_group_provider.BindGroupProvider, maxGroup+1)
	for g, p := range byGroup {
		slice[g] = p
	}
	return slice
}

func (s *renderScene) Renderer() renderer.Renderer            { return s.renderer }
func (s *renderScene) Camera() *camera.Camera                 { return s.camera }
func (s *renderScene) Container() *container.SceneContainer   { return s.container }
func (s *renderScene) Active() bool                           { return s.active }
func (s *renderScene) SetActive(active bool)                  { s.active = active }

// PrepareCompute advances every SDF instance's animation clock, re-uploads
// any buffer whose backing data changed since the last call, refreshes the
// per-frame uniforms, and dispatches one path-tracing compute pass sized to
// the scene's fixed output resolution.
func (s *renderScene) PrepareCompute(dt float32) {
	s.elapsedTime += dt
	s.container.AdvanceAnimations()

	geometryDirty := s.geometryChanged()
	timesDirty := s.timesChanged()

	if geometryDirty {
		s.uploadGeometry()
	}
	if geometryDirty || timesDirty {
		s.uploadTimes()
		s.accumulator.Reset()
	}

	s.uploadCameraUniform()
	s.uploadFrameParams()

	groupsX := ceilDivU32(uint32(s.width), 8)
	groupsY := ceilDivU32(uint32(s.height), 8)
	s.renderer.DispatchCompute(s.computePipelineKey, s.computeBindGroups, [3]uint32{groupsX, groupsY, 1})

	s.accumulator.Advance()
}

// DrawCalls issues the full-screen blit of the compute pass's accumulation
// target onto the swapchain.
func (s *renderScene) DrawCalls() error {
	return s.renderer.DrawCall(s.blitPipelineKey, s.quadProvider, 1, s.blitBindGroups)
}

// geometryChanged reports whether any per-kind object collection or the
// materials warehouse has mutated since the last successful upload,
// including the very first call (buffersInitialized is false).
func (s *renderScene) geometryChanged() bool {
	if !s.buffersInitialized {
		return true
	}
	for kind := objects.DataKind(0); kind < objects.KindCount; kind++ {
		if s.container.Version(kind) != s.lastVersions[kind] {
			return true
		}
	}
	return s.container.Materials().Count() != s.lastMaterialsCount
}

// timesChanged reports whether any SDF instance's local animation clock has
// advanced since the last upload. Checked independently of geometryChanged
// since an instance's clock runs every frame regardless of whether the
// scene's object topology changed.
func (s *renderScene) timesChanged() bool {
	return s.container.SdfTimesVersion() != s.lastTimesVersion
}

// uploadTimes re-serializes every SDF instance's current local animation
// time and writes it to the scene_geometry bind group's instance_time_data
// binding.
func (s *renderScene) uploadTimes() {
	times := s.container.EvaluateSerializedSdfTimes()
	s.renderer.WriteBuffers([]bind_group_provider.BufferWrite{
		{Provider: s.geometryProvider, Binding: 3, Offset: 0, Data: common.SliceToBytes(times)},
	})
	s.lastTimesVersion = s.container.SdfTimesVersion()
}

// uploadGeometry re-serializes every per-kind object collection, the BVHs
// built over them, and the materials warehouse, then writes all six
// resulting buffers in a single batched WriteBuffers call.
func (s *renderScene) uploadGeometry() {
	parallelograms := s.container.EvaluateSerialized(objects.KindParallelogram)
	sdfInstances := s.container.EvaluateSerialized(objects.KindSdf)
	triangles := s.container.EvaluateSerializedTriangles()
	materials := s.container.Materials().EvaluateSerialized()
	tight, inflated := s.container.EvaluateSerializedBvh(s.inflationRate)

	s.renderer.WriteBuffers([]bind_group_provider.BufferWrite{
		{Provider: s.geometryProvider, Binding: 0, Offset: 0, Data: parallelograms.Backend()},
		{Provider: s.geometryProvider, Binding: 1, Offset: 0, Data: triangles.Backend()},
		{Provider: s.geometryProvider, Binding: 2, Offset: 0, Data: sdfInstances.Backend()},
		{Provider: s.bvhProvider, Binding: 0, Offset: 0, Data: tight.Backend()},
		{Provider: s.bvhProvider, Binding: 1, Offset: 0, Data: inflated.Backend()},
		{Provider: s.materialsProvider, Binding: 0, Offset: 0, Data: materials.Backend()},
	})

	for kind := objects.DataKind(0); kind < objects.KindCount; kind++ {
		s.lastVersions[kind] = s.container.Version(kind)
	}
	s.lastMaterialsCount = s.container.Materials().Count()
	s.buffersInitialized = true
}

// uploadCameraUniform refreshes the camera bind group's uniform buffer every
// frame, since the camera can move independently of scene geometry.
func (s *renderScene) uploadCameraUniform() {
	var uniform CameraUniform
	s.camera.InverseViewProjection(uniform.InverseViewProjection[:])
	x, y, z := s.camera.Eye()
	uniform.Eye = [4]float32{x, y, z, 0}

	s.renderer.WriteBuffers([]bind_group_provider.BufferWrite{
		{Provider: s.cameraProvider, Binding: 0, Offset: 0, Data: common.StructToBytes(&uniform)},
	})
}

// uploadFrameParams refreshes the per-frame uniform the compute shader reads
// its output dimensions, progressive-sampling seed and elapsed time from.
func (s *renderScene) uploadFrameParams() {
	params := FrameParams{
		Width:       uint32(s.width),
		Height:      uint32(s.height),
		SampleCount: s.accumulator.Count(),
		TimeSeconds: s.elapsedTime,
	}
	s.renderer.WriteBuffers([]bind_group_provider.BufferWrite{
		{Provider: s.outputProvider, Binding: 1, Offset: 0, Data: common.StructToBytes(&params)},
	})
}
