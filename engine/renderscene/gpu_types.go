package renderscene

// CameraUniform mirrors shader/pre_processor.go's cameraUniformWGSLSource
// struct byte-for-byte: a 64-byte mat4x4<f32> followed by a 16-byte vec4<f32>.
// common.StructToBytes reinterprets this directly into the upload payload for
// the camera bind group's uniform buffer — field order and types must never
// drift from the WGSL struct the pre-processor injects.
type CameraUniform struct {
	InverseViewProjection [16]float32
	Eye                   [4]float32
}

// FrameParams mirrors shader_source.go's computeShaderHeader FrameParams
// struct: width, height and sample_count pack as three u32 lanes, followed
// by the elapsed time in seconds.
type FrameParams struct {
	Width       uint32
	Height      uint32
	SampleCount uint32
	TimeSeconds float32
}

// QuadVertex mirrors blitVertexShaderSource's BlitVertexInput struct: a clip
// space position and a texture coordinate, one vertex per corner of the
// full-screen triangle-strip-free quad the blit pipeline draws.
type QuadVertex struct {
	Position [2]float32
	UV       [2]float32
}

// quadVertices is a static full-screen quad in clip space (z ignored by the
// blit vertex shader, which hardcodes z=0), wound so the two triangles it
// forms via quadIndices are both counter-clockwise under FrontFaceCCW.
var quadVertices = [4]QuadVertex{
	{Position: [2]float32{-1, -1}, UV: [2]float32{0, 1}},
	{Position: [2]float32{1, -1}, UV: [2]float32{1, 1}},
	{Position: [2]float32{1, 1}, UV: [2]float32{1, 0}},
	{Position: [2]float32{-1, 1}, UV: [2]float32{0, 0}},
}

var quadIndices = [6]uint32{0, 1, 2, 0, 2, 3}
