package container

import (
	"github.com/corvidgfx/tracer-go/engine/geometry"
	"github.com/corvidgfx/tracer-go/engine/objects"
	"github.com/corvidgfx/tracer-go/engine/serialization"
)

// writeTriangle, writeSdfInstance and friends serialize host-side domain
// objects into the GPU buffer layouts the external interfaces contract
// defines; SceneContainer.EvaluateSerialized and EvaluateSerializedTriangles
// are the only entry points callers need.

const (
	parallelogramQuartetsPerObject = 3
	sdfInstanceQuartetsPerObject   = 6
	triangleQuartetsPerObject      = 6
)

// EvaluateSerialized produces a fully-written serialization buffer for a
// Parallelogram- or Sdf-kind collection. TriangleMesh is forbidden here —
// triangles have their own path, EvaluateSerializedTriangles — since a
// mesh's primitive count has nothing to do with its object count. Panics
// for TriangleMesh or for any kind outside the closed DataKind enum.
func (c *SceneContainer) EvaluateSerialized(kind objects.DataKind) *serialization.Buffer {
	switch kind {
	case objects.KindParallelogram:
		return serializeParallelograms(c.parallelograms.items())
	case objects.KindSdf:
		return serializeSdfInstances(c.sdfInstances.items())
	default:
		panic("container: evaluate_serialized is forbidden for kind " + kind.String())
	}
}

// EvaluateSerializedTriangles produces a fully-written serialization buffer
// over every triangle currently owned by any mesh object.
func (c *SceneContainer) EvaluateSerializedTriangles() *serialization.Buffer {
	return serializeTriangles(c.triangles)
}

func serializeParallelograms(items []objects.Parallelogram) *serialization.Buffer {
	count := len(items)
	if count == 0 {
		count = 1
	}
	buffer := serialization.NewFilledBuffer(count, parallelogramQuartetsPerObject, 0)
	for i, p := range items {
		buffer.WriteObject(i, func(w *serialization.ObjectWriter) {
			w.WriteQuartet(func(q *serialization.QuartetWriter) {
				q.WriteFloat32(float32(p.Origin().X)).WriteFloat32(float32(p.Origin().Y)).WriteFloat32(float32(p.Origin().Z)).
					WriteUnsigned(uint32(p.Linkage().Material()))
			})
			w.WriteQuartet(func(q *serialization.QuartetWriter) {
				q.WriteFloat32(float32(p.LocalX().X)).WriteFloat32(float32(p.LocalX().Y)).WriteFloat32(float32(p.LocalX().Z)).
					WriteUnsigned(uint32(p.Linkage().Uid()))
			})
			w.WriteQuartetF32(float32(p.LocalY().X), float32(p.LocalY().Y), float32(p.LocalY().Z), 0)
		})
	}
	if len(items) == 0 {
		buffer.WriteObject(0, func(w *serialization.ObjectWriter) {
			w.WriteQuartetF32(0, 0, 0, 0).WriteQuartetF32(0, 0, 0, 0).WriteQuartetF32(0, 0, 0, 0)
		})
	}
	return buffer
}

func serializeSdfInstances(items []objects.SdfInstance) *serialization.Buffer {
	count := len(items)
	if count == 0 {
		count = 1
	}
	buffer := serialization.NewFilledBuffer(count, sdfInstanceQuartetsPerObject, 0)
	for i, instance := range items {
		buffer.WriteObject(i, func(w *serialization.ObjectWriter) {
			writeSdfInstance(w, instance)
		})
	}
	if len(items) == 0 {
		buffer.WriteObject(0, func(w *serialization.ObjectWriter) {
			writeSdfInstance(w, objects.NewSdfInstance(0, geometry.Identity(), 1.0, objects.Linkage{}))
		})
	}
	return buffer
}

// writeSdfInstance packs an instance's 6 quartets:
//
//	0: affine column X (3x3 linear part) + translation.X
//	1: affine column Y                  + translation.Y
//	2: affine column Z                  + translation.Z
//	3: inverse-transpose column X (for normals) + ray_march_step_scale
//	4: inverse-transpose column Y               + object_uid
//	5: inverse-transpose column Z               + (class_index<<16 | material_index)
//
// Class index and material index share one u32 lane (16 bits each) so the
// scalar tail fits in 6 quartets.
func writeSdfInstance(w *serialization.ObjectWriter, instance objects.SdfInstance) {
	transform := instance.Transform()
	translation := transform.Translation()
	colX := transform.TransformVector(geometry.UnitX)
	colY := transform.TransformVector(geometry.UnitY)
	colZ := transform.TransformVector(geometry.UnitZ)

	w.WriteQuartet(func(q *serialization.QuartetWriter) {
		q.WriteFloat32(float32(colX.X)).WriteFloat32(float32(colX.Y)).WriteFloat32(float32(colX.Z)).WriteFloat32(float32(translation.X))
	})
	w.WriteQuartet(func(q *serialization.QuartetWriter) {
		q.WriteFloat32(float32(colY.X)).WriteFloat32(float32(colY.Y)).WriteFloat32(float32(colY.Z)).WriteFloat32(float32(translation.Y))
	})
	w.WriteQuartet(func(q *serialization.QuartetWriter) {
		q.WriteFloat32(float32(colZ.X)).WriteFloat32(float32(colZ.Y)).WriteFloat32(float32(colZ.Z)).WriteFloat32(float32(translation.Z))
	})

	invX := transform.TransformNormal(geometry.UnitX)
	invY := transform.TransformNormal(geometry.UnitY)
	invZ := transform.TransformNormal(geometry.UnitZ)

	w.WriteQuartet(func(q *serialization.QuartetWriter) {
		q.WriteFloat32(float32(invX.X)).WriteFloat32(float32(invX.Y)).WriteFloat32(float32(invX.Z)).WriteFloat32(float32(instance.RayMarchStepScale()))
	})
	w.WriteQuartet(func(q *serialization.QuartetWriter) {
		q.WriteFloat32(float32(invY.X)).WriteFloat32(float32(invY.Y)).WriteFloat32(float32(invY.Z)).WriteUnsigned(uint32(instance.Linkage().Uid()))
	})
	w.WriteQuartet(func(q *serialization.QuartetWriter) {
		packed := (uint32(instance.ClassIndex()) << 16) | (uint32(instance.Linkage().Material()) & 0xFFFF)
		q.WriteFloat32(float32(invZ.X)).WriteFloat32(float32(invZ.Y)).WriteFloat32(float32(invZ.Z)).WriteUnsigned(packed)
	})
}

func serializeTriangles(items []objects.Triangle) *serialization.Buffer {
	count := len(items)
	if count == 0 {
		count = 1
	}
	buffer := serialization.NewFilledBuffer(count, triangleQuartetsPerObject, 0)
	for i, t := range items {
		buffer.WriteObject(i, func(w *serialization.ObjectWriter) {
			writeTriangle(w, t)
		})
	}
	if len(items) == 0 {
		buffer.WriteObject(0, func(w *serialization.ObjectWriter) {
			writeTriangle(w, objects.Triangle{})
		})
	}
	return buffer
}

// writeTriangle packs a triangle's 6 quartets: three vertex positions
// (padded), then the three vertex normals — the last two of which carry the
// in-kind index (material) and host uid in their pad lane, per the external
// interfaces contract.
func writeTriangle(w *serialization.ObjectWriter, t objects.Triangle) {
	vertices := t.Vertices()
	for _, v := range vertices {
		w.WriteQuartetF32(float32(v.Position.X), float32(v.Position.Y), float32(v.Position.Z), 0)
	}
	w.WriteQuartetF32(float32(vertices[0].Normal.X), float32(vertices[0].Normal.Y), float32(vertices[0].Normal.Z), 0)
	w.WriteQuartet(func(q *serialization.QuartetWriter) {
		q.WriteFloat32(float32(vertices[1].Normal.X)).WriteFloat32(float32(vertices[1].Normal.Y)).WriteFloat32(float32(vertices[1].Normal.Z)).
			WriteUnsigned(uint32(t.Linkage().Material()))
	})
	w.WriteQuartet(func(q *serialization.QuartetWriter) {
		q.WriteFloat32(float32(vertices[2].Normal.X)).WriteFloat32(float32(vertices[2].Normal.Y)).WriteFloat32(float32(vertices[2].Normal.Z)).
			WriteUnsigned(uint32(t.Linkage().Uid()))
	})
}
