// Package container implements the scene-wide object store every authoring
// call and every render frame goes through: the dense per-kind collections
// of renderable objects, the materials/procedural-texture/SDF-prototype/mesh
// warehouses they reference into, the per-instance SDF animation clocks, and
// the per-kind count/version bookkeeping the renderer orchestration polls to
// decide whether its GPU buffers are stale.
package container

import (
	"sync"

	"github.com/corvidgfx/tracer-go/engine/animation"
	"github.com/corvidgfx/tracer-go/engine/bvh"
	"github.com/corvidgfx/tracer-go/engine/geometry"
	"github.com/corvidgfx/tracer-go/engine/material"
	"github.com/corvidgfx/tracer-go/engine/objects"
	"github.com/corvidgfx/tracer-go/engine/sdf/framework"
	"github.com/corvidgfx/tracer-go/engine/sdf/warehouse"
	"github.com/corvidgfx/tracer-go/engine/serialization"
	"github.com/corvidgfx/tracer-go/engine/util"

	"github.com/Carmen-Shannon/automation/tools/worker"
)

// SceneContainer owns every renderable object in a scene plus the
// warehouses they reference into. It is the single source of truth the
// renderer orchestration reads from every frame: per-kind counts and
// versions tell it what changed since the last upload, and
// EvaluateSerialized/EvaluateSerializedTriangles/EvaluateSerializedBvh do
// the actual GPU buffer construction.
type SceneContainer struct {
	uids  *objects.UidGenerator
	stats statistics

	parallelograms indexedList[objects.Parallelogram]
	sdfInstances   indexedList[objects.SdfInstance]
	triangles      []objects.Triangle

	kindOf map[objects.ObjectUid]objects.DataKind

	materials          *material.Warehouse
	proceduralTextures *material.ProceduralTextureRegistry
	sdfPrototypes      *warehouse.Warehouse
	meshes             *MeshWarehouse

	// sdfTimes tracks the per-instance local animation clock every SDF
	// instance occupies a slot in, independent of the scene's shared
	// frame_params.time_seconds the procedural texture dispatcher reads.
	// Only SDF instances animate this way: parallelograms and triangle
	// meshes have no time-varying geometry node to drive.
	sdfTimes *animation.TimeTracker
}

// NewSceneContainer returns an empty container wired to the given
// (already populated, independently owned) SDF prototype warehouse and
// procedural texture registry — both are authored once up front, alongside
// scene construction, and then treated as read-only by the container.
func NewSceneContainer(sdfPrototypes *warehouse.Warehouse, proceduralTextures *material.ProceduralTextureRegistry) *SceneContainer {
	return &SceneContainer{
		uids:               objects.NewUidGenerator(),
		stats:              newStatistics(),
		parallelograms:     newIndexedList[objects.Parallelogram](),
		sdfInstances:       newIndexedList[objects.SdfInstance](),
		kindOf:             make(map[objects.ObjectUid]objects.DataKind),
		materials:          material.NewWarehouse(),
		proceduralTextures: proceduralTextures,
		sdfPrototypes:      sdfPrototypes,
		meshes:             NewMeshWarehouse(),
		sdfTimes:           animation.NewTimeTracker(),
	}
}

// Materials returns the scene's materials warehouse.
func (c *SceneContainer) Materials() *material.Warehouse { return c.materials }

// ProceduralTextures returns the scene's procedural texture registry.
func (c *SceneContainer) ProceduralTextures() *material.ProceduralTextureRegistry {
	return c.proceduralTextures
}

// SdfPrototypes returns the scene's SDF prototype warehouse.
func (c *SceneContainer) SdfPrototypes() *warehouse.Warehouse { return c.sdfPrototypes }

// Meshes returns the scene's mesh prototype warehouse.
func (c *SceneContainer) Meshes() *MeshWarehouse { return c.meshes }

// Count returns the current number of live objects of kind.
func (c *SceneContainer) Count(kind objects.DataKind) int { return c.stats.count(kind) }

// Version returns kind's current data version; callers compare this across
// frames to decide whether a re-upload is needed.
func (c *SceneContainer) Version(kind objects.DataKind) util.Version { return c.stats.version(kind) }

// AddParallelogram inserts a new parallelogram primitive and returns its
// object identifier.
func (c *SceneContainer) AddParallelogram(origin geometry.Point, localX, localY geometry.Vector, m material.Material) objects.ObjectUid {
	uid := c.uids.Next()
	linkage := objects.NewLinkage(uid, objects.MaterialIndex(c.materials.Insert(m)))
	c.parallelograms.add(uid, objects.NewParallelogram(origin, localX, localY, linkage))
	c.kindOf[uid] = objects.KindParallelogram
	c.stats.inserted(objects.KindParallelogram)
	return uid
}

// AddSdf places an instance of the SDF class registered under className at
// transform, with the given ray-march step scale and material. Panics if
// className was never registered in the container's SDF prototype
// warehouse.
func (c *SceneContainer) AddSdf(className framework.UniqueSdfClassName, transform geometry.Affine, rayMarchStepScale float64, m material.Material) objects.ObjectUid {
	classIndex, ok := c.sdfPrototypes.ClassIndexOf(className)
	if !ok {
		panic("container: add_sdf references unregistered class " + className.String())
	}
	uid := c.uids.Next()
	linkage := objects.NewLinkage(uid, objects.MaterialIndex(c.materials.Insert(m)))
	instance := objects.NewSdfInstance(objects.SdfClassIndex(classIndex), transform, rayMarchStepScale, linkage)
	c.sdfInstances.add(uid, instance)
	c.kindOf[uid] = objects.KindSdf
	c.stats.inserted(objects.KindSdf)
	c.sdfTimes.Track(uid, c.sdfInstances.liveUids())
	return uid
}

// AnimateSdf starts (or restarts) the given SDF instance's local animation
// clock. Panics if uid does not name a live SDF instance.
func (c *SceneContainer) AnimateSdf(uid objects.ObjectUid, parameters animation.ClockParameters) {
	if c.kindOf[uid] != objects.KindSdf {
		panic("container: animate_sdf on a uid that is not a live SDF instance")
	}
	c.sdfTimes.Launch(uid, parameters)
}

// StopSdfAnimation halts the given SDF instance's clock, leaving its last
// evaluated local time in place. Panics if uid does not name a live SDF
// instance.
func (c *SceneContainer) StopSdfAnimation(uid objects.ObjectUid) {
	if c.kindOf[uid] != objects.KindSdf {
		panic("container: stop_sdf_animation on a uid that is not a live SDF instance")
	}
	c.sdfTimes.Stop(uid)
}

// SdfAnimating reports whether the given SDF instance currently has a
// running clock.
func (c *SceneContainer) SdfAnimating(uid objects.ObjectUid) bool {
	return c.sdfTimes.Animating(uid)
}

// AdvanceAnimations re-evaluates every running SDF instance clock against
// the current instant. Call once per frame, before EvaluateSerializedSdfTimes.
func (c *SceneContainer) AdvanceAnimations() {
	c.sdfTimes.UpdateTime()
}

// SdfTimesVersion returns the current version of the per-instance animation
// time buffer; callers compare this across frames to decide whether
// EvaluateSerializedSdfTimes needs re-uploading.
func (c *SceneContainer) SdfTimesVersion() util.Version {
	return c.sdfTimes.Version()
}

// EvaluateSerializedSdfTimes returns every live SDF instance's current local
// animation time, one f32 per instance, ordered to match the buffer index
// sdf_instance_data addresses each instance by.
func (c *SceneContainer) EvaluateSerializedSdfTimes() []float32 {
	times := make([]float32, c.sdfInstances.len())
	c.sdfTimes.WriteTimes(times)
	return times
}

// AddMesh instantiates the mesh prototype at slot into world space via
// transform, inserting every resulting triangle as one logical mesh object
// sharing a single uid and material.
func (c *SceneContainer) AddMesh(slot WarehouseSlot, transform geometry.Affine, m material.Material) objects.ObjectUid {
	uid := c.uids.Next()
	linkage := objects.NewLinkage(uid, objects.MaterialIndex(c.materials.Insert(m)))
	triangles := c.meshes.Instantiate(slot, transform, linkage)
	c.triangles = append(c.triangles, triangles...)
	c.kindOf[uid] = objects.KindTriangleMesh
	c.stats.inserted(objects.KindTriangleMesh)
	return uid
}

// Delete removes the object identified by uid, regardless of kind. A no-op
// (reports false) if uid isn't live.
func (c *SceneContainer) Delete(uid objects.ObjectUid) bool {
	kind, exists := c.kindOf[uid]
	if !exists {
		return false
	}
	switch kind {
	case objects.KindParallelogram:
		c.parallelograms.remove(uid)
	case objects.KindSdf:
		c.sdfInstances.remove(uid)
		c.sdfTimes.Forget(uid, c.sdfInstances.liveUids())
	case objects.KindTriangleMesh:
		c.triangles, _ = removeTrianglesOwnedBy(c.triangles, uid)
	}
	delete(c.kindOf, uid)
	c.uids.PutBack(uid)
	c.stats.removed(kind)
	return true
}

// ClearObjects removes every live object across every kind, bumping every
// kind's version even if some kinds were already empty. A no-op if the
// container holds nothing.
func (c *SceneContainer) ClearObjects() {
	if c.stats.isEmpty() {
		return
	}
	for uid := range c.kindOf {
		c.uids.PutBack(uid)
	}
	c.kindOf = make(map[objects.ObjectUid]objects.DataKind)
	c.parallelograms.clear()
	c.sdfInstances.clear()
	c.triangles = c.triangles[:0]
	c.stats.clear()
	c.sdfTimes.Clear()
}

// SetMaterial reassigns the material used by the object identified by uid.
// Per the data model, materials are immutable once inserted: if the new
// value differs from what is already linked, this inserts a fresh warehouse
// entry, relinks the object to it and bumps that kind's version; an equal
// value changes nothing. Reports whether uid was found.
func (c *SceneContainer) SetMaterial(uid objects.ObjectUid, m material.Material) bool {
	kind, exists := c.kindOf[uid]
	if !exists {
		return false
	}
	switch kind {
	case objects.KindParallelogram:
		current, _ := c.parallelograms.get(uid)
		if c.materials.Get(material.Index(current.Linkage().Material())) == m {
			return true
		}
		newIndex := objects.MaterialIndex(c.materials.Insert(m))
		c.parallelograms.set(uid, current.WithLinkage(current.Linkage().WithMaterial(newIndex)))
		c.stats.bump(kind)
	case objects.KindSdf:
		current, _ := c.sdfInstances.get(uid)
		if c.materials.Get(material.Index(current.Linkage().Material())) == m {
			return true
		}
		newIndex := objects.MaterialIndex(c.materials.Insert(m))
		c.sdfInstances.set(uid, current.WithLinkage(current.Linkage().WithMaterial(newIndex)))
		c.stats.bump(kind)
	case objects.KindTriangleMesh:
		changed := false
		var newIndex objects.MaterialIndex
		for i, t := range c.triangles {
			if t.Linkage().Uid() != uid {
				continue
			}
			if !changed {
				if c.materials.Get(material.Index(t.Linkage().Material())) == m {
					return true
				}
				newIndex = objects.MaterialIndex(c.materials.Insert(m))
				changed = true
			}
			c.triangles[i] = t.WithLinkage(t.Linkage().WithMaterial(newIndex))
		}
		if changed {
			c.stats.bump(kind)
		}
	}
	return true
}

// removeTrianglesOwnedBy filters every triangle owned by uid out of
// triangles via swap-remove-while-scanning, returning the filtered slice and
// how many entries were removed.
func removeTrianglesOwnedBy(triangles []objects.Triangle, uid objects.ObjectUid) ([]objects.Triangle, int) {
	removed := 0
	end := len(triangles)
	i := 0
	for i < end {
		if triangles[i].Linkage().Uid() == uid {
			end--
			triangles[i] = triangles[end]
			removed++
			continue
		}
		i++
	}
	return triangles[:end], removed
}

// EvaluateSerializedBvh builds two BVHs over the current scene — one with
// tight proxy AABBs and one inflated by inflationRate — and serializes
// both, matching the dual tight/inflated rebuild the renderer orchestration
// needs to support temporally-coherent traversal across small per-frame
// scene motion.
func (c *SceneContainer) EvaluateSerializedBvh(inflationRate float64) (tight, inflated *serialization.Buffer) {
	tightProxies, inflatedProxies := c.buildProxies(inflationRate)
	return bvh.BuildSerialized(tightProxies), bvh.BuildSerialized(inflatedProxies)
}

// DumpSceneBVH builds a tight (uninflated) BVH over the current scene and
// renders it as Graphviz DOT text, for offline debugging of tree shape.
func (c *SceneContainer) DumpSceneBVH() string {
	tightProxies, _ := c.buildProxies(0)
	return bvh.DumpDot(bvh.Build(tightProxies))
}

// EvaluateSerializedBvhParallel is the opt-in parallel counterpart of
// EvaluateSerializedBvh: the three per-kind proxy-building loops
// (parallelograms, triangles, SDF instances) run as separate tasks on pool
// instead of sequentially, while the tree build itself stays the same
// single-threaded BuildSerialized call. Worth reaching for once a scene's
// per-kind object counts are large enough that proxy construction, not
// tree construction, dominates a rebuild's cost.
func (c *SceneContainer) EvaluateSerializedBvhParallel(inflationRate float64, pool worker.DynamicWorkerPool) (tight, inflated *serialization.Buffer) {
	tightProxies, inflatedProxies := c.buildProxiesParallel(inflationRate, pool)
	return bvh.BuildSerialized(tightProxies), bvh.BuildSerialized(inflatedProxies)
}

func (c *SceneContainer) buildProxiesParallel(inflationRate float64, pool worker.DynamicWorkerPool) (tight, inflated []bvh.SceneObjectProxy) {
	type kindResult struct {
		tight, inflated []bvh.SceneObjectProxy
	}
	results := make([]kindResult, 3)

	var wg sync.WaitGroup
	wg.Add(3)

	pool.SubmitTask(worker.Task{ID: 0, Do: func() (any, error) {
		defer wg.Done()
		for i, p := range c.parallelograms.items() {
			box := p.Aabb()
			results[0].tight = append(results[0].tight, bvh.NewSceneObjectProxy(box, i, bvh.PrimitiveTypeParallelogram))
			results[0].inflated = append(results[0].inflated, bvh.NewSceneObjectProxy(box.ExtentRelativeInflate(inflationRate), i, bvh.PrimitiveTypeParallelogram))
		}
		return nil, nil
	}})
	pool.SubmitTask(worker.Task{ID: 1, Do: func() (any, error) {
		defer wg.Done()
		for i, t := range c.triangles {
			box := t.Aabb()
			results[1].tight = append(results[1].tight, bvh.NewSceneObjectProxy(box, i, bvh.PrimitiveTypeTriangle))
			results[1].inflated = append(results[1].inflated, bvh.NewSceneObjectProxy(box.ExtentRelativeInflate(inflationRate), i, bvh.PrimitiveTypeTriangle))
		}
		return nil, nil
	}})
	pool.SubmitTask(worker.Task{ID: 2, Do: func() (any, error) {
		defer wg.Done()
		for i, s := range c.sdfInstances.items() {
			box := s.Aabb(c.sdfPrototypes.Aabb(warehouse.ClassIndex(s.ClassIndex())))
			results[2].tight = append(results[2].tight, bvh.NewSceneObjectProxy(box, i, bvh.PrimitiveTypeSdf))
			results[2].inflated = append(results[2].inflated, bvh.NewSceneObjectProxy(box.ExtentRelativeInflate(inflationRate), i, bvh.PrimitiveTypeSdf))
		}
		return nil, nil
	}})

	wg.Wait()

	for _, r := range results {
		tight = append(tight, r.tight...)
		inflated = append(inflated, r.inflated...)
	}
	return tight, inflated
}

func (c *SceneContainer) buildProxies(inflationRate float64) (tight, inflated []bvh.SceneObjectProxy) {
	parallelograms := c.parallelograms.items()
	for i, p := range parallelograms {
		box := p.Aabb()
		tight = append(tight, bvh.NewSceneObjectProxy(box, i, bvh.PrimitiveTypeParallelogram))
		inflated = append(inflated, bvh.NewSceneObjectProxy(box.ExtentRelativeInflate(inflationRate), i, bvh.PrimitiveTypeParallelogram))
	}

	for i, t := range c.triangles {
		box := t.Aabb()
		tight = append(tight, bvh.NewSceneObjectProxy(box, i, bvh.PrimitiveTypeTriangle))
		inflated = append(inflated, bvh.NewSceneObjectProxy(box.ExtentRelativeInflate(inflationRate), i, bvh.PrimitiveTypeTriangle))
	}

	sdfInstances := c.sdfInstances.items()
	for i, s := range sdfInstances {
		box := s.Aabb(c.sdfPrototypes.Aabb(warehouse.ClassIndex(s.ClassIndex())))
		tight = append(tight, bvh.NewSceneObjectProxy(box, i, bvh.PrimitiveTypeSdf))
		inflated = append(inflated, bvh.NewSceneObjectProxy(box.ExtentRelativeInflate(inflationRate), i, bvh.PrimitiveTypeSdf))
	}

	return tight, inflated
}
