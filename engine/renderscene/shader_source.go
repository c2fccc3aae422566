package renderscene

import "strings"

// computeShaderHeader declares every bind group the path-tracing compute
// shader reads from, matched binding-for-binding against the groups the
// scene orchestration builds in bindings.go. Bindings are raw flat
// array<u32> storage buffers rather than typed arrays of vecN so the mixed
// float/integer lanes the serialization package packs into a single quartet
// (see engine/container/serialize.go, engine/bvh/node.go) can each be
// reinterpreted with bitcast<f32> or used directly as u32 per lane.
// instance_time_data is the one binding that is not quartet-packed: one f32
// per SDF instance, written every frame from
// SceneContainer.EvaluateSerializedSdfTimes.
const computeShaderHeader = `//@oxy:include camera
//@oxy:group 0 0 storage_uniform camera camera

//@oxy:provider 1 0 scene_geometry
@group(1) @binding(0) var<storage, read> parallelogram_data: array<u32>;
//@oxy:provider 1 1 scene_geometry
@group(1) @binding(1) var<storage, read> triangle_data: array<u32>;
//@oxy:provider 1 2 scene_geometry
@group(1) @binding(2) var<storage, read> sdf_instance_data: array<u32>;
//@oxy:provider 1 3 scene_geometry
@group(1) @binding(3) var<storage, read> instance_time_data: array<f32>;

//@oxy:provider 2 0 scene_bvh
@group(2) @binding(0) var<storage, read> bvh_tight: array<u32>;
//@oxy:provider 2 1 scene_bvh
@group(2) @binding(1) var<storage, read> bvh_inflated: array<u32>;

//@oxy:provider 3 0 materials
@group(3) @binding(0) var<storage, read> material_data: array<u32>;

//@oxy:provider 4 0 output_image
@group(4) @binding(0) var output_image: texture_storage_2d<rgba8unorm, write>;
//@oxy:provider 4 1 output_image
@group(4) @binding(1) var<uniform> frame_params: FrameParams;

struct FrameParams {
  width: u32,
  height: u32,
  sample_count: u32,
  time_seconds: f32,
}
`

// computeShaderBody implements the ray generation, BVH traversal and
// shading the spec's external interfaces contract hands off to the GPU.
// It calls sdf_select and procedural_texture_select, whose bodies are
// generated at scene construction time by the SDF prototype warehouse and
// the procedural texture registry respectively and spliced in ahead of
// this text (see buildComputeShaderSource).
//
// Scope is deliberately modest: one bounce of direct lighting from a fixed
// key light plus a single shadow ray per hit, not a multi-bounce Monte
// Carlo integrator. frame_params.sample_count only seeds per-frame
// sub-pixel jitter for progressive anti-aliasing; samples are not blended
// across frames.
const computeShaderBody = `
const BVH_NULL: i32 = -1;
const KEY_LIGHT_DIR: vec3f = vec3f(0.4082483, 0.8164966, 0.4082483);

fn read_bvh_node_min(buf: ptr<storage, array<u32>, read>, node: u32) -> vec3f {
  let base = node * 12u;
  return vec3f(bitcast<f32>((*buf)[base]), bitcast<f32>((*buf)[base + 1u]), bitcast<f32>((*buf)[base + 2u]));
}

fn read_bvh_node_max(buf: ptr<storage, array<u32>, read>, node: u32) -> vec3f {
  let base = node * 12u;
  return vec3f(bitcast<f32>((*buf)[base + 4u]), bitcast<f32>((*buf)[base + 5u]), bitcast<f32>((*buf)[base + 6u]));
}

fn read_bvh_primitive_index(buf: ptr<storage, array<u32>, read>, node: u32) -> u32 {
  return (*buf)[node * 12u + 3u];
}

fn read_bvh_primitive_type(buf: ptr<storage, array<u32>, read>, node: u32) -> u32 {
  return (*buf)[node * 12u + 7u];
}

fn read_bvh_miss_index(buf: ptr<storage, array<u32>, read>, node: u32) -> i32 {
  return bitcast<i32>((*buf)[node * 12u + 8u]);
}

fn ray_aabb_hit(origin: vec3f, inv_dir: vec3f, box_min: vec3f, box_max: vec3f, t_max: f32) -> bool {
  let t0 = (box_min - origin) * inv_dir;
  let t1 = (box_max - origin) * inv_dir;
  let tsmaller = min(t0, t1);
  let tbigger = max(t0, t1);
  let tmin = max(max(tsmaller.x, tsmaller.y), max(tsmaller.z, 0.0));
  let tmax = min(min(tbigger.x, tbigger.y), min(tbigger.z, t_max));
  return tmin <= tmax;
}

struct Hit {
  t: f32,
  point: vec3f,
  normal: vec3f,
  material_index: u32,
  hit: bool,
}

fn no_hit() -> Hit {
  var h: Hit;
  h.t = 1e30;
  h.hit = false;
  return h;
}

fn intersect_parallelogram(index: u32, origin: vec3f, dir: vec3f, t_max: f32) -> Hit {
  var h = no_hit();
  let base = index * 12u;
  let p_origin = vec3f(bitcast<f32>(parallelogram_data[base]), bitcast<f32>(parallelogram_data[base + 1u]), bitcast<f32>(parallelogram_data[base + 2u]));
  let material_index = parallelogram_data[base + 3u];
  let local_x = vec3f(bitcast<f32>(parallelogram_data[base + 4u]), bitcast<f32>(parallelogram_data[base + 5u]), bitcast<f32>(parallelogram_data[base + 6u]));
  let local_y = vec3f(bitcast<f32>(parallelogram_data[base + 8u]), bitcast<f32>(parallelogram_data[base + 9u]), bitcast<f32>(parallelogram_data[base + 10u]));

  let normal_unnormalized = cross(local_x, local_y);
  let denom = dot(normal_unnormalized, dir);
  if (abs(denom) < 1e-8) {
    return h;
  }
  let t = dot(p_origin - origin, normal_unnormalized) / denom;
  if (t <= 1e-4 || t >= t_max) {
    return h;
  }
  let hit_point = origin + dir * t;
  let relative = hit_point - p_origin;
  let area = dot(normal_unnormalized, normal_unnormalized);
  let alpha = dot(cross(relative, local_y), normal_unnormalized) / area;
  let beta = dot(cross(local_x, relative), normal_unnormalized) / area;
  if (alpha < 0.0 || alpha > 1.0 || beta < 0.0 || beta > 1.0) {
    return h;
  }
  h.hit = true;
  h.t = t;
  h.point = hit_point;
  h.normal = normalize(normal_unnormalized);
  h.material_index = material_index;
  return h;
}

fn intersect_triangle(index: u32, origin: vec3f, dir: vec3f, t_max: f32) -> Hit {
  var h = no_hit();
  let base = index * 24u;
  let v0 = vec3f(bitcast<f32>(triangle_data[base]), bitcast<f32>(triangle_data[base + 1u]), bitcast<f32>(triangle_data[base + 2u]));
  let v1 = vec3f(bitcast<f32>(triangle_data[base + 4u]), bitcast<f32>(triangle_data[base + 5u]), bitcast<f32>(triangle_data[base + 6u]));
  let v2 = vec3f(bitcast<f32>(triangle_data[base + 8u]), bitcast<f32>(triangle_data[base + 9u]), bitcast<f32>(triangle_data[base + 10u]));
  let n0 = vec3f(bitcast<f32>(triangle_data[base + 12u]), bitcast<f32>(triangle_data[base + 13u]), bitcast<f32>(triangle_data[base + 14u]));
  let n1 = vec3f(bitcast<f32>(triangle_data[base + 16u]), bitcast<f32>(triangle_data[base + 17u]), bitcast<f32>(triangle_data[base + 18u]));
  let material_index = triangle_data[base + 19u];
  let n2 = vec3f(bitcast<f32>(triangle_data[base + 20u]), bitcast<f32>(triangle_data[base + 21u]), bitcast<f32>(triangle_data[base + 22u]));

  let edge1 = v1 - v0;
  let edge2 = v2 - v0;
  let pvec = cross(dir, edge2);
  let det = dot(edge1, pvec);
  if (abs(det) < 1e-8) {
    return h;
  }
  let inv_det = 1.0 / det;
  let tvec = origin - v0;
  let u = dot(tvec, pvec) * inv_det;
  if (u < 0.0 || u > 1.0) {
    return h;
  }
  let qvec = cross(tvec, edge1);
  let v = dot(dir, qvec) * inv_det;
  if (v < 0.0 || u + v > 1.0) {
    return h;
  }
  let t = dot(edge2, qvec) * inv_det;
  if (t <= 1e-4 || t >= t_max) {
    return h;
  }
  h.hit = true;
  h.t = t;
  h.point = origin + dir * t;
  h.normal = normalize(n0 * (1.0 - u - v) + n1 * u + n2 * v);
  h.material_index = material_index;
  return h;
}

// sdf_ray_march transforms origin/dir into instance-local space using the
// inverse-transpose rows the container serializes (see
// engine/container/serialize.go's writeSdfInstance), then sphere-marches
// sdf_select in that space so every registered SDF class, regardless of its
// instance transform, is evaluated through the same world-space ray. Each
// instance's own local animation clock — not the frame's shared elapsed
// time — drives any AnimationOnly node in its prototype, so instance_index
// addresses instance_time_data the same way it addresses sdf_instance_data.
fn sdf_ray_march(index: u32, origin: vec3f, dir: vec3f, t_max: f32) -> Hit {
  var h = no_hit();
  let base = index * 24u;
  let translation = vec3f(bitcast<f32>(sdf_instance_data[base + 3u]), bitcast<f32>(sdf_instance_data[base + 7u]), bitcast<f32>(sdf_instance_data[base + 11u]));
  let inv_x = vec3f(bitcast<f32>(sdf_instance_data[base + 12u]), bitcast<f32>(sdf_instance_data[base + 13u]), bitcast<f32>(sdf_instance_data[base + 14u]));
  let step_scale = bitcast<f32>(sdf_instance_data[base + 15u]);
  let inv_y = vec3f(bitcast<f32>(sdf_instance_data[base + 16u]), bitcast<f32>(sdf_instance_data[base + 17u]), bitcast<f32>(sdf_instance_data[base + 18u]));
  let inv_z = vec3f(bitcast<f32>(sdf_instance_data[base + 20u]), bitcast<f32>(sdf_instance_data[base + 21u]), bitcast<f32>(sdf_instance_data[base + 22u]));
  let packed = sdf_instance_data[base + 23u];
  let class_index = packed >> 16u;
  let material_index = packed & 0xFFFFu;
  let time = instance_time_data[index];

  let local_origin = vec3f(dot(inv_x, origin - translation), dot(inv_y, origin - translation), dot(inv_z, origin - translation));
  let local_dir = vec3f(dot(inv_x, dir), dot(inv_y, dir), dot(inv_z, dir));
  let local_dir_len = max(length(local_dir), 1e-6);
  let local_dir_n = local_dir / local_dir_len;

  var t: f32 = 0.0;
  for (var i = 0; i < 128; i = i + 1) {
    let p = local_origin + local_dir_n * t;
    let d = sdf_select(class_index, p, time);
    if (d < 0.0005) {
      let world_t = t / local_dir_len;
      if (world_t <= 1e-4 || world_t >= t_max) {
        return h;
      }
      h.hit = true;
      h.t = world_t;
      h.point = origin + dir * world_t;
      let eps = vec2f(0.0008, 0.0);
      let nx = sdf_select(class_index, p + eps.xyy, time) - sdf_select(class_index, p - eps.xyy, time);
      let ny = sdf_select(class_index, p + eps.yxy, time) - sdf_select(class_index, p - eps.yxy, time);
      let nz = sdf_select(class_index, p + eps.yyx, time) - sdf_select(class_index, p - eps.yyx, time);
      h.normal = normalize(vec3f(dot(vec3f(inv_x.x, inv_y.x, inv_z.x), vec3f(nx, ny, nz)),
                                  dot(vec3f(inv_x.y, inv_y.y, inv_z.y), vec3f(nx, ny, nz)),
                                  dot(vec3f(inv_x.z, inv_y.z, inv_z.z), vec3f(nx, ny, nz))));
      h.material_index = material_index;
      return h;
    }
    t = t + max(d, 0.0001) * step_scale;
    if (t / local_dir_len >= t_max) {
      break;
    }
  }
  return h;
}

// traverse_tight walks the tight BVH (bvh_tight) looking for the closest
// primitive hit along origin/dir, per the pre-order-indexed stackless scheme
// engine/bvh/builder.go and engine/bvh/node.go implement on the host: an
// internal node's left child always sits at node_index + 1, so "hit" never
// needs to be stored — only "miss" (skip this subtree) does.
fn traverse_tight(origin: vec3f, dir: vec3f, t_max: f32) -> Hit {
  var closest = no_hit();
  closest.t = t_max;
  let inv_dir = 1.0 / dir;

  var node: i32 = 0;
  loop {
    if (node == BVH_NULL) {
      break;
    }
    let u = u32(node);
    let box_min = read_bvh_node_min(&bvh_tight, u);
    let box_max = read_bvh_node_max(&bvh_tight, u);
    if (!ray_aabb_hit(origin, inv_dir, box_min, box_max, closest.t)) {
      node = read_bvh_miss_index(&bvh_tight, u);
      continue;
    }

    let primitive_type = read_bvh_primitive_type(&bvh_tight, u);
    if (primitive_type == 0u) {
      node = node + 1;
      continue;
    }

    let primitive_index = read_bvh_primitive_index(&bvh_tight, u);
    var h = no_hit();
    if (primitive_type == 1u) {
      h = intersect_parallelogram(primitive_index, origin, dir, closest.t);
    } else if (primitive_type == 2u) {
      h = intersect_triangle(primitive_index, origin, dir, closest.t);
    } else if (primitive_type == 3u) {
      h = sdf_ray_march(primitive_index, origin, dir, closest.t);
    }
    if (h.hit && h.t < closest.t) {
      closest = h;
    }
    node = read_bvh_miss_index(&bvh_tight, u);
  }
  return closest;
}

// traverse_inflated_any_hit walks the inflated BVH (bvh_inflated) and stops
// at the first occluding primitive rather than the closest, for shadow-ray
// visibility tests — the inflated tree tolerates the small per-frame motion
// a moving scene accumulates between BVH rebuilds without the shadow ray
// grazing past a sliver of geometry the tight tree would have caught.
fn traverse_inflated_any_hit(origin: vec3f, dir: vec3f, t_max: f32) -> bool {
  let inv_dir = 1.0 / dir;
  var node: i32 = 0;
  loop {
    if (node == BVH_NULL) {
      break;
    }
    let u = u32(node);
    let box_min = read_bvh_node_min(&bvh_inflated, u);
    let box_max = read_bvh_node_max(&bvh_inflated, u);
    if (!ray_aabb_hit(origin, inv_dir, box_min, box_max, t_max)) {
      node = read_bvh_miss_index(&bvh_inflated, u);
      continue;
    }

    let primitive_type = read_bvh_primitive_type(&bvh_inflated, u);
    if (primitive_type == 0u) {
      node = node + 1;
      continue;
    }

    let primitive_index = read_bvh_primitive_index(&bvh_inflated, u);
    var h = no_hit();
    if (primitive_type == 1u) {
      h = intersect_parallelogram(primitive_index, origin, dir, t_max);
    } else if (primitive_type == 2u) {
      h = intersect_triangle(primitive_index, origin, dir, t_max);
    } else if (primitive_type == 3u) {
      h = sdf_ray_march(primitive_index, origin, dir, t_max);
    }
    if (h.hit) {
      return true;
    }
    node = read_bvh_miss_index(&bvh_inflated, u);
  }
  return false;
}

fn read_material_albedo(index: u32) -> vec3f {
  let base = index * 16u;
  return vec3f(bitcast<f32>(material_data[base]), bitcast<f32>(material_data[base + 1u]), bitcast<f32>(material_data[base + 2u]));
}

fn read_material_emission(index: u32) -> vec3f {
  let base = index * 16u;
  return vec3f(bitcast<f32>(material_data[base + 8u]), bitcast<f32>(material_data[base + 9u]), bitcast<f32>(material_data[base + 10u]));
}

fn read_material_texture_index(index: u32) -> i32 {
  let base = index * 16u;
  return bitcast<i32>(material_data[base + 14u]);
}

fn hash_to_unit(seed: u32) -> f32 {
  var x = seed;
  x = x ^ (x << 13u);
  x = x ^ (x >> 17u);
  x = x ^ (x << 5u);
  return f32(x) / 4294967295.0;
}

fn shade(h: Hit, time: f32) -> vec3f {
  var albedo = read_material_albedo(h.material_index);
  let texture_index = read_material_texture_index(h.material_index);
  if (texture_index >= 0) {
    let uv = vec2f(h.point.x * 0.5 + 0.5, h.point.z * 0.5 + 0.5);
    albedo = albedo * procedural_texture_select(texture_index, uv, time);
  }
  let emission = read_material_emission(h.material_index);

  let ndotl = max(dot(h.normal, KEY_LIGHT_DIR), 0.0);
  var lit = emission;
  if (ndotl > 0.0) {
    let shadow_origin = h.point + h.normal * 0.001;
    if (!traverse_inflated_any_hit(shadow_origin, KEY_LIGHT_DIR, 1e30)) {
      lit = lit + albedo * ndotl;
    }
  }
  return lit;
}

@compute @workgroup_size(8, 8, 1)
fn cs_main(@builtin(global_invocation_id) gid: vec3<u32>) {
  if (gid.x >= frame_params.width || gid.y >= frame_params.height) {
    return;
  }

  let jitter_x = hash_to_unit(gid.x * 1973u + gid.y * 9277u + frame_params.sample_count * 26699u) - 0.5;
  let jitter_y = hash_to_unit(gid.x * 26699u + gid.y * 1973u + frame_params.sample_count * 9277u + 1u) - 0.5;

  let ndc_x = ((f32(gid.x) + 0.5 + jitter_x) / f32(frame_params.width)) * 2.0 - 1.0;
  let ndc_y = (1.0 - (f32(gid.y) + 0.5 + jitter_y) / f32(frame_params.height)) * 2.0 - 1.0;

  let near_clip = vec4f(ndc_x, ndc_y, 0.0, 1.0);
  let far_clip = vec4f(ndc_x, ndc_y, 1.0, 1.0);
  let near_world = camera.inverse_view_projection * near_clip;
  let far_world = camera.inverse_view_projection * far_clip;
  let near_point = near_world.xyz / near_world.w;
  let far_point = far_world.xyz / far_world.w;

  let origin = camera.eye.xyz;
  let dir = normalize(far_point - near_point);

  let h = traverse_tight(origin, dir, 1e30);

  var color = vec3f(0.03, 0.04, 0.06);
  if (h.hit) {
    color = shade(h, frame_params.time_seconds);
  }

  textureStore(output_image, vec2<i32>(i32(gid.x), i32(gid.y)), vec4f(color, 1.0));
}
`

// blitVertexShaderSource is the static full-screen-quad vertex shader that
// feeds the blit fragment shader; it carries no bind groups of its own.
const blitVertexShaderSource = `struct BlitVertexInput {
  @location(0) position: vec2f,
  @location(1) uv: vec2f,
}

struct BlitVaryings {
  @builtin(position) clip_position: vec4f,
  @location(0) uv: vec2f,
}

@vertex
fn vs_main(in: BlitVertexInput) -> BlitVaryings {
  var out: BlitVaryings;
  out.clip_position = vec4f(in.position, 0.0, 1.0);
  out.uv = in.uv;
  return out;
}
`

// blitFragmentShaderSource samples the compute shader's accumulation target
// and writes it straight to the swapchain — the path tracer performs no
// further tone mapping than the rgba8unorm storage texture already applied
// on write.
const blitFragmentShaderSource = `//@oxy:provider 0 0 blit_source
@group(0) @binding(0) var blit_texture: texture_2d<f32>;
//@oxy:provider 0 1 blit_source
@group(0) @binding(1) var blit_sampler: sampler;

struct BlitVaryings {
  @builtin(position) clip_position: vec4f,
  @location(0) uv: vec2f,
}

@fragment
fn fs_main(in: BlitVaryings) -> @location(0) vec4f {
  return textureSample(blit_texture, blit_sampler, in.uv);
}
`

// buildComputeShaderSource splices the SDF prototype warehouse's generated
// sdf_select dispatcher and the procedural texture registry's
// procedural_texture_select dispatcher ahead of the hand-written ray
// generation/traversal/shading body, below the bind group declarations —
// matching the composition order engine/sdf/warehouse.Warehouse.GenerateCode
// documents (shared functions, then per-class entries, then the dispatcher).
func buildComputeShaderSource(sdfCode, proceduralCode string) string {
	var b strings.Builder
	b.WriteString(computeShaderHeader)
	b.WriteString("\n")
	b.WriteString(proceduralCode)
	b.WriteString("\n")
	b.WriteString(sdfCode)
	b.WriteString(computeShaderBody)
	return b.String()
}
