package container

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/corvidgfx/tracer-go/engine/geometry"
	"github.com/corvidgfx/tracer-go/engine/objects"
)

// MeshLoadErrorKind classifies why loading a mesh prototype failed, mirroring
// the three IO-boundary error kinds the design calls out: a read failure, a
// file that isn't valid Wavefront OBJ, and one that parses but is empty or
// otherwise unusable.
type MeshLoadErrorKind int

const (
	MeshIoError MeshLoadErrorKind = iota
	MeshFormatError
	MeshContentError
)

// MeshLoadError is the typed failure Load returns; the caller decides
// whether to continue without the resource.
type MeshLoadError struct {
	Kind MeshLoadErrorKind
	What string
}

func (e *MeshLoadError) Error() string {
	switch e.Kind {
	case MeshIoError:
		return fmt.Sprintf("mesh warehouse: io error: %s", e.What)
	case MeshFormatError:
		return fmt.Sprintf("mesh warehouse: format error: %s", e.What)
	default:
		return fmt.Sprintf("mesh warehouse: invalid content: %s", e.What)
	}
}

// WarehouseSlot identifies a loaded mesh prototype.
type WarehouseSlot int

type rawMesh struct {
	triangles [][3]objects.Vertex
}

// MeshWarehouse is the slot-addressed store of loaded mesh prototypes: raw,
// untransformed triangle soup keyed by WarehouseSlot. AddMesh instantiates a
// slot at a placement transform to obtain world-space triangles.
type MeshWarehouse struct {
	prototypes []rawMesh
}

// NewMeshWarehouse returns an empty mesh warehouse.
func NewMeshWarehouse() *MeshWarehouse {
	return &MeshWarehouse{}
}

// Load parses the Wavefront OBJ file at sourcePath and stores it as a new
// prototype, returning the slot it was assigned.
func (w *MeshWarehouse) Load(sourcePath string) (WarehouseSlot, error) {
	file, err := os.Open(sourcePath)
	if err != nil {
		return 0, &MeshLoadError{Kind: MeshIoError, What: err.Error()}
	}
	defer file.Close()
	return w.LoadFrom(file)
}

// LoadFrom parses Wavefront OBJ content from r, for callers (and tests) that
// don't have it on disk.
func (w *MeshWarehouse) LoadFrom(r io.Reader) (WarehouseSlot, error) {
	triangles, err := parseObj(r)
	if err != nil {
		return 0, err
	}
	if len(triangles) == 0 {
		return 0, &MeshLoadError{Kind: MeshContentError, What: "empty mesh"}
	}
	w.prototypes = append(w.prototypes, rawMesh{triangles: triangles})
	return WarehouseSlot(len(w.prototypes) - 1), nil
}

// Instantiate places the mesh prototype at slot into world space via
// transform, stamping every resulting triangle with linkage.
func (w *MeshWarehouse) Instantiate(slot WarehouseSlot, transform geometry.Affine, linkage objects.Linkage) []objects.Triangle {
	prototype := w.prototypes[slot]
	out := make([]objects.Triangle, len(prototype.triangles))
	for i, corners := range prototype.triangles {
		triangle := objects.NewTriangle(corners[0], corners[1], corners[2], linkage)
		out[i] = triangle.Transform(transform)
	}
	return out
}

// parseObj reads a minimal subset of the Wavefront OBJ format sufficient for
// triangulated meshes: "v x y z" position lines, "vn x y z" normal lines,
// and "f" lines of exactly three corners in any of the "v", "v//vn",
// "v/vt/vn" or "v/vt" index forms. Lines it doesn't recognize (vt, s,
// comments, materials) are ignored.
func parseObj(r io.Reader) ([][3]objects.Vertex, error) {
	var positions []geometry.Point
	var normals []geometry.Vector
	var triangles [][3]objects.Vertex

	scanner := bufio.NewScanner(r)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		fields := strings.Fields(line)
		switch fields[0] {
		case "v":
			p, err := parsePoint(fields[1:], lineNo)
			if err != nil {
				return nil, err
			}
			positions = append(positions, p)
		case "vn":
			p, err := parsePoint(fields[1:], lineNo)
			if err != nil {
				return nil, err
			}
			normals = append(normals, geometry.NewVector(p.X, p.Y, p.Z))
		case "f":
			if len(fields) != 4 {
				return nil, &MeshLoadError{Kind: MeshContentError, What: fmt.Sprintf("line %d: only triangulated faces are supported", lineNo)}
			}
			var corners [3]objects.Vertex
			for i, token := range fields[1:4] {
				vertex, err := resolveFaceVertex(token, positions, normals, lineNo)
				if err != nil {
					return nil, err
				}
				corners[i] = vertex
			}
			triangles = append(triangles, corners)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, &MeshLoadError{Kind: MeshIoError, What: err.Error()}
	}
	return triangles, nil
}

func parsePoint(components []string, lineNo int) (geometry.Point, error) {
	if len(components) < 3 {
		return geometry.Point{}, &MeshLoadError{Kind: MeshFormatError, What: fmt.Sprintf("line %d: expected 3 components", lineNo)}
	}
	values := make([]float64, 3)
	for i := 0; i < 3; i++ {
		v, err := strconv.ParseFloat(components[i], 64)
		if err != nil {
			return geometry.Point{}, &MeshLoadError{Kind: MeshFormatError, What: fmt.Sprintf("line %d: %v", lineNo, err)}
		}
		values[i] = v
	}
	return geometry.NewPoint(values[0], values[1], values[2]), nil
}

func resolveFaceVertex(token string, positions []geometry.Point, normals []geometry.Vector, lineNo int) (objects.Vertex, error) {
	parts := strings.Split(token, "/")
	posIndex, err := parseObjIndex(parts[0], len(positions))
	if err != nil {
		return objects.Vertex{}, &MeshLoadError{Kind: MeshFormatError, What: fmt.Sprintf("line %d: %v", lineNo, err)}
	}
	vertex := objects.Vertex{Position: positions[posIndex]}
	if len(parts) == 3 && parts[2] != "" {
		normIndex, err := parseObjIndex(parts[2], len(normals))
		if err != nil {
			return objects.Vertex{}, &MeshLoadError{Kind: MeshFormatError, What: fmt.Sprintf("line %d: %v", lineNo, err)}
		}
		vertex.Normal = normals[normIndex]
	}
	return vertex, nil
}

// parseObjIndex converts OBJ's 1-based (and possibly negative, relative-to-
// end) index into a 0-based Go slice index.
func parseObjIndex(s string, count int) (int, error) {
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, err
	}
	if n < 0 {
		n = count + n + 1
	}
	if n < 1 || n > count {
		return 0, fmt.Errorf("index %d out of range (count %d)", n, count)
	}
	return n - 1, nil
}
