package mesh

import (
	"bytes"
	"encoding/binary"
	"math"
	"testing"

	pkgerrors "github.com/pkg/errors"

	"github.com/Faultbox/meshcompile/internal/logx"
	"github.com/Faultbox/meshcompile/internal/mesherr"
	"github.com/Faultbox/meshcompile/vfs"
)

func approxEqual(a, b, tol float64) bool {
	return math.Abs(a-b) < tol
}

// buildSTLCube returns a binary STL buffer for a unit cube centered at
// the origin (half-extent 0.5), 12 outward-wound triangles — seed
// scenario S1.
func buildSTLCube() []byte {
	type v3 = [3]float32
	h := float32(0.5)
	verts := []v3{
		{-h, -h, -h}, {h, -h, -h}, {h, h, -h}, {-h, h, -h},
		{-h, -h, h}, {h, -h, h}, {h, h, h}, {-h, h, h},
	}
	faces := [][3]int{
		{4, 5, 6}, {4, 6, 7},
		{0, 2, 1}, {0, 3, 2},
		{1, 2, 6}, {1, 6, 5},
		{0, 7, 3}, {0, 4, 7},
		{3, 6, 2}, {3, 7, 6},
		{0, 1, 5}, {0, 5, 4},
	}

	var buf bytes.Buffer
	buf.Write(make([]byte, 80))
	binary.Write(&buf, binary.LittleEndian, uint32(len(faces)))
	for _, f := range faces {
		binary.Write(&buf, binary.LittleEndian, v3{0, 0, 0}) // discarded normal
		binary.Write(&buf, binary.LittleEndian, verts[f[0]])
		binary.Write(&buf, binary.LittleEndian, verts[f[1]])
		binary.Write(&buf, binary.LittleEndian, verts[f[2]])
		binary.Write(&buf, binary.LittleEndian, uint16(0))
	}
	return buf.Bytes()
}

const tetrahedronOBJ = `
v 0 0 0
v 1 0 0
v 0 1 0
v 0 0 1
f 1 3 2
f 1 2 4
f 1 4 3
f 2 3 4
`

func TestCompileSTLCube(t *testing.T) {
	mem := vfs.NewMemSource(map[string][]byte{"cube.stl": buildSTLCube()})
	m := New("cube")
	m.FilePath = "cube.stl"

	if err := m.Compile(mem, DefaultOptions(), logx.Nop{}); err != nil {
		t.Fatalf("Compile: %v", err)
	}

	vol, err := m.Volume()
	if err != nil {
		t.Fatalf("Volume: %v", err)
	}
	if !approxEqual(vol, 1.0, 1e-4) {
		t.Fatalf("volume = %v, want 1.0", vol)
	}

	area, err := m.SurfaceArea()
	if err != nil {
		t.Fatalf("SurfaceArea: %v", err)
	}
	if !approxEqual(area, 6.0, 1e-4) {
		t.Fatalf("surface area = %v, want 6.0", area)
	}

	boxsz, err := m.BoxSize(VolumeType)
	if err != nil {
		t.Fatalf("BoxSize: %v", err)
	}
	for k, want := range [3]float64{0.5, 0.5, 0.5} {
		if !approxEqual(boxsz[k], want, 1e-3) {
			t.Fatalf("boxsz[%d] = %v, want %v", k, boxsz[k], want)
		}
	}

	aabb, err := m.AABB()
	if err != nil {
		t.Fatalf("AABB: %v", err)
	}
	for k := 0; k < 3; k++ {
		if !approxEqual(aabb[k], -aabb[k+3], 1e-3) {
			t.Fatalf("expected an origin-centered aabb, got %v", aabb)
		}
	}

	// P1: every face index is in range.
	for _, f := range m.Faces {
		for _, idx := range f {
			if idx < 0 || int(idx) >= len(m.Vertices) {
				t.Fatalf("face index %d out of range [0, %d)", idx, len(m.Vertices))
			}
		}
	}

	// P2: every normal is unit length or the +Z sentinel.
	for _, n := range m.Normals {
		length := math.Sqrt(float64(n[0]*n[0] + n[1]*n[1] + n[2]*n[2]))
		if !approxEqual(length, 1.0, 1e-5) {
			t.Fatalf("non-unit normal %v (length %v)", n, length)
		}
	}
}

func TestCompileSTLCubeDedupesVertices(t *testing.T) {
	// STL emits 3 fresh vertices per triangle (36 total for a cube);
	// topology.Dedup must collapse that down to the cube's 8 corners.
	mem := vfs.NewMemSource(map[string][]byte{"cube.stl": buildSTLCube()})
	m := New("cube")
	m.FilePath = "cube.stl"
	if err := m.Compile(mem, DefaultOptions(), logx.Nop{}); err != nil {
		t.Fatalf("Compile: %v", err)
	}
	if len(m.Vertices) != 8 {
		t.Fatalf("expected 8 deduped vertices, got %d", len(m.Vertices))
	}
}

func TestCompileAlreadyCompiled(t *testing.T) {
	mem := vfs.NewMemSource(map[string][]byte{"cube.stl": buildSTLCube()})
	m := New("cube")
	m.FilePath = "cube.stl"
	if err := m.Compile(mem, DefaultOptions(), logx.Nop{}); err != nil {
		t.Fatalf("first Compile: %v", err)
	}
	err := m.Compile(mem, DefaultOptions(), logx.Nop{})
	if err == nil {
		t.Fatal("expected a second Compile to fail")
	}
}

func TestAccessorsBeforeCompileReturnNotCompiled(t *testing.T) {
	m := New("cube")
	if _, err := m.Volume(); err == nil {
		t.Fatal("expected Volume to report an error before Compile runs")
	}
}

func TestCompileTetrahedronOBJ(t *testing.T) {
	mem := vfs.NewMemSource(map[string][]byte{"tet.obj": []byte(tetrahedronOBJ)})
	m := New("tetrahedron")
	m.FilePath = "tet.obj"

	if err := m.Compile(mem, DefaultOptions(), logx.Nop{}); err != nil {
		t.Fatalf("Compile: %v", err)
	}

	vol, err := m.Volume()
	if err != nil {
		t.Fatalf("Volume: %v", err)
	}
	if !approxEqual(vol, 1.0/6.0, 1e-4) {
		t.Fatalf("volume = %v, want 1/6", vol)
	}

	area, err := m.SurfaceArea()
	if err != nil {
		t.Fatalf("SurfaceArea: %v", err)
	}
	want := (3 + math.Sqrt(3)) / 2
	if !approxEqual(area, want, 1e-4) {
		t.Fatalf("surface area = %v, want %v", area, want)
	}
}

func TestCompileLeftHandedScaleFlipsWindingNotVolume(t *testing.T) {
	opts := DefaultOptions()
	opts.Scale = [3]float32{-1, 1, 1}

	memRH := vfs.NewMemSource(map[string][]byte{"cube.stl": buildSTLCube()})
	rh := New("cube-rh")
	rh.FilePath = "cube.stl"
	if err := rh.Compile(memRH, DefaultOptions(), logx.Nop{}); err != nil {
		t.Fatalf("rh Compile: %v", err)
	}

	memLH := vfs.NewMemSource(map[string][]byte{"cube.stl": buildSTLCube()})
	lh := New("cube-lh")
	lh.FilePath = "cube.stl"
	if err := lh.Compile(memLH, opts, logx.Nop{}); err != nil {
		t.Fatalf("lh Compile: %v", err)
	}

	rhVol, _ := rh.Volume()
	lhVol, _ := lh.Volume()
	if !approxEqual(rhVol, lhVol, 1e-4) {
		t.Fatalf("left-handed scale changed |volume|: %v vs %v", rhVol, lhVol)
	}

	if len(lh.Faces) != len(rh.Faces) {
		t.Fatalf("face count changed: %d vs %d", len(lh.Faces), len(rh.Faces))
	}
	for i, r := range rh.Faces {
		if lh.Faces[i] != [3]int32{r[0], r[2], r[1]} {
			t.Fatalf("face %d: left-handed %v is not %v with its winding reversed", i, lh.Faces[i], r)
		}
	}
}

func TestCompileNonClosedOBJVolumeTooSmall(t *testing.T) {
	const openTri = "v 0 0 0\nv 1 0 0\nv 0 1 0\nf 1 2 3\n"
	mem := vfs.NewMemSource(map[string][]byte{"open.obj": []byte(openTri)})
	m := New("open")
	m.FilePath = "open.obj"

	if err := m.Compile(mem, DefaultOptions(), logx.Nop{}); err != nil {
		t.Fatalf("Compile: %v", err)
	}

	if _, err := m.Volume(); err == nil {
		t.Fatal("expected Volume to report VolumeTooSmall for an open mesh")
	}
}

func TestCompileInconsistentOrientation(t *testing.T) {
	// A cube OBJ with one face's last two vertex refs swapped, so its
	// winding matches its neighbor's instead of opposing it.
	const flippedCube = `
v -0.5 -0.5 -0.5
v 0.5 -0.5 -0.5
v 0.5 0.5 -0.5
v -0.5 0.5 -0.5
v -0.5 -0.5 0.5
v 0.5 -0.5 0.5
v 0.5 0.5 0.5
v -0.5 0.5 0.5
f 5 7 6
f 5 7 8
f 1 3 2
f 1 4 3
f 2 3 7
f 2 7 6
f 1 8 4
f 1 5 8
f 4 7 3
f 4 8 7
f 1 2 6
f 1 6 5
`
	mem := vfs.NewMemSource(map[string][]byte{"flip.obj": []byte(flippedCube)})
	m := New("flip")
	m.FilePath = "flip.obj"

	if err := m.Compile(mem, DefaultOptions(), logx.Nop{}); err != nil {
		t.Fatalf("Compile: %v", err)
	}

	if _, _, found := m.InvalidOrientation(); !found {
		t.Fatal("expected an inconsistent orientation to be detected")
	}
	if _, err := m.Volume(); err == nil {
		t.Fatal("expected Volume to surface the orientation error")
	}
}

func TestCompileBothFileAndArraysRejected(t *testing.T) {
	mem := vfs.NewMemSource(map[string][]byte{"cube.stl": buildSTLCube()})
	m := New("cube")
	m.FilePath = "cube.stl"
	m.Vertices = [][3]float32{{0, 0, 0}, {1, 0, 0}, {0, 1, 0}, {0, 0, 1}}
	if err := m.Compile(mem, DefaultOptions(), logx.Nop{}); err == nil {
		t.Fatal("expected a repeated-specification error")
	}
}

func TestCompileDirectArraysNoFaces(t *testing.T) {
	// No faces supplied: Compile must build a convex hull graph and
	// synthesize faces from it.
	m := New("hull-cube")
	m.Vertices = [][3]float32{
		{-0.5, -0.5, -0.5}, {0.5, -0.5, -0.5}, {0.5, 0.5, -0.5}, {-0.5, 0.5, -0.5},
		{-0.5, -0.5, 0.5}, {0.5, -0.5, 0.5}, {0.5, 0.5, 0.5}, {-0.5, 0.5, 0.5},
	}
	if err := m.Compile(vfs.Chain{}, DefaultOptions(), logx.Nop{}); err != nil {
		t.Fatalf("Compile: %v", err)
	}
	if len(m.Faces) == 0 {
		t.Fatal("expected faces to be synthesized from the convex hull")
	}
	if m.ConvexGraph() == nil {
		t.Fatal("expected a convex hull graph to be built")
	}

	// The synthesized faces must index the mesh's own vertex array with
	// original (global) ids, not the hull graph's local compaction, or
	// the volume below comes out wrong.
	vol, err := m.Volume()
	if err != nil {
		t.Fatalf("Volume: %v", err)
	}
	if !approxEqual(vol, 1.0, 1e-4) {
		t.Fatalf("volume = %v, want 1 (unit cube)", vol)
	}
}

func TestCompileDirectArraysHullIgnoresInteriorVertex(t *testing.T) {
	// A vertex strictly inside the cube never appears in any hull facet,
	// so the hull's local vertex count is smaller than the mesh's total
	// vertex count — the case where confusing local and global ids would
	// misindex the synthesized faces into the wrong vertices.
	m := New("hull-cube-interior")
	m.Vertices = [][3]float32{
		{-0.5, -0.5, -0.5}, {0.5, -0.5, -0.5}, {0.5, 0.5, -0.5}, {-0.5, 0.5, -0.5},
		{-0.5, -0.5, 0.5}, {0.5, -0.5, 0.5}, {0.5, 0.5, 0.5}, {-0.5, 0.5, 0.5},
		{0, 0, 0},
	}
	if err := m.Compile(vfs.Chain{}, DefaultOptions(), logx.Nop{}); err != nil {
		t.Fatalf("Compile: %v", err)
	}
	if len(m.Vertices) != 9 {
		t.Fatalf("expected the interior vertex to survive staging, got %d vertices", len(m.Vertices))
	}
	for _, f := range m.Faces {
		for _, idx := range f {
			if idx < 0 || int(idx) >= len(m.Vertices) {
				t.Fatalf("face index %d out of range [0, %d)", idx, len(m.Vertices))
			}
		}
	}
	vol, err := m.Volume()
	if err != nil {
		t.Fatalf("Volume: %v", err)
	}
	if !approxEqual(vol, 1.0, 1e-4) {
		t.Fatalf("volume = %v, want 1 (unit cube, interior vertex unused)", vol)
	}
}

func TestCompileTooFewVertices(t *testing.T) {
	m := New("triangle")
	m.Vertices = [][3]float32{{0, 0, 0}, {1, 0, 0}, {0, 1, 0}}
	err := m.Compile(vfs.Chain{}, DefaultOptions(), logx.Nop{})
	if err == nil {
		t.Fatal("expected a 3-vertex mesh to fail with TooFewVertices")
	}
	if me, ok := pkgerrors.Cause(err).(*mesherr.Error); !ok || me.Kind != mesherr.TooFewVertices {
		t.Fatalf("expected TooFewVertices, got %v", err)
	}
}

func TestCompileIndexOutOfRange(t *testing.T) {
	m := New("bad-index")
	m.Vertices = [][3]float32{{0, 0, 0}, {1, 0, 0}, {0, 1, 0}, {0, 0, 1}}
	m.Faces = [][3]int32{{0, 1, 4}}
	err := m.Compile(vfs.Chain{}, DefaultOptions(), logx.Nop{})
	if err == nil {
		t.Fatal("expected an out-of-range face index to fail")
	}
	if me, ok := pkgerrors.Cause(err).(*mesherr.Error); !ok || me.Kind != mesherr.IndexOutOfRange {
		t.Fatalf("expected IndexOutOfRange, got %v", err)
	}
}
