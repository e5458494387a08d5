package topology

import "testing"

func TestDedupCollapsesCoincidentVertices(t *testing.T) {
	// A "triangle pair" sharing an edge, STL-style: each
	// triangle contributes its own 3 fresh vertices.
	verts := [][3]float32{
		{0, 0, 0}, {1, 0, 0}, {0, 1, 0}, // triangle 1
		{0, 0, 0}, {0, 1, 0}, {1, 1, 0}, // triangle 2, shares two verts
	}
	faces := [][3]int32{{0, 1, 2}, {3, 4, 5}}

	newVerts, newFaces := Dedup(verts, faces)
	if len(newVerts) != 4 {
		t.Fatalf("expected 4 unique vertices, got %d: %v", len(newVerts), newVerts)
	}
	for _, f := range newFaces {
		for _, idx := range f {
			if idx < 0 || int(idx) >= len(newVerts) {
				t.Fatalf("face index %d out of range [0,%d)", idx, len(newVerts))
			}
		}
	}
	// Every original position must still be present in the compacted set.
	seen := map[[3]float32]bool{}
	for _, v := range newVerts {
		seen[v] = true
	}
	for _, v := range verts {
		if !seen[v] {
			t.Fatalf("position %v missing after dedup", v)
		}
	}
}

func TestDedupNoRepeats(t *testing.T) {
	verts := [][3]float32{{0, 0, 0}, {1, 0, 0}, {0, 1, 0}}
	faces := [][3]int32{{0, 1, 2}}
	newVerts, newFaces := Dedup(verts, faces)
	if len(newVerts) != 3 {
		t.Fatalf("expected no collapsing, got %d vertices", len(newVerts))
	}
	if newFaces[0] != faces[0] {
		t.Fatalf("faces should be unchanged, got %v", newFaces[0])
	}
}

func TestCheckOrientationConsistent(t *testing.T) {
	// A single triangle's three directed edges never repeat.
	edges := [][2]int32{{0, 1}, {1, 2}, {2, 0}}
	if _, _, ok := CheckOrientation(edges); !ok {
		t.Fatal("expected a consistent single triangle to report ok")
	}
}

func TestCheckOrientationDetectsFlip(t *testing.T) {
	// Two triangles sharing edge (0,1) with the same winding: a flipped
	// face relative to its neighbor.
	edges := [][2]int32{
		{0, 1}, {1, 2}, {2, 0},
		{0, 1}, {1, 3}, {3, 0},
	}
	v1, v2, ok := CheckOrientation(edges)
	if ok {
		t.Fatal("expected a duplicated directed edge to be detected")
	}
	if v1 != 1 || v2 != 2 {
		t.Fatalf("expected 1-based (1,2), got (%d,%d)", v1, v2)
	}
}
