package skin

import (
	"testing"

	"github.com/Faultbox/meshcompile/internal/meshio"
)

type fakeCatalog struct {
	bodies    map[string]int32
	materials map[string]int32
}

func (c fakeCatalog) FindObject(kind ObjectKind, name string) (int32, bool) {
	var m map[string]int32
	if kind == ObjectBody {
		m = c.bodies
	} else {
		m = c.materials
	}
	id, ok := m[name]
	return id, ok
}

func twoBoneStaging() *meshio.SkinStaging {
	return &meshio.SkinStaging{
		Vertices: [][3]float32{{0, 0, 0}, {1, 0, 0}},
		Faces:    [][3]int32{{0, 1, 0}},
		Bones: []meshio.SkinBone{
			{
				BodyName:   "root",
				BindQuat:   [4]float32{1, 0, 0, 0},
				VertID:     []int32{0},
				VertWeight: []float32{1},
			},
			{
				BodyName:   "arm",
				BindQuat:   [4]float32{2, 0, 0, 0}, // unnormalized, should become (1,0,0,0)
				VertID:     []int32{1},
				VertWeight: []float32{1},
			},
		},
	}
}

func TestCompileResolvesBodiesAndNormalizesQuat(t *testing.T) {
	cat := fakeCatalog{bodies: map[string]int32{"root": 1, "arm": 2}}
	sk, err := Compile("biped", twoBoneStaging(), "", cat)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if sk.Bones[0].BodyID != 1 || sk.Bones[1].BodyID != 2 {
		t.Fatalf("body ids not resolved: %+v", sk.Bones)
	}
	if sk.MaterialID != -1 {
		t.Fatalf("expected matid -1 for empty material name, got %d", sk.MaterialID)
	}
	q := sk.Bones[1].BindQuat
	if q[0] < 0.999 || q[0] > 1.001 {
		t.Fatalf("expected normalized bindquat, got %v", q)
	}
}

func TestCompileUnknownBody(t *testing.T) {
	cat := fakeCatalog{bodies: map[string]int32{"root": 1}}
	_, err := Compile("biped", twoBoneStaging(), "", cat)
	if err == nil {
		t.Fatal("expected an unknown-body error")
	}
}

func TestCompileUnknownMaterial(t *testing.T) {
	cat := fakeCatalog{bodies: map[string]int32{"root": 1, "arm": 2}}
	_, err := Compile("biped", twoBoneStaging(), "chrome", cat)
	if err == nil {
		t.Fatal("expected an unknown-material error")
	}
}

func TestCompileResolvesKnownMaterial(t *testing.T) {
	cat := fakeCatalog{
		bodies:    map[string]int32{"root": 1, "arm": 2},
		materials: map[string]int32{"chrome": 5},
	}
	sk, err := Compile("biped", twoBoneStaging(), "chrome", cat)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if sk.MaterialID != 5 {
		t.Fatalf("expected matid 5, got %d", sk.MaterialID)
	}
}

func TestCompileZeroWeightVertex(t *testing.T) {
	cat := fakeCatalog{bodies: map[string]int32{"root": 1}}
	st := &meshio.SkinStaging{
		Vertices: [][3]float32{{0, 0, 0}, {1, 0, 0}}, // vertex 1 is never weighted
		Faces:    [][3]int32{{0, 1, 0}},
		Bones: []meshio.SkinBone{
			{BodyName: "root", BindQuat: [4]float32{1, 0, 0, 0}, VertID: []int32{0}, VertWeight: []float32{1}},
		},
	}
	_, err := Compile("biped", st, "", cat)
	if err == nil {
		t.Fatal("expected a zero-weight-vertex error")
	}
}

// S7: two bones covering the same vertex with weights (1, 2) normalize
// to (1/3, 2/3).
func TestCompileNormalizesSharedVertexWeights(t *testing.T) {
	cat := fakeCatalog{bodies: map[string]int32{"root": 1, "arm": 2}}
	st := &meshio.SkinStaging{
		Vertices: [][3]float32{{0, 0, 0}},
		Faces:    [][3]int32{{0, 0, 0}},
		Bones: []meshio.SkinBone{
			{BodyName: "root", BindQuat: [4]float32{1, 0, 0, 0}, VertID: []int32{0}, VertWeight: []float32{1}},
			{BodyName: "arm", BindQuat: [4]float32{1, 0, 0, 0}, VertID: []int32{0}, VertWeight: []float32{2}},
		},
	}
	sk, err := Compile("biped", st, "", cat)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	w0, w1 := sk.Bones[0].VertWeight[0], sk.Bones[1].VertWeight[0]
	if diff := w0 - 1.0/3; diff > 1e-5 || diff < -1e-5 {
		t.Fatalf("bone 0 weight = %v, want 1/3", w0)
	}
	if diff := w1 - 2.0/3; diff > 1e-5 || diff < -1e-5 {
		t.Fatalf("bone 1 weight = %v, want 2/3", w1)
	}
}
