// Package skin compiles a staged SKN skin into its final form: body and
// material names resolved through an external catalog, per-vertex bone
// weights validated and normalized, and bind quaternions unit-normalized
// (spec.md §4.6). Ported from original_source/src/user/user_mesh.cc's
// mjCSkin::Compile().
package skin

import (
	"math"
	"strconv"

	"github.com/Faultbox/meshcompile/internal/mesherr"
	"github.com/Faultbox/meshcompile/internal/meshconst"
	"github.com/Faultbox/meshcompile/internal/meshio"
)

// ObjectKind distinguishes the two catalog lookups a skin performs.
type ObjectKind int

const (
	ObjectBody ObjectKind = iota
	ObjectMaterial
)

// Catalog resolves named scene objects (bodies, materials) to ids. It is
// the skin compiler's only external collaborator — spec.md §1 keeps the
// enclosing model catalog out of scope for this module, so this package
// depends only on the interface, never on a concrete implementation.
type Catalog interface {
	FindObject(kind ObjectKind, name string) (id int32, ok bool)
}

// Bone is one compiled skin bone: its resolved body, bind pose, and the
// normalized per-vertex weights it contributes.
type Bone struct {
	BodyName   string
	BodyID     int32
	BindPos    [3]float32
	BindQuat   [4]float32
	VertID     []int32
	VertWeight []float32
}

// Skin is a fully compiled skin, ready for the caller to attach to a
// rendered/animated body hierarchy.
type Skin struct {
	Vertices     [][3]float32
	TexCoords    [][2]float32
	Faces        [][3]int32
	Bones        []Bone
	MaterialName string
	MaterialID   int32 // -1 when no material was specified
}

// Compile validates a staged skin's array-size relations, resolves body
// and material names through cat, checks and normalizes per-vertex bone
// weight coverage, and normalizes bind quaternions.
func Compile(skinName string, st *meshio.SkinStaging, materialName string, cat Catalog) (*Skin, error) {
	if len(st.Vertices) == 0 || len(st.Faces) == 0 || len(st.Bones) == 0 {
		return nil, mesherr.New(mesherr.MissingSkinData, skinName, "skin requires vertices, faces and at least one bone")
	}

	out := &Skin{
		Vertices:     st.Vertices,
		TexCoords:    st.TexCoords,
		Faces:        st.Faces,
		Bones:        make([]Bone, len(st.Bones)),
		MaterialName: materialName,
		MaterialID:   -1,
	}

	for i, b := range st.Bones {
		if len(b.VertID) == 0 || len(b.VertID) != len(b.VertWeight) {
			return nil, mesherr.New(mesherr.BoneWeightMismatch, skinName, "vertid and vertweight must have the same non-zero size")
		}
		bodyID, ok := cat.FindObject(ObjectBody, b.BodyName)
		if !ok {
			return nil, mesherr.New(mesherr.UnknownBody, skinName, "unknown body: "+b.BodyName)
		}
		out.Bones[i] = Bone{
			BodyName:   b.BodyName,
			BodyID:     bodyID,
			BindPos:    b.BindPos,
			BindQuat:   normalizeQuat(b.BindQuat),
			VertID:     b.VertID,
			VertWeight: append([]float32(nil), b.VertWeight...),
		}
	}

	if materialName != "" {
		matID, ok := cat.FindObject(ObjectMaterial, materialName)
		if !ok {
			return nil, mesherr.New(mesherr.UnknownMaterial, skinName, "unknown material: "+materialName)
		}
		out.MaterialID = matID
	}

	if err := normalizeWeights(skinName, out); err != nil {
		return nil, err
	}

	return out, nil
}

// normalizeWeights accumulates each vertex's total bone weight, fails if
// any vertex (including ones no bone references) has total weight at or
// below ε, then divides each bone's per-vertex weight by that total so
// the weights referencing any given vertex sum to 1.
func normalizeWeights(skinName string, sk *Skin) error {
	nvert := len(sk.Vertices)
	total := make([]float32, nvert)

	for _, b := range sk.Bones {
		for j, vid := range b.VertID {
			if vid < 0 || int(vid) >= nvert {
				return mesherr.New(mesherr.IndexOutOfRange, skinName, "vertid out of range in skin")
			}
			total[vid] += b.VertWeight[j]
		}
	}

	for i, t := range total {
		if t <= meshconst.MINVAL {
			return mesherr.New(mesherr.ZeroWeightVertex, skinName, "vertex "+strconv.Itoa(i))
		}
	}

	for bi := range sk.Bones {
		for j, vid := range sk.Bones[bi].VertID {
			sk.Bones[bi].VertWeight[j] /= total[vid]
		}
	}
	return nil
}

func normalizeQuat(q [4]float32) [4]float32 {
	l := math.Sqrt(float64(q[0]*q[0] + q[1]*q[1] + q[2]*q[2] + q[3]*q[3]))
	if l < meshconst.MINVAL {
		return [4]float32{1, 0, 0, 0}
	}
	scale := float32(1 / l)
	return [4]float32{q[0] * scale, q[1] * scale, q[2] * scale, q[3] * scale}
}
