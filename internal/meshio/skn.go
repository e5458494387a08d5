package meshio

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"io"
	"math"

	"github.com/Faultbox/meshcompile/internal/mesherr"
	"github.com/Faultbox/meshcompile/internal/meshconst"
)

// SkinBone is one bone record staged from a SKN file: a body name to be
// resolved through the model catalog, its bind pose, and the parallel
// vertex-id/weight arrays describing which mesh vertices it influences.
type SkinBone struct {
	BodyName   string
	BindPos    [3]float32
	BindQuat   [4]float32
	VertID     []int32
	VertWeight []float32
}

// SkinStaging is the neutral buffer LoadSKN populates.
type SkinStaging struct {
	Vertices  [][3]float32
	TexCoords [][2]float32
	Faces     [][3]int32
	Bones     []SkinBone
}

// LoadSKN parses a binary SKN buffer (spec.md §4.2.4): a four-int32
// header (nvert, ntexcoord, nface, nbone), then the flat vertex/texcoord/
// face arrays, then nbone per-bone records.
//
// Each bone's vertweight array is stored on the wire as the int32 bit
// pattern of the float32 weights — a quirk of the original writer this
// loader preserves bit-for-bit via math.Float32frombits rather than
// "fixing" it, since the writer and reader must keep agreeing.
func LoadSKN(meshName string, data []byte) (*SkinStaging, error) {
	if len(data) < 16 {
		return nil, mesherr.New(mesherr.MalformedHeader, meshName, "buffer shorter than the 16-byte SKN header")
	}

	r := bytes.NewReader(data)
	var header [4]int32
	if err := binary.Read(r, binary.LittleEndian, &header); err != nil {
		return nil, mesherr.New(mesherr.MalformedHeader, meshName, "could not read SKN header")
	}
	nvert, ntexcoord, nface, nbone := header[0], header[1], header[2], header[3]

	if nvert < 0 || ntexcoord < 0 || nface < 0 || nbone < 0 {
		return nil, mesherr.New(mesherr.MalformedHeader, meshName, "negative size in SKN header")
	}

	fixedWant := 16 + 12*int(nvert) + 8*int(ntexcoord) + 12*int(nface)
	if len(data) < fixedWant {
		return nil, mesherr.New(mesherr.SizeMismatch, meshName, "insufficient data for the declared vert/texcoord/face counts")
	}

	st := &SkinStaging{}

	if nvert > 0 {
		st.Vertices = make([][3]float32, nvert)
		if err := binary.Read(r, binary.LittleEndian, &st.Vertices); err != nil {
			return nil, mesherr.New(mesherr.SizeMismatch, meshName, "truncated vertex array")
		}
	}
	if ntexcoord > 0 {
		st.TexCoords = make([][2]float32, ntexcoord)
		if err := binary.Read(r, binary.LittleEndian, &st.TexCoords); err != nil {
			return nil, mesherr.New(mesherr.SizeMismatch, meshName, "truncated texcoord array")
		}
	}
	if nface > 0 {
		st.Faces = make([][3]int32, nface)
		if err := binary.Read(r, binary.LittleEndian, &st.Faces); err != nil {
			return nil, mesherr.New(mesherr.SizeMismatch, meshName, "truncated face array")
		}
	}

	// cnt tracks the running int32/float32 cursor after the header, the
	// same units the original writer's size check uses, so the final
	// "buffer_sz == 16 + 4*cnt" assertion below lines up exactly.
	cnt := 3*int(nvert) + 2*int(ntexcoord) + 3*int(nface)

	st.Bones = make([]SkinBone, nbone)
	for i := int32(0); i < nbone; i++ {
		bone, consumed, err := readSknBone(r, meshName, i)
		if err != nil {
			return nil, err
		}
		st.Bones[i] = *bone
		cnt += consumed
	}

	if len(data) != 16+4*cnt {
		return nil, mesherr.New(mesherr.SizeMismatch, meshName, "unexpected trailing or missing bytes in SKN file")
	}

	return st, nil
}

func readSknBone(r *bytes.Reader, meshName string, idx int32) (*SkinBone, int, error) {
	nameBuf := make([]byte, meshconst.SkinBoneNameSize)
	if _, err := io.ReadFull(r, nameBuf); err != nil {
		return nil, 0, mesherr.New(mesherr.SizeMismatch, meshName, fmt.Sprintf("bone %d: truncated name field", idx))
	}
	bone := &SkinBone{BodyName: readFixedString(nameBuf)}
	consumed := meshconst.SkinBoneNameSize / 4 // 40 bytes = 10 cursor units

	if err := binary.Read(r, binary.LittleEndian, &bone.BindPos); err != nil {
		return nil, 0, mesherr.New(mesherr.SizeMismatch, meshName, fmt.Sprintf("bone %d: truncated bindpos", idx))
	}
	consumed += 3

	if err := binary.Read(r, binary.LittleEndian, &bone.BindQuat); err != nil {
		return nil, 0, mesherr.New(mesherr.SizeMismatch, meshName, fmt.Sprintf("bone %d: truncated bindquat", idx))
	}
	consumed += 4

	var vcount int32
	if err := binary.Read(r, binary.LittleEndian, &vcount); err != nil {
		return nil, 0, mesherr.New(mesherr.SizeMismatch, meshName, fmt.Sprintf("bone %d: truncated vertex count", idx))
	}
	consumed++
	if vcount < 1 {
		return nil, 0, mesherr.New(mesherr.MalformedHeader, meshName, fmt.Sprintf("bone %d: vertex count must be positive", idx))
	}

	bone.VertID = make([]int32, vcount)
	if err := binary.Read(r, binary.LittleEndian, &bone.VertID); err != nil {
		return nil, 0, mesherr.New(mesherr.SizeMismatch, meshName, fmt.Sprintf("bone %d: truncated vertid array", idx))
	}
	consumed += int(vcount)

	rawWeights := make([]int32, vcount)
	if err := binary.Read(r, binary.LittleEndian, &rawWeights); err != nil {
		return nil, 0, mesherr.New(mesherr.SizeMismatch, meshName, fmt.Sprintf("bone %d: truncated vertweight array", idx))
	}
	consumed += int(vcount)

	bone.VertWeight = make([]float32, vcount)
	for i, raw := range rawWeights {
		bone.VertWeight[i] = math.Float32frombits(uint32(raw))
	}

	return bone, consumed, nil
}
