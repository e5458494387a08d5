package meshio

import (
	"bytes"
	"encoding/binary"
	"fmt"

	"github.com/Faultbox/meshcompile/internal/mesherr"
	"github.com/Faultbox/meshcompile/internal/meshconst"
)

// mshHeader is the four-int32 MSH binary header (spec.md §4.2.3).
type mshHeader struct {
	NVert, NNormal, NTexCoord, NFace int32
}

// LoadMSH parses a binary MSH buffer: a four-int32 header, then
// nvert vertices, nnormal normals, ntexcoord texcoords and nface faces
// packed contiguously.
func LoadMSH(meshName string, data []byte, scale [3]float32) (*Staging, error) {
	if len(data) < 16 {
		return nil, mesherr.New(mesherr.MalformedHeader, meshName, "buffer shorter than the 16-byte MSH header")
	}

	r := bytes.NewReader(data)
	var h mshHeader
	if err := binary.Read(r, binary.LittleEndian, &h); err != nil {
		return nil, mesherr.New(mesherr.MalformedHeader, meshName, "could not read MSH header")
	}

	if h.NVert < meshconst.MinVertices {
		return nil, mesherr.New(mesherr.TooFewVertices, meshName,
			fmt.Sprintf("MSH declares %d vertices, need at least %d", h.NVert, meshconst.MinVertices))
	}
	if h.NNormal != 0 && h.NNormal != h.NVert {
		return nil, mesherr.New(mesherr.MalformedHeader, meshName, "nnormal must be 0 or nvert")
	}
	if h.NTexCoord != 0 && h.NTexCoord != h.NVert {
		return nil, mesherr.New(mesherr.MalformedHeader, meshName, "ntexcoord must be 0 or nvert")
	}
	if h.NFace < 0 {
		return nil, mesherr.New(mesherr.MalformedHeader, meshName, "nface must be >= 0")
	}

	want := 16 + 12*int(h.NVert) + 12*int(h.NNormal) + 8*int(h.NTexCoord) + 12*int(h.NFace)
	if len(data) != want {
		return nil, mesherr.New(mesherr.SizeMismatch, meshName,
			fmt.Sprintf("expected %d bytes, got %d", want, len(data)))
	}

	st := &Staging{LeftHanded: isLeftHanded(scale)}

	st.Vertices = make([][3]float32, h.NVert)
	if err := binary.Read(r, binary.LittleEndian, &st.Vertices); err != nil {
		return nil, mesherr.New(mesherr.SizeMismatch, meshName, "truncated vertex array")
	}

	if h.NNormal > 0 {
		st.Normals = make([][3]float32, h.NNormal)
		if err := binary.Read(r, binary.LittleEndian, &st.Normals); err != nil {
			return nil, mesherr.New(mesherr.SizeMismatch, meshName, "truncated normal array")
		}
	}

	if h.NTexCoord > 0 {
		st.TexCoords = make([][2]float32, h.NTexCoord)
		if err := binary.Read(r, binary.LittleEndian, &st.TexCoords); err != nil {
			return nil, mesherr.New(mesherr.SizeMismatch, meshName, "truncated texcoord array")
		}
	}

	if h.NFace > 0 {
		st.Faces = make([][3]int32, h.NFace)
		if err := binary.Read(r, binary.LittleEndian, &st.Faces); err != nil {
			return nil, mesherr.New(mesherr.SizeMismatch, meshName, "truncated face array")
		}
		if st.LeftHanded {
			for i := range st.Faces {
				st.Faces[i][1], st.Faces[i][2] = st.Faces[i][2], st.Faces[i][1]
			}
		}

		st.FaceNormals = make([][3]int32, len(st.Faces))
		copy(st.FaceNormals, st.Faces)

		if h.NTexCoord > 0 {
			st.FaceTexCoords = make([][3]int32, len(st.Faces))
			copy(st.FaceTexCoords, st.Faces)
		}
	}

	return st, nil
}
