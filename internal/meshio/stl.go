package meshio

import (
	"bytes"
	"encoding/binary"
	"fmt"

	"github.com/Faultbox/meshcompile/internal/mesherr"
	"github.com/Faultbox/meshcompile/internal/meshconst"
)

// LoadSTL parses a binary STL buffer (spec.md §4.2.1): an 80-byte header,
// a u32 triangle count, then that many 50-byte records (12-byte normal —
// discarded, three 12-byte vertices, 2-byte attribute — discarded).
//
// Vertices are emitted naively, three per triangle with no deduplication
// — the topology canonicalizer (internal/topology) is responsible for
// collapsing coincident vertices on the STL path.
func LoadSTL(meshName string, data []byte, scale [3]float32) (*Staging, error) {
	if len(data) < meshconst.STLHeaderSize {
		return nil, mesherr.New(mesherr.MalformedHeader, meshName, "buffer shorter than the 84-byte STL header")
	}

	n := binary.LittleEndian.Uint32(data[80:84])
	if n < 1 || n > meshconst.STLMaxTriangles {
		return nil, mesherr.New(mesherr.MalformedHeader, meshName,
			fmt.Sprintf("triangle count %d out of range [1, %d]", n, meshconst.STLMaxTriangles))
	}

	want := meshconst.STLHeaderSize + meshconst.STLTriangleRecordSize*int(n)
	if len(data) != want {
		return nil, mesherr.New(mesherr.SizeMismatch, meshName,
			fmt.Sprintf("expected %d bytes for %d triangles, got %d", want, n, len(data)))
	}

	r := bytes.NewReader(data[meshconst.STLHeaderSize:])
	leftHanded := isLeftHanded(scale)

	st := &Staging{
		Vertices:   make([][3]float32, 0, 3*n),
		Faces:      make([][3]int32, 0, n),
		LeftHanded: leftHanded,
	}

	var normal [3]float32
	var tri [3][3]float32
	var attr uint16

	for i := uint32(0); i < n; i++ {
		if err := binary.Read(r, binary.LittleEndian, &normal); err != nil {
			return nil, mesherr.New(mesherr.SizeMismatch, meshName, "truncated triangle record")
		}
		if err := binary.Read(r, binary.LittleEndian, &tri); err != nil {
			return nil, mesherr.New(mesherr.SizeMismatch, meshName, "truncated triangle record")
		}
		if err := binary.Read(r, binary.LittleEndian, &attr); err != nil {
			return nil, mesherr.New(mesherr.SizeMismatch, meshName, "truncated triangle record")
		}

		for _, v := range tri {
			for _, c := range v {
				if hasNaNOrInf32(c) {
					return nil, mesherr.New(mesherr.InvalidFloat, meshName,
						fmt.Sprintf("triangle %d has a non-finite coordinate", i))
				}
				if c > meshconst.CoordMax || c < -meshconst.CoordMax {
					return nil, mesherr.New(mesherr.CoordOverflow, meshName,
						fmt.Sprintf("triangle %d has a coordinate beyond +/-2^30", i))
				}
			}
		}

		base := int32(len(st.Vertices))
		st.Vertices = append(st.Vertices, tri[0], tri[1], tri[2])

		if leftHanded {
			st.Faces = append(st.Faces, [3]int32{base, base + 2, base + 1})
		} else {
			st.Faces = append(st.Faces, [3]int32{base, base + 1, base + 2})
		}
	}

	return st, nil
}
