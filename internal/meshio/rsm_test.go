package meshio

import (
	"bytes"
	"encoding/binary"
	"testing"
)

func writeRSMString(buf *bytes.Buffer, s string, width int) {
	b := make([]byte, width)
	copy(b, s)
	buf.Write(b)
}

// buildRSMv1_1 assembles a minimal single-node, single-triangle RSM v1.1
// buffer, following the field order parseRSMNode expects for a version
// below 1.2 (no per-texcoord vertex color, no face smoothing group) and
// below 1.5 (position keyframes present, scale keyframes absent).
func buildRSMv1_1(t *testing.T, verts [][3]float32, faces [][3]uint16) []byte {
	t.Helper()
	var buf bytes.Buffer

	buf.WriteString("GRSM")
	buf.WriteByte(1) // version major
	buf.WriteByte(1) // version minor
	binary.Write(&buf, binary.LittleEndian, int32(0)) // anim length
	binary.Write(&buf, binary.LittleEndian, int32(0)) // shading
	buf.Write(make([]byte, 16))                       // reserved

	binary.Write(&buf, binary.LittleEndian, int32(0)) // texture count
	writeRSMString(&buf, "root", 40)                  // root node name
	binary.Write(&buf, binary.LittleEndian, int32(1))  // node count

	writeRSMString(&buf, "root", 40) // node name
	writeRSMString(&buf, "", 40)     // parent name
	binary.Write(&buf, binary.LittleEndian, int32(0)) // node texture count

	var identity [9]float32 = [9]float32{1, 0, 0, 0, 1, 0, 0, 0, 1}
	binary.Write(&buf, binary.LittleEndian, identity)            // matrix
	binary.Write(&buf, binary.LittleEndian, [3]float32{0, 0, 0})  // offset
	binary.Write(&buf, binary.LittleEndian, [3]float32{0, 0, 0})  // position
	binary.Write(&buf, binary.LittleEndian, float32(0))           // rot angle
	binary.Write(&buf, binary.LittleEndian, [3]float32{0, 0, 1})  // rot axis
	binary.Write(&buf, binary.LittleEndian, [3]float32{1, 1, 1})  // scale

	binary.Write(&buf, binary.LittleEndian, int32(len(verts)))
	for _, v := range verts {
		binary.Write(&buf, binary.LittleEndian, v)
	}

	binary.Write(&buf, binary.LittleEndian, int32(0)) // texcoord count

	binary.Write(&buf, binary.LittleEndian, int32(len(faces)))
	for _, f := range faces {
		binary.Write(&buf, binary.LittleEndian, f)             // vertex ids
		binary.Write(&buf, binary.LittleEndian, [3]uint16{0, 0, 0}) // texcoord ids
		binary.Write(&buf, binary.LittleEndian, uint16(0))      // texture id
		binary.Write(&buf, binary.LittleEndian, uint16(0))      // padding
		binary.Write(&buf, binary.LittleEndian, int32(0))       // two side
	}

	binary.Write(&buf, binary.LittleEndian, int32(0)) // pos keyframe count (v < 1.5)
	binary.Write(&buf, binary.LittleEndian, int32(0)) // rot keyframe count

	return buf.Bytes()
}

func TestLoadRSMSingleTriangleNode(t *testing.T) {
	verts := [][3]float32{{0, 0, 0}, {1, 0, 0}, {0, 1, 0}}
	faces := [][3]uint16{{0, 1, 2}}
	data := buildRSMv1_1(t, verts, faces)

	st, err := LoadRSM("model", data, [3]float32{1, 1, 1})
	if err != nil {
		t.Fatalf("LoadRSM: %v", err)
	}
	if len(st.Vertices) != 3 {
		t.Fatalf("expected 3 vertices, got %d", len(st.Vertices))
	}
	if len(st.Faces) != 1 || st.Faces[0] != [3]int32{0, 1, 2} {
		t.Fatalf("unexpected face: %v", st.Faces)
	}
	if len(st.Edges) != 3 {
		t.Fatalf("expected 3 directed edges, got %d", len(st.Edges))
	}
}

func TestLoadRSMLeftHandedSwapsWinding(t *testing.T) {
	verts := [][3]float32{{0, 0, 0}, {1, 0, 0}, {0, 1, 0}}
	faces := [][3]uint16{{0, 1, 2}}
	data := buildRSMv1_1(t, verts, faces)

	st, err := LoadRSM("model", data, [3]float32{-1, 1, 1})
	if err != nil {
		t.Fatalf("LoadRSM: %v", err)
	}
	if st.Faces[0] != [3]int32{0, 2, 1} {
		t.Fatalf("expected swapped winding, got %v", st.Faces[0])
	}
}

func TestLoadRSMNoVertices(t *testing.T) {
	data := buildRSMv1_1(t, nil, nil)
	_, err := LoadRSM("empty", data, [3]float32{1, 1, 1})
	if err == nil {
		t.Fatal("expected an error for a vertex-less RSM model")
	}
}

func TestLoadRSMBadMagicRejected(t *testing.T) {
	data := buildRSMv1_1(t, [][3]float32{{0, 0, 0}, {1, 0, 0}, {0, 1, 0}}, [][3]uint16{{0, 1, 2}})
	data[0] = 'X'
	if _, err := LoadRSM("bad", data, [3]float32{1, 1, 1}); err == nil {
		t.Fatal("expected a bad-magic RSM buffer to be rejected")
	}
}
