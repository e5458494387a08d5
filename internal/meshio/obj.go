package meshio

import (
	"bufio"
	"bytes"
	"fmt"
	"strconv"
	"strings"

	"github.com/Faultbox/meshcompile/internal/mesherr"
)

// LoadOBJ parses a tri/quad-restricted Wavefront OBJ buffer (spec.md
// §4.2.2): "v" vertex lines, "vt" texcoord lines, and "f" face lines of
// exactly 3 or 4 vertices. N-gons are rejected rather than silently
// fan-triangulated beyond the one quad case the format allows.
//
// Texcoord v is flipped (t.v <- 1 - t.v) for every texcoord except index
// 0 — a quirk preserved from the reference pipeline to keep downstream
// textures aligned.
func LoadOBJ(meshName string, data []byte, scale [3]float32) (*Staging, error) {
	st := &Staging{LeftHanded: isLeftHanded(scale)}

	scanner := bufio.NewScanner(bytes.NewReader(data))
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

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
			v, err := parseFloat3(fields[1:])
			if err != nil {
				return nil, mesherr.New(mesherr.InvalidFloat, meshName, fmt.Sprintf("line %d: %v", lineNo, err))
			}
			st.Vertices = append(st.Vertices, v)
		case "vt":
			uv, err := parseFloat2(fields[1:])
			if err != nil {
				return nil, mesherr.New(mesherr.InvalidFloat, meshName, fmt.Sprintf("line %d: %v", lineNo, err))
			}
			idx := len(st.TexCoords)
			if idx != 0 {
				uv[1] = 1 - uv[1]
			}
			st.TexCoords = append(st.TexCoords, uv)
		case "f":
			if err := parseOBJFace(st, meshName, fields[1:], lineNo); err != nil {
				return nil, err
			}
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, mesherr.New(mesherr.MalformedHeader, meshName, err.Error())
	}

	return st, nil
}

func parseFloat3(fields []string) ([3]float32, error) {
	var v [3]float32
	if len(fields) < 3 {
		return v, fmt.Errorf("expected 3 components, got %d", len(fields))
	}
	for i := 0; i < 3; i++ {
		f, err := strconv.ParseFloat(fields[i], 32)
		if err != nil {
			return v, err
		}
		v[i] = float32(f)
	}
	return v, nil
}

func parseFloat2(fields []string) ([2]float32, error) {
	var v [2]float32
	if len(fields) < 2 {
		return v, fmt.Errorf("expected 2 components, got %d", len(fields))
	}
	for i := 0; i < 2; i++ {
		f, err := strconv.ParseFloat(fields[i], 32)
		if err != nil {
			return v, err
		}
		v[i] = float32(f)
	}
	return v, nil
}

// parseOBJVertRef parses a face-line vertex reference: "v", "v/vt", "v//vn" or
// "v/vt/vn". Only the vertex and texcoord indices are used — normal
// indices are ignored because compiled normals are always re-derived
// (spec.md §4.8's vertex-normal synthesis) or supplied by MSH/SKN.
func parseOBJVertRef(field string, nvert, ntex int) (v, vt int32, err error) {
	parts := strings.Split(field, "/")
	idx, err := strconv.Atoi(parts[0])
	if err != nil {
		return 0, 0, err
	}
	v = resolveOBJIndex(idx, nvert)
	if v < 0 || int(v) >= nvert {
		return 0, 0, fmt.Errorf("vertex index %d out of range", idx)
	}
	vt = -1
	if len(parts) >= 2 && parts[1] != "" {
		tidx, err := strconv.Atoi(parts[1])
		if err != nil {
			return 0, 0, err
		}
		vt = resolveOBJIndex(tidx, ntex)
		if vt < 0 || int(vt) >= ntex {
			return 0, 0, fmt.Errorf("texcoord index %d out of range", tidx)
		}
	}
	return v, vt, nil
}

func resolveOBJIndex(idx, count int) int32 {
	if idx > 0 {
		return int32(idx - 1)
	}
	if idx < 0 {
		return int32(count + idx)
	}
	return -1
}

func parseOBJFace(st *Staging, meshName string, fields []string, lineNo int) error {
	if len(fields) != 3 && len(fields) != 4 {
		return mesherr.New(mesherr.OnlyTrisAndQuads, meshName,
			fmt.Sprintf("line %d: face has %d vertices, only 3 or 4 are supported", lineNo, len(fields)))
	}

	nvert := len(st.Vertices)
	ntex := len(st.TexCoords)

	vids := make([]int32, len(fields))
	tids := make([]int32, len(fields))
	hasTex := ntex > 0
	for i, f := range fields {
		v, vt, err := parseOBJVertRef(f, nvert, ntex)
		if err != nil {
			return mesherr.New(mesherr.IndexOutOfRange, meshName, fmt.Sprintf("line %d: %v", lineNo, err))
		}
		vids[i] = v
		if vt < 0 {
			hasTex = false
		}
		tids[i] = vt
	}

	addTri := func(i0, i1, i2 int, swap bool) {
		a, b, c := i0, i1, i2
		if swap {
			b, c = c, b
		}
		st.Faces = append(st.Faces, [3]int32{vids[a], vids[b], vids[c]})
		if hasTex {
			st.FaceTexCoords = append(st.FaceTexCoords, [3]int32{tids[a], tids[b], tids[c]})
		}
		st.Edges = appendTriangleEdges(st.Edges, st.Vertices, vids[a], vids[b], vids[c])
	}

	addTri(0, 1, 2, st.LeftHanded)
	if len(fields) == 4 {
		addTri(0, 2, 3, st.LeftHanded)
	}
	return nil
}
