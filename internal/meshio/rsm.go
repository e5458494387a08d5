package meshio

import (
	"fmt"

	"github.com/Faultbox/meshcompile/internal/mesherr"
	"github.com/Faultbox/meshcompile/pkg/formats"
)

// LoadRSM parses a Ragnarok Online RSM model and flattens every node's
// mesh data into one staging buffer. RSM models are a node hierarchy with
// per-node transforms and animation keyframes (pkg/formats' RSMNode); none
// of that is part of this pipeline's data model (spec.md has no notion of
// a scene graph), so each node's vertices and faces are merged verbatim
// into a single flat mesh, ignoring its transform. This matches how a
// renderer that just wants the static silhouette of a model would treat
// it, and keeps every node's geometry rather than only the root's.
func LoadRSM(meshName string, data []byte, scale [3]float32) (*Staging, error) {
	rsm, err := formats.ParseRSM(data)
	if err != nil {
		return nil, mesherr.New(mesherr.MalformedHeader, meshName, err.Error())
	}

	st := &Staging{LeftHanded: isLeftHanded(scale)}

	for _, node := range rsm.Nodes {
		vertBase := int32(len(st.Vertices))
		st.Vertices = append(st.Vertices, node.Vertices...)

		texBase := int32(len(st.TexCoords))
		hasTex := len(node.TexCoords) > 0
		for _, tc := range node.TexCoords {
			st.TexCoords = append(st.TexCoords, [2]float32{tc.U, tc.V})
		}

		for _, f := range node.Faces {
			for _, vid := range f.VertexIDs {
				if int(vid) >= len(node.Vertices) {
					return nil, mesherr.New(mesherr.IndexOutOfRange, meshName,
						fmt.Sprintf("node %q: face vertex index %d out of range", node.Name, vid))
				}
			}

			a := vertBase + int32(f.VertexIDs[0])
			b := vertBase + int32(f.VertexIDs[1])
			c := vertBase + int32(f.VertexIDs[2])

			if st.LeftHanded {
				b, c = c, b
			}
			st.Faces = append(st.Faces, [3]int32{a, b, c})
			st.Edges = appendTriangleEdges(st.Edges, st.Vertices, a, b, c)

			if hasTex {
				ta := texBase + int32(f.TexCoordIDs[0])
				tb := texBase + int32(f.TexCoordIDs[1])
				tc := texBase + int32(f.TexCoordIDs[2])
				if st.LeftHanded {
					tb, tc = tc, tb
				}
				st.FaceTexCoords = append(st.FaceTexCoords, [3]int32{ta, tb, tc})
			}
		}
	}

	if len(st.Vertices) == 0 {
		return nil, mesherr.New(mesherr.NoVertices, meshName, "RSM model has no vertex data")
	}

	return st, nil
}
