package hull

import "github.com/Faultbox/meshcompile/internal/mesherr"

// Graph is the packed convex-hull connectivity record from spec.md §4.4:
//
//	[0]                         V    number of hull vertices
//	[1]                         F    number of hull facets
//	[2..2+V)                    edge_adr[i]     offset into edge_local_id for vertex i
//	[2+V..2+2V)                 global_id[i]    original vertex index of hull vertex i
//	[2+2V..2+2V+V+3F)           edge_local_id   concatenated neighbour lists, -1 terminated
//	[2+2V+V+3F..end)            face_global_id  3*F entries, triangles as hull-local ids
//
// It is exposed as a flat []int32 (Data) plus typed accessors, matching
// the wire-format accessor pattern the loaders use for binary records.
type Graph struct {
	Data         []int32
	NVert, NFace int32
}

// EdgeAdr returns the offset into the edge_local_id section for hull
// vertex i.
func (g *Graph) EdgeAdr(i int) int32 {
	return g.Data[2+i]
}

// GlobalID returns the original mesh vertex index for hull vertex i.
func (g *Graph) GlobalID(i int) int32 {
	return g.Data[2+int(g.NVert)+i]
}

func (g *Graph) edgeLocalIDStart() int {
	return 2 + 2*int(g.NVert)
}

// Neighbors returns hull vertex i's adjacent hull-local vertex ids.
func (g *Graph) Neighbors(i int) []int32 {
	start := g.edgeLocalIDStart() + int(g.EdgeAdr(i))
	end := start
	for g.Data[end] != -1 {
		end++
	}
	return g.Data[start:end]
}

// FaceGlobalID returns the 3*NFace hull-local vertex ids of the hull
// facets, despite the name carried over from spec.md's own layout.
func (g *Graph) FaceGlobalID() []int32 {
	start := g.edgeLocalIDStart() + int(g.NVert) + 3*int(g.NFace)
	return g.Data[start:]
}

// BuildGraph packs a facet list (from Build/bridge.Build) into the
// spec.md §4.4 layout. It discards the graph with mesherr.HullGraphInvalid
// if any facet lacks exactly three distinct vertices or references a
// vertex outside the hull's own vertex set — defensive checks matching
// spec.md's "if any facet does not have exactly three vertices or an id
// falls out of [0, nvert) discard the graph" rule, even though this
// package's own Build always produces well-formed triangles.
func BuildGraph(meshName string, facets []Facet) (*Graph, error) {
	if len(facets) == 0 {
		return nil, mesherr.New(mesherr.HullGraphInvalid, meshName, "no hull facets")
	}

	localID := map[int]int32{}
	var globalID []int32
	for _, f := range facets {
		for _, v := range [3]int{f.A, f.B, f.C} {
			if _, ok := localID[v]; !ok {
				localID[v] = int32(len(globalID))
				globalID = append(globalID, int32(v))
			}
		}
	}
	nvert := int32(len(globalID))
	nface := int32(len(facets))

	// incident[i] lists the facet indices touching hull-local vertex i.
	incident := make([][]int, nvert)
	localFacets := make([][3]int32, nface)
	for fi, f := range facets {
		if f.A == f.B || f.B == f.C || f.A == f.C {
			return nil, mesherr.New(mesherr.HullGraphInvalid, meshName, "degenerate facet with repeated vertex")
		}
		la, lb, lc := localID[f.A], localID[f.B], localID[f.C]
		localFacets[fi] = [3]int32{la, lb, lc}
		for _, lv := range [3]int32{la, lb, lc} {
			if lv < 0 || lv >= nvert {
				return nil, mesherr.New(mesherr.HullGraphInvalid, meshName, "facet id out of range")
			}
			incident[lv] = append(incident[lv], fi)
		}
	}

	edgeAdr := make([]int32, nvert)
	var edgeLocal []int32
	for i := int32(0); i < nvert; i++ {
		edgeAdr[i] = int32(len(edgeLocal))
		seen := map[int32]bool{i: true}
		for _, fi := range incident[i] {
			for _, lv := range localFacets[fi] {
				if seen[lv] {
					continue
				}
				seen[lv] = true
				edgeLocal = append(edgeLocal, lv)
			}
		}
		edgeLocal = append(edgeLocal, -1)
	}

	var faceGlobal []int32
	for _, lf := range localFacets {
		faceGlobal = append(faceGlobal, lf[0], lf[1], lf[2])
	}

	data := make([]int32, 0, 2+3*int(nvert)+6*int(nface))
	data = append(data, nvert, nface)
	data = append(data, edgeAdr...)
	data = append(data, globalID...)
	data = append(data, edgeLocal...)
	data = append(data, faceGlobal...)

	return &Graph{Data: data, NVert: nvert, NFace: nface}, nil
}

// SynthesizeFaces builds mesh-ready triangles directly from the hull
// facets for the "faces absent" case (spec.md §4.4): each facet's three
// original vertex indices, copied in hull winding order. spec.md's
// toporient flip (for facets a qhull-style engine reports as reversed)
// has no analogue here: this package's incremental engine always emits
// facets already outward-oriented via its initial-tetrahedron and
// horizon-edge construction, so there is nothing to flip.
func SynthesizeFaces(facets []Facet) [][3]int32 {
	out := make([][3]int32, len(facets))
	for i, f := range facets {
		out[i] = [3]int32{int32(f.A), int32(f.B), int32(f.C)}
	}
	return out
}
