// Package topology canonicalizes a loaded mesh's connectivity: it
// collapses coincident vertices on the STL ingestion path (which emits
// three fresh vertices per triangle with no sharing) and flags
// inconsistent face winding by looking for a directed edge used twice.
package topology

import "sort"

// Dedup collapses vertices that compare equal under the 1-D sort key
// x + 1e-2*y + 1e-4*z (spec.md §4.3), rewriting faces through the
// resulting redirection chain. It is only meaningful on the STL path —
// OBJ and MSH loaders already produce deduplicated input.
func Dedup(vertices [][3]float32, faces [][3]int32) ([][3]float32, [][3]int32) {
	n := len(vertices)
	if n == 0 {
		return vertices, faces
	}

	index := make([]int, n)
	for i := range index {
		index[i] = i
	}
	sort.SliceStable(index, func(a, b int) bool {
		return sortKey(vertices[index[a]]) < sortKey(vertices[index[b]])
	})

	redirect := make([]int, n)
	for i := range redirect {
		redirect[i] = i
	}

	repeated := 0
	for i := 1; i < n; i++ {
		a, b := index[i], index[i-1]
		if vertices[a] == vertices[b] {
			redirect[a] = b
			repeated++
		}
	}
	if repeated == 0 {
		return vertices, faces
	}

	// Follow each redirect chain to its root.
	for i := 0; i < n; i++ {
		j := i
		for redirect[j] != j {
			j = redirect[j]
		}
		redirect[i] = j
	}

	compactPos := make([]int, n)
	compacted := make([][3]float32, 0, n-repeated)
	for i := 0; i < n; i++ {
		if redirect[i] == i {
			compactPos[i] = len(compacted)
			compacted = append(compacted, vertices[i])
		} else {
			compactPos[i] = -1
		}
	}

	remapped := make([][3]int32, len(faces))
	for fi, f := range faces {
		for k := 0; k < 3; k++ {
			remapped[fi][k] = int32(compactPos[redirect[f[k]]])
		}
	}

	return compacted, remapped
}

func sortKey(v [3]float32) float32 {
	return v[0] + 1e-2*v[1] + 1e-4*v[2]
}

// CheckOrientation sorts the directed edges lexicographically and looks
// for an adjacent-equal pair, which marks two faces sharing an edge with
// the same winding (one of them is flipped). It returns the first such
// pair's endpoints 1-based with ok == false, and ok == true when the mesh
// is consistent.
func CheckOrientation(edges [][2]int32) (v1, v2 int32, ok bool) {
	if len(edges) == 0 {
		return 0, 0, true
	}

	sorted := make([][2]int32, len(edges))
	copy(sorted, edges)
	sort.Slice(sorted, func(a, b int) bool {
		if sorted[a][0] != sorted[b][0] {
			return sorted[a][0] < sorted[b][0]
		}
		return sorted[a][1] < sorted[b][1]
	})

	for i := 1; i < len(sorted); i++ {
		if sorted[i] == sorted[i-1] {
			return sorted[i][0] + 1, sorted[i][1] + 1, false
		}
	}
	return 0, 0, true
}
