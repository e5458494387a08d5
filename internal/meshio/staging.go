// Package meshio parses the binary and textual mesh formats the pipeline
// ingests (STL, OBJ, MSH, SKN) into neutral staging buffers, following the
// same bytes.Reader + encoding/binary idiom the reference repo's
// pkg/formats parsers use for the Ragnarok Online binary formats.
package meshio

// Staging is the neutral, format-agnostic buffer a loader populates.
// It is either consumed (moved) into a compiled mesh's owned storage when
// it came from a file, or copied when the caller built it directly —
// the duality spec.md §9 calls out explicitly.
type Staging struct {
	Vertices  [][3]float32
	Normals   [][3]float32
	TexCoords [][2]float32

	Faces         [][3]int32
	FaceNormals   [][3]int32
	FaceTexCoords [][3]int32

	// Edges holds the directed edges used by the orientation check
	// (spec.md §4.3). The OBJ and RSM loaders fill this in inline; STL
	// and MSH leave it empty and the orchestrator synthesizes it from
	// the faces.
	Edges [][2]int32

	// LeftHanded records whether this load's handedness correction
	// (scale.x*scale.y*scale.z < 0) was already applied to Faces.
	LeftHanded bool
}

// NVert returns the number of staged vertices.
func (s *Staging) NVert() int { return len(s.Vertices) }
