// Package mesh is the root orchestrator of the compilation pipeline: it
// sequences format loading, topology canonicalization, convex-hull graph
// construction, vertex normal synthesis and inertia/framing computation
// into a single Compile call, following spec.md §4.8's fixed step order.
// It is the one package a caller needs to import for the whole pipeline.
package mesh

import (
	"fmt"
	"math"
	"path/filepath"
	"strings"

	pkgerrors "github.com/pkg/errors"
	"go.uber.org/multierr"
	"go.uber.org/zap"

	"github.com/Faultbox/meshcompile/internal/hull"
	"github.com/Faultbox/meshcompile/internal/inertia"
	"github.com/Faultbox/meshcompile/internal/logx"
	"github.com/Faultbox/meshcompile/internal/mesherr"
	"github.com/Faultbox/meshcompile/internal/meshconst"
	"github.com/Faultbox/meshcompile/internal/meshio"
	"github.com/Faultbox/meshcompile/internal/topology"
	"github.com/Faultbox/meshcompile/pkg/meshmath"
	"github.com/Faultbox/meshcompile/vfs"
)

// sqrtMINVAL is the minimum triangle area below which a triangle
// contributes no directed edges (spec.md §4.8 step 3), matching
// internal/meshio's own threshold.
var sqrtMINVAL = float32(math.Sqrt(meshconst.MINVAL))

// Options carries the per-mesh compile configuration (spec.md §6's
// configuration inputs table).
type Options struct {
	RefPos           [3]float32
	RefQuat          [4]float32 // w, x, y, z
	Scale            [3]float32
	SmoothNormal     bool
	ExactMeshInertia bool
	ConvexHull       bool
	StripPath        bool
	FitAABB          bool
	Density          float64
}

// DefaultOptions returns the same defaults as internal/config.Default's
// CompileConfig, plus an identity reference frame and unit scale.
func DefaultOptions() Options {
	return Options{
		RefQuat:          [4]float32{1, 0, 0, 0},
		Scale:            [3]float32{1, 1, 1},
		ExactMeshInertia: true,
		Density:          1000,
	}
}

// Mesh is a mesh staged from user-supplied arrays and/or a loaded file,
// then frozen by Compile (spec.md §3's lifecycle). The exported fields
// are the staging inputs: set them before calling Compile, read the
// accessor methods after.
type Mesh struct {
	Name     string
	FilePath string

	Vertices      [][3]float32
	Normals       [][3]float32
	TexCoords     [][2]float32
	Faces         [][3]int32
	FaceNormals   [][3]int32
	FaceTexCoords [][3]int32

	compiled bool
	warnings []error

	convexGraph *hull.Graph

	surfaceArea float64
	volume      float64

	posVolume, posSurface   [3]float64
	quatVolume, quatSurface [4]float64
	boxszVolume, boxszSurface [3]float64
	aabb [6]float64

	validArea       bool
	validVolume     bool
	validEigenvalue bool
	validInequality bool

	hasInvalidOrientation bool
	orientV1, orientV2    int32
}

// New returns an uncompiled Mesh with the given diagnostic name.
func New(name string) *Mesh {
	return &Mesh{Name: name}
}

// Compile runs the fixed nine-step pipeline of spec.md §4.8. It may be
// called at most once; a second call returns AlreadyCompiled.
func (m *Mesh) Compile(src vfs.Source, opts Options, log logx.Logger) error {
	if m.compiled {
		return mesherr.New(mesherr.AlreadyCompiled, m.Name, "Compile already ran for this mesh")
	}
	if log == nil {
		log = logx.Nop{}
	}

	st, err := m.stage(src, opts)
	if err != nil {
		return pkgerrors.Wrapf(err, "mesh %q", m.Name)
	}

	if len(st.Vertices) == 0 {
		return pkgerrors.Wrapf(mesherr.New(mesherr.NoVertices, m.Name, ""), "mesh %q", m.Name)
	}
	if err := checkFaceIndices(m.Name, st.Vertices, st.Faces); err != nil {
		return pkgerrors.Wrapf(err, "mesh %q", m.Name)
	}

	if len(st.Edges) == 0 {
		st.Edges = synthesizeEdges(st.Vertices, st.Faces)
	}
	if v1, v2, ok := topology.CheckOrientation(st.Edges); !ok {
		m.hasInvalidOrientation = true
		m.orientV1, m.orientV2 = v1, v2
	}

	if opts.ConvexHull || len(st.Faces) == 0 {
		facets, err := m.buildHullGraph(st, log)
		if err != nil {
			return pkgerrors.Wrapf(err, "mesh %q", m.Name)
		}
		if len(st.Faces) == 0 {
			st.Faces = hull.SynthesizeFaces(facets)
		}
	}

	if len(st.Normals) == 0 {
		st.Normals = synthesizeNormals(st.Vertices, st.Faces, opts.SmoothNormal)
	}
	if len(st.FaceNormals) == 0 {
		st.FaceNormals = append([][3]int32(nil), st.Faces...)
	}

	out := inertia.Compute(st.Vertices, st.Normals, st.Faces, inertia.Options{
		RefPos:           [3]float64{float64(opts.RefPos[0]), float64(opts.RefPos[1]), float64(opts.RefPos[2])},
		RefQuat:          [4]float64{float64(opts.RefQuat[0]), float64(opts.RefQuat[1]), float64(opts.RefQuat[2]), float64(opts.RefQuat[3])},
		Scale:            opts.Scale,
		Density:          opts.Density,
		ExactMeshInertia: opts.ExactMeshInertia,
	})

	m.Vertices = st.Vertices
	m.Normals = st.Normals
	m.TexCoords = st.TexCoords
	m.Faces = st.Faces
	m.FaceNormals = st.FaceNormals
	m.FaceTexCoords = st.FaceTexCoords

	m.surfaceArea = faceArea(st.Vertices, st.Faces)
	m.validArea = out.Volume.ValidArea
	m.validVolume = out.Volume.ValidVolume
	m.validEigenvalue = out.Volume.ValidEigenvalue
	m.validInequality = out.Volume.ValidInequality
	m.volume = out.Volume.Volume
	m.posVolume = out.Volume.Pos
	m.quatVolume = out.Volume.Quat
	m.boxszVolume = out.Volume.BoxSize
	m.posSurface = out.Shell.Pos
	m.quatSurface = out.Shell.Quat
	m.boxszSurface = out.Shell.BoxSize
	m.aabb = out.AABB

	m.compiled = true

	if m.hasInvalidOrientation {
		log.Warn("inconsistent face orientation", zap.String("mesh", m.Name),
			zap.Int32("v1", m.orientV1), zap.Int32("v2", m.orientV2))
		m.warnings = append(m.warnings, mesherr.Orientation(m.Name, m.orientV1, m.orientV2))
	}

	return nil
}

func (m *Mesh) stage(src vfs.Source, opts Options) (*meshio.Staging, error) {
	hasDirectArrays := len(m.Vertices) > 0 || len(m.Faces) > 0

	if m.FilePath != "" {
		if hasDirectArrays {
			return nil, mesherr.New(mesherr.RepeatedSpecification, m.Name, "both a file path and direct vertex/face arrays were staged")
		}
		return m.loadFile(src, opts)
	}

	// Matches the original's `!uservert.empty()` guard (user_mesh.cc:205):
	// the nvert>=4 floor only applies to directly supplied vertex arrays,
	// never to a file load — a one-triangle OBJ/STL stages fine here and
	// lets the inertia pass report its own VolumeTooSmall.
	if n := len(m.Vertices); n > 0 && n < meshconst.MinVertices {
		return nil, mesherr.New(mesherr.TooFewVertices, m.Name,
			fmt.Sprintf("staged %d vertices, need at least %d", n, meshconst.MinVertices))
	}

	// Direct arrays are copied so the pipeline never writes into the
	// caller's slices.
	return &meshio.Staging{
		Vertices:      append([][3]float32(nil), m.Vertices...),
		Normals:       append([][3]float32(nil), m.Normals...),
		TexCoords:     append([][2]float32(nil), m.TexCoords...),
		Faces:         append([][3]int32(nil), m.Faces...),
		FaceNormals:   append([][3]int32(nil), m.FaceNormals...),
		FaceTexCoords: append([][3]int32(nil), m.FaceTexCoords...),
	}, nil
}

func (m *Mesh) loadFile(src vfs.Source, opts Options) (*meshio.Staging, error) {
	path := m.FilePath
	if opts.StripPath {
		path = filepath.Base(path)
	}

	blob, err := src.Open(m.FilePath)
	if err != nil {
		return nil, err
	}

	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".stl":
		st, err := meshio.LoadSTL(m.Name, blob.Data, opts.Scale)
		if err != nil {
			return nil, err
		}
		// LoadSTL emits 3 fresh vertices per triangle with no sharing;
		// collapse coincident ones (spec.md §4.3) before anything downstream
		// sees the staging buffer.
		st.Vertices, st.Faces = topology.Dedup(st.Vertices, st.Faces)
		return st, nil
	case ".obj":
		return meshio.LoadOBJ(m.Name, blob.Data, opts.Scale)
	case ".msh":
		return meshio.LoadMSH(m.Name, blob.Data, opts.Scale)
	case ".rsm":
		return meshio.LoadRSM(m.Name, blob.Data, opts.Scale)
	default:
		return nil, mesherr.New(mesherr.UnknownExtension, m.Name, "unrecognized extension "+ext)
	}
}

// buildHullGraph builds the hull and its packed connectivity graph, and
// returns the facet list either way so the caller can synthesize faces
// from it (spec.md §4.4) even if the graph itself is discarded.
func (m *Mesh) buildHullGraph(st *meshio.Staging, log logx.Logger) ([]hull.Facet, error) {
	facets, err := hull.Build(m.Name, st.Vertices)
	if err != nil {
		return nil, err
	}
	graph, err := hull.BuildGraph(m.Name, facets)
	if err != nil {
		log.Warn("discarding malformed convex hull graph", zap.String("mesh", m.Name), zap.Error(err))
		m.warnings = append(m.warnings, err)
		return facets, nil
	}
	m.convexGraph = graph
	return facets, nil
}

// checkFaceIndices validates every face's vertex indices against the
// staged vertex array (spec.md invariant 1, original_source's
// mjCMesh::Process index check).
func checkFaceIndices(meshName string, vertices [][3]float32, faces [][3]int32) error {
	nvert := int32(len(vertices))
	for _, f := range faces {
		for _, idx := range f {
			if idx < 0 || idx >= nvert {
				return mesherr.New(mesherr.IndexOutOfRange, meshName,
					fmt.Sprintf("face index %d out of range [0, %d)", idx, nvert))
			}
		}
	}
	return nil
}

// synthesizeEdges builds the directed edges the orientation check needs
// when a loader didn't stage them inline (STL, MSH, or direct arrays),
// skipping near-degenerate triangles exactly as meshio's loaders do.
func synthesizeEdges(vertices [][3]float32, faces [][3]int32) [][2]int32 {
	var edges [][2]int32
	for _, f := range faces {
		if triangleArea(vertices[f[0]], vertices[f[1]], vertices[f[2]]) <= sqrtMINVAL {
			continue
		}
		edges = append(edges, [2]int32{f[0], f[1]}, [2]int32{f[1], f[2]}, [2]int32{f[2], f[0]})
	}
	return edges
}

func triangleArea(v0, v1, v2 [3]float32) float32 {
	a := meshmath.FromArray(v0)
	b := meshmath.FromArray(v1)
	c := meshmath.FromArray(v2)
	return b.Sub(a).Cross(c.Sub(a)).Length() / 2
}

func faceArea(vertices [][3]float32, faces [][3]int32) float64 {
	var total float64
	for _, f := range faces {
		total += float64(triangleArea(vertices[f[0]], vertices[f[1]], vertices[f[2]]))
	}
	return total
}

// Warnings returns the non-fatal diagnostics accumulated during Compile
// (discarded hull graphs, inconsistent orientation), joined the same way
// zap's own dependency aggregates multi-cause errors.
func (m *Mesh) Warnings() error {
	return multierr.Combine(m.warnings...)
}
