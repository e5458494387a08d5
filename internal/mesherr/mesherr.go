// Package mesherr defines the structured error taxonomy shared by every
// stage of the mesh compilation pipeline (loaders, topology, hull,
// inertia, skin) and re-exported by the root mesh package as mesh.Error /
// mesh.ErrorKind. Keeping it in its own leaf package lets every internal
// stage construct these errors without importing the root package, which
// in turn imports the stages.
package mesherr

import "fmt"

// Kind classifies a structured pipeline error.
type Kind int

const (
	// Input shape
	NoVertices Kind = iota
	TooFewVertices
	NotMultipleOfStride
	RepeatedSpecification
	IndexOutOfRange

	// File I/O
	NotFound
	Empty
	MalformedHeader
	SizeMismatch
	UnknownExtension
	OnlyTrisAndQuads
	InvalidFloat
	CoordOverflow

	// Topology
	InconsistentOrientation

	// Geometry
	AreaTooSmall
	VolumeTooSmall
	NonPositiveEigenvalue
	EigenvalueInequalityViolated

	// Hull
	HullFailed
	HullGraphInvalid

	// Skin
	MissingSkinData
	UnknownBody
	UnknownMaterial
	ZeroWeightVertex
	BoneWeightMismatch

	// Lifecycle
	NotCompiled
	AlreadyCompiled
)

var kindNames = map[Kind]string{
	NoVertices:                   "no vertices",
	TooFewVertices:               "too few vertices",
	NotMultipleOfStride:          "array length is not a multiple of its stride",
	RepeatedSpecification:        "data specified more than once",
	IndexOutOfRange:              "index out of range",
	NotFound:                     "not found",
	Empty:                        "empty file",
	MalformedHeader:              "malformed header",
	SizeMismatch:                 "size mismatch",
	UnknownExtension:             "unknown file extension",
	OnlyTrisAndQuads:             "only triangles and quads are supported",
	InvalidFloat:                 "invalid floating point value",
	CoordOverflow:                "coordinate out of range",
	InconsistentOrientation:      "inconsistent face orientation",
	AreaTooSmall:                 "surface area too small",
	VolumeTooSmall:               "volume too small",
	NonPositiveEigenvalue:        "non-positive inertia eigenvalue",
	EigenvalueInequalityViolated: "inertia eigenvalues violate the triangle inequality",
	HullFailed:                   "convex hull computation failed",
	HullGraphInvalid:             "convex hull graph discarded",
	MissingSkinData:              "missing skin data",
	UnknownBody:                  "unknown body",
	UnknownMaterial:              "unknown material",
	ZeroWeightVertex:             "vertex has zero total bone weight",
	BoneWeightMismatch:           "bone weight array size mismatch",
	NotCompiled:                  "mesh not compiled",
	AlreadyCompiled:              "mesh already compiled",
}

// String implements fmt.Stringer.
func (k Kind) String() string {
	if s, ok := kindNames[k]; ok {
		return s
	}
	return "unknown error"
}

// Error is a structured pipeline error: it carries the kind of failure,
// the name of the offending mesh/skin, and an optional human-readable
// detail plus the 1-based vertex pair InconsistentOrientation reports.
type Error struct {
	Kind   Kind
	Mesh   string
	Detail string
	V1, V2 int32
}

// Error implements the error interface.
func (e *Error) Error() string {
	msg := e.Kind.String()
	if e.Mesh != "" {
		msg = fmt.Sprintf("%s: %s", e.Mesh, msg)
	}
	if e.Kind == InconsistentOrientation {
		msg = fmt.Sprintf("%s (vertices %d, %d)", msg, e.V1, e.V2)
	}
	if e.Detail != "" {
		msg = fmt.Sprintf("%s: %s", msg, e.Detail)
	}
	return msg
}

// New builds a structured Error for the given mesh name.
func New(kind Kind, meshName string, detail string) *Error {
	return &Error{Kind: kind, Mesh: meshName, Detail: detail}
}

// Orientation builds an InconsistentOrientation error with its vertex pair.
func Orientation(meshName string, v1, v2 int32) *Error {
	return &Error{Kind: InconsistentOrientation, Mesh: meshName, V1: v1, V2: v2}
}
