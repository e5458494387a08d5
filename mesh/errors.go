package mesh

import "github.com/Faultbox/meshcompile/internal/mesherr"

// ErrorKind classifies a structured compile-time or accessor-time error
// (spec.md §7). It is a re-export of internal/mesherr.Kind so callers
// outside this module never need to import the internal package.
type ErrorKind = mesherr.Kind

// Error is a structured pipeline error carrying the offending mesh name
// and, for InconsistentOrientation, the 1-based vertex pair.
type Error = mesherr.Error

const (
	NoVertices             = mesherr.NoVertices
	TooFewVertices         = mesherr.TooFewVertices
	NotMultipleOfStride    = mesherr.NotMultipleOfStride
	RepeatedSpecification  = mesherr.RepeatedSpecification
	IndexOutOfRange        = mesherr.IndexOutOfRange
	NotFound               = mesherr.NotFound
	Empty                  = mesherr.Empty
	MalformedHeader        = mesherr.MalformedHeader
	SizeMismatch           = mesherr.SizeMismatch
	UnknownExtension       = mesherr.UnknownExtension
	OnlyTrisAndQuads       = mesherr.OnlyTrisAndQuads
	InvalidFloat           = mesherr.InvalidFloat
	CoordOverflow          = mesherr.CoordOverflow

	InconsistentOrientation = mesherr.InconsistentOrientation

	AreaTooSmall                 = mesherr.AreaTooSmall
	VolumeTooSmall               = mesherr.VolumeTooSmall
	NonPositiveEigenvalue        = mesherr.NonPositiveEigenvalue
	EigenvalueInequalityViolated = mesherr.EigenvalueInequalityViolated

	HullFailed       = mesherr.HullFailed
	HullGraphInvalid = mesherr.HullGraphInvalid

	MissingSkinData    = mesherr.MissingSkinData
	UnknownBody        = mesherr.UnknownBody
	UnknownMaterial    = mesherr.UnknownMaterial
	ZeroWeightVertex   = mesherr.ZeroWeightVertex
	BoneWeightMismatch = mesherr.BoneWeightMismatch

	NotCompiled     = mesherr.NotCompiled
	AlreadyCompiled = mesherr.AlreadyCompiled
)
