// Package meshconst holds the small set of numeric and size constants
// shared across the mesh pipeline's stages, so every package checks
// degeneracy against the same epsilon.
package meshconst

// MINVAL is the degeneracy threshold ("ε" in the design doc) used for
// area, volume and eigenvalue validity checks.
const MINVAL = 1e-15

// STLMaxTriangles is the largest triangle count a binary STL load accepts.
const STLMaxTriangles = 200000

// CoordMax is the largest absolute vertex coordinate a loader accepts.
const CoordMax = 1 << 30

// STLHeaderSize is the fixed 80-byte STL header plus the 4-byte
// triangle count that precedes the triangle records.
const STLHeaderSize = 84

// STLTriangleRecordSize is the size in bytes of one binary STL triangle
// record (12 normal + 3*12 vertex + 2 attribute byte count).
const STLTriangleRecordSize = 50

// SkinBoneNameSize is the fixed, null-padded bone name field width in the
// SKN binary format.
const SkinBoneNameSize = 40

// MinVertices is the fewest vertices a mesh may stage (spec.md
// invariant 2): fewer than a tetrahedron's worth can't enclose a volume.
const MinVertices = 4
