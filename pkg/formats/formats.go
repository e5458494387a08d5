// Package formats provides parsers for Ragnarok Online file formats.
// Only RSM (Resource Model, rsm.go) survives here: it's the one format
// in this family that's a mesh, and internal/meshio's RSM loader builds
// on it.
package formats
