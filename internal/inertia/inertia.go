// Package inertia computes rigid-body mass properties and a principal
// inertial frame for a compiled mesh, run once for a VOLUME interpretation
// and once for a SHELL interpretation (spec.md §4.5). The algorithm —
// face-area-weighted centroid, pyramid-volume first moment, closed-form
// triangle second moment, symmetric eigendecomposition, principal-frame
// reorientation — is ported from original_source/src/user/user_mesh.cc's
// mjCMesh::Process(), expressed with the teacher's preference for plain
// slices and small top-level functions over a custom numeric type zoo.
package inertia

import (
	"math"

	"github.com/Faultbox/meshcompile/internal/meshconst"
	"github.com/Faultbox/meshcompile/pkg/meshmath"
)

// Options carries the per-compile reference frame, scale, density and
// the exactmeshinertia legacy toggle (spec.md §4.5, §6).
type Options struct {
	RefPos           [3]float64
	RefQuat          [4]float64 // w, x, y, z; need not be pre-normalized
	Scale            [3]float32
	Density          float64
	ExactMeshInertia bool
}

// FrameResult is the set of derived quantities for one mesh-type pass
// (VOLUME or SHELL).
type FrameResult struct {
	Pos     [3]float64
	Quat    [4]float64 // w, x, y, z
	Volume  float64
	BoxSize [3]float64

	ValidArea       bool
	ValidVolume     bool
	ValidEigenvalue bool
	ValidInequality bool
}

func defaultFrameResult() FrameResult {
	return FrameResult{
		Quat:            [4]float64{1, 0, 0, 0},
		ValidArea:       true,
		ValidVolume:     true,
		ValidEigenvalue: true,
		ValidInequality: true,
	}
}

// Output bundles both passes' results plus the final axis-aligned
// bounding box, computed in the VOLUME pass's principal frame.
type Output struct {
	Volume FrameResult
	Shell  FrameResult
	AABB   [6]float64 // xmin, ymin, zmin, xmax, ymax, zmax
}

type meshKind int

const (
	volumeKind meshKind = iota
	shellKind
)

// Compute mutates vertices and normals in place (translate/rotate/scale
// in the pre-pass, then recenter and reorient into the principal frame),
// mirroring the original's in-place mesh processing, and returns the
// derived mass properties. A VOLUME failure (area or volume too small,
// or an invalid eigenstructure) aborts the whole computation before the
// SHELL pass ever runs, matching the original's single early return out
// of its two-iteration loop.
func Compute(vertices [][3]float32, normals [][3]float32, faces [][3]int32, opts Options) *Output {
	out := &Output{
		Volume: defaultFrameResult(),
		Shell:  defaultFrameResult(),
		AABB:   [6]float64{math.Inf(1), math.Inf(1), math.Inf(1), math.Inf(-1), math.Inf(-1), math.Inf(-1)},
	}

	prePass(vertices, normals, opts)

	facecen, area := faceCentroid(vertices, faces)
	out.Volume.ValidArea = area >= meshconst.MINVAL
	if !out.Volume.ValidArea {
		return out
	}

	com, vol, validVol := firstMoment(vertices, faces, facecen, opts.ExactMeshInertia, volumeKind)
	out.Volume.ValidVolume = validVol
	if !validVol {
		return out
	}
	out.Volume.Pos = com
	out.Volume.Volume = vol
	recenter(vertices, com)

	ixx, iyy, izz, ixy, ixz, iyz, vol2 := secondMoment(vertices, faces, opts.ExactMeshInertia, volumeKind, opts.Density)
	out.Volume.Volume = vol2
	eig := meshmath.EigenSymmetric3(ixx, iyy, izz, ixy, ixz, iyz)
	if !validateEigen(eig, &out.Volume) {
		return out
	}
	out.Volume.BoxSize = boxSize(eig, vol2*opts.Density)
	q := quatFromEigen(eig)
	out.Volume.Quat = q
	rotateIntoPrincipalFrame(vertices, normals, eig, out)

	zero := [3]float64{}
	comS, volS, validVolS := firstMoment(vertices, faces, zero, opts.ExactMeshInertia, shellKind)
	out.Shell.ValidVolume = validVolS
	if !validVolS {
		return out
	}
	out.Shell.Pos = comS
	out.Shell.Volume = volS

	ixxS, iyyS, izzS, ixyS, ixzS, iyzS, volS2 := secondMoment(vertices, faces, opts.ExactMeshInertia, shellKind, opts.Density)
	out.Shell.Volume = volS2
	eigS := meshmath.EigenSymmetric3(ixxS, iyyS, izzS, ixyS, ixzS, iyzS)
	if !validateEigen(eigS, &out.Shell) {
		return out
	}
	out.Shell.BoxSize = boxSize(eigS, volS2*opts.Density)
	out.Shell.Quat = out.Volume.Quat // spec.md §4.5 step 9: shell reuses the volume frame

	return out
}

func validateEigen(eig meshmath.SymmetricEigen, fr *FrameResult) bool {
	lo, mid, hi := sortedTriple(eig.Values)
	fr.ValidEigenvalue = hi > 0
	if !fr.ValidEigenvalue {
		return false
	}
	fr.ValidInequality = lo+mid >= hi
	return fr.ValidInequality
}

func sortedTriple(v [3]float32) (lo, mid, hi float64) {
	a, b, c := float64(v[0]), float64(v[1]), float64(v[2])
	if a > b {
		a, b = b, a
	}
	if b > c {
		b, c = c, b
	}
	if a > b {
		a, b = b, a
	}
	return a, b, c
}

func boxSize(eig meshmath.SymmetricEigen, mass float64) [3]float64 {
	if mass <= 0 {
		return [3]float64{}
	}
	l0, l1, l2 := float64(eig.Values[0]), float64(eig.Values[1]), float64(eig.Values[2])
	sum := l0 + l1 + l2
	return [3]float64{
		math.Sqrt(6*(sum-2*l0)/mass) / 2,
		math.Sqrt(6*(sum-2*l1)/mass) / 2,
		math.Sqrt(6*(sum-2*l2)/mass) / 2,
	}
}

func quatFromEigen(eig meshmath.SymmetricEigen) [4]float64 {
	q := meshmath.QuatFromMat3(eig.Vectors)
	return [4]float64{float64(q.W), float64(q.X), float64(q.Y), float64(q.Z)}
}

func recenter(vertices [][3]float32, com [3]float64) {
	for i := range vertices {
		vertices[i][0] -= float32(com[0])
		vertices[i][1] -= float32(com[1])
		vertices[i][2] -= float32(com[2])
	}
}

// rotateIntoPrincipalFrame rotates vertices and normals by the principal
// frame's inverse (its eigenvector matrix transposed) and accumulates
// the resulting axis-aligned bounding box — spec.md §4.5 step 10, run
// only for the VOLUME pass.
func rotateIntoPrincipalFrame(vertices, normals [][3]float32, eig meshmath.SymmetricEigen, out *Output) {
	inv := eig.Vectors.Transpose()
	for i := range vertices {
		v := inv.TransformVec3(meshmath.Vec3{X: vertices[i][0], Y: vertices[i][1], Z: vertices[i][2]})
		arr := v.Array()
		vertices[i] = arr
		for k := 0; k < 3; k++ {
			c := float64(arr[k])
			if c < out.AABB[k] {
				out.AABB[k] = c
			}
			if c > out.AABB[k+3] {
				out.AABB[k+3] = c
			}
		}
	}
	for i := range normals {
		n := inv.TransformVec3(meshmath.Vec3{X: normals[i][0], Y: normals[i][1], Z: normals[i][2]})
		normals[i] = n.Array()
	}
}
