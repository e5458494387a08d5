package inertia

import (
	"math"

	"github.com/Faultbox/meshcompile/internal/meshconst"
	"github.com/Faultbox/meshcompile/pkg/meshmath"
)

// prePass applies the VOLUME reference-frame normalization that runs
// exactly once, before either pass's moment sweep: translate by -refpos,
// rotate by refquat's inverse, scale componentwise, then renormalize
// every normal (falling back to +Z for degenerate ones).
func prePass(vertices, normals [][3]float32, opts Options) {
	rp := [3]float32{float32(opts.RefPos[0]), float32(opts.RefPos[1]), float32(opts.RefPos[2])}
	refQuat := meshmath.Quat{
		W: float32(opts.RefQuat[0]),
		X: float32(opts.RefQuat[1]),
		Y: float32(opts.RefQuat[2]),
		Z: float32(opts.RefQuat[3]),
	}.Normalize()
	inv := refQuat.ToMat3().Transpose()

	for i := range vertices {
		v := meshmath.Vec3{X: vertices[i][0] - rp[0], Y: vertices[i][1] - rp[1], Z: vertices[i][2] - rp[2]}
		v = inv.TransformVec3(v)
		v = meshmath.Vec3{X: v.X * opts.Scale[0], Y: v.Y * opts.Scale[1], Z: v.Z * opts.Scale[2]}
		vertices[i] = v.Array()
	}
	for i := range normals {
		n := meshmath.Vec3{X: normals[i][0], Y: normals[i][1], Z: normals[i][2]}
		n = inv.TransformVec3(n)
		n = meshmath.Vec3{X: n.X * opts.Scale[0], Y: n.Y * opts.Scale[1], Z: n.Z * opts.Scale[2]}
		if l := n.Dot(n); l > meshconst.MINVAL {
			n = n.Normalize()
		} else {
			n = meshmath.Vec3{Z: 1}
		}
		normals[i] = n.Array()
	}
}

// triangle returns a triangle's area, outward unit normal and centroid.
// A degenerate (near-zero-area) triangle reports area 0 with an
// undefined normal, matching the original's "ignore small faces"
// short-circuit.
func triangle(v0, v1, v2 [3]float32) (area float64, normal, center [3]float64) {
	for k := 0; k < 3; k++ {
		center[k] = (float64(v0[k]) + float64(v1[k]) + float64(v2[k])) / 3
	}
	bx, by, bz := float64(v1[0]-v0[0]), float64(v1[1]-v0[1]), float64(v1[2]-v0[2])
	cx, cy, cz := float64(v2[0]-v0[0]), float64(v2[1]-v0[1]), float64(v2[2]-v0[2])
	nx := by*cz - bz*cy
	ny := bz*cx - bx*cz
	nz := bx*cy - by*cx
	length := math.Sqrt(nx*nx + ny*ny + nz*nz)
	if length < meshconst.MINVAL {
		return 0, normal, center
	}
	normal = [3]float64{nx / length, ny / length, nz / length}
	return length / 2, normal, center
}

// faceCentroid returns the area-weighted centroid of all faces and the
// total surface area.
func faceCentroid(vertices [][3]float32, faces [][3]int32) (facecen [3]float64, area float64) {
	for _, f := range faces {
		a, _, c := triangle(vertices[f[0]], vertices[f[1]], vertices[f[2]])
		for k := 0; k < 3; k++ {
			facecen[k] += a * c[k]
		}
		area += a
	}
	if area > 0 {
		for k := 0; k < 3; k++ {
			facecen[k] /= area
		}
	}
	return facecen, area
}

// firstMoment computes the pyramid-volume center of mass and total
// signed volume (spec.md §4.5 step 2). When exact is false the legacy
// behavior takes the absolute value of each pyramid's contribution,
// trading sign accuracy for robustness on non-watertight meshes.
func firstMoment(vertices [][3]float32, faces [][3]int32, facecen [3]float64, exact bool, kind meshKind) (com [3]float64, volume float64, valid bool) {
	var sum [3]float64
	for _, f := range faces {
		a, n, c := triangle(vertices[f[0]], vertices[f[1]], vertices[f[2]])
		var vol float64
		if kind == shellKind {
			vol = a
		} else {
			vec := [3]float64{c[0] - facecen[0], c[1] - facecen[1], c[2] - facecen[2]}
			vol = (vec[0]*n[0] + vec[1]*n[1] + vec[2]*n[2]) * a / 3
		}
		if !exact {
			vol = math.Abs(vol)
		}
		volume += vol
		for k := 0; k < 3; k++ {
			sum[k] += vol * (c[k]*0.75 + facecen[k]*0.25)
		}
	}
	if volume < meshconst.MINVAL {
		return [3]float64{}, 0, false
	}
	for k := 0; k < 3; k++ {
		com[k] = sum[k] / volume
	}
	return com, volume, true
}

// secondMoment accumulates the symmetric products of inertia via the
// closed-form triangle integral (spec.md §4.5 step 4) and converts them
// to the moment-of-inertia tensor (step 5).
func secondMoment(vertices [][3]float32, faces [][3]int32, exact bool, kind meshKind, density float64) (ixx, iyy, izz, ixy, ixz, iyz, volume float64) {
	prefactor := density / 20
	if kind == shellKind {
		prefactor = density / 12
	}

	var p [6]float64
	pairs := [6][2]int{{0, 0}, {1, 1}, {2, 2}, {0, 1}, {0, 2}, {1, 2}}

	for _, f := range faces {
		d, e, ff := vertices[f[0]], vertices[f[1]], vertices[f[2]]
		a, n, c := triangle(d, e, ff)
		var vol float64
		if kind == shellKind {
			vol = a
		} else {
			vol = (c[0]*n[0] + c[1]*n[1] + c[2]*n[2]) * a / 3
		}
		if !exact {
			vol = math.Abs(vol)
		}
		volume += vol

		D := [3]float64{float64(d[0]), float64(d[1]), float64(d[2])}
		E := [3]float64{float64(e[0]), float64(e[1]), float64(e[2])}
		F := [3]float64{float64(ff[0]), float64(ff[1]), float64(ff[2])}

		for j, pr := range pairs {
			da, db := pr[0], pr[1]
			p[j] += prefactor * vol * (
				2*(D[da]*D[db]+E[da]*E[db]+F[da]*F[db]) +
					D[da]*E[db] + D[db]*E[da] +
					D[da]*F[db] + D[db]*F[da] +
					E[da]*F[db] + E[db]*F[da])
		}
	}

	ixx = p[1] + p[2]
	iyy = p[0] + p[2]
	izz = p[0] + p[1]
	ixy = -p[3]
	ixz = -p[4]
	iyz = -p[5]
	return ixx, iyy, izz, ixy, ixz, iyz, volume
}
