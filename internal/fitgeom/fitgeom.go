// Package fitgeom sizes a primitive collision shape (sphere, capsule,
// cylinder, ellipsoid, box) to match a compiled mesh's inertia box or
// AABB — spec.md §4.7, the "boundary interface to the primitive-fitting
// subsystem." Ported from original_source/src/user/user_mesh.cc's
// mjCMesh::FitGeom().
package fitgeom

import "math"

// Shape is a primitive collision geometry tag.
type Shape int

const (
	Sphere Shape = iota
	Capsule
	Cylinder
	Ellipsoid
	Box
)

// Input bundles everything Fit needs from a compiled mesh.
type Input struct {
	// BoxSize is the GetInertiaBoxPtr(type) result: boxsz_volume or
	// boxsz_surface, used when FitAABB is false.
	BoxSize [3]float64
	// AABB is the compiled mesh's axis-aligned bounding box
	// (xmin,ymin,zmin,xmax,ymax,zmax), used when FitAABB is true.
	AABB [6]float64
	// Vertices is the compiled mesh's vertex array, swept for the
	// AABB-based sphere/capsule/cylinder radii.
	Vertices [][3]float32
	FitAABB  bool
	FitScale float64
}

// Result is a sized primitive: Size holds up to 3 shape parameters (unused
// trailing entries are zero) and Pos is the offset to add to the mesh's
// own position to center the primitive, nonzero only in the FitAABB case.
type Result struct {
	Size [3]float64
	Pos  [3]float64
}

// Fit computes the primitive size (and, for the AABB path, position
// offset) that best matches in.
func Fit(shape Shape, in Input) Result {
	if in.FitAABB {
		return fitAABB(shape, in)
	}
	return fitBoxSize(shape, in)
}

func fitBoxSize(shape Shape, in Input) Result {
	b := in.BoxSize
	var size [3]float64
	switch shape {
	case Sphere:
		size[0] = (b[0] + b[1] + b[2]) / 3
	case Capsule:
		size[0] = (b[0] + b[1]) / 2
		size[1] = math.Max(0, b[2]-size[0]/2)
	case Cylinder:
		size[0] = (b[0] + b[1]) / 2
		size[1] = b[2]
	case Ellipsoid, Box:
		size = b
	}
	return scaleResult(Result{Size: size}, in.FitScale)
}

func fitAABB(shape Shape, in Input) Result {
	cen := [3]float64{
		(in.AABB[0] + in.AABB[3]) / 2,
		(in.AABB[1] + in.AABB[4]) / 2,
		(in.AABB[2] + in.AABB[5]) / 2,
	}

	var size [3]float64
	switch shape {
	case Sphere:
		for _, v := range in.Vertices {
			dst := dist3(v, cen)
			size[0] = math.Max(size[0], dst)
		}
	case Capsule, Cylinder:
		for _, v := range in.Vertices {
			dxy := math.Hypot(float64(v[0])-cen[0], float64(v[1])-cen[1])
			dz := math.Abs(float64(v[2]) - cen[2])
			size[0] = math.Max(size[0], dxy)
			size[1] = math.Max(size[1], dz)
		}
		if shape == Capsule {
			// The curved cap absorbs some of the Z extent, so the half
			// length is reduced by the spherical elevation at each
			// vertex's horizontal radius.
			size[1] = 0
			for _, v := range in.Vertices {
				dxy := math.Hypot(float64(v[0])-cen[0], float64(v[1])-cen[1])
				dz := math.Abs(float64(v[2]) - cen[2])
				h := size[0] * math.Sin(math.Acos(dxy/size[0]))
				size[1] = math.Max(size[1], dz-h)
			}
		}
	case Ellipsoid, Box:
		size[0] = in.AABB[3] - cen[0]
		size[1] = in.AABB[4] - cen[1]
		size[2] = in.AABB[5] - cen[2]
	}
	return scaleResult(Result{Size: size, Pos: cen}, in.FitScale)
}

func dist3(v [3]float32, cen [3]float64) float64 {
	dx, dy, dz := float64(v[0])-cen[0], float64(v[1])-cen[1], float64(v[2])-cen[2]
	return math.Sqrt(dx*dx + dy*dy + dz*dz)
}

func scaleResult(r Result, scale float64) Result {
	r.Size[0] *= scale
	r.Size[1] *= scale
	r.Size[2] *= scale
	return r
}
