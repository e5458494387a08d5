package mesh

import (
	"github.com/Faultbox/meshcompile/internal/meshconst"
	"github.com/Faultbox/meshcompile/pkg/meshmath"
)

// synthesizeNormals implements spec.md §4.8's vertex-normal synthesis,
// ported from original_source/src/user/user_mesh.cc's MakeNormal(): an
// area-weighted accumulation pass, then (unless smoothnormal is set) a
// second pass that strips contributions from faces whose normal points
// more than ~37 degrees away from the vertex's accumulated normal.
func synthesizeNormals(vertices [][3]float32, faces [][3]int32, smoothNormal bool) [][3]float32 {
	normals := make([][3]float32, len(vertices))

	faceNormal := func(f [3]int32) (meshmath.Vec3, float32) {
		v0 := meshmath.FromArray(vertices[f[0]])
		v1 := meshmath.FromArray(vertices[f[1]])
		v2 := meshmath.FromArray(vertices[f[2]])
		cross := v1.Sub(v0).Cross(v2.Sub(v0))
		area := cross.Length()
		if area < 1e-20 {
			return meshmath.Vec3{}, 0
		}
		return cross.Scale(1 / area), area
	}

	for _, f := range faces {
		nrm, area := faceNormal(f)
		contribution := nrm.Scale(area)
		for _, vid := range f {
			normals[vid][0] += contribution.X
			normals[vid][1] += contribution.Y
			normals[vid][2] += contribution.Z
		}
	}

	if !smoothNormal {
		nremove := make([][3]float32, len(vertices))
		for _, f := range faces {
			nrm, area := faceNormal(f)
			for _, vid := range f {
				vnrm := meshmath.FromArray(normals[vid]).Normalize()
				if nrm.Dot(vnrm) < 0.8 {
					c := nrm.Scale(area)
					nremove[vid][0] += c.X
					nremove[vid][1] += c.Y
					nremove[vid][2] += c.Z
				}
			}
		}
		for i := range normals {
			normals[i][0] -= nremove[i][0]
			normals[i][1] -= nremove[i][1]
			normals[i][2] -= nremove[i][2]
		}
	}

	for i, n := range normals {
		v := meshmath.FromArray(n)
		if v.Length() > meshconst.MINVAL {
			normals[i] = v.Normalize().Array()
		} else {
			normals[i] = [3]float32{0, 0, 1}
		}
	}
	return normals
}
