package meshio

import (
	"math"

	"github.com/Faultbox/meshcompile/internal/meshconst"
	"github.com/Faultbox/meshcompile/pkg/meshmath"
)

// readFixedString trims a null-padded, fixed-width C string field.
func readFixedString(b []byte) string {
	if i := indexByte(b, 0); i >= 0 {
		return string(b[:i])
	}
	return string(b)
}

func indexByte(b []byte, c byte) int {
	for i, v := range b {
		if v == c {
			return i
		}
	}
	return -1
}

// triangleAreaNormal returns the area and the unit normal of the triangle
// v0, v1, v2, or zero values for a degenerate triangle.
func triangleAreaNormal(v0, v1, v2 [3]float32) (area float32, normal meshmath.Vec3) {
	a := meshmath.FromArray(v0)
	b := meshmath.FromArray(v1)
	c := meshmath.FromArray(v2)
	cross := b.Sub(a).Cross(c.Sub(a))
	length := cross.Length()
	if length < 1e-12 {
		return 0, meshmath.Vec3{}
	}
	return length / 2, cross.Scale(1 / length)
}

// sqrtMinval is the minimum triangle area (spec.md: "area exceeds √ε")
// below which a triangle contributes no directed edges.
var sqrtMinval = float32(math.Sqrt(meshconst.MINVAL))

// appendTriangleEdges appends the three directed edges of triangle
// (v0,v1,v2) to edges, unless the triangle's area is at or below √ε.
func appendTriangleEdges(edges [][2]int32, verts [][3]float32, v0, v1, v2 int32) [][2]int32 {
	area, _ := triangleAreaNormal(verts[v0], verts[v1], verts[v2])
	if area <= sqrtMinval {
		return edges
	}
	return append(edges, [2]int32{v0, v1}, [2]int32{v1, v2}, [2]int32{v2, v0})
}

// isLeftHanded reports whether the product of the three scale components
// is negative.
func isLeftHanded(scale [3]float32) bool {
	return scale[0]*scale[1]*scale[2] < 0
}

func hasNaNOrInf32(f float32) bool {
	v := float64(f)
	return math.IsNaN(v) || math.IsInf(v, 0)
}
