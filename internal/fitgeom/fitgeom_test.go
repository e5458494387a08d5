package fitgeom

import (
	"math"
	"testing"
)

func approxEqual(a, b, tol float64) bool {
	d := a - b
	if d < 0 {
		d = -d
	}
	return d < tol
}

func TestFitSphereFromBoxSize(t *testing.T) {
	r := Fit(Sphere, Input{BoxSize: [3]float64{1, 2, 3}, FitScale: 1})
	if !approxEqual(r.Size[0], 2.0, 1e-9) {
		t.Fatalf("sphere size = %v, want 2.0", r.Size[0])
	}
}

func TestFitBoxIdentity(t *testing.T) {
	r := Fit(Box, Input{BoxSize: [3]float64{1, 2, 3}, FitScale: 2})
	want := [3]float64{2, 4, 6}
	if r.Size != want {
		t.Fatalf("box size = %v, want %v", r.Size, want)
	}
}

func TestFitCapsuleFromBoxSize(t *testing.T) {
	r := Fit(Capsule, Input{BoxSize: [3]float64{1, 1, 5}, FitScale: 1})
	if !approxEqual(r.Size[0], 1.0, 1e-9) {
		t.Fatalf("capsule radius = %v, want 1.0", r.Size[0])
	}
	if !approxEqual(r.Size[1], 4.5, 1e-9) {
		t.Fatalf("capsule half-length = %v, want 4.5", r.Size[1])
	}
}

func TestFitSphereFromAABB(t *testing.T) {
	verts := [][3]float32{{1, 0, 0}, {-1, 0, 0}, {0, 2, 0}}
	r := Fit(Sphere, Input{
		AABB:     [6]float64{-1, 0, 0, 1, 2, 0},
		Vertices: verts,
		FitAABB:  true,
		FitScale: 1,
	})
	// Farthest vertices from the AABB center (0,1,0) are (+-1,0,0).
	if !approxEqual(r.Size[0], math.Sqrt2, 1e-9) {
		t.Fatalf("sphere radius = %v, want sqrt(2)", r.Size[0])
	}
	if !approxEqual(r.Pos[0], 0, 1e-9) || !approxEqual(r.Pos[1], 1, 1e-9) {
		t.Fatalf("unexpected center offset %v", r.Pos)
	}
}

func TestFitCylinderFromAABB(t *testing.T) {
	verts := [][3]float32{{2, 0, 3}, {0, 2, -3}}
	r := Fit(Cylinder, Input{
		AABB:     [6]float64{-2, -2, -3, 2, 2, 3},
		Vertices: verts,
		FitAABB:  true,
		FitScale: 1,
	})
	if !approxEqual(r.Size[0], 2.0, 1e-9) {
		t.Fatalf("cylinder radius = %v, want 2.0", r.Size[0])
	}
	if !approxEqual(r.Size[1], 3.0, 1e-9) {
		t.Fatalf("cylinder half-height = %v, want 3.0", r.Size[1])
	}
}
