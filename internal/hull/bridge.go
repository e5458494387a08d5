package hull

import (
	"math"

	"github.com/Faultbox/meshcompile/internal/mesherr"
)

// Facet is one triangular hull face, exported in terms of the caller's
// original vertex indices.
type Facet struct {
	A, B, C int
}

// Build runs the incremental hull engine over vertices and returns its
// facets. It stands in for the spec's external-process hull engine: a
// recover() converts any internal panic — the engine's analogue of a
// qhull longjmp on degenerate input — into a structured mesherr.HullFailed,
// and the engine's scratch state is released on every exit path.
func Build(meshName string, vertices [][3]float32) (facets []Facet, err error) {
	if len(vertices) < 4 {
		return nil, mesherr.New(mesherr.HullFailed, meshName, "need at least 4 vertices")
	}

	pts := make([]point, len(vertices))
	for i, v := range vertices {
		pts[i] = point{float64(v[0]), float64(v[1]), float64(v[2])}
	}
	eps := hullEps(pts)

	var raw [][3]int
	func() {
		var e *engine
		defer func() {
			e = nil // release the engine's scratch facet/edge maps
			if r := recover(); r != nil {
				if hp, ok := r.(hullPanic); ok {
					err = mesherr.New(mesherr.HullFailed, meshName, hp.reason)
					return
				}
				panic(r) // not ours, propagate
			}
		}()
		e = newEngine(pts, eps)
		used := e.buildInitialTetrahedron()
		skip := map[int]bool{used[0]: true, used[1]: true, used[2]: true, used[3]: true}
		for i := range pts {
			if skip[i] {
				continue
			}
			e.insert(i)
		}
		raw = make([][3]int, 0, len(e.facets))
		for _, f := range e.facets {
			raw = append(raw, f.v)
		}
	}()
	if err != nil {
		return nil, err
	}

	facets = make([]Facet, len(raw))
	for i, f := range raw {
		facets[i] = Facet{A: f[0], B: f[1], C: f[2]}
	}
	return facets, nil
}

// hullEps derives a scale-relative tolerance from the point set's
// bounding-box diagonal, so the visibility test behaves consistently
// whether the mesh is modeled in millimeters or meters.
func hullEps(pts []point) float64 {
	if len(pts) == 0 {
		return 1e-10
	}
	lo, hi := pts[0], pts[0]
	for _, p := range pts[1:] {
		for k := 0; k < 3; k++ {
			if p[k] < lo[k] {
				lo[k] = p[k]
			}
			if p[k] > hi[k] {
				hi[k] = p[k]
			}
		}
	}
	dx, dy, dz := hi[0]-lo[0], hi[1]-lo[1], hi[2]-lo[2]
	diag := math.Sqrt(dx*dx + dy*dy + dz*dz)
	if diag < 1e-10 {
		diag = 1
	}
	return 1e-10 * diag
}
