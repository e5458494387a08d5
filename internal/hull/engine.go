// Package hull builds a convex-hull connectivity graph over a mesh's
// vertex set (spec.md §4.4). No maintained cgo-free Go binding of Qhull
// exists anywhere in the reference corpus or the wider ecosystem, so the
// "external incremental hull engine" spec.md describes as an optional
// separate process is instead run in-process: engine.go is a pure-Go
// incremental 3D convex hull, and bridge.go stands in for the
// process/return-code boundary with a panic/recover pair.
package hull

import "math"

// facet is one triangular hull face. v holds the three vertex indices
// into the caller's original point slice, ordered counter-clockwise as
// seen from outside the hull. edges caches the three directed edges this
// facet owns so removeFacet can drop them without recomputation.
type facet struct {
	v      [3]int
	normal [3]float64
	edges  [3][2]int
}

// engine incrementally builds a convex hull over a point set, maintaining
// the active facet set and a directed-edge ownership index used to find
// the horizon when a new point lies outside the current hull.
type engine struct {
	points []point
	facets map[int]*facet
	edgeOf map[[2]int]int
	nextID int
	eps    float64
}

type point [3]float64

func newEngine(points []point, eps float64) *engine {
	return &engine{
		points: points,
		facets: make(map[int]*facet),
		edgeOf: make(map[[2]int]int),
		eps:    eps,
	}
}

func (e *engine) addFacet(a, b, c int) int {
	id := e.nextID
	e.nextID++
	f := &facet{v: [3]int{a, b, c}, edges: [3][2]int{{a, b}, {b, c}, {c, a}}}
	f.normal = triNormal(e.points[a], e.points[b], e.points[c])
	e.facets[id] = f
	for _, ed := range f.edges {
		e.edgeOf[ed] = id
	}
	return id
}

func (e *engine) removeFacet(id int) {
	f, ok := e.facets[id]
	if !ok {
		return
	}
	for _, ed := range f.edges {
		delete(e.edgeOf, ed)
	}
	delete(e.facets, id)
}

func triNormal(a, b, c point) [3]float64 {
	ux, uy, uz := b[0]-a[0], b[1]-a[1], b[2]-a[2]
	vx, vy, vz := c[0]-a[0], c[1]-a[1], c[2]-a[2]
	nx := uy*vz - uz*vy
	ny := uz*vx - ux*vz
	nz := ux*vy - uy*vx
	l := math.Sqrt(nx*nx + ny*ny + nz*nz)
	if l < 1e-300 {
		return [3]float64{0, 0, 0}
	}
	return [3]float64{nx / l, ny / l, nz / l}
}

func sub(a, b point) point {
	return point{a[0] - b[0], a[1] - b[1], a[2] - b[2]}
}

func dot(a, n [3]float64) float64 {
	return a[0]*n[0] + a[1]*n[1] + a[2]*n[2]
}

// visible reports whether point p lies strictly outside the plane of
// facet f, within the engine's tolerance.
func (e *engine) visible(f *facet, p point) bool {
	d := sub(p, e.points[f.v[0]])
	return dot([3]float64(d), f.normal) > e.eps
}

// buildInitialTetrahedron picks four points in general position and adds
// the four outward-oriented facets of their tetrahedron. It panics
// (caught by the bridge) if the point set is degenerate — coincident,
// collinear, or coplanar within tolerance.
func (e *engine) buildInitialTetrahedron() (used [4]int) {
	n := len(e.points)
	p0 := 0
	best1, bestDist := -1, e.eps
	for i := 1; i < n; i++ {
		d := sub(e.points[i], e.points[p0])
		dist := d[0]*d[0] + d[1]*d[1] + d[2]*d[2]
		if dist > bestDist {
			bestDist, best1 = dist, i
		}
	}
	if best1 < 0 {
		panic(hullPanic{"all points coincide"})
	}
	p1 := best1

	best2, bestArea := -1, e.eps
	for i := 0; i < n; i++ {
		if i == p0 || i == p1 {
			continue
		}
		ux, uy, uz := e.points[p1][0]-e.points[p0][0], e.points[p1][1]-e.points[p0][1], e.points[p1][2]-e.points[p0][2]
		vx, vy, vz := e.points[i][0]-e.points[p0][0], e.points[i][1]-e.points[p0][1], e.points[i][2]-e.points[p0][2]
		cx, cy, cz := uy*vz-uz*vy, uz*vx-ux*vz, ux*vy-uy*vx
		area := math.Sqrt(cx*cx + cy*cy + cz*cz)
		if area > bestArea {
			bestArea, best2 = area, i
		}
	}
	if best2 < 0 {
		panic(hullPanic{"all points collinear"})
	}
	p2 := best2

	n012 := triNormal(e.points[p0], e.points[p1], e.points[p2])
	best3, bestVol := -1, e.eps
	for i := 0; i < n; i++ {
		if i == p0 || i == p1 || i == p2 {
			continue
		}
		d := sub(e.points[i], e.points[p0])
		vol := math.Abs(dot([3]float64(d), n012))
		if vol > bestVol {
			bestVol, best3 = vol, i
		}
	}
	if best3 < 0 {
		panic(hullPanic{"all points coplanar"})
	}
	p3 := best3

	centroid := point{
		(e.points[p0][0] + e.points[p1][0] + e.points[p2][0] + e.points[p3][0]) / 4,
		(e.points[p0][1] + e.points[p1][1] + e.points[p2][1] + e.points[p3][1]) / 4,
		(e.points[p0][2] + e.points[p1][2] + e.points[p2][2] + e.points[p3][2]) / 4,
	}

	faces := [4][3]int{{p0, p1, p2}, {p0, p2, p3}, {p0, p3, p1}, {p1, p3, p2}}
	for _, f := range faces {
		a, b, c := f[0], f[1], f[2]
		nrm := triNormal(e.points[a], e.points[b], e.points[c])
		toCentroid := sub(centroid, e.points[a])
		if dot([3]float64(toCentroid), nrm) > 0 {
			// normal points inward; flip winding
			b, c = c, b
		}
		e.addFacet(a, b, c)
	}

	return [4]int{p0, p1, p2, p3}
}

// insert incorporates point index q into the hull, removing whichever
// facets it is in front of and re-triangulating the resulting horizon.
func (e *engine) insert(q int) {
	p := e.points[q]

	var visibleIDs []int
	for id, f := range e.facets {
		if e.visible(f, p) {
			visibleIDs = append(visibleIDs, id)
		}
	}
	if len(visibleIDs) == 0 {
		return // q is interior to the current hull
	}

	visibleSet := make(map[int]bool, len(visibleIDs))
	for _, id := range visibleIDs {
		visibleSet[id] = true
	}

	var horizon [][2]int
	for _, id := range visibleIDs {
		f := e.facets[id]
		for _, ed := range f.edges {
			twin := [2]int{ed[1], ed[0]}
			if owner, ok := e.edgeOf[twin]; ok && !visibleSet[owner] {
				horizon = append(horizon, ed)
			}
		}
	}

	for _, id := range visibleIDs {
		e.removeFacet(id)
	}
	for _, ed := range horizon {
		e.addFacet(ed[0], ed[1], q)
	}
}

// build runs the full incremental hull algorithm and returns the final
// facets as (a,b,c) vertex-index triples into the caller's point slice.
func build(pts []point, eps float64) [][3]int {
	e := newEngine(pts, eps)
	used := e.buildInitialTetrahedron()

	skip := map[int]bool{used[0]: true, used[1]: true, used[2]: true, used[3]: true}
	for i := range pts {
		if skip[i] {
			continue
		}
		e.insert(i)
	}

	out := make([][3]int, 0, len(e.facets))
	for _, f := range e.facets {
		out = append(out, f.v)
	}
	return out
}

// hullPanic is the engine's internal failure signal, recovered by
// bridge.go's Build and converted into a structured mesherr.HullFailed.
type hullPanic struct {
	reason string
}
