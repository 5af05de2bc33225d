package obj

import "github.com/chewxy/math32"

const earEpsilon = 1e-7

// Triangulate splits a simple polygon into len(poly)-2 triangles by ear
// clipping. Each triangle holds indices into poly and keeps the polygon's
// winding. The polygon is projected onto the plane of its Newell normal, so
// slightly non-planar faces work. When no ear can be found (collinear or
// self-intersecting input) the remainder is fanned from its first corner.
func Triangulate(poly [][3]float32) [][3]int {
	n := len(poly)
	if n < 3 {
		return nil
	}
	if n == 3 {
		return [][3]int{{0, 1, 2}}
	}

	pts := project(poly)

	// Orientation of the projected outline; ears must turn the same way.
	orient := float32(1)
	if signedArea(pts) < 0 {
		orient = -1
	}

	remaining := make([]int, n)
	for i := range remaining {
		remaining[i] = i
	}

	tris := make([][3]int, 0, n-2)
	for len(remaining) > 3 {
		m := len(remaining)
		clipped := false

		// Start at the second corner so convex polygons come out as a fan
		// around corner 0.
		for k := 1; k <= m; k++ {
			i := k % m
			prev := remaining[(i+m-1)%m]
			cur := remaining[i]
			next := remaining[(i+1)%m]

			if !isEar(pts, remaining, prev, cur, next, orient) {
				continue
			}

			tris = append(tris, [3]int{prev, cur, next})
			remaining = append(remaining[:i], remaining[i+1:]...)
			clipped = true
			break
		}

		if !clipped {
			for i := 1; i+1 < len(remaining); i++ {
				tris = append(tris, [3]int{remaining[0], remaining[i], remaining[i+1]})
			}
			return tris
		}
	}

	return append(tris, [3]int{remaining[0], remaining[1], remaining[2]})
}

type point2 struct{ x, y float32 }

// project drops the axis along which the Newell normal is largest.
func project(poly [][3]float32) []point2 {
	var nx, ny, nz float32
	for i := range poly {
		cur, next := poly[i], poly[(i+1)%len(poly)]
		nx += (cur[1] - next[1]) * (cur[2] + next[2])
		ny += (cur[2] - next[2]) * (cur[0] + next[0])
		nz += (cur[0] - next[0]) * (cur[1] + next[1])
	}

	ax, ay, az := math32.Abs(nx), math32.Abs(ny), math32.Abs(nz)
	u, v := 0, 1 // drop z
	switch {
	case ax >= ay && ax >= az:
		u, v = 1, 2
	case ay >= ax && ay >= az:
		u, v = 2, 0
	}

	pts := make([]point2, len(poly))
	for i, p := range poly {
		pts[i] = point2{p[u], p[v]}
	}
	return pts
}

func signedArea(pts []point2) float32 {
	var a float32
	for i := range pts {
		p, q := pts[i], pts[(i+1)%len(pts)]
		a += p.x*q.y - q.x*p.y
	}
	return a / 2
}

func cross(a, b, c point2) float32 {
	return (b.x-a.x)*(c.y-a.y) - (b.y-a.y)*(c.x-a.x)
}

func isEar(pts []point2, remaining []int, prev, cur, next int, orient float32) bool {
	a, b, c := pts[prev], pts[cur], pts[next]
	if cross(a, b, c)*orient <= earEpsilon {
		return false
	}
	for _, j := range remaining {
		if j == prev || j == cur || j == next {
			continue
		}
		p := pts[j]
		if p == a || p == b || p == c {
			continue
		}
		if insideTriangle(a, b, c, p, orient) {
			return false
		}
	}
	return true
}

// insideTriangle reports whether p lies inside or on the edge of abc.
func insideTriangle(a, b, c, p point2, orient float32) bool {
	return cross(a, b, p)*orient >= 0 &&
		cross(b, c, p)*orient >= 0 &&
		cross(c, a, p)*orient >= 0
}
