package quadtree

import (
	"math"
)

// NewTree bulk-builds a fresh Tree from points (an N×2 array given as
// [][2]float64). Complexity: O(N log N) expected, O(N) memory (the arena
// grows to roughly 4N/3 nodes for well-spread points).
func NewTree(points [][2]float64) (*Tree, error) {
	t := &Tree{}
	if err := t.Rebuild(points); err != nil {
		return nil, err
	}
	return t, nil
}

// Rebuild discards t's previous contents in O(1) (the arena slice is
// truncated, not reallocated, per the package doc) and bulk-builds a new
// tree from points. Safe to call once per optimizer iteration.
func (t *Tree) Rebuild(points [][2]float64) error {
	if len(points) == 0 {
		return ErrEmptyPoints
	}
	minX, minY := math.Inf(1), math.Inf(1)
	maxX, maxY := math.Inf(-1), math.Inf(-1)
	for _, p := range points {
		if math.IsNaN(p[0]) || math.IsNaN(p[1]) || math.IsInf(p[0], 0) || math.IsInf(p[1], 0) {
			return ErrNonFinitePoint
		}
		minX, maxX = math.Min(minX, p[0]), math.Max(maxX, p[0])
		minY, maxY = math.Min(minY, p[1]), math.Max(maxY, p[1])
	}

	side := math.Max(maxX-minX, maxY-minY)
	if side <= 0 {
		side = 1 // every point coincides; give the root a nonzero square anyway
	}
	side *= 1.00001 // a hair of padding so boundary points aren't exactly on the edge

	t.nodes = t.nodes[:0]
	t.root = t.newNode(minX, minY, side)
	for i := range points {
		t.insert(t.root, points[i][0], points[i][1], 0)
	}
	return nil
}

func (t *Tree) newNode(x0, y0, size float64) int32 {
	t.nodes = append(t.nodes, node{x0: x0, y0: y0, size: size, leaf: true, children: [4]int32{-1, -1, -1, -1}})
	return int32(len(t.nodes) - 1)
}

// insert places point (px,py) under the subtree rooted at idx, splitting a
// leaf with ≥2 distinct points into four quadrants as needed.
//
// Every field access goes through t.nodes[idx] rather than a cached
// *node — split (via newNode) appends to t.nodes and can reallocate its
// backing array mid-recursion, which would silently strand writes made
// through a pointer taken before the append.
func (t *Tree) insert(idx int32, px, py float64, depth int) {
	if t.nodes[idx].isEmpty() {
		t.nodes[idx].comX, t.nodes[idx].comY, t.nodes[idx].mass = px, py, 1
		return
	}

	if t.nodes[idx].leaf {
		if t.nodes[idx].duplicate || depth >= maxDepth || sameCoord(t.nodes[idx].comX, t.nodes[idx].comY, px, py) {
			// Coincident with the point(s) already here: grow mass in place,
			// never subdivide a point with itself.
			t.nodes[idx].duplicate = true
			t.nodes[idx].mass++
			return
		}
		// Split: re-home the existing single point into a quadrant, then
		// fall through to insert the new point the same way.
		oldX, oldY := t.nodes[idx].comX, t.nodes[idx].comY
		t.split(idx)
		t.insertIntoQuadrant(idx, oldX, oldY, depth+1)
	}

	// Internal node: update running center of mass, then recurse.
	total := t.nodes[idx].mass + 1
	t.nodes[idx].comX = (t.nodes[idx].comX*t.nodes[idx].mass + px) / total
	t.nodes[idx].comY = (t.nodes[idx].comY*t.nodes[idx].mass + py) / total
	t.nodes[idx].mass = total
	t.insertIntoQuadrant(idx, px, py, depth+1)
}

// split converts a single-point leaf into an internal node with four empty
// quadrant children. It leaves the node's mass and center of mass as they
// were; the caller (insert) re-homes the leaf's own point into its quadrant.
func (t *Tree) split(idx int32) {
	n := t.nodes[idx] // copy: we're about to append, which may reallocate t.nodes
	half := n.size / 2
	c0 := t.newNode(n.x0, n.y0, half)
	c1 := t.newNode(n.x0+half, n.y0, half)
	c2 := t.newNode(n.x0, n.y0+half, half)
	c3 := t.newNode(n.x0+half, n.y0+half, half)

	t.nodes[idx].leaf = false
	t.nodes[idx].children = [4]int32{c0, c1, c2, c3}
}

// insertIntoQuadrant inserts (px,py) into idx's quadrant that contains it.
// idx must already be an internal node (post-split).
func (t *Tree) insertIntoQuadrant(idx int32, px, py float64, depth int) {
	half := t.nodes[idx].size / 2
	midX, midY := t.nodes[idx].x0+half, t.nodes[idx].y0+half

	var q int
	if px < midX {
		if py < midY {
			q = 0
		} else {
			q = 2
		}
	} else {
		if py < midY {
			q = 1
		} else {
			q = 3
		}
	}
	child := t.nodes[idx].children[q]
	t.insert(child, px, py, depth)
}

func sameCoord(ax, ay, bx, by float64) bool {
	return math.Abs(ax-bx) < coordEpsilon && math.Abs(ay-by) < coordEpsilon
}

// Accumulate walks the tree for query point (qx,qy) with Barnes–Hut
// threshold theta, calling visit(mass, comX, comY) once for every node used
// either as a summarizing center of mass or as a (non-self) leaf.
//
// The node containing (qx,qy) itself is never visited (spec.md §4.2:
// "self-interactions ... are skipped").
//
// Complexity: O(log N) expected per call when theta > 0, O(N) when theta==0
// (exact, full descent to every leaf).
func (t *Tree) Accumulate(qx, qy, theta float64, visit func(mass, comX, comY float64)) {
	if t.root < 0 {
		return
	}
	t.walk(t.root, qx, qy, theta, visit)
}

func (t *Tree) walk(idx int32, qx, qy, theta float64, visit func(mass, comX, comY float64)) {
	n := &t.nodes[idx]
	if n.isEmpty() {
		return
	}
	dx, dy := n.comX-qx, n.comY-qy
	r2 := dx*dx + dy*dy

	if n.leaf {
		if r2 < coordEpsilon*coordEpsilon {
			return // self-interaction: this leaf is (or contains) the query point
		}
		visit(n.mass, n.comX, n.comY)
		return
	}

	// Barnes-Hut test size/√r2 < theta, written without a division so r2==0
	// (query sits exactly on an internal node's center of mass) just forces
	// a full descent instead of a NaN.
	if n.size*n.size < theta*theta*r2 {
		visit(n.mass, n.comX, n.comY)
		return
	}

	for _, c := range n.children {
		if c >= 0 {
			t.walk(c, qx, qy, theta, visit)
		}
	}
}
