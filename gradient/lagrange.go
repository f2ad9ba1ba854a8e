package gradient

// equispacedNodes returns the nInterp half-cell-offset node positions used
// to place Lagrange interpolation nodes within a unit cell (spec.md §4.5
// step 3: "h/2, 3h/2, …" normalized so the cell itself has width 1).
func equispacedNodes(nInterp int) []float64 {
	nodes := make([]float64, nInterp)
	h := 1.0 / float64(nInterp)
	for k := 0; k < nInterp; k++ {
		nodes[k] = (float64(k) + 0.5) * h
	}
	return nodes
}

// lagrangeWeights evaluates φ_k(x) = Π_{j≠k}(x−nodes[j]) / Π_{j≠k}(nodes[k]−nodes[j])
// for every k, given x already normalized into the same [0,1] cell the nodes
// live in (spec.md §4.5 step 5). dst must have length len(nodes); it is
// overwritten and also returned.
func lagrangeWeights(nodes []float64, x float64, dst []float64) []float64 {
	n := len(nodes)
	for k := 0; k < n; k++ {
		num, den := 1.0, 1.0
		for j := 0; j < n; j++ {
			if j == k {
				continue
			}
			num *= x - nodes[j]
			den *= nodes[k] - nodes[j]
		}
		dst[k] = num / den
	}
	return dst
}

// cellGrid computes the per-axis cell count and width for an embedding
// spanning [lo,hi] (spec.md §4.5 step 2):
//
//	n_boxes = max(min_intervals, floor(span / intervals_per_int) + 1)
func cellGrid(lo, hi float64, minIntervals int, intsPerInterval float64) (nBoxes int, cellWidth float64) {
	span := hi - lo
	if span <= 0 {
		span = 1
	}
	n := int(span/intsPerInterval) + 1
	if n < minIntervals {
		n = minIntervals
	}
	return n, span / float64(n)
}

// charges1D computes the n_terms=3 charge vector {1, y, y²} for a 1-D point
// (spec.md §4.5 step 4).
func charges1D(y float64) [3]float64 {
	return [3]float64{1, y, y * y}
}

// charges2D computes the n_terms=4 charge vector {1, y1, y2, y1²+y2²} for a
// 2-D point.
func charges2D(y1, y2 float64) [4]float64 {
	return [4]float64{1, y1, y2, y1*y1 + y2*y2}
}
