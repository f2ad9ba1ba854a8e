package affinity

// Distances is the per-row k-nearest-neighbor table a neighbors.Index
// produces: row i's neighbors are Indices[i], at distances Dist[i] (self is
// never included). Rows may carry different neighbor counts.
type Distances struct {
	Indices [][]int32
	Dist    [][]float64
}

// N reports the number of rows (points).
func (d Distances) N() int {
	return len(d.Indices)
}

// Options tunes the per-row binary search for the bandwidth β that hits the
// target perplexity (spec.md §4.1).
type Options struct {
	// Tolerance bounds |H(P[i,·]) − log(perplexity)|; the search stops once
	// every row is within it (default 1e-8).
	Tolerance float64
	// MaxIter caps the binary search per row (default 200); exceeding it is
	// not an error, spec.md §4.1 "Failure".
	MaxIter int
	// NJobs controls the row-parallel fan-out (see internal/parallel.Workers).
	NJobs int
}

// DefaultOptions returns spec.md §4.1's calibration defaults.
func DefaultOptions() Options {
	return Options{
		Tolerance: 1e-8,
		MaxIter:   200,
		NJobs:     0,
	}
}

// Validate checks Options' fields are usable.
func (o Options) Validate() error {
	if o.Tolerance <= 0 {
		return ErrBadOptions
	}
	if o.MaxIter <= 0 {
		return ErrBadOptions
	}
	return nil
}
