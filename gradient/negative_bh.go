package gradient

import (
	"fmt"

	"github.com/dimreduce/tsne/internal/parallel"
	"github.com/dimreduce/tsne/quadtree"
	"gonum.org/v1/gonum/mat"
)

// barnesHut is the Barnes-Hut approximate negative-gradient Engine
// (spec.md §4.4). It owns a single quadtree.Tree and rebuilds it from the
// current embedding on every call to Negative — the arena underneath the
// tree is reused across iterations (quadtree.Tree.Rebuild resets it in
// place), so a Fit loop never re-allocates node storage after the first
// iteration.
type barnesHut struct {
	theta  float64
	dof    float64
	tree   *quadtree.Tree
	points [][2]float64
}

// NewBarnesHut constructs a Barnes-Hut Engine. theta is the size/distance
// ratio controlling the approximation (spec.md §4.2; theta == 0 degenerates
// to an exact, unapproximated force sum). dof is the Student-t kernel's
// degrees of freedom, shared with Positive so both halves of the gradient
// use the identical kernel definition.
func NewBarnesHut(theta, dof float64) (Engine, error) {
	if theta < 0 {
		return nil, ErrBadTheta
	}
	if dof <= 0 {
		return nil, fmt.Errorf("gradient: NewBarnesHut: dof must be positive: %w", ErrDimensionMismatch)
	}
	return &barnesHut{theta: theta, dof: dof}, nil
}

func (b *barnesHut) negativeEngine() {}

// Negative overwrites out with the repulsive gradient term
// −Σ m_c·q²·(yᵢ−c), already divided by the partition function Z (spec.md
// §4.4: "The gradient is then divided by Z + EPSILON"). It is always called before Positive in a given
// iteration (optimizer.State zeroes nothing itself — Negative's job is to
// establish the full row, not add to stale content).
func (b *barnesHut) Negative(y *mat.Dense, out *mat.Dense, nJobs int) (float64, error) {
	n, d := y.Dims()
	if d != 2 {
		return 0, ErrUnsupportedDim
	}
	outN, outD := out.Dims()
	if outN != n || outD != d {
		return 0, fmt.Errorf("gradient: barnesHut.Negative: out is %dx%d, want %dx%d: %w", outN, outD, n, d, ErrDimensionMismatch)
	}

	if cap(b.points) < n {
		b.points = make([][2]float64, n)
	}
	b.points = b.points[:n]
	for i := 0; i < n; i++ {
		b.points[i][0] = y.At(i, 0)
		b.points[i][1] = y.At(i, 1)
	}

	if b.tree == nil {
		tree, err := quadtree.NewTree(b.points)
		if err != nil {
			return 0, fmt.Errorf("gradient: barnesHut.Negative: %w", err)
		}
		b.tree = tree
	} else if err := b.tree.Rebuild(b.points); err != nil {
		return 0, fmt.Errorf("gradient: barnesHut.Negative: %w", err)
	}

	sumQPartial := make([]float64, n)
	theta, dof := b.theta, b.dof

	runErr := parallel.For(n, nJobs, func(i int) error {
		qx, qy := b.points[i][0], b.points[i][1]
		var gx, gy, sumQ float64
		b.tree.Accumulate(qx, qy, theta, func(mass, comX, comY float64) {
			dx, dy := qx-comX, qy-comY
			q := studentQ(dx*dx+dy*dy, dof)
			sumQ += mass * q
			gx -= mass * q * q * dx
			gy -= mass * q * q * dy
		})
		out.Set(i, 0, gx)
		out.Set(i, 1, gy)
		sumQPartial[i] = sumQ
		return nil
	})
	if runErr != nil {
		return 0, wrapParallelErr(runErr)
	}

	var z float64
	for _, s := range sumQPartial {
		z += s
	}
	zDiv := z + Epsilon

	runErr = parallel.For(n, nJobs, func(i int) error {
		out.Set(i, 0, out.At(i, 0)/zDiv)
		out.Set(i, 1, out.At(i, 1)/zDiv)
		return nil
	})
	if runErr != nil {
		return 0, wrapParallelErr(runErr)
	}

	return z, nil
}
