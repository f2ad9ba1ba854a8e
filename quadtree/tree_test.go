package quadtree_test

import (
	"math"
	"math/rand"
	"testing"

	"github.com/dimreduce/tsne/quadtree"
	"github.com/stretchr/testify/require"
)

func TestNewTree_RejectsEmpty(t *testing.T) {
	_, err := quadtree.NewTree(nil)
	require.ErrorIs(t, err, quadtree.ErrEmptyPoints)
}

func TestNewTree_SinglePoint(t *testing.T) {
	tr, err := quadtree.NewTree([][2]float64{{1, 2}})
	require.NoError(t, err)
	require.Equal(t, 1.0, tr.N())

	visited := 0
	tr.Accumulate(1, 2, 0.5, func(mass, cx, cy float64) { visited++ })
	require.Zero(t, visited, "the only leaf is the query point itself; must be skipped")
}

func TestAllDuplicate_RootIsDuplicateLeaf(t *testing.T) {
	pts := make([][2]float64, 50)
	for i := range pts {
		pts[i] = [2]float64{3.5, -2.0}
	}
	tr, err := quadtree.NewTree(pts)
	require.NoError(t, err)
	require.True(t, tr.RootDuplicate())
	require.Equal(t, float64(len(pts)), tr.N())

	visited := 0
	tr.Accumulate(3.5, -2.0, 0.5, func(mass, cx, cy float64) { visited++ })
	require.Zero(t, visited, "every point coincides with the query; gradient contribution must be zero")
}

func TestAccumulate_MassConservedAcrossSummaries(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	const n = 2000
	pts := make([][2]float64, n)
	for i := range pts {
		pts[i] = [2]float64{rng.Float64() * 100, rng.Float64() * 100}
	}
	tr, err := quadtree.NewTree(pts)
	require.NoError(t, err)

	for trial := 0; trial < 20; trial++ {
		qi := rng.Intn(n)
		qx, qy := pts[qi][0], pts[qi][1]
		var total float64
		tr.Accumulate(qx, qy, 0.5, func(mass, cx, cy float64) { total += mass })
		require.InDelta(t, float64(n-1), total, 1e-9, "every other point must be counted exactly once")
	}
}

func TestAccumulate_ThetaZeroVisitsOnlyLeaves(t *testing.T) {
	rng := rand.New(rand.NewSource(11))
	const n = 300
	pts := make([][2]float64, n)
	for i := range pts {
		pts[i] = [2]float64{rng.Float64(), rng.Float64()}
	}
	tr, err := quadtree.NewTree(pts)
	require.NoError(t, err)

	var total float64
	var maxMass float64
	tr.Accumulate(pts[0][0], pts[0][1], 0, func(mass, cx, cy float64) {
		total += mass
		if mass > maxMass {
			maxMass = mass
		}
	})
	require.InDelta(t, float64(n-1), total, 1e-9)
	require.Equal(t, 1.0, maxMass) // no duplicates here, so exact mode visits single-point leaves one at a time
}

func TestAccumulate_SmallerThetaNeverUndercounts(t *testing.T) {
	rng := rand.New(rand.NewSource(3))
	const n = 800
	pts := make([][2]float64, n)
	for i := range pts {
		pts[i] = [2]float64{rng.NormFloat64(), rng.NormFloat64()}
	}
	tr, err := quadtree.NewTree(pts)
	require.NoError(t, err)

	for _, theta := range []float64{0, 0.2, 0.5, 1.2} {
		var total float64
		tr.Accumulate(pts[5][0], pts[5][1], theta, func(mass, cx, cy float64) { total += mass })
		require.InDelta(t, float64(n-1), total, 1e-6, "theta=%v", theta)
	}
}

func TestRebuild_ReusesArenaAcrossCalls(t *testing.T) {
	tr := &quadtree.Tree{}
	rng := rand.New(rand.NewSource(1))
	for iter := 0; iter < 5; iter++ {
		pts := make([][2]float64, 100)
		for i := range pts {
			pts[i] = [2]float64{rng.Float64(), rng.Float64()}
		}
		require.NoError(t, tr.Rebuild(pts))
		require.Equal(t, 100.0, tr.N())
	}
}

func TestRebuild_RejectsNonFinite(t *testing.T) {
	tr := &quadtree.Tree{}
	err := tr.Rebuild([][2]float64{{math.NaN(), 0}})
	require.ErrorIs(t, err, quadtree.ErrNonFinitePoint)
}
