// Package quadtree implements a dynamic 2-D spatial index of centers of
// mass, rebuilt every optimizer iteration and read (never mutated) during
// Barnes–Hut force accumulation.
//
// 🚀 Why an arena?
//
//	A naïve *Node tree reallocates every node on every rebuild — one
//	allocation per point per iteration, thousands of iterations. Tree
//	instead owns a single flat []node slice (the arena) indexed by int32
//	handles; Rebuild truncates it to length 0 and reuses the backing array,
//	so steady-state rebuilds do zero new allocations once the arena has
//	grown to its working size. This mirrors lvlath's Graph.Clear() (reset
//	maps, keep configuration) applied to a slice instead of a map.
//
// ✨ Barnes–Hut contract
//
//	Accumulate walks the tree for a query point and a threshold θ, calling
//	visit once per node used as either a center-of-mass summary or a leaf.
//	A node is summarized (not descended into) when size/√r < θ, per
//	spec.md §4.2; leaves are always visited directly. The leaf containing
//	the query point itself is skipped (self-interaction).
package quadtree
