// Package neighbors supplies the nearest-neighbor index collaborator
// spec.md §1 explicitly treats as out of core scope but §6's facade still
// needs a concrete default for: Exact (brute force) and Approx (backed by
// gonum's k-d tree), both satisfying the same Index contract consumed by
// affinity.Build.
package neighbors
