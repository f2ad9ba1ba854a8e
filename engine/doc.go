// Package engine is the public facade (spec.md §6): it wires neighbors,
// affinity, a gradient.Engine, and optimizer.Run into the two operations a
// caller sees, Fit and Result.Transform, and classifies every subpackage's
// sentinel errors into the four kinds spec.md §7 names.
package engine
