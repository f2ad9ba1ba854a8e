// Package affinity converts a per-point k-nearest-neighbor distance table
// into a sparse, symmetric probability matrix calibrated to a target
// perplexity: the input half of the t-SNE pipeline, consumed downstream by
// gradient.Positive.
package affinity
