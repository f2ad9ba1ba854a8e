// Package optimizer drives the t-SNE momentum/gain descent loop: each call
// to Run owns an embedding's gains and update vector for the duration of
// the fit, dispatching caller-supplied Observers at a configurable cadence
// and honoring their request to stop early.
package optimizer
