// Package metrics turns journal records into the figures shown on the
// dashboard: normalized amounts, portfolio snapshots, chronological returns,
// strike-based profit/loss estimates and per-row trade views.
//
// Every function in this package is pure. Inputs are already-loaded slices of
// model records; nothing here performs I/O or mutates its arguments, so results
// for the same input are always identical.
//
// Bad data never aborts a computation. An amount that cannot be parsed counts
// as zero, a percentage with a zero or negative base is zero, and a missing or
// malformed set of strike legs yields a nil estimate rather than zeros.
package metrics
