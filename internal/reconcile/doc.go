// Package reconcile is the core reconciliation engine: it normalizes the two
// heterogeneous report shapes (single-row campaign summary, multi-row user
// ledger) into the canonical domain model, folds the ledger into per-user
// aggregates, and derives the cross-file KPI set.
//
// The package is deliberately boring from an error-handling perspective: no
// function here returns an error or panics. Malformed numeric fields coerce
// to zero, zero denominators yield zero ratios, and missing inputs make the
// dependent derivations return nil. All degradation is local and silent,
// trading diagnosability for robustness against inconsistent exports.
//
// Everything is a pure function over in-memory snapshots. The caller decides
// when to recompute; nothing here caches, blocks, or touches I/O.
package reconcile
