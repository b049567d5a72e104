// Package services contains the reconciliation service layer.
//
// ReconciliationService owns the current campaign and ledger snapshots and
// recomputes all derived numbers in full whenever either input changes. The
// snapshots themselves are immutable; a small mutex guards the swap.
package services
