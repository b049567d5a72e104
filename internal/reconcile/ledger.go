package reconcile

import (
	"sort"

	"affrecon/pkg/contracts/domain"
)

// maxTopUsers bounds the leaderboard carried on every UserIndex snapshot.
const maxTopUsers = 10

// AggregateLedger folds the normalized ledger rows into a UserIndex in a
// single pass: one aggregate per distinct trimmed username (the empty key
// included), plus the ledger-wide totals. O(n) time, O(distinct users) space.
//
// An empty row sequence is a valid ledger and produces an index with zero
// totals and empty structures, not an error.
//
// The returned index is a finalized snapshot; the mutable accumulation map
// is confined to this function and never escapes.
func AggregateLedger(rows []domain.UserLedgerRow) *domain.UserIndex {
	idx := &domain.UserIndex{
		Users:    make(map[string]domain.UserAggregate, len(rows)),
		TopUsers: []domain.UserAggregate{},
	}

	// Encounter order of first occurrences; the tie-break for the leaderboard.
	order := make([]string, 0, len(rows))

	for _, row := range rows {
		agg, seen := idx.Users[row.Username]
		if !seen {
			agg = domain.UserAggregate{Username: row.Username}
			order = append(order, row.Username)
		}
		agg.Entries++
		agg.TotalValue += row.ValueUSD
		idx.Users[row.Username] = agg

		idx.TotalValue += row.ValueUSD
		if row.ValueUSD != 0 {
			idx.RowsWithValue++
		}
	}

	idx.TotalUsers = len(idx.Users)

	ranked := make([]domain.UserAggregate, 0, len(order))
	for _, username := range order {
		agg := idx.Users[username]
		ranked = append(ranked, agg)
		if agg.TotalValue > 0 {
			idx.UsersWithValue++
		}
	}

	// Stable sort so equal totals keep first-seen order.
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].TotalValue > ranked[j].TotalValue
	})
	if len(ranked) > maxTopUsers {
		ranked = ranked[:maxTopUsers]
	}
	idx.TopUsers = ranked

	return idx
}
