package domain

// UserLedgerRow is one normalized row of the per-user value ledger export.
// Rows are ephemeral: they exist between normalization and the ledger fold
// and are not retained afterwards.
type UserLedgerRow struct {
	// Username is the trimmed username the value is attributed to. An absent
	// username becomes the empty string; such rows are kept and aggregate
	// under the empty key rather than being discarded.
	Username string `json:"username"`

	// ValueUSD is the coerced value of the event. Malformed cells coerce to 0.
	ValueUSD float64 `json:"value_usd"`

	// CreatedAt is the event timestamp as exported, verbatim.
	CreatedAt string `json:"created_at,omitempty"`

	// Campaign is the campaign label on the row, if the export carried one.
	Campaign string `json:"campaign,omitempty"`
}

// UserAggregate is the per-username rollup produced by folding the ledger.
// Aggregates are created on a username's first occurrence, grown additively
// for every later row with the same key, and frozen once the fold finishes.
type UserAggregate struct {
	Username   string  `json:"username"`
	Entries    int     `json:"entries"`
	TotalValue float64 `json:"total_value"`
}

// UserIndex is the immutable snapshot produced by one full pass over the
// ledger. It maps exact trimmed usernames to their aggregates and carries
// the ledger-wide totals the KPI engine needs.
type UserIndex struct {
	// Users maps the exact trimmed username to its aggregate. Lookup is
	// exact-match only; no fuzzy or case-insensitive matching.
	Users map[string]UserAggregate `json:"users"`

	// TotalUsers is the number of distinct usernames, the empty key included.
	TotalUsers int `json:"total_users"`

	// TotalValue is the sum over all rows regardless of username.
	TotalValue float64 `json:"total_value"`

	// UsersWithValue counts aggregates whose total value is positive.
	UsersWithValue int `json:"users_with_value"`

	// RowsWithValue counts raw rows that carried a nonzero value.
	RowsWithValue int `json:"rows_with_value"`

	// TopUsers holds the aggregates ordered by total value descending,
	// ties broken by first-seen order, truncated to the top 10.
	TopUsers []UserAggregate `json:"top_users"`
}

// Lookup returns the aggregate for the exact trimmed username. Unknown
// usernames get a zero-valued placeholder; querying a user the ledger never
// saw is a normal outcome, not an error.
func (idx *UserIndex) Lookup(username string) UserAggregate {
	if agg, ok := idx.Users[username]; ok {
		return agg
	}
	return UserAggregate{Username: username}
}
