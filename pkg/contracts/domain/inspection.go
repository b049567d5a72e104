package domain

// UserInspectionResult is the on-demand view of one user's contribution
// against the estimated commission for the loaded campaign.
type UserInspectionResult struct {
	// User is the matching aggregate, or a zero-valued placeholder carrying
	// the queried username when the ledger never saw it.
	User UserAggregate `json:"user"`

	// EstimatedCommission is the user's total value multiplied by the
	// resolved commission rate (campaign rate, or the manual fallback when
	// no campaign is loaded).
	EstimatedCommission float64 `json:"estimated_commission"`

	// ObservedCommission is the externally observed figure the caller
	// supplied, if any. A supplied value that coerces to exactly 0 is
	// indistinguishable from "not entered" and is treated as absent; the
	// upstream exports conflate the two and that ambiguity is carried
	// forward deliberately.
	ObservedCommission *float64 `json:"observed_commission,omitempty"`

	// Variance is observed minus estimated, present only when an observed
	// value was supplied. It surfaces upstream adjustments such as bonuses,
	// fees, or promotions.
	Variance *float64 `json:"variance,omitempty"`
}
