package domain

// CampaignMetrics is the canonical form of the single-row campaign summary
// export. It is derived exactly once per upload and treated as an immutable
// snapshot by every consumer (KPI derivation, user inspection, export).
//
// All numeric fields are finite: coercion failures during aggregation yield
// zero, never NaN or Inf. Descriptive fields keep whatever string the export
// carried; they are display-only.
type CampaignMetrics struct {
	// CampaignName is the display name of the campaign, if the export had one.
	CampaignName string `json:"campaign_name,omitempty"`

	// OfferCode is the affiliate offer identifier, if present.
	OfferCode string `json:"offer_code,omitempty"`

	// CreatedAt is the campaign creation date as exported. Kept verbatim
	// because the historical formats disagree on date layout.
	CreatedAt string `json:"created_at,omitempty"`

	// CampaignHits is the number of tracked link hits.
	CampaignHits int64 `json:"campaign_hits"`

	// ReferredUsers is the number of users attributed to the campaign.
	ReferredUsers int64 `json:"referred_users"`

	// FirstTimeDepositors is the number of referred users who went on to
	// make their first deposit.
	FirstTimeDepositors int64 `json:"first_time_depositors"`

	// TotalDeposits is the number of deposit events across all referred users.
	TotalDeposits int64 `json:"total_deposits"`

	// CommissionRate is the nominal commission rate as a fraction in [0,1].
	// Resolution order: a percent-marked field is divided by 100, an unmarked
	// field is used as-is, an absent field falls back to the manual rate the
	// caller supplied.
	CommissionRate float64 `json:"commission_rate"`

	// OverallCommissionUSD is the commission the network reports as earned.
	OverallCommissionUSD float64 `json:"overall_commission_usd"`

	// OverallAvailableCommissionUSD is the portion reported as withdrawable.
	OverallAvailableCommissionUSD float64 `json:"overall_available_commission_usd"`
}
