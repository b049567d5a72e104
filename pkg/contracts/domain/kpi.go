package domain

// KpiSet holds the cross-file ratios derived from a CampaignMetrics snapshot
// and a UserIndex snapshot together. Every ratio follows the same policy:
// a zero denominator yields 0, never NaN or Inf.
type KpiSet struct {
	// Conversion is firstTimeDepositors / referredUsers.
	Conversion float64 `json:"conversion"`

	// ValuePerUser is ledger totalValue / distinct users.
	ValuePerUser float64 `json:"value_per_user"`

	// ValuePerDepositor is ledger totalValue / firstTimeDepositors.
	ValuePerDepositor float64 `json:"value_per_depositor"`

	// CommissionPerUser is overallCommissionUSD / distinct users.
	CommissionPerUser float64 `json:"commission_per_user"`

	// CommissionPerDepositor is overallCommissionUSD / firstTimeDepositors.
	CommissionPerDepositor float64 `json:"commission_per_depositor"`

	// EffectiveCommissionRate is overallCommissionUSD / ledger totalValue,
	// a realized-rate cross-check against the nominal commission rate.
	EffectiveCommissionRate float64 `json:"effective_commission_rate"`
}
