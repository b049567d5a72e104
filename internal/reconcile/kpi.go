package reconcile

import (
	"affrecon/pkg/contracts/domain"
)

// DeriveKPIs combines a campaign snapshot and a ledger snapshot into the
// derived ratio set. It returns nil unless both inputs are present, since
// the KPIs are only meaningful once the two files are reconciled.
//
// Pure and deterministic; every ratio applies the zero-denominator-yields-
// zero policy, so the result never contains NaN or Inf.
func DeriveKPIs(campaign *domain.CampaignMetrics, users *domain.UserIndex) *domain.KpiSet {
	if campaign == nil || users == nil {
		return nil
	}
	return &domain.KpiSet{
		Conversion:              ratio(float64(campaign.FirstTimeDepositors), float64(campaign.ReferredUsers)),
		ValuePerUser:            ratio(users.TotalValue, float64(users.TotalUsers)),
		ValuePerDepositor:       ratio(users.TotalValue, float64(campaign.FirstTimeDepositors)),
		CommissionPerUser:       ratio(campaign.OverallCommissionUSD, float64(users.TotalUsers)),
		CommissionPerDepositor:  ratio(campaign.OverallCommissionUSD, float64(campaign.FirstTimeDepositors)),
		EffectiveCommissionRate: ratio(campaign.OverallCommissionUSD, users.TotalValue),
	}
}

func ratio(numerator, denominator float64) float64 {
	if denominator == 0 {
		return 0
	}
	return numerator / denominator
}
