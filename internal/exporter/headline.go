package exporter

import (
	"affrecon/pkg/contracts/domain"
)

// Metric is one (label, formatted value) pair of the headline sequence.
type Metric struct {
	Label string `json:"label"`
	Value string `json:"value"`
}

// Headline flattens the current snapshots into the ordered (label, value)
// sequence used by the export and the CLI table. Sections whose snapshot is
// absent are simply omitted; an empty reconciliation yields an empty
// sequence, not an error.
//
// Formatting follows the export contract: counts as plain integers,
// currency with fixed 2 decimals, rates as fixed-decimal percentages.
func Headline(campaign *domain.CampaignMetrics, users *domain.UserIndex, kpis *domain.KpiSet) []Metric {
	metrics := make([]Metric, 0, 20)

	if campaign != nil {
		if campaign.CampaignName != "" {
			metrics = append(metrics, Metric{"Campaign", campaign.CampaignName})
		}
		if campaign.OfferCode != "" {
			metrics = append(metrics, Metric{"Offer Code", campaign.OfferCode})
		}
		metrics = append(metrics,
			Metric{"Campaign Hits", formatInt(campaign.CampaignHits)},
			Metric{"Referred Users", formatInt(campaign.ReferredUsers)},
			Metric{"First-Time Depositors", formatInt(campaign.FirstTimeDepositors)},
			Metric{"Total Deposits", formatInt(campaign.TotalDeposits)},
			Metric{"Commission Rate", formatPercent(campaign.CommissionRate, 2)},
			Metric{"Overall Commission (USD)", formatUSD(campaign.OverallCommissionUSD)},
			Metric{"Available Commission (USD)", formatUSD(campaign.OverallAvailableCommissionUSD)},
		)
	}

	if users != nil {
		metrics = append(metrics,
			Metric{"Ledger Users", formatInt(int64(users.TotalUsers))},
			Metric{"Ledger Total Value (USD)", formatUSD(users.TotalValue)},
			Metric{"Users With Value", formatInt(int64(users.UsersWithValue))},
			Metric{"Rows With Value", formatInt(int64(users.RowsWithValue))},
		)
	}

	if kpis != nil {
		metrics = append(metrics,
			Metric{"Conversion", formatPercent(kpis.Conversion, 2)},
			Metric{"Value Per User (USD)", formatUSD(kpis.ValuePerUser)},
			Metric{"Value Per Depositor (USD)", formatUSD(kpis.ValuePerDepositor)},
			Metric{"Commission Per User (USD)", formatUSD(kpis.CommissionPerUser)},
			Metric{"Commission Per Depositor (USD)", formatUSD(kpis.CommissionPerDepositor)},
			Metric{"Effective Commission Rate", formatPercent(kpis.EffectiveCommissionRate, 3)},
		)
	}

	return metrics
}
