package reconcile

import (
	"strings"

	"affrecon/pkg/contracts/domain"
)

// AggregateCampaign derives the canonical CampaignMetrics from a normalized
// campaign record. A nil record (no campaign file supplied yet) yields nil.
// A malformed record never fails; its numeric fields coerce to zero.
//
// manualRate is the caller-supplied fallback commission rate, used only when
// the export carries no rate field at all.
func AggregateCampaign(rec *CampaignRecord, manualRate float64) *domain.CampaignMetrics {
	if rec == nil {
		return nil
	}
	return &domain.CampaignMetrics{
		CampaignName:                  strings.TrimSpace(rec.CampaignName),
		OfferCode:                     strings.TrimSpace(rec.OfferCode),
		CreatedAt:                     strings.TrimSpace(rec.CreatedAt),
		CampaignHits:                  int64(Coerce(rec.CampaignHits)),
		ReferredUsers:                 int64(Coerce(rec.ReferredUsers)),
		FirstTimeDepositors:           int64(Coerce(rec.FirstTimeDepositors)),
		TotalDeposits:                 int64(Coerce(rec.TotalDeposits)),
		CommissionRate:                resolveRate(rec.CommissionRate, manualRate),
		OverallCommissionUSD:          Coerce(rec.Commission),
		OverallAvailableCommissionUSD: Coerce(rec.AvailableCommission),
	}
}

// resolveRate turns the raw commission-rate cell into a fraction.
// A percent-marked cell is divided by 100 ("25%" -> 0.25), an unmarked cell
// is taken as already fractional (0.4 -> 0.4), and an absent cell falls back
// to the manual rate.
func resolveRate(raw string, manualRate float64) float64 {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return manualRate
	}
	if strings.Contains(raw, "%") {
		return Coerce(raw) / 100
	}
	return Coerce(raw)
}
