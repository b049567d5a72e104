package reconcile

import (
	"strings"

	"affrecon/pkg/contracts/domain"
)

// InspectUser looks up one username in the index and sizes its contribution
// against the estimated commission. It returns nil when no ledger is loaded
// or the trimmed query is empty.
//
// Lookup is an exact match on the trimmed query. An unknown username is a
// normal outcome and yields a zero-valued aggregate, not an error.
//
// The commission rate comes from the loaded campaign when there is one,
// otherwise from the manual fallback. observed is coerced like any other
// cell; a value that coerces to exactly 0 is treated as "not supplied" and
// the variance is omitted. A legitimately zero observed commission is
// therefore indistinguishable from an empty field; the upstream exports
// conflate the two and this keeps that behavior.
func InspectUser(query string, users *domain.UserIndex, campaign *domain.CampaignMetrics, manualRate float64, observed any) *domain.UserInspectionResult {
	if users == nil {
		return nil
	}
	query = strings.TrimSpace(query)
	if query == "" {
		return nil
	}

	rate := manualRate
	if campaign != nil {
		rate = campaign.CommissionRate
	}

	agg := users.Lookup(query)
	result := &domain.UserInspectionResult{
		User:                agg,
		EstimatedCommission: agg.TotalValue * rate,
	}

	if observedValue := Coerce(observed); observedValue != 0 {
		variance := observedValue - result.EstimatedCommission
		result.ObservedCommission = &observedValue
		result.Variance = &variance
	}

	return result
}
