package reconcile

import (
	"strings"

	"affrecon/pkg/contracts/domain"
)

// CampaignRecord is the normalized-but-uncoerced form of the campaign
// summary row. Every field keeps the raw cell string so that downstream
// aggregation can still see formatting that carries meaning; in particular
// the commission-rate cell must keep its percent marker, because whether to
// divide by 100 is decided during aggregation, not here.
type CampaignRecord struct {
	CampaignName        string
	OfferCode           string
	CreatedAt           string
	CampaignHits        string
	ReferredUsers       string
	FirstTimeDepositors string
	TotalDeposits       string
	CommissionRate      string
	Commission          string
	AvailableCommission string
}

// Header aliases per canonical field, ordered newest export format first.
// The first present value wins. Matching is case- and whitespace-insensitive
// because the older exports capitalized headers inconsistently.
var (
	campaignNameAliases = []string{"campaign_name", "campaign name", "campaign", "name"}
	offerCodeAliases    = []string{"offer_code", "offer code", "offer", "code"}
	createdAtAliases    = []string{"created_at", "created at", "created", "date"}
	hitsAliases         = []string{"campaign_hits", "campaign hits", "hits", "clicks"}
	referredAliases     = []string{"referred_users", "referred users", "referrals", "signups"}
	depositorsAliases   = []string{"first_time_depositors", "first time depositors", "ftd", "new_depositors"}
	depositsAliases     = []string{"total_deposits", "total deposits", "deposits"}
	rateAliases         = []string{"commission_rate", "commission rate", "rate", "commission %"}
	commissionAliases   = []string{"overall_commission (usd)", "overall_commission", "overall commission (usd)", "commission_usd", "commission"}
	availableAliases    = []string{"overall_available_commission (usd)", "overall_available_commission", "overall available commission (usd)", "available_commission", "available commission"}

	rowCampaignAliases = []string{"campaign", "campaign_name", "campaign name"}
	usernameAliases    = []string{"username", "user_name", "user name", "user"}
	rowCreatedAliases  = []string{"created_at", "created at", "date", "timestamp"}
	valueAliases       = []string{"value", "value (usd)", "value_usd", "amount", "deposit_value"}
)

// NormalizeCampaign maps a raw campaign summary record onto the canonical
// field set by probing the alias list for each field and taking the first
// present value. Pure mapping, no coercion. A nil record yields nil.
func NormalizeCampaign(raw domain.RawRecord) *CampaignRecord {
	if raw == nil {
		return nil
	}
	fields := foldHeaders(raw)
	return &CampaignRecord{
		CampaignName:        probe(fields, campaignNameAliases),
		OfferCode:           probe(fields, offerCodeAliases),
		CreatedAt:           probe(fields, createdAtAliases),
		CampaignHits:        probe(fields, hitsAliases),
		ReferredUsers:       probe(fields, referredAliases),
		FirstTimeDepositors: probe(fields, depositorsAliases),
		TotalDeposits:       probe(fields, depositsAliases),
		CommissionRate:      probe(fields, rateAliases),
		Commission:          probe(fields, commissionAliases),
		AvailableCommission: probe(fields, availableAliases),
	}
}

// NormalizeLedgerRow maps one raw ledger record onto the canonical row
// shape. The username is trimmed; a row without one keeps the empty string
// and aggregates under the empty key rather than being dropped. The value
// cell is coerced here since no downstream decision depends on its raw form.
func NormalizeLedgerRow(raw domain.RawRecord) domain.UserLedgerRow {
	fields := foldHeaders(raw)
	return domain.UserLedgerRow{
		Username:  strings.TrimSpace(probe(fields, usernameAliases)),
		ValueUSD:  Coerce(probe(fields, valueAliases)),
		CreatedAt: probe(fields, rowCreatedAliases),
		Campaign:  probe(fields, rowCampaignAliases),
	}
}

// NormalizeLedger maps a full raw ledger into canonical rows, preserving
// input order.
func NormalizeLedger(raws []domain.RawRecord) []domain.UserLedgerRow {
	rows := make([]domain.UserLedgerRow, 0, len(raws))
	for _, raw := range raws {
		rows = append(rows, NormalizeLedgerRow(raw))
	}
	return rows
}

// foldHeaders lowercases and trims every header so alias probing is
// insensitive to the capitalization drift between export generations.
// On duplicate folded headers the first non-empty cell wins.
func foldHeaders(raw domain.RawRecord) map[string]string {
	fields := make(map[string]string, len(raw))
	for header, cell := range raw {
		key := strings.ToLower(strings.TrimSpace(header))
		if existing, ok := fields[key]; ok && existing != "" {
			continue
		}
		fields[key] = cell
	}
	return fields
}

// probe returns the first alias hit with a non-empty trimmed value.
func probe(fields map[string]string, aliases []string) string {
	for _, alias := range aliases {
		if cell, ok := fields[alias]; ok && strings.TrimSpace(cell) != "" {
			return cell
		}
	}
	return ""
}
