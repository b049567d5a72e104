package reconcile

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"affrecon/pkg/contracts/domain"
)

func TestNormalizeCampaign(t *testing.T) {
	t.Run("nil record yields nil", func(t *testing.T) {
		assert.Nil(t, NormalizeCampaign(nil))
	})

	t.Run("modern export headers", func(t *testing.T) {
		raw := domain.RawRecord{
			"campaign_name":                      "Spring Promo",
			"offer_code":                         "SP-2024",
			"created_at":                         "2024-03-01",
			"campaign_hits":                      "15000",
			"referred_users":                     "100",
			"first_time_depositors":              "20",
			"total_deposits":                     "45",
			"commission_rate":                    "30%",
			"overall_commission (usd)":           "500",
			"overall_available_commission (usd)": "410",
		}

		rec := NormalizeCampaign(raw)
		require.NotNil(t, rec)
		assert.Equal(t, "Spring Promo", rec.CampaignName)
		assert.Equal(t, "SP-2024", rec.OfferCode)
		assert.Equal(t, "2024-03-01", rec.CreatedAt)
		assert.Equal(t, "15000", rec.CampaignHits)
		assert.Equal(t, "100", rec.ReferredUsers)
		assert.Equal(t, "20", rec.FirstTimeDepositors)
		assert.Equal(t, "45", rec.TotalDeposits)
		assert.Equal(t, "500", rec.Commission)
		assert.Equal(t, "410", rec.AvailableCommission)
	})

	t.Run("legacy export headers resolve through aliases", func(t *testing.T) {
		raw := domain.RawRecord{
			"Campaign Name":         "Legacy",
			"Offer":                 "LG-1",
			"Date":                  "2021-06-15",
			"Clicks":                "900",
			"Signups":               "40",
			"FTD":                   "8",
			"Deposits":              "12",
			"Commission Rate":       "25%",
			"Commission":            "$120.00",
			"Available Commission":  "$75.50",
		}

		rec := NormalizeCampaign(raw)
		require.NotNil(t, rec)
		assert.Equal(t, "Legacy", rec.CampaignName)
		assert.Equal(t, "LG-1", rec.OfferCode)
		assert.Equal(t, "900", rec.CampaignHits)
		assert.Equal(t, "40", rec.ReferredUsers)
		assert.Equal(t, "8", rec.FirstTimeDepositors)
		assert.Equal(t, "$120.00", rec.Commission)
		assert.Equal(t, "$75.50", rec.AvailableCommission)
	})

	t.Run("percent marker preserved for downstream resolution", func(t *testing.T) {
		rec := NormalizeCampaign(domain.RawRecord{"commission_rate": "30%"})
		require.NotNil(t, rec)
		assert.Equal(t, "30%", rec.CommissionRate, "normalizer must not strip the percent marker")
	})

	t.Run("missing fields stay empty", func(t *testing.T) {
		rec := NormalizeCampaign(domain.RawRecord{"campaign_name": "Sparse"})
		require.NotNil(t, rec)
		assert.Equal(t, "Sparse", rec.CampaignName)
		assert.Empty(t, rec.CommissionRate)
		assert.Empty(t, rec.ReferredUsers)
	})
}

func TestNormalizeLedgerRow(t *testing.T) {
	tests := []struct {
		name     string
		raw      domain.RawRecord
		expected domain.UserLedgerRow
	}{
		{
			name: "modern headers",
			raw: domain.RawRecord{
				"username":   "alice",
				"value":      "100",
				"created_at": "2024-03-02",
				"campaign":   "Spring Promo",
			},
			expected: domain.UserLedgerRow{
				Username:  "alice",
				ValueUSD:  100,
				CreatedAt: "2024-03-02",
				Campaign:  "Spring Promo",
			},
		},
		{
			name: "legacy headers with formatted value",
			raw: domain.RawRecord{
				"User":      "bob",
				"Amount":    "$1,250.75",
				"Timestamp": "2021-01-09 14:02",
			},
			expected: domain.UserLedgerRow{
				Username:  "bob",
				ValueUSD:  1250.75,
				CreatedAt: "2021-01-09 14:02",
			},
		},
		{
			name: "username trimmed",
			raw: domain.RawRecord{
				"username": "  carol  ",
				"value":    "5",
			},
			expected: domain.UserLedgerRow{Username: "carol", ValueUSD: 5},
		},
		{
			name: "absent username keeps empty key",
			raw: domain.RawRecord{
				"value": "30",
			},
			expected: domain.UserLedgerRow{Username: "", ValueUSD: 30},
		},
		{
			name: "malformed value coerces to zero",
			raw: domain.RawRecord{
				"username": "dave",
				"value":    "oops",
			},
			expected: domain.UserLedgerRow{Username: "dave", ValueUSD: 0},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, NormalizeLedgerRow(tt.raw))
		})
	}
}

func TestNormalizeLedgerPreservesOrder(t *testing.T) {
	raws := []domain.RawRecord{
		{"username": "a", "value": "1"},
		{"username": "b", "value": "2"},
		{"username": "a", "value": "3"},
	}

	rows := NormalizeLedger(raws)
	require.Len(t, rows, 3)
	assert.Equal(t, "a", rows[0].Username)
	assert.Equal(t, "b", rows[1].Username)
	assert.Equal(t, float64(3), rows[2].ValueUSD)
}
