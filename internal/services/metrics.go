package services

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// CampaignLoads tracks campaign summary uploads processed.
var CampaignLoads = promauto.NewCounter(prometheus.CounterOpts{
	Namespace: "affrecon",
	Subsystem: "reconcile",
	Name:      "campaign_loads_total",
	Help:      "Total campaign summary reports loaded.",
})

// LedgerLoads tracks ledger uploads processed.
var LedgerLoads = promauto.NewCounter(prometheus.CounterOpts{
	Namespace: "affrecon",
	Subsystem: "reconcile",
	Name:      "ledger_loads_total",
	Help:      "Total value ledger reports loaded.",
})

// LedgerRowsFolded tracks ledger rows folded into user aggregates.
var LedgerRowsFolded = promauto.NewCounter(prometheus.CounterOpts{
	Namespace: "affrecon",
	Subsystem: "reconcile",
	Name:      "ledger_rows_total",
	Help:      "Total ledger rows folded into user aggregates.",
})

// UserInspections tracks per-user commission inspections served.
var UserInspections = promauto.NewCounter(prometheus.CounterOpts{
	Namespace: "affrecon",
	Subsystem: "reconcile",
	Name:      "user_inspections_total",
	Help:      "Total per-user commission inspections performed.",
})
