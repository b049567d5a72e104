package services

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"golang.org/x/sync/errgroup"

	"affrecon/internal/config"
	"affrecon/internal/dataprocessing"
	apierrors "affrecon/internal/errors"
	"affrecon/internal/exporter"
	"affrecon/internal/reconcile"
	"affrecon/pkg/contracts/domain"
)

// Snapshot is a consistent view of everything derived from the loaded reports.
// KPIs is nil until both reports have been loaded.
type Snapshot struct {
	Campaign *domain.CampaignMetrics `json:"campaign,omitempty"`
	Users    *domain.UserIndex       `json:"users,omitempty"`
	KPIs     *domain.KpiSet          `json:"kpis,omitempty"`
}

// ReconciliationService reconciles the campaign summary against the user
// value ledger and serves the derived views.
type ReconciliationService struct {
	logger *slog.Logger

	mu             sync.RWMutex
	manualRate     float64
	campaignRecord *reconcile.CampaignRecord
	campaign       *domain.CampaignMetrics
	users          *domain.UserIndex
	kpis           *domain.KpiSet
}

// NewReconciliationService creates a new reconciliation service.
// The manual rate fallback comes from configuration.
func NewReconciliationService(cfg *config.Config, logger *slog.Logger) *ReconciliationService {
	if logger == nil {
		logger = slog.Default()
	}
	return &ReconciliationService{
		logger:     logger.With(slog.String("component", "reconciliation_service")),
		manualRate: cfg.Reconcile.ManualRate,
	}
}

// LoadCampaign normalizes and aggregates a parsed campaign summary report.
// Only the first record carries data; a report with no records clears the
// campaign side of the reconciliation.
func (s *ReconciliationService) LoadCampaign(ctx context.Context, records []domain.RawRecord) (*domain.CampaignMetrics, error) {
	var raw domain.RawRecord
	if len(records) > 0 {
		raw = records[0]
	}

	record := reconcile.NormalizeCampaign(raw)

	s.mu.Lock()
	s.campaignRecord = record
	s.campaign = reconcile.AggregateCampaign(record, s.manualRate)
	s.kpis = reconcile.DeriveKPIs(s.campaign, s.users)
	campaign := s.campaign
	s.mu.Unlock()

	CampaignLoads.Inc()

	if campaign != nil {
		s.logger.InfoContext(ctx, "campaign summary loaded",
			slog.String("campaign", campaign.CampaignName),
			slog.Int64("referred_users", campaign.ReferredUsers),
			slog.Float64("commission_rate", campaign.CommissionRate),
		)
	} else {
		s.logger.WarnContext(ctx, "campaign summary report was empty")
	}

	return campaign, nil
}

// LoadLedger normalizes and folds a parsed value ledger report.
func (s *ReconciliationService) LoadLedger(ctx context.Context, records []domain.RawRecord) (*domain.UserIndex, error) {
	rows := reconcile.NormalizeLedger(records)
	users := reconcile.AggregateLedger(rows)

	s.mu.Lock()
	s.users = users
	s.kpis = reconcile.DeriveKPIs(s.campaign, users)
	s.mu.Unlock()

	LedgerLoads.Inc()
	LedgerRowsFolded.Add(float64(len(rows)))

	s.logger.InfoContext(ctx, "value ledger loaded",
		slog.Int("rows", len(rows)),
		slog.Int("users", users.TotalUsers),
		slog.Float64("total_value", users.TotalValue),
	)

	return users, nil
}

// LoadFiles parses and loads a campaign summary and a value ledger from disk.
// Either path may be empty. The two files are parsed concurrently.
func (s *ReconciliationService) LoadFiles(ctx context.Context, campaignPath, ledgerPath string) error {
	var campaignRecords, ledgerRecords []domain.RawRecord

	g, gctx := errgroup.WithContext(ctx)
	if campaignPath != "" {
		g.Go(func() error {
			records, err := dataprocessing.ParseFile(campaignPath)
			if err != nil {
				return fmt.Errorf("campaign report %s: %w", campaignPath, err)
			}
			campaignRecords = records
			return nil
		})
	}
	if ledgerPath != "" {
		g.Go(func() error {
			records, err := dataprocessing.ParseFile(ledgerPath)
			if err != nil {
				return fmt.Errorf("ledger report %s: %w", ledgerPath, err)
			}
			ledgerRecords = records
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	if campaignPath != "" {
		if _, err := s.LoadCampaign(gctx, campaignRecords); err != nil {
			return err
		}
	}
	if ledgerPath != "" {
		if _, err := s.LoadLedger(gctx, ledgerRecords); err != nil {
			return err
		}
	}
	return nil
}

// Snapshot returns the current derived state.
func (s *ReconciliationService) Snapshot(ctx context.Context) *Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return &Snapshot{
		Campaign: s.campaign,
		Users:    s.users,
		KPIs:     s.kpis,
	}
}

// CampaignMetrics returns the current campaign snapshot or an error when no
// campaign has been loaded yet.
func (s *ReconciliationService) CampaignMetrics(ctx context.Context) (*domain.CampaignMetrics, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.campaign == nil {
		return nil, apierrors.ErrNoCampaignLoaded
	}
	return s.campaign, nil
}

// UserIndex returns the current ledger snapshot or an error when no ledger
// has been loaded yet.
func (s *ReconciliationService) UserIndex(ctx context.Context) (*domain.UserIndex, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.users == nil {
		return nil, apierrors.ErrNoLedgerLoaded
	}
	return s.users, nil
}

// KPIs returns the derived KPI set. Both reports must be loaded.
func (s *ReconciliationService) KPIs(ctx context.Context) (*domain.KpiSet, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.kpis == nil {
		if s.campaign == nil {
			return nil, apierrors.ErrNoCampaignLoaded
		}
		return nil, apierrors.ErrNoLedgerLoaded
	}
	return s.kpis, nil
}

// InspectUser estimates and optionally reconciles the commission for one
// username. An unknown username yields a zero-valued aggregate, not an error.
func (s *ReconciliationService) InspectUser(ctx context.Context, username string, observed any) (*domain.UserInspectionResult, error) {
	s.mu.RLock()
	users := s.users
	campaign := s.campaign
	manualRate := s.manualRate
	s.mu.RUnlock()

	if users == nil {
		return nil, apierrors.ErrNoLedgerLoaded
	}

	result := reconcile.InspectUser(username, users, campaign, manualRate, observed)
	if result == nil {
		return nil, apierrors.ErrValidation("username", "username must not be blank")
	}

	UserInspections.Inc()

	s.logger.InfoContext(ctx, "user inspected",
		slog.String("username", result.User.Username),
		slog.Float64("total_value", result.User.TotalValue),
		slog.Float64("estimated_commission", result.EstimatedCommission),
	)

	return result, nil
}

// HeadlineMetrics renders the ordered headline label/value sequence for
// everything loaded so far.
func (s *ReconciliationService) HeadlineMetrics(ctx context.Context) []exporter.Metric {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return exporter.Headline(s.campaign, s.users, s.kpis)
}

// SetManualRate changes the fallback commission rate and re-derives the
// campaign snapshot. The rate is a fraction in [0,1].
func (s *ReconciliationService) SetManualRate(rate float64) error {
	if rate < 0 || rate > 1 {
		return apierrors.ErrValidation("rate", "manual rate must be a fraction in [0,1]")
	}

	s.mu.Lock()
	s.manualRate = rate
	s.campaign = reconcile.AggregateCampaign(s.campaignRecord, rate)
	s.kpis = reconcile.DeriveKPIs(s.campaign, s.users)
	s.mu.Unlock()

	return nil
}

// ManualRate returns the current fallback commission rate.
func (s *ReconciliationService) ManualRate() float64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.manualRate
}
