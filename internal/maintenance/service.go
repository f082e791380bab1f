package maintenance

import (
	"context"
	"time"

	"github.com/assetdesk/assetdesk/internal/activity"
	"github.com/assetdesk/assetdesk/internal/asset"
	"github.com/assetdesk/assetdesk/internal/rbac"
	"github.com/assetdesk/assetdesk/internal/shared"
)

// AssetSource exposes the asset snapshot reads the scheduler needs.
type AssetSource interface {
	List(ctx context.Context) ([]asset.Asset, error)
}

// StatusWriter flips an asset's status, reporting affected rows.
type StatusWriter interface {
	SetStatus(ctx context.Context, id string, status asset.Status) (int64, error)
}

// Recorder abstracts the activity log write side.
type Recorder interface {
	Append(ctx context.Context, assetID, action, username string) error
}

// Invalidator lets mutations bump downstream caches.
type Invalidator interface {
	Bump(ctx context.Context) error
}

// Config carries the lookahead windows.
type Config struct {
	DueWindowDays      int
	WarrantyWindowDays int
}

// Service computes due/overdue maintenance and warranty expiry, and lets an
// authorized session flag an asset into maintenance.
type Service struct {
	assets AssetSource
	status StatusWriter
	log    Recorder
	cache  Invalidator
	cfg    Config
}

// NewService builds Service. Zero window values fall back to the defaults
// (7 days maintenance, 30 days warranty).
func NewService(assets AssetSource, status StatusWriter, log Recorder, cache Invalidator, cfg Config) *Service {
	if cfg.DueWindowDays <= 0 {
		cfg.DueWindowDays = DefaultDueWindowDays
	}
	if cfg.WarrantyWindowDays <= 0 {
		cfg.WarrantyWindowDays = DefaultWarrantyWindowDays
	}
	return &Service{assets: assets, status: status, log: log, cache: cache, cfg: cfg}
}

// DueSoon returns every asset whose next maintenance date falls within the
// due window, inclusive of the boundary day, regardless of status.
func (s *Service) DueSoon(ctx context.Context, today time.Time) ([]asset.Asset, error) {
	all, err := s.assets.List(ctx)
	if err != nil {
		return nil, err
	}
	cutoff := dateOnly(today).AddDate(0, 0, s.cfg.DueWindowDays)
	var due []asset.Asset
	for _, a := range all {
		if a.NextMaintenance != nil && !dateOnly(*a.NextMaintenance).After(cutoff) {
			due = append(due, a)
		}
	}
	return due, nil
}

// RequestMaintenance unconditionally sets the asset's status to Maintenance
// and records the request. Requires request_maintenance or manage_assets.
// An unknown id is a silent no-op row update, not an error.
func (s *Service) RequestMaintenance(ctx context.Context, principal shared.Principal, assetID string) error {
	caps := rbac.Capabilities(principal.Role)
	if !rbac.HasAny(caps, rbac.CapRequestMaintenance, rbac.CapManageAssets) {
		return shared.ErrPermissionDenied
	}
	if _, err := s.status.SetStatus(ctx, assetID, asset.StatusMaintenance); err != nil {
		return err
	}
	if err := s.log.Append(ctx, assetID, activity.ActionMaintenanceRequested, principal.Username); err != nil {
		return err
	}
	if s.cache != nil {
		_ = s.cache.Bump(ctx)
	}
	return nil
}

// ComputeAlerts derives the alert set for today. An asset may emit zero, one
// or both alerts: overdue maintenance when next maintenance is due and the
// asset is not already in maintenance, and warranty expiry within the
// warranty window.
func (s *Service) ComputeAlerts(ctx context.Context, today time.Time) ([]Alert, error) {
	all, err := s.assets.List(ctx)
	if err != nil {
		return nil, err
	}
	day := dateOnly(today)
	warrantyCutoff := day.AddDate(0, 0, s.cfg.WarrantyWindowDays)

	var alerts []Alert
	for _, a := range all {
		if a.NextMaintenance != nil && !dateOnly(*a.NextMaintenance).After(day) && a.Status != asset.StatusMaintenance {
			alerts = append(alerts, Alert{
				Kind:    AlertOverdueMaintenance,
				AssetID: a.ID,
				Name:    a.Name,
				Due:     dateOnly(*a.NextMaintenance),
			})
		}
		if a.WarrantyExpiry != nil && !dateOnly(*a.WarrantyExpiry).After(warrantyCutoff) {
			alerts = append(alerts, Alert{
				Kind:    AlertWarrantyExpiring,
				AssetID: a.ID,
				Name:    a.Name,
				Due:     dateOnly(*a.WarrantyExpiry),
			})
		}
	}
	return alerts, nil
}

func dateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
