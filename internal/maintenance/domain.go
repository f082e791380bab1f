package maintenance

import "time"

// AlertKind labels the two alert categories.
type AlertKind string

const (
	// AlertOverdueMaintenance fires when an asset's next maintenance date
	// has passed and the asset is not already in maintenance.
	AlertOverdueMaintenance AlertKind = "overdue-maintenance"
	// AlertWarrantyExpiring fires when a warranty ends within the lookahead
	// window.
	AlertWarrantyExpiring AlertKind = "warranty-expiring"
)

// Alert is an ephemeral notification derived from the current asset
// snapshot. Alerts are recomputed on every render and never persisted.
type Alert struct {
	Kind    AlertKind `json:"kind"`
	AssetID string    `json:"asset_id"`
	Name    string    `json:"name"`
	Due     time.Time `json:"due"`
}

// Default lookahead windows, in days.
const (
	DefaultDueWindowDays      = 7
	DefaultWarrantyWindowDays = 30
)
