package asset

import (
	"strings"
	"time"
)

// Status enumerates asset lifecycle states.
type Status string

const (
	StatusActive      Status = "Active"
	StatusMaintenance Status = "Maintenance"
	StatusRetired     Status = "Retired"
)

// NormalizeStatus reduces a presentation label to the bare status word: the
// first whitespace-separated token, with any decorative suffix discarded.
func NormalizeStatus(label string) Status {
	fields := strings.Fields(label)
	if len(fields) == 0 {
		return ""
	}
	return Status(fields[0])
}

// Valid reports whether s is one of the three enumerated states.
func (s Status) Valid() bool {
	switch s {
	case StatusActive, StatusMaintenance, StatusRetired:
		return true
	}
	return false
}

// Asset is one tracked record. The id is caller-supplied and immutable once
// chosen as the record key; date fields are nil when absent.
type Asset struct {
	ID              string     `json:"asset_id"`
	Name            string     `json:"name"`
	Location        string     `json:"location"`
	Status          Status     `json:"status"`
	LastMaintenance *time.Time `json:"last_maintenance"`
	NextMaintenance *time.Time `json:"next_maintenance"`
	WarrantyExpiry  *time.Time `json:"warranty_expiry"`
	Cost            float64    `json:"cost"`
}

// UpsertInput describes a full-replace write keyed by ID. Resubmitting an id
// replaces the whole row; optional fields left empty become null.
type UpsertInput struct {
	ID              string `validate:"required"`
	Name            string
	Location        string
	Status          string `validate:"required"`
	LastMaintenance *time.Time
	NextMaintenance *time.Time
	WarrantyExpiry  *time.Time
	Cost            float64 `validate:"gte=0"`
}
