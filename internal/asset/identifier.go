package asset

import (
	"fmt"
	"strings"
	"time"
)

// CurrencySymbol prefixes every rendered cost.
const CurrencySymbol = "₹"

// absentDate marks a null date field in the identifier payload.
const absentDate = "N/A"

// IdentifierPayload builds the deterministic multi-line text consumed by the
// identifier encoder. Field order and formatting are the externally
// observable contract; scanners depend on it, so do not reorder lines.
func IdentifierPayload(a Asset) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Asset ID: %s\n", a.ID)
	fmt.Fprintf(&b, "Name: %s\n", a.Name)
	fmt.Fprintf(&b, "Location: %s\n", a.Location)
	fmt.Fprintf(&b, "Status: %s\n", a.Status)
	fmt.Fprintf(&b, "Last Maintenance: %s\n", formatDate(a.LastMaintenance))
	fmt.Fprintf(&b, "Next Maintenance: %s\n", formatDate(a.NextMaintenance))
	fmt.Fprintf(&b, "Warranty Expiry: %s\n", formatDate(a.WarrantyExpiry))
	fmt.Fprintf(&b, "Cost: %s%.2f", CurrencySymbol, a.Cost)
	return b.String()
}

func formatDate(t *time.Time) string {
	if t == nil {
		return absentDate
	}
	return t.Format("2006-01-02")
}
