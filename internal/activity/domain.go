package activity

// Entry is one immutable action record: who did what to which asset, when.
type Entry struct {
	LogID    int64  `json:"log_id"`
	AssetID  string `json:"asset_id"`
	Action   string `json:"action"`
	Username string `json:"user"`
	LoggedAt string `json:"timestamp"`
}

// Fixed action labels written by the mutating operations.
const (
	ActionAddedUpdated         = "Added/Updated"
	ActionTracked              = "Tracked"
	ActionMaintenanceRequested = "Maintenance Requested"
)

// TimestampLayout is the wall-clock format persisted with every entry.
const TimestampLayout = "2006-01-02 15:04:05"
