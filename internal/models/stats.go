package models

// DefaultDestination is the catch-all destination name.
const DefaultDestination = "default"

// SyncStats summarizes one sync run. It is never persisted by the executor.
type SyncStats struct {
	Total            int            `json:"total"`
	Synced           int            `json:"synced"`
	Skipped          int            `json:"skipped"`
	Failed           int            `json:"failed"`
	CrossDestination int            `json:"cross_destination"`
	ByDestination    map[string]int `json:"by_destination"`
}

// NewSyncStats returns zeroed stats for total tasks.
func NewSyncStats(total int) SyncStats {
	return SyncStats{
		Total:         total,
		ByDestination: make(map[string]int),
	}
}
