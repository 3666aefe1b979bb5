package order

import "time"

// HistoryEntry records one status change of an order.
// Entries are append-only: the aggregate adds exactly one per status
// change (including creation) and never mutates or reorders them.
type HistoryEntry struct {
	status    Status
	timestamp time.Time
	note      string
}

// RestoreHistoryEntry reconstructs an entry from persistence.
func RestoreHistoryEntry(status Status, timestamp time.Time, note string) (HistoryEntry, error) {
	if err := status.Validate(); err != nil {
		return HistoryEntry{}, err
	}
	return HistoryEntry{status: status, timestamp: timestamp, note: note}, nil
}

// Status returns the status the order entered.
func (e HistoryEntry) Status() Status {
	return e.status
}

// Timestamp returns when the change was applied.
func (e HistoryEntry) Timestamp() time.Time {
	return e.timestamp
}

// Note returns the free-form annotation attached to the change.
func (e HistoryEntry) Note() string {
	return e.note
}
