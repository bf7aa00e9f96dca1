package entities

import (
	"time"

	"github.com/volatiletech/null/v8"
	domainerrors "homeserve.backend/internal/domain/errors"
)

// AuditEntry is an immutable record of a status change. Status holds the
// entity's status at the time of the entry, not a delta. Reviewer is absent
// for system-generated entries.
type AuditEntry struct {
	Status   string      `json:"status"`
	Date     time.Time   `json:"date"`
	Notes    null.String `json:"notes,omitempty"`
	Reviewer null.String `json:"reviewer,omitempty"`
}

// AuditTrail is an append-only status history. Entries are strictly ordered
// by date; the most recent entry's status always equals the owning entity's
// current status.
type AuditTrail struct {
	entries []AuditEntry
}

// NewAuditTrail rehydrates a trail from already persisted entries. Entries
// are assumed to be in insertion order.
func NewAuditTrail(entries []AuditEntry) *AuditTrail {
	return &AuditTrail{entries: entries}
}

// Append adds an entry to the end of the trail. It fails when the entry's
// date precedes the last entry's date (clock-skew guard).
func (t *AuditTrail) Append(entry AuditEntry) error {
	if len(t.entries) > 0 && entry.Date.Before(t.entries[len(t.entries)-1].Date) {
		return domainerrors.ErrValidation
	}
	t.entries = append(t.entries, entry)
	return nil
}

// Latest returns the most recent entry
func (t *AuditTrail) Latest() (AuditEntry, error) {
	if len(t.entries) == 0 {
		return AuditEntry{}, domainerrors.ErrNotFound
	}
	return t.entries[len(t.entries)-1], nil
}

// Len returns the number of entries
func (t *AuditTrail) Len() int {
	return len(t.entries)
}

// Entries returns a copy of the trail in insertion order
func (t *AuditTrail) Entries() []AuditEntry {
	out := make([]AuditEntry, len(t.entries))
	copy(out, t.entries)
	return out
}
