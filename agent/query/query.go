// Package query owns the consultation-request ledger: admission of new
// requests, tracking-code assignment, and the status lifecycle.
package query

import (
	"errors"
	"time"
)

var (
	ErrNotFound          = errors.New("query not found")
	ErrInvalidTransition = errors.New("invalid status transition")
	ErrCodeSpaceBusy     = errors.New("could not allocate a unique tracking code")
)

type Status string

const (
	StatusPending   Status = "pending"
	StatusAssigned  Status = "assigned"
	StatusCompleted Status = "completed"
)

var statusRank = map[Status]int{
	StatusPending:   0,
	StatusAssigned:  1,
	StatusCompleted: 2,
}

// Valid reports whether s is one of the known lifecycle statuses.
func (s Status) Valid() bool {
	_, ok := statusRank[s]
	return ok
}

// CanAdvanceTo reports whether moving to next is a legal lifecycle step.
// The lifecycle is strictly monotonic: pending -> assigned -> completed.
// Skipping forward is an advance and is allowed; regressing or re-applying
// the current status is not.
func (s Status) CanAdvanceTo(next Status) bool {
	from, ok := statusRank[s]
	if !ok {
		return false
	}
	to, ok := statusRank[next]
	if !ok {
		return false
	}
	return to > from
}

// ConsultationRequest is the unit of persisted work. TrackingCode and
// CreatedAt are immutable once assigned; Status only ever advances.
type ConsultationRequest struct {
	TrackingCode   string    `json:"tracking_code"`
	Name           string    `json:"name"`
	Mobile         string    `json:"mobile"`
	Location       string    `json:"location"`
	Description    string    `json:"description"`
	Status         Status    `json:"status"`
	CreatedAt      time.Time `json:"created_at"`
	ExpertAssigned string    `json:"expert_assigned,omitempty"`
	Notes          string    `json:"notes,omitempty"`
}

// NewQuery carries the raw, voice-derived fields of a creation request.
// Normalization and validation happen inside Store.Create.
type NewQuery struct {
	Name        string
	Mobile      string
	Location    string
	Description string
}
