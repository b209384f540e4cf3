// Package session models one voice conversation. A Context is created per
// session and passed explicitly into the dispatcher, so concurrent sessions
// cannot leak state into one another through process-wide globals.
package session

import (
	"time"

	"github.com/google/uuid"
)

// Context carries the per-session conversational facts the dispatcher is
// allowed to remember between tool calls.
type Context struct {
	ID       string `json:"id"`
	Language string `json:"language,omitempty"`
	Mobile   string `json:"mobile,omitempty"`

	// LastTrackingCode is the most recent code issued in this session, so
	// "check my request" works without the caller re-dictating the code.
	LastTrackingCode string `json:"last_tracking_code,omitempty"`

	StartedAt time.Time `json:"started_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func NewContext(now time.Time) *Context {
	return &Context{
		ID:        uuid.NewString(),
		StartedAt: now.UTC(),
		UpdatedAt: now.UTC(),
	}
}

func (c *Context) Touch(now time.Time) {
	c.UpdatedAt = now.UTC()
}
