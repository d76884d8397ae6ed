// Package models contains domain entities and business models for the game backend
package models

import (
	"time"

	"github.com/google/uuid"
)

// Session binds a server-issued opaque token to an account. Sessions live
// only in process memory: a restart invalidates every token, which is the
// documented behavior for this service.
type Session struct {
	CorrelationID uuid.UUID `json:"correlation_id"` // Groups log lines for one login
	Token         string    `json:"-"`              // Never serialize token
	AccountID     uint      `json:"account_id"`
	CreatedAt     time.Time `json:"created_at"`
}
