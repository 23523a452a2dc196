package entity

import (
	"time"

	"github.com/google/uuid"
)

type ConnectionStatus string

const (
	// StatusNone is never stored; it is the answer when no row exists
	// for a pair.
	StatusNone     ConnectionStatus = "None"
	StatusPending  ConnectionStatus = "Pending"
	StatusAccepted ConnectionStatus = "Accepted"
	StatusRejected ConnectionStatus = "Rejected"
)

// Terminal reports whether a row can no longer transition.
func (s ConnectionStatus) Terminal() bool {
	return s == StatusAccepted || s == StatusRejected
}

// Connection is a directed edge in the ledger. SourceEmail is empty for
// guest-originated requests, which are identified by the captured
// SourceName/SourcePhone instead.
type Connection struct {
	ID          uuid.UUID        `db:"id" json:"id"`
	CreatedAt   time.Time        `db:"created_at" json:"created_at"`
	RespondedAt *time.Time       `db:"responded_at" json:"responded_at"`
	SourceEmail string           `db:"source_email" json:"source_email"`
	TargetEmail string           `db:"target_email" json:"target_email"`
	SourceName  string           `db:"source_name" json:"source_name"`
	SourcePhone string           `db:"source_phone" json:"source_phone"`
	Note        string           `db:"note" json:"note"`
	Status      ConnectionStatus `db:"status" json:"status"`
}
