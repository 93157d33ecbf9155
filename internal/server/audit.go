package server

import (
	"time"

	"github.com/google/uuid"
)

const DefaultAuditSize = 100

type Outcome string

const (
	OutcomeOk      Outcome = "ok"
	OutcomeRefused Outcome = "refused"
)

// AuditEntry records one processed request.
type AuditEntry struct {
	At      time.Time `json:"at"`
	Client  uuid.UUID `json:"client"`
	Request string    `json:"request"`
	Outcome Outcome   `json:"outcome"`
	Reason  string    `json:"reason,omitempty"`
}

// auditLog keeps the most recent entries up to a fixed capacity.
type auditLog struct {
	entries []AuditEntry
	size    int
}

func newAuditLog(size int) auditLog {
	if size <= 0 {
		size = DefaultAuditSize
	}
	return auditLog{size: size}
}

func (l *auditLog) add(e AuditEntry) {
	if len(l.entries) == l.size {
		copy(l.entries, l.entries[1:])
		l.entries = l.entries[:l.size-1]
	}
	l.entries = append(l.entries, e)
}

func (l *auditLog) recent() []AuditEntry {
	out := make([]AuditEntry, len(l.entries))
	copy(out, l.entries)
	return out
}
