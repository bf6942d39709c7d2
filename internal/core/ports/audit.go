package ports

import (
	"context"
	"time"
)

// Audit actions recorded for member lifecycle changes.
const (
	AuditActionRegistered   = "registered"
	AuditActionUpdated      = "updated"
	AuditActionRolesChanged = "roles_changed"
	AuditActionDeleted      = "deleted"
)

// AuditEvent is one entry in a member's activity trail.
type AuditEvent struct {
	MemberID   string
	Action     string
	OccurredAt time.Time
}

// AuditRecorder accepts audit events for asynchronous persistence. Record
// must not block the calling request beyond queue admission.
type AuditRecorder interface {
	Record(event AuditEvent)
}

// AuditStore persists audit events.
type AuditStore interface {
	Store(ctx context.Context, event AuditEvent) error
}
