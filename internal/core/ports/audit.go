package ports

import (
	"context"
	"time"

	"github.com/Sakura-Echo/nwpu-mandarin/internal/core/domain"
)

// AuditEventInput is the DTO handed from services to the audit dispatcher.
type AuditEventInput struct {
	Actor     string
	Action    string
	Detail    string
	Timestamp time.Time
}

// AuditService persists one audit event.
type AuditService interface {
	Process(ctx context.Context, event AuditEventInput) error
}

// AuditRepository is the persistence contract for the audit trail.
type AuditRepository interface {
	Insert(ctx context.Context, entry *domain.AuditEntry) error
}

// AuditSink is the fire-and-forget producer side of the audit trail.
// Services call Enqueue on the request path; persistence happens elsewhere.
type AuditSink interface {
	Enqueue(event AuditEventInput)
}
