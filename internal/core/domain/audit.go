package domain

import "time"

// Audit actions recorded by the asynchronous audit trail.
const (
	AuditLogin        = "login"
	AuditLoginFailed  = "login_failed"
	AuditLogout       = "logout"
	AuditAccessDenied = "access_denied"
	AuditLend         = "lend"
	AuditReturn       = "return"
)

// AuditEntry is one persisted line of the activity trail.
type AuditEntry struct {
	Actor     string    `json:"actor"`
	Action    string    `json:"action"`
	Detail    string    `json:"detail,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}
