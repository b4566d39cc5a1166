package domain

import "time"

// AuditEntry records a single mutation of a task for the append-only history
// log. ChangedBy is the acting user's ID.
type AuditEntry struct {
	ID        int64     `json:"id"`
	TaskID    int64     `json:"task_id"`
	Action    string    `json:"action"`
	Field     *string   `json:"field,omitempty"`
	OldValue  *string   `json:"old_value,omitempty"`
	NewValue  *string   `json:"new_value,omitempty"`
	ChangedAt time.Time `json:"changed_at"`
	ChangedBy int64     `json:"changed_by"`
}

// Audit actions.
const (
	AuditActionCreate        = "create"
	AuditActionUpdate        = "update"
	AuditActionDelete        = "delete"
	AuditActionAssign        = "assign"
	AuditActionStatus        = "status"
	AuditActionAddDependency = "add_dependency"
)
