package sqlite

import (
	"database/sql"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/taskdeck/taskdeck/internal/domain"
)

// AuditRepository handles the append-only audit log.
type AuditRepository struct {
	db *sql.DB
}

// NewAuditRepository creates a new AuditRepository.
func NewAuditRepository(db *sql.DB) *AuditRepository {
	return &AuditRepository{db: db}
}

// Log appends an audit entry. Audit failures never abort the mutation they
// describe; they are logged and dropped.
func (r *AuditRepository) Log(entry *domain.AuditEntry) {
	_, err := r.db.Exec(`
		INSERT INTO audit_log (task_id, action, field, old_value, new_value, changed_at, changed_by)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`,
		entry.TaskID,
		entry.Action,
		entry.Field,
		entry.OldValue,
		entry.NewValue,
		entry.ChangedAt.Format(time.RFC3339),
		entry.ChangedBy,
	)
	if err != nil {
		logrus.WithError(err).WithField("task_id", entry.TaskID).Warn("failed to write audit entry")
	}
}

// ListByTask returns the audit entries for a task, newest first.
func (r *AuditRepository) ListByTask(taskID int64) ([]*domain.AuditEntry, error) {
	rows, err := r.db.Query(`
		SELECT id, task_id, action, field, old_value, new_value, changed_at, changed_by
		FROM audit_log WHERE task_id = ?
		ORDER BY id DESC
	`, taskID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []*domain.AuditEntry
	for rows.Next() {
		var entry domain.AuditEntry
		var field, oldValue, newValue sql.NullString
		var changedAt string

		err := rows.Scan(
			&entry.ID,
			&entry.TaskID,
			&entry.Action,
			&field,
			&oldValue,
			&newValue,
			&changedAt,
			&entry.ChangedBy,
		)
		if err != nil {
			return nil, err
		}

		if field.Valid {
			entry.Field = &field.String
		}
		if oldValue.Valid {
			entry.OldValue = &oldValue.String
		}
		if newValue.Valid {
			entry.NewValue = &newValue.String
		}
		entry.ChangedAt, _ = time.Parse(time.RFC3339, changedAt)
		entries = append(entries, &entry)
	}

	return entries, rows.Err()
}
