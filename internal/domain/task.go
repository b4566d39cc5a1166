package domain

import "time"

// DateLayout is the wire and storage format for task due dates.
const DateLayout = "2006-01-02"

// Task represents a unit of work in the system.
type Task struct {
	ID           int64   `json:"id"`
	Title        string  `json:"title"`
	Description  string  `json:"description"`
	Date         string  `json:"date"`
	Status       Status  `json:"status"`
	AssigneeID   *int64  `json:"assignee_id,omitempty"`
	Assignee     *User   `json:"assignee,omitempty"`
	Dependencies []*Task `json:"dependencies,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// HasAssignee reports whether the task is assigned to a user.
func (t *Task) HasAssignee() bool {
	return t.AssigneeID != nil
}

// IsAssignedTo reports whether the task is assigned to the given user.
func (t *Task) IsAssignedTo(userID int64) bool {
	return t.AssigneeID != nil && *t.AssigneeID == userID
}
