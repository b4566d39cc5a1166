package sqlite

import (
	"database/sql"
	"time"

	"github.com/taskdeck/taskdeck/internal/domain"
)

// TaskRepository handles task persistence operations.
type TaskRepository struct {
	db *sql.DB
}

// NewTaskRepository creates a new TaskRepository.
func NewTaskRepository(db *sql.DB) *TaskRepository {
	return &TaskRepository{db: db}
}

// TaskFilter narrows task listings. All set fields are combined with AND, so
// a non-manager's scope filter cannot be widened by the assignee query
// parameter.
type TaskFilter struct {
	Status     *domain.Status
	AssigneeID *int64
	ScopeID    *int64
	Date       string
	DateFrom   string
	DateTo     string
}

func (f TaskFilter) where() (string, []interface{}) {
	clause := " WHERE 1=1"
	var args []interface{}

	if f.Status != nil {
		clause += " AND status = ?"
		args = append(args, int(*f.Status))
	}
	if f.AssigneeID != nil {
		clause += " AND assignee_id = ?"
		args = append(args, *f.AssigneeID)
	}
	if f.ScopeID != nil {
		clause += " AND assignee_id = ?"
		args = append(args, *f.ScopeID)
	}
	if f.Date != "" {
		clause += " AND date = ?"
		args = append(args, f.Date)
	}
	if f.DateFrom != "" && f.DateTo != "" {
		clause += " AND date BETWEEN ? AND ?"
		args = append(args, f.DateFrom, f.DateTo)
	}

	return clause, args
}

const taskColumns = "id, title, description, assignee_id, date, status, created_at, updated_at"

// Create inserts a new task and fills in its generated ID.
func (r *TaskRepository) Create(task *domain.Task) error {
	result, err := r.db.Exec(`
		INSERT INTO tasks (title, description, assignee_id, date, status, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`,
		task.Title,
		task.Description,
		task.AssigneeID,
		task.Date,
		int(task.Status),
		task.CreatedAt.Format(time.RFC3339),
		task.UpdatedAt.Format(time.RFC3339),
	)
	if err != nil {
		return err
	}

	id, err := result.LastInsertId()
	if err != nil {
		return err
	}
	task.ID = id
	return nil
}

// GetByID retrieves a task by its ID.
func (r *TaskRepository) GetByID(id int64) (*domain.Task, error) {
	row := r.db.QueryRow("SELECT "+taskColumns+" FROM tasks WHERE id = ?", id)
	return scanTask(row)
}

// List retrieves tasks matching the filter, ordered by due date then ID,
// along with the total match count.
func (r *TaskRepository) List(filter TaskFilter, limit, offset int) ([]*domain.Task, int, error) {
	clause, args := filter.where()

	var total int
	if err := r.db.QueryRow("SELECT COUNT(*) FROM tasks"+clause, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	query := "SELECT " + taskColumns + " FROM tasks" + clause + " ORDER BY date ASC, id ASC LIMIT ? OFFSET ?"
	rows, err := r.db.Query(query, append(args, limit, offset)...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var tasks []*domain.Task
	for rows.Next() {
		task, err := scanTaskRows(rows)
		if err != nil {
			return nil, 0, err
		}
		tasks = append(tasks, task)
	}

	return tasks, total, rows.Err()
}

// Update updates a task's mutable fields.
func (r *TaskRepository) Update(task *domain.Task) error {
	result, err := r.db.Exec(`
		UPDATE tasks
		SET title = ?, description = ?, date = ?, status = ?, updated_at = ?
		WHERE id = ?
	`,
		task.Title,
		task.Description,
		task.Date,
		int(task.Status),
		task.UpdatedAt.Format(time.RFC3339),
		task.ID,
	)
	if err != nil {
		return err
	}
	return requireRow(result)
}

// Delete deletes a task by ID. Dependency edges cascade.
func (r *TaskRepository) Delete(id int64) error {
	result, err := r.db.Exec("DELETE FROM tasks WHERE id = ?", id)
	if err != nil {
		return err
	}
	return requireRow(result)
}

// AtomicAssign sets the assignee only when the task is currently unassigned.
// The precondition and the write are a single statement, so two concurrent
// assigns cannot both win. Returns the number of rows changed (0 or 1).
func (r *TaskRepository) AtomicAssign(taskID, userID int64, now time.Time) (int64, error) {
	result, err := r.db.Exec(`
		UPDATE tasks
		SET assignee_id = ?, updated_at = ?
		WHERE id = ? AND assignee_id IS NULL
	`, userID, now.Format(time.RFC3339), taskID)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}

// AtomicComplete marks the task completed only when every depends_on task is
// already completed. The dependency check and the status write are a single
// statement. Returns the number of rows changed (0 or 1).
func (r *TaskRepository) AtomicComplete(taskID int64, now time.Time) (int64, error) {
	result, err := r.db.Exec(`
		UPDATE tasks
		SET status = ?, updated_at = ?
		WHERE id = ? AND NOT EXISTS (
			SELECT 1
			FROM task_dependencies d
			JOIN tasks dep ON d.depends_on = dep.id
			WHERE d.task_id = tasks.id AND dep.status != ?
		)
	`, int(domain.StatusCompleted), now.Format(time.RFC3339), taskID, int(domain.StatusCompleted))
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}

// SetStatus sets the task status unconditionally. Used for transitions that
// carry no dependency gate (pending, cancelled).
func (r *TaskRepository) SetStatus(taskID int64, status domain.Status, now time.Time) error {
	result, err := r.db.Exec(
		"UPDATE tasks SET status = ?, updated_at = ? WHERE id = ?",
		int(status), now.Format(time.RFC3339), taskID,
	)
	if err != nil {
		return err
	}
	return requireRow(result)
}

// ListDependencies returns the tasks the given task depends on.
func (r *TaskRepository) ListDependencies(taskID int64) ([]*domain.Task, error) {
	rows, err := r.db.Query(`
		SELECT t.id, t.title, t.description, t.assignee_id, t.date, t.status, t.created_at, t.updated_at
		FROM task_dependencies d
		JOIN tasks t ON d.depends_on = t.id
		WHERE d.task_id = ?
		ORDER BY t.id ASC
	`, taskID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var tasks []*domain.Task
	for rows.Next() {
		task, err := scanTaskRows(rows)
		if err != nil {
			return nil, err
		}
		tasks = append(tasks, task)
	}

	return tasks, rows.Err()
}

// Exists checks whether a task with the given ID exists.
func (r *TaskRepository) Exists(id int64) (bool, error) {
	var count int
	if err := r.db.QueryRow("SELECT COUNT(*) FROM tasks WHERE id = ?", id).Scan(&count); err != nil {
		return false, err
	}
	return count > 0, nil
}

func requireRow(result sql.Result) error {
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return sql.ErrNoRows
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanTask(row *sql.Row) (*domain.Task, error) {
	return scanTaskFrom(row)
}

func scanTaskRows(rows *sql.Rows) (*domain.Task, error) {
	return scanTaskFrom(rows)
}

func scanTaskFrom(s rowScanner) (*domain.Task, error) {
	var task domain.Task
	var assigneeID sql.NullInt64
	var status int
	var createdAt, updatedAt string

	err := s.Scan(
		&task.ID,
		&task.Title,
		&task.Description,
		&assigneeID,
		&task.Date,
		&status,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	task.Status = domain.Status(status)
	if assigneeID.Valid {
		task.AssigneeID = &assigneeID.Int64
	}
	task.CreatedAt, _ = time.Parse(time.RFC3339, createdAt)
	task.UpdatedAt, _ = time.Parse(time.RFC3339, updatedAt)
	return &task, nil
}
