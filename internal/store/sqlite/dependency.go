package sqlite

import (
	"database/sql"

	"github.com/taskdeck/taskdeck/internal/domain"
)

// DependencyRepository handles dependency-edge persistence operations.
type DependencyRepository struct {
	db *sql.DB
}

// NewDependencyRepository creates a new DependencyRepository.
func NewDependencyRepository(db *sql.DB) *DependencyRepository {
	return &DependencyRepository{db: db}
}

// AddAll inserts the given edges in one transaction.
func (r *DependencyRepository) AddAll(taskID int64, dependsOn []int64) error {
	tx, err := r.db.Begin()
	if err != nil {
		return err
	}

	for _, depID := range dependsOn {
		if _, err := tx.Exec(
			"INSERT INTO task_dependencies (task_id, depends_on) VALUES (?, ?)",
			taskID, depID,
		); err != nil {
			tx.Rollback()
			return err
		}
	}

	return tx.Commit()
}

// ListByTask returns the edges owned by the given task.
func (r *DependencyRepository) ListByTask(taskID int64) ([]domain.Dependency, error) {
	rows, err := r.db.Query(
		"SELECT task_id, depends_on FROM task_dependencies WHERE task_id = ?",
		taskID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var deps []domain.Dependency
	for rows.Next() {
		var dep domain.Dependency
		if err := rows.Scan(&dep.TaskID, &dep.DependsOn); err != nil {
			return nil, err
		}
		deps = append(deps, dep)
	}

	return deps, rows.Err()
}

// Exists checks if an edge already exists.
func (r *DependencyRepository) Exists(taskID, dependsOn int64) (bool, error) {
	var count int
	err := r.db.QueryRow(
		"SELECT COUNT(*) FROM task_dependencies WHERE task_id = ? AND depends_on = ?",
		taskID, dependsOn,
	).Scan(&count)
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// WouldCreateCycle checks whether adding taskID -> dependsOn would create a
// cycle, by BFS over existing edges: if taskID is reachable from dependsOn,
// the new edge closes a loop.
func (r *DependencyRepository) WouldCreateCycle(taskID, dependsOn int64) (bool, error) {
	visited := map[int64]bool{dependsOn: true}
	queue := []int64{dependsOn}

	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]

		if current == taskID {
			return true, nil
		}

		edges, err := r.ListByTask(current)
		if err != nil {
			return false, err
		}
		for _, edge := range edges {
			if !visited[edge.DependsOn] {
				visited[edge.DependsOn] = true
				queue = append(queue, edge.DependsOn)
			}
		}
	}

	return false, nil
}
