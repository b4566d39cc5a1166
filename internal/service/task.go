package service

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/taskdeck/taskdeck/internal/domain"
	"github.com/taskdeck/taskdeck/internal/store/sqlite"
)

// TaskService handles task CRUD. Status transitions and assignment live in
// WorkflowService.
type TaskService struct {
	taskRepo  *sqlite.TaskRepository
	userRepo  *sqlite.UserRepository
	auditRepo *sqlite.AuditRepository
}

// NewTaskService creates a new TaskService.
func NewTaskService(taskRepo *sqlite.TaskRepository, userRepo *sqlite.UserRepository, auditRepo *sqlite.AuditRepository) *TaskService {
	return &TaskService{taskRepo: taskRepo, userRepo: userRepo, auditRepo: auditRepo}
}

// CreateTaskInput contains the input for creating a task.
type CreateTaskInput struct {
	Title       string
	Description string
	Date        string
	Status      *domain.Status
	AssigneeID  *int64
}

// Create creates a new task. Status defaults to pending when omitted.
func (s *TaskService) Create(input CreateTaskInput, actor *domain.User) (*domain.Task, error) {
	if input.AssigneeID != nil {
		if _, err := s.userRepo.GetByID(*input.AssigneeID); err != nil {
			if err == sql.ErrNoRows {
				return nil, domain.NewValidationError(map[string][]string{
					"assignee_id": {"The selected assignee_id is invalid."},
				})
			}
			return nil, domain.NewInternalError(err)
		}
	}

	status := domain.StatusPending
	if input.Status != nil {
		status = *input.Status
	}

	now := time.Now().UTC()
	task := &domain.Task{
		Title:       input.Title,
		Description: input.Description,
		Date:        input.Date,
		Status:      status,
		AssigneeID:  input.AssigneeID,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := s.taskRepo.Create(task); err != nil {
		return nil, domain.NewInternalError(err)
	}

	s.auditRepo.Log(&domain.AuditEntry{
		TaskID:    task.ID,
		Action:    domain.AuditActionCreate,
		ChangedAt: now,
		ChangedBy: actor.ID,
	})

	return s.load(task)
}

// Get retrieves a task by ID with its assignee and dependencies loaded.
func (s *TaskService) Get(id int64) (*domain.Task, error) {
	task, err := s.taskRepo.GetByID(id)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, domain.NewTaskNotFoundError(id)
		}
		return nil, domain.NewInternalError(err)
	}
	return s.load(task)
}

// List retrieves tasks matching the filter with pagination.
func (s *TaskService) List(filter sqlite.TaskFilter, limit, offset int) ([]*domain.Task, int, error) {
	tasks, total, err := s.taskRepo.List(filter, limit, offset)
	if err != nil {
		return nil, 0, domain.NewInternalError(err)
	}
	for _, task := range tasks {
		if _, err := s.loadAssignee(task); err != nil {
			return nil, 0, err
		}
	}
	return tasks, total, nil
}

// UpdateTaskInput contains the input for updating a task's fields. Nil
// fields are left unchanged.
type UpdateTaskInput struct {
	Title       *string
	Description *string
	Date        *string
	Status      *domain.Status
}

// Update updates a task's fields.
func (s *TaskService) Update(id int64, input UpdateTaskInput, actor *domain.User) (*domain.Task, error) {
	task, err := s.taskRepo.GetByID(id)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, domain.NewTaskNotFoundError(id)
		}
		return nil, domain.NewInternalError(err)
	}

	now := time.Now().UTC()

	if input.Title != nil && *input.Title != task.Title {
		s.logFieldChange(id, actor.ID, "title", task.Title, *input.Title, now)
		task.Title = *input.Title
	}
	if input.Description != nil && *input.Description != task.Description {
		s.logFieldChange(id, actor.ID, "description", task.Description, *input.Description, now)
		task.Description = *input.Description
	}
	if input.Date != nil && *input.Date != task.Date {
		s.logFieldChange(id, actor.ID, "date", task.Date, *input.Date, now)
		task.Date = *input.Date
	}
	if input.Status != nil && *input.Status != task.Status {
		s.logFieldChange(id, actor.ID, "status", task.Status.Label(), input.Status.Label(), now)
		task.Status = *input.Status
	}

	task.UpdatedAt = now
	if err := s.taskRepo.Update(task); err != nil {
		return nil, domain.NewInternalError(err)
	}

	return s.load(task)
}

// Delete deletes a task. Dependency edges cascade with it.
func (s *TaskService) Delete(id int64, actor *domain.User) error {
	if _, err := s.taskRepo.GetByID(id); err != nil {
		if err == sql.ErrNoRows {
			return domain.NewTaskNotFoundError(id)
		}
		return domain.NewInternalError(err)
	}

	s.auditRepo.Log(&domain.AuditEntry{
		TaskID:    id,
		Action:    domain.AuditActionDelete,
		ChangedAt: time.Now().UTC(),
		ChangedBy: actor.ID,
	})

	if err := s.taskRepo.Delete(id); err != nil {
		return domain.NewInternalError(err)
	}
	return nil
}

// History returns the audit entries for a task, newest first.
func (s *TaskService) History(id int64) ([]*domain.AuditEntry, error) {
	if _, err := s.taskRepo.GetByID(id); err != nil {
		if err == sql.ErrNoRows {
			return nil, domain.NewTaskNotFoundError(id)
		}
		return nil, domain.NewInternalError(err)
	}

	entries, err := s.auditRepo.ListByTask(id)
	if err != nil {
		return nil, domain.NewInternalError(err)
	}
	return entries, nil
}

// load fills in the task's assignee and dependency list.
func (s *TaskService) load(task *domain.Task) (*domain.Task, error) {
	if _, err := s.loadAssignee(task); err != nil {
		return nil, err
	}

	deps, err := s.taskRepo.ListDependencies(task.ID)
	if err != nil {
		return nil, domain.NewInternalError(err)
	}
	task.Dependencies = deps
	return task, nil
}

func (s *TaskService) loadAssignee(task *domain.Task) (*domain.Task, error) {
	if task.AssigneeID == nil {
		return task, nil
	}
	assignee, err := s.userRepo.GetByID(*task.AssigneeID)
	if err != nil {
		if err == sql.ErrNoRows {
			return task, nil
		}
		return nil, domain.NewInternalError(err)
	}
	task.Assignee = assignee
	return task, nil
}

func (s *TaskService) logFieldChange(taskID, actorID int64, field string, oldValue, newValue interface{}, now time.Time) {
	oldStr := fmt.Sprintf("%v", oldValue)
	newStr := fmt.Sprintf("%v", newValue)
	s.auditRepo.Log(&domain.AuditEntry{
		TaskID:    taskID,
		Action:    domain.AuditActionUpdate,
		Field:     &field,
		OldValue:  &oldStr,
		NewValue:  &newStr,
		ChangedAt: now,
		ChangedBy: actorID,
	})
}
