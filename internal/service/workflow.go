package service

import (
	"database/sql"
	"fmt"
	"strconv"
	"time"

	"github.com/taskdeck/taskdeck/internal/domain"
	"github.com/taskdeck/taskdeck/internal/store/sqlite"
)

// WorkflowService is the only mutator of a task's assignment and status. Its
// invariants hold regardless of caller: a task is assigned at most once, and
// a task with dependency edges cannot complete before every depended-on task
// is completed. Both checks ride on single conditional UPDATEs so concurrent
// requests cannot interleave between check and write.
type WorkflowService struct {
	taskRepo  *sqlite.TaskRepository
	userRepo  *sqlite.UserRepository
	depRepo   *sqlite.DependencyRepository
	auditRepo *sqlite.AuditRepository
}

// NewWorkflowService creates a new WorkflowService.
func NewWorkflowService(taskRepo *sqlite.TaskRepository, userRepo *sqlite.UserRepository, depRepo *sqlite.DependencyRepository, auditRepo *sqlite.AuditRepository) *WorkflowService {
	return &WorkflowService{
		taskRepo:  taskRepo,
		userRepo:  userRepo,
		depRepo:   depRepo,
		auditRepo: auditRepo,
	}
}

// Assign sets the task's assignee. Fails when the task already has one; the
// existing assignee is never overwritten.
func (s *WorkflowService) Assign(taskID, userID int64, actor *domain.User) (*domain.Task, error) {
	if _, err := s.userRepo.GetByID(userID); err != nil {
		if err == sql.ErrNoRows {
			return nil, domain.NewValidationError(map[string][]string{
				"user_id": {"The selected user_id is invalid."},
			})
		}
		return nil, domain.NewInternalError(err)
	}

	now := time.Now().UTC()
	affected, err := s.taskRepo.AtomicAssign(taskID, userID, now)
	if err != nil {
		return nil, domain.NewInternalError(err)
	}

	if affected == 0 {
		// Either the task does not exist or it is already assigned.
		task, err := s.taskRepo.GetByID(taskID)
		if err != nil {
			if err == sql.ErrNoRows {
				return nil, domain.NewTaskNotFoundError(taskID)
			}
			return nil, domain.NewInternalError(err)
		}
		if task.HasAssignee() {
			return nil, domain.NewAlreadyAssignedError(taskID)
		}
		return nil, domain.NewInternalError(fmt.Errorf("assign of task %d changed no rows", taskID))
	}

	newValue := strconv.FormatInt(userID, 10)
	field := "assignee_id"
	s.auditRepo.Log(&domain.AuditEntry{
		TaskID:    taskID,
		Action:    domain.AuditActionAssign,
		Field:     &field,
		NewValue:  &newValue,
		ChangedAt: now,
		ChangedBy: actor.ID,
	})

	return s.reload(taskID)
}

// AddDependencies adds directed edges taskID -> each given ID. Re-adding an
// existing edge is a no-op. Unknown IDs, self-references, and edges that
// would close a cycle are validation failures; on failure no edge is added.
func (s *WorkflowService) AddDependencies(taskID int64, dependencyIDs []int64, actor *domain.User) (*domain.Task, error) {
	if _, err := s.taskRepo.GetByID(taskID); err != nil {
		if err == sql.ErrNoRows {
			return nil, domain.NewTaskNotFoundError(taskID)
		}
		return nil, domain.NewInternalError(err)
	}

	var errs []string
	seen := map[int64]bool{}
	var toAdd []int64

	for _, depID := range dependencyIDs {
		if seen[depID] {
			continue
		}
		seen[depID] = true

		if depID == taskID {
			errs = append(errs, fmt.Sprintf("A task cannot depend on itself (%d).", depID))
			continue
		}

		exists, err := s.taskRepo.Exists(depID)
		if err != nil {
			return nil, domain.NewInternalError(err)
		}
		if !exists {
			errs = append(errs, fmt.Sprintf("The dependency task %d does not exist.", depID))
			continue
		}

		present, err := s.depRepo.Exists(taskID, depID)
		if err != nil {
			return nil, domain.NewInternalError(err)
		}
		if present {
			continue
		}

		cycle, err := s.depRepo.WouldCreateCycle(taskID, depID)
		if err != nil {
			return nil, domain.NewInternalError(err)
		}
		if cycle {
			errs = append(errs, fmt.Sprintf("Depending on task %d would create a cycle.", depID))
			continue
		}

		toAdd = append(toAdd, depID)
	}

	if len(errs) > 0 {
		return nil, domain.NewValidationError(map[string][]string{"dependencies": errs})
	}

	if len(toAdd) > 0 {
		if err := s.depRepo.AddAll(taskID, toAdd); err != nil {
			return nil, domain.NewInternalError(err)
		}

		now := time.Now().UTC()
		for _, depID := range toAdd {
			newValue := strconv.FormatInt(depID, 10)
			s.auditRepo.Log(&domain.AuditEntry{
				TaskID:    taskID,
				Action:    domain.AuditActionAddDependency,
				NewValue:  &newValue,
				ChangedAt: now,
				ChangedBy: actor.ID,
			})
		}
	}

	return s.reload(taskID)
}

// UpdateStatus transitions the task to the given status. The transition to
// completed is gated on every dependency being completed already; pending
// and cancelled transitions are unconditional. No mutation happens when the
// gate fails.
func (s *WorkflowService) UpdateStatus(taskID int64, status domain.Status, actor *domain.User) (*domain.Task, error) {
	task, err := s.taskRepo.GetByID(taskID)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, domain.NewTaskNotFoundError(taskID)
		}
		return nil, domain.NewInternalError(err)
	}

	now := time.Now().UTC()

	if status == domain.StatusCompleted {
		affected, err := s.taskRepo.AtomicComplete(taskID, now)
		if err != nil {
			return nil, domain.NewInternalError(err)
		}
		if affected == 0 {
			return nil, domain.NewDependenciesNotSatisfiedError(taskID)
		}
	} else {
		if err := s.taskRepo.SetStatus(taskID, status, now); err != nil {
			if err == sql.ErrNoRows {
				return nil, domain.NewTaskNotFoundError(taskID)
			}
			return nil, domain.NewInternalError(err)
		}
	}

	field := "status"
	oldValue := task.Status.Label()
	newValue := status.Label()
	s.auditRepo.Log(&domain.AuditEntry{
		TaskID:    taskID,
		Action:    domain.AuditActionStatus,
		Field:     &field,
		OldValue:  &oldValue,
		NewValue:  &newValue,
		ChangedAt: now,
		ChangedBy: actor.ID,
	})

	return s.reload(taskID)
}

// reload fetches the task with its assignee and dependencies after a
// mutation.
func (s *WorkflowService) reload(taskID int64) (*domain.Task, error) {
	task, err := s.taskRepo.GetByID(taskID)
	if err != nil {
		return nil, domain.NewInternalError(err)
	}

	if task.AssigneeID != nil {
		assignee, err := s.userRepo.GetByID(*task.AssigneeID)
		if err != nil && err != sql.ErrNoRows {
			return nil, domain.NewInternalError(err)
		}
		task.Assignee = assignee
	}

	deps, err := s.taskRepo.ListDependencies(task.ID)
	if err != nil {
		return nil, domain.NewInternalError(err)
	}
	task.Dependencies = deps
	return task, nil
}
