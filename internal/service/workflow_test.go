package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taskdeck/taskdeck/internal/domain"
)

func TestAssign_SetsAssignee(t *testing.T) {
	env := newTestEnv(t)
	manager := env.seedUser(t, "manager", domain.RoleManager)
	assignee := env.seedUser(t, "worker", domain.RoleUser)
	task := env.seedTask(t, "unassigned", manager)

	assigned, err := env.workflow.Assign(task.ID, assignee.ID, manager)
	require.NoError(t, err)
	require.NotNil(t, assigned.AssigneeID)
	assert.Equal(t, assignee.ID, *assigned.AssigneeID)
	require.NotNil(t, assigned.Assignee)
	assert.Equal(t, assignee.Email, assigned.Assignee.Email)
}

func TestAssign_AlreadyAssignedKeepsExistingAssignee(t *testing.T) {
	env := newTestEnv(t)
	manager := env.seedUser(t, "manager", domain.RoleManager)
	first := env.seedUser(t, "first", domain.RoleUser)
	second := env.seedUser(t, "second", domain.RoleUser)
	task := env.seedTask(t, "contested", manager)

	_, err := env.workflow.Assign(task.ID, first.ID, manager)
	require.NoError(t, err)

	_, err = env.workflow.Assign(task.ID, second.ID, manager)
	require.Error(t, err)
	domainErr, ok := err.(*domain.Error)
	require.True(t, ok)
	assert.Equal(t, domain.ErrCodeAlreadyAssigned, domainErr.Code)
	assert.Equal(t, "Task already assigned to user", domainErr.Message)

	// The original assignee is untouched.
	stored, err := env.taskRepo.GetByID(task.ID)
	require.NoError(t, err)
	require.NotNil(t, stored.AssigneeID)
	assert.Equal(t, first.ID, *stored.AssigneeID)
}

func TestAssign_UnknownUser(t *testing.T) {
	env := newTestEnv(t)
	manager := env.seedUser(t, "manager", domain.RoleManager)
	task := env.seedTask(t, "task", manager)

	_, err := env.workflow.Assign(task.ID, 999, manager)
	require.Error(t, err)
	domainErr := err.(*domain.Error)
	assert.Equal(t, domain.ErrCodeValidationFailed, domainErr.Code)
}

func TestAssign_UnknownTask(t *testing.T) {
	env := newTestEnv(t)
	manager := env.seedUser(t, "manager", domain.RoleManager)

	_, err := env.workflow.Assign(999, manager.ID, manager)
	require.Error(t, err)
	domainErr := err.(*domain.Error)
	assert.Equal(t, domain.ErrCodeTaskNotFound, domainErr.Code)
}

func TestAddDependencies_DeduplicatesAndIsIdempotent(t *testing.T) {
	env := newTestEnv(t)
	manager := env.seedUser(t, "manager", domain.RoleManager)
	task := env.seedTask(t, "main", manager)
	dep := env.seedTask(t, "dep", manager)

	updated, err := env.workflow.AddDependencies(task.ID, []int64{dep.ID, dep.ID}, manager)
	require.NoError(t, err)
	require.Len(t, updated.Dependencies, 1)
	assert.Equal(t, dep.ID, updated.Dependencies[0].ID)

	// Re-adding the same edge is a no-op, not an error.
	updated, err = env.workflow.AddDependencies(task.ID, []int64{dep.ID}, manager)
	require.NoError(t, err)
	assert.Len(t, updated.Dependencies, 1)
}

func TestAddDependencies_RejectsSelfReference(t *testing.T) {
	env := newTestEnv(t)
	manager := env.seedUser(t, "manager", domain.RoleManager)
	task := env.seedTask(t, "main", manager)

	_, err := env.workflow.AddDependencies(task.ID, []int64{task.ID}, manager)
	require.Error(t, err)
	domainErr := err.(*domain.Error)
	assert.Equal(t, domain.ErrCodeValidationFailed, domainErr.Code)
}

func TestAddDependencies_RejectsCycle(t *testing.T) {
	env := newTestEnv(t)
	manager := env.seedUser(t, "manager", domain.RoleManager)
	a := env.seedTask(t, "a", manager)
	b := env.seedTask(t, "b", manager)
	c := env.seedTask(t, "c", manager)

	_, err := env.workflow.AddDependencies(a.ID, []int64{b.ID}, manager)
	require.NoError(t, err)
	_, err = env.workflow.AddDependencies(b.ID, []int64{c.ID}, manager)
	require.NoError(t, err)

	// c -> a would close the loop a -> b -> c -> a.
	_, err = env.workflow.AddDependencies(c.ID, []int64{a.ID}, manager)
	require.Error(t, err)
	domainErr := err.(*domain.Error)
	assert.Equal(t, domain.ErrCodeValidationFailed, domainErr.Code)
}

func TestAddDependencies_RejectsUnknownTasks(t *testing.T) {
	env := newTestEnv(t)
	manager := env.seedUser(t, "manager", domain.RoleManager)
	task := env.seedTask(t, "main", manager)

	_, err := env.workflow.AddDependencies(task.ID, []int64{12345}, manager)
	require.Error(t, err)
	domainErr := err.(*domain.Error)
	assert.Equal(t, domain.ErrCodeValidationFailed, domainErr.Code)

	// Nothing was added.
	reloaded, err := env.tasks.Get(task.ID)
	require.NoError(t, err)
	assert.Empty(t, reloaded.Dependencies)
}

func TestUpdateStatus_GatedOnDependencies(t *testing.T) {
	env := newTestEnv(t)
	manager := env.seedUser(t, "manager", domain.RoleManager)
	assignee := env.seedUser(t, "worker", domain.RoleUser)
	task := env.seedTask(t, "main", manager)
	dep := env.seedTask(t, "blocker", manager)

	_, err := env.workflow.AddDependencies(task.ID, []int64{dep.ID}, manager)
	require.NoError(t, err)

	// Completing while the dependency is pending fails and mutates nothing.
	_, err = env.workflow.UpdateStatus(task.ID, domain.StatusCompleted, assignee)
	require.Error(t, err)
	domainErr := err.(*domain.Error)
	assert.Equal(t, domain.ErrCodeDependenciesNotMet, domainErr.Code)
	assert.Equal(t, "You have to finish task dependencies before update this task.", domainErr.Message)

	stored, err := env.taskRepo.GetByID(task.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusPending, stored.Status)

	// Completing the dependency unblocks the task.
	_, err = env.workflow.UpdateStatus(dep.ID, domain.StatusCompleted, assignee)
	require.NoError(t, err)

	updated, err := env.workflow.UpdateStatus(task.ID, domain.StatusCompleted, assignee)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusCompleted, updated.Status)

	stored, err = env.taskRepo.GetByID(task.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusCompleted, stored.Status)
}

func TestUpdateStatus_PendingAndCancelledAreUnconditional(t *testing.T) {
	env := newTestEnv(t)
	manager := env.seedUser(t, "manager", domain.RoleManager)
	task := env.seedTask(t, "main", manager)
	dep := env.seedTask(t, "blocker", manager)

	_, err := env.workflow.AddDependencies(task.ID, []int64{dep.ID}, manager)
	require.NoError(t, err)

	// The gate applies only to the completed transition.
	updated, err := env.workflow.UpdateStatus(task.ID, domain.StatusCancelled, manager)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusCancelled, updated.Status)

	updated, err = env.workflow.UpdateStatus(task.ID, domain.StatusPending, manager)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusPending, updated.Status)
}

func TestUpdateStatus_NoDependenciesCompletesDirectly(t *testing.T) {
	env := newTestEnv(t)
	manager := env.seedUser(t, "manager", domain.RoleManager)
	task := env.seedTask(t, "free", manager)

	updated, err := env.workflow.UpdateStatus(task.ID, domain.StatusCompleted, manager)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusCompleted, updated.Status)
}
