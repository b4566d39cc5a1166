// Package policy contains the authorization rules for task operations.
// Every function is a pure decision: it takes the acting user (and, where
// relevant, the target task) and returns nil to allow or a domain error
// carrying the denial reason. Nothing in this package mutates state, and the
// actor is always passed explicitly.
package policy

import "github.com/taskdeck/taskdeck/internal/domain"

// CanCreateTask allows managers to create tasks.
func CanCreateTask(actor *domain.User) *domain.Error {
	if actor.Role.Can(domain.CapCreateTask) {
		return nil
	}
	return domain.NewForbiddenError("create-task", "You do not have permission to create tasks.")
}

// CanUpdateTask allows managers to update task fields.
func CanUpdateTask(actor *domain.User, task *domain.Task) *domain.Error {
	if actor.Role.Can(domain.CapUpdateTask) {
		return nil
	}
	return domain.NewForbiddenError("update-task", "You do not have permission to update tasks.")
}

// CanDeleteTask allows managers to delete tasks.
func CanDeleteTask(actor *domain.User, task *domain.Task) *domain.Error {
	if actor.Role.Can(domain.CapDeleteTask) {
		return nil
	}
	return domain.NewForbiddenError("delete-task", "You do not have permission to delete tasks.")
}

// CanAssignTask allows managers to assign tasks to users.
func CanAssignTask(actor *domain.User, task *domain.Task) *domain.Error {
	if actor.Role.Can(domain.CapAssignTask) {
		return nil
	}
	return domain.NewForbiddenError("assign-task", "You do not have permission to assign tasks.")
}

// CanAddDependencies allows managers to add dependency edges.
func CanAddDependencies(actor *domain.User, task *domain.Task) *domain.Error {
	if actor.Role.Can(domain.CapAddDependencies) {
		return nil
	}
	return domain.NewForbiddenError("add-dependencies", "You do not have permission to add dependencies.")
}

// CanUpdateStatus allows only the assignee to change a task's status,
// regardless of role.
func CanUpdateStatus(actor *domain.User, task *domain.Task) *domain.Error {
	if task.IsAssignedTo(actor.ID) {
		return nil
	}
	return domain.NewForbiddenError("update-status", "You can only update tasks that assigned to you.")
}

// CanViewTask allows managers and the assignee to view a task.
func CanViewTask(actor *domain.User, task *domain.Task) *domain.Error {
	if actor.Role.Can(domain.CapViewAllTasks) || task.IsAssignedTo(actor.ID) {
		return nil
	}
	return domain.NewForbiddenError("view-task", "You do not have permission to view this task.")
}

// CanViewHistory allows managers to read a task's audit history.
func CanViewHistory(actor *domain.User, task *domain.Task) *domain.Error {
	if actor.Role.Can(domain.CapViewAllTasks) {
		return nil
	}
	return domain.NewForbiddenError("view-history", "You do not have permission to view task history.")
}

// ListScope returns the assignee filter to apply when the actor lists tasks.
// Managers see everything (nil); other actors see only tasks assigned to
// them.
func ListScope(actor *domain.User) *int64 {
	if actor.Role.Can(domain.CapViewAllTasks) {
		return nil
	}
	id := actor.ID
	return &id
}
