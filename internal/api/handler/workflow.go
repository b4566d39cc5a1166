package handler

import (
	"net/http"

	"github.com/taskdeck/taskdeck/internal/api/middleware"
	"github.com/taskdeck/taskdeck/internal/api/request"
	"github.com/taskdeck/taskdeck/internal/api/response"
	"github.com/taskdeck/taskdeck/internal/domain"
	"github.com/taskdeck/taskdeck/internal/policy"
	"github.com/taskdeck/taskdeck/internal/service"
)

// WorkflowHandler handles assignment, status, and dependency operations.
type WorkflowHandler struct {
	tasks    *service.TaskService
	workflow *service.WorkflowService
}

// NewWorkflowHandler creates a new WorkflowHandler.
func NewWorkflowHandler(tasks *service.TaskService, workflow *service.WorkflowService) *WorkflowHandler {
	return &WorkflowHandler{tasks: tasks, workflow: workflow}
}

// AssignTask handles POST /v1/tasks/{id}/assign.
func (h *WorkflowHandler) AssignTask(w http.ResponseWriter, r *http.Request) {
	actor := middleware.GetActor(r.Context())

	id, err := taskID(r)
	if err != nil {
		response.Error(w, err)
		return
	}

	task, err := h.tasks.Get(id)
	if err != nil {
		response.Error(w, err)
		return
	}

	if err := policy.CanAssignTask(actor, task); err != nil {
		response.Error(w, err)
		return
	}

	var req request.AssignTaskRequest
	if err := request.DecodeJSON(r, &req); err != nil {
		response.Error(w, domain.NewValidationError(map[string][]string{
			"body": {"Invalid JSON body."},
		}))
		return
	}

	if errs := req.Validate(); errs != nil {
		response.Error(w, domain.NewValidationError(errs))
		return
	}

	assigned, err := h.workflow.Assign(id, *req.UserID, actor)
	if err != nil {
		response.Error(w, err)
		return
	}

	response.Success(w, http.StatusOK, "Task assigned successfully", assigned)
}

// UpdateStatus handles POST and PATCH /v1/tasks/{id}/update-status.
func (h *WorkflowHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	actor := middleware.GetActor(r.Context())

	id, err := taskID(r)
	if err != nil {
		response.Error(w, err)
		return
	}

	task, err := h.tasks.Get(id)
	if err != nil {
		response.Error(w, err)
		return
	}

	if err := policy.CanUpdateStatus(actor, task); err != nil {
		response.Error(w, err)
		return
	}

	var req request.UpdateStatusRequest
	if err := request.DecodeJSON(r, &req); err != nil {
		response.Error(w, domain.NewValidationError(map[string][]string{
			"body": {"Invalid JSON body."},
		}))
		return
	}

	status, errs := req.Validate()
	if errs != nil {
		response.Error(w, domain.NewValidationError(errs))
		return
	}

	updated, err := h.workflow.UpdateStatus(id, status, actor)
	if err != nil {
		response.Error(w, err)
		return
	}

	response.Success(w, http.StatusOK, "Task updated successfully", updated)
}

// AddDependencies handles POST /v1/tasks/{id}/add-dependencies.
func (h *WorkflowHandler) AddDependencies(w http.ResponseWriter, r *http.Request) {
	actor := middleware.GetActor(r.Context())

	id, err := taskID(r)
	if err != nil {
		response.Error(w, err)
		return
	}

	task, err := h.tasks.Get(id)
	if err != nil {
		response.Error(w, err)
		return
	}

	if err := policy.CanAddDependencies(actor, task); err != nil {
		response.Error(w, err)
		return
	}

	var req request.AddDependenciesRequest
	if err := request.DecodeJSON(r, &req); err != nil {
		response.Error(w, domain.NewValidationError(map[string][]string{
			"body": {"Invalid JSON body."},
		}))
		return
	}

	if errs := req.Validate(); errs != nil {
		response.Error(w, domain.NewValidationError(errs))
		return
	}

	updated, err := h.workflow.AddDependencies(id, req.Dependencies, actor)
	if err != nil {
		response.Error(w, err)
		return
	}

	response.Success(w, http.StatusOK, "Dependencies added successfully", updated)
}
