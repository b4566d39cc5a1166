package handler

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/taskdeck/taskdeck/internal/api/middleware"
	"github.com/taskdeck/taskdeck/internal/api/request"
	"github.com/taskdeck/taskdeck/internal/api/response"
	"github.com/taskdeck/taskdeck/internal/domain"
	"github.com/taskdeck/taskdeck/internal/policy"
	"github.com/taskdeck/taskdeck/internal/service"
	"github.com/taskdeck/taskdeck/internal/store/sqlite"
)

// TaskHandler handles task CRUD operations.
type TaskHandler struct {
	tasks *service.TaskService
}

// NewTaskHandler creates a new TaskHandler.
func NewTaskHandler(tasks *service.TaskService) *TaskHandler {
	return &TaskHandler{tasks: tasks}
}

// ListTasks handles GET /v1/tasks. Non-managers only see their own tasks.
func (h *TaskHandler) ListTasks(w http.ResponseWriter, r *http.Request) {
	actor := middleware.GetActor(r.Context())

	filters, errs := request.ParseTaskFilters(r)
	if errs != nil {
		response.Error(w, domain.NewValidationError(errs))
		return
	}
	pagination := request.ParsePagination(r)

	tasks, total, err := h.tasks.List(sqlite.TaskFilter{
		Status:     filters.Status,
		AssigneeID: filters.AssigneeID,
		ScopeID:    policy.ListScope(actor),
		Date:       filters.Date,
		DateFrom:   filters.DateFrom,
		DateTo:     filters.DateTo,
	}, pagination.Limit, pagination.Offset)
	if err != nil {
		response.Error(w, err)
		return
	}

	if tasks == nil {
		tasks = []*domain.Task{}
	}

	if pagination.OffsetMode {
		response.SuccessWithMeta(w, "Tasks retrieved successfully", tasks, response.OffsetMeta{
			Offset: pagination.Offset,
			Limit:  pagination.Limit,
			Total:  total,
		})
		return
	}

	totalPages := total / pagination.PerPage
	if total%pagination.PerPage > 0 {
		totalPages++
	}
	response.SuccessWithMeta(w, "Tasks retrieved successfully", tasks, response.PageMeta{
		Page:       pagination.Page,
		PerPage:    pagination.PerPage,
		Total:      total,
		TotalPages: totalPages,
	})
}

// CreateTask handles POST /v1/tasks.
func (h *TaskHandler) CreateTask(w http.ResponseWriter, r *http.Request) {
	actor := middleware.GetActor(r.Context())

	if err := policy.CanCreateTask(actor); err != nil {
		response.Error(w, err)
		return
	}

	var req request.CreateTaskRequest
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

	task, err := h.tasks.Create(service.CreateTaskInput{
		Title:       req.Title,
		Description: req.Description,
		Date:        req.Date,
		Status:      status,
		AssigneeID:  req.AssigneeID,
	}, actor)
	if err != nil {
		response.Error(w, err)
		return
	}

	response.Success(w, http.StatusCreated, "Task created successfully", task)
}

// GetTask handles GET /v1/tasks/{id}.
func (h *TaskHandler) GetTask(w http.ResponseWriter, r *http.Request) {
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

	if err := policy.CanViewTask(actor, task); err != nil {
		response.Error(w, err)
		return
	}

	response.Success(w, http.StatusOK, "Task retrieved successfully", task)
}

// UpdateTask handles PUT /v1/tasks/{id}.
func (h *TaskHandler) UpdateTask(w http.ResponseWriter, r *http.Request) {
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

	if err := policy.CanUpdateTask(actor, task); err != nil {
		response.Error(w, err)
		return
	}

	var req request.UpdateTaskRequest
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

	updated, err := h.tasks.Update(id, service.UpdateTaskInput{
		Title:       req.Title,
		Description: req.Description,
		Date:        req.Date,
		Status:      status,
	}, actor)
	if err != nil {
		response.Error(w, err)
		return
	}

	response.Success(w, http.StatusOK, "Task updated successfully", updated)
}

// DeleteTask handles DELETE /v1/tasks/{id}.
func (h *TaskHandler) DeleteTask(w http.ResponseWriter, r *http.Request) {
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

	if err := policy.CanDeleteTask(actor, task); err != nil {
		response.Error(w, err)
		return
	}

	if err := h.tasks.Delete(id, actor); err != nil {
		response.Error(w, err)
		return
	}

	response.Success(w, http.StatusOK, "Task deleted successfully", nil)
}

// GetTaskHistory handles GET /v1/tasks/{id}/history.
func (h *TaskHandler) GetTaskHistory(w http.ResponseWriter, r *http.Request) {
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

	if err := policy.CanViewHistory(actor, task); err != nil {
		response.Error(w, err)
		return
	}

	entries, err := h.tasks.History(id)
	if err != nil {
		response.Error(w, err)
		return
	}

	if entries == nil {
		entries = []*domain.AuditEntry{}
	}
	response.Success(w, http.StatusOK, "Task history retrieved successfully", entries)
}

// taskID parses the {id} URL parameter.
func taskID(r *http.Request) (int64, error) {
	raw := chi.URLParam(r, "id")
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, domain.NewTaskNotFoundError(0)
	}
	return id, nil
}
