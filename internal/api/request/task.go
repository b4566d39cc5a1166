package request

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/taskdeck/taskdeck/internal/domain"
)

// CreateTaskRequest represents a request to create a task.
type CreateTaskRequest struct {
	Title       string  `json:"title"`
	Description string  `json:"description"`
	Date        string  `json:"date"`
	Status      *string `json:"status,omitempty"`
	AssigneeID  *int64  `json:"assignee_id,omitempty"`
}

// Validate validates the create task request and resolves the status label.
func (r *CreateTaskRequest) Validate() (*domain.Status, map[string][]string) {
	errors := map[string][]string{}

	if r.Title == "" {
		errors["title"] = append(errors["title"], "The title field is required.")
	}
	if r.Date == "" {
		errors["date"] = append(errors["date"], "The date field is required.")
	} else if !validDate(r.Date) {
		errors["date"] = append(errors["date"], "The date is not a valid date.")
	}

	var status *domain.Status
	if r.Status != nil {
		resolved, ok := domain.StatusFromLabel(*r.Status)
		if !ok {
			errors["status"] = append(errors["status"], "The selected status is invalid.")
		} else {
			status = &resolved
		}
	}

	if len(errors) == 0 {
		return status, nil
	}
	return nil, errors
}

// UpdateTaskRequest represents a request to update a task's fields.
type UpdateTaskRequest struct {
	Title       *string `json:"title,omitempty"`
	Description *string `json:"description,omitempty"`
	Date        *string `json:"date,omitempty"`
	Status      *string `json:"status,omitempty"`
}

// Validate validates the update task request and resolves the status label.
func (r *UpdateTaskRequest) Validate() (*domain.Status, map[string][]string) {
	errors := map[string][]string{}

	if r.Title != nil && *r.Title == "" {
		errors["title"] = append(errors["title"], "The title field must not be empty.")
	}
	if r.Date != nil && !validDate(*r.Date) {
		errors["date"] = append(errors["date"], "The date is not a valid date.")
	}

	var status *domain.Status
	if r.Status != nil {
		resolved, ok := domain.StatusFromLabel(*r.Status)
		if !ok {
			errors["status"] = append(errors["status"], "The selected status is invalid.")
		} else {
			status = &resolved
		}
	}

	if len(errors) == 0 {
		return status, nil
	}
	return nil, errors
}

// AssignTaskRequest represents a request to assign a task to a user.
type AssignTaskRequest struct {
	UserID *int64 `json:"user_id"`
}

// Validate validates the assign task request.
func (r *AssignTaskRequest) Validate() map[string][]string {
	if r.UserID == nil {
		return map[string][]string{"user_id": {"The user_id field is required."}}
	}
	return nil
}

// UpdateStatusRequest represents a request to change a task's status.
type UpdateStatusRequest struct {
	Status string `json:"status"`
}

// Validate resolves the status label; an unrecognized label is a validation
// failure, not a workflow failure.
func (r *UpdateStatusRequest) Validate() (domain.Status, map[string][]string) {
	if r.Status == "" {
		return 0, map[string][]string{"status": {"The status field is required."}}
	}
	status, ok := domain.StatusFromLabel(r.Status)
	if !ok {
		return 0, map[string][]string{"status": {"The selected status is invalid."}}
	}
	return status, nil
}

// AddDependenciesRequest represents a request to add dependency edges.
type AddDependenciesRequest struct {
	Dependencies []int64 `json:"dependencies"`
}

// Validate validates the add dependencies request.
func (r *AddDependenciesRequest) Validate() map[string][]string {
	if len(r.Dependencies) == 0 {
		return map[string][]string{"dependencies": {"The dependencies field is required."}}
	}
	return nil
}

// DecodeJSON decodes JSON from the request body into v.
func DecodeJSON(r *http.Request, v interface{}) error {
	return json.NewDecoder(r.Body).Decode(v)
}

// Pagination defaults and bounds.
const (
	DefaultPage    = 1
	DefaultPerPage = 15
	MaxPerPage     = 100
)

// Pagination carries the resolved paging mode and window. Offset mode
// activates when either limit or offset is present in the query.
type Pagination struct {
	OffsetMode bool
	Page       int
	PerPage    int
	Offset     int
	Limit      int
}

// ParsePagination extracts pagination from query parameters, clamping
// out-of-range values rather than rejecting them.
func ParsePagination(r *http.Request) Pagination {
	q := r.URL.Query()

	if q.Get("limit") != "" || q.Get("offset") != "" {
		offset := 0
		limit := DefaultPerPage
		if v, err := strconv.Atoi(q.Get("offset")); err == nil && v > 0 {
			offset = v
		}
		if v, err := strconv.Atoi(q.Get("limit")); err == nil && v > 0 {
			limit = v
		}
		if limit > MaxPerPage {
			limit = MaxPerPage
		}
		return Pagination{OffsetMode: true, Offset: offset, Limit: limit}
	}

	page := DefaultPage
	perPage := DefaultPerPage
	if v, err := strconv.Atoi(q.Get("page")); err == nil && v > 0 {
		page = v
	}
	if v, err := strconv.Atoi(q.Get("per_page")); err == nil && v > 0 {
		perPage = v
	}
	if perPage > MaxPerPage {
		perPage = MaxPerPage
	}

	return Pagination{
		Page:    page,
		PerPage: perPage,
		Offset:  (page - 1) * perPage,
		Limit:   perPage,
	}
}

// TaskFilters carries the parsed list filters.
type TaskFilters struct {
	Status     *domain.Status
	AssigneeID *int64
	Date       string
	DateFrom   string
	DateTo     string
}

// ParseTaskFilters extracts list filters from query parameters. An
// unrecognized status label is a validation failure.
func ParseTaskFilters(r *http.Request) (TaskFilters, map[string][]string) {
	q := r.URL.Query()
	errors := map[string][]string{}
	var filters TaskFilters

	if s := q.Get("status"); s != "" {
		status, ok := domain.StatusFromLabel(s)
		if !ok {
			errors["status"] = append(errors["status"], "The selected status is invalid.")
		} else {
			filters.Status = &status
		}
	}

	if a := q.Get("assignee"); a != "" {
		id, err := strconv.ParseInt(a, 10, 64)
		if err != nil {
			errors["assignee"] = append(errors["assignee"], "The assignee must be an integer.")
		} else {
			filters.AssigneeID = &id
		}
	}

	if d := q.Get("date"); d != "" {
		if !validDate(d) {
			errors["date"] = append(errors["date"], "The date is not a valid date.")
		} else {
			filters.Date = d
		}
	}

	from, to := q.Get("date_from"), q.Get("date_to")
	if from != "" && to != "" {
		if !validDate(from) {
			errors["date_from"] = append(errors["date_from"], "The date_from is not a valid date.")
		}
		if !validDate(to) {
			errors["date_to"] = append(errors["date_to"], "The date_to is not a valid date.")
		}
		if len(errors) == 0 {
			filters.DateFrom = from
			filters.DateTo = to
		}
	}

	if len(errors) == 0 {
		return filters, nil
	}
	return filters, errors
}

func validDate(s string) bool {
	_, err := time.Parse(domain.DateLayout, s)
	return err == nil
}
