package request

import (
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taskdeck/taskdeck/internal/domain"
)

func TestParsePagination(t *testing.T) {
	tests := []struct {
		name  string
		query string
		want  Pagination
	}{
		{
			"defaults",
			"",
			Pagination{Page: 1, PerPage: 15, Offset: 0, Limit: 15},
		},
		{
			"page mode",
			"page=3&per_page=10",
			Pagination{Page: 3, PerPage: 10, Offset: 20, Limit: 10},
		},
		{
			"per_page clamped",
			"per_page=500",
			Pagination{Page: 1, PerPage: 100, Offset: 0, Limit: 100},
		},
		{
			"negative page ignored",
			"page=-2",
			Pagination{Page: 1, PerPage: 15, Offset: 0, Limit: 15},
		},
		{
			"offset mode via limit",
			"limit=5",
			Pagination{OffsetMode: true, Offset: 0, Limit: 5},
		},
		{
			"offset mode via offset",
			"offset=30",
			Pagination{OffsetMode: true, Offset: 30, Limit: 15},
		},
		{
			"offset mode both",
			"limit=20&offset=40",
			Pagination{OffsetMode: true, Offset: 40, Limit: 20},
		},
		{
			"offset mode limit clamped",
			"limit=9999&offset=1",
			Pagination{OffsetMode: true, Offset: 1, Limit: 100},
		},
		{
			"offset mode wins over page params",
			"page=2&per_page=10&limit=5",
			Pagination{OffsetMode: true, Offset: 0, Limit: 5},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := httptest.NewRequest("GET", "/v1/tasks?"+tt.query, nil)
			assert.Equal(t, tt.want, ParsePagination(r))
		})
	}
}

func TestParseTaskFilters(t *testing.T) {
	r := httptest.NewRequest("GET", "/v1/tasks?status=Completed&assignee=7&date_from=2025-01-01&date_to=2025-12-31", nil)
	filters, errs := ParseTaskFilters(r)
	require.Nil(t, errs)
	require.NotNil(t, filters.Status)
	assert.Equal(t, domain.StatusCompleted, *filters.Status)
	require.NotNil(t, filters.AssigneeID)
	assert.Equal(t, int64(7), *filters.AssigneeID)
	assert.Equal(t, "2025-01-01", filters.DateFrom)
	assert.Equal(t, "2025-12-31", filters.DateTo)
}

func TestParseTaskFilters_Invalid(t *testing.T) {
	tests := []struct {
		name  string
		query string
		field string
	}{
		{"unknown status", "status=done", "status"},
		{"non-numeric assignee", "assignee=bob", "assignee"},
		{"bad date", "date=15-10-2025", "date"},
		{"bad range start", "date_from=nope&date_to=2025-12-31", "date_from"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := httptest.NewRequest("GET", "/v1/tasks?"+tt.query, nil)
			_, errs := ParseTaskFilters(r)
			require.NotNil(t, errs)
			assert.Contains(t, errs, tt.field)
		})
	}
}

func TestCreateTaskRequest_Validate(t *testing.T) {
	label := "completed"
	req := CreateTaskRequest{Title: "t", Date: "2025-10-15", Status: &label}
	status, errs := req.Validate()
	require.Nil(t, errs)
	require.NotNil(t, status)
	assert.Equal(t, domain.StatusCompleted, *status)

	empty := CreateTaskRequest{}
	_, errs = empty.Validate()
	require.NotNil(t, errs)
	assert.Contains(t, errs, "title")
	assert.Contains(t, errs, "date")

	bad := "done"
	withBadStatus := CreateTaskRequest{Title: "t", Date: "2025-10-15", Status: &bad}
	_, errs = withBadStatus.Validate()
	require.NotNil(t, errs)
	assert.Equal(t, []string{"The selected status is invalid."}, errs["status"])
}

func TestUpdateStatusRequest_Validate(t *testing.T) {
	status, errs := (&UpdateStatusRequest{Status: "CANCELLED"}).Validate()
	require.Nil(t, errs)
	assert.Equal(t, domain.StatusCancelled, status)

	_, errs = (&UpdateStatusRequest{}).Validate()
	require.NotNil(t, errs)
	assert.Contains(t, errs, "status")

	_, errs = (&UpdateStatusRequest{Status: "finished"}).Validate()
	require.NotNil(t, errs)
	assert.Contains(t, errs, "status")
}

func TestAssignAndDependenciesRequests_Validate(t *testing.T) {
	assert.NotNil(t, (&AssignTaskRequest{}).Validate())
	id := int64(4)
	assert.Nil(t, (&AssignTaskRequest{UserID: &id}).Validate())

	assert.NotNil(t, (&AddDependenciesRequest{}).Validate())
	assert.Nil(t, (&AddDependenciesRequest{Dependencies: []int64{1}}).Validate())
}
