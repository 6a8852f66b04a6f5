package api

import (
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseListParams(t *testing.T) {
	req := httptest.NewRequest("GET",
		"/api/tasks?priority=high&completed=false&category=Work&search=report&sortBy=dueDate&sortOrder=asc&dueDate=2025-03-14",
		nil)

	params, err := parseListParams(req)

	require.NoError(t, err)
	assert.Equal(t, "high", params.Priority)
	assert.Equal(t, "Work", params.Category)
	assert.Equal(t, "report", params.Search)
	assert.Equal(t, "dueDate", params.SortBy)
	assert.Equal(t, "asc", params.SortOrder)
	require.NotNil(t, params.Completed)
	assert.False(t, *params.Completed)
	require.NotNil(t, params.DueOnOrBefore)
	assert.Equal(t, time.Date(2025, 3, 14, 0, 0, 0, 0, time.UTC), *params.DueOnOrBefore)
}

func TestParseListParams_RFC3339DueDate(t *testing.T) {
	req := httptest.NewRequest("GET", "/api/tasks?dueDate=2025-03-14T17:30:00Z", nil)

	params, err := parseListParams(req)

	require.NoError(t, err)
	require.NotNil(t, params.DueOnOrBefore)
	assert.Equal(t, time.Date(2025, 3, 14, 17, 30, 0, 0, time.UTC), *params.DueOnOrBefore)
}

func TestParseListParams_Empty(t *testing.T) {
	req := httptest.NewRequest("GET", "/api/tasks", nil)

	params, err := parseListParams(req)

	require.NoError(t, err)
	assert.Nil(t, params.Completed)
	assert.Nil(t, params.DueOnOrBefore)
	assert.Empty(t, params.Priority)
}

func TestParseListParams_BadValues(t *testing.T) {
	req := httptest.NewRequest("GET", "/api/tasks?dueDate=next-tuesday", nil)
	_, err := parseListParams(req)
	assert.Error(t, err)

	req = httptest.NewRequest("GET", "/api/tasks?completed=maybe", nil)
	_, err = parseListParams(req)
	assert.Error(t, err)
}

func TestTaskIDFromRequest_MalformedIDIsNotFound(t *testing.T) {
	// A malformed ID must be indistinguishable from a missing task
	req := httptest.NewRequest("GET", "/api/tasks/not-a-uuid", nil)
	rec := httptest.NewRecorder()

	_, ok := taskIDFromRequest(rec, req)

	assert.False(t, ok)
	assert.Equal(t, 404, rec.Code)
	assert.Contains(t, rec.Body.String(), "Task not found")
}
