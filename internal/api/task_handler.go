package api

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/orbit-app/orbit-api/internal/api/middleware"
	"github.com/orbit-app/orbit-api/internal/api/shared"
	"github.com/orbit-app/orbit-api/internal/domain"
	"github.com/orbit-app/orbit-api/internal/service"
	"github.com/orbit-app/orbit-api/internal/store"
)

// dateOnlyFormat is accepted for due-date query parameters alongside RFC 3339.
const dateOnlyFormat = "2006-01-02"

// TaskHandler handles the task endpoints.
type TaskHandler struct {
	taskService *service.TaskService
	logger      *slog.Logger
}

// NewTaskHandler creates a new TaskHandler with the given dependencies.
func NewTaskHandler(taskService *service.TaskService, logger *slog.Logger) *TaskHandler {
	if taskService == nil {
		panic("taskService cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &TaskHandler{
		taskService: taskService,
		logger:      logger.With(slog.String("component", "task_handler")),
	}
}

// Create handles POST /api/tasks.
func (h *TaskHandler) Create(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r)
	if !ok {
		shared.RespondWithError(w, r, http.StatusUnauthorized, "User ID not found or invalid")
		return
	}

	var req CreateTaskRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}
	if err := shared.ValidateRequest(req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request: "+err.Error())
		return
	}

	task, err := h.taskService.Create(r.Context(), userID, service.CreateTaskParams{
		Title:       req.Title,
		Description: req.Description,
		DueDate:     req.DueDate,
		Priority:    domain.TaskPriority(req.Priority),
		Status:      domain.TaskStatus(req.Status),
		Progress:    req.Progress,
		Category:    req.CategoryRef(),
	})
	if err != nil {
		HandleServiceError(w, r, err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusCreated, createdTaskToResponse(task))
}

// List handles GET /api/tasks with optional filter and sort query parameters.
func (h *TaskHandler) List(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r)
	if !ok {
		shared.RespondWithError(w, r, http.StatusUnauthorized, "User ID not found or invalid")
		return
	}

	params, err := parseListParams(r)
	if err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, err.Error())
		return
	}

	tasks, err := h.taskService.List(r.Context(), userID, params)
	if err != nil {
		HandleServiceError(w, r, err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, tasksToResponse(tasks))
}

// GetByID handles GET /api/tasks/{id}.
func (h *TaskHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r)
	if !ok {
		shared.RespondWithError(w, r, http.StatusUnauthorized, "User ID not found or invalid")
		return
	}

	taskID, ok := taskIDFromRequest(w, r)
	if !ok {
		return
	}

	task, err := h.taskService.GetByID(r.Context(), userID, taskID)
	if err != nil {
		HandleServiceError(w, r, err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, taskToResponse(task))
}

// Update handles PUT /api/tasks/{id}.
func (h *TaskHandler) Update(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r)
	if !ok {
		shared.RespondWithError(w, r, http.StatusUnauthorized, "User ID not found or invalid")
		return
	}

	taskID, ok := taskIDFromRequest(w, r)
	if !ok {
		return
	}

	var req UpdateTaskRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}
	if err := shared.ValidateRequest(req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request: "+err.Error())
		return
	}

	params := service.UpdateTaskParams{
		Title:       req.Title,
		Description: req.Description,
		DueDate:     req.DueDate,
		Progress:    req.Progress,
		Category:    req.CategoryRef(),
	}
	if req.Priority != nil {
		priority := domain.TaskPriority(*req.Priority)
		params.Priority = &priority
	}
	if req.Status != nil {
		status := domain.TaskStatus(*req.Status)
		params.Status = &status
	}

	task, err := h.taskService.Update(r.Context(), userID, taskID, params)
	if err != nil {
		HandleServiceError(w, r, err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, taskToResponse(task))
}

// Delete handles DELETE /api/tasks/{id}.
func (h *TaskHandler) Delete(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r)
	if !ok {
		shared.RespondWithError(w, r, http.StatusUnauthorized, "User ID not found or invalid")
		return
	}

	taskID, ok := taskIDFromRequest(w, r)
	if !ok {
		return
	}

	if err := h.taskService.Delete(r.Context(), userID, taskID); err != nil {
		HandleServiceError(w, r, err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, map[string]string{
		"message": "Task deleted successfully",
	})
}

// MarkCompleted handles PATCH /api/tasks/{id}/complete.
func (h *TaskHandler) MarkCompleted(w http.ResponseWriter, r *http.Request) {
	h.applyTransition(w, r, h.taskService.MarkCompleted)
}

// MarkIncomplete handles PATCH /api/tasks/{id}/incomplete.
func (h *TaskHandler) MarkIncomplete(w http.ResponseWriter, r *http.Request) {
	h.applyTransition(w, r, h.taskService.MarkIncomplete)
}

// ForToday handles GET /api/tasks/today.
func (h *TaskHandler) ForToday(w http.ResponseWriter, r *http.Request) {
	h.listBucket(w, r, h.taskService.ForToday)
}

// ForWeek handles GET /api/tasks/week.
func (h *TaskHandler) ForWeek(w http.ResponseWriter, r *http.Request) {
	h.listBucket(w, r, h.taskService.ForWeek)
}

// ForMonth handles GET /api/tasks/month.
func (h *TaskHandler) ForMonth(w http.ResponseWriter, r *http.Request) {
	h.listBucket(w, r, h.taskService.ForMonth)
}

// Completed handles GET /api/tasks/completed.
func (h *TaskHandler) Completed(w http.ResponseWriter, r *http.Request) {
	h.listBucket(w, r, h.taskService.Completed)
}

func (h *TaskHandler) applyTransition(
	w http.ResponseWriter,
	r *http.Request,
	transition func(ctx context.Context, userID, taskID uuid.UUID) (*store.TaskWithCategory, error),
) {
	userID, ok := middleware.GetUserID(r)
	if !ok {
		shared.RespondWithError(w, r, http.StatusUnauthorized, "User ID not found or invalid")
		return
	}

	taskID, ok := taskIDFromRequest(w, r)
	if !ok {
		return
	}

	task, err := transition(r.Context(), userID, taskID)
	if err != nil {
		HandleServiceError(w, r, err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, taskToResponse(task))
}

func (h *TaskHandler) listBucket(
	w http.ResponseWriter,
	r *http.Request,
	list func(ctx context.Context, userID uuid.UUID) ([]*store.TaskWithCategory, error),
) {
	userID, ok := middleware.GetUserID(r)
	if !ok {
		shared.RespondWithError(w, r, http.StatusUnauthorized, "User ID not found or invalid")
		return
	}

	tasks, err := list(r.Context(), userID)
	if err != nil {
		HandleServiceError(w, r, err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, tasksToResponse(tasks))
}

// taskIDFromRequest extracts and parses the task ID path parameter. A
// malformed ID is reported as not found rather than as a bad request, so the
// response does not distinguish malformed identifiers from missing tasks.
func taskIDFromRequest(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	taskID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		shared.RespondWithError(w, r, http.StatusNotFound, "Task not found")
		return uuid.Nil, false
	}
	return taskID, true
}

// parseListParams parses the task listing filter and sort query parameters.
func parseListParams(r *http.Request) (service.ListTasksParams, error) {
	q := r.URL.Query()

	params := service.ListTasksParams{
		Priority:  q.Get("priority"),
		Category:  q.Get("category"),
		Search:    q.Get("search"),
		SortBy:    q.Get("sortBy"),
		SortOrder: q.Get("sortOrder"),
	}

	if raw := q.Get("dueDate"); raw != "" {
		dueDate, err := parseDateParam(raw)
		if err != nil {
			return service.ListTasksParams{}, errors.New("Invalid dueDate parameter")
		}
		params.DueOnOrBefore = &dueDate
	}

	if raw := q.Get("completed"); raw != "" {
		completed, err := strconv.ParseBool(raw)
		if err != nil {
			return service.ListTasksParams{}, errors.New("Invalid completed parameter")
		}
		params.Completed = &completed
	}

	return params, nil
}

// parseDateParam accepts an RFC 3339 timestamp or a bare yyyy-mm-dd date.
func parseDateParam(raw string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return t, nil
	}
	return time.Parse(dateOnlyFormat, raw)
}
