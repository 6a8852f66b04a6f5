package api

import (
	"time"

	"github.com/google/uuid"
	"github.com/orbit-app/orbit-api/internal/domain"
	"github.com/orbit-app/orbit-api/internal/store"
)

// Common request/response structures

// SignupRequest defines the payload for the user registration endpoint.
type SignupRequest struct {
	Username string `json:"username" validate:"required,min=3,max=32"`
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required,min=8,max=72"`
}

// SigninRequest defines the payload for the user login endpoint.
type SigninRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required,min=1"`
}

// AuthResponse defines the successful response for the signin endpoint.
type AuthResponse struct {
	UserID      uuid.UUID `json:"user_id"`
	Username    string    `json:"username"`
	Email       string    `json:"email"`
	Role        string    `json:"role"`
	AccessToken string    `json:"access_token"`
}

// CreateTaskRequest defines the payload for task creation.
// Category accepts a store-assigned ID, a free-text name, or nothing; the
// category_id alias is kept for older clients.
type CreateTaskRequest struct {
	Title       string     `json:"title"       validate:"required"`
	Description string     `json:"description"`
	DueDate     *time.Time `json:"due_date"`
	Priority    string     `json:"priority"    validate:"omitempty,oneof=low medium high"`
	Status      string     `json:"status"      validate:"omitempty,oneof=todo in-progress review completed"`
	Progress    *int       `json:"progress"    validate:"omitempty,gte=0,lte=100"`
	Category    string     `json:"category"`
	CategoryID  string     `json:"category_id"`
}

// CategoryRef returns the category reference, preferring the category field
// over its category_id alias.
func (r *CreateTaskRequest) CategoryRef() string {
	if r.Category != "" {
		return r.Category
	}
	return r.CategoryID
}

// UpdateTaskRequest defines the payload for a partial task update.
// Absent fields leave the task untouched. An explicit empty category string
// clears the assignment. An owner field is deliberately not accepted.
type UpdateTaskRequest struct {
	Title       *string    `json:"title"`
	Description *string    `json:"description"`
	DueDate     *time.Time `json:"due_date"`
	Priority    *string    `json:"priority"  validate:"omitempty,oneof=low medium high"`
	Status      *string    `json:"status"    validate:"omitempty,oneof=todo in-progress review completed"`
	Progress    *int       `json:"progress"  validate:"omitempty,gte=0,lte=100"`
	Category    *string    `json:"category"`
	CategoryID  *string    `json:"category_id"`
}

// CategoryRef returns the category reference, preferring the category field
// over its category_id alias. Nil means the category is untouched.
func (r *UpdateTaskRequest) CategoryRef() *string {
	if r.Category != nil {
		return r.Category
	}
	return r.CategoryID
}

// CategoryInfo is the populated category reference attached to task responses.
type CategoryInfo struct {
	ID   uuid.UUID `json:"id"`
	Name string    `json:"name"`
}

// TaskResponse represents the response data for a task. On reads the
// category reference is populated with its display name; on create only the
// raw category ID is known.
type TaskResponse struct {
	ID          uuid.UUID     `json:"id"`
	Title       string        `json:"title"`
	Description string        `json:"description,omitempty"`
	DueDate     *time.Time    `json:"due_date,omitempty"`
	Priority    string        `json:"priority"`
	Status      string        `json:"status"`
	Progress    int           `json:"progress"`
	CategoryID  *uuid.UUID    `json:"category_id,omitempty"`
	Category    *CategoryInfo `json:"category,omitempty"`
	UserID      uuid.UUID     `json:"user_id"`
	CreatedAt   time.Time     `json:"created_at"`
	UpdatedAt   time.Time     `json:"updated_at"`
}

// taskToResponse projects a populated task read into the response shape.
func taskToResponse(task *store.TaskWithCategory) TaskResponse {
	resp := TaskResponse{
		ID:          task.ID,
		Title:       task.Title,
		Description: task.Description,
		DueDate:     task.DueDate,
		Priority:    string(task.Priority),
		Status:      string(task.Status),
		Progress:    task.Progress,
		CategoryID:  task.CategoryID,
		UserID:      task.UserID,
		CreatedAt:   task.CreatedAt,
		UpdatedAt:   task.UpdatedAt,
	}

	if task.CategoryID != nil && task.CategoryName != nil {
		resp.Category = &CategoryInfo{
			ID:   *task.CategoryID,
			Name: *task.CategoryName,
		}
	}

	return resp
}

// tasksToResponse projects a task listing. It always returns a non-nil slice
// so empty listings serialize as [] rather than null.
func tasksToResponse(tasks []*store.TaskWithCategory) []TaskResponse {
	responses := make([]TaskResponse, 0, len(tasks))
	for _, task := range tasks {
		responses = append(responses, taskToResponse(task))
	}
	return responses
}

// createdTaskToResponse shapes a freshly created task, where the category
// name is not yet populated.
func createdTaskToResponse(task *domain.Task) TaskResponse {
	return TaskResponse{
		ID:          task.ID,
		Title:       task.Title,
		Description: task.Description,
		DueDate:     task.DueDate,
		Priority:    string(task.Priority),
		Status:      string(task.Status),
		Progress:    task.Progress,
		CategoryID:  task.CategoryID,
		UserID:      task.UserID,
		CreatedAt:   task.CreatedAt,
		UpdatedAt:   task.UpdatedAt,
	}
}

// CategoryRequest defines the payload for category creation and rename.
type CategoryRequest struct {
	Name string `json:"name" validate:"required"`
}

// CategoryResponse represents the response data for a category.
type CategoryResponse struct {
	ID        uuid.UUID  `json:"id"`
	Name      string     `json:"name"`
	UserID    *uuid.UUID `json:"user_id,omitempty"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
}

// categoryToResponse projects a category into the response shape.
func categoryToResponse(category *domain.Category) CategoryResponse {
	return CategoryResponse{
		ID:        category.ID,
		Name:      category.Name,
		UserID:    category.UserID,
		CreatedAt: category.CreatedAt,
		UpdatedAt: category.UpdatedAt,
	}
}

// UserResponse represents the response data for a user on the admin surface.
type UserResponse struct {
	ID        uuid.UUID `json:"id"`
	Username  string    `json:"username"`
	Email     string    `json:"email"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"created_at"`
}

// userToResponse projects a user into the response shape, omitting the
// credential fields.
func userToResponse(user *domain.User) UserResponse {
	return UserResponse{
		ID:        user.ID,
		Username:  user.Username,
		Email:     user.Email,
		Role:      string(user.Role),
		CreatedAt: user.CreatedAt,
	}
}
