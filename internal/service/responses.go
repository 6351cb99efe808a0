package service

import (
	"reflect"
	"time"

	"task-manager-backend/internal/database/models"
	apperrors "task-manager-backend/internal/errors"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

// UserResponse represents a user in API responses. The password hash never
// leaves the service layer.
type UserResponse struct {
	ID            uuid.UUID      `json:"id"`
	Name          string         `json:"name"`
	Email         string         `json:"email"`
	IsAdmin       bool           `json:"is_admin"`
	CreatedAt     string         `json:"created_at"`
	UpdatedAt     string         `json:"updated_at"`
	AssignedTasks []TaskResponse `json:"assigned_tasks,omitempty"`
}

// UserListResponse represents a paginated list of users
type UserListResponse struct {
	Users    []UserResponse `json:"users"`
	Total    int64          `json:"total"`
	Page     int            `json:"page"`
	PageSize int            `json:"page_size"`
}

// MembershipResponse represents a project membership in API responses
type MembershipResponse struct {
	ID                uuid.UUID          `json:"id"`
	ProjectID         uuid.UUID          `json:"project_id"`
	UserID            uuid.UUID          `json:"user_id"`
	Role              models.ProjectRole `json:"role"`
	ContributionHours int                `json:"contribution_hours"`
	LastActivity      *time.Time         `json:"last_activity,omitempty"`
	User              *UserResponse      `json:"user,omitempty"`
}

// TaskResponse represents a task in API responses
type TaskResponse struct {
	ID          uuid.UUID           `json:"id"`
	ProjectID   uuid.UUID           `json:"project_id"`
	CreatedBy   uuid.UUID           `json:"created_by"`
	AssignedTo  uuid.UUID           `json:"assigned_to"`
	Title       string              `json:"title"`
	Description string              `json:"description"`
	Status      models.TaskStatus   `json:"status"`
	Priority    models.TaskPriority `json:"priority"`
	DueDate     string              `json:"due_date"`
	Notes       *string             `json:"notes,omitempty"`
	CreatedAt   string              `json:"created_at"`
	UpdatedAt   string              `json:"updated_at"`
}

// TaskListResponse represents a paginated list of tasks
type TaskListResponse struct {
	Tasks    []TaskResponse `json:"tasks"`
	Total    int64          `json:"total"`
	Page     int            `json:"page"`
	PageSize int            `json:"page_size"`
}

// ProjectResponse represents a project in API responses
type ProjectResponse struct {
	ID          uuid.UUID     `json:"id"`
	Name        string        `json:"name"`
	Description string        `json:"description"`
	CreatedAt   string        `json:"created_at"`
	UpdatedAt   string        `json:"updated_at"`
	LatestTask  *TaskResponse `json:"latest_task,omitempty"`
	OldestTask  *TaskResponse `json:"oldest_task,omitempty"`
}

// ProjectDetailResponse represents a project with its members and tasks
type ProjectDetailResponse struct {
	ProjectResponse
	Members             []MembershipResponse `json:"members"`
	Tasks               []TaskResponse       `json:"tasks,omitempty"`
	HighestPriorityTask *TaskResponse        `json:"highest_priority_task,omitempty"`
}

// ProjectListResponse represents a paginated list of projects
type ProjectListResponse struct {
	Projects []ProjectResponse `json:"projects"`
	Total    int64             `json:"total"`
	Page     int               `json:"page"`
	PageSize int               `json:"page_size"`
}

func userToResponse(user *models.User) *UserResponse {
	resp := &UserResponse{
		ID:        user.ID,
		Name:      user.Name,
		Email:     user.Email,
		IsAdmin:   user.IsAdmin,
		CreatedAt: user.CreatedAt.Format(time.RFC3339),
		UpdatedAt: user.UpdatedAt.Format(time.RFC3339),
	}
	for i := range user.AssignedTasks {
		resp.AssignedTasks = append(resp.AssignedTasks, *taskToResponse(&user.AssignedTasks[i]))
	}
	return resp
}

func membershipToResponse(m *models.Membership) *MembershipResponse {
	resp := &MembershipResponse{
		ID:                m.ID,
		ProjectID:         m.ProjectID,
		UserID:            m.UserID,
		Role:              m.Role,
		ContributionHours: m.ContributionHours,
		LastActivity:      m.LastActivity,
	}
	if m.User.ID != uuid.Nil {
		resp.User = userToResponse(&m.User)
	}
	return resp
}

func taskToResponse(task *models.Task) *TaskResponse {
	return &TaskResponse{
		ID:          task.ID,
		ProjectID:   task.ProjectID,
		CreatedBy:   task.CreatedBy,
		AssignedTo:  task.AssignedTo,
		Title:       task.Title,
		Description: task.Description,
		Status:      task.Status,
		Priority:    task.Priority,
		DueDate:     task.DueDate.Format(time.RFC3339),
		Notes:       task.Notes,
		CreatedAt:   task.CreatedAt.Format(time.RFC3339),
		UpdatedAt:   task.UpdatedAt.Format(time.RFC3339),
	}
}

func projectToResponse(project *models.Project) *ProjectResponse {
	return &ProjectResponse{
		ID:          project.ID,
		Name:        project.Name,
		Description: project.Description,
		CreatedAt:   project.CreatedAt.Format(time.RFC3339),
		UpdatedAt:   project.UpdatedAt.Format(time.RFC3339),
	}
}

// collectStructErrors converts validator tag failures into the collect-all
// validation error the API surfaces with a 422.
func collectStructErrors(err error) error {
	verrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return err
	}
	collected := &apperrors.ValidationErrors{}
	for _, fe := range verrs {
		switch fe.Tag() {
		case "required":
			collected.Add("the %s field is required", fe.Field())
		case "email":
			collected.Add("the %s field must be a valid email address", fe.Field())
		case "min":
			if fe.Kind() == reflect.String {
				collected.Add("the %s field must be at least %s characters", fe.Field(), fe.Param())
			} else {
				collected.Add("the %s field must be at least %s", fe.Field(), fe.Param())
			}
		case "max":
			if fe.Kind() == reflect.String {
				collected.Add("the %s field may not be greater than %s characters", fe.Field(), fe.Param())
			} else {
				collected.Add("the %s field may not be greater than %s", fe.Field(), fe.Param())
			}
		case "oneof":
			collected.Add("the %s field must be one of: %s", fe.Field(), fe.Param())
		default:
			collected.Add("the %s field is invalid", fe.Field())
		}
	}
	return collected
}

func paginate(page, pageSize int) (limit, offset int) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = 10
	}
	return pageSize, (page - 1) * pageSize
}
