package service

import (
	"task-manager-backend/internal/authz"

	"github.com/google/uuid"
)

//go:generate mockgen -source=interfaces.go -destination=../mocks/service_mocks.go -package=mocks

// UserServiceInterface defines the interface for user service
type UserServiceInterface interface {
	List(page, pageSize int, status, priority string) (*UserListResponse, error)
	ListWithAssignedTasks(page, pageSize int) (*UserListResponse, error)
	Create(req *CreateUserRequest) (*UserResponse, error)
	GetByID(id uuid.UUID) (*UserResponse, error)
	Update(id uuid.UUID, req *UpdateUserRequest) (*UserResponse, error)
	Delete(id uuid.UUID) error
	Trashed(page, pageSize int) (*UserListResponse, error)
	Restore(id uuid.UUID) (*UserResponse, error)
	ForceDelete(id uuid.UUID) error
}

// ProjectServiceInterface defines the interface for project service
type ProjectServiceInterface interface {
	List(page, pageSize int, withLatestTask, withOldestTask bool) (*ProjectListResponse, error)
	Get(id uuid.UUID, titleFilter string) (*ProjectDetailResponse, error)
	Create(req *CreateProjectRequest) (*ProjectResponse, error)
	Update(id uuid.UUID, req *UpdateProjectRequest) (*ProjectResponse, error)
	Delete(id uuid.UUID) error
	Trashed(page, pageSize int) (*ProjectListResponse, error)
	Restore(id uuid.UUID) (*ProjectResponse, error)
	ForceDelete(id uuid.UUID) error
}

// MembershipServiceInterface defines the interface for membership service
type MembershipServiceInterface interface {
	Assign(projectID uuid.UUID, req *AssignMembersRequest) ([]MembershipResponse, error)
	Unassign(projectID uuid.UUID, req *UnassignMembersRequest) error
	TouchActivity(projectID, userID uuid.UUID) error
	AddContribution(actor authz.Actor, projectID uuid.UUID, req *AddContributionHoursRequest) ([]MembershipResponse, error)
}

// TaskServiceInterface defines the interface for task service
type TaskServiceInterface interface {
	List(page, pageSize int) (*TaskListResponse, error)
	Get(id uuid.UUID) (*TaskResponse, error)
	Create(actor authz.Actor, req *CreateTaskRequest) (*TaskResponse, error)
	Update(actor authz.Actor, id uuid.UUID, req *UpdateTaskRequest) (*TaskResponse, error)
	ChangeStatus(actor authz.Actor, id uuid.UUID, req *ChangeStatusRequest) (*TaskResponse, error)
	AddNotes(actor authz.Actor, id uuid.UUID, req *AddNotesRequest) (*TaskResponse, error)
	Delete(id uuid.UUID) error
	Trashed(page, pageSize int) (*TaskListResponse, error)
	Restore(id uuid.UUID) (*TaskResponse, error)
	ForceDelete(id uuid.UUID) error
	ListMyProjects(actor authz.Actor, page, pageSize int) (*TaskListResponse, error)
}
