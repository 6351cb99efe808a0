package service

import (
	"errors"
	"fmt"
	"time"

	"task-manager-backend/internal/authz"
	"task-manager-backend/internal/database/models"
	apperrors "task-manager-backend/internal/errors"
	"task-manager-backend/internal/repository"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// TaskService handles business logic for the task lifecycle. Every mutation
// runs inside one transaction that also stamps the acting member's
// last_activity on the task's project, so a failure rolls back both writes.
type TaskService struct {
	db             *gorm.DB
	repo           repository.TaskRepositoryInterface
	membershipRepo repository.MembershipRepositoryInterface
	userRepo       repository.UserRepositoryInterface
	engine         *authz.Engine
	validator      *validator.Validate
}

// NewTaskService creates a new task service
func NewTaskService(db *gorm.DB, repo repository.TaskRepositoryInterface, membershipRepo repository.MembershipRepositoryInterface, userRepo repository.UserRepositoryInterface, engine *authz.Engine, validator *validator.Validate) *TaskService {
	return &TaskService{
		db:             db,
		repo:           repo,
		membershipRepo: membershipRepo,
		userRepo:       userRepo,
		engine:         engine,
		validator:      validator,
	}
}

// CreateTaskRequest represents the request to create a task
type CreateTaskRequest struct {
	ProjectID   uuid.UUID           `json:"project_id" validate:"required"`
	AssignedTo  uuid.UUID           `json:"assigned_to" validate:"required"`
	Title       string              `json:"title" validate:"required,max=255"`
	Description string              `json:"description" validate:"required"`
	Priority    models.TaskPriority `json:"priority" validate:"required,oneof=low medium high"`
	DueDate     time.Time           `json:"due_date" validate:"required"`
}

// UpdateTaskRequest represents a partial update to a task. The owning
// project cannot be changed.
type UpdateTaskRequest struct {
	AssignedTo  *uuid.UUID           `json:"assigned_to,omitempty"`
	Title       string               `json:"title,omitempty" validate:"omitempty,max=255"`
	Description string               `json:"description,omitempty"`
	Priority    *models.TaskPriority `json:"priority,omitempty" validate:"omitempty,oneof=low medium high"`
	DueDate     *time.Time           `json:"due_date,omitempty"`
}

// ChangeStatusRequest represents the request to move a task along its lifecycle
type ChangeStatusRequest struct {
	Status models.TaskStatus `json:"status" validate:"required,oneof=new in_progress completed"`
}

// AddNotesRequest represents the request to attach tester notes to a task.
// Trivially short notes are rejected as a quality gate.
type AddNotesRequest struct {
	Notes string `json:"notes" validate:"required,min=25"`
}

// List retrieves tasks with pagination
func (s *TaskService) List(page, pageSize int) (*TaskListResponse, error) {
	limit, offset := paginate(page, pageSize)
	tasks, total, err := s.repo.GetAll(limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list tasks: %w", err)
	}
	return s.toListResponse(tasks, total, page, pageSize), nil
}

// Get retrieves a task by ID
func (s *TaskService) Get(id uuid.UUID) (*TaskResponse, error) {
	task, err := s.repo.GetByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrTaskNotFound
		}
		return nil, fmt.Errorf("failed to get task: %w", err)
	}
	return taskToResponse(task), nil
}

// Create creates a task. The actor must hold the manager role on the target
// project (or be admin) and the assignee must hold an active developer
// membership on it. The insert and the creator's activity stamp commit
// atomically.
func (s *TaskService) Create(actor authz.Actor, req *CreateTaskRequest) (*TaskResponse, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, collectStructErrors(err)
	}

	if err := s.engine.Authorize(actor, req.ProjectID, models.ProjectRoleManager); err != nil {
		return nil, err
	}

	if err := s.validateAssignee(req.ProjectID, req.AssignedTo); err != nil {
		return nil, err
	}

	task := &models.Task{
		ProjectID:   req.ProjectID,
		CreatedBy:   actor.UserID,
		AssignedTo:  req.AssignedTo,
		Title:       req.Title,
		Description: req.Description,
		Status:      models.TaskStatusNew,
		Priority:    req.Priority,
		DueDate:     req.DueDate,
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := s.repo.Create(tx, task); err != nil {
			return fmt.Errorf("failed to create task: %w", err)
		}
		return s.stampActivity(tx, req.ProjectID, actor)
	})
	if err != nil {
		return nil, err
	}

	return taskToResponse(task), nil
}

// Update applies a partial update to a task. Restricted to the manager who
// created the task (or an admin); reassignment re-validates the
// developer-membership invariant against the task's own project.
func (s *TaskService) Update(actor authz.Actor, id uuid.UUID, req *UpdateTaskRequest) (*TaskResponse, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, collectStructErrors(err)
	}

	task, err := s.engine.AuthorizeTask(actor, id, models.ProjectRoleManager)
	if err != nil {
		return nil, err
	}

	if !actor.IsAdmin && task.CreatedBy != actor.UserID {
		return nil, apperrors.ErrNotTaskCreator
	}

	if req.AssignedTo != nil && *req.AssignedTo != task.AssignedTo {
		if err := s.validateAssignee(task.ProjectID, *req.AssignedTo); err != nil {
			return nil, err
		}
		task.AssignedTo = *req.AssignedTo
	}
	if req.Title != "" {
		task.Title = req.Title
	}
	if req.Description != "" {
		task.Description = req.Description
	}
	if req.Priority != nil {
		task.Priority = *req.Priority
	}
	if req.DueDate != nil {
		task.DueDate = *req.DueDate
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := s.repo.Update(tx, task); err != nil {
			return fmt.Errorf("failed to update task: %w", err)
		}
		return s.stampActivity(tx, task.ProjectID, actor)
	})
	if err != nil {
		return nil, err
	}

	return taskToResponse(task), nil
}

// ChangeStatus moves a task one step along its lifecycle. Only the assignee
// acting as developer on the task's project (or an admin) may do this, and
// transitions are forward-only.
func (s *TaskService) ChangeStatus(actor authz.Actor, id uuid.UUID, req *ChangeStatusRequest) (*TaskResponse, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, collectStructErrors(err)
	}

	task, err := s.engine.AuthorizeTask(actor, id, models.ProjectRoleDeveloper)
	if err != nil {
		return nil, err
	}

	if !actor.IsAdmin && task.AssignedTo != actor.UserID {
		return nil, apperrors.ErrNotTaskAssignee
	}

	if !task.Status.CanTransitionTo(req.Status) {
		return nil, apperrors.NewValidationErrors(
			fmt.Sprintf("cannot change status from %s to %s", task.Status, req.Status))
	}
	task.Status = req.Status

	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := s.repo.Update(tx, task); err != nil {
			return fmt.Errorf("failed to change task status: %w", err)
		}
		return s.stampActivity(tx, task.ProjectID, actor)
	})
	if err != nil {
		return nil, err
	}

	return taskToResponse(task), nil
}

// AddNotes attaches tester notes to a task. Restricted to the tester role on
// the task's project.
func (s *TaskService) AddNotes(actor authz.Actor, id uuid.UUID, req *AddNotesRequest) (*TaskResponse, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, collectStructErrors(err)
	}

	task, err := s.engine.AuthorizeTask(actor, id, models.ProjectRoleTester)
	if err != nil {
		return nil, err
	}

	task.Notes = &req.Notes

	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := s.repo.Update(tx, task); err != nil {
			return fmt.Errorf("failed to add task notes: %w", err)
		}
		return s.stampActivity(tx, task.ProjectID, actor)
	})
	if err != nil {
		return nil, err
	}

	return taskToResponse(task), nil
}

// Delete soft-deletes a task
func (s *TaskService) Delete(id uuid.UUID) error {
	if _, err := s.repo.GetByID(id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperrors.ErrTaskNotFound
		}
		return fmt.Errorf("failed to get task: %w", err)
	}

	if err := s.repo.Delete(id); err != nil {
		return fmt.Errorf("failed to delete task: %w", err)
	}
	return nil
}

// Trashed retrieves soft-deleted tasks with pagination
func (s *TaskService) Trashed(page, pageSize int) (*TaskListResponse, error) {
	limit, offset := paginate(page, pageSize)
	tasks, total, err := s.repo.GetTrashed(limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list trashed tasks: %w", err)
	}
	return s.toListResponse(tasks, total, page, pageSize), nil
}

// Restore clears the soft-delete marker of a trashed task
func (s *TaskService) Restore(id uuid.UUID) (*TaskResponse, error) {
	task, err := s.repo.GetTrashedByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrTaskNotFound
		}
		return nil, fmt.Errorf("failed to get trashed task: %w", err)
	}

	if err := s.repo.Restore(id); err != nil {
		return nil, fmt.Errorf("failed to restore task: %w", err)
	}

	task.DeletedAt = gorm.DeletedAt{}
	return taskToResponse(task), nil
}

// ForceDelete permanently removes an already-trashed task. Operating on a
// non-trashed row is a NotFound.
func (s *TaskService) ForceDelete(id uuid.UUID) error {
	if _, err := s.repo.GetTrashedByID(id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperrors.ErrTaskNotFound
		}
		return fmt.Errorf("failed to get trashed task: %w", err)
	}

	if err := s.repo.ForceDelete(id); err != nil {
		return fmt.Errorf("failed to force delete task: %w", err)
	}
	return nil
}

// ListMyProjects retrieves all tasks whose project the actor is a member of
func (s *TaskService) ListMyProjects(actor authz.Actor, page, pageSize int) (*TaskListResponse, error) {
	limit, offset := paginate(page, pageSize)
	tasks, total, err := s.repo.GetForUser(actor.UserID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list tasks in my projects: %w", err)
	}
	return s.toListResponse(tasks, total, page, pageSize), nil
}

// validateAssignee enforces the assignment invariant: the assignee must
// exist, must not be admin-flagged, and must hold a developer membership on
// the project. Violations are collected and reported together.
func (s *TaskService) validateAssignee(projectID, assigneeID uuid.UUID) error {
	collected := &apperrors.ValidationErrors{}

	user, err := s.userRepo.GetByID(assigneeID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			collected.Add("the assigned user does not exist")
			return collected
		}
		return fmt.Errorf("failed to verify assignee: %w", err)
	}
	if user.IsAdmin {
		collected.Add("the assigned user cannot be an admin")
	}

	membership, err := s.membershipRepo.GetByProjectAndUser(projectID, assigneeID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			collected.Add("the assigned user is not associated with the project")
			return collected
		}
		return fmt.Errorf("failed to verify assignee membership: %w", err)
	}
	if membership.Role != models.ProjectRoleDeveloper {
		collected.Add("you can only assign the task to a developer")
	}

	if collected.HasErrors() {
		return collected
	}
	return nil
}

// stampActivity records the actor's activity on the project pivot row inside
// tx. Admin actors may act without holding a membership, so a missing row is
// not an error here.
func (s *TaskService) stampActivity(tx *gorm.DB, projectID uuid.UUID, actor authz.Actor) error {
	rows, err := s.membershipRepo.UpdateActivity(tx, projectID, actor.UserID, time.Now())
	if err != nil {
		return fmt.Errorf("failed to stamp member activity: %w", err)
	}
	if rows == 0 && !actor.IsAdmin {
		return apperrors.ErrMembershipNotFound
	}
	return nil
}

func (s *TaskService) toListResponse(tasks []models.Task, total int64, page, pageSize int) *TaskListResponse {
	resp := &TaskListResponse{
		Tasks:    make([]TaskResponse, 0, len(tasks)),
		Total:    total,
		Page:     page,
		PageSize: pageSize,
	}
	for i := range tasks {
		resp.Tasks = append(resp.Tasks, *taskToResponse(&tasks[i]))
	}
	return resp
}
