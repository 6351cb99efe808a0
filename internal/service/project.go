package service

import (
	"errors"
	"fmt"

	"task-manager-backend/internal/database/models"
	apperrors "task-manager-backend/internal/errors"
	"task-manager-backend/internal/repository"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ProjectService handles business logic for projects
type ProjectService struct {
	repo      repository.ProjectRepositoryInterface
	validator *validator.Validate
}

// NewProjectService creates a new project service
func NewProjectService(repo repository.ProjectRepositoryInterface, validator *validator.Validate) *ProjectService {
	return &ProjectService{
		repo:      repo,
		validator: validator,
	}
}

// CreateProjectRequest represents the request to create a project
type CreateProjectRequest struct {
	Name        string `json:"name" validate:"required,max=255"`
	Description string `json:"description"`
}

// UpdateProjectRequest represents the request to update a project
type UpdateProjectRequest struct {
	Name        string `json:"name,omitempty" validate:"omitempty,max=255"`
	Description string `json:"description,omitempty"`
}

// List retrieves projects with pagination, optionally decorated with the
// per-project derived task views.
func (s *ProjectService) List(page, pageSize int, withLatestTask, withOldestTask bool) (*ProjectListResponse, error) {
	limit, offset := paginate(page, pageSize)
	projects, total, err := s.repo.GetAll(limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list projects: %w", err)
	}

	resp := &ProjectListResponse{
		Projects: make([]ProjectResponse, 0, len(projects)),
		Total:    total,
		Page:     page,
		PageSize: pageSize,
	}
	for i := range projects {
		pr := projectToResponse(&projects[i])
		if withLatestTask {
			task, err := s.repo.LatestTask(projects[i].ID)
			if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, fmt.Errorf("failed to load latest task: %w", err)
			}
			if task != nil {
				pr.LatestTask = taskToResponse(task)
			}
		}
		if withOldestTask {
			task, err := s.repo.OldestTask(projects[i].ID)
			if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, fmt.Errorf("failed to load oldest task: %w", err)
			}
			if task != nil {
				pr.OldestTask = taskToResponse(task)
			}
		}
		resp.Projects = append(resp.Projects, *pr)
	}
	return resp, nil
}

// Get retrieves a project with members and tasks. When titleFilter is set it
// narrows the highest-priority-task sub-resource instead of loading every
// task.
func (s *ProjectService) Get(id uuid.UUID, titleFilter string) (*ProjectDetailResponse, error) {
	project, err := s.repo.GetWithDetails(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrProjectNotFound
		}
		return nil, fmt.Errorf("failed to get project: %w", err)
	}

	resp := &ProjectDetailResponse{
		ProjectResponse: *projectToResponse(project),
		Members:         make([]MembershipResponse, 0, len(project.Memberships)),
	}
	for i := range project.Memberships {
		resp.Members = append(resp.Members, *membershipToResponse(&project.Memberships[i]))
	}

	if titleFilter != "" {
		task, err := s.repo.HighestPriorityTask(id, titleFilter)
		if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("failed to load highest priority task: %w", err)
		}
		if task != nil {
			resp.HighestPriorityTask = taskToResponse(task)
		}
	} else {
		for i := range project.Tasks {
			resp.Tasks = append(resp.Tasks, *taskToResponse(&project.Tasks[i]))
		}
	}

	return resp, nil
}

// Create creates a new project
func (s *ProjectService) Create(req *CreateProjectRequest) (*ProjectResponse, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, collectStructErrors(err)
	}

	project := &models.Project{
		Name:        req.Name,
		Description: req.Description,
	}
	if err := s.repo.Create(project); err != nil {
		return nil, fmt.Errorf("failed to create project: %w", err)
	}

	return projectToResponse(project), nil
}

// Update applies a partial update to a project
func (s *ProjectService) Update(id uuid.UUID, req *UpdateProjectRequest) (*ProjectResponse, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, collectStructErrors(err)
	}

	project, err := s.repo.GetByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrProjectNotFound
		}
		return nil, fmt.Errorf("failed to get project: %w", err)
	}

	if req.Name != "" {
		project.Name = req.Name
	}
	if req.Description != "" {
		project.Description = req.Description
	}

	if err := s.repo.Update(project); err != nil {
		return nil, fmt.Errorf("failed to update project: %w", err)
	}

	return projectToResponse(project), nil
}

// Delete soft-deletes a project
func (s *ProjectService) Delete(id uuid.UUID) error {
	if _, err := s.repo.GetByID(id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperrors.ErrProjectNotFound
		}
		return fmt.Errorf("failed to get project: %w", err)
	}

	if err := s.repo.Delete(id); err != nil {
		return fmt.Errorf("failed to delete project: %w", err)
	}
	return nil
}

// Trashed retrieves soft-deleted projects with pagination
func (s *ProjectService) Trashed(page, pageSize int) (*ProjectListResponse, error) {
	limit, offset := paginate(page, pageSize)
	projects, total, err := s.repo.GetTrashed(limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list trashed projects: %w", err)
	}

	resp := &ProjectListResponse{
		Projects: make([]ProjectResponse, 0, len(projects)),
		Total:    total,
		Page:     page,
		PageSize: pageSize,
	}
	for i := range projects {
		resp.Projects = append(resp.Projects, *projectToResponse(&projects[i]))
	}
	return resp, nil
}

// Restore clears the soft-delete marker of a trashed project
func (s *ProjectService) Restore(id uuid.UUID) (*ProjectResponse, error) {
	project, err := s.repo.GetTrashedByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrProjectNotFound
		}
		return nil, fmt.Errorf("failed to get trashed project: %w", err)
	}

	if err := s.repo.Restore(id); err != nil {
		return nil, fmt.Errorf("failed to restore project: %w", err)
	}

	project.DeletedAt = gorm.DeletedAt{}
	return projectToResponse(project), nil
}

// ForceDelete permanently removes an already-trashed project. Operating on a
// non-trashed row is a NotFound.
func (s *ProjectService) ForceDelete(id uuid.UUID) error {
	if _, err := s.repo.GetTrashedByID(id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperrors.ErrProjectNotFound
		}
		return fmt.Errorf("failed to get trashed project: %w", err)
	}

	if err := s.repo.ForceDelete(id); err != nil {
		return fmt.Errorf("failed to force delete project: %w", err)
	}
	return nil
}
