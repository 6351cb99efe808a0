// Package authz resolves project roles and gates every mutating operation.
//
// Policy: resource existence always wins over authorization. A reference to
// a missing project or task yields NotFound (404) before any role check is
// evaluated; role failures on an existing resource yield Unauthorized (401).
// This keeps the existence-leak behavior uniform across every endpoint.
package authz

import (
	"errors"
	"fmt"

	"task-manager-backend/internal/database/models"
	apperrors "task-manager-backend/internal/errors"
	"task-manager-backend/internal/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Actor is the explicit caller context threaded through every authorization
// and lifecycle call. It is built once by the auth middleware from validated
// JWT claims; nothing below the transport layer reads ambient request state.
type Actor struct {
	UserID  uuid.UUID
	IsAdmin bool
}

// Engine answers "does user U have role R on project P (or admin)?".
// It performs pure reads only.
type Engine struct {
	projectRepo    repository.ProjectRepositoryInterface
	taskRepo       repository.TaskRepositoryInterface
	membershipRepo repository.MembershipRepositoryInterface
}

// NewEngine creates a new authorization engine
func NewEngine(projectRepo repository.ProjectRepositoryInterface, taskRepo repository.TaskRepositoryInterface, membershipRepo repository.MembershipRepositoryInterface) *Engine {
	return &Engine{
		projectRepo:    projectRepo,
		taskRepo:       taskRepo,
		membershipRepo: membershipRepo,
	}
}

// ResolveRole returns the role the user holds on the project, or
// ErrNotProjectMember when no membership row exists.
func (e *Engine) ResolveRole(userID, projectID uuid.UUID) (models.ProjectRole, error) {
	membership, err := e.membershipRepo.GetByProjectAndUser(projectID, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", apperrors.ErrNotProjectMember
		}
		return "", fmt.Errorf("failed to resolve project role: %w", err)
	}
	return membership.Role, nil
}

// Authorize verifies that the actor holds one of the allowed roles on the
// project. Admin actors bypass the role check entirely. The project is
// verified to exist first, so a dangling project reference surfaces as
// NotFound rather than Unauthorized.
func (e *Engine) Authorize(actor Actor, projectID uuid.UUID, allowed ...models.ProjectRole) error {
	if _, err := e.projectRepo.GetByID(projectID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperrors.ErrProjectNotFound
		}
		return fmt.Errorf("failed to verify project: %w", err)
	}

	if actor.IsAdmin {
		return nil
	}

	role, err := e.ResolveRole(actor.UserID, projectID)
	if err != nil {
		return err
	}

	for _, r := range allowed {
		if role == r {
			return nil
		}
	}
	return apperrors.ErrRoleNotAllowed
}

// AuthorizeTask authorizes a task-scoped operation. The project is derived
// from the stored task row, never from request input, so a mismatched
// project_id in the payload cannot be used to spoof a role. The task is
// returned so callers do not need a second lookup.
func (e *Engine) AuthorizeTask(actor Actor, taskID uuid.UUID, allowed ...models.ProjectRole) (*models.Task, error) {
	task, err := e.taskRepo.GetByID(taskID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrTaskNotFound
		}
		return nil, fmt.Errorf("failed to load task: %w", err)
	}

	if actor.IsAdmin {
		return task, nil
	}

	role, err := e.ResolveRole(actor.UserID, task.ProjectID)
	if err != nil {
		return nil, err
	}

	for _, r := range allowed {
		if role == r {
			return task, nil
		}
	}
	return nil, apperrors.ErrRoleNotAllowed
}
