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

// MembershipService handles business logic for project memberships: batch
// assignment, unassignment, activity stamping and contribution hours.
type MembershipService struct {
	db          *gorm.DB
	repo        repository.MembershipRepositoryInterface
	projectRepo repository.ProjectRepositoryInterface
	userRepo    repository.UserRepositoryInterface
	engine      *authz.Engine
	validator   *validator.Validate
}

// NewMembershipService creates a new membership service
func NewMembershipService(db *gorm.DB, repo repository.MembershipRepositoryInterface, projectRepo repository.ProjectRepositoryInterface, userRepo repository.UserRepositoryInterface, engine *authz.Engine, validator *validator.Validate) *MembershipService {
	return &MembershipService{
		db:          db,
		repo:        repo,
		projectRepo: projectRepo,
		userRepo:    userRepo,
		engine:      engine,
		validator:   validator,
	}
}

// AssignMemberInput names one user and the role to grant
type AssignMemberInput struct {
	UserID uuid.UUID          `json:"id" validate:"required"`
	Role   models.ProjectRole `json:"role" validate:"required,oneof=manager developer tester"`
}

// AssignMembersRequest represents the request to assign users to a project
type AssignMembersRequest struct {
	Users []AssignMemberInput `json:"users" validate:"required,min=1,dive"`
}

// UnassignMemberInput names one user to remove
type UnassignMemberInput struct {
	UserID uuid.UUID `json:"id" validate:"required"`
}

// UnassignMembersRequest represents the request to unassign users from a project
type UnassignMembersRequest struct {
	Users []UnassignMemberInput `json:"users" validate:"required,min=1,dive"`
}

// AddContributionHoursRequest represents the request to record contribution hours
type AddContributionHoursRequest struct {
	ContributionHours int `json:"contribution_hours" validate:"required,min=1"`
}

// Assign grants project roles to a batch of users. The whole batch is
// validated against the existing membership set before any row is written:
// duplicate members (existing or within the batch), unknown or deleted users,
// admin-flagged users, and any assignment that would leave the project with
// more than one manager are all collected and reported together.
//
// The project row is locked FOR UPDATE inside the same transaction that
// inserts the batch, so two concurrent assigns on one project serialize and
// cannot both observe zero managers and each add one. Locking only the
// membership rows would not do: on a memberless project that set is empty
// and nothing would be locked.
func (s *MembershipService) Assign(projectID uuid.UUID, req *AssignMembersRequest) ([]MembershipResponse, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, collectStructErrors(err)
	}

	if _, err := s.projectRepo.GetByID(projectID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrProjectNotFound
		}
		return nil, fmt.Errorf("failed to verify project: %w", err)
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		if _, err := s.projectRepo.GetByIDForUpdate(tx, projectID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperrors.ErrProjectNotFound
			}
			return fmt.Errorf("failed to lock project: %w", err)
		}

		existing, err := s.repo.GetByProjectForUpdate(tx, projectID)
		if err != nil {
			return fmt.Errorf("failed to lock memberships: %w", err)
		}

		collected := &apperrors.ValidationErrors{}

		members := make(map[uuid.UUID]bool, len(existing))
		managerCount := 0
		for _, m := range existing {
			members[m.UserID] = true
			if m.Role == models.ProjectRoleManager {
				managerCount++
			}
		}

		seen := make(map[uuid.UUID]bool, len(req.Users))
		for _, input := range req.Users {
			user, err := s.userRepo.GetByID(input.UserID)
			if err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					collected.Add("the user with ID %s does not exist", input.UserID)
					continue
				}
				return fmt.Errorf("failed to verify user: %w", err)
			}
			if user.IsAdmin {
				collected.Add("the user with ID %s is an admin and cannot be assigned", input.UserID)
			}
			if members[input.UserID] {
				collected.Add("the user with ID %s is already assigned to this project", input.UserID)
			}
			if seen[input.UserID] {
				collected.Add("the user with ID %s appears more than once in the request", input.UserID)
			}
			seen[input.UserID] = true
			if input.Role == models.ProjectRoleManager {
				managerCount++
			}
		}

		if managerCount > 1 {
			collected.Add("there can be only one manager for the project")
		}

		if collected.HasErrors() {
			return collected
		}

		memberships := make([]models.Membership, 0, len(req.Users))
		for _, input := range req.Users {
			memberships = append(memberships, models.Membership{
				ProjectID: projectID,
				UserID:    input.UserID,
				Role:      input.Role,
			})
		}
		return s.repo.CreateBatch(tx, memberships)
	})
	if err != nil {
		return nil, err
	}

	memberships, err := s.repo.GetByProject(projectID)
	if err != nil {
		return nil, fmt.Errorf("failed to load memberships: %w", err)
	}
	resp := make([]MembershipResponse, 0, len(memberships))
	for i := range memberships {
		resp = append(resp, *membershipToResponse(&memberships[i]))
	}
	return resp, nil
}

// Unassign removes the named users from the project. Users without a
// membership row are skipped, so the operation is idempotent.
func (s *MembershipService) Unassign(projectID uuid.UUID, req *UnassignMembersRequest) error {
	if err := s.validator.Struct(req); err != nil {
		return collectStructErrors(err)
	}

	if _, err := s.projectRepo.GetByID(projectID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperrors.ErrProjectNotFound
		}
		return fmt.Errorf("failed to verify project: %w", err)
	}

	userIDs := make([]uuid.UUID, 0, len(req.Users))
	for _, input := range req.Users {
		userIDs = append(userIDs, input.UserID)
	}
	if err := s.repo.DeleteByProjectAndUsers(projectID, userIDs); err != nil {
		return fmt.Errorf("failed to unassign members: %w", err)
	}
	return nil
}

// TouchActivity stamps last_activity on the (project, user) pair
func (s *MembershipService) TouchActivity(projectID, userID uuid.UUID) error {
	rows, err := s.repo.UpdateActivity(nil, projectID, userID, time.Now())
	if err != nil {
		return fmt.Errorf("failed to update activity: %w", err)
	}
	if rows == 0 {
		return apperrors.ErrMembershipNotFound
	}
	return nil
}

// AddContribution records contribution hours for the actor on the project.
// Any project role may contribute; the membership row must exist.
func (s *MembershipService) AddContribution(actor authz.Actor, projectID uuid.UUID, req *AddContributionHoursRequest) ([]MembershipResponse, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, collectStructErrors(err)
	}

	if err := s.engine.Authorize(actor, projectID,
		models.ProjectRoleManager, models.ProjectRoleDeveloper, models.ProjectRoleTester); err != nil {
		return nil, err
	}

	rows, err := s.repo.UpdateContribution(projectID, actor.UserID, req.ContributionHours)
	if err != nil {
		return nil, fmt.Errorf("failed to update contribution hours: %w", err)
	}
	if rows == 0 {
		return nil, apperrors.ErrMembershipNotFound
	}

	memberships, err := s.repo.GetByProject(projectID)
	if err != nil {
		return nil, fmt.Errorf("failed to load memberships: %w", err)
	}
	resp := make([]MembershipResponse, 0, len(memberships))
	for i := range memberships {
		resp = append(resp, *membershipToResponse(&memberships[i]))
	}
	return resp, nil
}
