package service

import (
	"errors"
	"fmt"

	"task-manager-backend/internal/auth"
	"task-manager-backend/internal/database/models"
	apperrors "task-manager-backend/internal/errors"
	"task-manager-backend/internal/repository"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// UserService handles business logic for users
type UserService struct {
	repo      repository.UserRepositoryInterface
	validator *validator.Validate
}

// NewUserService creates a new user service
func NewUserService(repo repository.UserRepositoryInterface, validator *validator.Validate) *UserService {
	return &UserService{
		repo:      repo,
		validator: validator,
	}
}

// CreateUserRequest represents the request to create a user
type CreateUserRequest struct {
	Name     string `json:"name" validate:"required,max=255"`
	Email    string `json:"email" validate:"required,email,max=255"`
	Password string `json:"password" validate:"required,min=8,max=255"`
	IsAdmin  bool   `json:"is_admin"`
}

// UpdateUserRequest represents the request to update a user
type UpdateUserRequest struct {
	Name     string `json:"name,omitempty" validate:"omitempty,max=255"`
	Email    string `json:"email,omitempty" validate:"omitempty,email,max=255"`
	Password string `json:"password,omitempty" validate:"omitempty,min=8,max=255"`
}

// List retrieves users with pagination. The optional status and priority
// filters narrow the listing to users holding a matching assigned task.
func (s *UserService) List(page, pageSize int, status, priority string) (*UserListResponse, error) {
	collected := &apperrors.ValidationErrors{}
	if status != "" && !models.TaskStatus(status).Valid() {
		collected.Add("the status filter must be one of: new in_progress completed")
	}
	if priority != "" && !models.TaskPriority(priority).Valid() {
		collected.Add("the priority filter must be one of: low medium high")
	}
	if collected.HasErrors() {
		return nil, collected
	}

	limit, offset := paginate(page, pageSize)
	users, total, err := s.repo.GetAll(limit, offset, models.TaskStatus(status), models.TaskPriority(priority))
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}

	return s.toListResponse(users, total, page, pageSize), nil
}

// ListWithAssignedTasks retrieves users that have at least one assigned task
func (s *UserService) ListWithAssignedTasks(page, pageSize int) (*UserListResponse, error) {
	limit, offset := paginate(page, pageSize)
	users, total, err := s.repo.GetAllWithAssignedTasks(limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list users with assigned tasks: %w", err)
	}

	return s.toListResponse(users, total, page, pageSize), nil
}

// Create creates a new user with a bcrypt-hashed password
func (s *UserService) Create(req *CreateUserRequest) (*UserResponse, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, collectStructErrors(err)
	}

	existing, err := s.repo.GetByEmail(req.Email)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("failed to check existing user by email: %w", err)
	}
	if existing != nil {
		return nil, apperrors.ErrUserExists
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, err
	}

	user := &models.User{
		Name:     req.Name,
		Email:    req.Email,
		Password: hash,
		IsAdmin:  req.IsAdmin,
	}
	if err := s.repo.Create(user); err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	return userToResponse(user), nil
}

// GetByID retrieves a user by ID
func (s *UserService) GetByID(id uuid.UUID) (*UserResponse, error) {
	user, err := s.repo.GetByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	return userToResponse(user), nil
}

// Update applies a partial update to a user
func (s *UserService) Update(id uuid.UUID, req *UpdateUserRequest) (*UserResponse, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, collectStructErrors(err)
	}

	user, err := s.repo.GetByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	if req.Name != "" {
		user.Name = req.Name
	}
	if req.Email != "" && req.Email != user.Email {
		existing, err := s.repo.GetByEmail(req.Email)
		if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("failed to check existing user by email: %w", err)
		}
		if existing != nil {
			return nil, apperrors.ErrUserExists
		}
		user.Email = req.Email
	}
	if req.Password != "" {
		hash, err := auth.HashPassword(req.Password)
		if err != nil {
			return nil, err
		}
		user.Password = hash
	}

	if err := s.repo.Update(user); err != nil {
		return nil, fmt.Errorf("failed to update user: %w", err)
	}

	return userToResponse(user), nil
}

// Delete soft-deletes a user
func (s *UserService) Delete(id uuid.UUID) error {
	if _, err := s.repo.GetByID(id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperrors.ErrUserNotFound
		}
		return fmt.Errorf("failed to get user: %w", err)
	}

	if err := s.repo.Delete(id); err != nil {
		return fmt.Errorf("failed to delete user: %w", err)
	}
	return nil
}

// Trashed retrieves soft-deleted users with pagination
func (s *UserService) Trashed(page, pageSize int) (*UserListResponse, error) {
	limit, offset := paginate(page, pageSize)
	users, total, err := s.repo.GetTrashed(limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list trashed users: %w", err)
	}

	return s.toListResponse(users, total, page, pageSize), nil
}

// Restore clears the soft-delete marker of a trashed user
func (s *UserService) Restore(id uuid.UUID) (*UserResponse, error) {
	user, err := s.repo.GetTrashedByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to get trashed user: %w", err)
	}

	if err := s.repo.Restore(id); err != nil {
		return nil, fmt.Errorf("failed to restore user: %w", err)
	}

	user.DeletedAt = gorm.DeletedAt{}
	return userToResponse(user), nil
}

// ForceDelete permanently removes an already-trashed user. Operating on a
// non-trashed row is a NotFound.
func (s *UserService) ForceDelete(id uuid.UUID) error {
	if _, err := s.repo.GetTrashedByID(id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperrors.ErrUserNotFound
		}
		return fmt.Errorf("failed to get trashed user: %w", err)
	}

	if err := s.repo.ForceDelete(id); err != nil {
		return fmt.Errorf("failed to force delete user: %w", err)
	}
	return nil
}

func (s *UserService) toListResponse(users []models.User, total int64, page, pageSize int) *UserListResponse {
	resp := &UserListResponse{
		Users:    make([]UserResponse, 0, len(users)),
		Total:    total,
		Page:     page,
		PageSize: pageSize,
	}
	for i := range users {
		resp.Users = append(resp.Users, *userToResponse(&users[i]))
	}
	return resp
}
