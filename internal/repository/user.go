package repository

import (
	"task-manager-backend/internal/database/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// UserRepository handles database operations for users
type UserRepository struct {
	db *gorm.DB
}

// NewUserRepository creates a new user repository
func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{db: db}
}

// Create creates a new user
func (r *UserRepository) Create(user *models.User) error {
	return r.db.Create(user).Error
}

// GetByID retrieves a user by ID
func (r *UserRepository) GetByID(id uuid.UUID) (*models.User, error) {
	var user models.User
	err := r.db.First(&user, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// GetByEmail retrieves a user by email
func (r *UserRepository) GetByEmail(email string) (*models.User, error) {
	var user models.User
	err := r.db.First(&user, "email = ?", email).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// GetAll retrieves users with pagination. When a task status or priority is
// given, only users holding at least one assigned task matching the filters
// are returned.
func (r *UserRepository) GetAll(limit, offset int, status models.TaskStatus, priority models.TaskPriority) ([]models.User, int64, error) {
	var users []models.User
	var total int64

	query := r.db.Model(&models.User{})
	if status != "" || priority != "" {
		sub := r.db.Model(&models.Task{}).
			Select("1").
			Where("tasks.assigned_to = users.id AND tasks.deleted_at IS NULL")
		if status != "" {
			sub = sub.Where("tasks.status = ?", status)
		}
		if priority != "" {
			sub = sub.Where("tasks.priority = ?", priority)
		}
		query = query.Where("EXISTS (?)", sub)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := query.Preload("AssignedTasks").Limit(limit).Offset(offset).Find(&users).Error
	if err != nil {
		return nil, 0, err
	}

	return users, total, nil
}

// GetAllWithAssignedTasks retrieves users that have at least one assigned task
func (r *UserRepository) GetAllWithAssignedTasks(limit, offset int) ([]models.User, int64, error) {
	var users []models.User
	var total int64

	query := r.db.Model(&models.User{}).
		Where("EXISTS (?)", r.db.Model(&models.Task{}).
			Select("1").
			Where("tasks.assigned_to = users.id AND tasks.deleted_at IS NULL"))

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := query.Preload("AssignedTasks").Limit(limit).Offset(offset).Find(&users).Error
	if err != nil {
		return nil, 0, err
	}

	return users, total, nil
}

// Update updates a user
func (r *UserRepository) Update(user *models.User) error {
	return r.db.Save(user).Error
}

// Delete soft-deletes a user
func (r *UserRepository) Delete(id uuid.UUID) error {
	return r.db.Delete(&models.User{}, "id = ?", id).Error
}

// GetTrashed retrieves soft-deleted users with pagination
func (r *UserRepository) GetTrashed(limit, offset int) ([]models.User, int64, error) {
	var users []models.User
	var total int64

	query := r.db.Unscoped().Model(&models.User{}).Where("deleted_at IS NOT NULL")

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := query.Limit(limit).Offset(offset).Find(&users).Error
	if err != nil {
		return nil, 0, err
	}

	return users, total, nil
}

// GetTrashedByID retrieves a soft-deleted user by ID. Non-trashed rows are
// not visible through this lookup.
func (r *UserRepository) GetTrashedByID(id uuid.UUID) (*models.User, error) {
	var user models.User
	err := r.db.Unscoped().Where("deleted_at IS NOT NULL").First(&user, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// Restore clears the soft-delete marker of a trashed user
func (r *UserRepository) Restore(id uuid.UUID) error {
	return r.db.Unscoped().Model(&models.User{}).Where("id = ?", id).Update("deleted_at", nil).Error
}

// ForceDelete permanently removes a user row
func (r *UserRepository) ForceDelete(id uuid.UUID) error {
	return r.db.Unscoped().Delete(&models.User{}, "id = ?", id).Error
}
