package repository

import (
	"task-manager-backend/internal/database/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// TaskRepository handles database operations for tasks
type TaskRepository struct {
	db *gorm.DB
}

// NewTaskRepository creates a new task repository
func NewTaskRepository(db *gorm.DB) *TaskRepository {
	return &TaskRepository{db: db}
}

// Create inserts a task. When tx is non-nil the insert joins that transaction.
func (r *TaskRepository) Create(tx *gorm.DB, task *models.Task) error {
	db := tx
	if db == nil {
		db = r.db
	}
	return db.Create(task).Error
}

// GetByID retrieves a task by ID
func (r *TaskRepository) GetByID(id uuid.UUID) (*models.Task, error) {
	var task models.Task
	err := r.db.First(&task, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &task, nil
}

// GetAll retrieves tasks with pagination
func (r *TaskRepository) GetAll(limit, offset int) ([]models.Task, int64, error) {
	var tasks []models.Task
	var total int64

	if err := r.db.Model(&models.Task{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := r.db.Limit(limit).Offset(offset).Find(&tasks).Error
	if err != nil {
		return nil, 0, err
	}

	return tasks, total, nil
}

// GetForUser retrieves all tasks belonging to projects the user is a member
// of. This resolves through the membership rows, not through assignment.
func (r *TaskRepository) GetForUser(userID uuid.UUID, limit, offset int) ([]models.Task, int64, error) {
	var tasks []models.Task
	var total int64

	query := r.db.Model(&models.Task{}).
		Joins("JOIN memberships ON memberships.project_id = tasks.project_id").
		Where("memberships.user_id = ?", userID)

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := query.Limit(limit).Offset(offset).Find(&tasks).Error
	if err != nil {
		return nil, 0, err
	}

	return tasks, total, nil
}

// Update saves a task. When tx is non-nil the write joins that transaction.
func (r *TaskRepository) Update(tx *gorm.DB, task *models.Task) error {
	db := tx
	if db == nil {
		db = r.db
	}
	return db.Save(task).Error
}

// Delete soft-deletes a task
func (r *TaskRepository) Delete(id uuid.UUID) error {
	return r.db.Delete(&models.Task{}, "id = ?", id).Error
}

// GetTrashed retrieves soft-deleted tasks with pagination
func (r *TaskRepository) GetTrashed(limit, offset int) ([]models.Task, int64, error) {
	var tasks []models.Task
	var total int64

	query := r.db.Unscoped().Model(&models.Task{}).Where("deleted_at IS NOT NULL")

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := query.Limit(limit).Offset(offset).Find(&tasks).Error
	if err != nil {
		return nil, 0, err
	}

	return tasks, total, nil
}

// GetTrashedByID retrieves a soft-deleted task by ID
func (r *TaskRepository) GetTrashedByID(id uuid.UUID) (*models.Task, error) {
	var task models.Task
	err := r.db.Unscoped().Where("deleted_at IS NOT NULL").First(&task, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &task, nil
}

// Restore clears the soft-delete marker of a trashed task
func (r *TaskRepository) Restore(id uuid.UUID) error {
	return r.db.Unscoped().Model(&models.Task{}).Where("id = ?", id).Update("deleted_at", nil).Error
}

// ForceDelete permanently removes a task row
func (r *TaskRepository) ForceDelete(id uuid.UUID) error {
	return r.db.Unscoped().Delete(&models.Task{}, "id = ?", id).Error
}
