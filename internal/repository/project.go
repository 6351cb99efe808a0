package repository

import (
	"task-manager-backend/internal/database/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ProjectRepository handles database operations for projects
type ProjectRepository struct {
	db *gorm.DB
}

// NewProjectRepository creates a new project repository
func NewProjectRepository(db *gorm.DB) *ProjectRepository {
	return &ProjectRepository{db: db}
}

// Create creates a new project
func (r *ProjectRepository) Create(project *models.Project) error {
	return r.db.Create(project).Error
}

// GetByID retrieves a project by ID
func (r *ProjectRepository) GetByID(id uuid.UUID) (*models.Project, error) {
	var project models.Project
	err := r.db.First(&project, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &project, nil
}

// GetByIDForUpdate retrieves a project by ID inside tx while taking a row
// lock. Writers that must serialize per project (such as batch membership
// assignment) lock here first: a FOR UPDATE over the membership rows alone
// locks nothing when the project has no members yet.
func (r *ProjectRepository) GetByIDForUpdate(tx *gorm.DB, id uuid.UUID) (*models.Project, error) {
	var project models.Project
	err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&project, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &project, nil
}

// GetWithDetails retrieves a project with its memberships (including users)
// and tasks
func (r *ProjectRepository) GetWithDetails(id uuid.UUID) (*models.Project, error) {
	var project models.Project
	err := r.db.Preload("Memberships.User").Preload("Tasks").First(&project, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &project, nil
}

// GetAll retrieves projects with pagination
func (r *ProjectRepository) GetAll(limit, offset int) ([]models.Project, int64, error) {
	var projects []models.Project
	var total int64

	if err := r.db.Model(&models.Project{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := r.db.Limit(limit).Offset(offset).Find(&projects).Error
	if err != nil {
		return nil, 0, err
	}

	return projects, total, nil
}

// LatestTask returns the most recently created task of a project
func (r *ProjectRepository) LatestTask(projectID uuid.UUID) (*models.Task, error) {
	var task models.Task
	err := r.db.Where("project_id = ?", projectID).Order("created_at DESC").First(&task).Error
	if err != nil {
		return nil, err
	}
	return &task, nil
}

// OldestTask returns the oldest task of a project
func (r *ProjectRepository) OldestTask(projectID uuid.UUID) (*models.Task, error) {
	var task models.Task
	err := r.db.Where("project_id = ?", projectID).Order("created_at ASC").First(&task).Error
	if err != nil {
		return nil, err
	}
	return &task, nil
}

// HighestPriorityTask returns the most recently created high-priority task of
// a project, optionally narrowed by a title substring match.
func (r *ProjectRepository) HighestPriorityTask(projectID uuid.UUID, titleFilter string) (*models.Task, error) {
	var task models.Task
	query := r.db.Where("project_id = ? AND priority = ?", projectID, models.TaskPriorityHigh)
	if titleFilter != "" {
		query = query.Where("title ILIKE ?", "%"+titleFilter+"%")
	}
	err := query.Order("created_at DESC").First(&task).Error
	if err != nil {
		return nil, err
	}
	return &task, nil
}

// Update updates a project
func (r *ProjectRepository) Update(project *models.Project) error {
	return r.db.Save(project).Error
}

// Delete soft-deletes a project
func (r *ProjectRepository) Delete(id uuid.UUID) error {
	return r.db.Delete(&models.Project{}, "id = ?", id).Error
}

// GetTrashed retrieves soft-deleted projects with pagination
func (r *ProjectRepository) GetTrashed(limit, offset int) ([]models.Project, int64, error) {
	var projects []models.Project
	var total int64

	query := r.db.Unscoped().Model(&models.Project{}).Where("deleted_at IS NOT NULL")

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := query.Limit(limit).Offset(offset).Find(&projects).Error
	if err != nil {
		return nil, 0, err
	}

	return projects, total, nil
}

// GetTrashedByID retrieves a soft-deleted project by ID
func (r *ProjectRepository) GetTrashedByID(id uuid.UUID) (*models.Project, error) {
	var project models.Project
	err := r.db.Unscoped().Where("deleted_at IS NOT NULL").First(&project, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &project, nil
}

// Restore clears the soft-delete marker of a trashed project
func (r *ProjectRepository) Restore(id uuid.UUID) error {
	return r.db.Unscoped().Model(&models.Project{}).Where("id = ?", id).Update("deleted_at", nil).Error
}

// ForceDelete permanently removes a project row. Memberships and tasks cascade.
func (r *ProjectRepository) ForceDelete(id uuid.UUID) error {
	return r.db.Unscoped().Delete(&models.Project{}, "id = ?", id).Error
}
