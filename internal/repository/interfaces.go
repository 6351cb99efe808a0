package repository

import (
	"time"

	"task-manager-backend/internal/database/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

//go:generate mockgen -source=interfaces.go -destination=../mocks/repository_mocks.go -package=mocks

// UserRepositoryInterface defines the interface for user repository operations
type UserRepositoryInterface interface {
	Create(user *models.User) error
	GetByID(id uuid.UUID) (*models.User, error)
	GetByEmail(email string) (*models.User, error)
	GetAll(limit, offset int, status models.TaskStatus, priority models.TaskPriority) ([]models.User, int64, error)
	GetAllWithAssignedTasks(limit, offset int) ([]models.User, int64, error)
	Update(user *models.User) error
	Delete(id uuid.UUID) error
	GetTrashed(limit, offset int) ([]models.User, int64, error)
	GetTrashedByID(id uuid.UUID) (*models.User, error)
	Restore(id uuid.UUID) error
	ForceDelete(id uuid.UUID) error
}

// ProjectRepositoryInterface defines the interface for project repository operations
type ProjectRepositoryInterface interface {
	Create(project *models.Project) error
	GetByID(id uuid.UUID) (*models.Project, error)
	GetByIDForUpdate(tx *gorm.DB, id uuid.UUID) (*models.Project, error)
	GetWithDetails(id uuid.UUID) (*models.Project, error)
	GetAll(limit, offset int) ([]models.Project, int64, error)
	LatestTask(projectID uuid.UUID) (*models.Task, error)
	OldestTask(projectID uuid.UUID) (*models.Task, error)
	HighestPriorityTask(projectID uuid.UUID, titleFilter string) (*models.Task, error)
	Update(project *models.Project) error
	Delete(id uuid.UUID) error
	GetTrashed(limit, offset int) ([]models.Project, int64, error)
	GetTrashedByID(id uuid.UUID) (*models.Project, error)
	Restore(id uuid.UUID) error
	ForceDelete(id uuid.UUID) error
}

// MembershipRepositoryInterface defines the interface for membership repository operations
type MembershipRepositoryInterface interface {
	GetByProjectAndUser(projectID, userID uuid.UUID) (*models.Membership, error)
	GetByProject(projectID uuid.UUID) ([]models.Membership, error)
	GetByProjectForUpdate(tx *gorm.DB, projectID uuid.UUID) ([]models.Membership, error)
	CreateBatch(tx *gorm.DB, memberships []models.Membership) error
	DeleteByProjectAndUsers(projectID uuid.UUID, userIDs []uuid.UUID) error
	UpdateActivity(tx *gorm.DB, projectID, userID uuid.UUID, at time.Time) (int64, error)
	UpdateContribution(projectID, userID uuid.UUID, hours int) (int64, error)
}

// TaskRepositoryInterface defines the interface for task repository operations
type TaskRepositoryInterface interface {
	Create(tx *gorm.DB, task *models.Task) error
	GetByID(id uuid.UUID) (*models.Task, error)
	GetAll(limit, offset int) ([]models.Task, int64, error)
	GetForUser(userID uuid.UUID, limit, offset int) ([]models.Task, int64, error)
	Update(tx *gorm.DB, task *models.Task) error
	Delete(id uuid.UUID) error
	GetTrashed(limit, offset int) ([]models.Task, int64, error)
	GetTrashedByID(id uuid.UUID) (*models.Task, error)
	Restore(id uuid.UUID) error
	ForceDelete(id uuid.UUID) error
}
