package repository

import (
	"time"

	"task-manager-backend/internal/database/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// MembershipRepository handles database operations for project memberships
type MembershipRepository struct {
	db *gorm.DB
}

// NewMembershipRepository creates a new membership repository
func NewMembershipRepository(db *gorm.DB) *MembershipRepository {
	return &MembershipRepository{db: db}
}

// GetByProjectAndUser retrieves the membership for a (project, user) pair
func (r *MembershipRepository) GetByProjectAndUser(projectID, userID uuid.UUID) (*models.Membership, error) {
	var membership models.Membership
	err := r.db.First(&membership, "project_id = ? AND user_id = ?", projectID, userID).Error
	if err != nil {
		return nil, err
	}
	return &membership, nil
}

// GetByProject retrieves all memberships of a project with their users
func (r *MembershipRepository) GetByProject(projectID uuid.UUID) ([]models.Membership, error) {
	var memberships []models.Membership
	err := r.db.Preload("User").Where("project_id = ?", projectID).Find(&memberships).Error
	if err != nil {
		return nil, err
	}
	return memberships, nil
}

// GetByProjectForUpdate retrieves the memberships of a project inside tx while
// taking row locks. Concurrent assigns on the same project serialize here, so
// the manager-uniqueness check cannot race.
func (r *MembershipRepository) GetByProjectForUpdate(tx *gorm.DB, projectID uuid.UUID) ([]models.Membership, error) {
	var memberships []models.Membership
	err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("project_id = ?", projectID).
		Find(&memberships).Error
	if err != nil {
		return nil, err
	}
	return memberships, nil
}

// CreateBatch inserts membership rows inside tx
func (r *MembershipRepository) CreateBatch(tx *gorm.DB, memberships []models.Membership) error {
	return tx.Create(&memberships).Error
}

// DeleteByProjectAndUsers hard-deletes the named (project, user) pairs.
// Pairs without a membership row are silently skipped.
func (r *MembershipRepository) DeleteByProjectAndUsers(projectID uuid.UUID, userIDs []uuid.UUID) error {
	if len(userIDs) == 0 {
		return nil
	}
	return r.db.Where("project_id = ? AND user_id IN ?", projectID, userIDs).
		Delete(&models.Membership{}).Error
}

// UpdateActivity stamps last_activity on the pivot row for the pair and
// returns the number of affected rows.
func (r *MembershipRepository) UpdateActivity(tx *gorm.DB, projectID, userID uuid.UUID, at time.Time) (int64, error) {
	db := tx
	if db == nil {
		db = r.db
	}
	res := db.Model(&models.Membership{}).
		Where("project_id = ? AND user_id = ?", projectID, userID).
		Update("last_activity", at)
	return res.RowsAffected, res.Error
}

// UpdateContribution adds hours to contribution_hours on the pivot row for
// the pair and returns the number of affected rows.
func (r *MembershipRepository) UpdateContribution(projectID, userID uuid.UUID, hours int) (int64, error) {
	res := r.db.Model(&models.Membership{}).
		Where("project_id = ? AND user_id = ?", projectID, userID).
		Update("contribution_hours", gorm.Expr("contribution_hours + ?", hours))
	return res.RowsAffected, res.Error
}
