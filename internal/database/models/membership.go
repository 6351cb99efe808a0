package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ProjectRole represents the role a user holds on a single project.
type ProjectRole string

const (
	ProjectRoleManager   ProjectRole = "manager"
	ProjectRoleDeveloper ProjectRole = "developer"
	ProjectRoleTester    ProjectRole = "tester"
)

// Valid reports whether the role is one of the known project roles.
func (r ProjectRole) Valid() bool {
	switch r {
	case ProjectRoleManager, ProjectRoleDeveloper, ProjectRoleTester:
		return true
	}
	return false
}

// Membership is the role-bearing relation between a user and a project.
// It is a first-class entity rather than a bare join row: it carries the
// role, accumulated contribution hours and the last activity stamp.
// Unassignment hard-deletes the row; memberships are never soft-deleted.
//
// Invariants enforced at write time by the membership service:
//   - unique (project_id, user_id) pair
//   - at most one membership per project with role = manager
type Membership struct {
	ID                uuid.UUID   `json:"id" gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	ProjectID         uuid.UUID   `json:"project_id" gorm:"type:uuid;not null;uniqueIndex:idx_memberships_project_user" validate:"required"`
	UserID            uuid.UUID   `json:"user_id" gorm:"type:uuid;not null;uniqueIndex:idx_memberships_project_user" validate:"required"`
	Role              ProjectRole `json:"role" gorm:"type:varchar(50);not null" validate:"required,oneof=manager developer tester"`
	ContributionHours int         `json:"contribution_hours" gorm:"not null;default:0"`
	LastActivity      *time.Time  `json:"last_activity,omitempty"`
	CreatedAt         time.Time   `json:"created_at"`
	UpdatedAt         time.Time   `json:"updated_at"`

	// Relationships
	Project Project `json:"project,omitempty" gorm:"foreignKey:ProjectID;constraint:OnDelete:CASCADE"`
	User    User    `json:"user,omitempty" gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
}

// BeforeCreate sets the UUID if not already set
func (m *Membership) BeforeCreate(tx *gorm.DB) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for Membership
func (Membership) TableName() string {
	return "memberships"
}
