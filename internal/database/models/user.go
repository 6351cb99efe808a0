package models

// User represents an account that can authenticate and act on projects.
// Admin users bypass project-role checks entirely; regular users get their
// capabilities from Membership rows.
type User struct {
	BaseModel
	Name     string `json:"name" gorm:"not null;size:255" validate:"required,max=255"`
	Email    string `json:"email" gorm:"uniqueIndex:idx_users_email_active,where:deleted_at IS NULL;not null;size:255" validate:"required,email,max=255"` // Partial unique index excludes soft-deleted records so an email can be reused after deletion
	Password string `json:"-" gorm:"not null;size:255"`                                                                                                   // bcrypt hash, never serialized
	IsAdmin  bool   `json:"is_admin" gorm:"not null;default:false"`

	// Relationships
	Memberships   []Membership `json:"memberships,omitempty" gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
	CreatedTasks  []Task       `json:"created_tasks,omitempty" gorm:"foreignKey:CreatedBy"`
	AssignedTasks []Task       `json:"assigned_tasks,omitempty" gorm:"foreignKey:AssignedTo"`
}

// TableName returns the table name for User
func (User) TableName() string {
	return "users"
}
