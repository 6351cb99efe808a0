package models

// Project groups tasks and role-bearing memberships.
type Project struct {
	BaseModel
	Name        string `json:"name" gorm:"not null;size:255" validate:"required,max=255"`
	Description string `json:"description" gorm:"type:text"`

	// Relationships
	Memberships []Membership `json:"memberships,omitempty" gorm:"foreignKey:ProjectID;constraint:OnDelete:CASCADE"`
	Tasks       []Task       `json:"tasks,omitempty" gorm:"foreignKey:ProjectID;constraint:OnDelete:CASCADE"`
}

// TableName returns the table name for Project
func (Project) TableName() string {
	return "projects"
}
