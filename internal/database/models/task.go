package models

import (
	"time"

	"github.com/google/uuid"
)

// TaskStatus represents the lifecycle state of a task
type TaskStatus string

const (
	TaskStatusNew        TaskStatus = "new"
	TaskStatusInProgress TaskStatus = "in_progress"
	TaskStatusCompleted  TaskStatus = "completed"
)

// Valid reports whether the status is one of the known task statuses.
func (s TaskStatus) Valid() bool {
	switch s {
	case TaskStatusNew, TaskStatusInProgress, TaskStatusCompleted:
		return true
	}
	return false
}

// rank orders statuses along the lifecycle. Transitions must move forward.
func (s TaskStatus) rank() int {
	switch s {
	case TaskStatusNew:
		return 0
	case TaskStatusInProgress:
		return 1
	case TaskStatusCompleted:
		return 2
	}
	return -1
}

// CanTransitionTo reports whether a status change is a single forward step.
// Backward moves and skipping a step are both rejected.
func (s TaskStatus) CanTransitionTo(next TaskStatus) bool {
	return next.rank() == s.rank()+1
}

// TaskPriority represents the priority of a task
type TaskPriority string

const (
	TaskPriorityLow    TaskPriority = "low"
	TaskPriorityMedium TaskPriority = "medium"
	TaskPriorityHigh   TaskPriority = "high"
)

// Valid reports whether the priority is one of the known task priorities.
func (p TaskPriority) Valid() bool {
	switch p {
	case TaskPriorityLow, TaskPriorityMedium, TaskPriorityHigh:
		return true
	}
	return false
}

// Task is a unit of work scoped to a project. The owning project is fixed at
// creation; assigned_to must always reference a developer-role membership on
// that project, which the task service re-validates on every (re)assignment.
type Task struct {
	BaseModel
	ProjectID   uuid.UUID    `json:"project_id" gorm:"type:uuid;not null;index" validate:"required"`
	CreatedBy   uuid.UUID    `json:"created_by" gorm:"type:uuid;not null" validate:"required"`
	AssignedTo  uuid.UUID    `json:"assigned_to" gorm:"type:uuid;not null" validate:"required"`
	Title       string       `json:"title" gorm:"not null;size:255" validate:"required,max=255"`
	Description string       `json:"description" gorm:"type:text;not null" validate:"required"`
	Status      TaskStatus   `json:"status" gorm:"type:varchar(50);not null;default:'new'"`
	Priority    TaskPriority `json:"priority" gorm:"type:varchar(50);not null" validate:"required,oneof=low medium high"`
	DueDate     time.Time    `json:"due_date" gorm:"not null" validate:"required"`
	Notes       *string      `json:"notes,omitempty" gorm:"type:text"`

	// Relationships
	Project  Project `json:"project,omitempty" gorm:"foreignKey:ProjectID;constraint:OnDelete:CASCADE"`
	Creator  User    `json:"creator,omitempty" gorm:"foreignKey:CreatedBy"`
	Assignee User    `json:"assignee,omitempty" gorm:"foreignKey:AssignedTo"`
}

// TableName returns the table name for Task
func (Task) TableName() string {
	return "tasks"
}
