package testutils

import (
	"time"

	"task-manager-backend/internal/database/models"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// UserFactory provides methods to create test User data
type UserFactory struct{}

// NewUserFactory creates a new UserFactory
func NewUserFactory() *UserFactory {
	return &UserFactory{}
}

// Create creates a test User with default values
func (f *UserFactory) Create() *models.User {
	id := uuid.New()
	hash, _ := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.MinCost)

	return &models.User{
		BaseModel: models.BaseModel{
			ID:        id,
			CreatedAt: time.Now(),
			UpdatedAt: time.Now(),
		},
		Name:     "Test User",
		Email:    id.String()[:8] + "@test.com",
		Password: string(hash),
		IsAdmin:  false,
	}
}

// WithEmail sets a custom email for the user
func (f *UserFactory) WithEmail(email string) *models.User {
	user := f.Create()
	user.Email = email
	return user
}

// WithAdmin flags the user as admin
func (f *UserFactory) WithAdmin() *models.User {
	user := f.Create()
	user.IsAdmin = true
	return user
}

// ProjectFactory provides methods to create test Project data
type ProjectFactory struct{}

// NewProjectFactory creates a new ProjectFactory
func NewProjectFactory() *ProjectFactory {
	return &ProjectFactory{}
}

// Create creates a test Project with default values
func (f *ProjectFactory) Create() *models.Project {
	return &models.Project{
		BaseModel: models.BaseModel{
			ID:        uuid.New(),
			CreatedAt: time.Now(),
			UpdatedAt: time.Now(),
		},
		Name:        "Test Project",
		Description: "A test project",
	}
}

// WithName sets a custom name for the project
func (f *ProjectFactory) WithName(name string) *models.Project {
	project := f.Create()
	project.Name = name
	return project
}

// MembershipFactory provides methods to create test Membership data
type MembershipFactory struct{}

// NewMembershipFactory creates a new MembershipFactory
func NewMembershipFactory() *MembershipFactory {
	return &MembershipFactory{}
}

// Create creates a test Membership with default values
func (f *MembershipFactory) Create(projectID, userID uuid.UUID) *models.Membership {
	return &models.Membership{
		ID:        uuid.New(),
		ProjectID: projectID,
		UserID:    userID,
		Role:      models.ProjectRoleDeveloper,
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}
}

// WithRole sets a custom role for the membership
func (f *MembershipFactory) WithRole(projectID, userID uuid.UUID, role models.ProjectRole) *models.Membership {
	membership := f.Create(projectID, userID)
	membership.Role = role
	return membership
}

// TaskFactory provides methods to create test Task data
type TaskFactory struct{}

// NewTaskFactory creates a new TaskFactory
func NewTaskFactory() *TaskFactory {
	return &TaskFactory{}
}

// Create creates a test Task with default values
func (f *TaskFactory) Create(projectID, createdBy, assignedTo uuid.UUID) *models.Task {
	return &models.Task{
		BaseModel: models.BaseModel{
			ID:        uuid.New(),
			CreatedAt: time.Now(),
			UpdatedAt: time.Now(),
		},
		ProjectID:   projectID,
		CreatedBy:   createdBy,
		AssignedTo:  assignedTo,
		Title:       "Test Task",
		Description: "A test task description",
		Status:      models.TaskStatusNew,
		Priority:    models.TaskPriorityMedium,
		DueDate:     time.Now().Add(7 * 24 * time.Hour),
	}
}

// WithStatus sets a custom status for the task
func (f *TaskFactory) WithStatus(projectID, createdBy, assignedTo uuid.UUID, status models.TaskStatus) *models.Task {
	task := f.Create(projectID, createdBy, assignedTo)
	task.Status = status
	return task
}

// WithPriority sets a custom priority for the task
func (f *TaskFactory) WithPriority(projectID, createdBy, assignedTo uuid.UUID, priority models.TaskPriority) *models.Task {
	task := f.Create(projectID, createdBy, assignedTo)
	task.Priority = priority
	return task
}
