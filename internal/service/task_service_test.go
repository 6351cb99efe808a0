package service_test

import (
	"testing"
	"time"

	"task-manager-backend/internal/authz"
	"task-manager-backend/internal/database/models"
	apperrors "task-manager-backend/internal/errors"
	"task-manager-backend/internal/mocks"
	"task-manager-backend/internal/service"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
	"gorm.io/gorm"
)

// TaskServiceTestSuite covers authorization and validation semantics against
// repository mocks. The transactional write paths run against a real
// database in the integration suites.
type TaskServiceTestSuite struct {
	suite.Suite
	ctrl           *gomock.Controller
	taskRepo       *mocks.MockTaskRepositoryInterface
	membershipRepo *mocks.MockMembershipRepositoryInterface
	userRepo       *mocks.MockUserRepositoryInterface
	projectRepo    *mocks.MockProjectRepositoryInterface
	service        *service.TaskService

	projectID uuid.UUID
	manager   authz.Actor
	developer authz.Actor
	admin     authz.Actor
}

func (suite *TaskServiceTestSuite) SetupTest() {
	suite.ctrl = gomock.NewController(suite.T())
	suite.taskRepo = mocks.NewMockTaskRepositoryInterface(suite.ctrl)
	suite.membershipRepo = mocks.NewMockMembershipRepositoryInterface(suite.ctrl)
	suite.userRepo = mocks.NewMockUserRepositoryInterface(suite.ctrl)
	suite.projectRepo = mocks.NewMockProjectRepositoryInterface(suite.ctrl)

	engine := authz.NewEngine(suite.projectRepo, suite.taskRepo, suite.membershipRepo)
	suite.service = service.NewTaskService(nil, suite.taskRepo, suite.membershipRepo, suite.userRepo, engine, validator.New())

	suite.projectID = uuid.New()
	suite.manager = authz.Actor{UserID: uuid.New()}
	suite.developer = authz.Actor{UserID: uuid.New()}
	suite.admin = authz.Actor{UserID: uuid.New(), IsAdmin: true}
}

func (suite *TaskServiceTestSuite) TearDownTest() {
	suite.ctrl.Finish()
}

func (suite *TaskServiceTestSuite) expectProject() {
	suite.projectRepo.EXPECT().GetByID(suite.projectID).
		Return(&models.Project{BaseModel: models.BaseModel{ID: suite.projectID}}, nil)
}

func (suite *TaskServiceTestSuite) expectMembership(userID uuid.UUID, role models.ProjectRole) {
	suite.membershipRepo.EXPECT().GetByProjectAndUser(suite.projectID, userID).
		Return(&models.Membership{ProjectID: suite.projectID, UserID: userID, Role: role}, nil)
}

func (suite *TaskServiceTestSuite) createRequest() *service.CreateTaskRequest {
	return &service.CreateTaskRequest{
		ProjectID:   suite.projectID,
		AssignedTo:  suite.developer.UserID,
		Title:       "Implement login",
		Description: "Implement the login flow",
		Priority:    models.TaskPriorityHigh,
		DueDate:     time.Now().Add(48 * time.Hour),
	}
}

func (suite *TaskServiceTestSuite) storedTask(createdBy, assignedTo uuid.UUID) *models.Task {
	return &models.Task{
		BaseModel:   models.BaseModel{ID: uuid.New()},
		ProjectID:   suite.projectID,
		CreatedBy:   createdBy,
		AssignedTo:  assignedTo,
		Title:       "Implement login",
		Description: "Implement the login flow",
		Status:      models.TaskStatusNew,
		Priority:    models.TaskPriorityHigh,
		DueDate:     time.Now().Add(48 * time.Hour),
	}
}

func (suite *TaskServiceTestSuite) TestCreateRejectsNonManager() {
	suite.expectProject()
	suite.expectMembership(suite.developer.UserID, models.ProjectRoleDeveloper)

	req := suite.createRequest()
	_, err := suite.service.Create(suite.developer, req)
	suite.ErrorIs(err, apperrors.ErrRoleNotAllowed)
}

func (suite *TaskServiceTestSuite) TestCreateRejectsMissingProject() {
	suite.projectRepo.EXPECT().GetByID(suite.projectID).Return(nil, gorm.ErrRecordNotFound)

	_, err := suite.service.Create(suite.manager, suite.createRequest())
	suite.ErrorIs(err, apperrors.ErrProjectNotFound)
}

func (suite *TaskServiceTestSuite) TestCreateRejectsAdminAssignee() {
	suite.expectProject()
	suite.expectMembership(suite.manager.UserID, models.ProjectRoleManager)

	suite.userRepo.EXPECT().GetByID(suite.developer.UserID).
		Return(&models.User{BaseModel: models.BaseModel{ID: suite.developer.UserID}, IsAdmin: true}, nil)
	suite.membershipRepo.EXPECT().GetByProjectAndUser(suite.projectID, suite.developer.UserID).
		Return(nil, gorm.ErrRecordNotFound)

	_, err := suite.service.Create(suite.manager, suite.createRequest())
	suite.Require().Error(err)
	suite.True(apperrors.IsValidation(err))

	verrs := err.(*apperrors.ValidationErrors)
	suite.Contains(verrs.Errors, "the assigned user cannot be an admin")
	suite.Contains(verrs.Errors, "the assigned user is not associated with the project")
}

func (suite *TaskServiceTestSuite) TestCreateRejectsNonDeveloperAssignee() {
	suite.expectProject()
	suite.expectMembership(suite.manager.UserID, models.ProjectRoleManager)

	suite.userRepo.EXPECT().GetByID(suite.developer.UserID).
		Return(&models.User{BaseModel: models.BaseModel{ID: suite.developer.UserID}}, nil)
	suite.expectMembership(suite.developer.UserID, models.ProjectRoleTester)

	_, err := suite.service.Create(suite.manager, suite.createRequest())
	suite.Require().Error(err)
	suite.True(apperrors.IsValidation(err))

	verrs := err.(*apperrors.ValidationErrors)
	suite.Contains(verrs.Errors, "you can only assign the task to a developer")
}

func (suite *TaskServiceTestSuite) TestUpdateRejectsNonCreator() {
	otherManager := authz.Actor{UserID: uuid.New()}
	task := suite.storedTask(suite.manager.UserID, suite.developer.UserID)

	suite.taskRepo.EXPECT().GetByID(task.ID).Return(task, nil)
	suite.expectMembership(otherManager.UserID, models.ProjectRoleManager)

	_, err := suite.service.Update(otherManager, task.ID, &service.UpdateTaskRequest{Title: "New title"})
	suite.ErrorIs(err, apperrors.ErrNotTaskCreator)
}

func (suite *TaskServiceTestSuite) TestUpdateMissingTask() {
	id := uuid.New()
	suite.taskRepo.EXPECT().GetByID(id).Return(nil, gorm.ErrRecordNotFound)

	_, err := suite.service.Update(suite.manager, id, &service.UpdateTaskRequest{Title: "New title"})
	suite.ErrorIs(err, apperrors.ErrTaskNotFound)
}

func (suite *TaskServiceTestSuite) TestChangeStatusRejectsNonAssignee() {
	other := authz.Actor{UserID: uuid.New()}
	task := suite.storedTask(suite.manager.UserID, suite.developer.UserID)

	suite.taskRepo.EXPECT().GetByID(task.ID).Return(task, nil)
	suite.expectMembership(other.UserID, models.ProjectRoleDeveloper)

	_, err := suite.service.ChangeStatus(other, task.ID, &service.ChangeStatusRequest{Status: models.TaskStatusInProgress})
	suite.ErrorIs(err, apperrors.ErrNotTaskAssignee)
}

func (suite *TaskServiceTestSuite) TestChangeStatusRejectsSkippedStep() {
	task := suite.storedTask(suite.manager.UserID, suite.developer.UserID)

	suite.taskRepo.EXPECT().GetByID(task.ID).Return(task, nil)
	suite.expectMembership(suite.developer.UserID, models.ProjectRoleDeveloper)

	_, err := suite.service.ChangeStatus(suite.developer, task.ID, &service.ChangeStatusRequest{Status: models.TaskStatusCompleted})
	suite.Require().Error(err)
	suite.True(apperrors.IsValidation(err))

	verrs := err.(*apperrors.ValidationErrors)
	suite.Contains(verrs.Errors, "cannot change status from new to completed")
}

func (suite *TaskServiceTestSuite) TestChangeStatusRejectsBackwardMove() {
	task := suite.storedTask(suite.manager.UserID, suite.developer.UserID)
	task.Status = models.TaskStatusCompleted

	suite.taskRepo.EXPECT().GetByID(task.ID).Return(task, nil)
	suite.expectMembership(suite.developer.UserID, models.ProjectRoleDeveloper)

	_, err := suite.service.ChangeStatus(suite.developer, task.ID, &service.ChangeStatusRequest{Status: models.TaskStatusInProgress})
	suite.Require().Error(err)
	suite.True(apperrors.IsValidation(err))
}

func (suite *TaskServiceTestSuite) TestChangeStatusRejectsRoleMismatch() {
	task := suite.storedTask(suite.manager.UserID, suite.developer.UserID)

	suite.taskRepo.EXPECT().GetByID(task.ID).Return(task, nil)
	suite.expectMembership(suite.developer.UserID, models.ProjectRoleTester)

	_, err := suite.service.ChangeStatus(suite.developer, task.ID, &service.ChangeStatusRequest{Status: models.TaskStatusInProgress})
	suite.ErrorIs(err, apperrors.ErrRoleNotAllowed)
}

func (suite *TaskServiceTestSuite) TestAddNotesRejectsShortNotes() {
	_, err := suite.service.AddNotes(suite.developer, uuid.New(), &service.AddNotesRequest{Notes: "too short"})
	suite.Require().Error(err)
	suite.True(apperrors.IsValidation(err))
}

func (suite *TaskServiceTestSuite) TestAddNotesRequiresTesterRole() {
	task := suite.storedTask(suite.manager.UserID, suite.developer.UserID)

	suite.taskRepo.EXPECT().GetByID(task.ID).Return(task, nil)
	suite.expectMembership(suite.developer.UserID, models.ProjectRoleDeveloper)

	notes := "these notes are definitely longer than twenty five characters"
	_, err := suite.service.AddNotes(suite.developer, task.ID, &service.AddNotesRequest{Notes: notes})
	suite.ErrorIs(err, apperrors.ErrRoleNotAllowed)
}

func (suite *TaskServiceTestSuite) TestGetNotFound() {
	id := uuid.New()
	suite.taskRepo.EXPECT().GetByID(id).Return(nil, gorm.ErrRecordNotFound)

	_, err := suite.service.Get(id)
	suite.ErrorIs(err, apperrors.ErrTaskNotFound)
}

func (suite *TaskServiceTestSuite) TestListMyProjects() {
	tasks := []models.Task{*suite.storedTask(suite.manager.UserID, suite.developer.UserID)}
	suite.taskRepo.EXPECT().GetForUser(suite.developer.UserID, 10, 0).Return(tasks, int64(1), nil)

	resp, err := suite.service.ListMyProjects(suite.developer, 1, 10)
	suite.NoError(err)
	suite.Equal(int64(1), resp.Total)
	suite.Len(resp.Tasks, 1)
}

func (suite *TaskServiceTestSuite) TestForceDeleteRequiresTrashedRow() {
	id := uuid.New()
	suite.taskRepo.EXPECT().GetTrashedByID(id).Return(nil, gorm.ErrRecordNotFound)

	err := suite.service.ForceDelete(id)
	suite.ErrorIs(err, apperrors.ErrTaskNotFound)
}

func TestTaskServiceTestSuite(t *testing.T) {
	suite.Run(t, new(TaskServiceTestSuite))
}
