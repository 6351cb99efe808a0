package authz_test

import (
	"testing"

	"task-manager-backend/internal/authz"
	"task-manager-backend/internal/database/models"
	apperrors "task-manager-backend/internal/errors"
	"task-manager-backend/internal/mocks"

	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
	"gorm.io/gorm"
)

type EngineTestSuite struct {
	suite.Suite
	ctrl           *gomock.Controller
	projectRepo    *mocks.MockProjectRepositoryInterface
	taskRepo       *mocks.MockTaskRepositoryInterface
	membershipRepo *mocks.MockMembershipRepositoryInterface
	engine         *authz.Engine

	projectID uuid.UUID
	userID    uuid.UUID
}

func (suite *EngineTestSuite) SetupTest() {
	suite.ctrl = gomock.NewController(suite.T())
	suite.projectRepo = mocks.NewMockProjectRepositoryInterface(suite.ctrl)
	suite.taskRepo = mocks.NewMockTaskRepositoryInterface(suite.ctrl)
	suite.membershipRepo = mocks.NewMockMembershipRepositoryInterface(suite.ctrl)
	suite.engine = authz.NewEngine(suite.projectRepo, suite.taskRepo, suite.membershipRepo)

	suite.projectID = uuid.New()
	suite.userID = uuid.New()
}

func (suite *EngineTestSuite) TearDownTest() {
	suite.ctrl.Finish()
}

func (suite *EngineTestSuite) expectProject() {
	suite.projectRepo.EXPECT().GetByID(suite.projectID).
		Return(&models.Project{BaseModel: models.BaseModel{ID: suite.projectID}}, nil)
}

func (suite *EngineTestSuite) expectRole(role models.ProjectRole) {
	suite.membershipRepo.EXPECT().GetByProjectAndUser(suite.projectID, suite.userID).
		Return(&models.Membership{ProjectID: suite.projectID, UserID: suite.userID, Role: role}, nil)
}

func (suite *EngineTestSuite) TestAuthorizeMissingProjectWinsOverRole() {
	// Existence is checked before any role resolution, so a missing project
	// is NotFound even for a caller with no membership at all.
	suite.projectRepo.EXPECT().GetByID(suite.projectID).Return(nil, gorm.ErrRecordNotFound)

	err := suite.engine.Authorize(authz.Actor{UserID: suite.userID}, suite.projectID, models.ProjectRoleManager)
	suite.ErrorIs(err, apperrors.ErrProjectNotFound)
}

func (suite *EngineTestSuite) TestAuthorizeAdminBypassesRoleCheck() {
	suite.expectProject()

	err := suite.engine.Authorize(authz.Actor{UserID: suite.userID, IsAdmin: true}, suite.projectID, models.ProjectRoleManager)
	suite.NoError(err)
}

func (suite *EngineTestSuite) TestAuthorizeRoleAllowed() {
	suite.expectProject()
	suite.expectRole(models.ProjectRoleDeveloper)

	err := suite.engine.Authorize(authz.Actor{UserID: suite.userID}, suite.projectID,
		models.ProjectRoleManager, models.ProjectRoleDeveloper)
	suite.NoError(err)
}

func (suite *EngineTestSuite) TestAuthorizeRoleNotAllowed() {
	suite.expectProject()
	suite.expectRole(models.ProjectRoleTester)

	err := suite.engine.Authorize(authz.Actor{UserID: suite.userID}, suite.projectID, models.ProjectRoleManager)
	suite.ErrorIs(err, apperrors.ErrRoleNotAllowed)
}

func (suite *EngineTestSuite) TestAuthorizeNotAMember() {
	suite.expectProject()
	suite.membershipRepo.EXPECT().GetByProjectAndUser(suite.projectID, suite.userID).
		Return(nil, gorm.ErrRecordNotFound)

	err := suite.engine.Authorize(authz.Actor{UserID: suite.userID}, suite.projectID, models.ProjectRoleManager)
	suite.ErrorIs(err, apperrors.ErrNotProjectMember)
}

func (suite *EngineTestSuite) TestResolveRole() {
	suite.expectRole(models.ProjectRoleManager)

	role, err := suite.engine.ResolveRole(suite.userID, suite.projectID)
	suite.NoError(err)
	suite.Equal(models.ProjectRoleManager, role)
}

func (suite *EngineTestSuite) TestAuthorizeTaskMissingTask() {
	taskID := uuid.New()
	suite.taskRepo.EXPECT().GetByID(taskID).Return(nil, gorm.ErrRecordNotFound)

	_, err := suite.engine.AuthorizeTask(authz.Actor{UserID: suite.userID}, taskID, models.ProjectRoleDeveloper)
	suite.ErrorIs(err, apperrors.ErrTaskNotFound)
}

func (suite *EngineTestSuite) TestAuthorizeTaskDerivesProjectFromStoredRow() {
	taskID := uuid.New()
	task := &models.Task{
		BaseModel: models.BaseModel{ID: taskID},
		ProjectID: suite.projectID,
	}
	suite.taskRepo.EXPECT().GetByID(taskID).Return(task, nil)
	suite.expectRole(models.ProjectRoleDeveloper)

	got, err := suite.engine.AuthorizeTask(authz.Actor{UserID: suite.userID}, taskID, models.ProjectRoleDeveloper)
	suite.NoError(err)
	suite.Equal(taskID, got.ID)
}

func (suite *EngineTestSuite) TestAuthorizeTaskRoleNotAllowed() {
	taskID := uuid.New()
	task := &models.Task{
		BaseModel: models.BaseModel{ID: taskID},
		ProjectID: suite.projectID,
	}
	suite.taskRepo.EXPECT().GetByID(taskID).Return(task, nil)
	suite.expectRole(models.ProjectRoleManager)

	_, err := suite.engine.AuthorizeTask(authz.Actor{UserID: suite.userID}, taskID, models.ProjectRoleTester)
	suite.ErrorIs(err, apperrors.ErrRoleNotAllowed)
}

func (suite *EngineTestSuite) TestAuthorizeTaskAdminBypass() {
	taskID := uuid.New()
	task := &models.Task{
		BaseModel: models.BaseModel{ID: taskID},
		ProjectID: suite.projectID,
	}
	suite.taskRepo.EXPECT().GetByID(taskID).Return(task, nil)

	got, err := suite.engine.AuthorizeTask(authz.Actor{UserID: suite.userID, IsAdmin: true}, taskID, models.ProjectRoleTester)
	suite.NoError(err)
	suite.Equal(taskID, got.ID)
}

func TestEngineTestSuite(t *testing.T) {
	suite.Run(t, new(EngineTestSuite))
}
