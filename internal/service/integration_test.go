//go:build integration

package service_test

import (
	"sync"
	"testing"
	"time"

	"task-manager-backend/internal/authz"
	"task-manager-backend/internal/database/models"
	apperrors "task-manager-backend/internal/errors"
	"task-manager-backend/internal/repository"
	"task-manager-backend/internal/service"
	"task-manager-backend/internal/testutils"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
)

// ServiceIntegrationTestSuite drives the transactional paths of the
// membership and task services against a real database: batch assignment
// under row locks, atomic task writes and the activity stamp that commits
// with them.
type ServiceIntegrationTestSuite struct {
	suite.Suite
	base *testutils.BaseTestSuite

	membershipRepo *repository.MembershipRepository
	taskRepo       *repository.TaskRepository

	membershipService *service.MembershipService
	taskService       *service.TaskService

	userFactory       *testutils.UserFactory
	projectFactory    *testutils.ProjectFactory
	membershipFactory *testutils.MembershipFactory
	taskFactory       *testutils.TaskFactory
}

func (suite *ServiceIntegrationTestSuite) SetupSuite() {
	suite.base = testutils.SetupTestSuite(suite.T())

	userRepo := repository.NewUserRepository(suite.base.DB)
	projectRepo := repository.NewProjectRepository(suite.base.DB)
	suite.membershipRepo = repository.NewMembershipRepository(suite.base.DB)
	suite.taskRepo = repository.NewTaskRepository(suite.base.DB)

	engine := authz.NewEngine(projectRepo, suite.taskRepo, suite.membershipRepo)
	validate := validator.New()

	suite.membershipService = service.NewMembershipService(
		suite.base.DB, suite.membershipRepo, projectRepo, userRepo, engine, validate)
	suite.taskService = service.NewTaskService(
		suite.base.DB, suite.taskRepo, suite.membershipRepo, userRepo, engine, validate)

	suite.userFactory = testutils.NewUserFactory()
	suite.projectFactory = testutils.NewProjectFactory()
	suite.membershipFactory = testutils.NewMembershipFactory()
	suite.taskFactory = testutils.NewTaskFactory()
}

func (suite *ServiceIntegrationTestSuite) SetupTest() {
	suite.base.CleanTestDB()
}

func (suite *ServiceIntegrationTestSuite) mustCreate(value interface{}) {
	suite.Require().NoError(suite.base.DB.Create(value).Error)
}

func (suite *ServiceIntegrationTestSuite) seedUser() *models.User {
	user := suite.userFactory.Create()
	suite.mustCreate(user)
	return user
}

func (suite *ServiceIntegrationTestSuite) seedProject() *models.Project {
	project := suite.projectFactory.Create()
	suite.mustCreate(project)
	return project
}

func (suite *ServiceIntegrationTestSuite) seedMembership(project *models.Project, user *models.User, role models.ProjectRole) {
	suite.mustCreate(suite.membershipFactory.WithRole(project.ID, user.ID, role))
}

func (suite *ServiceIntegrationTestSuite) TestAssignBatchCommits() {
	project := suite.seedProject()
	manager := suite.seedUser()
	dev := suite.seedUser()
	tester := suite.seedUser()

	resp, err := suite.membershipService.Assign(project.ID, &service.AssignMembersRequest{
		Users: []service.AssignMemberInput{
			{UserID: manager.ID, Role: models.ProjectRoleManager},
			{UserID: dev.ID, Role: models.ProjectRoleDeveloper},
			{UserID: tester.ID, Role: models.ProjectRoleTester},
		},
	})
	suite.Require().NoError(err)
	suite.Len(resp, 3)

	memberships, err := suite.membershipRepo.GetByProject(project.ID)
	suite.Require().NoError(err)
	suite.Len(memberships, 3)
}

func (suite *ServiceIntegrationTestSuite) TestAssignSecondManagerRejectedAsUnit() {
	project := suite.seedProject()
	existing := suite.seedUser()
	suite.seedMembership(project, existing, models.ProjectRoleManager)

	rival := suite.seedUser()
	dev := suite.seedUser()

	_, err := suite.membershipService.Assign(project.ID, &service.AssignMembersRequest{
		Users: []service.AssignMemberInput{
			{UserID: rival.ID, Role: models.ProjectRoleManager},
			{UserID: dev.ID, Role: models.ProjectRoleDeveloper},
		},
	})
	suite.Require().Error(err)
	suite.True(apperrors.IsValidation(err))
	suite.Contains(err.(*apperrors.ValidationErrors).Errors, "there can be only one manager for the project")

	// The whole batch is rejected: the valid developer row is not written either.
	memberships, repoErr := suite.membershipRepo.GetByProject(project.ID)
	suite.Require().NoError(repoErr)
	suite.Len(memberships, 1)
}

func (suite *ServiceIntegrationTestSuite) TestAssignCollectsEveryViolation() {
	project := suite.seedProject()
	member := suite.seedUser()
	suite.seedMembership(project, member, models.ProjectRoleDeveloper)

	admin := suite.userFactory.WithAdmin()
	suite.mustCreate(admin)
	dup := suite.seedUser()

	_, err := suite.membershipService.Assign(project.ID, &service.AssignMembersRequest{
		Users: []service.AssignMemberInput{
			{UserID: admin.ID, Role: models.ProjectRoleTester},
			{UserID: member.ID, Role: models.ProjectRoleTester},
			{UserID: dup.ID, Role: models.ProjectRoleDeveloper},
			{UserID: dup.ID, Role: models.ProjectRoleTester},
		},
	})
	suite.Require().Error(err)
	suite.True(apperrors.IsValidation(err))
	suite.Len(err.(*apperrors.ValidationErrors).Errors, 3)
}

func (suite *ServiceIntegrationTestSuite) TestConcurrentAssignsAdmitOneManager() {
	project := suite.seedProject()
	candidates := []*models.User{suite.seedUser(), suite.seedUser()}

	start := make(chan struct{})
	errs := make(chan error, len(candidates))
	var wg sync.WaitGroup
	for _, candidate := range candidates {
		wg.Add(1)
		go func(userID uuid.UUID) {
			defer wg.Done()
			<-start
			_, err := suite.membershipService.Assign(project.ID, &service.AssignMembersRequest{
				Users: []service.AssignMemberInput{{UserID: userID, Role: models.ProjectRoleManager}},
			})
			errs <- err
		}(candidate.ID)
	}
	close(start)
	wg.Wait()
	close(errs)

	var failures []error
	for err := range errs {
		if err != nil {
			failures = append(failures, err)
		}
	}
	suite.Require().Len(failures, 1)
	suite.True(apperrors.IsValidation(failures[0]))
	suite.Contains(failures[0].(*apperrors.ValidationErrors).Errors, "there can be only one manager for the project")

	memberships, err := suite.membershipRepo.GetByProject(project.ID)
	suite.Require().NoError(err)
	suite.Require().Len(memberships, 1)
	suite.Equal(models.ProjectRoleManager, memberships[0].Role)
}

func (suite *ServiceIntegrationTestSuite) TestCreateTaskStampsCreatorActivity() {
	project := suite.seedProject()
	manager := suite.seedUser()
	dev := suite.seedUser()
	suite.seedMembership(project, manager, models.ProjectRoleManager)
	suite.seedMembership(project, dev, models.ProjectRoleDeveloper)

	actor := authz.Actor{UserID: manager.ID}
	resp, err := suite.taskService.Create(actor, &service.CreateTaskRequest{
		ProjectID:   project.ID,
		AssignedTo:  dev.ID,
		Title:       "Implement login",
		Description: "Implement the login flow",
		Priority:    models.TaskPriorityHigh,
		DueDate:     time.Now().Add(48 * time.Hour),
	})
	suite.Require().NoError(err)
	suite.Equal(models.TaskStatusNew, resp.Status)

	stored, err := suite.taskRepo.GetByID(resp.ID)
	suite.Require().NoError(err)
	suite.Equal(manager.ID, stored.CreatedBy)

	membership, err := suite.membershipRepo.GetByProjectAndUser(project.ID, manager.ID)
	suite.Require().NoError(err)
	suite.NotNil(membership.LastActivity)
}

func (suite *ServiceIntegrationTestSuite) TestAdminCreatesTaskWithoutMembership() {
	project := suite.seedProject()
	dev := suite.seedUser()
	suite.seedMembership(project, dev, models.ProjectRoleDeveloper)

	admin := suite.userFactory.WithAdmin()
	suite.mustCreate(admin)

	actor := authz.Actor{UserID: admin.ID, IsAdmin: true}
	resp, err := suite.taskService.Create(actor, &service.CreateTaskRequest{
		ProjectID:   project.ID,
		AssignedTo:  dev.ID,
		Title:       "Triage backlog",
		Description: "Sort the backlog by priority",
		Priority:    models.TaskPriorityMedium,
		DueDate:     time.Now().Add(24 * time.Hour),
	})
	suite.Require().NoError(err)
	suite.Equal(admin.ID, resp.CreatedBy)
}

func (suite *ServiceIntegrationTestSuite) TestChangeStatusWalksLifecycleForward() {
	project := suite.seedProject()
	manager := suite.seedUser()
	dev := suite.seedUser()
	suite.seedMembership(project, manager, models.ProjectRoleManager)
	suite.seedMembership(project, dev, models.ProjectRoleDeveloper)

	task := suite.taskFactory.Create(project.ID, manager.ID, dev.ID)
	suite.mustCreate(task)

	actor := authz.Actor{UserID: dev.ID}

	resp, err := suite.taskService.ChangeStatus(actor, task.ID, &service.ChangeStatusRequest{Status: models.TaskStatusInProgress})
	suite.Require().NoError(err)
	suite.Equal(models.TaskStatusInProgress, resp.Status)

	resp, err = suite.taskService.ChangeStatus(actor, task.ID, &service.ChangeStatusRequest{Status: models.TaskStatusCompleted})
	suite.Require().NoError(err)
	suite.Equal(models.TaskStatusCompleted, resp.Status)

	membership, err := suite.membershipRepo.GetByProjectAndUser(project.ID, dev.ID)
	suite.Require().NoError(err)
	suite.NotNil(membership.LastActivity)
}

func (suite *ServiceIntegrationTestSuite) TestAddNotesByTester() {
	project := suite.seedProject()
	manager := suite.seedUser()
	dev := suite.seedUser()
	tester := suite.seedUser()
	suite.seedMembership(project, manager, models.ProjectRoleManager)
	suite.seedMembership(project, dev, models.ProjectRoleDeveloper)
	suite.seedMembership(project, tester, models.ProjectRoleTester)

	task := suite.taskFactory.Create(project.ID, manager.ID, dev.ID)
	suite.mustCreate(task)

	notes := "regression found on the login form when the password is empty"
	resp, err := suite.taskService.AddNotes(authz.Actor{UserID: tester.ID}, task.ID, &service.AddNotesRequest{Notes: notes})
	suite.Require().NoError(err)
	suite.Require().NotNil(resp.Notes)
	suite.Equal(notes, *resp.Notes)
}

func (suite *ServiceIntegrationTestSuite) TestAddContributionAccumulates() {
	project := suite.seedProject()
	dev := suite.seedUser()
	suite.seedMembership(project, dev, models.ProjectRoleDeveloper)

	actor := authz.Actor{UserID: dev.ID}

	_, err := suite.membershipService.AddContribution(actor, project.ID, &service.AddContributionHoursRequest{ContributionHours: 3})
	suite.Require().NoError(err)

	resp, err := suite.membershipService.AddContribution(actor, project.ID, &service.AddContributionHoursRequest{ContributionHours: 5})
	suite.Require().NoError(err)
	suite.Require().Len(resp, 1)
	suite.Equal(8, resp[0].ContributionHours)
}

func TestServiceIntegrationTestSuite(t *testing.T) {
	suite.Run(t, new(ServiceIntegrationTestSuite))
}
