//go:build integration

package repository_test

import (
	"testing"

	"task-manager-backend/internal/database/models"
	"task-manager-backend/internal/repository"
	"task-manager-backend/internal/testutils"

	"github.com/stretchr/testify/suite"
	"gorm.io/gorm"
)

type TaskRepositoryTestSuite struct {
	suite.Suite
	base *testutils.BaseTestSuite
	repo *repository.TaskRepository

	userFactory       *testutils.UserFactory
	projectFactory    *testutils.ProjectFactory
	membershipFactory *testutils.MembershipFactory
	taskFactory       *testutils.TaskFactory
}

func (suite *TaskRepositoryTestSuite) SetupSuite() {
	suite.base = testutils.SetupTestSuite(suite.T())
	suite.repo = repository.NewTaskRepository(suite.base.DB)
	suite.userFactory = testutils.NewUserFactory()
	suite.projectFactory = testutils.NewProjectFactory()
	suite.membershipFactory = testutils.NewMembershipFactory()
	suite.taskFactory = testutils.NewTaskFactory()
}

func (suite *TaskRepositoryTestSuite) SetupTest() {
	suite.base.CleanTestDB()
}

func (suite *TaskRepositoryTestSuite) mustCreate(value interface{}) {
	suite.Require().NoError(suite.base.DB.Create(value).Error)
}

func (suite *TaskRepositoryTestSuite) TestGetForUserResolvesThroughMembership() {
	manager := suite.userFactory.Create()
	member := suite.userFactory.Create()
	outsider := suite.userFactory.Create()
	suite.mustCreate(manager)
	suite.mustCreate(member)
	suite.mustCreate(outsider)

	mine := suite.projectFactory.WithName("Mine")
	other := suite.projectFactory.WithName("Other")
	suite.mustCreate(mine)
	suite.mustCreate(other)

	suite.mustCreate(suite.membershipFactory.Create(mine.ID, member.ID))

	// Two tasks in the member's project, neither assigned to them.
	suite.mustCreate(suite.taskFactory.Create(mine.ID, manager.ID, outsider.ID))
	suite.mustCreate(suite.taskFactory.Create(mine.ID, manager.ID, outsider.ID))
	// One task in a project the member does not belong to.
	suite.mustCreate(suite.taskFactory.Create(other.ID, manager.ID, outsider.ID))

	tasks, total, err := suite.repo.GetForUser(member.ID, 10, 0)
	suite.Require().NoError(err)
	suite.Equal(int64(2), total)
	suite.Len(tasks, 2)
	for _, task := range tasks {
		suite.Equal(mine.ID, task.ProjectID)
	}
}

func (suite *TaskRepositoryTestSuite) TestCreateJoinsTransaction() {
	manager := suite.userFactory.Create()
	dev := suite.userFactory.Create()
	suite.mustCreate(manager)
	suite.mustCreate(dev)
	project := suite.projectFactory.Create()
	suite.mustCreate(project)

	task := suite.taskFactory.Create(project.ID, manager.ID, dev.ID)
	err := suite.base.DB.Transaction(func(tx *gorm.DB) error {
		if err := suite.repo.Create(tx, task); err != nil {
			return err
		}
		return gorm.ErrInvalidData
	})
	suite.Require().Error(err)

	_, err = suite.repo.GetByID(task.ID)
	suite.ErrorIs(err, gorm.ErrRecordNotFound)
}

func (suite *TaskRepositoryTestSuite) TestGetAllPaginates() {
	manager := suite.userFactory.Create()
	dev := suite.userFactory.Create()
	suite.mustCreate(manager)
	suite.mustCreate(dev)
	project := suite.projectFactory.Create()
	suite.mustCreate(project)

	for i := 0; i < 3; i++ {
		suite.mustCreate(suite.taskFactory.Create(project.ID, manager.ID, dev.ID))
	}

	tasks, total, err := suite.repo.GetAll(2, 0)
	suite.Require().NoError(err)
	suite.Equal(int64(3), total)
	suite.Len(tasks, 2)
}

func (suite *TaskRepositoryTestSuite) TestTrashRestoreCycle() {
	manager := suite.userFactory.Create()
	dev := suite.userFactory.Create()
	suite.mustCreate(manager)
	suite.mustCreate(dev)
	project := suite.projectFactory.Create()
	suite.mustCreate(project)

	task := suite.taskFactory.Create(project.ID, manager.ID, dev.ID)
	suite.mustCreate(task)

	suite.Require().NoError(suite.repo.Delete(task.ID))

	_, err := suite.repo.GetByID(task.ID)
	suite.ErrorIs(err, gorm.ErrRecordNotFound)

	trashed, err := suite.repo.GetTrashedByID(task.ID)
	suite.Require().NoError(err)
	suite.Equal(task.ID, trashed.ID)

	suite.Require().NoError(suite.repo.Restore(task.ID))

	restored, err := suite.repo.GetByID(task.ID)
	suite.Require().NoError(err)
	suite.Equal(task.Title, restored.Title)
}

func (suite *TaskRepositoryTestSuite) TestForceDeleteRemovesRow() {
	manager := suite.userFactory.Create()
	dev := suite.userFactory.Create()
	suite.mustCreate(manager)
	suite.mustCreate(dev)
	project := suite.projectFactory.Create()
	suite.mustCreate(project)

	task := suite.taskFactory.Create(project.ID, manager.ID, dev.ID)
	suite.mustCreate(task)

	suite.Require().NoError(suite.repo.Delete(task.ID))
	suite.Require().NoError(suite.repo.ForceDelete(task.ID))

	var count int64
	suite.base.DB.Unscoped().Model(&models.Task{}).Where("id = ?", task.ID).Count(&count)
	suite.Equal(int64(0), count)
}

func TestTaskRepositoryTestSuite(t *testing.T) {
	suite.Run(t, new(TaskRepositoryTestSuite))
}
