package handlers_test

import (
	"net/http"
	"testing"
	"time"

	"task-manager-backend/internal/api/handlers"
	apperrors "task-manager-backend/internal/errors"
	"task-manager-backend/internal/mocks"
	"task-manager-backend/internal/service"
	"task-manager-backend/internal/testutils"

	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

type UserHandlerTestSuite struct {
	suite.Suite
	ctrl        *gomock.Controller
	userService *mocks.MockUserServiceInterface
	http        *testutils.HTTPTestSuite
}

func (suite *UserHandlerTestSuite) SetupTest() {
	suite.ctrl = gomock.NewController(suite.T())
	suite.userService = mocks.NewMockUserServiceInterface(suite.ctrl)
	suite.http = testutils.SetupHTTPTest()

	handler := handlers.NewUserHandler(suite.userService, 10)
	suite.http.Router.GET("/Users", handler.List)
	suite.http.Router.GET("/Users/assigned-tasks", handler.ListAssignedTasks)
	suite.http.Router.GET("/Users/trashed", handler.Trashed)
	suite.http.Router.GET("/Users/:id", handler.Get)
	suite.http.Router.POST("/Users", handler.Create)
	suite.http.Router.POST("/Users/:id/restore", handler.Restore)
	suite.http.Router.PUT("/Users/:id", handler.Update)
	suite.http.Router.DELETE("/Users/:id", handler.Delete)
	suite.http.Router.DELETE("/Users/:id/forceDelete", handler.ForceDelete)
}

func (suite *UserHandlerTestSuite) TearDownTest() {
	suite.ctrl.Finish()
}

func (suite *UserHandlerTestSuite) userResponse() *service.UserResponse {
	return &service.UserResponse{
		ID:        uuid.New(),
		Name:      "Jane Dev",
		Email:     "jane@test.com",
		CreatedAt: time.Now().Format(time.RFC3339),
		UpdatedAt: time.Now().Format(time.RFC3339),
	}
}

func (suite *UserHandlerTestSuite) TestListForwardsTaskFilters() {
	suite.userService.EXPECT().List(1, 10, "in_progress", "high").
		Return(&service.UserListResponse{Users: []service.UserResponse{}, Page: 1, PageSize: 10}, nil)

	recorder := suite.http.MakeRequest(http.MethodGet, "/Users?status=in_progress&priority=high", nil)
	suite.Equal(http.StatusOK, recorder.Code)
}

func (suite *UserHandlerTestSuite) TestListInvalidFilterIs422() {
	suite.userService.EXPECT().List(1, 10, "archived", "").
		Return(nil, apperrors.NewValidationErrors("the status filter must be one of: new in_progress completed"))

	recorder := suite.http.MakeRequest(http.MethodGet, "/Users?status=archived", nil)

	var resp handlers.ErrorEnvelope
	testutils.AssertJSONResponse(suite.T(), recorder, http.StatusUnprocessableEntity, &resp)
	suite.False(resp.Status)
	suite.NotEmpty(resp.Errors)
}

func (suite *UserHandlerTestSuite) TestListAssignedTasks() {
	suite.userService.EXPECT().ListWithAssignedTasks(1, 10).
		Return(&service.UserListResponse{Users: []service.UserResponse{*suite.userResponse()}, Total: 1, Page: 1, PageSize: 10}, nil)

	recorder := suite.http.MakeRequest(http.MethodGet, "/Users/assigned-tasks", nil)
	suite.Equal(http.StatusOK, recorder.Code)
}

func (suite *UserHandlerTestSuite) TestCreateUser() {
	user := suite.userResponse()
	suite.userService.EXPECT().Create(gomock.Any()).Return(user, nil)

	body := map[string]interface{}{
		"name":     user.Name,
		"email":    user.Email,
		"password": "password123",
	}
	recorder := suite.http.MakeRequest(http.MethodPost, "/Users", body)

	var resp handlers.Envelope
	testutils.AssertJSONResponse(suite.T(), recorder, http.StatusCreated, &resp)
	suite.True(resp.Status)
}

func (suite *UserHandlerTestSuite) TestCreateUserDuplicateEmailIs422() {
	suite.userService.EXPECT().Create(gomock.Any()).Return(nil, apperrors.ErrUserExists)

	body := map[string]interface{}{
		"name":     "Jane",
		"email":    "jane@test.com",
		"password": "password123",
	}
	recorder := suite.http.MakeRequest(http.MethodPost, "/Users", body)
	suite.Equal(http.StatusUnprocessableEntity, recorder.Code)
}

func (suite *UserHandlerTestSuite) TestGetUserNotFound() {
	id := uuid.New()
	suite.userService.EXPECT().GetByID(id).Return(nil, apperrors.ErrUserNotFound)

	recorder := suite.http.MakeRequest(http.MethodGet, "/Users/"+id.String(), nil)
	testutils.AssertErrorResponse(suite.T(), recorder, http.StatusNotFound, "user not found")
}

func (suite *UserHandlerTestSuite) TestTrashedRouteWinsOverIDLookup() {
	suite.userService.EXPECT().Trashed(1, 10).
		Return(&service.UserListResponse{Users: []service.UserResponse{}, Page: 1, PageSize: 10}, nil)

	recorder := suite.http.MakeRequest(http.MethodGet, "/Users/trashed", nil)
	suite.Equal(http.StatusOK, recorder.Code)
}

func (suite *UserHandlerTestSuite) TestRestoreUser() {
	id := uuid.New()
	suite.userService.EXPECT().Restore(id).Return(suite.userResponse(), nil)

	recorder := suite.http.MakeRequest(http.MethodPost, "/Users/"+id.String()+"/restore", nil)
	suite.Equal(http.StatusOK, recorder.Code)
}

func (suite *UserHandlerTestSuite) TestForceDeleteNonTrashedIs404() {
	id := uuid.New()
	suite.userService.EXPECT().ForceDelete(id).Return(apperrors.ErrUserNotFound)

	recorder := suite.http.MakeRequest(http.MethodDelete, "/Users/"+id.String()+"/forceDelete", nil)
	suite.Equal(http.StatusNotFound, recorder.Code)
}

func TestUserHandlerTestSuite(t *testing.T) {
	suite.Run(t, new(UserHandlerTestSuite))
}
