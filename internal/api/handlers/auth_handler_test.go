package handlers_test

import (
	"net/http"
	"testing"
	"time"

	"task-manager-backend/internal/api/handlers"
	"task-manager-backend/internal/auth"
	"task-manager-backend/internal/authz"
	"task-manager-backend/internal/database/models"
	"task-manager-backend/internal/mocks"
	"task-manager-backend/internal/testutils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

type AuthHandlerTestSuite struct {
	suite.Suite
	ctrl     *gomock.Controller
	userRepo *mocks.MockUserRepositoryInterface
	http     *testutils.HTTPTestSuite
	actor    authz.Actor
}

func (suite *AuthHandlerTestSuite) SetupTest() {
	suite.ctrl = gomock.NewController(suite.T())
	suite.userRepo = mocks.NewMockUserRepositoryInterface(suite.ctrl)
	suite.http = testutils.SetupHTTPTest()
	suite.actor = authz.Actor{UserID: uuid.New()}

	authService := auth.NewService("test-secret", time.Hour, suite.userRepo)
	handler := handlers.NewAuthHandler(authService)

	suite.http.Router.POST("/login", handler.Login)
	authed := suite.http.Router.Group("", func(c *gin.Context) {
		c.Set("actor", suite.actor)
	})
	authed.POST("/logout", handler.Logout)
}

func (suite *AuthHandlerTestSuite) TearDownTest() {
	suite.ctrl.Finish()
}

func (suite *AuthHandlerTestSuite) storedUser(password string) *models.User {
	hash, err := auth.HashPassword(password)
	suite.Require().NoError(err)
	return &models.User{
		BaseModel: models.BaseModel{ID: uuid.New()},
		Name:      "Jane Dev",
		Email:     "jane@test.com",
		Password:  hash,
	}
}

func (suite *AuthHandlerTestSuite) TestLoginSuccess() {
	user := suite.storedUser("password123")
	suite.userRepo.EXPECT().GetByEmail("jane@test.com").Return(user, nil)

	body := map[string]string{"email": "jane@test.com", "password": "password123"}
	recorder := suite.http.MakeRequest(http.MethodPost, "/login", body)

	var resp handlers.Envelope
	testutils.AssertJSONResponse(suite.T(), recorder, http.StatusOK, &resp)
	suite.True(resp.Status)

	data, ok := resp.Data.(map[string]interface{})
	suite.Require().True(ok)
	suite.NotEmpty(data["token"])

	userData, ok := data["user"].(map[string]interface{})
	suite.Require().True(ok)
	suite.Equal("jane@test.com", userData["email"])
}

func (suite *AuthHandlerTestSuite) TestLoginWrongPassword() {
	user := suite.storedUser("password123")
	suite.userRepo.EXPECT().GetByEmail("jane@test.com").Return(user, nil)

	body := map[string]string{"email": "jane@test.com", "password": "wrong-password"}
	recorder := suite.http.MakeRequest(http.MethodPost, "/login", body)
	testutils.AssertErrorResponse(suite.T(), recorder, http.StatusUnauthorized, "Unauthorized")
}

func (suite *AuthHandlerTestSuite) TestLoginMalformedBody() {
	body := map[string]string{"email": "not-an-email"}
	recorder := suite.http.MakeRequest(http.MethodPost, "/login", body)

	var resp handlers.ErrorEnvelope
	testutils.AssertJSONResponse(suite.T(), recorder, http.StatusUnprocessableEntity, &resp)
	suite.False(resp.Status)
}

func (suite *AuthHandlerTestSuite) TestLogout() {
	recorder := suite.http.MakeRequest(http.MethodPost, "/logout", nil)

	var resp handlers.Envelope
	testutils.AssertJSONResponse(suite.T(), recorder, http.StatusOK, &resp)
	suite.True(resp.Status)
	suite.Equal("Logged out successfully", resp.Message)
}

func TestAuthHandlerTestSuite(t *testing.T) {
	suite.Run(t, new(AuthHandlerTestSuite))
}
