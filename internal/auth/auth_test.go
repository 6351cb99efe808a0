package auth_test

import (
	"testing"
	"time"

	"task-manager-backend/internal/auth"
	"task-manager-backend/internal/database/models"
	apperrors "task-manager-backend/internal/errors"
	"task-manager-backend/internal/mocks"

	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type AuthServiceTestSuite struct {
	suite.Suite
	ctrl     *gomock.Controller
	userRepo *mocks.MockUserRepositoryInterface
	service  *auth.Service
}

func (suite *AuthServiceTestSuite) SetupTest() {
	suite.ctrl = gomock.NewController(suite.T())
	suite.userRepo = mocks.NewMockUserRepositoryInterface(suite.ctrl)
	suite.service = auth.NewService("test-secret", time.Hour, suite.userRepo)
}

func (suite *AuthServiceTestSuite) TearDownTest() {
	suite.ctrl.Finish()
}

func (suite *AuthServiceTestSuite) testUser(password string) *models.User {
	hash, err := auth.HashPassword(password)
	suite.Require().NoError(err)
	return &models.User{
		BaseModel: models.BaseModel{ID: uuid.New()},
		Name:      "Test User",
		Email:     "user@test.com",
		Password:  hash,
	}
}

func (suite *AuthServiceTestSuite) TestHashPassword() {
	hash, err := auth.HashPassword("secret-password")
	suite.NoError(err)
	suite.NotEqual("secret-password", hash)
	suite.NoError(bcrypt.CompareHashAndPassword([]byte(hash), []byte("secret-password")))
}

func (suite *AuthServiceTestSuite) TestLoginSuccess() {
	user := suite.testUser("correct horse battery")
	suite.userRepo.EXPECT().GetByEmail("user@test.com").Return(user, nil)

	got, token, err := suite.service.Login("user@test.com", "correct horse battery")
	suite.NoError(err)
	suite.Equal(user.ID, got.ID)
	suite.NotEmpty(token)

	claims, err := suite.service.ValidateJWT(token)
	suite.NoError(err)
	suite.Equal(user.ID, claims.UserID)
	suite.Equal(user.Email, claims.Email)
}

func (suite *AuthServiceTestSuite) TestLoginWrongPassword() {
	user := suite.testUser("correct horse battery")
	suite.userRepo.EXPECT().GetByEmail("user@test.com").Return(user, nil)

	_, _, err := suite.service.Login("user@test.com", "wrong")
	suite.ErrorIs(err, apperrors.ErrInvalidCredentials)
}

func (suite *AuthServiceTestSuite) TestLoginUnknownUserIsIndistinguishable() {
	suite.userRepo.EXPECT().GetByEmail("ghost@test.com").Return(nil, gorm.ErrRecordNotFound)

	_, _, err := suite.service.Login("ghost@test.com", "whatever")
	suite.ErrorIs(err, apperrors.ErrInvalidCredentials)
}

func (suite *AuthServiceTestSuite) TestValidateJWTRejectsGarbage() {
	_, err := suite.service.ValidateJWT("not-a-token")
	suite.Error(err)
	suite.True(apperrors.IsAuthentication(err))
}

func (suite *AuthServiceTestSuite) TestValidateJWTRejectsWrongSecret() {
	other := auth.NewService("other-secret", time.Hour, suite.userRepo)
	user := suite.testUser("pw123456")

	token, err := other.GenerateJWT(user)
	suite.Require().NoError(err)

	_, err = suite.service.ValidateJWT(token)
	suite.Error(err)
}

func (suite *AuthServiceTestSuite) TestLogoutRevokesIssuedTokens() {
	user := suite.testUser("pw123456")

	token, err := suite.service.GenerateJWT(user)
	suite.Require().NoError(err)

	_, err = suite.service.ValidateJWT(token)
	suite.Require().NoError(err)

	// Revocation applies to every token issued up to the cut-off instant.
	time.Sleep(10 * time.Millisecond)
	suite.service.Logout(user.ID)

	_, err = suite.service.ValidateJWT(token)
	suite.ErrorIs(err, apperrors.ErrTokenRevoked)
}

func (suite *AuthServiceTestSuite) TestTokensIssuedAfterLogoutAreValid() {
	user := suite.testUser("pw123456")

	suite.service.Logout(user.ID)
	time.Sleep(10 * time.Millisecond)

	token, err := suite.service.GenerateJWT(user)
	suite.Require().NoError(err)

	_, err = suite.service.ValidateJWT(token)
	suite.NoError(err)
}

func TestAuthServiceTestSuite(t *testing.T) {
	suite.Run(t, new(AuthServiceTestSuite))
}
