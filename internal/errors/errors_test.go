package errors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNotFoundErrors(t *testing.T) {
	assert.Equal(t, "user not found", ErrUserNotFound.Error())
	assert.Equal(t, "project not found", ErrProjectNotFound.Error())
	assert.Equal(t, "task not found", ErrTaskNotFound.Error())
	assert.Equal(t, "membership not found", ErrMembershipNotFound.Error())

	assert.True(t, IsNotFound(ErrUserNotFound))
	assert.True(t, IsNotFound(fmt.Errorf("wrapped: %w", ErrTaskNotFound)))
	assert.False(t, IsNotFound(errors.New("plain error")))
	assert.False(t, IsNotFound(ErrUserExists))
}

func TestNotFoundErrorIs(t *testing.T) {
	assert.True(t, errors.Is(ErrUserNotFound, &NotFoundError{Entity: "user"}))
	assert.False(t, errors.Is(ErrUserNotFound, ErrProjectNotFound))

	wrapped := fmt.Errorf("lookup failed: %w", ErrProjectNotFound)
	assert.True(t, errors.Is(wrapped, ErrProjectNotFound))
}

func TestAlreadyExistsError(t *testing.T) {
	assert.Equal(t, "user already exists with this email", ErrUserExists.Error())
	assert.True(t, IsAlreadyExists(ErrUserExists))
	assert.False(t, IsAlreadyExists(ErrUserNotFound))
}

func TestValidationErrorsCollectAll(t *testing.T) {
	verrs := &ValidationErrors{}
	assert.False(t, verrs.HasErrors())

	verrs.Add("the name field is required")
	verrs.Add("the user with ID %s does not exist", "abc")
	assert.True(t, verrs.HasErrors())
	assert.Len(t, verrs.Errors, 2)
	assert.Equal(t, "the user with ID abc does not exist", verrs.Errors[1])
	assert.Contains(t, verrs.Error(), "the name field is required")

	assert.True(t, IsValidation(verrs))
	assert.True(t, IsValidation(fmt.Errorf("rejected: %w", verrs)))
	assert.False(t, IsValidation(ErrUserNotFound))
}

func TestAuthenticationAndAuthorization(t *testing.T) {
	assert.True(t, IsAuthentication(ErrInvalidCredentials))
	assert.True(t, IsAuthentication(ErrTokenRevoked))
	assert.False(t, IsAuthentication(ErrNotProjectMember))

	assert.True(t, IsAuthorization(ErrNotProjectMember))
	assert.True(t, IsAuthorization(ErrRoleNotAllowed))
	assert.True(t, IsAuthorization(ErrNotTaskAssignee))
	assert.True(t, IsAuthorization(ErrNotTaskCreator))
	assert.False(t, IsAuthorization(ErrInvalidCredentials))
}

func TestConstructors(t *testing.T) {
	err := NewNotFoundError("widget")
	assert.Equal(t, "widget not found", err.Error())
	assert.True(t, IsNotFound(err))

	verrs := NewValidationErrors("first", "second")
	assert.Len(t, verrs.Errors, 2)

	assert.True(t, IsAuthentication(NewAuthenticationError("nope")))
	assert.True(t, IsAuthorization(NewAuthorizationError("nope")))
}
