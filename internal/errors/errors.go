package errors

import (
	"errors"
	"fmt"
	"strings"
)

// NotFoundError represents an error when an entity is not found
type NotFoundError struct {
	Entity string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s not found", e.Entity)
}

// Is enables errors.Is() comparison for NotFoundError
func (e *NotFoundError) Is(target error) bool {
	t, ok := target.(*NotFoundError)
	if !ok {
		return false
	}
	return e.Entity == t.Entity
}

// AlreadyExistsError represents an error when an entity already exists
type AlreadyExistsError struct {
	Entity  string
	Context string
}

func (e *AlreadyExistsError) Error() string {
	if e.Context != "" {
		return fmt.Sprintf("%s already exists %s", e.Entity, e.Context)
	}
	return fmt.Sprintf("%s already exists", e.Entity)
}

// Is enables errors.Is() comparison for AlreadyExistsError
func (e *AlreadyExistsError) Is(target error) bool {
	t, ok := target.(*AlreadyExistsError)
	if !ok {
		return false
	}
	return e.Entity == t.Entity
}

// ValidationErrors collects every rule violation found while validating a
// request. Validation never stops at the first failure: the caller gets the
// complete list of problems in one response.
type ValidationErrors struct {
	Errors []string
}

func (e *ValidationErrors) Error() string {
	return "validation error: " + strings.Join(e.Errors, "; ")
}

// Add appends a formatted violation message.
func (e *ValidationErrors) Add(format string, args ...interface{}) {
	e.Errors = append(e.Errors, fmt.Sprintf(format, args...))
}

// HasErrors reports whether any violation was collected.
func (e *ValidationErrors) HasErrors() bool {
	return len(e.Errors) > 0
}

// AuthenticationError represents authentication-related errors
type AuthenticationError struct {
	Message string
}

func (e *AuthenticationError) Error() string {
	return e.Message
}

// AuthorizationError represents authorization-related errors
type AuthorizationError struct {
	Message string
}

func (e *AuthorizationError) Error() string {
	return e.Message
}

// Entity Not Found Errors
var (
	ErrUserNotFound       = &NotFoundError{Entity: "user"}
	ErrProjectNotFound    = &NotFoundError{Entity: "project"}
	ErrTaskNotFound       = &NotFoundError{Entity: "task"}
	ErrMembershipNotFound = &NotFoundError{Entity: "membership"}
)

// Already Exists Errors
var (
	ErrUserExists = &AlreadyExistsError{Entity: "user", Context: "with this email"}
)

// Authentication / Authorization Errors
var (
	ErrInvalidCredentials = &AuthenticationError{Message: "invalid email or password"}
	ErrTokenRevoked       = &AuthenticationError{Message: "token has been revoked"}
	ErrNotProjectMember   = &AuthorizationError{Message: "user is not a member of this project"}
	ErrRoleNotAllowed     = &AuthorizationError{Message: "project role does not permit this operation"}
	ErrNotTaskAssignee    = &AuthorizationError{Message: "only the task assignee may change its status"}
	ErrNotTaskCreator     = &AuthorizationError{Message: "only the task creator may update it"}
)

// Helper Functions

// IsNotFound checks if an error is a NotFoundError
func IsNotFound(err error) bool {
	var notFoundErr *NotFoundError
	return errors.As(err, &notFoundErr)
}

// IsAlreadyExists checks if an error is an AlreadyExistsError
func IsAlreadyExists(err error) bool {
	var existsErr *AlreadyExistsError
	return errors.As(err, &existsErr)
}

// IsValidation checks if an error carries collected validation failures
func IsValidation(err error) bool {
	var validationErr *ValidationErrors
	return errors.As(err, &validationErr)
}

// IsAuthentication checks if an error is an AuthenticationError
func IsAuthentication(err error) bool {
	var authErr *AuthenticationError
	return errors.As(err, &authErr)
}

// IsAuthorization checks if an error is an AuthorizationError
func IsAuthorization(err error) bool {
	var authzErr *AuthorizationError
	return errors.As(err, &authzErr)
}

// NewNotFoundError creates a new NotFoundError for a custom entity
func NewNotFoundError(entity string) error {
	return &NotFoundError{Entity: entity}
}

// NewValidationErrors creates a ValidationErrors from a list of messages
func NewValidationErrors(messages ...string) *ValidationErrors {
	return &ValidationErrors{Errors: messages}
}

// NewAuthenticationError creates a new AuthenticationError
func NewAuthenticationError(message string) error {
	return &AuthenticationError{Message: message}
}

// NewAuthorizationError creates a new AuthorizationError
func NewAuthorizationError(message string) error {
	return &AuthorizationError{Message: message}
}
