package domain

import "fmt"

// ErrorCode represents a domain error code.
type ErrorCode string

const (
	ErrCodeTaskNotFound       ErrorCode = "TASK_NOT_FOUND"
	ErrCodeUserNotFound       ErrorCode = "USER_NOT_FOUND"
	ErrCodeForbidden          ErrorCode = "FORBIDDEN"
	ErrCodeUnauthenticated    ErrorCode = "UNAUTHENTICATED"
	ErrCodeValidationFailed   ErrorCode = "VALIDATION_FAILED"
	ErrCodeAlreadyAssigned    ErrorCode = "TASK_ALREADY_ASSIGNED"
	ErrCodeDependenciesNotMet ErrorCode = "DEPENDENCIES_NOT_SATISFIED"
	ErrCodeEmailTaken         ErrorCode = "EMAIL_TAKEN"
	ErrCodeInvalidCredentials ErrorCode = "INVALID_CREDENTIALS"
	ErrCodeInternalError      ErrorCode = "INTERNAL_ERROR"
)

// Error represents an error in the domain layer with context.
type Error struct {
	Code    ErrorCode
	Message string
	Context map[string]interface{}
}

func (e *Error) Error() string {
	return e.Message
}

// NewTaskNotFoundError creates a task not found error.
func NewTaskNotFoundError(taskID int64) *Error {
	return &Error{
		Code:    ErrCodeTaskNotFound,
		Message: "Task not found",
		Context: map[string]interface{}{"id": taskID},
	}
}

// NewUserNotFoundError creates a user not found error.
func NewUserNotFoundError(userID int64) *Error {
	return &Error{
		Code:    ErrCodeUserNotFound,
		Message: "User not found",
		Context: map[string]interface{}{"id": userID},
	}
}

// NewForbiddenError creates an authorization denial for the given action.
// The action is the machine-distinguishable reason; the message is part of
// the observable contract and is returned verbatim to clients.
func NewForbiddenError(action, message string) *Error {
	return &Error{
		Code:    ErrCodeForbidden,
		Message: message,
		Context: map[string]interface{}{"action": action},
	}
}

// NewUnauthenticatedError creates an authentication error.
func NewUnauthenticatedError() *Error {
	return &Error{
		Code:    ErrCodeUnauthenticated,
		Message: "Unauthenticated.",
	}
}

// NewValidationError creates a validation error. The errors map keys are
// field names, values the per-field failure messages.
func NewValidationError(errors map[string][]string) *Error {
	return &Error{
		Code:    ErrCodeValidationFailed,
		Message: "The given data was invalid.",
		Context: map[string]interface{}{"errors": errors},
	}
}

// NewAlreadyAssignedError creates an error for assigning an already-assigned
// task.
func NewAlreadyAssignedError(taskID int64) *Error {
	return &Error{
		Code:    ErrCodeAlreadyAssigned,
		Message: "Task already assigned to user",
		Context: map[string]interface{}{"id": taskID},
	}
}

// NewDependenciesNotSatisfiedError creates an error for completing a task
// whose dependencies are not all completed.
func NewDependenciesNotSatisfiedError(taskID int64) *Error {
	return &Error{
		Code:    ErrCodeDependenciesNotMet,
		Message: "You have to finish task dependencies before update this task.",
		Context: map[string]interface{}{"id": taskID},
	}
}

// NewEmailTakenError creates an error for registering a duplicate email.
func NewEmailTakenError(email string) *Error {
	return &Error{
		Code:    ErrCodeEmailTaken,
		Message: "The given data was invalid.",
		Context: map[string]interface{}{
			"errors": map[string][]string{
				"email": {"The email has already been taken."},
			},
		},
	}
}

// NewInvalidCredentialsError creates a failed-login error.
func NewInvalidCredentialsError() *Error {
	return &Error{
		Code:    ErrCodeInvalidCredentials,
		Message: "Invalid credentials",
	}
}

// NewInternalError creates an internal error. The underlying error is kept
// for debug rendering only and never reaches production responses.
func NewInternalError(err error) *Error {
	e := &Error{
		Code:    ErrCodeInternalError,
		Message: "Server Error",
		Context: map[string]interface{}{},
	}
	if err != nil {
		e.Context["cause"] = fmt.Sprintf("%v", err)
	}
	return e
}
