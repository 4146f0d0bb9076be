package domain

import (
	"errors"
	"fmt"
)

// Stable machine-readable error codes surfaced to API clients.
const (
	CodeNotFound      = "NOT_FOUND"
	CodeValidation    = "VALIDATION_ERROR"
	CodeInvalidParam  = "INVALID_PARAM"
	CodeNotAuthorized = "NOT_AUTHORIZED"
	CodeNotAvailable  = "ITEM_NOT_AVAILABLE"
	CodeConflict      = "CONFLICT"
)

// Error is a domain error carrying a stable code alongside the message.
type Error struct {
	Code    string
	Message string
}

func (e *Error) Error() string {
	return e.Message
}

// NewNotFoundError reports that a referenced entity does not exist.
func NewNotFoundError(entity, id string) *Error {
	return &Error{
		Code:    CodeNotFound,
		Message: fmt.Sprintf("%s not found: %s", entity, id),
	}
}

// NewValidationError reports invalid input data.
func NewValidationError(message string) *Error {
	return &Error{Code: CodeValidation, Message: message}
}

// NewInvalidParamError reports a parameter outside its allowed value set.
// The offending raw value is included so clients can see what was rejected.
func NewInvalidParamError(param, value string) *Error {
	return &Error{
		Code:    CodeInvalidParam,
		Message: fmt.Sprintf("invalid %s value: %s", param, value),
	}
}

// NewNotAuthorizedError reports that the caller may not perform the operation.
func NewNotAuthorizedError(callerID string) *Error {
	return &Error{
		Code:    CodeNotAuthorized,
		Message: fmt.Sprintf("user %s is not authorized to act on this booking", callerID),
	}
}

// NewNotAvailableError reports that an item cannot currently be booked.
func NewNotAvailableError(itemID string) *Error {
	return &Error{
		Code:    CodeNotAvailable,
		Message: fmt.Sprintf("item %s is not available for booking", itemID),
	}
}

// NewConflictError reports a lost write race, e.g. a concurrent approval.
func NewConflictError(message string) *Error {
	return &Error{Code: CodeConflict, Message: message}
}

// CodeOf extracts the domain error code, or "" for non-domain errors.
func CodeOf(err error) string {
	var de *Error
	if errors.As(err, &de) {
		return de.Code
	}
	return ""
}

// IsNotFound reports whether err is a NOT_FOUND domain error.
func IsNotFound(err error) bool {
	return CodeOf(err) == CodeNotFound
}

// IsConflict reports whether err is a CONFLICT domain error.
func IsConflict(err error) bool {
	return CodeOf(err) == CodeConflict
}
