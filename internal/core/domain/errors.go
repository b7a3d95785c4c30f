package domain

import "errors"

// Error kinds. Every domain error unwraps to exactly one of these.
var (
	ErrValidation   = errors.New("invalid input")
	ErrNotFound     = errors.New("resource not found")
	ErrConflict     = errors.New("conflicting state")
	ErrUnauthorized = errors.New("unauthorized")
)

// Error is a domain failure with a client-visible message
type Error struct {
	Kind    error
	Message string
}

func (e *Error) Error() string {
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Kind
}

// NewValidationError creates an invalid-input error
func NewValidationError(msg string) *Error {
	return &Error{Kind: ErrValidation, Message: msg}
}

// NewNotFoundError creates a not-found error
func NewNotFoundError(msg string) *Error {
	return &Error{Kind: ErrNotFound, Message: msg}
}

// NewConflictError creates a conflicting-state error
func NewConflictError(msg string) *Error {
	return &Error{Kind: ErrConflict, Message: msg}
}

// Loan request validation errors
var (
	ErrAmountNotPositive   = NewValidationError("amount must be greater than 0")
	ErrAmountTooLarge      = NewValidationError("amount exceeds the maximum allowed")
	ErrInterestOutOfRange  = NewValidationError("interest rate must be between 0% and 50%")
	ErrTermOutOfRange      = NewValidationError("term must be between 1 and 240 months")
	ErrPendingTarget       = NewValidationError("cannot set status to Pending")
	ErrInvalidReviewStatus = NewValidationError("status must be Approved or Rejected")
)

// Lookup errors
var (
	ErrUserNotFound = NewNotFoundError("user not found")
	ErrLoanNotFound = NewNotFoundError("loan not found")
)

// State errors
var (
	ErrLoanAlreadyReviewed = NewConflictError("loan was already reviewed")
)

// User errors
var (
	ErrFullNameRequired       = NewValidationError("full name is required")
	ErrEmailRequired          = NewValidationError("email is required")
	ErrPasswordTooShort       = NewValidationError("password must be at least 6 characters")
	ErrPasswordTooLong        = NewValidationError("password must be at most 72 bytes")
	ErrEmailAlreadyRegistered = NewConflictError("email is already registered")
	ErrInvalidCredentials     = &Error{Kind: ErrUnauthorized, Message: "invalid email or password"}
)
