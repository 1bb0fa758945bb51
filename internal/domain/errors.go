package domain

import "errors"

// Domain errors
var (
	// User errors
	ErrUserNotFound      = errors.New("user not found")
	ErrUserAlreadyExists = errors.New("user already exists")

	// Event errors
	ErrEventNotFound     = errors.New("event not found")
	ErrNotEventOwner     = errors.New("you don't have permission to manage this event")
	ErrQuotaExceeded     = errors.New("free event limit reached, please upgrade to Pro plan")
	ErrFeatureRestricted = errors.New("custom theme colors are a Pro feature, please upgrade to Pro plan")

	// Registration errors
	ErrCapacityExceeded      = errors.New("event is at full capacity")
	ErrDuplicateRegistration = errors.New("you have already registered for this event")
	ErrRegistrationNotFound  = errors.New("registration not found")
	ErrNotRegistrationOwner  = errors.New("you don't have permission to manage this registration")
	ErrRegistrationCancelled = errors.New("registration has been cancelled")
	ErrTicketCodeCollision   = errors.New("ticket code already in use")

	// Check-in errors
	ErrTicketNotFound   = errors.New("ticket not found")
	ErrAlreadyCheckedIn = errors.New("attendee has already been checked in")

	// Validation errors
	ErrInvalidInput      = errors.New("invalid request payload")
	ErrInvalidPagination = errors.New("page and limit must be positive integers")
	ErrQueryTooShort     = errors.New("query must be at least 2 characters long")
)

// IsNotFoundError checks if the error is a not found error
func IsNotFoundError(err error) bool {
	return errors.Is(err, ErrUserNotFound) ||
		errors.Is(err, ErrEventNotFound) ||
		errors.Is(err, ErrRegistrationNotFound) ||
		errors.Is(err, ErrTicketNotFound)
}

// IsForbiddenError checks if the error is an ownership or plan-gate error
func IsForbiddenError(err error) bool {
	return errors.Is(err, ErrNotEventOwner) ||
		errors.Is(err, ErrNotRegistrationOwner) ||
		errors.Is(err, ErrQuotaExceeded) ||
		errors.Is(err, ErrFeatureRestricted)
}

// IsConflictError checks if the error is a state conflict rejected at the
// storage layer
func IsConflictError(err error) bool {
	return errors.Is(err, ErrCapacityExceeded) ||
		errors.Is(err, ErrDuplicateRegistration) ||
		errors.Is(err, ErrAlreadyCheckedIn) ||
		errors.Is(err, ErrRegistrationCancelled) ||
		errors.Is(err, ErrUserAlreadyExists)
}

// IsValidationError checks if the error is a bad-input error
func IsValidationError(err error) bool {
	return errors.Is(err, ErrInvalidInput) ||
		errors.Is(err, ErrInvalidPagination) ||
		errors.Is(err, ErrQueryTooShort)
}
