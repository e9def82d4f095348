package domain

import "errors"

// Domain errors
var (
	// Session errors
	ErrNotAuthenticated = errors.New("you must log in first")

	// Lookup errors
	ErrOwnerNotFound = errors.New("owner not found")
	ErrSnakeNotFound = errors.New("snake not found")
	ErrCageNotFound  = errors.New("cage not found")

	// Availability errors
	ErrNoAvailability       = errors.New("no matching availability")
	ErrAvailabilityConflict = errors.New("availability window was booked concurrently")

	// Account errors
	ErrEmailTaken = errors.New("account with this email already exists")

	// Validation errors
	ErrInvalidDateRange    = errors.New("check in must be before check out")
	ErrInvalidName         = errors.New("name is required")
	ErrInvalidEmail        = errors.New("email is required")
	ErrInvalidLength       = errors.New("snake length must be greater than zero")
	ErrInvalidSquareMeters = errors.New("cage size must be greater than zero")
	ErrInvalidPrice        = errors.New("price cannot be negative")
	ErrInvalidID           = errors.New("invalid id")
)

// IsNotFoundError checks if the error is a not found error
func IsNotFoundError(err error) bool {
	return errors.Is(err, ErrOwnerNotFound) ||
		errors.Is(err, ErrSnakeNotFound) ||
		errors.Is(err, ErrCageNotFound)
}

// IsValidationError checks if the error is a validation error
func IsValidationError(err error) bool {
	return errors.Is(err, ErrInvalidDateRange) ||
		errors.Is(err, ErrInvalidName) ||
		errors.Is(err, ErrInvalidEmail) ||
		errors.Is(err, ErrInvalidLength) ||
		errors.Is(err, ErrInvalidSquareMeters) ||
		errors.Is(err, ErrInvalidPrice) ||
		errors.Is(err, ErrInvalidID)
}

// IsConflictError checks if the error is a conflict error
func IsConflictError(err error) bool {
	return errors.Is(err, ErrNoAvailability) ||
		errors.Is(err, ErrAvailabilityConflict) ||
		errors.Is(err, ErrEmailTaken)
}
