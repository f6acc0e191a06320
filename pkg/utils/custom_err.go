package utils

import "errors"

var (
	ErrInvalidPage     = errors.New("invalid page parameter")
	ErrInvalidPageSize = errors.New("invalid page size parameter")
	ErrInvalidID       = errors.New("invalid id")

	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrAccountNotFound    = errors.New("account not found")
	ErrEmailAlreadyExists = errors.New("email already exists")
	ErrInvalidResetToken  = errors.New("invalid or expired token")
	ErrForbidden          = errors.New("insufficient permissions")
	ErrNoClientAssigned   = errors.New("user has no client")

	ErrClientNotFound = errors.New("client not found")
	ErrNoFreeLicenses = errors.New("no free licenses")

	ErrInvalidPackage         = errors.New("invalid package type")
	ErrCustomLicensesRequired = errors.New("custom licenses required")
	ErrCustomLicensesTooMany  = errors.New("custom licenses above limit")

	ErrCourseNotFound    = errors.New("course not found")
	ErrCourseTitleTaken  = errors.New("course title already exists")
	ErrChapterNotFound   = errors.New("chapter not found")
	ErrChapterLocked     = errors.New("chapter is locked")
	ErrCourseNotAssigned = errors.New("course not available for this user")

	ErrInvalidSettingValue = errors.New("invalid setting value")
	ErrInvalidSettingType  = errors.New("invalid setting type")
)

// ValidationError carries a user-facing 400 message.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

func NewValidationError(message string) error {
	return &ValidationError{Message: message}
}
