package domain

import "errors"

// Sentinel errors returned by repositories. Usecases translate these into
// apperror values with the right HTTP status.
var (
	ErrNotFound        = errors.New("resource not found")
	ErrDuplicate       = errors.New("resource already exists")
	ErrVersionConflict = errors.New("version conflict")
)
