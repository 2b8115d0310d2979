package health

import "errors"

var (
	// ErrCheckFailed indicates a health check failed.
	ErrCheckFailed = errors.New("health: check failed")

	// ErrNilTarget indicates a checker was built without something to check.
	ErrNilTarget = errors.New("health: nothing to check")
)
