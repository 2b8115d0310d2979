package cache

import (
	"errors"
	"fmt"
)

// ErrInvalidArgument is the root of every construction-time validation
// failure. Use errors.Is to match it.
var ErrInvalidArgument = errors.New("cache: invalid argument")

// Validation errors returned by New, NewNode and LRU.Set.
var (
	// ErrInvalidMaxSize indicates Config.MaxSize is not a positive integer
	// or exceeds math.MaxInt32.
	ErrInvalidMaxSize = fmt.Errorf("%w: max size must be a positive integer", ErrInvalidArgument)

	// ErrInvalidExpiration indicates an expiration that is set but is zero,
	// negative or not a number.
	ErrInvalidExpiration = fmt.Errorf("%w: entry expiration must either be null (no expiry) or greater than 0", ErrInvalidArgument)

	// ErrUncloneable indicates a value that cannot be deep copied for cloning.
	ErrUncloneable = fmt.Errorf("%w: value cannot be cloned", ErrInvalidArgument)
)
