package quota

import "errors"

var (
	// ErrStoreUnavailable is returned when the counter store is unreachable
	// or errors. The limiter never silently admits or denies on store
	// failure.
	ErrStoreUnavailable = errors.New("quota store unavailable")

	// ErrInvalidIdentity is returned for an empty identity key.
	ErrInvalidIdentity = errors.New("invalid identity")
)
