package statusview

import "errors"

// Construction and lifecycle errors.
var (
	// ErrNoHost is returned when a banner is created without a host
	// surface. There is no safe default to fall back to.
	ErrNoHost = errors.New("statusview: no host surface")

	// ErrNoCoordinator is returned when a banner is created without a
	// presentation coordinator.
	ErrNoCoordinator = errors.New("statusview: no coordinator")

	// ErrEmptyTitle is returned when a banner is created with an empty
	// title.
	ErrEmptyTitle = errors.New("statusview: title cannot be empty")

	// ErrInvalidAnchor is returned for an unknown anchor value.
	ErrInvalidAnchor = errors.New("statusview: invalid anchor")

	// ErrInvalidExitType is returned for an unknown exit type.
	ErrInvalidExitType = errors.New("statusview: invalid exit type")

	// ErrClosed is returned when a banner is shown on a coordinator that
	// has been closed.
	ErrClosed = errors.New("statusview: coordinator closed")
)
