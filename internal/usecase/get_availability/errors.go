package get_availability

import "errors"

var (
	// ErrInvalidDate is returned for an unparseable or missing date
	ErrInvalidDate = errors.New("invalid availability date")

	// ErrNoActiveBoats is returned when the fleet has no active boat
	ErrNoActiveBoats = errors.New("no active boats")

	// ErrInternal is returned on internal usecase errors
	ErrInternal = errors.New("usecase: internal error")
)
