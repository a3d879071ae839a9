package fleet

import "errors"

var (
	// ErrNoActiveBoats is returned when the active fleet is empty
	ErrNoActiveBoats = errors.New("fleet: no active boats")

	// ErrBoatNotFound is returned when a boat does not exist
	ErrBoatNotFound = errors.New("fleet: boat not found")

	// ErrNoBoatAvailable is returned when no boat has enough remaining capacity
	ErrNoBoatAvailable = errors.New("fleet: no boat with enough capacity")

	// ErrInternal is returned on storage failures
	ErrInternal = errors.New("fleet: internal error")
)
