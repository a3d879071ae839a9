package booking

import "errors"

var (
	// ErrBookingNotFound is returned when a booking does not exist
	ErrBookingNotFound = errors.New("booking.repository: booking not found")

	// ErrAlreadyCancelled is returned when cancelling a cancelled booking
	ErrAlreadyCancelled = errors.New("booking.repository: booking already cancelled")

	// ErrBuildQuery is returned when building a SQL query fails
	ErrBuildQuery = errors.New("booking.repository: failed to build query")

	// ErrExecQuery is returned when executing a SQL query fails
	ErrExecQuery = errors.New("booking.repository: failed to execute query")

	// ErrScanRow is returned when scanning a query result fails
	ErrScanRow = errors.New("booking.repository: failed to scan row")
)
