package fleet

import "errors"

var (
	// ErrBoatNotFound is returned when a boat does not exist
	ErrBoatNotFound = errors.New("fleet.repository: boat not found")

	// ErrBuildQuery is returned when building a SQL query fails
	ErrBuildQuery = errors.New("fleet.repository: failed to build query")

	// ErrExecQuery is returned when executing a SQL query fails
	ErrExecQuery = errors.New("fleet.repository: failed to execute query")

	// ErrScanRow is returned when scanning a query result fails
	ErrScanRow = errors.New("fleet.repository: failed to scan row")
)
