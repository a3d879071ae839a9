package auditlog

import (
	"context"
	"errors"
	"fmt"

	"github.com/sweetnarcisse/SN-BookingService/pkg/psqlbuilder"
	"github.com/sweetnarcisse/SN-BookingService/pkg/txmanager"
)

// Event types written by the scheduling core
const (
	EventNewBooking       = "NEW_BOOKING"
	EventBookingCancelled = "BOOKING_CANCELLED"
	EventBookingPaid      = "BOOKING_PAID"
)

var (
	// ErrBuildQuery is returned when building a SQL query fails
	ErrBuildQuery = errors.New("auditlog.repository: failed to build query")

	// ErrExecQuery is returned when executing a SQL query fails
	ErrExecQuery = errors.New("auditlog.repository: failed to execute query")
)

// Repository appends to the audit_logs table. Append-only: the core
// never reads or mutates past entries.
type Repository struct {
	db txmanager.DBExecutor
}

// NewRepository creates an audit log repository
func NewRepository(db txmanager.DBExecutor) *Repository {
	return &Repository{db: db}
}

// Append writes one audit entry. Runs outside any caller transaction on
// purpose: a booking already committed must not be rolled back by a
// logging failure.
func (r *Repository) Append(ctx context.Context, eventType, message string) error {
	query, args, err := psqlbuilder.Insert("audit_logs").
		Columns("event_type", "message").
		Values(eventType, message).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: Append - build insert query: %v", ErrBuildQuery, err)
	}

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: Append - execute insert: %v", ErrExecQuery, err)
	}

	return nil
}
