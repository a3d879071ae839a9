package booking

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"

	"github.com/sweetnarcisse/SN-BookingService/internal/domain"
	"github.com/sweetnarcisse/SN-BookingService/pkg/psqlbuilder"
	"github.com/sweetnarcisse/SN-BookingService/pkg/txmanager"
)

var bookingColumns = []string{
	"id",
	"public_reference",
	"date",
	"start_time",
	"end_time",
	"number_of_people",
	"adults",
	"children",
	"babies",
	"language",
	"status",
	"is_paid",
	"total_price",
	"message",
	"invoice_email",
	"boat_id",
	"customer_id",
	"cancellation_reason",
	"cancelled_at",
	"created_at",
	"updated_at",
}

// Repository persists bookings, customers and the seasonal reference
// sequence. When the context carries a transaction (via txmanager) every
// method runs inside it, which is how the create path keeps its
// check-then-insert atomic.
type Repository struct {
	db txmanager.DBExecutor
}

// NewRepository creates a booking repository
func NewRepository(db txmanager.DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create inserts a new booking row. The id is generated here when the
// caller left it empty.
func (r *Repository) Create(ctx context.Context, b *domain.Booking) (*domain.Booking, error) {
	executor := txmanager.GetExecutor(ctx, r.db)

	if b.ID == "" {
		b.ID = uuid.NewString()
	}

	query, args, err := psqlbuilder.Insert("bookings").
		Columns(
			"id",
			"public_reference",
			"date",
			"start_time",
			"end_time",
			"number_of_people",
			"adults",
			"children",
			"babies",
			"language",
			"status",
			"is_paid",
			"total_price",
			"message",
			"invoice_email",
			"boat_id",
			"customer_id",
		).
		Values(
			b.ID,
			b.PublicReference,
			b.Date,
			b.StartTime,
			b.EndTime,
			b.NumberOfPeople,
			b.Adults,
			b.Children,
			b.Babies,
			b.Language,
			b.Status,
			b.IsPaid,
			b.TotalPrice,
			b.Message,
			b.InvoiceEmail,
			b.BoatID,
			b.CustomerID,
		).
		Suffix("RETURNING created_at, updated_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(&createdAt, &updatedAt)
	if err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	b.CreatedAt = createdAt.Time
	b.UpdatedAt = updatedAt.Time

	return b, nil
}

// FindOverlapping returns bookings of one boat whose raw window
// intersects the filter window, ordered by start time. Cancelled
// bookings are excluded unless IncludeInactive is set.
// Inside a transaction the rows are locked with FOR UPDATE so two
// concurrent creates on the same boat and window serialize.
func (r *Repository) FindOverlapping(ctx context.Context, filter domain.BookingWindowFilter) ([]*domain.Booking, error) {
	executor := txmanager.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(bookingColumns...).
		From("bookings").
		Where(squirrel.Eq{"boat_id": filter.BoatID}).
		Where(squirrel.Lt{"start_time": filter.WindowEnd}).
		Where(squirrel.Gt{"end_time": filter.WindowStart}).
		OrderBy("start_time ASC")

	if !filter.IncludeInactive {
		selectBuilder = selectBuilder.Where(squirrel.NotEq{"status": domain.StatusCancelled})
	}

	if txmanager.IsInTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: FindOverlapping - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: FindOverlapping - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return r.scanBookings(rows)
}

// GetByID returns one booking with its boat and customer joined
func (r *Repository) GetByID(ctx context.Context, id string) (*domain.Booking, error) {
	return r.getOne(ctx, squirrel.Eq{"b.id": id})
}

// GetByReference returns one booking by its public reference
func (r *Repository) GetByReference(ctx context.Context, reference string) (*domain.Booking, error) {
	return r.getOne(ctx, squirrel.Eq{"b.public_reference": reference})
}

// ListByDate returns the bookings departing on the given calendar day
// with boat and customer joined, ordered by start time. Cancelled
// bookings are excluded unless includeInactive is set.
func (r *Repository) ListByDate(ctx context.Context, date time.Time, includeInactive bool) ([]*domain.Booking, error) {
	executor := txmanager.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(joinedColumns()...).
		From("bookings b").
		Join("boats bo ON bo.id = b.boat_id").
		Join("customers c ON c.id = b.customer_id").
		Where(squirrel.Eq{"b.date": date}).
		OrderBy("b.start_time ASC")

	if !includeInactive {
		selectBuilder = selectBuilder.Where(squirrel.NotEq{"b.status": domain.StatusCancelled})
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListByDate - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListByDate - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	bookings := make([]*domain.Booking, 0)
	for rows.Next() {
		b, err := scanJoined(rows)
		if err != nil {
			return nil, err
		}
		bookings = append(bookings, b)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ListByDate - rows error: %v", ErrScanRow, err)
	}

	return bookings, nil
}

// Cancel soft-deletes a booking: status CANCELLED, reason and timestamp
// recorded, row retained for audit and accounting.
func (r *Repository) Cancel(ctx context.Context, id string, reason string) error {
	executor := txmanager.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("bookings").
		Set("status", domain.StatusCancelled).
		Set("cancellation_reason", reason).
		Set("cancelled_at", squirrel.Expr("NOW()")).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		Where(squirrel.NotEq{"status": domain.StatusCancelled}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: Cancel - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: Cancel - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: Cancel - get rows affected: %v", ErrExecQuery, err)
	}
	if rowsAffected == 0 {
		return ErrAlreadyCancelled
	}

	return nil
}

// SetPaid marks a booking paid; a PENDING booking is confirmed at the
// same time.
func (r *Repository) SetPaid(ctx context.Context, id string) error {
	executor := txmanager.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("bookings").
		Set("is_paid", true).
		Set("status", squirrel.Expr("CASE WHEN status = ? THEN ? ELSE status END",
			string(domain.StatusPending), string(domain.StatusConfirmed))).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: SetPaid - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: SetPaid - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: SetPaid - get rows affected: %v", ErrExecQuery, err)
	}
	if rowsAffected == 0 {
		return ErrBookingNotFound
	}

	return nil
}

// UpsertCustomer connects to an existing customer by email or creates a
// new one, returning the customer id. Name and phone are refreshed on
// conflict so counter staff corrections stick.
func (r *Repository) UpsertCustomer(ctx context.Context, c *domain.Customer) (string, error) {
	executor := txmanager.GetExecutor(ctx, r.db)

	if c.ID == "" {
		c.ID = uuid.NewString()
	}

	query, args, err := psqlbuilder.Insert("customers").
		Columns("id", "first_name", "last_name", "email", "phone").
		Values(c.ID, c.FirstName, c.LastName, c.Email, c.Phone).
		Suffix(`ON CONFLICT (email) DO UPDATE
			SET first_name = EXCLUDED.first_name,
			    last_name = EXCLUDED.last_name,
			    phone = COALESCE(EXCLUDED.phone, customers.phone),
			    updated_at = NOW()
			RETURNING id`).
		ToSql()
	if err != nil {
		return "", fmt.Errorf("%w: UpsertCustomer - build upsert query: %v", ErrBuildQuery, err)
	}

	var id string
	if err := executor.QueryRowContext(ctx, query, args...).Scan(&id); err != nil {
		return "", fmt.Errorf("%w: UpsertCustomer - execute upsert: %v", ErrExecQuery, err)
	}

	c.ID = id
	return id, nil
}

// NextReferenceCounter atomically increments and returns the seasonal
// booking reference counter. Must run inside the creating transaction so
// a rolled-back booking does not burn a visible gap mid-transaction.
func (r *Repository) NextReferenceCounter(ctx context.Context, sequenceName string) (int64, error) {
	executor := txmanager.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("booking_sequences").
		Columns("name", "current").
		Values(sequenceName, 1).
		Suffix(`ON CONFLICT (name) DO UPDATE
			SET current = booking_sequences.current + 1
			RETURNING current`).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("%w: NextReferenceCounter - build upsert query: %v", ErrBuildQuery, err)
	}

	var current int64
	if err := executor.QueryRowContext(ctx, query, args...).Scan(&current); err != nil {
		return 0, fmt.Errorf("%w: NextReferenceCounter - execute upsert: %v", ErrExecQuery, err)
	}

	return current, nil
}

func (r *Repository) getOne(ctx context.Context, where squirrel.Eq) (*domain.Booking, error) {
	executor := txmanager.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(joinedColumns()...).
		From("bookings b").
		Join("boats bo ON bo.id = b.boat_id").
		Join("customers c ON c.id = b.customer_id").
		Where(where).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: getOne - build select query: %v", ErrBuildQuery, err)
	}

	b, err := scanJoined(executor.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrBookingNotFound
	}
	if err != nil {
		return nil, err
	}

	return b, nil
}

// joinedColumns is the select list of the booking/boat/customer join
func joinedColumns() []string {
	cols := make([]string, 0, len(bookingColumns)+9)
	for _, c := range bookingColumns {
		cols = append(cols, "b."+c)
	}
	return append(cols,
		"bo.id", "bo.name", "bo.capacity", "bo.status",
		"c.id", "c.first_name", "c.last_name", "c.email", "c.phone",
	)
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanJoined(row rowScanner) (*domain.Booking, error) {
	var b domain.Booking
	var boat domain.Boat
	var customer domain.Customer
	var createdAt, updatedAt, cancelledAt sql.NullTime
	var cancellationReason sql.NullString

	err := row.Scan(
		&b.ID,
		&b.PublicReference,
		&b.Date,
		&b.StartTime,
		&b.EndTime,
		&b.NumberOfPeople,
		&b.Adults,
		&b.Children,
		&b.Babies,
		&b.Language,
		&b.Status,
		&b.IsPaid,
		&b.TotalPrice,
		&b.Message,
		&b.InvoiceEmail,
		&b.BoatID,
		&b.CustomerID,
		&cancellationReason,
		&cancelledAt,
		&createdAt,
		&updatedAt,
		&boat.ID,
		&boat.Name,
		&boat.Capacity,
		&boat.Status,
		&customer.ID,
		&customer.FirstName,
		&customer.LastName,
		&customer.Email,
		&customer.Phone,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, err
	}
	if err != nil {
		return nil, fmt.Errorf("%w: scanJoined - scan booking: %v", ErrScanRow, err)
	}

	if cancellationReason.Valid {
		b.CancellationReason = &cancellationReason.String
	}
	if cancelledAt.Valid {
		b.CancelledAt = &cancelledAt.Time
	}
	b.CreatedAt = createdAt.Time
	b.UpdatedAt = updatedAt.Time
	b.Boat = &boat
	b.Customer = &customer

	return &b, nil
}

func (r *Repository) scanBookings(rows *sql.Rows) ([]*domain.Booking, error) {
	bookings := make([]*domain.Booking, 0)

	for rows.Next() {
		var b domain.Booking
		var createdAt, updatedAt, cancelledAt sql.NullTime
		var cancellationReason sql.NullString

		err := rows.Scan(
			&b.ID,
			&b.PublicReference,
			&b.Date,
			&b.StartTime,
			&b.EndTime,
			&b.NumberOfPeople,
			&b.Adults,
			&b.Children,
			&b.Babies,
			&b.Language,
			&b.Status,
			&b.IsPaid,
			&b.TotalPrice,
			&b.Message,
			&b.InvoiceEmail,
			&b.BoatID,
			&b.CustomerID,
			&cancellationReason,
			&cancelledAt,
			&createdAt,
			&updatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("%w: scanBookings - scan row: %v", ErrScanRow, err)
		}

		if cancellationReason.Valid {
			b.CancellationReason = &cancellationReason.String
		}
		if cancelledAt.Valid {
			b.CancelledAt = &cancelledAt.Time
		}
		b.CreatedAt = createdAt.Time
		b.UpdatedAt = updatedAt.Time

		bookings = append(bookings, &b)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: scanBookings - rows error: %v", ErrScanRow, err)
	}

	return bookings, nil
}
