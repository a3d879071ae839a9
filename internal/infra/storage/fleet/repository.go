package fleet

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/sweetnarcisse/SN-BookingService/internal/domain"
	"github.com/sweetnarcisse/SN-BookingService/pkg/psqlbuilder"
	"github.com/sweetnarcisse/SN-BookingService/pkg/txmanager"
)

// Repository is the read side of the fleet. Boats are administered
// elsewhere; the scheduling core only lists and loads them.
type Repository struct {
	db txmanager.DBExecutor
}

// NewRepository creates a fleet repository
func NewRepository(db txmanager.DBExecutor) *Repository {
	return &Repository{db: db}
}

// ListActive returns all ACTIVE boats ordered by id ascending
func (r *Repository) ListActive(ctx context.Context) ([]*domain.Boat, error) {
	executor := txmanager.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"id", "name", "capacity", "status", "created_at", "updated_at",
	).
		From("boats").
		Where(squirrel.Eq{"status": domain.BoatStatusActive}).
		OrderBy("id ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListActive - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListActive - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	boats := make([]*domain.Boat, 0)
	for rows.Next() {
		boat, err := scanBoat(rows)
		if err != nil {
			return nil, err
		}
		boats = append(boats, boat)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ListActive - rows error: %v", ErrScanRow, err)
	}

	return boats, nil
}

// GetByID returns one boat regardless of status
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Boat, error) {
	executor := txmanager.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"id", "name", "capacity", "status", "created_at", "updated_at",
	).
		From("boats").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	var boat domain.Boat
	var createdAt, updatedAt sql.NullTime

	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&boat.ID,
		&boat.Name,
		&boat.Capacity,
		&boat.Status,
		&createdAt,
		&updatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, ErrBoatNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan boat: %v", ErrScanRow, err)
	}

	boat.CreatedAt = createdAt.Time
	boat.UpdatedAt = updatedAt.Time

	return &boat, nil
}

func scanBoat(rows *sql.Rows) (*domain.Boat, error) {
	var boat domain.Boat
	var createdAt, updatedAt sql.NullTime

	err := rows.Scan(
		&boat.ID,
		&boat.Name,
		&boat.Capacity,
		&boat.Status,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("%w: scanBoat - scan row: %v", ErrScanRow, err)
	}

	boat.CreatedAt = createdAt.Time
	boat.UpdatedAt = updatedAt.Time

	return &boat, nil
}
