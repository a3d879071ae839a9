package create_booking

import (
	"context"
	"time"

	"github.com/sweetnarcisse/SN-BookingService/internal/domain"
	"github.com/sweetnarcisse/SN-BookingService/internal/service/fleet"
)

// BookingRepository is the booking storage interface consumed by the usecase
type BookingRepository interface {
	Create(ctx context.Context, booking *domain.Booking) (*domain.Booking, error)
	FindOverlapping(ctx context.Context, filter domain.BookingWindowFilter) ([]*domain.Booking, error)
	UpsertCustomer(ctx context.Context, customer *domain.Customer) (string, error)
	NextReferenceCounter(ctx context.Context, sequenceName string) (int64, error)
}

// FleetSelector is the fleet surface needed to place a booking
type FleetSelector interface {
	SelectBoatForSlot(ctx context.Context, hour, minute int, forcedBoatID *int64) (*fleet.BoatSelection, error)
}

// TransactionManager runs the authoritative conflict check and insert
// inside one atomic transaction
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// AuditLog is the append-only audit trail
type AuditLog interface {
	Append(ctx context.Context, eventType, message string) error
}

// CacheInvalidator drops the availability entry of one calendar day
type CacheInvalidator interface {
	InvalidateDate(ctx context.Context, date string) error
}

// TimeProvider supplies the current time (swappable in tests)
type TimeProvider interface {
	Now() time.Time
}

// Logger is the logging interface consumed by the usecase
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider is the production time provider
type RealTimeProvider struct{}

// Now returns the current time
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
