package fleet

import (
	"context"
	"time"

	"github.com/sweetnarcisse/SN-BookingService/internal/domain"
)

// FleetRepository is the boat storage interface consumed by the service
type FleetRepository interface {
	ListActive(ctx context.Context) ([]*domain.Boat, error)
	GetByID(ctx context.Context, id int64) (*domain.Boat, error)
}

// BookingRepository is the booking storage surface needed for
// occupancy queries
type BookingRepository interface {
	FindOverlapping(ctx context.Context, filter domain.BookingWindowFilter) ([]*domain.Booking, error)
}

// Cache is the boats cache interface
type Cache interface {
	Get(ctx context.Context, key string, value any) error
	Save(ctx context.Context, key string, value any, ttl time.Duration) error
}

// Logger is the logging interface consumed by the service
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
