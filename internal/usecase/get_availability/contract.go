package get_availability

import (
	"context"
	"time"

	"github.com/sweetnarcisse/SN-BookingService/internal/domain"
	"github.com/sweetnarcisse/SN-BookingService/internal/service/fleet"
)

// FleetService is the fleet surface consumed by the availability grid
type FleetService interface {
	GetActiveBoats(ctx context.Context) ([]*domain.Boat, error)
	CalculateBoatRotationIndex(hour, minute, totalBoats int) int
	GetFleetCapacityForSlot(ctx context.Context, startTime, endTime time.Time) (*fleet.FleetCapacity, error)
}

// Cache stores the computed grid per calendar day
type Cache interface {
	Get(ctx context.Context, key string, value any) error
	Save(ctx context.Context, key string, value any, ttl time.Duration) error
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
