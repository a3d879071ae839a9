package get_fleet

import (
	"context"

	"github.com/sweetnarcisse/SN-BookingService/internal/domain"
)

type FleetService interface {
	GetActiveBoats(ctx context.Context) ([]*domain.Boat, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
