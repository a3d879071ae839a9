package get_planning

import (
	"context"
	"time"

	"github.com/sweetnarcisse/SN-BookingService/internal/domain"
)

type BookingService interface {
	ListByDate(ctx context.Context, date time.Time, includeInactive bool) ([]*domain.Booking, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
