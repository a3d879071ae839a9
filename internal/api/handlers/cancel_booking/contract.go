package cancel_booking

import "context"

type BookingService interface {
	CancelBooking(ctx context.Context, idOrReference, reason string) error
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
