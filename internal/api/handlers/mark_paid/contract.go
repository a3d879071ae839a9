package mark_paid

import "context"

type BookingService interface {
	MarkPaid(ctx context.Context, idOrReference string) error
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
