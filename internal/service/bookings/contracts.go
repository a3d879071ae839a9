package bookings

import (
	"context"
	"time"

	"github.com/sweetnarcisse/SN-BookingService/internal/domain"
	"github.com/sweetnarcisse/SN-BookingService/internal/integrations/paymentservice"
)

// BookingRepository is the booking storage interface consumed by the service
type BookingRepository interface {
	GetByID(ctx context.Context, id string) (*domain.Booking, error)
	GetByReference(ctx context.Context, reference string) (*domain.Booking, error)
	ListByDate(ctx context.Context, date time.Time, includeInactive bool) ([]*domain.Booking, error)
	Cancel(ctx context.Context, id string, reason string) error
	SetPaid(ctx context.Context, id string) error
}

// AuditLog is the append-only audit trail
type AuditLog interface {
	Append(ctx context.Context, eventType, message string) error
}

// CacheInvalidator drops the availability entry of one calendar day
type CacheInvalidator interface {
	InvalidateDate(ctx context.Context, date string) error
}

// PaymentServiceClient is the payment collaborator surface
type PaymentServiceClient interface {
	GetPaymentStatus(ctx context.Context, bookingID string) (*paymentservice.PaymentStatus, error)
}

// Logger is the logging interface consumed by the service
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
