package bookings

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/sweetnarcisse/SN-BookingService/internal/domain"
	"github.com/sweetnarcisse/SN-BookingService/internal/infra/storage/auditlog"
	storage "github.com/sweetnarcisse/SN-BookingService/internal/infra/storage/booking"
	"github.com/sweetnarcisse/SN-BookingService/internal/integrations/paymentservice"
	"github.com/sweetnarcisse/SN-BookingService/pkg/metrics"
)

// Service is the read, cancel and payment-confirmation side of
// bookings. Creation lives in the create_booking usecase.
type Service struct {
	bookingRepo BookingRepository
	auditLog    AuditLog
	cache       CacheInvalidator
	payments    PaymentServiceClient
	metrics     *metrics.Metrics
	logger      Logger
}

// NewService creates a bookings service
func NewService(
	repo BookingRepository,
	auditLog AuditLog,
	cache CacheInvalidator,
	payments PaymentServiceClient,
	m *metrics.Metrics,
	logger Logger,
) *Service {
	return &Service{
		bookingRepo: repo,
		auditLog:    auditLog,
		cache:       cache,
		payments:    payments,
		metrics:     m,
		logger:      logger,
	}
}

// GetBooking looks a booking up by primary key first, then by public
// reference, returning the fully joined record.
func (s *Service) GetBooking(ctx context.Context, idOrReference string) (*domain.Booking, error) {
	if _, err := uuid.Parse(idOrReference); err == nil {
		booking, err := s.bookingRepo.GetByID(ctx, idOrReference)
		if err == nil {
			return booking, nil
		}
		if !errors.Is(err, storage.ErrBookingNotFound) {
			return nil, fmt.Errorf("%w: GetBooking - repository error: %v", ErrInternal, err)
		}
	}

	booking, err := s.bookingRepo.GetByReference(ctx, idOrReference)
	if err != nil {
		if errors.Is(err, storage.ErrBookingNotFound) {
			return nil, ErrBookingNotFound
		}
		return nil, fmt.Errorf("%w: GetBooking - repository error: %v", ErrInternal, err)
	}

	return booking, nil
}

// ListByDate returns the day's non-cancelled bookings ordered by start
// time, for the staff planning view.
func (s *Service) ListByDate(ctx context.Context, date time.Time, includeInactive bool) ([]*domain.Booking, error) {
	list, err := s.bookingRepo.ListByDate(ctx, date, includeInactive)
	if err != nil {
		return nil, fmt.Errorf("%w: ListByDate - repository error: %v", ErrInternal, err)
	}
	return list, nil
}

// CancelBooking soft-deletes a booking. An already-cancelled booking is
// rejected rather than silently accepted. The day's availability cache
// is invalidated synchronously before returning; the audit entry is
// best-effort.
func (s *Service) CancelBooking(ctx context.Context, idOrReference, reason string) error {
	booking, err := s.GetBooking(ctx, idOrReference)
	if err != nil {
		return err
	}

	if booking.IsCancelled() {
		s.logger.Warn("CancelBooking: booking %s already cancelled", booking.PublicReference)
		return ErrAlreadyCancelled
	}

	if err := s.bookingRepo.Cancel(ctx, booking.ID, reason); err != nil {
		if errors.Is(err, storage.ErrAlreadyCancelled) {
			return ErrAlreadyCancelled
		}
		return fmt.Errorf("%w: CancelBooking - repository error: %v", ErrInternal, err)
	}

	s.metrics.IncBookingCancelled()

	dateKey := booking.Date.Format(domain.DateFormat)
	if err := s.cache.InvalidateDate(ctx, dateKey); err != nil {
		s.logger.Warn("CancelBooking: cache invalidation failed for %s: %v", dateKey, err)
	}

	lastName := "N/A"
	if booking.Customer != nil {
		lastName = booking.Customer.LastName
	}
	if reason == "" {
		reason = "Pas de raison"
	}
	s.appendAudit(ctx, auditlog.EventBookingCancelled,
		fmt.Sprintf("Annulation réservation %s (%s) - %s", booking.PublicReference, lastName, reason))

	s.logger.Info("CancelBooking: cancelled %s (%s)", booking.ID, booking.PublicReference)
	return nil
}

// MarkPaid confirms with PaymentService that a booking's payment
// settled, then flips isPaid; a PENDING booking is confirmed at the
// same time.
func (s *Service) MarkPaid(ctx context.Context, idOrReference string) error {
	booking, err := s.GetBooking(ctx, idOrReference)
	if err != nil {
		return err
	}

	if booking.IsPaid {
		return ErrAlreadyPaid
	}

	status, err := s.payments.GetPaymentStatus(ctx, booking.ID)
	if err != nil {
		if errors.Is(err, paymentservice.ErrPaymentNotFound) {
			return ErrPaymentPending
		}
		return fmt.Errorf("%w: MarkPaid - payment service: %v", ErrInternal, err)
	}

	if !status.IsCompleted() {
		return ErrPaymentPending
	}

	if err := s.bookingRepo.SetPaid(ctx, booking.ID); err != nil {
		return fmt.Errorf("%w: MarkPaid - repository error: %v", ErrInternal, err)
	}

	s.appendAudit(ctx, auditlog.EventBookingPaid,
		fmt.Sprintf("Paiement confirmé pour %s (%s)", booking.PublicReference, status.Provider))

	s.logger.Info("MarkPaid: booking %s marked paid via %s", booking.PublicReference, status.Provider)
	return nil
}

// appendAudit writes an audit entry without letting a logging failure
// surface to the caller
func (s *Service) appendAudit(ctx context.Context, eventType, message string) {
	if err := s.auditLog.Append(ctx, eventType, message); err != nil {
		s.logger.Error("audit log append failed (%s): %v", eventType, err)
	}
}
