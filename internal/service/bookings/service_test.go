package bookings_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sweetnarcisse/SN-BookingService/internal/domain"
	storage "github.com/sweetnarcisse/SN-BookingService/internal/infra/storage/booking"
	"github.com/sweetnarcisse/SN-BookingService/internal/integrations/paymentservice"
	"github.com/sweetnarcisse/SN-BookingService/internal/service/bookings"
)

type fakeRepo struct {
	byID        map[string]*domain.Booking
	byReference map[string]*domain.Booking
	cancelled   map[string]string
	paid        map[string]bool
}

func newFakeRepo(list ...*domain.Booking) *fakeRepo {
	r := &fakeRepo{
		byID:        map[string]*domain.Booking{},
		byReference: map[string]*domain.Booking{},
		cancelled:   map[string]string{},
		paid:        map[string]bool{},
	}
	for _, b := range list {
		r.byID[b.ID] = b
		r.byReference[b.PublicReference] = b
	}
	return r
}

func (r *fakeRepo) GetByID(ctx context.Context, id string) (*domain.Booking, error) {
	if b, ok := r.byID[id]; ok {
		return b, nil
	}
	return nil, storage.ErrBookingNotFound
}

func (r *fakeRepo) GetByReference(ctx context.Context, reference string) (*domain.Booking, error) {
	if b, ok := r.byReference[reference]; ok {
		return b, nil
	}
	return nil, storage.ErrBookingNotFound
}

func (r *fakeRepo) ListByDate(ctx context.Context, date time.Time, includeInactive bool) ([]*domain.Booking, error) {
	var out []*domain.Booking
	for _, b := range r.byID {
		if b.Date.Equal(date) && (includeInactive || b.IsActive()) {
			out = append(out, b)
		}
	}
	return out, nil
}

func (r *fakeRepo) Cancel(ctx context.Context, id string, reason string) error {
	b, ok := r.byID[id]
	if !ok {
		return storage.ErrBookingNotFound
	}
	if b.IsCancelled() {
		return storage.ErrAlreadyCancelled
	}
	b.Status = domain.StatusCancelled
	r.cancelled[id] = reason
	return nil
}

func (r *fakeRepo) SetPaid(ctx context.Context, id string) error {
	b, ok := r.byID[id]
	if !ok {
		return storage.ErrBookingNotFound
	}
	b.IsPaid = true
	if b.Status == domain.StatusPending {
		b.Status = domain.StatusConfirmed
	}
	r.paid[id] = true
	return nil
}

type fakeAudit struct {
	entries []string
}

func (f *fakeAudit) Append(ctx context.Context, eventType, message string) error {
	f.entries = append(f.entries, message)
	return nil
}

type fakeInvalidator struct {
	dates []string
}

func (f *fakeInvalidator) InvalidateDate(ctx context.Context, date string) error {
	f.dates = append(f.dates, date)
	return nil
}

type fakePayments struct {
	status *paymentservice.PaymentStatus
	err    error
}

func (f *fakePayments) GetPaymentStatus(ctx context.Context, bookingID string) (*paymentservice.PaymentStatus, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.status, nil
}

type nopLogger struct{}

func (nopLogger) Info(format string, v ...interface{})  {}
func (nopLogger) Warn(format string, v ...interface{})  {}
func (nopLogger) Error(format string, v ...interface{}) {}

func sampleBooking() *domain.Booking {
	return &domain.Booking{
		ID:              uuid.NewString(),
		PublicReference: "SN-26-0042",
		Date:            time.Date(2026, 7, 14, 0, 0, 0, 0, time.UTC),
		StartTime:       time.Date(2026, 7, 14, 8, 30, 0, 0, time.UTC),
		EndTime:         time.Date(2026, 7, 14, 8, 55, 0, 0, time.UTC),
		NumberOfPeople:  4,
		Status:          domain.StatusConfirmed,
		Customer:        &domain.Customer{FirstName: "Marie", LastName: "Durand"},
	}
}

func newService(repo *fakeRepo, audit *fakeAudit, inv *fakeInvalidator, payments *fakePayments) *bookings.Service {
	if payments == nil {
		payments = &fakePayments{err: paymentservice.ErrPaymentNotFound}
	}
	return bookings.NewService(repo, audit, inv, payments, nil, nopLogger{})
}

func TestGetBooking(t *testing.T) {
	b := sampleBooking()
	svc := newService(newFakeRepo(b), &fakeAudit{}, &fakeInvalidator{}, nil)

	t.Run("by uuid", func(t *testing.T) {
		got, err := svc.GetBooking(context.Background(), b.ID)
		require.NoError(t, err)
		assert.Equal(t, b.PublicReference, got.PublicReference)
	})

	t.Run("by public reference", func(t *testing.T) {
		got, err := svc.GetBooking(context.Background(), "SN-26-0042")
		require.NoError(t, err)
		assert.Equal(t, b.ID, got.ID)
	})

	t.Run("unknown key", func(t *testing.T) {
		_, err := svc.GetBooking(context.Background(), "SN-26-9999")
		assert.ErrorIs(t, err, bookings.ErrBookingNotFound)
	})

	t.Run("unknown uuid falls through to reference lookup", func(t *testing.T) {
		_, err := svc.GetBooking(context.Background(), uuid.NewString())
		assert.ErrorIs(t, err, bookings.ErrBookingNotFound)
	})
}

func TestCancelBooking(t *testing.T) {
	t.Run("cancels and invalidates the day", func(t *testing.T) {
		b := sampleBooking()
		repo := newFakeRepo(b)
		audit := &fakeAudit{}
		inv := &fakeInvalidator{}
		svc := newService(repo, audit, inv, nil)

		err := svc.CancelBooking(context.Background(), b.ID, "client absent")
		require.NoError(t, err)

		assert.Equal(t, domain.StatusCancelled, b.Status)
		assert.Equal(t, "client absent", repo.cancelled[b.ID])
		assert.Equal(t, []string{"2026-07-14"}, inv.dates)
		require.Len(t, audit.entries, 1)
		assert.Contains(t, audit.entries[0], "SN-26-0042")
		assert.Contains(t, audit.entries[0], "client absent")
	})

	t.Run("cancel by reference", func(t *testing.T) {
		b := sampleBooking()
		svc := newService(newFakeRepo(b), &fakeAudit{}, &fakeInvalidator{}, nil)

		err := svc.CancelBooking(context.Background(), b.PublicReference, "")
		require.NoError(t, err)
		assert.Equal(t, domain.StatusCancelled, b.Status)
	})

	t.Run("already cancelled", func(t *testing.T) {
		b := sampleBooking()
		b.Status = domain.StatusCancelled
		svc := newService(newFakeRepo(b), &fakeAudit{}, &fakeInvalidator{}, nil)

		err := svc.CancelBooking(context.Background(), b.ID, "encore")
		assert.ErrorIs(t, err, bookings.ErrAlreadyCancelled)
	})

	t.Run("unknown booking", func(t *testing.T) {
		svc := newService(newFakeRepo(), &fakeAudit{}, &fakeInvalidator{}, nil)

		err := svc.CancelBooking(context.Background(), uuid.NewString(), "")
		assert.ErrorIs(t, err, bookings.ErrBookingNotFound)
	})
}

func TestMarkPaid(t *testing.T) {
	t.Run("settled payment flips isPaid", func(t *testing.T) {
		b := sampleBooking()
		b.Status = domain.StatusPending
		repo := newFakeRepo(b)
		audit := &fakeAudit{}
		payments := &fakePayments{status: &paymentservice.PaymentStatus{
			BookingID: b.ID,
			State:     paymentservice.StateCompleted,
			Provider:  "stripe",
		}}
		svc := newService(repo, audit, &fakeInvalidator{}, payments)

		err := svc.MarkPaid(context.Background(), b.ID)
		require.NoError(t, err)

		assert.True(t, b.IsPaid)
		assert.Equal(t, domain.StatusConfirmed, b.Status)
		require.Len(t, audit.entries, 1)
		assert.Contains(t, audit.entries[0], "SN-26-0042")
	})

	t.Run("pending payment is rejected", func(t *testing.T) {
		b := sampleBooking()
		payments := &fakePayments{status: &paymentservice.PaymentStatus{
			BookingID: b.ID,
			State:     paymentservice.StatePending,
		}}
		svc := newService(newFakeRepo(b), &fakeAudit{}, &fakeInvalidator{}, payments)

		err := svc.MarkPaid(context.Background(), b.ID)
		assert.ErrorIs(t, err, bookings.ErrPaymentPending)
		assert.False(t, b.IsPaid)
	})

	t.Run("unknown payment is treated as pending", func(t *testing.T) {
		b := sampleBooking()
		payments := &fakePayments{err: paymentservice.ErrPaymentNotFound}
		svc := newService(newFakeRepo(b), &fakeAudit{}, &fakeInvalidator{}, payments)

		err := svc.MarkPaid(context.Background(), b.ID)
		assert.ErrorIs(t, err, bookings.ErrPaymentPending)
	})

	t.Run("already paid", func(t *testing.T) {
		b := sampleBooking()
		b.IsPaid = true
		svc := newService(newFakeRepo(b), &fakeAudit{}, &fakeInvalidator{}, nil)

		err := svc.MarkPaid(context.Background(), b.ID)
		assert.ErrorIs(t, err, bookings.ErrAlreadyPaid)
	})
}

func TestListByDate(t *testing.T) {
	active := sampleBooking()
	cancelled := sampleBooking()
	cancelled.ID = uuid.NewString()
	cancelled.PublicReference = "SN-26-0043"
	cancelled.Status = domain.StatusCancelled

	svc := newService(newFakeRepo(active, cancelled), &fakeAudit{}, &fakeInvalidator{}, nil)

	day := time.Date(2026, 7, 14, 0, 0, 0, 0, time.UTC)

	list, err := svc.ListByDate(context.Background(), day, false)
	require.NoError(t, err)
	assert.Len(t, list, 1)

	list, err = svc.ListByDate(context.Background(), day, true)
	require.NoError(t, err)
	assert.Len(t, list, 2)
}
