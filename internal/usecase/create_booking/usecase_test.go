package create_booking_test

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sweetnarcisse/SN-BookingService/internal/domain"
	"github.com/sweetnarcisse/SN-BookingService/internal/service/fleet"
	createBooking "github.com/sweetnarcisse/SN-BookingService/internal/usecase/create_booking"
	"github.com/sweetnarcisse/SN-BookingService/pkg/ptr"
	"github.com/sweetnarcisse/SN-BookingService/pkg/types"
)

type fakeBookingRepo struct {
	created    []*domain.Booking
	customers  []*domain.Customer
	refCounter int64
	existing   []*domain.Booking
}

func (f *fakeBookingRepo) Create(ctx context.Context, b *domain.Booking) (*domain.Booking, error) {
	if b.ID == "" {
		b.ID = "booking-" + b.PublicReference
	}
	b.CreatedAt = time.Now()
	b.UpdatedAt = b.CreatedAt
	f.created = append(f.created, b)
	f.existing = append(f.existing, b)
	return b, nil
}

func (f *fakeBookingRepo) FindOverlapping(ctx context.Context, filter domain.BookingWindowFilter) ([]*domain.Booking, error) {
	var out []*domain.Booking
	for _, b := range f.existing {
		if b.Status == domain.StatusCancelled && !filter.IncludeInactive {
			continue
		}
		if b.BoatID == filter.BoatID &&
			b.StartTime.Before(filter.WindowEnd) && b.EndTime.After(filter.WindowStart) {
			out = append(out, b)
		}
	}
	return out, nil
}

func (f *fakeBookingRepo) UpsertCustomer(ctx context.Context, c *domain.Customer) (string, error) {
	c.ID = "customer-1"
	f.customers = append(f.customers, c)
	return c.ID, nil
}

func (f *fakeBookingRepo) NextReferenceCounter(ctx context.Context, sequenceName string) (int64, error) {
	f.refCounter++
	return f.refCounter, nil
}

type fakeFleetSelector struct {
	boats []*domain.Boat
}

func (f *fakeFleetSelector) SelectBoatForSlot(ctx context.Context, hour, minute int, forcedBoatID *int64) (*fleet.BoatSelection, error) {
	if len(f.boats) == 0 {
		return nil, fleet.ErrNoActiveBoats
	}
	if forcedBoatID != nil {
		for i, b := range f.boats {
			if b.ID == *forcedBoatID {
				return &fleet.BoatSelection{Boat: b, Index: i, Reason: fleet.ReasonForced}, nil
			}
		}
	}
	index := ((hour*60 + minute - 600) / 10) % len(f.boats)
	if index < 0 {
		index += len(f.boats)
	}
	return &fleet.BoatSelection{Boat: f.boats[index], Index: index, Reason: fleet.ReasonRotation}, nil
}

type fakeTxManager struct{}

func (fakeTxManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type fakeAuditLog struct {
	entries []string
}

func (f *fakeAuditLog) Append(ctx context.Context, eventType, message string) error {
	f.entries = append(f.entries, message)
	return nil
}

type fakeCacheInvalidator struct {
	dates []string
}

func (f *fakeCacheInvalidator) InvalidateDate(ctx context.Context, date string) error {
	f.dates = append(f.dates, date)
	return nil
}

type fixedClock struct {
	now time.Time
}

func (c fixedClock) Now() time.Time {
	return c.now
}

type nopLogger struct{}

func (nopLogger) Info(format string, v ...interface{})  {}
func (nopLogger) Warn(format string, v ...interface{})  {}
func (nopLogger) Error(format string, v ...interface{}) {}

type fixture struct {
	uc    *createBooking.UseCase
	repo  *fakeBookingRepo
	audit *fakeAuditLog
	cache *fakeCacheInvalidator
}

// newFixture wires the usecase with one 12-seat boat and a clock four
// days before the test bookings, so lead-time checks stay out of the way.
func newFixture(t *testing.T) *fixture {
	t.Helper()
	return newFixtureAt(t, time.Date(2026, 7, 10, 8, 0, 0, 0, time.UTC))
}

func newFixtureAt(t *testing.T, now time.Time) *fixture {
	t.Helper()
	return newFixtureWith(t, now, []*domain.Boat{
		{ID: 1, Name: "Rose", Capacity: 12, Status: domain.BoatStatusActive},
	})
}

// newChainFixture wires three boats so the rotation can spread a group
// chain over consecutive departures.
func newChainFixture(t *testing.T) *fixture {
	t.Helper()
	return newFixtureWith(t, time.Date(2026, 7, 10, 8, 0, 0, 0, time.UTC), []*domain.Boat{
		{ID: 1, Name: "Rose", Capacity: 12, Status: domain.BoatStatusActive},
		{ID: 2, Name: "Iris", Capacity: 12, Status: domain.BoatStatusActive},
		{ID: 3, Name: "Lys", Capacity: 12, Status: domain.BoatStatusActive},
	})
}

func newFixtureWith(t *testing.T, now time.Time, boats []*domain.Boat) *fixture {
	t.Helper()

	repo := &fakeBookingRepo{}
	audit := &fakeAuditLog{}
	cacheInv := &fakeCacheInvalidator{}
	selector := &fakeFleetSelector{boats: boats}

	uc := createBooking.New(
		repo,
		selector,
		fakeTxManager{},
		audit,
		cacheInv,
		fixedClock{now: now},
		domain.DefaultSchedule(),
		nil,
		nopLogger{},
	)

	return &fixture{uc: uc, repo: repo, audit: audit, cache: cacheInv}
}

func validRequest() *createBooking.Request {
	return &createBooking.Request{
		Date:     "2026-07-14",
		Time:     types.TimeString("10:30"),
		Adults:   2,
		Children: 1,
		Babies:   1,
		Language: "fr",
		Customer: createBooking.CustomerDetails{
			FirstName: "Marie",
			LastName:  "Durand",
			Email:     "marie.durand@example.com",
		},
	}
}

func TestExecute_SlotTimeValidation(t *testing.T) {
	tests := []struct {
		time     string
		wantCode createBooking.ErrorCode
	}{
		{time: "09:59", wantCode: createBooking.CodeInvalidTime},
		{time: "10:00", wantCode: ""},
		{time: "11:45", wantCode: ""},
		{time: "11:46", wantCode: createBooking.CodeInvalidTime},
		{time: "13:29", wantCode: createBooking.CodeInvalidTime},
		{time: "13:30", wantCode: ""},
		{time: "17:45", wantCode: ""},
		{time: "17:46", wantCode: createBooking.CodeInvalidTime},
	}

	for _, tt := range tests {
		t.Run(tt.time, func(t *testing.T) {
			f := newFixture(t)
			req := validRequest()
			req.Time = types.TimeString(tt.time)

			result := f.uc.Execute(context.Background(), req)

			if tt.wantCode == "" {
				assert.True(t, result.Success, "expected %s to be bookable: %s", tt.time, result.Error)
			} else {
				assert.False(t, result.Success)
				assert.Equal(t, tt.wantCode, result.ErrorCode)
			}
		})
	}
}

func TestExecute_InputValidation(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*createBooking.Request)
	}{
		{name: "missing date", mutate: func(r *createBooking.Request) { r.Date = "" }},
		{name: "zero party", mutate: func(r *createBooking.Request) { r.Adults, r.Children, r.Babies = 0, 0, 0 }},
		{name: "negative adults", mutate: func(r *createBooking.Request) { r.Adults = -1 }},
		{name: "missing language", mutate: func(r *createBooking.Request) { r.Language = "" }},
		{name: "missing email", mutate: func(r *createBooking.Request) { r.Customer.Email = "" }},
		{name: "unknown payment provider", mutate: func(r *createBooking.Request) {
			r.PaymentMethod = domain.PaymentMethod{Provider: "bitcoin"}
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			req := validRequest()
			tt.mutate(req)

			result := f.uc.Execute(context.Background(), req)

			require.False(t, result.Success)
			assert.Equal(t, createBooking.CodeValidation, result.ErrorCode)
		})
	}
}

func TestExecute_MinimumLeadTime(t *testing.T) {
	// Paris is UTC+2 in July: 08:00 UTC is 10:00 wall-clock.
	sameDay := time.Date(2026, 7, 14, 8, 0, 0, 0, time.UTC)

	t.Run("public booker too late", func(t *testing.T) {
		f := newFixtureAt(t, sameDay)
		req := validRequest()
		req.Time = types.TimeString("10:20")

		result := f.uc.Execute(context.Background(), req)

		require.False(t, result.Success)
		assert.Equal(t, createBooking.CodeTooLate, result.ErrorCode)
	})

	t.Run("public booker at exactly the delay", func(t *testing.T) {
		f := newFixtureAt(t, sameDay)
		req := validRequest()
		req.Time = types.TimeString("10:30")

		result := f.uc.Execute(context.Background(), req)
		assert.True(t, result.Success, result.Error)
	})

	t.Run("staff bypasses the delay", func(t *testing.T) {
		f := newFixtureAt(t, sameDay)
		req := validRequest()
		req.Time = types.TimeString("10:10")
		req.IsStaffOverride = true

		result := f.uc.Execute(context.Background(), req)
		assert.True(t, result.Success, result.Error)
	})
}

func TestExecute_CreatesBooking(t *testing.T) {
	f := newFixture(t)
	req := validRequest()

	result := f.uc.Execute(context.Background(), req)

	require.True(t, result.Success, result.Error)
	b := result.Booking
	require.NotNil(t, b)

	assert.Equal(t, "SN-26-0001", b.PublicReference)
	assert.Equal(t, 4, b.NumberOfPeople)
	assert.Equal(t, domain.StatusConfirmed, b.Status)
	assert.False(t, b.IsPaid)
	// 2 adults at 9, 1 child at 4, 1 free baby
	assert.Equal(t, 22.0, b.TotalPrice)
	// 10:30 Paris in July is 08:30 UTC
	assert.Equal(t, time.Date(2026, 7, 14, 8, 30, 0, 0, time.UTC), b.StartTime.UTC())
	assert.Equal(t, time.Date(2026, 7, 14, 8, 55, 0, 0, time.UTC), b.EndTime.UTC())

	assert.Equal(t, []string{"2026-07-14"}, f.cache.dates)
	require.Len(t, f.audit.entries, 1)
	assert.Contains(t, f.audit.entries[0], "SN-26-0001")
}

func TestExecute_InstantCapturePayment(t *testing.T) {
	tests := []struct {
		name        string
		provider    domain.PaymentProvider
		markAsPaid  bool
		pendingOnly bool
		wantPaid    bool
		wantStatus  domain.BookingStatus
	}{
		{name: "cash marked paid", provider: domain.ProviderCash, markAsPaid: true, wantPaid: true, wantStatus: domain.StatusConfirmed},
		{name: "voucher marked paid", provider: domain.ProviderVoucher, markAsPaid: true, wantPaid: true, wantStatus: domain.StatusConfirmed},
		{name: "stripe defers capture", provider: domain.ProviderStripe, markAsPaid: true, wantPaid: false, wantStatus: domain.StatusConfirmed},
		{name: "cash without mark", provider: domain.ProviderCash, markAsPaid: false, wantPaid: false, wantStatus: domain.StatusConfirmed},
		{name: "pending only never paid", provider: domain.ProviderCash, markAsPaid: true, pendingOnly: true, wantPaid: false, wantStatus: domain.StatusPending},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			req := validRequest()
			req.PaymentMethod = domain.PaymentMethod{Provider: tt.provider}
			req.MarkAsPaid = tt.markAsPaid
			req.PendingOnly = tt.pendingOnly

			result := f.uc.Execute(context.Background(), req)

			require.True(t, result.Success, result.Error)
			assert.Equal(t, tt.wantPaid, result.Booking.IsPaid)
			assert.Equal(t, tt.wantStatus, result.Booking.Status)
		})
	}
}

func TestExecute_ConflictPolicy(t *testing.T) {
	t.Run("shared slot same start and language", func(t *testing.T) {
		f := newFixture(t)

		first := validRequest()
		result := f.uc.Execute(context.Background(), first)
		require.True(t, result.Success, result.Error)

		second := validRequest()
		second.Adults, second.Children, second.Babies = 3, 0, 0
		second.Customer.Email = "paul@example.com"

		result = f.uc.Execute(context.Background(), second)
		require.True(t, result.Success, result.Error)
		assert.Len(t, f.repo.created, 2)
	})

	t.Run("rejected on language mismatch", func(t *testing.T) {
		f := newFixture(t)

		first := validRequest()
		require.True(t, f.uc.Execute(context.Background(), first).Success)

		second := validRequest()
		second.Language = "en"

		result := f.uc.Execute(context.Background(), second)
		require.False(t, result.Success)
		assert.Equal(t, createBooking.CodeConflict, result.ErrorCode)
	})

	t.Run("rejected when capacity exceeded", func(t *testing.T) {
		f := newFixture(t)

		first := validRequest()
		first.Adults, first.Children, first.Babies = 10, 0, 0
		require.True(t, f.uc.Execute(context.Background(), first).Success)

		second := validRequest()
		second.Adults, second.Children, second.Babies = 3, 0, 0

		result := f.uc.Execute(context.Background(), second)
		require.False(t, result.Success)
		assert.Equal(t, createBooking.CodeConflict, result.ErrorCode)
	})

	t.Run("rejected on buffered overlap with different start", func(t *testing.T) {
		f := newFixture(t)

		first := validRequest()
		first.Time = types.TimeString("10:30")
		require.True(t, f.uc.Execute(context.Background(), first).Success)

		// 10:50 starts before 10:55 end + 5 min buffer
		second := validRequest()
		second.Time = types.TimeString("10:50")

		result := f.uc.Execute(context.Background(), second)
		require.False(t, result.Success)
		assert.Equal(t, createBooking.CodeConflict, result.ErrorCode)
	})

	t.Run("staff override books despite conflicts", func(t *testing.T) {
		f := newFixture(t)

		first := validRequest()
		first.Adults = 10
		require.True(t, f.uc.Execute(context.Background(), first).Success)

		second := validRequest()
		second.Adults, second.Children, second.Babies = 8, 0, 0
		second.Language = "en"
		second.IsStaffOverride = true

		result := f.uc.Execute(context.Background(), second)
		assert.True(t, result.Success, result.Error)
	})

	t.Run("cancelled bookings do not conflict", func(t *testing.T) {
		f := newFixture(t)

		first := validRequest()
		first.Language = "en"
		result := f.uc.Execute(context.Background(), first)
		require.True(t, result.Success)
		result.Booking.Status = domain.StatusCancelled

		second := validRequest()
		assert.True(t, f.uc.Execute(context.Background(), second).Success)
	})
}

func TestExecute_Privatization(t *testing.T) {
	t.Run("staff privatization fills the boat", func(t *testing.T) {
		f := newFixture(t)
		req := validRequest()
		req.IsStaffOverride = true
		req.IsPrivate = true

		result := f.uc.Execute(context.Background(), req)

		require.True(t, result.Success, result.Error)
		assert.Equal(t, 12, result.Booking.NumberOfPeople)
		assert.Equal(t, 12, result.Booking.Adults)
		assert.Equal(t, 0, result.Booking.Children)
		assert.Equal(t, 0, result.Booking.Babies)
		assert.Contains(t, f.audit.entries[0], "PRIVATISATION")
	})

	t.Run("public isPrivate flag is ignored", func(t *testing.T) {
		f := newFixture(t)
		req := validRequest()
		req.IsPrivate = true

		result := f.uc.Execute(context.Background(), req)

		require.True(t, result.Success, result.Error)
		assert.Equal(t, 4, result.Booking.NumberOfPeople)
	})
}

func TestExecute_CounterEmailSynthesis(t *testing.T) {
	t.Run("staff without email gets pseudo-email", func(t *testing.T) {
		f := newFixture(t)
		req := validRequest()
		req.IsStaffOverride = true
		req.Customer.Email = ""
		req.Customer.FirstName = "Jean Pierre"
		req.Customer.LastName = "De La Tour"

		result := f.uc.Execute(context.Background(), req)

		require.True(t, result.Success, result.Error)
		require.Len(t, f.repo.customers, 1)
		email := f.repo.customers[0].Email
		assert.True(t, strings.HasPrefix(email, "guichet.delatour.jeanpierre."), email)
		assert.True(t, strings.HasSuffix(email, "@local.com"), email)
	})

	t.Run("placeholder email is replaced", func(t *testing.T) {
		f := newFixture(t)
		req := validRequest()
		req.IsStaffOverride = true
		req.Customer.Email = "override@sweetnarcisse.local"

		result := f.uc.Execute(context.Background(), req)

		require.True(t, result.Success, result.Error)
		assert.NotEqual(t, "override@sweetnarcisse.local", f.repo.customers[0].Email)
	})

	t.Run("missing names fall back", func(t *testing.T) {
		f := newFixture(t)
		req := validRequest()
		req.IsStaffOverride = true
		req.Customer.Email = ""
		req.Customer.FirstName = ""
		req.Customer.LastName = ""

		result := f.uc.Execute(context.Background(), req)

		require.True(t, result.Success, result.Error)
		assert.True(t, strings.HasPrefix(f.repo.customers[0].Email, "guichet.inconnu.client."))
	})
}

func TestExecute_GroupChain(t *testing.T) {
	t.Run("oversized group spreads over departures", func(t *testing.T) {
		f := newChainFixture(t)
		req := validRequest()
		req.IsStaffOverride = true
		req.Customer.Email = ""
		req.GroupChain = ptr.Ptr(30)

		result := f.uc.Execute(context.Background(), req)

		require.True(t, result.Success, result.Error)
		// ceil(30/12) = 3 departures: 12 + 12 + 6
		assert.Equal(t, 12, result.Booking.NumberOfPeople)
		require.Len(t, result.ChainedBookings, 2)
		assert.Empty(t, result.Overlaps)

		assert.Equal(t, 12, result.ChainedBookings[0].People)
		assert.Equal(t, 6, result.ChainedBookings[1].People)

		base := result.Booking.StartTime
		assert.Equal(t, base.Add(10*time.Minute), result.ChainedBookings[0].Start)
		assert.Equal(t, base.Add(20*time.Minute), result.ChainedBookings[1].Start)

		// Rotation moves each departure to the next boat
		assert.Equal(t, int64(1), result.Booking.BoatID)
		assert.Equal(t, int64(2), result.ChainedBookings[0].BoatID)
		assert.Equal(t, int64(3), result.ChainedBookings[1].BoatID)
		assert.Len(t, f.repo.created, 3)
	})

	t.Run("occupied chunk is skipped, not fatal", func(t *testing.T) {
		f := newChainFixture(t)

		blocker := validRequest()
		blocker.Time = types.TimeString("10:40")
		blocker.Customer.Email = "blocker@example.com"
		require.True(t, f.uc.Execute(context.Background(), blocker).Success)

		req := validRequest()
		req.IsStaffOverride = true
		req.GroupChain = ptr.Ptr(30)

		result := f.uc.Execute(context.Background(), req)

		require.True(t, result.Success, result.Error)
		require.Len(t, result.Overlaps, 1)
		assert.Equal(t, 1, result.Overlaps[0].Index)
		require.Len(t, result.ChainedBookings, 1)
		assert.Equal(t, 2, result.ChainedBookings[0].Index)
	})

	t.Run("chunk past closing is skipped", func(t *testing.T) {
		f := newChainFixture(t)
		req := validRequest()
		req.Time = types.TimeString("17:45")
		req.IsStaffOverride = true
		req.GroupChain = ptr.Ptr(20)

		result := f.uc.Execute(context.Background(), req)

		require.True(t, result.Success, result.Error)
		assert.Empty(t, result.ChainedBookings)
		require.Len(t, result.Overlaps, 1)
	})

	t.Run("group within capacity does not chain", func(t *testing.T) {
		f := newFixture(t)
		req := validRequest()
		req.IsStaffOverride = true
		req.GroupChain = ptr.Ptr(10)

		result := f.uc.Execute(context.Background(), req)

		require.True(t, result.Success, result.Error)
		assert.Empty(t, result.ChainedBookings)
		assert.Len(t, f.repo.created, 1)
	})

	t.Run("public groupChain is ignored", func(t *testing.T) {
		f := newFixture(t)
		req := validRequest()
		req.GroupChain = ptr.Ptr(30)

		result := f.uc.Execute(context.Background(), req)

		require.True(t, result.Success, result.Error)
		assert.Len(t, f.repo.created, 1)
	})
}

func TestExecute_SeasonalReferences(t *testing.T) {
	f := newFixture(t)

	first := validRequest()
	result := f.uc.Execute(context.Background(), first)
	require.True(t, result.Success)
	assert.Equal(t, "SN-26-0001", result.Booking.PublicReference)

	second := validRequest()
	second.Time = types.TimeString("14:30")
	result = f.uc.Execute(context.Background(), second)
	require.True(t, result.Success, result.Error)
	assert.Equal(t, "SN-26-0002", result.Booking.PublicReference)
}

func TestExecute_NoActiveBoats(t *testing.T) {
	repo := &fakeBookingRepo{}
	uc := createBooking.New(
		repo,
		&fakeFleetSelector{},
		fakeTxManager{},
		&fakeAuditLog{},
		&fakeCacheInvalidator{},
		fixedClock{now: time.Date(2026, 7, 10, 8, 0, 0, 0, time.UTC)},
		domain.DefaultSchedule(),
		nil,
		nopLogger{},
	)

	result := uc.Execute(context.Background(), validRequest())

	require.False(t, result.Success)
	assert.Equal(t, createBooking.CodeNoBoats, result.ErrorCode)
}
