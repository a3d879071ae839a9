package domain

import "time"

// BookingStatus represents the status of a booking
type BookingStatus string

const (
	StatusPending   BookingStatus = "PENDING"
	StatusConfirmed BookingStatus = "CONFIRMED"
	StatusCancelled BookingStatus = "CANCELLED"
)

// Booking represents a tour departure reservation on one boat.
// StartTime and EndTime are absolute instants derived from Paris
// wall-clock input; Date is the Paris calendar day of the departure.
type Booking struct {
	ID              string // UUID
	PublicReference string // e.g. "SN-25-0042", unique per season

	Date      time.Time // calendar day, midnight UTC
	StartTime time.Time
	EndTime   time.Time

	NumberOfPeople int
	Adults         int
	Children       int
	Babies         int
	Language       string

	Status     BookingStatus
	IsPaid     bool
	TotalPrice float64

	Message      *string
	InvoiceEmail *string

	BoatID     int64
	CustomerID string

	CancellationReason *string
	CancelledAt        *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time

	// Joined associations, populated by read paths only
	Boat     *Boat
	Customer *Customer
}

// IsActive returns true if the booking still occupies its slot
func (b *Booking) IsActive() bool {
	return b.Status != StatusCancelled
}

// IsCancelled returns true if the booking has been cancelled
func (b *Booking) IsCancelled() bool {
	return b.Status == StatusCancelled
}

// CanBeCancelled returns true if the booking can still be cancelled
func (b *Booking) CanBeCancelled() bool {
	return b.Status == StatusPending || b.Status == StatusConfirmed
}

// Customer identifies the party that booked a tour.
// Email is the upsert key: booking creation connects to an existing
// customer by email or creates a new one.
type Customer struct {
	ID        string // UUID
	FirstName string
	LastName  string
	Email     string
	Phone     *string

	CreatedAt time.Time
	UpdatedAt time.Time
}

// BookingWindowFilter selects bookings of one boat whose raw
// [StartTime, EndTime) window intersects [WindowStart, WindowEnd).
type BookingWindowFilter struct {
	BoatID          int64
	WindowStart     time.Time
	WindowEnd       time.Time
	IncludeInactive bool
}
