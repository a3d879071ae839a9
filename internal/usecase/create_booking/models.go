package create_booking

import (
	"time"

	"github.com/sweetnarcisse/SN-BookingService/internal/domain"
	"github.com/sweetnarcisse/SN-BookingService/pkg/types"
)

// CustomerDetails identifies the booking party. Email may be empty on
// staff override requests, in which case a counter pseudo-email is
// synthesized.
type CustomerDetails struct {
	FirstName string
	LastName  string
	Email     string
	Phone     *string
}

// Request is the input contract of booking creation
type Request struct {
	Date     string           // YYYY-MM-DD, Paris calendar day
	Time     types.TimeString // HH:MM, Paris wall-clock
	Adults   int
	Children int
	Babies   int
	Language string
	Customer CustomerDetails
	Message  *string

	IsStaffOverride bool
	PendingOnly     bool
	MarkAsPaid      bool
	PaymentMethod   domain.PaymentMethod
	InvoiceEmail    *string
	ForcedBoatID    *int64
	IsPrivate       bool

	// GroupChain is the target total party size; when it exceeds the
	// selected boat's capacity on a staff override, the surplus is
	// placed on subsequent departures.
	GroupChain             *int
	InheritPaymentForChain bool
}

// People returns the requested headcount
func (r *Request) People() int {
	return r.Adults + r.Children + r.Babies
}

// ChainedBooking describes one successfully placed chain link
type ChainedBooking struct {
	Index  int
	BoatID int64
	Start  time.Time
	End    time.Time
	People int
}

// ChainOverlap describes one chain chunk that could not be placed and
// needs manual staff resolution
type ChainOverlap struct {
	Index  int
	Start  time.Time
	End    time.Time
	Reason string
}

// Result is the outcome of a booking attempt. Failures are structured:
// Error carries the staff-displayable French message and ErrorCode the
// machine class.
type Result struct {
	Success         bool
	Booking         *domain.Booking
	ChainedBookings []ChainedBooking
	Overlaps        []ChainOverlap
	Error           string
	ErrorCode       ErrorCode
}

// ConflictingBooking summarizes one existing booking overlapping a
// candidate window
type ConflictingBooking struct {
	BookingID string
	StartTime time.Time
	People    int
	Language  string
}

// ConflictCheckResult is the decision of the conflict policy
type ConflictCheckResult struct {
	HasConflict bool
	CanBook     bool
	Reason      string
	Conflicts   []ConflictingBooking
}

// SlotValidationResult is the decision of slot-time validation
type SlotValidationResult struct {
	Valid     bool
	Error     string
	ErrorCode ErrorCode
}

func failure(code ErrorCode, message string) *Result {
	return &Result{Success: false, Error: message, ErrorCode: code}
}
