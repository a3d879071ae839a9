package paymentservice

import "time"

// PaymentState is the settlement state reported by PaymentService
type PaymentState string

const (
	StateCompleted PaymentState = "completed"
	StatePending   PaymentState = "pending"
	StateFailed    PaymentState = "failed"
)

// PaymentStatus is the outcome of a payment lookup for one booking.
// The scheduling core only consumes the completed/pending distinction;
// settlement mechanics stay inside PaymentService.
type PaymentStatus struct {
	BookingID string       `json:"bookingId"`
	State     PaymentState `json:"state"`
	Provider  string       `json:"provider"`
	Amount    float64      `json:"amount"`
	Currency  string       `json:"currency"`
	PaidAt    *time.Time   `json:"paidAt,omitempty"`
}

// IsCompleted returns true if the payment settled
func (s *PaymentStatus) IsCompleted() bool {
	return s.State == StateCompleted
}
