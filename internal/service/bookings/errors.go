package bookings

import "errors"

var (
	// ErrBookingNotFound is returned when neither id nor reference matches
	ErrBookingNotFound = errors.New("bookings: booking not found")

	// ErrAlreadyCancelled is returned when cancelling a cancelled booking
	ErrAlreadyCancelled = errors.New("bookings: booking already cancelled")

	// ErrAlreadyPaid is returned when marking a paid booking paid again
	ErrAlreadyPaid = errors.New("bookings: booking already paid")

	// ErrPaymentPending is returned when PaymentService has not settled yet
	ErrPaymentPending = errors.New("bookings: payment not completed")

	// ErrInternal is returned on storage or collaborator failures
	ErrInternal = errors.New("bookings: internal error")
)
