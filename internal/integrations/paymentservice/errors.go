package paymentservice

import "errors"

var (
	// ErrPaymentNotFound is returned when no payment exists for a booking
	ErrPaymentNotFound = errors.New("paymentservice: payment not found")

	// ErrInvalidResponse is returned on unexpected responses from PaymentService
	ErrInvalidResponse = errors.New("paymentservice: invalid response")

	// ErrInternal is returned on transport-level failures
	ErrInternal = errors.New("paymentservice: internal error")
)
