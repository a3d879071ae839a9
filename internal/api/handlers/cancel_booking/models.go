package cancel_booking

// CancelBookingRequest HTTP request model
type CancelBookingRequest struct {
	Reason string `json:"reason"`
}

// CancelBookingResponse HTTP response model
type CancelBookingResponse struct {
	Status string `json:"status"`
}
