package get_booking

import (
	"time"

	"github.com/sweetnarcisse/SN-BookingService/internal/domain"
)

// BoatPayload HTTP model of the assigned boat
type BoatPayload struct {
	ID       int64  `json:"id"`
	Name     string `json:"name"`
	Capacity int    `json:"capacity"`
}

// CustomerPayload HTTP model of the booking party
type CustomerPayload struct {
	FirstName string  `json:"firstName"`
	LastName  string  `json:"lastName"`
	Email     string  `json:"email"`
	Phone     *string `json:"phone,omitempty"`
}

// BookingResponse HTTP response model of one booking
type BookingResponse struct {
	ID                 string           `json:"id"`
	PublicReference    string           `json:"publicReference"`
	Date               string           `json:"date"`
	StartTime          string           `json:"startTime"`
	EndTime            string           `json:"endTime"`
	NumberOfPeople     int              `json:"numberOfPeople"`
	Adults             int              `json:"adults"`
	Children           int              `json:"children"`
	Babies             int              `json:"babies"`
	Language           string           `json:"language"`
	Status             string           `json:"status"`
	IsPaid             bool             `json:"isPaid"`
	TotalPrice         float64          `json:"totalPrice"`
	Message            *string          `json:"message,omitempty"`
	InvoiceEmail       *string          `json:"invoiceEmail,omitempty"`
	CancellationReason *string          `json:"cancellationReason,omitempty"`
	CancelledAt        *string          `json:"cancelledAt,omitempty"`
	Boat               *BoatPayload     `json:"boat,omitempty"`
	Customer           *CustomerPayload `json:"customer,omitempty"`
	CreatedAt          string           `json:"createdAt"`
	UpdatedAt          string           `json:"updatedAt"`
}

// FromDomain converts a domain booking into the HTTP response
func FromDomain(b *domain.Booking) *BookingResponse {
	resp := &BookingResponse{
		ID:                 b.ID,
		PublicReference:    b.PublicReference,
		Date:               b.Date.Format(domain.DateFormat),
		StartTime:          b.StartTime.Format(time.RFC3339),
		EndTime:            b.EndTime.Format(time.RFC3339),
		NumberOfPeople:     b.NumberOfPeople,
		Adults:             b.Adults,
		Children:           b.Children,
		Babies:             b.Babies,
		Language:           b.Language,
		Status:             string(b.Status),
		IsPaid:             b.IsPaid,
		TotalPrice:         b.TotalPrice,
		Message:            b.Message,
		InvoiceEmail:       b.InvoiceEmail,
		CancellationReason: b.CancellationReason,
		CreatedAt:          b.CreatedAt.Format(time.RFC3339),
		UpdatedAt:          b.UpdatedAt.Format(time.RFC3339),
	}

	if b.CancelledAt != nil {
		cancelledAt := b.CancelledAt.Format(time.RFC3339)
		resp.CancelledAt = &cancelledAt
	}
	if b.Boat != nil {
		resp.Boat = &BoatPayload{
			ID:       b.Boat.ID,
			Name:     b.Boat.Name,
			Capacity: b.Boat.Capacity,
		}
	}
	if b.Customer != nil {
		resp.Customer = &CustomerPayload{
			FirstName: b.Customer.FirstName,
			LastName:  b.Customer.LastName,
			Email:     b.Customer.Email,
			Phone:     b.Customer.Phone,
		}
	}

	return resp
}
