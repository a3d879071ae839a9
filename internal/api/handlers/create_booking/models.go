package create_booking

import (
	"time"

	"github.com/sweetnarcisse/SN-BookingService/internal/domain"
	createBooking "github.com/sweetnarcisse/SN-BookingService/internal/usecase/create_booking"
	"github.com/sweetnarcisse/SN-BookingService/pkg/types"
)

// CustomerPayload HTTP model of the booking party
type CustomerPayload struct {
	FirstName string  `json:"firstName"`
	LastName  string  `json:"lastName"`
	Email     string  `json:"email"`
	Phone     *string `json:"phone,omitempty"`
}

// VoucherPayload HTTP model of partner voucher metadata
type VoucherPayload struct {
	PartnerID    string `json:"partnerId"`
	PartnerLabel string `json:"partnerLabel"`
	Reference    string `json:"reference"`
	Quantity     int    `json:"quantity"`
	TotalAmount  string `json:"totalAmount"`
	AutoTotal    bool   `json:"autoTotal"`
}

// CheckPayload HTTP model of bank check metadata
type CheckPayload struct {
	Number   string `json:"number"`
	Bank     string `json:"bank"`
	Quantity int    `json:"quantity"`
	Amount   string `json:"amount"`
}

// PaymentMethodPayload HTTP model of the tagged payment method
type PaymentMethodPayload struct {
	Provider   string          `json:"provider"`
	MethodType string          `json:"methodType,omitempty"`
	Voucher    *VoucherPayload `json:"voucher,omitempty"`
	Check      *CheckPayload   `json:"check,omitempty"`
}

// CreateBookingRequest HTTP request model
type CreateBookingRequest struct {
	Date     string          `json:"date"` // "2026-07-14"
	Time     string          `json:"time"` // "10:30"
	Adults   int             `json:"adults"`
	Children int             `json:"children"`
	Babies   int             `json:"babies"`
	Language string          `json:"language"`
	Customer CustomerPayload `json:"customer"`
	Message  *string         `json:"message,omitempty"`

	InvoiceEmail  *string               `json:"invoiceEmail,omitempty"`
	PaymentMethod *PaymentMethodPayload `json:"paymentMethod,omitempty"`
	MarkAsPaid    bool                  `json:"markAsPaid,omitempty"`
	PendingOnly   bool                  `json:"pendingOnly,omitempty"`

	// Staff-only controls, honored only on authenticated staff requests
	ForcedBoatID           *int64 `json:"forcedBoatId,omitempty"`
	IsPrivate              bool   `json:"isPrivate,omitempty"`
	GroupChain             *int   `json:"groupChain,omitempty"`
	InheritPaymentForChain bool   `json:"inheritPaymentForChain,omitempty"`
}

// BookingPayload HTTP model of a created booking
type BookingPayload struct {
	ID              string  `json:"id"`
	PublicReference string  `json:"publicReference"`
	Date            string  `json:"date"`
	StartTime       string  `json:"startTime"`
	EndTime         string  `json:"endTime"`
	NumberOfPeople  int     `json:"numberOfPeople"`
	Adults          int     `json:"adults"`
	Children        int     `json:"children"`
	Babies          int     `json:"babies"`
	Language        string  `json:"language"`
	Status          string  `json:"status"`
	IsPaid          bool    `json:"isPaid"`
	TotalPrice      float64 `json:"totalPrice"`
	BoatID          int64   `json:"boatId"`
	Message         *string `json:"message,omitempty"`
	CreatedAt       string  `json:"createdAt"`
}

// ChainedBookingPayload HTTP model of one placed chain departure
type ChainedBookingPayload struct {
	Index     int    `json:"index"`
	BoatID    int64  `json:"boatId"`
	StartTime string `json:"startTime"`
	EndTime   string `json:"endTime"`
	People    int    `json:"people"`
}

// ChainOverlapPayload HTTP model of one skipped chain departure
type ChainOverlapPayload struct {
	Index     int    `json:"index"`
	StartTime string `json:"startTime,omitempty"`
	EndTime   string `json:"endTime,omitempty"`
	Reason    string `json:"reason"`
}

// CreateBookingResponse HTTP response model
type CreateBookingResponse struct {
	Booking         *BookingPayload         `json:"booking"`
	ChainedBookings []ChainedBookingPayload `json:"chainedBookings,omitempty"`
	Overlaps        []ChainOverlapPayload   `json:"overlaps,omitempty"`
}

// ToUseCaseRequest converts the HTTP request into the usecase model
func (r *CreateBookingRequest) ToUseCaseRequest(isStaff bool) (*createBooking.Request, error) {
	startTime, err := types.NewTimeStringFromString(r.Time)
	if err != nil {
		return nil, err
	}

	req := &createBooking.Request{
		Date:     r.Date,
		Time:     startTime,
		Adults:   r.Adults,
		Children: r.Children,
		Babies:   r.Babies,
		Language: r.Language,
		Customer: createBooking.CustomerDetails{
			FirstName: r.Customer.FirstName,
			LastName:  r.Customer.LastName,
			Email:     r.Customer.Email,
			Phone:     r.Customer.Phone,
		},
		Message:      r.Message,
		InvoiceEmail: r.InvoiceEmail,
		MarkAsPaid:   r.MarkAsPaid,
		PendingOnly:  r.PendingOnly,
	}

	if r.PaymentMethod != nil {
		req.PaymentMethod = domain.PaymentMethod{
			Provider:   domain.PaymentProvider(r.PaymentMethod.Provider),
			MethodType: r.PaymentMethod.MethodType,
		}
		if v := r.PaymentMethod.Voucher; v != nil {
			req.PaymentMethod.Voucher = &domain.VoucherDetails{
				PartnerID:    v.PartnerID,
				PartnerLabel: v.PartnerLabel,
				Reference:    v.Reference,
				Quantity:     v.Quantity,
				TotalAmount:  v.TotalAmount,
				AutoTotal:    v.AutoTotal,
			}
		}
		if c := r.PaymentMethod.Check; c != nil {
			req.PaymentMethod.Check = &domain.CheckDetails{
				Number:   c.Number,
				Bank:     c.Bank,
				Quantity: c.Quantity,
				Amount:   c.Amount,
			}
		}
	}

	if isStaff {
		req.IsStaffOverride = true
		req.ForcedBoatID = r.ForcedBoatID
		req.IsPrivate = r.IsPrivate
		req.GroupChain = r.GroupChain
		req.InheritPaymentForChain = r.InheritPaymentForChain
	}

	return req, nil
}

// FromUseCaseResult converts the usecase result into the HTTP response
func FromUseCaseResult(result *createBooking.Result) *CreateBookingResponse {
	resp := &CreateBookingResponse{
		Booking: bookingPayload(result.Booking),
	}

	for _, c := range result.ChainedBookings {
		resp.ChainedBookings = append(resp.ChainedBookings, ChainedBookingPayload{
			Index:     c.Index,
			BoatID:    c.BoatID,
			StartTime: c.Start.Format(time.RFC3339),
			EndTime:   c.End.Format(time.RFC3339),
			People:    c.People,
		})
	}
	for _, o := range result.Overlaps {
		p := ChainOverlapPayload{Index: o.Index, Reason: o.Reason}
		if !o.Start.IsZero() {
			p.StartTime = o.Start.Format(time.RFC3339)
			p.EndTime = o.End.Format(time.RFC3339)
		}
		resp.Overlaps = append(resp.Overlaps, p)
	}

	return resp
}

func bookingPayload(b *domain.Booking) *BookingPayload {
	if b == nil {
		return nil
	}
	return &BookingPayload{
		ID:              b.ID,
		PublicReference: b.PublicReference,
		Date:            b.Date.Format(domain.DateFormat),
		StartTime:       b.StartTime.Format(time.RFC3339),
		EndTime:         b.EndTime.Format(time.RFC3339),
		NumberOfPeople:  b.NumberOfPeople,
		Adults:          b.Adults,
		Children:        b.Children,
		Babies:          b.Babies,
		Language:        b.Language,
		Status:          string(b.Status),
		IsPaid:          b.IsPaid,
		TotalPrice:      b.TotalPrice,
		BoatID:          b.BoatID,
		Message:         b.Message,
		CreatedAt:       b.CreatedAt.Format(time.RFC3339),
	}
}
