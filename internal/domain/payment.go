package domain

// PaymentProvider identifies how a booking was (or will be) paid
type PaymentProvider string

const (
	ProviderStripe   PaymentProvider = "stripe"
	ProviderCash     PaymentProvider = "cash"
	ProviderPaypal   PaymentProvider = "paypal"
	ProviderApplePay PaymentProvider = "applepay"
	ProviderGoogle   PaymentProvider = "googlepay"
	ProviderVoucher  PaymentProvider = "voucher"
	ProviderCheck    PaymentProvider = "check"
	ProviderANCV     PaymentProvider = "ANCV"
	ProviderCityPass PaymentProvider = "CityPass"
)

// instantCaptureProviders settle at the moment of sale, unlike the
// deferred online-card flow which completes through its own callback.
var instantCaptureProviders = map[PaymentProvider]struct{}{
	ProviderCash:     {},
	ProviderPaypal:   {},
	ProviderApplePay: {},
	ProviderGoogle:   {},
	ProviderVoucher:  {},
	ProviderCheck:    {},
	ProviderANCV:     {},
	ProviderCityPass: {},
}

// IsInstantCapture returns true if the provider settles at time of sale
func (p PaymentProvider) IsInstantCapture() bool {
	_, ok := instantCaptureProviders[p]
	return ok
}

// IsKnown returns true if p is one of the accepted providers
func (p PaymentProvider) IsKnown() bool {
	if p == ProviderStripe {
		return true
	}
	_, ok := instantCaptureProviders[p]
	return ok
}

// VoucherDetails carries partner voucher metadata for counter sales
type VoucherDetails struct {
	PartnerID    string
	PartnerLabel string
	Reference    string
	Quantity     int
	TotalAmount  string
	AutoTotal    bool
}

// CheckDetails carries bank check metadata for counter sales
type CheckDetails struct {
	Number   string
	Bank     string
	Quantity int
	Amount   string
}

// PaymentMethod is the tagged payment variant attached to a booking
// request. Provider selects the case; Voucher and Check carry the
// structured metadata relevant to their provider only.
type PaymentMethod struct {
	Provider   PaymentProvider
	MethodType string
	Voucher    *VoucherDetails
	Check      *CheckDetails
}

// IsZero returns true if no payment method was supplied
func (m PaymentMethod) IsZero() bool {
	return m.Provider == ""
}
