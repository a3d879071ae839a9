package create_booking

// ErrorCode is the machine-readable failure class of a booking attempt
type ErrorCode string

const (
	// CodeConflict the requested boat and slot are unavailable under the sharing policy
	CodeConflict ErrorCode = "CONFLICT"

	// CodeInvalidTime the requested slot is outside the operating windows
	CodeInvalidTime ErrorCode = "INVALID_TIME"

	// CodeTooLate the requested slot is within the minimum lead time for non-staff
	CodeTooLate ErrorCode = "TOO_LATE"

	// CodeNoBoats no active boat exists; a fleet-configuration problem, not user error
	CodeNoBoats ErrorCode = "NO_BOATS"

	// CodeValidation required input data is missing or malformed
	CodeValidation ErrorCode = "VALIDATION"

	// CodeTransaction the atomic create failed for an infrastructure reason
	CodeTransaction ErrorCode = "TRANSACTION"
)
