package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/sweetnarcisse/SN-BookingService/internal/api/handlers"
)

// HeaderStaffID carries the authenticated staff member's identifier,
// set by the gateway in front of this service.
const HeaderStaffID = "X-Staff-ID"

type contextKey string

const staffIDKey contextKey = "staffID"

// StaffContext copies the staff header, when present, into the request
// context. Public requests pass through unchanged.
func StaffContext(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if staffID := strings.TrimSpace(r.Header.Get(HeaderStaffID)); staffID != "" {
			r = r.WithContext(context.WithValue(r.Context(), staffIDKey, staffID))
		}
		next.ServeHTTP(w, r)
	})
}

// RequireStaff rejects requests without a staff identity
func RequireStaff(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, ok := GetStaffID(r.Context()); !ok {
			handlers.RespondUnauthorized(w, "identifiant employé manquant")
			return
		}
		next.ServeHTTP(w, r)
	})
}

// GetStaffID returns the staff identifier of the request, if any
func GetStaffID(ctx context.Context) (string, bool) {
	staffID, ok := ctx.Value(staffIDKey).(string)
	return staffID, ok
}

// IsStaff reports whether the request carries a staff identity
func IsStaff(ctx context.Context) bool {
	_, ok := GetStaffID(ctx)
	return ok
}
