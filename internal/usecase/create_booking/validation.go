package create_booking

import (
	"fmt"
	"strings"
	"time"

	"github.com/sweetnarcisse/SN-BookingService/internal/domain"
)

// Selection reasons recorded on the audit trail and metrics.
const (
	reasonNoConflict    = "no_conflict"
	reasonStaffOverride = "staff_override"
	reasonSharedSlot    = "shared_slot"
)

func (uc *UseCase) validateRequest(req *Request) *Result {
	if strings.TrimSpace(req.Date) == "" {
		return failure(CodeValidation, "Date de réservation manquante")
	}
	if err := req.Time.Validate(); err != nil {
		return failure(CodeValidation, "Horaire de réservation invalide")
	}
	if req.Adults < 0 || req.Children < 0 || req.Babies < 0 {
		return failure(CodeValidation, "Nombre de passagers invalide")
	}
	if req.People() <= 0 {
		return failure(CodeValidation, "La réservation doit compter au moins un passager")
	}
	if strings.TrimSpace(req.Language) == "" {
		return failure(CodeValidation, "Langue de visite manquante")
	}
	if !req.PaymentMethod.IsZero() && !req.PaymentMethod.Provider.IsKnown() {
		return failure(CodeValidation, "Moyen de paiement invalide")
	}
	return nil
}

// validateSlotTime checks that a departure fits the operating windows
// and, for public requests on the current Paris day, respects the
// minimum booking delay. Staff overrides skip the delay check only.
func (uc *UseCase) validateSlotTime(wall domain.ParisWallInstant, date string, isStaffOverride bool) SlotValidationResult {
	minutes := wall.WallHour*60 + wall.WallMinute
	if !uc.schedule.IsWithinOperatingWindows(minutes) {
		return SlotValidationResult{
			Valid:     false,
			ErrorCode: CodeInvalidTime,
			Error:     fmt.Sprintf("Horaire %02d:%02d impossible. (10h-11h45 / 13h30-17h45)", wall.WallHour, wall.WallMinute),
		}
	}

	if !isStaffOverride {
		now := uc.timeProvider.Now()
		if domain.ParisToday(now) == date {
			nowHour, nowMinute := domain.ParisNowParts(now)
			lead := minutes - (nowHour*60 + nowMinute)
			if lead < uc.schedule.MinBookingDelayMinutes {
				return SlotValidationResult{
					Valid:     false,
					ErrorCode: CodeTooLate,
					Error:     fmt.Sprintf("Réservation trop tardive: moins de %d minutes avant le départ.", uc.schedule.MinBookingDelayMinutes),
				}
			}
		}
	}

	return SlotValidationResult{Valid: true}
}

// evaluateConflicts applies the single conflict policy to a candidate
// window against the bookings already holding the boat.
//
// The inputs are buffered on both sides: an existing booking conflicts
// when its raw interval, extended by the turnaround buffer, overlaps
// the candidate's buffered interval. With no conflicts the slot is
// free. A staff override books regardless. Otherwise the slot may be
// shared only when every conflicting booking departs at the exact same
// minute, speaks the same language, and the combined headcount still
// fits the boat.
func (uc *UseCase) evaluateConflicts(
	existing []*domain.Booking,
	candidateStart, candidateEnd time.Time,
	peopleNeeded int,
	language string,
	capacity int,
	isStaffOverride bool,
) ConflictCheckResult {
	buffer := time.Duration(uc.schedule.BufferTimeMinutes) * time.Minute

	var conflicts []ConflictingBooking
	for _, b := range existing {
		if b.StartTime.Before(candidateEnd.Add(buffer)) && b.EndTime.Add(buffer).After(candidateStart) {
			conflicts = append(conflicts, ConflictingBooking{
				BookingID: b.ID,
				StartTime: b.StartTime,
				People:    b.NumberOfPeople,
				Language:  b.Language,
			})
		}
	}

	if len(conflicts) == 0 {
		return ConflictCheckResult{HasConflict: false, CanBook: true, Reason: reasonNoConflict}
	}

	if isStaffOverride {
		return ConflictCheckResult{HasConflict: true, CanBook: true, Reason: reasonStaffOverride, Conflicts: conflicts}
	}

	occupied := 0
	sharable := true
	for _, c := range conflicts {
		if !c.StartTime.Equal(candidateStart) || !strings.EqualFold(c.Language, language) {
			sharable = false
			break
		}
		occupied += c.People
	}
	if sharable && occupied+peopleNeeded <= capacity {
		return ConflictCheckResult{HasConflict: true, CanBook: true, Reason: reasonSharedSlot, Conflicts: conflicts}
	}

	return ConflictCheckResult{HasConflict: true, CanBook: false, Conflicts: conflicts}
}
