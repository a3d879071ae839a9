package create_booking

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/sweetnarcisse/SN-BookingService/internal/domain"
	"github.com/sweetnarcisse/SN-BookingService/internal/service/fleet"
	"github.com/sweetnarcisse/SN-BookingService/pkg/metrics"
	"github.com/sweetnarcisse/SN-BookingService/pkg/types"
)

// overridePlaceholderEmail is the sentinel the counter front sends when
// the staff member did not collect an email address.
const overridePlaceholderEmail = "override@sweetnarcisse.local"

// UseCase creates bookings: validates the slot, selects the boat,
// resolves conflicts under the sharing policy and persists the booking
// atomically. Oversized staff groups are split over consecutive
// departures, each chunk taking the boat the rotation assigns it.
type UseCase struct {
	bookingRepo  BookingRepository
	fleetService FleetSelector
	txManager    TransactionManager
	auditLog     AuditLog
	cache        CacheInvalidator
	timeProvider TimeProvider
	schedule     domain.Schedule
	metrics      *metrics.Metrics
	logger       Logger
}

// New creates the booking creation usecase
func New(
	bookingRepo BookingRepository,
	fleetService FleetSelector,
	txManager TransactionManager,
	auditLog AuditLog,
	cache CacheInvalidator,
	timeProvider TimeProvider,
	schedule domain.Schedule,
	m *metrics.Metrics,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo:  bookingRepo,
		fleetService: fleetService,
		txManager:    txManager,
		auditLog:     auditLog,
		cache:        cache,
		timeProvider: timeProvider,
		schedule:     schedule,
		metrics:      m,
		logger:       logger,
	}
}

// conflictError carries the policy decision out of the transaction
// closure so it can be reported as a structured result, not a failure.
type conflictError struct {
	check ConflictCheckResult
}

func (e *conflictError) Error() string {
	return "slot conflict"
}

// party is the pax breakdown actually written on one booking, which
// may differ from the request on privatized or chained bookings.
type party struct {
	Adults   int
	Children int
	Babies   int
}

func (p party) Total() int {
	return p.Adults + p.Children + p.Babies
}

// Execute attempts to create the requested booking. Business failures
// (conflicts, closed slots, late requests) come back as a structured
// Result; the error return is reserved for infrastructure breakage.
func (uc *UseCase) Execute(ctx context.Context, req *Request) *Result {
	if res := uc.validateRequest(req); res != nil {
		return res
	}

	wall, err := domain.ParseParisWallDate(req.Date, req.Time)
	if err != nil {
		uc.logger.Warn("CreateBooking: bad date/time %q %q: %v", req.Date, req.Time, err)
		return failure(CodeValidation, "Date ou horaire de réservation invalide")
	}

	if v := uc.validateSlotTime(wall, req.Date, req.IsStaffOverride); !v.Valid {
		return failure(v.ErrorCode, v.Error)
	}

	selection, err := uc.fleetService.SelectBoatForSlot(ctx, wall.WallHour, wall.WallMinute, req.ForcedBoatID)
	if err != nil {
		if errors.Is(err, fleet.ErrNoActiveBoats) {
			return failure(CodeNoBoats, "Aucune barque active")
		}
		uc.logger.Error("CreateBooking: select boat: %v", err)
		return failure(CodeTransaction, fmt.Sprintf("Erreur technique (flotte): %v", err))
	}
	capacity := selection.Boat.Capacity

	// An oversized staff group is split into ceil(total/capacity)
	// departures; chunk sizing follows the lead boat's capacity.
	chainTotal := 0
	if req.IsStaffOverride && req.GroupChain != nil && *req.GroupChain > capacity {
		chainTotal = *req.GroupChain
	}

	firstParty := party{Adults: req.Adults, Children: req.Children, Babies: req.Babies}
	if chainTotal > 0 {
		firstParty = party{Adults: capacity}
	}

	booking, res := uc.placeSlot(ctx, req, wall, selection, firstParty)
	if res != nil {
		return res
	}

	result := &Result{Success: true, Booking: booking}

	if chainTotal > 0 {
		uc.placeChain(ctx, req, wall, selection, chainTotal, result)
	}

	return result
}

// placeChain places departures 1..chunks-1 of an oversized group, each
// one interval after the previous. Every chunk follows the rotation,
// so consecutive departures land on different boats and a 25-minute
// tour never blocks its own chain. A chunk whose slot is closed or
// already occupied is skipped and reported, never fatal: staff
// resolves the leftovers.
func (uc *UseCase) placeChain(
	ctx context.Context,
	req *Request,
	base domain.ParisWallInstant,
	selection *fleet.BoatSelection,
	total int,
	result *Result,
) {
	capacity := selection.Boat.Capacity
	chunks := (total + capacity - 1) / capacity
	baseMinutes := base.WallHour*60 + base.WallMinute
	duration := time.Duration(uc.schedule.TourDurationMinutes) * time.Minute

	chainReq := *req
	chainReq.IsPrivate = false
	chainReq.GroupChain = nil
	chainReq.ForcedBoatID = nil
	if !req.InheritPaymentForChain {
		chainReq.MarkAsPaid = false
		chainReq.PaymentMethod = domain.PaymentMethod{}
	}

	for i := 1; i < chunks; i++ {
		people := total - i*capacity
		if people > capacity {
			people = capacity
		}

		slotMinutes := baseMinutes + i*uc.schedule.IntervalMinutes
		slotTime, err := types.NewTimeStringFromMinutes(slotMinutes)
		if err != nil {
			uc.skipChunk(result, i, time.Time{}, time.Time{}, fmt.Sprintf("horaire invalide: %v", err))
			continue
		}
		wall, err := domain.ParseParisWallDate(req.Date, slotTime)
		if err != nil {
			uc.skipChunk(result, i, time.Time{}, time.Time{}, fmt.Sprintf("horaire invalide: %v", err))
			continue
		}
		start := wall.Instant
		end := start.Add(duration)

		if !uc.schedule.IsWithinOperatingWindows(slotMinutes) {
			uc.skipChunk(result, i, start, end, "hors horaires d'ouverture")
			continue
		}

		chunkSel, err := uc.fleetService.SelectBoatForSlot(ctx, wall.WallHour, wall.WallMinute, nil)
		if err != nil {
			uc.skipChunk(result, i, start, end, fmt.Sprintf("sélection de barque impossible: %v", err))
			continue
		}

		// Raw occupancy check: a chained departure never shares or
		// overrides, it only takes a fully free slot.
		existing, err := uc.bookingRepo.FindOverlapping(ctx, domain.BookingWindowFilter{
			BoatID:      chunkSel.Boat.ID,
			WindowStart: start,
			WindowEnd:   end,
		})
		if err != nil {
			uc.skipChunk(result, i, start, end, fmt.Sprintf("vérification impossible: %v", err))
			continue
		}
		if len(existing) > 0 {
			uc.skipChunk(result, i, start, end, "créneau déjà occupé")
			continue
		}

		chainReq.Time = slotTime
		booking, res := uc.placeSlot(ctx, &chainReq, wall, chunkSel, party{Adults: people})
		if res != nil {
			uc.skipChunk(result, i, start, end, res.Error)
			continue
		}

		uc.metrics.IncChainChunk("placed")
		result.ChainedBookings = append(result.ChainedBookings, ChainedBooking{
			Index:  i,
			BoatID: chunkSel.Boat.ID,
			Start:  booking.StartTime,
			End:    booking.EndTime,
			People: people,
		})
	}
}

func (uc *UseCase) skipChunk(result *Result, index int, start, end time.Time, reason string) {
	uc.metrics.IncChainChunk("skipped")
	uc.logger.Warn("CreateBooking: chain chunk %d skipped: %s", index, reason)
	result.Overlaps = append(result.Overlaps, ChainOverlap{
		Index:  index,
		Start:  start,
		End:    end,
		Reason: reason,
	})
}

// placeSlot is the single placement primitive: it resolves the
// customer email, prices the party, and runs the conflict check and
// insert inside one serializable transaction.
func (uc *UseCase) placeSlot(
	ctx context.Context,
	req *Request,
	wall domain.ParisWallInstant,
	selection *fleet.BoatSelection,
	p party,
) (*domain.Booking, *Result) {
	boat := selection.Boat

	email, res := uc.resolveEmail(req)
	if res != nil {
		return nil, res
	}

	isPrivate := req.IsPrivate && req.IsStaffOverride
	if isPrivate {
		p = party{Adults: boat.Capacity}
	}

	isPaid := false
	if !req.PendingOnly && req.MarkAsPaid && req.PaymentMethod.Provider.IsInstantCapture() {
		isPaid = true
	}
	status := domain.StatusConfirmed
	if req.PendingOnly {
		status = domain.StatusPending
	}

	day, err := domain.ParisDayUTC(req.Date)
	if err != nil {
		return nil, failure(CodeValidation, "Date de réservation invalide")
	}
	start := wall.Instant
	end := start.Add(time.Duration(uc.schedule.TourDurationMinutes) * time.Minute)
	buffer := time.Duration(uc.schedule.BufferTimeMinutes) * time.Minute

	// Pre-flight conflict check outside the transaction: obviously
	// taken slots are rejected without the serializable tx. The same
	// check re-runs inside with the rows locked; only that run decides.
	preflight, err := uc.bookingRepo.FindOverlapping(ctx, domain.BookingWindowFilter{
		BoatID:      boat.ID,
		WindowStart: start.Add(-buffer),
		WindowEnd:   end.Add(buffer),
	})
	if err == nil {
		if check := uc.evaluateConflicts(preflight, start, end, p.Total(), req.Language, boat.Capacity, req.IsStaffOverride); !check.CanBook {
			uc.metrics.IncBookingConflict()
			return nil, failure(CodeConflict, fmt.Sprintf("Conflit sur %s", req.Time))
		}
	}

	var (
		created *domain.Booking
		reason  string
	)
	txErr := uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		existing, err := uc.bookingRepo.FindOverlapping(txCtx, domain.BookingWindowFilter{
			BoatID:      boat.ID,
			WindowStart: start.Add(-buffer),
			WindowEnd:   end.Add(buffer),
		})
		if err != nil {
			return fmt.Errorf("find overlapping bookings: %w", err)
		}

		check := uc.evaluateConflicts(existing, start, end, p.Total(), req.Language, boat.Capacity, req.IsStaffOverride)
		if !check.CanBook {
			return &conflictError{check: check}
		}
		reason = check.Reason

		reference, err := uc.nextReference(txCtx, wall.Instant)
		if err != nil {
			return fmt.Errorf("allocate booking reference: %w", err)
		}

		customerID, err := uc.bookingRepo.UpsertCustomer(txCtx, &domain.Customer{
			FirstName: req.Customer.FirstName,
			LastName:  req.Customer.LastName,
			Email:     email,
			Phone:     req.Customer.Phone,
		})
		if err != nil {
			return fmt.Errorf("upsert customer: %w", err)
		}

		created, err = uc.bookingRepo.Create(txCtx, &domain.Booking{
			PublicReference: reference,
			Date:            day,
			StartTime:       start,
			EndTime:         end,
			NumberOfPeople:  p.Total(),
			Adults:          p.Adults,
			Children:        p.Children,
			Babies:          p.Babies,
			Language:        req.Language,
			Status:          status,
			IsPaid:          isPaid,
			TotalPrice:      uc.schedule.Price(p.Adults, p.Children, p.Babies),
			Message:         req.Message,
			InvoiceEmail:    req.InvoiceEmail,
			BoatID:          boat.ID,
			CustomerID:      customerID,
		})
		if err != nil {
			return fmt.Errorf("insert booking: %w", err)
		}
		return nil
	})
	if txErr != nil {
		var conflict *conflictError
		if errors.As(txErr, &conflict) {
			uc.metrics.IncBookingConflict()
			return nil, failure(CodeConflict, fmt.Sprintf("Conflit sur %s", req.Time))
		}
		uc.logger.Error("CreateBooking: transaction failed: %v", txErr)
		return nil, failure(CodeTransaction, fmt.Sprintf("Erreur technique (transaction): %v", txErr))
	}

	uc.metrics.IncBookingCreated(reason)
	uc.appendAudit(ctx, req, created, boat.Name, isPrivate)

	if err := uc.cache.InvalidateDate(ctx, req.Date); err != nil {
		uc.logger.Warn("CreateBooking: invalidate availability cache for %s: %v", req.Date, err)
	}

	return created, nil
}

// nextReference allocates the next public reference of the season,
// e.g. "SN-25-0042". The counter lives in the creating transaction so
// a rolled-back booking never burns a number visible to the customer.
func (uc *UseCase) nextReference(ctx context.Context, departure time.Time) (string, error) {
	year := departure.Year()
	counter, err := uc.bookingRepo.NextReferenceCounter(ctx, fmt.Sprintf("booking_ref_%d", year))
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("SN-%02d-%04d", year%100, counter), nil
}

// resolveEmail returns the email to attach to the customer record.
// Counter sales without a collected address get a synthesized
// per-booking pseudo-email so the upsert never merges strangers.
func (uc *UseCase) resolveEmail(req *Request) (string, *Result) {
	email := strings.TrimSpace(req.Customer.Email)

	if req.IsStaffOverride && (email == "" || strings.EqualFold(email, overridePlaceholderEmail)) {
		return synthesizeCounterEmail(req.Customer.FirstName, req.Customer.LastName), nil
	}
	if email == "" {
		return "", failure(CodeValidation, "Adresse email manquante")
	}
	return email, nil
}

func synthesizeCounterEmail(firstName, lastName string) string {
	first := sanitizeEmailPart(firstName, "client")
	last := sanitizeEmailPart(lastName, "inconnu")
	suffix := strings.ReplaceAll(uuid.NewString(), "-", "")[:6]
	return fmt.Sprintf("guichet.%s.%s.%s@local.com", last, first, suffix)
}

func sanitizeEmailPart(s, fallback string) string {
	s = strings.ToLower(strings.ReplaceAll(strings.TrimSpace(s), " ", ""))
	if s == "" {
		return fallback
	}
	return s
}

func (uc *UseCase) appendAudit(ctx context.Context, req *Request, booking *domain.Booking, boatName string, isPrivate bool) {
	var sb strings.Builder
	if req.IsStaffOverride {
		sb.WriteString("[STAFF OVERRIDE] ")
	}
	fmt.Fprintf(&sb, "Réservation %s de %s %s (%dp", booking.PublicReference,
		req.Customer.FirstName, req.Customer.LastName, booking.NumberOfPeople)
	if isPrivate {
		sb.WriteString(" PRIVATISATION")
	}
	fmt.Fprintf(&sb, ") sur %s le %s à %s", boatName, req.Date, req.Time)

	if err := uc.auditLog.Append(ctx, "NEW_BOOKING", sb.String()); err != nil {
		uc.logger.Warn("CreateBooking: append audit log: %v", err)
	}
}
