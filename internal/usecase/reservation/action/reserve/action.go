package reserve

import (
	"context"
	"errors"

	"github.com/avito-tech/go-transaction-manager/trm/manager"
	"go.uber.org/zap"

	"github.com/moveboard/dispatch"
	"github.com/moveboard/dispatch/internal/entity"
	"github.com/moveboard/dispatch/internal/repository/repositories"
	"github.com/moveboard/dispatch/internal/usecase/availability"
)

type ActionReserve struct {
	trm    *manager.Manager
	logger *zap.Logger

	Availability     *availability.AvailabilityUseCase
	ProviderRepo     *repositories.ProviderRepo
	QuoteRepo        *repositories.QuoteRepo
	JobRepo          *repositories.ScheduledJobRepo
	BookingRepo      *repositories.BookingRepo
	NotificationRepo *repositories.NotificationRepo
}

func New(
	trm *manager.Manager,
	logger *zap.Logger,
	availabilityUC *availability.AvailabilityUseCase,
	providerRepo *repositories.ProviderRepo,
	quoteRepo *repositories.QuoteRepo,
	jobRepo *repositories.ScheduledJobRepo,
	bookingRepo *repositories.BookingRepo,
	notificationRepo *repositories.NotificationRepo,
) *ActionReserve {
	return &ActionReserve{
		trm:              trm,
		logger:           logger,
		Availability:     availabilityUC,
		ProviderRepo:     providerRepo,
		QuoteRepo:        quoteRepo,
		JobRepo:          jobRepo,
		BookingRepo:      bookingRepo,
		NotificationRepo: notificationRepo,
	}
}

// Reserve walks the reservation through its step flow:
//
//	START -> RULE_RESOLVED -> AVAILABILITY_CONFIRMED -> QUOTE_PERSISTED
//	      -> JOB_CREATED -> MIRRORED
//
// Blocked dates, exhausted capacity and lost insert races abort before
// JOB_CREATED. The quote write and everything after JOB_CREATED degrade
// instead of aborting: the scheduled job is the record that consumes
// capacity, so once it exists the reservation is committed and only the
// secondary ids can be missing.
func (a *ActionReserve) Reserve(ctx context.Context, in Input) (*Result, error) {
	op := "usecase.reservation.action.reserve"

	st := newReservationState()

	provider, err := a.resolveProvider(ctx, in)
	if err != nil {
		st.abort("input")
		return nil, err
	}

	if err := st.advance(stepRuleResolved); err != nil {
		return nil, dispatch.OpError(op, err)
	}

	// Check auto-provisions the missing rule and re-derives the answer
	// from live counts.
	avail, err := a.Availability.Check(ctx, provider.ID, in.MoveDate, in.Slot)
	if err != nil {
		st.abort("internal")
		return nil, dispatch.OpError(op, err)
	}

	if avail.Blocked {
		st.abort(avail.Reason)
		return nil, &dispatch.Error{
			Op:      op,
			Code:    dispatch.EINVALID,
			Message: "This date is blocked by the provider, please pick another date",
			Fields:  map[string]interface{}{"blocked": true},
		}
	}

	if !avail.Available {
		st.abort(avail.Reason)
		return nil, &dispatch.Error{
			Op:      op,
			Code:    dispatch.EINVALID,
			Message: "This time slot is " + avail.Reason + ", please pick another slot or date",
			Fields:  map[string]interface{}{"fullyBooked": true},
		}
	}

	if err := st.advance(stepAvailabilityConfirmed); err != nil {
		return nil, dispatch.OpError(op, err)
	}

	quoteID := a.persistQuote(ctx, in, provider, st)

	if err := st.advance(stepQuotePersisted); err != nil {
		return nil, dispatch.OpError(op, err)
	}

	var job *entity.ScheduledJob
	err = a.trm.Do(ctx, func(ctx context.Context) error {
		job, err = a.JobRepo.CreateReserved(ctx, repositories.JobToCreateDTO{
			ProviderID:     provider.ID,
			QuoteID:        quoteID,
			ReservationRef: st.ref,
			Date:           in.MoveDate,
			Slot:           in.Slot,
			CrewSize:       in.TeamSize,
			MaxJobs:        avail.MaxJobs,
		})
		return err
	})
	if err != nil {
		if errors.Is(err, repositories.SlotTakenError) {
			st.abort("conflict")
			return nil, &dispatch.Error{
				Op:      op,
				Code:    dispatch.ECONFLICT,
				Message: "This time slot was just taken, please re-check availability",
				Fields:  map[string]interface{}{"conflict": true},
			}
		}

		st.abort("internal")
		return nil, dispatch.OpError(op, err)
	}

	if err := st.advance(stepJobCreated); err != nil {
		return nil, dispatch.OpError(op, err)
	}

	bookingID := a.mirrorBooking(ctx, in, provider, quoteID, job, st)
	a.notifyProvider(ctx, in, provider, job, st)

	if err := st.advance(stepMirrored); err != nil {
		return nil, dispatch.OpError(op, err)
	}

	return &Result{
		ReservationRef: st.ref,
		Job:            job,
		Provider:       provider,
		QuoteID:        quoteID,
		BookingID:      bookingID,
	}, nil
}

func (a *ActionReserve) resolveProvider(ctx context.Context, in Input) (*entity.Provider, error) {
	op := "usecase.reservation.action.reserve.resolveProvider"

	switch {
	case in.ProviderID != nil:
		provider, err := a.ProviderRepo.FindById(ctx, *in.ProviderID)
		if err != nil {
			return nil, providerLookupError(op, err)
		}
		return provider, nil

	case in.BusinessID != nil:
		provider, err := a.ProviderRepo.FindByBusinessId(ctx, *in.BusinessID)
		if err != nil {
			return nil, providerLookupError(op, err)
		}
		return provider, nil

	default:
		return nil, &dispatch.Error{
			Op:      op,
			Code:    dispatch.EINVALID,
			Message: "providerId or businessId is required",
			Fields:  map[string]interface{}{"invalid": true},
		}
	}
}

func providerLookupError(op string, err error) error {
	if errors.Is(err, repositories.ProviderNotFoundError) {
		return dispatch.ErrorWithCode(dispatch.OpError(op, err), dispatch.ENOTFOUND)
	}
	return dispatch.OpError(op, err)
}

// persistQuote runs the quote ledger upsert. Failures degrade: the
// reservation continues with a nil quote id and the error is logged for
// operators instead of surfacing to the caller.
func (a *ActionReserve) persistQuote(ctx context.Context, in Input, provider *entity.Provider, st *reservationState) *uint64 {

	quote, err := a.QuoteRepo.UpsertConfirmed(ctx, repositories.QuoteToUpsertDTO{
		ExistingQuoteID: in.QuoteID,
		ProviderID:      provider.ID,
		CustomerID:      in.CustomerID,
		FullName:        in.FullName,
		Email:           in.Email,
		Phone:           in.Phone,
		PickupAddress:   firstOrEmpty(in.PickupAddresses),
		DropoffAddress:  firstOrEmpty(in.DeliveryAddresses),
		MoveDate:        in.MoveDate,
		CrewSize:        in.TeamSize,
		PriceTotalCents: in.TotalPriceCents,
		Breakdown:       requestBreakdown(in),
	})
	if err != nil {
		a.logger.Warn("quote persistence degraded, reservation continues without quote",
			zap.String("reservation_ref", st.ref),
			zap.Time("move_date", in.MoveDate),
			zap.String("time_slot", string(in.Slot)),
			zap.Error(err),
		)
		return nil
	}

	return &quote.ID
}

// mirrorBooking writes the customer-facing booking row. It is skipped
// for guests and for providers without a business profile, and any
// failure is logged, never propagated.
func (a *ActionReserve) mirrorBooking(
	ctx context.Context,
	in Input,
	provider *entity.Provider,
	quoteID *uint64,
	job *entity.ScheduledJob,
	st *reservationState,
) *uint64 {

	if in.CustomerID == nil || provider.BusinessID == nil {
		return nil
	}

	booking, err := a.BookingRepo.Create(ctx, repositories.BookingToCreateDTO{
		CustomerID:      *in.CustomerID,
		BusinessID:      *provider.BusinessID,
		RequestedDate:   in.MoveDate,
		RequestedTime:   string(in.Slot),
		TotalPriceCents: in.TotalPriceCents,
		ServiceDetails:  buildServiceDetails(in, quoteID, job, st.ref),
	})
	if err != nil {
		a.logger.Warn("booking mirror degraded, reservation stands without customer record",
			zap.String("reservation_ref", st.ref),
			zap.Uint64("provider_id", provider.ID),
			zap.Uint64("scheduled_job_id", job.ID),
			zap.Error(err),
		)
		return nil
	}

	return &booking.ID
}

func (a *ActionReserve) notifyProvider(
	ctx context.Context,
	in Input,
	provider *entity.Provider,
	job *entity.ScheduledJob,
	st *reservationState,
) {

	_, err := a.NotificationRepo.Create(ctx, repositories.NotificationToCreateDTO{
		RecipientUserID: provider.OwnerUserID,
		Kind:            entity.NotificationNewReservation,
		Title:           "New reservation",
		Body:            in.FullName + " booked the " + string(in.Slot) + " slot on " + in.MoveDate.Format("2006-01-02"),
		Payload: map[string]interface{}{
			"reservation_ref":  st.ref,
			"scheduled_job_id": job.ID,
			"time_slot":        string(in.Slot),
			"move_date":        in.MoveDate.Format("2006-01-02"),
		},
	})
	if err != nil {
		a.logger.Warn("reservation notification dropped",
			zap.String("reservation_ref", st.ref),
			zap.String("recipient_user_id", provider.OwnerUserID),
			zap.Error(err),
		)
	}
}

func firstOrEmpty(list []string) string {
	if len(list) == 0 {
		return ""
	}
	return list[0]
}
