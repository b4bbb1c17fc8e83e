package reservation

import (
	"context"
	"errors"

	"github.com/avito-tech/go-transaction-manager/trm/manager"
	"go.uber.org/zap"
	"gopkg.in/go-playground/validator.v9"

	"github.com/moveboard/dispatch"
	"github.com/moveboard/dispatch/internal/entity"
	"github.com/moveboard/dispatch/internal/repository/repositories"
	"github.com/moveboard/dispatch/internal/usecase/availability"
	"github.com/moveboard/dispatch/internal/usecase/reservation/action/reserve"
	validatations "github.com/moveboard/dispatch/pkg/validations"
)

type ReservationUseCase struct {
	trm       *manager.Manager
	logger    *zap.Logger
	validator *validator.Validate

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
) *ReservationUseCase {

	v := validator.New()
	v.RegisterValidation("time_slot", validatations.Time_slot)
	v.RegisterValidation("iso_date", validatations.Iso_date)

	return &ReservationUseCase{
		trm:              trm,
		logger:           logger,
		validator:        v,
		Availability:     availabilityUC,
		ProviderRepo:     providerRepo,
		QuoteRepo:        quoteRepo,
		JobRepo:          jobRepo,
		BookingRepo:      bookingRepo,
		NotificationRepo: notificationRepo,
	}
}

func (uc *ReservationUseCase) Create(ctx context.Context, dto ReservationToCreateDTO) (*reserve.Result, error) {
	op := "usecase.reservation.Create"

	if err := uc.validator.Struct(dto); err != nil {
		return nil, dispatch.ErrorWithCode(dispatch.OpError(op, err), dispatch.EINVALID)
	}

	action := reserve.New(
		uc.trm,
		uc.logger,
		uc.Availability,
		uc.ProviderRepo,
		uc.QuoteRepo,
		uc.JobRepo,
		uc.BookingRepo,
		uc.NotificationRepo,
	)

	res, err := action.Reserve(ctx, reserve.Input{
		ProviderID:        dto.ProviderID,
		BusinessID:        dto.BusinessID,
		QuoteID:           dto.QuoteID,
		CustomerID:        dto.CustomerID,
		MoveDate:          dto.MoveDate.UTC(),
		Slot:              entity.TimeSlot(dto.TimeSlot),
		FullName:          dto.FullName,
		Email:             dto.Email,
		Phone:             dto.Phone,
		PickupAddresses:   dto.PickupAddresses,
		DeliveryAddresses: dto.DeliveryAddresses,
		TeamSize:          dto.TeamSize,
		TotalPriceCents:   dto.TotalPriceCents,
		Details: reserve.DetailOverrides{
			HeavyItems:           dto.HeavyItems,
			StairsFlights:        dto.StairsFlights,
			PackingHelp:          dto.PackingHelp,
			PackingRooms:         dto.PackingRooms,
			PackingMaterials:     dto.PackingMaterials,
			DestinationFee:       dto.DestinationFee,
			DoubleDriveTime:      dto.DoubleDriveTime,
			TripDistanceMiles:    dto.TripDistanceMiles,
			TripDistanceDuration: dto.TripDistanceDuration,
			TripDistances:        dto.TripDistances,
		},
		QuoteBreakdown: dto.QuoteBreakdown,
	})
	if err != nil {
		return nil, err
	}

	return res, nil
}

func (uc *ReservationUseCase) GetById(ctx context.Context, jobID uint64) (*ReservationViewDTO, error) {
	op := "usecase.reservation.GetById"

	job, err := uc.JobRepo.FindById(ctx, jobID)
	if err != nil {
		if errors.Is(err, repositories.JobNotFoundError) {
			return nil, dispatch.ErrorWithCode(dispatch.OpError(op, err), dispatch.ENOTFOUND)
		}
		return nil, dispatch.OpError(op, err)
	}

	view := ReservationViewDTO{Job: job}

	if job.QuoteID != nil {
		quote, err := uc.QuoteRepo.FindById(ctx, *job.QuoteID)
		if err != nil && !errors.Is(err, repositories.QuoteNotFoundError) {
			return nil, dispatch.OpError(op, err)
		}
		view.Quote = quote
	}

	return &view, nil
}

func (uc *ReservationUseCase) UpdateJobStatus(ctx context.Context, jobID uint64, status string) (*entity.ScheduledJob, error) {
	op := "usecase.reservation.UpdateJobStatus"

	if !entity.IsValidJobStatus(status) {
		return nil, &dispatch.Error{
			Op:      op,
			Code:    dispatch.EINVALID,
			Message: "invalid job status",
			Fields:  map[string]interface{}{"invalid": true},
		}
	}

	var job *entity.ScheduledJob
	var err error
	err = uc.trm.Do(ctx, func(ctx context.Context) error {
		job, err = uc.JobRepo.UpdateStatus(ctx, jobID, entity.JobStatus(status))
		return err
	})
	if err != nil {
		if errors.Is(err, repositories.JobNotFoundError) {
			return nil, dispatch.ErrorWithCode(dispatch.OpError(op, err), dispatch.ENOTFOUND)
		}
		if errors.Is(err, entity.InvalidJobTransitionError) {
			return nil, dispatch.ErrorWithCode(dispatch.OpError(op, err), dispatch.EINVALID)
		}
		return nil, dispatch.OpError(op, err)
	}

	return job, nil
}
