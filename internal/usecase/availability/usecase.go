package availability

import (
	"context"
	"time"

	"github.com/avito-tech/go-transaction-manager/trm/manager"
	"gopkg.in/go-playground/validator.v9"

	"github.com/moveboard/dispatch"
	"github.com/moveboard/dispatch/internal/entity"
	"github.com/moveboard/dispatch/internal/repository/repositories"
)

type AvailabilityUseCase struct {
	trm              *manager.Manager
	validator        *validator.Validate
	CapacityRuleRepo *repositories.CapacityRuleRepo
	OverrideRepo     *repositories.AvailabilityOverrideRepo
	JobRepo          *repositories.ScheduledJobRepo
}

func New(
	trm *manager.Manager,
	rulerepo *repositories.CapacityRuleRepo,
	ovrrepo *repositories.AvailabilityOverrideRepo,
	jobrepo *repositories.ScheduledJobRepo,
) *AvailabilityUseCase {

	return &AvailabilityUseCase{
		trm:              trm,
		validator:        validator.New(),
		CapacityRuleRepo: rulerepo,
		OverrideRepo:     ovrrepo,
		JobRepo:          jobrepo,
	}
}

// Check answers whether (provider, date, slot) can take one more job.
//
// The answer is always re-derived from primary counts: the capacity rule
// (auto-provisioned with defaults when the weekday was never configured),
// the manual date blocks, and the live count of non-cancelled jobs. Any
// cached "is available" boolean elsewhere in the system is advisory; this
// recomputation wins when they disagree.
func (uc *AvailabilityUseCase) Check(ctx context.Context, providerID uint64, date time.Time, slot entity.TimeSlot) (*entity.Availability, error) {
	op := "usecase.availability.Check"

	weekday := int32(date.Weekday())

	rule, err := uc.CapacityRuleRepo.GetRule(ctx, providerID, weekday)
	if err != nil {
		return nil, dispatch.OpError(op, err)
	}

	if rule == nil {
		rule, err = uc.CapacityRuleRepo.CreateDefault(ctx, providerID, weekday)
		if err != nil {
			return nil, dispatch.OpError(op, err)
		}
	}

	blocked, err := uc.OverrideRepo.HasBlock(ctx, providerID, date)
	if err != nil {
		return nil, dispatch.OpError(op, err)
	}
	if blocked {
		return &entity.Availability{
			Available: false,
			Blocked:   true,
			Reason:    entity.ReasonDateBlocked,
		}, nil
	}

	booked, err := uc.JobRepo.CountActive(ctx, providerID, date, slot)
	if err != nil {
		return nil, dispatch.OpError(op, err)
	}

	maxJobs := rule.MaxFor(slot)

	if maxJobs == nil || *maxJobs == 0 {
		if entity.SlotOpenWithoutConfiguredMax(booked) {
			return &entity.Availability{
				Available: true,
				Booked:    booked,
				MaxJobs:   maxJobs,
			}, nil
		}

		return &entity.Availability{
			Available: false,
			Reason:    entity.ReasonFullyBooked(booked, 0),
			Booked:    booked,
			MaxJobs:   maxJobs,
		}, nil
	}

	if booked < *maxJobs {
		return &entity.Availability{
			Available: true,
			Booked:    booked,
			MaxJobs:   maxJobs,
		}, nil
	}

	return &entity.Availability{
		Available: false,
		Reason:    entity.ReasonFullyBooked(booked, *maxJobs),
		Booked:    booked,
		MaxJobs:   maxJobs,
	}, nil
}

func (uc *AvailabilityUseCase) UpsertRules(ctx context.Context, providerID uint64, rules []CapacityRuleDTO) (*[]entity.CapacityRule, error) {
	op := "usecase.availability.UpsertRules"

	for _, r := range rules {
		if err := uc.validator.Struct(r); err != nil {
			return nil, dispatch.ErrorWithCode(dispatch.OpError(op, err), dispatch.EINVALID)
		}
	}

	res := []entity.CapacityRule{}

	err := uc.trm.Do(ctx, func(ctx context.Context) error {
		for _, r := range rules {
			saved, err := uc.CapacityRuleRepo.UpsertRule(ctx, providerID, repositories.CapacityRuleToUpsertDTO{
				Weekday:       r.Weekday,
				MorningJobs:   r.MorningJobs,
				AfternoonJobs: r.AfternoonJobs,
			})
			if err != nil {
				return err
			}

			res = append(res, *saved)
		}

		return nil
	})
	if err != nil {
		return nil, dispatch.OpError(op, err)
	}

	return &res, nil
}

func (uc *AvailabilityUseCase) Rules(ctx context.Context, providerID uint64) (*[]entity.CapacityRule, error) {
	op := "usecase.availability.Rules"

	rules, err := uc.CapacityRuleRepo.AllForProvider(ctx, providerID)
	if err != nil {
		return nil, dispatch.OpError(op, err)
	}

	return rules, nil
}

func (uc *AvailabilityUseCase) BlockDate(ctx context.Context, providerID uint64, date time.Time) (*entity.AvailabilityOverride, error) {
	op := "usecase.availability.BlockDate"

	override, err := uc.OverrideRepo.AddBlock(ctx, providerID, date)
	if err != nil {
		return nil, dispatch.OpError(op, err)
	}

	return override, nil
}

func (uc *AvailabilityUseCase) UnblockDate(ctx context.Context, providerID uint64, date time.Time) error {
	op := "usecase.availability.UnblockDate"

	if err := uc.OverrideRepo.RemoveBlock(ctx, providerID, date); err != nil {
		return dispatch.OpError(op, err)
	}

	return nil
}
