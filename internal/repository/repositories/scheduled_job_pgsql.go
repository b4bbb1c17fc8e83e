package repositories

import (
	"context"
	"errors"
	"time"

	trmgorm "github.com/avito-tech/go-transaction-manager/gorm"
	"gorm.io/gorm"

	"github.com/moveboard/dispatch/internal/entity"
	appErrors "github.com/moveboard/dispatch/internal/errors"
	"github.com/moveboard/dispatch/pkg/gorm/types"
)

// @migration
type ScheduledJob struct {
	ID                 uint64 `gorm:"primaryKey"`
	ProviderID         uint64 `gorm:"not null;uniqueIndex:uniq_job_slot_seq"`
	QuoteID            *uint64
	Quote              *Quote     `gorm:"foreignKey:QuoteID"`
	ReservationRef     string     `gorm:"not null;index"`
	ScheduledDate      types.Date `gorm:"not null;uniqueIndex:uniq_job_slot_seq"`
	TimeSlot           string     `gorm:"not null;uniqueIndex:uniq_job_slot_seq"`
	SlotSeq            int64      `gorm:"not null;uniqueIndex:uniq_job_slot_seq,where:status <> 'cancelled'"`
	ScheduledStartTime types.Time
	ScheduledEndTime   types.Time
	CrewSize           int32
	Status             string `gorm:"not null;default:'scheduled'"`
	CreatedAt          time.Time
	UpdatedAt          time.Time
}

var (
	JobNotFoundError = appErrors.NewInternalError(nil, "Scheduled job not found", true)

	// SlotTakenError means this insert lost the race for the last free
	// sequence number in the slot.
	SlotTakenError = appErrors.NewInternalError(nil, "time slot already taken", true)
)

type ScheduledJobRepo struct {
	gorm   *gorm.DB
	getter *trmgorm.CtxGetter
}

func NewScheduledJobRepo(grm *gorm.DB, getter *trmgorm.CtxGetter) *ScheduledJobRepo {
	return &ScheduledJobRepo{
		gorm:   grm,
		getter: getter,
	}
}

func (s *ScheduledJobRepo) db(ctx context.Context) *gorm.DB {
	return s.getter.DefaultTrOrDB(ctx, s.gorm).WithContext(ctx)
}

// CountActive counts the jobs currently consuming capacity in a slot.
// Cancelled jobs do not count.
func (s *ScheduledJobRepo) CountActive(ctx context.Context, providerID uint64, date time.Time, slot entity.TimeSlot) (int64, error) {

	var count int64

	err := s.db(ctx).
		Model(&ScheduledJob{}).
		Where(
			"provider_id = ? AND scheduled_date = ? AND time_slot = ? AND status <> ?",
			providerID,
			date.Format(types.DateFormat),
			string(slot),
			string(entity.JOB_CANCELLED),
		).
		Count(&count).
		Error
	if err != nil {
		return 0, err
	}

	return count, nil
}

type JobToCreateDTO struct {
	ProviderID     uint64
	QuoteID        *uint64
	ReservationRef string
	Date           time.Time
	Slot           entity.TimeSlot
	CrewSize       int32
	MaxJobs        *int64
}

// activeSlotSeqs lists the seat numbers currently held in a slot,
// ascending. Cancelled jobs hold no seat.
func (s *ScheduledJobRepo) activeSlotSeqs(ctx context.Context, providerID uint64, date time.Time, slot entity.TimeSlot) ([]int64, error) {

	seqs := []int64{}

	err := s.db(ctx).
		Model(&ScheduledJob{}).
		Where(
			"provider_id = ? AND scheduled_date = ? AND time_slot = ? AND status <> ?",
			providerID,
			date.Format(types.DateFormat),
			string(slot),
			string(entity.JOB_CANCELLED),
		).
		Order("slot_seq ASC").
		Pluck("slot_seq", &seqs).
		Error
	if err != nil {
		return nil, err
	}

	return seqs, nil
}

// nextSlotSeq picks the smallest seat number not currently held, so a
// seat freed by cancellation is reused instead of locked out forever.
func nextSlotSeq(taken []int64) int64 {
	for i, seq := range taken {
		if int64(i) != seq {
			return int64(i)
		}
	}

	return int64(len(taken))
}

// CreateReserved is the linearization point of a reservation. The
// pre-flight availability check is advisory only: the real guard is the
// slot_seq assignment plus the partial unique index over non-cancelled
// rows. Two concurrent inserts that both saw the same free seat collide
// on the index and the loser gets SlotTakenError.
func (s *ScheduledJobRepo) CreateReserved(ctx context.Context, j JobToCreateDTO) (*entity.ScheduledJob, error) {

	taken, err := s.activeSlotSeqs(ctx, j.ProviderID, j.Date, j.Slot)
	if err != nil {
		return nil, err
	}
	booked := int64(len(taken))

	if j.MaxJobs == nil || *j.MaxJobs == 0 {
		if !entity.SlotOpenWithoutConfiguredMax(booked) {
			return nil, SlotTakenError
		}
	} else if booked >= *j.MaxJobs {
		return nil, SlotTakenError
	}

	window, err := entity.WindowForSlot(j.Slot)
	if err != nil {
		return nil, err
	}

	row := ScheduledJob{
		ProviderID:         j.ProviderID,
		QuoteID:            j.QuoteID,
		ReservationRef:     j.ReservationRef,
		ScheduledDate:      types.Date(j.Date),
		TimeSlot:           string(j.Slot),
		SlotSeq:            nextSlotSeq(taken),
		ScheduledStartTime: types.Time(window.StartTime),
		ScheduledEndTime:   types.Time(window.EndTime),
		CrewSize:           j.CrewSize,
		Status:             string(entity.JOB_SCHEDULED),
	}

	if err := s.db(ctx).Create(&row).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, SlotTakenError
		}
		return nil, err
	}

	return jobToEntity(row), nil
}

func (s *ScheduledJobRepo) FindById(ctx context.Context, id uint64) (*entity.ScheduledJob, error) {

	var job ScheduledJob

	res := s.db(ctx).Model(&ScheduledJob{}).Limit(1).Find(&job, id)
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, JobNotFoundError
	}

	return jobToEntity(job), nil
}

// UpdateStatus applies one lifecycle transition, refusing anything the
// status flow does not allow.
func (s *ScheduledJobRepo) UpdateStatus(ctx context.Context, id uint64, to entity.JobStatus) (*entity.ScheduledJob, error) {

	var job ScheduledJob

	res := s.db(ctx).Model(&ScheduledJob{}).Limit(1).Find(&job, id)
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, JobNotFoundError
	}

	ent := jobToEntity(job)
	if err := ent.Transition(to); err != nil {
		return nil, err
	}

	err := s.db(ctx).
		Model(&ScheduledJob{}).
		Where("id = ?", id).
		Update("status", string(ent.Status)).
		Error
	if err != nil {
		return nil, err
	}

	return ent, nil
}

func jobToEntity(j ScheduledJob) *entity.ScheduledJob {
	return &entity.ScheduledJob{
		ID:             j.ID,
		ProviderID:     j.ProviderID,
		QuoteID:        j.QuoteID,
		ReservationRef: j.ReservationRef,
		ScheduledDate:  time.Time(j.ScheduledDate),
		TimeSlot:       entity.TimeSlot(j.TimeSlot),
		StartTime:      time.Time(j.ScheduledStartTime),
		EndTime:        time.Time(j.ScheduledEndTime),
		CrewSize:       j.CrewSize,
		Status:         entity.JobStatus(j.Status),
	}
}
