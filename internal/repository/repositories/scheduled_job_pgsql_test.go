package repositories

import (
	"context"
	"testing"
	"time"

	trmgorm "github.com/avito-tech/go-transaction-manager/gorm"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/moveboard/dispatch/internal/entity"
)

var testDate = time.Date(2026, time.September, 14, 0, 0, 0, 0, time.UTC)

func reserveJob(ctx context.Context, repo *ScheduledJobRepo, providerID uint64, maxJobs int64) (*entity.ScheduledJob, error) {
	return repo.CreateReserved(ctx, JobToCreateDTO{
		ProviderID:     providerID,
		ReservationRef: "ref-" + time.Now().Format("150405.000000000"),
		Date:           testDate,
		Slot:           entity.MORNING,
		CrewSize:       2,
		MaxJobs:        int64Ptr(maxJobs),
	})
}

func TestCreateReservedFillsSlotWindow(t *testing.T) {
	db := newTestDB(t)
	repo := NewScheduledJobRepo(db, trmgorm.DefaultCtxGetter)
	ctx := context.Background()

	providerID := newTestProvider(t, db, nil)

	job, err := repo.CreateReserved(ctx, JobToCreateDTO{
		ProviderID:     providerID,
		ReservationRef: "ref-1",
		Date:           testDate,
		Slot:           entity.AFTERNOON,
		CrewSize:       3,
		MaxJobs:        int64Ptr(2),
	})
	require.NoError(t, err)

	assert.Equal(t, providerID, job.ProviderID)
	assert.Equal(t, entity.AFTERNOON, job.TimeSlot)
	assert.Equal(t, entity.JOB_SCHEDULED, job.Status)
	assert.Equal(t, "12:00", job.StartTime.Format("15:04"))
	assert.Equal(t, "17:00", job.EndTime.Format("15:04"))
	assert.Equal(t, "2026-09-14", job.ScheduledDate.Format("2006-01-02"))
}

func TestCreateReservedRefusesWhenFull(t *testing.T) {
	db := newTestDB(t)
	repo := NewScheduledJobRepo(db, trmgorm.DefaultCtxGetter)
	ctx := context.Background()

	providerID := newTestProvider(t, db, nil)

	for i := 0; i < 3; i++ {
		_, err := reserveJob(ctx, repo, providerID, 3)
		require.NoError(t, err)
	}

	_, err := reserveJob(ctx, repo, providerID, 3)
	require.ErrorIs(t, err, SlotTakenError)

	count, err := repo.CountActive(ctx, providerID, testDate, entity.MORNING)
	require.NoError(t, err)
	assert.Equal(t, int64(3), count)
}

func TestNextSlotSeq(t *testing.T) {
	cases := []struct {
		taken []int64
		next  int64
	}{
		{[]int64{}, 0},
		{[]int64{0}, 1},
		{[]int64{0, 1}, 2},
		{[]int64{1}, 0},
		{[]int64{0, 2}, 1},
		{[]int64{1, 2}, 0},
	}

	for _, c := range cases {
		assert.Equal(t, c.next, nextSlotSeq(c.taken), "taken %v", c.taken)
	}
}

func TestCreateReservedLostRaceMapsToSlotTaken(t *testing.T) {
	db := newTestDB(t)
	repo := NewScheduledJobRepo(db, trmgorm.DefaultCtxGetter)
	ctx := context.Background()

	providerID := newTestProvider(t, db, nil)

	_, err := repo.CreateReserved(ctx, JobToCreateDTO{
		ProviderID:     providerID,
		ReservationRef: "ref-pm",
		Date:           testDate,
		Slot:           entity.AFTERNOON,
		MaxJobs:        int64Ptr(2),
	})
	require.NoError(t, err)

	// an extra unique constraint over (provider, date) makes the next
	// insert collide the way a reservation committed between the seat
	// computation and the write would
	require.NoError(t, db.Exec(
		"CREATE UNIQUE INDEX uniq_race_provider_date ON scheduled_jobs(provider_id, scheduled_date)",
	).Error)

	_, err = reserveJob(ctx, repo, providerID, 3)
	require.ErrorIs(t, err, SlotTakenError)
}

func TestCreateReservedCancelledFreesSeat(t *testing.T) {
	db := newTestDB(t)
	repo := NewScheduledJobRepo(db, trmgorm.DefaultCtxGetter)
	ctx := context.Background()

	providerID := newTestProvider(t, db, nil)

	var first *entity.ScheduledJob
	for i := 0; i < 2; i++ {
		job, err := reserveJob(ctx, repo, providerID, 2)
		require.NoError(t, err)
		if first == nil {
			first = job
		}
	}

	_, err := reserveJob(ctx, repo, providerID, 2)
	require.ErrorIs(t, err, SlotTakenError)

	_, err = repo.UpdateStatus(ctx, first.ID, entity.JOB_CANCELLED)
	require.NoError(t, err)

	job, err := reserveJob(ctx, repo, providerID, 2)
	require.NoError(t, err)
	assert.Equal(t, entity.JOB_SCHEDULED, job.Status)

	// the freed seat number was reused, not appended past the cap
	var row ScheduledJob
	require.NoError(t, db.First(&row, job.ID).Error)
	assert.Equal(t, int64(0), row.SlotSeq)

	count, err := repo.CountActive(ctx, providerID, testDate, entity.MORNING)
	require.NoError(t, err)
	assert.Equal(t, int64(2), count)
}

func TestCreateReservedUnconfiguredMaxOpensOnce(t *testing.T) {
	db := newTestDB(t)
	repo := NewScheduledJobRepo(db, trmgorm.DefaultCtxGetter)
	ctx := context.Background()

	providerID := newTestProvider(t, db, nil)

	// nil max: first job goes through, second is refused
	job, err := repo.CreateReserved(ctx, JobToCreateDTO{
		ProviderID:     providerID,
		ReservationRef: "ref-a",
		Date:           testDate,
		Slot:           entity.MORNING,
		MaxJobs:        nil,
	})
	require.NoError(t, err)
	require.NotZero(t, job.ID)

	_, err = repo.CreateReserved(ctx, JobToCreateDTO{
		ProviderID:     providerID,
		ReservationRef: "ref-b",
		Date:           testDate,
		Slot:           entity.MORNING,
		MaxJobs:        nil,
	})
	require.ErrorIs(t, err, SlotTakenError)
}

func TestUpdateStatusTransitions(t *testing.T) {
	db := newTestDB(t)
	repo := NewScheduledJobRepo(db, trmgorm.DefaultCtxGetter)
	ctx := context.Background()

	providerID := newTestProvider(t, db, nil)

	job, err := reserveJob(ctx, repo, providerID, 3)
	require.NoError(t, err)

	inProgress, err := repo.UpdateStatus(ctx, job.ID, entity.JOB_IN_PROGRESS)
	require.NoError(t, err)
	assert.Equal(t, entity.JOB_IN_PROGRESS, inProgress.Status)

	_, err = repo.UpdateStatus(ctx, job.ID, entity.JOB_SCHEDULED)
	require.ErrorIs(t, err, entity.InvalidJobTransitionError)

	reloaded, err := repo.FindById(ctx, job.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.JOB_IN_PROGRESS, reloaded.Status)
}

func TestUpdateStatusNotFound(t *testing.T) {
	db := newTestDB(t)
	repo := NewScheduledJobRepo(db, trmgorm.DefaultCtxGetter)

	_, err := repo.UpdateStatus(context.Background(), 9999, entity.JOB_CANCELLED)

	require.ErrorIs(t, err, JobNotFoundError)
}
