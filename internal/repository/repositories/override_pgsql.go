package repositories

import (
	"context"
	"time"

	trmgorm "github.com/avito-tech/go-transaction-manager/gorm"
	"gorm.io/gorm"

	"github.com/moveboard/dispatch/internal/entity"
	"github.com/moveboard/dispatch/pkg/gorm/types"
)

// @migration
type AvailabilityOverride struct {
	ID         uint64     `gorm:"primaryKey"`
	ProviderID uint64     `gorm:"not null;uniqueIndex:uniq_override_provider_date_kind"`
	Date       types.Date `gorm:"not null;uniqueIndex:uniq_override_provider_date_kind"`
	Kind       string     `gorm:"not null;uniqueIndex:uniq_override_provider_date_kind"`
	CreatedAt  time.Time
}

type AvailabilityOverrideRepo struct {
	gorm   *gorm.DB
	getter *trmgorm.CtxGetter
}

func NewAvailabilityOverrideRepo(grm *gorm.DB, getter *trmgorm.CtxGetter) *AvailabilityOverrideRepo {
	return &AvailabilityOverrideRepo{
		gorm:   grm,
		getter: getter,
	}
}

func (s *AvailabilityOverrideRepo) db(ctx context.Context) *gorm.DB {
	return s.getter.DefaultTrOrDB(ctx, s.gorm).WithContext(ctx)
}

func (s *AvailabilityOverrideRepo) HasBlock(ctx context.Context, providerID uint64, date time.Time) (bool, error) {

	var count int64

	err := s.db(ctx).
		Model(&AvailabilityOverride{}).
		Where(
			"provider_id = ? AND date = ? AND kind = ?",
			providerID,
			date.Format(types.DateFormat),
			string(entity.OVERRIDE_BLOCK),
		).
		Count(&count).
		Error
	if err != nil {
		return false, err
	}

	return count > 0, nil
}

func (s *AvailabilityOverrideRepo) AddBlock(ctx context.Context, providerID uint64, date time.Time) (*entity.AvailabilityOverride, error) {

	row := AvailabilityOverride{
		ProviderID: providerID,
		Date:       types.Date(date),
		Kind:       string(entity.OVERRIDE_BLOCK),
	}

	err := s.db(ctx).
		Where(AvailabilityOverride{
			ProviderID: providerID,
			Date:       types.Date(date),
			Kind:       string(entity.OVERRIDE_BLOCK),
		}).
		FirstOrCreate(&row).
		Error
	if err != nil {
		return nil, err
	}

	return &entity.AvailabilityOverride{
		ID:         row.ID,
		ProviderID: row.ProviderID,
		Date:       time.Time(row.Date),
		Kind:       entity.OverrideKind(row.Kind),
	}, nil
}

func (s *AvailabilityOverrideRepo) RemoveBlock(ctx context.Context, providerID uint64, date time.Time) error {

	return s.db(ctx).
		Where(
			"provider_id = ? AND date = ? AND kind = ?",
			providerID,
			date.Format(types.DateFormat),
			string(entity.OVERRIDE_BLOCK),
		).
		Delete(&AvailabilityOverride{}).
		Error
}
