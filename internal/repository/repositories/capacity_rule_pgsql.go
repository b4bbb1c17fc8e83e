package repositories

import (
	"context"
	"errors"
	"time"

	trmgorm "github.com/avito-tech/go-transaction-manager/gorm"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/moveboard/dispatch/internal/entity"
)

// @migration
type CapacityRule struct {
	ID            uint64 `gorm:"primaryKey"`
	ProviderID    uint64 `gorm:"not null;uniqueIndex:uniq_capacity_provider_weekday"`
	Weekday       int32  `gorm:"not null;uniqueIndex:uniq_capacity_provider_weekday"`
	MorningJobs   *int64
	AfternoonJobs *int64
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

type CapacityRuleRepo struct {
	gorm   *gorm.DB
	getter *trmgorm.CtxGetter
}

func NewCapacityRuleRepo(grm *gorm.DB, getter *trmgorm.CtxGetter) *CapacityRuleRepo {
	return &CapacityRuleRepo{
		gorm:   grm,
		getter: getter,
	}
}

func (s *CapacityRuleRepo) db(ctx context.Context) *gorm.DB {
	return s.getter.DefaultTrOrDB(ctx, s.gorm).WithContext(ctx)
}

// GetRule returns nil without error when no rule exists for the weekday.
func (s *CapacityRuleRepo) GetRule(ctx context.Context, providerID uint64, weekday int32) (*entity.CapacityRule, error) {

	var rule CapacityRule

	res := s.db(ctx).
		Where("provider_id = ? AND weekday = ?", providerID, weekday).
		Limit(1).
		Find(&rule)
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, nil
	}

	return capacityRuleToEntity(rule), nil
}

// CreateDefault provisions the default rule for a weekday that was never
// configured. Concurrent callers race on the (provider_id, weekday)
// unique index; the loser re-reads instead of failing.
func (s *CapacityRuleRepo) CreateDefault(ctx context.Context, providerID uint64, weekday int32) (*entity.CapacityRule, error) {

	def := entity.DefaultCapacityRule(providerID, weekday)

	row := CapacityRule{
		ProviderID:    def.ProviderID,
		Weekday:       def.Weekday,
		MorningJobs:   def.MorningJobs,
		AfternoonJobs: def.AfternoonJobs,
	}

	err := s.db(ctx).Create(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return s.GetRule(ctx, providerID, weekday)
		}
		return nil, err
	}

	return capacityRuleToEntity(row), nil
}

type CapacityRuleToUpsertDTO struct {
	Weekday       int32
	MorningJobs   *int64
	AfternoonJobs *int64
}

func (s *CapacityRuleRepo) UpsertRule(ctx context.Context, providerID uint64, rule CapacityRuleToUpsertDTO) (*entity.CapacityRule, error) {

	row := CapacityRule{
		ProviderID:    providerID,
		Weekday:       rule.Weekday,
		MorningJobs:   rule.MorningJobs,
		AfternoonJobs: rule.AfternoonJobs,
	}

	err := s.db(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "provider_id"}, {Name: "weekday"}},
			DoUpdates: clause.AssignmentColumns([]string{
				"morning_jobs", "afternoon_jobs", "updated_at",
			}),
		}).
		Create(&row).
		Error
	if err != nil {
		return nil, err
	}

	return s.GetRule(ctx, providerID, rule.Weekday)
}

func (s *CapacityRuleRepo) AllForProvider(ctx context.Context, providerID uint64) (*[]entity.CapacityRule, error) {

	rules := []CapacityRule{}

	err := s.db(ctx).
		Where("provider_id = ?", providerID).
		Order("weekday ASC").
		Find(&rules).
		Error
	if err != nil {
		return nil, err
	}

	res := []entity.CapacityRule{}
	for _, r := range rules {
		res = append(res, *capacityRuleToEntity(r))
	}

	return &res, nil
}

func capacityRuleToEntity(r CapacityRule) *entity.CapacityRule {
	return &entity.CapacityRule{
		ID:            r.ID,
		ProviderID:    r.ProviderID,
		Weekday:       r.Weekday,
		MorningJobs:   r.MorningJobs,
		AfternoonJobs: r.AfternoonJobs,
	}
}
