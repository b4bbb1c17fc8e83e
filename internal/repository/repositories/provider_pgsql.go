package repositories

import (
	"context"

	trmgorm "github.com/avito-tech/go-transaction-manager/gorm"
	"gorm.io/gorm"

	"github.com/moveboard/dispatch/internal/entity"
	appErrors "github.com/moveboard/dispatch/internal/errors"
)

// @migration
type Provider struct {
	ID          uint64  `gorm:"primaryKey"`
	BusinessID  *string `gorm:"uniqueIndex"`
	OwnerUserID string  `gorm:"not null"`
	Name        string  `gorm:"not null"`
}

var (
	ProviderNotFoundError = appErrors.NewInternalError(nil, "Provider not found", true)
)

type ProviderRepo struct {
	gorm   *gorm.DB
	getter *trmgorm.CtxGetter
}

func NewProviderRepo(grm *gorm.DB, getter *trmgorm.CtxGetter) *ProviderRepo {
	return &ProviderRepo{
		gorm:   grm,
		getter: getter,
	}
}

func (s *ProviderRepo) db(ctx context.Context) *gorm.DB {
	return s.getter.DefaultTrOrDB(ctx, s.gorm).WithContext(ctx)
}

type ProviderToCreateDTO struct {
	BusinessID  *string
	OwnerUserID string
	Name        string
}

func (s *ProviderRepo) Create(ctx context.Context, p ProviderToCreateDTO) (*entity.Provider, error) {

	row := Provider{
		BusinessID:  p.BusinessID,
		OwnerUserID: p.OwnerUserID,
		Name:        p.Name,
	}

	if err := s.db(ctx).Create(&row).Error; err != nil {
		return nil, err
	}

	return providerToEntity(row), nil
}

func (s *ProviderRepo) FindById(ctx context.Context, id uint64) (*entity.Provider, error) {

	var provider Provider

	res := s.db(ctx).Model(&Provider{}).Limit(1).Find(&provider, id)
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, ProviderNotFoundError
	}

	return providerToEntity(provider), nil
}

func (s *ProviderRepo) FindByBusinessId(ctx context.Context, businessID string) (*entity.Provider, error) {

	var provider Provider

	res := s.db(ctx).Model(&Provider{}).Where("business_id = ?", businessID).Limit(1).Find(&provider)
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, ProviderNotFoundError
	}

	return providerToEntity(provider), nil
}

func providerToEntity(p Provider) *entity.Provider {
	return &entity.Provider{
		ID:          p.ID,
		BusinessID:  p.BusinessID,
		OwnerUserID: p.OwnerUserID,
		Name:        p.Name,
	}
}
