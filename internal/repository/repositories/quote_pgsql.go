package repositories

import (
	"context"
	"encoding/json"
	"time"

	trmgorm "github.com/avito-tech/go-transaction-manager/gorm"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/moveboard/dispatch/internal/entity"
	appErrors "github.com/moveboard/dispatch/internal/errors"
	"github.com/moveboard/dispatch/pkg/gorm/types"
)

// @migration
type Quote struct {
	ID              uint64 `gorm:"primaryKey"`
	ProviderID      uint64 `gorm:"not null;index"`
	CustomerID      *string
	FullName        string
	Email           string
	Phone           string
	PickupAddress   string
	DropoffAddress  string
	MoveDate        types.Date `gorm:"not null;index"`
	CrewSize        int32
	PriceTotalCents int64
	Status          string `gorm:"not null;default:'draft'"`
	Breakdown       datatypes.JSON
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

var (
	QuoteNotFoundError = appErrors.NewInternalError(nil, "Quote not found", true)
)

type QuoteRepo struct {
	gorm   *gorm.DB
	getter *trmgorm.CtxGetter
}

func NewQuoteRepo(grm *gorm.DB, getter *trmgorm.CtxGetter) *QuoteRepo {
	return &QuoteRepo{
		gorm:   grm,
		getter: getter,
	}
}

func (s *QuoteRepo) db(ctx context.Context) *gorm.DB {
	return s.getter.DefaultTrOrDB(ctx, s.gorm).WithContext(ctx)
}

type QuoteToUpsertDTO struct {
	ExistingQuoteID *uint64
	ProviderID      uint64
	CustomerID      *string
	FullName        string
	Email           string
	Phone           string
	PickupAddress   string
	DropoffAddress  string
	MoveDate        time.Time
	CrewSize        int32
	PriceTotalCents int64
	Breakdown       entity.Breakdown
}

// UpsertConfirmed persists the quote for a reservation: by explicit id
// when the caller brought one, else onto the most recent draft for the
// same (provider, move date), else as a fresh row. The stored breakdown
// is merged field by field, never blindly overwritten, and the result
// always ends up confirmed.
func (s *QuoteRepo) UpsertConfirmed(ctx context.Context, q QuoteToUpsertDTO) (*entity.Quote, error) {

	var target *Quote

	if q.ExistingQuoteID != nil {
		var row Quote
		res := s.db(ctx).Model(&Quote{}).Limit(1).Find(&row, *q.ExistingQuoteID)
		if res.Error != nil {
			return nil, res.Error
		}
		if res.RowsAffected == 0 {
			return nil, QuoteNotFoundError
		}
		target = &row
	} else {
		var row Quote
		res := s.db(ctx).
			Model(&Quote{}).
			Where(
				"provider_id = ? AND move_date = ? AND status = ?",
				q.ProviderID,
				q.MoveDate.Format(types.DateFormat),
				string(entity.QUOTE_DRAFT),
			).
			Order("updated_at DESC").
			Limit(1).
			Find(&row)
		if res.Error != nil {
			return nil, res.Error
		}
		if res.RowsAffected > 0 {
			target = &row
		}
	}

	breakdown := q.Breakdown

	if target != nil {
		stored, err := unmarshalBreakdown(target.Breakdown)
		if err != nil {
			return nil, err
		}
		breakdown = entity.MergeBreakdown(*stored, q.Breakdown)
	} else {
		breakdown.Normalize()
	}

	raw, err := json.Marshal(breakdown)
	if err != nil {
		return nil, err
	}

	row := Quote{
		ProviderID:      q.ProviderID,
		CustomerID:      q.CustomerID,
		FullName:        q.FullName,
		Email:           q.Email,
		Phone:           q.Phone,
		PickupAddress:   q.PickupAddress,
		DropoffAddress:  q.DropoffAddress,
		MoveDate:        types.Date(q.MoveDate),
		CrewSize:        q.CrewSize,
		PriceTotalCents: q.PriceTotalCents,
		Status:          string(entity.QUOTE_CONFIRMED),
		Breakdown:       datatypes.JSON(raw),
	}

	if target != nil {
		row.ID = target.ID
		row.CreatedAt = target.CreatedAt
		if row.CustomerID == nil {
			row.CustomerID = target.CustomerID
		}
	}

	if err := s.db(ctx).Save(&row).Error; err != nil {
		return nil, err
	}

	return quoteToEntity(row)
}

func (s *QuoteRepo) FindById(ctx context.Context, id uint64) (*entity.Quote, error) {

	var quote Quote

	res := s.db(ctx).Model(&Quote{}).Limit(1).Find(&quote, id)
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, QuoteNotFoundError
	}

	return quoteToEntity(quote)
}

func unmarshalBreakdown(raw datatypes.JSON) (*entity.Breakdown, error) {
	breakdown := entity.Breakdown{}

	if len(raw) == 0 {
		return &breakdown, nil
	}

	if err := json.Unmarshal(raw, &breakdown); err != nil {
		return nil, err
	}

	return &breakdown, nil
}

func quoteToEntity(q Quote) (*entity.Quote, error) {

	breakdown, err := unmarshalBreakdown(q.Breakdown)
	if err != nil {
		return nil, err
	}

	return &entity.Quote{
		ID:              q.ID,
		ProviderID:      q.ProviderID,
		CustomerID:      q.CustomerID,
		FullName:        q.FullName,
		Email:           q.Email,
		Phone:           q.Phone,
		PickupAddress:   q.PickupAddress,
		DropoffAddress:  q.DropoffAddress,
		MoveDate:        time.Time(q.MoveDate),
		CrewSize:        q.CrewSize,
		PriceTotalCents: q.PriceTotalCents,
		Status:          entity.QuoteStatus(q.Status),
		Breakdown:       *breakdown,
		CreatedAt:       q.CreatedAt,
		UpdatedAt:       q.UpdatedAt,
	}, nil
}
