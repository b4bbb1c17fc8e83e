package repositories

import (
	"context"
	"encoding/json"
	"time"

	trmgorm "github.com/avito-tech/go-transaction-manager/gorm"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/moveboard/dispatch/internal/entity"
	"github.com/moveboard/dispatch/pkg/gorm/types"
)

// @migration
type Booking struct {
	ID              uint64     `gorm:"primaryKey"`
	CustomerID      string     `gorm:"not null;index"`
	BusinessID      string     `gorm:"not null;index"`
	ServiceType     string     `gorm:"not null"`
	BookingStatus   string     `gorm:"not null"`
	RequestedDate   types.Date `gorm:"not null"`
	RequestedTime   string
	TotalPriceCents int64
	ServiceDetails  datatypes.JSON
	CreatedAt       time.Time
}

type BookingRepo struct {
	gorm   *gorm.DB
	getter *trmgorm.CtxGetter
}

func NewBookingRepo(grm *gorm.DB, getter *trmgorm.CtxGetter) *BookingRepo {
	return &BookingRepo{
		gorm:   grm,
		getter: getter,
	}
}

func (s *BookingRepo) db(ctx context.Context) *gorm.DB {
	return s.getter.DefaultTrOrDB(ctx, s.gorm).WithContext(ctx)
}

type BookingToCreateDTO struct {
	CustomerID      string
	BusinessID      string
	RequestedDate   time.Time
	RequestedTime   string
	TotalPriceCents int64
	ServiceDetails  map[string]interface{}
}

func (s *BookingRepo) Create(ctx context.Context, b BookingToCreateDTO) (*entity.Booking, error) {

	raw, err := json.Marshal(b.ServiceDetails)
	if err != nil {
		return nil, err
	}

	row := Booking{
		CustomerID:      b.CustomerID,
		BusinessID:      b.BusinessID,
		ServiceType:     entity.ServiceTypeMoving,
		BookingStatus:   string(entity.BOOKING_CONFIRMED),
		RequestedDate:   types.Date(b.RequestedDate),
		RequestedTime:   b.RequestedTime,
		TotalPriceCents: b.TotalPriceCents,
		ServiceDetails:  datatypes.JSON(raw),
	}

	if err := s.db(ctx).Create(&row).Error; err != nil {
		return nil, err
	}

	return bookingToEntity(row)
}

func bookingToEntity(b Booking) (*entity.Booking, error) {

	details := map[string]interface{}{}
	if len(b.ServiceDetails) > 0 {
		if err := json.Unmarshal(b.ServiceDetails, &details); err != nil {
			return nil, err
		}
	}

	return &entity.Booking{
		ID:              b.ID,
		CustomerID:      b.CustomerID,
		BusinessID:      b.BusinessID,
		ServiceType:     b.ServiceType,
		BookingStatus:   entity.BookingStatus(b.BookingStatus),
		RequestedDate:   time.Time(b.RequestedDate),
		RequestedTime:   b.RequestedTime,
		TotalPriceCents: b.TotalPriceCents,
		ServiceDetails:  details,
		CreatedAt:       b.CreatedAt,
	}, nil
}
