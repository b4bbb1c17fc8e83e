package repositories

import (
	"context"
	"encoding/json"
	"time"

	trmgorm "github.com/avito-tech/go-transaction-manager/gorm"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/moveboard/dispatch/internal/entity"
)

// @migration
type Notification struct {
	ID              uint64 `gorm:"primaryKey"`
	RecipientUserID string `gorm:"not null;index"`
	Kind            string `gorm:"not null"`
	Title           string
	Body            string
	Payload         datatypes.JSON
	ReadAt          *time.Time
	CreatedAt       time.Time
}

type NotificationRepo struct {
	gorm   *gorm.DB
	getter *trmgorm.CtxGetter
}

func NewNotificationRepo(grm *gorm.DB, getter *trmgorm.CtxGetter) *NotificationRepo {
	return &NotificationRepo{
		gorm:   grm,
		getter: getter,
	}
}

func (s *NotificationRepo) db(ctx context.Context) *gorm.DB {
	return s.getter.DefaultTrOrDB(ctx, s.gorm).WithContext(ctx)
}

type NotificationToCreateDTO struct {
	RecipientUserID string
	Kind            string
	Title           string
	Body            string
	Payload         map[string]interface{}
}

func (s *NotificationRepo) Create(ctx context.Context, n NotificationToCreateDTO) (*entity.Notification, error) {

	raw, err := json.Marshal(n.Payload)
	if err != nil {
		return nil, err
	}

	row := Notification{
		RecipientUserID: n.RecipientUserID,
		Kind:            n.Kind,
		Title:           n.Title,
		Body:            n.Body,
		Payload:         datatypes.JSON(raw),
	}

	if err := s.db(ctx).Create(&row).Error; err != nil {
		return nil, err
	}

	return &entity.Notification{
		ID:              row.ID,
		RecipientUserID: row.RecipientUserID,
		Kind:            row.Kind,
		Title:           row.Title,
		Body:            row.Body,
		Payload:         n.Payload,
		ReadAt:          row.ReadAt,
		CreatedAt:       row.CreatedAt,
	}, nil
}
