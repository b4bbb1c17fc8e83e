package repositories

import (
	"context"
	"testing"
	"time"

	trmgorm "github.com/avito-tech/go-transaction-manager/gorm"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/moveboard/dispatch/internal/entity"
	"github.com/moveboard/dispatch/pkg/gorm/types"
)

var quoteDate = time.Date(2026, time.October, 2, 0, 0, 0, 0, time.UTC)

func TestUpsertConfirmedCreatesFreshRow(t *testing.T) {
	db := newTestDB(t)
	repo := NewQuoteRepo(db, trmgorm.DefaultCtxGetter)
	ctx := context.Background()

	providerID := newTestProvider(t, db, nil)

	quote, err := repo.UpsertConfirmed(ctx, QuoteToUpsertDTO{
		ProviderID:      providerID,
		FullName:        "Dana Smith",
		Email:           "dana@example.com",
		PickupAddress:   "1 First St, Oakland, CA 94607",
		MoveDate:        quoteDate,
		CrewSize:        3,
		PriceTotalCents: 45000,
		Breakdown: entity.Breakdown{
			HeavyItems: []entity.HeavyItem{
				{Name: "piano", PriceCents: 15000, Count: 1},
			},
		},
	})
	require.NoError(t, err)

	assert.Equal(t, entity.QUOTE_CONFIRMED, quote.Status)
	assert.Equal(t, float64(150), quote.Breakdown.HeavyItemsCost)
	assert.Equal(t, int64(45000), quote.PriceTotalCents)
}

func TestUpsertConfirmedByExplicitId(t *testing.T) {
	db := newTestDB(t)
	repo := NewQuoteRepo(db, trmgorm.DefaultCtxGetter)
	ctx := context.Background()

	providerID := newTestProvider(t, db, nil)

	draft := Quote{
		ProviderID: providerID,
		FullName:   "Old Name",
		MoveDate:   types.Date(quoteDate),
		Status:     string(entity.QUOTE_DRAFT),
		Breakdown:  []byte(`{"stairs_flights":2,"packing_help":true}`),
	}
	require.NoError(t, db.Create(&draft).Error)

	quote, err := repo.UpsertConfirmed(ctx, QuoteToUpsertDTO{
		ExistingQuoteID: &draft.ID,
		ProviderID:      providerID,
		FullName:        "Dana Smith",
		MoveDate:        quoteDate,
		Breakdown:       entity.Breakdown{StairsFlights: 4},
	})
	require.NoError(t, err)

	require.Equal(t, draft.ID, quote.ID)
	assert.Equal(t, entity.QUOTE_CONFIRMED, quote.Status)
	assert.Equal(t, "Dana Smith", quote.FullName)

	// richer incoming field replaces the stored one, untouched stored
	// fields survive the merge
	assert.Equal(t, int32(4), quote.Breakdown.StairsFlights)
	assert.True(t, quote.Breakdown.PackingHelp)
}

func TestUpsertConfirmedUnknownIdFails(t *testing.T) {
	db := newTestDB(t)
	repo := NewQuoteRepo(db, trmgorm.DefaultCtxGetter)

	missing := uint64(777)
	_, err := repo.UpsertConfirmed(context.Background(), QuoteToUpsertDTO{
		ExistingQuoteID: &missing,
		ProviderID:      1,
		MoveDate:        quoteDate,
	})

	require.ErrorIs(t, err, QuoteNotFoundError)
}

func TestUpsertConfirmedAdoptsLatestDraft(t *testing.T) {
	db := newTestDB(t)
	repo := NewQuoteRepo(db, trmgorm.DefaultCtxGetter)
	ctx := context.Background()

	providerID := newTestProvider(t, db, nil)

	stale := Quote{
		ProviderID: providerID,
		MoveDate:   types.Date(quoteDate),
		Status:     string(entity.QUOTE_DRAFT),
		UpdatedAt:  time.Now().Add(-2 * time.Hour),
	}
	require.NoError(t, db.Create(&stale).Error)

	recent := Quote{
		ProviderID: providerID,
		MoveDate:   types.Date(quoteDate),
		Status:     string(entity.QUOTE_DRAFT),
		UpdatedAt:  time.Now().Add(-time.Minute),
	}
	require.NoError(t, db.Create(&recent).Error)

	quote, err := repo.UpsertConfirmed(ctx, QuoteToUpsertDTO{
		ProviderID: providerID,
		FullName:   "Dana Smith",
		MoveDate:   quoteDate,
	})
	require.NoError(t, err)

	assert.Equal(t, recent.ID, quote.ID)
	assert.Equal(t, entity.QUOTE_CONFIRMED, quote.Status)

	// the stale draft stays a draft
	reloaded, err := repo.FindById(ctx, stale.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.QUOTE_DRAFT, reloaded.Status)
}

func TestUpsertConfirmedIgnoresConfirmedRows(t *testing.T) {
	db := newTestDB(t)
	repo := NewQuoteRepo(db, trmgorm.DefaultCtxGetter)
	ctx := context.Background()

	providerID := newTestProvider(t, db, nil)

	confirmed := Quote{
		ProviderID: providerID,
		MoveDate:   types.Date(quoteDate),
		Status:     string(entity.QUOTE_CONFIRMED),
	}
	require.NoError(t, db.Create(&confirmed).Error)

	quote, err := repo.UpsertConfirmed(ctx, QuoteToUpsertDTO{
		ProviderID: providerID,
		MoveDate:   quoteDate,
	})
	require.NoError(t, err)

	assert.NotEqual(t, confirmed.ID, quote.ID)
}

func TestQuoteFindByIdMissing(t *testing.T) {
	db := newTestDB(t)
	repo := NewQuoteRepo(db, trmgorm.DefaultCtxGetter)

	_, err := repo.FindById(context.Background(), 123)

	require.ErrorIs(t, err, QuoteNotFoundError)
}
