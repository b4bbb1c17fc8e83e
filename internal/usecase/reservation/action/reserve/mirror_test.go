package reserve

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/moveboard/dispatch/internal/entity"
)

func sampleInput() Input {
	stairs := int32(3)
	fee := 75.0

	return Input{
		MoveDate:          time.Date(2026, time.September, 16, 0, 0, 0, 0, time.UTC),
		Slot:              entity.MORNING,
		FullName:          "Dana Smith",
		Email:             "dana@example.com",
		Phone:             "+1 415 555 0100",
		PickupAddresses:   []string{"1 First St, Oakland, CA 94607"},
		DeliveryAddresses: []string{"22 Elm St, San Jose, CA 95112"},
		TeamSize:          3,
		Details: DetailOverrides{
			StairsFlights:  &stairs,
			DestinationFee: &fee,
		},
		QuoteBreakdown: &entity.Breakdown{
			HeavyItems: []entity.HeavyItem{
				{Name: "piano", PriceCents: 15000, Count: 1},
			},
			StairsFlights:     1,
			TripDistanceMiles: 42.5,
		},
	}
}

func TestRequestBreakdownExplicitFieldsWin(t *testing.T) {
	b := requestBreakdown(sampleInput())

	// request override beats the breakdown copy
	assert.Equal(t, int32(3), b.StairsFlights)
	assert.Equal(t, 75.0, b.DestinationFee)

	// fields only present in the breakdown survive
	assert.Equal(t, 42.5, b.TripDistanceMiles)
	require.Len(t, b.HeavyItems, 1)
	assert.Equal(t, float64(150), b.HeavyItemsCost)
}

func TestRequestBreakdownWithoutQuoteBreakdown(t *testing.T) {
	in := sampleInput()
	in.QuoteBreakdown = nil

	b := requestBreakdown(in)

	assert.Equal(t, int32(3), b.StairsFlights)
	assert.Zero(t, b.TripDistanceMiles)
	assert.Empty(t, b.HeavyItems)
}

func TestBuildServiceDetails(t *testing.T) {
	in := sampleInput()
	quoteID := uint64(11)

	job := &entity.ScheduledJob{
		ID:        7,
		StartTime: time.Date(0, time.January, 1, 8, 0, 0, 0, time.UTC),
		EndTime:   time.Date(0, time.January, 1, 12, 0, 0, 0, time.UTC),
	}

	details := buildServiceDetails(in, &quoteID, job, "ref-123")

	assert.Equal(t, "ref-123", details["reservation_ref"])
	assert.Equal(t, uint64(7), details["scheduled_job_id"])
	assert.Equal(t, uint64(11), details["quote_id"])
	assert.Equal(t, "morning", details["time_slot"])
	assert.Equal(t, "08:00", details["scheduled_start_time"])
	assert.Equal(t, "2026-09-16", details["move_date"])

	assert.Equal(t, "22 Elm St, San Jose, CA 95112", details["dropoff_address"])
	assert.Equal(t, "San Jose", details["dropoff_city"])
	assert.Equal(t, "CA", details["dropoff_state"])
	assert.Equal(t, "95112", details["dropoff_zip"])

	// per-field precedence: explicit request > breakdown
	assert.Equal(t, int32(3), details["stairs_flights"])
	assert.Equal(t, 75.0, details["destination_fee"])
	assert.Equal(t, 42.5, details["trip_distance_miles"])
	assert.Equal(t, float64(150), details["heavy_items_cost"])
}

func TestBuildServiceDetailsSkipsMissingQuote(t *testing.T) {
	in := sampleInput()
	job := &entity.ScheduledJob{ID: 7}

	details := buildServiceDetails(in, nil, job, "ref-123")

	_, present := details["quote_id"]
	assert.False(t, present)
}
