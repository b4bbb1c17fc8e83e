package reserve

import (
	"time"

	"github.com/moveboard/dispatch/internal/entity"
	"github.com/moveboard/dispatch/pkg/address"
)

// requestBreakdown folds the explicit per-field overrides of the request
// into the caller-supplied quote breakdown. Explicit fields always win
// over the breakdown copy; the result is what the quote ledger stores.
func requestBreakdown(in Input) entity.Breakdown {

	b := entity.Breakdown{}
	if in.QuoteBreakdown != nil {
		b = *in.QuoteBreakdown
	}

	o := in.Details

	if len(o.HeavyItems) > 0 {
		b.HeavyItems = o.HeavyItems
	}
	if o.StairsFlights != nil {
		b.StairsFlights = *o.StairsFlights
	}
	if o.PackingHelp != nil {
		b.PackingHelp = *o.PackingHelp
	}
	if o.PackingRooms != nil {
		b.PackingRooms = *o.PackingRooms
	}
	if len(o.PackingMaterials) > 0 {
		b.PackingMaterials = o.PackingMaterials
	}
	if o.DestinationFee != nil {
		b.DestinationFee = *o.DestinationFee
	}
	if o.DoubleDriveTime != nil {
		b.DoubleDriveTime = *o.DoubleDriveTime
	}
	if o.TripDistanceMiles != nil {
		b.TripDistanceMiles = *o.TripDistanceMiles
	}
	if o.TripDistanceDuration != nil {
		b.TripDistanceDuration = *o.TripDistanceDuration
	}
	if len(o.TripDistances) > 0 {
		b.TripDistances = o.TripDistances
	}

	b.Normalize()

	return b
}

// buildServiceDetails assembles the denormalized document stored on the
// booking mirror. Precedence is applied per field, not per source:
// explicit request field > quote breakdown field > zero default.
func buildServiceDetails(in Input, quoteID *uint64, job *entity.ScheduledJob, ref string) map[string]interface{} {

	qb := entity.Breakdown{}
	if in.QuoteBreakdown != nil {
		qb = *in.QuoteBreakdown
	}
	o := in.Details

	heavyItems := qb.HeavyItems
	if len(o.HeavyItems) > 0 {
		heavyItems = o.HeavyItems
	}

	stairs := qb.StairsFlights
	if o.StairsFlights != nil {
		stairs = *o.StairsFlights
	}

	packingHelp := qb.PackingHelp
	if o.PackingHelp != nil {
		packingHelp = *o.PackingHelp
	}

	packingRooms := qb.PackingRooms
	if o.PackingRooms != nil {
		packingRooms = *o.PackingRooms
	}

	packingMaterials := qb.PackingMaterials
	if len(o.PackingMaterials) > 0 {
		packingMaterials = o.PackingMaterials
	}

	destinationFee := qb.DestinationFee
	if o.DestinationFee != nil {
		destinationFee = *o.DestinationFee
	}

	doubleDriveTime := qb.DoubleDriveTime
	if o.DoubleDriveTime != nil {
		doubleDriveTime = *o.DoubleDriveTime
	}

	tripMiles := qb.TripDistanceMiles
	if o.TripDistanceMiles != nil {
		tripMiles = *o.TripDistanceMiles
	}

	tripDuration := qb.TripDistanceDuration
	if o.TripDistanceDuration != nil {
		tripDuration = *o.TripDistanceDuration
	}

	tripDistances := qb.TripDistances
	if len(o.TripDistances) > 0 {
		tripDistances = o.TripDistances
	}

	heavyItemsCost := qb.HeavyItemsCost
	if len(heavyItems) > 0 {
		heavyItemsCost = entity.HeavyItemsTotal(heavyItems)
	}

	pickup := firstOrEmpty(in.PickupAddresses)
	dropoff := firstOrEmpty(in.DeliveryAddresses)
	dropoffParts := address.Parse(dropoff)

	details := map[string]interface{}{
		"reservation_ref":      ref,
		"scheduled_job_id":     job.ID,
		"time_slot":            string(in.Slot),
		"scheduled_start_time": job.StartTime.Format("15:04"),
		"scheduled_end_time":   job.EndTime.Format("15:04"),
		"move_date":            in.MoveDate.Format(time.DateOnly),

		"full_name": in.FullName,
		"email":     in.Email,
		"phone":     in.Phone,

		"pickup_address":  pickup,
		"dropoff_address": dropoff,
		"dropoff_city":    dropoffParts.City,
		"dropoff_state":   dropoffParts.State,
		"dropoff_zip":     dropoffParts.Zip,

		"crew_size": in.TeamSize,

		"heavy_items":            heavyItems,
		"heavy_items_cost":       heavyItemsCost,
		"stairs_flights":         stairs,
		"packing_help":           packingHelp,
		"packing_rooms":          packingRooms,
		"packing_materials":      packingMaterials,
		"destination_fee":        destinationFee,
		"double_drive_time":      doubleDriveTime,
		"trip_distance_miles":    tripMiles,
		"trip_distance_duration": tripDuration,
		"trip_distances":         tripDistances,
	}

	if quoteID != nil {
		details["quote_id"] = *quoteID
	}

	return details
}
