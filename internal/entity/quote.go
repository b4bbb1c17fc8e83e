package entity

import "time"

type QuoteStatus string

const (
	QUOTE_DRAFT     QuoteStatus = "draft"
	QUOTE_CONFIRMED QuoteStatus = "confirmed"
)

type Quote struct {
	ID              uint64
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
	Status          QuoteStatus
	Breakdown       Breakdown
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

type HeavyItem struct {
	Name       string `json:"name"`
	PriceCents int64  `json:"price_cents"`
	Count      int64  `json:"count"`
}

// Breakdown is the structured pricing detail attached to a quote.
// It travels as one JSON document; list-valued inputs live inside it
// instead of separate columns.
type Breakdown struct {
	HeavyItems           []HeavyItem `json:"heavy_items,omitempty"`
	HeavyItemsCost       float64     `json:"heavy_items_cost,omitempty"`
	StairsFlights        int32       `json:"stairs_flights,omitempty"`
	PackingHelp          bool        `json:"packing_help,omitempty"`
	PackingRooms         int32       `json:"packing_rooms,omitempty"`
	PackingMaterials     []string    `json:"packing_materials,omitempty"`
	DestinationFee       float64     `json:"destination_fee,omitempty"`
	DoubleDriveTime      bool        `json:"double_drive_time,omitempty"`
	TripDistanceMiles    float64     `json:"trip_distance_miles,omitempty"`
	TripDistanceDuration string      `json:"trip_distance_duration,omitempty"`
	TripDistances        []float64   `json:"trip_distances,omitempty"`
}

// HeavyItemsTotal sums the priced heavy-items list into dollars.
func HeavyItemsTotal(items []HeavyItem) float64 {
	var cents int64
	for _, item := range items {
		count := item.Count
		if count == 0 {
			count = 1
		}
		cents += item.PriceCents * count
	}

	return float64(cents) / 100
}

// Normalize guarantees HeavyItemsCost is a plain dollar amount even when
// the caller only supplied the priced list.
func (b *Breakdown) Normalize() {
	if len(b.HeavyItems) > 0 {
		b.HeavyItemsCost = HeavyItemsTotal(b.HeavyItems)
	}
}

// MergeBreakdown folds incoming into stored field by field. A stored
// value only gives way to a richer incoming one: non-empty lists and
// non-zero scalars win, empty incoming fields leave the stored value
// alone. The result is normalized.
func MergeBreakdown(stored, incoming Breakdown) Breakdown {
	res := stored

	if len(incoming.HeavyItems) > 0 {
		res.HeavyItems = incoming.HeavyItems
	}
	if incoming.HeavyItemsCost > 0 {
		res.HeavyItemsCost = incoming.HeavyItemsCost
	}
	if incoming.StairsFlights > 0 {
		res.StairsFlights = incoming.StairsFlights
	}
	if incoming.PackingHelp {
		res.PackingHelp = true
	}
	if incoming.PackingRooms > 0 {
		res.PackingRooms = incoming.PackingRooms
	}
	if len(incoming.PackingMaterials) > 0 {
		res.PackingMaterials = incoming.PackingMaterials
	}
	if incoming.DestinationFee > 0 {
		res.DestinationFee = incoming.DestinationFee
	}
	if incoming.DoubleDriveTime {
		res.DoubleDriveTime = true
	}
	if incoming.TripDistanceMiles > 0 {
		res.TripDistanceMiles = incoming.TripDistanceMiles
	}
	if incoming.TripDistanceDuration != "" {
		res.TripDistanceDuration = incoming.TripDistanceDuration
	}
	if len(incoming.TripDistances) > 0 {
		res.TripDistances = incoming.TripDistances
	}

	res.Normalize()

	return res
}
