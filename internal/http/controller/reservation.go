package controller

import (
	"math"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/moveboard/dispatch/internal/entity"
	"github.com/moveboard/dispatch/internal/usecase/reservation"
)

type ReservationController struct {
	uc *reservation.ReservationUseCase
}

func NewReservationController(uc *reservation.ReservationUseCase) ReservationController {
	return ReservationController{
		uc: uc,
	}
}

type ScheduledJobDto struct {
	ID             uint64  `json:"scheduled_job_id"`
	ProviderID     uint64  `json:"provider_id"`
	QuoteID        *uint64 `json:"quote_id"`
	ReservationRef string  `json:"reservation_ref"`
	ScheduledDate  string  `json:"scheduled_date"`
	TimeSlot       string  `json:"time_slot"`
	StartTime      string  `json:"scheduled_start_time"`
	EndTime        string  `json:"scheduled_end_time"`
	CrewSize       int32   `json:"crew_size"`
	Status         string  `json:"status"`
}

func scheduledJobDto(job *entity.ScheduledJob) ScheduledJobDto {
	return ScheduledJobDto{
		ID:             job.ID,
		ProviderID:     job.ProviderID,
		QuoteID:        job.QuoteID,
		ReservationRef: job.ReservationRef,
		ScheduledDate:  job.ScheduledDate.Format("2006-01-02"),
		TimeSlot:       string(job.TimeSlot),
		StartTime:      job.StartTime.Format("15:04"),
		EndTime:        job.EndTime.Format("15:04"),
		CrewSize:       job.CrewSize,
		Status:         string(job.Status),
	}
}

// ==========================================
// ========== POST /reservations ============
// ==========================================
type ReservationCreateRequest struct {
	ProviderID *uint64 `json:"providerId"`
	BusinessID *string `json:"businessId"`
	QuoteID    *uint64 `json:"quoteId"`
	CustomerID *string `json:"customerId"`

	MoveDate string `json:"moveDate" validate:"required,iso_date"`
	TimeSlot string `json:"timeSlot" validate:"required,time_slot"`

	FullName          string   `json:"fullName" validate:"required"`
	Email             string   `json:"email" validate:"required,email"`
	Phone             string   `json:"phone"`
	PickupAddresses   []string `json:"pickupAddresses"`
	DeliveryAddresses []string `json:"deliveryAddresses"`
	TeamSize          int32    `json:"teamSize" validate:"min=0"`
	TotalPriceCents   int64    `json:"totalPriceCents" validate:"min=0"`

	HeavyItems           []entity.HeavyItem `json:"heavy_items"`
	StairsFlights        *int32             `json:"stairs_flights"`
	PackingHelp          *bool              `json:"packing_help"`
	PackingRooms         *int32             `json:"packing_rooms"`
	PackingMaterials     []string           `json:"packing_materials"`
	DestinationFee       *float64           `json:"destination_fee"`
	DoubleDriveTime      *bool              `json:"double_drive_time"`
	TripDistanceMiles    *float64           `json:"trip_distance_miles"`
	TripDistanceDuration *string            `json:"trip_distance_duration"`
	TripDistances        []float64          `json:"trip_distances"`

	QuoteBreakdown *entity.Breakdown `json:"quoteBreakdown"`
}

type ReservationCreateResponse struct {
	Success       bool                   `json:"success"`
	ReservationID uint64                 `json:"reservation_id"`
	QuoteID       *uint64                `json:"quote_id"`
	BookingID     *uint64                `json:"booking_id"`
	ScheduledJob  ScheduledJobDto        `json:"scheduled_job"`
	References    map[string]interface{} `json:"references"`
}

func (c *ReservationController) Create(ctx echo.Context) error {

	var req ReservationCreateRequest
	if err := ctx.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err)
	}

	if err := ctx.Validate(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err)
	}

	moveDate, err := time.Parse("2006-01-02", req.MoveDate)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "moveDate must be a YYYY-MM-DD date")
	}

	res, err := c.uc.Create(ctx.Request().Context(), reservation.ReservationToCreateDTO{
		ProviderID:           req.ProviderID,
		BusinessID:           req.BusinessID,
		QuoteID:              req.QuoteID,
		CustomerID:           req.CustomerID,
		MoveDate:             moveDate,
		TimeSlot:             req.TimeSlot,
		FullName:             req.FullName,
		Email:                req.Email,
		Phone:                req.Phone,
		PickupAddresses:      req.PickupAddresses,
		DeliveryAddresses:    req.DeliveryAddresses,
		TeamSize:             req.TeamSize,
		TotalPriceCents:      req.TotalPriceCents,
		HeavyItems:           req.HeavyItems,
		StairsFlights:        req.StairsFlights,
		PackingHelp:          req.PackingHelp,
		PackingRooms:         req.PackingRooms,
		PackingMaterials:     req.PackingMaterials,
		DestinationFee:       req.DestinationFee,
		DoubleDriveTime:      req.DoubleDriveTime,
		TripDistanceMiles:    req.TripDistanceMiles,
		TripDistanceDuration: req.TripDistanceDuration,
		TripDistances:        req.TripDistances,
		QuoteBreakdown:       req.QuoteBreakdown,
	})
	if err != nil {
		return err
	}

	references := map[string]interface{}{
		"reservation_ref":  res.ReservationRef,
		"scheduled_job_id": res.Job.ID,
		"provider_id":      res.Provider.ID,
	}
	if res.QuoteID != nil {
		references["quote_id"] = *res.QuoteID
	}
	if res.BookingID != nil {
		references["booking_id"] = *res.BookingID
	}

	return ctx.JSON(http.StatusOK, ReservationCreateResponse{
		Success:       true,
		ReservationID: res.Job.ID,
		QuoteID:       res.QuoteID,
		BookingID:     res.BookingID,
		ScheduledJob:  scheduledJobDto(res.Job),
		References:    references,
	})
}

// ==========================================

// ============================================================
// ========== GET /reservations/:reservation_id ===============
// ============================================================
type ReservationGetResponse struct {
	ScheduledJob ScheduledJobDto `json:"scheduled_job"`
	Quote        *QuoteDto       `json:"quote"`
}

type QuoteDto struct {
	ID              uint64           `json:"quote_id"`
	ProviderID      uint64           `json:"provider_id"`
	FullName        string           `json:"full_name"`
	Email           string           `json:"email"`
	Phone           string           `json:"phone"`
	PickupAddress   string           `json:"pickup_address"`
	DropoffAddress  string           `json:"dropoff_address"`
	MoveDate        string           `json:"move_date"`
	CrewSize        int32            `json:"crew_size"`
	PriceTotalCents int64            `json:"price_total_cents"`
	Status          string           `json:"status"`
	Breakdown       entity.Breakdown `json:"breakdown"`
}

func (c *ReservationController) GetById(ctx echo.Context) error {

	jobIdParam := ctx.Param("reservation_id")

	jobId, err := strconv.Atoi(jobIdParam)
	if err != nil || jobId <= 0 || jobId > math.MaxInt64 {
		return echo.NewHTTPError(http.StatusBadRequest, ":reservation_id must be valid int64")
	}

	view, err := c.uc.GetById(ctx.Request().Context(), uint64(jobId))
	if err != nil {
		return err
	}

	res := ReservationGetResponse{
		ScheduledJob: scheduledJobDto(view.Job),
	}

	if view.Quote != nil {
		res.Quote = &QuoteDto{
			ID:              view.Quote.ID,
			ProviderID:      view.Quote.ProviderID,
			FullName:        view.Quote.FullName,
			Email:           view.Quote.Email,
			Phone:           view.Quote.Phone,
			PickupAddress:   view.Quote.PickupAddress,
			DropoffAddress:  view.Quote.DropoffAddress,
			MoveDate:        view.Quote.MoveDate.Format("2006-01-02"),
			CrewSize:        view.Quote.CrewSize,
			PriceTotalCents: view.Quote.PriceTotalCents,
			Status:          string(view.Quote.Status),
			Breakdown:       view.Quote.Breakdown,
		}
	}

	return ctx.JSON(http.StatusOK, res)
}

// ============================================================

// =========================================================
// ========== POST /scheduled-jobs/:job_id/status ==========
// =========================================================
type JobStatusUpdateRequest struct {
	Status string `json:"status" validate:"required"`
}

func (c *ReservationController) UpdateJobStatus(ctx echo.Context) error {

	jobIdParam := ctx.Param("job_id")

	jobId, err := strconv.Atoi(jobIdParam)
	if err != nil || jobId <= 0 || jobId > math.MaxInt64 {
		return echo.NewHTTPError(http.StatusBadRequest, ":job_id must be valid int64")
	}

	var req JobStatusUpdateRequest
	if err := ctx.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err)
	}

	if err := ctx.Validate(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err)
	}

	job, err := c.uc.UpdateJobStatus(ctx.Request().Context(), uint64(jobId), req.Status)
	if err != nil {
		return err
	}

	return ctx.JSON(http.StatusOK, scheduledJobDto(job))
}

// =========================================================
