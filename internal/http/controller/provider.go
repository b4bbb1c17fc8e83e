package controller

import (
	"math"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/moveboard/dispatch/internal/entity"
	"github.com/moveboard/dispatch/internal/usecase/availability"
)

type ProviderController struct {
	uc *availability.AvailabilityUseCase
}

func NewProviderController(uc *availability.AvailabilityUseCase) ProviderController {
	return ProviderController{
		uc: uc,
	}
}

func providerIdParam(ctx echo.Context) (uint64, error) {
	raw := ctx.Param("provider_id")

	id, err := strconv.Atoi(raw)
	if err != nil || id <= 0 || id > math.MaxInt64 {
		return 0, echo.NewHTTPError(http.StatusBadRequest, ":provider_id must be valid int64")
	}

	return uint64(id), nil
}

type CapacityRuleDto struct {
	Weekday       int32  `json:"weekday"`
	MorningJobs   *int64 `json:"morning_jobs"`
	AfternoonJobs *int64 `json:"afternoon_jobs"`
}

func capacityRuleDto(rule entity.CapacityRule) CapacityRuleDto {
	return CapacityRuleDto{
		Weekday:       rule.Weekday,
		MorningJobs:   rule.MorningJobs,
		AfternoonJobs: rule.AfternoonJobs,
	}
}

// ==============================================================
// ========== GET /providers/:provider_id/availability ==========
// ==============================================================
type AvailabilityResponse struct {
	Available bool   `json:"available"`
	Blocked   bool   `json:"blocked,omitempty"`
	Reason    string `json:"reason,omitempty"`
	Booked    int64  `json:"booked"`
	MaxJobs   *int64 `json:"max_jobs"`
}

func (c *ProviderController) CheckAvailability(ctx echo.Context) error {

	providerId, err := providerIdParam(ctx)
	if err != nil {
		return err
	}

	date, err := time.Parse("2006-01-02", ctx.QueryParam("date"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "date must be a YYYY-MM-DD date")
	}

	slot := ctx.QueryParam("slot")
	if !entity.IsValidTimeSlot(slot) {
		return echo.NewHTTPError(http.StatusBadRequest, "slot must be one of: morning, afternoon")
	}

	res, err := c.uc.Check(ctx.Request().Context(), providerId, date, entity.TimeSlot(slot))
	if err != nil {
		return err
	}

	return ctx.JSON(http.StatusOK, AvailabilityResponse{
		Available: res.Available,
		Blocked:   res.Blocked,
		Reason:    res.Reason,
		Booked:    res.Booked,
		MaxJobs:   res.MaxJobs,
	})
}

// ==============================================================

// ================================================================
// ========== GET /providers/:provider_id/capacity-rules ==========
// ================================================================
func (c *ProviderController) Rules(ctx echo.Context) error {

	providerId, err := providerIdParam(ctx)
	if err != nil {
		return err
	}

	rules, err := c.uc.Rules(ctx.Request().Context(), providerId)
	if err != nil {
		return err
	}

	res := []CapacityRuleDto{}
	for _, rule := range *rules {
		res = append(res, capacityRuleDto(rule))
	}

	return ctx.JSON(http.StatusOK, map[string]interface{}{"rules": res})
}

// ================================================================

// ================================================================
// ========== PUT /providers/:provider_id/capacity-rules ==========
// ================================================================
type CapacityRulesUpsertRequest struct {
	Rules []CapacityRuleDto `json:"rules" validate:"required,min=1"`
}

func (c *ProviderController) UpsertRules(ctx echo.Context) error {

	providerId, err := providerIdParam(ctx)
	if err != nil {
		return err
	}

	var req CapacityRulesUpsertRequest
	if err := ctx.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err)
	}

	if err := ctx.Validate(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err)
	}

	toUpsert := []availability.CapacityRuleDTO{}
	for _, r := range req.Rules {
		toUpsert = append(toUpsert, availability.CapacityRuleDTO{
			Weekday:       r.Weekday,
			MorningJobs:   r.MorningJobs,
			AfternoonJobs: r.AfternoonJobs,
		})
	}

	saved, err := c.uc.UpsertRules(ctx.Request().Context(), providerId, toUpsert)
	if err != nil {
		return err
	}

	res := []CapacityRuleDto{}
	for _, rule := range *saved {
		res = append(res, capacityRuleDto(rule))
	}

	return ctx.JSON(http.StatusOK, map[string]interface{}{"rules": res})
}

// ================================================================

// ========================================================
// ========== POST /providers/:provider_id/blocks =========
// ========================================================
type BlockDateRequest struct {
	Date string `json:"date" validate:"required,iso_date"`
}

func (c *ProviderController) BlockDate(ctx echo.Context) error {

	providerId, err := providerIdParam(ctx)
	if err != nil {
		return err
	}

	var req BlockDateRequest
	if err := ctx.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err)
	}

	if err := ctx.Validate(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err)
	}

	date, err := time.Parse("2006-01-02", req.Date)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "date must be a YYYY-MM-DD date")
	}

	override, err := c.uc.BlockDate(ctx.Request().Context(), providerId, date)
	if err != nil {
		return err
	}

	return ctx.JSON(http.StatusOK, map[string]interface{}{
		"provider_id": override.ProviderID,
		"date":        override.Date.Format("2006-01-02"),
		"kind":        string(override.Kind),
	})
}

// ========================================================

// ================================================================
// ========== DELETE /providers/:provider_id/blocks/:date =========
// ================================================================
func (c *ProviderController) UnblockDate(ctx echo.Context) error {

	providerId, err := providerIdParam(ctx)
	if err != nil {
		return err
	}

	date, err := time.Parse("2006-01-02", ctx.Param("date"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, ":date must be a YYYY-MM-DD date")
	}

	if err := c.uc.UnblockDate(ctx.Request().Context(), providerId, date); err != nil {
		return err
	}

	return ctx.NoContent(http.StatusNoContent)
}

// ================================================================
