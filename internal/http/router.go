package http

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"github.com/moveboard/dispatch/internal/http/controller"
)

type Router struct {
	Controllers Controllers
}

type Controllers struct {
	ReservationController controller.ReservationController
	ProviderController    controller.ProviderController
}

func NewRouter(cs Controllers) *Router {
	return &Router{
		Controllers: cs,
	}
}

func (r Router) SetupRoutes(e *echo.Echo) {

	e.GET("/ping", func(ctx echo.Context) error {
		return ctx.String(http.StatusOK, "pong")
	})

	// reservation methods
	e.POST("/reservations", r.Controllers.ReservationController.Create)
	e.GET("/reservations/:reservation_id", r.Controllers.ReservationController.GetById, middleware.RateLimiterWithConfig(RatelimiterConfig()))
	e.POST("/scheduled-jobs/:job_id/status", r.Controllers.ReservationController.UpdateJobStatus, middleware.RateLimiterWithConfig(RatelimiterConfig()))

	// provider schedule config methods
	e.GET("/providers/:provider_id/availability", r.Controllers.ProviderController.CheckAvailability, middleware.RateLimiterWithConfig(RatelimiterConfig()))
	e.GET("/providers/:provider_id/capacity-rules", r.Controllers.ProviderController.Rules, middleware.RateLimiterWithConfig(RatelimiterConfig()))
	e.PUT("/providers/:provider_id/capacity-rules", r.Controllers.ProviderController.UpsertRules, middleware.RateLimiterWithConfig(RatelimiterConfig()))
	e.POST("/providers/:provider_id/blocks", r.Controllers.ProviderController.BlockDate, middleware.RateLimiterWithConfig(RatelimiterConfig()))
	e.DELETE("/providers/:provider_id/blocks/:date", r.Controllers.ProviderController.UnblockDate, middleware.RateLimiterWithConfig(RatelimiterConfig()))
}

func RatelimiterConfig() middleware.RateLimiterConfig {
	return middleware.RateLimiterConfig{
		Skipper: middleware.DefaultSkipper,
		Store: middleware.NewRateLimiterMemoryStoreWithConfig(
			middleware.RateLimiterMemoryStoreConfig{Rate: 10, Burst: 0, ExpiresIn: time.Second},
		),
		IdentifierExtractor: func(ctx echo.Context) (string, error) {
			id := ctx.RealIP()
			return id, nil
		},
		ErrorHandler: func(context echo.Context, err error) error {
			return context.JSON(http.StatusForbidden, nil)
		},
		DenyHandler: func(context echo.Context, identifier string, err error) error {
			return context.JSON(http.StatusTooManyRequests, nil)
		},
	}
}
