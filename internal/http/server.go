package http

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"gopkg.in/go-playground/validator.v9"

	"github.com/moveboard/dispatch"
	"github.com/moveboard/dispatch/config"
	validatations "github.com/moveboard/dispatch/pkg/validations"
)

func NewHttpServer(conf config.AppConfig) *echo.Echo {
	e := echo.New()

	v := validator.New()
	v.RegisterValidation("time_slot", validatations.Time_slot)
	v.RegisterValidation("iso_date", validatations.Iso_date)

	e.Validator = &CustomValidator{Validator: v}
	e.HTTPErrorHandler = HttpErrorHandler

	// setup middlewares
	if conf.Env != "test" {
		e.Use(middleware.RateLimiterWithConfig(RatelimiterConfig()))
	}

	return e
}

// HttpErrorHandler renders application errors as JSON. Failure bodies
// always carry a machine-checkable "code" next to the human message,
// plus any discriminant fields the error brought along (blocked,
// fullyBooked, conflict).
func HttpErrorHandler(err error, c echo.Context) {

	if c.Response().Committed {
		return
	}

	c.Logger().Error(err)

	var appErr *dispatch.Error
	if errors.As(err, &appErr) {
		httpCode := dispatch.ErrCodeToHTTPStatus(appErr)

		body := map[string]interface{}{
			"code": appErr.Code,
		}
		for k, v := range dispatch.ErrorFields(err) {
			body[k] = v
		}

		if httpCode < 500 {
			body["error"] = dispatch.ErrorMessage(err)
		} else {
			body["error"] = dispatch.DefaultErrorMessage
			body["details"] = appErr.Op
		}

		c.JSON(httpCode, body)
		return
	}

	var echoError *echo.HTTPError
	if errors.As(err, &echoError) {
		c.JSON(echoError.Code, map[string]interface{}{
			"code":  dispatch.EINVALID,
			"error": echoError.Message,
		})
		return
	}

	c.JSON(
		http.StatusInternalServerError,
		map[string]interface{}{
			"code":  dispatch.EINTERNAL,
			"error": dispatch.DefaultErrorMessage,
		},
	)
}
