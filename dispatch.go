package dispatch

import (
	"errors"
	"net/http"
)

// Application error codes. Every error that crosses a usecase boundary
// carries one of these so the HTTP layer can map it without inspecting
// messages.
const (
	ECONFLICT    = "conflict"
	EINVALID     = "invalid"
	ENOTFOUND    = "not_found"
	EUNAVAILABLE = "unavailable"
	EINTERNAL    = "internal"
)

const DefaultErrorMessage = "Internal error"

type Error struct {
	// Op is the logical operation, e.g. "usecase.reservation.Create".
	Op string

	// Code is one of the E* constants. Empty code means EINTERNAL.
	Code string

	// Message is safe to show to the caller for non-5xx codes.
	Message string

	// Fields are machine-checkable discriminants rendered alongside
	// the message, e.g. {"fullyBooked": true}.
	Fields map[string]interface{}

	Err error
}

func (e *Error) Error() string {
	if e.Message != "" {
		return e.Message
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	return DefaultErrorMessage
}

func (e *Error) Unwrap() error {
	return e.Err
}

// OpError wraps err, prefixing the operation while keeping the innermost
// code, message and fields visible to the HTTP layer.
func OpError(op string, err error) error {
	if err == nil {
		return nil
	}

	return &Error{
		Op:      op,
		Code:    ErrorCode(err),
		Message: ErrorMessage(err),
		Fields:  ErrorFields(err),
		Err:     err,
	}
}

func ErrorWithCode(err error, code string) error {
	if err == nil {
		return nil
	}

	var appErr *Error
	if errors.As(err, &appErr) {
		appErr.Code = code
		return appErr
	}

	return &Error{Code: code, Message: err.Error(), Err: err}
}

func ErrorCode(err error) string {
	if err == nil {
		return ""
	}

	var appErr *Error
	if errors.As(err, &appErr) && appErr.Code != "" {
		return appErr.Code
	}

	return EINTERNAL
}

func ErrorMessage(err error) string {
	if err == nil {
		return ""
	}

	var appErr *Error
	if errors.As(err, &appErr) && appErr.Message != "" {
		return appErr.Message
	}

	return err.Error()
}

func ErrorFields(err error) map[string]interface{} {
	var appErr *Error
	for errors.As(err, &appErr) {
		if appErr.Fields != nil {
			return appErr.Fields
		}
		if appErr.Err == nil {
			break
		}
		err = appErr.Err
	}

	return nil
}

func ErrCodeToHTTPStatus(e *Error) int {
	switch e.Code {
	case EINVALID:
		return http.StatusBadRequest
	case ENOTFOUND:
		return http.StatusNotFound
	case ECONFLICT:
		return http.StatusConflict
	case EUNAVAILABLE:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}
