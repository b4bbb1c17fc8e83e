package validations

import (
	"time"

	"gopkg.in/go-playground/validator.v9"
)

// Time_slot accepts the two bookable slots of a working day.
func Time_slot(fl validator.FieldLevel) bool {
	s, ok := fl.Field().Interface().(string)
	if !ok {
		return false
	}

	return s == "morning" || s == "afternoon"
}

// Iso_date accepts YYYY-MM-DD calendar dates.
func Iso_date(fl validator.FieldLevel) bool {
	s, ok := fl.Field().Interface().(string)
	if !ok {
		return false
	}

	_, err := time.Parse("2006-01-02", s)
	return err == nil
}
