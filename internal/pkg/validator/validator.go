package validator

import (
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/schedly/schedly-api/internal/availability"
)

// Validator instance
var validate *validator.Validate

func init() {
	validate = validator.New()

	// Use JSON tag names in error messages
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	registerCustomValidations()
}

func registerCustomValidations() {
	// Time-slot label must be one of the fixed hourly slots
	validate.RegisterValidation("time_slot", func(fl validator.FieldLevel) bool {
		return availability.ValidSlot(fl.Field().String())
	})

	// Stylist must be on the roster
	validate.RegisterValidation("stylist", func(fl validator.FieldLevel) bool {
		return availability.ValidStylist(fl.Field().String())
	})

	// Booking status enum
	validate.RegisterValidation("booking_status", func(fl validator.FieldLevel) bool {
		switch fl.Field().String() {
		case "pending", "approved", "rejected", "completed":
			return true
		}
		return false
	})
}

// Validate validates a struct and returns a map of field errors
func Validate(s interface{}) map[string]string {
	err := validate.Struct(s)
	if err == nil {
		return nil
	}

	errors := make(map[string]string)
	for _, err := range err.(validator.ValidationErrors) {
		field := err.Field()
		switch err.Tag() {
		case "required":
			errors[field] = "This field is required"
		case "email":
			errors[field] = "Invalid email format"
		case "min":
			errors[field] = "Value is too short (min: " + err.Param() + ")"
		case "max":
			errors[field] = "Value is too long (max: " + err.Param() + ")"
		case "url":
			errors[field] = "Invalid URL format"
		case "time_slot":
			errors[field] = "Invalid time slot"
		case "stylist":
			errors[field] = "Unknown stylist"
		case "booking_status":
			errors[field] = "Invalid status. Must be: pending, approved, rejected, or completed"
		default:
			errors[field] = "Invalid value"
		}
	}

	return errors
}
