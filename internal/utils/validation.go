package utils

import (
	"errors"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate *validator.Validate

func init() {
	validate = validator.New()

	validate.RegisterValidation("phone", validatePhone)
	validate.RegisterValidation("rating", validateRating)
	validate.RegisterValidation("license_plate", validateLicensePlate)
}

func ValidateStruct(s interface{}) error {
	return validate.Struct(s)
}

// FormatValidationErrors flattens validator errors into a field->message
// map suitable for the API error envelope.
func FormatValidationErrors(err error) map[string]string {
	out := make(map[string]string)
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		out["error"] = err.Error()
		return out
	}
	for _, fe := range verrs {
		field := strings.ToLower(fe.Field())
		switch fe.Tag() {
		case "required":
			out[field] = "is required"
		case "email":
			out[field] = "must be a valid email address"
		case "min":
			out[field] = "is too short"
		case "max":
			out[field] = "is too long"
		default:
			out[field] = "is invalid"
		}
	}
	return out
}

func validatePhone(fl validator.FieldLevel) bool {
	return IsValidPhone(fl.Field().String())
}

func validateRating(fl validator.FieldLevel) bool {
	rating := fl.Field().Float()
	return rating >= MinDriverRating && rating <= MaxDriverRating
}

func validateLicensePlate(fl validator.FieldLevel) bool {
	return IsValidLicensePlate(fl.Field().String())
}

var phoneRegex = regexp.MustCompile(`^\+?[0-9][0-9\-\s]{6,14}$`)

func IsValidPhone(phone string) bool {
	return phoneRegex.MatchString(strings.TrimSpace(phone))
}

func IsValidEmail(email string) bool {
	emailRegex := regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)
	return emailRegex.MatchString(email)
}

func IsValidLicensePlate(plate string) bool {
	plateRegex := regexp.MustCompile(`^[A-Z0-9\-\s]{2,10}$`)
	return plateRegex.MatchString(strings.ToUpper(plate))
}
