package utils

import (
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate *validator.Validate

var imageURLPattern = regexp.MustCompile(`^https?://`)

func init() {
	validate = validator.New()

	err := validate.RegisterValidation("transport_mode", validateTransportMode)
	if err != nil {
		return
	}
	err = validate.RegisterValidation("phone", validatePhone)
	if err != nil {
		return
	}
	err = validate.RegisterValidation("image_url", validateImageURL)
	if err != nil {
		return
	}
}

func ValidateStruct(s interface{}) error {
	return validate.Struct(s)
}

func validateTransportMode(fl validator.FieldLevel) bool {
	mode := fl.Field().String()
	validModes := []string{"Air Freight", "Ocean Cargo", "Land Transport", "Door to Door"}

	for _, validMode := range validModes {
		if mode == validMode {
			return true
		}
	}
	return false
}

func validatePhone(fl validator.FieldLevel) bool {
	phone := strings.TrimSpace(fl.Field().String())
	re := regexp.MustCompile(`^\+?[0-9 ()\-]{6,20}$`)
	return re.MatchString(phone)
}

func validateImageURL(fl validator.FieldLevel) bool {
	return IsValidImageURL(fl.Field().String())
}

// IsValidImageURL reports whether the string is an absolute http(s) URL.
// Product images are external URLs, never uploads.
func IsValidImageURL(url string) bool {
	return imageURLPattern.MatchString(strings.TrimSpace(url))
}
