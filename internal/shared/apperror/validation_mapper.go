package apperror

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/go-playground/validator/v10"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

func formatFieldName(s string) string {
	// phone_number -> Phone Number
	s = strings.ReplaceAll(s, "_", " ")
	caser := cases.Title(language.English)
	return caser.String(s)
}

// MapValidationError flattens binding failures into one AppError whose Details
// lists every failing field, not just the first one.
func MapValidationError(err error) error {
	errs, ok := err.(validator.ValidationErrors)
	if !ok {
		return New(
			CodeInvalidInput,
			"Invalid input",
			http.StatusBadRequest,
		)
	}

	details := make([]string, 0, len(errs))
	for _, e := range errs {
		// e.Field() sudah berupa nama json berkat RegisterTagNameFunc di Init()
		field := formatFieldName(e.Field())
		switch e.Tag() {
		case "required":
			details = append(details, fmt.Sprintf("%s is required", field))
		case "email":
			details = append(details, fmt.Sprintf("%s must be a valid email address", field))
		default:
			details = append(details, fmt.Sprintf("%s is invalid", field))
		}
	}

	return ErrInvalidInput.WithDetails(details)
}
