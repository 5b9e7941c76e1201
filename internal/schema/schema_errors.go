package schema

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/ASARUDHEEN-MP/Employee-managment/internal/shared/apperror"
)

var ErrInvalidCustomFields = apperror.New(
	apperror.CodeInvalidInput,
	"Invalid custom fields",
	http.StatusBadRequest,
)

// NewInvalidFieldsError enumerates every offending key in the message and
// carries the list as structured details. errors.Is against
// ErrInvalidCustomFields keeps working.
func NewInvalidFieldsError(fields []string) *apperror.AppError {
	return ErrInvalidCustomFields.
		WithMessage(fmt.Sprintf("Invalid custom fields: %s", strings.Join(fields, ", "))).
		WithDetails(fields)
}
