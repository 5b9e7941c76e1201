package customfielderrors

import (
	"net/http"

	"github.com/ASARUDHEEN-MP/Employee-managment/internal/shared/apperror"
)

var (
	ErrCustomFieldNotFound = apperror.New(
		apperror.CodeNotFound,
		"Custom field not found",
		http.StatusNotFound,
	)
	ErrFieldNameAlreadyExists = apperror.New(
		apperror.CodeConflict,
		"A custom field with this name already exists for this user",
		http.StatusConflict,
	)
	ErrInvalidCustomFieldID = apperror.New(
		apperror.CodeInvalidInput,
		"Invalid custom field ID",
		http.StatusBadRequest,
	)
)
