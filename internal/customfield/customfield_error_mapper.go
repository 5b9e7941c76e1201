package customfield

import (
	"database/sql"
	"errors"
	"strings"

	customfielderrors "github.com/ASARUDHEEN-MP/Employee-managment/internal/customfield/errors"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

func mapRepositoryError(err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, gorm.ErrRecordNotFound) || errors.Is(err, sql.ErrNoRows) {
		return customfielderrors.ErrCustomFieldNotFound
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		if pgErr.Code == "23505" && pgErr.ConstraintName == "uq_custom_fields_user_field_name" {
			return customfielderrors.ErrFieldNameAlreadyExists
		}
	}

	errMsg := strings.ToLower(err.Error())
	if strings.Contains(errMsg, "duplicate key value") && strings.Contains(errMsg, "uq_custom_fields_user_field_name") {
		return customfielderrors.ErrFieldNameAlreadyExists
	}

	return err
}
