package customfield

import (
	"context"
	"database/sql"

	"github.com/ASARUDHEEN-MP/Employee-managment/internal/tenant"

	"gorm.io/gorm"
)

//go:generate mockgen -source=customfield_repo.go -destination=mock/customfield_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	Create(ctx context.Context, def *CustomFieldDefinition) error
	FindAllByUser(ctx context.Context, userID string) ([]CustomFieldDefinition, error)
	FindByIDAndUser(ctx context.Context, userID string, id string) (*CustomFieldDefinition, error)
	NameExists(ctx context.Context, userID string, fieldName string) (bool, error)
	FieldNamesByUser(ctx context.Context, userID string) ([]string, error)
	Delete(ctx context.Context, userID string, id string) (int64, error)
}

type repository struct {
	db *gorm.DB
	tx *sql.Tx
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *sql.Tx) Repository {
	return &repository{
		db: r.db,
		tx: tx,
	}
}

func (r *repository) Create(ctx context.Context, def *CustomFieldDefinition) error {
	return r.db.WithContext(ctx).Create(def).Error
}

func (r *repository) FindAllByUser(ctx context.Context, userID string) ([]CustomFieldDefinition, error) {
	var defs []CustomFieldDefinition
	err := r.db.WithContext(ctx).
		Scopes(tenant.Scope(userID)).
		Order("created_at ASC").
		Find(&defs).Error
	return defs, err
}

func (r *repository) FindByIDAndUser(ctx context.Context, userID string, id string) (*CustomFieldDefinition, error) {
	var def CustomFieldDefinition
	err := r.db.WithContext(ctx).
		Scopes(tenant.Scope(userID)).
		First(&def, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &def, nil
}

func (r *repository) NameExists(ctx context.Context, userID string, fieldName string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&CustomFieldDefinition{}).
		Scopes(tenant.Scope(userID)).
		Where("field_name = ?", fieldName).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// FieldNamesByUser memenuhi schema.FieldNames.
func (r *repository) FieldNamesByUser(ctx context.Context, userID string) ([]string, error) {
	var names []string
	err := r.db.WithContext(ctx).
		Model(&CustomFieldDefinition{}).
		Scopes(tenant.Scope(userID)).
		Pluck("field_name", &names).Error
	return names, err
}

func (r *repository) Delete(ctx context.Context, userID string, id string) (int64, error) {
	query := `DELETE FROM custom_fields WHERE user_id = $1 AND id = $2`

	if r.tx != nil {
		res, err := r.tx.ExecContext(ctx, query, userID, id)
		if err != nil {
			return 0, err
		}
		return res.RowsAffected()
	}

	res := r.db.WithContext(ctx).
		Scopes(tenant.Scope(userID)).
		Delete(&CustomFieldDefinition{}, "id = ?", id)
	return res.RowsAffected, res.Error
}
