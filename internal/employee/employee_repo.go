package employee

import (
	"context"
	"database/sql"

	"github.com/ASARUDHEEN-MP/Employee-managment/internal/tenant"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

//go:generate mockgen -source=employee_repo.go -destination=mock/employee_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	Create(ctx context.Context, empl *Employee) error
	FindAllByUser(ctx context.Context, userID string) ([]Employee, error)
	FindByIDAndUser(ctx context.Context, userID string, id string) (*Employee, error)
	EmailExists(ctx context.Context, email string, excludeID string) (bool, error)
	Update(ctx context.Context, empl *Employee) error
	Delete(ctx context.Context, userID string, id string) (int64, error)

	// Cascade helpers; meant to run on a transaction obtained via WithTx.
	LockCustomFieldsByUser(ctx context.Context, userID string) ([]EmployeeCustomFields, error)
	UpdateCustomFields(ctx context.Context, id string, fields datatypes.JSONMap) error
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

// querier mengembalikan tx bila ada, kalau tidak koneksi pool di balik gorm.
func (r *repository) querier() (interface {
	ExecContext(context.Context, string, ...any) (sql.Result, error)
	QueryContext(context.Context, string, ...any) (*sql.Rows, error)
}, error) {
	if r.tx != nil {
		return r.tx, nil
	}
	return r.db.DB()
}

func (r *repository) Create(ctx context.Context, empl *Employee) error {
	query := `
        INSERT INTO employees (
            id, user_id, name, email, phone_number, custom_fields, created_at, updated_at
        ) VALUES ($1, $2, $3, $4, $5, $6, NOW(), NOW())
    `

	q, err := r.querier()
	if err != nil {
		return err
	}
	_, err = q.ExecContext(
		ctx, query,
		empl.ID, empl.UserID, empl.Name, empl.Email, empl.PhoneNumber, empl.CustomFields,
	)
	return err
}

func (r *repository) FindAllByUser(ctx context.Context, userID string) ([]Employee, error) {
	var empls []Employee
	err := r.db.WithContext(ctx).
		Scopes(tenant.Scope(userID)).
		Order("created_at ASC").
		Find(&empls).Error
	return empls, err
}

func (r *repository) FindByIDAndUser(ctx context.Context, userID string, id string) (*Employee, error) {
	var empl Employee
	err := r.db.WithContext(ctx).
		Scopes(tenant.Scope(userID)).
		First(&empl, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &empl, nil
}

func (r *repository) EmailExists(ctx context.Context, email string, excludeID string) (bool, error) {
	q := r.db.WithContext(ctx).
		Model(&Employee{}).
		Where("email = ?", email)
	if excludeID != "" {
		q = q.Where("id <> ?", excludeID)
	}

	var count int64
	if err := q.Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *repository) Update(ctx context.Context, empl *Employee) error {
	return r.db.WithContext(ctx).Save(empl).Error
}

func (r *repository) Delete(ctx context.Context, userID string, id string) (int64, error) {
	query := `DELETE FROM employees WHERE user_id = $1 AND id = $2`

	q, err := r.querier()
	if err != nil {
		return 0, err
	}
	res, err := q.ExecContext(ctx, query, userID, id)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

func (r *repository) LockCustomFieldsByUser(ctx context.Context, userID string) ([]EmployeeCustomFields, error) {
	query := `
SELECT id, custom_fields
FROM employees
WHERE user_id = $1
ORDER BY created_at ASC
FOR UPDATE
`

	q, err := r.querier()
	if err != nil {
		return nil, err
	}
	rows, err := q.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []EmployeeCustomFields
	for rows.Next() {
		var row EmployeeCustomFields
		if err := rows.Scan(&row.ID, &row.CustomFields); err != nil {
			return nil, err
		}
		result = append(result, row)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return result, nil
}

func (r *repository) UpdateCustomFields(ctx context.Context, id string, fields datatypes.JSONMap) error {
	query := `UPDATE employees SET custom_fields = $1, updated_at = NOW() WHERE id = $2`

	q, err := r.querier()
	if err != nil {
		return err
	}
	_, err = q.ExecContext(ctx, query, fields, id)
	return err
}
