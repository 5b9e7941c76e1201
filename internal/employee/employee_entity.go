package employee

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type Employee struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey"`
	UserID      uuid.UUID `gorm:"type:uuid;not null;index"`
	Name        string    `gorm:"type:varchar(100);not null"`
	Email       string    `gorm:"type:varchar(255);not null;uniqueIndex:uq_employees_email"`
	PhoneNumber string    `gorm:"type:varchar(15);not null"`
	// Kantong atribut bebas; key harus cocok dengan field_name milik user yang sama.
	CustomFields datatypes.JSONMap `gorm:"type:jsonb;not null;default:'{}'"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// EmployeeCustomFields is the projection the cascading field-definition delete
// locks and rewrites; nothing else on the row is touched.
type EmployeeCustomFields struct {
	ID           uuid.UUID
	CustomFields datatypes.JSONMap
}
