package customfield

import (
	"time"

	"github.com/google/uuid"
)

// CustomFieldDefinition adalah slot bernama+bertipe yang boleh diisi user pada
// employee miliknya. field_type hanya label, tidak pernah divalidasi terhadap
// nilai yang tersimpan.
type CustomFieldDefinition struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	UserID    uuid.UUID `gorm:"type:uuid;not null;index;uniqueIndex:uq_custom_fields_user_field_name"`
	FieldName string    `gorm:"type:varchar(100);not null;uniqueIndex:uq_custom_fields_user_field_name"`
	FieldType string    `gorm:"type:varchar(50);not null"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (CustomFieldDefinition) TableName() string {
	return "custom_fields"
}
