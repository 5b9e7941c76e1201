package auth

import (
	"time"

	"github.com/google/uuid"
)

// User adalah pemilik (tenant) dari seluruh data directory miliknya.
type User struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Name      string    `gorm:"type:varchar(255);not null"`
	Email     string    `gorm:"type:varchar(255);uniqueIndex:uq_users_email;not null"`
	Password  string    `gorm:"type:varchar(255);not null"`
	IsActive  bool      `gorm:"default:true"`
	LastLogin *time.Time
	CreatedAt time.Time
	UpdatedAt time.Time
}
