package tenant

import "gorm.io/gorm"

// Scope membatasi setiap query ke data milik user (tenant) yang sedang login.
func Scope(userID string) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Where("user_id = ?", userID)
	}
}
