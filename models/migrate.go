package models

import "gorm.io/gorm"

// All lists every persisted model in dependency order.
func All() []interface{} {
	return []interface{}{&User{}, &Group{}, &Post{}, &Comment{}, &Follow{}}
}

// AutoMigrate creates or updates tables, indexes and constraints for all
// models, then installs the no-self-follow rule for the current dialect.
func AutoMigrate(db *gorm.DB) error {
	if err := db.AutoMigrate(All()...); err != nil {
		return err
	}
	return installNoSelfFollow(db)
}
