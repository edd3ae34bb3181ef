package model

import (
	"gorm.io/gorm"
)

func AutoMigrate(db *gorm.DB, key string) error {
	switch key {

	case "Project":
		return db.AutoMigrate(Project{})

	case "User":
		return db.AutoMigrate(User{})

	case "Template":
		return db.AutoMigrate(Template{})
	}
	return nil
}
