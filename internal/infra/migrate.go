package infra

import (
	"fmt"

	"gorm.io/gorm"

	dbm "edupanel/internal/models/db_models"
)

func Models() []interface{} {
	return []interface{}{
		&dbm.User{},
		&dbm.Client{},
		&dbm.ClientCourse{},
		&dbm.Course{},
		&dbm.CourseModule{},
		&dbm.Chapter{},
		&dbm.Progress{},
		&dbm.ProgressChapter{},
		&dbm.Payment{},
		&dbm.Setting{},
		&dbm.EmailLog{},
	}
}

func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(Models()...); err != nil {
		return fmt.Errorf("auto migrate: %w", err)
	}
	return nil
}
