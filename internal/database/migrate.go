package database

import (
	"gorm.io/gorm"

	"github.com/noah-isme/gema-proficiency-api/internal/models"
)

// Migrate creates or updates the tables used by the API.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.Student{},
		&models.Exam{},
		&models.Question{},
		&models.ExamResult{},
		&models.Attendance{},
		&models.TaskSubmission{},
		&models.MockExam{},
		&models.ActivityLog{},
	)
}
