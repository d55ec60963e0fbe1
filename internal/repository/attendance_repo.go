package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/noah-isme/gema-proficiency-api/internal/models"
)

// AttendanceRepository stores daily attendance accumulators.
type AttendanceRepository interface {
	ListByStudent(ctx context.Context, studentID uint) ([]models.Attendance, error)
	GetByStudentAndDate(ctx context.Context, studentID uint, date string) (models.Attendance, error)
	Create(ctx context.Context, attendance *models.Attendance) error
	AddMinutes(ctx context.Context, id uint, minutes, threshold int, at time.Time) (models.Attendance, error)
}

type attendanceRepository struct {
	db *gorm.DB
}

// NewAttendanceRepository constructs an attendance repository.
func NewAttendanceRepository(db *gorm.DB) AttendanceRepository {
	return &attendanceRepository{db: db}
}

func (r *attendanceRepository) ListByStudent(ctx context.Context, studentID uint) ([]models.Attendance, error) {
	var records []models.Attendance
	if err := r.db.WithContext(ctx).
		Where("student_id = ?", studentID).
		Order("date DESC").
		Find(&records).Error; err != nil {
		return nil, err
	}

	return records, nil
}

func (r *attendanceRepository) GetByStudentAndDate(ctx context.Context, studentID uint, date string) (models.Attendance, error) {
	var record models.Attendance
	if err := r.db.WithContext(ctx).
		Where("student_id = ?", studentID).
		Where("date = ?", date).
		First(&record).Error; err != nil {
		return models.Attendance{}, err
	}

	return record, nil
}

func (r *attendanceRepository) Create(ctx context.Context, attendance *models.Attendance) error {
	return r.db.WithContext(ctx).Create(attendance).Error
}

// AddMinutes increments the accumulator in a single statement so concurrent heartbeats never
// lose minutes. The status only ever moves to present.
func (r *attendanceRepository) AddMinutes(ctx context.Context, id uint, minutes, threshold int, at time.Time) (models.Attendance, error) {
	err := r.db.WithContext(ctx).
		Model(&models.Attendance{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"total_active_minutes": gorm.Expr("total_active_minutes + ?", minutes),
			"status":               gorm.Expr("CASE WHEN total_active_minutes + ? >= ? THEN ? ELSE status END", minutes, threshold, models.AttendanceStatusPresent),
			"last_heartbeat_at":    at,
		}).Error
	if err != nil {
		return models.Attendance{}, err
	}

	var record models.Attendance
	if err := r.db.WithContext(ctx).First(&record, id).Error; err != nil {
		return models.Attendance{}, err
	}

	return record, nil
}
