package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/noah-isme/gema-proficiency-api/internal/models"
)

// ExamResultRepository persists graded exam attempts. Create relies on the
// (exam_id, student_id) unique index and returns gorm.ErrDuplicatedKey on a second insert.
type ExamResultRepository interface {
	GetByID(ctx context.Context, id uint) (models.ExamResult, error)
	GetByExamAndStudent(ctx context.Context, examID, studentID uint) (models.ExamResult, error)
	ListByStudent(ctx context.Context, studentID uint) ([]models.ExamResult, error)
	Create(ctx context.Context, result *models.ExamResult) error
	Update(ctx context.Context, result *models.ExamResult) error
}

type examResultRepository struct {
	db *gorm.DB
}

// NewExamResultRepository constructs an exam result repository.
func NewExamResultRepository(db *gorm.DB) ExamResultRepository {
	return &examResultRepository{db: db}
}

func (r *examResultRepository) GetByID(ctx context.Context, id uint) (models.ExamResult, error) {
	var result models.ExamResult
	if err := r.db.WithContext(ctx).First(&result, id).Error; err != nil {
		return models.ExamResult{}, err
	}

	return result, nil
}

func (r *examResultRepository) GetByExamAndStudent(ctx context.Context, examID, studentID uint) (models.ExamResult, error) {
	var result models.ExamResult
	if err := r.db.WithContext(ctx).
		Where("exam_id = ?", examID).
		Where("student_id = ?", studentID).
		First(&result).Error; err != nil {
		return models.ExamResult{}, err
	}

	return result, nil
}

func (r *examResultRepository) ListByStudent(ctx context.Context, studentID uint) ([]models.ExamResult, error) {
	var results []models.ExamResult
	if err := r.db.WithContext(ctx).
		Where("student_id = ?", studentID).
		Order("submitted_at ASC").
		Order("id ASC").
		Find(&results).Error; err != nil {
		return nil, err
	}

	return results, nil
}

func (r *examResultRepository) Create(ctx context.Context, result *models.ExamResult) error {
	return r.db.WithContext(ctx).Create(result).Error
}

func (r *examResultRepository) Update(ctx context.Context, result *models.ExamResult) error {
	return r.db.WithContext(ctx).Save(result).Error
}
