package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/noah-isme/gema-proficiency-api/internal/models"
)

// ExamRepository reads exams together with their questions.
type ExamRepository interface {
	GetByID(ctx context.Context, id uint) (models.Exam, error)
	ListByIDs(ctx context.Context, ids []uint) ([]models.Exam, error)
	Create(ctx context.Context, exam *models.Exam) error
}

type examRepository struct {
	db *gorm.DB
}

// NewExamRepository constructs an exam repository.
func NewExamRepository(db *gorm.DB) ExamRepository {
	return &examRepository{db: db}
}

func (r *examRepository) baseQuery(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).Model(&models.Exam{}).
		Preload("Questions", func(db *gorm.DB) *gorm.DB {
			return db.Order("position ASC").Order("id ASC")
		})
}

func (r *examRepository) GetByID(ctx context.Context, id uint) (models.Exam, error) {
	var exam models.Exam
	if err := r.baseQuery(ctx).First(&exam, id).Error; err != nil {
		return models.Exam{}, err
	}

	return exam, nil
}

func (r *examRepository) ListByIDs(ctx context.Context, ids []uint) ([]models.Exam, error) {
	if len(ids) == 0 {
		return []models.Exam{}, nil
	}

	var exams []models.Exam
	if err := r.baseQuery(ctx).Where("id IN ?", ids).Find(&exams).Error; err != nil {
		return nil, err
	}

	return exams, nil
}

func (r *examRepository) Create(ctx context.Context, exam *models.Exam) error {
	return r.db.WithContext(ctx).Create(exam).Error
}
