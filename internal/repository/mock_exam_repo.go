package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/noah-isme/gema-proficiency-api/internal/models"
)

// MockExamFilter narrows mock exam queries.
type MockExamFilter struct {
	StudentID *uint
}

// MockExamRepository persists instructor-recorded mock exams.
type MockExamRepository interface {
	Create(ctx context.Context, mock *models.MockExam) error
	List(ctx context.Context, filter MockExamFilter) ([]models.MockExam, error)
}

type mockExamRepository struct {
	db *gorm.DB
}

// NewMockExamRepository constructs a mock exam repository.
func NewMockExamRepository(db *gorm.DB) MockExamRepository {
	return &mockExamRepository{db: db}
}

func (r *mockExamRepository) Create(ctx context.Context, mock *models.MockExam) error {
	return r.db.WithContext(ctx).Omit("Student").Create(mock).Error
}

func (r *mockExamRepository) List(ctx context.Context, filter MockExamFilter) ([]models.MockExam, error) {
	query := r.db.WithContext(ctx).Model(&models.MockExam{})
	if filter.StudentID != nil {
		query = query.Where("student_id = ?", *filter.StudentID)
	}

	var mocks []models.MockExam
	if err := query.Order("conducted_at DESC").Order("id DESC").Find(&mocks).Error; err != nil {
		return nil, err
	}

	return mocks, nil
}
