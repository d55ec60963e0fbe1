package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/noah-isme/gema-proficiency-api/internal/models"
)

// TaskSubmissionFilter narrows task submission queries. HasCode selects coding playground
// snippets (true) or file based assignments (false); nil returns both.
type TaskSubmissionFilter struct {
	StudentID *uint
	HasCode   *bool
	Graded    bool
}

// TaskSubmissionRepository reads task and coding playground submissions.
type TaskSubmissionRepository interface {
	List(ctx context.Context, filter TaskSubmissionFilter) ([]models.TaskSubmission, error)
	Count(ctx context.Context, filter TaskSubmissionFilter) (int64, error)
	Create(ctx context.Context, submission *models.TaskSubmission) error
}

type taskSubmissionRepository struct {
	db *gorm.DB
}

// NewTaskSubmissionRepository constructs a task submission repository.
func NewTaskSubmissionRepository(db *gorm.DB) TaskSubmissionRepository {
	return &taskSubmissionRepository{db: db}
}

func (r *taskSubmissionRepository) filtered(ctx context.Context, filter TaskSubmissionFilter) *gorm.DB {
	query := r.db.WithContext(ctx).Model(&models.TaskSubmission{})

	if filter.StudentID != nil {
		query = query.Where("student_id = ?", *filter.StudentID)
	}

	if filter.HasCode != nil {
		if *filter.HasCode {
			query = query.Where("code IS NOT NULL")
		} else {
			query = query.Where("code IS NULL")
		}
	}

	if filter.Graded {
		query = query.Where("grade IS NOT NULL")
	}

	return query
}

func (r *taskSubmissionRepository) List(ctx context.Context, filter TaskSubmissionFilter) ([]models.TaskSubmission, error) {
	var submissions []models.TaskSubmission
	if err := r.filtered(ctx, filter).Order("created_at DESC").Find(&submissions).Error; err != nil {
		return nil, err
	}

	return submissions, nil
}

func (r *taskSubmissionRepository) Count(ctx context.Context, filter TaskSubmissionFilter) (int64, error) {
	var total int64
	if err := r.filtered(ctx, filter).Count(&total).Error; err != nil {
		return 0, err
	}

	return total, nil
}

func (r *taskSubmissionRepository) Create(ctx context.Context, submission *models.TaskSubmission) error {
	return r.db.WithContext(ctx).Create(submission).Error
}
