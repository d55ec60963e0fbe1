package dto

import (
	"time"

	"github.com/noah-isme/gema-proficiency-api/internal/models"
)

// ExamSubmitRequest carries a student's answers keyed by question id.
type ExamSubmitRequest struct {
	Answers map[string]string `json:"answers" validate:"required,dive,keys,required,max=64,endkeys,max=20000"`
}

// ResultOverrideRequest lets staff adjust a result after manual review. At least one field must be set.
type ResultOverrideRequest struct {
	Score    *float64 `json:"score" validate:"omitempty,gte=0"`
	IsGraded *bool    `json:"is_graded"`
	Feedback *string  `json:"feedback" validate:"omitempty,max=5000"`
}

// Empty reports whether the request changes nothing.
func (r ResultOverrideRequest) Empty() bool {
	return r.Score == nil && r.IsGraded == nil && r.Feedback == nil
}

// ExamResultResponse is the API representation of a stored result.
type ExamResultResponse struct {
	ID           uint              `json:"id"`
	ExamID       uint              `json:"exam_id"`
	StudentID    uint              `json:"student_id"`
	Answers      map[string]string `json:"answers"`
	Score        float64           `json:"score"`
	IsGraded     bool              `json:"is_graded"`
	Feedback     string            `json:"feedback,omitempty"`
	SubmittedAt  time.Time         `json:"submitted_at"`
	OverriddenBy *uint             `json:"overridden_by,omitempty"`
	OverriddenAt *time.Time        `json:"overridden_at,omitempty"`
}

// NewExamResultResponse maps a result model to its response.
func NewExamResultResponse(result models.ExamResult) ExamResultResponse {
	return ExamResultResponse{
		ID:           result.ID,
		ExamID:       result.ExamID,
		StudentID:    result.StudentID,
		Answers:      result.AnswerMap(),
		Score:        result.Score,
		IsGraded:     result.IsGraded,
		Feedback:     result.Feedback,
		SubmittedAt:  result.SubmittedAt,
		OverriddenBy: result.OverriddenBy,
		OverriddenAt: result.OverriddenAt,
	}
}
