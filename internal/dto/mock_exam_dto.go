package dto

import (
	"time"

	"github.com/noah-isme/gema-proficiency-api/internal/models"
)

// MockExamCreateRequest records an instructor-run mock interview.
type MockExamCreateRequest struct {
	StudentID   uint       `json:"student_id" validate:"required"`
	Title       string     `json:"title" validate:"required,max=255"`
	Score       float64    `json:"score" validate:"gte=0"`
	TotalMarks  float64    `json:"total_marks" validate:"required,gt=0"`
	Feedback    string     `json:"feedback" validate:"omitempty,max=5000"`
	ConductedAt *time.Time `json:"conducted_at"`
}

// MockExamResponse is the API representation of a mock exam record.
type MockExamResponse struct {
	ID          uint      `json:"id"`
	StudentID   uint      `json:"student_id"`
	RecordedBy  uint      `json:"recorded_by"`
	Title       string    `json:"title"`
	Score       float64   `json:"score"`
	TotalMarks  float64   `json:"total_marks"`
	Feedback    string    `json:"feedback,omitempty"`
	ConductedAt time.Time `json:"conducted_at"`
}

// NewMockExamResponse maps a mock exam model to its response.
func NewMockExamResponse(mock models.MockExam) MockExamResponse {
	return MockExamResponse{
		ID:          mock.ID,
		StudentID:   mock.StudentID,
		RecordedBy:  mock.RecordedBy,
		Title:       mock.Title,
		Score:       mock.Score,
		TotalMarks:  mock.TotalMarks,
		Feedback:    mock.Feedback,
		ConductedAt: mock.ConductedAt,
	}
}
