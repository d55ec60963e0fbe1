package models

import (
	"fmt"
	"time"

	"gorm.io/datatypes"
)

// ExamResult is a student's graded attempt at one exam. The composite unique index on
// (exam_id, student_id) is what guarantees a single submission per student.
type ExamResult struct {
	ID           uint              `gorm:"primaryKey" json:"id"`
	ExamID       uint              `gorm:"not null;uniqueIndex:idx_exam_results_exam_student" json:"exam_id"`
	StudentID    uint              `gorm:"not null;uniqueIndex:idx_exam_results_exam_student;index:idx_exam_results_student" json:"student_id"`
	Answers      datatypes.JSONMap `json:"answers"`
	Score        float64           `gorm:"not null;default:0" json:"score"`
	IsGraded     bool              `gorm:"not null;default:false" json:"is_graded"`
	Feedback     string            `gorm:"type:text" json:"feedback"`
	OverriddenBy *uint             `json:"overridden_by"`
	OverriddenAt *time.Time        `json:"overridden_at"`
	SubmittedAt  time.Time         `gorm:"not null" json:"submitted_at"`
	CreatedAt    time.Time         `json:"created_at"`
	UpdatedAt    time.Time         `json:"updated_at"`
}

// AnswerMap returns the stored answers keyed by question key.
func (r ExamResult) AnswerMap() map[string]string {
	answers := make(map[string]string, len(r.Answers))
	for key, value := range r.Answers {
		switch v := value.(type) {
		case string:
			answers[key] = v
		case nil:
			answers[key] = ""
		default:
			answers[key] = fmt.Sprint(v)
		}
	}
	return answers
}

// NewAnswerMap converts submitted answers into their stored representation.
func NewAnswerMap(answers map[string]string) datatypes.JSONMap {
	stored := make(datatypes.JSONMap, len(answers))
	for key, value := range answers {
		stored[key] = value
	}
	return stored
}
