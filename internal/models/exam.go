package models

import (
	"math"
	"strings"
	"time"

	"gorm.io/datatypes"
)

// Exam categories. Any other category is treated like a regular exam.
const (
	ExamCategoryExam = "EXAM"
	ExamCategoryMock = "MOCK"
)

// Exam lifecycle states.
const (
	ExamStatusDraft     = "DRAFT"
	ExamStatusPublished = "PUBLISHED"
	ExamStatusCompleted = "COMPLETED"
)

// Question types understood by the grading engine.
const (
	QuestionTypeMCQ         = "MCQ"
	QuestionTypeDescriptive = "DESCRIPTIVE"
	QuestionTypeCoding      = "CODING"
)

// Exam is an ordered set of questions taken by students within a time window.
type Exam struct {
	ID              uint       `gorm:"primaryKey" json:"id"`
	Title           string     `gorm:"size:255;not null" json:"title"`
	Category        string     `gorm:"size:32;not null;default:EXAM" json:"category"`
	Status          string     `gorm:"size:32;not null;default:DRAFT" json:"status"`
	StartTime       *time.Time `json:"start_time"`
	EndTime         *time.Time `json:"end_time"`
	DurationMinutes int        `gorm:"default:0" json:"duration_minutes"`
	CreatedAt       time.Time  `json:"created_at"`
	UpdatedAt       time.Time  `json:"updated_at"`
	Questions       []Question `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"questions"`
}

// IsMock reports whether the exam belongs to the configured mock category.
func (e Exam) IsMock(mockCategory string) bool {
	return strings.EqualFold(strings.TrimSpace(e.Category), strings.TrimSpace(mockCategory))
}

// TotalMarks sums the marks of every question, applying the default for unset values.
func (e Exam) TotalMarks() float64 {
	var total float64
	for _, question := range e.Questions {
		total += question.Marks()
	}
	return total
}

// HasDescriptive reports whether any question requires manual review.
func (e Exam) HasDescriptive() bool {
	for _, question := range e.Questions {
		if question.Type == QuestionTypeDescriptive {
			return true
		}
	}
	return false
}

// Question belongs to exactly one exam. Key is the identifier answers refer to and is unique
// within the exam; ID is the storage key only.
type Question struct {
	ID            uint                        `gorm:"primaryKey" json:"-"`
	ExamID        uint                        `gorm:"not null;uniqueIndex:idx_exam_questions_exam_key" json:"-"`
	Key           string                      `gorm:"size:64;not null;uniqueIndex:idx_exam_questions_exam_key" json:"id"`
	Position      int                         `gorm:"not null;default:0" json:"position"`
	Type          string                      `gorm:"size:32;not null" json:"type"`
	Text          string                      `gorm:"type:text" json:"text"`
	Options       datatypes.JSONSlice[string] `json:"options,omitempty"`
	CorrectAnswer string                      `gorm:"type:text" json:"-"`
	CodeLanguage  string                      `gorm:"size:32" json:"code_language,omitempty"`
	MaxMarks      *float64                    `json:"max_marks"`
}

// TableName keeps questions namespaced under exams.
func (Question) TableName() string {
	return "exam_questions"
}

// Marks returns the question weight, defaulting to 1 when unset or not a finite number.
func (q Question) Marks() float64 {
	if q.MaxMarks == nil || math.IsNaN(*q.MaxMarks) || math.IsInf(*q.MaxMarks, 0) {
		return 1
	}
	return *q.MaxMarks
}
