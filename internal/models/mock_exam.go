package models

import "time"

// MockExam is an instructor-recorded mock interview outcome. It is entered manually and is
// separate from online exams in the mock category.
type MockExam struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	StudentID   uint      `gorm:"not null;index" json:"student_id"`
	RecordedBy  uint      `gorm:"not null" json:"recorded_by"`
	Title       string    `gorm:"size:255;not null" json:"title"`
	Score       float64   `gorm:"not null" json:"score"`
	TotalMarks  float64   `gorm:"not null" json:"total_marks"`
	Feedback    string    `gorm:"type:text" json:"feedback"`
	ConductedAt time.Time `json:"conducted_at"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
	Student     Student   `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"-"`
}
