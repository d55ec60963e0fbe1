package models

import "time"

// TaskSubmission is a student's work for a task. File based assignments carry a FileURL,
// coding playground snippets carry Code instead.
type TaskSubmission struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	TaskID    uint      `gorm:"not null;uniqueIndex:idx_task_submissions_task_student" json:"task_id"`
	StudentID uint      `gorm:"not null;uniqueIndex:idx_task_submissions_task_student;index:idx_task_submissions_student" json:"student_id"`
	FileURL   string    `gorm:"size:512" json:"file_url"`
	Code      *string   `gorm:"type:text" json:"code,omitempty"`
	Language  string    `gorm:"size:32" json:"language,omitempty"`
	Grade     *float64  `json:"grade"`
	Feedback  string    `gorm:"type:text" json:"feedback"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// IsCoding reports whether the submission came from the coding playground.
func (s TaskSubmission) IsCoding() bool {
	return s.Code != nil
}
