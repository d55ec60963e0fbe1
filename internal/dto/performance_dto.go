package dto

import "github.com/noah-isme/gema-proficiency-api/internal/performance"

// PerformanceBreakdown lists the five weighted sub-scores.
type PerformanceBreakdown struct {
	Attendance int `json:"attendance"`
	Exams      int `json:"exams"`
	Tasks      int `json:"tasks"`
	Coding     int `json:"coding"`
	Mock       int `json:"mock"`
}

// PerformanceSubject is one exam subject bucket.
type PerformanceSubject struct {
	ID    string `json:"id"`
	Label string `json:"label"`
	Score int    `json:"score"`
	Color string `json:"color"`
}

// PerformanceWeakest names the lowest scoring subject.
type PerformanceWeakest struct {
	Label string `json:"label"`
	Score int    `json:"score"`
}

// PerformanceResponse is the student proficiency report.
type PerformanceResponse struct {
	StudentID uint                 `json:"student_id"`
	Average   int                  `json:"average"`
	Breakdown PerformanceBreakdown `json:"breakdown"`
	Subjects  []PerformanceSubject `json:"subjects"`
	Weakest   PerformanceWeakest   `json:"weakest"`
}

// NewPerformanceResponse maps a computed report to its response.
func NewPerformanceResponse(studentID uint, report performance.Report) PerformanceResponse {
	subjects := make([]PerformanceSubject, 0, len(report.Subjects))
	for _, subject := range report.Subjects {
		subjects = append(subjects, PerformanceSubject{
			ID:    subject.ID,
			Label: subject.Label,
			Score: subject.Score,
			Color: subject.Color,
		})
	}

	return PerformanceResponse{
		StudentID: studentID,
		Average:   report.Average,
		Breakdown: PerformanceBreakdown{
			Attendance: report.Breakdown.Attendance,
			Exams:      report.Breakdown.Exams,
			Tasks:      report.Breakdown.Tasks,
			Coding:     report.Breakdown.Coding,
			Mock:       report.Breakdown.Mock,
		},
		Subjects: subjects,
		Weakest: PerformanceWeakest{
			Label: report.Weakest.Label,
			Score: report.Weakest.Score,
		},
	}
}
