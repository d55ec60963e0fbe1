package models

import "time"

// Attendance statuses.
const (
	AttendanceStatusPresent = "PRESENT"
	AttendanceStatusAbsent  = "ABSENT"
)

// AttendanceDateLayout is the calendar date format used for Attendance.Date.
const AttendanceDateLayout = "2006-01-02"

// Attendance accumulates a student's active minutes for one calendar date.
type Attendance struct {
	ID                 uint       `gorm:"primaryKey" json:"id"`
	StudentID          uint       `gorm:"not null;uniqueIndex:idx_attendances_student_date" json:"student_id"`
	Date               string     `gorm:"size:10;not null;uniqueIndex:idx_attendances_student_date" json:"date"`
	TotalActiveMinutes int        `gorm:"not null;default:0" json:"total_active_minutes"`
	Status             string     `gorm:"size:16;not null;default:ABSENT" json:"status"`
	LastHeartbeatAt    *time.Time `json:"last_heartbeat_at"`
	CreatedAt          time.Time  `json:"created_at"`
	UpdatedAt          time.Time  `json:"updated_at"`
}

// IsPresent reports whether the day counts as attended.
func (a Attendance) IsPresent() bool {
	return a.Status == AttendanceStatusPresent
}
