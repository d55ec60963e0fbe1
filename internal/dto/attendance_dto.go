package dto

import (
	"time"

	"github.com/noah-isme/gema-proficiency-api/internal/models"
)

// AttendanceHeartbeatRequest reports active minutes since the previous heartbeat.
type AttendanceHeartbeatRequest struct {
	Minutes int `json:"minutes" validate:"required,gte=1,lte=1440"`
}

// AttendanceResponse is one day of attendance.
type AttendanceResponse struct {
	ID                 uint       `json:"id"`
	Date               string     `json:"date"`
	TotalActiveMinutes int        `json:"total_active_minutes"`
	Status             string     `json:"status"`
	LastHeartbeatAt    *time.Time `json:"last_heartbeat_at,omitempty"`
}

// NewAttendanceResponse maps an attendance model to its response.
func NewAttendanceResponse(record models.Attendance) AttendanceResponse {
	return AttendanceResponse{
		ID:                 record.ID,
		Date:               record.Date,
		TotalActiveMinutes: record.TotalActiveMinutes,
		Status:             record.Status,
		LastHeartbeatAt:    record.LastHeartbeatAt,
	}
}
