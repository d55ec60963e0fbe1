package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/noah-isme/gema-proficiency-api/internal/dto"
	"github.com/noah-isme/gema-proficiency-api/internal/models"
	"github.com/noah-isme/gema-proficiency-api/internal/observability"
	"github.com/noah-isme/gema-proficiency-api/internal/repository"
)

// AttendanceConfig tunes the heartbeat accumulator.
type AttendanceConfig struct {
	PresentThresholdMinutes int
	HeartbeatCapMinutes     int
	MinInterval             time.Duration
}

// AttendanceService accumulates active minutes reported by the learning client.
type AttendanceService interface {
	Heartbeat(ctx context.Context, studentID uint, payload dto.AttendanceHeartbeatRequest) (dto.AttendanceResponse, error)
	List(ctx context.Context, studentID uint) ([]dto.AttendanceResponse, error)
}

type attendanceService struct {
	repo      repository.AttendanceRepository
	redis     *redis.Client
	validator *validator.Validate
	cfg       AttendanceConfig
	logger    zerolog.Logger
	now       func() time.Time
}

// NewAttendanceService constructs the attendance service. Without redis heartbeats are not throttled.
func NewAttendanceService(repo repository.AttendanceRepository, redisClient *redis.Client, validator *validator.Validate, cfg AttendanceConfig, logger zerolog.Logger) AttendanceService {
	if cfg.PresentThresholdMinutes <= 0 {
		cfg.PresentThresholdMinutes = 40
	}
	if cfg.HeartbeatCapMinutes <= 0 {
		cfg.HeartbeatCapMinutes = 5
	}

	return &attendanceService{
		repo:      repo,
		redis:     redisClient,
		validator: validator,
		cfg:       cfg,
		logger:    logger.With().Str("component", "attendance_service").Logger(),
		now:       time.Now,
	}
}

func (s *attendanceService) Heartbeat(ctx context.Context, studentID uint, payload dto.AttendanceHeartbeatRequest) (dto.AttendanceResponse, error) {
	if err := s.validator.Struct(payload); err != nil {
		return dto.AttendanceResponse{}, err
	}

	allowed, err := s.acquireSlot(ctx, studentID)
	if err != nil {
		s.logger.Warn().Err(err).Uint("student_id", studentID).Msg("heartbeat throttle unavailable")
	} else if !allowed {
		observability.AttendanceHeartbeats().WithLabelValues("throttled").Inc()
		return dto.AttendanceResponse{}, ErrHeartbeatThrottled
	}

	now := s.now()
	record, err := s.today(ctx, studentID, now.Format(models.AttendanceDateLayout))
	if err != nil {
		observability.AttendanceHeartbeats().WithLabelValues("failed").Inc()
		return dto.AttendanceResponse{}, err
	}

	minutes := payload.Minutes
	if minutes > s.cfg.HeartbeatCapMinutes {
		minutes = s.cfg.HeartbeatCapMinutes
	}

	updated, err := s.repo.AddMinutes(ctx, record.ID, minutes, s.cfg.PresentThresholdMinutes, now.UTC())
	if err != nil {
		observability.AttendanceHeartbeats().WithLabelValues("failed").Inc()
		return dto.AttendanceResponse{}, err
	}

	observability.AttendanceHeartbeats().WithLabelValues("accepted").Inc()
	if !record.IsPresent() && updated.IsPresent() {
		s.logger.Info().Uint("student_id", studentID).Str("date", updated.Date).Msg("student marked present")
	}

	return dto.NewAttendanceResponse(updated), nil
}

func (s *attendanceService) List(ctx context.Context, studentID uint) ([]dto.AttendanceResponse, error) {
	records, err := s.repo.ListByStudent(ctx, studentID)
	if err != nil {
		return nil, err
	}

	responses := make([]dto.AttendanceResponse, 0, len(records))
	for _, record := range records {
		responses = append(responses, dto.NewAttendanceResponse(record))
	}
	return responses, nil
}

// acquireSlot claims the per-student heartbeat window. It reports true when no heartbeat was
// accepted within the minimum interval.
func (s *attendanceService) acquireSlot(ctx context.Context, studentID uint) (bool, error) {
	if s.redis == nil || s.cfg.MinInterval <= 0 {
		return true, nil
	}

	return s.redis.SetNX(ctx, heartbeatKey(studentID), s.now().UTC().Unix(), s.cfg.MinInterval).Result()
}

func (s *attendanceService) today(ctx context.Context, studentID uint, date string) (models.Attendance, error) {
	record, err := s.repo.GetByStudentAndDate(ctx, studentID, date)
	if err == nil {
		return record, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return models.Attendance{}, err
	}

	record = models.Attendance{
		StudentID: studentID,
		Date:      date,
		Status:    models.AttendanceStatusAbsent,
	}
	if err := s.repo.Create(ctx, &record); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return s.repo.GetByStudentAndDate(ctx, studentID, date)
		}
		return models.Attendance{}, err
	}

	return record, nil
}

func heartbeatKey(studentID uint) string {
	return fmt.Sprintf("attendance:heartbeat:%d", studentID)
}
