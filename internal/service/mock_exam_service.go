package service

import (
	"context"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/microcosm-cc/bluemonday"
	"github.com/rs/zerolog"

	"github.com/noah-isme/gema-proficiency-api/internal/dto"
	"github.com/noah-isme/gema-proficiency-api/internal/models"
	"github.com/noah-isme/gema-proficiency-api/internal/repository"
)

// MockExamService records instructor-run mock interviews. These records are informational and
// do not feed the proficiency average.
type MockExamService interface {
	Record(ctx context.Context, payload dto.MockExamCreateRequest, actor ActivityActor) (dto.MockExamResponse, error)
	List(ctx context.Context, studentID uint) ([]dto.MockExamResponse, error)
}

type mockExamService struct {
	repo      repository.MockExamRepository
	students  repository.StudentRepository
	validator *validator.Validate
	activity  ActivityRecorder
	sanitizer *bluemonday.Policy
	logger    zerolog.Logger
	now       func() time.Time
}

// NewMockExamService constructs the mock exam service.
func NewMockExamService(repo repository.MockExamRepository, students repository.StudentRepository, validator *validator.Validate, activity ActivityRecorder, logger zerolog.Logger) MockExamService {
	return &mockExamService{
		repo:      repo,
		students:  students,
		validator: validator,
		activity:  activity,
		sanitizer: bluemonday.StrictPolicy(),
		logger:    logger.With().Str("component", "mock_exam_service").Logger(),
		now:       time.Now,
	}
}

func (s *mockExamService) Record(ctx context.Context, payload dto.MockExamCreateRequest, actor ActivityActor) (dto.MockExamResponse, error) {
	if err := s.validator.Struct(payload); err != nil {
		return dto.MockExamResponse{}, err
	}
	if payload.Score > payload.TotalMarks {
		return dto.MockExamResponse{}, ErrScoreOutOfRange
	}

	exists, err := s.students.Exists(ctx, payload.StudentID)
	if err != nil {
		return dto.MockExamResponse{}, err
	}
	if !exists {
		return dto.MockExamResponse{}, ErrStudentNotFound
	}

	conductedAt := s.now().UTC()
	if payload.ConductedAt != nil {
		conductedAt = payload.ConductedAt.UTC()
	}

	mock := models.MockExam{
		StudentID:   payload.StudentID,
		RecordedBy:  actor.ID,
		Title:       strings.TrimSpace(s.sanitizer.Sanitize(payload.Title)),
		Score:       payload.Score,
		TotalMarks:  payload.TotalMarks,
		Feedback:    strings.TrimSpace(s.sanitizer.Sanitize(payload.Feedback)),
		ConductedAt: conductedAt,
	}

	if err := s.repo.Create(ctx, &mock); err != nil {
		s.logger.Error().Err(err).Uint("student_id", payload.StudentID).Msg("failed to record mock exam")
		return dto.MockExamResponse{}, err
	}

	if s.activity != nil {
		entityID := mock.ID
		if _, err := s.activity.Record(ctx, ActivityEntry{
			ActorID:    actor.ID,
			ActorRole:  actor.Role,
			Action:     "mock_exam.recorded",
			EntityType: "mock_exam",
			EntityID:   &entityID,
			Metadata: map[string]interface{}{
				"student_id":  mock.StudentID,
				"score":       mock.Score,
				"total_marks": mock.TotalMarks,
			},
		}); err != nil {
			s.logger.Warn().Err(err).Uint("mock_exam_id", mock.ID).Msg("failed to record mock exam activity")
		}
	}

	return dto.NewMockExamResponse(mock), nil
}

// List returns mock exams for one student, or for everyone when studentID is zero.
func (s *mockExamService) List(ctx context.Context, studentID uint) ([]dto.MockExamResponse, error) {
	filter := repository.MockExamFilter{}
	if studentID > 0 {
		filter.StudentID = &studentID
	}

	mocks, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, err
	}

	responses := make([]dto.MockExamResponse, 0, len(mocks))
	for _, mock := range mocks {
		responses = append(responses, dto.NewMockExamResponse(mock))
	}
	return responses, nil
}
