package service

import (
	"context"
	"errors"
	"math"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/microcosm-cc/bluemonday"
	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"gorm.io/gorm"

	"github.com/noah-isme/gema-proficiency-api/internal/dto"
	"github.com/noah-isme/gema-proficiency-api/internal/events"
	"github.com/noah-isme/gema-proficiency-api/internal/grading"
	"github.com/noah-isme/gema-proficiency-api/internal/middleware"
	"github.com/noah-isme/gema-proficiency-api/internal/models"
	"github.com/noah-isme/gema-proficiency-api/internal/observability"
	"github.com/noah-isme/gema-proficiency-api/internal/repository"
)

// ExamSubmissionService grades submissions and manages the resulting records.
type ExamSubmissionService interface {
	Submit(ctx context.Context, examID, studentID uint, payload dto.ExamSubmitRequest) (dto.ExamResultResponse, error)
	GetResult(ctx context.Context, examID, studentID uint) (dto.ExamResultResponse, error)
	Override(ctx context.Context, resultID uint, payload dto.ResultOverrideRequest, actor ActivityActor) (dto.ExamResultResponse, error)
}

type examSubmissionService struct {
	exams     repository.ExamRepository
	results   repository.ExamResultRepository
	validator *validator.Validate
	activity  ActivityRecorder
	publisher events.Publisher
	sanitizer *bluemonday.Policy
	tracer    trace.Tracer
	logger    zerolog.Logger
	now       func() time.Time
}

// NewExamSubmissionService constructs the submission service. activity and publisher may be nil.
func NewExamSubmissionService(
	exams repository.ExamRepository,
	results repository.ExamResultRepository,
	validator *validator.Validate,
	activity ActivityRecorder,
	publisher events.Publisher,
	logger zerolog.Logger,
) ExamSubmissionService {
	return &examSubmissionService{
		exams:     exams,
		results:   results,
		validator: validator,
		activity:  activity,
		publisher: publisher,
		sanitizer: bluemonday.StrictPolicy(),
		tracer:    otel.Tracer("github.com/noah-isme/gema-proficiency-api/internal/service/exam_submission"),
		logger:    logger.With().Str("component", "exam_submission_service").Logger(),
		now:       time.Now,
	}
}

func (s *examSubmissionService) Submit(ctx context.Context, examID, studentID uint, payload dto.ExamSubmitRequest) (dto.ExamResultResponse, error) {
	ctx, span := s.tracer.Start(ctx, "exam.submit")
	span.SetAttributes(
		attribute.Int64("exam.id", int64(examID)),
		attribute.Int64("exam.student_id", int64(studentID)),
	)
	defer span.End()

	if err := s.validator.Struct(payload); err != nil {
		span.SetStatus(codes.Error, "validation_failed")
		return dto.ExamResultResponse{}, err
	}

	exam, err := s.exams.GetByID(ctx, examID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			span.SetStatus(codes.Error, "exam_not_found")
			return dto.ExamResultResponse{}, ErrExamNotFound
		}
		s.fail(span, err, "exam_lookup_failed")
		observability.ExamSubmissions().WithLabelValues("failed").Inc()
		return dto.ExamResultResponse{}, err
	}

	if err := checkAnswerKeys(exam.Questions, payload.Answers); err != nil {
		span.SetStatus(codes.Error, "invalid_answers")
		return dto.ExamResultResponse{}, err
	}

	// The lookup only spares a grading pass; the unique index decides.
	if _, err := s.results.GetByExamAndStudent(ctx, examID, studentID); err == nil {
		observability.ExamSubmissions().WithLabelValues("duplicate").Inc()
		span.SetStatus(codes.Error, "already_submitted")
		return dto.ExamResultResponse{}, ErrAlreadySubmitted
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		s.fail(span, err, "result_lookup_failed")
		observability.ExamSubmissions().WithLabelValues("failed").Inc()
		return dto.ExamResultResponse{}, err
	}

	outcome := grading.Grade(exam.Questions, payload.Answers)
	result := models.ExamResult{
		ExamID:      examID,
		StudentID:   studentID,
		Answers:     models.NewAnswerMap(payload.Answers),
		Score:       outcome.Score,
		IsGraded:    outcome.IsGraded,
		SubmittedAt: s.now().UTC(),
	}

	if err := s.results.Create(ctx, &result); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			observability.ExamSubmissions().WithLabelValues("duplicate").Inc()
			span.SetStatus(codes.Error, "already_submitted")
			return dto.ExamResultResponse{}, ErrAlreadySubmitted
		}
		s.fail(span, err, "result_create_failed")
		observability.ExamSubmissions().WithLabelValues("failed").Inc()
		return dto.ExamResultResponse{}, err
	}

	outcomeLabel := "graded"
	if !result.IsGraded {
		outcomeLabel = "pending_review"
	}
	observability.ExamSubmissions().WithLabelValues(outcomeLabel).Inc()
	span.SetAttributes(
		attribute.Float64("exam.score", result.Score),
		attribute.Bool("exam.is_graded", result.IsGraded),
	)

	s.logger.Info().
		Uint("exam_id", examID).
		Uint("student_id", studentID).
		Float64("score", result.Score).
		Bool("is_graded", result.IsGraded).
		Msg("exam submitted")

	s.publish(ctx, events.TypeResultSubmitted, result, 0)

	return dto.NewExamResultResponse(result), nil
}

func (s *examSubmissionService) GetResult(ctx context.Context, examID, studentID uint) (dto.ExamResultResponse, error) {
	result, err := s.results.GetByExamAndStudent(ctx, examID, studentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.ExamResultResponse{}, ErrResultNotFound
		}
		return dto.ExamResultResponse{}, err
	}

	return dto.NewExamResultResponse(result), nil
}

func (s *examSubmissionService) Override(ctx context.Context, resultID uint, payload dto.ResultOverrideRequest, actor ActivityActor) (dto.ExamResultResponse, error) {
	ctx, span := s.tracer.Start(ctx, "exam.result.override")
	span.SetAttributes(
		attribute.Int64("exam.result_id", int64(resultID)),
		attribute.Int64("exam.actor_id", int64(actor.ID)),
	)
	defer span.End()

	if err := s.validator.Struct(payload); err != nil {
		span.SetStatus(codes.Error, "validation_failed")
		return dto.ExamResultResponse{}, err
	}
	if payload.Empty() {
		span.SetStatus(codes.Error, "empty_override")
		return dto.ExamResultResponse{}, ErrEmptyOverride
	}

	result, err := s.results.GetByID(ctx, resultID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			span.SetStatus(codes.Error, "result_not_found")
			return dto.ExamResultResponse{}, ErrResultNotFound
		}
		s.fail(span, err, "result_lookup_failed")
		return dto.ExamResultResponse{}, err
	}

	previousScore := result.Score
	previousGraded := result.IsGraded

	if payload.Score != nil {
		exam, err := s.exams.GetByID(ctx, result.ExamID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				span.SetStatus(codes.Error, "exam_not_found")
				return dto.ExamResultResponse{}, ErrExamNotFound
			}
			s.fail(span, err, "exam_lookup_failed")
			return dto.ExamResultResponse{}, err
		}

		score := *payload.Score
		if math.IsNaN(score) || score < 0 || score > exam.TotalMarks()+1e-9 {
			span.SetStatus(codes.Error, "score_out_of_range")
			return dto.ExamResultResponse{}, ErrScoreOutOfRange
		}
		result.Score = score
	}
	if payload.IsGraded != nil {
		result.IsGraded = *payload.IsGraded
	}
	if payload.Feedback != nil {
		result.Feedback = strings.TrimSpace(s.sanitizer.Sanitize(*payload.Feedback))
	}

	overriddenAt := s.now().UTC()
	overriddenBy := actor.ID
	result.OverriddenAt = &overriddenAt
	result.OverriddenBy = &overriddenBy

	if err := s.results.Update(ctx, &result); err != nil {
		s.fail(span, err, "result_update_failed")
		return dto.ExamResultResponse{}, err
	}

	if s.activity != nil {
		entityID := result.ID
		if _, err := s.activity.Record(ctx, ActivityEntry{
			ActorID:    actor.ID,
			ActorRole:  actor.Role,
			Action:     "result.overridden",
			EntityType: "exam_result",
			EntityID:   &entityID,
			Metadata: map[string]interface{}{
				"exam_id":         result.ExamID,
				"student_id":      result.StudentID,
				"previous_score":  previousScore,
				"score":           result.Score,
				"previous_graded": previousGraded,
				"is_graded":       result.IsGraded,
			},
		}); err != nil {
			s.logger.Warn().Err(err).Uint("result_id", result.ID).Msg("failed to record override activity")
		}
	}

	s.logger.Info().
		Uint("result_id", result.ID).
		Uint("actor_id", actor.ID).
		Float64("score", result.Score).
		Bool("is_graded", result.IsGraded).
		Msg("result overridden")

	s.publish(ctx, events.TypeResultOverridden, result, actor.ID)

	return dto.NewExamResultResponse(result), nil
}

func (s *examSubmissionService) publish(ctx context.Context, eventType string, result models.ExamResult, actorID uint) {
	if s.publisher == nil {
		return
	}

	payload := events.ResultPayload{
		ResultID:  result.ID,
		ExamID:    result.ExamID,
		StudentID: result.StudentID,
		Score:     result.Score,
		IsGraded:  result.IsGraded,
		ActorID:   actorID,
	}
	if err := s.publisher.Publish(ctx, eventType, middleware.CorrelationIDFromContext(ctx), payload); err != nil {
		s.logger.Warn().Err(err).Str("event", eventType).Uint("result_id", result.ID).Msg("failed to publish result event")
	}
}

func (s *examSubmissionService) fail(span trace.Span, err error, status string) {
	span.RecordError(err)
	span.SetStatus(codes.Error, status)
}

func checkAnswerKeys(questions []models.Question, answers map[string]string) error {
	known := make(map[string]struct{}, len(questions))
	for _, question := range questions {
		known[question.Key] = struct{}{}
	}
	for key := range answers {
		if _, ok := known[key]; !ok {
			return ErrInvalidAnswers
		}
	}
	return nil
}
