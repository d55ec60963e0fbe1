package service

import (
	"context"
	"time"

	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/sync/errgroup"

	"github.com/noah-isme/gema-proficiency-api/internal/dto"
	"github.com/noah-isme/gema-proficiency-api/internal/models"
	"github.com/noah-isme/gema-proficiency-api/internal/observability"
	"github.com/noah-isme/gema-proficiency-api/internal/performance"
	"github.com/noah-isme/gema-proficiency-api/internal/repository"
)

// PerformanceService computes student proficiency reports on demand.
type PerformanceService interface {
	Compute(ctx context.Context, studentID uint) (dto.PerformanceResponse, error)
}

type performanceService struct {
	exams        repository.ExamRepository
	results      repository.ExamResultRepository
	attendance   repository.AttendanceRepository
	submissions  repository.TaskSubmissionRepository
	mockCategory string
	tracer       trace.Tracer
	logger       zerolog.Logger
}

// NewPerformanceService constructs the aggregator. Results for exams in mockCategory feed the
// mock sub-score, every other result feeds the exams sub-score.
func NewPerformanceService(
	exams repository.ExamRepository,
	results repository.ExamResultRepository,
	attendance repository.AttendanceRepository,
	submissions repository.TaskSubmissionRepository,
	mockCategory string,
	logger zerolog.Logger,
) PerformanceService {
	if mockCategory == "" {
		mockCategory = models.ExamCategoryMock
	}

	return &performanceService{
		exams:        exams,
		results:      results,
		attendance:   attendance,
		submissions:  submissions,
		mockCategory: mockCategory,
		tracer:       otel.Tracer("github.com/noah-isme/gema-proficiency-api/internal/service/performance"),
		logger:       logger.With().Str("component", "performance_service").Logger(),
	}
}

func (s *performanceService) Compute(ctx context.Context, studentID uint) (dto.PerformanceResponse, error) {
	start := time.Now()
	ctx, span := s.tracer.Start(ctx, "performance.compute")
	span.SetAttributes(attribute.Int64("performance.student_id", int64(studentID)))
	defer func() {
		span.End()
		observability.PerformanceLatency().Observe(time.Since(start).Seconds())
	}()

	inputs, err := s.gather(ctx, studentID)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "gather_failed")
		s.logger.Error().Err(err).Uint("student_id", studentID).Msg("failed to gather performance inputs")
		return dto.PerformanceResponse{}, err
	}

	report := performance.Compute(inputs)
	span.SetAttributes(attribute.Int("performance.average", report.Average))

	return dto.NewPerformanceResponse(studentID, report), nil
}

func (s *performanceService) gather(ctx context.Context, studentID uint) (performance.Inputs, error) {
	var (
		inputs     performance.Inputs
		examScores []performance.ExamScore
		mockScores []performance.ExamScore
	)

	group, groupCtx := errgroup.WithContext(ctx)

	group.Go(func() error {
		var err error
		examScores, mockScores, err = s.examScores(groupCtx, studentID)
		return err
	})

	group.Go(func() error {
		records, err := s.attendance.ListByStudent(groupCtx, studentID)
		if err != nil {
			return err
		}
		inputs.TotalDays = len(records)
		for _, record := range records {
			if record.IsPresent() {
				inputs.PresentDays++
			}
		}
		return nil
	})

	group.Go(func() error {
		withoutCode := false
		submissions, err := s.submissions.List(groupCtx, repository.TaskSubmissionFilter{
			StudentID: &studentID,
			HasCode:   &withoutCode,
			Graded:    true,
		})
		if err != nil {
			return err
		}
		grades := make([]float64, 0, len(submissions))
		for _, submission := range submissions {
			if submission.Grade != nil {
				grades = append(grades, *submission.Grade)
			}
		}
		inputs.TaskGrades = grades
		return nil
	})

	group.Go(func() error {
		withCode := true
		count, err := s.submissions.Count(groupCtx, repository.TaskSubmissionFilter{
			StudentID: &studentID,
			HasCode:   &withCode,
		})
		if err != nil {
			return err
		}
		inputs.CodingSubmissions = int(count)
		return nil
	})

	if err := group.Wait(); err != nil {
		return performance.Inputs{}, err
	}

	inputs.Exams = examScores
	inputs.MockExams = mockScores
	return inputs, nil
}

// examScores loads the student's results and then the exams they reference, splitting them
// into regular and mock scores. Results whose exam no longer exists are skipped.
func (s *performanceService) examScores(ctx context.Context, studentID uint) ([]performance.ExamScore, []performance.ExamScore, error) {
	results, err := s.results.ListByStudent(ctx, studentID)
	if err != nil {
		return nil, nil, err
	}
	if len(results) == 0 {
		return nil, nil, nil
	}

	ids := make([]uint, 0, len(results))
	seen := make(map[uint]struct{}, len(results))
	for _, result := range results {
		if _, ok := seen[result.ExamID]; ok {
			continue
		}
		seen[result.ExamID] = struct{}{}
		ids = append(ids, result.ExamID)
	}

	exams, err := s.exams.ListByIDs(ctx, ids)
	if err != nil {
		return nil, nil, err
	}

	byID := make(map[uint]models.Exam, len(exams))
	for _, exam := range exams {
		byID[exam.ID] = exam
	}

	var regular, mock []performance.ExamScore
	for _, result := range results {
		exam, ok := byID[result.ExamID]
		if !ok {
			s.logger.Debug().Uint("exam_id", result.ExamID).Uint("result_id", result.ID).Msg("skipping result for missing exam")
			continue
		}

		score := performance.ExamScore{
			Title:    exam.Title,
			Obtained: result.Score,
			Total:    exam.TotalMarks(),
		}
		if exam.IsMock(s.mockCategory) {
			mock = append(mock, score)
		} else {
			regular = append(regular, score)
		}
	}

	return regular, mock, nil
}
