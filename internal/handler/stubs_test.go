package handler_test

import (
	"context"

	"github.com/noah-isme/gema-proficiency-api/internal/dto"
	"github.com/noah-isme/gema-proficiency-api/internal/service"
)

type stubExamService struct {
	submitResult   dto.ExamResultResponse
	submitErr      error
	result         dto.ExamResultResponse
	resultErr      error
	overrideResult dto.ExamResultResponse
	overrideErr    error
	submitCalls    int
	lastStudentID  uint
	lastExamID     uint
	lastPayload    dto.ExamSubmitRequest
	lastActor      service.ActivityActor
}

func (s *stubExamService) Submit(_ context.Context, examID, studentID uint, payload dto.ExamSubmitRequest) (dto.ExamResultResponse, error) {
	s.submitCalls++
	s.lastExamID = examID
	s.lastStudentID = studentID
	s.lastPayload = payload
	return s.submitResult, s.submitErr
}

func (s *stubExamService) GetResult(_ context.Context, examID, studentID uint) (dto.ExamResultResponse, error) {
	s.lastExamID = examID
	s.lastStudentID = studentID
	return s.result, s.resultErr
}

func (s *stubExamService) Override(_ context.Context, resultID uint, payload dto.ResultOverrideRequest, actor service.ActivityActor) (dto.ExamResultResponse, error) {
	s.lastActor = actor
	return s.overrideResult, s.overrideErr
}

type stubPerformanceService struct {
	response dto.PerformanceResponse
	err      error
	calls    int
	lastID   uint
}

func (s *stubPerformanceService) Compute(_ context.Context, studentID uint) (dto.PerformanceResponse, error) {
	s.calls++
	s.lastID = studentID
	if s.err != nil {
		return dto.PerformanceResponse{}, s.err
	}
	response := s.response
	response.StudentID = studentID
	return response, nil
}

type stubExporter struct {
	content []byte
	err     error
}

func (s stubExporter) ExportXLSX(context.Context, uint) ([]byte, error) {
	return s.content, s.err
}

type stubAttendanceService struct {
	record  dto.AttendanceResponse
	err     error
	records []dto.AttendanceResponse
}

func (s *stubAttendanceService) Heartbeat(context.Context, uint, dto.AttendanceHeartbeatRequest) (dto.AttendanceResponse, error) {
	return s.record, s.err
}

func (s *stubAttendanceService) List(context.Context, uint) ([]dto.AttendanceResponse, error) {
	return s.records, nil
}

type stubMockExamService struct {
	recorded   dto.MockExamResponse
	err        error
	listedFor  uint
	listCalled bool
}

func (s *stubMockExamService) Record(context.Context, dto.MockExamCreateRequest, service.ActivityActor) (dto.MockExamResponse, error) {
	return s.recorded, s.err
}

func (s *stubMockExamService) List(_ context.Context, studentID uint) ([]dto.MockExamResponse, error) {
	s.listCalled = true
	s.listedFor = studentID
	return []dto.MockExamResponse{}, nil
}

type stubActivityService struct {
	response dto.ActivityListResponse
	err      error
	lastReq  dto.ActivityListRequest
}

func (s *stubActivityService) Record(context.Context, service.ActivityEntry) (dto.ActivityResponse, error) {
	return dto.ActivityResponse{}, nil
}

func (s *stubActivityService) List(_ context.Context, req dto.ActivityListRequest) (dto.ActivityListResponse, error) {
	s.lastReq = req
	return s.response, s.err
}
