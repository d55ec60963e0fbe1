package service

import "errors"

var (
	// ErrExamNotFound indicates the exam does not exist.
	ErrExamNotFound = errors.New("exam not found")
	// ErrAlreadySubmitted indicates the student already holds a result for the exam.
	ErrAlreadySubmitted = errors.New("exam already submitted")
	// ErrResultNotFound indicates the result does not exist.
	ErrResultNotFound = errors.New("result not found")
	// ErrForbidden indicates the caller may not act on the resource.
	ErrForbidden = errors.New("forbidden")
	// ErrStudentNotFound indicates the referenced student does not exist.
	ErrStudentNotFound = errors.New("student not found")
	// ErrInvalidAnswers indicates a submission referenced questions the exam does not contain.
	ErrInvalidAnswers = errors.New("answers reference unknown questions")
	// ErrHeartbeatThrottled indicates a heartbeat arrived before the minimum interval elapsed.
	ErrHeartbeatThrottled = errors.New("heartbeat throttled")
	// ErrScoreOutOfRange indicates a score outside [0, total marks].
	ErrScoreOutOfRange = errors.New("score out of range")
	// ErrEmptyOverride indicates an override request without any change.
	ErrEmptyOverride = errors.New("override request changes nothing")
)
