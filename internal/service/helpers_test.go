package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/noah-isme/gema-proficiency-api/internal/database"
	"github.com/noah-isme/gema-proficiency-api/internal/models"
)

func testLogger() zerolog.Logger {
	return zerolog.Nop()
}

func testValidator() *validator.Validate {
	return validator.New(validator.WithRequiredStructEnabled())
}

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	db, err := gorm.Open(sqlite.Open(dsn), database.GormConfig())
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))
	return db
}

func ptrUint(v uint) *uint {
	return &v
}

func ptrFloat(v float64) *float64 {
	return &v
}

func ptrBool(v bool) *bool {
	return &v
}

func ptrString(v string) *string {
	return &v
}

func seedExam(t *testing.T, db *gorm.DB, title, category string, questions ...models.Question) models.Exam {
	t.Helper()
	for i := range questions {
		if questions[i].Position == 0 {
			questions[i].Position = i + 1
		}
	}
	exam := models.Exam{
		Title:     title,
		Category:  category,
		Status:    models.ExamStatusPublished,
		Questions: questions,
	}
	require.NoError(t, db.Create(&exam).Error)
	return exam
}

func mcq(key, correct string) models.Question {
	return models.Question{Key: key, Type: models.QuestionTypeMCQ, CorrectAnswer: correct, Options: []string{"A", "B", "C", "D"}}
}

type publishedEvent struct {
	Type          string
	CorrelationID string
	Payload       interface{}
}

type recordingPublisher struct {
	mu     sync.Mutex
	events []publishedEvent
	err    error
}

func (p *recordingPublisher) Publish(ctx context.Context, eventType string, correlationID string, payload interface{}) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, publishedEvent{Type: eventType, CorrelationID: correlationID, Payload: payload})
	return p.err
}

func isValidationErr(err error) bool {
	var validationErrors validator.ValidationErrors
	return errors.As(err, &validationErrors)
}

func openWorkbook(t *testing.T, content []byte) *excelize.File {
	t.Helper()
	workbook, err := excelize.OpenReader(bytes.NewReader(content))
	require.NoError(t, err)
	t.Cleanup(func() { _ = workbook.Close() })
	return workbook
}
