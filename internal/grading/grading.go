// Package grading scores exam submissions.
//
// MCQ answers are compared exactly after trimming. CODING answers are scored by a
// presence heuristic: anything longer than CodingMinLength that no longer contains the
// starter placeholder earns full marks. The code is never executed.
// TODO: replace the CODING heuristic with test-case execution together with a rescoring job for stored results.
package grading

import (
	"strings"
	"unicode/utf16"

	"github.com/noah-isme/gema-proficiency-api/internal/models"
)

const (
	// CodingMinLength is the length a CODING answer must exceed to be credited.
	CodingMinLength = 20
	// CodingPlaceholder marks an untouched starter template.
	CodingPlaceholder = "// Write your"
)

// Outcome is the result of grading one submission.
type Outcome struct {
	Score    float64
	IsGraded bool
}

// Grade scores answers against questions. A question without an answer scores zero.
// IsGraded is false whenever the exam contains a DESCRIPTIVE question, because those
// answers wait for an instructor.
func Grade(questions []models.Question, answers map[string]string) Outcome {
	outcome := Outcome{IsGraded: true}

	for _, question := range questions {
		answer := answers[question.Key]

		switch question.Type {
		case models.QuestionTypeMCQ:
			if MatchesChoice(question.CorrectAnswer, answer) {
				outcome.Score += question.Marks()
			}
		case models.QuestionTypeCoding:
			if LooksAttempted(answer) {
				outcome.Score += question.Marks()
			}
		case models.QuestionTypeDescriptive:
			outcome.IsGraded = false
		}
	}

	return outcome
}

// MatchesChoice reports whether an MCQ answer equals the key after trimming both sides.
// Blank keys never match.
func MatchesChoice(correct, answer string) bool {
	correct = strings.TrimSpace(correct)
	answer = strings.TrimSpace(answer)
	return correct != "" && answer != "" && correct == answer
}

// LooksAttempted applies the CODING heuristic. Length is counted in UTF-16 code units.
func LooksAttempted(source string) bool {
	return len(utf16.Encode([]rune(source))) > CodingMinLength && !strings.Contains(source, CodingPlaceholder)
}
