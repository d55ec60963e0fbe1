package grading

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/noah-isme/gema-proficiency-api/internal/models"
)

func marks(v float64) *float64 {
	return &v
}

func twoChoiceExam() []models.Question {
	return []models.Question{
		{Key: "q1", Type: models.QuestionTypeMCQ, CorrectAnswer: "B", MaxMarks: marks(50)},
		{Key: "q2", Type: models.QuestionTypeMCQ, CorrectAnswer: "A", MaxMarks: marks(50)},
	}
}

func TestGradePartiallyCorrectChoices(t *testing.T) {
	outcome := Grade(twoChoiceExam(), map[string]string{"q1": "B", "q2": "C"})

	require.Equal(t, 50.0, outcome.Score)
	require.True(t, outcome.IsGraded)
}

func TestGradeTrimsWhitespace(t *testing.T) {
	outcome := Grade(twoChoiceExam(), map[string]string{"q1": " B ", "q2": "A"})

	require.Equal(t, 100.0, outcome.Score)
	require.True(t, outcome.IsGraded)
}

func TestGradeWhitespaceIsSymmetric(t *testing.T) {
	paddings := []string{"", " ", "\t", "  \n"}
	for _, left := range paddings {
		for _, right := range paddings {
			questions := []models.Question{{Key: "q", Type: models.QuestionTypeMCQ, CorrectAnswer: left + "Paris" + right, MaxMarks: marks(2)}}

			outcome := Grade(questions, map[string]string{"q": right + "Paris" + left})
			require.Equal(t, 2.0, outcome.Score, "key %q answer %q", left+"Paris"+right, right+"Paris"+left)
		}
	}
}

func TestGradeChoiceIsCaseSensitive(t *testing.T) {
	questions := []models.Question{{Key: "q", Type: models.QuestionTypeMCQ, CorrectAnswer: "Paris"}}

	require.Zero(t, Grade(questions, map[string]string{"q": "paris"}).Score)
}

func TestGradeBlankKeyNeverMatches(t *testing.T) {
	questions := []models.Question{{Key: "q", Type: models.QuestionTypeMCQ, CorrectAnswer: "   "}}

	require.Zero(t, Grade(questions, map[string]string{"q": "   "}).Score)
	require.Zero(t, Grade(questions, map[string]string{}).Score)
}

func TestGradeDefaultsMarksToOne(t *testing.T) {
	questions := []models.Question{
		{Key: "q1", Type: models.QuestionTypeMCQ, CorrectAnswer: "A"},
		{Key: "q2", Type: models.QuestionTypeMCQ, CorrectAnswer: "B", MaxMarks: marks(0)},
	}

	outcome := Grade(questions, map[string]string{"q1": "A", "q2": "B"})
	require.Equal(t, 1.0, outcome.Score)
}

func TestGradeDescriptiveBlocksAutoGrading(t *testing.T) {
	questions := []models.Question{
		{Key: "essay", Type: models.QuestionTypeDescriptive, MaxMarks: marks(20)},
		{Key: "mcq", Type: models.QuestionTypeMCQ, CorrectAnswer: "C", MaxMarks: marks(80)},
	}

	outcome := Grade(questions, map[string]string{"essay": "A long and thoughtful essay", "mcq": "C"})
	require.Equal(t, 80.0, outcome.Score)
	require.False(t, outcome.IsGraded)
}

func TestGradeDescriptiveUnansweredStillBlocksAutoGrading(t *testing.T) {
	questions := []models.Question{
		{Key: "mcq", Type: models.QuestionTypeMCQ, CorrectAnswer: "C"},
		{Key: "essay", Type: models.QuestionTypeDescriptive},
	}

	require.False(t, Grade(questions, nil).IsGraded)
}

func TestGradeWithoutDescriptiveIsGraded(t *testing.T) {
	questions := []models.Question{
		{Key: "mcq", Type: models.QuestionTypeMCQ, CorrectAnswer: "C"},
		{Key: "code", Type: models.QuestionTypeCoding, CodeLanguage: "python"},
	}

	require.True(t, Grade(questions, map[string]string{}).IsGraded)
	require.True(t, Grade(nil, nil).IsGraded)
}

func TestGradeCodingHeuristic(t *testing.T) {
	questions := []models.Question{{Key: "code", Type: models.QuestionTypeCoding, MaxMarks: marks(10)}}

	cases := []struct {
		name   string
		source string
		score  float64
	}{
		{name: "single character", source: "x", score: 0},
		{name: "exactly twenty", source: strings.Repeat("a", 20), score: 0},
		{name: "twenty five characters", source: "print('hello world!!!!!')", score: 10},
		{name: "placeholder left in", source: "// Write your solution here\nprint(1)", score: 0},
		{name: "empty", source: "", score: 0},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			outcome := Grade(questions, map[string]string{"code": tc.source})
			require.Equal(t, tc.score, outcome.Score)
			require.True(t, outcome.IsGraded)
		})
	}
}

func TestLooksAttemptedCountsUTF16Units(t *testing.T) {
	// Each emoji is two UTF-16 code units.
	require.True(t, LooksAttempted(strings.Repeat("😀", 11)))
	require.False(t, LooksAttempted(strings.Repeat("😀", 10)))
}

func TestGradeIgnoresUnknownQuestionTypes(t *testing.T) {
	questions := []models.Question{{Key: "q", Type: "TRUE_FALSE", CorrectAnswer: "true"}}

	outcome := Grade(questions, map[string]string{"q": "true"})
	require.Zero(t, outcome.Score)
	require.True(t, outcome.IsGraded)
}
