package performance

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestComputeEmptyHistory(t *testing.T) {
	report := Compute(Inputs{})

	require.Equal(t, 0, report.Average)
	require.Equal(t, Breakdown{}, report.Breakdown)
	require.Empty(t, report.Subjects)
	require.Equal(t, Weakest{Label: "None", Score: 0}, report.Weakest)
}

func TestComputeFullHistory(t *testing.T) {
	report := Compute(Inputs{
		Exams: []ExamScore{
			{Title: "Python Loops", Obtained: 8, Total: 10},
			{Title: "JS Closures", Obtained: 2, Total: 10},
			{Title: "Aptitude Test 1", Obtained: 45, Total: 50},
			{Title: "Group Discussion", Obtained: 3, Total: 10},
		},
		MockExams:         []ExamScore{{Title: "Mock Interview", Obtained: 7, Total: 10}},
		PresentDays:       3,
		TotalDays:         4,
		TaskGrades:        []float64{80, 91},
		CodingSubmissions: 4,
	})

	require.Equal(t, Breakdown{Attendance: 75, Exams: 73, Tasks: 86, Coding: 40, Mock: 70}, report.Breakdown)
	require.Equal(t, []Subject{
		{ID: "coding", Label: "Coding", Score: 50, Color: BucketCoding.Color},
		{ID: "aptitude", Label: "Aptitude", Score: 90, Color: BucketAptitude.Color},
		{ID: "communication", Label: "Communication", Score: 30, Color: BucketCommunication.Color},
	}, report.Subjects)
	require.Equal(t, Weakest{Label: "Communication", Score: 30}, report.Weakest)
	// 0.2*75 + 0.3*73 + 0.2*86 + 0.15*40 + 0.15*70 = 70.6
	require.Equal(t, 71, report.Average)
}

func TestExamScoreUsesRatioOfTotals(t *testing.T) {
	report := Compute(Inputs{Exams: []ExamScore{
		{Title: "Coding 1", Obtained: 1, Total: 1},
		{Title: "Aptitude 1", Obtained: 0, Total: 99},
	}})

	// Averaging the buckets would give 50.
	require.Equal(t, 1, report.Breakdown.Exams)
	require.Equal(t, 100, report.Subjects[0].Score)
	require.Equal(t, 0, report.Subjects[1].Score)
}

func TestBucketWithZeroTotalScoresZero(t *testing.T) {
	report := Compute(Inputs{Exams: []ExamScore{{Title: "Reasoning warmup", Obtained: 0, Total: 0}}})

	require.Equal(t, []Subject{{ID: "reasoning", Label: "Reasoning", Score: 0, Color: BucketReasoning.Color}}, report.Subjects)
	require.Equal(t, 0, report.Breakdown.Exams)
	require.Equal(t, Weakest{Label: "Reasoning", Score: 0}, report.Weakest)
}

func TestFindWeakestTieKeepsDeclarationOrder(t *testing.T) {
	weakest := FindWeakest([]Subject{
		{Label: "Coding", Score: 40},
		{Label: "Aptitude", Score: 60},
		{Label: "Reasoning", Score: 40},
	})
	require.Equal(t, Weakest{Label: "Coding", Score: 40}, weakest)
}

func TestAttendanceScore(t *testing.T) {
	require.Equal(t, 0, AttendanceScore(0, 0))
	require.Equal(t, 67, AttendanceScore(2, 3))
	require.Equal(t, 100, AttendanceScore(5, 5))
	require.Equal(t, 100, AttendanceScore(6, 5))
	require.Equal(t, 13, AttendanceScore(1, 8))
}

func TestTaskScore(t *testing.T) {
	require.Equal(t, 0, TaskScore(nil))
	require.Equal(t, 85, TaskScore([]float64{84.5}))
	require.Equal(t, 75, TaskScore([]float64{100, 50}))
}

func TestCodingScoreSaturates(t *testing.T) {
	require.Equal(t, 0, CodingScore(0))
	require.Equal(t, 10, CodingScore(1))
	require.Equal(t, 90, CodingScore(9))
	require.Equal(t, 100, CodingScore(10))
	for count := 11; count < 200; count++ {
		require.Equal(t, 100, CodingScore(count))
	}
}

func TestRatioScoreWithoutMarks(t *testing.T) {
	require.Equal(t, 0, RatioScore(nil))
	require.Equal(t, 0, RatioScore([]ExamScore{{Obtained: 0, Total: 0}}))
	require.Equal(t, 50, RatioScore([]ExamScore{{Obtained: 5, Total: 10}}))
}

func TestWeightedAverageStaysInRange(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	for i := 0; i < 1000; i++ {
		b := Breakdown{
			Attendance: rng.Intn(101),
			Exams:      rng.Intn(101),
			Tasks:      rng.Intn(101),
			Coding:     rng.Intn(101),
			Mock:       rng.Intn(101),
		}
		average := WeightedAverage(b)
		require.GreaterOrEqual(t, average, 0)
		require.LessOrEqual(t, average, 100)
	}

	require.Equal(t, 100, WeightedAverage(Breakdown{Attendance: 100, Exams: 100, Tasks: 100, Coding: 100, Mock: 100}))
}

func TestWeightsSumToOne(t *testing.T) {
	require.InDelta(t, 1.0, WeightAttendance+WeightExams+WeightTasks+WeightCoding+WeightMock, 1e-9)
}

func TestRound(t *testing.T) {
	require.Equal(t, 13, Round(12.5))
	require.Equal(t, 12, Round(12.49))
	require.Equal(t, 0, Round(0))
}
