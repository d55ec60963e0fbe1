// Package performance turns a student's raw history into a weighted proficiency report.
// Everything here is pure; data loading lives in the service layer.
package performance

import "math"

// Category weights. They sum to 1 so the average stays within the sub-score range.
const (
	WeightAttendance = 0.20
	WeightExams      = 0.30
	WeightTasks      = 0.20
	WeightCoding     = 0.15
	WeightMock       = 0.15
)

const (
	codingPointsPerSubmission = 10
	maxScore                  = 100
)

// ExamScore is one exam result reduced to what aggregation needs.
type ExamScore struct {
	Title    string
	Obtained float64
	Total    float64
}

// Inputs holds everything read for one student.
type Inputs struct {
	Exams             []ExamScore
	MockExams         []ExamScore
	PresentDays       int
	TotalDays         int
	TaskGrades        []float64
	CodingSubmissions int
}

// Breakdown holds the five 0-100 sub-scores.
type Breakdown struct {
	Attendance int
	Exams      int
	Tasks      int
	Coding     int
	Mock       int
}

// Subject is the per-bucket exam percentage.
type Subject struct {
	ID    string
	Label string
	Score int
	Color string
}

// Weakest names the lowest scoring subject.
type Weakest struct {
	Label string
	Score int
}

// NoWeakest is reported when there is no exam data at all.
var NoWeakest = Weakest{Label: "None", Score: 0}

// Report is the aggregated proficiency of one student.
type Report struct {
	Average   int
	Breakdown Breakdown
	Subjects  []Subject
	Weakest   Weakest
}

// Compute builds the report. Missing data degrades to zero sub-scores.
func Compute(in Inputs) Report {
	subjects, examScore := examBreakdown(in.Exams)

	breakdown := Breakdown{
		Attendance: AttendanceScore(in.PresentDays, in.TotalDays),
		Exams:      examScore,
		Tasks:      TaskScore(in.TaskGrades),
		Coding:     CodingScore(in.CodingSubmissions),
		Mock:       RatioScore(in.MockExams),
	}

	return Report{
		Average:   WeightedAverage(breakdown),
		Breakdown: breakdown,
		Subjects:  subjects,
		Weakest:   FindWeakest(subjects),
	}
}

// WeightedAverage combines sub-scores with the fixed category weights.
func WeightedAverage(b Breakdown) int {
	sum := WeightAttendance*float64(b.Attendance) +
		WeightExams*float64(b.Exams) +
		WeightTasks*float64(b.Tasks) +
		WeightCoding*float64(b.Coding) +
		WeightMock*float64(b.Mock)
	return clamp(Round(sum))
}

// AttendanceScore is the share of present days. Zero records count as one day.
func AttendanceScore(present, total int) int {
	if total < 1 {
		total = 1
	}
	score := Round(float64(present) / float64(total) * 100)
	if score > maxScore {
		return maxScore
	}
	return score
}

// TaskScore is the rounded mean of graded task submissions, or zero without grades.
func TaskScore(grades []float64) int {
	if len(grades) == 0 {
		return 0
	}
	var sum float64
	for _, grade := range grades {
		sum += grade
	}
	return Round(sum / float64(len(grades)))
}

// CodingScore rewards practice volume: ten points per submission, capped at 100.
func CodingScore(submissions int) int {
	if submissions <= 0 {
		return 0
	}
	if submissions >= maxScore/codingPointsPerSubmission {
		return maxScore
	}
	return submissions * codingPointsPerSubmission
}

// RatioScore is total obtained over total available, zero when nothing was available.
func RatioScore(scores []ExamScore) int {
	var obtained, total float64
	for _, score := range scores {
		obtained += score.Obtained
		total += score.Total
	}
	return percentage(obtained, total)
}

// FindWeakest returns the strictly lowest subject; the first one wins a tie.
func FindWeakest(subjects []Subject) Weakest {
	if len(subjects) == 0 {
		return NoWeakest
	}
	weakest := subjects[0]
	for _, subject := range subjects[1:] {
		if subject.Score < weakest.Score {
			weakest = subject
		}
	}
	return Weakest{Label: weakest.Label, Score: weakest.Score}
}

// examBreakdown groups exams into buckets. Only buckets with at least one exam are reported.
// The overall exam score is the ratio of totals, not the mean of the bucket percentages.
func examBreakdown(exams []ExamScore) ([]Subject, int) {
	type tally struct {
		obtained float64
		total    float64
		seen     bool
	}

	tallies := make(map[string]*tally, len(Buckets))
	for _, bucket := range Buckets {
		tallies[bucket.ID] = &tally{}
	}

	var obtained, total float64
	for _, exam := range exams {
		entry := tallies[Classify(exam.Title).ID]
		entry.obtained += exam.Obtained
		entry.total += exam.Total
		entry.seen = true

		obtained += exam.Obtained
		total += exam.Total
	}

	subjects := make([]Subject, 0, len(Buckets))
	for _, bucket := range Buckets {
		entry := tallies[bucket.ID]
		if !entry.seen {
			continue
		}
		subjects = append(subjects, Subject{
			ID:    bucket.ID,
			Label: bucket.Label,
			Score: percentage(entry.obtained, entry.total),
			Color: bucket.Color,
		})
	}

	return subjects, percentage(obtained, total)
}

func percentage(obtained, total float64) int {
	if total == 0 {
		return 0
	}
	return Round(obtained / total * 100)
}

// Round rounds half up, so 12.5 becomes 13 and -12.5 becomes -12.
func Round(value float64) int {
	return int(math.Floor(value + 0.5))
}

func clamp(value int) int {
	if value < 0 {
		return 0
	}
	if value > maxScore {
		return maxScore
	}
	return value
}
