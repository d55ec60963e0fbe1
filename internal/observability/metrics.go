package observability

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	registerOnce         sync.Once
	apiRequestsTotal     *prometheus.CounterVec
	apiLatencySeconds    *prometheus.HistogramVec
	apiErrorsTotal       *prometheus.CounterVec
	examSubmissionsTotal *prometheus.CounterVec
	performanceSeconds   prometheus.Histogram
	attendanceBeatsTotal *prometheus.CounterVec
)

// RegisterMetrics initialises the Prometheus collectors used by the API.
func RegisterMetrics() {
	registerOnce.Do(func() {
		apiRequestsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "api_requests_total",
			Help: "Total number of API requests served.",
		}, []string{"method", "route", "status"})

		apiLatencySeconds = prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "api_latency_seconds",
			Help:    "Latency distribution for API requests.",
			Buckets: []float64{0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1.0, 2.0},
		}, []string{"method", "route"})

		apiErrorsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "api_errors_total",
			Help: "Total number of error responses returned by API endpoints.",
		}, []string{"method", "route", "status"})

		examSubmissionsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "exam_submissions_total",
			Help: "Exam submissions by outcome.",
		}, []string{"outcome"})

		performanceSeconds = prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "performance_compute_seconds",
			Help:    "Time spent aggregating a student's performance report.",
			Buckets: []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1.0},
		})

		attendanceBeatsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "attendance_heartbeats_total",
			Help: "Attendance heartbeats by outcome.",
		}, []string{"outcome"})

		prometheus.MustRegister(
			apiRequestsTotal,
			apiLatencySeconds,
			apiErrorsTotal,
			examSubmissionsTotal,
			performanceSeconds,
			attendanceBeatsTotal,
		)
	})
}

// APIRequests exposes the counter for API requests.
func APIRequests() *prometheus.CounterVec {
	RegisterMetrics()
	return apiRequestsTotal
}

// APILatency exposes the latency histogram for API requests.
func APILatency() *prometheus.HistogramVec {
	RegisterMetrics()
	return apiLatencySeconds
}

// APIErrors exposes the counter for API error responses.
func APIErrors() *prometheus.CounterVec {
	RegisterMetrics()
	return apiErrorsTotal
}

// ExamSubmissions counts submissions labelled graded, pending_review, duplicate or failed.
func ExamSubmissions() *prometheus.CounterVec {
	RegisterMetrics()
	return examSubmissionsTotal
}

// PerformanceLatency records aggregation durations.
func PerformanceLatency() prometheus.Histogram {
	RegisterMetrics()
	return performanceSeconds
}

// AttendanceHeartbeats counts heartbeats labelled accepted, throttled or failed.
func AttendanceHeartbeats() *prometheus.CounterVec {
	RegisterMetrics()
	return attendanceBeatsTotal
}
