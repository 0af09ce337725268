package observability

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	registerOnce           sync.Once
	requestsTotal          *prometheus.CounterVec
	requestLatencySeconds  *prometheus.HistogramVec
	requestErrorsTotal     *prometheus.CounterVec
	sessionsStartedTotal   prometheus.Counter
	sessionsEndedTotal     *prometheus.CounterVec
	questionsServedTotal   *prometheus.CounterVec
	answersEvaluatedTotal  *prometheus.CounterVec
	evaluationScore        prometheus.Histogram
	advisorFallbacksTotal  prometheus.Counter
	conversationTurnsTotal *prometheus.CounterVec
)

// RegisterMetrics initialises the Prometheus collectors used across the API.
func RegisterMetrics() {
	registerOnce.Do(func() {
		requestsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "interview_requests_total",
			Help: "Total number of API requests served.",
		}, []string{"method", "route", "status"})

		requestLatencySeconds = prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "interview_request_latency_seconds",
			Help:    "Latency distribution for API requests.",
			Buckets: []float64{0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1.0, 2.0},
		}, []string{"method", "route"})

		requestErrorsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "interview_request_errors_total",
			Help: "Total number of error responses returned by API endpoints.",
		}, []string{"method", "route", "status"})

		sessionsStartedTotal = prometheus.NewCounter(prometheus.CounterOpts{
			Name: "interview_sessions_started_total",
			Help: "Total number of interview sessions started.",
		})

		sessionsEndedTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "interview_sessions_ended_total",
			Help: "Total number of interview sessions ended, by reason.",
		}, []string{"reason"})

		questionsServedTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "interview_questions_served_total",
			Help: "Total number of questions served to candidates.",
		}, []string{"domain", "difficulty"})

		answersEvaluatedTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "interview_answers_evaluated_total",
			Help: "Total number of answers evaluated, by band and evaluator source.",
		}, []string{"band", "source"})

		evaluationScore = prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "interview_evaluation_score",
			Help:    "Distribution of per-answer performance scores.",
			Buckets: []float64{0.1, 0.2, 0.3, 0.4, 0.5, 0.6, 0.7, 0.8, 0.9, 1.0},
		})

		advisorFallbacksTotal = prometheus.NewCounter(prometheus.CounterOpts{
			Name: "interview_advisor_fallbacks_total",
			Help: "Total number of times the rule-based fallback replaced the advisor.",
		})

		conversationTurnsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "interview_conversation_turns_total",
			Help: "Total number of adaptive conversation turns handled, by kind.",
		}, []string{"kind"})

		prometheus.MustRegister(
			requestsTotal,
			requestLatencySeconds,
			requestErrorsTotal,
			sessionsStartedTotal,
			sessionsEndedTotal,
			questionsServedTotal,
			answersEvaluatedTotal,
			evaluationScore,
			advisorFallbacksTotal,
			conversationTurnsTotal,
		)
	})
}

// Requests exposes the counter for API requests.
func Requests() *prometheus.CounterVec {
	RegisterMetrics()
	return requestsTotal
}

// RequestLatency exposes the latency histogram for API requests.
func RequestLatency() *prometheus.HistogramVec {
	RegisterMetrics()
	return requestLatencySeconds
}

// RequestErrors exposes the counter for API error responses.
func RequestErrors() *prometheus.CounterVec {
	RegisterMetrics()
	return requestErrorsTotal
}

// SessionsStarted exposes the counter for started sessions.
func SessionsStarted() prometheus.Counter {
	RegisterMetrics()
	return sessionsStartedTotal
}

// SessionsEnded exposes the counter for ended sessions.
func SessionsEnded() *prometheus.CounterVec {
	RegisterMetrics()
	return sessionsEndedTotal
}

// QuestionsServed exposes the counter for served questions.
func QuestionsServed() *prometheus.CounterVec {
	RegisterMetrics()
	return questionsServedTotal
}

// AnswersEvaluated exposes the counter for evaluated answers.
func AnswersEvaluated() *prometheus.CounterVec {
	RegisterMetrics()
	return answersEvaluatedTotal
}

// EvaluationScores exposes the histogram of per-answer scores.
func EvaluationScores() prometheus.Histogram {
	RegisterMetrics()
	return evaluationScore
}

// AdvisorFallbacks exposes the counter for advisor fallbacks.
func AdvisorFallbacks() prometheus.Counter {
	RegisterMetrics()
	return advisorFallbacksTotal
}

// ConversationTurns exposes the counter for adaptive conversation turns.
func ConversationTurns() *prometheus.CounterVec {
	RegisterMetrics()
	return conversationTurnsTotal
}
