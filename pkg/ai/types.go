// Package ai integrates the external language model used to grade
// answers, suggest next-question parameters and generate questions.
// Every call is bounded by a timeout and treated as best-effort: on any
// failure the caller runs a deterministic local fallback instead.
package ai

import "context"

// EvaluationInput contains the artefacts needed to grade a free-text answer.
type EvaluationInput struct {
	QuestionText      string
	Answer            string
	ExpectedKeyPoints []string
}

// Evaluation is the structured three-axis grading of one answer. Each
// axis is in [0,1].
type Evaluation struct {
	Correctness float64 `json:"correctness"`
	Clarity     float64 `json:"clarity"`
	Confidence  float64 `json:"confidence"`
	Feedback    string  `json:"feedback"`
}

// AnswerEvaluator grades a candidate's answer against expected key points.
type AnswerEvaluator interface {
	Evaluate(ctx context.Context, input EvaluationInput) (Evaluation, error)
}

// PerformanceSummary describes recent candidate performance for the advisor.
type PerformanceSummary struct {
	CurrentScore   float64   `json:"current_score"`
	RecentAverage  float64   `json:"recent_average"`
	RecentScores   []float64 `json:"recent_scores"`
	TotalQuestions int       `json:"total_questions"`
}

// Suggestion is the advisor's proposal for the next question. The
// strings are untrusted and must be validated before use.
type Suggestion struct {
	Domain     string `json:"domain"`
	Difficulty string `json:"difficulty"`
	Reasoning  string `json:"reasoning"`
}

// Advisor suggests the next question's domain and difficulty.
type Advisor interface {
	SuggestNextParams(ctx context.Context, domain, difficulty string, summary PerformanceSummary) (Suggestion, error)
}

// PreviousResponse gives the generator context about the last turn so it
// can target missed areas and avoid verbatim repetition.
type PreviousResponse struct {
	PerformanceBand  string   `json:"performance_band"`
	PerformanceScore float64  `json:"performance_score"`
	PreviousAnswer   string   `json:"previous_answer"`
	CoveredKeyPoints []string `json:"covered_key_points"`
	MissedKeyPoints  []string `json:"missed_key_points"`
	PreviousQuestion string   `json:"previous_question"`
}

// GeneratedQuestion is a question produced on the fly by the generator.
type GeneratedQuestion struct {
	QuestionID        string   `json:"question_id"`
	QuestionText      string   `json:"question_text"`
	ExpectedKeyPoints []string `json:"expected_key_points"`
	Difficulty        string   `json:"difficulty"`
	Domain            string   `json:"domain"`
	Reasoning         string   `json:"reasoning"`
}

// QuestionGenerator produces a fresh question for a topic and difficulty.
type QuestionGenerator interface {
	Generate(ctx context.Context, topic, difficulty string, previous *PreviousResponse) (GeneratedQuestion, error)
}
