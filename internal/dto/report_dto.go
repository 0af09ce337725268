package dto

import "time"

// ReportSummary is the headline block of a final report. Duration is in
// minutes, measured to session end or to report time for open sessions.
type ReportSummary struct {
	TotalQuestions    int     `json:"total_questions"`
	QuestionsAnswered int     `json:"questions_answered"`
	SessionDuration   int     `json:"session_duration"`
	OverallScore      float64 `json:"overall_score"`
	PerformanceLevel  string  `json:"performance_level"`
	EndReason         string  `json:"end_reason,omitempty"`
}

// DomainStats aggregates the answers within one domain.
type DomainStats struct {
	TotalQuestions int     `json:"total_questions"`
	AverageScore   float64 `json:"average_score"`
}

// DifficultyStats aggregates the answers at one difficulty level.
type DifficultyStats struct {
	TotalQuestions int     `json:"total_questions"`
	AverageScore   float64 `json:"average_score"`
}

// ReportFinding names one identified strength or weakness.
type ReportFinding struct {
	Category    string  `json:"category"`
	Description string  `json:"description"`
	Score       float64 `json:"score,omitempty"`
	Domain      string  `json:"domain,omitempty"`
	Difficulty  string  `json:"difficulty,omitempty"`
	Priority    string  `json:"priority,omitempty"`
}

// Recommendation is one study suggestion derived from the analysis.
type Recommendation struct {
	Category  string   `json:"category"`
	Priority  string   `json:"priority"`
	Action    string   `json:"action"`
	Resources []string `json:"resources"`
}

// ScoreBreakdown carries the per-axis scores of one answer.
type ScoreBreakdown struct {
	Overall     float64 `json:"overall"`
	Correctness float64 `json:"correctness"`
	Clarity     float64 `json:"clarity"`
	Confidence  float64 `json:"confidence"`
}

// DetailedScore is one row of the per-question breakdown.
type DetailedScore struct {
	QuestionID string         `json:"question_id"`
	Domain     string         `json:"domain"`
	Difficulty string         `json:"difficulty"`
	Scores     ScoreBreakdown `json:"scores"`
	Feedback   string         `json:"feedback"`
}

// SessionReport is the full post-session analysis document.
type SessionReport struct {
	SessionID          string                     `json:"session_id"`
	CandidateID        string                     `json:"candidate_id"`
	CandidateName      string                     `json:"candidate_name"`
	SessionSummary     ReportSummary              `json:"session_summary"`
	DomainAnalysis     map[string]DomainStats     `json:"domain_analysis"`
	DifficultyAnalysis map[string]DifficultyStats `json:"difficulty_analysis"`
	Strengths          []ReportFinding            `json:"strengths"`
	Weaknesses         []ReportFinding            `json:"weaknesses"`
	Recommendations    []Recommendation           `json:"recommendations"`
	DetailedScores     []DetailedScore            `json:"detailed_scores"`
	GeneratedAt        time.Time                  `json:"generated_at"`
	ReportVersion      string                     `json:"report_version"`
}
