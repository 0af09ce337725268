package models

import (
	"time"

	"gorm.io/datatypes"
)

// SessionStatus tracks the lifecycle of an interview session. A session
// starts active and transitions exactly once to a terminal status.
type SessionStatus string

const (
	SessionStatusActive    SessionStatus = "active"
	SessionStatusCompleted SessionStatus = "completed"
	SessionStatusAbandoned SessionStatus = "abandoned"
	SessionStatusTimeout   SessionStatus = "timeout"
)

// AskedQuestion is one entry of a session's append-only question log.
type AskedQuestion struct {
	QuestionID   string     `json:"question_id"`
	QuestionText string     `json:"question_text"`
	Difficulty   Difficulty `json:"difficulty"`
	Domain       Domain     `json:"domain"`
	AskedAt      time.Time  `json:"asked_at"`
}

// EvaluationScores holds the three-axis grading of a single answer.
type EvaluationScores struct {
	Correctness float64 `json:"correctness"`
	Clarity     float64 `json:"clarity"`
	Confidence  float64 `json:"confidence"`
	Feedback    string  `json:"feedback"`
}

// Average returns the arithmetic mean of the three score axes.
func (e EvaluationScores) Average() float64 {
	return (e.Correctness + e.Clarity + e.Confidence) / 3
}

// AnswerRecord is one entry of a session's append-only evaluation log,
// parallel to the question log minus the final unanswered question.
type AnswerRecord struct {
	QuestionID  string           `json:"question_id"`
	Answer      string           `json:"answer"`
	Evaluation  EvaluationScores `json:"evaluation"`
	EvaluatedAt time.Time        `json:"evaluated_at"`
}

// Session represents a candidate's interview attempt.
type Session struct {
	ID                   uint                               `gorm:"primaryKey" json:"-"`
	SessionID            string                             `gorm:"size:64;uniqueIndex;not null" json:"session_id"`
	CandidateID          string                             `gorm:"size:64;index;not null" json:"candidate_id"`
	Status               SessionStatus                      `gorm:"size:16;not null;default:active" json:"status"`
	CurrentDifficulty    Difficulty                         `gorm:"size:16;not null" json:"current_difficulty"`
	CurrentDomain        Domain                             `gorm:"size:32;not null" json:"current_domain"`
	QuestionsAsked       datatypes.JSONSlice[AskedQuestion] `json:"questions_asked"`
	Evaluations          datatypes.JSONSlice[AnswerRecord]  `json:"evaluations"`
	CurrentQuestionIndex int                                `gorm:"not null;default:0" json:"current_question_index"`
	TotalQuestions       int                                `gorm:"not null;default:0" json:"total_questions"`
	SessionScore         float64                            `gorm:"not null;default:0" json:"session_score"`
	StartedAt            time.Time                          `json:"started_at"`
	EndedAt              *time.Time                         `json:"ended_at"`
	EndReason            string                             `gorm:"size:64" json:"end_reason,omitempty"`
	TimeoutAt            time.Time                          `json:"timeout_at"`
	CreatedAt            time.Time                          `json:"-"`
	UpdatedAt            time.Time                          `json:"-"`
}

// IsActive reports whether the session can still accept answers.
func (s Session) IsActive() bool {
	return s.Status == SessionStatusActive
}

// LastActivityAt returns the timestamp of the most recently asked
// question, or the session start when nothing was asked yet.
func (s Session) LastActivityAt() time.Time {
	if n := len(s.QuestionsAsked); n > 0 {
		return s.QuestionsAsked[n-1].AskedAt
	}
	return s.StartedAt
}

// AskedQuestionIDs lists the identifiers of every question already asked.
func (s Session) AskedQuestionIDs() []string {
	ids := make([]string, 0, len(s.QuestionsAsked))
	for _, q := range s.QuestionsAsked {
		ids = append(ids, q.QuestionID)
	}
	return ids
}

// ComputeScore returns the mean per-answer average across all
// evaluations, or 0 when nothing was answered. Stored once at
// termination as the session score.
func (s Session) ComputeScore() float64 {
	if len(s.Evaluations) == 0 {
		return 0
	}
	total := 0.0
	for _, record := range s.Evaluations {
		total += record.Evaluation.Average()
	}
	return total / float64(len(s.Evaluations))
}
