package dto

import (
	"time"

	"github.com/intervia/interview-api/internal/models"
)

// StartSessionRequest begins a new interview session, creating the
// candidate on first contact.
type StartSessionRequest struct {
	CandidateID      string   `json:"candidate_id" validate:"required"`
	Name             string   `json:"name"`
	Email            string   `json:"email" validate:"omitempty,email"`
	ExperienceLevel  string   `json:"experience_level" validate:"omitempty,oneof=junior mid senior"`
	PreferredDomains []string `json:"preferred_domains" validate:"omitempty,dive,oneof=data_structures algorithms system_design database networking security"`
}

// QuestionView is the question payload surfaced to candidates.
type QuestionView struct {
	QuestionID        string            `json:"question_id"`
	QuestionText      string            `json:"question_text"`
	Domain            models.Domain     `json:"domain"`
	Difficulty        models.Difficulty `json:"difficulty"`
	ExpectedKeyPoints []string          `json:"expected_key_points"`
}

// NewQuestionView projects a bank question for API responses.
func NewQuestionView(question models.Question) QuestionView {
	return QuestionView{
		QuestionID:        question.QuestionID,
		QuestionText:      question.QuestionText,
		Domain:            question.Domain,
		Difficulty:        question.Difficulty,
		ExpectedKeyPoints: question.ExpectedKeyPoints,
	}
}

// SessionInfo summarises the live state of a session.
type SessionInfo struct {
	CurrentDomain     models.Domain     `json:"current_domain"`
	CurrentDifficulty models.Difficulty `json:"current_difficulty"`
	QuestionsAnswered int               `json:"questions_answered"`
	TotalQuestions    int               `json:"total_questions"`
	StartedAt         time.Time         `json:"started_at"`
	TimeoutAt         time.Time         `json:"timeout_at"`
}

// StartSessionResponse carries the new session and its first question.
type StartSessionResponse struct {
	SessionID     string       `json:"session_id"`
	CandidateID   string       `json:"candidate_id"`
	FirstQuestion QuestionView `json:"first_question"`
	SessionInfo   SessionInfo  `json:"session_info"`
}

// EvaluateAnswerRequest submits an answer for grading.
type EvaluateAnswerRequest struct {
	SessionID   string `json:"session_id" validate:"required"`
	CandidateID string `json:"candidate_id" validate:"required"`
	QuestionID  string `json:"question_id" validate:"required"`
	Answer      string `json:"answer" validate:"required"`
}

// EvaluationView is the grading returned for one answer.
type EvaluationView struct {
	Correctness float64 `json:"correctness"`
	Clarity     float64 `json:"clarity"`
	Confidence  float64 `json:"confidence"`
	Feedback    string  `json:"feedback"`
}

// EvaluateAnswerResponse carries the evaluation and either the next
// question or, when the session terminated, the final report.
type EvaluateAnswerResponse struct {
	Evaluation        EvaluationView `json:"evaluation"`
	SessionEnded      bool           `json:"session_ended"`
	Reason            string         `json:"reason,omitempty"`
	FinalReport       *SessionReport `json:"final_report,omitempty"`
	NextQuestion      *QuestionView  `json:"next_question,omitempty"`
	SessionInfo       *SessionInfo   `json:"session_info,omitempty"`
	AdaptiveReasoning string         `json:"adaptive_reasoning,omitempty"`
}

// EndSessionRequest closes a session on the candidate's initiative.
type EndSessionRequest struct {
	SessionID string `json:"session_id" validate:"required"`
}

// SessionSummary condenses a finished session.
type SessionSummary struct {
	SessionID         string  `json:"session_id"`
	TotalQuestions    int     `json:"total_questions"`
	QuestionsAnswered int     `json:"questions_answered"`
	SessionScore      float64 `json:"session_score"`
	DurationMinutes   int     `json:"duration_minutes"`
}

// EndSessionResponse carries the closing summary and final report.
type EndSessionResponse struct {
	SessionSummary SessionSummary `json:"session_summary"`
	Report         SessionReport  `json:"report"`
}

// SessionDetail is the full session document view.
type SessionDetail struct {
	SessionID            string                 `json:"session_id"`
	CandidateID          string                 `json:"candidate_id"`
	Status               models.SessionStatus   `json:"status"`
	CurrentDifficulty    models.Difficulty      `json:"current_difficulty"`
	CurrentDomain        models.Domain          `json:"current_domain"`
	QuestionsAsked       []models.AskedQuestion `json:"questions_asked"`
	Evaluations          []models.AnswerRecord  `json:"evaluations"`
	CurrentQuestionIndex int                    `json:"current_question_index"`
	TotalQuestions       int                    `json:"total_questions"`
	SessionScore         float64                `json:"session_score"`
	StartedAt            time.Time              `json:"started_at"`
	EndedAt              *time.Time             `json:"ended_at"`
	EndReason            string                 `json:"end_reason,omitempty"`
	TimeoutAt            time.Time              `json:"timeout_at"`
}

// NewSessionDetail projects a session document for API responses.
func NewSessionDetail(session models.Session) SessionDetail {
	return SessionDetail{
		SessionID:            session.SessionID,
		CandidateID:          session.CandidateID,
		Status:               session.Status,
		CurrentDifficulty:    session.CurrentDifficulty,
		CurrentDomain:        session.CurrentDomain,
		QuestionsAsked:       session.QuestionsAsked,
		Evaluations:          session.Evaluations,
		CurrentQuestionIndex: session.CurrentQuestionIndex,
		TotalQuestions:       session.TotalQuestions,
		SessionScore:         session.SessionScore,
		StartedAt:            session.StartedAt,
		EndedAt:              session.EndedAt,
		EndReason:            session.EndReason,
		TimeoutAt:            session.TimeoutAt,
	}
}

// SessionListItem is one row of a candidate's session history.
type SessionListItem struct {
	SessionID       string               `json:"session_id"`
	Status          models.SessionStatus `json:"status"`
	TotalQuestions  int                  `json:"total_questions"`
	SessionScore    float64              `json:"session_score"`
	StartedAt       time.Time            `json:"started_at"`
	EndedAt         *time.Time           `json:"ended_at"`
	DurationMinutes *int                 `json:"duration_minutes"`
}

// Pagination describes a windowed list response.
type Pagination struct {
	Total   int64 `json:"total"`
	Limit   int   `json:"limit"`
	Offset  int   `json:"offset"`
	HasMore bool  `json:"has_more"`
}

// SessionList is a paginated candidate session history.
type SessionList struct {
	Sessions   []SessionListItem `json:"sessions"`
	Pagination Pagination        `json:"pagination"`
}

// EvaluationHistoryItem is one graded answer in a candidate's history.
type EvaluationHistoryItem struct {
	EvaluationID string            `json:"evaluation_id"`
	SessionID    string            `json:"session_id"`
	QuestionID   string            `json:"question_id"`
	Domain       models.Domain     `json:"domain"`
	Difficulty   models.Difficulty `json:"difficulty"`
	OverallScore float64           `json:"overall_score"`
	Feedback     string            `json:"feedback"`
	CreatedAt    time.Time         `json:"created_at"`
}

// EvaluationHistory lists a candidate's recent evaluations, newest first.
type EvaluationHistory struct {
	CandidateID string                  `json:"candidate_id"`
	Evaluations []EvaluationHistoryItem `json:"evaluations"`
}
