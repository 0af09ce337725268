package engine

import (
	"time"

	"github.com/intervia/interview-api/internal/models"
)

// EndReason explains why a session must terminate.
type EndReason string

const (
	EndReasonMaxQuestions EndReason = "max_questions_reached"
	EndReasonTimeout      EndReason = "timeout"
	EndReasonInactivity   EndReason = "inactivity"
	EndReasonNone         EndReason = ""
)

// TerminationConfig carries the tunables of the termination policy.
type TerminationConfig struct {
	MaxQuestions     int
	InactivityWindow time.Duration
}

// DefaultTerminationConfig mirrors the production defaults: 20 questions
// per session, 30 minutes of inactivity.
func DefaultTerminationConfig() TerminationConfig {
	return TerminationConfig{
		MaxQuestions:     20,
		InactivityWindow: 30 * time.Minute,
	}
}

// Verdict is the outcome of the termination check.
type Verdict struct {
	ShouldEnd bool
	Reason    EndReason
}

// TerminalStatus maps an end reason onto the session status to persist.
func (v Verdict) TerminalStatus() models.SessionStatus {
	if v.Reason == EndReasonTimeout {
		return models.SessionStatusTimeout
	}
	return models.SessionStatusCompleted
}

// ShouldEnd decides whether the session must terminate. Checks run in
// priority order: question cap, absolute session deadline, inactivity.
// The first match wins.
func ShouldEnd(session *models.Session, cfg TerminationConfig, now time.Time) Verdict {
	if cfg.MaxQuestions <= 0 {
		cfg.MaxQuestions = 20
	}
	if cfg.InactivityWindow <= 0 {
		cfg.InactivityWindow = 30 * time.Minute
	}

	if session.TotalQuestions >= cfg.MaxQuestions {
		return Verdict{ShouldEnd: true, Reason: EndReasonMaxQuestions}
	}

	if now.After(session.TimeoutAt) {
		return Verdict{ShouldEnd: true, Reason: EndReasonTimeout}
	}

	if now.Sub(session.LastActivityAt()) > cfg.InactivityWindow {
		return Verdict{ShouldEnd: true, Reason: EndReasonInactivity}
	}

	return Verdict{ShouldEnd: false, Reason: EndReasonNone}
}
