// Package events fans out interview lifecycle events over Redis pub/sub
// and NATS so downstream consumers (dashboards, recruiters' tooling) can
// follow sessions in near real time. Publishing is best-effort: a broker
// failure is logged and never fails the originating request.
package events

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/nats-io/nats.go"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/intervia/interview-api/internal/models"
)

const (
	TypeSessionStarted = "session.started"
	TypeQuestionAsked  = "session.question_asked"
	TypeAnswerGraded   = "session.answer_graded"
	TypeSessionEnded   = "session.ended"
)

// Event is the envelope shared by every published lifecycle event.
type Event struct {
	Source      string          `json:"source"`
	Type        string          `json:"type"`
	SessionID   string          `json:"session_id"`
	CandidateID string          `json:"candidate_id"`
	Payload     json.RawMessage `json:"payload,omitempty"`
	SentAt      time.Time       `json:"sent_at"`
}

// Publisher emits interview lifecycle events.
type Publisher interface {
	SessionStarted(ctx context.Context, session models.Session)
	QuestionAsked(ctx context.Context, session models.Session, question models.AskedQuestion)
	AnswerGraded(ctx context.Context, session models.Session, evaluation models.EvaluationScores)
	SessionEnded(ctx context.Context, session models.Session, reason string)
}

type brokerPublisher struct {
	redis       *redis.Client
	redisStream string
	nats        *nats.Conn
	natsSubject string
	logger      zerolog.Logger
	nodeID      string
}

// NewPublisher constructs a publisher over the provided brokers. Either
// client may be nil; with both nil every publish is a no-op.
func NewPublisher(redisClient *redis.Client, channelBase string, natsConn *nats.Conn, logger zerolog.Logger) Publisher {
	stream := ""
	subject := ""
	if channelBase != "" {
		stream = channelBase + ":sessions"
		subject = strings.ReplaceAll(channelBase, ":", ".") + ".sessions"
	}

	return &brokerPublisher{
		redis:       redisClient,
		redisStream: stream,
		nats:        natsConn,
		natsSubject: subject,
		logger:      logger.With().Str("component", "events").Logger(),
		nodeID:      uuid.NewString(),
	}
}

func (p *brokerPublisher) SessionStarted(ctx context.Context, session models.Session) {
	p.emit(ctx, TypeSessionStarted, session, map[string]any{
		"domain":     session.CurrentDomain,
		"difficulty": session.CurrentDifficulty,
	})
}

func (p *brokerPublisher) QuestionAsked(ctx context.Context, session models.Session, question models.AskedQuestion) {
	p.emit(ctx, TypeQuestionAsked, session, map[string]any{
		"question_id": question.QuestionID,
		"domain":      question.Domain,
		"difficulty":  question.Difficulty,
	})
}

func (p *brokerPublisher) AnswerGraded(ctx context.Context, session models.Session, evaluation models.EvaluationScores) {
	p.emit(ctx, TypeAnswerGraded, session, map[string]any{
		"correctness": evaluation.Correctness,
		"clarity":     evaluation.Clarity,
		"confidence":  evaluation.Confidence,
	})
}

func (p *brokerPublisher) SessionEnded(ctx context.Context, session models.Session, reason string) {
	p.emit(ctx, TypeSessionEnded, session, map[string]any{
		"reason":          reason,
		"session_score":   session.SessionScore,
		"total_questions": session.TotalQuestions,
	})
}

func (p *brokerPublisher) emit(ctx context.Context, eventType string, session models.Session, payload map[string]any) {
	if p.redis == nil && p.nats == nil {
		return
	}

	raw, err := json.Marshal(payload)
	if err != nil {
		p.logger.Warn().Err(err).Str("type", eventType).Msg("failed to encode event payload")
		return
	}

	event := Event{
		Source:      p.nodeID,
		Type:        eventType,
		SessionID:   session.SessionID,
		CandidateID: session.CandidateID,
		Payload:     raw,
		SentAt:      time.Now().UTC(),
	}

	data, err := json.Marshal(event)
	if err != nil {
		p.logger.Warn().Err(err).Str("type", eventType).Msg("failed to encode event")
		return
	}

	if p.redis != nil && p.redisStream != "" {
		if err := p.redis.Publish(ctx, p.redisStream, data).Err(); err != nil {
			p.logger.Warn().Err(err).Str("type", eventType).Msg("redis publish failed")
		}
	}

	if p.nats != nil && p.natsSubject != "" {
		if err := p.nats.Publish(p.natsSubject, data); err != nil {
			p.logger.Warn().Err(err).Str("type", eventType).Msg("nats publish failed")
		}
	}
}

// NopPublisher discards every event. Used in tests and when no broker
// is configured.
type NopPublisher struct{}

func (NopPublisher) SessionStarted(context.Context, models.Session)                        {}
func (NopPublisher) QuestionAsked(context.Context, models.Session, models.AskedQuestion)   {}
func (NopPublisher) AnswerGraded(context.Context, models.Session, models.EvaluationScores) {}
func (NopPublisher) SessionEnded(context.Context, models.Session, string)                  {}
