package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/intervia/interview-api/internal/models"
)

// SessionRepository defines data operations for interview sessions.
// Save persists the full document; session-level mutual exclusion is
// assumed to be provided by the caller (one in-flight operation per
// session).
type SessionRepository interface {
	GetBySessionID(ctx context.Context, sessionID string) (models.Session, error)
	GetActiveByCandidate(ctx context.Context, candidateID string) (models.Session, error)
	ListByCandidate(ctx context.Context, candidateID string, limit, offset int) ([]models.Session, int64, error)
	Create(ctx context.Context, session *models.Session) error
	Save(ctx context.Context, session *models.Session) error
}

type sessionRepository struct {
	db *gorm.DB
}

// NewSessionRepository instantiates the repository.
func NewSessionRepository(db *gorm.DB) SessionRepository {
	return &sessionRepository{db: db}
}

func (r *sessionRepository) GetBySessionID(ctx context.Context, sessionID string) (models.Session, error) {
	var session models.Session
	if err := r.db.WithContext(ctx).Where("session_id = ?", sessionID).First(&session).Error; err != nil {
		return models.Session{}, err
	}
	return session, nil
}

func (r *sessionRepository) GetActiveByCandidate(ctx context.Context, candidateID string) (models.Session, error) {
	var session models.Session
	if err := r.db.WithContext(ctx).
		Where("candidate_id = ?", candidateID).
		Where("status = ?", models.SessionStatusActive).
		First(&session).Error; err != nil {
		return models.Session{}, err
	}
	return session, nil
}

func (r *sessionRepository) ListByCandidate(ctx context.Context, candidateID string, limit, offset int) ([]models.Session, int64, error) {
	query := r.db.WithContext(ctx).Model(&models.Session{}).Where("candidate_id = ?", candidateID)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if limit <= 0 {
		limit = 10
	}
	if offset < 0 {
		offset = 0
	}

	var sessions []models.Session
	if err := query.Order("started_at DESC").Limit(limit).Offset(offset).Find(&sessions).Error; err != nil {
		return nil, 0, err
	}
	return sessions, total, nil
}

func (r *sessionRepository) Create(ctx context.Context, session *models.Session) error {
	return r.db.WithContext(ctx).Create(session).Error
}

func (r *sessionRepository) Save(ctx context.Context, session *models.Session) error {
	return r.db.WithContext(ctx).Save(session).Error
}
