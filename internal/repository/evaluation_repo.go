package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/intervia/interview-api/internal/models"
)

// EvaluationRepository defines data operations for persisted evaluations.
type EvaluationRepository interface {
	Create(ctx context.Context, evaluation *models.Evaluation) error
	ListBySession(ctx context.Context, sessionID string) ([]models.Evaluation, error)
	ListByCandidate(ctx context.Context, candidateID string, limit int) ([]models.Evaluation, error)
}

type evaluationRepository struct {
	db *gorm.DB
}

// NewEvaluationRepository instantiates the repository.
func NewEvaluationRepository(db *gorm.DB) EvaluationRepository {
	return &evaluationRepository{db: db}
}

func (r *evaluationRepository) Create(ctx context.Context, evaluation *models.Evaluation) error {
	return r.db.WithContext(ctx).Create(evaluation).Error
}

func (r *evaluationRepository) ListBySession(ctx context.Context, sessionID string) ([]models.Evaluation, error) {
	var evaluations []models.Evaluation
	if err := r.db.WithContext(ctx).
		Where("session_id = ?", sessionID).
		Order("created_at ASC").
		Find(&evaluations).Error; err != nil {
		return nil, err
	}
	return evaluations, nil
}

func (r *evaluationRepository) ListByCandidate(ctx context.Context, candidateID string, limit int) ([]models.Evaluation, error) {
	query := r.db.WithContext(ctx).Where("candidate_id = ?", candidateID).Order("created_at DESC")
	if limit > 0 {
		query = query.Limit(limit)
	}

	var evaluations []models.Evaluation
	if err := query.Find(&evaluations).Error; err != nil {
		return nil, err
	}
	return evaluations, nil
}
