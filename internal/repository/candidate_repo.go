package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/intervia/interview-api/internal/models"
)

// CandidateRepository defines data operations for candidates.
type CandidateRepository interface {
	GetByCandidateID(ctx context.Context, candidateID string) (models.Candidate, error)
	Create(ctx context.Context, candidate *models.Candidate) error
	Save(ctx context.Context, candidate *models.Candidate) error
}

type candidateRepository struct {
	db *gorm.DB
}

// NewCandidateRepository instantiates the repository.
func NewCandidateRepository(db *gorm.DB) CandidateRepository {
	return &candidateRepository{db: db}
}

func (r *candidateRepository) GetByCandidateID(ctx context.Context, candidateID string) (models.Candidate, error) {
	var candidate models.Candidate
	if err := r.db.WithContext(ctx).Where("candidate_id = ?", candidateID).First(&candidate).Error; err != nil {
		return models.Candidate{}, err
	}
	return candidate, nil
}

func (r *candidateRepository) Create(ctx context.Context, candidate *models.Candidate) error {
	return r.db.WithContext(ctx).Create(candidate).Error
}

func (r *candidateRepository) Save(ctx context.Context, candidate *models.Candidate) error {
	return r.db.WithContext(ctx).Save(candidate).Error
}
