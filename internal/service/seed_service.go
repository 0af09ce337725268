package service

import (
	"context"
	"crypto/subtle"
	"errors"
	"strings"

	"github.com/rs/zerolog"

	"github.com/intervia/interview-api/internal/dto"
	"github.com/intervia/interview-api/internal/models"
	"github.com/intervia/interview-api/internal/repository"
)

var (
	// ErrSeedDisabled indicates the seeding tools are disabled by configuration.
	ErrSeedDisabled = errors.New("seeding is disabled")
	// ErrSeedUnauthorized indicates the provided token is invalid.
	ErrSeedUnauthorized = errors.New("invalid seed token")
)

// SeedService loads question banks into the database.
type SeedService interface {
	SeedQuestions(ctx context.Context, token string, items []dto.QuestionSeed) (int64, error)
}

type seedService struct {
	questions repository.QuestionRepository
	enabled   bool
	token     string
	logger    zerolog.Logger
}

// NewSeedService constructs a seeding service.
func NewSeedService(questions repository.QuestionRepository, enabled bool, token string, logger zerolog.Logger) SeedService {
	return &seedService{
		questions: questions,
		enabled:   enabled,
		token:     token,
		logger:    logger.With().Str("component", "seed_service").Logger(),
	}
}

func (s *seedService) SeedQuestions(ctx context.Context, token string, items []dto.QuestionSeed) (int64, error) {
	if !s.enabled {
		return 0, ErrSeedDisabled
	}
	if !s.validateToken(token) {
		return 0, ErrSeedUnauthorized
	}

	normalized := make([]models.Question, 0, len(items))
	for _, item := range items {
		domain, ok := models.ParseDomain(item.Domain)
		if !ok {
			return 0, errors.New("unknown domain: " + item.Domain)
		}
		difficulty, ok := models.ParseDifficulty(item.Difficulty)
		if !ok {
			return 0, errors.New("unknown difficulty: " + item.Difficulty)
		}
		normalized = append(normalized, models.Question{
			QuestionID:        strings.TrimSpace(item.QuestionID),
			QuestionText:      strings.TrimSpace(item.QuestionText),
			Domain:            domain,
			Difficulty:        difficulty,
			ExpectedKeyPoints: item.ExpectedKeyPoints,
			IsActive:          true,
		})
	}

	affected, err := s.questions.UpsertBatch(ctx, normalized)
	if err != nil {
		return 0, err
	}
	s.logger.Info().Int64("affected", affected).Msg("questions seeded")
	return affected, nil
}

func (s *seedService) validateToken(token string) bool {
	expected := strings.TrimSpace(s.token)
	if expected == "" {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(expected), []byte(strings.TrimSpace(token))) == 1
}
