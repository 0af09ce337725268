package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/intervia/interview-api/internal/models"
)

// RandomQuestionQuery narrows the random draw of a next question.
type RandomQuestionQuery struct {
	Domain     models.Domain
	Difficulty models.Difficulty
	ExcludeIDs []string
}

// QuestionRepository defines data operations for the question bank.
// Random performs a uniformly-random draw among qualifying rows and
// relaxes its constraints in a fixed order when nothing matches:
// same domain any difficulty, then same domain allowing repeats, then
// any active question. Only a fully empty bank yields an error.
type QuestionRepository interface {
	GetByQuestionID(ctx context.Context, questionID string) (models.Question, error)
	Random(ctx context.Context, query RandomQuestionQuery) (models.Question, error)
	RecordUsage(ctx context.Context, questionID string) error
	RecordScore(ctx context.Context, questionID string, score float64) error
	UpsertBatch(ctx context.Context, questions []models.Question) (int64, error)
}

type questionRepository struct {
	db *gorm.DB
}

// NewQuestionRepository instantiates the repository.
func NewQuestionRepository(db *gorm.DB) QuestionRepository {
	return &questionRepository{db: db}
}

func (r *questionRepository) GetByQuestionID(ctx context.Context, questionID string) (models.Question, error) {
	var question models.Question
	if err := r.db.WithContext(ctx).Where("question_id = ?", questionID).First(&question).Error; err != nil {
		return models.Question{}, err
	}
	return question, nil
}

func (r *questionRepository) Random(ctx context.Context, query RandomQuestionQuery) (models.Question, error) {
	steps := []func(*gorm.DB) *gorm.DB{
		func(q *gorm.DB) *gorm.DB {
			q = q.Where("domain = ?", query.Domain).Where("difficulty = ?", query.Difficulty)
			return excludeIDs(q, query.ExcludeIDs)
		},
		func(q *gorm.DB) *gorm.DB {
			return excludeIDs(q.Where("domain = ?", query.Domain), query.ExcludeIDs)
		},
		func(q *gorm.DB) *gorm.DB {
			return q.Where("domain = ?", query.Domain)
		},
		func(q *gorm.DB) *gorm.DB {
			return q
		},
	}

	for _, narrow := range steps {
		base := r.db.WithContext(ctx).Model(&models.Question{}).Where("is_active = ?", true)

		var question models.Question
		err := narrow(base).Order("RANDOM()").First(&question).Error
		if err == nil {
			return question, nil
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return models.Question{}, err
		}
	}

	return models.Question{}, gorm.ErrRecordNotFound
}

func (r *questionRepository) RecordUsage(ctx context.Context, questionID string) error {
	return r.db.WithContext(ctx).
		Model(&models.Question{}).
		Where("question_id = ?", questionID).
		UpdateColumn("usage_count", gorm.Expr("usage_count + 1")).Error
}

// RecordScore folds a new evaluation score into the question's running
// average.
func (r *questionRepository) RecordScore(ctx context.Context, questionID string, score float64) error {
	var question models.Question
	if err := r.db.WithContext(ctx).Where("question_id = ?", questionID).First(&question).Error; err != nil {
		return err
	}

	count := question.UsageCount
	if count <= 0 {
		count = 1
	}
	average := (question.AverageScore*float64(count-1) + score) / float64(count)

	return r.db.WithContext(ctx).
		Model(&models.Question{}).
		Where("question_id = ?", questionID).
		UpdateColumn("average_score", average).Error
}

func (r *questionRepository) UpsertBatch(ctx context.Context, questions []models.Question) (int64, error) {
	if len(questions) == 0 {
		return 0, nil
	}

	result := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "question_id"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"question_text", "domain", "difficulty", "expected_key_points",
			"sample_answer", "tags", "is_active", "updated_at",
		}),
	}).Create(&questions)

	return result.RowsAffected, result.Error
}

func excludeIDs(q *gorm.DB, ids []string) *gorm.DB {
	if len(ids) == 0 {
		return q
	}
	return q.Where("question_id NOT IN ?", ids)
}
