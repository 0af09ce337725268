package service

import (
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/intervia/interview-api/internal/dto"
	"github.com/intervia/interview-api/internal/models"
	"github.com/intervia/interview-api/internal/repository"
)

func newSeedFixture(t *testing.T, enabled bool, token string) (SeedService, repository.QuestionRepository) {
	t.Helper()
	db, err := gorm.Open(sqlite.Open("file::memory:?cache=shared"), &gorm.Config{})
	require.NoError(t, err)
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			sqlDB.Close()
		}
	})
	require.NoError(t, db.AutoMigrate(&models.Question{}))

	repo := repository.NewQuestionRepository(db)
	return NewSeedService(repo, enabled, token, zerolog.Nop()), repo
}

func TestSeedQuestions(t *testing.T) {
	svc, repo := newSeedFixture(t, true, "secret")

	affected, err := svc.SeedQuestions(context.Background(), "secret", []dto.QuestionSeed{
		{QuestionID: "Q1", QuestionText: "Explain indexes", Domain: "database", Difficulty: "medium", ExpectedKeyPoints: []string{"b-tree", "selectivity"}},
	})
	require.NoError(t, err)
	require.Equal(t, int64(1), affected)

	question, err := repo.GetByQuestionID(context.Background(), "Q1")
	require.NoError(t, err)
	require.Equal(t, models.DomainDatabase, question.Domain)
	require.True(t, question.IsActive)
	require.Equal(t, []string{"b-tree", "selectivity"}, []string(question.ExpectedKeyPoints))
}

func TestSeedQuestionsRejectsBadToken(t *testing.T) {
	svc, _ := newSeedFixture(t, true, "secret")

	_, err := svc.SeedQuestions(context.Background(), "wrong", []dto.QuestionSeed{
		{QuestionID: "Q1", QuestionText: "x", Domain: "database", Difficulty: "easy"},
	})
	require.ErrorIs(t, err, ErrSeedUnauthorized)
}

func TestSeedQuestionsDisabled(t *testing.T) {
	svc, _ := newSeedFixture(t, false, "secret")

	_, err := svc.SeedQuestions(context.Background(), "secret", nil)
	require.ErrorIs(t, err, ErrSeedDisabled)
}

func TestSeedQuestionsRejectsUnknownEnums(t *testing.T) {
	svc, _ := newSeedFixture(t, true, "secret")

	_, err := svc.SeedQuestions(context.Background(), "secret", []dto.QuestionSeed{
		{QuestionID: "Q1", QuestionText: "x", Domain: "astrology", Difficulty: "easy"},
	})
	require.Error(t, err)
}
