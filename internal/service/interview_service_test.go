package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/intervia/interview-api/internal/dto"
	"github.com/intervia/interview-api/internal/engine"
	"github.com/intervia/interview-api/internal/models"
	"github.com/intervia/interview-api/internal/repository"
	"github.com/intervia/interview-api/pkg/ai"
)

type stubEvaluator struct {
	evaluation ai.Evaluation
	err        error
}

func (s *stubEvaluator) Evaluate(context.Context, ai.EvaluationInput) (ai.Evaluation, error) {
	return s.evaluation, s.err
}

type stubAdvisor struct {
	suggestion ai.Suggestion
	err        error
	calls      int
}

func (s *stubAdvisor) SuggestNextParams(context.Context, string, string, ai.PerformanceSummary) (ai.Suggestion, error) {
	s.calls++
	return s.suggestion, s.err
}

type interviewFixture struct {
	service   InterviewService
	sessions  repository.SessionRepository
	questions repository.QuestionRepository
	db        *gorm.DB
}

func newInterviewFixture(t *testing.T, evaluator ai.AnswerEvaluator, advisor ai.Advisor, opts InterviewOptions) interviewFixture {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file::memory:?cache=shared"), &gorm.Config{})
	require.NoError(t, err)
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			sqlDB.Close()
		}
	})
	require.NoError(t, db.AutoMigrate(&models.Candidate{}, &models.Session{}, &models.Question{}, &models.Evaluation{}))

	sessionRepo := repository.NewSessionRepository(db)
	candidateRepo := repository.NewCandidateRepository(db)
	questionRepo := repository.NewQuestionRepository(db)
	evaluationRepo := repository.NewEvaluationRepository(db)

	reports := NewReportService(sessionRepo, candidateRepo, evaluationRepo, nil, 0, zerolog.Nop())

	svc := NewInterviewService(InterviewServiceParams{
		Sessions:    sessionRepo,
		Candidates:  candidateRepo,
		Questions:   questionRepo,
		Evaluations: evaluationRepo,
		Evaluator:   evaluator,
		Advisor:     advisor,
		Reports:     reports,
		Validator:   validator.New(validator.WithRequiredStructEnabled()),
		Logger:      zerolog.Nop(),
		Options:     opts,
	})

	return interviewFixture{service: svc, sessions: sessionRepo, questions: questionRepo, db: db}
}

func seedBank(t *testing.T, db *gorm.DB) {
	t.Helper()
	id := 0
	for _, domain := range models.Domains() {
		for _, difficulty := range models.Difficulties() {
			for i := 0; i < 2; i++ {
				id++
				question := models.Question{
					QuestionID:        questionID(id),
					QuestionText:      "Explain a core concept of " + string(domain),
					Domain:            domain,
					Difficulty:        difficulty,
					ExpectedKeyPoints: []string{"complexity", "tradeoffs"},
					IsActive:          true,
				}
				require.NoError(t, db.Create(&question).Error)
			}
		}
	}
}

func questionID(n int) string {
	return "QB" + string(rune('A'+n/26)) + string(rune('A'+n%26))
}

func evaluationOf(score float64) ai.Evaluation {
	return ai.Evaluation{Correctness: score, Clarity: score, Confidence: score, Feedback: "noted"}
}

func TestStartSessionCreatesCandidateAndDrawsOpeningQuestion(t *testing.T) {
	fixture := newInterviewFixture(t, &stubEvaluator{}, &stubAdvisor{}, DefaultInterviewOptions())
	seedBank(t, fixture.db)

	response, err := fixture.service.Start(context.Background(), dto.StartSessionRequest{
		CandidateID:      "cand-1",
		Name:             "Dina",
		PreferredDomains: []string{"system_design"},
	})
	require.NoError(t, err)
	require.NotEmpty(t, response.SessionID)
	require.Equal(t, models.DifficultyMedium, response.FirstQuestion.Difficulty)
	require.Equal(t, models.DomainSystemDesign, response.FirstQuestion.Domain)
	require.Equal(t, 1, response.SessionInfo.TotalQuestions)
	require.Equal(t, 0, response.SessionInfo.QuestionsAnswered)

	session, err := fixture.sessions.GetBySessionID(context.Background(), response.SessionID)
	require.NoError(t, err)
	require.True(t, session.IsActive())
	require.Len(t, session.QuestionsAsked, 1)
}

func TestStartSessionRejectsConcurrentSessions(t *testing.T) {
	fixture := newInterviewFixture(t, &stubEvaluator{}, &stubAdvisor{}, DefaultInterviewOptions())
	seedBank(t, fixture.db)

	_, err := fixture.service.Start(context.Background(), dto.StartSessionRequest{CandidateID: "cand-1"})
	require.NoError(t, err)

	_, err = fixture.service.Start(context.Background(), dto.StartSessionRequest{CandidateID: "cand-1"})
	require.ErrorIs(t, err, ErrCandidateHasActiveSession)
}

func TestStartSessionFailsOnEmptyBank(t *testing.T) {
	fixture := newInterviewFixture(t, &stubEvaluator{}, &stubAdvisor{}, DefaultInterviewOptions())

	_, err := fixture.service.Start(context.Background(), dto.StartSessionRequest{CandidateID: "cand-1"})
	require.ErrorIs(t, err, ErrNoQuestionAvailable)
}

func TestEvaluateAnswerHighScoreOverridesAdvisorDifficulty(t *testing.T) {
	advisor := &stubAdvisor{suggestion: ai.Suggestion{Domain: "algorithms", Difficulty: "easy", Reasoning: "slow down"}}
	fixture := newInterviewFixture(t, &stubEvaluator{evaluation: evaluationOf(0.9)}, advisor, DefaultInterviewOptions())
	seedBank(t, fixture.db)

	start, err := fixture.service.Start(context.Background(), dto.StartSessionRequest{
		CandidateID:      "cand-1",
		PreferredDomains: []string{"algorithms"},
	})
	require.NoError(t, err)

	response, err := fixture.service.EvaluateAnswer(context.Background(), dto.EvaluateAnswerRequest{
		SessionID:   start.SessionID,
		CandidateID: "cand-1",
		QuestionID:  start.FirstQuestion.QuestionID,
		Answer:      "A thorough answer covering complexity and tradeoffs.",
	})
	require.NoError(t, err)
	require.Equal(t, 1, advisor.calls)
	require.False(t, response.SessionEnded)
	require.NotNil(t, response.NextQuestion)

	// Advisor asked for easy; the 0.9 average forces an increase on it.
	session, err := fixture.sessions.GetBySessionID(context.Background(), start.SessionID)
	require.NoError(t, err)
	require.Equal(t, models.DifficultyMedium, session.CurrentDifficulty)
	require.Len(t, session.QuestionsAsked, 2, "exactly one question appended per evaluation")
	require.Len(t, session.Evaluations, 1)
}

func TestEvaluateAnswerLowScoreForcesDecrease(t *testing.T) {
	advisor := &stubAdvisor{suggestion: ai.Suggestion{Domain: "algorithms", Difficulty: "hard"}}
	fixture := newInterviewFixture(t, &stubEvaluator{evaluation: evaluationOf(0.3)}, advisor, DefaultInterviewOptions())
	seedBank(t, fixture.db)

	start, err := fixture.service.Start(context.Background(), dto.StartSessionRequest{
		CandidateID:      "cand-1",
		PreferredDomains: []string{"algorithms"},
	})
	require.NoError(t, err)

	_, err = fixture.service.EvaluateAnswer(context.Background(), dto.EvaluateAnswerRequest{
		SessionID:   start.SessionID,
		CandidateID: "cand-1",
		QuestionID:  start.FirstQuestion.QuestionID,
		Answer:      "not sure",
	})
	require.NoError(t, err)

	session, err := fixture.sessions.GetBySessionID(context.Background(), start.SessionID)
	require.NoError(t, err)
	require.Equal(t, models.DifficultyMedium, session.CurrentDifficulty, "hard suggestion decreased by the 0.3 average")
}

func TestEvaluateAnswerAdvisorFailureUsesFallback(t *testing.T) {
	advisor := &stubAdvisor{err: errors.New("model timeout")}
	fixture := newInterviewFixture(t, &stubEvaluator{evaluation: evaluationOf(0.9)}, advisor, DefaultInterviewOptions())
	seedBank(t, fixture.db)

	started := time.Now().UTC()
	session := models.Session{
		SessionID:         "sess-manual",
		CandidateID:       "cand-1",
		Status:            models.SessionStatusActive,
		CurrentDifficulty: models.DifficultyMedium,
		CurrentDomain:     models.DomainAlgorithms,
		QuestionsAsked: []models.AskedQuestion{{
			QuestionID:   "QBAB",
			QuestionText: "Explain a core concept of algorithms",
			Difficulty:   models.DifficultyMedium,
			Domain:       models.DomainAlgorithms,
			AskedAt:      started,
		}},
		TotalQuestions: 1,
		StartedAt:      started,
		TimeoutAt:      started.Add(time.Hour),
	}
	require.NoError(t, fixture.sessions.Create(context.Background(), &session))

	response, err := fixture.service.EvaluateAnswer(context.Background(), dto.EvaluateAnswerRequest{
		SessionID:   "sess-manual",
		CandidateID: "cand-1",
		QuestionID:  "QBAB",
		Answer:      "A strong answer with complexity analysis.",
	})
	require.NoError(t, err)
	require.False(t, response.SessionEnded)
	require.NotNil(t, response.NextQuestion)
	require.True(t, response.NextQuestion.Difficulty.Valid())
	require.True(t, response.NextQuestion.Domain.Valid())
	require.Contains(t, response.AdaptiveReasoning, "Fallback rule-based adjustment")

	// Medium with a 0.9 performance moves up to hard.
	reloaded, err := fixture.sessions.GetBySessionID(context.Background(), "sess-manual")
	require.NoError(t, err)
	require.Equal(t, models.DifficultyHard, reloaded.CurrentDifficulty)
	require.Len(t, reloaded.QuestionsAsked, 2)
}

func TestEvaluateAnswerEvaluatorFailureFallsBackToHeuristic(t *testing.T) {
	fixture := newInterviewFixture(t, &stubEvaluator{err: errors.New("api down")}, &stubAdvisor{err: errors.New("api down")}, DefaultInterviewOptions())
	seedBank(t, fixture.db)

	start, err := fixture.service.Start(context.Background(), dto.StartSessionRequest{CandidateID: "cand-1"})
	require.NoError(t, err)

	response, err := fixture.service.EvaluateAnswer(context.Background(), dto.EvaluateAnswerRequest{
		SessionID:   start.SessionID,
		CandidateID: "cand-1",
		QuestionID:  start.FirstQuestion.QuestionID,
		Answer:      "Arrays give contiguous storage, for example lookups are O(1).",
	})
	require.NoError(t, err)
	require.NotEmpty(t, response.Evaluation.Feedback)
	require.GreaterOrEqual(t, response.Evaluation.Correctness, 0.0)
	require.LessOrEqual(t, response.Evaluation.Correctness, 1.0)
}

func TestEvaluateAnswerEndsAtQuestionCap(t *testing.T) {
	opts := DefaultInterviewOptions()
	opts.Termination = engine.TerminationConfig{MaxQuestions: 1, InactivityWindow: 30 * time.Minute}

	fixture := newInterviewFixture(t, &stubEvaluator{evaluation: evaluationOf(0.8)}, &stubAdvisor{}, opts)
	seedBank(t, fixture.db)

	start, err := fixture.service.Start(context.Background(), dto.StartSessionRequest{CandidateID: "cand-1"})
	require.NoError(t, err)

	response, err := fixture.service.EvaluateAnswer(context.Background(), dto.EvaluateAnswerRequest{
		SessionID:   start.SessionID,
		CandidateID: "cand-1",
		QuestionID:  start.FirstQuestion.QuestionID,
		Answer:      "final answer",
	})
	require.NoError(t, err)
	require.True(t, response.SessionEnded)
	require.Equal(t, "max_questions_reached", response.Reason)
	require.Nil(t, response.NextQuestion)
	require.NotNil(t, response.FinalReport)
	require.Equal(t, 1, response.FinalReport.SessionSummary.QuestionsAnswered)

	session, err := fixture.sessions.GetBySessionID(context.Background(), start.SessionID)
	require.NoError(t, err)
	require.Equal(t, models.SessionStatusCompleted, session.Status)
	require.NotNil(t, session.EndedAt)
	require.Equal(t, "max_questions_reached", session.EndReason)
	require.InDelta(t, 0.8, session.SessionScore, 1e-9)
}

func TestEvaluateAnswerExhaustedBankIsAHardFailure(t *testing.T) {
	advisor := &stubAdvisor{suggestion: ai.Suggestion{Domain: "data_structures", Difficulty: "medium"}}
	fixture := newInterviewFixture(t, &stubEvaluator{evaluation: evaluationOf(0.8)}, advisor, DefaultInterviewOptions())

	// A single-question bank leaves nothing to draw after the opener,
	// even once every relaxation step has widened the query.
	require.NoError(t, fixture.db.Create(&models.Question{
		QuestionID:   "QONLY",
		QuestionText: "Explain hash table collision strategies",
		Domain:       models.DomainDataStructures,
		Difficulty:   models.DifficultyMedium,
		IsActive:     true,
	}).Error)

	start, err := fixture.service.Start(context.Background(), dto.StartSessionRequest{CandidateID: "cand-1"})
	require.NoError(t, err)

	_, err = fixture.service.EvaluateAnswer(context.Background(), dto.EvaluateAnswerRequest{
		SessionID:   start.SessionID,
		CandidateID: "cand-1",
		QuestionID:  start.FirstQuestion.QuestionID,
		Answer:      "A decent answer about chaining and open addressing.",
	})
	require.ErrorIs(t, err, ErrNoQuestionAvailable)

	// The failed draw must not terminate the session.
	session, err := fixture.sessions.GetBySessionID(context.Background(), start.SessionID)
	require.NoError(t, err)
	require.True(t, session.IsActive())
	require.Empty(t, session.EndReason)
}

func TestEvaluateAnswerRejectsWrongQuestion(t *testing.T) {
	fixture := newInterviewFixture(t, &stubEvaluator{evaluation: evaluationOf(0.5)}, &stubAdvisor{}, DefaultInterviewOptions())
	seedBank(t, fixture.db)

	start, err := fixture.service.Start(context.Background(), dto.StartSessionRequest{CandidateID: "cand-1"})
	require.NoError(t, err)

	_, err = fixture.service.EvaluateAnswer(context.Background(), dto.EvaluateAnswerRequest{
		SessionID:   start.SessionID,
		CandidateID: "cand-1",
		QuestionID:  "not-the-current-question",
		Answer:      "hello",
	})
	require.ErrorIs(t, err, ErrQuestionNotFound)
}

func TestEvaluateAnswerUnknownSession(t *testing.T) {
	fixture := newInterviewFixture(t, &stubEvaluator{}, &stubAdvisor{}, DefaultInterviewOptions())

	_, err := fixture.service.EvaluateAnswer(context.Background(), dto.EvaluateAnswerRequest{
		SessionID:   "missing",
		CandidateID: "cand-1",
		QuestionID:  "Q1",
		Answer:      "hello",
	})
	require.ErrorIs(t, err, ErrSessionNotFound)
}

func TestEndSession(t *testing.T) {
	fixture := newInterviewFixture(t, &stubEvaluator{evaluation: evaluationOf(0.7)}, &stubAdvisor{suggestion: ai.Suggestion{Domain: "algorithms", Difficulty: "medium"}}, DefaultInterviewOptions())
	seedBank(t, fixture.db)

	start, err := fixture.service.Start(context.Background(), dto.StartSessionRequest{CandidateID: "cand-1"})
	require.NoError(t, err)

	response, err := fixture.service.End(context.Background(), start.SessionID)
	require.NoError(t, err)
	require.Equal(t, start.SessionID, response.SessionSummary.SessionID)
	require.Equal(t, 0, response.SessionSummary.QuestionsAnswered)
	require.Equal(t, "No Data", response.Report.SessionSummary.PerformanceLevel)
	require.Equal(t, "ended_by_candidate", response.Report.SessionSummary.EndReason)

	session, err := fixture.sessions.GetBySessionID(context.Background(), start.SessionID)
	require.NoError(t, err)
	require.Equal(t, "ended_by_candidate", session.EndReason)

	_, err = fixture.service.End(context.Background(), start.SessionID)
	require.ErrorIs(t, err, ErrSessionNotActive)
}

func TestEvaluationHistory(t *testing.T) {
	fixture := newInterviewFixture(t, &stubEvaluator{evaluation: evaluationOf(0.7)}, &stubAdvisor{suggestion: ai.Suggestion{Domain: "algorithms", Difficulty: "medium"}}, DefaultInterviewOptions())
	seedBank(t, fixture.db)

	start, err := fixture.service.Start(context.Background(), dto.StartSessionRequest{CandidateID: "cand-1"})
	require.NoError(t, err)

	_, err = fixture.service.EvaluateAnswer(context.Background(), dto.EvaluateAnswerRequest{
		SessionID:   start.SessionID,
		CandidateID: "cand-1",
		QuestionID:  start.FirstQuestion.QuestionID,
		Answer:      "A solid answer touching on complexity.",
	})
	require.NoError(t, err)

	history, err := fixture.service.EvaluationHistory(context.Background(), "cand-1", 10)
	require.NoError(t, err)
	require.Equal(t, "cand-1", history.CandidateID)
	require.Len(t, history.Evaluations, 1)
	require.Equal(t, start.SessionID, history.Evaluations[0].SessionID)
	require.Equal(t, start.FirstQuestion.QuestionID, history.Evaluations[0].QuestionID)
	require.InDelta(t, 0.7, history.Evaluations[0].OverallScore, 1e-9)

	_, err = fixture.service.EvaluationHistory(context.Background(), "  ", 10)
	require.Error(t, err)
}

func TestListByCandidate(t *testing.T) {
	fixture := newInterviewFixture(t, &stubEvaluator{}, &stubAdvisor{}, DefaultInterviewOptions())
	seedBank(t, fixture.db)

	start, err := fixture.service.Start(context.Background(), dto.StartSessionRequest{CandidateID: "cand-1"})
	require.NoError(t, err)
	_, err = fixture.service.End(context.Background(), start.SessionID)
	require.NoError(t, err)

	list, err := fixture.service.ListByCandidate(context.Background(), "cand-1", 10, 0)
	require.NoError(t, err)
	require.Len(t, list.Sessions, 1)
	require.Equal(t, int64(1), list.Pagination.Total)
	require.False(t, list.Pagination.HasMore)
	require.NotNil(t, list.Sessions[0].DurationMinutes)
}
