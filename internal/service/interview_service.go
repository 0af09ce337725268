package service

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"strings"
	"sync"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/microcosm-cc/bluemonday"
	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"gorm.io/gorm"

	"github.com/intervia/interview-api/internal/dto"
	"github.com/intervia/interview-api/internal/engine"
	"github.com/intervia/interview-api/internal/events"
	"github.com/intervia/interview-api/internal/models"
	"github.com/intervia/interview-api/internal/observability"
	"github.com/intervia/interview-api/internal/repository"
	"github.com/intervia/interview-api/pkg/ai"
)

var (
	ErrSessionNotFound           = errors.New("session not found")
	ErrSessionNotActive          = errors.New("session is not active")
	ErrCandidateHasActiveSession = errors.New("candidate already has an active session")
	ErrQuestionNotFound          = errors.New("question not found in session")
	ErrAnswerAlreadySubmitted    = errors.New("answer already submitted for this question")
	ErrNoQuestionAvailable       = errors.New("no question available for the requested parameters")
)

// endReasonCandidate marks sessions closed explicitly by the candidate.
const endReasonCandidate = "ended_by_candidate"

// InterviewService drives the adaptive interview loop: session
// lifecycle, answer grading and next-question selection.
type InterviewService interface {
	Start(ctx context.Context, req dto.StartSessionRequest) (dto.StartSessionResponse, error)
	EvaluateAnswer(ctx context.Context, req dto.EvaluateAnswerRequest) (dto.EvaluateAnswerResponse, error)
	End(ctx context.Context, sessionID string) (dto.EndSessionResponse, error)
	Get(ctx context.Context, sessionID string) (dto.SessionDetail, error)
	ListByCandidate(ctx context.Context, candidateID string, limit, offset int) (dto.SessionList, error)
	EvaluationHistory(ctx context.Context, candidateID string, limit int) (dto.EvaluationHistory, error)
}

// InterviewOptions carries the tunables of the interview loop.
type InterviewOptions struct {
	SessionDuration time.Duration
	Termination     engine.TerminationConfig
}

// DefaultInterviewOptions mirrors the production defaults: one hour per
// session on top of the default termination policy.
func DefaultInterviewOptions() InterviewOptions {
	return InterviewOptions{
		SessionDuration: time.Hour,
		Termination:     engine.DefaultTerminationConfig(),
	}
}

// InterviewServiceParams bundles the collaborators of the interview service.
type InterviewServiceParams struct {
	Sessions    repository.SessionRepository
	Candidates  repository.CandidateRepository
	Questions   repository.QuestionRepository
	Evaluations repository.EvaluationRepository
	Evaluator   ai.AnswerEvaluator
	Advisor     ai.Advisor
	Reports     ReportService
	Publisher   events.Publisher
	Validator   *validator.Validate
	Logger      zerolog.Logger
	Options     InterviewOptions
	Rand        *rand.Rand
	Now         func() time.Time
}

type interviewService struct {
	sessions    repository.SessionRepository
	candidates  repository.CandidateRepository
	questions   repository.QuestionRepository
	evaluations repository.EvaluationRepository
	evaluator   ai.AnswerEvaluator
	advisor     ai.Advisor
	reports     ReportService
	publisher   events.Publisher
	validator   *validator.Validate
	logger      zerolog.Logger
	tracer      trace.Tracer
	sanitizer   *bluemonday.Policy
	opts        InterviewOptions

	rngMu sync.Mutex
	rng   *rand.Rand

	now func() time.Time
}

// NewInterviewService constructs the interview service.
func NewInterviewService(params InterviewServiceParams) InterviewService {
	opts := params.Options
	if opts.SessionDuration <= 0 {
		opts.SessionDuration = time.Hour
	}
	if opts.Termination.MaxQuestions <= 0 {
		opts.Termination = engine.DefaultTerminationConfig()
	}

	rng := params.Rand
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}

	now := params.Now
	if now == nil {
		now = func() time.Time { return time.Now().UTC() }
	}

	publisher := params.Publisher
	if publisher == nil {
		publisher = events.NopPublisher{}
	}

	return &interviewService{
		sessions:    params.Sessions,
		candidates:  params.Candidates,
		questions:   params.Questions,
		evaluations: params.Evaluations,
		evaluator:   params.Evaluator,
		advisor:     params.Advisor,
		reports:     params.Reports,
		publisher:   publisher,
		validator:   params.Validator,
		logger:      params.Logger.With().Str("component", "interview_service").Logger(),
		tracer:      otel.Tracer("github.com/intervia/interview-api/internal/service/interview"),
		sanitizer:   bluemonday.StrictPolicy(),
		opts:        opts,
		rng:         rng,
		now:         now,
	}
}

func (s *interviewService) Start(ctx context.Context, req dto.StartSessionRequest) (dto.StartSessionResponse, error) {
	if err := s.validator.Struct(req); err != nil {
		return dto.StartSessionResponse{}, err
	}

	spanCtx, span := s.tracer.Start(ctx, "interview.start", trace.WithAttributes(
		attribute.String("candidate.id", req.CandidateID),
	))
	defer span.End()

	candidate, err := s.ensureCandidate(spanCtx, req)
	if err != nil {
		span.RecordError(err)
		return dto.StartSessionResponse{}, err
	}

	if _, err := s.sessions.GetActiveByCandidate(spanCtx, candidate.CandidateID); err == nil {
		return dto.StartSessionResponse{}, ErrCandidateHasActiveSession
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		span.RecordError(err)
		return dto.StartSessionResponse{}, fmt.Errorf("check active session: %w", err)
	}

	domain := startingDomain(candidate)
	difficulty := models.DifficultyMedium

	question, err := s.questions.Random(spanCtx, repository.RandomQuestionQuery{
		Domain:     domain,
		Difficulty: difficulty,
	})
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.StartSessionResponse{}, ErrNoQuestionAvailable
		}
		span.RecordError(err)
		return dto.StartSessionResponse{}, fmt.Errorf("draw first question: %w", err)
	}

	startedAt := s.now()
	session := models.Session{
		SessionID:         uuid.NewString(),
		CandidateID:       candidate.CandidateID,
		Status:            models.SessionStatusActive,
		CurrentDifficulty: difficulty,
		CurrentDomain:     domain,
		QuestionsAsked: []models.AskedQuestion{{
			QuestionID:   question.QuestionID,
			QuestionText: question.QuestionText,
			Difficulty:   question.Difficulty,
			Domain:       question.Domain,
			AskedAt:      startedAt,
		}},
		TotalQuestions: 1,
		StartedAt:      startedAt,
		TimeoutAt:      startedAt.Add(s.opts.SessionDuration),
	}

	if err := s.sessions.Create(spanCtx, &session); err != nil {
		span.RecordError(err)
		return dto.StartSessionResponse{}, fmt.Errorf("create session: %w", err)
	}

	if err := s.questions.RecordUsage(spanCtx, question.QuestionID); err != nil {
		s.logger.Warn().Err(err).Str("question_id", question.QuestionID).Msg("failed to record question usage")
	}

	observability.SessionsStarted().Inc()
	observability.QuestionsServed().WithLabelValues(string(question.Domain), string(question.Difficulty)).Inc()
	s.publisher.SessionStarted(spanCtx, session)
	s.publisher.QuestionAsked(spanCtx, session, session.QuestionsAsked[0])

	s.logger.Info().
		Str("session_id", session.SessionID).
		Str("candidate_id", session.CandidateID).
		Str("domain", string(domain)).
		Msg("interview session started")

	return dto.StartSessionResponse{
		SessionID:     session.SessionID,
		CandidateID:   session.CandidateID,
		FirstQuestion: dto.NewQuestionView(question),
		SessionInfo:   sessionInfo(session),
	}, nil
}

func (s *interviewService) EvaluateAnswer(ctx context.Context, req dto.EvaluateAnswerRequest) (dto.EvaluateAnswerResponse, error) {
	if err := s.validator.Struct(req); err != nil {
		return dto.EvaluateAnswerResponse{}, err
	}

	spanCtx, span := s.tracer.Start(ctx, "interview.evaluate_answer", trace.WithAttributes(
		attribute.String("session.id", req.SessionID),
		attribute.String("question.id", req.QuestionID),
	))
	defer span.End()

	session, err := s.sessions.GetBySessionID(spanCtx, req.SessionID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.EvaluateAnswerResponse{}, ErrSessionNotFound
		}
		span.RecordError(err)
		return dto.EvaluateAnswerResponse{}, fmt.Errorf("load session: %w", err)
	}
	if session.CandidateID != req.CandidateID {
		return dto.EvaluateAnswerResponse{}, ErrSessionNotFound
	}
	if !session.IsActive() {
		return dto.EvaluateAnswerResponse{}, ErrSessionNotActive
	}

	if len(session.QuestionsAsked) == 0 {
		return dto.EvaluateAnswerResponse{}, ErrQuestionNotFound
	}
	current := session.QuestionsAsked[len(session.QuestionsAsked)-1]
	if current.QuestionID != req.QuestionID {
		return dto.EvaluateAnswerResponse{}, ErrQuestionNotFound
	}
	if len(session.Evaluations) >= len(session.QuestionsAsked) {
		return dto.EvaluateAnswerResponse{}, ErrAnswerAlreadySubmitted
	}

	answer := strings.TrimSpace(s.sanitizer.Sanitize(req.Answer))
	if answer == "" {
		return dto.EvaluateAnswerResponse{}, errors.New("answer empty after sanitization")
	}

	keyPoints := s.expectedKeyPoints(spanCtx, current)
	scores, source := s.evaluateAnswer(spanCtx, current.QuestionText, answer, keyPoints)

	performance := scores.Average()
	band := engine.BandFor(performance)
	span.SetAttributes(
		attribute.Float64("evaluation.score", performance),
		attribute.String("evaluation.band", string(band)),
	)

	now := s.now()
	session.Evaluations = append(session.Evaluations, models.AnswerRecord{
		QuestionID:  current.QuestionID,
		Answer:      answer,
		Evaluation:  scores,
		EvaluatedAt: now,
	})
	session.CurrentQuestionIndex = len(session.Evaluations)

	record := models.Evaluation{
		EvaluationID:    uuid.NewString(),
		SessionID:       session.SessionID,
		CandidateID:     session.CandidateID,
		QuestionID:      current.QuestionID,
		Answer:          answer,
		Correctness:     scores.Correctness,
		Clarity:         scores.Clarity,
		Confidence:      scores.Confidence,
		Feedback:        scores.Feedback,
		OverallScore:    performance,
		DifficultyLevel: current.Difficulty,
		Domain:          current.Domain,
		Raw: map[string]any{
			"band":   string(band),
			"source": source,
		},
	}
	if err := s.evaluations.Create(spanCtx, &record); err != nil {
		span.RecordError(err)
		return dto.EvaluateAnswerResponse{}, fmt.Errorf("persist evaluation: %w", err)
	}

	if err := s.questions.RecordScore(spanCtx, current.QuestionID, performance); err != nil {
		s.logger.Warn().Err(err).Str("question_id", current.QuestionID).Msg("failed to record question score")
	}

	observability.AnswersEvaluated().WithLabelValues(string(band), source).Inc()
	observability.EvaluationScores().Observe(performance)
	s.publisher.AnswerGraded(spanCtx, session, scores)

	response := dto.EvaluateAnswerResponse{
		Evaluation: dto.EvaluationView{
			Correctness: scores.Correctness,
			Clarity:     scores.Clarity,
			Confidence:  scores.Confidence,
			Feedback:    scores.Feedback,
		},
	}

	verdict := engine.ShouldEnd(&session, s.opts.Termination, now)
	if verdict.ShouldEnd {
		report := s.finalize(spanCtx, &session, verdict.TerminalStatus(), string(verdict.Reason))
		response.SessionEnded = true
		response.Reason = string(verdict.Reason)
		response.FinalReport = report
		return response, nil
	}

	decision := s.selectNext(spanCtx, &session, performance)
	span.SetAttributes(
		attribute.String("next.domain", string(decision.Domain)),
		attribute.String("next.difficulty", string(decision.Difficulty)),
	)

	next, err := s.questions.Random(spanCtx, repository.RandomQuestionQuery{
		Domain:     decision.Domain,
		Difficulty: decision.Difficulty,
		ExcludeIDs: session.AskedQuestionIDs(),
	})
	if err != nil {
		// An empty pool after full relaxation has no further fallback.
		if errors.Is(err, gorm.ErrRecordNotFound) {
			span.RecordError(err)
			return dto.EvaluateAnswerResponse{}, ErrNoQuestionAvailable
		}
		span.RecordError(err)
		return dto.EvaluateAnswerResponse{}, fmt.Errorf("draw next question: %w", err)
	}

	asked := models.AskedQuestion{
		QuestionID:   next.QuestionID,
		QuestionText: next.QuestionText,
		Difficulty:   next.Difficulty,
		Domain:       next.Domain,
		AskedAt:      s.now(),
	}
	session.QuestionsAsked = append(session.QuestionsAsked, asked)
	session.CurrentDomain = decision.Domain
	session.CurrentDifficulty = decision.Difficulty
	session.TotalQuestions = len(session.QuestionsAsked)

	if err := s.sessions.Save(spanCtx, &session); err != nil {
		span.RecordError(err)
		return dto.EvaluateAnswerResponse{}, fmt.Errorf("save session: %w", err)
	}

	if err := s.questions.RecordUsage(spanCtx, next.QuestionID); err != nil {
		s.logger.Warn().Err(err).Str("question_id", next.QuestionID).Msg("failed to record question usage")
	}

	observability.QuestionsServed().WithLabelValues(string(next.Domain), string(next.Difficulty)).Inc()
	s.publisher.QuestionAsked(spanCtx, session, asked)

	view := dto.NewQuestionView(next)
	info := sessionInfo(session)
	response.NextQuestion = &view
	response.SessionInfo = &info
	response.AdaptiveReasoning = decision.Reasoning
	return response, nil
}

func (s *interviewService) End(ctx context.Context, sessionID string) (dto.EndSessionResponse, error) {
	session, err := s.sessions.GetBySessionID(ctx, sessionID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.EndSessionResponse{}, ErrSessionNotFound
		}
		return dto.EndSessionResponse{}, fmt.Errorf("load session: %w", err)
	}
	if !session.IsActive() {
		return dto.EndSessionResponse{}, ErrSessionNotActive
	}

	report := s.finalize(ctx, &session, models.SessionStatusCompleted, endReasonCandidate)

	summary := dto.SessionSummary{
		SessionID:         session.SessionID,
		TotalQuestions:    session.TotalQuestions,
		QuestionsAnswered: len(session.Evaluations),
		SessionScore:      session.SessionScore,
	}
	if session.EndedAt != nil {
		summary.DurationMinutes = int(session.EndedAt.Sub(session.StartedAt).Minutes())
	}

	response := dto.EndSessionResponse{SessionSummary: summary}
	if report != nil {
		response.Report = *report
	}
	return response, nil
}

func (s *interviewService) Get(ctx context.Context, sessionID string) (dto.SessionDetail, error) {
	session, err := s.sessions.GetBySessionID(ctx, sessionID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.SessionDetail{}, ErrSessionNotFound
		}
		return dto.SessionDetail{}, fmt.Errorf("load session: %w", err)
	}
	return dto.NewSessionDetail(session), nil
}

func (s *interviewService) ListByCandidate(ctx context.Context, candidateID string, limit, offset int) (dto.SessionList, error) {
	if strings.TrimSpace(candidateID) == "" {
		return dto.SessionList{}, errors.New("candidate id is required")
	}
	if limit <= 0 {
		limit = 20
	}
	if limit > 100 {
		limit = 100
	}
	if offset < 0 {
		offset = 0
	}

	sessions, total, err := s.sessions.ListByCandidate(ctx, candidateID, limit, offset)
	if err != nil {
		return dto.SessionList{}, fmt.Errorf("list sessions: %w", err)
	}

	items := make([]dto.SessionListItem, 0, len(sessions))
	for _, session := range sessions {
		item := dto.SessionListItem{
			SessionID:      session.SessionID,
			Status:         session.Status,
			TotalQuestions: session.TotalQuestions,
			SessionScore:   session.SessionScore,
			StartedAt:      session.StartedAt,
			EndedAt:        session.EndedAt,
		}
		if session.EndedAt != nil {
			minutes := int(session.EndedAt.Sub(session.StartedAt).Minutes())
			item.DurationMinutes = &minutes
		}
		items = append(items, item)
	}

	return dto.SessionList{
		Sessions: items,
		Pagination: dto.Pagination{
			Total:   total,
			Limit:   limit,
			Offset:  offset,
			HasMore: int64(offset+len(items)) < total,
		},
	}, nil
}

// EvaluationHistory returns the candidate's most recent graded answers
// across all their sessions.
func (s *interviewService) EvaluationHistory(ctx context.Context, candidateID string, limit int) (dto.EvaluationHistory, error) {
	if strings.TrimSpace(candidateID) == "" {
		return dto.EvaluationHistory{}, errors.New("candidate id is required")
	}
	if limit <= 0 || limit > 100 {
		limit = 50
	}

	evaluations, err := s.evaluations.ListByCandidate(ctx, candidateID, limit)
	if err != nil {
		return dto.EvaluationHistory{}, fmt.Errorf("list evaluations: %w", err)
	}

	items := make([]dto.EvaluationHistoryItem, 0, len(evaluations))
	for _, evaluation := range evaluations {
		items = append(items, dto.EvaluationHistoryItem{
			EvaluationID: evaluation.EvaluationID,
			SessionID:    evaluation.SessionID,
			QuestionID:   evaluation.QuestionID,
			Domain:       evaluation.Domain,
			Difficulty:   evaluation.DifficultyLevel,
			OverallScore: evaluation.OverallScore,
			Feedback:     evaluation.Feedback,
			CreatedAt:    evaluation.CreatedAt,
		})
	}

	return dto.EvaluationHistory{CandidateID: candidateID, Evaluations: items}, nil
}

// selectNext picks the next question parameters: advisor suggestion
// validated against the adjustment rules, or the deterministic fallback
// when the advisor fails for any reason.
func (s *interviewService) selectNext(ctx context.Context, session *models.Session, performance float64) engine.Decision {
	recentAverage := engine.RecentAverage(session, performance)

	suggestion, err := s.advisor.SuggestNextParams(ctx, string(session.CurrentDomain), string(session.CurrentDifficulty), ai.PerformanceSummary{
		CurrentScore:   performance,
		RecentAverage:  recentAverage,
		RecentScores:   engine.RecentScores(session),
		TotalQuestions: session.TotalQuestions,
	})
	if err != nil {
		s.logger.Warn().Err(err).Str("session_id", session.SessionID).Msg("advisor unavailable, using rule-based fallback")
		observability.AdvisorFallbacks().Inc()
		return engine.Fallback(session, performance)
	}

	return engine.ApplyAdvisor(engine.Suggestion{
		Domain:     suggestion.Domain,
		Difficulty: suggestion.Difficulty,
		Reasoning:  suggestion.Reasoning,
	}, session.CurrentDomain, session.CurrentDifficulty, recentAverage)
}

// evaluateAnswer grades through the external evaluator, falling back to
// the deterministic heuristic when the call fails.
func (s *interviewService) evaluateAnswer(ctx context.Context, questionText, answer string, keyPoints []string) (models.EvaluationScores, string) {
	evaluation, err := s.evaluator.Evaluate(ctx, ai.EvaluationInput{
		QuestionText:      questionText,
		Answer:            answer,
		ExpectedKeyPoints: keyPoints,
	})
	source := "ai"
	if err != nil {
		s.logger.Warn().Err(err).Msg("evaluator unavailable, using heuristic evaluation")
		s.rngMu.Lock()
		evaluation = ai.MockEvaluation(answer, keyPoints, s.rng)
		s.rngMu.Unlock()
		source = "mock"
	}

	return models.EvaluationScores{
		Correctness: clamp01(evaluation.Correctness),
		Clarity:     clamp01(evaluation.Clarity),
		Confidence:  clamp01(evaluation.Confidence),
		Feedback:    evaluation.Feedback,
	}, source
}

// expectedKeyPoints resolves grading key points from the question bank.
// Generated questions are not in the bank; they grade without key points.
func (s *interviewService) expectedKeyPoints(ctx context.Context, asked models.AskedQuestion) []string {
	question, err := s.questions.GetByQuestionID(ctx, asked.QuestionID)
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			s.logger.Warn().Err(err).Str("question_id", asked.QuestionID).Msg("failed to load question for grading")
		}
		return nil
	}
	return question.ExpectedKeyPoints
}

// finalize closes the session exactly once, updates candidate
// aggregates and produces the final report. Report and aggregate
// failures are logged, never surfaced.
func (s *interviewService) finalize(ctx context.Context, session *models.Session, status models.SessionStatus, reason string) *dto.SessionReport {
	endedAt := s.now()
	session.Status = status
	session.EndedAt = &endedAt
	session.EndReason = reason
	session.SessionScore = session.ComputeScore()

	if err := s.sessions.Save(ctx, session); err != nil {
		s.logger.Error().Err(err).Str("session_id", session.SessionID).Msg("failed to persist session end")
	}

	s.updateCandidateStats(ctx, session)

	observability.SessionsEnded().WithLabelValues(reason).Inc()
	s.publisher.SessionEnded(ctx, *session, reason)

	s.logger.Info().
		Str("session_id", session.SessionID).
		Str("reason", reason).
		Float64("session_score", session.SessionScore).
		Msg("interview session ended")

	if s.reports == nil {
		return nil
	}
	report, err := s.reports.Generate(ctx, *session, reason)
	if err != nil {
		s.logger.Warn().Err(err).Str("session_id", session.SessionID).Msg("failed to generate final report")
		return nil
	}
	return &report
}

func (s *interviewService) updateCandidateStats(ctx context.Context, session *models.Session) {
	candidate, err := s.candidates.GetByCandidateID(ctx, session.CandidateID)
	if err != nil {
		s.logger.Warn().Err(err).Str("candidate_id", session.CandidateID).Msg("failed to load candidate for stats update")
		return
	}

	previous := candidate.AverageScore * float64(candidate.TotalSessions)
	candidate.TotalSessions++
	candidate.AverageScore = (previous + session.SessionScore) / float64(candidate.TotalSessions)

	if err := s.candidates.Save(ctx, &candidate); err != nil {
		s.logger.Warn().Err(err).Str("candidate_id", session.CandidateID).Msg("failed to update candidate stats")
	}
}

func (s *interviewService) ensureCandidate(ctx context.Context, req dto.StartSessionRequest) (models.Candidate, error) {
	candidate, err := s.candidates.GetByCandidateID(ctx, req.CandidateID)
	if err == nil {
		return candidate, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return models.Candidate{}, fmt.Errorf("load candidate: %w", err)
	}

	name := strings.TrimSpace(s.sanitizer.Sanitize(req.Name))
	if name == "" {
		name = "Anonymous Candidate"
	}

	level := models.ExperienceJunior
	if req.ExperienceLevel != "" {
		level = models.ExperienceLevel(req.ExperienceLevel)
	}

	preferred := make([]models.Domain, 0, len(req.PreferredDomains))
	for _, raw := range req.PreferredDomains {
		if domain, ok := models.ParseDomain(raw); ok {
			preferred = append(preferred, domain)
		}
	}

	candidate = models.Candidate{
		CandidateID:      req.CandidateID,
		Name:             name,
		Email:            strings.TrimSpace(req.Email),
		ExperienceLevel:  level,
		PreferredDomains: preferred,
	}
	if err := s.candidates.Create(ctx, &candidate); err != nil {
		return models.Candidate{}, fmt.Errorf("create candidate: %w", err)
	}
	return candidate, nil
}

// startingDomain picks the candidate's first preferred domain, falling
// back to data structures when no preference is usable.
func startingDomain(candidate models.Candidate) models.Domain {
	for _, domain := range candidate.PreferredDomains {
		if domain.Valid() {
			return domain
		}
	}
	return models.DomainDataStructures
}

func sessionInfo(session models.Session) dto.SessionInfo {
	return dto.SessionInfo{
		CurrentDomain:     session.CurrentDomain,
		CurrentDifficulty: session.CurrentDifficulty,
		QuestionsAnswered: len(session.Evaluations),
		TotalQuestions:    session.TotalQuestions,
		StartedAt:         session.StartedAt,
		TimeoutAt:         session.TimeoutAt,
	}
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
