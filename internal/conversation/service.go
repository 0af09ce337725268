package conversation

import (
	"context"
	"math/rand"
	"strings"
	"sync"
	"time"

	"github.com/microcosm-cc/bluemonday"
	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/intervia/interview-api/internal/engine"
	"github.com/intervia/interview-api/internal/models"
	"github.com/intervia/interview-api/pkg/ai"
)

const (
	timeoutMessage         = "No response - timed out after 90 seconds."
	emptySubmissionMessage = "No response - empty submission."

	inputFormatPlaceholder  = "As per problem statement. Provide necessary inputs described in the problem."
	outputFormatPlaceholder = "Return/print output exactly as specified in the problem."
	constraintsPlaceholder  = "Follow typical coding constraints for the topic unless specified otherwise."
	examplePlaceholder      = "Example I/O will be provided when relevant by the generator."
)

// QuestionPayload is the transformed question structure returned to the
// boundary layer. Input/output format and constraints are fixed
// placeholders in this variant.
type QuestionPayload struct {
	Problem      string `json:"problem"`
	InputFormat  string `json:"input_format"`
	OutputFormat string `json:"output_format"`
	Constraints  string `json:"constraints"`
	Example      string `json:"example"`
	Difficulty   string `json:"difficulty"`
}

// TurnResult is the outcome of one conversation turn. Evaluation is nil
// on the very first turn, when there is nothing to grade yet.
type TurnResult struct {
	Evaluation   *string         `json:"evaluation"`
	NextQuestion QuestionPayload `json:"next_question"`
}

// Config tunes the conversation loop.
type Config struct {
	// ResponseTimeout is the deadline after which an empty answer is
	// classified as a timeout rather than an empty submission.
	ResponseTimeout time.Duration
	// StartDifficulty pins the first question's rung. Empty means a
	// uniform-random starting rung.
	StartDifficulty models.Difficulty
}

// Service drives the token-keyed adaptive loop.
type Service struct {
	store     Store
	generator ai.QuestionGenerator
	evaluator ai.AnswerEvaluator
	sanitizer *bluemonday.Policy
	cfg       Config
	logger    zerolog.Logger
	tracer    trace.Tracer
	now       func() time.Time

	rngMu sync.Mutex
	rng   *rand.Rand
}

// NewService constructs the conversation turn handler. The random
// source is injected so tests can drive deterministic draws.
func NewService(store Store, generator ai.QuestionGenerator, evaluator ai.AnswerEvaluator, rng *rand.Rand, cfg Config, logger zerolog.Logger) *Service {
	if cfg.ResponseTimeout <= 0 {
		cfg.ResponseTimeout = 90 * time.Second
	}

	return &Service{
		store:     store,
		generator: generator,
		evaluator: evaluator,
		sanitizer: bluemonday.StrictPolicy(),
		cfg:       cfg,
		logger:    logger.With().Str("component", "conversation_service").Logger(),
		tracer:    otel.Tracer("github.com/intervia/interview-api/internal/conversation"),
		now:       time.Now,
		rng:       rng,
	}
}

// HandleTurn evaluates the answer to the previous question for this
// token (if any) and produces the next question. Every turn after the
// first reports a difficulty different from the previous turn's.
func (s *Service) HandleTurn(ctx context.Context, token, answerText string) (TurnResult, error) {
	ctx, span := s.tracer.Start(ctx, "conversation.turn")
	defer span.End()

	answerText = strings.TrimSpace(s.sanitizer.Sanitize(answerText))

	state, ok := s.store.Get(token)
	if !ok {
		state = &State{
			Topic:      s.randomDomain(),
			Difficulty: s.startDifficulty(),
		}
	}

	if state.LastQuestion == nil {
		return s.firstTurn(ctx, token, state)
	}

	now := s.now()
	timedOut := now.Sub(state.LastQuestion.AskedAt) > s.cfg.ResponseTimeout

	var evaluationText string
	band := engine.BandPartial

	switch {
	case timedOut && answerText == "":
		evaluationText = timeoutMessage
		band = engine.BandTimeout
	case answerText == "":
		evaluationText = emptySubmissionMessage
		band = engine.BandIncorrect
	default:
		evaluation := s.evaluateAnswer(ctx, state.LastQuestion, answerText)
		band = engine.BandFor(evaluation.Average())
		evaluationText = evaluation.Feedback
		if evaluationText == "" {
			evaluationText = "Evaluated."
		}
	}

	covered, missed := keywordCoverage(state.LastQuestion.ExpectedKeyPoints, answerText)

	nextDifficulty := state.Difficulty
	switch band {
	case engine.BandCorrect:
		nextDifficulty = state.Difficulty.Increase()
	case engine.BandIncorrect, engine.BandTimeout:
		nextDifficulty = state.Difficulty.Decrease()
	}
	// The contract requires a difficulty change every turn, so a
	// saturated increase/decrease or a partial band forces an
	// alternate rung.
	if nextDifficulty == state.Difficulty {
		nextDifficulty = s.alternate(state.Difficulty)
	}

	state.History = append(state.History, Turn{
		QuestionID:       state.LastQuestion.QuestionID,
		Answer:           answerText,
		Evaluation:       evaluationText,
		Difficulty:       state.Difficulty,
		Performance:      string(band),
		CoveredKeyPoints: covered,
		MissedKeyPoints:  missed,
		RespondedAt:      now,
	})

	previous := &ai.PreviousResponse{
		PerformanceBand:  string(band),
		PerformanceScore: proxyScore(band),
		PreviousAnswer:   answerText,
		CoveredKeyPoints: covered,
		MissedKeyPoints:  missed,
		PreviousQuestion: state.LastQuestion.QuestionText,
	}

	// Topic rotation is unconditional in this variant.
	state.Topic = s.randomDomain()

	next := s.generateQuestion(ctx, state.Topic, nextDifficulty, previous)

	if parsed, ok := models.ParseDifficulty(next.Difficulty); ok {
		state.Difficulty = parsed
	} else {
		state.Difficulty = nextDifficulty
	}
	state.LastQuestion = &LastQuestion{
		QuestionID:        next.QuestionID,
		QuestionText:      next.QuestionText,
		ExpectedKeyPoints: next.ExpectedKeyPoints,
		AskedAt:           s.now(),
		Domain:            models.Domain(next.Domain),
	}
	s.store.Put(token, state)

	span.SetAttributes(
		attribute.String("conversation.band", string(band)),
		attribute.String("conversation.difficulty", string(state.Difficulty)),
	)

	return TurnResult{
		Evaluation:   &evaluationText,
		NextQuestion: s.toPayload(next),
	}, nil
}

func (s *Service) firstTurn(ctx context.Context, token string, state *State) (TurnResult, error) {
	first := s.generateQuestion(ctx, state.Topic, s.startDifficulty(), nil)

	if parsed, ok := models.ParseDifficulty(first.Difficulty); ok {
		state.Difficulty = parsed
	}
	state.LastQuestion = &LastQuestion{
		QuestionID:        first.QuestionID,
		QuestionText:      first.QuestionText,
		ExpectedKeyPoints: first.ExpectedKeyPoints,
		AskedAt:           s.now(),
		Domain:            models.Domain(first.Domain),
	}
	s.store.Put(token, state)

	return TurnResult{NextQuestion: s.toPayload(first)}, nil
}

func (s *Service) evaluateAnswer(ctx context.Context, question *LastQuestion, answerText string) models.EvaluationScores {
	if s.evaluator != nil {
		result, err := s.evaluator.Evaluate(ctx, ai.EvaluationInput{
			QuestionText:      question.QuestionText,
			Answer:            answerText,
			ExpectedKeyPoints: question.ExpectedKeyPoints,
		})
		if err == nil {
			return models.EvaluationScores{
				Correctness: result.Correctness,
				Clarity:     result.Clarity,
				Confidence:  result.Confidence,
				Feedback:    result.Feedback,
			}
		}
		s.logger.Warn().Err(err).Msg("answer evaluation failed, using mock evaluation")
	}

	s.rngMu.Lock()
	mock := ai.MockEvaluation(answerText, question.ExpectedKeyPoints, s.rng)
	s.rngMu.Unlock()

	return models.EvaluationScores{
		Correctness: mock.Correctness,
		Clarity:     mock.Clarity,
		Confidence:  mock.Confidence,
		Feedback:    mock.Feedback,
	}
}

func (s *Service) generateQuestion(ctx context.Context, topic models.Domain, difficulty models.Difficulty, previous *ai.PreviousResponse) ai.GeneratedQuestion {
	if s.generator != nil {
		question, err := s.generator.Generate(ctx, string(topic), string(difficulty), previous)
		if err == nil {
			return question
		}
		s.logger.Warn().Err(err).Str("topic", string(topic)).Msg("question generation failed, using fallback question")
	}
	return ai.FallbackQuestion(string(topic), string(difficulty))
}

func (s *Service) toPayload(question ai.GeneratedQuestion) QuestionPayload {
	difficulty, ok := models.ParseDifficulty(question.Difficulty)
	if !ok {
		difficulty = s.startDifficulty()
	}
	return QuestionPayload{
		Problem:      question.QuestionText,
		InputFormat:  inputFormatPlaceholder,
		OutputFormat: outputFormatPlaceholder,
		Constraints:  constraintsPlaceholder,
		Example:      examplePlaceholder,
		Difficulty:   difficulty.Title(),
	}
}

func (s *Service) startDifficulty() models.Difficulty {
	if s.cfg.StartDifficulty.Valid() {
		return s.cfg.StartDifficulty
	}
	s.rngMu.Lock()
	defer s.rngMu.Unlock()
	return models.RandomDifficulty(s.rng)
}

func (s *Service) randomDomain() models.Domain {
	s.rngMu.Lock()
	defer s.rngMu.Unlock()
	return models.RandomDomain(s.rng)
}

func (s *Service) alternate(current models.Difficulty) models.Difficulty {
	s.rngMu.Lock()
	defer s.rngMu.Unlock()
	return current.Alternate(s.rng)
}

// proxyScore maps a band onto the numeric stand-in passed to the
// generator as previous-response context.
func proxyScore(band engine.Band) float64 {
	switch band {
	case engine.BandCorrect:
		return 0.8
	case engine.BandPartial:
		return 0.6
	default:
		return 0.3
	}
}

// keywordCoverage tests, for each expected key point, whether its first
// whitespace-delimited token appears in the answer as a case-insensitive
// substring. A heuristic proxy for topical coverage, deliberately
// lenient.
func keywordCoverage(expected []string, answerText string) (covered, missed []string) {
	covered = make([]string, 0, len(expected))
	missed = make([]string, 0, len(expected))
	lowered := strings.ToLower(answerText)

	for _, point := range expected {
		fields := strings.Fields(point)
		if len(fields) > 0 && strings.Contains(lowered, strings.ToLower(fields[0])) {
			covered = append(covered, point)
			continue
		}
		missed = append(missed, point)
	}
	return covered, missed
}
