package ai

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/rs/zerolog"
	openai "github.com/sashabaranov/go-openai"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

var (
	aiDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "intervia",
		Subsystem: "ai",
		Name:      "call_duration_seconds",
		Help:      "Duration of language model calls",
	}, []string{"model", "operation"})

	aiFailures = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "intervia",
		Subsystem: "ai",
		Name:      "call_failures_total",
		Help:      "Number of failed language model calls",
	}, []string{"model", "operation"})
)

// OpenAIConfig defines configuration options for the OpenAI-backed client.
type OpenAIConfig struct {
	APIKey string
	Model  string
	// Per-operation deadlines. Answer evaluation and question
	// generation default to 30s, parameter suggestion to 15s.
	EvaluateTimeout time.Duration
	SuggestTimeout  time.Duration
	GenerateTimeout time.Duration
	Temperature     float32
	MaxTokens       int
	Logger          zerolog.Logger
}

// OpenAIClient implements AnswerEvaluator, Advisor and QuestionGenerator
// against the OpenAI chat completion API.
type OpenAIClient struct {
	client *openai.Client
	cfg    OpenAIConfig
	tracer trace.Tracer
	logger zerolog.Logger
}

// NewOpenAIClient builds a new client using the provided configuration.
func NewOpenAIClient(cfg OpenAIConfig) (*OpenAIClient, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("openai api key is required")
	}

	if cfg.Model == "" {
		cfg.Model = "gpt-4o-mini"
	}
	if cfg.MaxTokens == 0 {
		cfg.MaxTokens = 1024
	}
	if cfg.EvaluateTimeout <= 0 {
		cfg.EvaluateTimeout = 30 * time.Second
	}
	if cfg.SuggestTimeout <= 0 {
		cfg.SuggestTimeout = 15 * time.Second
	}
	if cfg.GenerateTimeout <= 0 {
		cfg.GenerateTimeout = 30 * time.Second
	}

	logger := cfg.Logger
	if logger.GetLevel() == zerolog.Disabled {
		logger = zerolog.Nop()
	}

	return &OpenAIClient{
		client: openai.NewClientWithConfig(openai.DefaultConfig(cfg.APIKey)),
		cfg:    cfg,
		tracer: otel.Tracer("github.com/intervia/interview-api/pkg/ai/openai"),
		logger: logger,
	}, nil
}

// Evaluate grades an answer and parses the model's JSON verdict.
func (c *OpenAIClient) Evaluate(ctx context.Context, input EvaluationInput) (Evaluation, error) {
	content, err := c.complete(ctx, "evaluate", c.cfg.EvaluateTimeout, evaluatorSystemPrompt(), buildEvaluationPrompt(input), 0.3)
	if err != nil {
		return Evaluation{}, err
	}

	evaluation, err := parseEvaluationResponse(content)
	if err != nil {
		aiFailures.WithLabelValues(c.cfg.Model, "evaluate").Inc()
		return Evaluation{}, err
	}
	return evaluation, nil
}

// SuggestNextParams asks the model for the next question's domain and
// difficulty given the candidate's recent performance.
func (c *OpenAIClient) SuggestNextParams(ctx context.Context, domain, difficulty string, summary PerformanceSummary) (Suggestion, error) {
	content, err := c.complete(ctx, "suggest", c.cfg.SuggestTimeout, advisorSystemPrompt(), buildAdvisorPrompt(domain, difficulty, summary), 0.4)
	if err != nil {
		return Suggestion{}, err
	}

	suggestion, err := parseSuggestionResponse(content)
	if err != nil {
		aiFailures.WithLabelValues(c.cfg.Model, "suggest").Inc()
		return Suggestion{}, err
	}
	return suggestion, nil
}

// Generate produces a fresh question for the topic at the requested
// difficulty, shaped by the previous turn when one exists.
func (c *OpenAIClient) Generate(ctx context.Context, topic, difficulty string, previous *PreviousResponse) (GeneratedQuestion, error) {
	content, err := c.complete(ctx, "generate", c.cfg.GenerateTimeout, generatorSystemPrompt(), buildGeneratorPrompt(topic, difficulty, previous), 0.7)
	if err != nil {
		return GeneratedQuestion{}, err
	}

	question, err := parseGeneratedQuestion(content)
	if err != nil {
		aiFailures.WithLabelValues(c.cfg.Model, "generate").Inc()
		return GeneratedQuestion{}, err
	}
	return question, nil
}

func (c *OpenAIClient) complete(parent context.Context, operation string, timeout time.Duration, system, user string, temperature float32) (string, error) {
	ctx, cancel := context.WithTimeout(parent, timeout)
	defer cancel()

	ctx, span := c.tracer.Start(ctx, "openai."+operation, trace.WithAttributes(
		attribute.String("model", c.cfg.Model),
	))
	defer span.End()

	if c.cfg.Temperature != 0 {
		temperature = c.cfg.Temperature
	}

	request := openai.ChatCompletionRequest{
		Model:       c.cfg.Model,
		MaxTokens:   c.cfg.MaxTokens,
		Temperature: temperature,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: system},
			{Role: openai.ChatMessageRoleUser, Content: user},
		},
		ResponseFormat: &openai.ChatCompletionResponseFormat{Type: openai.ChatCompletionResponseFormatTypeJSONObject},
	}

	start := time.Now()
	resp, err := c.client.CreateChatCompletion(ctx, request)
	aiDuration.WithLabelValues(c.cfg.Model, operation).Observe(time.Since(start).Seconds())
	if err != nil {
		aiFailures.WithLabelValues(c.cfg.Model, operation).Inc()
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return "", fmt.Errorf("openai %s: %w", operation, err)
	}

	if len(resp.Choices) == 0 {
		err := fmt.Errorf("no choices returned from openai")
		aiFailures.WithLabelValues(c.cfg.Model, operation).Inc()
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return "", err
	}

	return strings.TrimSpace(resp.Choices[0].Message.Content), nil
}
