package ai

import "context"

// ErrUnavailable is returned by the offline client so callers take
// their deterministic fallback paths.
var ErrUnavailable = &unavailableError{}

type unavailableError struct{}

func (*unavailableError) Error() string { return "ai client not configured" }

// OfflineClient satisfies all model interfaces without ever calling
// out. Used when no API key is configured; every call fails fast and
// the local heuristics take over.
type OfflineClient struct{}

func (OfflineClient) Evaluate(context.Context, EvaluationInput) (Evaluation, error) {
	return Evaluation{}, ErrUnavailable
}

func (OfflineClient) SuggestNextParams(context.Context, string, string, PerformanceSummary) (Suggestion, error) {
	return Suggestion{}, ErrUnavailable
}

func (OfflineClient) Generate(context.Context, string, string, *PreviousResponse) (GeneratedQuestion, error) {
	return GeneratedQuestion{}, ErrUnavailable
}
