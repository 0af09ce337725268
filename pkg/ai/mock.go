package ai

import (
	"fmt"
	"math"
	"math/rand"
	"strings"

	"github.com/google/uuid"
)

// neutralFeedbackPool holds interview-style feedback that is neither
// overly positive nor negative, used when the evaluator is unavailable.
var neutralFeedbackPool = []string{
	"Reasonable attempt with room to deepen specifics.",
	"Balanced response; clarify key terms and provide succinct examples.",
	"Fair explanation; tighten structure and emphasize core trade-offs.",
	"Acceptable overview; add precision around edge cases and assumptions.",
}

// NewQuestionID mints an identifier for a generated question.
func NewQuestionID() string {
	return "Q" + strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", "")[:12])
}

// MockEvaluation grades an answer heuristically when the external
// evaluator fails. Each axis starts at 0.5; length and keyword signals
// nudge the scores, which are clamped to [0,1] and rounded to one
// decimal. Feedback is drawn from a fixed neutral pool.
func MockEvaluation(answer string, expectedKeyPoints []string, rng *rand.Rand) Evaluation {
	correctness := 0.5
	clarity := 0.5
	confidence := 0.5

	if len(answer) > 100 {
		correctness += 0.2
	}
	if len(answer) > 200 {
		clarity += 0.2
	}
	if hasKeyPointToken(answer, expectedKeyPoints) {
		correctness += 0.3
	}
	if strings.Contains(answer, "example") || strings.Contains(answer, "for instance") {
		clarity += 0.1
	}

	return Evaluation{
		Correctness: roundTenth(clamp01(correctness)),
		Clarity:     roundTenth(clamp01(clarity)),
		Confidence:  roundTenth(clamp01(confidence)),
		Feedback:    neutralFeedbackPool[rng.Intn(len(neutralFeedbackPool))],
	}
}

// FallbackQuestion produces a fixed-template question for the topic
// when the generator is unavailable.
func FallbackQuestion(topic, difficulty string) GeneratedQuestion {
	return GeneratedQuestion{
		QuestionID:   NewQuestionID(),
		QuestionText: fmt.Sprintf("Explain the concept of %s in the context of software development. What are the key aspects you would consider?", topic),
		ExpectedKeyPoints: []string{
			"Concept definition",
			"Key characteristics",
			"Use cases or applications",
			"Important considerations",
		},
		Difficulty: difficulty,
		Domain:     topic,
		Reasoning:  "Fallback question due to generator error",
	}
}

func hasKeyPointToken(answer string, expectedKeyPoints []string) bool {
	lowered := strings.ToLower(answer)
	for _, point := range expectedKeyPoints {
		fields := strings.Fields(strings.ToLower(point))
		if len(fields) == 0 {
			continue
		}
		if strings.Contains(lowered, fields[0]) {
			return true
		}
	}
	return false
}

func roundTenth(value float64) float64 {
	return math.Round(value*10) / 10
}
