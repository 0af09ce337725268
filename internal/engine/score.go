// Package engine holds the deterministic rules of the adaptive
// interview loop: performance scoring, difficulty/domain adjustment and
// session termination. Everything here is pure; external collaborators
// (advisor, evaluator, persistence) live behind the service layer.
package engine

import "github.com/intervia/interview-api/internal/models"

// neutralScore substitutes for a missing evaluation so downstream logic
// never branches on absence.
const neutralScore = 0.5

// Band is the qualitative classification of a numeric performance score.
type Band string

const (
	BandCorrect   Band = "correct"
	BandPartial   Band = "partial"
	BandIncorrect Band = "incorrect"
	BandTimeout   Band = "timeout"
)

// PerformanceScore converts an evaluation triple into a single score in
// [0,1]. A nil evaluation maps to the neutral 0.5.
func PerformanceScore(scores *models.EvaluationScores) float64 {
	if scores == nil {
		return neutralScore
	}
	return scores.Average()
}

// BandFor maps a numeric score onto its qualitative band. The timeout
// band is assigned by callers when a response deadline elapsed with no
// answer; it never results from a numeric score.
func BandFor(score float64) Band {
	switch {
	case score >= 0.7:
		return BandCorrect
	case score < 0.5:
		return BandIncorrect
	default:
		return BandPartial
	}
}

// RecentAverage returns the mean performance over the session's last
// three evaluations, falling back to the supplied current score when
// the session has no history.
func RecentAverage(session *models.Session, current float64) float64 {
	scores := RecentScores(session)
	if len(scores) == 0 {
		return current
	}
	total := 0.0
	for _, s := range scores {
		total += s
	}
	return total / float64(len(scores))
}

// RecentScores extracts per-evaluation averages for the session's last
// three evaluations, oldest first.
func RecentScores(session *models.Session) []float64 {
	records := session.Evaluations
	if len(records) > 3 {
		records = records[len(records)-3:]
	}
	scores := make([]float64, 0, len(records))
	for _, record := range records {
		scores = append(scores, record.Evaluation.Average())
	}
	return scores
}
