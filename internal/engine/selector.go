package engine

import (
	"fmt"

	"github.com/intervia/interview-api/internal/models"
)

// domainSuccessors is the fixed progression between topic domains. The
// ordering forms a cycle covering all six domains so the fallback path
// always has somewhere to go.
var domainSuccessors = map[models.Domain][]models.Domain{
	models.DomainDataStructures: {models.DomainAlgorithms, models.DomainSystemDesign},
	models.DomainAlgorithms:     {models.DomainSystemDesign, models.DomainDatabase},
	models.DomainSystemDesign:   {models.DomainDatabase, models.DomainNetworking},
	models.DomainDatabase:       {models.DomainNetworking, models.DomainSecurity},
	models.DomainNetworking:     {models.DomainSecurity},
	models.DomainSecurity:       {models.DomainDataStructures},
}

// NextDomain returns the first successor of the given domain in the
// progression graph, or the domain itself when it has none.
func NextDomain(domain models.Domain) models.Domain {
	successors := domainSuccessors[domain]
	if len(successors) == 0 {
		return domain
	}
	return successors[0]
}

// Suggestion is the advisor's raw, untrusted proposal for the next
// question parameters.
type Suggestion struct {
	Domain     string
	Difficulty string
	Reasoning  string
}

// Decision is the validated outcome of a selection step.
type Decision struct {
	Domain     models.Domain
	Difficulty models.Difficulty
	Reasoning  string
}

// ApplyAdvisor validates an advisor suggestion against the known enums
// and applies the deterministic difficulty override: a recent average
// at or above 0.7 forces an increase, below 0.5 forces a decrease. The
// advisor's domain choice is validated but never rule-overridden.
func ApplyAdvisor(suggestion Suggestion, currentDomain models.Domain, currentDifficulty models.Difficulty, recentAverage float64) Decision {
	domain, ok := models.ParseDomain(suggestion.Domain)
	if !ok {
		domain = currentDomain
	}

	difficulty, ok := models.ParseDifficulty(suggestion.Difficulty)
	if !ok {
		difficulty = currentDifficulty
	}

	switch {
	case recentAverage >= 0.7:
		difficulty = difficulty.Increase()
	case recentAverage < 0.5:
		difficulty = difficulty.Decrease()
	}

	reasoning := suggestion.Reasoning
	if reasoning == "" {
		reasoning = fmt.Sprintf("Adjusted based on performance score: %.2f", recentAverage)
	}

	return Decision{Domain: domain, Difficulty: difficulty, Reasoning: reasoning}
}

// Fallback computes next-question parameters without the advisor, from
// the immediate performance score alone. Difficulty follows the same
// thresholds as the advisor path. The domain advances to its first
// successor only after the three most recently asked questions all
// belong to the current domain and the score is at least 0.6.
func Fallback(session *models.Session, performance float64) Decision {
	difficulty := session.CurrentDifficulty
	switch {
	case performance >= 0.7:
		difficulty = difficulty.Increase()
	case performance < 0.5:
		difficulty = difficulty.Decrease()
	}

	domain := session.CurrentDomain
	if sameDomainRun(session) >= 3 && performance >= 0.6 {
		domain = NextDomain(domain)
	}

	return Decision{
		Domain:     domain,
		Difficulty: difficulty,
		Reasoning:  fmt.Sprintf("Fallback rule-based adjustment. Performance: %.2f", performance),
	}
}

// sameDomainRun counts how many of the most recently asked questions,
// up to three, form a contiguous run in the session's current domain.
func sameDomainRun(session *models.Session) int {
	run := 0
	for i := len(session.QuestionsAsked) - 1; i >= 0 && run < 3; i-- {
		if session.QuestionsAsked[i].Domain != session.CurrentDomain {
			break
		}
		run++
	}
	return run
}
