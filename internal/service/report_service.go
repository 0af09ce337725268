package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/intervia/interview-api/internal/dto"
	"github.com/intervia/interview-api/internal/models"
	"github.com/intervia/interview-api/internal/repository"
)

const reportVersion = "1.0"

// Score thresholds for the qualitative classification of report findings.
const (
	thresholdExcellent = 0.8
	thresholdGood      = 0.6
	thresholdAverage   = 0.4
)

// ReportService builds the post-session analysis document. Reports are
// cached in Redis since they are immutable once the session ended.
type ReportService interface {
	Generate(ctx context.Context, session models.Session, endReason string) (dto.SessionReport, error)
	Get(ctx context.Context, sessionID string) (dto.SessionReport, error)
}

type reportService struct {
	sessions    repository.SessionRepository
	candidates  repository.CandidateRepository
	evaluations repository.EvaluationRepository
	redis       *redis.Client
	cacheTTL    time.Duration
	logger      zerolog.Logger
	now         func() time.Time
}

// NewReportService constructs a report service. The Redis client may be
// nil, disabling the cache.
func NewReportService(
	sessions repository.SessionRepository,
	candidates repository.CandidateRepository,
	evaluations repository.EvaluationRepository,
	redisClient *redis.Client,
	cacheTTL time.Duration,
	logger zerolog.Logger,
) ReportService {
	if cacheTTL <= 0 {
		cacheTTL = 24 * time.Hour
	}
	return &reportService{
		sessions:    sessions,
		candidates:  candidates,
		evaluations: evaluations,
		redis:       redisClient,
		cacheTTL:    cacheTTL,
		logger:      logger.With().Str("component", "report_service").Logger(),
		now:         func() time.Time { return time.Now().UTC() },
	}
}

func (s *reportService) Get(ctx context.Context, sessionID string) (dto.SessionReport, error) {
	if report, ok := s.cached(ctx, sessionID); ok {
		return report, nil
	}

	session, err := s.sessions.GetBySessionID(ctx, sessionID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.SessionReport{}, ErrSessionNotFound
		}
		return dto.SessionReport{}, fmt.Errorf("load session: %w", err)
	}

	return s.Generate(ctx, session, session.EndReason)
}

func (s *reportService) Generate(ctx context.Context, session models.Session, endReason string) (dto.SessionReport, error) {
	evaluations, err := s.evaluations.ListBySession(ctx, session.SessionID)
	if err != nil {
		return dto.SessionReport{}, fmt.Errorf("load evaluations: %w", err)
	}

	candidateName := "Unknown"
	if candidate, err := s.candidates.GetByCandidateID(ctx, session.CandidateID); err == nil {
		candidateName = candidate.Name
	}

	var report dto.SessionReport
	if len(evaluations) == 0 {
		report = s.emptyReport(session, candidateName)
	} else {
		report = s.buildReport(session, candidateName, evaluations)
	}
	report.SessionSummary.EndReason = endReason

	if session.EndedAt != nil {
		s.cache(ctx, report)
	}

	return report, nil
}

type sessionAnalytics struct {
	overallScore      float64
	averageCorrect    float64
	averageClarity    float64
	averageConfidence float64
	domains           map[string]dto.DomainStats
	difficulties      map[string]dto.DifficultyStats
	detailed          []dto.DetailedScore
}

func (s *reportService) buildReport(session models.Session, candidateName string, evaluations []models.Evaluation) dto.SessionReport {
	analytics := analyse(evaluations)
	strengths := identifyStrengths(analytics)
	weaknesses := identifyWeaknesses(analytics)

	return dto.SessionReport{
		SessionID:     session.SessionID,
		CandidateID:   session.CandidateID,
		CandidateName: candidateName,
		SessionSummary: dto.ReportSummary{
			TotalQuestions:    session.TotalQuestions,
			QuestionsAnswered: len(evaluations),
			SessionDuration:   s.durationMinutes(session),
			OverallScore:      analytics.overallScore,
			PerformanceLevel:  performanceLevel(analytics.overallScore),
		},
		DomainAnalysis:     analytics.domains,
		DifficultyAnalysis: analytics.difficulties,
		Strengths:          strengths,
		Weaknesses:         weaknesses,
		Recommendations:    recommendations(analytics, strengths),
		DetailedScores:     analytics.detailed,
		GeneratedAt:        s.now(),
		ReportVersion:      reportVersion,
	}
}

func analyse(evaluations []models.Evaluation) sessionAnalytics {
	analytics := sessionAnalytics{
		domains:      make(map[string]dto.DomainStats),
		difficulties: make(map[string]dto.DifficultyStats),
		detailed:     make([]dto.DetailedScore, 0, len(evaluations)),
	}

	var totalScore, totalCorrect, totalClarity, totalConfidence float64
	domainTotals := make(map[string]float64)
	difficultyTotals := make(map[string]float64)

	for _, evaluation := range evaluations {
		domain := string(evaluation.Domain)
		difficulty := string(evaluation.DifficultyLevel)

		domainStats := analytics.domains[domain]
		domainStats.TotalQuestions++
		domainTotals[domain] += evaluation.OverallScore
		domainStats.AverageScore = domainTotals[domain] / float64(domainStats.TotalQuestions)
		analytics.domains[domain] = domainStats

		difficultyStats := analytics.difficulties[difficulty]
		difficultyStats.TotalQuestions++
		difficultyTotals[difficulty] += evaluation.OverallScore
		difficultyStats.AverageScore = difficultyTotals[difficulty] / float64(difficultyStats.TotalQuestions)
		analytics.difficulties[difficulty] = difficultyStats

		totalScore += evaluation.OverallScore
		totalCorrect += evaluation.Correctness
		totalClarity += evaluation.Clarity
		totalConfidence += evaluation.Confidence

		analytics.detailed = append(analytics.detailed, dto.DetailedScore{
			QuestionID: evaluation.QuestionID,
			Domain:     domain,
			Difficulty: difficulty,
			Scores: dto.ScoreBreakdown{
				Overall:     evaluation.OverallScore,
				Correctness: evaluation.Correctness,
				Clarity:     evaluation.Clarity,
				Confidence:  evaluation.Confidence,
			},
			Feedback: evaluation.Feedback,
		})
	}

	count := float64(len(evaluations))
	analytics.overallScore = totalScore / count
	analytics.averageCorrect = totalCorrect / count
	analytics.averageClarity = totalClarity / count
	analytics.averageConfidence = totalConfidence / count
	return analytics
}

// identifyStrengths collects up to five findings, scanning domains and
// difficulties in their canonical order so output is deterministic.
func identifyStrengths(analytics sessionAnalytics) []dto.ReportFinding {
	strengths := make([]dto.ReportFinding, 0, 5)

	if analytics.overallScore >= thresholdExcellent {
		strengths = append(strengths, dto.ReportFinding{
			Category:    "Overall Performance",
			Description: "Excellent overall performance across all areas",
			Score:       analytics.overallScore,
		})
	}

	for _, domain := range models.Domains() {
		stats, ok := analytics.domains[string(domain)]
		if ok && stats.AverageScore >= thresholdGood {
			strengths = append(strengths, dto.ReportFinding{
				Category:    "Domain Expertise",
				Description: fmt.Sprintf("Strong performance in %s", domain.DisplayName()),
				Score:       stats.AverageScore,
				Domain:      string(domain),
			})
		}
	}

	for _, difficulty := range models.Difficulties() {
		stats, ok := analytics.difficulties[string(difficulty)]
		if ok && stats.AverageScore >= thresholdGood {
			strengths = append(strengths, dto.ReportFinding{
				Category:    "Difficulty Handling",
				Description: fmt.Sprintf("Good performance on %s level questions", difficulty),
				Score:       stats.AverageScore,
				Difficulty:  string(difficulty),
			})
		}
	}

	if analytics.averageCorrect >= thresholdGood {
		strengths = append(strengths, dto.ReportFinding{
			Category:    "Technical Accuracy",
			Description: "Strong technical knowledge and accuracy",
			Score:       analytics.averageCorrect,
		})
	}
	if analytics.averageClarity >= thresholdGood {
		strengths = append(strengths, dto.ReportFinding{
			Category:    "Communication",
			Description: "Clear and well-structured explanations",
			Score:       analytics.averageClarity,
		})
	}
	if analytics.averageConfidence >= thresholdGood {
		strengths = append(strengths, dto.ReportFinding{
			Category:    "Confidence",
			Description: "Confident and comprehensive responses",
			Score:       analytics.averageConfidence,
		})
	}

	return truncFindings(strengths, 5)
}

func identifyWeaknesses(analytics sessionAnalytics) []dto.ReportFinding {
	weaknesses := make([]dto.ReportFinding, 0, 5)

	if analytics.overallScore < thresholdAverage {
		weaknesses = append(weaknesses, dto.ReportFinding{
			Category:    "Overall Performance",
			Description: "Overall performance needs improvement",
			Score:       analytics.overallScore,
			Priority:    "high",
		})
	}

	for _, domain := range models.Domains() {
		stats, ok := analytics.domains[string(domain)]
		if ok && stats.AverageScore < thresholdAverage {
			weaknesses = append(weaknesses, dto.ReportFinding{
				Category:    "Domain Knowledge",
				Description: fmt.Sprintf("Needs improvement in %s", domain.DisplayName()),
				Score:       stats.AverageScore,
				Domain:      string(domain),
				Priority:    "medium",
			})
		}
	}

	for _, difficulty := range models.Difficulties() {
		stats, ok := analytics.difficulties[string(difficulty)]
		if ok && stats.AverageScore < thresholdAverage {
			weaknesses = append(weaknesses, dto.ReportFinding{
				Category:    "Difficulty Handling",
				Description: fmt.Sprintf("Struggles with %s level questions", difficulty),
				Score:       stats.AverageScore,
				Difficulty:  string(difficulty),
				Priority:    "medium",
			})
		}
	}

	if analytics.averageCorrect < thresholdAverage {
		weaknesses = append(weaknesses, dto.ReportFinding{
			Category:    "Technical Accuracy",
			Description: "Technical knowledge needs strengthening",
			Score:       analytics.averageCorrect,
			Priority:    "high",
		})
	}
	if analytics.averageClarity < thresholdAverage {
		weaknesses = append(weaknesses, dto.ReportFinding{
			Category:    "Communication",
			Description: "Explanation clarity needs improvement",
			Score:       analytics.averageClarity,
			Priority:    "medium",
		})
	}
	if analytics.averageConfidence < thresholdAverage {
		weaknesses = append(weaknesses, dto.ReportFinding{
			Category:    "Confidence",
			Description: "Response confidence needs building",
			Score:       analytics.averageConfidence,
			Priority:    "medium",
		})
	}

	return truncFindings(weaknesses, 5)
}

func recommendations(analytics sessionAnalytics, strengths []dto.ReportFinding) []dto.Recommendation {
	recs := make([]dto.Recommendation, 0, 6)

	if analytics.overallScore < thresholdAverage {
		recs = append(recs, dto.Recommendation{
			Category:  "General Improvement",
			Priority:  "high",
			Action:    "Focus on fundamental concepts and practice more coding problems",
			Resources: []string{"Online coding platforms", "Technical books", "Practice problems"},
		})
	}

	for _, domain := range models.Domains() {
		stats, ok := analytics.domains[string(domain)]
		if ok && stats.AverageScore < thresholdAverage {
			recs = append(recs, dto.Recommendation{
				Category:  "Domain-Specific",
				Priority:  "high",
				Action:    fmt.Sprintf("Strengthen knowledge in %s", domain.DisplayName()),
				Resources: domainResources(domain),
			})
		}
	}

	if analytics.averageClarity < thresholdAverage {
		recs = append(recs, dto.Recommendation{
			Category:  "Communication",
			Priority:  "medium",
			Action:    "Practice explaining technical concepts clearly and concisely",
			Resources: []string{"Technical writing courses", "Presentation practice", "Peer review sessions"},
		})
	}
	if analytics.averageConfidence < thresholdAverage {
		recs = append(recs, dto.Recommendation{
			Category:  "Confidence Building",
			Priority:  "medium",
			Action:    "Build confidence through consistent practice and preparation",
			Resources: []string{"Mock interviews", "Study groups", "Regular practice sessions"},
		})
	}

	if len(strengths) > 0 {
		recs = append(recs, dto.Recommendation{
			Category:  "Leverage Strengths",
			Priority:  "low",
			Action:    fmt.Sprintf("Continue building on your strength in %s", strings.ToLower(strengths[0].Category)),
			Resources: []string{"Advanced courses", "Specialized projects", "Mentorship opportunities"},
		})
	}

	if len(recs) > 6 {
		recs = recs[:6]
	}
	return recs
}

var domainResourceMap = map[models.Domain][]string{
	models.DomainDataStructures: {"Data Structures and Algorithms books", "LeetCode practice", "Visualization tools"},
	models.DomainAlgorithms:     {"Algorithm design books", "Competitive programming", "Algorithm visualization"},
	models.DomainSystemDesign:   {"System design books", "Architecture patterns", "Case studies"},
	models.DomainDatabase:       {"Database design books", "SQL practice", "NoSQL concepts"},
	models.DomainNetworking:     {"Network protocols", "TCP/IP fundamentals", "Network security"},
	models.DomainSecurity:       {"Security fundamentals", "OWASP guidelines", "Penetration testing"},
}

func domainResources(domain models.Domain) []string {
	if resources, ok := domainResourceMap[domain]; ok {
		return resources
	}
	return []string{"General technical resources", "Online courses", "Practice problems"}
}

func performanceLevel(score float64) string {
	switch {
	case score >= thresholdExcellent:
		return "Excellent"
	case score >= thresholdGood:
		return "Good"
	case score >= thresholdAverage:
		return "Average"
	default:
		return "Needs Improvement"
	}
}

func (s *reportService) emptyReport(session models.Session, candidateName string) dto.SessionReport {
	return dto.SessionReport{
		SessionID:     session.SessionID,
		CandidateID:   session.CandidateID,
		CandidateName: candidateName,
		SessionSummary: dto.ReportSummary{
			TotalQuestions:    session.TotalQuestions,
			QuestionsAnswered: 0,
			SessionDuration:   s.durationMinutes(session),
			OverallScore:      0,
			PerformanceLevel:  "No Data",
		},
		DomainAnalysis:     map[string]dto.DomainStats{},
		DifficultyAnalysis: map[string]dto.DifficultyStats{},
		Strengths:          []dto.ReportFinding{},
		Weaknesses: []dto.ReportFinding{{
			Category:    "Session Completion",
			Description: "No questions were answered in this session",
			Priority:    "high",
		}},
		Recommendations: []dto.Recommendation{{
			Category:  "Session Participation",
			Priority:  "high",
			Action:    "Complete the interview session to receive detailed feedback",
			Resources: []string{"Retry the interview", "Check technical setup", "Contact support if needed"},
		}},
		DetailedScores: []dto.DetailedScore{},
		GeneratedAt:    s.now(),
		ReportVersion:  reportVersion,
	}
}

func (s *reportService) durationMinutes(session models.Session) int {
	end := s.now()
	if session.EndedAt != nil {
		end = *session.EndedAt
	}
	return int(end.Sub(session.StartedAt).Round(time.Minute).Minutes())
}

func (s *reportService) cached(ctx context.Context, sessionID string) (dto.SessionReport, bool) {
	if s.redis == nil {
		return dto.SessionReport{}, false
	}

	payload, err := s.redis.Get(ctx, reportCacheKey(sessionID)).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			s.logger.Warn().Err(err).Str("session_id", sessionID).Msg("report cache read failed")
		}
		return dto.SessionReport{}, false
	}

	var report dto.SessionReport
	if err := json.Unmarshal(payload, &report); err != nil {
		s.logger.Warn().Err(err).Str("session_id", sessionID).Msg("report cache entry corrupt")
		return dto.SessionReport{}, false
	}
	return report, true
}

func (s *reportService) cache(ctx context.Context, report dto.SessionReport) {
	if s.redis == nil {
		return
	}

	payload, err := json.Marshal(report)
	if err != nil {
		s.logger.Warn().Err(err).Str("session_id", report.SessionID).Msg("failed to encode report for cache")
		return
	}
	if err := s.redis.Set(ctx, reportCacheKey(report.SessionID), payload, s.cacheTTL).Err(); err != nil {
		s.logger.Warn().Err(err).Str("session_id", report.SessionID).Msg("report cache write failed")
	}
}

func reportCacheKey(sessionID string) string {
	return "interview:report:" + sessionID
}

func truncFindings(findings []dto.ReportFinding, limit int) []dto.ReportFinding {
	if len(findings) > limit {
		return findings[:limit]
	}
	return findings
}
