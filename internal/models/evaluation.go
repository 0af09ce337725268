package models

import (
	"time"

	"gorm.io/datatypes"
)

// Evaluation is the persisted grading of one answered question. The
// overall score is fixed at write time and never recomputed.
type Evaluation struct {
	ID              uint              `gorm:"primaryKey" json:"-"`
	EvaluationID    string            `gorm:"size:64;uniqueIndex;not null" json:"evaluation_id"`
	SessionID       string            `gorm:"size:64;index;not null" json:"session_id"`
	CandidateID     string            `gorm:"size:64;index;not null" json:"candidate_id"`
	QuestionID      string            `gorm:"size:64;index;not null" json:"question_id"`
	Answer          string            `gorm:"type:text;not null" json:"answer"`
	Correctness     float64           `gorm:"not null" json:"correctness"`
	Clarity         float64           `gorm:"not null" json:"clarity"`
	Confidence      float64           `gorm:"not null" json:"confidence"`
	Feedback        string            `gorm:"type:text" json:"feedback"`
	OverallScore    float64           `gorm:"not null" json:"overall_score"`
	DifficultyLevel Difficulty        `gorm:"size:16;not null" json:"difficulty_level"`
	Domain          Domain            `gorm:"size:32;not null" json:"domain"`
	Raw             datatypes.JSONMap `json:"raw,omitempty"`
	CreatedAt       time.Time         `json:"created_at"`
}

// Scores bundles the three axes with the stored feedback string.
func (e Evaluation) Scores() EvaluationScores {
	return EvaluationScores{
		Correctness: e.Correctness,
		Clarity:     e.Clarity,
		Confidence:  e.Confidence,
		Feedback:    e.Feedback,
	}
}
