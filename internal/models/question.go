package models

import (
	"time"

	"gorm.io/datatypes"
)

// Question is one bank entry the selector can draw from.
type Question struct {
	ID                uint                        `gorm:"primaryKey" json:"-"`
	QuestionID        string                      `gorm:"size:64;uniqueIndex;not null" json:"question_id"`
	QuestionText      string                      `gorm:"type:text;not null" json:"question_text"`
	Domain            Domain                      `gorm:"size:32;index;not null" json:"domain"`
	Difficulty        Difficulty                  `gorm:"size:16;index;not null" json:"difficulty"`
	ExpectedKeyPoints datatypes.JSONSlice[string] `json:"expected_key_points"`
	SampleAnswer      string                      `gorm:"type:text" json:"sample_answer,omitempty"`
	Tags              datatypes.JSONSlice[string] `json:"tags,omitempty"`
	UsageCount        int                         `gorm:"not null;default:0" json:"usage_count"`
	AverageScore      float64                     `gorm:"not null;default:0" json:"average_score"`
	IsActive          bool                        `gorm:"not null;default:true" json:"is_active"`
	CreatedAt         time.Time                   `json:"created_at"`
	UpdatedAt         time.Time                   `json:"updated_at"`
}
