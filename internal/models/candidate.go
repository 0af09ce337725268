package models

import (
	"time"

	"gorm.io/datatypes"
)

// ExperienceLevel classifies a candidate's seniority.
type ExperienceLevel string

const (
	ExperienceJunior ExperienceLevel = "junior"
	ExperienceMid    ExperienceLevel = "mid"
	ExperienceSenior ExperienceLevel = "senior"
)

// Candidate is a person taking interview sessions.
type Candidate struct {
	ID               uint                        `gorm:"primaryKey" json:"-"`
	CandidateID      string                      `gorm:"size:64;uniqueIndex;not null" json:"candidate_id"`
	Name             string                      `gorm:"size:255;not null" json:"name"`
	Email            string                      `gorm:"size:255" json:"email"`
	Phone            string                      `gorm:"size:32" json:"phone,omitempty"`
	ExperienceLevel  ExperienceLevel             `gorm:"size:16;not null;default:junior" json:"experience_level"`
	PreferredDomains datatypes.JSONSlice[Domain] `json:"preferred_domains"`
	TotalSessions    int                         `gorm:"not null;default:0" json:"total_sessions"`
	AverageScore     float64                     `gorm:"not null;default:0" json:"average_score"`
	CreatedAt        time.Time                   `json:"created_at"`
	UpdatedAt        time.Time                   `json:"updated_at"`
}
