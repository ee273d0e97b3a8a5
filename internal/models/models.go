package models

import (
	"time"
)

// Submission status values. A submission never leaves a terminal state.
const (
	StatusDraft = "draft"
	StatusSent  = "sent"
	StatusError = "error"
)

// UserTarget types.
const (
	TargetTypeTarget    = "target"
	TargetTypeHighlight = "highlight"
)

type User struct {
	ID        string    `gorm:"primaryKey" json:"user_id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// Identity: the normalized phone number (hyphens/whitespace stripped).
	PhoneNumber string `gorm:"uniqueIndex;not null" json:"phone_number"`

	Name  string `json:"name"`
	Email string `json:"email"`
	// ResumeText holds the LLM's experience summary, not the raw upload.
	ResumeText   string   `gorm:"type:text" json:"resume_text"`
	Technologies []string `gorm:"serializer:json" json:"technologies"`
	ResumeURL    string   `json:"resume_url"`

	OnboardingComplete bool `gorm:"default:false" json:"onboarding_complete"`
}

// UserTarget stores one focus-question answer ("highlight") or goal
// ("target") for a user. The full set is replaced on every save.
type UserTarget struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time `json:"created_at"`

	UserID  string `gorm:"index;not null" json:"user_id"`
	Type    string `gorm:"not null" json:"type"`
	Content string `gorm:"type:text" json:"content"`
}

type Submission struct {
	ID            string    `gorm:"primaryKey" json:"submission_id"`
	UserID        string    `gorm:"index;not null" json:"user_id"`
	DateSubmitted time.Time `gorm:"autoCreateTime" json:"date_submitted"`

	JobTitle        string   `json:"job_title"`
	TargetEmail     string   `json:"target_email"`
	Status          string   `gorm:"default:'draft'" json:"status"`
	SubmissionText  *string  `gorm:"type:text" json:"submission_text"`
	JobRequirements []string `gorm:"serializer:json" json:"job_requirements"`
}
