package dtos

import "time"

// Job-ad content types accepted by the ingest endpoint.
const (
	ContentTypeText     = "text"
	ContentTypeImageURL = "image_url"
)

type IngestRequest struct {
	UserID      string `json:"user_id" binding:"required"`
	Content     string `json:"content" binding:"required"`
	ContentType string `json:"content_type" binding:"required"`
}

// JobData is the structured job posting extracted from an ad.
type JobData struct {
	JobTitle     string   `json:"job_title"`
	TargetEmail  string   `json:"target_email"`
	Requirements []string `json:"requirements"`
}

type ParagraphRequest struct {
	UserID  string  `json:"user_id" binding:"required"`
	JobData JobData `json:"job_data" binding:"required"`
}

type ParagraphResponse struct {
	Paragraph string `json:"paragraph"`
}

type SubmitEmailRequest struct {
	SubmissionID string `json:"submission_id" binding:"required"`
	FinalText    string `json:"final_text" binding:"required"`
	UserID       string `json:"user_id" binding:"required"`
}

type SubmissionRecord struct {
	SubmissionID    string    `json:"submission_id"`
	UserID          string    `json:"user_id"`
	DateSubmitted   time.Time `json:"date_submitted"`
	JobTitle        string    `json:"job_title"`
	TargetEmail     string    `json:"target_email"`
	Status          string    `json:"status"`
	SubmissionText  *string   `json:"submission_text"`
	JobRequirements []string  `json:"job_requirements"`
}

type SubmissionHistoryResponse struct {
	Submissions []SubmissionRecord `json:"submissions"`
}
