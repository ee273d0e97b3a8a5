package services

import (
	"errors"

	"github.com/google/uuid"
	"github.com/sendme-app/sendme-backend/internal/dtos"
	"github.com/sendme-app/sendme-backend/internal/models"
	"gorm.io/gorm"
)

var ErrSubmissionNotFound = errors.New("submission not found")

type SubmissionService struct {
	DB *gorm.DB
}

func NewSubmissionService(db *gorm.DB) *SubmissionService {
	return &SubmissionService{DB: db}
}

// CreateDraft records a new application attempt in draft status.
// DateSubmitted is server-assigned on insert.
func (s *SubmissionService) CreateDraft(userID string, job dtos.JobData) (*models.Submission, error) {
	submission := models.Submission{
		ID:              uuid.NewString(),
		UserID:          userID,
		JobTitle:        job.JobTitle,
		TargetEmail:     job.TargetEmail,
		Status:          models.StatusDraft,
		JobRequirements: job.Requirements,
	}
	if err := s.DB.Create(&submission).Error; err != nil {
		return nil, err
	}
	return &submission, nil
}

func (s *SubmissionService) GetByID(id string) (*models.Submission, error) {
	var submission models.Submission
	err := s.DB.Where("id = ?", id).First(&submission).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrSubmissionNotFound
	}
	if err != nil {
		return nil, err
	}
	return &submission, nil
}

// MarkSent moves a draft submission to sent and stores the final email
// body. The status guard makes the update a no-op once the submission is
// terminal, so concurrent sends cannot overwrite a resolved outcome.
func (s *SubmissionService) MarkSent(id, finalText string) error {
	return s.DB.Model(&models.Submission{}).
		Where("id = ? AND status = ?", id, models.StatusDraft).
		Updates(map[string]interface{}{
			"status":          models.StatusSent,
			"submission_text": finalText,
		}).Error
}

// MarkError moves a draft submission to error. Same guard as MarkSent.
func (s *SubmissionService) MarkError(id string) error {
	return s.DB.Model(&models.Submission{}).
		Where("id = ? AND status = ?", id, models.StatusDraft).
		Update("status", models.StatusError).Error
}

// HistoryByUser returns the user's submissions, newest first.
func (s *SubmissionService) HistoryByUser(userID string) ([]models.Submission, error) {
	var submissions []models.Submission
	err := s.DB.Where("user_id = ?", userID).
		Order("date_submitted DESC").Find(&submissions).Error
	if err != nil {
		return nil, err
	}
	return submissions, nil
}
