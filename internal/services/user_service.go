package services

import (
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/sendme-app/sendme-backend/internal/dtos"
	"github.com/sendme-app/sendme-backend/internal/models"
	"gorm.io/gorm"
)

var (
	ErrUserNotFound         = errors.New("user not found")
	ErrOnboardingIncomplete = errors.New("onboarding not complete")
)

type UserService struct {
	DB *gorm.DB
}

func NewUserService(db *gorm.DB) *UserService {
	return &UserService{DB: db}
}

// NormalizePhone strips hyphens and whitespace so that "050-1234567" and
// "050 1234567" resolve to the same user.
func NormalizePhone(phone string) string {
	phone = strings.ReplaceAll(phone, "-", "")
	return strings.Join(strings.Fields(phone), "")
}

// FindOrCreateByPhone looks a user up by normalized phone number and
// creates one on first authentication. Returns the user and whether it
// was just created.
func (s *UserService) FindOrCreateByPhone(phone string) (*models.User, bool, error) {
	normalized := NormalizePhone(phone)

	var user models.User
	err := s.DB.Where("phone_number = ?", normalized).First(&user).Error
	if err == nil {
		return &user, false, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, false, err
	}

	user = models.User{
		ID:          uuid.NewString(),
		PhoneNumber: normalized,
	}
	if err := s.DB.Create(&user).Error; err != nil {
		return nil, false, err
	}
	return &user, true, nil
}

func (s *UserService) GetByID(id string) (*models.User, error) {
	var user models.User
	err := s.DB.Where("id = ?", id).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// ApplyResumeAnalysis writes the extracted profile fields onto the user.
// Partial-update semantics: empty extracted fields never blank out values
// the user already has.
func (s *UserService) ApplyResumeAnalysis(user *models.User, analysis dtos.ResumeAnalysis) error {
	changed := false
	if analysis.Name != "" {
		user.Name = analysis.Name
		changed = true
	}
	if analysis.Email != "" {
		user.Email = analysis.Email
		changed = true
	}
	if analysis.ExperienceSummary != "" {
		user.ResumeText = analysis.ExperienceSummary
		changed = true
	}
	if len(analysis.Technologies) > 0 {
		user.Technologies = analysis.Technologies
		changed = true
	}
	if !changed {
		return nil
	}
	return s.DB.Save(user).Error
}

func (s *UserService) SaveResumeURL(userID, url string) error {
	return s.DB.Model(&models.User{}).Where("id = ?", userID).Update("resume_url", url).Error
}

// SaveFocusAnswers replaces the user's stored highlights with the given
// answer set and marks onboarding complete. Delete and insert run in one
// transaction so a concurrent reader never sees an empty window.
func (s *UserService) SaveFocusAnswers(userID string, answers map[string]string) error {
	return s.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("user_id = ?", userID).Delete(&models.UserTarget{}).Error; err != nil {
			return err
		}
		for _, value := range answers {
			target := models.UserTarget{
				UserID:  userID,
				Type:    models.TargetTypeHighlight,
				Content: value,
			}
			if err := tx.Create(&target).Error; err != nil {
				return err
			}
		}
		return tx.Model(&models.User{}).Where("id = ?", userID).
			Update("onboarding_complete", true).Error
	})
}

// GetHighlights returns the content of the user's highlight targets.
func (s *UserService) GetHighlights(userID string) ([]string, error) {
	var targets []models.UserTarget
	err := s.DB.Where("user_id = ? AND type = ?", userID, models.TargetTypeHighlight).
		Order("id").Find(&targets).Error
	if err != nil {
		return nil, err
	}
	highlights := make([]string, 0, len(targets))
	for _, t := range targets {
		highlights = append(highlights, t.Content)
	}
	return highlights, nil
}
