package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sendme-app/sendme-backend/internal/dtos"
	"github.com/sendme-app/sendme-backend/internal/models"
	"github.com/sendme-app/sendme-backend/internal/services"
)

type SubmissionHandler struct {
	Users       *services.UserService
	Submissions *services.SubmissionService
	JobAds      *services.JobAdService
	LLM         *services.LLMService
	Email       *services.EmailService
}

func NewSubmissionHandler(
	users *services.UserService,
	submissions *services.SubmissionService,
	jobAds *services.JobAdService,
	llm *services.LLMService,
	email *services.EmailService,
) *SubmissionHandler {
	return &SubmissionHandler{
		Users:       users,
		Submissions: submissions,
		JobAds:      jobAds,
		LLM:         llm,
		Email:       email,
	}
}

// requireOnboardedUser loads the user and enforces the onboarding
// precondition shared by paragraph generation and email submission.
func (h *SubmissionHandler) requireOnboardedUser(c *gin.Context, userID string) (*models.User, bool) {
	user, err := h.Users.GetByID(userID)
	if err != nil {
		if errors.Is(err, services.ErrUserNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "User does not exist"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		}
		return nil, false
	}
	if !user.OnboardingComplete {
		c.JSON(http.StatusForbidden, gin.H{"error": "Onboarding must be completed first"})
		return nil, false
	}
	return user, true
}

// IngestJobAd extracts job data from a posting (text or image reference)
// and records a draft submission.
func (h *SubmissionHandler) IngestJobAd(c *gin.Context) {
	var req dtos.IngestRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid JSON format: " + err.Error()})
		return
	}

	jobData, err := h.JobAds.Extract(req.Content, req.ContentType)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Unsupported content type"})
		return
	}

	if _, err := h.Submissions.CreateDraft(req.UserID, jobData); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create submission: " + err.Error()})
		return
	}

	c.JSON(http.StatusOK, jobData)
}

// GenerateParagraph composes the personalized cover paragraph from the
// user's stored profile and the ingested job data. Nothing is persisted.
func (h *SubmissionHandler) GenerateParagraph(c *gin.Context) {
	var req dtos.ParagraphRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid JSON format: " + err.Error()})
		return
	}

	user, ok := h.requireOnboardedUser(c, req.UserID)
	if !ok {
		return
	}

	highlights, err := h.Users.GetHighlights(user.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	paragraph := h.LLM.ComposeParagraph(c.Request.Context(), services.ComposerInput{
		ResumeText:   user.ResumeText,
		Technologies: user.Technologies,
		Highlights:   highlights,
	}, req.JobData)

	c.JSON(http.StatusOK, dtos.ParagraphResponse{Paragraph: paragraph})
}

// SubmitEmail sends the final application email and resolves the
// submission to sent or error. The send outcome is durably recorded even
// when the request itself fails.
func (h *SubmissionHandler) SubmitEmail(c *gin.Context) {
	var req dtos.SubmitEmailRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid JSON format: " + err.Error()})
		return
	}

	user, ok := h.requireOnboardedUser(c, req.UserID)
	if !ok {
		return
	}

	submission, err := h.Submissions.GetByID(req.SubmissionID)
	if err != nil {
		if errors.Is(err, services.ErrSubmissionNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Submission not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	if err := h.Email.SendApplication(c.Request.Context(), user, submission, req.FinalText); err != nil {
		if dbErr := h.Submissions.MarkError(submission.ID); dbErr != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": dbErr.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to send email via Gmail API"})
		return
	}

	if err := h.Submissions.MarkSent(submission.ID, req.FinalText); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Email submitted successfully."})
}

// GetSubmissionHistory returns the user's submissions, newest first.
func (h *SubmissionHandler) GetSubmissionHistory(c *gin.Context) {
	userID := c.Query("user_id")
	if userID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "user_id is required"})
		return
	}

	submissions, err := h.Submissions.HistoryByUser(userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	records := make([]dtos.SubmissionRecord, 0, len(submissions))
	for _, s := range submissions {
		records = append(records, dtos.SubmissionRecord{
			SubmissionID:    s.ID,
			UserID:          s.UserID,
			DateSubmitted:   s.DateSubmitted,
			JobTitle:        s.JobTitle,
			TargetEmail:     s.TargetEmail,
			Status:          s.Status,
			SubmissionText:  s.SubmissionText,
			JobRequirements: s.JobRequirements,
		})
	}

	c.JSON(http.StatusOK, dtos.SubmissionHistoryResponse{Submissions: records})
}
