package handlers

import (
	"errors"
	"io"
	"log"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/sendme-app/sendme-backend/internal/dtos"
	"github.com/sendme-app/sendme-backend/internal/services"
)

type OnboardingHandler struct {
	Users   *services.UserService
	LLM     *services.LLMService
	Storage *services.StorageService
}

func NewOnboardingHandler(users *services.UserService, llm *services.LLMService, storage *services.StorageService) *OnboardingHandler {
	return &OnboardingHandler{Users: users, LLM: llm, Storage: storage}
}

// UploadResume is the combined onboarding endpoint: it takes the resume,
// extracts a profile and focus questions with the LLM, persists the
// profile and returns both to the frontend. AI failure degrades the
// response, it never fails the request.
func (h *OnboardingHandler) UploadResume(c *gin.Context) {
	userID := c.PostForm("user_id")
	if userID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "user_id is required"})
		return
	}

	user, err := h.Users.GetByID(userID)
	if err != nil {
		if errors.Is(err, services.ErrUserNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "User does not exist"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	fileHeader, err := c.FormFile("resume_file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "resume_file is required"})
		return
	}

	// Only text-extractable documents are accepted; reject before any
	// external call is made.
	contentType := fileHeader.Header.Get("Content-Type")
	if contentType != "application/pdf" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Resume file must be a PDF"})
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to read resume file"})
		return
	}
	defer file.Close()

	fileBytes, err := io.ReadAll(file)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to read resume file"})
		return
	}

	// Best effort: a failed upload must not block onboarding.
	if h.Storage.Enabled() {
		if url, err := h.Storage.UploadResume(c.Request.Context(), user.ID, fileHeader.Filename, fileBytes, contentType); err != nil {
			log.Printf("⚠️  Resume upload to GCS failed: %v", err)
		} else if url != "" {
			if err := h.Users.SaveResumeURL(user.ID, url); err != nil {
				log.Printf("⚠️  Saving resume URL failed: %v", err)
			}
		}
	}

	rawText := strings.ToValidUTF8(string(fileBytes), "")
	extraction := h.LLM.AnalyzeResume(c.Request.Context(), rawText)

	if err := h.Users.ApplyResumeAnalysis(user, extraction.ProfileData); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save profile: " + err.Error()})
		return
	}

	updated, err := h.Users.GetByID(user.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, dtos.OnboardingResponse{
		Profile:   toProfile(updated),
		Questions: dtos.FocusQuestionList{Questions: extraction.Questions},
	})
}

// SaveFocusAnswers stores the chosen focus-question values as the user's
// highlights (full replacement) and completes onboarding.
func (h *OnboardingHandler) SaveFocusAnswers(c *gin.Context) {
	var req dtos.FocusAnswersRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid JSON format: " + err.Error()})
		return
	}

	if _, err := h.Users.GetByID(req.UserID); err != nil {
		if errors.Is(err, services.ErrUserNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "User does not exist"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	if err := h.Users.SaveFocusAnswers(req.UserID, req.Answers); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save answers: " + err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Onboarding completed successfully."})
}
