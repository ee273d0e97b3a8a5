package handlers

import (
	"bytes"
	"encoding/json"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/sendme-app/sendme-backend/internal/dtos"
	"github.com/sendme-app/sendme-backend/internal/models"
	"github.com/sendme-app/sendme-backend/internal/services"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// newTestServer wires the full router against an in-memory database with
// no external services configured: the LLM degrades and mail sends fail,
// which is exactly what the degraded-path contracts promise.
func newTestServer(t *testing.T) (*gin.Engine, *gorm.DB) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.User{}, &models.UserTarget{}, &models.Submission{}))

	userService := services.NewUserService(db)
	submissionService := services.NewSubmissionService(db)
	llmService := services.NewLLMService("", "gemini-2.5-flash")
	jobAdService := services.NewJobAdService()
	emailService := services.NewEmailService(nil)
	storageService := services.NewStorageService(nil, "")

	authHandler := NewAuthHandler(userService)
	onboardingHandler := NewOnboardingHandler(userService, llmService, storageService)
	submissionHandler := NewSubmissionHandler(userService, submissionService, jobAdService, llmService, emailService)

	return NewRouter("http://localhost:3000", authHandler, onboardingHandler, submissionHandler), db
}

func postJSON(t *testing.T, r *gin.Engine, path string, payload interface{}) *httptest.ResponseRecorder {
	t.Helper()
	body, err := json.Marshal(payload)
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func uploadResume(t *testing.T, r *gin.Engine, userID, contentType string) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	require.NoError(t, mw.WriteField("user_id", userID))

	header := textproto.MIMEHeader{}
	header.Set("Content-Disposition", `form-data; name="resume_file"; filename="resume.pdf"`)
	header.Set("Content-Type", contentType)
	part, err := mw.CreatePart(header)
	require.NoError(t, err)
	_, err = part.Write([]byte("%PDF-1.4 Dana Levi, full-stack developer, Python, React"))
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/v1/onboarding/resume", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func authenticate(t *testing.T, r *gin.Engine, phone string) dtos.AuthResponse {
	t.Helper()
	w := postJSON(t, r, "/api/v1/auth/phone", dtos.PhoneAuthRequest{PhoneNumber: phone})
	require.Equal(t, http.StatusOK, w.Code)
	var resp dtos.AuthResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp
}

func TestHealthCheck(t *testing.T) {
	r, _ := newTestServer(t)
	req := httptest.NewRequest(http.MethodGet, "/api/v1/health", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestAuthenticateByPhoneFindOrCreate(t *testing.T) {
	r, _ := newTestServer(t)

	first := authenticate(t, r, "050-1234567")
	assert.True(t, first.IsNewUser)
	assert.False(t, first.User.OnboardingComplete)
	assert.Equal(t, "0501234567", first.User.PhoneNumber)

	second := authenticate(t, r, "050 1234567")
	assert.False(t, second.IsNewUser)
	assert.Equal(t, first.User.UserID, second.User.UserID)
}

func TestUploadResumeValidation(t *testing.T) {
	r, _ := newTestServer(t)
	user := authenticate(t, r, "0501234567").User

	t.Run("unknown user", func(t *testing.T) {
		w := uploadResume(t, r, "no-such-user", "application/pdf")
		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("wrong document format", func(t *testing.T) {
		w := uploadResume(t, r, user.UserID, "image/png")
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

// Degraded AI availability must never fail the onboarding request: the
// response is 200 with a sentinel profile and an empty question list.
func TestUploadResumeDegradesOnAIFailure(t *testing.T) {
	r, _ := newTestServer(t)
	user := authenticate(t, r, "0501234567").User

	w := uploadResume(t, r, user.UserID, "application/pdf")
	require.Equal(t, http.StatusOK, w.Code)

	var resp dtos.OnboardingResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.NotEmpty(t, resp.Profile.Name)
	assert.Empty(t, resp.Questions.Questions)
	assert.False(t, resp.Profile.OnboardingComplete)
}

func TestSaveFocusAnswersUnknownUser(t *testing.T) {
	r, _ := newTestServer(t)
	w := postJSON(t, r, "/api/v1/onboarding/focus-questions", dtos.FocusAnswersRequest{
		UserID:  "no-such-user",
		Answers: map[string]string{"q1": "a highlight"},
	})
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestIngestJobAd(t *testing.T) {
	r, db := newTestServer(t)
	user := authenticate(t, r, "0501234567").User

	t.Run("unsupported content type", func(t *testing.T) {
		w := postJSON(t, r, "/api/v1/chat/ingest", dtos.IngestRequest{
			UserID: user.UserID, Content: "an ad", ContentType: "video",
		})
		assert.Equal(t, http.StatusBadRequest, w.Code)

		var count int64
		require.NoError(t, db.Model(&models.Submission{}).Count(&count).Error)
		assert.Zero(t, count)
	})

	t.Run("text ad creates draft", func(t *testing.T) {
		w := postJSON(t, r, "/api/v1/chat/ingest", dtos.IngestRequest{
			UserID:      user.UserID,
			Content:     "Full-stack developer, Python/React, apply to hr@acme.com",
			ContentType: dtos.ContentTypeText,
		})
		require.Equal(t, http.StatusOK, w.Code)

		var job dtos.JobData
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &job))
		assert.Equal(t, "hr@acme.com", job.TargetEmail)

		var submission models.Submission
		require.NoError(t, db.Where("user_id = ?", user.UserID).First(&submission).Error)
		assert.Equal(t, models.StatusDraft, submission.Status)
		assert.Equal(t, "hr@acme.com", submission.TargetEmail)
	})
}

func TestGenerateParagraphForbiddenBeforeOnboarding(t *testing.T) {
	r, _ := newTestServer(t)
	user := authenticate(t, r, "0501234567").User

	w := postJSON(t, r, "/api/v1/chat/generate/paragraph", dtos.ParagraphRequest{
		UserID:  user.UserID,
		JobData: dtos.JobData{JobTitle: "Dev", Requirements: []string{"Go"}},
	})
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestSubmitEmailNotFound(t *testing.T) {
	r, db := newTestServer(t)
	user := authenticate(t, r, "0501234567").User
	require.NoError(t, db.Model(&models.User{}).Where("id = ?", user.UserID).
		Update("onboarding_complete", true).Error)

	w := postJSON(t, r, "/api/v1/chat/submit/email", dtos.SubmitEmailRequest{
		SubmissionID: "no-such-submission",
		FinalText:    "text",
		UserID:       user.UserID,
	})
	assert.Equal(t, http.StatusNotFound, w.Code)

	// No row created or altered.
	var count int64
	require.NoError(t, db.Model(&models.Submission{}).Count(&count).Error)
	assert.Zero(t, count)
}

// Full user journey against degraded externals: authenticate, onboard,
// ingest, generate, submit. With no mail client the send fails, which
// must surface as a server error AND durably mark the submission.
func TestFullApplicationFlow(t *testing.T) {
	r, db := newTestServer(t)

	user := authenticate(t, r, "050-1234567").User

	w := uploadResume(t, r, user.UserID, "application/pdf")
	require.Equal(t, http.StatusOK, w.Code)

	w = postJSON(t, r, "/api/v1/onboarding/focus-questions", dtos.FocusAnswersRequest{
		UserID: user.UserID,
		Answers: map[string]string{
			"q1": "led a team of five",
			"q2": "shipped a payment system",
		},
	})
	require.Equal(t, http.StatusOK, w.Code)

	profile := authenticate(t, r, "0501234567")
	assert.True(t, profile.User.OnboardingComplete)

	w = postJSON(t, r, "/api/v1/chat/ingest", dtos.IngestRequest{
		UserID:      user.UserID,
		Content:     "Full-stack developer, Python/React, apply to hr@acme.com",
		ContentType: dtos.ContentTypeText,
	})
	require.Equal(t, http.StatusOK, w.Code)

	var submission models.Submission
	require.NoError(t, db.Where("user_id = ?", user.UserID).First(&submission).Error)

	w = postJSON(t, r, "/api/v1/chat/generate/paragraph", dtos.ParagraphRequest{
		UserID:  user.UserID,
		JobData: dtos.JobData{JobTitle: "Full-Stack Developer", Requirements: []string{"Python", "React"}},
	})
	require.Equal(t, http.StatusOK, w.Code)
	var paragraph dtos.ParagraphResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &paragraph))
	assert.NotEmpty(t, paragraph.Paragraph)

	w = postJSON(t, r, "/api/v1/chat/submit/email", dtos.SubmitEmailRequest{
		SubmissionID: submission.ID,
		FinalText:    paragraph.Paragraph,
		UserID:       user.UserID,
	})
	assert.Equal(t, http.StatusInternalServerError, w.Code)

	require.NoError(t, db.Where("id = ?", submission.ID).First(&submission).Error)
	assert.Equal(t, models.StatusError, submission.Status)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/chat/submissions?user_id="+user.UserID, nil)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)

	var history dtos.SubmissionHistoryResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &history))
	require.Len(t, history.Submissions, 1)
	assert.Equal(t, models.StatusError, history.Submissions[0].Status)
}
