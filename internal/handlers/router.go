package handlers

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// NewRouter wires the API routes and CORS policy.
func NewRouter(frontendURL string, auth *AuthHandler, onboarding *OnboardingHandler, submissions *SubmissionHandler) *gin.Engine {
	r := gin.Default()

	config := cors.DefaultConfig()
	config.AllowOrigins = []string{"http://localhost", frontendURL}
	config.AllowHeaders = []string{"Origin", "Content-Length", "Content-Type", "Authorization"}
	r.Use(cors.New(config))

	api := r.Group("/api/v1")
	{
		api.GET("/health", HealthCheck)

		api.POST("/auth/phone", auth.AuthenticateByPhone)

		api.POST("/onboarding/resume", onboarding.UploadResume)
		api.POST("/onboarding/focus-questions", onboarding.SaveFocusAnswers)

		api.POST("/chat/ingest", submissions.IngestJobAd)
		api.POST("/chat/generate/paragraph", submissions.GenerateParagraph)
		api.POST("/chat/submit/email", submissions.SubmitEmail)
		api.GET("/chat/submissions", submissions.GetSubmissionHistory)
	}

	return r
}
