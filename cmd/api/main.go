package main

import (
	"context"
	"log"

	"cloud.google.com/go/storage"
	"github.com/sendme-app/sendme-backend/internal/auth"
	"github.com/sendme-app/sendme-backend/internal/config"
	"github.com/sendme-app/sendme-backend/internal/database"
	"github.com/sendme-app/sendme-backend/internal/handlers"
	"github.com/sendme-app/sendme-backend/internal/services"
	"google.golang.org/api/gmail/v1"
	"google.golang.org/api/option"
)

func main() {
	// 1. Load Environment Configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Error loading configuration:", err)
	}

	// 2. Database Connection
	db, err := database.Connect(cfg.DatabaseURL)
	if err != nil {
		log.Fatal("Failed to connect to database:", err)
	}

	// 3. Initialize Core Services (Dependencies)
	userService := services.NewUserService(db)
	submissionService := services.NewSubmissionService(db)
	llmService := services.NewLLMService(cfg.GeminiAPIKey, cfg.GeminiModel)
	jobAdService := services.NewJobAdService()

	ctx := context.Background()

	// 4. Initialize Gmail Integration
	log.Println("Initializing Gmail Client...")
	var gmailService *gmail.Service
	if httpClient := auth.GetGmailClient(cfg.GmailCredentialFile, cfg.GmailTokenFile); httpClient != nil {
		gmailService, err = gmail.NewService(ctx, option.WithHTTPClient(httpClient))
		if err != nil {
			log.Printf("⚠️  Failed to create Gmail Service: %v", err)
		} else {
			log.Println("✅ Gmail Service connected successfully.")
		}
	}
	emailService := services.NewEmailService(gmailService)

	// 5. Initialize GCS Resume Storage (optional)
	var storageClient *storage.Client
	if cfg.GCSBucket != "" {
		storageClient, err = storage.NewClient(ctx)
		if err != nil {
			log.Printf("⚠️  Failed to create GCS client: %v. Resume uploads disabled.", err)
			storageClient = nil
		}
	}
	storageService := services.NewStorageService(storageClient, cfg.GCSBucket)

	// 6. Initialize Handlers
	authHandler := handlers.NewAuthHandler(userService)
	onboardingHandler := handlers.NewOnboardingHandler(userService, llmService, storageService)
	submissionHandler := handlers.NewSubmissionHandler(userService, submissionService, jobAdService, llmService, emailService)

	// 7. Setup Router & Run
	r := handlers.NewRouter(cfg.FrontendURL, authHandler, onboardingHandler, submissionHandler)

	log.Printf("🚀 Server starting on port %s...", cfg.Port)
	if err := r.Run(":" + cfg.Port); err != nil {
		log.Fatal("Server failed to start:", err)
	}
}
