package config

import (
	"log"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// Config holds everything read from the environment at startup.
type Config struct {
	Port        string `envconfig:"PORT" default:"8080"`
	DatabaseURL string `envconfig:"DATABASE_URL" default:"host=localhost user=postgres password=password dbname=sendme port=5432 sslmode=disable"`

	GeminiAPIKey string `envconfig:"GEMINI_API_KEY"`
	GeminiModel  string `envconfig:"GEMINI_MODEL" default:"gemini-2.5-flash"`

	// Gmail OAuth files, relative to the working directory.
	GmailCredentialFile string `envconfig:"GMAIL_CREDENTIAL_FILE" default:"credential.json"`
	GmailTokenFile      string `envconfig:"GMAIL_TOKEN_FILE" default:"token.json"`

	// GCSBucket enables resume uploads when set.
	GCSBucket string `envconfig:"GCS_BUCKET"`

	FrontendURL string `envconfig:"FRONTEND_URL" default:"http://localhost:3000"`
}

// Load reads .env (if present) and then the process environment.
func Load() (Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using process environment")
	}

	var c Config
	if err := envconfig.Process("", &c); err != nil {
		return Config{}, err
	}
	return c, nil
}
