package services

import (
	"context"
	"encoding/base64"
	"testing"

	"github.com/sendme-app/sendme-backend/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSendApplicationWithoutClient(t *testing.T) {
	svc := NewEmailService(nil)

	err := svc.SendApplication(context.Background(),
		&models.User{Name: "Dana Levi", Email: "dana@example.com"},
		&models.Submission{JobTitle: "Developer", TargetEmail: "hr@acme.com"},
		"final paragraph")
	assert.ErrorIs(t, err, ErrSendFailed)
}

func TestBuildApplicationBody(t *testing.T) {
	body := buildApplicationBody("Dana Levi", "I am a great fit for this role.")

	assert.Contains(t, body, "Hello,")
	assert.Contains(t, body, "I am a great fit for this role.")
	assert.Contains(t, body, "My resume is attached.")
	assert.Contains(t, body, "Dana Levi")
}

func TestBuildRawMessage(t *testing.T) {
	raw := buildRawMessage("dana@example.com", "hr@acme.com", "Application for Developer", "body text")

	decoded, err := base64.URLEncoding.DecodeString(raw)
	require.NoError(t, err)

	msg := string(decoded)
	assert.Contains(t, msg, "From: dana@example.com\r\n")
	assert.Contains(t, msg, "To: hr@acme.com\r\n")
	assert.Contains(t, msg, "Subject: Application for Developer\r\n")
	assert.Contains(t, msg, "\r\n\r\nbody text")
}
