package services

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"log"

	"github.com/sendme-app/sendme-backend/internal/models"
	"google.golang.org/api/gmail/v1"
)

var ErrSendFailed = errors.New("email send failed")

type EmailService struct {
	// Gmail is nil when OAuth credentials are missing; sends then fail
	// with ErrSendFailed and the submission is marked as errored.
	Gmail *gmail.Service
}

func NewEmailService(gmail *gmail.Service) *EmailService {
	return &EmailService{Gmail: gmail}
}

// SendApplication assembles the final application email and sends it via
// the Gmail API as the authenticated account. One attempt: a retried send
// could deliver the application twice.
func (s *EmailService) SendApplication(ctx context.Context, user *models.User, submission *models.Submission, finalText string) error {
	if s.Gmail == nil {
		return fmt.Errorf("%w: gmail client not configured", ErrSendFailed)
	}

	subject := fmt.Sprintf("Application for %s", submission.JobTitle)
	body := buildApplicationBody(user.Name, finalText)
	raw := buildRawMessage(user.Email, submission.TargetEmail, subject, body)

	_, err := s.Gmail.Users.Messages.Send("me", &gmail.Message{Raw: raw}).Context(ctx).Do()
	if err != nil {
		log.Printf("❌ Gmail send to %s failed: %v", submission.TargetEmail, err)
		return fmt.Errorf("%w: %v", ErrSendFailed, err)
	}

	log.Printf("✅ Application email sent to %s (%s)", submission.TargetEmail, submission.JobTitle)
	return nil
}

func buildApplicationBody(senderName, finalText string) string {
	return fmt.Sprintf(`Hello,

%s

My resume is attached.

Best regards,
%s
`, finalText, senderName)
}

// buildRawMessage encodes an RFC 2822 message the way the Gmail API
// expects: headers and body, base64url as one string.
func buildRawMessage(from, to, subject, body string) string {
	msg := fmt.Sprintf("From: %s\r\nTo: %s\r\nSubject: %s\r\nContent-Type: text/plain; charset=\"UTF-8\"\r\n\r\n%s",
		from, to, subject, body)
	return base64.URLEncoding.EncodeToString([]byte(msg))
}
