package services

import (
	"errors"
	"regexp"

	"github.com/sendme-app/sendme-backend/internal/dtos"
)

var ErrUnsupportedContentType = errors.New("unsupported content type")

var emailPattern = regexp.MustCompile(`[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}`)

// JobAdService extracts structured job data from a posting. Both branches
// are placeholder extractors: real OCR and LLM parsing are external
// collaborators to be integrated later. The contract is what matters:
// content in, some JobData out, never an error past input validation.
type JobAdService struct{}

func NewJobAdService() *JobAdService {
	return &JobAdService{}
}

// Extract dispatches on content type. Unknown content types are the only
// error case.
func (s *JobAdService) Extract(content, contentType string) (dtos.JobData, error) {
	switch contentType {
	case dtos.ContentTypeText:
		return s.extractFromText(content), nil
	case dtos.ContentTypeImageURL:
		return s.extractFromImage(content), nil
	default:
		return dtos.JobData{}, ErrUnsupportedContentType
	}
}

// extractFromText stands in for the future LLM extraction call. It sniffs
// a contact email out of the ad when one is present; title and
// requirements are fixed placeholder data.
func (s *JobAdService) extractFromText(content string) dtos.JobData {
	targetEmail := "hr@mockcompany.com"
	if match := emailPattern.FindString(content); match != "" {
		targetEmail = match
	}
	return dtos.JobData{
		JobTitle:     "Full-Stack Developer",
		TargetEmail:  targetEmail,
		Requirements: []string{"Python", "FastAPI", "React"},
	}
}

// extractFromImage stands in for the future OCR pipeline.
func (s *JobAdService) extractFromImage(_ string) dtos.JobData {
	return dtos.JobData{
		JobTitle:     "Senior Developer",
		TargetEmail:  "test@company.com",
		Requirements: []string{"React", "Python", "SQL"},
	}
}
