package services

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strings"

	"github.com/sendme-app/sendme-backend/internal/dtos"
	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/googleai"
)

// Sentinel values for degraded results. AI unavailability must never
// block onboarding or submission, so failed calls return these instead
// of an error.
const (
	degradedName    = "unknown"
	degradedEmail   = "error@sendme.app"
	degradedSummary = "Resume analysis is unavailable right now due to an AI service error."

	paragraphApology = "We're sorry - the personalized paragraph could not be generated right now. Please try again."
)

type LLMService struct {
	// Client is nil when no API key is configured; every method then
	// returns its degraded result immediately.
	Client llms.Model
}

// NewLLMService initializes the Gemini client. A missing key or a failed
// init leaves the client nil rather than aborting startup.
func NewLLMService(apiKey, model string) *LLMService {
	if apiKey == "" {
		log.Println("⚠️  GEMINI_API_KEY is empty. LLM features will return degraded results.")
		return &LLMService{}
	}

	ctx := context.Background()
	llm, err := googleai.New(ctx,
		googleai.WithAPIKey(apiKey),
		googleai.WithDefaultModel(model),
	)
	if err != nil {
		log.Printf("⚠️  Failed to create Gemini client: %v. LLM features degraded.", err)
		return &LLMService{}
	}

	return &LLMService{Client: llm}
}

const resumeAnalysisPrompt = `
You are an expert recruiter analyzing a resume. Your task:
1. **Extract** the candidate's key data: name, email, an experience summary (2-3 sentences) and the main technologies (array).
2. **Generate** 4-5 personalized focus questions whose answers surface professional "highlights" that can be embedded into a job-application email. Offer 3-4 possible answers per question.

Return valid raw JSON only, matching this schema exactly. Do not wrap the output in markdown code blocks.
{
    "profile_data": {
        "name": "Candidate name",
        "email": "Email address",
        "experience_summary": "Experience summary",
        "technologies": ["Technology 1", "Technology 2"]
    },
    "questions": [
        {
            "q": "The focus question",
            "options": [
                {"text": "Answer explanation", "value": "Short highlight phrase for the email"},
                {"text": "Answer explanation", "value": "Short highlight phrase for the email"}
            ]
        }
    ]
}

### RAW RESUME:
%s
`

// AnalyzeResume extracts a structured profile plus focus questions from
// raw resume text. It never returns an error: any failure yields a
// sentinel profile and an empty question list. One attempt, no retries.
func (s *LLMService) AnalyzeResume(ctx context.Context, resumeText string) dtos.OnboardingExtraction {
	if s.Client == nil {
		return degradedExtraction()
	}

	prompt := fmt.Sprintf(resumeAnalysisPrompt, resumeText)
	resp, err := llms.GenerateFromSinglePrompt(ctx, s.Client, prompt)
	if err != nil {
		log.Printf("❌ Resume analysis call failed: %v", err)
		return degradedExtraction()
	}

	var extraction dtos.OnboardingExtraction
	if err := json.Unmarshal([]byte(stripJSONFences(resp)), &extraction); err != nil {
		log.Printf("❌ Resume analysis returned unusable JSON: %v", err)
		return degradedExtraction()
	}
	return extraction
}

func degradedExtraction() dtos.OnboardingExtraction {
	return dtos.OnboardingExtraction{
		ProfileData: dtos.ResumeAnalysis{
			Name:              degradedName,
			Email:             degradedEmail,
			ExperienceSummary: degradedSummary,
			Technologies:      []string{},
		},
		Questions: []dtos.FocusQuestion{},
	}
}

// ComposerInput carries the user-side data for paragraph composition,
// assembled by the flow rather than leaked from the store layer.
type ComposerInput struct {
	ResumeText   string
	Technologies []string
	Highlights   []string
}

const paragraphPrompt = `
You are an expert career writer. Write one short (max 4 sentences), strong, fully personalized paragraph to serve as the opening body text of a job-application email.

The paragraph must:
1. Address 2-3 of the main requirements from the job ad.
2. Weave in at least one of the candidate's professional highlights.
3. Be sharp, professional and fluent.

Return only the paragraph itself.

### INPUT DATA:
- Experience summary: %s
- Key technologies: %s
- Professional highlights:
%s

- Job requirements (must address):
%s
`

// ComposeParagraph generates the cover paragraph. Failure yields a fixed
// apology string, never an error.
func (s *LLMService) ComposeParagraph(ctx context.Context, input ComposerInput, job dtos.JobData) string {
	if s.Client == nil {
		return paragraphApology
	}

	prompt := buildParagraphPrompt(input, job)
	resp, err := llms.GenerateFromSinglePrompt(ctx, s.Client, prompt)
	if err != nil {
		log.Printf("❌ Paragraph generation call failed: %v", err)
		return paragraphApology
	}
	return strings.TrimSpace(resp)
}

func buildParagraphPrompt(input ComposerInput, job dtos.JobData) string {
	highlights := "No specific highlights."
	if len(input.Highlights) > 0 {
		highlights = "- " + strings.Join(input.Highlights, "\n- ")
	}
	requirements := "- " + strings.Join(job.Requirements, "\n- ")

	return fmt.Sprintf(paragraphPrompt,
		input.ResumeText,
		strings.Join(input.Technologies, ", "),
		highlights,
		requirements,
	)
}

// stripJSONFences removes a markdown code fence the model sometimes wraps
// around its JSON output despite instructions.
func stripJSONFences(raw string) string {
	s := strings.TrimSpace(raw)
	if strings.HasPrefix(s, "```") {
		s = strings.TrimPrefix(s, "```json")
		s = strings.TrimPrefix(s, "```")
		s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	}
	return strings.TrimSpace(s)
}
