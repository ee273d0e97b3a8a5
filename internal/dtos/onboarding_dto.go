package dtos

// FocusOption is one selectable answer to a focus question. Text is what
// the user sees; Value is the short highlight phrase embedded into the
// generated cover paragraph.
type FocusOption struct {
	Text  string `json:"text"`
	Value string `json:"value"`
}

type FocusQuestion struct {
	Q       string        `json:"q"`
	Options []FocusOption `json:"options"`
}

// ResumeAnalysis is the structured profile the LLM extracts from raw
// resume text.
type ResumeAnalysis struct {
	Name              string   `json:"name"`
	Email             string   `json:"email"`
	ExperienceSummary string   `json:"experience_summary"`
	Technologies      []string `json:"technologies"`
}

// OnboardingExtraction is the combined strict-JSON output of the resume
// analysis call: profile fields plus generated focus questions.
type OnboardingExtraction struct {
	ProfileData ResumeAnalysis  `json:"profile_data"`
	Questions   []FocusQuestion `json:"questions"`
}

type FocusQuestionList struct {
	Questions []FocusQuestion `json:"questions"`
}

type OnboardingResponse struct {
	Profile   UserProfile       `json:"profile"`
	Questions FocusQuestionList `json:"questions"`
}

// FocusAnswersRequest maps question IDs to the chosen option values.
type FocusAnswersRequest struct {
	UserID  string            `json:"user_id" binding:"required"`
	Answers map[string]string `json:"answers" binding:"required"`
}
