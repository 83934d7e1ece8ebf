package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/rs/zerolog"
	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/googleai"

	"github.com/justsurfingit/job-board/internal/dtos"
	"github.com/justsurfingit/job-board/internal/models"
)

// maxPromptInput keeps pasted pages within the model's context budget.
const maxPromptInput = 20000

var ErrNoJSON = errors.New("model response contained no JSON object")

type LLMService struct {
	Client llms.Model
	Log    zerolog.Logger
}

// NewLLMService connects to Gemini with the given key and default model.
func NewLLMService(ctx context.Context, apiKey, model string, log zerolog.Logger) (*LLMService, error) {
	if apiKey == "" {
		return nil, errors.New("GEMINI_API_KEY is empty")
	}
	llm, err := googleai.New(ctx,
		googleai.WithAPIKey(apiKey),
		googleai.WithDefaultModel(model),
	)
	if err != nil {
		return nil, fmt.Errorf("create gemini client: %w", err)
	}
	return &LLMService{Client: llm, Log: log}, nil
}

const profileExtractionPrompt = `
You are an expert at extracting structured information from resumes, CVs, and portfolio text.

### INSTRUCTIONS:
1. **Extract** every relevant detail from the text below.
2. **Format** the output as valid JSON only. Do not wrap the output in markdown code blocks.
3. If a piece of information is missing, use an empty string or an empty array. Do not guess.

### OUTPUT SCHEMA:
{
  "personal_info": {"name": "", "email": "", "phone": "", "location": "", "linkedin": "", "portfolio": "", "github": ""},
  "summary": "Professional summary (2-3 sentences)",
  "skills": ["Skill 1", "Skill 2"],
  "experience": [{"title": "", "company": "", "location": "", "start_date": "MM/YYYY", "end_date": "MM/YYYY or Present", "description": ["Achievement"]}],
  "education": [{"degree": "", "school": "", "location": "", "graduation_date": "YYYY", "gpa": "", "honors": ""}],
  "projects": [{"name": "", "description": "", "technologies": [""], "url": ""}],
  "certifications": [{"name": "", "issuer": "", "date": "MM/YYYY", "expiry": ""}],
  "languages": [{"language": "", "proficiency": ""}],
  "publications": [{"title": "", "authors": "", "journal": "", "date": "MM/YYYY", "url": ""}],
  "awards": [{"name": "", "issuer": "", "date": "MM/YYYY", "description": ""}],
  "volunteer_work": [{"organization": "", "role": "", "location": "", "start_date": "", "end_date": "", "description": [""]}]
}

### PORTFOLIO TEXT:
%s
`

// ExtractProfile asks the model for a structured profile from free text.
func (s *LLMService) ExtractProfile(ctx context.Context, text string) (models.Profile, error) {
	var p models.Profile
	if err := s.generateJSON(ctx, profileExtractionPrompt, text, &p); err != nil {
		return models.Profile{}, err
	}
	return p, nil
}

const jobExtractionPrompt = `
You are an expert Job Data Extraction Agent. Analyze the provided raw text from a job posting and extract structured data.

### INSTRUCTIONS:
1. **Ignore** navigation menus, footers, "similar jobs" lists, and site advertisements.
2. **Format** the output as valid JSON only. Do not wrap the output in markdown code blocks.
3. If a piece of information is missing, set the value to null. Do not hallucinate or guess.

### OUTPUT SCHEMA:
{
    "company_name": "Name of the company",
    "position": "Job title",
    "location": "Job location or 'Remote'",
    "salary_range": "Salary string if explicitly mentioned, otherwise null",
    "contact_email": "Recruiter email if present, otherwise null",
    "notes": "A short summary of responsibilities and requirements"
}

### RAW CONTENT:
%s
`

// ExtractJobDetails turns a pasted job posting into a prefilled create form.
func (s *LLMService) ExtractJobDetails(ctx context.Context, req dtos.JobPostingExtractionRequest) (dtos.ApplicationCreateRequest, error) {
	var out dtos.ImageExtraction
	if err := s.generateJSON(ctx, jobExtractionPrompt, req.RawText, &out); err != nil {
		return dtos.ApplicationCreateRequest{}, err
	}
	form := out.Prefill()
	if form.JobURL == "" {
		form.JobURL = req.URL
	}
	return form, nil
}

func (s *LLMService) generateJSON(ctx context.Context, prompt, input string, out any) error {
	input = clip(input, maxPromptInput)
	resp, err := llms.GenerateFromSinglePrompt(ctx, s.Client, fmt.Sprintf(prompt, input))
	if err != nil {
		return fmt.Errorf("generate: %w", err)
	}
	raw, err := extractJSONObject(resp)
	if err != nil {
		s.Log.Warn().Str("response", truncate(resp, 200)).Msg("model returned no JSON")
		return err
	}
	if err := json.Unmarshal([]byte(raw), out); err != nil {
		return fmt.Errorf("parse model JSON: %w", err)
	}
	return nil
}

// extractJSONObject pulls the outermost {...} out of a reply, which models
// often wrap in code fences or prose despite instructions.
func extractJSONObject(s string) (string, error) {
	start := strings.Index(s, "{")
	end := strings.LastIndex(s, "}")
	if start < 0 || end < start {
		return "", ErrNoJSON
	}
	return s[start : end+1], nil
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return clip(s, n) + "..."
}

// clip cuts s to at most n bytes without splitting a UTF-8 sequence.
func clip(s string, n int) string {
	if len(s) <= n {
		return s
	}
	for n > 0 && !utf8.RuneStart(s[n]) {
		n--
	}
	return s[:n]
}
