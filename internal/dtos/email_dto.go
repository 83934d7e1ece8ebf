package dtos

import (
	"fmt"

	"github.com/justsurfingit/job-board/internal/models"
)

// EmailApplicationRef links a listed email to the application it already produced.
type EmailApplicationRef struct {
	ID       int           `json:"id"`
	Status   models.Status `json:"status"`
	Company  string        `json:"company"`
	Position string        `json:"position"`
}

// EmailSummary is one job-related message in the Recent Emails list.
type EmailSummary struct {
	ID          string               `json:"id"`
	Subject     string               `json:"subject"`
	From        string               `json:"from"`
	Date        models.Timestamp     `json:"date"`
	Preview     string               `json:"preview"`
	Body        string               `json:"body,omitempty"`
	Application *EmailApplicationRef `json:"application"`
	MessageID   string               `json:"message_id,omitempty"`
}

// Processed reports whether the email already became an application.
func (e EmailSummary) Processed() bool {
	return e.Application != nil
}

type ProcessedApplication struct {
	ID          int           `json:"id"`
	CompanyName string        `json:"company_name"`
	Position    string        `json:"position"`
	Status      models.Status `json:"status,omitempty"`
}

// ProcessEmailResponse is the backend's verdict on one email: a new
// application, a rejection applied to an existing one, or neither.
type ProcessEmailResponse struct {
	Message              string                `json:"message"`
	ApplicationCreated   bool                  `json:"application_created,omitempty"`
	ApplicationUpdated   bool                  `json:"application_updated,omitempty"`
	Application          *ProcessedApplication `json:"application,omitempty"`
	IsRejection          bool                  `json:"is_rejection,omitempty"`
	MatchedApplicationID *int                  `json:"matched_application_id,omitempty"`
	ExtractedData        map[string]any        `json:"extracted_data,omitempty"`
}

// Summary is the one-line outcome shown after processing.
func (r ProcessEmailResponse) Summary(subject string) string {
	switch {
	case r.ApplicationUpdated && r.Application != nil:
		return fmt.Sprintf("Updated: %s - %s", r.Application.CompanyName, r.Application.Position)
	case r.ApplicationCreated && r.Application != nil:
		return fmt.Sprintf("Created: %s - %s", r.Application.CompanyName, r.Application.Position)
	}
	if len([]rune(subject)) > 50 {
		subject = string([]rune(subject)[:50]) + "..."
	}
	return "Processed: " + subject
}

type ProcessRecentRequest struct {
	Count int `json:"count" binding:"required"`
}

type EmailBatchResult struct {
	EmailID string `json:"email_id"`
	Subject string `json:"subject"`
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// EmailBatchResponse summarizes a bulk run over the most recent emails.
type EmailBatchResponse struct {
	Succeeded int                `json:"succeeded"`
	Failed    int                `json:"failed"`
	Results   []EmailBatchResult `json:"results"`
}
