package dtos

import "github.com/justsurfingit/job-board/internal/models"

// ApplicationCreateRequest is the create form; dates are ISO strings as typed by the user.
type ApplicationCreateRequest struct {
	CompanyName string `json:"company_name" binding:"required"`
	Position    string `json:"position" binding:"required"`

	// Optional Fields
	AppliedDate     *string       `json:"applied_date,omitempty"`
	Status          models.Status `json:"status,omitempty"` // backend defaults to "pending"
	InterviewDate   *string       `json:"interview_date,omitempty"`
	RejectionDate   *string       `json:"rejection_date,omitempty"`
	RejectionReason string        `json:"rejection_reason,omitempty"`
	Notes           string        `json:"notes,omitempty"`
	JobURL          string        `json:"job_url,omitempty"`
	ContactEmail    string        `json:"contact_email,omitempty"`
	Location        string        `json:"location,omitempty"`
	SalaryRange     string        `json:"salary_range,omitempty"`
	Source          string        `json:"source,omitempty"`
	ImagePath       string        `json:"image_path,omitempty"`
}

// ApplicationUpdateRequest is a partial update; nil fields are left unchanged.
type ApplicationUpdateRequest struct {
	CompanyName     *string        `json:"company_name,omitempty"`
	Position        *string        `json:"position,omitempty"`
	AppliedDate     *string        `json:"applied_date,omitempty"`
	Status          *models.Status `json:"status,omitempty"`
	InterviewDate   *string        `json:"interview_date,omitempty"`
	RejectionDate   *string        `json:"rejection_date,omitempty"`
	RejectionReason *string        `json:"rejection_reason,omitempty"`
	Notes           *string        `json:"notes,omitempty"`
	JobURL          *string        `json:"job_url,omitempty"`
	ContactEmail    *string        `json:"contact_email,omitempty"`
	Location        *string        `json:"location,omitempty"`
	SalaryRange     *string        `json:"salary_range,omitempty"`
	ImagePath       *string        `json:"image_path,omitempty"`
	ResumePath      *string        `json:"resume_path,omitempty"`
}

// ImageExtraction is what the backend pulls out of a job-posting screenshot.
// Any field may be missing when extraction fails; ImagePath is always set.
type ImageExtraction struct {
	ImagePath    string  `json:"image_path"`
	CompanyName  *string `json:"company_name"`
	Position     *string `json:"position"`
	Location     *string `json:"location"`
	JobURL       *string `json:"job_url"`
	ContactEmail *string `json:"contact_email"`
	SalaryRange  *string `json:"salary_range"`
	Notes        *string `json:"notes"`
}

// Prefill turns an extraction into a create form, leaving unknown fields blank.
func (e ImageExtraction) Prefill() ApplicationCreateRequest {
	deref := func(s *string) string {
		if s == nil {
			return ""
		}
		return *s
	}
	return ApplicationCreateRequest{
		CompanyName:  deref(e.CompanyName),
		Position:     deref(e.Position),
		Location:     deref(e.Location),
		JobURL:       deref(e.JobURL),
		ContactEmail: deref(e.ContactEmail),
		SalaryRange:  deref(e.SalaryRange),
		Notes:        deref(e.Notes),
		ImagePath:    e.ImagePath,
	}
}

// JobPostingExtractionRequest carries pasted job-posting text for the LLM extractor.
type JobPostingExtractionRequest struct {
	RawText string `json:"raw_text" binding:"required"`
	URL     string `json:"url"`
}

type SyncEmailsResponse struct {
	Message      string               `json:"message"`
	Applications []models.Application `json:"applications"`
}

type MessageResponse struct {
	Message string `json:"message"`
}
