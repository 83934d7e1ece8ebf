package dtos

import "github.com/justsurfingit/job-board/internal/models"

type ResumeGenerateRequest struct {
	JobDescription string `json:"job_description" binding:"required"`
	ApplicationID  int    `json:"application_id" binding:"required"`
	ExistingResume string `json:"existing_resume,omitempty"`
	UseProfile     *bool  `json:"use_profile,omitempty"`
}

type ResumeGenerateResponse struct {
	ResumeData    models.ResumeDocument `json:"resume_data"`
	ApplicationID int                   `json:"application_id"`
}

// ResumeEditRequest applies one field edit to a resume preview.
type ResumeEditRequest struct {
	ResumeData models.ResumeDocument `json:"resume_data"`
	Field      string                `json:"field" binding:"required"`
	Value      string                `json:"value"`
}

type ResumePDFRequest struct {
	ResumeData    models.ResumeDocument `json:"resume_data"`
	ApplicationID int                   `json:"application_id" binding:"required"`
}

type ResumePDFResponse struct {
	Message       string `json:"message"`
	ResumePath    string `json:"resume_path"`
	ApplicationID int    `json:"application_id"`
}

type ResumeLocation struct {
	ResumePath    string `json:"resume_path"`
	ApplicationID int    `json:"application_id"`
}
