package apiclient

import (
	"context"
	"fmt"
	"net/http"

	"github.com/justsurfingit/job-board/internal/dtos"
)

func (c *Client) GenerateResume(ctx context.Context, req dtos.ResumeGenerateRequest) (*dtos.ResumeGenerateResponse, error) {
	var out dtos.ResumeGenerateResponse
	if err := c.doJSON(ctx, http.MethodPost, "/resume/generate", nil, req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// CreateResumePDF renders the resume server side and attaches it to the application.
func (c *Client) CreateResumePDF(ctx context.Context, req dtos.ResumePDFRequest) (*dtos.ResumePDFResponse, error) {
	var out dtos.ResumePDFResponse
	if err := c.doJSON(ctx, http.MethodPost, "/resume/create-pdf", nil, req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) GetResume(ctx context.Context, applicationID int) (*dtos.ResumeLocation, error) {
	var out dtos.ResumeLocation
	if err := c.getJSON(ctx, fmt.Sprintf("/resume/%d", applicationID), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
