package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"github.com/justsurfingit/job-board/internal/apiclient"
	"github.com/justsurfingit/job-board/internal/dtos"
	"github.com/justsurfingit/job-board/internal/models"
)

var (
	ErrEmptyJobDescription = errors.New("job description is required")
	ErrNoApplication       = errors.New("an application must be selected")
	ErrNoResume            = errors.New("no resume found for this application")
)

type ResumeAPI interface {
	GenerateResume(ctx context.Context, req dtos.ResumeGenerateRequest) (*dtos.ResumeGenerateResponse, error)
	CreateResumePDF(ctx context.Context, req dtos.ResumePDFRequest) (*dtos.ResumePDFResponse, error)
	GetResume(ctx context.Context, applicationID int) (*dtos.ResumeLocation, error)
}

// Refresher reloads the application list after a change lands upstream.
type Refresher interface {
	RefreshCurrent(ctx context.Context) error
}

type ResumeService struct {
	API       ResumeAPI
	Refresher Refresher
	Log       zerolog.Logger
}

func NewResumeService(api ResumeAPI, refresher Refresher, log zerolog.Logger) *ResumeService {
	return &ResumeService{API: api, Refresher: refresher, Log: log}
}

// Generate asks the backend for a resume tailored to jd, drawing on the
// saved profile when useProfile is set.
func (s *ResumeService) Generate(ctx context.Context, jd string, applicationID int, useProfile bool) (models.ResumeDocument, error) {
	if strings.TrimSpace(jd) == "" {
		return models.ResumeDocument{}, ErrEmptyJobDescription
	}
	if applicationID <= 0 {
		return models.ResumeDocument{}, ErrNoApplication
	}
	res, err := s.API.GenerateResume(ctx, dtos.ResumeGenerateRequest{
		JobDescription: jd,
		ApplicationID:  applicationID,
		UseProfile:     &useProfile,
	})
	if err != nil {
		return models.ResumeDocument{}, fmt.Errorf("generate resume: %w", err)
	}
	return res.ResumeData, nil
}

// Edit applies one preview edit and returns the updated copy.
func (s *ResumeService) Edit(doc models.ResumeDocument, field, value string) (models.ResumeDocument, error) {
	return doc.Set(field, value)
}

// CreatePDF renders doc and attaches it to the application, then refreshes
// the board so the resume link shows up.
func (s *ResumeService) CreatePDF(ctx context.Context, applicationID int, doc models.ResumeDocument) (*dtos.ResumePDFResponse, error) {
	if applicationID <= 0 {
		return nil, ErrNoApplication
	}
	res, err := s.API.CreateResumePDF(ctx, dtos.ResumePDFRequest{ResumeData: doc, ApplicationID: applicationID})
	if err != nil {
		return nil, fmt.Errorf("create resume pdf: %w", err)
	}
	s.Log.Info().Int("application_id", applicationID).Str("path", res.ResumePath).Msg("resume pdf created")
	if s.Refresher != nil {
		if err := s.Refresher.RefreshCurrent(ctx); err != nil {
			s.Log.Warn().Err(err).Msg("refresh after resume pdf failed")
		}
	}
	return res, nil
}

// Locate returns where the application's resume PDF is served from.
func (s *ResumeService) Locate(ctx context.Context, applicationID int) (*dtos.ResumeLocation, error) {
	loc, err := s.API.GetResume(ctx, applicationID)
	if apiclient.IsNotFound(err) {
		return nil, ErrNoResume
	}
	if err != nil {
		return nil, fmt.Errorf("locate resume: %w", err)
	}
	return loc, nil
}
