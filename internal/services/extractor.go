package services

import (
	"context"

	"github.com/justsurfingit/job-board/internal/models"
)

// ProfileExtractor turns free portfolio or resume text into a structured profile.
type ProfileExtractor interface {
	ExtractProfile(ctx context.Context, text string) (models.Profile, error)
}

type portfolioAPI interface {
	ExtractFromPortfolio(ctx context.Context, text string) (models.Profile, error)
}

// RemoteExtractor delegates extraction to the backend's local model.
type RemoteExtractor struct {
	API portfolioAPI
}

func (r RemoteExtractor) ExtractProfile(ctx context.Context, text string) (models.Profile, error) {
	return r.API.ExtractFromPortfolio(ctx, text)
}
