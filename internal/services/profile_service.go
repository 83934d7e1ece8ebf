package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"github.com/justsurfingit/job-board/internal/models"
)

var ErrEmptyPortfolio = errors.New("portfolio text is required")

type ProfileAPI interface {
	GetProfile(ctx context.Context) (models.Profile, error)
	SaveProfile(ctx context.Context, p models.Profile) (models.Profile, error)
}

type ProfileService struct {
	API       ProfileAPI
	Extractor ProfileExtractor
	Log       zerolog.Logger
}

func NewProfileService(api ProfileAPI, extractor ProfileExtractor, log zerolog.Logger) *ProfileService {
	return &ProfileService{API: api, Extractor: extractor, Log: log}
}

func (s *ProfileService) Get(ctx context.Context) (models.Profile, error) {
	p, err := s.API.GetProfile(ctx)
	if err != nil {
		return models.Profile{}, fmt.Errorf("get profile: %w", err)
	}
	return p, nil
}

func (s *ProfileService) Save(ctx context.Context, p models.Profile) (models.Profile, error) {
	saved, err := s.API.SaveProfile(ctx, p.Normalize())
	if err != nil {
		return models.Profile{}, fmt.Errorf("save profile: %w", err)
	}
	return saved, nil
}

// ExtractAndMerge extracts a profile from text and merges it into draft, or
// into the saved profile when draft is nil. The result is returned for review
// and is not saved.
func (s *ProfileService) ExtractAndMerge(ctx context.Context, draft *models.Profile, text string) (models.Profile, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return models.Profile{}, ErrEmptyPortfolio
	}

	var current models.Profile
	if draft != nil {
		current = *draft
	} else {
		p, err := s.Get(ctx)
		if err != nil {
			return models.Profile{}, err
		}
		current = p
	}

	extracted, err := s.Extractor.ExtractProfile(ctx, text)
	if err != nil {
		return models.Profile{}, fmt.Errorf("extract profile: %w", err)
	}
	merged := models.MergeProfile(current, extracted)
	s.Log.Info().
		Int("skills", len(merged.Skills)).
		Int("experience", len(merged.Experience)).
		Msg("profile extracted and merged")
	return merged, nil
}
