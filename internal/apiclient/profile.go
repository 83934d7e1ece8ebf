package apiclient

import (
	"context"
	"errors"
	"net/http"

	"github.com/justsurfingit/job-board/internal/dtos"
	"github.com/justsurfingit/job-board/internal/models"
)

func (c *Client) GetProfile(ctx context.Context) (models.Profile, error) {
	var p models.Profile
	if err := c.getJSON(ctx, "/user-profile", nil, &p); err != nil {
		return models.Profile{}, err
	}
	return p.Normalize(), nil
}

func (c *Client) SaveProfile(ctx context.Context, p models.Profile) (models.Profile, error) {
	var out dtos.SaveProfileResponse
	if err := c.doJSON(ctx, http.MethodPost, "/user-profile", nil, p.Normalize(), &out); err != nil {
		return models.Profile{}, err
	}
	return out.Profile.Normalize(), nil
}

// ExtractFromPortfolio runs the backend's profile extraction over free text.
// The backend reports model failures in-band with a 200 and an "error" field.
func (c *Client) ExtractFromPortfolio(ctx context.Context, text string) (models.Profile, error) {
	var out dtos.PortfolioExtractionResponse
	err := c.doJSON(ctx, http.MethodPost, "/extract-from-portfolio", nil,
		dtos.PortfolioExtractionRequest{PortfolioText: text}, &out)
	if err != nil {
		return models.Profile{}, err
	}
	if out.Error != "" {
		return models.Profile{}, errors.New(out.Error)
	}
	if out.ExtractedData == nil {
		return models.Profile{}, errors.New("extraction returned no data")
	}
	return *out.ExtractedData, nil
}
