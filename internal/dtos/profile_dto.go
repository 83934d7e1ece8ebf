package dtos

import "github.com/justsurfingit/job-board/internal/models"

type PortfolioExtractionRequest struct {
	PortfolioText string `json:"portfolio_text" binding:"required"`
}

type PortfolioExtractionResponse struct {
	ExtractedData *models.Profile `json:"extracted_data,omitempty"`
	Error         string          `json:"error,omitempty"`
}

type SaveProfileResponse struct {
	Message string         `json:"message"`
	Profile models.Profile `json:"profile"`
}
