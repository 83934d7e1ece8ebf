package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/justsurfingit/job-board/internal/dtos"
	"github.com/justsurfingit/job-board/internal/models"
	"github.com/justsurfingit/job-board/internal/services"
)

type ProfileHandler struct {
	Profiles *services.ProfileService
}

func NewProfileHandler(p *services.ProfileService) *ProfileHandler {
	return &ProfileHandler{Profiles: p}
}

// profileExtractRequest carries the unsaved form state so an extraction
// merges into what the user is editing rather than the stored profile.
type profileExtractRequest struct {
	PortfolioText string          `json:"portfolio_text"`
	Draft         *models.Profile `json:"draft,omitempty"`
}

func (h *ProfileHandler) GetProfile(c *gin.Context) {
	p, err := h.Profiles.Get(c.Request.Context())
	if err != nil {
		respondError(c, "Failed to load profile", err)
		return
	}
	c.JSON(http.StatusOK, p)
}

func (h *ProfileHandler) SaveProfile(c *gin.Context) {
	var p models.Profile
	if err := c.ShouldBindJSON(&p); err != nil {
		bindError(c, err)
		return
	}
	saved, err := h.Profiles.Save(c.Request.Context(), p)
	if err != nil {
		respondError(c, "Failed to save profile", err)
		return
	}
	c.JSON(http.StatusOK, dtos.SaveProfileResponse{Message: "Profile saved successfully", Profile: saved})
}

func (h *ProfileHandler) ExtractProfile(c *gin.Context) {
	var req profileExtractRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}
	merged, err := h.Profiles.ExtractAndMerge(c.Request.Context(), req.Draft, req.PortfolioText)
	if err != nil {
		respondError(c, "Profile extraction failed", err)
		return
	}
	c.JSON(http.StatusOK, dtos.PortfolioExtractionResponse{ExtractedData: &merged})
}
