package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/justsurfingit/job-board/internal/dtos"
	"github.com/justsurfingit/job-board/internal/services"
)

type ResumeHandler struct {
	Resumes *services.ResumeService
	// AssetBaseURL prefixes the backend's relative resume paths.
	AssetBaseURL string
}

func NewResumeHandler(r *services.ResumeService, assetBaseURL string) *ResumeHandler {
	return &ResumeHandler{Resumes: r, AssetBaseURL: strings.TrimRight(assetBaseURL, "/")}
}

func (h *ResumeHandler) Generate(c *gin.Context) {
	var req dtos.ResumeGenerateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}
	useProfile := req.UseProfile == nil || *req.UseProfile
	doc, err := h.Resumes.Generate(c.Request.Context(), req.JobDescription, req.ApplicationID, useProfile)
	if err != nil {
		respondError(c, "Resume generation failed", err)
		return
	}
	c.JSON(http.StatusOK, dtos.ResumeGenerateResponse{ResumeData: doc, ApplicationID: req.ApplicationID})
}

// Edit applies a single preview edit without touching the backend.
func (h *ResumeHandler) Edit(c *gin.Context) {
	var req dtos.ResumeEditRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}
	doc, err := h.Resumes.Edit(req.ResumeData, req.Field, req.Value)
	if err != nil {
		respondError(c, "Invalid edit", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"resume_data": doc})
}

func (h *ResumeHandler) CreatePDF(c *gin.Context) {
	var req dtos.ResumePDFRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}
	res, err := h.Resumes.CreatePDF(c.Request.Context(), req.ApplicationID, req.ResumeData)
	if err != nil {
		respondError(c, "Resume PDF creation failed", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"message":        res.Message,
		"resume_path":    res.ResumePath,
		"resume_url":     h.assetURL(res.ResumePath),
		"application_id": res.ApplicationID,
	})
}

func (h *ResumeHandler) Locate(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	loc, err := h.Resumes.Locate(c.Request.Context(), id)
	if err != nil {
		respondError(c, "Resume not available", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"resume_path":    loc.ResumePath,
		"resume_url":     h.assetURL(loc.ResumePath),
		"application_id": loc.ApplicationID,
	})
}

func (h *ResumeHandler) assetURL(path string) string {
	if path == "" || strings.HasPrefix(path, "http://") || strings.HasPrefix(path, "https://") {
		return path
	}
	return h.AssetBaseURL + "/" + strings.TrimLeft(path, "/")
}
