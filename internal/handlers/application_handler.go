package handlers

import (
	"context"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/justsurfingit/job-board/internal/dtos"
	"github.com/justsurfingit/job-board/internal/services"
)

// JobExtractor prefills the create form from pasted posting text.
type JobExtractor interface {
	ExtractJobDetails(ctx context.Context, req dtos.JobPostingExtractionRequest) (dtos.ApplicationCreateRequest, error)
}

type ApplicationHandler struct {
	Board *services.BoardService
	// Jobs is nil when no LLM is configured.
	Jobs JobExtractor
}

func NewApplicationHandler(b *services.BoardService, jobs JobExtractor) *ApplicationHandler {
	return &ApplicationHandler{Board: b, Jobs: jobs}
}

// GetApplication is GET /applications/:id, used to fill the edit form.
func (h *ApplicationHandler) GetApplication(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	app, err := h.Board.Get(c.Request.Context(), id)
	if err != nil {
		respondError(c, "Failed to load application", err)
		return
	}
	c.JSON(http.StatusOK, app)
}

func (h *ApplicationHandler) CreateApplication(c *gin.Context) {
	var req dtos.ApplicationCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}
	app, err := h.Board.Create(c.Request.Context(), req)
	if err != nil {
		respondError(c, "Failed to create application", err)
		return
	}
	c.JSON(http.StatusCreated, app)
}

func (h *ApplicationHandler) UpdateApplication(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var req dtos.ApplicationUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}
	app, err := h.Board.Update(c.Request.Context(), id, req)
	if err != nil {
		respondError(c, "Failed to update application", err)
		return
	}
	c.JSON(http.StatusOK, app)
}

func (h *ApplicationHandler) DeleteApplication(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	if err := h.Board.Delete(c.Request.Context(), id); err != nil {
		respondError(c, "Failed to delete application", err)
		return
	}
	c.JSON(http.StatusOK, dtos.MessageResponse{Message: "Application deleted successfully"})
}

func (h *ApplicationHandler) SyncEmails(c *gin.Context) {
	res, err := h.Board.SyncEmails(c.Request.Context())
	if err != nil {
		respondError(c, "Email sync failed", err)
		return
	}
	c.JSON(http.StatusOK, res)
}

// ListEmails is GET /applications/emails?days_back=&limit=&unread_only=
func (h *ApplicationHandler) ListEmails(c *gin.Context) {
	var q services.EmailQuery
	var err error
	if q.DaysBack, err = queryInt(c, "days_back"); err != nil {
		respondError(c, "Invalid email query", err)
		return
	}
	if q.Limit, err = queryInt(c, "limit"); err != nil {
		respondError(c, "Invalid email query", err)
		return
	}
	q.UnreadOnly = c.Query("unread_only") == "true"

	emails, err := h.Board.ListEmails(c.Request.Context(), q)
	if err != nil {
		respondError(c, "Failed to list emails", err)
		return
	}
	c.JSON(http.StatusOK, emails)
}

// ProcessEmail is POST /applications/emails/:emailID/process
func (h *ApplicationHandler) ProcessEmail(c *gin.Context) {
	res, err := h.Board.ProcessEmail(c.Request.Context(), c.Param("emailID"))
	if err != nil {
		respondError(c, "Email processing failed", err)
		return
	}
	c.JSON(http.StatusOK, res)
}

// ProcessRecentEmails is POST /applications/emails/process-recent {"count": 5}
func (h *ApplicationHandler) ProcessRecentEmails(c *gin.Context) {
	var req dtos.ProcessRecentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}
	res, err := h.Board.ProcessRecentEmails(c.Request.Context(), req.Count)
	if err != nil {
		respondError(c, "Bulk email processing failed", err)
		return
	}
	c.JSON(http.StatusOK, res)
}

// ExtractFromImage is the single entry point for pasted, dropped and picked
// screenshots; all arrive as the multipart field "file".
func (h *ApplicationHandler) ExtractFromImage(c *gin.Context) {
	fh, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing image file: " + err.Error()})
		return
	}
	f, err := fh.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Unreadable image file: " + err.Error()})
		return
	}
	defer f.Close()

	form, err := h.Board.ExtractFromImage(c.Request.Context(), fh.Filename, fh.Header.Get("Content-Type"), f)
	if err != nil {
		respondError(c, "Image extraction failed", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "data": form})
}

// ExtractFromText is POST /applications/extract-text
func (h *ApplicationHandler) ExtractFromText(c *gin.Context) {
	if h.Jobs == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Text extraction needs GEMINI_API_KEY"})
		return
	}
	var req dtos.JobPostingExtractionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}
	form, err := h.Jobs.ExtractJobDetails(c.Request.Context(), req)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "AI Extraction failed: " + err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "data": form})
}

func pathID(c *gin.Context) (int, bool) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid application id: " + c.Param("id")})
		return 0, false
	}
	return id, true
}

func queryInt(c *gin.Context, key string) (int, error) {
	v := c.Query(key)
	if v == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("%w: %s=%q", services.ErrEmailQuery, key, v)
	}
	return n, nil
}
