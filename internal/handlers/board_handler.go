package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/justsurfingit/job-board/internal/services"
)

type BoardHandler struct {
	Board *services.BoardService
}

func NewBoardHandler(b *services.BoardService) *BoardHandler {
	return &BoardHandler{Board: b}
}

type toggleRequest struct {
	Key string `json:"key" binding:"required"`
}

// GetBoard is GET /board. ?refresh=true (or a changed ?status=) re-fetches first.
func (h *BoardHandler) GetBoard(c *gin.Context) {
	statusParam, hasStatus := c.GetQuery("status")
	filter, err := services.ParseStatusFilter(statusParam)
	if err != nil {
		respondError(c, "Invalid filter", err)
		return
	}
	current := h.Board.Board.Snapshot()
	stale := current.FetchedAt.IsZero() || (hasStatus && filter != current.Filter)
	if c.Query("refresh") == "true" || stale {
		if !hasStatus {
			filter = current.Filter
		}
		if err := h.Board.Refresh(c.Request.Context(), filter); err != nil {
			respondError(c, "Failed to load applications", err)
			return
		}
	}
	c.JSON(http.StatusOK, h.Board.View())
}

// Refresh is POST /board/refresh?status=
func (h *BoardHandler) Refresh(c *gin.Context) {
	filter, err := services.ParseStatusFilter(c.Query("status"))
	if err != nil {
		respondError(c, "Invalid filter", err)
		return
	}
	if err := h.Board.Refresh(c.Request.Context(), filter); err != nil {
		respondError(c, "Failed to load applications", err)
		return
	}
	c.JSON(http.StatusOK, h.Board.View())
}

// ToggleDate is POST /board/dates/toggle {"key": "2024-01-05"}
func (h *BoardHandler) ToggleDate(c *gin.Context) {
	var req toggleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"collapsed_dates": h.Board.ToggleDate(req.Key)})
}

// ToggleCompany is POST /board/companies/toggle {"key": "2024-01-05-Acme"}
func (h *BoardHandler) ToggleCompany(c *gin.Context) {
	var req toggleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"collapsed_companies": h.Board.ToggleCompany(req.Key)})
}

func (h *BoardHandler) Stats(c *gin.Context) {
	c.JSON(http.StatusOK, h.Board.Stats(c.Request.Context()))
}
