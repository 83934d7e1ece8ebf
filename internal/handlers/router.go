package handlers

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

type Handlers struct {
	Board        *BoardHandler
	Applications *ApplicationHandler
	Profile      *ProfileHandler
	Resume       *ResumeHandler
}

// NewRouter wires every route under /api/v1.
func NewRouter(h Handlers, log zerolog.Logger) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), RequestLogger(log))
	config := cors.DefaultConfig()
	config.AllowAllOrigins = true
	config.AllowHeaders = []string{"Origin", "Content-Length", "Content-Type", "Authorization", RequestIDHeader}
	config.ExposeHeaders = []string{RequestIDHeader}
	r.Use(cors.New(config))

	v1 := r.Group("/api/v1")
	{
		v1.GET("/health", HealthCheck)

		v1.GET("/board", h.Board.GetBoard)
		v1.POST("/board/refresh", h.Board.Refresh)
		v1.POST("/board/dates/toggle", h.Board.ToggleDate)
		v1.POST("/board/companies/toggle", h.Board.ToggleCompany)
		v1.GET("/stats", h.Board.Stats)

		v1.POST("/applications", h.Applications.CreateApplication)
		v1.GET("/applications/:id", h.Applications.GetApplication)
		v1.PUT("/applications/:id", h.Applications.UpdateApplication)
		v1.DELETE("/applications/:id", h.Applications.DeleteApplication)
		v1.POST("/applications/sync-emails", h.Applications.SyncEmails)
		v1.GET("/applications/emails", h.Applications.ListEmails)
		v1.POST("/applications/emails/process-recent", h.Applications.ProcessRecentEmails)
		v1.POST("/applications/emails/:emailID/process", h.Applications.ProcessEmail)
		v1.POST("/applications/extract-image", h.Applications.ExtractFromImage)
		v1.POST("/applications/extract-text", h.Applications.ExtractFromText)

		v1.GET("/profile", h.Profile.GetProfile)
		v1.POST("/profile", h.Profile.SaveProfile)
		v1.POST("/profile/extract", h.Profile.ExtractProfile)

		v1.POST("/resume/generate", h.Resume.Generate)
		v1.POST("/resume/edit", h.Resume.Edit)
		v1.POST("/resume/pdf", h.Resume.CreatePDF)
		v1.GET("/resume/:id", h.Resume.Locate)
	}
	return r
}
