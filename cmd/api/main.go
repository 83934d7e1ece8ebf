package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/justsurfingit/job-board/internal/apiclient"
	"github.com/justsurfingit/job-board/internal/config"
	"github.com/justsurfingit/job-board/internal/handlers"
	"github.com/justsurfingit/job-board/internal/logger"
	"github.com/justsurfingit/job-board/internal/services"
	"github.com/justsurfingit/job-board/internal/state"
)

const shutdownTimeout = 15 * time.Second

func main() {
	// 1. Configuration & logging
	cfg := config.Load()
	log := logger.New(cfg.LogLevel, cfg.LogFormat)
	if cfg.GinMode != "" {
		gin.SetMode(cfg.GinMode)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// 2. Remote tracker API
	api := apiclient.New(cfg.BackendURL, cfg.HTTPTimeout, logger.Component(log, "apiclient"))

	// 3. Core services
	board := state.NewBoard()
	boardService := services.NewBoardService(api, board, logger.Component(log, "board"))

	var profileExtractor services.ProfileExtractor = services.RemoteExtractor{API: api}
	var jobExtractor handlers.JobExtractor
	if cfg.UseLLM() {
		llm, err := services.NewLLMService(ctx, cfg.GeminiAPIKey, cfg.GeminiModel, logger.Component(log, "llm"))
		if err != nil {
			log.Warn().Err(err).Msg("Gemini unavailable, using backend extraction")
		} else {
			profileExtractor = llm
			jobExtractor = llm
			log.Info().Str("model", cfg.GeminiModel).Msg("Gemini extraction enabled")
		}
	}
	profileService := services.NewProfileService(api, profileExtractor, logger.Component(log, "profile"))
	resumeService := services.NewResumeService(api, boardService, logger.Component(log, "resume"))

	// 4. Initial load & background refresh
	if err := boardService.Refresh(ctx, ""); err != nil {
		log.Warn().Err(err).Str("backend", cfg.BackendURL).Msg("initial board load failed; will retry on demand")
	}
	boardService.StartWatcher(ctx, cfg.RefreshInterval)

	// 5. Router
	r := handlers.NewRouter(handlers.Handlers{
		Board:        handlers.NewBoardHandler(boardService),
		Applications: handlers.NewApplicationHandler(boardService, jobExtractor),
		Profile:      handlers.NewProfileHandler(profileService),
		Resume:       handlers.NewResumeHandler(resumeService, cfg.AssetBaseURL),
	}, logger.Component(log, "http"))

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}
	log.Info().Str("port", cfg.Port).Str("backend", cfg.BackendURL).Msg("Server starting")
	if err := serve(ctx, srv, log); err != nil {
		log.Fatal().Err(err).Msg("Server failed")
	}
	log.Info().Msg("Server stopped")
}

// serve runs srv until ctx is cancelled, then drains in-flight requests for
// up to shutdownTimeout before returning.
func serve(ctx context.Context, srv *http.Server, log zerolog.Logger) error {
	errc := make(chan error, 1)
	go func() {
		errc <- srv.ListenAndServe()
	}()

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
	}

	log.Info().Msg("Shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errc; !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
