package main

import (
	"io"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/justsurfingit/job-board/internal/apiclient"
	"github.com/justsurfingit/job-board/internal/config"
	"github.com/justsurfingit/job-board/internal/logger"
	"github.com/justsurfingit/job-board/internal/services"
	"github.com/justsurfingit/job-board/internal/state"
	"github.com/justsurfingit/job-board/internal/tui"
)

func main() {
	if err := run(); err != nil {
		os.Exit(1)
	}
}

// run owns every deferred cleanup so main can exit with a status afterwards.
func run() error {
	cfg := config.Load()

	out, closeLog := logOutput(os.Getenv("BOARD_LOG_FILE"))
	defer closeLog()
	log := logger.NewWithWriter(out, cfg.LogLevel, "json")

	api := apiclient.New(cfg.BackendURL, cfg.HTTPTimeout, logger.Component(log, "apiclient"))
	board := services.NewBoardService(api, state.NewBoard(), logger.Component(log, "board"))

	if _, err := tea.NewProgram(tui.New(board), tea.WithAltScreen()).Run(); err != nil {
		log.Error().Err(err).Msg("board exited")
		return err
	}
	return nil
}

// logOutput opens the log file in append mode. The terminal belongs to the
// board, so logs are discarded when path is empty or cannot be opened.
func logOutput(path string) (io.Writer, func() error) {
	if path == "" {
		return io.Discard, func() error { return nil }
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return io.Discard, func() error { return nil }
	}
	return f, f.Close
}
