package services

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/justsurfingit/job-board/internal/dtos"
	"github.com/justsurfingit/job-board/internal/grouping"
	"github.com/justsurfingit/job-board/internal/models"
	"github.com/justsurfingit/job-board/internal/state"
)

var (
	ErrInvalidStatus = errors.New("invalid status filter")
	ErrNotImage      = errors.New("file must be an image")
)

// ApplicationAPI is the slice of the backend the board depends on.
type ApplicationAPI interface {
	ListApplications(ctx context.Context, status models.Status) ([]models.Application, error)
	GetApplication(ctx context.Context, id int) (*models.Application, error)
	CreateApplication(ctx context.Context, req dtos.ApplicationCreateRequest) (*models.Application, error)
	UpdateApplication(ctx context.Context, id int, req dtos.ApplicationUpdateRequest) (*models.Application, error)
	DeleteApplication(ctx context.Context, id int) error
	SyncEmails(ctx context.Context) (*dtos.SyncEmailsResponse, error)
	Stats(ctx context.Context) (*models.StatusCounts, error)
	UploadImage(ctx context.Context, filename, contentType string, r io.Reader) (*dtos.ImageExtraction, error)
	ListEmails(ctx context.Context, daysBack, limit int, unreadOnly bool) ([]dtos.EmailSummary, error)
	ProcessEmail(ctx context.Context, emailID string) (*dtos.ProcessEmailResponse, error)
}

// BoardView is everything a renderer needs for one frame of the table.
type BoardView struct {
	Groups             []grouping.DateGroup `json:"groups"`
	Filter             models.Status        `json:"filter,omitempty"`
	FetchedAt          time.Time            `json:"fetched_at"`
	Counts             models.StatusCounts  `json:"counts"`
	CollapsedDates     grouping.CollapseSet `json:"collapsed_dates"`
	CollapsedCompanies grouping.CollapseSet `json:"collapsed_companies"`
}

type BoardService struct {
	API   ApplicationAPI
	Board *state.Board
	Log   zerolog.Logger
	Now   func() time.Time
}

func NewBoardService(api ApplicationAPI, board *state.Board, log zerolog.Logger) *BoardService {
	return &BoardService{API: api, Board: board, Log: log, Now: time.Now}
}

// ParseStatusFilter accepts "" (all) or one of the known statuses.
func ParseStatusFilter(s string) (models.Status, error) {
	st := models.Status(strings.ToLower(strings.TrimSpace(s)))
	if st == "" || st.Valid() {
		return st, nil
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidStatus, s)
}

// Refresh replaces the working set with a fresh fetch.
func (s *BoardService) Refresh(ctx context.Context, filter models.Status) error {
	if filter != "" && !filter.Valid() {
		return fmt.Errorf("%w: %q", ErrInvalidStatus, filter)
	}
	apps, err := s.API.ListApplications(ctx, filter)
	if err != nil {
		return fmt.Errorf("list applications: %w", err)
	}
	s.Board.Replace(apps, filter, s.Now())
	s.Log.Info().Int("applications", len(apps)).Str("filter", string(filter)).Msg("board refreshed")
	return nil
}

// RefreshCurrent re-fetches with whatever filter is active.
func (s *BoardService) RefreshCurrent(ctx context.Context) error {
	return s.Refresh(ctx, s.Board.Snapshot().Filter)
}

func (s *BoardService) View() BoardView {
	snap := s.Board.Snapshot()
	return BoardView{
		Groups:             grouping.BuildGroupedView(snap.Applications, snap.CollapsedDates, snap.CollapsedCompanies),
		Filter:             snap.Filter,
		FetchedAt:          snap.FetchedAt,
		Counts:             models.CountStatuses(snap.Applications),
		CollapsedDates:     snap.CollapsedDates,
		CollapsedCompanies: snap.CollapsedCompanies,
	}
}

func (s *BoardService) ToggleDate(key string) grouping.CollapseSet {
	return s.Board.ToggleDate(key)
}

func (s *BoardService) ToggleCompany(key string) grouping.CollapseSet {
	return s.Board.ToggleCompany(key)
}

// Stats prefers the backend's global counts and falls back to counting the
// local snapshot when the backend cannot answer.
func (s *BoardService) Stats(ctx context.Context) models.StatusCounts {
	counts, err := s.API.Stats(ctx)
	if err != nil {
		s.Log.Warn().Err(err).Msg("stats unavailable, counting local snapshot")
		return models.CountStatuses(s.Board.Snapshot().Applications)
	}
	return *counts
}

// Get fetches one application fresh from the backend.
func (s *BoardService) Get(ctx context.Context, id int) (*models.Application, error) {
	app, err := s.API.GetApplication(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get application %d: %w", id, err)
	}
	return app, nil
}

func (s *BoardService) Create(ctx context.Context, req dtos.ApplicationCreateRequest) (*models.Application, error) {
	if req.Status != "" && !req.Status.Valid() {
		return nil, fmt.Errorf("%w: %q", ErrInvalidStatus, req.Status)
	}
	app, err := s.API.CreateApplication(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("create application: %w", err)
	}
	s.afterMutation(ctx, "create", app.ID)
	return app, nil
}

func (s *BoardService) Update(ctx context.Context, id int, req dtos.ApplicationUpdateRequest) (*models.Application, error) {
	if req.Status != nil && !req.Status.Valid() {
		return nil, fmt.Errorf("%w: %q", ErrInvalidStatus, *req.Status)
	}
	app, err := s.API.UpdateApplication(ctx, id, req)
	if err != nil {
		return nil, fmt.Errorf("update application %d: %w", id, err)
	}
	s.afterMutation(ctx, "update", id)
	return app, nil
}

func (s *BoardService) Delete(ctx context.Context, id int) error {
	if err := s.API.DeleteApplication(ctx, id); err != nil {
		return fmt.Errorf("delete application %d: %w", id, err)
	}
	s.afterMutation(ctx, "delete", id)
	return nil
}

func (s *BoardService) SyncEmails(ctx context.Context) (*dtos.SyncEmailsResponse, error) {
	res, err := s.API.SyncEmails(ctx)
	if err != nil {
		return nil, fmt.Errorf("sync emails: %w", err)
	}
	s.Log.Info().Int("new", len(res.Applications)).Msg("email sync finished")
	if err := s.RefreshCurrent(ctx); err != nil {
		s.Log.Warn().Err(err).Msg("refresh after email sync failed")
	}
	return res, nil
}

// ExtractFromImage uploads a job-posting image and returns a prefilled form.
func (s *BoardService) ExtractFromImage(ctx context.Context, filename, contentType string, r io.Reader) (dtos.ApplicationCreateRequest, error) {
	if !strings.HasPrefix(contentType, "image/") {
		return dtos.ApplicationCreateRequest{}, ErrNotImage
	}
	out, err := s.API.UploadImage(ctx, filename, contentType, r)
	if err != nil {
		return dtos.ApplicationCreateRequest{}, fmt.Errorf("upload image: %w", err)
	}
	return out.Prefill(), nil
}

// afterMutation refreshes the board once the backend accepted a change. The
// change itself already succeeded, so a failed refresh is only logged.
func (s *BoardService) afterMutation(ctx context.Context, op string, id int) {
	if err := s.RefreshCurrent(ctx); err != nil {
		s.Log.Warn().Err(err).Str("op", op).Int("id", id).Msg("refresh after mutation failed")
	}
}

// StartWatcher refreshes the board every interval until ctx is done.
func (s *BoardService) StartWatcher(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		s.Log.Info().Msg("background refresh disabled")
		return
	}
	ticker := time.NewTicker(interval)
	go func() {
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				rctx, cancel := context.WithTimeout(ctx, interval)
				if err := s.RefreshCurrent(rctx); err != nil {
					s.Log.Warn().Err(err).Msg("background refresh failed")
				}
				cancel()
			}
		}
	}()
}
