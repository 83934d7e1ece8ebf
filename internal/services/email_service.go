package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/justsurfingit/job-board/internal/dtos"
)

const (
	DefaultEmailLimit = 50
	MaxEmailLimit     = 200
	// MaxBatchSize bounds one bulk run; each email costs an LLM call on the backend.
	MaxBatchSize = 10
)

var (
	ErrNoEmail    = errors.New("email id is required")
	ErrBatchSize  = fmt.Errorf("batch size must be between 1 and %d", MaxBatchSize)
	ErrEmailQuery = errors.New("invalid email query")
)

// EmailQuery selects mailbox messages. DaysBack 0 means today only.
type EmailQuery struct {
	DaysBack   int
	Limit      int
	UnreadOnly bool
}

func (q EmailQuery) normalize() (EmailQuery, error) {
	if q.Limit == 0 {
		q.Limit = DefaultEmailLimit
	}
	if q.DaysBack < 0 || q.Limit < 0 || q.Limit > MaxEmailLimit {
		return q, fmt.Errorf("%w: days_back=%d limit=%d", ErrEmailQuery, q.DaysBack, q.Limit)
	}
	return q, nil
}

// ListEmails returns recent job-related emails, newest first as the backend sorts them.
func (s *BoardService) ListEmails(ctx context.Context, q EmailQuery) ([]dtos.EmailSummary, error) {
	q, err := q.normalize()
	if err != nil {
		return nil, err
	}
	emails, err := s.API.ListEmails(ctx, q.DaysBack, q.Limit, q.UnreadOnly)
	if err != nil {
		return nil, fmt.Errorf("list emails: %w", err)
	}
	return emails, nil
}

// ProcessEmail has the backend turn one email into an application or a
// rejection update, then refreshes the board.
func (s *BoardService) ProcessEmail(ctx context.Context, emailID string) (*dtos.ProcessEmailResponse, error) {
	res, err := s.processEmail(ctx, emailID)
	if err != nil {
		return nil, err
	}
	s.afterMutation(ctx, "process-email", 0)
	return res, nil
}

func (s *BoardService) processEmail(ctx context.Context, emailID string) (*dtos.ProcessEmailResponse, error) {
	emailID = strings.TrimSpace(emailID)
	if emailID == "" {
		return nil, ErrNoEmail
	}
	res, err := s.API.ProcessEmail(ctx, emailID)
	if err != nil {
		return nil, fmt.Errorf("process email %s: %w", emailID, err)
	}
	s.Log.Info().
		Str("email_id", emailID).
		Bool("created", res.ApplicationCreated).
		Bool("updated", res.ApplicationUpdated).
		Msg("email processed")
	return res, nil
}

// ProcessRecentEmails processes today's n most recent emails one by one.
// A failure on one email is recorded and the run continues; the board is
// refreshed once at the end.
func (s *BoardService) ProcessRecentEmails(ctx context.Context, n int) (*dtos.EmailBatchResponse, error) {
	if n < 1 || n > MaxBatchSize {
		return nil, ErrBatchSize
	}
	emails, err := s.API.ListEmails(ctx, 0, n, false)
	if err != nil {
		return nil, fmt.Errorf("list emails: %w", err)
	}

	out := &dtos.EmailBatchResponse{Results: []dtos.EmailBatchResult{}}
	for _, e := range emails[:min(n, len(emails))] {
		if ctx.Err() != nil {
			break
		}
		r := dtos.EmailBatchResult{EmailID: e.ID, Subject: e.Subject}
		res, err := s.processEmail(ctx, e.ID)
		if err != nil {
			r.Message = "Error: " + err.Error()
			out.Failed++
		} else {
			r.Success = true
			r.Message = res.Summary(e.Subject)
			out.Succeeded++
		}
		out.Results = append(out.Results, r)
	}
	if len(out.Results) > 0 {
		s.afterMutation(ctx, "process-recent-emails", 0)
	}
	return out, ctx.Err()
}
