package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"net/url"
	"strconv"
	"unicode/utf8"

	"github.com/justsurfingit/job-board/internal/dtos"
	"github.com/justsurfingit/job-board/internal/models"
)

// ListLimit caps one list fetch. The backend pages at 100 by default, which
// would silently drop rows from the board.
const ListLimit = 1000

// ListApplications fetches the full working set, optionally filtered by status.
// An empty status means all applications.
func (c *Client) ListApplications(ctx context.Context, status models.Status) ([]models.Application, error) {
	q := url.Values{}
	q.Set("limit", strconv.Itoa(ListLimit))
	if status != "" {
		q.Set("status", string(status))
	}
	var raw []json.RawMessage
	if err := c.getJSON(ctx, "/applications", q, &raw); err != nil {
		return nil, err
	}
	return c.decodeApplications(raw), nil
}

// decodeApplications decodes rows one at a time so a single corrupt record is
// skipped and logged instead of failing the whole board.
func (c *Client) decodeApplications(raw []json.RawMessage) []models.Application {
	apps := make([]models.Application, 0, len(raw))
	for i, r := range raw {
		var app models.Application
		if err := json.Unmarshal(r, &app); err != nil {
			c.Log.Warn().Err(err).Int("index", i).Str("record", truncate(string(r), 200)).Msg("skipping malformed application")
			continue
		}
		apps = append(apps, app)
	}
	return apps
}

// GetApplication fetches one record, e.g. to fill the edit form.
func (c *Client) GetApplication(ctx context.Context, id int) (*models.Application, error) {
	var app models.Application
	if err := c.getJSON(ctx, fmt.Sprintf("/applications/%d", id), nil, &app); err != nil {
		return nil, err
	}
	return &app, nil
}

func (c *Client) CreateApplication(ctx context.Context, req dtos.ApplicationCreateRequest) (*models.Application, error) {
	var app models.Application
	if err := c.doJSON(ctx, http.MethodPost, "/applications", nil, req, &app); err != nil {
		return nil, err
	}
	return &app, nil
}

func (c *Client) UpdateApplication(ctx context.Context, id int, req dtos.ApplicationUpdateRequest) (*models.Application, error) {
	var app models.Application
	if err := c.doJSON(ctx, http.MethodPut, fmt.Sprintf("/applications/%d", id), nil, req, &app); err != nil {
		return nil, err
	}
	return &app, nil
}

func (c *Client) DeleteApplication(ctx context.Context, id int) error {
	return c.doJSON(ctx, http.MethodDelete, fmt.Sprintf("/applications/%d", id), nil, nil, nil)
}

// SyncEmails asks the backend to scan the mailbox for new applications.
func (c *Client) SyncEmails(ctx context.Context) (*dtos.SyncEmailsResponse, error) {
	var out dtos.SyncEmailsResponse
	if err := c.doJSON(ctx, http.MethodPost, "/sync-emails", nil, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// ListEmails lists job-related messages from the mailbox. daysBack 0 means today only.
func (c *Client) ListEmails(ctx context.Context, daysBack, limit int, unreadOnly bool) ([]dtos.EmailSummary, error) {
	q := url.Values{}
	q.Set("days_back", strconv.Itoa(daysBack))
	q.Set("limit", strconv.Itoa(limit))
	if unreadOnly {
		q.Set("unread_only", "true")
	}
	var out []dtos.EmailSummary
	if err := c.getJSON(ctx, "/emails", q, &out); err != nil {
		return nil, err
	}
	if out == nil {
		out = []dtos.EmailSummary{}
	}
	return out, nil
}

// ProcessEmail turns one message into a new application or a rejection update.
func (c *Client) ProcessEmail(ctx context.Context, emailID string) (*dtos.ProcessEmailResponse, error) {
	var out dtos.ProcessEmailResponse
	if err := c.doJSON(ctx, http.MethodPost, "/process-email/"+url.PathEscape(emailID), nil, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) Stats(ctx context.Context) (*models.StatusCounts, error) {
	var out models.StatusCounts
	if err := c.getJSON(ctx, "/stats", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// UploadImage sends a job-posting image for field extraction. Pasted,
// dropped and picked files all arrive here the same way.
func (c *Client) UploadImage(ctx context.Context, filename, contentType string, r io.Reader) (*dtos.ImageExtraction, error) {
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)

	h := make(textproto.MIMEHeader)
	h.Set("Content-Disposition", fmt.Sprintf(`form-data; name="file"; filename=%q`, filename))
	h.Set("Content-Type", contentType)
	part, err := mw.CreatePart(h)
	if err != nil {
		return nil, fmt.Errorf("create form part: %w", err)
	}
	if _, err := io.Copy(part, r); err != nil {
		return nil, fmt.Errorf("copy image: %w", err)
	}
	if err := mw.Close(); err != nil {
		return nil, fmt.Errorf("close form: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint("/upload-image", nil), &buf)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())
	req.Header.Set("Accept", "application/json")

	var out dtos.ImageExtraction
	if err := c.send(req, "/upload-image", &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	for n > 0 && !utf8.RuneStart(s[n]) {
		n--
	}
	return s[:n] + "..."
}
