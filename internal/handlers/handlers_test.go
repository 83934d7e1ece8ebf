package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/justsurfingit/job-board/internal/apiclient"
	"github.com/justsurfingit/job-board/internal/dtos"
	"github.com/justsurfingit/job-board/internal/models"
	"github.com/justsurfingit/job-board/internal/services"
	"github.com/justsurfingit/job-board/internal/state"
)

type stubBackend struct {
	apps     []models.Application
	listErr  error
	profile  models.Profile
	resumes  map[int]string
	lists    int
	uploaded string

	emails       []dtos.EmailSummary
	emailQueries []string
}

func (b *stubBackend) ListApplications(_ context.Context, status models.Status) ([]models.Application, error) {
	b.lists++
	if b.listErr != nil {
		return nil, b.listErr
	}
	var out []models.Application
	for _, a := range b.apps {
		if status == "" || a.Status == status {
			out = append(out, a)
		}
	}
	return out, nil
}

func (b *stubBackend) GetApplication(_ context.Context, id int) (*models.Application, error) {
	for _, a := range b.apps {
		if a.ID == id {
			return &a, nil
		}
	}
	return nil, &apiclient.APIError{StatusCode: http.StatusNotFound, Detail: "Application not found"}
}

func (b *stubBackend) ListEmails(_ context.Context, daysBack, limit int, _ bool) ([]dtos.EmailSummary, error) {
	b.emailQueries = append(b.emailQueries, fmt.Sprintf("%d/%d", daysBack, limit))
	return b.emails[:min(limit, len(b.emails))], nil
}

func (b *stubBackend) ProcessEmail(_ context.Context, id string) (*dtos.ProcessEmailResponse, error) {
	if id == "404" {
		return nil, &apiclient.APIError{StatusCode: http.StatusNotFound, Detail: "Could not process email"}
	}
	app := models.Application{ID: len(b.apps) + 1, CompanyName: "Mail " + id, Position: "Engineer", Status: models.StatusPending}
	b.apps = append(b.apps, app)
	return &dtos.ProcessEmailResponse{
		Message:            "New application created from email",
		ApplicationCreated: true,
		Application:        &dtos.ProcessedApplication{ID: app.ID, CompanyName: app.CompanyName, Position: app.Position},
	}, nil
}

func (b *stubBackend) CreateApplication(_ context.Context, req dtos.ApplicationCreateRequest) (*models.Application, error) {
	app := models.Application{ID: len(b.apps) + 1, CompanyName: req.CompanyName, Position: req.Position, Status: models.StatusPending}
	b.apps = append(b.apps, app)
	return &app, nil
}

func (b *stubBackend) UpdateApplication(_ context.Context, id int, req dtos.ApplicationUpdateRequest) (*models.Application, error) {
	for i := range b.apps {
		if b.apps[i].ID == id {
			if req.Status != nil {
				b.apps[i].Status = *req.Status
			}
			app := b.apps[i]
			return &app, nil
		}
	}
	return nil, &apiclient.APIError{StatusCode: http.StatusNotFound, Detail: "Application not found"}
}

func (b *stubBackend) DeleteApplication(_ context.Context, id int) error {
	for i := range b.apps {
		if b.apps[i].ID == id {
			b.apps = append(b.apps[:i], b.apps[i+1:]...)
			return nil
		}
	}
	return &apiclient.APIError{StatusCode: http.StatusNotFound, Detail: "Application not found"}
}

func (b *stubBackend) SyncEmails(context.Context) (*dtos.SyncEmailsResponse, error) {
	return nil, &apiclient.APIError{StatusCode: http.StatusInternalServerError, Detail: "gmail unavailable"}
}

func (b *stubBackend) Stats(context.Context) (*models.StatusCounts, error) {
	c := models.CountStatuses(b.apps)
	return &c, nil
}

func (b *stubBackend) UploadImage(_ context.Context, filename, _ string, r io.Reader) (*dtos.ImageExtraction, error) {
	data, _ := io.ReadAll(r)
	b.uploaded = string(data)
	company := "Acme"
	return &dtos.ImageExtraction{ImagePath: "/uploads/" + filename, CompanyName: &company}, nil
}

func (b *stubBackend) GetProfile(context.Context) (models.Profile, error) {
	return b.profile.Normalize(), nil
}

func (b *stubBackend) SaveProfile(_ context.Context, p models.Profile) (models.Profile, error) {
	b.profile = p
	return p, nil
}

func (b *stubBackend) ExtractProfile(_ context.Context, text string) (models.Profile, error) {
	return models.Profile{Skills: []string{text}}, nil
}

func (b *stubBackend) GenerateResume(_ context.Context, req dtos.ResumeGenerateRequest) (*dtos.ResumeGenerateResponse, error) {
	doc := models.ResumeDocument{Summary: req.JobDescription}
	return &dtos.ResumeGenerateResponse{ResumeData: doc, ApplicationID: req.ApplicationID}, nil
}

func (b *stubBackend) CreateResumePDF(_ context.Context, req dtos.ResumePDFRequest) (*dtos.ResumePDFResponse, error) {
	path := "/resumes/resume_app_1.pdf"
	b.resumes[req.ApplicationID] = path
	return &dtos.ResumePDFResponse{Message: "PDF created", ResumePath: path, ApplicationID: req.ApplicationID}, nil
}

func (b *stubBackend) GetResume(_ context.Context, id int) (*dtos.ResumeLocation, error) {
	path, ok := b.resumes[id]
	if !ok {
		return nil, &apiclient.APIError{StatusCode: http.StatusNotFound, Detail: "Resume not found"}
	}
	return &dtos.ResumeLocation{ResumePath: path, ApplicationID: id}, nil
}

type stubJobs struct{}

func (stubJobs) ExtractJobDetails(_ context.Context, req dtos.JobPostingExtractionRequest) (dtos.ApplicationCreateRequest, error) {
	return dtos.ApplicationCreateRequest{CompanyName: "Parsed", Position: "Engineer", JobURL: req.URL}, nil
}

func newTestRouter(t *testing.T, backend *stubBackend, jobs JobExtractor) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	if backend.resumes == nil {
		backend.resumes = map[int]string{}
	}
	log := zerolog.Nop()
	boardSvc := services.NewBoardService(backend, state.NewBoard(), log)
	return NewRouter(Handlers{
		Board:        NewBoardHandler(boardSvc),
		Applications: NewApplicationHandler(boardSvc, jobs),
		Profile:      NewProfileHandler(services.NewProfileService(backend, backend, log)),
		Resume:       NewResumeHandler(services.NewResumeService(backend, boardSvc, log), "http://localhost:8000/"),
	}, log)
}

func do(r http.Handler, method, path string, body any) *httptest.ResponseRecorder {
	var rd io.Reader
	if body != nil {
		b, _ := json.Marshal(body)
		rd = bytes.NewReader(b)
	}
	req := httptest.NewRequest(method, path, rd)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decodeBody[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out), w.Body.String())
	return out
}

func sampleApps() []models.Application {
	return []models.Application{
		{ID: 1, CompanyName: "Beta", Status: models.StatusPending, AppliedDate: models.TimestampOf("2024-01-05T10:00:00")},
		{ID: 2, CompanyName: "Acme", Status: models.StatusRejected, AppliedDate: models.TimestampOf("2024-01-05T11:00:00")},
		{ID: 3, CompanyName: "Gamma", Status: models.StatusInterview, AppliedDate: models.TimestampOf("2024-01-06T09:00:00")},
	}
}

func TestHealthCheck(t *testing.T) {
	r := newTestRouter(t, &stubBackend{}, nil)

	w := do(r, http.MethodGet, "/api/v1/health", nil)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.NotEmpty(t, w.Header().Get(RequestIDHeader))
}

func TestRequestIDIsEchoed(t *testing.T) {
	r := newTestRouter(t, &stubBackend{}, nil)
	req := httptest.NewRequest(http.MethodGet, "/api/v1/health", nil)
	req.Header.Set(RequestIDHeader, "abc-123")
	w := httptest.NewRecorder()

	r.ServeHTTP(w, req)

	assert.Equal(t, "abc-123", w.Header().Get(RequestIDHeader))
}

func TestGetBoardFetchesOnceAndGroups(t *testing.T) {
	backend := &stubBackend{apps: sampleApps()}
	r := newTestRouter(t, backend, nil)

	w := do(r, http.MethodGet, "/api/v1/board", nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	view := decodeBody[services.BoardView](t, w)

	require.Len(t, view.Groups, 2)
	assert.Equal(t, "2024-01-06", view.Groups[0].Key)
	assert.Equal(t, "2024-01-05", view.Groups[1].Key)
	// Fully rejected Acme sorts after Beta.
	assert.Equal(t, "Beta", view.Groups[1].Companies[0].Name)
	assert.Equal(t, "Acme", view.Groups[1].Companies[1].Name)
	assert.Equal(t, 3, view.Counts.Total)

	do(r, http.MethodGet, "/api/v1/board", nil)
	assert.Equal(t, 1, backend.lists)

	do(r, http.MethodGet, "/api/v1/board?refresh=true", nil)
	assert.Equal(t, 2, backend.lists)
}

func TestGetBoardFilterChangeRefetches(t *testing.T) {
	backend := &stubBackend{apps: sampleApps()}
	r := newTestRouter(t, backend, nil)

	do(r, http.MethodGet, "/api/v1/board", nil)
	w := do(r, http.MethodGet, "/api/v1/board?status=rejected", nil)

	require.Equal(t, http.StatusOK, w.Code)
	view := decodeBody[services.BoardView](t, w)
	assert.Equal(t, models.StatusRejected, view.Filter)
	require.Len(t, view.Groups, 1)
	assert.Equal(t, 2, backend.lists)
}

func TestGetBoardErrors(t *testing.T) {
	r := newTestRouter(t, &stubBackend{}, nil)
	w := do(r, http.MethodGet, "/api/v1/board?status=ghosted", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	r = newTestRouter(t, &stubBackend{listErr: errors.New("connection refused")}, nil)
	w = do(r, http.MethodGet, "/api/v1/board", nil)
	assert.Equal(t, http.StatusBadGateway, w.Code)
	assert.Contains(t, decodeBody[map[string]string](t, w)["error"], "connection refused")
}

func TestToggleCompanyAndDate(t *testing.T) {
	r := newTestRouter(t, &stubBackend{apps: sampleApps()}, nil)

	w := do(r, http.MethodPost, "/api/v1/board/companies/toggle", gin.H{"key": "2024-01-05-Acme"})
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"collapsed_companies":["2024-01-05-Acme"]}`, w.Body.String())

	w = do(r, http.MethodPost, "/api/v1/board/dates/toggle", gin.H{"key": "2024-01-06"})
	require.Equal(t, http.StatusOK, w.Code)

	view := decodeBody[services.BoardView](t, do(r, http.MethodGet, "/api/v1/board", nil))
	assert.True(t, view.Groups[0].Collapsed)
	assert.True(t, view.Groups[1].Companies[1].Collapsed)
	assert.False(t, view.Groups[1].Companies[0].Collapsed)

	w = do(r, http.MethodPost, "/api/v1/board/companies/toggle", gin.H{"key": "2024-01-05-Acme"})
	assert.JSONEq(t, `{"collapsed_companies":[]}`, w.Body.String())

	w = do(r, http.MethodPost, "/api/v1/board/dates/toggle", gin.H{})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestApplicationCRUD(t *testing.T) {
	backend := &stubBackend{apps: sampleApps()}
	r := newTestRouter(t, backend, nil)

	w := do(r, http.MethodPost, "/api/v1/applications", gin.H{"company_name": "Delta", "position": "SRE"})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	assert.Equal(t, "Delta", decodeBody[models.Application](t, w).CompanyName)

	w = do(r, http.MethodPost, "/api/v1/applications", gin.H{"position": "SRE"})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = do(r, http.MethodPut, "/api/v1/applications/1", gin.H{"status": "interview"})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, models.StatusInterview, decodeBody[models.Application](t, w).Status)

	w = do(r, http.MethodPut, "/api/v1/applications/1", gin.H{"status": "ghosted"})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = do(r, http.MethodPut, "/api/v1/applications/99", gin.H{"notes": "x"})
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = do(r, http.MethodDelete, "/api/v1/applications/abc", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = do(r, http.MethodDelete, "/api/v1/applications/2", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, backend.apps, 3)
}

func TestGetApplication(t *testing.T) {
	r := newTestRouter(t, &stubBackend{apps: sampleApps()}, nil)

	w := do(r, http.MethodGet, "/api/v1/applications/3", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Gamma", decodeBody[models.Application](t, w).CompanyName)

	w = do(r, http.MethodGet, "/api/v1/applications/99", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestEmailRoutes(t *testing.T) {
	backend := &stubBackend{apps: sampleApps(), emails: []dtos.EmailSummary{
		{ID: "7", Subject: "Application received", Date: models.TimestampOf("2024-01-07T00:00:00")},
		{ID: "404", Subject: "Newsletter"},
		{ID: "5", Subject: "Interview invite"},
	}}
	r := newTestRouter(t, backend, nil)

	w := do(r, http.MethodGet, "/api/v1/applications/emails?days_back=2&limit=2", nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	listed := decodeBody[[]dtos.EmailSummary](t, w)
	require.Len(t, listed, 2)
	assert.Equal(t, "7", listed[0].ID)
	assert.False(t, listed[0].Processed())

	w = do(r, http.MethodGet, "/api/v1/applications/emails", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, []string{"2/2", "0/50"}, backend.emailQueries)

	w = do(r, http.MethodGet, "/api/v1/applications/emails?limit=lots", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = do(r, http.MethodPost, "/api/v1/applications/emails/7/process", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.True(t, decodeBody[dtos.ProcessEmailResponse](t, w).ApplicationCreated)
	view := decodeBody[services.BoardView](t, do(r, http.MethodGet, "/api/v1/board", nil))
	assert.Equal(t, 4, view.Counts.Total)

	w = do(r, http.MethodPost, "/api/v1/applications/emails/404/process", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = do(r, http.MethodPost, "/api/v1/applications/emails/process-recent", gin.H{"count": 3})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	batch := decodeBody[dtos.EmailBatchResponse](t, w)
	assert.Equal(t, 2, batch.Succeeded)
	assert.Equal(t, 1, batch.Failed)

	w = do(r, http.MethodPost, "/api/v1/applications/emails/process-recent", gin.H{"count": 11})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	w = do(r, http.MethodPost, "/api/v1/applications/emails/process-recent", gin.H{})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestSyncEmailsUpstreamFailure(t *testing.T) {
	r := newTestRouter(t, &stubBackend{}, nil)

	w := do(r, http.MethodPost, "/api/v1/applications/sync-emails", nil)

	assert.Equal(t, http.StatusBadGateway, w.Code)
	assert.Contains(t, w.Body.String(), "gmail unavailable")
}

func multipartImage(t *testing.T, contentType string, data []byte) (*bytes.Buffer, string) {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	h := make(textproto.MIMEHeader)
	h.Set("Content-Disposition", `form-data; name="file"; filename="posting.png"`)
	h.Set("Content-Type", contentType)
	part, err := mw.CreatePart(h)
	require.NoError(t, err)
	_, err = part.Write(data)
	require.NoError(t, err)
	require.NoError(t, mw.Close())
	return &buf, mw.FormDataContentType()
}

func TestExtractFromImage(t *testing.T) {
	backend := &stubBackend{}
	r := newTestRouter(t, backend, nil)

	body, ct := multipartImage(t, "image/png", []byte("png-bytes"))
	req := httptest.NewRequest(http.MethodPost, "/api/v1/applications/extract-image", body)
	req.Header.Set("Content-Type", ct)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, "png-bytes", backend.uploaded)
	resp := decodeBody[struct {
		Data dtos.ApplicationCreateRequest `json:"data"`
	}](t, w)
	assert.Equal(t, "Acme", resp.Data.CompanyName)
	assert.Equal(t, "/uploads/posting.png", resp.Data.ImagePath)

	body, ct = multipartImage(t, "text/plain", []byte("nope"))
	req = httptest.NewRequest(http.MethodPost, "/api/v1/applications/extract-image", body)
	req.Header.Set("Content-Type", ct)
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestExtractFromText(t *testing.T) {
	w := do(newTestRouter(t, &stubBackend{}, nil), http.MethodPost, "/api/v1/applications/extract-text", gin.H{"raw_text": "x"})
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)

	r := newTestRouter(t, &stubBackend{}, stubJobs{})
	w = do(r, http.MethodPost, "/api/v1/applications/extract-text", gin.H{"raw_text": "We are hiring", "url": "https://jobs.example/1"})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "https://jobs.example/1")
}

func TestProfileRoutes(t *testing.T) {
	backend := &stubBackend{profile: models.Profile{Skills: []string{"Go"}}}
	r := newTestRouter(t, backend, nil)

	w := do(r, http.MethodGet, "/api/v1/profile", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, []string{"Go"}, decodeBody[models.Profile](t, w).Skills)

	w = do(r, http.MethodPost, "/api/v1/profile/extract", gin.H{"portfolio_text": "Rust"})
	require.Equal(t, http.StatusOK, w.Code)
	got := decodeBody[dtos.PortfolioExtractionResponse](t, w)
	require.NotNil(t, got.ExtractedData)
	assert.Equal(t, []string{"Go", "Rust"}, got.ExtractedData.Skills)

	w = do(r, http.MethodPost, "/api/v1/profile/extract", gin.H{"portfolio_text": "  "})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = do(r, http.MethodPost, "/api/v1/profile", gin.H{"summary": "Backend engineer"})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Backend engineer", backend.profile.Summary)
}

func TestResumeRoutes(t *testing.T) {
	backend := &stubBackend{apps: sampleApps()}
	r := newTestRouter(t, backend, nil)

	w := do(r, http.MethodGet, "/api/v1/resume/1", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = do(r, http.MethodPost, "/api/v1/resume/generate", gin.H{"job_description": "Go dev", "application_id": 1})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	gen := decodeBody[dtos.ResumeGenerateResponse](t, w)
	assert.Equal(t, "Go dev", gen.ResumeData.Summary)

	w = do(r, http.MethodPost, "/api/v1/resume/edit", gin.H{"resume_data": gen.ResumeData, "field": "skills", "value": "Go, SQL"})
	require.Equal(t, http.StatusOK, w.Code)
	edited := decodeBody[struct {
		ResumeData models.ResumeDocument `json:"resume_data"`
	}](t, w)
	assert.Equal(t, []string{"Go", "SQL"}, edited.ResumeData.Skills)

	w = do(r, http.MethodPost, "/api/v1/resume/edit", gin.H{"resume_data": gen.ResumeData, "field": "bogus", "value": "x"})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = do(r, http.MethodPost, "/api/v1/resume/pdf", gin.H{"resume_data": edited.ResumeData, "application_id": 1})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "http://localhost:8000/resumes/resume_app_1.pdf", decodeBody[map[string]any](t, w)["resume_url"])

	w = do(r, http.MethodGet, "/api/v1/resume/1", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "/resumes/resume_app_1.pdf", decodeBody[map[string]any](t, w)["resume_path"])
}

func TestStatusFor(t *testing.T) {
	assert.Equal(t, http.StatusBadRequest, statusFor(services.ErrEmptyPortfolio))
	assert.Equal(t, http.StatusBadRequest, statusFor(fmt.Errorf("edit: %w", models.ErrIndexOutOfRange)))
	assert.Equal(t, http.StatusBadRequest, statusFor(services.ErrBatchSize))
	assert.Equal(t, http.StatusNotFound, statusFor(services.ErrNoResume))
	assert.Equal(t, http.StatusUnprocessableEntity, statusFor(&apiclient.APIError{StatusCode: http.StatusUnprocessableEntity}))
	assert.Equal(t, http.StatusBadGateway, statusFor(&apiclient.APIError{StatusCode: http.StatusInternalServerError}))
	assert.Equal(t, http.StatusBadGateway, statusFor(errors.New("dial tcp")))
}
