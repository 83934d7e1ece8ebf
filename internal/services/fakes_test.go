package services

import (
	"context"
	"io"
	"net/http"
	"sync"

	"github.com/tmc/langchaingo/llms"

	"github.com/justsurfingit/job-board/internal/apiclient"
	"github.com/justsurfingit/job-board/internal/dtos"
	"github.com/justsurfingit/job-board/internal/models"
)

type fakeAPI struct {
	mu      sync.Mutex
	apps    []models.Application
	listErr error
	stats   *models.StatusCounts
	nextID  int
	calls   []string
	uploads []string

	emails     []dtos.EmailSummary
	emailErrs  map[string]error
	emailLimit int
}

func (f *fakeAPI) record(call string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, call)
}

func (f *fakeAPI) ListApplications(_ context.Context, status models.Status) ([]models.Application, error) {
	f.record("list:" + string(status))
	if f.listErr != nil {
		return nil, f.listErr
	}
	var out []models.Application
	for _, a := range f.apps {
		if status == "" || a.Status == status {
			out = append(out, a)
		}
	}
	return out, nil
}

func (f *fakeAPI) GetApplication(_ context.Context, id int) (*models.Application, error) {
	f.record("get")
	for _, a := range f.apps {
		if a.ID == id {
			return &a, nil
		}
	}
	return nil, &apiclient.APIError{StatusCode: http.StatusNotFound, Detail: "Application not found"}
}

func (f *fakeAPI) ListEmails(_ context.Context, _ int, limit int, _ bool) ([]dtos.EmailSummary, error) {
	f.record("emails")
	f.emailLimit = limit
	return f.emails[:min(limit, len(f.emails))], nil
}

// ProcessEmail creates an application named after the email id unless an
// error is registered for it.
func (f *fakeAPI) ProcessEmail(_ context.Context, id string) (*dtos.ProcessEmailResponse, error) {
	f.record("process:" + id)
	if err := f.emailErrs[id]; err != nil {
		return nil, err
	}
	f.nextID++
	app := models.Application{ID: f.nextID, CompanyName: "Mail " + id, Position: "Engineer", Status: models.StatusPending}
	f.apps = append(f.apps, app)
	return &dtos.ProcessEmailResponse{
		Message:            "New application created from email",
		ApplicationCreated: true,
		Application:        &dtos.ProcessedApplication{ID: app.ID, CompanyName: app.CompanyName, Position: app.Position},
	}, nil
}

func (f *fakeAPI) CreateApplication(_ context.Context, req dtos.ApplicationCreateRequest) (*models.Application, error) {
	f.record("create")
	f.nextID++
	st := req.Status
	if st == "" {
		st = models.StatusPending
	}
	app := models.Application{ID: f.nextID, CompanyName: req.CompanyName, Position: req.Position, Status: st}
	f.apps = append(f.apps, app)
	return &app, nil
}

func (f *fakeAPI) UpdateApplication(_ context.Context, id int, req dtos.ApplicationUpdateRequest) (*models.Application, error) {
	f.record("update")
	for i := range f.apps {
		if f.apps[i].ID == id {
			if req.Status != nil {
				f.apps[i].Status = *req.Status
			}
			app := f.apps[i]
			return &app, nil
		}
	}
	return nil, &apiclient.APIError{StatusCode: http.StatusNotFound, Detail: "Application not found"}
}

func (f *fakeAPI) DeleteApplication(_ context.Context, id int) error {
	f.record("delete")
	for i := range f.apps {
		if f.apps[i].ID == id {
			f.apps = append(f.apps[:i], f.apps[i+1:]...)
			return nil
		}
	}
	return &apiclient.APIError{StatusCode: http.StatusNotFound, Detail: "Application not found"}
}

func (f *fakeAPI) SyncEmails(context.Context) (*dtos.SyncEmailsResponse, error) {
	f.record("sync")
	return &dtos.SyncEmailsResponse{Message: "Email sync completed. Found 0 new applications."}, nil
}

func (f *fakeAPI) Stats(context.Context) (*models.StatusCounts, error) {
	f.record("stats")
	if f.stats == nil {
		return nil, &apiclient.APIError{StatusCode: http.StatusBadGateway}
	}
	return f.stats, nil
}

func (f *fakeAPI) UploadImage(_ context.Context, filename, _ string, r io.Reader) (*dtos.ImageExtraction, error) {
	f.record("upload")
	data, _ := io.ReadAll(r)
	f.uploads = append(f.uploads, filename+":"+string(data))
	company := "Acme"
	return &dtos.ImageExtraction{ImagePath: "/uploads/" + filename, CompanyName: &company}, nil
}

type fakeProfileAPI struct {
	profile models.Profile
	saved   []models.Profile
	err     error
}

func (f *fakeProfileAPI) GetProfile(context.Context) (models.Profile, error) {
	return f.profile, f.err
}

func (f *fakeProfileAPI) SaveProfile(_ context.Context, p models.Profile) (models.Profile, error) {
	f.saved = append(f.saved, p)
	return p, f.err
}

type fakeExtractor struct {
	profile models.Profile
	err     error
	texts   []string
}

func (f *fakeExtractor) ExtractProfile(_ context.Context, text string) (models.Profile, error) {
	f.texts = append(f.texts, text)
	return f.profile, f.err
}

type fakeResumeAPI struct {
	doc      models.ResumeDocument
	gen      []dtos.ResumeGenerateRequest
	pdfs     []dtos.ResumePDFRequest
	location *dtos.ResumeLocation
}

func (f *fakeResumeAPI) GenerateResume(_ context.Context, req dtos.ResumeGenerateRequest) (*dtos.ResumeGenerateResponse, error) {
	f.gen = append(f.gen, req)
	return &dtos.ResumeGenerateResponse{ResumeData: f.doc, ApplicationID: req.ApplicationID}, nil
}

func (f *fakeResumeAPI) CreateResumePDF(_ context.Context, req dtos.ResumePDFRequest) (*dtos.ResumePDFResponse, error) {
	f.pdfs = append(f.pdfs, req)
	return &dtos.ResumePDFResponse{ResumePath: "/resumes/r.pdf", ApplicationID: req.ApplicationID}, nil
}

func (f *fakeResumeAPI) GetResume(context.Context, int) (*dtos.ResumeLocation, error) {
	if f.location == nil {
		return nil, &apiclient.APIError{StatusCode: http.StatusNotFound}
	}
	return f.location, nil
}

type countingRefresher struct{ n int }

func (c *countingRefresher) RefreshCurrent(context.Context) error {
	c.n++
	return nil
}

// stubModel answers every prompt with a canned reply and remembers the prompt.
type stubModel struct {
	reply   string
	prompts []string
}

func (s *stubModel) GenerateContent(_ context.Context, messages []llms.MessageContent, _ ...llms.CallOption) (*llms.ContentResponse, error) {
	for _, m := range messages {
		for _, p := range m.Parts {
			if tp, ok := p.(llms.TextContent); ok {
				s.prompts = append(s.prompts, tp.Text)
			}
		}
	}
	return &llms.ContentResponse{Choices: []*llms.ContentChoice{{Content: s.reply}}}, nil
}

func (s *stubModel) Call(ctx context.Context, prompt string, options ...llms.CallOption) (string, error) {
	return llms.GenerateFromSinglePrompt(ctx, s, prompt, options...)
}
