package api

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/google/uuid"

	"github.com/seojin/pdflate/internal/model"
)

// Client talks to the pdflate backend. All project mutations go through
// here; the client itself keeps no state beyond the connection settings.
type Client struct {
	baseURL string
	http    *resty.Client
}

// New creates a client for the given server base URL (e.g. "http://localhost:8000").
func New(serverURL string) *Client {
	c := resty.New().
		SetTimeout(30 * time.Second).
		SetHeader("Accept", "application/json")

	// Tag every request so failures can be correlated in backend logs.
	c.OnBeforeRequest(func(_ *resty.Client, req *resty.Request) error {
		req.SetHeader("X-Request-ID", uuid.NewString())
		return nil
	})

	return &Client{
		baseURL: strings.TrimRight(serverURL, "/"),
		http:    c,
	}
}

func (c *Client) url(path string) string {
	return c.baseURL + "/api" + path
}

// ListProjects fetches all projects for the session, newest first.
func (c *Client) ListProjects(ctx context.Context) ([]model.Project, error) {
	var resp struct {
		Projects []model.Project `json:"projects"`
	}
	r, err := c.http.R().SetContext(ctx).SetResult(&resp).Get(c.url("/projects/"))
	if err != nil {
		return nil, fmt.Errorf("list projects: %w", err)
	}
	if r.IsError() {
		return nil, wrapError(r)
	}
	return resp.Projects, nil
}

// GetProject fetches a single project record.
func (c *Client) GetProject(ctx context.Context, id string) (model.Project, error) {
	var p model.Project
	r, err := c.http.R().SetContext(ctx).SetResult(&p).Get(c.url("/projects/" + id))
	if err != nil {
		return model.Project{}, fmt.Errorf("get project: %w", err)
	}
	if r.IsError() {
		return model.Project{}, wrapError(r)
	}
	return p, nil
}

// UploadProject submits a PDF plus its language pair and returns the newly
// created project.
func (c *Client) UploadProject(ctx context.Context, filePath, sourceLang, targetLang string) (model.Project, error) {
	var p model.Project
	r, err := c.http.R().SetContext(ctx).
		SetFile("file", filePath).
		SetFormData(map[string]string{
			"source_language": sourceLang,
			"target_language": targetLang,
		}).
		SetResult(&p).
		Post(c.url("/projects/upload"))
	if err != nil {
		return model.Project{}, fmt.Errorf("upload: %w", err)
	}
	if r.IsError() {
		return model.Project{}, wrapError(r)
	}
	return p, nil
}

// UpdateTranslation persists the edited translated markdown and returns the
// updated project.
func (c *Client) UpdateTranslation(ctx context.Context, id, markdown string) (model.Project, error) {
	var p model.Project
	r, err := c.http.R().SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(map[string]string{"markdown_translated": markdown}).
		SetResult(&p).
		Patch(c.url("/projects/" + id))
	if err != nil {
		return model.Project{}, fmt.Errorf("save translation: %w", err)
	}
	if r.IsError() {
		return model.Project{}, wrapError(r)
	}
	return p, nil
}

// DeleteProject removes a project server-side.
func (c *Client) DeleteProject(ctx context.Context, id string) error {
	r, err := c.http.R().SetContext(ctx).Delete(c.url("/projects/" + id))
	if err != nil {
		return fmt.Errorf("delete project: %w", err)
	}
	if r.IsError() {
		return wrapError(r)
	}
	return nil
}

// StartTranslation asks the backend to begin the parse/translate pipeline.
// The new status is not carried in the response; callers refresh afterwards.
func (c *Client) StartTranslation(ctx context.Context, id string) error {
	r, err := c.http.R().SetContext(ctx).Post(c.url("/translation/projects/" + id + "/translate"))
	if err != nil {
		return fmt.Errorf("start translation: %w", err)
	}
	if r.IsError() {
		return wrapError(r)
	}
	return nil
}

// GeneratePDF requests regeneration of the output PDF from the persisted
// translated markdown.
func (c *Client) GeneratePDF(ctx context.Context, id string) error {
	r, err := c.http.R().SetContext(ctx).Post(c.url("/pdf/projects/" + id + "/generate"))
	if err != nil {
		return fmt.Errorf("generate pdf: %w", err)
	}
	if r.IsError() {
		return wrapError(r)
	}
	return nil
}

// DownloadURL returns the browser-openable URL for a project's output PDF.
func (c *Client) DownloadURL(id string) string {
	return c.url("/pdf/projects/" + id + "/download")
}
