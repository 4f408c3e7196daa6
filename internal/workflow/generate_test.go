package workflow

import (
	"context"
	"errors"
	"testing"

	"github.com/seojin/pdflate/internal/model"
)

// fakeBackend counts calls per step and can be told to fail any of them.
type fakeBackend struct {
	updateCalls   int
	generateCalls int
	getCalls      int

	updateErr   error
	generateErr error
	getErr      error

	savedContent string
	project      model.Project
}

func (f *fakeBackend) UpdateTranslation(ctx context.Context, id, markdown string) (model.Project, error) {
	f.updateCalls++
	if f.updateErr != nil {
		return model.Project{}, f.updateErr
	}
	f.savedContent = markdown
	return f.project, nil
}

func (f *fakeBackend) GeneratePDF(ctx context.Context, id string) error {
	f.generateCalls++
	return f.generateErr
}

func (f *fakeBackend) GetProject(ctx context.Context, id string) (model.Project, error) {
	f.getCalls++
	if f.getErr != nil {
		return model.Project{}, f.getErr
	}
	return f.project, nil
}

func (f *fakeBackend) DownloadURL(id string) string {
	return "http://localhost:8000/api/pdf/projects/" + id + "/download"
}

func newTestGenerator(b *fakeBackend) (*Generator, *[]string) {
	g := NewGenerator(b)
	var opened []string
	g.SetOpener(func(url string) error {
		opened = append(opened, url)
		return nil
	})
	return g, &opened
}

func TestRunHappyPath(t *testing.T) {
	backend := &fakeBackend{
		project: model.Project{ID: "p1", PDFTranslatedURL: "/files/p1.pdf", Status: model.StatusCompleted},
	}
	g, opened := newTestGenerator(backend)

	res, err := g.Run(context.Background(), "p1", "# translated body")
	if err != nil {
		t.Fatalf("Run: %v", err)
	}

	if backend.updateCalls != 1 || backend.generateCalls != 1 || backend.getCalls != 1 {
		t.Errorf("calls = update:%d generate:%d get:%d, want 1 each",
			backend.updateCalls, backend.generateCalls, backend.getCalls)
	}
	if backend.savedContent != "# translated body" {
		t.Errorf("persisted %q", backend.savedContent)
	}
	if !res.Refreshed {
		t.Error("Refreshed = false on successful refresh")
	}
	if len(*opened) != 1 || (*opened)[0] != res.DownloadURL {
		t.Errorf("opened %v, want one open of %q", *opened, res.DownloadURL)
	}
}

func TestRunRefusesEmptyBuffer(t *testing.T) {
	backend := &fakeBackend{}
	g, opened := newTestGenerator(backend)

	for _, content := range []string{"", "   ", "\n\t\n"} {
		if _, err := g.Run(context.Background(), "p1", content); !errors.Is(err, ErrEmptyBuffer) {
			t.Errorf("Run(%q) err = %v, want ErrEmptyBuffer", content, err)
		}
	}

	// Nothing downstream may run when the precondition fails.
	if backend.updateCalls != 0 || backend.generateCalls != 0 || len(*opened) != 0 {
		t.Error("empty-buffer refusal still touched the backend")
	}
}

func TestRunSaveFailureAbortsChain(t *testing.T) {
	backend := &fakeBackend{updateErr: errors.New("boom")}
	g, opened := newTestGenerator(backend)

	_, err := g.Run(context.Background(), "p1", "content")

	var se *StepError
	if !errors.As(err, &se) || se.Step != StepSave {
		t.Fatalf("err = %v, want StepError at save", err)
	}
	if backend.generateCalls != 0 || backend.getCalls != 0 || len(*opened) != 0 {
		t.Error("steps after a failed save were attempted")
	}
}

func TestRunGenerateFailureAbortsChain(t *testing.T) {
	backend := &fakeBackend{generateErr: errors.New("conversion error")}
	g, opened := newTestGenerator(backend)

	_, err := g.Run(context.Background(), "p1", "content")

	var se *StepError
	if !errors.As(err, &se) || se.Step != StepGenerate {
		t.Fatalf("err = %v, want StepError at generation", err)
	}
	if backend.getCalls != 0 || len(*opened) != 0 {
		t.Error("steps after a failed generation were attempted")
	}
}

func TestRunRefreshFailureIsNonFatal(t *testing.T) {
	backend := &fakeBackend{getErr: errors.New("timeout")}
	g, opened := newTestGenerator(backend)

	res, err := g.Run(context.Background(), "p1", "content")
	if err != nil {
		t.Fatalf("Run: %v (refresh failure must not fail the workflow)", err)
	}
	if res.Refreshed {
		t.Error("Refreshed = true despite failed refresh")
	}
	if len(*opened) != 1 {
		t.Errorf("download opened %d times, want 1", len(*opened))
	}
}

func TestRunDeliverFailure(t *testing.T) {
	backend := &fakeBackend{project: model.Project{ID: "p1"}}
	g := NewGenerator(backend)
	g.SetOpener(func(string) error { return errors.New("no browser") })

	res, err := g.Run(context.Background(), "p1", "content")

	var se *StepError
	if !errors.As(err, &se) || se.Step != StepDeliver {
		t.Fatalf("err = %v, want StepError at download", err)
	}
	// The artifact exists and the record is fresh even though opening failed.
	if !res.Refreshed {
		t.Error("Refreshed = false")
	}
	if res.DownloadURL == "" {
		t.Error("DownloadURL empty; caller cannot offer a manual retry")
	}
}

func TestStepErrorMessage(t *testing.T) {
	e := &StepError{Step: StepGenerate, Err: errors.New("latex blew up")}
	if got := e.Error(); got != "generation failed: latex blew up" {
		t.Errorf("Error() = %q", got)
	}
	if !errors.Is(e, e.Err) {
		t.Error("StepError does not unwrap to its cause")
	}
}
