package upload

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/seojin/pdflate/internal/model"
	"github.com/seojin/pdflate/internal/store"
)

// fakeBackend counts network calls so validation tests can prove nothing was
// sent.
type fakeBackend struct {
	uploadCalls  int
	kickoffCalls int

	uploadErr  error
	kickoffErr error
}

func (f *fakeBackend) UploadProject(ctx context.Context, filePath, sourceLang, targetLang string) (model.Project, error) {
	f.uploadCalls++
	if f.uploadErr != nil {
		return model.Project{}, f.uploadErr
	}
	return model.Project{
		ID:               "new",
		OriginalFilename: filepath.Base(filePath),
		SourceLanguage:   sourceLang,
		TargetLanguage:   targetLang,
		Status:           model.StatusUploading,
	}, nil
}

func (f *fakeBackend) StartTranslation(ctx context.Context, id string) error {
	f.kickoffCalls++
	return f.kickoffErr
}

// writePDF creates a small file with a .pdf name under a temp dir.
func writePDF(t *testing.T, name string, size int) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, make([]byte, size), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestValidateRejectsBeforeNetwork(t *testing.T) {
	pdf := writePDF(t, "doc.pdf", 100)
	txt := writePDF(t, "doc.txt", 100)

	tests := []struct {
		name    string
		req     Request
		wantErr error
	}{
		{"no file", Request{SourceLang: "ko", TargetLang: "en"}, ErrNoFile},
		{"two files", Request{Files: []string{pdf, pdf}, SourceLang: "ko", TargetLang: "en"}, ErrMultipleFiles},
		{"not a pdf", Request{Files: []string{txt}, SourceLang: "ko", TargetLang: "en"}, ErrNotPDF},
		{"same language", Request{Files: []string{pdf}, SourceLang: "en", TargetLang: "en"}, ErrSameLanguage},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			backend := &fakeBackend{}
			c := NewController(backend, store.New())

			if err := c.Validate(tt.req); !errors.Is(err, tt.wantErr) {
				t.Errorf("Validate() = %v, want %v", err, tt.wantErr)
			}
			if _, err := c.Submit(context.Background(), tt.req); !errors.Is(err, tt.wantErr) {
				t.Errorf("Submit() = %v, want %v", err, tt.wantErr)
			}
			if backend.uploadCalls != 0 || backend.kickoffCalls != 0 {
				t.Error("rejected request reached the backend")
			}
		})
	}
}

func TestValidateRejectsOversizedFile(t *testing.T) {
	// A sparse-ish file just over the limit; only the Stat size matters.
	path := filepath.Join(t.TempDir(), "big.pdf")
	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	if err := f.Truncate(MaxUploadBytes + 1); err != nil {
		f.Close()
		t.Skipf("cannot create oversized file: %v", err)
	}
	f.Close()

	c := NewController(&fakeBackend{}, store.New())
	err = c.Validate(Request{Files: []string{path}, SourceLang: "ko", TargetLang: "en"})
	if !errors.Is(err, ErrTooLarge) {
		t.Errorf("Validate() = %v, want ErrTooLarge", err)
	}
}

func TestValidateRejectsBadLanguageCodes(t *testing.T) {
	pdf := writePDF(t, "doc.pdf", 100)

	for _, lang := range []string{"", "K", "kor", "K0", "EN"} {
		err := NewController(&fakeBackend{}, store.New()).Validate(Request{
			Files: []string{pdf}, SourceLang: lang, TargetLang: "en",
		})
		var ve *ValidationError
		if !errors.As(err, &ve) {
			t.Errorf("Validate(source=%q) = %v, want validation error", lang, err)
		}
	}
}

func TestValidateRejectsMissingFile(t *testing.T) {
	c := NewController(&fakeBackend{}, store.New())
	err := c.Validate(Request{
		Files:      []string{filepath.Join(t.TempDir(), "nope.pdf")},
		SourceLang: "ko",
		TargetLang: "en",
	})
	var ve *ValidationError
	if !errors.As(err, &ve) {
		t.Errorf("Validate() = %v, want validation error", err)
	}
}

func TestValidateAcceptsUppercaseExtension(t *testing.T) {
	pdf := writePDF(t, "DOC.PDF", 100)
	c := NewController(&fakeBackend{}, store.New())
	if err := c.Validate(Request{Files: []string{pdf}, SourceLang: "ko", TargetLang: "en"}); err != nil {
		t.Errorf("Validate() = %v, want nil", err)
	}
}

func TestSubmitInsertsAtHeadAndKicksOff(t *testing.T) {
	pdf := writePDF(t, "doc.pdf", 100)
	backend := &fakeBackend{}
	s := store.New()
	s.Insert(model.Project{ID: "existing"})

	c := NewController(backend, s)
	p, err := c.Submit(context.Background(), Request{Files: []string{pdf}, SourceLang: "ko", TargetLang: "en"})
	if err != nil {
		t.Fatalf("Submit: %v", err)
	}

	if p.OriginalFilename != "doc.pdf" {
		t.Errorf("OriginalFilename = %q", p.OriginalFilename)
	}
	projects := s.Projects()
	if len(projects) != 2 || projects[0].ID != "new" {
		t.Errorf("new project not at head of store: %v", projects)
	}
	if backend.kickoffCalls != 1 {
		t.Errorf("kickoff called %d times, want 1", backend.kickoffCalls)
	}
}

func TestSubmitUploadFailureDoesNotTouchStore(t *testing.T) {
	pdf := writePDF(t, "doc.pdf", 100)
	backend := &fakeBackend{uploadErr: errors.New("413")}
	s := store.New()

	c := NewController(backend, s)
	if _, err := c.Submit(context.Background(), Request{Files: []string{pdf}, SourceLang: "ko", TargetLang: "en"}); err == nil {
		t.Fatal("Submit returned nil on upload failure")
	}
	if s.Len() != 0 {
		t.Error("failed upload inserted a project")
	}
	if backend.kickoffCalls != 0 {
		t.Error("kickoff attempted after failed upload")
	}
}

func TestSubmitKickoffFailureIsNonFatal(t *testing.T) {
	pdf := writePDF(t, "doc.pdf", 100)
	backend := &fakeBackend{kickoffErr: errors.New("worker pool full")}
	s := store.New()

	c := NewController(backend, s)
	p, err := c.Submit(context.Background(), Request{Files: []string{pdf}, SourceLang: "ko", TargetLang: "en"})
	if err != nil {
		t.Fatalf("Submit: %v (kickoff failure must not fail the upload)", err)
	}
	if _, ok := s.Get(p.ID); !ok {
		t.Error("project missing from store after kickoff failure")
	}
}
