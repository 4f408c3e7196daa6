// Package upload validates a candidate PDF and submits it, with its language
// pair, to the backend. A successful upload lands the new project at the head
// of the store and fires the translation kickoff before returning.
package upload

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/seojin/pdflate/internal/model"
	"github.com/seojin/pdflate/internal/store"
)

// MaxUploadBytes is the largest accepted file (50 MB), checked client-side
// before any network call.
const MaxUploadBytes = 50 * 1024 * 1024

// ValidationError is a client-side rejection, surfaced immediately and never
// sent to the backend.
type ValidationError struct {
	msg string
}

func (e *ValidationError) Error() string { return e.msg }

// Sentinel validation errors for conditions callers branch on.
var (
	ErrNoFile        = &ValidationError{"no file selected"}
	ErrMultipleFiles = &ValidationError{"only one file can be uploaded at a time"}
	ErrNotPDF        = &ValidationError{"only PDF files are allowed"}
	ErrTooLarge      = &ValidationError{"file size exceeds the 50MB limit"}
	ErrSameLanguage  = &ValidationError{"source and target language are the same"}
)

var langCodeRE = regexp.MustCompile(`^[a-z]{2}$`)

// Request is one upload invocation: exactly one candidate file plus a
// source/target language pair.
type Request struct {
	Files      []string
	SourceLang string
	TargetLang string
}

// Backend is the slice of the API the controller needs.
type Backend interface {
	UploadProject(ctx context.Context, filePath, sourceLang, targetLang string) (model.Project, error)
	StartTranslation(ctx context.Context, id string) error
}

// Controller validates and submits uploads.
type Controller struct {
	backend Backend
	store   *store.ProjectStore
}

// NewController wires the controller to the backend and the project store.
func NewController(b Backend, s *store.ProjectStore) *Controller {
	return &Controller{backend: b, store: s}
}

// Validate checks the request without touching the network.
func (c *Controller) Validate(req Request) error {
	switch len(req.Files) {
	case 0:
		return ErrNoFile
	case 1:
	default:
		return ErrMultipleFiles
	}

	path := req.Files[0]
	if !strings.EqualFold(filepath.Ext(path), ".pdf") {
		return ErrNotPDF
	}

	info, err := os.Stat(path)
	if err != nil {
		return &ValidationError{msg: fmt.Sprintf("cannot read %s: %v", filepath.Base(path), err)}
	}
	if info.IsDir() {
		return ErrNotPDF
	}
	if info.Size() > MaxUploadBytes {
		return ErrTooLarge
	}

	if !langCodeRE.MatchString(req.SourceLang) {
		return &ValidationError{msg: fmt.Sprintf("invalid source language %q", req.SourceLang)}
	}
	if !langCodeRE.MatchString(req.TargetLang) {
		return &ValidationError{msg: fmt.Sprintf("invalid target language %q", req.TargetLang)}
	}
	if req.SourceLang == req.TargetLang {
		return ErrSameLanguage
	}

	return nil
}

// Submit validates, uploads, inserts the new project at the head of the
// store, and kicks off translation. The kickoff is fire-and-forget: a failure
// is logged but does not roll back the upload or surface to the caller — the
// project stays visible in whatever status the backend last reported.
func (c *Controller) Submit(ctx context.Context, req Request) (model.Project, error) {
	if err := c.Validate(req); err != nil {
		return model.Project{}, err
	}

	p, err := c.backend.UploadProject(ctx, req.Files[0], req.SourceLang, req.TargetLang)
	if err != nil {
		return model.Project{}, err
	}
	c.store.Insert(p)

	if err := c.backend.StartTranslation(ctx, p.ID); err != nil {
		debugf("translation kickoff for %s failed: %v", p.ID, err)
	}

	return p, nil
}
