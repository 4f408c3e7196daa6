// Package workflow runs the save → regenerate → refresh → deliver chain that
// turns the editor's translated buffer into a downloadable output PDF.
package workflow

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/pkg/browser"

	"github.com/seojin/pdflate/internal/model"
)

// ErrEmptyBuffer means the workflow refused to start: generating from an
// empty translated buffer would produce an empty output PDF.
var ErrEmptyBuffer = errors.New("translated document is empty")

// Step identifies where in the chain a failure occurred.
type Step int

const (
	StepSave Step = iota
	StepGenerate
	StepRefresh
	StepDeliver
)

func (s Step) String() string {
	switch s {
	case StepSave:
		return "save"
	case StepGenerate:
		return "generation"
	case StepRefresh:
		return "refresh"
	case StepDeliver:
		return "download"
	default:
		return "unknown"
	}
}

// StepError reports which step failed. Remaining steps were not attempted.
type StepError struct {
	Step Step
	Err  error
}

func (e *StepError) Error() string {
	return fmt.Sprintf("%s failed: %v", e.Step, e.Err)
}

func (e *StepError) Unwrap() error { return e.Err }

// Backend is the slice of the API the generator needs.
type Backend interface {
	UpdateTranslation(ctx context.Context, id, markdown string) (model.Project, error)
	GeneratePDF(ctx context.Context, id string) error
	GetProject(ctx context.Context, id string) (model.Project, error)
	DownloadURL(id string) string
}

// Result carries what the workflow learned. Refreshed is false when step 3
// failed; the artifact still exists server-side and a later manual refresh
// will pick up its reference.
type Result struct {
	Project     model.Project
	Refreshed   bool
	DownloadURL string
}

// Generator runs the output generation workflow. Steps are strictly
// sequential; step N+1 never begins before step N has settled, because
// generation must read content that has already been persisted.
type Generator struct {
	backend Backend
	open    func(url string) error
}

// NewGenerator wires the generator to the backend. Downloads open in the
// system browser.
func NewGenerator(b Backend) *Generator {
	return &Generator{backend: b, open: browser.OpenURL}
}

// SetOpener replaces the download opener. Tests use this to observe delivery
// without launching a browser.
func (g *Generator) SetOpener(open func(url string) error) {
	g.open = open
}

// Run executes the four-step chain for one project.
//
//  1. Persist the translated buffer. Failure aborts: nothing was generated.
//  2. Request regeneration. Failure aborts; any prior artifact is untouched.
//  3. Re-fetch the project for the new artifact reference. Failure is
//     non-fatal: the artifact was produced server-side, we just cannot show
//     its reference until a later refresh.
//  4. Open the download.
func (g *Generator) Run(ctx context.Context, projectID, translated string) (Result, error) {
	if strings.TrimSpace(translated) == "" {
		return Result{}, ErrEmptyBuffer
	}

	if _, err := g.backend.UpdateTranslation(ctx, projectID, translated); err != nil {
		return Result{}, &StepError{Step: StepSave, Err: err}
	}

	if err := g.backend.GeneratePDF(ctx, projectID); err != nil {
		return Result{}, &StepError{Step: StepGenerate, Err: err}
	}

	res := Result{DownloadURL: g.backend.DownloadURL(projectID)}
	if p, err := g.backend.GetProject(ctx, projectID); err != nil {
		debugf("post-generate refresh for %s failed: %v", projectID, err)
	} else {
		res.Project = p
		res.Refreshed = true
	}

	if err := g.open(res.DownloadURL); err != nil {
		return res, &StepError{Step: StepDeliver, Err: err}
	}

	return res, nil
}
