package model

import (
	"strings"
	"time"
)

// Status is a project's position in the backend pipeline.
type Status string

const (
	StatusUploading   Status = "uploading"
	StatusParsing     Status = "parsing"
	StatusTranslating Status = "translating"
	StatusCompleted   Status = "completed"
	StatusFailed      Status = "failed"
)

// Project represents one document-translation job. Field names follow the
// backend wire format (snake_case JSON).
type Project struct {
	ID                 string    `json:"id"`
	OriginalFilename   string    `json:"original_filename"`
	OriginalFileURL    string    `json:"original_file_url,omitempty"`
	PDFTranslatedURL   string    `json:"pdf_translated_url,omitempty"`
	SourceLanguage     string    `json:"source_language"`
	TargetLanguage     string    `json:"target_language"`
	Status             Status    `json:"status"`
	ProgressPercent    int       `json:"progress_percent"`
	PageCount          int       `json:"page_count,omitempty"`
	MarkdownOriginal   string    `json:"markdown_original,omitempty"`
	MarkdownTranslated string    `json:"markdown_translated,omitempty"`
	CreatedAt          time.Time `json:"created_at"`
	UpdatedAt          time.Time `json:"updated_at"`
}

// IsTerminal reports whether the project can no longer change status on its
// own. Terminal states are never left; a new upload creates a new project.
func (p *Project) IsTerminal() bool {
	return p.Status == StatusCompleted || p.Status == StatusFailed
}

// InPipeline reports whether the backend is actively working on the project,
// which is the only time ProgressPercent is meaningful.
func (p *Project) InPipeline() bool {
	return p.Status == StatusParsing || p.Status == StatusTranslating
}

// HasArtifact reports whether a generated output PDF is known to exist.
func (p *Project) HasArtifact() bool {
	return p.PDFTranslatedURL != ""
}

// LanguagePair renders the pair for display, e.g. "KO → EN".
func (p *Project) LanguagePair() string {
	return strings.ToUpper(p.SourceLanguage) + " → " + strings.ToUpper(p.TargetLanguage)
}
