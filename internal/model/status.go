package model

// Tone is a semantic color slot resolved by the active theme. Keeping the
// presenter free of styling packages keeps it a pure, testable mapping.
type Tone int

const (
	ToneNeutral Tone = iota
	ToneActive
	ToneSuccess
	ToneError
)

// StatusView is the display tuple for a project status. It is the single
// source of truth for which actions are enabled on a project.
type StatusView struct {
	Icon      string
	Label     string
	Tone      Tone
	Spinning  bool
	CanEdit   bool
	CanDelete bool
}

// PresentStatus maps a status to its display tuple. Unknown statuses render
// their raw value with neutral styling so statuses added by a newer backend
// degrade gracefully instead of erroring.
func PresentStatus(s Status) StatusView {
	switch s {
	case StatusUploading:
		return StatusView{Icon: "○", Label: "uploading", Tone: ToneNeutral, CanDelete: true}
	case StatusParsing:
		return StatusView{Icon: "◌", Label: "parsing", Tone: ToneActive, Spinning: true, CanDelete: true}
	case StatusTranslating:
		return StatusView{Icon: "◌", Label: "translating", Tone: ToneActive, Spinning: true, CanEdit: true, CanDelete: true}
	case StatusCompleted:
		return StatusView{Icon: "✓", Label: "completed", Tone: ToneSuccess, CanEdit: true, CanDelete: true}
	case StatusFailed:
		return StatusView{Icon: "✗", Label: "failed", Tone: ToneError, CanDelete: true}
	default:
		return StatusView{Icon: "•", Label: string(s), Tone: ToneNeutral, CanDelete: true}
	}
}
