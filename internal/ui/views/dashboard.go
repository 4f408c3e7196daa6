package views

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/pkg/browser"

	"github.com/seojin/pdflate/internal/app"
	"github.com/seojin/pdflate/internal/model"
	"github.com/seojin/pdflate/internal/ui/theme"
)

// DashMode represents the current input mode of the dashboard
type DashMode int

const (
	DashModeNormal DashMode = iota
	DashModeConfirmDelete
)

// OpenEditorRequest is sent when the user opens a project for editing
// (Defined here to avoid circular import with ui package)
type OpenEditorRequest struct {
	Project model.Project
}

// OpenUploadRequest is sent when the user wants the upload form
type OpenUploadRequest struct{}

// BackRequest is sent when a view wants to return to the dashboard
type BackRequest struct{}

type dashProjectsMsg struct {
	projects []model.Project
	err      error
}

type dashDeletedMsg struct {
	projectID string
	err       error
}

// DashboardView lists the session's projects with their pipeline status.
type DashboardView struct {
	app    *app.App
	width  int
	height int

	projects []model.Project
	cursor   int
	loading  bool
	spin     spinner.Model

	mode         DashMode
	deleteTarget model.Project

	errMsg string
}

// NewDashboardView creates a new dashboard view
func NewDashboardView(application *app.App) DashboardView {
	s := spinner.New()
	s.Spinner = spinner.Dot
	return DashboardView{
		app:     application,
		spin:    s,
		loading: true,
	}
}

// Init triggers the initial project load
func (v DashboardView) Init() tea.Cmd {
	return tea.Batch(v.loadProjects(), v.spin.Tick)
}

// SetSize sets the view dimensions
func (v DashboardView) SetSize(width, height int) DashboardView {
	v.width = width
	v.height = height
	return v
}

// IsInputMode reports whether the view is capturing text input
func (v DashboardView) IsInputMode() bool {
	return false
}

// loadProjects fetches the full project list from the backend. The store is
// only ever updated through this full refresh; there is no partial patch.
func (v DashboardView) loadProjects() tea.Cmd {
	return func() tea.Msg {
		projects, err := v.app.API.ListProjects(context.Background())
		return dashProjectsMsg{projects: projects, err: err}
	}
}

func (v DashboardView) deleteProject(id string) tea.Cmd {
	return func() tea.Msg {
		err := v.app.API.DeleteProject(context.Background(), id)
		return dashDeletedMsg{projectID: id, err: err}
	}
}

// Update handles messages
func (v DashboardView) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case spinner.TickMsg:
		var cmd tea.Cmd
		v.spin, cmd = v.spin.Update(msg)
		return v, cmd

	case dashProjectsMsg:
		v.loading = false
		if msg.err != nil {
			v.errMsg = msg.err.Error()
			return v, nil
		}
		v.errMsg = ""
		v.notifyTransitions(msg.projects)
		v.app.Store.ReplaceAll(msg.projects)
		v.projects = v.app.Store.Projects()
		if v.cursor >= len(v.projects) {
			v.cursor = max(0, len(v.projects)-1)
		}
		return v, nil

	case dashDeletedMsg:
		if msg.err != nil {
			// The item stays in the list; the next refresh re-reads truth.
			v.errMsg = fmt.Sprintf("delete failed: %v", msg.err)
			return v, nil
		}
		v.app.Store.Remove(msg.projectID)
		v.projects = v.app.Store.Projects()
		if v.cursor >= len(v.projects) {
			v.cursor = max(0, len(v.projects)-1)
		}
		return v, nil

	case tea.KeyMsg:
		if v.mode == DashModeConfirmDelete {
			return v.handleDeleteConfirm(msg)
		}
		return v.handleNormalMode(msg)
	}

	return v, nil
}

func (v DashboardView) handleNormalMode(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "up", "k":
		if v.cursor > 0 {
			v.cursor--
		}
	case "down", "j":
		if v.cursor < len(v.projects)-1 {
			v.cursor++
		}
	case "g":
		v.cursor = 0
	case "G":
		v.cursor = max(0, len(v.projects)-1)

	case "r":
		v.loading = true
		v.errMsg = ""
		return v, v.loadProjects()

	case "u", "a":
		return v, func() tea.Msg { return OpenUploadRequest{} }

	case "enter":
		if p, ok := v.selected(); ok {
			if model.PresentStatus(p.Status).CanEdit {
				return v, func() tea.Msg { return OpenEditorRequest{Project: p} }
			}
			v.errMsg = fmt.Sprintf("%q is not editable while %s", p.OriginalFilename, p.Status)
		}

	case "d":
		if p, ok := v.selected(); ok {
			v.mode = DashModeConfirmDelete
			v.deleteTarget = p
		}

	case "o":
		if p, ok := v.selected(); ok && p.HasArtifact() {
			url := v.app.API.DownloadURL(p.ID)
			return v, func() tea.Msg {
				browser.OpenURL(url)
				return nil
			}
		}
	}

	return v, nil
}

func (v DashboardView) handleDeleteConfirm(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "enter", "y":
		v.mode = DashModeNormal
		return v, v.deleteProject(v.deleteTarget.ID)
	case "esc", "n":
		v.mode = DashModeNormal
	}
	return v, nil
}

func (v DashboardView) selected() (model.Project, bool) {
	if v.cursor < 0 || v.cursor >= len(v.projects) {
		return model.Project{}, false
	}
	return v.projects[v.cursor], true
}

// notifyTransitions sends a desktop notification for every project that a
// refresh just observed entering a terminal state. Steady states stay quiet.
func (v DashboardView) notifyTransitions(fresh []model.Project) {
	for _, p := range v.app.Store.TerminalTransitions(fresh) {
		switch p.Status {
		case model.StatusCompleted:
			v.app.Notifier.SendTranslationDone(p.OriginalFilename)
		case model.StatusFailed:
			v.app.Notifier.SendTranslationFailed(p.OriginalFilename)
		}
	}
}

// View renders the dashboard
func (v DashboardView) View() string {
	t := theme.Current.Theme
	styles := theme.Current.Styles

	var b strings.Builder
	b.WriteString(styles.Title.Render("Translation Projects"))
	b.WriteString("\n")

	if v.errMsg != "" {
		b.WriteString(lipgloss.NewStyle().Foreground(t.Error).Render(v.errMsg))
		b.WriteString("\n")
	}

	if v.loading {
		b.WriteString(v.spin.View())
		b.WriteString(styles.Label.Render(" loading projects…"))
		return b.String()
	}

	if len(v.projects) == 0 {
		b.WriteString(styles.Label.Render("No projects yet. Press "))
		b.WriteString(styles.HelpKey.Render("u"))
		b.WriteString(styles.Label.Render(" to upload a PDF."))
		return b.String()
	}

	for i, p := range v.projects {
		b.WriteString(v.renderRow(p, i == v.cursor))
		b.WriteString("\n")
	}

	if v.mode == DashModeConfirmDelete {
		prompt := fmt.Sprintf("Delete %q? (enter/y to confirm, esc to cancel)", v.deleteTarget.OriginalFilename)
		b.WriteString("\n")
		b.WriteString(lipgloss.NewStyle().Foreground(t.Warning).Render(prompt))
	}

	return b.String()
}

func (v DashboardView) renderRow(p model.Project, selected bool) string {
	t := theme.Current.Theme
	styles := theme.Current.Styles

	sv := model.PresentStatus(p.Status)
	icon := sv.Icon
	if sv.Spinning {
		icon = v.spin.View()
	}
	iconCell := lipgloss.NewStyle().Foreground(t.ToneColor(sv.Tone)).Render(icon)
	label := lipgloss.NewStyle().Foreground(t.ToneColor(sv.Tone)).Render(sv.Label)

	name := fmt.Sprintf("%-36s", truncateName(p.OriginalFilename, 36))

	meta := p.LanguagePair()
	if p.PageCount > 0 {
		meta += fmt.Sprintf(" · %dp", p.PageCount)
	}

	row := fmt.Sprintf("%s %s %-14s %-12s %s",
		iconCell,
		styles.Filename.Render(name),
		styles.LangPair.Render(meta),
		label,
		styles.Label.Render(p.CreatedAt.Format("Jan 2 15:04")),
	)

	if p.InPipeline() {
		row += "  " + v.renderProgress(p.ProgressPercent)
	}

	if selected {
		return styles.RowSelected.Render(row)
	}
	if p.Status == model.StatusFailed {
		return styles.RowFailed.Render(row)
	}
	return styles.RowNormal.Render(row)
}

// truncateName shortens a filename to max display runes. Slicing bytes would
// split multibyte characters, which Korean filenames hit constantly.
func truncateName(name string, max int) string {
	r := []rune(name)
	if len(r) <= max {
		return name
	}
	return string(r[:max-3]) + "..."
}

// renderProgress draws a small bar; the percentage only moves when a refresh
// brings fresher numbers, there is no background polling.
func (v DashboardView) renderProgress(percent int) string {
	t := theme.Current.Theme

	const barWidth = 20
	if percent < 0 {
		percent = 0
	}
	if percent > 100 {
		percent = 100
	}
	filled := percent * barWidth / 100

	bar := lipgloss.NewStyle().Foreground(t.ProgressFilled).Render(strings.Repeat("█", filled)) +
		lipgloss.NewStyle().Foreground(t.ProgressEmpty).Render(strings.Repeat("░", barWidth-filled))
	return fmt.Sprintf("%s %3d%%", bar, percent)
}
