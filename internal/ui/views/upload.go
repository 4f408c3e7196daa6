package views

import (
	"context"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/seojin/pdflate/internal/app"
	"github.com/seojin/pdflate/internal/model"
	"github.com/seojin/pdflate/internal/ui/theme"
	"github.com/seojin/pdflate/internal/upload"
)

// UploadedRequest is sent after a successful upload so the root can return
// to the dashboard and refresh it.
type UploadedRequest struct {
	Project model.Project
}

type uploadDoneMsg struct {
	project model.Project
	err     error
}

const (
	fieldPath = iota
	fieldSource
	fieldTarget
	fieldCount
)

// UploadView is the new-project form: one PDF path plus a language pair.
type UploadView struct {
	app    *app.App
	width  int
	height int

	inputs    []textinput.Model
	focus     int
	uploading bool
	spin      spinner.Model

	errMsg string
}

// NewUploadView creates a new upload form view
func NewUploadView(application *app.App) UploadView {
	inputs := make([]textinput.Model, fieldCount)
	placeholder := theme.Current.Styles.Placeholder

	path := textinput.New()
	path.PlaceholderStyle = placeholder
	path.Placeholder = "path/to/document.pdf"
	path.CharLimit = 512
	path.Width = 48
	path.Focus()
	inputs[fieldPath] = path

	source := textinput.New()
	source.PlaceholderStyle = placeholder
	source.Placeholder = "ko"
	source.CharLimit = 2
	source.Width = 4
	source.SetValue(application.Config.SourceLanguage)
	inputs[fieldSource] = source

	target := textinput.New()
	target.PlaceholderStyle = placeholder
	target.Placeholder = "en"
	target.CharLimit = 2
	target.Width = 4
	target.SetValue(application.Config.TargetLanguage)
	inputs[fieldTarget] = target

	s := spinner.New()
	s.Spinner = spinner.Dot

	return UploadView{
		app:    application,
		inputs: inputs,
		spin:   s,
	}
}

// Init initializes the upload view
func (v UploadView) Init() tea.Cmd {
	return textinput.Blink
}

// SetSize sets the view dimensions
func (v UploadView) SetSize(width, height int) UploadView {
	v.width = width
	v.height = height
	return v
}

// IsInputMode reports whether the view is capturing text input
func (v UploadView) IsInputMode() bool {
	return true
}

// Reset clears the form for a fresh upload
func (v UploadView) Reset() UploadView {
	v.inputs[fieldPath].SetValue("")
	v.inputs[fieldSource].SetValue(v.app.Config.SourceLanguage)
	v.inputs[fieldTarget].SetValue(v.app.Config.TargetLanguage)
	v.focus = fieldPath
	v.setFocus()
	v.uploading = false
	v.errMsg = ""
	return v
}

func (v *UploadView) setFocus() {
	for i := range v.inputs {
		if i == v.focus {
			v.inputs[i].Focus()
		} else {
			v.inputs[i].Blur()
		}
	}
}

func (v UploadView) request() upload.Request {
	return upload.Request{
		Files:      fileList(v.inputs[fieldPath].Value()),
		SourceLang: strings.ToLower(strings.TrimSpace(v.inputs[fieldSource].Value())),
		TargetLang: strings.ToLower(strings.TrimSpace(v.inputs[fieldTarget].Value())),
	}
}

// fileList turns the path field into the controller's file slice; an empty
// field means zero candidates, not one empty path.
func fileList(value string) []string {
	value = strings.TrimSpace(value)
	if value == "" {
		return nil
	}
	return []string{value}
}

func (v UploadView) submit() tea.Cmd {
	req := v.request()
	return func() tea.Msg {
		p, err := v.app.Uploads.Submit(context.Background(), req)
		return uploadDoneMsg{project: p, err: err}
	}
}

// Update handles messages
func (v UploadView) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case spinner.TickMsg:
		var cmd tea.Cmd
		v.spin, cmd = v.spin.Update(msg)
		return v, cmd

	case uploadDoneMsg:
		v.uploading = false
		if msg.err != nil {
			v.errMsg = msg.err.Error()
			return v, nil
		}
		p := msg.project
		return v.Reset(), func() tea.Msg { return UploadedRequest{Project: p} }

	case tea.KeyMsg:
		if v.uploading {
			return v, nil
		}

		switch msg.String() {
		case "esc":
			return v, func() tea.Msg { return BackRequest{} }

		case "tab", "down":
			v.focus = (v.focus + 1) % fieldCount
			v.setFocus()
			return v, nil

		case "shift+tab", "up":
			v.focus = (v.focus + fieldCount - 1) % fieldCount
			v.setFocus()
			return v, nil

		case "enter":
			// Validation happens client-side before any network call.
			if err := v.app.Uploads.Validate(v.request()); err != nil {
				v.errMsg = err.Error()
				return v, nil
			}
			v.errMsg = ""
			v.uploading = true
			return v, tea.Batch(v.submit(), v.spin.Tick)
		}

		var cmd tea.Cmd
		v.inputs[v.focus], cmd = v.inputs[v.focus].Update(msg)
		return v, cmd
	}

	return v, nil
}

// View renders the upload form
func (v UploadView) View() string {
	t := theme.Current.Theme
	styles := theme.Current.Styles

	var b strings.Builder
	b.WriteString(styles.Title.Render("New Project"))
	b.WriteString("\n")

	label := func(s string) string { return styles.Label.Render(s) }

	b.WriteString(label("PDF file (max 50MB)"))
	b.WriteString("\n")
	b.WriteString(v.renderInput(fieldPath))
	b.WriteString("\n\n")

	b.WriteString(label("Source language   Target language   (ko, en, ja, zh, …)"))
	b.WriteString("\n")
	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top,
		v.renderInput(fieldSource),
		"   ",
		v.renderInput(fieldTarget),
	))
	b.WriteString("\n\n")

	if v.uploading {
		b.WriteString(v.spin.View())
		b.WriteString(label(" uploading…"))
	} else {
		b.WriteString(styles.HelpKey.Render("enter"))
		b.WriteString(label(" upload · "))
		b.WriteString(styles.HelpKey.Render("tab"))
		b.WriteString(label(" next field · "))
		b.WriteString(styles.HelpKey.Render("esc"))
		b.WriteString(label(" cancel"))
	}

	if v.errMsg != "" {
		b.WriteString("\n\n")
		b.WriteString(lipgloss.NewStyle().Foreground(t.Error).Render(v.errMsg))
	}

	return b.String()
}

func (v UploadView) renderInput(i int) string {
	styles := theme.Current.Styles
	if i == v.focus {
		return styles.InputFocused.Render(v.inputs[i].View())
	}
	return styles.Input.Render(v.inputs[i].View())
}
