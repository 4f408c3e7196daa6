package views

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/seojin/pdflate/internal/app"
	"github.com/seojin/pdflate/internal/model"
	"github.com/seojin/pdflate/internal/session"
	"github.com/seojin/pdflate/internal/ui/theme"
	"github.com/seojin/pdflate/internal/workflow"
)

// Pane layout modes for the editor.
type paneMode int

const (
	paneSplit paneMode = iota
	paneOriginal
	paneTranslated
	paneModeCount
)

func (m paneMode) String() string {
	switch m {
	case paneOriginal:
		return "original"
	case paneTranslated:
		return "translated"
	default:
		return "split"
	}
}

type editorLoadedMsg struct {
	project model.Project
	err     error
}

type editorReloadedMsg struct {
	project model.Project
	err     error
}

type editorSavedMsg struct {
	err error
}

type editorGeneratedMsg struct {
	result workflow.Result
	err    error
}

type editorTickMsg time.Time

// EditorView is the side-by-side review surface: the parsed original on the
// left, the editable translation on the right.
type EditorView struct {
	app    *app.App
	width  int
	height int

	project model.Project
	sess    *session.Session

	original viewport.Model
	ta       textarea.Model
	mode     paneMode

	loading    bool
	generating bool
	spin       spinner.Model

	errMsg    string
	statusMsg string
}

// NewEditorView creates an editor for the given project. The full document
// bodies are fetched on Init; the list payload omits them.
func NewEditorView(application *app.App, p model.Project) EditorView {
	ta := textarea.New()
	ta.Placeholder = "translated markdown"
	ta.CharLimit = 0
	ta.ShowLineNumbers = false
	ta.Focus()

	s := spinner.New()
	s.Spinner = spinner.Dot

	return EditorView{
		app:      application,
		project:  p,
		original: viewport.New(0, 0),
		ta:       ta,
		mode:     paneSplit,
		loading:  true,
		spin:     s,
	}
}

// Init fetches the full project record
func (v EditorView) Init() tea.Cmd {
	id := v.project.ID
	load := func() tea.Msg {
		p, err := v.app.API.GetProject(context.Background(), id)
		return editorLoadedMsg{project: p, err: err}
	}
	return tea.Batch(load, v.spin.Tick, editorTick())
}

func editorTick() tea.Cmd {
	return tea.Tick(500*time.Millisecond, func(t time.Time) tea.Msg {
		return editorTickMsg(t)
	})
}

// SetSize sets the view dimensions
func (v EditorView) SetSize(width, height int) EditorView {
	v.width = width
	v.height = height
	v.layout()
	return v
}

// layout sizes the panes for the current mode. Two lines are reserved for the
// pane titles and the save-state footer.
func (v *EditorView) layout() {
	paneHeight := v.height - 4
	if paneHeight < 3 {
		paneHeight = 3
	}

	full := v.width - 4
	half := v.width/2 - 3
	if half < 10 {
		half = 10
	}
	if full < 10 {
		full = 10
	}

	switch v.mode {
	case paneSplit:
		v.original.Width = half
		v.ta.SetWidth(half)
	case paneOriginal:
		v.original.Width = full
	case paneTranslated:
		v.ta.SetWidth(full)
	}
	v.original.Height = paneHeight
	v.ta.SetHeight(paneHeight)
}

// IsInputMode reports whether keystrokes belong to the textarea
func (v EditorView) IsInputMode() bool {
	return true
}

func (v *EditorView) openSession(p model.Project) {
	v.project = p
	api := v.app.API
	id := p.ID
	v.sess = session.New(p, func(content string) error {
		_, err := api.UpdateTranslation(context.Background(), id, content)
		return err
	})
	v.original.SetContent(wrapText(p.MarkdownOriginal, v.original.Width))
	v.ta.SetValue(p.MarkdownTranslated)
}

// wrapText hard-wraps document text for the read-only viewport.
func wrapText(s string, width int) string {
	if width <= 0 {
		return s
	}
	return lipgloss.NewStyle().Width(width).Render(s)
}

func (v EditorView) saveCmd() tea.Cmd {
	sess := v.sess
	return func() tea.Msg {
		return editorSavedMsg{err: sess.Flush()}
	}
}

func (v EditorView) generateCmd() tea.Cmd {
	gen := v.app.Generator
	id := v.project.ID
	content := v.ta.Value()
	return func() tea.Msg {
		res, err := gen.Run(context.Background(), id, content)
		return editorGeneratedMsg{result: res, err: err}
	}
}

func (v EditorView) reloadCmd() tea.Cmd {
	api := v.app.API
	id := v.project.ID
	return func() tea.Msg {
		p, err := api.GetProject(context.Background(), id)
		return editorReloadedMsg{project: p, err: err}
	}
}

// Update handles messages
func (v EditorView) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case spinner.TickMsg:
		var cmd tea.Cmd
		v.spin, cmd = v.spin.Update(msg)
		return v, cmd

	case editorTickMsg:
		// Periodic redraw so the debounced save state in the footer stays
		// current without a keypress.
		return v, editorTick()

	case editorLoadedMsg:
		v.loading = false
		if msg.err != nil {
			v.errMsg = fmt.Sprintf("load failed: %v", msg.err)
			return v, nil
		}
		v.openSession(msg.project)
		v.layout()
		return v, nil

	case editorReloadedMsg:
		if msg.err != nil {
			v.errMsg = fmt.Sprintf("reload failed: %v", msg.err)
			return v, nil
		}
		v.errMsg = ""
		v.project = msg.project
		if v.sess != nil && v.sess.ApplyExternal(msg.project.MarkdownTranslated) {
			v.ta.SetValue(msg.project.MarkdownTranslated)
			v.statusMsg = "reloaded from server"
		} else {
			v.statusMsg = "already up to date"
		}
		return v, nil

	case editorSavedMsg:
		if msg.err != nil {
			v.errMsg = fmt.Sprintf("save failed: %v", msg.err)
		} else {
			v.errMsg = ""
			v.statusMsg = "saved"
		}
		return v, nil

	case editorGeneratedMsg:
		v.generating = false
		if msg.err != nil {
			v.errMsg = msg.err.Error()
			return v, nil
		}
		v.errMsg = ""
		if msg.result.Refreshed {
			v.project = msg.result.Project
		}
		v.statusMsg = "PDF generated, opening download"
		return v, nil

	case tea.KeyMsg:
		if v.loading {
			if msg.String() == "esc" {
				return v, func() tea.Msg { return BackRequest{} }
			}
			return v, nil
		}

		switch msg.String() {
		case "esc":
			// Push any pending edit before leaving.
			var cmd tea.Cmd
			if v.sess != nil && v.sess.State().Dirty {
				cmd = v.saveCmd()
			}
			back := func() tea.Msg { return BackRequest{} }
			return v, tea.Batch(cmd, back)

		case "ctrl+s":
			if v.sess == nil {
				return v, nil
			}
			v.statusMsg = ""
			return v, v.saveCmd()

		case "ctrl+g":
			if v.sess == nil || v.generating {
				return v, nil
			}
			v.generating = true
			v.errMsg = ""
			v.statusMsg = ""
			return v, tea.Batch(v.generateCmd(), v.spin.Tick)

		case "ctrl+r":
			if v.sess == nil {
				return v, nil
			}
			v.statusMsg = ""
			return v, v.reloadCmd()

		case "ctrl+v":
			v.mode = (v.mode + 1) % paneModeCount
			v.layout()
			return v, nil
		}

		if v.mode == paneOriginal {
			var cmd tea.Cmd
			v.original, cmd = v.original.Update(msg)
			return v, cmd
		}

		var cmd tea.Cmd
		before := v.ta.Value()
		v.ta, cmd = v.ta.Update(msg)
		if v.sess != nil && v.ta.Value() != before {
			v.sess.ApplyEdit(v.ta.Value())
		}
		return v, cmd
	}

	return v, nil
}

// View renders the editor
func (v EditorView) View() string {
	styles := theme.Current.Styles
	t := theme.Current.Theme

	if v.loading {
		return fmt.Sprintf("%s %s", v.spin.View(),
			styles.Subtitle.Render("loading "+v.project.OriginalFilename+"…"))
	}

	var b strings.Builder
	b.WriteString(styles.Title.Render(v.project.OriginalFilename))
	b.WriteString("  ")
	b.WriteString(styles.LangPair.Render(v.project.LanguagePair()))
	b.WriteString("\n")

	originalPane := lipgloss.JoinVertical(lipgloss.Left,
		styles.PanelTitle.Render("Original"),
		v.original.View(),
	)
	translatedPane := lipgloss.JoinVertical(lipgloss.Left,
		styles.PanelTitle.Render("Translated"),
		v.ta.View(),
	)

	switch v.mode {
	case paneOriginal:
		b.WriteString(originalPane)
	case paneTranslated:
		b.WriteString(translatedPane)
	default:
		b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, originalPane, "  ", translatedPane))
	}
	b.WriteString("\n")
	b.WriteString(v.footer())

	if v.errMsg != "" {
		b.WriteString("\n")
		b.WriteString(lipgloss.NewStyle().Foreground(t.Error).Render(v.errMsg))
	}

	return b.String()
}

// footer shows the save state, the generate state, and the pane mode.
func (v EditorView) footer() string {
	styles := theme.Current.Styles

	var parts []string
	if v.generating {
		parts = append(parts, v.spin.View()+" generating PDF…")
	}
	if v.sess != nil {
		st := v.sess.State()
		switch {
		case st.Err != nil:
			parts = append(parts, fmt.Sprintf("save error: %v", st.Err))
		case st.Saving:
			parts = append(parts, "saving…")
		case st.Dirty:
			parts = append(parts, "unsaved changes")
		case !st.SavedAt.IsZero():
			parts = append(parts, "saved "+st.SavedAt.Format("15:04:05"))
		}
	}
	if v.statusMsg != "" {
		parts = append(parts, v.statusMsg)
	}
	parts = append(parts, styles.StatusKey.Render("pane:")+" "+v.mode.String())

	return styles.StatusBar.Render(styles.StatusValue.Render(strings.Join(parts, " · ")))
}
