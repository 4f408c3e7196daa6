package ui

import (
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/seojin/pdflate/internal/app"
	"github.com/seojin/pdflate/internal/ui/theme"
	"github.com/seojin/pdflate/internal/ui/views"
)

// Debug logging (enable by setting PDFLATE_DEBUG=1)
var rootDebugLog *os.File

func init() {
	if os.Getenv("PDFLATE_DEBUG") == "1" {
		rootDebugLog, _ = os.OpenFile("/tmp/pdflate-root-debug.log", os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	}
}

func rootDebugf(format string, args ...interface{}) {
	if rootDebugLog != nil {
		fmt.Fprintf(rootDebugLog, format+"\n", args...)
		rootDebugLog.Sync()
	}
}

// RootModel is the main application model that manages views
type RootModel struct {
	app    *app.App
	keys   KeyMap
	width  int
	height int

	currentView   View
	dashboardView views.DashboardView
	uploadView    views.UploadView
	editorView    views.EditorView
	helpVisible   bool

	// Status message
	statusMsg string
	errorMsg  string
}

// NewRootModel creates a new root model
func NewRootModel(application *app.App) RootModel {
	return RootModel{
		app:           application,
		keys:          DefaultKeyMap(),
		currentView:   ViewDashboard,
		dashboardView: views.NewDashboardView(application),
		uploadView:    views.NewUploadView(application),
	}
}

// Init initializes the model
func (m RootModel) Init() tea.Cmd {
	cmd := m.dashboardView.Init()
	rootDebugf("RootModel.Init() returning cmd: %v", cmd != nil)
	return cmd
}

// Update handles messages
func (m RootModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd
	rootDebugf("RootModel.Update received msg type: %T", msg)

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

		// Update child views with new size
		// Reserve space for header (2 lines) and footer (2 lines)
		contentHeight := m.height - 4
		m.dashboardView = m.dashboardView.SetSize(m.width, contentHeight)
		m.uploadView = m.uploadView.SetSize(m.width, contentHeight)
		m.editorView = m.editorView.SetSize(m.width, contentHeight)

	case tea.KeyMsg:
		// Clear status/error on any keypress
		m.statusMsg = ""
		m.errorMsg = ""

		// Check if current view is in input mode
		isInputMode := false
		switch m.currentView {
		case ViewDashboard:
			isInputMode = m.dashboardView.IsInputMode()
		case ViewUpload:
			isInputMode = m.uploadView.IsInputMode()
		case ViewEditor:
			isInputMode = m.editorView.IsInputMode()
		}

		// Global keybindings
		switch {
		case key.Matches(msg, m.keys.Quit):
			// ctrl+c always quits, but 'q' only quits when not in input mode
			if msg.String() == "ctrl+c" || !isInputMode {
				return m, tea.Quit
			}
			// Otherwise, let the view handle 'q' as a character

		case key.Matches(msg, m.keys.ThemeCycle):
			// ctrl+t always works (unlikely to type)
			m.cycleTheme()
			return m, nil
		}

		// Skip other global keys when in input mode
		if isInputMode {
			break // Fall through to view delegation
		}

		// These only work when NOT in input mode
		switch {
		case key.Matches(msg, m.keys.Help):
			m.helpVisible = !m.helpVisible
			return m, nil

		case key.Matches(msg, m.keys.DashboardView):
			m.currentView = ViewDashboard
			return m, m.dashboardView.Init() // Reload projects when switching
		case key.Matches(msg, m.keys.UploadView):
			m.currentView = ViewUpload
			m.uploadView = m.uploadView.Reset()
			return m, m.uploadView.Init()
		}

	case ErrorMsg:
		m.errorMsg = msg.Err.Error()
		return m, nil

	case StatusMsg:
		m.statusMsg = msg.Message
		return m, nil

	case ThemeChangedMsg:
		m.statusMsg = fmt.Sprintf("Theme: %s", msg.ThemeName)
		return m, nil

	case views.OpenUploadRequest:
		m.currentView = ViewUpload
		m.uploadView = m.uploadView.Reset()
		return m, m.uploadView.Init()

	case views.OpenEditorRequest:
		m.editorView = views.NewEditorView(m.app, msg.Project).SetSize(m.width, m.height-4)
		m.currentView = ViewEditor
		return m, m.editorView.Init()

	case views.UploadedRequest:
		m.currentView = ViewDashboard
		m.statusMsg = fmt.Sprintf("Uploaded %s", msg.Project.OriginalFilename)
		return m, m.dashboardView.Init()

	case views.BackRequest:
		m.currentView = ViewDashboard
		return m, m.dashboardView.Init()
	}

	// Delegate to current view
	rootDebugf("Delegating to view: %v", m.currentView)
	switch m.currentView {
	case ViewDashboard:
		newDashboard, cmd := m.dashboardView.Update(msg)
		m.dashboardView = newDashboard.(views.DashboardView)
		cmds = append(cmds, cmd)
	case ViewUpload:
		newUpload, cmd := m.uploadView.Update(msg)
		m.uploadView = newUpload.(views.UploadView)
		cmds = append(cmds, cmd)
	case ViewEditor:
		newEditor, cmd := m.editorView.Update(msg)
		m.editorView = newEditor.(views.EditorView)
		cmds = append(cmds, cmd)
	}

	return m, tea.Batch(cmds...)
}

// View renders the UI
func (m RootModel) View() string {
	if m.width == 0 || m.height == 0 {
		return "Loading..."
	}

	var sections []string

	// Header
	sections = append(sections, m.renderHeader())

	// Content area
	// Reserve: 1 line for header + 3 lines for footer (status + 2 hint lines)
	contentHeight := m.height - 4
	if m.errorMsg != "" || m.statusMsg != "" {
		contentHeight-- // Extra line for status message
	}
	var content string

	if m.helpVisible {
		content = m.renderHelp()
	} else {
		switch m.currentView {
		case ViewDashboard:
			content = m.dashboardView.View()
		case ViewUpload:
			content = m.uploadView.View()
		case ViewEditor:
			content = m.editorView.View()
		default:
			content = theme.Current.Styles.Panel.Render("View not implemented")
		}
	}

	// Ensure content fills available space
	contentLines := strings.Count(content, "\n") + 1
	if contentLines < contentHeight {
		content += strings.Repeat("\n", contentHeight-contentLines)
	}
	sections = append(sections, content)

	// Footer
	sections = append(sections, m.renderFooter())

	return strings.Join(sections, "\n")
}

// renderHeader renders the header bar
func (m RootModel) renderHeader() string {
	styles := theme.Current.Styles
	t := theme.Current.Theme

	title := styles.Header.Render("pdflate")

	viewStyle := lipgloss.NewStyle().
		Foreground(t.Subtle).
		Padding(0, 1)
	viewIndicator := viewStyle.Render(fmt.Sprintf("[%s]", m.currentView.String()))

	serverIndicator := viewStyle.Render(m.app.Config.ServerURL)
	themeIndicator := viewStyle.Render(fmt.Sprintf("theme: %s", t.Name))

	leftSide := lipgloss.JoinHorizontal(lipgloss.Center, title, viewIndicator)
	rightSide := lipgloss.JoinHorizontal(lipgloss.Center, serverIndicator, themeIndicator)

	gap := m.width - lipgloss.Width(leftSide) - lipgloss.Width(rightSide)
	if gap < 0 {
		gap = 0
	}

	return leftSide + strings.Repeat(" ", gap) + rightSide
}

// renderFooter renders the footer/status bar
func (m RootModel) renderFooter() string {
	styles := theme.Current.Styles
	t := theme.Current.Theme

	key := func(k, desc string) string {
		return styles.HelpKey.Render(k) + styles.HelpDesc.Render(" "+desc)
	}
	sep := styles.HelpSeparator.Render(" │ ")

	// Show error or status message on first line if present
	var statusLine string
	if m.errorMsg != "" {
		statusLine = lipgloss.NewStyle().Foreground(t.Error).Render(m.errorMsg)
	} else if m.statusMsg != "" {
		statusLine = lipgloss.NewStyle().Foreground(t.Info).Render(m.statusMsg)
	}

	// Context-aware hint lines
	var line1, line2 string

	switch m.currentView {
	case ViewDashboard:
		if m.dashboardView.IsInputMode() {
			line1 = key("enter/y", "confirm delete") + sep + key("esc/n", "cancel")
			line2 = ""
		} else {
			line1 = key("u", "upload") + sep +
				key("enter", "edit") + sep +
				key("d", "delete") + sep +
				key("r", "refresh") + sep +
				key("o", "open pdf")
			line2 = key("j/k", "navigate") + sep +
				key("1/2", "views") + sep +
				key("ctrl+t", "theme") + sep +
				key("?", "help")
		}

	case ViewUpload:
		line1 = key("enter", "upload") + sep +
			key("tab", "next field") + sep +
			key("esc", "back")
		line2 = ""

	case ViewEditor:
		line1 = key("ctrl+s", "save") + sep +
			key("ctrl+g", "generate pdf") + sep +
			key("ctrl+r", "reload") + sep +
			key("ctrl+v", "panes")
		line2 = key("esc", "back") + sep +
			key("ctrl+t", "theme") + sep +
			key("ctrl+c", "quit")

	default:
		line1 = key("1-2", "views") + sep + key("?", "help")
	}

	var lines []string
	if statusLine != "" {
		lines = append(lines, statusLine)
	}
	if line1 != "" {
		lines = append(lines, line1)
	}
	if line2 != "" {
		lines = append(lines, line2)
	}

	return strings.Join(lines, "\n")
}

// renderHelp renders the help overlay
func (m RootModel) renderHelp() string {
	t := theme.Current.Theme

	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(t.Primary).
		MarginBottom(1)

	sectionStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(t.Secondary).
		MarginTop(1)

	keyStyle := lipgloss.NewStyle().
		Foreground(t.Foreground).
		Bold(true).
		Width(12)

	descStyle := lipgloss.NewStyle().
		Foreground(t.Subtle)

	var b strings.Builder

	b.WriteString(titleStyle.Render("pdflate Help"))
	b.WriteString("\n\n")

	section := func(title string, rows [][]string) {
		b.WriteString(sectionStyle.Render(title))
		b.WriteString("\n")
		for _, kv := range rows {
			b.WriteString(keyStyle.Render(kv[0]))
			b.WriteString(descStyle.Render(kv[1]))
			b.WriteString("\n")
		}
	}

	section("Projects", [][]string{
		{"↑/k ↓/j", "Navigate up/down"},
		{"g / G", "Go to top/bottom"},
		{"r", "Refresh list"},
		{"u / a", "Upload a new PDF"},
		{"enter", "Open in editor (when ready)"},
		{"d", "Delete project (confirm)"},
		{"o", "Open generated PDF"},
	})

	section("Editor", [][]string{
		{"ctrl+s", "Save translation now"},
		{"ctrl+g", "Generate and download PDF"},
		{"ctrl+r", "Reload from server"},
		{"ctrl+v", "Cycle panes (split/original/translated)"},
		{"esc", "Back to projects"},
	})

	section("Views", [][]string{
		{"1", "Projects dashboard"},
		{"2", "Upload form"},
		{"?", "Toggle this help"},
	})

	section("System", [][]string{
		{"ctrl+t", "Cycle theme"},
		{"q / ctrl+c", "Quit"},
	})

	b.WriteString("\n")
	b.WriteString(descStyle.Render("Press ? to close"))

	return b.String()
}

// cycleTheme cycles through available themes
func (m *RootModel) cycleTheme() {
	themes := theme.Available()
	current := theme.Current.Theme.Name

	for i, t := range themes {
		if t.Name == current {
			next := themes[(i+1)%len(themes)]
			theme.SetTheme(next)
			m.statusMsg = fmt.Sprintf("Theme: %s", next.Name)
			return
		}
	}
}
