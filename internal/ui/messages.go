package ui

// View represents the current active view
type View int

const (
	ViewDashboard View = iota
	ViewUpload
	ViewEditor
	ViewHelp
)

// String returns the display name for a view
func (v View) String() string {
	switch v {
	case ViewDashboard:
		return "Projects"
	case ViewUpload:
		return "Upload"
	case ViewEditor:
		return "Editor"
	case ViewHelp:
		return "Help"
	default:
		return "Unknown"
	}
}

// Messages for inter-component communication

// ErrorMsg contains an error to display
type ErrorMsg struct {
	Err error
}

// StatusMsg contains a status message to display
type StatusMsg struct {
	Message string
}

// ThemeChangedMsg indicates the theme was changed
type ThemeChangedMsg struct {
	ThemeName string
}
