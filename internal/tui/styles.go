package tui

import "github.com/charmbracelet/lipgloss"

// palette is one theme's color set. Three themes match the original app's
// preference: light, dark and sepia.
type palette struct {
	primary   lipgloss.Color
	accent    lipgloss.Color
	muted     lipgloss.Color
	success   lipgloss.Color
	warning   lipgloss.Color
	errorC    lipgloss.Color
	fg        lipgloss.Color
	subtle    lipgloss.Color
	highlight lipgloss.Color
}

var palettes = map[string]palette{
	"dark": {
		primary:   lipgloss.Color("#6C63FF"),
		accent:    lipgloss.Color("#FF6B6B"),
		muted:     lipgloss.Color("#666666"),
		success:   lipgloss.Color("#2ECC71"),
		warning:   lipgloss.Color("#F39C12"),
		errorC:    lipgloss.Color("#E74C3C"),
		fg:        lipgloss.Color("#C0CAF5"),
		subtle:    lipgloss.Color("#414868"),
		highlight: lipgloss.Color("#7AA2F7"),
	},
	"light": {
		primary:   lipgloss.Color("#4C44D4"),
		accent:    lipgloss.Color("#C0392B"),
		muted:     lipgloss.Color("#8A8A8A"),
		success:   lipgloss.Color("#1E8449"),
		warning:   lipgloss.Color("#B9770E"),
		errorC:    lipgloss.Color("#A93226"),
		fg:        lipgloss.Color("#2C3E50"),
		subtle:    lipgloss.Color("#BDC3C7"),
		highlight: lipgloss.Color("#2471A3"),
	},
	"sepia": {
		primary:   lipgloss.Color("#8B5E3C"),
		accent:    lipgloss.Color("#A0522D"),
		muted:     lipgloss.Color("#9C8B7A"),
		success:   lipgloss.Color("#6B8E23"),
		warning:   lipgloss.Color("#B8860B"),
		errorC:    lipgloss.Color("#A0402D"),
		fg:        lipgloss.Color("#5B4636"),
		subtle:    lipgloss.Color("#C8B8A8"),
		highlight: lipgloss.Color("#7A5C3C"),
	},
}

// Styles. Rebuilt by applyTheme; the TUI is single-threaded so reassigning
// package-level styles is safe.
var (
	colorPrimary lipgloss.Color

	activeTabStyle    lipgloss.Style
	inactiveTabStyle  lipgloss.Style
	panelStyle        lipgloss.Style
	activePanelStyle  lipgloss.Style
	titleStyle        lipgloss.Style
	accentStyle       lipgloss.Style
	successStyle      lipgloss.Style
	warningStyle      lipgloss.Style
	errorStyle        lipgloss.Style
	mutedStyle        lipgloss.Style
	highlightStyle    lipgloss.Style
	headerStyle       lipgloss.Style
	footerStyle       lipgloss.Style
	selectedItemStyle lipgloss.Style
	normalItemStyle   lipgloss.Style
)

func init() {
	applyTheme("dark")
}

// applyTheme rebuilds the style set from the named palette. Unknown names
// fall back to dark.
func applyTheme(name string) {
	p, ok := palettes[name]
	if !ok {
		p = palettes["dark"]
	}

	colorPrimary = p.primary

	activeTabStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(p.primary).
		Border(lipgloss.NormalBorder(), false, false, true, false).
		BorderForeground(p.primary).
		Padding(0, 2)

	inactiveTabStyle = lipgloss.NewStyle().
		Foreground(p.muted).
		Padding(0, 2)

	panelStyle = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(p.subtle).
		Padding(1, 2)

	activePanelStyle = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(p.primary).
		Padding(1, 2)

	titleStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(p.fg)

	accentStyle = lipgloss.NewStyle().
		Foreground(p.accent)

	successStyle = lipgloss.NewStyle().
		Foreground(p.success)

	warningStyle = lipgloss.NewStyle().
		Foreground(p.warning)

	errorStyle = lipgloss.NewStyle().
		Foreground(p.errorC)

	mutedStyle = lipgloss.NewStyle().
		Foreground(p.muted)

	highlightStyle = lipgloss.NewStyle().
		Foreground(p.highlight)

	headerStyle = lipgloss.NewStyle().
		Padding(0, 1)

	footerStyle = lipgloss.NewStyle().
		Foreground(p.muted).
		Padding(0, 1)

	selectedItemStyle = lipgloss.NewStyle().
		Foreground(p.primary).
		Bold(true)

	normalItemStyle = lipgloss.NewStyle().
		Foreground(p.fg)
}
