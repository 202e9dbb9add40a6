package tui

import (
	"github.com/charmbracelet/lipgloss"
)

// Palette shared by the browser views.
var (
	ColorHeader    = lipgloss.Color("39")
	ColorLabel     = lipgloss.Color("245")
	ColorValue     = lipgloss.Color("252")
	ColorMuted     = lipgloss.Color("240")
	ColorHighlight = lipgloss.Color("229")
	ColorSelected  = lipgloss.Color("57")
	ColorError     = lipgloss.Color("196")
	ColorOK        = lipgloss.Color("42")
)

// Styles.
var (
	TitleStyle = lipgloss.NewStyle().Foreground(ColorHeader).Bold(true)

	LabelStyle  = lipgloss.NewStyle().Foreground(ColorLabel)
	SubtleStyle = lipgloss.NewStyle().Foreground(ColorMuted)
	InfoStyle   = lipgloss.NewStyle().Foreground(ColorOK)
	ErrorStyle  = lipgloss.NewStyle().Foreground(ColorError).Bold(true)

	TableHeaderStyle = lipgloss.NewStyle().
				BorderStyle(lipgloss.NormalBorder()).
				BorderForeground(ColorMuted).
				BorderBottom(true).
				Bold(true).
				Padding(0, 1)

	TableSelectedStyle = lipgloss.NewStyle().
				Foreground(ColorHighlight).
				Background(ColorSelected)

	StatusBarStyle = lipgloss.NewStyle().Foreground(ColorValue).Padding(0, 1)
)

// Layout defaults used before the first WindowSizeMsg arrives.
const (
	defaultWidth  = 120
	defaultHeight = 30

	// chromeHeight is the number of lines around the table: title, status,
	// notice and help, plus the table header and its border.
	chromeHeight = 6
	minTableRows = 3

	minColumnWidth = 4
	maxColumnWidth = 32
)
