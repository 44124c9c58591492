package styles

import (
	"github.com/charmbracelet/lipgloss"
)

// Layout constants
const (
	// Textarea
	MinTextareaHeight = 2
	MaxTextareaHeight = 8

	// Viewport
	MinViewportHeight = 1

	// Layout
	InputBorderHeight = 2
	HeaderHeight      = 2
	DividerWidth      = 1

	// Split pane: both sides stay usable.
	MinSplitPercent     = 35
	MaxSplitPercent     = 65
	DefaultSplitPercent = 55

	// Confirmation dialog
	ConfirmPaddingHorizontal = 2
	ConfirmPaddingVertical   = 1
)

// Color palette
var (
	PrimaryColor   = lipgloss.Color("#0D9488") // Teal
	SecondaryColor = lipgloss.Color("#06B6D4") // Cyan
	AccentColor    = lipgloss.Color("#F59E0B") // Amber
	SuccessColor   = lipgloss.Color("#10B981") // Green
	ErrorColor     = lipgloss.Color("#EF4444") // Red
	TextColor      = lipgloss.Color("#F9FAFB") // Light gray
	DimTextColor   = lipgloss.Color("#9CA3AF") // Dim gray
	BorderColor    = lipgloss.Color("#4B5563")
	SelectedColor  = lipgloss.Color("#10B981")
)

// Title bar
var (
	TitleStyle = lipgloss.NewStyle().
			Background(PrimaryColor).
			Foreground(TextColor).
			Bold(true)

	StatusStyle = lipgloss.NewStyle().
			Foreground(DimTextColor)
)

// Panes
var (
	PaneStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(BorderColor)

	FocusedPaneStyle = lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				BorderForeground(PrimaryColor)

	PaneTitleStyle = lipgloss.NewStyle().
			Foreground(SecondaryColor).
			Bold(true)
)

// Chat messages
var (
	messageStyle = lipgloss.NewStyle().
			Foreground(TextColor).
			Padding(0, 1).
			Border(lipgloss.RoundedBorder())

	UserMessageStyle = lipgloss.NewStyle().
				Inherit(messageStyle).
				BorderForeground(PrimaryColor).
				MarginLeft(4)

	AssistantMessageStyle = lipgloss.NewStyle().
				Inherit(messageStyle).
				BorderForeground(SecondaryColor).
				MarginRight(4)
)

// Draft editor
var (
	FieldLabelStyle = lipgloss.NewStyle().
			Foreground(DimTextColor)

	FieldValueStyle = lipgloss.NewStyle().
			Foreground(TextColor)

	SelectedRowStyle = lipgloss.NewStyle().
				Foreground(SelectedColor).
				Bold(true)

	ItemPackedStyle = lipgloss.NewStyle().
			Foreground(SuccessColor)

	ItemNotesStyle = lipgloss.NewStyle().
			Foreground(DimTextColor).
			Italic(true)
)

// Input + status
var (
	TextAreaStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(BorderColor)

	SpinnerStyle = lipgloss.NewStyle().
			Foreground(AccentColor)

	HelpStyle = lipgloss.NewStyle().
			Foreground(DimTextColor).
			Italic(true)

	ErrorStyle = lipgloss.NewStyle().
			Foreground(ErrorColor).
			Bold(true)
)

// Confirmation dialogs
var (
	ConfirmBoxStyle = lipgloss.NewStyle().
			Border(lipgloss.DoubleBorder()).
			BorderForeground(AccentColor).
			Padding(ConfirmPaddingVertical, ConfirmPaddingHorizontal)

	ConfirmTitleStyle = lipgloss.NewStyle().
				Foreground(AccentColor).
				Bold(true)

	ConfirmBodyStyle = lipgloss.NewStyle().
			Foreground(TextColor)
)
