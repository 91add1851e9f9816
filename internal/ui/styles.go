package ui

import "github.com/charmbracelet/lipgloss"

// Colors used in the application.
var (
	colorPrimary   = lipgloss.Color("62")  // Purple
	colorSecondary = lipgloss.Color("241") // Gray
	colorMuted     = lipgloss.Color("240") // Darker gray
	colorHighlight = lipgloss.Color("212") // Pink
	colorGold      = lipgloss.Color("220")
	colorError     = lipgloss.Color("196")
)

// Title is the app name in the header.
var Title = lipgloss.NewStyle().
	Bold(true).
	Foreground(colorHighlight).
	Padding(0, 1)

// ControlLabel styles "Genre" and "Min rating".
var ControlLabel = lipgloss.NewStyle().
	Foreground(colorSecondary).
	PaddingLeft(1)

// ControlValue styles the selected genre and rating.
var ControlValue = lipgloss.NewStyle().
	Bold(true).
	Foreground(lipgloss.Color("255"))

// ControlDisabled is the failed-to-load genre placeholder.
var ControlDisabled = lipgloss.NewStyle().
	Foreground(colorMuted).
	Italic(true)

// SliderFill and SliderTrack draw the rating bar.
var (
	SliderFill  = lipgloss.NewStyle().Foreground(colorGold)
	SliderTrack = lipgloss.NewStyle().Foreground(colorMuted)
)

// Ticket is the stub consumed by the clapperboard.
var Ticket = lipgloss.NewStyle().
	Foreground(lipgloss.Color("230")).
	Background(lipgloss.Color("94")).
	Padding(0, 1).
	MarginLeft(1)

// TicketEaten is what is left of the ticket while clapped.
var TicketEaten = lipgloss.NewStyle().
	Foreground(colorMuted).
	MarginLeft(1)

// ClapperPanel frames the clapperboard.
var ClapperPanel = lipgloss.NewStyle().
	Border(lipgloss.ThickBorder()).
	BorderForeground(lipgloss.Color("255")).
	Padding(0, 2).
	MarginLeft(2)

// Clapperboard arm and labels.
var (
	ClapperArmOpen = lipgloss.NewStyle().Foreground(lipgloss.Color("250"))
	ClapperArmShut = lipgloss.NewStyle().Foreground(lipgloss.Color("255")).Bold(true)
	ClapperLabel   = lipgloss.NewStyle().Foreground(colorSecondary).Bold(true)
)

// SortBar holds the three sort buttons.
var SortBar = lipgloss.NewStyle().
	MarginTop(1).
	MarginBottom(1).
	PaddingLeft(1)

// SortButton and SortButtonActive style the sort buttons.
var (
	SortButton = lipgloss.NewStyle().
			Foreground(colorSecondary).
			Padding(0, 1).
			MarginRight(1)
	SortButtonActive = lipgloss.NewStyle().
				Bold(true).
				Foreground(lipgloss.Color("255")).
				Background(colorPrimary).
				Padding(0, 1).
				MarginRight(1)
)

// ClusterHeader styles "Cluster N (avg rating: X.X)".
var ClusterHeader = lipgloss.NewStyle().
	Bold(true).
	Foreground(colorHighlight).
	MarginTop(1).
	Padding(0, 1)

// Card frames one item.
var Card = lipgloss.NewStyle().
	Border(lipgloss.RoundedBorder()).
	BorderForeground(colorMuted).
	Padding(0, 1)

// Card contents.
var (
	CardPoster = lipgloss.NewStyle().Foreground(colorMuted).Underline(true)
	CardTitle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("255"))
	CardRating = lipgloss.NewStyle().Foreground(colorGold)
	CardGenres = lipgloss.NewStyle().Foreground(colorSecondary)
)

// NoResults is the empty-result message.
var NoResults = lipgloss.NewStyle().
	Foreground(colorSecondary).
	Padding(1, 2)

// ErrorBanner is the full-width request failure message.
var ErrorBanner = lipgloss.NewStyle().
	Foreground(colorError).
	Bold(true).
	Padding(1, 2)

// HelpStyle for the idle hint.
var HelpStyle = lipgloss.NewStyle().
	Foreground(colorMuted).
	Padding(1, 2)

// StatusBar style for the bottom status bar.
var StatusBar = lipgloss.NewStyle().
	Foreground(lipgloss.Color("255")).
	Background(lipgloss.Color("236")).
	Padding(0, 1)

// StatusBarKey style for key hints in status bar.
var StatusBarKey = lipgloss.NewStyle().
	Foreground(colorHighlight).
	Bold(true)

// StatusBarText style for descriptive text in status bar.
var StatusBarText = lipgloss.NewStyle().
	Foreground(colorSecondary)

// DebugPanel frames the debug overlay.
var DebugPanel = lipgloss.NewStyle().
	Border(lipgloss.RoundedBorder()).
	BorderForeground(colorPrimary).
	Padding(1, 2)

// DebugHeaderStyle titles debug overlay sections.
var DebugHeaderStyle = lipgloss.NewStyle().
	Bold(true).
	Foreground(colorHighlight)
