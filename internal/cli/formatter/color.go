package formatter

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/chantier/internal/domain"
	"github.com/charmbracelet/lipgloss"
)

// Gruvbox-inspired color palette.
var (
	ColorGreen  = lipgloss.Color("#8ec07c")
	ColorYellow = lipgloss.Color("#fabd2f")
	ColorRed    = lipgloss.Color("#fb4934")
	ColorBlue   = lipgloss.Color("#83a598")
	ColorPurple = lipgloss.Color("#d3869b")
	ColorDim    = lipgloss.Color("#928374")
	ColorFg     = lipgloss.Color("#ebdbb2")
	ColorHeader = lipgloss.Color("#fe8019")
)

// Predefined lipgloss styles.
var (
	StyleGreen  = lipgloss.NewStyle().Foreground(ColorGreen)
	StyleYellow = lipgloss.NewStyle().Foreground(ColorYellow)
	StyleRed    = lipgloss.NewStyle().Foreground(ColorRed)
	StyleBlue   = lipgloss.NewStyle().Foreground(ColorBlue)
	StylePurple = lipgloss.NewStyle().Foreground(ColorPurple)
	StyleDim    = lipgloss.NewStyle().Foreground(ColorDim)
	StyleFg     = lipgloss.NewStyle().Foreground(ColorFg)
	StyleHeader = lipgloss.NewStyle().Foreground(ColorHeader).Bold(true)
	StyleBold   = lipgloss.NewStyle().Foreground(ColorFg).Bold(true)
)

// ChangeKindStyle returns the style used for a history change kind.
func ChangeKindStyle(kind domain.ChangeKind) lipgloss.Style {
	switch kind {
	case domain.ChangeCreate:
		return StyleGreen
	case domain.ChangeDelete:
		return StyleRed
	case domain.ChangeDateChange, domain.ChangeDurationChange:
		return StyleYellow
	case domain.ChangeAssigneeChange:
		return StyleBlue
	case domain.ChangeBudgetChange:
		return StylePurple
	default:
		return StyleDim
	}
}

// ChangeKindBadge renders a change kind as a short colored label such as "● DATES".
func ChangeKindBadge(kind domain.ChangeKind) string {
	var label string
	switch kind {
	case domain.ChangeCreate:
		label = "CREATED"
	case domain.ChangeDelete:
		label = "DELETED"
	case domain.ChangeDateChange:
		label = "DATES"
	case domain.ChangeDurationChange:
		label = "DURATION"
	case domain.ChangeAssigneeChange:
		label = "ASSIGNEE"
	case domain.ChangeBudgetChange:
		label = "BUDGET"
	default:
		label = "UPDATED"
	}
	return ChangeKindStyle(kind).Render("● " + label)
}

// Header renders a section header with the orange header style and an underline.
func Header(text string) string {
	upper := strings.ToUpper(text)
	line := strings.Repeat("─", lipgloss.Width(upper))
	return fmt.Sprintf("%s\n%s", StyleHeader.Render(upper), StyleDim.Render(line))
}

// Dim renders text in the muted/dim color.
func Dim(text string) string {
	return StyleDim.Render(text)
}

// Bold renders text in bold with the foreground color.
func Bold(text string) string {
	return StyleBold.Render(text)
}
