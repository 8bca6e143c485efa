package tui

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
)

// MinCardWidth is the minimum character width of a contact card.
const MinCardWidth = 48

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.AdaptiveColor{Light: "4", Dark: "12"})

	labelStyle = lipgloss.NewStyle().
			Foreground(lipgloss.AdaptiveColor{Light: "240", Dark: "245"})

	mutedText = lipgloss.NewStyle().
			Foreground(lipgloss.AdaptiveColor{Light: "240", Dark: "240"})

	nameStyle = lipgloss.NewStyle().Bold(true)
)

// Birthday badge colors: today, within a week, later.
var (
	badgeToday = lipgloss.AdaptiveColor{Light: "1", Dark: "9"}
	badgeSoon  = lipgloss.AdaptiveColor{Light: "208", Dark: "208"}
	badgeLater = lipgloss.AdaptiveColor{Light: "4", Dark: "12"}
)

// BirthdayBadge returns a styled countdown label like "today" or "in 3 days".
func BirthdayBadge(days int) string {
	switch {
	case days == 0:
		return lipgloss.NewStyle().Foreground(badgeToday).Bold(true).Render("today")
	case days == 1:
		return lipgloss.NewStyle().Foreground(badgeSoon).Render("tomorrow")
	case days <= 7:
		return lipgloss.NewStyle().Foreground(badgeSoon).Render(fmt.Sprintf("in %d days", days))
	default:
		return lipgloss.NewStyle().Foreground(badgeLater).Render(fmt.Sprintf("in %d days", days))
	}
}

// CardBorder returns the rounded border style used for each contact card.
func CardBorder() lipgloss.Style {
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.AdaptiveColor{Light: "240", Dark: "240"}).
		Padding(0, 1)
}

// CardWidth returns the card width for a terminal width, at least MinCardWidth.
func CardWidth(totalWidth int) int {
	if totalWidth <= 0 {
		return MinCardWidth
	}
	w := totalWidth - borderChrome
	if w < MinCardWidth {
		w = MinCardWidth
	}
	return w
}
