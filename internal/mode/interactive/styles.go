// ABOUTME: Lipgloss styles for the chat surface: bubbles, notices, quick-reply chips
// ABOUTME: Adaptive colors so the palette reads on both light and dark terminals

package interactive

import (
	"sync"

	"github.com/charmbracelet/lipgloss"
)

// ChatStyles holds the pre-built styles used by View.
type ChatStyles struct {
	Title  lipgloss.Style
	Muted  lipgloss.Style
	Accent lipgloss.Style

	UserLabel  lipgloss.Style
	UserBubble lipgloss.Style
	BotLabel   lipgloss.Style
	System     lipgloss.Style
	Notice     lipgloss.Style

	Chip         lipgloss.Style
	ChipSelected lipgloss.Style
	ChipMatch    lipgloss.Style

	Input lipgloss.Style
}

var (
	stylesOnce sync.Once
	styles     ChatStyles
)

// Styles returns the chat palette, building it on first use.
func Styles() ChatStyles {
	stylesOnce.Do(func() { styles = buildStyles() })
	return styles
}

func buildStyles() ChatStyles {
	accent := lipgloss.AdaptiveColor{Light: "#5A56E0", Dark: "#7D79F6"}
	muted := lipgloss.AdaptiveColor{Light: "#8A8A8A", Dark: "#6C6C6C"}
	userBg := lipgloss.AdaptiveColor{Light: "#E4E2FF", Dark: "#2F2B5C"}
	warn := lipgloss.AdaptiveColor{Light: "#B3261E", Dark: "#FF8A80"}

	return ChatStyles{
		Title:  lipgloss.NewStyle().Bold(true).Foreground(accent),
		Muted:  lipgloss.NewStyle().Foreground(muted),
		Accent: lipgloss.NewStyle().Foreground(accent),

		UserLabel:  lipgloss.NewStyle().Bold(true).Foreground(accent),
		UserBubble: lipgloss.NewStyle().Background(userBg).Padding(0, 1),
		BotLabel:   lipgloss.NewStyle().Bold(true),
		System:     lipgloss.NewStyle().Italic(true).Foreground(muted),
		Notice:     lipgloss.NewStyle().Bold(true).Foreground(warn).Border(lipgloss.NormalBorder(), false, false, false, true).BorderForeground(warn).PaddingLeft(1),

		Chip:         lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(muted).Padding(0, 1),
		ChipSelected: lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(accent).Foreground(accent).Padding(0, 1),
		ChipMatch:    lipgloss.NewStyle().Underline(true),

		Input: lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(muted).Padding(0, 1),
	}
}
