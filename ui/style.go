package ui

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"

	"curseforge-client/curseforge"
)

var (
	Title   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#F16436"))
	Subtle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#888888"))
	Success = lipgloss.NewStyle().Foreground(lipgloss.Color("#2ECC71"))
	Warning = lipgloss.NewStyle().Foreground(lipgloss.Color("#F1C40F"))
	Failure = lipgloss.NewStyle().Foreground(lipgloss.Color("#E74C3C"))
)

// releaseColors follows the colors the CurseForge site uses for release badges.
var releaseColors = map[curseforge.FileReleaseType]int{
	curseforge.Release: 0x14b866,
	curseforge.Beta:    0x0e9bd8,
	curseforge.Alpha:   0xd3cae8,
}

// Colorize applies the given RGB color to text.
func Colorize(text string, color int) string {
	hexColor := fmt.Sprintf("#%06x", color)
	style := lipgloss.NewStyle().Foreground(lipgloss.Color(hexColor))
	return style.Render(text)
}

// ReleaseBadge renders the release type of a file, e.g. "[beta]".
func ReleaseBadge(t curseforge.FileReleaseType) string {
	color, ok := releaseColors[t]
	if !ok {
		color = 0x888888
	}
	return Colorize("["+t.String()+"]", color)
}
