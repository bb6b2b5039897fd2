package cli

import (
	"fmt"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/23sarma/Life-os/internal/model"
)

var (
	primary   = lipgloss.Color("#7C3AED")
	secondary = lipgloss.Color("#06B6D4")
	success   = lipgloss.Color("#10B981")
	warning   = lipgloss.Color("#F59E0B")
	muted     = lipgloss.AdaptiveColor{Light: "#737373", Dark: "#737373"}

	titleStyle = lipgloss.NewStyle().
			Foreground(primary).
			Bold(true)

	assistantStyle = lipgloss.NewStyle().
			Foreground(secondary)

	userStyle = lipgloss.NewStyle().
			Foreground(muted)

	statusStyle = lipgloss.NewStyle().
			Foreground(muted).
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#888888")).
			Padding(0, 1)

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#EF4444"))
)

var moodColors = map[model.Mood]lipgloss.TerminalColor{
	model.MoodHappy:    success,
	model.MoodSad:      secondary,
	model.MoodStressed: warning,
	model.MoodNeutral:  muted,
}

func moodLabel(m model.Mood) string {
	c, ok := moodColors[m]
	if !ok {
		c = muted
	}
	return lipgloss.NewStyle().Foreground(c).Bold(true).Render(string(m))
}

// renderStatus formats the status readout shown in chat and by status.
func renderStatus(st model.SystemStatus) string {
	uptime := (time.Duration(st.Uptime) * time.Millisecond).Truncate(time.Second)
	body := fmt.Sprintf("%s  user %s  mood %s  memory %d  learned %d  up %s  health %s",
		titleStyle.Render("LifeOS"),
		st.UserName,
		moodLabel(st.CurrentMood),
		st.MemorySize,
		st.LearningEntries,
		uptime,
		lipgloss.NewStyle().Foreground(success).Render(st.Health),
	)
	return statusStyle.Render(body)
}
