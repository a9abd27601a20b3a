package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/TermiSenpai/APP-Cuaderno-de-practicas/internal/notify"
)

const maxToasts = 3

type tickMsg time.Time

func tick() tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

var toastIcons = map[notify.Kind]string{
	notify.Info:    "ℹ",
	notify.Success: "✓",
	notify.Warning: "⚠",
	notify.Error:   "✗",
}

// renderToasts shows the newest notifications, right aligned.
func renderToasts(st styles, items []notify.Notification, width int) string {
	if len(items) == 0 {
		return ""
	}
	if len(items) > maxToasts {
		items = items[len(items)-maxToasts:]
	}
	boxWidth := minInt(maxInt(20, width/2), 60)
	lines := make([]string, 0, len(items))
	for _, n := range items {
		style, ok := st.toast[n.Kind]
		if !ok {
			style = st.toast[notify.Info]
		}
		text := truncateLine(toastIcons[n.Kind]+" "+n.Message, boxWidth-4)
		lines = append(lines, style.Render(text))
	}
	block := lipgloss.JoinVertical(lipgloss.Right, lines...)
	if width <= 0 {
		return block
	}
	return lipgloss.PlaceHorizontal(width, lipgloss.Right, block)
}
