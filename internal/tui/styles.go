package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/TermiSenpai/APP-Cuaderno-de-practicas/internal/model"
	"github.com/TermiSenpai/APP-Cuaderno-de-practicas/internal/notify"
)

type colors struct {
	text   lipgloss.Color
	muted  lipgloss.Color
	accent lipgloss.Color
	border lipgloss.Color
	ok     lipgloss.Color
	warn   lipgloss.Color
	bad    lipgloss.Color
	info   lipgloss.Color
}

var (
	darkColors = colors{
		text:   lipgloss.Color("#F0F0F0"),
		muted:  lipgloss.Color("#8C8C8C"),
		accent: lipgloss.Color("#C89A3A"),
		border: lipgloss.Color("#4A4A4A"),
		ok:     lipgloss.Color("#52C41A"),
		warn:   lipgloss.Color("#FAAD14"),
		bad:    lipgloss.Color("#FF4D4F"),
		info:   lipgloss.Color("#40A9FF"),
	}
	lightColors = colors{
		text:   lipgloss.Color("#1F1F1F"),
		muted:  lipgloss.Color("#6E6E6E"),
		accent: lipgloss.Color("#2563EB"),
		border: lipgloss.Color("#BFBFBF"),
		ok:     lipgloss.Color("#237804"),
		warn:   lipgloss.Color("#AD6800"),
		bad:    lipgloss.Color("#CF1322"),
		info:   lipgloss.Color("#0958D9"),
	}
)

type styles struct {
	title        lipgloss.Style
	header       lipgloss.Style
	text         lipgloss.Style
	muted        lipgloss.Style
	card         lipgloss.Style
	cardSelected lipgloss.Style
	date         lipgloss.Style
	attended     lipgloss.Style
	absent       lipgloss.Style
	signed       lipgloss.Style
	modal        lipgloss.Style
	modalTitle   lipgloss.Style
	errorText    lipgloss.Style
	selected     lipgloss.Style
	toast        map[notify.Kind]lipgloss.Style
}

func newStyles(theme model.Theme) styles {
	c := darkColors
	if theme == model.ThemeLight {
		c = lightColors
	}
	toastBase := lipgloss.NewStyle().Padding(0, 1).Border(lipgloss.RoundedBorder(), true)
	return styles{
		title:  lipgloss.NewStyle().Foreground(c.accent).Bold(true),
		header: lipgloss.NewStyle().Foreground(c.muted),
		text:   lipgloss.NewStyle().Foreground(c.text),
		muted:  lipgloss.NewStyle().Foreground(c.muted),
		card: lipgloss.NewStyle().
			Padding(0, 1).
			Border(lipgloss.RoundedBorder(), true).
			BorderForeground(c.border),
		cardSelected: lipgloss.NewStyle().
			Padding(0, 1).
			Border(lipgloss.RoundedBorder(), true).
			BorderForeground(c.accent),
		date:     lipgloss.NewStyle().Foreground(c.text).Bold(true),
		attended: lipgloss.NewStyle().Foreground(c.ok),
		absent:   lipgloss.NewStyle().Foreground(c.bad),
		signed:   lipgloss.NewStyle().Foreground(c.info),
		modal: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder(), true).
			BorderForeground(c.accent).
			Padding(1, 2),
		modalTitle: lipgloss.NewStyle().Foreground(c.text).Bold(true),
		errorText:  lipgloss.NewStyle().Foreground(c.bad),
		selected:   lipgloss.NewStyle().Foreground(c.accent).Bold(true),
		toast: map[notify.Kind]lipgloss.Style{
			notify.Info:    toastBase.Foreground(c.info).BorderForeground(c.info),
			notify.Success: toastBase.Foreground(c.ok).BorderForeground(c.ok),
			notify.Warning: toastBase.Foreground(c.warn).BorderForeground(c.warn),
			notify.Error:   toastBase.Foreground(c.bad).BorderForeground(c.bad),
		},
	}
}
