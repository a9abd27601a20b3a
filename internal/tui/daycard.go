package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/TermiSenpai/APP-Cuaderno-de-practicas/internal/model"
	"github.com/TermiSenpai/APP-Cuaderno-de-practicas/internal/report"
)

const emptyActivities = "Sin actividades registradas"

// renderDayCard draws one day. body replaces the activity list while the
// day is being edited.
func renderDayCard(st styles, day model.Day, selected bool, width int, body string) string {
	box := st.card
	if selected {
		box = st.cardSelected
	}
	inner := maxInt(10, width-box.GetHorizontalFrameSize())

	badge := st.absent.Render("✗ No asistido")
	if day.Attended {
		badge = st.attended.Render("✓ Asistido")
	}
	sig := st.muted.Render("Sin firma")
	if day.HasSignature() {
		sig = st.signed.Render("✍ Firmado")
	}
	head := strings.Join([]string{
		st.date.Render(model.FormatLongDate(day.Date)),
		badge,
		st.text.Render("Horas: " + report.FormatHours(day.Hours)),
		sig,
	}, "  ")

	if body == "" {
		activities := model.CleanActivities(day.Activities)
		if len(activities) == 0 {
			body = st.muted.Italic(true).Render(emptyActivities)
		} else {
			body = st.text.Render(strings.Join(bulletLines(activities, inner), "\n"))
		}
	}
	head = lipgloss.NewStyle().MaxWidth(inner).Render(head)
	return box.Width(inner + box.GetHorizontalPadding()).Render(head + "\n" + body)
}

// renderHeader shows the notebook title line and the running totals.
func renderHeader(st styles, cfg model.NotebookConfig, days []model.Day, width int) string {
	company := cfg.CompanyName
	if company == "" {
		company = "Centro de Trabajo"
	}
	title := st.title.Render("Cuaderno de prácticas") + "  " + st.text.Render(company)
	if cfg.StartDate != "" && cfg.EndDate != "" {
		title += "  " + st.muted.Render(model.FormatRange(cfg.StartDate, cfg.EndDate))
	}
	attended, hours := 0, 0.0
	for _, d := range days {
		if d.Attended {
			attended++
			hours += d.Hours
		}
	}
	pending := "ninguno"
	if i := model.FirstEmptyAttendedDay(days); i >= 0 {
		pending = model.FormatDDMMYYYY(days[i].Date)
	}
	totals := fmt.Sprintf("%d días · %d asistidos · %s · primer día sin actividades: %s",
		len(days), attended, report.FormatHours(hours), pending)
	return lipgloss.JoinVertical(lipgloss.Left,
		lipgloss.NewStyle().MaxWidth(width).Render(title),
		st.header.Render(truncateLine(totals, width)),
	)
}
