package report

import (
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"

	"github.com/mattn/go-runewidth"
	"golang.org/x/term"

	"github.com/TermiSenpai/APP-Cuaderno-de-practicas/internal/layout"
	"github.com/TermiSenpai/APP-Cuaderno-de-practicas/internal/model"
)

const (
	sparkChars          = " .:-=+*#%@"
	terminalWidthBackup = 80
	minActivityWidth    = 12
)

// Sparkline renders a single-line ASCII sparkline for the values.
func Sparkline(values []float64) string {
	if len(values) == 0 {
		return ""
	}
	minVal := values[0]
	maxVal := values[0]
	for _, v := range values[1:] {
		if v < minVal {
			minVal = v
		}
		if v > maxVal {
			maxVal = v
		}
	}
	if math.Abs(maxVal-minVal) < 1e-9 {
		return strings.Repeat(string(sparkChars[len(sparkChars)/2]), len(values))
	}
	var b strings.Builder
	for _, v := range values {
		pos := (v - minVal) / (maxVal - minVal)
		idx := int(math.Round(pos * float64(len(sparkChars)-1)))
		if idx < 0 {
			idx = 0
		}
		if idx >= len(sparkChars) {
			idx = len(sparkChars) - 1
		}
		b.WriteByte(sparkChars[idx])
	}
	return b.String()
}

// TerminalWidth returns the width of stdout, or 80 when it is not a terminal.
func TerminalWidth() int {
	width, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || width <= 0 {
		return terminalWidthBackup
	}
	return width
}

// Render prints every section of the report.
func Render(w io.Writer, r Report) error {
	if err := RenderSummary(w, r.Summary); err != nil {
		return err
	}
	if len(r.Weeks) > 0 {
		if _, err := fmt.Fprintln(w); err != nil {
			return err
		}
		if err := RenderWeeks(w, r.Weeks); err != nil {
			return err
		}
	}
	if len(r.Pages) > 0 {
		if _, err := fmt.Fprintln(w); err != nil {
			return err
		}
		return RenderPages(w, r.Pages, r.Template)
	}
	return nil
}

// RenderSummary prints the notebook totals.
func RenderSummary(w io.Writer, s Summary) error {
	if s.Days == 0 {
		_, err := fmt.Fprintln(w, "El cuaderno no tiene días.")
		return err
	}
	company := s.Company
	if company == "" {
		company = "-"
	}
	pending := "ninguno"
	if s.FirstPending != "" {
		pending = model.FormatLongDate(s.FirstPending)
	}
	lines := []string{
		"Resumen",
		"Empresa: " + company,
		"Periodo: " + model.FormatRange(s.Start, s.End),
		fmt.Sprintf("Días: %d (asistidos %d, no asistidos %d)", s.Days, s.Attended, s.Absent),
		"Horas: " + FormatHours(s.Hours),
		fmt.Sprintf("Con actividades: %d/%d", s.WithActivities, s.Attended),
		fmt.Sprintf("Firmados: %d/%d", s.Signed, s.Attended),
		"Primer día pendiente: " + pending,
	}
	for _, line := range lines {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	return nil
}

// RenderWeeks prints hours per ISO week followed by a sparkline.
func RenderWeeks(w io.Writer, weeks []WeekHours) error {
	rows := make([][]string, 0, len(weeks))
	values := make([]float64, 0, len(weeks))
	for _, wk := range weeks {
		rows = append(rows, []string{
			fmt.Sprintf("%d-W%02d", wk.Year, wk.Week),
			model.FormatDDMMYYYY(wk.Start),
			strconv.Itoa(wk.Days),
			FormatHours(wk.Hours),
		})
		values = append(values, wk.Hours)
	}
	lines := formatTable([]string{"Semana", "Desde", "Días", "Horas"}, rows, map[int]bool{2: true, 3: true})
	for _, line := range lines {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	_, err := fmt.Fprintf(w, "Horas por semana: [%s]\n", Sparkline(values))
	return err
}

// RenderPages prints how the days are packed into document pages.
func RenderPages(w io.Writer, pages [][]model.Day, tpl layout.Template) error {
	if _, err := fmt.Fprintf(w, "Plantilla %s: %d hojas (espacio útil %.0f pt)\n", tpl, len(pages), layout.UsableHeight); err != nil {
		return err
	}
	rows := make([][]string, 0, len(pages))
	for i, page := range pages {
		note := ""
		if layout.Overflows(page, tpl) {
			note = "desborda"
		}
		rows = append(rows, []string{
			strconv.Itoa(i + 1),
			strconv.Itoa(len(page)),
			model.FormatDDMMYYYY(page[0].Date),
			model.FormatDDMMYYYY(page[len(page)-1].Date),
			fmt.Sprintf("%.0f", layout.PageHeightOf(page, tpl)),
			note,
		})
	}
	lines := formatTable([]string{"Hoja", "Días", "Desde", "Hasta", "Altura", ""}, rows, map[int]bool{0: true, 1: true, 4: true})
	for _, line := range lines {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	return nil
}

// RenderDays lists the days, truncating the activity column to fit width.
func RenderDays(w io.Writer, days []model.Day, width int) error {
	rows := make([][]string, 0, len(days))
	for _, d := range days {
		attended := "sí"
		if !d.Attended {
			attended = "no"
		}
		signed := ""
		if d.HasSignature() {
			signed = "firmado"
		}
		rows = append(rows, []string{model.FormatLongDate(d.Date), attended, FormatHours(d.Hours), signed, activitySummary(d.Activities)})
	}
	headers := []string{"Fecha", "Asistió", "Horas", "Firma", "Actividades"}
	fixed := 0
	for col := 0; col < len(headers)-1; col++ {
		colWidth := displayWidth(headers[col])
		for _, row := range rows {
			if cw := displayWidth(row[col]); cw > colWidth {
				colWidth = cw
			}
		}
		fixed += colWidth + 2
	}
	avail := width - fixed
	if avail < minActivityWidth {
		avail = minActivityWidth
	}
	for _, row := range rows {
		row[len(row)-1] = runewidth.Truncate(row[len(row)-1], avail, "…")
	}
	for _, line := range formatTable(headers, rows, map[int]bool{2: true}) {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	return nil
}

func activitySummary(activities []string) string {
	switch len(activities) {
	case 0:
		return "-"
	case 1:
		return activities[0]
	default:
		return fmt.Sprintf("%s (+%d)", activities[0], len(activities)-1)
	}
}

// FormatHours prints hours without trailing zeros, e.g. "7.5h".
func FormatHours(h float64) string {
	return strconv.FormatFloat(h, 'f', -1, 64) + "h"
}
