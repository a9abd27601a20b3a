// Package report summarizes a notebook for the command line.
package report

import (
	"github.com/TermiSenpai/APP-Cuaderno-de-practicas/internal/layout"
	"github.com/TermiSenpai/APP-Cuaderno-de-practicas/internal/model"
)

// Summary holds notebook totals. Hours only count attended days.
type Summary struct {
	Company        string
	Start          string
	End            string
	Days           int
	Attended       int
	Absent         int
	Hours          float64
	WithActivities int
	Signed         int
	FirstPending   string
}

// WeekHours aggregates one ISO week.
type WeekHours struct {
	Year  int
	Week  int
	Start string
	Days  int
	Hours float64
}

// Report contains precomputed data for rendering.
type Report struct {
	Summary  Summary
	Weeks    []WeekHours
	Pages    [][]model.Day
	Template layout.Template
}

// Build prepares every section of the report.
func Build(nb model.Notebook, tpl layout.Template) Report {
	return Report{
		Summary:  Summarize(nb),
		Weeks:    WeeklyHours(nb.Days),
		Pages:    layout.Paginate(nb.Days, tpl),
		Template: tpl,
	}
}

// Summarize counts days, hours, activities and signatures.
func Summarize(nb model.Notebook) Summary {
	s := Summary{Days: len(nb.Days)}
	if nb.Config != nil {
		s.Company = nb.Config.CompanyName
		s.Start = nb.Config.StartDate
		s.End = nb.Config.EndDate
	}
	if len(nb.Days) > 0 {
		if s.Start == "" {
			s.Start = nb.Days[0].Date
		}
		if s.End == "" {
			s.End = nb.Days[len(nb.Days)-1].Date
		}
	}
	for _, d := range nb.Days {
		if !d.Attended {
			s.Absent++
			continue
		}
		s.Attended++
		s.Hours += d.Hours
		if len(d.Activities) > 0 {
			s.WithActivities++
		}
		if d.HasSignature() {
			s.Signed++
		}
	}
	if i := model.FirstEmptyAttendedDay(nb.Days); i >= 0 {
		s.FirstPending = nb.Days[i].Date
	}
	return s
}

// WeeklyHours groups attended hours by ISO week, in day order.
func WeeklyHours(days []model.Day) []WeekHours {
	var weeks []WeekHours
	for _, d := range days {
		t, err := model.ParseDate(d.Date)
		if err != nil {
			continue
		}
		year, week := t.ISOWeek()
		if n := len(weeks); n == 0 || weeks[n-1].Year != year || weeks[n-1].Week != week {
			weeks = append(weeks, WeekHours{Year: year, Week: week, Start: d.Date})
		}
		w := &weeks[len(weeks)-1]
		if d.Attended {
			w.Days++
			w.Hours += d.Hours
		}
	}
	return weeks
}
