// Package generator builds notebook days from the configured date range.
package generator

import (
	"errors"
	"fmt"

	"github.com/TermiSenpai/APP-Cuaderno-de-practicas/internal/model"
)

var (
	// ErrMissingDates is returned when the start or end date is not configured.
	ErrMissingDates = errors.New("start and end dates must be configured")
	// ErrNoDays is returned when the range contains no active weekday.
	ErrNoDays = errors.New("no days generated; check the dates and active weekdays")
)

// Generate creates one attended, empty day for every active weekday between
// the configured start and end dates, inclusive.
func Generate(cfg *model.NotebookConfig) ([]model.Day, error) {
	if cfg == nil || cfg.StartDate == "" || cfg.EndDate == "" {
		return nil, ErrMissingDates
	}
	start, err := model.ParseDate(cfg.StartDate)
	if err != nil {
		return nil, fmt.Errorf("failed to parse start date: %w", err)
	}
	end, err := model.ParseDate(cfg.EndDate)
	if err != nil {
		return nil, fmt.Errorf("failed to parse end date: %w", err)
	}

	weekdays := cfg.Weekdays()
	hours := cfg.DefaultHours()
	var days []model.Day
	for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
		if !weekdays.Active(d.Weekday()) {
			continue
		}
		days = append(days, model.Day{
			Date:       d.Format(model.DateLayout),
			Attended:   true,
			Hours:      hours,
			Activities: []string{},
		})
	}
	if len(days) == 0 {
		return nil, ErrNoDays
	}
	return days, nil
}

// Merge keeps the recorded content of days that already exist in previous and
// takes every other day from generated. Days outside the generated range are
// dropped.
func Merge(generated, previous []model.Day) []model.Day {
	byDate := make(map[string]model.Day, len(previous))
	for _, d := range previous {
		byDate[d.Date] = d
	}
	out := make([]model.Day, 0, len(generated))
	for _, d := range generated {
		if prev, ok := byDate[d.Date]; ok {
			out = append(out, prev.Clone())
			continue
		}
		out = append(out, d)
	}
	return out
}
