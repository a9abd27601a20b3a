package generator

import (
	"errors"
	"testing"

	"github.com/TermiSenpai/APP-Cuaderno-de-practicas/internal/model"
)

func hoursPtr(h float64) *float64 {
	return &h
}

func TestGenerateRequiresDates(t *testing.T) {
	cases := []*model.NotebookConfig{
		nil,
		{EndDate: "2025-12-31"},
		{StartDate: "2025-01-01"},
	}
	for _, cfg := range cases {
		if _, err := Generate(cfg); !errors.Is(err, ErrMissingDates) {
			t.Fatalf("expected ErrMissingDates, got %v", err)
		}
	}
}

func TestGenerateStartAfterEnd(t *testing.T) {
	_, err := Generate(&model.NotebookConfig{StartDate: "2025-12-31", EndDate: "2025-01-01"})
	if !errors.Is(err, ErrNoDays) {
		t.Fatalf("expected ErrNoDays, got %v", err)
	}
}

func TestGenerateDefaultWeekdays(t *testing.T) {
	days, err := Generate(&model.NotebookConfig{
		StartDate:   "2025-01-06",
		EndDate:     "2025-01-12",
		HoursPerDay: hoursPtr(5),
	})
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if len(days) != 5 {
		t.Fatalf("expected 5 days, got %d", len(days))
	}
	if days[0].Date != "2025-01-06" || days[4].Date != "2025-01-10" {
		t.Fatalf("unexpected range: %s..%s", days[0].Date, days[4].Date)
	}
	for _, d := range days {
		if !d.Attended || d.Hours != 5 || len(d.Activities) != 0 || d.Signature != nil {
			t.Fatalf("unexpected generated day: %+v", d)
		}
	}
}

func TestGenerateRespectsActiveDays(t *testing.T) {
	days, err := Generate(&model.NotebookConfig{
		StartDate:  "2025-01-06",
		EndDate:    "2025-01-12",
		ActiveDays: &model.Weekdays{Monday: true, Wednesday: true, Friday: true},
	})
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	want := []string{"2025-01-06", "2025-01-08", "2025-01-10"}
	if len(days) != len(want) {
		t.Fatalf("expected %d days, got %d", len(want), len(days))
	}
	for i, d := range days {
		if d.Date != want[i] {
			t.Fatalf("day %d: expected %s, got %s", i, want[i], d.Date)
		}
	}
}

func TestGenerateWeekendOnly(t *testing.T) {
	days, err := Generate(&model.NotebookConfig{
		StartDate:  "2025-01-04",
		EndDate:    "2025-01-05",
		ActiveDays: &model.Weekdays{Saturday: true, Sunday: true},
	})
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if len(days) != 2 {
		t.Fatalf("expected 2 days, got %d", len(days))
	}
}

func TestGenerateNoActiveWeekdayInRange(t *testing.T) {
	_, err := Generate(&model.NotebookConfig{StartDate: "2025-01-04", EndDate: "2025-01-05"})
	if !errors.Is(err, ErrNoDays) {
		t.Fatalf("expected ErrNoDays for a weekend-only range with default weekdays, got %v", err)
	}
}

func TestGenerateDefaultHours(t *testing.T) {
	days, err := Generate(&model.NotebookConfig{StartDate: "2025-01-06", EndDate: "2025-01-06"})
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if days[0].Hours != model.DefaultHoursPerDay {
		t.Fatalf("expected %v hours, got %v", model.DefaultHoursPerDay, days[0].Hours)
	}
}

func TestGenerateMultiWeek(t *testing.T) {
	days, err := Generate(&model.NotebookConfig{StartDate: "2025-01-06", EndDate: "2025-01-17"})
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if len(days) != 10 {
		t.Fatalf("expected 10 days, got %d", len(days))
	}
}

func TestGenerateInvalidDate(t *testing.T) {
	if _, err := Generate(&model.NotebookConfig{StartDate: "06/01/2025", EndDate: "2025-01-10"}); err == nil {
		t.Fatalf("expected parse error")
	}
}

func TestMergeKeepsRecordedDays(t *testing.T) {
	generated := []model.Day{{Date: "2025-01-06", Attended: true}, {Date: "2025-01-07", Attended: true}}
	previous := []model.Day{
		{Date: "2025-01-07", Attended: false, Activities: []string{"enfermo"}},
		{Date: "2024-12-31", Attended: true},
	}
	merged := Merge(generated, previous)
	if len(merged) != 2 {
		t.Fatalf("expected 2 days, got %d", len(merged))
	}
	if merged[1].Attended || merged[1].Activities[0] != "enfermo" {
		t.Fatalf("expected recorded day to be kept: %+v", merged[1])
	}
}
