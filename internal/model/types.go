// Package model defines shared data structures.
package model

import (
	"sort"
	"strings"
)

// DefaultHoursPerDay is used when the notebook config does not set horasPorDia.
const DefaultHoursPerDay = 5.0

// Day is one calendar day of the internship.
type Day struct {
	Date       string   `json:"fecha" validate:"required,datetime=2006-01-02"`
	Attended   bool     `json:"asistido"`
	Hours      float64  `json:"horas" validate:"finite,gte=0"`
	Activities []string `json:"actividades"`
	// Signature is a PNG data URL, nil when no signature was captured.
	Signature *string `json:"firma"`
}

// HasSignature reports whether a signature image is attached.
func (d Day) HasSignature() bool {
	return d.Signature != nil && *d.Signature != ""
}

// Weekdays flags which days of the week get generated.
type Weekdays struct {
	Monday    bool `json:"lunes" toml:"lunes"`
	Tuesday   bool `json:"martes" toml:"martes"`
	Wednesday bool `json:"miercoles" toml:"miercoles"`
	Thursday  bool `json:"jueves" toml:"jueves"`
	Friday    bool `json:"viernes" toml:"viernes"`
	Saturday  bool `json:"sabado" toml:"sabado"`
	Sunday    bool `json:"domingo" toml:"domingo"`
}

// Palette holds the four document colors as #RRGGBB strings.
type Palette struct {
	Primary    string `json:"primary" validate:"omitempty,hexcolor"`
	Secondary  string `json:"secondary" validate:"omitempty,hexcolor"`
	Text       string `json:"text" validate:"omitempty,hexcolor"`
	Background string `json:"background" validate:"omitempty,hexcolor"`
}

// DocumentConfig selects the printable template and its colors.
type DocumentConfig struct {
	Template string  `json:"template"`
	Colors   Palette `json:"colors"`
}

// NotebookConfig holds the notebook settings. Every field is optional.
type NotebookConfig struct {
	CompanyName string          `json:"nombreEmpresa,omitempty"`
	StartDate   string          `json:"fechaInicio,omitempty" validate:"omitempty,datetime=2006-01-02"`
	EndDate     string          `json:"fechaFin,omitempty" validate:"omitempty,datetime=2006-01-02"`
	ActiveDays  *Weekdays       `json:"diasActivos,omitempty"`
	HoursPerDay *float64        `json:"horasPorDia,omitempty" validate:"omitempty,finite,gte=0"`
	Document    *DocumentConfig `json:"pdfConfig,omitempty"`
}

// DefaultHours returns the configured hours per day or DefaultHoursPerDay.
func (c *NotebookConfig) DefaultHours() float64 {
	if c == nil || c.HoursPerDay == nil {
		return DefaultHoursPerDay
	}
	return *c.HoursPerDay
}

// Weekdays returns the active weekdays, falling back to Monday through Friday
// when none are set.
func (c *NotebookConfig) Weekdays() Weekdays {
	if c == nil || c.ActiveDays == nil || c.ActiveDays.None() {
		return DefaultWeekdays()
	}
	return *c.ActiveDays
}

// Notebook is the full record: optional config plus the ordered days.
type Notebook struct {
	Config *NotebookConfig `json:"config,omitempty"`
	Days   []Day           `json:"dias"`
}

// Theme is the UI color scheme.
type Theme string

const (
	ThemeDark  Theme = "dark"
	ThemeLight Theme = "light"
)

// ParseTheme maps a stored value to a theme, defaulting to dark.
func ParseTheme(s string) Theme {
	if Theme(strings.TrimSpace(strings.ToLower(s))) == ThemeLight {
		return ThemeLight
	}
	return ThemeDark
}

// Toggle returns the opposite theme.
func (t Theme) Toggle() Theme {
	if t == ThemeLight {
		return ThemeDark
	}
	return ThemeLight
}

// Clone returns a deep copy so callers can mutate without touching the original.
func (nb Notebook) Clone() Notebook {
	out := Notebook{Days: make([]Day, len(nb.Days))}
	for i, d := range nb.Days {
		out.Days[i] = d.Clone()
	}
	if nb.Config != nil {
		cfg := nb.Config.Clone()
		out.Config = &cfg
	}
	return out
}

// Clone returns a deep copy of the day.
func (d Day) Clone() Day {
	out := d
	if d.Activities != nil {
		out.Activities = append([]string{}, d.Activities...)
	}
	if d.Signature != nil {
		sig := *d.Signature
		out.Signature = &sig
	}
	return out
}

// Clone returns a deep copy of the config.
func (c NotebookConfig) Clone() NotebookConfig {
	out := c
	if c.ActiveDays != nil {
		days := *c.ActiveDays
		out.ActiveDays = &days
	}
	if c.HoursPerDay != nil {
		h := *c.HoursPerDay
		out.HoursPerDay = &h
	}
	if c.Document != nil {
		doc := *c.Document
		out.Document = &doc
	}
	return out
}

// IndexOf returns the index of the day with the given date, or -1.
func (nb Notebook) IndexOf(date string) int {
	for i, d := range nb.Days {
		if d.Date == date {
			return i
		}
	}
	return -1
}

// SortDays orders days chronologically. ISO dates sort lexically.
func SortDays(days []Day) {
	sort.SliceStable(days, func(i, j int) bool {
		return days[i].Date < days[j].Date
	})
}
