package model

import (
	"fmt"
	"strings"
	"time"
)

// DateLayout is the ISO 8601 calendar date format used for every stored date.
const DateLayout = "2006-01-02"

var weekdayNamesES = [7]string{"domingo", "lunes", "martes", "miercoles", "jueves", "viernes", "sabado"}

var weekdayLabelsES = [7]string{"Domingo", "Lunes", "Martes", "Miércoles", "Jueves", "Viernes", "Sábado"}

// ParseDate parses a YYYY-MM-DD date at UTC midnight.
func ParseDate(s string) (time.Time, error) {
	t, err := time.ParseInLocation(DateLayout, strings.TrimSpace(s), time.UTC)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q (expected YYYY-MM-DD)", s)
	}
	return t, nil
}

// FormatDDMMYYYY renders an ISO date as DD/MM/YYYY. Unparseable input is
// returned unchanged.
func FormatDDMMYYYY(iso string) string {
	t, err := ParseDate(iso)
	if err != nil {
		return iso
	}
	return t.Format("02/01/2006")
}

// WeekdayES returns the capitalized Spanish weekday label.
func WeekdayES(t time.Time) string {
	return weekdayLabelsES[t.Weekday()]
}

// FormatLongDate renders "lunes, 06/01/2025".
func FormatLongDate(iso string) string {
	t, err := ParseDate(iso)
	if err != nil {
		return iso
	}
	return strings.ToLower(WeekdayES(t)) + ", " + t.Format("02/01/2006")
}

// FormatRange renders "DD/MM/YYYY - DD/MM/YYYY".
func FormatRange(start, end string) string {
	return FormatDDMMYYYY(start) + " - " + FormatDDMMYYYY(end)
}

// DefaultWeekdays returns Monday through Friday.
func DefaultWeekdays() Weekdays {
	return Weekdays{Monday: true, Tuesday: true, Wednesday: true, Thursday: true, Friday: true}
}

// None reports whether no weekday is enabled.
func (w Weekdays) None() bool {
	return !w.Monday && !w.Tuesday && !w.Wednesday && !w.Thursday && !w.Friday && !w.Saturday && !w.Sunday
}

// Active reports whether the weekday is enabled.
func (w Weekdays) Active(day time.Weekday) bool {
	switch day {
	case time.Monday:
		return w.Monday
	case time.Tuesday:
		return w.Tuesday
	case time.Wednesday:
		return w.Wednesday
	case time.Thursday:
		return w.Thursday
	case time.Friday:
		return w.Friday
	case time.Saturday:
		return w.Saturday
	default:
		return w.Sunday
	}
}

// Set enables or disables a weekday.
func (w *Weekdays) Set(day time.Weekday, on bool) {
	switch day {
	case time.Monday:
		w.Monday = on
	case time.Tuesday:
		w.Tuesday = on
	case time.Wednesday:
		w.Wednesday = on
	case time.Thursday:
		w.Thursday = on
	case time.Friday:
		w.Friday = on
	case time.Saturday:
		w.Saturday = on
	default:
		w.Sunday = on
	}
}

// Names lists the enabled weekdays from Monday to Sunday using their
// unaccented Spanish keys.
func (w Weekdays) Names() []string {
	var out []string
	for _, day := range WeekOrder() {
		if w.Active(day) {
			out = append(out, weekdayNamesES[day])
		}
	}
	return out
}

// WeekOrder lists weekdays starting on Monday.
func WeekOrder() []time.Weekday {
	return []time.Weekday{time.Monday, time.Tuesday, time.Wednesday, time.Thursday, time.Friday, time.Saturday, time.Sunday}
}

// WeekdayName returns the unaccented Spanish key for a weekday.
func WeekdayName(day time.Weekday) string {
	return weekdayNamesES[day]
}

// ParseWeekdays parses a comma separated list such as "lunes,miercoles".
// Accented spellings are accepted.
func ParseWeekdays(s string) (Weekdays, error) {
	var w Weekdays
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(strings.ToLower(part))
		if part == "" {
			continue
		}
		part = strings.NewReplacer("é", "e", "á", "a").Replace(part)
		found := false
		for i, name := range weekdayNamesES {
			if name == part {
				w.Set(time.Weekday(i), true)
				found = true
				break
			}
		}
		if !found {
			return Weekdays{}, fmt.Errorf("unknown weekday %q (use lunes..domingo)", part)
		}
	}
	return w, nil
}
