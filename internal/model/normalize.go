package model

// DayInput is a day as it arrives from storage or an imported file, where
// any field except the date may be missing.
type DayInput struct {
	Date       string   `json:"fecha" validate:"required,datetime=2006-01-02"`
	Attended   *bool    `json:"asistido,omitempty"`
	Hours      *float64 `json:"horas,omitempty" validate:"omitempty,finite,gte=0"`
	Activities []string `json:"actividades,omitempty"`
	Signature  *string  `json:"firma,omitempty"`
}

// NormalizeDay fills every missing field of in so downstream code can rely on
// a fully populated Day.
func NormalizeDay(in DayInput, defaultHours float64) Day {
	day := Day{
		Date:       in.Date,
		Attended:   true,
		Hours:      defaultHours,
		Activities: CleanActivities(in.Activities),
	}
	if in.Attended != nil {
		day.Attended = *in.Attended
	}
	if in.Hours != nil {
		day.Hours = *in.Hours
	}
	if in.Signature != nil && *in.Signature != "" {
		sig := *in.Signature
		day.Signature = &sig
	}
	return day
}

// NormalizeDays converts inputs into sorted, fully populated days.
func NormalizeDays(inputs []DayInput, cfg *NotebookConfig) []Day {
	defaultHours := cfg.DefaultHours()
	days := make([]Day, 0, len(inputs))
	for _, in := range inputs {
		days = append(days, NormalizeDay(in, defaultHours))
	}
	SortDays(days)
	return days
}

// Normalize re-applies the invariants to an in-memory notebook: activities
// trimmed with blanks dropped, empty signatures cleared and days in date order.
func Normalize(nb Notebook) Notebook {
	out := nb.Clone()
	if out.Days == nil {
		out.Days = []Day{}
	}
	for i := range out.Days {
		out.Days[i].Activities = CleanActivities(out.Days[i].Activities)
		if out.Days[i].Signature != nil && *out.Days[i].Signature == "" {
			out.Days[i].Signature = nil
		}
		if out.Days[i].Hours < 0 {
			out.Days[i].Hours = 0
		}
	}
	SortDays(out.Days)
	return out
}

// Input converts a normalized day back to its optional-field form.
func (d Day) Input() DayInput {
	attended := d.Attended
	hours := d.Hours
	in := DayInput{
		Date:       d.Date,
		Attended:   &attended,
		Hours:      &hours,
		Activities: append([]string{}, d.Activities...),
	}
	if d.Signature != nil {
		sig := *d.Signature
		in.Signature = &sig
	}
	return in
}
