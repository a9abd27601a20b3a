package model

import "strings"

// ParseActivities splits free-form text on line breaks, trims every line and
// drops the blank ones.
func ParseActivities(text string) []string {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	lines := strings.Split(text, "\n")
	out := make([]string, 0, len(lines))
	for _, line := range lines {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		out = append(out, line)
	}
	return out
}

// JoinActivities is the inverse of ParseActivities for lists without blanks.
func JoinActivities(activities []string) string {
	if len(activities) == 0 {
		return ""
	}
	return strings.Join(activities, "\n")
}

// CleanActivities trims entries and removes blank ones. The result is never nil.
func CleanActivities(activities []string) []string {
	out := make([]string, 0, len(activities))
	for _, a := range activities {
		a = strings.TrimSpace(a)
		if a == "" {
			continue
		}
		out = append(out, a)
	}
	return out
}

// FirstEmptyAttendedDay returns the index of the first attended day without
// activities, or -1.
func FirstEmptyAttendedDay(days []Day) int {
	for i, d := range days {
		if d.Attended && len(d.Activities) == 0 {
			return i
		}
	}
	return -1
}
