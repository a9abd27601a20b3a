package document

import (
	"strings"
	"time"
)

// Filename suggests "<empresa>-practicas-<fecha>.pdf". The company name is
// lowercased with every non-alphanumeric byte replaced by "-"; the date is
// the digits of start, or of now when start is empty.
func Filename(company, start string, now time.Time) string {
	empresa := "cuaderno"
	if company != "" {
		var b strings.Builder
		for _, r := range strings.ToLower(company) {
			if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
				b.WriteRune(r)
				continue
			}
			b.WriteByte('-')
		}
		empresa = b.String()
	}
	fecha := digits(start)
	if fecha == "" {
		fecha = now.Format("20060102")
	}
	return empresa + "-practicas-" + fecha + ".pdf"
}

func digits(s string) string {
	var b strings.Builder
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}
