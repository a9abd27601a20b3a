package document

import "github.com/TermiSenpai/APP-Cuaderno-de-practicas/internal/layout"

// style holds per-template drawing choices. Vertical offsets are relative to
// the top of the entry and stay inside the template's base height.
type style struct {
	titleSize  float64
	titleAlign string
	bodySize   float64
	dateSize   float64
	ruleWidth  float64
	pad        float64

	dateY  float64
	hoursY float64 // 0 puts hours on the date row
	labelY float64
	listY  float64
	sigY   float64
	sigW   float64
	sigH   float64

	border     bool
	rounded    bool
	separator  bool
	accentBar  bool
	headerRow  bool
	headerBand bool
}

func styleFor(t layout.Template) style {
	switch t {
	case layout.Moderna:
		return style{
			titleSize: 17, titleAlign: "L", bodySize: 9, dateSize: 11, ruleWidth: 1.2, pad: 12,
			dateY: 10, hoursY: 26, labelY: 40, listY: 54, sigY: 26, sigW: 140, sigH: 64,
			rounded: true, accentBar: true,
		}
	case layout.Minimal:
		return style{
			titleSize: 15, titleAlign: "L", bodySize: 9, dateSize: 10, ruleWidth: 0.4, pad: 2,
			dateY: 6, hoursY: 20, labelY: 32, listY: 44, sigY: 20, sigW: 130, sigH: 55,
			separator: true,
		}
	case layout.Compacta:
		return style{
			titleSize: 14, titleAlign: "C", bodySize: 8, dateSize: 9, ruleWidth: 0.5, pad: 6,
			dateY: 4, hoursY: 0, labelY: 18, listY: 30, sigY: 16, sigW: 110, sigH: 42,
			border: true,
		}
	case layout.Profesional:
		return style{
			titleSize: 16, titleAlign: "L", bodySize: 9, dateSize: 10, ruleWidth: 0.8, pad: 8,
			dateY: 5, hoursY: 28, labelY: 42, listY: 56, sigY: 26, sigW: 140, sigH: 66,
			border: true, headerRow: true, headerBand: true,
		}
	default:
		return style{
			titleSize: 16, titleAlign: "C", bodySize: 9, dateSize: 10, ruleWidth: 0.8, pad: 8,
			dateY: 8, hoursY: 24, labelY: 38, listY: 52, sigY: 24, sigW: 140, sigH: 62,
			border: true,
		}
	}
}
