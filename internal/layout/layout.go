// Package layout estimates how tall each day renders and packs days into
// printable pages.
package layout

import (
	"math"
	"unicode/utf8"

	"github.com/TermiSenpai/APP-Cuaderno-de-practicas/internal/model"
)

// Page geometry in points.
const (
	PageHeight   = 842.0
	PageWidth    = 595.0
	Margin       = 40.0
	HeaderHeight = 80.0
	FooterHeight = 40.0
)

// UsableHeight is the vertical budget left for day entries on every page.
const UsableHeight = PageHeight - 2*Margin - HeaderHeight - FooterHeight

// EstimateHeight returns the space a day entry takes under the template. The
// result is not clamped, so a very long activity list can exceed UsableHeight.
func EstimateHeight(day model.Day, tpl Template) float64 {
	m := Lookup(tpl).Metrics
	height := m.BaseHeight
	if len(day.Activities) == 0 {
		return height
	}
	chars := 0
	for _, a := range day.Activities {
		chars += utf8.RuneCountInString(a)
	}
	lines := math.Ceil(float64(chars) / float64(m.CharsPerLine))
	return height + lines*m.LineHeight
}

// Paginate groups days into pages with greedy first-fit. Order is preserved,
// a day is never split, and a day taller than the budget gets its own page.
func Paginate(days []model.Day, tpl Template) [][]model.Day {
	var pages [][]model.Day
	var current []model.Day
	used := 0.0
	for _, day := range days {
		h := EstimateHeight(day, tpl)
		if len(current) > 0 && used+h > UsableHeight {
			pages = append(pages, current)
			current = nil
			used = 0
		}
		current = append(current, day)
		used += h
	}
	if len(current) > 0 {
		pages = append(pages, current)
	}
	return pages
}

// PageHeightOf sums the estimated heights of a packed page.
func PageHeightOf(page []model.Day, tpl Template) float64 {
	total := 0.0
	for _, day := range page {
		total += EstimateHeight(day, tpl)
	}
	return total
}

// Overflows reports whether a packed page exceeds the usable budget. Only a
// single oversized day can do that.
func Overflows(page []model.Day, tpl Template) bool {
	return PageHeightOf(page, tpl) > UsableHeight
}
