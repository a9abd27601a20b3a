// Package document renders the notebook as a printable PDF, one page per
// packed group of days.
package document

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/phpdave11/gofpdf"

	"github.com/TermiSenpai/APP-Cuaderno-de-practicas/internal/exchange"
	"github.com/TermiSenpai/APP-Cuaderno-de-practicas/internal/layout"
	"github.com/TermiSenpai/APP-Cuaderno-de-practicas/internal/model"
)

const (
	title           = "Hoja de Actividades de Prácticas"
	defaultCompany  = "Centro de Trabajo"
	instructions    = "El alumno deberá firmar por cada día de asistencia, siempre supervisado por su tutor en la empresa"
	noActivities    = "Sin actividades registradas"
	noSignature     = "Sin firma"
	attendedLabel   = "Día asistido"
	absentLabel     = "No asistido"
	activitiesLabel = "Actividades realizadas:"
	fontFamily      = "Helvetica"
	badgeWidth      = 70.0
	contentWidth    = layout.PageWidth - 2*layout.Margin
	entryGap        = 6.0
	sheetEdge       = 12.0
)

// listScales shrink the activity font and line height of a crowded page.
var listScales = []float64{1, 0.9, 0.8, 0.7, 0.6}

var (
	// ErrRender wraps failures of the PDF engine.
	ErrRender = errors.New("failed to generate document")
	// ErrEmpty is returned when the notebook has no days to print.
	ErrEmpty = errors.New("notebook has no days to print")
)

// Options selects the template and colors. Blank colors use the template
// defaults.
type Options struct {
	Template layout.Template
	Colors   model.Palette
}

// OptionsFor reads the document settings stored in the notebook config.
func OptionsFor(nb model.Notebook) Options {
	opts := Options{Template: layout.DefaultTemplate}
	if nb.Config == nil || nb.Config.Document == nil {
		return opts
	}
	if tpl, err := layout.ParseTemplate(nb.Config.Document.Template); err == nil {
		opts.Template = tpl
	}
	opts.Colors = nb.Config.Document.Colors
	return opts
}

type palette struct {
	primary, secondary, text, background rgb
}

type renderer struct {
	pdf     *gofpdf.Fpdf
	tr      func(string) string
	tpl     layout.Template
	metrics layout.Metrics
	style   style
	colors  palette
	company string
	images  int
}

// Render writes the PDF for nb to w.
func Render(w io.Writer, nb model.Notebook, opts Options) error {
	pages := layout.Paginate(nb.Days, opts.Template)
	if len(pages) == 0 {
		return ErrEmpty
	}
	r := newRenderer(nb, opts)
	r.draw(pages)
	if err := r.pdf.Output(w); err != nil {
		return fmt.Errorf("%w: %v", ErrRender, err)
	}
	return nil
}

func newRenderer(nb model.Notebook, opts Options) *renderer {
	info := layout.Lookup(opts.Template)
	def := info.Colors
	resolved := layout.ResolvePalette(info.ID, opts.Colors)
	r := &renderer{
		tpl:     info.ID,
		metrics: info.Metrics,
		style:   styleFor(info.ID),
		colors: palette{
			primary:    colorOr(resolved.Primary, def.Primary),
			secondary:  colorOr(resolved.Secondary, def.Secondary),
			text:       colorOr(resolved.Text, def.Text),
			background: colorOr(resolved.Background, def.Background),
		},
		company: defaultCompany,
	}
	if nb.Config != nil && strings.TrimSpace(nb.Config.CompanyName) != "" {
		r.company = strings.TrimSpace(nb.Config.CompanyName)
	}

	pdf := gofpdf.New("P", "pt", "A4", "")
	pdf.SetMargins(layout.Margin, layout.Margin, layout.Margin)
	pdf.SetAutoPageBreak(false, 0)
	pdf.SetTitle(title, true)
	pdf.SetCreator("cuaderno", true)
	r.pdf = pdf
	r.tr = pdf.UnicodeTranslatorFromDescriptor("")
	return r
}

// draw renders one sheet per packed page. Entries grow to fit every wrapped
// activity line; only a page whose lists still overflow at the smallest
// list scale is clipped, at the footer for a single day and at the sheet
// edge otherwise.
func (r *renderer) draw(pages [][]model.Day) {
	for i, page := range pages {
		r.pdf.AddPage()
		r.background()
		r.header(page)
		scale, heights := r.fitPage(page)
		limit := layout.PageHeight - layout.Margin - layout.FooterHeight
		if len(page) > 1 {
			limit = layout.PageHeight - sheetEdge
		}
		y := layout.Margin + layout.HeaderHeight
		for j, day := range page {
			r.entry(day, y, heights[j], scale, limit)
			y += heights[j]
		}
		r.footer(i+1, len(pages))
	}
}

// fitPage picks the largest list scale at which every entry of the page fits
// the usable height, returning the entry heights at that scale.
func (r *renderer) fitPage(page []model.Day) (float64, []float64) {
	heights := make([]float64, len(page))
	for _, scale := range listScales {
		total := 0.0
		for i, day := range page {
			heights[i] = r.entryHeight(day, scale)
			total += heights[i]
		}
		if total <= layout.UsableHeight {
			return scale, heights
		}
	}
	return listScales[len(listScales)-1], heights
}

// entryHeight is the larger of the estimated height and the height the
// wrapped activity list needs.
func (r *renderer) entryHeight(day model.Day, scale float64) float64 {
	r.font("", r.style.bodySize*scale)
	lines, _ := r.activityLines(day.Activities, r.textWidth())
	n := len(lines)
	if n == 0 {
		n = 1
	}
	need := r.style.listY + float64(n)*r.metrics.LineHeight*scale + entryGap
	return math.Max(layout.EstimateHeight(day, r.tpl), need)
}

func (r *renderer) textWidth() float64 {
	return contentWidth - 2*r.style.pad - r.style.sigW - 10
}

// RenderFile writes the PDF to path through a temp file.
func RenderFile(path string, nb model.Notebook, opts Options) error {
	var buf bytes.Buffer
	if err := Render(&buf, nb, opts); err != nil {
		return err
	}
	return exchange.WriteFileAtomic(path, "cuaderno-*.pdf", func(w io.Writer) error {
		_, err := w.Write(buf.Bytes())
		return err
	})
}

func (r *renderer) setText(c rgb)  { r.pdf.SetTextColor(c.r, c.g, c.b) }
func (r *renderer) setFill(c rgb)  { r.pdf.SetFillColor(c.r, c.g, c.b) }
func (r *renderer) setDraw(c rgb)  { r.pdf.SetDrawColor(c.r, c.g, c.b) }
func (r *renderer) font(style string, size float64) {
	r.pdf.SetFont(fontFamily, style, size)
}

func (r *renderer) background() {
	bg := r.colors.background
	if bg == (rgb{255, 255, 255}) {
		return
	}
	r.setFill(bg)
	r.pdf.Rect(0, 0, layout.PageWidth, layout.PageHeight, "F")
}

func (r *renderer) header(page []model.Day) {
	pdf := r.pdf
	x, y := layout.Margin, layout.Margin
	titleColor := r.colors.primary
	if r.style.headerBand {
		r.setFill(r.colors.primary)
		pdf.Rect(x, y, contentWidth, 30, "F")
		titleColor = rgb{255, 255, 255}
	}

	r.font("B", r.style.titleSize)
	r.setText(titleColor)
	pdf.SetXY(x, y+4)
	pdf.CellFormat(contentWidth, 22, r.tr(title), "", 0, r.style.titleAlign, false, 0, "")

	r.font("", r.style.bodySize+1)
	r.setText(r.colors.text)
	pdf.SetXY(x, y+36)
	pdf.CellFormat(contentWidth, 14, r.tr("Centro de trabajo: "+r.company), "", 0, r.style.titleAlign, false, 0, "")

	r.setText(r.colors.secondary)
	pdf.SetXY(x, y+52)
	period := "Periodo: " + model.FormatRange(page[0].Date, page[len(page)-1].Date)
	pdf.CellFormat(contentWidth, 12, r.tr(period), "", 0, r.style.titleAlign, false, 0, "")

	r.setDraw(r.colors.primary)
	pdf.SetLineWidth(r.style.ruleWidth)
	pdf.Line(x, y+layout.HeaderHeight-8, x+contentWidth, y+layout.HeaderHeight-8)
}

func (r *renderer) footer(page, total int) {
	pdf := r.pdf
	x := layout.Margin
	y := layout.PageHeight - layout.Margin - layout.FooterHeight
	r.setDraw(r.colors.secondary)
	pdf.SetLineWidth(0.5)
	pdf.Line(x, y+4, x+contentWidth, y+4)

	r.font("I", 7.5)
	r.setText(r.colors.secondary)
	pdf.SetXY(x, y+10)
	pdf.MultiCell(contentWidth-90, 9, r.tr(instructions), "", "L", false)

	r.font("", 8)
	pdf.SetXY(x+contentWidth-80, y+10)
	pdf.CellFormat(80, 10, fmt.Sprintf("Hoja %d de %d", page, total), "", 0, "R", false, 0, "")
}

func (r *renderer) entry(day model.Day, y, h, scale, limit float64) {
	pdf := r.pdf
	s := r.style
	x := layout.Margin
	w := contentWidth
	r.frame(x, y, w, math.Min(h, limit-y+4))

	// Date and attendance badge.
	r.font("B", s.dateSize)
	r.setText(r.colors.text)
	pdf.SetXY(x+s.pad, y+s.dateY)
	pdf.CellFormat(w-2*s.pad-badgeWidth-4, 14, r.tr(longDate(day.Date)), "", 0, "L", false, 0, "")
	r.badge(day.Attended, x+w-s.pad-badgeWidth, y+s.dateY)

	hoursY := y + s.hoursY
	hoursX := x + s.pad
	if s.hoursY == 0 {
		hoursY = y + s.dateY
		hoursX = x + w - s.pad - badgeWidth - 70
	}
	r.font("", s.bodySize)
	r.setText(r.colors.text)
	pdf.SetXY(hoursX, hoursY)
	pdf.CellFormat(64, 14, "Horas: "+formatHours(day.Hours), "", 0, "L", false, 0, "")

	r.font("B", s.bodySize)
	pdf.SetXY(x+s.pad, y+s.labelY)
	pdf.CellFormat(120, 12, r.tr(activitiesLabel), "", 0, "L", false, 0, "")

	r.activities(day.Activities, x+s.pad, y+s.listY, r.textWidth(), limit, scale)

	r.signature(day, x+w-s.pad-s.sigW, y+s.sigY, s.sigW, s.sigH)
}

func (r *renderer) frame(x, y, w, h float64) {
	pdf := r.pdf
	s := r.style
	top, height := y+2, h-6
	pdf.SetLineWidth(s.ruleWidth)
	switch {
	case s.rounded:
		r.setFill(r.colors.background.tint(0.4))
		r.setDraw(r.colors.secondary.tint(0.5))
		pdf.RoundedRect(x, top, w, height, 6, "1234", "DF")
	case s.separator:
		r.setDraw(r.colors.secondary.tint(0.4))
		pdf.Line(x, y+h-3, x+w, y+h-3)
	case s.border:
		r.setDraw(r.colors.secondary)
		pdf.Rect(x, top, w, height, "D")
	}
	if s.accentBar {
		r.setFill(r.colors.primary)
		pdf.Rect(x, top, 4, height, "F")
	}
	if s.headerRow {
		r.setFill(r.colors.secondary.tint(0.8))
		pdf.Rect(x, top, w, 20, "F")
	}
}

func (r *renderer) badge(attended bool, x, y float64) {
	label, fill := absentLabel, r.colors.secondary
	if attended {
		label, fill = attendedLabel, r.colors.primary
	}
	r.setFill(fill)
	r.pdf.RoundedRect(x, y+1, badgeWidth, 12, 3, "1234", "F")
	r.font("B", 7.5)
	r.setText(rgb{255, 255, 255})
	r.pdf.SetXY(x, y+1)
	r.pdf.CellFormat(badgeWidth, 12, r.tr(label), "", 0, "C", false, 0, "")
}

// activities draws the bullet list line by line and stops at bottom. A
// clipped list ends with an ellipsis line.
func (r *renderer) activities(items []string, x, y, w, bottom, scale float64) {
	pdf := r.pdf
	size := r.style.bodySize * scale
	lh := r.metrics.LineHeight * scale
	if len(items) == 0 {
		r.font("I", size)
		r.setText(r.colors.secondary)
		pdf.SetXY(x, y)
		pdf.CellFormat(w, lh, r.tr(noActivities), "", 0, "L", false, 0, "")
		return
	}

	r.font("", size)
	r.setText(r.colors.text)
	bullet := r.tr("•") + " "
	indent := pdf.GetStringWidth(bullet)
	lines, firsts := r.activityLines(items, w)

	maxLines := int((bottom-y)/lh + 1e-6)
	if maxLines < 1 {
		maxLines = 1
	}
	clipped := len(lines) > maxLines
	if clipped {
		lines = lines[:maxLines-1]
	}
	for i, line := range lines {
		pdf.SetXY(x, y+float64(i)*lh)
		if firsts[i] {
			pdf.CellFormat(indent, lh, bullet, "", 0, "L", false, 0, "")
		}
		pdf.SetXY(x+indent, y+float64(i)*lh)
		pdf.CellFormat(w-indent, lh, line, "", 0, "L", false, 0, "")
	}
	if clipped {
		pdf.SetXY(x+indent, y+float64(len(lines))*lh)
		pdf.CellFormat(w-indent, lh, r.tr("…"), "", 0, "L", false, 0, "")
	}
}

// activityLines wraps each activity at the current font. firsts marks the
// lines that start a new bullet.
func (r *renderer) activityLines(items []string, w float64) (lines []string, firsts []bool) {
	indent := r.pdf.GetStringWidth(r.tr("•") + " ")
	for _, item := range items {
		for i, line := range r.pdf.SplitLines([]byte(r.tr(item)), w-indent) {
			lines = append(lines, string(line))
			firsts = append(firsts, i == 0)
		}
	}
	return lines, firsts
}

func (r *renderer) signature(day model.Day, x, y, w, h float64) {
	pdf := r.pdf
	if day.HasSignature() {
		if png, err := DecodeSignature(*day.Signature); err == nil {
			name := fmt.Sprintf("firma-%d", r.images)
			r.images++
			opts := gofpdf.ImageOptions{ImageType: "PNG"}
			info := pdf.RegisterImageOptionsReader(name, opts, bytes.NewReader(png))
			if info != nil && info.Width() > 0 && info.Height() > 0 {
				scale := math.Min((w-4)/info.Width(), (h-4)/info.Height())
				iw, ih := info.Width()*scale, info.Height()*scale
				pdf.ImageOptions(name, x+(w-iw)/2, y+(h-ih)/2, iw, ih, false, opts, 0, "")
				r.setDraw(r.colors.secondary)
				pdf.SetLineWidth(0.5)
				pdf.Rect(x, y, w, h, "D")
				return
			}
		}
	}
	r.setDraw(r.colors.secondary)
	pdf.SetLineWidth(0.6)
	pdf.SetDashPattern([]float64{3, 2}, 0)
	pdf.Rect(x, y, w, h, "D")
	pdf.SetDashPattern([]float64{}, 0)
	r.font("I", 8)
	r.setText(r.colors.secondary)
	pdf.SetXY(x, y+h/2-5)
	pdf.CellFormat(w, 10, noSignature, "", 0, "C", false, 0, "")
}

func longDate(iso string) string {
	t, err := model.ParseDate(iso)
	if err != nil {
		return iso
	}
	return model.WeekdayES(t) + ", " + model.FormatDDMMYYYY(iso)
}

func formatHours(h float64) string {
	return strconv.FormatFloat(h, 'f', -1, 64) + "h"
}
