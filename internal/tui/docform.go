package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/TermiSenpai/APP-Cuaderno-de-practicas/internal/document"
	"github.com/TermiSenpai/APP-Cuaderno-de-practicas/internal/layout"
	"github.com/TermiSenpai/APP-Cuaderno-de-practicas/internal/model"
)

// Focus index 0 is the template selector; the rest map to inputs.
const (
	docTemplate = iota
	docPrimary
	docSecondary
	docText
	docBackground
	docPath
	docFieldCount
)

// docForm is the PDF dialog: template, palette and output path.
type docForm struct {
	template layout.Template
	inputs   []textinput.Model // primary, secondary, text, background, path
	focus    int
	running  bool
	err      string
	pages    int
}

func newDocForm(opts document.Options, path string) *docForm {
	colors := layout.ResolvePalette(opts.Template, opts.Colors)
	f := &docForm{
		template: layout.Lookup(opts.Template).ID,
		inputs: []textinput.Model{
			newInput("Principal:  ", colors.Primary),
			newInput("Secundario: ", colors.Secondary),
			newInput("Texto:      ", colors.Text),
			newInput("Fondo:      ", colors.Background),
			newInput("Archivo:    ", path),
		},
	}
	return f
}

func (f *docForm) input(field int) *textinput.Model {
	return &f.inputs[field-1]
}

func (f *docForm) setFocus(idx int) tea.Cmd {
	if idx < 0 {
		idx = docFieldCount - 1
	}
	if idx >= docFieldCount {
		idx = 0
	}
	f.focus = idx
	var cmd tea.Cmd
	for i := range f.inputs {
		if i+1 == f.focus {
			cmd = f.inputs[i].Focus()
		} else {
			f.inputs[i].Blur()
		}
	}
	return cmd
}

// cycleTemplate switches template and resets the palette to its defaults.
func (f *docForm) cycleTemplate(delta int) {
	f.template = layout.Next(f.template, delta)
	colors := layout.DefaultColors(f.template)
	f.input(docPrimary).SetValue(colors.Primary)
	f.input(docSecondary).SetValue(colors.Secondary)
	f.input(docText).SetValue(colors.Text)
	f.input(docBackground).SetValue(colors.Background)
}

func (f *docForm) update(msg tea.KeyMsg) tea.Cmd {
	if f.focus == docTemplate {
		switch msg.String() {
		case "left", "h":
			f.cycleTemplate(-1)
		case "right", "l":
			f.cycleTemplate(1)
		}
		return nil
	}
	in := f.input(f.focus)
	var cmd tea.Cmd
	*in, cmd = in.Update(msg)
	return cmd
}

func (f *docForm) setWidth(width int) {
	for i := range f.inputs {
		f.inputs[i].Width = maxInt(10, width-len([]rune(f.inputs[i].Prompt))-1)
	}
}

// options validates the dialog and returns the render options and target path.
func (f *docForm) options() (document.Options, string, error) {
	palette := model.Palette{
		Primary:    strings.TrimSpace(f.input(docPrimary).Value()),
		Secondary:  strings.TrimSpace(f.input(docSecondary).Value()),
		Text:       strings.TrimSpace(f.input(docText).Value()),
		Background: strings.TrimSpace(f.input(docBackground).Value()),
	}
	for _, c := range []string{palette.Primary, palette.Secondary, palette.Text, palette.Background} {
		if c != "" && !document.ValidColor(c) {
			return document.Options{}, "", fmt.Errorf("color no válido %q (usa #RRGGBB)", c)
		}
	}
	path := strings.TrimSpace(f.input(docPath).Value())
	if path == "" {
		return document.Options{}, "", fmt.Errorf("indica el archivo de salida")
	}
	return document.Options{Template: f.template, Colors: palette}, path, nil
}

func (f *docForm) view(st styles) string {
	info := layout.Lookup(f.template)
	selector := fmt.Sprintf("Plantilla:  ‹ %s ›", info.Name)
	if f.focus == docTemplate {
		selector = st.selected.Render(selector)
	} else {
		selector = st.text.Render(selector)
	}
	lines := []string{
		st.modalTitle.Render("Generar PDF"),
		selector,
		st.muted.Render(info.Description),
	}
	if f.pages > 0 {
		lines = append(lines, st.muted.Render(fmt.Sprintf("%d hojas", f.pages)))
	}
	lines = append(lines, "")
	for _, input := range f.inputs {
		lines = append(lines, input.View())
	}
	lines = append(lines, "")
	if f.running {
		lines = append(lines, st.text.Render("Generando PDF…"))
	}
	lines = append(lines, st.muted.Render("tab: campo  ←/→: plantilla  enter: generar  esc: cerrar"))
	if f.err != "" {
		lines = append(lines, st.errorText.Render(f.err))
	}
	return strings.Join(lines, "\n")
}
