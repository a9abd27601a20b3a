package tui

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/TermiSenpai/APP-Cuaderno-de-practicas/internal/model"
)

const (
	fieldCompany = iota
	fieldStart
	fieldEnd
	fieldHours
	fieldDays
)

// configForm edits the notebook config. The document settings of base are
// carried over untouched.
type configForm struct {
	base   model.NotebookConfig
	inputs []textinput.Model
	focus  int
	err    string
}

func newConfigForm(cfg model.NotebookConfig) *configForm {
	hours := ""
	if cfg.HoursPerDay != nil {
		hours = strconv.FormatFloat(*cfg.HoursPerDay, 'f', -1, 64)
	}
	w := cfg.Weekdays()
	f := &configForm{
		base: cfg.Clone(),
		inputs: []textinput.Model{
			newInput("Empresa: ", cfg.CompanyName),
			newInput("Fecha inicio (AAAA-MM-DD): ", cfg.StartDate),
			newInput("Fecha fin (AAAA-MM-DD): ", cfg.EndDate),
			newInput("Horas por día: ", hours),
			newInput("Días activos: ", strings.Join(w.Names(), ",")),
		},
	}
	f.inputs[fieldHours].Placeholder = strconv.FormatFloat(model.DefaultHoursPerDay, 'f', -1, 64)
	f.inputs[fieldDays].Placeholder = "lunes,martes,miercoles,jueves,viernes"
	return f
}

func (f *configForm) setFocus(idx int) tea.Cmd {
	count := len(f.inputs)
	if idx < 0 {
		idx = count - 1
	}
	if idx >= count {
		idx = 0
	}
	f.focus = idx
	var cmd tea.Cmd
	for i := range f.inputs {
		if i == f.focus {
			cmd = f.inputs[i].Focus()
		} else {
			f.inputs[i].Blur()
		}
	}
	return cmd
}

func (f *configForm) update(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	f.inputs[f.focus], cmd = f.inputs[f.focus].Update(msg)
	return cmd
}

func (f *configForm) setWidth(width int) {
	for i := range f.inputs {
		f.inputs[i].Width = maxInt(10, width-len([]rune(f.inputs[i].Prompt))-1)
	}
}

// value parses the inputs into a config.
func (f *configForm) value() (model.NotebookConfig, error) {
	cfg := f.base.Clone()
	cfg.CompanyName = strings.TrimSpace(f.inputs[fieldCompany].Value())

	start := strings.TrimSpace(f.inputs[fieldStart].Value())
	end := strings.TrimSpace(f.inputs[fieldEnd].Value())
	for _, d := range []string{start, end} {
		if d == "" {
			continue
		}
		if _, err := model.ParseDate(d); err != nil {
			return model.NotebookConfig{}, fmt.Errorf("fecha no válida %q (usa AAAA-MM-DD)", d)
		}
	}
	cfg.StartDate, cfg.EndDate = start, end

	cfg.HoursPerDay = nil
	if raw := strings.TrimSpace(f.inputs[fieldHours].Value()); raw != "" {
		h, err := strconv.ParseFloat(strings.ReplaceAll(raw, ",", "."), 64)
		if err != nil || h < 0 || math.IsNaN(h) || math.IsInf(h, 0) {
			return model.NotebookConfig{}, fmt.Errorf("horas no válidas %q", raw)
		}
		cfg.HoursPerDay = &h
	}

	cfg.ActiveDays = nil
	if raw := strings.TrimSpace(f.inputs[fieldDays].Value()); raw != "" {
		days, err := model.ParseWeekdays(raw)
		if err != nil {
			return model.NotebookConfig{}, fmt.Errorf("días activos no válidos: %v", err)
		}
		cfg.ActiveDays = &days
	}
	return cfg, nil
}

func (f *configForm) view(st styles) string {
	lines := []string{st.modalTitle.Render("Configuración del cuaderno")}
	for _, input := range f.inputs {
		lines = append(lines, input.View())
	}
	lines = append(lines, "", st.muted.Render("tab/shift+tab: campo  enter: guardar  esc: cancelar"))
	if f.err != "" {
		lines = append(lines, st.errorText.Render(f.err))
	}
	return strings.Join(lines, "\n")
}
