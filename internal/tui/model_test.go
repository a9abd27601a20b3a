package tui

import (
	"context"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/TermiSenpai/APP-Cuaderno-de-practicas/internal/editor"
	"github.com/TermiSenpai/APP-Cuaderno-de-practicas/internal/layout"
	"github.com/TermiSenpai/APP-Cuaderno-de-practicas/internal/model"
	"github.com/TermiSenpai/APP-Cuaderno-de-practicas/internal/notify"
)

type fakeThemes struct {
	saved []model.Theme
}

func (f *fakeThemes) SaveTheme(_ context.Context, theme model.Theme) error {
	f.saved = append(f.saved, theme)
	return nil
}

func newTestModel(t *testing.T) (*Model, *editor.Editor, *fakeThemes) {
	t.Helper()
	nb := model.Notebook{
		Config: &model.NotebookConfig{CompanyName: "Acme", StartDate: "2025-01-06", EndDate: "2025-01-08"},
		Days: []model.Day{
			{Date: "2025-01-06", Attended: true, Hours: 5, Activities: []string{"Montaje"}},
			{Date: "2025-01-07", Attended: true, Hours: 5},
			{Date: "2025-01-08", Attended: false, Hours: 0},
		},
	}
	ed := editor.New(nb, nil, notify.NewCenter(nil), nil)
	themes := &fakeThemes{}
	m := NewModel(ed, themes, model.ThemeDark, nil)
	m.Update(tea.WindowSizeMsg{Width: 100, Height: 40})
	return m, ed, themes
}

func press(m *Model, keys ...string) tea.Cmd {
	var cmd tea.Cmd
	for _, k := range keys {
		var msg tea.KeyMsg
		switch k {
		case "enter":
			msg = tea.KeyMsg{Type: tea.KeyEnter}
		case "esc":
			msg = tea.KeyMsg{Type: tea.KeyEsc}
		case "tab":
			msg = tea.KeyMsg{Type: tea.KeyTab}
		case "space":
			msg = tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}
		default:
			msg = tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(k)}
		}
		_, cmd = m.Update(msg)
	}
	return cmd
}

func hasKind(items []notify.Notification, kind notify.Kind) bool {
	for _, n := range items {
		if n.Kind == kind {
			return true
		}
	}
	return false
}

func TestCursorStartsOnFirstPendingDay(t *testing.T) {
	m, _, _ := newTestModel(t)
	if m.cursor != 1 {
		t.Fatalf("expected cursor on first pending day, got %d", m.cursor)
	}
}

func TestToggleAndHoursKeys(t *testing.T) {
	m, ed, _ := newTestModel(t)
	press(m, "k", "space", "+", "+")
	day, _ := ed.Day(0)
	if day.Attended {
		t.Fatalf("expected day 0 to be marked absent")
	}
	if day.Hours != 6 {
		t.Fatalf("expected 6 hours, got %v", day.Hours)
	}
	press(m, "-")
	day, _ = ed.Day(0)
	if day.Hours != 5.5 {
		t.Fatalf("expected 5.5 hours, got %v", day.Hours)
	}
}

func TestActivitiesCommitOnBlur(t *testing.T) {
	m, ed, _ := newTestModel(t)
	press(m, "enter")
	if m.mode != modeActivities {
		t.Fatalf("expected activities mode, got %v", m.mode)
	}
	m.activities.SetValue("Soldadura\n\n   Pintura  ")
	day, _ := ed.Day(1)
	if len(day.Activities) != 0 {
		t.Fatalf("expected no commit before blur, got %v", day.Activities)
	}
	press(m, "esc")
	if m.mode != modeList {
		t.Fatalf("expected list mode after blur, got %v", m.mode)
	}
	day, _ = ed.Day(1)
	if want := []string{"Soldadura", "Pintura"}; !reflect.DeepEqual(day.Activities, want) {
		t.Fatalf("expected %v, got %v", want, day.Activities)
	}
}

func TestPendingKeyJumps(t *testing.T) {
	m, _, _ := newTestModel(t)
	m.cursor = 2
	press(m, "g")
	if m.cursor != 1 {
		t.Fatalf("expected cursor 1, got %d", m.cursor)
	}
}

func TestThemeTogglePersists(t *testing.T) {
	m, _, themes := newTestModel(t)
	press(m, "t")
	if m.theme != model.ThemeLight {
		t.Fatalf("expected light theme, got %s", m.theme)
	}
	if len(themes.saved) != 1 || themes.saved[0] != model.ThemeLight {
		t.Fatalf("expected saved light theme, got %v", themes.saved)
	}
}

func TestPDFDialogWritesFile(t *testing.T) {
	m, ed, _ := newTestModel(t)
	press(m, "p")
	if m.mode != modePDF {
		t.Fatalf("expected pdf dialog")
	}
	if m.doc.pages != 1 {
		t.Fatalf("expected 1 page, got %d", m.doc.pages)
	}
	press(m, "l")
	if m.doc.template != layout.Moderna {
		t.Fatalf("expected moderna after right, got %s", m.doc.template)
	}
	path := filepath.Join(t.TempDir(), "out.pdf")
	m.doc.input(docPath).SetValue(path)
	cmd := press(m, "enter")
	if cmd == nil {
		t.Fatalf("expected render command")
	}
	m.Update(cmd())
	if m.mode != modeList {
		t.Fatalf("expected dialog to close after success")
	}
	if _, err := os.Stat(path); err != nil {
		t.Fatalf("expected pdf file: %v", err)
	}
	if !hasKind(ed.Notifications().Active(), notify.Success) {
		t.Fatalf("expected success notification")
	}
	if got := ed.Config().Document; got == nil || got.Template != string(layout.Moderna) {
		t.Fatalf("expected document options to be remembered, got %+v", got)
	}
}

func TestStalePDFResultIsDropped(t *testing.T) {
	m, ed, _ := newTestModel(t)
	press(m, "p")
	m.doc.input(docPath).SetValue(filepath.Join(t.TempDir(), "out.pdf"))
	cmd := press(m, "enter")
	press(m, "esc")
	m.Update(cmd())
	if hasKind(ed.Notifications().Active(), notify.Success) {
		t.Fatalf("expected stale result to be ignored")
	}
	if ed.Config().Document != nil {
		t.Fatalf("expected no document options saved")
	}
}

func TestPDFDialogRejectsBadColor(t *testing.T) {
	m, _, _ := newTestModel(t)
	press(m, "p")
	m.doc.input(docPrimary).SetValue("azul")
	if cmd := press(m, "enter"); cmd != nil {
		t.Fatalf("expected no render command")
	}
	if !strings.Contains(m.doc.err, "azul") {
		t.Fatalf("expected color error, got %q", m.doc.err)
	}
}

func TestConfigFormSaves(t *testing.T) {
	m, ed, _ := newTestModel(t)
	press(m, "c")
	if m.mode != modeConfig {
		t.Fatalf("expected config form")
	}
	m.config.inputs[fieldCompany].SetValue("Taller Pérez")
	m.config.inputs[fieldHours].SetValue("7,5")
	m.config.inputs[fieldDays].SetValue("lunes,miércoles")
	press(m, "enter")
	if m.mode != modeList {
		t.Fatalf("expected form to close")
	}
	cfg := ed.Config()
	if cfg.CompanyName != "Taller Pérez" || cfg.DefaultHours() != 7.5 {
		t.Fatalf("unexpected config %+v", cfg)
	}
	if cfg.ActiveDays == nil || !cfg.ActiveDays.Wednesday || cfg.ActiveDays.Tuesday {
		t.Fatalf("unexpected active days %+v", cfg.ActiveDays)
	}
}

func TestConfigFormRejectsBadDate(t *testing.T) {
	m, _, _ := newTestModel(t)
	press(m, "c")
	m.config.inputs[fieldStart].SetValue("06/01/2025")
	press(m, "enter")
	if m.mode != modeConfig || m.config.err == "" {
		t.Fatalf("expected form to stay open with an error")
	}
}

func TestNewFromConfigKeepsContent(t *testing.T) {
	m, ed, _ := newTestModel(t)
	press(m, "n")
	if m.mode != modeConfirmNew {
		t.Fatalf("expected confirmation")
	}
	press(m, "k")
	if ed.Len() != 3 {
		t.Fatalf("expected 3 days, got %d", ed.Len())
	}
	day, _ := ed.Day(0)
	if len(day.Activities) != 1 {
		t.Fatalf("expected kept activities, got %v", day.Activities)
	}
}

func TestViewShowsDaysAndToasts(t *testing.T) {
	m, ed, _ := newTestModel(t)
	ed.Notifications().Warning("Aviso de prueba")
	out := m.View()
	for _, want := range []string{"Cuaderno de prácticas", "Acme", "lunes, 06/01/2025", "Montaje", "Aviso de prueba"} {
		if !strings.Contains(out, want) {
			t.Fatalf("view missing %q", want)
		}
	}
	if lines := strings.Count(out, "\n") + 1; lines != 40 {
		t.Fatalf("expected 40 lines, got %d", lines)
	}
}

func TestEmptyNotebookView(t *testing.T) {
	ed := editor.New(model.Notebook{}, nil, nil, nil)
	m := NewModel(ed, nil, model.ThemeLight, nil)
	m.Update(tea.WindowSizeMsg{Width: 120, Height: 20})
	if !strings.Contains(m.View(), "El cuaderno está vacío") {
		t.Fatalf("expected empty notebook hint")
	}
	press(m, "p")
	if m.mode != modeList || !hasKind(ed.Notifications().Active(), notify.Warning) {
		t.Fatalf("expected warning instead of pdf dialog")
	}
}

func TestConfigFormRejectsInfiniteHours(t *testing.T) {
	m, ed, _ := newTestModel(t)
	press(m, "c")
	m.config.inputs[fieldHours].SetValue("inf")
	press(m, "enter")
	if m.mode != modeConfig || m.config.err == "" {
		t.Fatalf("expected form to stay open with an error")
	}
	if ed.Config().HoursPerDay != nil {
		t.Fatalf("expected hours per day unchanged")
	}
}
