package tui

import (
	"context"
	"errors"
	"log"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/TermiSenpai/APP-Cuaderno-de-practicas/internal/document"
	"github.com/TermiSenpai/APP-Cuaderno-de-practicas/internal/editor"
	"github.com/TermiSenpai/APP-Cuaderno-de-practicas/internal/exchange"
	"github.com/TermiSenpai/APP-Cuaderno-de-practicas/internal/generator"
	"github.com/TermiSenpai/APP-Cuaderno-de-practicas/internal/layout"
	"github.com/TermiSenpai/APP-Cuaderno-de-practicas/internal/logging"
	"github.com/TermiSenpai/APP-Cuaderno-de-practicas/internal/model"
)

type mode int

const (
	modeList mode = iota
	modeActivities
	modePrompt
	modeConfirmNew
	modeConfig
	modePDF
)

const (
	headerHeight   = 2
	maxEditorLines = 10
	emptyNotebook  = "El cuaderno está vacío. Pulsa c para configurar las fechas y n para crear los días, o I para importar un cuaderno."
)

// ThemeStore persists the theme choice.
type ThemeStore interface {
	SaveTheme(ctx context.Context, theme model.Theme) error
}

type pdfDoneMsg struct {
	gen  int
	path string
	opts document.Options
	err  error
}

// Model implements the Bubble Tea notebook editor.
type Model struct {
	editor *editor.Editor
	themes ThemeStore
	logger *log.Logger

	theme  model.Theme
	styles styles
	keys   keyMap
	help   help.Model

	list       viewport.Model
	activities textarea.Model

	width  int
	height int
	cursor int
	mode   mode

	prompt *pathPrompt
	config *configForm
	doc    *docForm

	// pdfGen identifies the PDF request the dialog is waiting for. Results
	// carrying another value are stale.
	pdfGen int
}

// NewModel constructs the editor UI. themes may be nil.
func NewModel(ed *editor.Editor, themes ThemeStore, theme model.Theme, logger *log.Logger) *Model {
	if logger == nil {
		logger = logging.Discard()
	}
	ta := textarea.New()
	ta.ShowLineNumbers = false
	ta.CharLimit = 0
	ta.Placeholder = "Una actividad por línea"

	m := &Model{
		editor:     ed,
		themes:     themes,
		logger:     logger,
		theme:      theme,
		styles:     newStyles(theme),
		keys:       defaultKeys(),
		help:       help.New(),
		list:       viewport.New(0, 0),
		activities: ta,
	}
	if i := ed.FirstPending(); i >= 0 {
		m.cursor = i
	}
	m.refreshList()
	return m
}

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	return tick()
}

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.updateLayout()
		return m, nil
	case tickMsg:
		m.editor.Notifications().Prune(time.Time(msg))
		return m, tick()
	case pdfDoneMsg:
		m.finishPDF(msg)
		return m, nil
	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC {
			if m.mode == modeActivities {
				m.commitActivities()
			}
			return m, tea.Quit
		}
		switch m.mode {
		case modeActivities:
			return m.updateActivities(msg)
		case modePrompt:
			return m.updatePrompt(msg)
		case modeConfirmNew:
			return m.updateConfirmNew(msg)
		case modeConfig:
			return m.updateConfig(msg)
		case modePDF:
			return m.updatePDF(msg)
		default:
			return m.updateList(msg)
		}
	}

	var cmd tea.Cmd
	switch m.mode {
	case modeActivities:
		m.activities, cmd = m.activities.Update(msg)
		m.refreshList()
	case modePrompt:
		m.prompt.input, cmd = m.prompt.input.Update(msg)
	case modeConfig:
		cmd = m.config.update(msg)
	}
	return m, cmd
}

// View implements tea.Model.
func (m *Model) View() string {
	if m.width == 0 || m.height == 0 {
		return ""
	}
	bodyHeight, footerHeight := m.layoutHeights()
	header := renderHeader(m.styles, m.editor.Config(), m.editor.Snapshot().Days, m.width)

	var body string
	if m.modalOpen() {
		box := m.styles.modal.Width(modalWidth(m.width)).Render(m.modalView())
		body = lipgloss.Place(m.width, bodyHeight, lipgloss.Center, lipgloss.Center, box)
	} else {
		body = m.list.View()
	}
	body = overlayBottom(fitLines(body, m.width, bodyHeight), renderToasts(m.styles, m.editor.Notifications().Active(), m.width))

	return strings.Join([]string{
		fitLines(header, m.width, headerHeight),
		body,
		fitLines(m.renderFooter(), m.width, footerHeight),
	}, "\n")
}

func (m *Model) updateList(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	ctx := context.Background()
	var cmd tea.Cmd
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		m.updateLayout()
	case key.Matches(msg, m.keys.Up):
		m.cursor--
	case key.Matches(msg, m.keys.Down):
		m.cursor++
	case key.Matches(msg, m.keys.Pending):
		if i := m.editor.FirstPending(); i >= 0 {
			m.cursor = i
		} else {
			m.editor.Notifications().Info("Todos los días asistidos tienen actividades")
		}
	case key.Matches(msg, m.keys.Toggle):
		m.check("toggle attendance", m.editor.ToggleAttended(ctx, m.cursor))
	case key.Matches(msg, m.keys.MoreHours):
		m.check("adjust hours", m.editor.AdjustHours(ctx, m.cursor, 0.5))
	case key.Matches(msg, m.keys.LessHours):
		m.check("adjust hours", m.editor.AdjustHours(ctx, m.cursor, -0.5))
	case key.Matches(msg, m.keys.Edit):
		cmd = m.startActivities()
	case key.Matches(msg, m.keys.Sign):
		if m.editor.Len() > 0 {
			cmd = m.openPrompt(promptSignature, "")
		}
	case key.Matches(msg, m.keys.Unsign):
		if day, ok := m.editor.Day(m.cursor); ok && day.HasSignature() {
			if err := m.editor.ClearSignature(ctx, m.cursor); err == nil {
				m.editor.Notifications().Info("Firma eliminada")
			}
		}
	case key.Matches(msg, m.keys.Config):
		cmd = m.openConfig()
	case key.Matches(msg, m.keys.New):
		cmd = m.startNew()
	case key.Matches(msg, m.keys.Import):
		cmd = m.openPrompt(promptImport, exchange.DefaultFilename)
	case key.Matches(msg, m.keys.Export):
		cmd = m.openPrompt(promptExport, exchange.DefaultFilename)
	case key.Matches(msg, m.keys.PDF):
		cmd = m.openPDF()
	case key.Matches(msg, m.keys.Theme):
		m.toggleTheme(ctx)
	}
	m.refreshList()
	return m, cmd
}

func (m *Model) startActivities() tea.Cmd {
	day, ok := m.editor.Day(m.cursor)
	if !ok {
		return nil
	}
	m.activities.SetValue(model.JoinActivities(day.Activities))
	m.activities.SetHeight(minInt(maxEditorLines, maxInt(3, len(day.Activities)+1)))
	m.mode = modeActivities
	return m.activities.Focus()
}

func (m *Model) updateActivities(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc, tea.KeyTab:
		m.commitActivities()
		return m, nil
	}
	var cmd tea.Cmd
	m.activities, cmd = m.activities.Update(msg)
	if lines := m.activities.LineCount(); lines+1 > m.activities.Height() {
		m.activities.SetHeight(minInt(maxEditorLines, lines+1))
	}
	m.refreshList()
	return m, cmd
}

// commitActivities stores the textarea content when the field loses focus.
func (m *Model) commitActivities() {
	m.activities.Blur()
	m.mode = modeList
	m.check("commit activities", m.editor.CommitActivities(context.Background(), m.cursor, m.activities.Value()))
	m.refreshList()
}

func (m *Model) openPrompt(kind promptKind, value string) tea.Cmd {
	m.prompt = newPathPrompt(kind, value)
	m.prompt.input.Width = maxInt(10, modalInnerWidth(m.width)-len([]rune(m.prompt.input.Prompt))-1)
	m.mode = modePrompt
	return m.prompt.input.Focus()
}

func (m *Model) updatePrompt(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		m.closeModal()
		return m, nil
	case tea.KeyEnter:
		path := m.prompt.value()
		if path == "" {
			return m, nil
		}
		ctx := context.Background()
		var err error
		switch m.prompt.kind {
		case promptSignature:
			err = m.editor.SetSignatureFile(ctx, m.cursor, path)
		case promptImport:
			err = m.editor.ImportFile(ctx, path)
			if err == nil || errors.Is(err, editor.ErrPersist) {
				m.cursor = 0
			}
		case promptExport:
			err = m.editor.ExportFile(path)
		}
		if err == nil || errors.Is(err, editor.ErrPersist) {
			m.closeModal()
		}
		return m, nil
	}
	var cmd tea.Cmd
	m.prompt.input, cmd = m.prompt.input.Update(msg)
	return m, cmd
}

func (m *Model) startNew() tea.Cmd {
	if m.editor.Len() == 0 {
		return m.createDays(false)
	}
	m.mode = modeConfirmNew
	return nil
}

func (m *Model) updateConfirmNew(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc", "q":
		m.closeModal()
	case "r":
		m.closeModal()
		return m, m.createDays(false)
	case "k":
		m.closeModal()
		return m, m.createDays(true)
	}
	return m, nil
}

// createDays generates the days from the config. Missing dates open the
// config form.
func (m *Model) createDays(keep bool) tea.Cmd {
	err := m.editor.CreateFromConfig(context.Background(), keep)
	switch {
	case err == nil, errors.Is(err, editor.ErrPersist):
		m.cursor = 0
	case errors.Is(err, generator.ErrMissingDates):
		return m.openConfig()
	}
	m.refreshList()
	return nil
}

func (m *Model) openConfig() tea.Cmd {
	m.config = newConfigForm(m.editor.Config())
	m.config.setWidth(modalInnerWidth(m.width))
	m.mode = modeConfig
	return m.config.setFocus(0)
}

func (m *Model) updateConfig(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		m.closeModal()
		return m, nil
	case tea.KeyTab, tea.KeyDown:
		return m, m.config.setFocus(m.config.focus + 1)
	case tea.KeyShiftTab, tea.KeyUp:
		return m, m.config.setFocus(m.config.focus - 1)
	case tea.KeyEnter:
		cfg, err := m.config.value()
		if err != nil {
			m.config.err = err.Error()
			return m, nil
		}
		if err := m.editor.SaveConfig(context.Background(), cfg); err != nil && !errors.Is(err, editor.ErrPersist) {
			m.config.err = err.Error()
			return m, nil
		}
		m.closeModal()
		return m, nil
	}
	return m, m.config.update(msg)
}

func (m *Model) openPDF() tea.Cmd {
	if m.editor.Len() == 0 {
		m.editor.Notifications().Warning("No hay días para exportar")
		return nil
	}
	cfg := m.editor.Config()
	opts := document.OptionsFor(m.editor.Snapshot())
	m.doc = newDocForm(opts, document.Filename(cfg.CompanyName, cfg.StartDate, time.Now()))
	m.doc.setWidth(modalInnerWidth(m.width))
	m.refreshPageCount()
	m.mode = modePDF
	return m.doc.setFocus(0)
}

func (m *Model) updatePDF(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		// Closing abandons any generation still in flight.
		m.pdfGen++
		m.closeModal()
		return m, nil
	case tea.KeyTab:
		return m, m.doc.setFocus(m.doc.focus + 1)
	case tea.KeyShiftTab:
		return m, m.doc.setFocus(m.doc.focus - 1)
	case tea.KeyEnter:
		if m.doc.running {
			return m, nil
		}
		opts, path, err := m.doc.options()
		if err != nil {
			m.doc.err = err.Error()
			return m, nil
		}
		m.doc.err = ""
		m.doc.running = true
		m.pdfGen++
		return m, renderPDF(m.pdfGen, path, m.editor.Snapshot(), opts)
	}
	cmd := m.doc.update(msg)
	m.refreshPageCount()
	return m, cmd
}

// renderPDF writes the document off the UI loop. nb is a snapshot so later
// edits do not race with the renderer.
func renderPDF(gen int, path string, nb model.Notebook, opts document.Options) tea.Cmd {
	return func() tea.Msg {
		err := document.RenderFile(path, nb, opts)
		return pdfDoneMsg{gen: gen, path: path, opts: opts, err: err}
	}
}

func (m *Model) finishPDF(msg pdfDoneMsg) {
	if msg.gen != m.pdfGen || m.mode != modePDF || m.doc == nil {
		m.logger.Printf("discarding stale pdf result for %s (err=%v)", msg.path, msg.err)
		return
	}
	m.doc.running = false
	m.editor.ReportPDF(msg.path, msg.err)
	if msg.err != nil {
		m.doc.err = "No se pudo generar el PDF"
		return
	}
	m.check("save document options", m.editor.SaveDocumentOptions(context.Background(), msg.opts))
	m.closeModal()
}

func (m *Model) refreshPageCount() {
	if m.doc == nil {
		return
	}
	m.doc.pages = len(layout.Paginate(m.editor.Snapshot().Days, m.doc.template))
}

func (m *Model) toggleTheme(ctx context.Context) {
	m.theme = m.theme.Toggle()
	m.styles = newStyles(m.theme)
	if m.themes == nil {
		return
	}
	if err := m.themes.SaveTheme(ctx, m.theme); err != nil {
		m.logger.Printf("failed to save theme: %v", err)
		m.editor.Notifications().Error("No se pudo guardar el tema")
	}
}

func (m *Model) closeModal() {
	m.mode = modeList
	m.prompt = nil
	m.config = nil
	m.doc = nil
	m.refreshList()
}

func (m *Model) modalOpen() bool {
	switch m.mode {
	case modePrompt, modeConfirmNew, modeConfig, modePDF:
		return true
	}
	return false
}

func (m *Model) modalView() string {
	switch m.mode {
	case modePrompt:
		return m.prompt.view(m.styles)
	case modeConfirmNew:
		return confirmNewView(m.styles, m.editor.Len())
	case modeConfig:
		return m.config.view(m.styles)
	case modePDF:
		return m.doc.view(m.styles)
	}
	return ""
}

func (m *Model) check(op string, err error) {
	if err != nil {
		m.logger.Printf("%s: %v", op, err)
	}
}

func (m *Model) listWidth() int {
	if m.width <= 0 {
		return 80
	}
	return m.width
}

func (m *Model) layoutHeights() (bodyHeight, footerHeight int) {
	footerHeight = maxInt(1, lipgloss.Height(m.renderFooter()))
	bodyHeight = m.height - headerHeight - footerHeight
	if bodyHeight < 1 {
		bodyHeight = 1
	}
	return bodyHeight, footerHeight
}

func (m *Model) updateLayout() {
	m.help.Width = m.width
	bodyHeight, _ := m.layoutHeights()
	m.list.Width = m.width
	m.list.Height = bodyHeight
	m.activities.SetWidth(maxInt(10, m.listWidth()-m.styles.card.GetHorizontalFrameSize()))
	if m.config != nil {
		m.config.setWidth(modalInnerWidth(m.width))
	}
	if m.doc != nil {
		m.doc.setWidth(modalInnerWidth(m.width))
	}
	m.refreshList()
}

// refreshList re-renders the day cards and scrolls the cursor into view.
func (m *Model) refreshList() {
	n := m.editor.Len()
	if m.cursor >= n {
		m.cursor = n - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
	if n == 0 {
		m.list.SetContent(m.styles.muted.Render(strings.Join(wrapText(emptyNotebook, m.listWidth()), "\n")))
		m.list.SetYOffset(0)
		return
	}

	cards := make([]string, 0, n)
	line, cursorStart, cursorEnd := 0, 0, 0
	for i := 0; i < n; i++ {
		day, _ := m.editor.Day(i)
		body := ""
		if m.mode == modeActivities && i == m.cursor {
			body = m.activities.View()
		}
		card := renderDayCard(m.styles, day, i == m.cursor, m.listWidth(), body)
		h := lipgloss.Height(card)
		if i == m.cursor {
			cursorStart, cursorEnd = line, line+h
		}
		cards = append(cards, card)
		line += h
	}
	m.list.SetContent(strings.Join(cards, "\n"))
	if m.list.Height <= 0 {
		return
	}
	switch {
	case cursorStart < m.list.YOffset:
		m.list.SetYOffset(cursorStart)
	case cursorEnd > m.list.YOffset+m.list.Height:
		m.list.SetYOffset(minInt(cursorStart, cursorEnd-m.list.Height))
	}
}

func (m *Model) renderFooter() string {
	if m.mode == modeActivities {
		return m.styles.muted.Render("esc/tab: guardar actividades  ·  una actividad por línea")
	}
	if m.modalOpen() {
		return ""
	}
	return m.help.View(m.keys)
}

// overlayBottom replaces the last lines of body with overlay.
func overlayBottom(body, overlay string) string {
	if overlay == "" {
		return body
	}
	lines := strings.Split(body, "\n")
	extra := strings.Split(overlay, "\n")
	if len(extra) > len(lines) {
		extra = extra[len(extra)-len(lines):]
	}
	copy(lines[len(lines)-len(extra):], extra)
	return strings.Join(lines, "\n")
}

func modalWidth(width int) int {
	return maxInt(40, minInt(width-4, 80))
}

func modalInnerWidth(width int) int {
	w := modalWidth(width) - 6 // 2 border + 4 padding
	if w < 10 {
		return 10
	}
	return w
}
