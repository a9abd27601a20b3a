package tui

import (
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/cursor"
	"github.com/charmbracelet/bubbles/textinput"
)

type promptKind int

const (
	promptSignature promptKind = iota
	promptImport
	promptExport
)

// pathPrompt asks for a single file path.
type pathPrompt struct {
	kind  promptKind
	title string
	hint  string
	input textinput.Model
}

func newInput(prompt, value string) textinput.Model {
	input := textinput.New()
	input.Prompt = prompt
	input.CharLimit = 0
	input.Cursor.SetMode(cursor.CursorBlink)
	input.SetValue(value)
	return input
}

func newPathPrompt(kind promptKind, value string) *pathPrompt {
	p := &pathPrompt{kind: kind, input: newInput("Ruta: ", value)}
	switch kind {
	case promptSignature:
		p.title = "Firma del día"
		p.hint = "Imagen PNG o JPEG con la firma del tutor"
	case promptImport:
		p.title = "Importar cuaderno"
		p.hint = "Archivo JSON exportado previamente. Reemplaza el cuaderno actual"
	case promptExport:
		p.title = "Exportar cuaderno"
		p.hint = "Se guardará una copia en JSON"
	}
	return p
}

func (p *pathPrompt) value() string {
	return strings.TrimSpace(p.input.Value())
}

func (p *pathPrompt) view(st styles) string {
	return strings.Join([]string{
		st.modalTitle.Render(p.title),
		p.input.View(),
		st.muted.Render(p.hint),
		st.muted.Render("enter: aceptar  esc: cancelar"),
	}, "\n")
}

// confirmNewView asks how to treat existing days when generating from the config.
func confirmNewView(st styles, days int) string {
	return strings.Join([]string{
		st.modalTitle.Render("Crear días desde la configuración"),
		st.text.Render("El cuaderno ya tiene " + strconv.Itoa(days) + " días."),
		st.muted.Render("r: reemplazar todo  k: conservar el contenido de los días existentes  esc: cancelar"),
	}, "\n")
}
