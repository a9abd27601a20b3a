package tui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Up        key.Binding
	Down      key.Binding
	Toggle    key.Binding
	MoreHours key.Binding
	LessHours key.Binding
	Edit      key.Binding
	Sign      key.Binding
	Unsign    key.Binding
	Config    key.Binding
	New       key.Binding
	Import    key.Binding
	Export    key.Binding
	PDF       key.Binding
	Theme     key.Binding
	Pending   key.Binding
	Help      key.Binding
	Quit      key.Binding
}

func defaultKeys() keyMap {
	return keyMap{
		Up:        key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "subir")),
		Down:      key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "bajar")),
		Toggle:    key.NewBinding(key.WithKeys(" ", "space"), key.WithHelp("espacio", "asistencia")),
		MoreHours: key.NewBinding(key.WithKeys("+", "="), key.WithHelp("+", "+0.5h")),
		LessHours: key.NewBinding(key.WithKeys("-"), key.WithHelp("-", "-0.5h")),
		Edit:      key.NewBinding(key.WithKeys("enter", "e"), key.WithHelp("enter", "actividades")),
		Sign:      key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "firma")),
		Unsign:    key.NewBinding(key.WithKeys("x"), key.WithHelp("x", "borrar firma")),
		Config:    key.NewBinding(key.WithKeys("c"), key.WithHelp("c", "configuración")),
		New:       key.NewBinding(key.WithKeys("n"), key.WithHelp("n", "crear días")),
		Import:    key.NewBinding(key.WithKeys("I"), key.WithHelp("I", "importar")),
		Export:    key.NewBinding(key.WithKeys("E"), key.WithHelp("E", "exportar")),
		PDF:       key.NewBinding(key.WithKeys("p"), key.WithHelp("p", "PDF")),
		Theme:     key.NewBinding(key.WithKeys("t"), key.WithHelp("t", "tema")),
		Pending:   key.NewBinding(key.WithKeys("g"), key.WithHelp("g", "pendiente")),
		Help:      key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "ayuda")),
		Quit:      key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "salir")),
	}
}

// ShortHelp implements help.KeyMap.
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Toggle, k.Edit, k.Sign, k.PDF, k.Help, k.Quit}
}

// FullHelp implements help.KeyMap.
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Pending},
		{k.Toggle, k.MoreHours, k.LessHours, k.Edit},
		{k.Sign, k.Unsign, k.Config, k.New},
		{k.Import, k.Export, k.PDF, k.Theme},
		{k.Help, k.Quit},
	}
}
