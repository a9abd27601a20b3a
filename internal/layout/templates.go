package layout

import (
	"fmt"
	"strings"

	"github.com/TermiSenpai/APP-Cuaderno-de-practicas/internal/model"
)

// Template identifies one of the printable document designs.
type Template string

const (
	Clasica     Template = "clasica"
	Moderna     Template = "moderna"
	Minimal     Template = "minimal"
	Compacta    Template = "compacta"
	Profesional Template = "profesional"
)

// DefaultTemplate is used when a notebook has no document config.
const DefaultTemplate = Clasica

// Metrics are the tuned constants the height estimator uses for a template.
type Metrics struct {
	BaseHeight   float64
	CharsPerLine int
	LineHeight   float64
}

// Info describes a template for pickers and listings.
type Info struct {
	ID          Template
	Name        string
	Description string
	Colors      model.Palette
	Metrics     Metrics
}

var registry = []Info{
	{
		ID:          Clasica,
		Name:        "Plantilla Clásica",
		Description: "Diseño tradicional con bordes y formato formal.",
		Colors:      model.Palette{Primary: "#2563eb", Secondary: "#64748b", Text: "#1e293b", Background: "#ffffff"},
		Metrics:     Metrics{BaseHeight: 110, CharsPerLine: 80, LineHeight: 12},
	},
	{
		ID:          Moderna,
		Name:        "Plantilla Moderna",
		Description: "Diseño contemporáneo con bandas de color y tipografía limpia.",
		Colors:      model.Palette{Primary: "#7c3aed", Secondary: "#22d3ee", Text: "#0f172a", Background: "#fafafa"},
		Metrics:     Metrics{BaseHeight: 115, CharsPerLine: 85, LineHeight: 12},
	},
	{
		ID:          Minimal,
		Name:        "Plantilla Minimal",
		Description: "Diseño limpio con espacios amplios y máxima legibilidad.",
		Colors:      model.Palette{Primary: "#000000", Secondary: "#6b7280", Text: "#111827", Background: "#ffffff"},
		Metrics:     Metrics{BaseHeight: 95, CharsPerLine: 90, LineHeight: 11},
	},
	{
		ID:          Compacta,
		Name:        "Plantilla Compacta",
		Description: "Más días por hoja con texto denso.",
		Colors:      model.Palette{Primary: "#0f766e", Secondary: "#94a3b8", Text: "#1f2937", Background: "#ffffff"},
		Metrics:     Metrics{BaseHeight: 70, CharsPerLine: 110, LineHeight: 10},
	},
	{
		ID:          Profesional,
		Name:        "Plantilla Profesional",
		Description: "Cabecera corporativa y tabla de datos por día.",
		Colors:      model.Palette{Primary: "#1e3a8a", Secondary: "#b45309", Text: "#111827", Background: "#ffffff"},
		Metrics:     Metrics{BaseHeight: 120, CharsPerLine: 80, LineHeight: 12},
	},
}

// Templates lists every template in display order.
func Templates() []Info {
	out := make([]Info, len(registry))
	copy(out, registry)
	return out
}

// Lookup returns the template info. Unknown identifiers fall back to clasica.
func Lookup(t Template) Info {
	for _, info := range registry {
		if info.ID == t {
			return info
		}
	}
	return registry[0]
}

// ParseTemplate validates a template name. Empty input selects the default.
func ParseTemplate(s string) (Template, error) {
	s = strings.TrimSpace(strings.ToLower(s))
	if s == "" {
		return DefaultTemplate, nil
	}
	for _, info := range registry {
		if string(info.ID) == s {
			return info.ID, nil
		}
	}
	return "", fmt.Errorf("unknown template %q (available: %s)", s, strings.Join(Names(), ", "))
}

// Names returns the template identifiers in display order.
func Names() []string {
	out := make([]string, 0, len(registry))
	for _, info := range registry {
		out = append(out, string(info.ID))
	}
	return out
}

// Next cycles forward through the registry; delta may be negative.
func Next(t Template, delta int) Template {
	idx := 0
	for i, info := range registry {
		if info.ID == t {
			idx = i
			break
		}
	}
	n := len(registry)
	idx = ((idx+delta)%n + n) % n
	return registry[idx].ID
}

// DefaultColors returns the template's palette.
func DefaultColors(t Template) model.Palette {
	return Lookup(t).Colors
}

// ResolvePalette fills the blank entries of p with the template defaults.
func ResolvePalette(t Template, p model.Palette) model.Palette {
	def := DefaultColors(t)
	if p.Primary == "" {
		p.Primary = def.Primary
	}
	if p.Secondary == "" {
		p.Secondary = def.Secondary
	}
	if p.Text == "" {
		p.Text = def.Text
	}
	if p.Background == "" {
		p.Background = def.Background
	}
	return p
}
