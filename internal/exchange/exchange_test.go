package exchange

import (
	"bytes"
	"errors"
	"math"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/TermiSenpai/APP-Cuaderno-de-practicas/internal/model"
)

func sampleNotebook() model.Notebook {
	hours := 6.0
	sig := "data:image/png;base64,iVBORw0KGgo="
	return model.Notebook{
		Config: &model.NotebookConfig{
			CompanyName: "Acme S.L.",
			StartDate:   "2025-01-06",
			EndDate:     "2025-01-10",
			ActiveDays:  &model.Weekdays{Monday: true, Tuesday: true},
			HoursPerDay: &hours,
			Document: &model.DocumentConfig{
				Template: "moderna",
				Colors:   model.Palette{Primary: "#7c3aed", Secondary: "#22d3ee", Text: "#0f172a", Background: "#fafafa"},
			},
		},
		Days: []model.Day{
			{Date: "2025-01-06", Attended: true, Hours: 6, Activities: []string{"Reunión", "Código"}, Signature: &sig},
			{Date: "2025-01-07", Attended: false, Hours: 0, Activities: []string{}},
		},
	}
}

func TestRoundTrip(t *testing.T) {
	nb := sampleNotebook()
	data, err := Marshal(nb)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	got, err := Unmarshal(data)
	if err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if !reflect.DeepEqual(got, nb) {
		t.Fatalf("round trip mismatch:\nexpected %+v\ngot      %+v", nb, got)
	}
}

func TestMarshalIndentsAndUsesExchangeKeys(t *testing.T) {
	data, err := Marshal(model.Notebook{})
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if string(data) != "{\n  \"dias\": []\n}\n" {
		t.Fatalf("unexpected empty notebook encoding: %q", data)
	}
	data, err = Marshal(sampleNotebook())
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	for _, key := range []string{`"nombreEmpresa"`, `"fechaInicio"`, `"diasActivos"`, `"pdfConfig"`, `"asistido"`, `"firma": null`} {
		if !bytes.Contains(data, []byte(key)) {
			t.Fatalf("expected %s in output:\n%s", key, data)
		}
	}
}

func TestUnmarshalRejectsNonArrayDays(t *testing.T) {
	cases := []string{
		`{"config": {}, "dias": "not an array"}`,
		`{"config": {}}`,
		`{"dias": null}`,
		`{"dias": {"fecha": "2025-01-01"}}`,
		`[]`,
		`not json`,
	}
	for _, input := range cases {
		if _, err := Unmarshal([]byte(input)); !errors.Is(err, ErrInvalidFormat) {
			t.Fatalf("%s: expected ErrInvalidFormat, got %v", input, err)
		}
	}
}

func TestUnmarshalDefaultsMissingFields(t *testing.T) {
	nb, err := Unmarshal([]byte(`{"config":{"horasPorDia":8},"dias":[{"fecha":"2025-01-08"},{"fecha":"2025-01-06","asistido":false,"actividades":["  a ", ""]}]}`))
	if err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if len(nb.Days) != 2 || nb.Days[0].Date != "2025-01-06" {
		t.Fatalf("expected sorted days, got %+v", nb.Days)
	}
	if nb.Days[0].Attended || !reflect.DeepEqual(nb.Days[0].Activities, []string{"a"}) {
		t.Fatalf("unexpected first day: %+v", nb.Days[0])
	}
	if !nb.Days[1].Attended || nb.Days[1].Hours != 8 || nb.Days[1].Activities == nil {
		t.Fatalf("unexpected defaults: %+v", nb.Days[1])
	}
}

func TestUnmarshalValidatesFields(t *testing.T) {
	cases := map[string]string{
		"bad date":      `{"dias":[{"fecha":"06/01/2025"}]}`,
		"missing date":  `{"dias":[{"horas":3}]}`,
		"negative":      `{"dias":[{"fecha":"2025-01-06","horas":-1}]}`,
		"duplicate":     `{"dias":[{"fecha":"2025-01-06"},{"fecha":"2025-01-06"}]}`,
		"bad color":     `{"config":{"pdfConfig":{"template":"clasica","colors":{"primary":"blue"}}},"dias":[]}`,
		"bad start":     `{"config":{"fechaInicio":"enero"},"dias":[]}`,
		"negative conf": `{"config":{"horasPorDia":-2},"dias":[]}`,
	}
	for name, input := range cases {
		_, err := Unmarshal([]byte(input))
		if !errors.Is(err, ErrInvalidFormat) {
			t.Fatalf("%s: expected ErrInvalidFormat, got %v", name, err)
		}
	}
}

func TestValidationMessageNamesField(t *testing.T) {
	_, err := Unmarshal([]byte(`{"dias":[{"fecha":"2025-01-06"},{"fecha":"2025-13-01"}]}`))
	if err == nil || !strings.Contains(err.Error(), "dias[1].fecha") {
		t.Fatalf("expected field path in error, got %v", err)
	}
}

func TestExportImportFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out", DefaultFilename)
	nb := sampleNotebook()
	if err := Export(path, nb); err != nil {
		t.Fatalf("export: %v", err)
	}
	got, err := Import(path)
	if err != nil {
		t.Fatalf("import: %v", err)
	}
	if !reflect.DeepEqual(got, nb) {
		t.Fatalf("file round trip mismatch")
	}
	entries, err := os.ReadDir(filepath.Dir(path))
	if err != nil {
		t.Fatalf("read dir: %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("expected only the exported file, got %d entries", len(entries))
	}
}

func TestImportMissingFile(t *testing.T) {
	if _, err := Import(filepath.Join(t.TempDir(), "nope.json")); err == nil {
		t.Fatalf("expected error for missing file")
	}
}

func TestValidateConfigRejectsNonFiniteHours(t *testing.T) {
	for _, h := range []float64{math.Inf(1), math.Inf(-1), math.NaN()} {
		h := h
		err := ValidateConfig(model.NotebookConfig{HoursPerDay: &h})
		if !errors.Is(err, ErrInvalidFormat) {
			t.Fatalf("%v: expected ErrInvalidFormat, got %v", h, err)
		}
		if !strings.Contains(err.Error(), "config.horasPorDia") {
			t.Fatalf("%v: expected field in error, got %v", h, err)
		}
	}
	ok := 7.5
	if err := ValidateConfig(model.NotebookConfig{HoursPerDay: &ok}); err != nil {
		t.Fatalf("expected finite hours to pass, got %v", err)
	}
}
