package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/TermiSenpai/APP-Cuaderno-de-practicas/internal/config"
	"github.com/TermiSenpai/APP-Cuaderno-de-practicas/internal/exchange"
)

func setupEnv(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(dir, "config"))
	t.Setenv("XDG_DATA_HOME", filepath.Join(dir, "data"))
	t.Setenv(config.EnvDBPath, "")
	t.Setenv(config.EnvLogPath, "")
	return dir
}

func run(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	cmd := newRootCmd()
	var out, errOut bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), errOut.String(), err
}

func TestNewDaySummary(t *testing.T) {
	setupEnv(t)
	if _, stderr, err := run(t, "new", "--from", "2025-01-06", "--to", "2025-01-19", "--company", "Acme"); err != nil {
		t.Fatalf("new: %v (%s)", err, stderr)
	} else if !strings.Contains(stderr, "Cuaderno creado con 10 días") {
		t.Fatalf("expected creation notice, got %q", stderr)
	}

	out, _, err := run(t, "day", "2025-01-07", "--absent", "--activities", `Inventario\nLimpieza`)
	if err != nil {
		t.Fatalf("day: %v", err)
	}
	if !strings.Contains(out, "martes, 07/01/2025") || !strings.Contains(out, "Inventario (+1)") {
		t.Fatalf("unexpected day output: %s", out)
	}

	out, _, err = run(t, "summary")
	if err != nil {
		t.Fatalf("summary: %v", err)
	}
	for _, want := range []string{"Empresa: Acme", "Días: 10 (asistidos 9, no asistidos 1)", "Horas: 45h", "Plantilla clasica: 2 hojas"} {
		if !strings.Contains(out, want) {
			t.Fatalf("summary missing %q:\n%s", want, out)
		}
	}
}

func TestNewRequiresDates(t *testing.T) {
	setupEnv(t)
	if _, _, err := run(t, "new"); err == nil {
		t.Fatalf("expected error without dates")
	}
}

func TestNewUsesConfigFileDefaults(t *testing.T) {
	dir := setupEnv(t)
	path := filepath.Join(dir, "config", "cuaderno", "config.toml")
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	content := "[notebook]\ncompany = \"Desde TOML\"\nhours-per-day = 4\nactive-days = [\"lunes\"]\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	if _, _, err := run(t, "new", "--from", "2025-01-06", "--to", "2025-01-19"); err != nil {
		t.Fatalf("new: %v", err)
	}
	out, _, err := run(t, "summary")
	if err != nil {
		t.Fatalf("summary: %v", err)
	}
	for _, want := range []string{"Empresa: Desde TOML", "Días: 2", "Horas: 8h"} {
		if !strings.Contains(out, want) {
			t.Fatalf("summary missing %q:\n%s", want, out)
		}
	}

	if _, _, err := run(t, "new", "--from", "2025-01-06", "--to", "2025-01-19", "--hours", "6", "--days", "lunes,martes"); err != nil {
		t.Fatalf("new: %v", err)
	}
	out, _, _ = run(t, "summary")
	if !strings.Contains(out, "Días: 4") || !strings.Contains(out, "Horas: 24h") {
		t.Fatalf("expected flags to win over config:\n%s", out)
	}
}

func TestExportImportJSON(t *testing.T) {
	dir := setupEnv(t)
	if _, _, err := run(t, "new", "--from", "2025-01-06", "--to", "2025-01-10", "--company", "Acme"); err != nil {
		t.Fatalf("new: %v", err)
	}
	path := filepath.Join(dir, exchange.DefaultFilename)
	if _, _, err := run(t, "export", "-o", path); err != nil {
		t.Fatalf("export: %v", err)
	}
	out, _, err := run(t, "export", "-o", "-")
	if err != nil {
		t.Fatalf("export stdout: %v", err)
	}
	if !strings.Contains(out, `"nombreEmpresa": "Acme"`) {
		t.Fatalf("unexpected export: %s", out)
	}

	if _, _, err := run(t, "new", "--from", "2025-02-03", "--to", "2025-02-04", "--company", "Otra"); err != nil {
		t.Fatalf("new: %v", err)
	}
	if _, _, err := run(t, "import", path); err != nil {
		t.Fatalf("import: %v", err)
	}
	out, _, _ = run(t, "summary")
	if !strings.Contains(out, "Empresa: Acme") || !strings.Contains(out, "Días: 5") {
		t.Fatalf("expected imported notebook:\n%s", out)
	}
}

func TestImportRejectsInvalidFile(t *testing.T) {
	dir := setupEnv(t)
	if _, _, err := run(t, "new", "--from", "2025-01-06", "--to", "2025-01-10"); err != nil {
		t.Fatalf("new: %v", err)
	}
	bad := filepath.Join(dir, "bad.json")
	if err := os.WriteFile(bad, []byte(`{"config": {}, "dias": "not an array"}`), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	if _, _, err := run(t, "import", bad); err == nil {
		t.Fatalf("expected import error")
	}
	out, _, _ := run(t, "summary")
	if !strings.Contains(out, "Días: 5") {
		t.Fatalf("expected notebook unchanged:\n%s", out)
	}
}

func TestExportPDF(t *testing.T) {
	dir := setupEnv(t)
	if _, _, err := run(t, "new", "--from", "2025-01-06", "--to", "2025-01-31"); err != nil {
		t.Fatalf("new: %v", err)
	}
	path := filepath.Join(dir, "out.pdf")
	if _, _, err := run(t, "export", "--format", "pdf", "-o", path, "--template", "compacta", "--primary", "#ff0000"); err != nil {
		t.Fatalf("export pdf: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read pdf: %v", err)
	}
	if !bytes.HasPrefix(data, []byte("%PDF-")) {
		t.Fatalf("expected pdf output")
	}
	if _, _, err := run(t, "export", "--format", "pdf", "-o", path, "--template", "barroca"); err == nil {
		t.Fatalf("expected unknown template error")
	}
	if _, _, err := run(t, "export", "--format", "pdf", "-o", path, "--primary", "rojo"); err == nil {
		t.Fatalf("expected invalid color error")
	}
	if _, _, err := run(t, "export", "--format", "xml"); err == nil {
		t.Fatalf("expected invalid format error")
	}
}

func TestPagesCommand(t *testing.T) {
	setupEnv(t)
	if _, _, err := run(t, "new", "--from", "2025-01-06", "--to", "2025-01-19"); err != nil {
		t.Fatalf("new: %v", err)
	}
	out, _, err := run(t, "pages", "--template", "compacta")
	if err != nil {
		t.Fatalf("pages: %v", err)
	}
	if !strings.HasPrefix(out, "Plantilla compacta: 2 hojas") {
		t.Fatalf("unexpected pages output: %s", out)
	}
}

func TestDayUnknownDate(t *testing.T) {
	setupEnv(t)
	if _, _, err := run(t, "day", "2025-01-06"); err == nil {
		t.Fatalf("expected error for missing day")
	}
	if _, _, err := run(t, "day", "06/01/2025"); err == nil {
		t.Fatalf("expected error for malformed date")
	}
}

func TestThemeCommand(t *testing.T) {
	setupEnv(t)
	out, _, err := run(t, "theme")
	if err != nil || strings.TrimSpace(out) != "dark" {
		t.Fatalf("expected dark default, got %q (%v)", out, err)
	}
	if _, _, err := run(t, "theme", "light"); err != nil {
		t.Fatalf("set theme: %v", err)
	}
	out, _, _ = run(t, "theme")
	if strings.TrimSpace(out) != "light" {
		t.Fatalf("expected light, got %q", out)
	}
	if _, _, err := run(t, "theme", "sepia"); err == nil {
		t.Fatalf("expected invalid theme error")
	}
}

func TestNewRejectsInfiniteHours(t *testing.T) {
	setupEnv(t)
	if _, _, err := run(t, "new", "--from", "2025-01-06", "--to", "2025-01-10", "--hours", "inf"); err == nil {
		t.Fatalf("expected error for infinite hours")
	}
}

func TestNewFailureKeepsConfig(t *testing.T) {
	setupEnv(t)
	if _, _, err := run(t, "new", "--from", "2025-01-06", "--to", "2025-01-10", "--company", "Acme"); err != nil {
		t.Fatalf("new: %v", err)
	}
	if _, _, err := run(t, "new", "--from", "2025-03-10", "--to", "2025-03-01", "--company", "Otra"); err == nil {
		t.Fatalf("expected error for reversed range")
	}
	out, _, err := run(t, "summary")
	if err != nil {
		t.Fatalf("summary: %v", err)
	}
	if !strings.Contains(out, "Empresa: Acme") || !strings.Contains(out, "Días: 5") {
		t.Fatalf("expected notebook unchanged:\n%s", out)
	}
}
