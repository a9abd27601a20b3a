package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/TermiSenpai/APP-Cuaderno-de-practicas/internal/model"
)

func TestLoadConfigMissingFile(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "config.toml"))
	if err != nil {
		t.Fatalf("expected missing file to be ignored, got %v", err)
	}
	if cfg.Notebook.Company != nil || cfg.App.Theme != nil {
		t.Fatalf("expected empty config, got %+v", cfg)
	}
}

func TestDefaultTemplateDecodes(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte(DefaultTemplate()), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	if _, err := LoadConfig(path); err != nil {
		t.Fatalf("expected template to decode, got %v", err)
	}
}

func TestApplyNotebookAndDocument(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	content := `
[notebook]
company = "Acme"
hours-per-day = 6
active-days = ["lunes", "miércoles"]

[document]
template = "moderna"
primary = "#ff0000"

[app]
theme = "light"
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	fileCfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}

	var nb model.NotebookConfig
	if err := fileCfg.ApplyNotebook(&nb); err != nil {
		t.Fatalf("apply notebook: %v", err)
	}
	if nb.CompanyName != "Acme" || nb.DefaultHours() != 6 {
		t.Fatalf("unexpected notebook defaults: %+v", nb)
	}
	if !nb.ActiveDays.Active(time.Wednesday) || nb.ActiveDays.Active(time.Tuesday) {
		t.Fatalf("unexpected active days: %+v", nb.ActiveDays)
	}

	keep := model.NotebookConfig{CompanyName: "Otra"}
	if err := fileCfg.ApplyNotebook(&keep); err != nil {
		t.Fatalf("apply notebook: %v", err)
	}
	if keep.CompanyName != "Otra" {
		t.Fatalf("expected explicit company to win, got %q", keep.CompanyName)
	}

	doc := model.DocumentConfig{Colors: model.Palette{Secondary: "#00ff00"}}
	fileCfg.ApplyDocument(&doc)
	if doc.Template != "moderna" || doc.Colors.Primary != "#ff0000" || doc.Colors.Secondary != "#00ff00" {
		t.Fatalf("unexpected document defaults: %+v", doc)
	}
	if fileCfg.App.Theme == nil || *fileCfg.App.Theme != "light" {
		t.Fatalf("expected app theme light")
	}
}

func TestApplyNotebookRejectsUnknownWeekday(t *testing.T) {
	cfg := FileConfig{Notebook: NotebookConfig{ActiveDays: []string{"funday"}}}
	var nb model.NotebookConfig
	if err := cfg.ApplyNotebook(&nb); err == nil {
		t.Fatalf("expected error for unknown weekday")
	}
}

func TestResolvePath(t *testing.T) {
	t.Setenv(EnvDBPath, "")
	fromFile := "/tmp/from-file.db"
	if got := ResolvePath(EnvDBPath, &fromFile, "/tmp/default.db"); got != fromFile {
		t.Fatalf("expected file value, got %s", got)
	}
	if got := ResolvePath(EnvDBPath, nil, "/tmp/default.db"); got != "/tmp/default.db" {
		t.Fatalf("expected fallback, got %s", got)
	}
	t.Setenv(EnvDBPath, "/tmp/env.db")
	if got := ResolvePath(EnvDBPath, &fromFile, "/tmp/default.db"); got != "/tmp/env.db" {
		t.Fatalf("expected env value, got %s", got)
	}
}

func TestDefaultPathsUseXDG(t *testing.T) {
	t.Setenv("XDG_DATA_HOME", "/data")
	t.Setenv("XDG_CONFIG_HOME", "/conf")
	if got := DefaultDBPath(); got != filepath.Join("/data", "cuaderno", "cuaderno.db") {
		t.Fatalf("unexpected db path %s", got)
	}
	if got := DefaultConfigPath(); got != filepath.Join("/conf", "cuaderno", "config.toml") {
		t.Fatalf("unexpected config path %s", got)
	}
}
