// Package config provides configuration helpers and TOML parsing.
package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/TermiSenpai/APP-Cuaderno-de-practicas/internal/model"
)

// FileConfig represents the TOML configuration file.
type FileConfig struct {
	Notebook NotebookConfig `toml:"notebook"`
	Document DocumentConfig `toml:"document"`
	App      AppConfig      `toml:"app"`
}

// NotebookConfig holds defaults for new notebooks.
type NotebookConfig struct {
	Company     *string  `toml:"company"`
	HoursPerDay *float64 `toml:"hours-per-day"`
	ActiveDays  []string `toml:"active-days"`
}

// DocumentConfig holds the default PDF template and colors.
type DocumentConfig struct {
	Template   *string `toml:"template"`
	Primary    *string `toml:"primary"`
	Secondary  *string `toml:"secondary"`
	Text       *string `toml:"text"`
	Background *string `toml:"background"`
}

// AppConfig maps application settings.
type AppConfig struct {
	Theme *string `toml:"theme"`
	DB    *string `toml:"db"`
	Log   *string `toml:"log"`
}

// LoadConfig reads a TOML config from the given path. Missing file is not an error.
func LoadConfig(path string) (FileConfig, error) {
	if path == "" {
		return FileConfig{}, fmt.Errorf("config path is empty")
	}
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return FileConfig{}, nil
		}
		return FileConfig{}, fmt.Errorf("failed to stat config: %w", err)
	}
	var cfg FileConfig
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return FileConfig{}, fmt.Errorf("failed to decode config: %w", err)
	}
	return cfg, nil
}

// ApplyNotebook fills the fields of cfg that are unset with the file defaults.
func (c FileConfig) ApplyNotebook(cfg *model.NotebookConfig) error {
	n := c.Notebook
	if cfg.CompanyName == "" && n.Company != nil {
		cfg.CompanyName = strings.TrimSpace(*n.Company)
	}
	if cfg.HoursPerDay == nil && n.HoursPerDay != nil {
		if *n.HoursPerDay < 0 {
			return fmt.Errorf("notebook.hours-per-day must be >= 0")
		}
		h := *n.HoursPerDay
		cfg.HoursPerDay = &h
	}
	if cfg.ActiveDays == nil && len(n.ActiveDays) > 0 {
		days, err := model.ParseWeekdays(strings.Join(n.ActiveDays, ","))
		if err != nil {
			return fmt.Errorf("notebook.active-days: %w", err)
		}
		cfg.ActiveDays = &days
	}
	return nil
}

// ApplyDocument fills blank template and colors with the file defaults.
func (c FileConfig) ApplyDocument(doc *model.DocumentConfig) {
	d := c.Document
	fill := func(target *string, value *string) {
		if *target == "" && value != nil {
			*target = strings.TrimSpace(*value)
		}
	}
	fill(&doc.Template, d.Template)
	fill(&doc.Colors.Primary, d.Primary)
	fill(&doc.Colors.Secondary, d.Secondary)
	fill(&doc.Colors.Text, d.Text)
	fill(&doc.Colors.Background, d.Background)
}

// DefaultTemplate returns the annotated config file written by `cuaderno config`.
func DefaultTemplate() string {
	return fmt.Sprintf(`# cuaderno configuration
# Uncomment a value to enable it. CLI flags override config values.

[notebook]
# company = "Centro de Trabajo"     # Default company for new notebooks
# hours-per-day = %.0f               # Hours assigned to generated days
# active-days = ["lunes", "martes", "miercoles", "jueves", "viernes"]

[document]
# template = "clasica"              # clasica, moderna, minimal, compacta, profesional
# primary = "#2563eb"
# secondary = "#64748b"
# text = "#1e293b"
# background = "#ffffff"

[app]
# theme = "dark"                    # dark or light (the saved choice wins)
# db = "$XDG_DATA_HOME/cuaderno/cuaderno.db"
# log = "$XDG_DATA_HOME/cuaderno/cuaderno.log"
`, model.DefaultHoursPerDay)
}
