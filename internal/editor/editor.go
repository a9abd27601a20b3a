// Package editor owns the in-memory notebook. Every change is applied to
// memory first and then written through to storage as a whole.
//
// An Editor is not safe for concurrent use; callers that render in the
// background work on a Snapshot.
package editor

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"math"
	"reflect"

	"github.com/TermiSenpai/APP-Cuaderno-de-practicas/internal/document"
	"github.com/TermiSenpai/APP-Cuaderno-de-practicas/internal/exchange"
	"github.com/TermiSenpai/APP-Cuaderno-de-practicas/internal/generator"
	"github.com/TermiSenpai/APP-Cuaderno-de-practicas/internal/logging"
	"github.com/TermiSenpai/APP-Cuaderno-de-practicas/internal/model"
	"github.com/TermiSenpai/APP-Cuaderno-de-practicas/internal/notify"
)

var (
	// ErrPersist wraps storage failures. The in-memory change is kept.
	ErrPersist = errors.New("failed to save notebook")
	// ErrNoDay is returned for an index or date that is not in the notebook.
	ErrNoDay = errors.New("day not found")
	// ErrNegativeHours rejects negative hour values.
	ErrNegativeHours = errors.New("hours must not be negative")
	// ErrInvalidHours rejects NaN and infinite hour values.
	ErrInvalidHours = errors.New("hours must be a finite number")
)

// Store persists the whole notebook.
type Store interface {
	SaveNotebook(ctx context.Context, nb model.Notebook) error
}

// Editor applies edits to the notebook and reports outcomes to a notify.Center.
type Editor struct {
	nb     model.Notebook
	store  Store
	center *notify.Center
	logger *log.Logger
}

// New wraps nb, normalizing it first. store may be nil for a read-only
// session; center and logger may be nil.
func New(nb model.Notebook, store Store, center *notify.Center, logger *log.Logger) *Editor {
	if center == nil {
		center = notify.NewCenter(logger)
	}
	if logger == nil {
		logger = logging.Discard()
	}
	return &Editor{nb: model.Normalize(nb), store: store, center: center, logger: logger}
}

// Notifications returns the center outcomes are reported to.
func (e *Editor) Notifications() *notify.Center {
	return e.center
}

// Snapshot returns a deep copy of the notebook.
func (e *Editor) Snapshot() model.Notebook {
	return e.nb.Clone()
}

// Len returns the number of days.
func (e *Editor) Len() int {
	return len(e.nb.Days)
}

// Day returns a copy of the day at index i.
func (e *Editor) Day(i int) (model.Day, bool) {
	if i < 0 || i >= len(e.nb.Days) {
		return model.Day{}, false
	}
	return e.nb.Days[i].Clone(), true
}

// Config returns a copy of the notebook config, zero when unset.
func (e *Editor) Config() model.NotebookConfig {
	if e.nb.Config == nil {
		return model.NotebookConfig{}
	}
	return e.nb.Config.Clone()
}

// FirstPending returns the index of the first attended day without
// activities, or -1.
func (e *Editor) FirstPending() int {
	return model.FirstEmptyAttendedDay(e.nb.Days)
}

// SetAttended changes the attendance flag of day i.
func (e *Editor) SetAttended(ctx context.Context, i int, attended bool) error {
	return e.update(ctx, i, func(d *model.Day) {
		d.Attended = attended
	})
}

// ToggleAttended flips the attendance flag of day i.
func (e *Editor) ToggleAttended(ctx context.Context, i int) error {
	return e.update(ctx, i, func(d *model.Day) {
		d.Attended = !d.Attended
	})
}

// SetHours sets the hours of day i, rounded to the nearest half hour.
func (e *Editor) SetHours(ctx context.Context, i int, hours float64) error {
	if err := checkHours(hours); err != nil {
		return err
	}
	return e.update(ctx, i, func(d *model.Day) {
		d.Hours = roundHalf(hours)
	})
}

// AdjustHours adds delta to the hours of day i without going below zero.
func (e *Editor) AdjustHours(ctx context.Context, i int, delta float64) error {
	day, ok := e.Day(i)
	if !ok {
		return fmt.Errorf("%w: index %d", ErrNoDay, i)
	}
	return e.SetHours(ctx, i, math.Max(0, day.Hours+delta))
}

// CommitActivities parses the edited text into the activity list of day i.
// Called when the text field loses focus; unchanged text is not written.
func (e *Editor) CommitActivities(ctx context.Context, i int, text string) error {
	day, ok := e.Day(i)
	if !ok {
		return fmt.Errorf("%w: index %d", ErrNoDay, i)
	}
	activities := model.ParseActivities(text)
	if reflect.DeepEqual(activities, model.CleanActivities(day.Activities)) {
		return nil
	}
	return e.update(ctx, i, func(d *model.Day) {
		d.Activities = activities
	})
}

// SetSignature attaches a signature data URL to day i. The image is stored
// re-encoded as a PNG data URL.
func (e *Editor) SetSignature(ctx context.Context, i int, dataURL string) error {
	raw, err := document.DecodeSignature(dataURL)
	if err == nil {
		dataURL, err = document.EncodeSignature(raw)
	}
	if err != nil {
		e.center.Error("La firma no es una imagen válida")
		return err
	}
	return e.update(ctx, i, func(d *model.Day) {
		d.Signature = &dataURL
	})
}

// SetSignatureFile reads an image file and attaches it as the signature of day i.
func (e *Editor) SetSignatureFile(ctx context.Context, i int, path string) error {
	if _, ok := e.Day(i); !ok {
		return fmt.Errorf("%w: index %d", ErrNoDay, i)
	}
	dataURL, err := document.SignatureFromFile(path)
	if err != nil {
		e.center.Error("No se pudo leer la firma: " + path)
		return err
	}
	if err := e.SetSignature(ctx, i, dataURL); err != nil {
		return err
	}
	e.center.Success("Firma guardada")
	return nil
}

// ClearSignature removes the signature of day i.
func (e *Editor) ClearSignature(ctx context.Context, i int) error {
	return e.update(ctx, i, func(d *model.Day) {
		d.Signature = nil
	})
}

// ReplaceDay replaces day i with day. The date may change; days are kept in
// chronological order.
func (e *Editor) ReplaceDay(ctx context.Context, i int, day model.Day) error {
	if i < 0 || i >= len(e.nb.Days) {
		return fmt.Errorf("%w: index %d", ErrNoDay, i)
	}
	if _, err := model.ParseDate(day.Date); err != nil {
		return err
	}
	if j := e.nb.IndexOf(day.Date); j >= 0 && j != i {
		return fmt.Errorf("a day for %s already exists", day.Date)
	}
	if err := checkHours(day.Hours); err != nil {
		return err
	}
	e.nb.Days[i] = day.Clone()
	e.nb = model.Normalize(e.nb)
	return e.persist(ctx)
}

// UpdateDayByDate applies fn to a copy of the day with the given date and
// stores the result.
func (e *Editor) UpdateDayByDate(ctx context.Context, date string, fn func(*model.Day)) error {
	i := e.nb.IndexOf(date)
	if i < 0 {
		return fmt.Errorf("%w: %s", ErrNoDay, date)
	}
	day := e.nb.Days[i].Clone()
	fn(&day)
	return e.ReplaceDay(ctx, i, day)
}

// SaveConfig validates and stores cfg. Existing days are not regenerated.
func (e *Editor) SaveConfig(ctx context.Context, cfg model.NotebookConfig) error {
	if err := exchange.ValidateConfig(cfg); err != nil {
		e.center.Error("Configuración no válida")
		return err
	}
	cfg = cfg.Clone()
	e.nb.Config = &cfg
	if err := e.persist(ctx); err != nil {
		return err
	}
	e.center.Success("Configuración guardada")
	return nil
}

// SaveDocumentOptions remembers the template and colors used for the PDF.
func (e *Editor) SaveDocumentOptions(ctx context.Context, opts document.Options) error {
	cfg := e.Config()
	cfg.Document = &model.DocumentConfig{Template: string(opts.Template), Colors: opts.Colors}
	if err := exchange.ValidateConfig(cfg); err != nil {
		return err
	}
	e.nb.Config = &cfg
	return e.persist(ctx)
}

// CreateFromConfig replaces the days with the ones generated from the
// config. With keep set, days already recorded inside the new range keep
// their content. On failure the notebook is not modified.
func (e *Editor) CreateFromConfig(ctx context.Context, keep bool) error {
	days, err := e.generate(e.nb.Config)
	if err != nil {
		return err
	}
	return e.setDays(ctx, days, keep)
}

// CreateFrom stores cfg and regenerates the days from it in one step. An
// invalid config or one that yields no days leaves the notebook untouched.
func (e *Editor) CreateFrom(ctx context.Context, cfg model.NotebookConfig, keep bool) error {
	if err := exchange.ValidateConfig(cfg); err != nil {
		e.center.Error("Configuración no válida")
		return err
	}
	days, err := e.generate(&cfg)
	if err != nil {
		return err
	}
	cfg = cfg.Clone()
	e.nb.Config = &cfg
	return e.setDays(ctx, days, keep)
}

func (e *Editor) generate(cfg *model.NotebookConfig) ([]model.Day, error) {
	days, err := generator.Generate(cfg)
	switch {
	case err == nil:
		return days, nil
	case errors.Is(err, generator.ErrMissingDates):
		e.center.Warning("Configura las fechas de inicio y fin antes de crear el cuaderno")
	case errors.Is(err, generator.ErrNoDays):
		e.center.Warning("No se generaron días. Revisa las fechas y los días activos")
	default:
		e.center.Error("Fechas no válidas en la configuración")
	}
	return nil, err
}

func (e *Editor) setDays(ctx context.Context, days []model.Day, keep bool) error {
	if keep {
		days = generator.Merge(days, e.nb.Days)
	}
	e.nb.Days = days
	e.nb = model.Normalize(e.nb)
	if err := e.persist(ctx); err != nil {
		return err
	}
	e.center.Success(fmt.Sprintf("Cuaderno creado con %d días", len(days)))
	return nil
}

// Import replaces the notebook with the document read from r. An invalid
// document leaves the notebook untouched.
func (e *Editor) Import(ctx context.Context, r io.Reader) error {
	nb, err := exchange.Read(r)
	if err != nil {
		e.logger.Printf("import rejected: %v", err)
		e.center.Error("El archivo no es un cuaderno válido")
		return err
	}
	return e.replace(ctx, nb, "Cuaderno importado")
}

// ImportFile imports the notebook stored at path.
func (e *Editor) ImportFile(ctx context.Context, path string) error {
	nb, err := exchange.Import(path)
	if err != nil {
		e.logger.Printf("import rejected: %v", err)
		e.center.Error("No se pudo importar " + path)
		return err
	}
	return e.replace(ctx, nb, "Cuaderno importado desde "+path)
}

func (e *Editor) replace(ctx context.Context, nb model.Notebook, success string) error {
	e.nb = model.Normalize(nb)
	if err := e.persist(ctx); err != nil {
		return err
	}
	e.center.Success(success)
	return nil
}

// Export writes the notebook as JSON to w.
func (e *Editor) Export(w io.Writer) error {
	return exchange.Write(w, e.nb)
}

// ExportFile writes the notebook as JSON to path.
func (e *Editor) ExportFile(path string) error {
	if err := exchange.Export(path, e.nb); err != nil {
		e.logger.Printf("export failed: %v", err)
		e.center.Error("No se pudo exportar el cuaderno")
		return err
	}
	e.center.Success("Cuaderno exportado a " + path)
	return nil
}

// RenderPDF writes the notebook as a PDF to w.
func (e *Editor) RenderPDF(w io.Writer, opts document.Options) error {
	if err := document.Render(w, e.nb, opts); err != nil {
		e.ReportPDF("", err)
		return err
	}
	return nil
}

// ReportPDF notifies the outcome of a PDF generation, including ones run on
// a Snapshot outside the editor.
func (e *Editor) ReportPDF(path string, err error) {
	switch {
	case err == nil:
		e.center.Success("PDF generado: " + path)
	case errors.Is(err, document.ErrEmpty):
		e.center.Warning("No hay días para exportar")
	default:
		e.logger.Printf("pdf generation failed: %v", err)
		e.center.Error("Error al generar el PDF. Inténtalo de nuevo")
	}
}

// Save writes the current notebook again, e.g. after a failed write.
func (e *Editor) Save(ctx context.Context) error {
	return e.persist(ctx)
}

func (e *Editor) update(ctx context.Context, i int, fn func(*model.Day)) error {
	if i < 0 || i >= len(e.nb.Days) {
		return fmt.Errorf("%w: index %d", ErrNoDay, i)
	}
	day := e.nb.Days[i].Clone()
	fn(&day)
	e.nb.Days[i] = day
	return e.persist(ctx)
}

func (e *Editor) persist(ctx context.Context) error {
	if e.store == nil {
		return nil
	}
	if err := e.store.SaveNotebook(ctx, e.nb.Clone()); err != nil {
		e.logger.Printf("failed to save notebook: %v", err)
		e.center.Error("No se pudieron guardar los cambios. Siguen disponibles en esta sesión")
		return fmt.Errorf("%w: %v", ErrPersist, err)
	}
	return nil
}

func roundHalf(h float64) float64 {
	return math.Round(h*2) / 2
}

func checkHours(h float64) error {
	switch {
	case math.IsNaN(h) || math.IsInf(h, 0):
		return ErrInvalidHours
	case h < 0:
		return ErrNegativeHours
	}
	return nil
}
