package main

import (
	"context"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/TermiSenpai/APP-Cuaderno-de-practicas/internal/config"
	"github.com/TermiSenpai/APP-Cuaderno-de-practicas/internal/document"
	"github.com/TermiSenpai/APP-Cuaderno-de-practicas/internal/exchange"
	"github.com/TermiSenpai/APP-Cuaderno-de-practicas/internal/layout"
	"github.com/TermiSenpai/APP-Cuaderno-de-practicas/internal/model"
	"github.com/TermiSenpai/APP-Cuaderno-de-practicas/internal/report"
)

var (
	newFrom    string
	newTo      string
	newHours   float64
	newDays    []string
	newCompany string
	newKeep    bool

	dayAttended       bool
	dayAbsent         bool
	dayHours          float64
	dayActivities     string
	daySign           string
	dayClearSignature bool

	exportFormat     string
	exportOutput     string
	exportTemplate   string
	exportPrimary    string
	exportSecondary  string
	exportText       string
	exportBackground string

	pagesTemplate string

	summaryTemplate string
	summaryDays     bool
)

func newNewCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "new",
		Short: "Generate the days of the internship from a date range",
		Args:  cobra.NoArgs,
		RunE:  runNewCmd,
	}
	cmd.Flags().StringVar(&newFrom, "from", "", "first day (YYYY-MM-DD)")
	cmd.Flags().StringVar(&newTo, "to", "", "last day (YYYY-MM-DD)")
	cmd.Flags().Float64Var(&newHours, "hours", model.DefaultHoursPerDay, "hours per generated day")
	cmd.Flags().StringSliceVar(&newDays, "days", nil, "active weekdays, e.g. lunes,miercoles (default lunes..viernes)")
	cmd.Flags().StringVar(&newCompany, "company", "", "company name")
	cmd.Flags().BoolVar(&newKeep, "keep", false, "keep the content of days that already exist")
	return cmd
}

func runNewCmd(cmd *cobra.Command, _ []string) error {
	ctx := context.Background()
	a, err := openApp(ctx)
	if err != nil {
		return err
	}
	defer a.Close()
	defer a.echoNotifications(cmd.ErrOrStderr())()

	applyStringConfig(cmd, "company", &newCompany, a.fileCfg.Notebook.Company)
	applyFloatConfig(cmd, "hours", &newHours, a.fileCfg.Notebook.HoursPerDay)
	applyStringsConfig(cmd, "days", &newDays, a.fileCfg.Notebook.ActiveDays)

	if newHours < 0 || math.IsNaN(newHours) || math.IsInf(newHours, 0) {
		return fmt.Errorf("--hours must be a finite number >= 0")
	}
	cfg := a.editor.Config()
	if newFrom != "" {
		cfg.StartDate = strings.TrimSpace(newFrom)
	}
	if newTo != "" {
		cfg.EndDate = strings.TrimSpace(newTo)
	}
	if c := strings.TrimSpace(newCompany); c != "" {
		cfg.CompanyName = c
	}
	if cmd.Flags().Changed("hours") || a.fileCfg.Notebook.HoursPerDay != nil || cfg.HoursPerDay == nil {
		h := newHours
		cfg.HoursPerDay = &h
	}
	if len(newDays) > 0 {
		days, err := model.ParseWeekdays(strings.Join(newDays, ","))
		if err != nil {
			return fmt.Errorf("invalid --days: %w", err)
		}
		cfg.ActiveDays = &days
	}

	return a.editor.CreateFrom(ctx, cfg, newKeep)
}

func newDayCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "day <fecha>",
		Short: "Show or edit one day",
		Args:  cobra.ExactArgs(1),
		RunE:  runDayCmd,
	}
	cmd.Flags().BoolVar(&dayAttended, "attended", false, "mark the day as attended")
	cmd.Flags().BoolVar(&dayAbsent, "absent", false, "mark the day as not attended")
	cmd.Flags().Float64Var(&dayHours, "hours", 0, "hours worked (rounded to half hours)")
	cmd.Flags().StringVar(&dayActivities, "activities", "", `activities, one per line ("\n" separates lines)`)
	cmd.Flags().StringVar(&daySign, "sign", "", "PNG or JPEG image with the signature")
	cmd.Flags().BoolVar(&dayClearSignature, "clear-signature", false, "remove the signature")
	cmd.MarkFlagsMutuallyExclusive("attended", "absent")
	cmd.MarkFlagsMutuallyExclusive("sign", "clear-signature")
	return cmd
}

func runDayCmd(cmd *cobra.Command, args []string) error {
	date := strings.TrimSpace(args[0])
	if _, err := model.ParseDate(date); err != nil {
		return err
	}
	ctx := context.Background()
	a, err := openApp(ctx)
	if err != nil {
		return err
	}
	defer a.Close()
	defer a.echoNotifications(cmd.ErrOrStderr())()

	i := a.editor.Snapshot().IndexOf(date)
	if i < 0 {
		return fmt.Errorf("no day for %s; generate the days with `cuaderno new`", date)
	}
	flags := cmd.Flags()
	if dayAttended || dayAbsent {
		if err := a.editor.SetAttended(ctx, i, dayAttended); err != nil {
			return err
		}
	}
	if flags.Changed("hours") {
		if err := a.editor.SetHours(ctx, i, dayHours); err != nil {
			return err
		}
	}
	if flags.Changed("activities") {
		text := strings.ReplaceAll(dayActivities, `\n`, "\n")
		if err := a.editor.CommitActivities(ctx, i, text); err != nil {
			return err
		}
	}
	if daySign != "" {
		if err := a.editor.SetSignatureFile(ctx, i, daySign); err != nil {
			return err
		}
	}
	if dayClearSignature {
		if err := a.editor.ClearSignature(ctx, i); err != nil {
			return err
		}
	}

	day, _ := a.editor.Day(i)
	return report.RenderDays(cmd.OutOrStdout(), []model.Day{day}, report.TerminalWidth())
}

func newImportCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "import <file>",
		Short: "Replace the notebook with an exported JSON file",
		Args:  cobra.ExactArgs(1),
		RunE:  runImportCmd,
	}
}

func runImportCmd(cmd *cobra.Command, args []string) error {
	ctx := context.Background()
	a, err := openApp(ctx)
	if err != nil {
		return err
	}
	defer a.Close()
	defer a.echoNotifications(cmd.ErrOrStderr())()

	return a.editor.ImportFile(ctx, args[0])
}

func newExportCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export the notebook as JSON or PDF",
		Args:  cobra.NoArgs,
		RunE:  runExportCmd,
	}
	cmd.Flags().StringVar(&exportFormat, "format", "json", "output format: json or pdf")
	cmd.Flags().StringVarP(&exportOutput, "output", "o", "", "output file, - for stdout")
	addDocumentFlags(cmd, &exportTemplate)
	cmd.Flags().StringVar(&exportPrimary, "primary", "", "primary color (#RRGGBB)")
	cmd.Flags().StringVar(&exportSecondary, "secondary", "", "secondary color (#RRGGBB)")
	cmd.Flags().StringVar(&exportText, "text", "", "text color (#RRGGBB)")
	cmd.Flags().StringVar(&exportBackground, "background", "", "background color (#RRGGBB)")
	return cmd
}

func runExportCmd(cmd *cobra.Command, _ []string) error {
	ctx := context.Background()
	a, err := openApp(ctx)
	if err != nil {
		return err
	}
	defer a.Close()
	defer a.echoNotifications(cmd.ErrOrStderr())()

	switch strings.ToLower(strings.TrimSpace(exportFormat)) {
	case "json":
		switch exportOutput {
		case "-":
			return a.editor.Export(cmd.OutOrStdout())
		case "":
			return a.editor.ExportFile(exchange.DefaultFilename)
		default:
			return a.editor.ExportFile(exportOutput)
		}
	case "pdf":
		nb := a.editor.Snapshot()
		opts, err := documentOptions(cmd, nb, a.fileCfg)
		if err != nil {
			return err
		}
		if exportOutput == "-" {
			return a.editor.RenderPDF(cmd.OutOrStdout(), opts)
		}
		path := exportOutput
		if path == "" {
			cfg := a.editor.Config()
			path = document.Filename(cfg.CompanyName, cfg.StartDate, time.Now())
		}
		err = document.RenderFile(path, nb, opts)
		a.editor.ReportPDF(path, err)
		return err
	default:
		return fmt.Errorf("invalid --format %q (use json or pdf)", exportFormat)
	}
}

func addDocumentFlags(cmd *cobra.Command, template *string) {
	cmd.Flags().StringVar(template, "template", "", "document template: "+strings.Join(layout.Names(), ", "))
}

// documentOptions resolves the template and palette: flags, then the
// options saved with the notebook, then the config file, then the template
// defaults.
func documentOptions(cmd *cobra.Command, nb model.Notebook, fileCfg config.FileConfig) (document.Options, error) {
	var doc model.DocumentConfig
	if nb.Config != nil && nb.Config.Document != nil {
		doc = *nb.Config.Document
	}
	fileCfg.ApplyDocument(&doc)

	flags := cmd.Flags()
	override := func(name string, target *string) {
		if flags.Changed(name) {
			if value, err := flags.GetString(name); err == nil {
				*target = strings.TrimSpace(value)
			}
		}
	}
	override("template", &doc.Template)
	override("primary", &doc.Colors.Primary)
	override("secondary", &doc.Colors.Secondary)
	override("text", &doc.Colors.Text)
	override("background", &doc.Colors.Background)

	tpl, err := layout.ParseTemplate(doc.Template)
	if err != nil {
		return document.Options{}, err
	}
	for _, c := range []string{doc.Colors.Primary, doc.Colors.Secondary, doc.Colors.Text, doc.Colors.Background} {
		if c != "" && !document.ValidColor(c) {
			return document.Options{}, fmt.Errorf("invalid color %q (expected #RRGGBB)", c)
		}
	}
	return document.Options{Template: tpl, Colors: doc.Colors}, nil
}

func newPagesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "pages",
		Short: "Show how the days are packed into document pages",
		Args:  cobra.NoArgs,
		RunE:  runPagesCmd,
	}
	addDocumentFlags(cmd, &pagesTemplate)
	return cmd
}

func runPagesCmd(cmd *cobra.Command, _ []string) error {
	a, err := openApp(context.Background())
	if err != nil {
		return err
	}
	defer a.Close()

	nb := a.editor.Snapshot()
	opts, err := documentOptions(cmd, nb, a.fileCfg)
	if err != nil {
		return err
	}
	return report.RenderPages(cmd.OutOrStdout(), layout.Paginate(nb.Days, opts.Template), opts.Template)
}

func newSummaryCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "summary",
		Short: "Show totals, weekly hours and page usage",
		Args:  cobra.NoArgs,
		RunE:  runSummaryCmd,
	}
	addDocumentFlags(cmd, &summaryTemplate)
	cmd.Flags().BoolVar(&summaryDays, "days", false, "also list every day")
	return cmd
}

func runSummaryCmd(cmd *cobra.Command, _ []string) error {
	a, err := openApp(context.Background())
	if err != nil {
		return err
	}
	defer a.Close()

	nb := a.editor.Snapshot()
	opts, err := documentOptions(cmd, nb, a.fileCfg)
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()
	if err := report.Render(out, report.Build(nb, opts.Template)); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	if !summaryDays || len(nb.Days) == 0 {
		return nil
	}
	if _, err := fmt.Fprintln(out); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return report.RenderDays(out, nb.Days, report.TerminalWidth())
}

func newThemeCmd() *cobra.Command {
	return &cobra.Command{
		Use:       "theme [dark|light]",
		Short:     "Show or set the interface theme",
		Args:      cobra.MaximumNArgs(1),
		ValidArgs: []string{string(model.ThemeDark), string(model.ThemeLight)},
		RunE:      runThemeCmd,
	}
}

func runThemeCmd(cmd *cobra.Command, args []string) error {
	ctx := context.Background()
	a, err := openApp(ctx)
	if err != nil {
		return err
	}
	defer a.Close()

	theme := a.theme
	if len(args) == 1 {
		value := strings.ToLower(strings.TrimSpace(args[0]))
		if value != string(model.ThemeDark) && value != string(model.ThemeLight) {
			return fmt.Errorf("invalid theme %q (use dark or light)", args[0])
		}
		theme = model.Theme(value)
		if err := a.store.SaveTheme(ctx, theme); err != nil {
			return fmt.Errorf("failed to save theme: %w", err)
		}
	}
	if _, err := fmt.Fprintln(cmd.OutOrStdout(), theme); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}
