// Package main provides the CLI entrypoint for cuaderno.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/TermiSenpai/APP-Cuaderno-de-practicas/internal/config"
	"github.com/TermiSenpai/APP-Cuaderno-de-practicas/internal/editor"
	"github.com/TermiSenpai/APP-Cuaderno-de-practicas/internal/logging"
	"github.com/TermiSenpai/APP-Cuaderno-de-practicas/internal/model"
	"github.com/TermiSenpai/APP-Cuaderno-de-practicas/internal/notify"
	"github.com/TermiSenpai/APP-Cuaderno-de-practicas/internal/store"
	"github.com/TermiSenpai/APP-Cuaderno-de-practicas/internal/tui"
)

func main() {
	rootCmd := newRootCmd()
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:               "cuaderno",
		Short:             "Cuaderno de prácticas: daily internship log with printable PDF",
		SilenceUsage:      true,
		SilenceErrors:     false,
		PersistentPreRunE: loadEnv,
		RunE:              runTUICmd,
	}

	rootCmd.AddCommand(newConfigCmd())
	rootCmd.AddCommand(newNewCmd())
	rootCmd.AddCommand(newDayCmd())
	rootCmd.AddCommand(newImportCmd())
	rootCmd.AddCommand(newExportCmd())
	rootCmd.AddCommand(newPagesCmd())
	rootCmd.AddCommand(newSummaryCmd())
	rootCmd.AddCommand(newThemeCmd())

	return rootCmd
}

// loadEnv reads .env from the working directory when present.
func loadEnv(_ *cobra.Command, _ []string) error {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("failed to load .env: %w", err)
	}
	return nil
}

// app bundles everything a command needs: config, logger, store and editor.
type app struct {
	fileCfg config.FileConfig
	logger  *log.Logger
	logs    io.Closer
	store   *store.Store
	editor  *editor.Editor
	theme   model.Theme
}

func openApp(ctx context.Context) (*app, error) {
	fileCfg, err := config.LoadConfig(config.DefaultConfigPath())
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	logPath := config.ResolvePath(config.EnvLogPath, fileCfg.App.Log, config.DefaultLogPath())
	logger, logs, err := logging.New(logPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open log: %w", err)
	}

	dbPath := config.ResolvePath(config.EnvDBPath, fileCfg.App.DB, config.DefaultDBPath())
	st, err := store.Open(dbPath, logger)
	if err != nil {
		closeQuietly(logs)
		return nil, fmt.Errorf("failed to open db: %w", err)
	}

	nb, _, err := st.LoadNotebook(ctx)
	switch {
	case errors.Is(err, store.ErrCorrupt):
		logErrln("stored notebook is corrupt; starting with an empty notebook (the raw data was kept)")
		nb = model.Notebook{}
	case err != nil:
		closeQuietly(st)
		closeQuietly(logs)
		return nil, fmt.Errorf("failed to load notebook: %w", err)
	}

	if nb.Config == nil {
		var cfg model.NotebookConfig
		if err := fileCfg.ApplyNotebook(&cfg); err != nil {
			logErrf("ignoring [notebook] defaults: %v\n", err)
		} else if cfg != (model.NotebookConfig{}) {
			nb.Config = &cfg
		}
	}

	theme, err := st.LoadTheme(ctx)
	if err != nil {
		logErrf("failed to load theme: %v\n", err)
	}
	if fileCfg.App.Theme != nil {
		if _, found, err := st.Get(ctx, store.ThemeKey); err == nil && !found {
			theme = model.ParseTheme(*fileCfg.App.Theme)
		}
	}

	center := notify.NewCenter(logger)
	return &app{
		fileCfg: fileCfg,
		logger:  logger,
		logs:    logs,
		store:   st,
		editor:  editor.New(nb, st, center, logger),
		theme:   theme,
	}, nil
}

func (a *app) Close() {
	if err := a.store.Close(); err != nil {
		logErrf("failed to close db: %v\n", err)
	}
	closeQuietly(a.logs)
}

// echoNotifications prints every new notification once, for commands that
// do not own the terminal.
func (a *app) echoNotifications(w io.Writer) func() {
	seen := map[string]bool{}
	return a.editor.Notifications().Subscribe(func(items []notify.Notification) {
		for _, n := range items {
			if seen[n.ID] {
				continue
			}
			seen[n.ID] = true
			if _, err := fmt.Fprintf(w, "%s %s\n", kindLabel(n.Kind), n.Message); err != nil {
				// Best-effort output.
				_ = err
			}
		}
	})
}

func kindLabel(k notify.Kind) string {
	switch k {
	case notify.Success:
		return "✓"
	case notify.Warning:
		return "!"
	case notify.Error:
		return "✗"
	default:
		return "·"
	}
}

func runTUICmd(_ *cobra.Command, _ []string) error {
	if !term.IsTerminal(int(os.Stdin.Fd())) || !term.IsTerminal(int(os.Stdout.Fd())) {
		return fmt.Errorf("the editor needs an interactive terminal; run `cuaderno --help` for the non-interactive commands")
	}
	a, err := openApp(context.Background())
	if err != nil {
		return err
	}
	defer a.Close()

	ui := tui.NewModel(a.editor, a.store, a.theme, a.logger)
	program := tea.NewProgram(ui, tea.WithAltScreen())
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("failed to run TUI: %w", err)
	}
	return nil
}

func newConfigCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Create/open config file",
		Args:  cobra.NoArgs,
		RunE:  runConfigCmd,
	}
}

func runConfigCmd(_ *cobra.Command, _ []string) error {
	path := config.DefaultConfigPath()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	if _, err := os.Stat(path); err != nil {
		if !os.IsNotExist(err) {
			return fmt.Errorf("failed to stat config: %w", err)
		}
		if err := os.WriteFile(path, []byte(config.DefaultTemplate()), 0o644); err != nil {
			return fmt.Errorf("failed to write config: %w", err)
		}
	}

	editorCmd := strings.TrimSpace(os.Getenv("EDITOR"))
	if editorCmd == "" {
		editorCmd = "vi"
	}
	parts := strings.Fields(editorCmd)
	if len(parts) == 0 {
		return fmt.Errorf("editor command is empty")
	}
	cmd := exec.Command(parts[0], append(parts[1:], path)...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("failed to open editor: %w", err)
	}
	return nil
}

func applyStringConfig(cmd *cobra.Command, name string, target, value *string) {
	if value == nil {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

func applyFloatConfig(cmd *cobra.Command, name string, target, value *float64) {
	if value == nil {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

func applyStringsConfig(cmd *cobra.Command, name string, target *[]string, value []string) {
	if value == nil {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = append([]string(nil), value...)
}

func closeQuietly(c io.Closer) {
	if cerr := c.Close(); cerr != nil {
		// Best-effort close.
		_ = cerr
	}
}

func logErrf(format string, args ...any) {
	if _, err := fmt.Fprintf(os.Stderr, format, args...); err != nil {
		// Best-effort logging to stderr.
		_ = err
	}
}

func logErrln(args ...any) {
	if _, err := fmt.Fprintln(os.Stderr, args...); err != nil {
		// Best-effort logging to stderr.
		_ = err
	}
}
