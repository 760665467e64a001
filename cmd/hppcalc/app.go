package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/pflag"

	"github.com/piwi3910/hppcalc/internal/export"
	"github.com/piwi3910/hppcalc/internal/importer"
	"github.com/piwi3910/hppcalc/internal/logger"
	"github.com/piwi3910/hppcalc/internal/model"
	"github.com/piwi3910/hppcalc/internal/project"
	"github.com/piwi3910/hppcalc/internal/session"
	"github.com/piwi3910/hppcalc/internal/store"
)

// History drivers accepted in the app config.
const (
	driverFile   = "file"
	driverSQLite = "sqlite"
)

type app struct {
	opts    options
	cfg     model.AppConfig
	log     *slog.Logger
	out     io.Writer
	history project.HistoryStore
	closeFn func() error
	now     func() time.Time
}

func newApp(o options, flags *pflag.FlagSet, out io.Writer) (*app, error) {
	cfg, err := project.LoadAppConfigWithFlags(o.configPath, flags)
	if err != nil {
		return nil, err
	}
	log := logger.New(cfg.LogLevel, cfg.LogFormat)

	history, closeFn, err := openHistory(cfg, log)
	if err != nil {
		return nil, err
	}
	return &app{
		opts:    o,
		cfg:     cfg,
		log:     log,
		out:     out,
		history: history,
		closeFn: closeFn,
		now:     time.Now,
	}, nil
}

// openHistory returns the history store selected by the config.
func openHistory(cfg model.AppConfig, log *slog.Logger) (project.HistoryStore, func() error, error) {
	switch strings.ToLower(cfg.HistoryDriver) {
	case "", driverFile:
		h := project.NewFileHistory(project.DefaultHistoryPath(cfg), cfg.HistoryLimit, log)
		return h, func() error { return nil }, nil
	case driverSQLite:
		dir := project.DataDir(cfg)
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, nil, fmt.Errorf("create data directory: %w", err)
		}
		h, err := store.OpenHistory(store.DefaultPath(dir), cfg.HistoryLimit, log)
		if err != nil {
			return nil, nil, fmt.Errorf("open history database: %w", err)
		}
		return h, h.Close, nil
	default:
		return nil, nil, fmt.Errorf("unknown history driver %q (want %s or %s)", cfg.HistoryDriver, driverFile, driverSQLite)
	}
}

func (a *app) close() {
	if err := a.closeFn(); err != nil {
		a.log.Warn("failed to close history", "error", err)
	}
}

func (a *app) run(ctx context.Context) error {
	switch {
	case a.opts.listHistory:
		return a.printHistory(ctx)
	case a.opts.clearHistory:
		if err := a.history.Clear(ctx); err != nil {
			return err
		}
		fmt.Fprintln(a.out, "History cleared.")
		return nil
	case a.opts.backupPath != "":
		return a.backup(ctx)
	case a.opts.restorePath != "":
		return a.restore(ctx)
	case a.opts.importPresets != "":
		return a.importInventory()
	}
	return a.estimate(ctx)
}

// estimate builds the session, resolves everything and writes the outputs.
func (a *app) estimate(ctx context.Context) error {
	p, err := a.loadProject()
	if err != nil {
		return err
	}
	sess := session.New(p, session.WithLogger(a.log))

	if a.opts.overhead != "" {
		sess.SetOverheadPercent(model.Value(a.opts.overhead))
	}
	if a.opts.units > 0 {
		sess.SetUnitCount(a.opts.units)
	}
	if a.opts.importPath != "" {
		if err := a.importMaterials(sess); err != nil {
			return err
		}
	}
	if len(a.opts.presets) > 0 {
		if err := a.addPresets(sess); err != nil {
			return err
		}
	}

	sess.ComputeAll()
	resolved := sess.Project()
	totals := sess.Totals()
	a.log.Info("estimate computed",
		"project", resolved.Name,
		"materials", len(resolved.Materials),
		"units", totals.UnitCount,
		"grand_total", totals.GrandTotal)

	printEstimate(a.out, resolved, totals, a.opts.showTrail)
	if a.opts.compare {
		printComparison(a.out, sess.Compare(a.opts.compareUnits))
	}

	if err := a.writeOutputs(resolved, totals); err != nil {
		return err
	}

	if !a.opts.noHistory {
		if err := a.history.Save(ctx, sess.Snapshot(a.now())); err != nil {
			return fmt.Errorf("save history: %w", err)
		}
	}
	return nil
}

// loadProject opens the project file or starts a new project.
func (a *app) loadProject() (model.Project, error) {
	if a.opts.newName != "" {
		if a.opts.template == "" {
			return model.NewProject(a.opts.newName, a.cfg), nil
		}
		templates, err := project.LoadTemplates(a.opts.templatesPath)
		if err != nil {
			return model.Project{}, fmt.Errorf("load templates: %w", err)
		}
		t := templates.FindByName(a.opts.template)
		if t == nil {
			return model.Project{}, fmt.Errorf("template %q not found", a.opts.template)
		}
		return t.ToProject(a.opts.newName), nil
	}

	if a.opts.projectPath == "" {
		return model.Project{}, fmt.Errorf("no project file given (use --new to start one)")
	}
	p, err := project.LoadProject(a.opts.projectPath)
	if err != nil {
		return model.Project{}, err
	}
	a.rememberProject(a.opts.projectPath)
	return p, nil
}

func (a *app) importMaterials(sess *session.Session) error {
	var result importer.ImportResult
	switch strings.ToLower(filepath.Ext(a.opts.importPath)) {
	case ".csv", ".txt":
		result = importer.ImportCSV(a.opts.importPath, a.cfg)
	case ".xlsx", ".xlsm":
		result = importer.ImportExcel(a.opts.importPath, a.cfg)
	case ".dxf":
		result = importer.ImportDXF(a.opts.importPath, a.cfg)
	default:
		return fmt.Errorf("cannot import %s: unsupported file type", a.opts.importPath)
	}

	for _, w := range result.Warnings {
		a.log.Warn("import", "file", a.opts.importPath, "message", w)
	}
	for _, e := range result.Errors {
		a.log.Error("import", "file", a.opts.importPath, "message", e)
	}
	if len(result.Materials) == 0 {
		return fmt.Errorf("no materials imported from %s", a.opts.importPath)
	}

	added := sess.ImportMaterials(result.Materials)
	a.log.Info("materials imported", "file", a.opts.importPath, "count", len(added), "errors", len(result.Errors))
	return nil
}

func (a *app) addPresets(sess *session.Session) error {
	inv, err := project.LoadInventory(a.opts.inventoryPath)
	if err != nil {
		return fmt.Errorf("load inventory: %w", err)
	}
	for _, name := range a.opts.presets {
		preset := inv.FindByName(name)
		if preset == nil {
			return fmt.Errorf("preset %q not found in inventory", name)
		}
		sess.AddPreset(*preset)
	}
	return nil
}

// writeOutputs saves the project, template and reports that were asked for.
func (a *app) writeOutputs(p model.Project, totals model.Totals) error {
	if a.opts.savePath != "" {
		if err := project.SaveProject(a.opts.savePath, p); err != nil {
			return err
		}
		a.rememberProject(a.opts.savePath)
		a.log.Info("project saved", "path", a.opts.savePath)
	}

	if a.opts.saveTemplate != "" {
		templates, err := project.LoadTemplates(a.opts.templatesPath)
		if err != nil {
			return fmt.Errorf("load templates: %w", err)
		}
		templates.Add(model.NewProjectTemplate(a.opts.saveTemplate, "", p))
		if err := project.SaveTemplates(a.opts.templatesPath, templates); err != nil {
			return fmt.Errorf("save templates: %w", err)
		}
		a.log.Info("template saved", "name", a.opts.saveTemplate)
	}

	if a.opts.pdfPath != "" {
		opts := export.DefaultReportOptions()
		opts.GeneratedAt = a.now()
		opts.Breakdown = !a.opts.noBreakdown
		if err := export.ExportPDF(a.opts.pdfPath, p, totals, opts); err != nil {
			return fmt.Errorf("export PDF: %w", err)
		}
		a.log.Info("PDF exported", "path", a.opts.pdfPath)
	}

	if a.opts.xlsxPath != "" {
		if err := export.ExportXLSX(a.opts.xlsxPath, p, totals); err != nil {
			return fmt.Errorf("export XLSX: %w", err)
		}
		a.log.Info("XLSX exported", "path", a.opts.xlsxPath)
	}
	return nil
}

// rememberProject adds path to the recent projects of the config file. The
// file is reloaded without flags so command-line overrides are not persisted.
func (a *app) rememberProject(path string) {
	if a.opts.configPath == "" {
		return
	}
	cfg, err := project.LoadAppConfig(a.opts.configPath)
	if err != nil {
		a.log.Warn("failed to load config for recent projects", "error", err)
		return
	}
	if abs, err := filepath.Abs(path); err == nil {
		path = abs
	}
	project.AddRecentProject(&cfg, path)
	if err := project.SaveAppConfig(a.opts.configPath, cfg); err != nil {
		a.log.Warn("failed to save recent projects", "error", err)
	}
}

func (a *app) printHistory(ctx context.Context) error {
	// The database lists from its summary columns without decoding payloads.
	if db, ok := a.history.(*store.SQLiteHistory); ok {
		sums, err := db.Summaries(ctx)
		if err != nil {
			return err
		}
		printHistory(a.out, summaryRows(sums))
		return nil
	}
	entries, err := a.history.List(ctx)
	if err != nil {
		return err
	}
	printHistory(a.out, entryRows(entries))
	return nil
}

func (a *app) backup(ctx context.Context) error {
	inv, err := project.LoadInventory(a.opts.inventoryPath)
	if err != nil {
		return fmt.Errorf("load inventory: %w", err)
	}
	templates, err := project.LoadTemplates(a.opts.templatesPath)
	if err != nil {
		return fmt.Errorf("load templates: %w", err)
	}
	entries, err := a.history.List(ctx)
	if err != nil {
		return err
	}
	if err := project.ExportAllData(a.opts.backupPath, project.NewBackup(a.cfg, inv, templates, entries)); err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Backup written to %s\n", a.opts.backupPath)
	return nil
}

// restore replaces config, inventory, templates and history with a backup.
func (a *app) restore(ctx context.Context) error {
	data, err := project.ImportAllData(a.opts.restorePath)
	if err != nil {
		return err
	}
	if a.opts.configPath != "" {
		if err := project.SaveAppConfig(a.opts.configPath, data.Config); err != nil {
			return fmt.Errorf("restore config: %w", err)
		}
	}
	if err := project.SaveInventory(a.opts.inventoryPath, data.Inventory); err != nil {
		return fmt.Errorf("restore inventory: %w", err)
	}
	if err := project.SaveTemplates(a.opts.templatesPath, data.Templates); err != nil {
		return fmt.Errorf("restore templates: %w", err)
	}

	if err := a.history.Clear(ctx); err != nil {
		return err
	}
	// Oldest first so the newest entry ends up on top
	for i := len(data.History) - 1; i >= 0; i-- {
		if err := a.history.Save(ctx, data.History[i]); err != nil {
			return fmt.Errorf("restore history: %w", err)
		}
	}
	fmt.Fprintf(a.out, "Restored backup from %s (%d history entries)\n", a.opts.restorePath, len(data.History))
	return nil
}

func (a *app) importInventory() error {
	inv, err := project.LoadInventory(a.opts.inventoryPath)
	if err != nil {
		return fmt.Errorf("load inventory: %w", err)
	}
	before := len(inv.Presets)
	inv, err = project.ImportInventory(a.opts.importPresets, inv)
	if err != nil {
		return fmt.Errorf("import inventory: %w", err)
	}
	if err := project.SaveInventory(a.opts.inventoryPath, inv); err != nil {
		return fmt.Errorf("save inventory: %w", err)
	}
	fmt.Fprintf(a.out, "Imported %d presets\n", len(inv.Presets)-before)
	return nil
}
