package main

import (
	"fmt"
	"io"

	"github.com/spf13/pflag"

	"github.com/piwi3910/hppcalc/internal/project"
)

// options are the command-line settings that are not app config keys.
type options struct {
	configPath    string
	projectPath   string
	newName       string
	template      string
	units         int
	overhead      string
	importPath    string
	presets       []string
	inventoryPath string
	templatesPath string
	savePath      string
	saveTemplate  string
	pdfPath       string
	xlsxPath      string
	noBreakdown   bool
	compare       bool
	compareUnits  []int
	showTrail     bool
	noHistory     bool
	listHistory   bool
	clearHistory  bool
	backupPath    string
	restorePath   string
	importPresets string
}

// parseFlags parses args. Flags named after an app config key
// (--log-level, --history-driver, ...) are left on the returned FlagSet for
// project.LoadAppConfigWithFlags to bind.
func parseFlags(args []string, stderr io.Writer) (options, *pflag.FlagSet, error) {
	var o options
	fs := pflag.NewFlagSet("hppcalc", pflag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.Usage = func() {
		fmt.Fprintln(stderr, "Usage: hppcalc [flags] [project.hpp.json]")
		fs.PrintDefaults()
	}

	fs.StringVar(&o.configPath, "config", project.DefaultConfigPath(), "app config file (JSON)")
	fs.StringVar(&o.newName, "new", "", "start a new project with this name instead of loading one")
	fs.StringVar(&o.template, "template", "", "start the new project from a saved template")
	fs.IntVar(&o.units, "units", 0, "override the project's unit count")
	fs.StringVar(&o.overhead, "overhead", "", "override the project's overhead percent")
	fs.StringVar(&o.importPath, "import", "", "add materials from a .csv, .xlsx or .dxf file")
	fs.StringSliceVar(&o.presets, "preset", nil, "add a material from the inventory by preset name (repeatable)")
	fs.StringVar(&o.inventoryPath, "inventory", project.DefaultInventoryPath(), "material preset inventory file")
	fs.StringVar(&o.templatesPath, "templates", project.DefaultTemplatePath(), "project templates file")
	fs.StringVarP(&o.savePath, "save", "o", "", "write the resolved project to this file")
	fs.StringVar(&o.saveTemplate, "save-template", "", "store the project as a template with this name")
	fs.StringVar(&o.pdfPath, "pdf", "", "export a PDF cost report")
	fs.StringVar(&o.xlsxPath, "xlsx", "", "export an XLSX cost report")
	fs.BoolVar(&o.noBreakdown, "no-breakdown", false, "leave the per-material breakdown out of the PDF")
	fs.BoolVar(&o.compare, "compare", false, "compare cost per unit across batch sizes")
	fs.IntSliceVar(&o.compareUnits, "compare-units", nil, "batch sizes to compare (default: half, current, double, five times)")
	fs.BoolVarP(&o.showTrail, "trail", "t", false, "print the calculation trail of every material")
	fs.BoolVar(&o.noHistory, "no-history", false, "do not save the estimate to history")
	fs.BoolVar(&o.listHistory, "history", false, "list saved estimates and exit")
	fs.BoolVar(&o.clearHistory, "clear-history", false, "delete all saved estimates and exit")
	fs.StringVar(&o.backupPath, "backup", "", "export config, inventory, templates and history to this file and exit")
	fs.StringVar(&o.restorePath, "restore", "", "restore a backup file and exit")
	fs.StringVar(&o.importPresets, "import-inventory", "", "merge material presets from a JSON file into the inventory and exit")

	// App config keys
	fs.String("log-level", "", "log level: debug, info, warn, error")
	fs.String("log-format", "", "log format: text or json")
	fs.String("data-dir", "", "directory for history data (default ~/.hppcalc)")
	fs.String("history-driver", "", "history storage: file or sqlite")
	fs.Int("history-limit", 0, "number of saved estimates to keep")

	if err := fs.Parse(args); err != nil {
		return o, nil, err
	}

	switch fs.NArg() {
	case 0:
	case 1:
		o.projectPath = fs.Arg(0)
	default:
		return o, nil, fmt.Errorf("expected one project file, got %d arguments", fs.NArg())
	}
	if o.compare || len(o.compareUnits) > 0 {
		o.compare = true
	}
	return o, fs, nil
}
