package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/ukaji3/sheetdiff-go/pkg/sheetdiff"
	"github.com/ukaji3/sheetdiff-go/pkg/sheetdiff/config"
	"github.com/ukaji3/sheetdiff-go/pkg/sheetdiff/output"
)

// cli holds per-invocation state shared by the commands.
type cli struct {
	v       *viper.Viper
	cfgFile string
	verbose bool
}

func newRootCmd() *cobra.Command {
	c := &cli{v: config.New()}

	rootCmd := &cobra.Command{
		Use:   "sheetdiff",
		Short: "Check that a spreadsheet and its JSON export describe the same data",
		Long: `sheetdiff parses an xlsx workbook into a normalized document
(sheets -> headers + rows) and compares it with a stored JSON file.

Run without arguments from the project root to check the default files.
Exit status: 0 match, 1 mismatch, 2 missing input, 3 other failure.`,
		Example: `
  # Check abitur-2025.xlsx against static/abitur-2025.json
  sheetdiff

  # Check other files with the excelize engine
  sheetdiff check --xlsx data.xlsx --json static/data.json --engine excelize

  # Regenerate the JSON artifact
  sheetdiff parse --pretty -o static/abitur-2025.json
`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return config.ReadFile(c.v, c.cfgFile, ".")
		},
		RunE: c.runCheck,
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&c.cfgFile, "config", "", "Config file (default: ./.sheetdiff.yaml if present)")
	flags.BoolVarP(&c.verbose, "verbose", "v", false, "Print per-sheet progress to stderr")
	flags.String("xlsx", "abitur-2025.xlsx", "Spreadsheet to parse")
	flags.String("json", "static/abitur-2025.json", "Stored JSON document to compare against")
	flags.String("engine", "raw", "Cell reader: raw, excelize, or xlsxreader")
	flags.Int("max-diffs", output.DefaultMaxDiffs, "Differences to list before summarising (0 = all)")
	flags.Float64("tolerance", 1e-9, "Absolute tolerance for numeric comparison")
	flags.String("source", "", "Override the workbook source label (default: file name)")

	for key, name := range map[string]string{
		config.KeyXLSX:      "xlsx",
		config.KeyJSON:      "json",
		config.KeyEngine:    "engine",
		config.KeyMaxDiffs:  "max-diffs",
		config.KeyTolerance: "tolerance",
		config.KeySource:    "source",
	} {
		cobra.CheckErr(c.v.BindPFlag(key, flags.Lookup(name)))
	}

	rootCmd.AddCommand(newCheckCmd(c), newParseCmd(c), newConfigCmd(c))
	return rootCmd
}

// loadOptions validates the merged configuration and turns it into
// library options.
func (c *cli) loadOptions(cmd *cobra.Command) (*config.Config, sheetdiff.Options, error) {
	cfg, err := config.LoadAndValidate(c.v)
	if err != nil {
		return nil, sheetdiff.Options{}, err
	}

	engine, err := sheetdiff.ParseEngine(cfg.Engine)
	if err != nil {
		return nil, sheetdiff.Options{}, err
	}

	opts := sheetdiff.DefaultOptions()
	opts.Engine = engine
	opts.Source = cfg.Source
	opts.Tolerance = cfg.Tolerance
	if c.verbose {
		stderr := cmd.ErrOrStderr()
		opts.OnSheet = func(name string, headers, rows int) {
			fmt.Fprintf(stderr, "parsed sheet %q: %d headers, %d rows\n", name, headers, rows)
		}
	}
	return cfg, opts, nil
}
