package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"github.com/ukaji3/sheetdiff-go/pkg/sheetdiff"
	"github.com/ukaji3/sheetdiff-go/pkg/sheetdiff/models"
	"github.com/ukaji3/sheetdiff-go/pkg/sheetdiff/output"
)

type parseFlags struct {
	outputPath string
	format     string
	pretty     bool
	sheetsDir  string
}

func newParseCmd(c *cli) *cobra.Command {
	pf := &parseFlags{}

	parseCmd := &cobra.Command{
		Use:   "parse [input.xlsx]",
		Short: "Print the normalized document for a spreadsheet",
		Long: `Parse a spreadsheet into the normalized document that check compares
against. The input defaults to the configured xlsx path.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runParse(cmd, args, pf)
		},
	}

	parseCmd.Flags().StringVarP(&pf.outputPath, "output", "o", "", "Output file path (default: stdout)")
	parseCmd.Flags().StringVar(&pf.format, "format", "json", "Output format: json, yaml, or toon")
	parseCmd.Flags().BoolVar(&pf.pretty, "pretty", false, "Pretty-print JSON output")
	parseCmd.Flags().StringVar(&pf.sheetsDir, "sheets-dir", "", "Directory for per-sheet JSON files")

	return parseCmd
}

func (c *cli) runParse(cmd *cobra.Command, args []string, pf *parseFlags) error {
	cfg, opts, err := c.loadOptions(cmd)
	if err != nil {
		return err
	}

	inputPath := cfg.XLSX
	if len(args) > 0 {
		inputPath = args[0]
	}

	wb, err := sheetdiff.Parse(inputPath, opts)
	if err != nil {
		return reportMissing(cmd, err)
	}

	data, err := encodeWorkbook(wb, pf.format, pf.pretty)
	if err != nil {
		return fmt.Errorf("serialization failed: %w", err)
	}

	if pf.outputPath != "" {
		if err := os.WriteFile(pf.outputPath, data, 0644); err != nil {
			return fmt.Errorf("failed to write output: %w", err)
		}
	} else if pf.sheetsDir == "" {
		out := cmd.OutOrStdout()
		if _, err := out.Write(data); err != nil {
			return err
		}
		if len(data) > 0 && data[len(data)-1] != '\n' {
			fmt.Fprintln(out)
		}
	}

	if pf.sheetsDir != "" {
		if err := writeSheetFiles(wb, pf.sheetsDir, pf.pretty); err != nil {
			return fmt.Errorf("failed to write sheet files: %w", err)
		}
	}

	return nil
}

func encodeWorkbook(wb *models.WorkbookData, format string, pretty bool) ([]byte, error) {
	switch format {
	case "json":
		return output.ToJSON(wb, pretty)
	case "yaml":
		return output.ToYAML(wb)
	case "toon":
		s, err := output.ToTOON(wb)
		if err != nil {
			return nil, err
		}
		return []byte(s), nil
	}
	return nil, fmt.Errorf("invalid format: %s (must be json, yaml, or toon)", format)
}

func writeSheetFiles(wb *models.WorkbookData, dir string, pretty bool) error {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	for _, sheetName := range wb.SheetNames {
		sheet := wb.Sheets[sheetName]
		jsonData, err := output.SheetToJSON(&sheet, pretty)
		if err != nil {
			return err
		}

		name, err := sheetFileName(sheetName)
		if err != nil {
			return err
		}
		filename := filepath.Join(dir, name)
		if err := os.WriteFile(filename, jsonData, 0644); err != nil {
			return err
		}
	}

	return nil
}

var sheetNameEscaper = strings.NewReplacer("/", "_", "\\", "_", "\x00", "_")

// sheetFileName maps a sheet name to a file name inside the sheets
// directory. Path separators are replaced so a name cannot leave it.
func sheetFileName(sheetName string) (string, error) {
	name := sheetNameEscaper.Replace(sheetName) + ".json"
	if !filepath.IsLocal(name) || filepath.Base(name) != name {
		return "", fmt.Errorf("unsafe sheet name %q", sheetName)
	}
	return name, nil
}
