package main

import (
	"errors"

	"github.com/spf13/cobra"
	"github.com/ukaji3/sheetdiff-go/pkg/sheetdiff"
	"github.com/ukaji3/sheetdiff-go/pkg/sheetdiff/output"
)

func newCheckCmd(c *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "check",
		Short: "Compare the spreadsheet with the stored JSON (default command)",
		Args:  cobra.NoArgs,
		RunE:  c.runCheck,
	}
}

func (c *cli) runCheck(cmd *cobra.Command, args []string) error {
	cfg, opts, err := c.loadOptions(cmd)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	result, err := sheetdiff.Check(cfg.XLSX, cfg.JSON, opts)
	if err != nil {
		return reportMissing(cmd, err)
	}

	if err := output.WriteReport(out, cfg.XLSX, cfg.JSON, result.Differences, cfg.MaxDiffs); err != nil {
		return err
	}
	if !result.Matched() {
		return &exitError{code: exitMismatch}
	}
	return nil
}

// reportMissing prints a missing-input message and maps it to its exit
// code. Other errors pass through unchanged.
func reportMissing(cmd *cobra.Command, err error) error {
	var missing *sheetdiff.MissingInputError
	if !errors.As(err, &missing) {
		return err
	}
	if werr := output.WriteMissing(cmd.OutOrStdout(), missing.Path); werr != nil {
		return werr
	}
	return &exitError{code: exitMissingInput}
}
