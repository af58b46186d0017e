package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/ukaji3/sheetdiff-go/pkg/sheetdiff/config"
	"github.com/ukaji3/sheetdiff-go/pkg/sheetdiff/output"
)

func newConfigCmd(c *cli) *cobra.Command {
	configCmd := &cobra.Command{
		Use:   "config",
		Short: "Create or validate the sheetdiff configuration file",
		Long: `Manage the optional configuration file.

The file sets the defaults for xlsx, json, engine, max_diffs, tolerance
and source. Flags and SHEETDIFF_* environment variables override it.`,
		Example: `
  # Write ./.sheetdiff.yaml from the example template
  sheetdiff config init

  # Validate ./.sheetdiff.yaml
  sheetdiff config validate

  # Validate a file at a custom path
  sheetdiff config validate ./ci/sheetdiff.yaml
`,
		// The file may be the one under test, so it is not loaded here.
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error { return nil },
	}

	configCmd.AddCommand(
		&cobra.Command{
			Use:   "init",
			Short: "Write the example configuration file",
			Long: `Write the example configuration to --config, or to ./.sheetdiff.yaml.

An existing file is left unchanged.`,
			Args: cobra.NoArgs,
			RunE: c.runConfigInit,
		},
		&cobra.Command{
			Use:   "validate [file]",
			Short: "Check a configuration file for invalid values",
			Args:  cobra.MaximumNArgs(1),
			RunE:  c.runConfigValidate,
		},
	)

	return configCmd
}

// configPath returns the file the config commands operate on.
func (c *cli) configPath(args []string) string {
	if len(args) > 0 {
		return args[0]
	}
	if c.cfgFile != "" {
		return c.cfgFile
	}
	return config.FileName + ".yaml"
}

func (c *cli) runConfigInit(cmd *cobra.Command, args []string) error {
	path := c.configPath(nil)

	created, err := ensureConfigFile(path)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if created {
		fmt.Fprintf(out, "New config file created at: %s\n", path)
		return nil
	}
	fmt.Fprintf(out, "Config file already exists at: %s\n", path)
	return nil
}

func (c *cli) runConfigValidate(cmd *cobra.Command, args []string) error {
	path := c.configPath(args)

	content, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		if werr := output.WriteMissing(cmd.OutOrStdout(), path); werr != nil {
			return werr
		}
		return &exitError{code: exitMissingInput}
	}
	if err != nil {
		return fmt.Errorf("reading config file failed: %w", err)
	}

	if _, err := config.ValidateYAMLContent(content); err != nil {
		return fmt.Errorf("config validation failed in %s: %w", path, err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Configuration valid: %s\n", path)
	return nil
}

// ensureConfigFile writes the example template to path unless a file is
// already there. It reports whether a file was written.
func ensureConfigFile(path string) (bool, error) {
	_, err := os.Stat(path)
	if err == nil {
		return false, nil
	}
	if !errors.Is(err, fs.ErrNotExist) {
		return false, fmt.Errorf("checking config file failed: %w", err)
	}

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return false, fmt.Errorf("creating config directory failed: %w", err)
		}
	}
	if err := os.WriteFile(path, []byte(config.ExampleYAML()), 0o600); err != nil {
		return false, fmt.Errorf("creating example config failed: %w", err)
	}

	return true, nil
}
