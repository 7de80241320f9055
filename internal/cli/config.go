package cli

import (
	"bytes"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/danieljhkim/modunpack/internal/config"
	"github.com/danieljhkim/modunpack/internal/fsops"
)

var configInitForce bool

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show or create configuration",
	Long:  `Inspect the effective configuration or write a default config file.`,
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the effective configuration",
	Long: `Print the configuration after the config file, MODUNPACK_* environment
variables and flags have been applied.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, source, err := loadConfig(cmd)
		if err != nil {
			return err
		}

		data, err := cfg.ToTOML()
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		if source == "" {
			source = "built-in defaults"
		}
		fmt.Fprintf(out, "# source: %s\n", source)
		_, err = out.Write(data)
		return err
	},
}

var configInitCmd = &cobra.Command{
	Use:   "init [path]",
	Short: "Write a default config file",
	Long: `Write the default configuration to path, or to the config home when no
path is given. An existing file is kept unless --force is set.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runConfigInit,
}

func init() {
	configInitCmd.Flags().BoolVarP(&configInitForce, "force", "f", false, "Overwrite an existing config file")

	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configInitCmd)
}

func runConfigInit(cmd *cobra.Command, args []string) error {
	var path string
	if len(args) == 1 {
		path = args[0]
	} else {
		paths, err := config.DefaultPaths()
		if err != nil {
			return err
		}
		if err := paths.EnsureRoot(); err != nil {
			return err
		}
		path = paths.Config
	}

	fs := fsops.NewRealFS()
	exists, err := fs.Exists(path)
	if err != nil {
		return fmt.Errorf("failed to check %s: %w", path, err)
	}
	if exists && !configInitForce {
		return fmt.Errorf("config file already exists at %s\nUse --force to overwrite", path)
	}

	data, err := config.DefaultConfig().ToTOML()
	if err != nil {
		return err
	}
	if err := fs.WriteFrom(path, bytes.NewReader(data), 0644); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}

	PrintSuccess(cmd.OutOrStdout(), fmt.Sprintf("Wrote default config to %s", path))
	return nil
}
