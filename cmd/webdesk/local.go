package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/yourusername/webdesk/internal/config"
	"github.com/yourusername/webdesk/internal/output"
	"github.com/yourusername/webdesk/internal/registry"
	"github.com/yourusername/webdesk/internal/script"
)

// runCmd replays a scenario without a daemon
var runCmd = &cobra.Command{
	Use:   "run <script.yaml>",
	Short: "Replay a scenario file against a private desktop",
	Long: `Loads the configured applications, replays every step of the scenario on
a fresh desktop and prints the outcome of each step. Exits non-zero when an
expectation fails or an invariant is broken.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := script.Load(args[0])
		if err != nil {
			return err
		}

		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		reg, err := registry.FromConfig(cfg)
		if err != nil {
			return err
		}

		res, err := script.Run(cmd.Context(), s, script.Options{
			Registry: reg,
			Metrics:  metricsFromConfig(cfg),
			Viewport: cfg.GetViewport(),
		})
		if err != nil {
			return err
		}

		if jsonOutput {
			if err := printJSON(res); err != nil {
				return err
			}
		} else {
			output.PrintStepsTable(cmd.OutOrStdout(), res.Steps)
			fmt.Println()
			output.PrintWindowsTable(cmd.OutOrStdout(), res.Final.Windows)
		}

		if res.Failed > 0 {
			return fmt.Errorf("%d expectation(s) failed", res.Failed)
		}
		if !jsonOutput {
			successColor.Printf("✓ %d steps passed\n", len(res.Steps))
		}
		return nil
	},
}

// configCmd is the parent command for config subcommands
var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage configuration",
	Long:  `Commands for showing, validating and creating the application config.`,
}

// configShowCmd shows current config
var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show current configuration",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		return printJSON(cfg)
	},
}

// configValidateCmd validates config file
var configValidateCmd = &cobra.Command{
	Use:   "validate [path]",
	Short: "Validate configuration file",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path := configPath
		if len(args) > 0 {
			path = args[0]
		}

		cfg, err := config.LoadConfig(path)
		if err != nil {
			return fmt.Errorf("validation failed: %w", err)
		}
		reg, err := registry.FromConfig(cfg)
		if err != nil {
			return fmt.Errorf("validation failed: %w", err)
		}

		successColor.Println("✓ Configuration is valid")
		fmt.Printf("  Viewport: %s\n", cfg.GetViewport())
		fmt.Printf("  Min Size: %s\n", cfg.GetMinSize())
		fmt.Printf("  Apps: %d\n", reg.Len())
		return nil
	},
}

// configInitCmd writes the builtin apps to the config file
var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Create default configuration file",
	RunE: func(cmd *cobra.Command, args []string) error {
		path := configPath
		if path == "" {
			path = config.GetConfigPath()
		}

		if _, err := os.Stat(path); err == nil {
			return fmt.Errorf("config file already exists at %s", path)
		}

		data, err := config.Marshal(config.DefaultConfig())
		if err != nil {
			return err
		}

		if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
			return fmt.Errorf("failed to create config directory: %w", err)
		}
		if err := os.WriteFile(path, data, 0644); err != nil {
			return fmt.Errorf("failed to write config file: %w", err)
		}

		successColor.Printf("✓ Created default config at: %s\n", path)
		return nil
	},
}
