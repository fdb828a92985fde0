package main

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/yourusername/webdesk/internal/client"
	"github.com/yourusername/webdesk/internal/config"
	"github.com/yourusername/webdesk/internal/logging"
	"github.com/yourusername/webdesk/internal/models"
	"github.com/yourusername/webdesk/internal/server"
	"github.com/yourusername/webdesk/internal/window"
)

var (
	socketPath string
	timeout    time.Duration
	jsonOutput bool
	noColor    bool
	debugMode  bool
	configPath string

	// Color functions
	successColor = color.New(color.FgGreen, color.Bold)
	errorColor   = color.New(color.FgRed, color.Bold)
	warnColor    = color.New(color.FgYellow, color.Bold)
	keyColor     = color.New(color.FgYellow)
)

// rootCmd is the base command
var rootCmd = &cobra.Command{
	Use:   "webdesk",
	Short: "webdesk - a simulated desktop window manager",
	Long: `webdesk runs a desktop of overlapping application windows behind a Unix
socket and drives it from the command line.

Start the daemon with 'webdesk serve', then open, focus, drag, resize,
minimize and close windows with the other commands. 'webdesk run' replays a
scenario file against a private desktop without a daemon.`,
	Version:       server.Version,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	// Global flags
	rootCmd.PersistentFlags().StringVar(&socketPath, "socket", client.DefaultSocketPath(), "Unix socket path")
	rootCmd.PersistentFlags().DurationVar(&timeout, "timeout", client.DefaultTimeout, "Request timeout")
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "Output in JSON format")
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "Disable colored output")
	rootCmd.PersistentFlags().BoolVar(&debugMode, "debug", false, "Enable debug logging")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Config file (default ~/"+config.DefaultConfigDir+"/"+config.DefaultConfigFile+")")

	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(pingCmd)
	rootCmd.AddCommand(appsCmd)
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(showCmd)
	rootCmd.AddCommand(getCmd)
	rootCmd.AddCommand(dumpCmd)
	rootCmd.AddCommand(openCmd)
	rootCmd.AddCommand(focusCmd)
	rootCmd.AddCommand(minimizeCmd)
	rootCmd.AddCommand(restoreCmd)
	rootCmd.AddCommand(closeCmd)
	rootCmd.AddCommand(moveCmd)
	rootCmd.AddCommand(resizeCmd)
	rootCmd.AddCommand(updateCmd)
	rootCmd.AddCommand(pointerCmd)
	rootCmd.AddCommand(viewportCmd)
	rootCmd.AddCommand(blurCmd)
	rootCmd.AddCommand(focusDirCmd)
	rootCmd.AddCommand(cycleCmd)
	rootCmd.AddCommand(arrangeCmd)

	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configValidateCmd)
	configCmd.AddCommand(configInitCmd)

	initServeFlags()
	initWindowFlags()

	// Disable color if requested, enable debug logging if requested
	cobra.OnInitialize(func() {
		if noColor {
			color.NoColor = true
		}
		if debugMode {
			logging.SetDebug(true)
		}
	})
}

func main() {
	if err := logging.Init(); err != nil {
		fmt.Fprintf(os.Stderr, "warning: file logging disabled: %v\n", err)
	}
	defer logging.Close()

	if err := rootCmd.Execute(); err != nil {
		printError(err.Error())
		os.Exit(1)
	}
}

// Helper functions

func printJSON(data interface{}) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(data)
}

func printError(msg string) {
	if noColor {
		fmt.Fprintln(os.Stderr, "Error:", msg)
	} else {
		errorColor.Fprint(os.Stderr, "✗ Error: ")
		fmt.Fprintln(os.Stderr, msg)
	}
}

func newClient() *client.Client {
	return client.NewClient(socketPath, timeout)
}

// loadConfig loads --config, or the default file, or the builtin apps
func loadConfig() (*config.Config, error) {
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	return cfg, nil
}

// metricsFromConfig returns the chrome metrics the config asks for
func metricsFromConfig(cfg *config.Config) window.Metrics {
	return window.Metrics{
		TitleBarHeight:  cfg.GetTitleBarHeight(),
		HandleThickness: cfg.GetHandleThickness(),
		ControlWidth:    cfg.GetControlWidth(),
	}
}

// getState retrieves the current state from the daemon
func getState(cmd *cobra.Command) (*models.State, error) {
	c := newClient()
	defer c.Close()

	state, err := c.Dump(cmd.Context())
	if err != nil {
		return nil, fmt.Errorf("failed to get state: %w", err)
	}
	return state, nil
}
