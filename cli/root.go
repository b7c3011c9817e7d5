// Package cli contains the farmbot command tree.
package cli

import (
	"fmt"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"farmbot/backend"
	"farmbot/config"
	"farmbot/ui"
)

// Version is the current version of farmbot
var Version = "v0.1.0"

// rootOptions holds the persistent flags shared by every command
type rootOptions struct {
	configPath string
	backendURL string
	timeout    time.Duration
}

// NewRootCmd builds the farmbot command tree. Running it without a
// subcommand starts the interactive view.
func NewRootCmd() *cobra.Command {
	opts := &rootOptions{}

	rootCmd := &cobra.Command{
		Use:   "farmbot",
		Short: "Crop recommendations, chat and charts in the terminal",
		Long: `farmbot talks to a crop recommendation server. Without a subcommand it opens
an interactive view with a chat log, a filter panel and a suitability chart.

The subcommands run the same requests without the interactive view:

Examples:
  farmbot                                    # Interactive view
  farmbot ask "What grows in clay soil?"     # One question, plain reply
  farmbot ask "Best crop?" --season Rabi     # Ask with filters
  farmbot options season                     # List the server's seasons
  farmbot chart --soil Clay --kind radar     # Print the suitability chart`,
		Version:       Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			config.InitDebugLog()
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInteractive(opts)
		},
	}

	pf := rootCmd.PersistentFlags()
	pf.StringVar(&opts.configPath, "config", "", "Path to settings.toml (default: ~/.config/farmbot/settings.toml)")
	pf.StringVar(&opts.backendURL, "backend", "", "Backend base URL, overrides settings and FARMBOT_BACKEND_URL")
	pf.DurationVar(&opts.timeout, "timeout", 0, "Per-request timeout (0 uses the configured value)")

	rootCmd.AddCommand(
		newAskCmd(opts),
		newOptionsCmd(opts),
		newChartCmd(opts),
	)

	return rootCmd
}

// Execute runs the command tree and exits non-zero on failure
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

// loadConfig reads settings and applies flag overrides on top
func (o *rootOptions) loadConfig() (*config.Config, error) {
	path := config.GetSettingsFilePath()
	if o.configPath != "" {
		path = config.ExpandPath(o.configPath)
	}

	cfg, err := config.LoadFrom(path)
	if err != nil {
		return nil, err
	}

	if o.backendURL != "" {
		cfg.BackendURL = o.backendURL
	}
	if o.timeout > 0 {
		cfg.RequestTimeout = o.timeout
	}

	return cfg, nil
}

func runInteractive(opts *rootOptions) error {
	cfg, err := opts.loadConfig()
	if err != nil {
		return showStartupError("Configuration Error", err)
	}

	client, err := backend.NewClient(cfg.BackendURL, nil)
	if err != nil {
		return showStartupError("Backend Error", err)
	}

	if config.DebugLog != nil {
		config.DebugLog.Printf("[CLI] starting farmbot %s against %s", Version, client.BaseURL())
	}

	view := ui.NewAppView(cfg, client).WithVersion(Version)
	p := tea.NewProgram(view, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("failed to run interactive view: %w", err)
	}
	return nil
}

// showStartupError shows cause full-screen until dismissed, then returns it
func showStartupError(title string, cause error) error {
	p := tea.NewProgram(ui.NewErrorModal(title, cause.Error()), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("failed to show error: %w", err)
	}
	return cause
}
