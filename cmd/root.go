package cmd

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"seat-reservation/booking"
	"seat-reservation/config"
	"seat-reservation/logger"
	"seat-reservation/service"
	"seat-reservation/tui"
)

// BuildInfo is stamped at build time through main.
type BuildInfo struct {
	Version string
	Commit  string
}

type options struct {
	configPath string
	apiURL     string
}

// app bundles what every command needs once configuration is loaded.
type app struct {
	cfg        *config.Config
	log        *logger.Logger
	controller *booking.Controller
}

func (a *app) Close() {
	_ = a.log.Close()
}

// NewRootCommand builds the command tree. Running it without a subcommand
// starts the interactive seat map.
func NewRootCommand(info BuildInfo) *cobra.Command {
	opts := &options{}

	root := &cobra.Command{
		Use:           config.AppName,
		Short:         "Reserve train seats from the terminal",
		Long:          `Browse the coach seat map and book seats; parties are seated together in one row when possible.`,
		Version:       versionString(info),
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(opts, nil)
			if err != nil {
				return err
			}
			defer a.Close()

			_, err = tea.NewProgram(tui.New(a.controller, a.log), tea.WithAltScreen()).Run()
			return err
		},
	}
	root.SetVersionTemplate("{{.Version}}\n")
	root.PersistentFlags().StringVar(&opts.configPath, "config", "", "path to a YAML config file")
	root.PersistentFlags().StringVar(&opts.apiURL, "api-url", "", "seat API base URL (overrides config)")

	root.AddCommand(
		newSeatsCommand(opts),
		newBookCommand(opts),
		newThemeCommand(),
		newVersionCommand(info),
	)
	return root
}

// Execute runs the CLI and exits non-zero on failure.
func Execute(info BuildInfo) {
	if err := NewRootCommand(info).Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newApp(opts *options, console io.Writer) (*app, error) {
	cfg, err := config.Load(opts.configPath)
	if err != nil {
		return nil, err
	}
	if opts.apiURL != "" {
		cfg.API.BaseURL = opts.apiURL
		if err := cfg.Validate(); err != nil {
			return nil, err
		}
	}

	log, err := logger.New(logger.Options{Level: cfg.LogLevel(), Dir: cfg.Log.Dir, Console: console})
	if err != nil {
		fmt.Fprintf(os.Stderr, "warning: %v\n", err)
		log, _ = logger.New(logger.Options{Level: cfg.LogLevel(), Console: console})
	}

	client := service.NewClient(&http.Client{Timeout: cfg.API.Timeout}, cfg.API.BaseURL)
	client.SetMaxAttempts(cfg.API.MaxAttempts)
	client.SetLogger(log)

	return &app{
		cfg:        cfg,
		log:        log,
		controller: booking.NewController(client, log),
	}, nil
}

func commandContext(cmd *cobra.Command, timeout time.Duration) (context.Context, context.CancelFunc) {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	return context.WithTimeout(ctx, timeout)
}

func versionString(info BuildInfo) string {
	version := info.Version
	if version == "" {
		version = "dev"
	}
	out := fmt.Sprintf("%s %s", config.AppName, version)
	if info.Commit != "none" && info.Commit != "" {
		out += fmt.Sprintf(" (%s)", info.Commit)
	}
	return out
}

func newVersionCommand(info BuildInfo) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version number",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintln(cmd.OutOrStdout(), versionString(info))
		},
	}
}
