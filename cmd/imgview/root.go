package main

import (
	"context"
	"fmt"

	"imgview/internal/config"
	"imgview/internal/gui"
	"imgview/internal/log"
	"imgview/internal/metrics"
	"imgview/internal/session"

	"github.com/spf13/cobra"
)

// options holds the persistent flags and what they resolve to.
type options struct {
	cfgFile     string
	debug       bool
	jsonLog     bool
	logFile     string
	metricsAddr string

	cfg     *config.Config
	metrics *metrics.Metrics
}

// NewRootCmd creates the root command
func NewRootCmd() *cobra.Command {
	opts := &options{}

	rootCmd := &cobra.Command{
		Use:   "imgview [path]",
		Short: "A fast image viewer for folders of pictures",
		Long: `imgview opens an image or a folder and lets you page through the
folder's pictures sorted by modification time, creation time or size.
Neighbouring images are decoded in the background so paging is instant.`,
		Version:       version,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return opts.setup(cmd)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			ctrl, err := opts.controller()
			if err != nil {
				return err
			}
			defer ctrl.Close()

			if !gui.IsGUIAvailable() {
				log.Info("GUI not available, starting the terminal viewer")
				return runTUI(ctrl, firstArg(args))
			}
			return gui.Start(gui.NewFactory(opts.cfg, ctrl), firstArg(args))
		},
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVarP(&opts.cfgFile, "config", "c", "", "config file (default ~/.config/imgview/config.yaml)")
	flags.BoolVar(&opts.debug, "debug", false, "enable debug logging")
	flags.BoolVar(&opts.jsonLog, "json-log", false, "log one JSON object per line")
	flags.StringVar(&opts.logFile, "log-file", "", "also write logs to this file")
	flags.StringVar(&opts.metricsAddr, "metrics-addr", "", "serve Prometheus metrics on host:port")

	rootCmd.AddCommand(tuiCmd(opts))
	rootCmd.AddCommand(listCmd(opts))
	rootCmd.AddCommand(formatsCmd(opts))
	rootCmd.AddCommand(configCmd(opts))

	return rootCmd
}

// setup loads the configuration and applies logging and metrics settings.
func (o *options) setup(cmd *cobra.Command) error {
	var err error
	if o.cfgFile != "" {
		o.cfg, err = config.LoadConfigFile(o.cfgFile)
	} else {
		o.cfg, err = config.LoadConfig()
	}
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	if cmd.Flags().Changed("debug") {
		o.cfg.Logging.Debug = o.debug
	}
	if cmd.Flags().Changed("json-log") {
		o.cfg.Logging.JSON = o.jsonLog
	}
	if cmd.Flags().Changed("log-file") {
		o.cfg.Logging.File = o.logFile
	}
	if cmd.Flags().Changed("metrics-addr") {
		o.cfg.Metrics.Addr = o.metricsAddr
	}

	var logOpts []log.Option
	if o.cfg.Logging.JSON {
		logOpts = append(logOpts, log.WithJSON())
	}
	if o.cfg.Logging.File != "" {
		logOpts = append(logOpts, log.WithFile(o.cfg.Logging.File))
	}
	log.Configure(append(logOpts, log.WithOutput(cmd.ErrOrStderr()))...)
	log.SetDebug(o.cfg.Logging.Debug)

	if o.cfg.Metrics.Addr != "" {
		o.metrics = metrics.Default()
		go serveMetrics(cmd.Context(), o.metrics, o.cfg.Metrics.Addr)
	}
	return nil
}

func (o *options) controller() (*session.Controller, error) {
	return session.New(o.cfg, session.WithMetrics(o.metrics), session.WithLogger(log.Default()))
}

func serveMetrics(ctx context.Context, m *metrics.Metrics, addr string) {
	if ctx == nil {
		ctx = context.Background()
	}
	if err := m.Serve(ctx, addr); err != nil {
		log.LogWithError(err).Error("metrics server stopped")
	}
}

func firstArg(args []string) string {
	if len(args) == 0 {
		return ""
	}
	return args[0]
}
