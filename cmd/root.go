package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/mj1618/window-monitor/internal/config"
	"github.com/mj1618/window-monitor/internal/monitor"
	"github.com/mj1618/window-monitor/internal/output"
	"github.com/mj1618/window-monitor/internal/platform"
	"github.com/mj1618/window-monitor/internal/version"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "window-monitor",
	Short: "Watch an application window's position and size",
	Long: `Poll the bounds of an application's first window and print a line whenever it moves or resizes.

Each line shows the current position and size, followed by the signed change of every field
that moved since the previous line, or "(initial)" for the first observation. Polls where the
app has no window (or the probe fails) are skipped silently.

Use Ctrl+C or --duration to stop monitoring.`,
	Args:         cobra.NoArgs,
	SilenceUsage: true,
	RunE:         runMonitor,
}

// Execute runs the root command. Interrupts cancel the command context so
// the monitor can print its stop notice before exiting.
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := rootCmd.ExecuteContext(ctx)
	stop()
	if err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.Version = fmt.Sprintf("%s (commit: %s, built: %s)", version.Version, version.Commit, version.BuildDate)
	rootCmd.PersistentFlags().String("format", "", "Output format: text, json, yaml (default text)")
	rootCmd.PersistentFlags().String("config", "", "Config file (default ~/.config/window-monitor/config.yaml)")
	rootCmd.PersistentFlags().Bool("verbose", false, "Log skipped probes to stderr")
	rootCmd.PersistentFlags().String("process", config.DefaultProcess, "Application process name to watch")
	rootCmd.PersistentFlags().Duration("timeout", config.DefaultTimeout, "Max time for a single probe")
	rootCmd.Flags().Duration("interval", config.DefaultInterval, "Polling interval")
	rootCmd.Flags().Duration("duration", 0, "Stop after this long (0 = until Ctrl+C)")
}

// loadSettings merges the config file with any flags set on the command line.
func loadSettings(cmd *cobra.Command) (config.Config, error) {
	cfg := config.DefaultConfig()
	path, _ := cmd.Flags().GetString("config")
	if path == "" {
		// No home directory means no default file; flags still apply.
		path, _ = config.DefaultConfigPath()
	}
	if path != "" {
		loaded, err := config.LoadFromPath(path)
		if err != nil {
			return cfg, err
		}
		cfg = loaded
	}

	flags := cmd.Flags()
	if flags.Changed("process") {
		cfg.Process, _ = flags.GetString("process")
	}
	if flags.Changed("timeout") {
		cfg.Timeout, _ = flags.GetDuration("timeout")
	}
	if flags.Changed("interval") {
		cfg.Interval, _ = flags.GetDuration("interval")
	}
	if flags.Changed("duration") {
		cfg.Duration, _ = flags.GetDuration("duration")
	}
	if flags.Changed("format") {
		cfg.Format, _ = flags.GetString("format")
	}

	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

func newLogger(cmd *cobra.Command) *slog.Logger {
	level := slog.LevelWarn
	if verbose, _ := cmd.Flags().GetBool("verbose"); verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{
		Level: level,
	}))
}

func newProber(cfg config.Config) (platform.BoundsProber, error) {
	provider, err := platform.NewProvider(platform.ProviderOptions{Timeout: cfg.Timeout})
	if err != nil {
		return nil, err
	}
	if provider.Prober == nil {
		return nil, fmt.Errorf("window probing not available on this platform")
	}
	return provider.Prober, nil
}

func runMonitor(cmd *cobra.Command, args []string) error {
	cfg, err := loadSettings(cmd)
	if err != nil {
		return err
	}
	prober, err := newProber(cfg)
	if err != nil {
		return err
	}
	reporter, err := output.NewReporter(cmd.OutOrStdout(), output.Format(cfg.Format))
	if err != nil {
		return err
	}

	m := monitor.New(monitor.Config{
		Process:  cfg.Process,
		Interval: cfg.Interval,
		Duration: cfg.Duration,
		Logger:   newLogger(cmd),
	}, prober, reporter)

	return m.Run(cmd.Context())
}
