package cmd

import (
	"context"

	"github.com/mj1618/window-monitor/internal/model"
	"github.com/mj1618/window-monitor/internal/output"
	"github.com/mj1618/window-monitor/internal/platform"
	"github.com/spf13/cobra"
)

// ProbeResult is the output of a single probe.
type ProbeResult struct {
	OK      bool              `yaml:"ok"              json:"ok"`
	Process string            `yaml:"process"         json:"process"`
	Rect    *model.WindowRect `yaml:"rect,omitempty"  json:"rect,omitempty"`
	Error   string            `yaml:"error,omitempty" json:"error,omitempty"`
}

var probeCmd = &cobra.Command{
	Use:   "probe",
	Short: "Print the window's current bounds once",
	Long:  "Probe the first window of the target process once and print its position and size as YAML or JSON.",
	Args:  cobra.NoArgs,
	RunE:  runProbe,
}

func init() {
	rootCmd.AddCommand(probeCmd)
}

func runProbe(cmd *cobra.Command, args []string) error {
	cfg, err := loadSettings(cmd)
	if err != nil {
		return err
	}
	prober, err := newProber(cfg)
	if err != nil {
		return err
	}
	result := probeOnce(cmd.Context(), prober, cfg.Process)
	return output.Print(cmd.OutOrStdout(), output.Format(cfg.Format), result)
}

// probeOnce runs a single probe. A failed probe is reported in the result,
// not as an error.
func probeOnce(ctx context.Context, prober platform.BoundsProber, process string) ProbeResult {
	rect, err := prober.WindowBounds(ctx, process)
	if err != nil {
		return ProbeResult{OK: false, Process: process, Error: err.Error()}
	}
	return ProbeResult{OK: true, Process: process, Rect: &rect}
}
