package cmd

import (
	"bytes"
	"context"
	"path/filepath"
	"regexp"
	"strings"
	"testing"
	"time"

	"github.com/mj1618/window-monitor/internal/model"
	"github.com/mj1618/window-monitor/internal/platform"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// sequenceProber replays rects in order and reports no window afterwards.
type sequenceProber struct {
	rects   []model.WindowRect
	calls   int
	process string
}

func (p *sequenceProber) WindowBounds(_ context.Context, process string) (model.WindowRect, error) {
	p.process = process
	i := p.calls
	p.calls++
	if i >= len(p.rects) {
		return model.WindowRect{}, platform.ErrNoWindow
	}
	return p.rects[i], nil
}

// useProber registers a provider backed by prober for the duration of the test.
func useProber(t *testing.T, prober platform.BoundsProber) {
	t.Helper()
	orig := platform.NewProviderFunc
	platform.NewProviderFunc = func(platform.ProviderOptions) (*platform.Provider, error) {
		return &platform.Provider{Prober: prober}, nil
	}
	t.Cleanup(func() { platform.NewProviderFunc = orig })
}

// resetFlags restores every flag to its default so tests sharing rootCmd do
// not leak state into each other.
func resetFlags(c *cobra.Command) {
	reset := func(f *pflag.Flag) {
		f.Value.Set(f.DefValue)
		f.Changed = false
	}
	c.Flags().VisitAll(reset)
	c.PersistentFlags().VisitAll(reset)
	for _, sub := range c.Commands() {
		resetFlags(sub)
	}
}

// execute runs rootCmd with args and a missing config file, returning stdout.
func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	resetFlags(rootCmd)
	t.Cleanup(func() { resetFlags(rootCmd) })

	configPath := filepath.Join(t.TempDir(), "missing.yaml")
	var out, errOut bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&errOut)
	rootCmd.SetArgs(append([]string{"--config", configPath}, args...))
	defer rootCmd.SetArgs(nil)

	err := rootCmd.ExecuteContext(context.Background())
	return out.String(), err
}

func TestRootCommand_HasSubcommands(t *testing.T) {
	expected := []string{"probe", "serve"}
	found := make(map[string]bool)
	for _, c := range rootCmd.Commands() {
		found[c.Name()] = true
	}
	for _, name := range expected {
		if !found[name] {
			t.Errorf("expected subcommand %q not found", name)
		}
	}
}

func TestRootCommand_Version(t *testing.T) {
	if rootCmd.Version == "" {
		t.Error("root command version should be set")
	}
}

func TestRootCommand_Flags(t *testing.T) {
	tests := []struct {
		name       string
		flagType   string
		persistent bool
	}{
		{"format", "string", true},
		{"config", "string", true},
		{"verbose", "bool", true},
		{"process", "string", true},
		{"timeout", "duration", true},
		{"interval", "duration", false},
		{"duration", "duration", false},
	}
	for _, tt := range tests {
		flags := rootCmd.Flags()
		if tt.persistent {
			flags = rootCmd.PersistentFlags()
		}
		f := flags.Lookup(tt.name)
		if f == nil {
			t.Errorf("expected flag %q not found", tt.name)
			continue
		}
		if f.Value.Type() != tt.flagType {
			t.Errorf("flag %q: expected type %q, got %q", tt.name, tt.flagType, f.Value.Type())
		}
	}
}

var changeLine = regexp.MustCompile(`^\[\d{2}:\d{2}:\d{2}\] x=-?\d+ y=-?\d+ w=-?\d+ h=-?\d+ \(.+\)$`)

func TestRootCommand_MonitorSession(t *testing.T) {
	p := &sequenceProber{rects: []model.WindowRect{
		{X: 10, Y: 20, Width: 800, Height: 600},
		{X: 10, Y: 20, Width: 800, Height: 600},
		{X: 10, Y: 45, Width: 800, Height: 575},
	}}
	useProber(t, p)

	out, err := execute(t, "--interval", "1ms", "--duration", "100ms")
	if err != nil {
		t.Fatalf("execute: %v", err)
	}

	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	if len(lines) != 6 {
		t.Fatalf("expected banner, 2 changes and stop notice, got:\n%s", out)
	}
	if lines[0] != "Monitoring Writer app window... Press Ctrl+C to stop" {
		t.Errorf("banner = %q", lines[0])
	}
	for _, l := range lines[3:5] {
		if !changeLine.MatchString(l) {
			t.Errorf("malformed change line %q", l)
		}
	}
	if !strings.HasSuffix(lines[3], "x=10 y=20 w=800 h=600 (initial)") {
		t.Errorf("first change = %q", lines[3])
	}
	if !strings.HasSuffix(lines[4], "x=10 y=45 w=800 h=575 (y+25, h-25)") {
		t.Errorf("second change = %q", lines[4])
	}
	if lines[5] != "Monitoring stopped." {
		t.Errorf("stop notice = %q", lines[5])
	}
	if p.process != "Writer" {
		t.Errorf("probed process = %q, want Writer", p.process)
	}
}

func TestRootCommand_ProcessFlag(t *testing.T) {
	p := &sequenceProber{}
	useProber(t, p)

	out, err := execute(t, "--process", "TextEdit", "--interval", "1ms", "--duration", "10ms")
	if err != nil {
		t.Fatalf("execute: %v", err)
	}
	if p.process != "TextEdit" {
		t.Errorf("probed process = %q, want TextEdit", p.process)
	}
	if !strings.HasPrefix(out, "Monitoring TextEdit app window") {
		t.Errorf("unexpected banner:\n%s", out)
	}
}

func TestRootCommand_JSONFormat(t *testing.T) {
	useProber(t, &sequenceProber{rects: []model.WindowRect{{X: 1, Y: 2, Width: 3, Height: 4}}})

	out, err := execute(t, "--format", "json", "--interval", "1ms", "--duration", "20ms")
	if err != nil {
		t.Fatalf("execute: %v", err)
	}
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	if len(lines) != 3 {
		t.Fatalf("expected start, change, done events, got:\n%s", out)
	}
	if !strings.Contains(lines[1], `"type":"change"`) || !strings.Contains(lines[1], `"initial":true`) {
		t.Errorf("change event = %s", lines[1])
	}
}

func TestRootCommand_InvalidFormat(t *testing.T) {
	useProber(t, &sequenceProber{})
	if _, err := execute(t, "--format", "agent"); err == nil {
		t.Error("expected error for unsupported format")
	}
}

func TestRootCommand_RejectsArgs(t *testing.T) {
	useProber(t, &sequenceProber{})
	if _, err := execute(t, "extra"); err == nil {
		t.Error("expected error for positional arguments")
	}
}

func TestRootCommand_Unsupported(t *testing.T) {
	orig := platform.NewProviderFunc
	platform.NewProviderFunc = nil
	defer func() { platform.NewProviderFunc = orig }()

	_, err := execute(t, "--duration", "10ms")
	if err != platform.ErrUnsupported {
		t.Errorf("expected ErrUnsupported, got %v", err)
	}
}

func TestRootCommand_StopsOnCancel(t *testing.T) {
	useProber(t, &sequenceProber{rects: []model.WindowRect{{X: 1, Y: 1, Width: 1, Height: 1}}})
	resetFlags(rootCmd)
	t.Cleanup(func() { resetFlags(rootCmd) })

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetArgs([]string{"--config", filepath.Join(t.TempDir(), "none.yaml"), "--interval", "1ms"})
	defer rootCmd.SetArgs(nil)

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		t.Fatalf("interrupt should exit cleanly, got %v", err)
	}
	if !strings.HasSuffix(out.String(), "Monitoring stopped.\n") {
		t.Errorf("missing stop notice:\n%s", out.String())
	}
}
