package output

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/mj1618/window-monitor/internal/model"
	"gopkg.in/yaml.v3"
)

// Reporter receives the lifecycle of a monitoring session.
type Reporter interface {
	Start(process string) error
	Report(change model.Change) error
	Stop() error
}

// NewReporter returns the Reporter for format writing to w.
func NewReporter(w io.Writer, format Format) (Reporter, error) {
	switch format {
	case FormatText:
		return NewTextReporter(w), nil
	case FormatJSON:
		return NewJSONReporter(w), nil
	case FormatYAML:
		return NewYAMLReporter(w), nil
	default:
		return nil, fmt.Errorf("unsupported output format: %s", format)
	}
}

// TextReporter prints one human-readable line per change.
type TextReporter struct {
	w io.Writer
	// interactive prefixes the stop notice with a newline so it does not
	// share a line with the terminal's ^C echo.
	interactive bool
}

func NewTextReporter(w io.Writer) *TextReporter {
	return &TextReporter{w: w, interactive: IsTerminal(w)}
}

func (r *TextReporter) Start(process string) error {
	_, err := fmt.Fprintf(r.w, "Monitoring %s app window... Press Ctrl+C to stop\n"+
		"Format: [timestamp] x=X y=Y w=WIDTH h=HEIGHT (changes)\n"+
		"%s\n", process, strings.Repeat("-", 60))
	return err
}

func (r *TextReporter) Report(change model.Change) error {
	_, err := fmt.Fprintln(r.w, FormatChange(change))
	return err
}

func (r *TextReporter) Stop() error {
	prefix := ""
	if r.interactive {
		prefix = "\n"
	}
	_, err := fmt.Fprintf(r.w, "%sMonitoring stopped.\n", prefix)
	return err
}

// FormatChange renders a change as "[HH:MM:SS] x=X y=Y w=W h=H (deltas)".
func FormatChange(c model.Change) string {
	return fmt.Sprintf("[%s] x=%d y=%d w=%d h=%d %s",
		c.TS.Format("15:04:05"), c.Rect.X, c.Rect.Y, c.Rect.Width, c.Rect.Height, c.Suffix())
}

// event is the structured form of a session event for JSON and YAML output.
type event struct {
	Type    string            `yaml:"type"              json:"type"`
	TS      int64             `yaml:"ts"                json:"ts"`
	Time    string            `yaml:"time,omitempty"    json:"time,omitempty"`
	Process string            `yaml:"process,omitempty" json:"process,omitempty"`
	Rect    *model.WindowRect `yaml:"rect,omitempty"    json:"rect,omitempty"`
	Deltas  []model.Delta     `yaml:"deltas,omitempty"  json:"deltas,omitempty"`
	Initial bool              `yaml:"initial,omitempty" json:"initial,omitempty"`
	Elapsed string            `yaml:"elapsed,omitempty" json:"elapsed,omitempty"`
	Events  int               `yaml:"events,omitempty"  json:"events,omitempty"`
}

// structured tracks session bookkeeping shared by the JSON and YAML reporters.
type structured struct {
	now    func() time.Time
	start  time.Time
	count  int
	encode func(v interface{}) error
}

func (s *structured) Start(process string) error {
	s.start = s.now()
	return s.encode(event{Type: "start", TS: s.start.Unix(), Process: process})
}

func (s *structured) Report(c model.Change) error {
	s.count++
	rect := c.Rect
	return s.encode(event{
		Type:    "change",
		TS:      c.TS.Unix(),
		Time:    c.TS.Format("15:04:05"),
		Rect:    &rect,
		Deltas:  c.Deltas,
		Initial: c.Initial,
	})
}

func (s *structured) Stop() error {
	now := s.now()
	return s.encode(event{
		Type:    "done",
		TS:      now.Unix(),
		Elapsed: fmt.Sprintf("%.1fs", now.Sub(s.start).Seconds()),
		Events:  s.count,
	})
}

// JSONReporter emits one JSON object per line (JSONL).
type JSONReporter struct {
	structured
}

func NewJSONReporter(w io.Writer) *JSONReporter {
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	return &JSONReporter{structured{now: time.Now, encode: enc.Encode}}
}

// YAMLReporter emits one YAML document per event.
type YAMLReporter struct {
	structured
	enc *yaml.Encoder
}

func NewYAMLReporter(w io.Writer) *YAMLReporter {
	enc := yaml.NewEncoder(w)
	return &YAMLReporter{structured: structured{now: time.Now, encode: enc.Encode}, enc: enc}
}

func (r *YAMLReporter) Stop() error {
	if err := r.structured.Stop(); err != nil {
		return err
	}
	return r.enc.Close()
}
