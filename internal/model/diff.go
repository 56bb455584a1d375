package model

import (
	"fmt"
	"strings"
	"time"
)

// Field identifies one WindowRect component in a Delta.
type Field string

const (
	FieldX      Field = "x"
	FieldY      Field = "y"
	FieldWidth  Field = "w"
	FieldHeight Field = "h"
)

// Delta is the signed change of a single field between two observations.
type Delta struct {
	Field Field `yaml:"field" json:"field"`
	Value int   `yaml:"delta" json:"delta"`
}

// String renders the delta as the field prefix followed by a signed integer,
// e.g. "x+5" or "h-12".
func (d Delta) String() string {
	return fmt.Sprintf("%s%+d", d.Field, d.Value)
}

// Change is a single reported observation of the target window.
type Change struct {
	TS      time.Time  `yaml:"-"                json:"-"`
	Rect    WindowRect `yaml:"rect"             json:"rect"`
	Deltas  []Delta    `yaml:"deltas,omitempty" json:"deltas,omitempty"`
	Initial bool       `yaml:"initial,omitempty" json:"initial,omitempty"`
}

// Suffix returns the parenthesized change summary, "(initial)" for the first
// observation or the deltas joined by ", " otherwise.
func (c Change) Suffix() string {
	if c.Initial || len(c.Deltas) == 0 {
		return "(initial)"
	}
	parts := make([]string, len(c.Deltas))
	for i, d := range c.Deltas {
		parts[i] = d.String()
	}
	return "(" + strings.Join(parts, ", ") + ")"
}

// DiffRects compares two rectangles and returns the deltas of the fields
// that differ, in x, y, w, h order. Equal rectangles yield nil.
func DiffRects(prev, curr WindowRect) []Delta {
	var deltas []Delta
	if curr.X != prev.X {
		deltas = append(deltas, Delta{Field: FieldX, Value: curr.X - prev.X})
	}
	if curr.Y != prev.Y {
		deltas = append(deltas, Delta{Field: FieldY, Value: curr.Y - prev.Y})
	}
	if curr.Width != prev.Width {
		deltas = append(deltas, Delta{Field: FieldWidth, Value: curr.Width - prev.Width})
	}
	if curr.Height != prev.Height {
		deltas = append(deltas, Delta{Field: FieldHeight, Value: curr.Height - prev.Height})
	}
	return deltas
}

// NextChange compares curr against the previously observed rectangle and
// returns the Change to report. ok is false when curr equals prev, in which
// case nothing should be reported.
func NextChange(prev *WindowRect, curr WindowRect, ts time.Time) (change Change, ok bool) {
	if prev == nil {
		return Change{TS: ts, Rect: curr, Initial: true}, true
	}
	if *prev == curr {
		return Change{}, false
	}
	return Change{TS: ts, Rect: curr, Deltas: DiffRects(*prev, curr)}, true
}
