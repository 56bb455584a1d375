package model

// WindowRect is a window's top-left position and extent in screen points.
type WindowRect struct {
	X      int `yaml:"x"      json:"x"`
	Y      int `yaml:"y"      json:"y"`
	Width  int `yaml:"width"  json:"width"`
	Height int `yaml:"height" json:"height"`
}

// RectFromCorners builds a WindowRect from two corner points as reported by
// System Events ({x1, y1, x2, y2}). Inverted corners are kept as-is and
// produce a negative width or height.
func RectFromCorners(x1, y1, x2, y2 int) WindowRect {
	return WindowRect{
		X:      x1,
		Y:      y1,
		Width:  x2 - x1,
		Height: y2 - y1,
	}
}

// Inverted reports whether the rectangle has a negative extent.
func (r WindowRect) Inverted() bool {
	return r.Width < 0 || r.Height < 0
}
