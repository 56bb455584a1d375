package platform

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/mj1618/window-monitor/internal/model"
)

var braceStripper = strings.NewReplacer("{", "", "}", "")

// ParseBounds parses a System Events bounds tuple such as "{0, 25, 1440, 900}"
// (two corner points) into a WindowRect.
func ParseBounds(s string) (model.WindowRect, error) {
	parts := strings.Split(braceStripper.Replace(s), ",")
	if len(parts) != 4 {
		return model.WindowRect{}, fmt.Errorf("invalid bounds %q: expected {x1, y1, x2, y2}", s)
	}
	var vals [4]int
	for i, p := range parts {
		v, err := strconv.Atoi(strings.TrimSpace(p))
		if err != nil {
			return model.WindowRect{}, fmt.Errorf("invalid bounds %q: %w", s, err)
		}
		vals[i] = v
	}
	return model.RectFromCorners(vals[0], vals[1], vals[2], vals[3]), nil
}
