package platform

import (
	"context"
	"errors"

	"github.com/mj1618/window-monitor/internal/model"
)

// ErrNoWindow is returned when the target process exists but reports no
// window bounds (empty output from the scripting bridge).
var ErrNoWindow = errors.New("no window")

// BoundsProber reads the bounding rectangle of an application's first window.
type BoundsProber interface {
	// WindowBounds probes the first window of the named process. Any error
	// means no current data is available.
	WindowBounds(ctx context.Context, process string) (model.WindowRect, error)
}

// BoundsProberFunc adapts a plain function to BoundsProber.
type BoundsProberFunc func(ctx context.Context, process string) (model.WindowRect, error)

func (f BoundsProberFunc) WindowBounds(ctx context.Context, process string) (model.WindowRect, error) {
	return f(ctx, process)
}
