package platform

import (
	"fmt"
	"runtime"
	"time"
)

// Provider bundles the platform backends for the current OS.
type Provider struct {
	Prober BoundsProber
}

// ProviderOptions configures the backends built by NewProvider.
type ProviderOptions struct {
	// Timeout bounds a single probe, including the external process.
	Timeout time.Duration
}

// ErrUnsupported is returned on unsupported platforms.
var ErrUnsupported = fmt.Errorf("window-monitor is not supported on %s/%s; supported: darwin/amd64, darwin/arm64", runtime.GOOS, runtime.GOARCH)

// NewProviderFunc is set by platform-specific packages via init().
// See internal/platform/darwin/init.go for the macOS registration.
var NewProviderFunc func(opts ProviderOptions) (*Provider, error)

// NewProvider returns a Provider for the current OS.
func NewProvider(opts ProviderOptions) (*Provider, error) {
	if NewProviderFunc == nil {
		return nil, ErrUnsupported
	}
	return NewProviderFunc(opts)
}
