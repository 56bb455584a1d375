//go:build darwin

package darwin

import (
	"github.com/mj1618/window-monitor/internal/platform"
	"github.com/mj1618/window-monitor/internal/platform/applescript"
)

func init() {
	platform.NewProviderFunc = func(opts platform.ProviderOptions) (*platform.Provider, error) {
		return &platform.Provider{
			Prober: applescript.NewProber(applescript.ExecRunner, opts.Timeout),
		}, nil
	}
}
