package main

import (
	"github.com/mj1618/window-monitor/cmd"
	_ "github.com/mj1618/window-monitor/internal/platform/darwin"
)

func main() {
	cmd.Execute()
}
