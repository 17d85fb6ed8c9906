// Package wiring registers all Graft nodes for the application.
package wiring

import (
	// Register adapter nodes.
	_ "go.trai.ch/rt/internal/adapters/config"
	_ "go.trai.ch/rt/internal/adapters/detector"
	_ "go.trai.ch/rt/internal/adapters/history"
	_ "go.trai.ch/rt/internal/adapters/logger"
	_ "go.trai.ch/rt/internal/adapters/shell"
	_ "go.trai.ch/rt/internal/adapters/shellhist"
	_ "go.trai.ch/rt/internal/adapters/tui"
	// Register app and engine nodes.
	_ "go.trai.ch/rt/internal/app"
	_ "go.trai.ch/rt/internal/engine/resolver"
)
