package app

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/rt/internal/adapters/config"    //nolint:depguard // Wired in app layer
	"go.trai.ch/rt/internal/adapters/detector"  //nolint:depguard // Wired in app layer
	"go.trai.ch/rt/internal/adapters/history"   //nolint:depguard // Wired in app layer
	"go.trai.ch/rt/internal/adapters/logger"    //nolint:depguard // Wired in app layer
	"go.trai.ch/rt/internal/adapters/shell"     //nolint:depguard // Wired in app layer
	"go.trai.ch/rt/internal/adapters/shellhist" //nolint:depguard // Wired in app layer
	"go.trai.ch/rt/internal/adapters/tui"       //nolint:depguard // Wired in app layer
	"go.trai.ch/rt/internal/core/ports"
	"go.trai.ch/rt/internal/engine/resolver"
)

const (
	// AppNodeID is the unique identifier for the main App Graft node.
	AppNodeID graft.ID = "app.main"
	// ComponentsNodeID is the unique identifier for the App components Graft node.
	ComponentsNodeID graft.ID = "app.components"
)

func init() {
	graft.Register(graft.Node[*App]{
		ID:        AppNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			config.NodeID,
			tui.SelectorNodeID,
			resolver.NodeID,
			shell.NodeID,
			history.NodeID,
			shellhist.NodeID,
			detector.EnvNodeID,
			logger.NodeID,
		},
		Run: runAppNode,
	})

	graft.Register(graft.Node[*Components]{
		ID:        ComponentsNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			AppNodeID,
			logger.NodeID,
		},
		Run: func(ctx context.Context) (*Components, error) {
			app, err := graft.Dep[*App](ctx)
			if err != nil {
				return nil, err
			}

			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}

			return NewComponents(app, log), nil
		},
	})
}

func runAppNode(ctx context.Context) (*App, error) {
	loader, err := graft.Dep[ports.CatalogLoader](ctx)
	if err != nil {
		return nil, err
	}

	selector, err := graft.Dep[ports.Selector](ctx)
	if err != nil {
		return nil, err
	}

	res, err := graft.Dep[*resolver.Resolver](ctx)
	if err != nil {
		return nil, err
	}

	executor, err := graft.Dep[ports.Executor](ctx)
	if err != nil {
		return nil, err
	}

	store, err := graft.Dep[ports.HistoryStore](ctx)
	if err != nil {
		return nil, err
	}

	shellHistory, err := graft.Dep[ports.ShellHistory](ctx)
	if err != nil {
		return nil, err
	}

	env, err := graft.Dep[ports.Environment](ctx)
	if err != nil {
		return nil, err
	}

	log, err := graft.Dep[ports.Logger](ctx)
	if err != nil {
		return nil, err
	}

	return New(loader, selector, res, executor, store, shellHistory, env, log), nil
}
