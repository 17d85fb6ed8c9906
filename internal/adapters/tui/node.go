package tui

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/rt/internal/core/ports"
)

const (
	// TerminalNodeID is the unique identifier for the shared terminal Graft node.
	TerminalNodeID graft.ID = "adapter.terminal"
	// SelectorNodeID is the unique identifier for the selector Graft node.
	SelectorNodeID graft.ID = "adapter.selector"
	// PrompterNodeID is the unique identifier for the prompter Graft node.
	PrompterNodeID graft.ID = "adapter.prompter"
)

func init() {
	graft.Register(graft.Node[*Terminal]{
		ID:        TerminalNodeID,
		Cacheable: true,
		Run: func(_ context.Context) (*Terminal, error) {
			return NewTerminal(), nil
		},
	})

	graft.Register(graft.Node[ports.Selector]{
		ID:        SelectorNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{TerminalNodeID},
		Run: func(ctx context.Context) (ports.Selector, error) {
			terminal, err := graft.Dep[*Terminal](ctx)
			if err != nil {
				return nil, err
			}
			return terminal, nil
		},
	})

	graft.Register(graft.Node[ports.Prompter]{
		ID:        PrompterNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{TerminalNodeID},
		Run: func(ctx context.Context) (ports.Prompter, error) {
			terminal, err := graft.Dep[*Terminal](ctx)
			if err != nil {
				return nil, err
			}
			return terminal, nil
		},
	})
}
