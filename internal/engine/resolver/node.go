package resolver

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/rt/internal/adapters/detector" //nolint:depguard // Wired in engine wiring
	"go.trai.ch/rt/internal/adapters/tui"      //nolint:depguard // Wired in engine wiring
	"go.trai.ch/rt/internal/core/ports"
)

// NodeID is the unique identifier for the resolver Graft node.
const NodeID graft.ID = "engine.resolver"

func init() {
	graft.Register(graft.Node[*Resolver]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			tui.PrompterNodeID,
			detector.EnvNodeID,
		},
		Run: func(ctx context.Context) (*Resolver, error) {
			prompter, err := graft.Dep[ports.Prompter](ctx)
			if err != nil {
				return nil, err
			}

			env, err := graft.Dep[ports.Environment](ctx)
			if err != nil {
				return nil, err
			}

			return New(prompter, env), nil
		},
	})
}
