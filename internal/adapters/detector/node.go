package detector

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/rt/internal/core/ports"
)

// EnvNodeID is the unique identifier for the environment Graft node.
const EnvNodeID graft.ID = "adapter.environment"

func init() {
	graft.Register(graft.Node[ports.Environment]{
		ID:        EnvNodeID,
		Cacheable: true,
		Run: func(_ context.Context) (ports.Environment, error) {
			return NewEnv(), nil
		},
	})
}
