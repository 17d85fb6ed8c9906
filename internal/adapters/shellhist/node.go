package shellhist

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/rt/internal/core/ports"
)

// NodeID is the unique identifier for the shell history Graft node.
const NodeID graft.ID = "adapter.shell_history"

func init() {
	graft.Register(graft.Node[ports.ShellHistory]{
		ID:        NodeID,
		Cacheable: true,
		Run: func(_ context.Context) (ports.ShellHistory, error) {
			return NewAppender(), nil
		},
	})
}
