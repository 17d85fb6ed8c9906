package config

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/rt/internal/adapters/logger"
	"go.trai.ch/rt/internal/core/ports"
)

// NodeID is the unique identifier for the catalog loader Graft node.
const NodeID graft.ID = "adapter.catalog_loader"

func init() {
	graft.Register(graft.Node[ports.CatalogLoader]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{logger.NodeID},
		Run: func(ctx context.Context) (ports.CatalogLoader, error) {
			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}
			return NewLoader(NewOSFS(), log), nil
		},
	})
}
