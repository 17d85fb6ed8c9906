package ports

import "go.trai.ch/rt/internal/core/domain"

// CatalogLoader detects the task file in a directory and parses it into a catalog.
//
//go:generate go run go.uber.org/mock/mockgen -source=config_loader.go -destination=mocks/mock_config_loader.go -package=mocks
type CatalogLoader interface {
	// Load detects the active runner in dir and returns its tasks.
	// It returns domain.ErrNoRunnerFound when no supported file exists.
	Load(dir string) (*domain.Catalog, error)
}
