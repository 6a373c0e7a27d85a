package ports

import "go.trai.ch/press/internal/core/domain"

// ConfigLoader defines the interface for loading the project configuration.
//
//go:generate mockgen -source=config_loader.go -destination=mocks/mock_config_loader.go -package=mocks
type ConfigLoader interface {
	// Load reads the configuration rooted at cwd. A missing config file is not
	// an error; defaults apply.
	Load(cwd string) (*domain.Config, error)
}
