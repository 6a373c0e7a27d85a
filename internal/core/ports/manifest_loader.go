package ports

import "go.trai.ch/press/internal/core/domain"

// ManifestLoader reads the vendor manifests.
//
//go:generate mockgen -source=manifest_loader.go -destination=mocks/mock_manifest_loader.go -package=mocks
type ManifestLoader interface {
	// Load returns the three manifests verbatim, preserving declared order.
	// Listed files are not checked for existence.
	Load(paths domain.ManifestPaths) (domain.VendorManifest, error)
}
