package fs

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/press/internal/core/ports"
)

const (
	// ResolverNodeID is the unique identifier for the glob resolver Graft node.
	ResolverNodeID graft.ID = "adapter.fs.resolver"
	// StoreNodeID is the unique identifier for the file store Graft node.
	StoreNodeID graft.ID = "adapter.fs.store"
)

func init() {
	graft.Register(graft.Node[ports.SourceResolver]{
		ID:        ResolverNodeID,
		Cacheable: true,
		Run: func(_ context.Context) (ports.SourceResolver, error) {
			return NewResolver(), nil
		},
	})

	graft.Register(graft.Node[ports.FileStore]{
		ID:        StoreNodeID,
		Cacheable: true,
		Run: func(_ context.Context) (ports.FileStore, error) {
			return NewStore(), nil
		},
	})
}
