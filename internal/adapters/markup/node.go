package markup

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/press/internal/core/domain"
	"go.trai.ch/press/internal/core/ports"
)

// NodeID is the unique identifier for the markup renderer factory Graft node.
const NodeID graft.ID = "adapter.markup"

func init() {
	graft.Register(graft.Node[ports.MarkupRendererFactory]{
		ID:        NodeID,
		Cacheable: true,
		Run: func(_ context.Context) (ports.MarkupRendererFactory, error) {
			return func(cfg domain.MarkupConfig) (ports.MarkupRenderer, error) {
				r, err := NewRenderer(cfg)
				if err != nil {
					return nil, err
				}
				return r, nil
			}, nil
		},
	})
}
