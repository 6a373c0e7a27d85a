package imaging

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/press/internal/core/domain"
	"go.trai.ch/press/internal/core/ports"
)

// NodeID is the unique identifier for the image compressor factory Graft node.
const NodeID graft.ID = "adapter.imaging"

func init() {
	graft.Register(graft.Node[ports.ImageCompressorFactory]{
		ID:        NodeID,
		Cacheable: true,
		Run: func(_ context.Context) (ports.ImageCompressorFactory, error) {
			return func(cfg domain.ImageConfig) (ports.ImageCompressor, error) {
				c, err := NewCompressor(cfg)
				if err != nil {
					return nil, err
				}
				return c, nil
			}, nil
		},
	})
}
