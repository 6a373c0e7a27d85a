package esbuild

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/press/internal/core/domain"
	"go.trai.ch/press/internal/core/ports"
)

const (
	// StyleNodeID is the unique identifier for the style compiler factory Graft node.
	StyleNodeID graft.ID = "adapter.esbuild.style"
	// ScriptNodeID is the unique identifier for the script minifier factory Graft node.
	ScriptNodeID graft.ID = "adapter.esbuild.script"
)

func init() {
	graft.Register(graft.Node[ports.StyleCompilerFactory]{
		ID:        StyleNodeID,
		Cacheable: true,
		Run: func(_ context.Context) (ports.StyleCompilerFactory, error) {
			return func(cfg domain.StyleConfig) (ports.StyleCompiler, error) {
				c, err := NewStyleCompiler(cfg)
				if err != nil {
					return nil, err
				}
				return c, nil
			}, nil
		},
	})

	graft.Register(graft.Node[ports.ScriptMinifierFactory]{
		ID:        ScriptNodeID,
		Cacheable: true,
		Run: func(_ context.Context) (ports.ScriptMinifierFactory, error) {
			return func(cfg domain.ScriptConfig) (ports.ScriptMinifier, error) {
				m, err := NewScriptMinifier(cfg)
				if err != nil {
					return nil, err
				}
				return m, nil
			}, nil
		},
	})
}
